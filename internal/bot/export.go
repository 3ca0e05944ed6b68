package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// exportBookings выгружает все брони в Excel и отправляет файл в чат.
func (b *Bot) exportBookings(ctx context.Context, update *tgbotapi.Update) {
	chatID := update.Message.Chat.ID

	filePath, err := b.exportBookingsToExcel(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to export bookings")
		b.sendMessage(chatID, "❌ Не удалось сформировать экспорт.")
		b.showAdminMenu(ctx, update)
		return
	}

	file, err := os.Open(filePath)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("file_path", filePath).Msg("Failed to open export file")
		b.sendMessage(chatID, "❌ Не удалось отправить файл.")
		b.showAdminMenu(ctx, update)
		return
	}
	defer file.Close()

	fileReader := tgbotapi.FileReader{
		Name:   filepath.Base(filePath),
		Reader: file,
	}
	if _, err := b.tgService.SendDocument(chatID, fileReader, "📤 Экспорт бронирований"); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to send export document")
		b.sendMessage(chatID, "❌ Не удалось отправить файл.")
	}

	b.showAdminMenu(ctx, update)
}

func (b *Bot) exportBookingsToExcel(ctx context.Context) (string, error) {
	if err := os.MkdirAll(b.config.Exports.Path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	bookings := b.bookingService.Bookings(ctx)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Бронирования"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"ID", "Пользователь", "Фильм", "Сеанс", "Место"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	_ = f.SetCellStyle(sheetName, "A1", "E1", headerStyle)

	for i, bk := range bookings {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), bk.ID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), bk.UserID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), bk.Movie)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), bk.Session)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), bk.Seat)
	}

	_ = f.SetColWidth(sheetName, "A", "A", 38)
	_ = f.SetColWidth(sheetName, "B", "B", 15)
	_ = f.SetColWidth(sheetName, "C", "C", 30)
	_ = f.SetColWidth(sheetName, "D", "D", 20)
	_ = f.SetColWidth(sheetName, "E", "E", 10)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_export_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(b.config.Exports.Path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	b.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("Excel file created")
	return filePath, nil
}
