package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kinobot/internal/models"
	"kinobot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const addMoviePrompt = "📝 Введите данные фильма в формате:\n\n" +
	"<code>Название; Дата1 Время1, Дата2 Время2,...</code>\n\n" +
	"Пример:\n<code>Интерстеллар; 2025-12-15 19:00, 2025-12-16 21:00</code>"

const addMovieFormatError = "❌ Ошибка формата. Используйте:\n" +
	"<code>Название; Дата Время, Дата Время,...</code>\n" +
	"Или отправьте \"отмена\""

// Сеансы нумеруются с нуля, номер в команде — индекс в списке
const editSessionPrompt = "Введите номер сеанса, новую дату и время в формате:\n" +
	"<code>номер, дата, время</code>\n\n" +
	"Пример: <code>0, 2025-12-20, 18:00</code>"

func (b *Bot) enterAdminFlow(ctx context.Context, update *tgbotapi.Update) {
	userID := update.Message.From.ID

	if !b.isAdmin(userID) {
		// Состояние диалога не трогаем: пользователь остается там, где был
		b.sendMessage(update.Message.Chat.ID, "⚠️ У вас нет прав администратора")
		return
	}

	b.showAdminMenu(ctx, update)
}

func (b *Bot) showAdminMenu(ctx context.Context, update *tgbotapi.Update) {
	userID := update.Message.From.ID

	b.setState(ctx, &models.UserState{
		UserID: userID,
		Flow:   models.FlowAdmin,
		Step:   models.StateAdminMenu,
	})

	b.sendChoices(update.Message.Chat.ID, "🛠️ Админ-панель\nВыберите действие:", []string{
		btnAdminAddMovie,
		btnAdminDeleteMovie,
		btnAdminEditSession,
		btnAdminStats,
		btnAdminExport,
		btnAdminExit,
	})
}

func (b *Bot) exitAdminFlow(ctx context.Context, update *tgbotapi.Update) {
	b.clearState(ctx, update.Message.From.ID)
	b.sendMessage(update.Message.Chat.ID, "🔙 Вы вышли из админ-панели")
	b.showMainMenu(ctx, update)
}

func (b *Bot) handleAdminMenu(ctx context.Context, update *tgbotapi.Update, state *models.UserState) {
	chatID := update.Message.Chat.ID

	switch adminMenuActions[update.Message.Text] {
	case actionAdminAddMovie:
		state.Step = models.StateAddMovie
		state.Admin = &models.AdminFlowData{}
		b.setState(ctx, state)
		b.sendHTML(chatID, addMoviePrompt)

	case actionAdminDeleteMovie:
		movies := b.catalogService.Movies(ctx)
		if len(movies) == 0 {
			b.sendMessage(chatID, "ℹ️ Нет фильмов для удаления")
			b.showAdminMenu(ctx, update)
			return
		}
		state.Step = models.StateDeleteMovie
		b.setState(ctx, state)
		b.showMovieTitles(chatID, "Выберите фильм для удаления:", movies)

	case actionAdminEditSession:
		movies := b.catalogService.Movies(ctx)
		if len(movies) == 0 {
			b.sendMessage(chatID, "ℹ️ Нет фильмов для редактирования")
			b.showAdminMenu(ctx, update)
			return
		}
		state.Step = models.StateEditSession
		state.Admin = &models.AdminFlowData{EditStep: models.EditStepSelectMovie}
		b.setState(ctx, state)
		b.showMovieTitles(chatID, "Выберите фильм для редактирования:", movies)

	case actionAdminStats:
		b.showAdminStats(ctx, update)

	case actionAdminExport:
		b.exportBookings(ctx, update)

	case actionAdminExit:
		b.exitAdminFlow(ctx, update)

	default:
		b.sendMessage(chatID, "❌ Неверный выбор, попробуйте еще раз")
		b.showAdminMenu(ctx, update)
	}
}

func (b *Bot) showMovieTitles(chatID int64, text string, movies []models.Movie) {
	choices := make([]string, 0, len(movies)+1)
	for _, m := range movies {
		choices = append(choices, m.Title)
	}
	choices = append(choices, btnBack)
	b.sendChoices(chatID, text, choices)
}

func (b *Bot) handleAddMovie(ctx context.Context, update *tgbotapi.Update, state *models.UserState) {
	text := update.Message.Text
	chatID := update.Message.Chat.ID

	if strings.EqualFold(strings.TrimSpace(text), cancelWord) {
		b.showAdminMenu(ctx, update)
		return
	}

	movie, err := ParseAddMovie(text)
	if err != nil {
		// Ошибка формата оставляет администратора на том же шаге
		b.sendHTML(chatID, addMovieFormatError)
		return
	}

	if err := b.catalogService.AddMovie(ctx, movie); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("title", movie.Title).Msg("Failed to add movie")
		b.sendMessage(chatID, userErrorMessage(err))
		b.showAdminMenu(ctx, update)
		return
	}

	b.sendHTML(chatID, fmt.Sprintf("✅ Фильм <b>%s</b> успешно добавлен с %d сеансами", movie.Title, len(movie.Sessions)))
	b.showAdminMenu(ctx, update)
}

func (b *Bot) handleDeleteMovie(ctx context.Context, update *tgbotapi.Update, state *models.UserState) {
	text := update.Message.Text
	chatID := update.Message.Chat.ID

	if text == btnBack {
		b.showAdminMenu(ctx, update)
		return
	}

	if err := b.catalogService.DeleteMovie(ctx, text); err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			// Остаемся на том же шаге, список уже на экране
			b.sendMessage(chatID, "❌ Фильм не найден")
			return
		}
		zerolog.Ctx(ctx).Error().Err(err).Str("title", text).Msg("Failed to delete movie")
		b.sendMessage(chatID, userErrorMessage(err))
		b.showAdminMenu(ctx, update)
		return
	}

	b.sendHTML(chatID, fmt.Sprintf("✅ Фильм <b>%s</b> удален", text))
	b.showAdminMenu(ctx, update)
}

func (b *Bot) handleEditSession(ctx context.Context, update *tgbotapi.Update, state *models.UserState) {
	text := update.Message.Text
	chatID := update.Message.Chat.ID

	if text == btnBack {
		state.Admin = nil
		b.showAdminMenu(ctx, update)
		return
	}

	admin := state.AdminData()

	if admin.EditStep == models.EditStepEditSession {
		b.applySessionEdit(ctx, update, state, text)
		return
	}

	// Шаг выбора фильма
	movie, ok := b.catalogService.MovieByTitle(ctx, text)
	if !ok {
		b.sendMessage(chatID, "❌ Фильм не найден")
		return
	}

	if len(movie.Sessions) == 0 {
		state.Admin = nil
		b.sendMessage(chatID, "ℹ️ У этого фильма нет сеансов")
		b.showAdminMenu(ctx, update)
		return
	}

	admin.EditStep = models.EditStepEditSession
	admin.EditMovie = movie.Title
	b.setState(ctx, state)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Сеансы фильма <b>%s</b>:\n", movie.Title)
	for i, s := range movie.Sessions {
		fmt.Fprintf(&sb, "%d. %s\n", i, s.Label())
	}
	sb.WriteString("\n" + editSessionPrompt)
	b.sendHTML(chatID, sb.String())
}

// applySessionEdit — второй шаг редактирования. Черновик очищается на
// любом исходе шага, ошибка формата лишь оставляет администратора в том
// же состоянии.
func (b *Bot) applySessionEdit(ctx context.Context, update *tgbotapi.Update, state *models.UserState, text string) {
	chatID := update.Message.Chat.ID

	title := state.AdminData().EditMovie
	state.Admin = nil

	edit, err := ParseSessionEdit(text)
	if err != nil {
		// Черновик уже очищен, следующий ввод снова выбор фильма
		b.setState(ctx, state)
		b.sendMessage(chatID, "❌ Ошибка формата. Выберите фильм еще раз")
		return
	}

	if err := b.catalogService.UpdateSession(ctx, title, edit.Index, edit.Date, edit.Time); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("title", title).Int("index", edit.Index).Msg("Failed to update session")
		b.sendMessage(chatID, "❌ Не удалось обновить сеанс")
		b.showAdminMenu(ctx, update)
		return
	}

	b.sendMessage(chatID, "✅ Сеанс успешно обновлен")
	b.showAdminMenu(ctx, update)
}

func (b *Bot) showAdminStats(ctx context.Context, update *tgbotapi.Update) {
	chatID := update.Message.Chat.ID

	bookings := b.bookingService.Bookings(ctx)
	movies := b.catalogService.Movies(ctx)

	var totalUsers, activeUsers int
	if b.userService != nil {
		if n, err := b.userService.CountUsers(ctx); err == nil {
			totalUsers = n
		}
		if users, err := b.userService.GetActiveUsers(ctx, 7); err == nil {
			activeUsers = len(users)
		}
	}

	perMovie := make(map[string]int)
	for _, bk := range bookings {
		perMovie[bk.Movie]++
	}

	var sb strings.Builder
	sb.WriteString("📊 Статистика\n")
	fmt.Fprintf(&sb, "\n🎬 Фильмов в каталоге: %d", len(movies))
	fmt.Fprintf(&sb, "\n🎟️ Всего броней: %d", len(bookings))
	fmt.Fprintf(&sb, "\n👥 Пользователей: %d (активных за неделю: %d)", totalUsers, activeUsers)
	if len(perMovie) > 0 {
		sb.WriteString("\n\nБрони по фильмам:")
		for _, m := range movies {
			if n := perMovie[m.Title]; n > 0 {
				fmt.Fprintf(&sb, "\n• %s: %d", m.Title, n)
			}
		}
	}

	b.sendMessage(chatID, sb.String())
	b.showAdminMenu(ctx, update)
}
