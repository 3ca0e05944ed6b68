package service

import (
	"kinobot/internal/domain"
	"kinobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramService реализует контракт рендерера поверх Telegram Bot API:
// подсказка плюс упорядоченный список вариантов, отрисованных
// reply-клавиатурой в одну колонку.
type TelegramService struct {
	bot domain.TelegramSender
}

func NewTelegramService(bot domain.TelegramSender) *TelegramService {
	return &TelegramService{
		bot: bot,
	}
}

func (s *TelegramService) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return s.bot.Send(c)
}

func (s *TelegramService) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	return s.bot.Send(msg)
}

func (s *TelegramService) SendHTML(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = models.ParseModeHTML
	return s.bot.Send(msg)
}

// SendChoices показывает подсказку с вариантами по одному на строку
// клавиатуры. Ответ пользователя не обязан совпадать с вариантом.
func (s *TelegramService) SendChoices(chatID int64, text string, choices []string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)

	rows := make([][]tgbotapi.KeyboardButton, 0, len(choices))
	for _, choice := range choices {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(choice)))
	}

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.OneTimeKeyboard = true
	keyboard.ResizeKeyboard = true
	msg.ReplyMarkup = keyboard

	return s.bot.Send(msg)
}

func (s *TelegramService) SendDocument(chatID int64, doc tgbotapi.FileReader, caption string) (tgbotapi.Message, error) {
	d := tgbotapi.NewDocument(chatID, doc)
	d.Caption = caption
	return s.bot.Send(d)
}

func (s *TelegramService) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return s.bot.GetUpdatesChan(config)
}

func (s *TelegramService) GetSelf() tgbotapi.User {
	return s.bot.GetSelf()
}

func (s *TelegramService) StopReceivingUpdates() {
	s.bot.StopReceivingUpdates()
}
