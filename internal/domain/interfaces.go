package domain

import (
	"context"
	"time"

	"kinobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CatalogStore — контракт хранилища каталога: целиком прочитать, целиком
// записать. Никаких частичных обновлений.
type CatalogStore interface {
	Load() []models.Movie
	Save(movies []models.Movie) error
}

// BookingStore — контракт хранилища бронирований.
type BookingStore interface {
	Load() []models.Booking
	Save(bookings []models.Booking) error
}

type StateRepository interface {
	GetState(ctx context.Context, userID int64) (*models.UserState, error)
	SetState(ctx context.Context, state *models.UserState) error
	ClearState(ctx context.Context, userID int64) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type StateManager interface {
	GetUserState(ctx context.Context, userID int64) (*models.UserState, error)
	SetUserState(ctx context.Context, state *models.UserState) error
	ClearUserState(ctx context.Context, userID int64) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

// TelegramService — контракт рендерера: показать подсказку с ограниченным
// набором вариантов и получить следующий сырой текстовый ответ. Ответ не
// обязан совпадать ни с одним из вариантов.
type TelegramService interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	SendMessage(chatID int64, text string) (tgbotapi.Message, error)
	SendHTML(chatID int64, text string) (tgbotapi.Message, error)
	SendChoices(chatID int64, text string, choices []string) (tgbotapi.Message, error)
	SendDocument(chatID int64, doc tgbotapi.FileReader, caption string) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

type CatalogService interface {
	Movies(ctx context.Context) []models.Movie
	MovieByTitle(ctx context.Context, title string) (models.Movie, bool)
	AddMovie(ctx context.Context, movie models.Movie) error
	DeleteMovie(ctx context.Context, title string) error
	UpdateSession(ctx context.Context, title string, index int, date, time string) error
}

type BookingService interface {
	Bookings(ctx context.Context) []models.Booking
	UserBookings(ctx context.Context, userID string) []models.Booking
	CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error)
	CancelBooking(ctx context.Context, userID, movie, session, seat string) error
}

type UserService interface {
	SaveUser(ctx context.Context, user *models.User) error
	UpdateUserActivity(ctx context.Context, telegramID int64) error
	CountUsers(ctx context.Context) (int, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetActiveUsers(ctx context.Context, days int) ([]*models.User, error)
}
