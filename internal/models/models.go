package models

import "time"

// Session — сеанс фильма. Дата и время хранятся как непрозрачные строки,
// идентичность сеанса определяется только позицией в списке фильма.
type Session struct {
	Date string `json:"date" yaml:"date"`
	Time string `json:"time" yaml:"time"`
}

// Label возвращает подпись сеанса в том виде, в котором она показывается
// пользователю и денормализуется в бронирование.
func (s Session) Label() string {
	return s.Date + " " + s.Time
}

// Movie — фильм каталога. Title является ключом без учета регистра.
type Movie struct {
	Title    string    `json:"title" yaml:"title"`
	Sessions []Session `json:"sessions" yaml:"sessions"`
}

// Booking — бронирование места. Поля movie/session денормализованы:
// удаление фильма не трогает существующие бронирования.
type Booking struct {
	ID      string `json:"id,omitempty"`
	UserID  string `json:"user_id"`
	Movie   string `json:"movie"`
	Session string `json:"session"`
	Seat    string `json:"seat"`
}

// SameTuple сравнивает бронирования по полному кортежу
// (user, movie, session, seat) — так работает отмена.
func (b Booking) SameTuple(userID, movie, session, seat string) bool {
	return b.UserID == userID && b.Movie == movie && b.Session == session && b.Seat == seat
}

// User — профиль Telegram-пользователя для базы учёта.
type User struct {
	ID           int64     `json:"id"`
	TelegramID   int64     `json:"telegram_id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsAdmin      bool      `json:"is_admin"`
	LanguageCode string    `json:"language_code"`
	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
