package storage

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"kinobot/internal/models"

	"github.com/rs/zerolog"
)

// BookingStore хранит плоский список бронирований в одном JSON-файле.
// Записи не индексированы; уникальность (movie, session, seat) не
// гарантируется.
type BookingStore struct {
	path   string
	logger *zerolog.Logger
}

func NewBookingStore(path string, logger *zerolog.Logger) *BookingStore {
	return &BookingStore{path: path, logger: logger}
}

// bookingRecord — сырой формат записи на диске. Старые записи держали
// пользователя в поле user (строкой или объектом {id}), новые — в user_id.
type bookingRecord struct {
	ID      string          `json:"id,omitempty"`
	UserID  string          `json:"user_id,omitempty"`
	User    json.RawMessage `json:"user,omitempty"`
	Movie   string          `json:"movie"`
	Session string          `json:"session"`
	Seat    string          `json:"seat"`
}

// Load возвращает все бронирования, нормализуя устаревшие формы записей.
// Отсутствующий или нечитаемый файл — пустой список.
func (s *BookingStore) Load() []models.Booking {
	var records []bookingRecord
	if err := readCollection(s.path, &records); err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("booking load failed, treating as empty")
		}
		return nil
	}

	bookings := make([]models.Booking, 0, len(records))
	for _, rec := range records {
		bookings = append(bookings, rec.normalize())
	}
	return bookings
}

// Save перезаписывает список бронирований целиком.
func (s *BookingStore) Save(bookings []models.Booking) error {
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return writeCollection(s.path, bookings)
}

func (r bookingRecord) normalize() models.Booking {
	b := models.Booking{
		ID:      r.ID,
		UserID:  r.UserID,
		Movie:   r.Movie,
		Session: r.Session,
		Seat:    r.Seat,
	}

	if b.UserID == "" && len(r.User) > 0 {
		b.UserID = legacyUserID(r.User)
	}

	if b.ID == "" {
		b.ID = LegacyBookingID(b.Movie, b.Session, b.Seat)
	}

	return b
}

func legacyUserID(raw json.RawMessage) string {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}

	var asObject struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(raw, &asObject); err != nil || len(asObject.ID) == 0 {
		return ""
	}

	var idString string
	if err := json.Unmarshal(asObject.ID, &idString); err == nil {
		return idString
	}
	var idNumber int64
	if err := json.Unmarshal(asObject.ID, &idNumber); err == nil {
		return strconv.FormatInt(idNumber, 10)
	}
	return ""
}

// LegacyBookingID синтезирует идентификатор для записей без id: префикс
// названия + сеанс без пробелов + место. Не уникален — две записи с
// одинаковым кортежем дают одинаковый id. Новые бронирования получают
// настоящий id при создании, шим остается только для старых данных.
func LegacyBookingID(movie, session, seat string) string {
	prefix := []rune(movie)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return string(prefix) + strings.ReplaceAll(session, " ", "") + seat
}
