package service

import (
	"context"
	"sync"

	"kinobot/internal/domain"
	"kinobot/internal/events"
	"kinobot/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BookingService реализует операции над плоским списком бронирований.
// Как и в каталоге, мьютекс закрывает весь цикл чтение-изменение-запись.
type BookingService struct {
	store    domain.BookingStore
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	mu       sync.Mutex
}

func NewBookingService(store domain.BookingStore, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *BookingService) Bookings(ctx context.Context) []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load()
}

// UserBookings возвращает бронирования пользователя. Стор уже нормализовал
// устаревшие формы записей и подставил производный id там, где его не было.
func (s *BookingService) UserBookings(ctx context.Context, userID string) []models.Booking {
	var result []models.Booking
	for _, b := range s.Bookings(ctx) {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	return result
}

// CreateBooking добавляет запись и присваивает ей настоящий уникальный id.
// Уникальность кортежа (movie, session, seat) не проверяется: двойное
// бронирование одного места допускается моделью данных.
func (s *BookingService) CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	bookings := s.store.Load()
	bookings = append(bookings, booking)

	if err := s.store.Save(bookings); err != nil {
		s.logger.Error().Err(err).Str("user_id", booking.UserID).Msg("failed to save bookings")
		return models.Booking{}, err
	}

	_ = s.eventBus.PublishJSON(events.EventBookingCreated, events.BookingEventPayload{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Movie:     booking.Movie,
		Session:   booking.Session,
		Seat:      booking.Seat,
	})

	return booking, nil
}

// CancelBooking удаляет первую запись с точным совпадением кортежа,
// сверяясь с текущим стором, а не со снимком вызывающего. Если совпадений
// нет, стор записывается без изменений и возвращается ErrBookingNotFound.
func (s *BookingService) CancelBooking(ctx context.Context, userID, movie, session, seat string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings := s.store.Load()

	removed := -1
	for i, b := range bookings {
		if b.SameTuple(userID, movie, session, seat) {
			removed = i
			break
		}
	}

	var cancelled models.Booking
	if removed >= 0 {
		cancelled = bookings[removed]
		bookings = append(bookings[:removed], bookings[removed+1:]...)
	}

	if err := s.store.Save(bookings); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to save bookings")
		return err
	}

	if removed < 0 {
		return ErrBookingNotFound
	}

	_ = s.eventBus.PublishJSON(events.EventBookingCancelled, events.BookingEventPayload{
		BookingID: cancelled.ID,
		UserID:    cancelled.UserID,
		Movie:     cancelled.Movie,
		Session:   cancelled.Session,
		Seat:      cancelled.Seat,
	})

	return nil
}
