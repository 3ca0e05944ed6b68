package service

import (
	"context"
	"io"
	"testing"

	"kinobot/internal/events"
	"kinobot/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingStore struct {
	bookings []models.Booking
	saves    int
}

func (f *fakeBookingStore) Load() []models.Booking {
	out := make([]models.Booking, len(f.bookings))
	copy(out, f.bookings)
	return out
}

func (f *fakeBookingStore) Save(bookings []models.Booking) error {
	f.saves++
	f.bookings = bookings
	return nil
}

func newBookingService(bookings []models.Booking) (*BookingService, *fakeBookingStore) {
	logger := zerolog.New(io.Discard)
	store := &fakeBookingStore{bookings: bookings}
	return NewBookingService(store, events.NewEventBus(), &logger), store
}

func TestBookingServiceCreateAssignsID(t *testing.T) {
	svc, store := newBookingService(nil)
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, models.Booking{
		UserID: "1", Movie: "Дюна", Session: "2025-12-15 19:00", Seat: "5",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	require.Len(t, store.bookings, 1)
	assert.Equal(t, created, store.bookings[0])

	// Два бронирования одного места допускаются, но с разными id
	second, err := svc.CreateBooking(ctx, models.Booking{
		UserID: "1", Movie: "Дюна", Session: "2025-12-15 19:00", Seat: "5",
	})
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, second.ID)
	assert.Len(t, store.bookings, 2)
}

func TestBookingServiceUserBookings(t *testing.T) {
	svc, _ := newBookingService([]models.Booking{
		{ID: "a", UserID: "1", Movie: "Дюна"},
		{ID: "b", UserID: "2", Movie: "Дюна"},
		{ID: "c", UserID: "1", Movie: "Интерстеллар"},
	})
	ctx := context.Background()

	got := svc.UserBookings(ctx, "1")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	assert.Empty(t, svc.UserBookings(ctx, "99"))
}

func TestBookingServiceCancel(t *testing.T) {
	svc, store := newBookingService([]models.Booking{
		{ID: "a", UserID: "1", Movie: "Дюна", Session: "s", Seat: "5"},
		{ID: "b", UserID: "1", Movie: "Дюна", Session: "s", Seat: "5"},
	})
	ctx := context.Background()

	// Удаляется только первая запись с совпавшим кортежем
	require.NoError(t, svc.CancelBooking(ctx, "1", "Дюна", "s", "5"))
	require.Len(t, store.bookings, 1)
	assert.Equal(t, "b", store.bookings[0].ID)

	require.NoError(t, svc.CancelBooking(ctx, "1", "Дюна", "s", "5"))
	assert.Empty(t, store.bookings)

	// Повторная отмена того же кортежа
	err := svc.CancelBooking(ctx, "1", "Дюна", "s", "5")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingServiceCancelWrongTuple(t *testing.T) {
	svc, store := newBookingService([]models.Booking{
		{ID: "a", UserID: "1", Movie: "Дюна", Session: "s", Seat: "5"},
	})
	ctx := context.Background()

	assert.ErrorIs(t, svc.CancelBooking(ctx, "2", "Дюна", "s", "5"), ErrBookingNotFound)
	assert.ErrorIs(t, svc.CancelBooking(ctx, "1", "Дюна", "s", "6"), ErrBookingNotFound)
	assert.Len(t, store.bookings, 1)
}
