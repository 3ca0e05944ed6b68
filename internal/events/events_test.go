package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewEventBus()

	var first, second int
	bus.Subscribe(EventMovieAdded, func(e *Event) error {
		first++
		return nil
	})
	bus.Subscribe(EventMovieAdded, func(e *Event) error {
		second++
		return nil
	})
	bus.Subscribe(EventMovieDeleted, func(e *Event) error {
		t.Error("handler for another event type should not fire")
		return nil
	})

	bus.Publish(&Event{Type: EventMovieAdded})

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestPublishSetsCreatedAt(t *testing.T) {
	bus := NewEventBus()

	var got *Event
	bus.Subscribe(EventSessionUpdated, func(e *Event) error {
		got = e
		return nil
	})

	bus.Publish(&Event{Type: EventSessionUpdated})

	require.NotNil(t, got)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestPublishJSONRoundTrip(t *testing.T) {
	bus := NewEventBus()

	var got *Event
	bus.Subscribe(EventBookingCreated, func(e *Event) error {
		got = e
		return nil
	})

	payload := BookingEventPayload{
		BookingID: "abc",
		UserID:    "100",
		Movie:     "Дюна",
		Session:   "2025-12-15 19:00",
		Seat:      "3",
	}
	require.NoError(t, bus.PublishJSON(EventBookingCreated, payload))

	require.NotNil(t, got)
	var decoded BookingEventPayload
	require.NoError(t, json.Unmarshal(got.Payload, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestPublishJSONNilBus(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventBookingCancelled, nil))
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := NewEventBus()
	// Не должно паниковать
	bus.Publish(&Event{Type: EventBookingCancelled})
}
