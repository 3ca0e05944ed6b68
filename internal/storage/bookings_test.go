package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"kinobot/internal/models"

	"github.com/rs/zerolog"
)

func newBookingStore(t *testing.T) (*BookingStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookings.json")
	logger := zerolog.New(io.Discard)
	return NewBookingStore(path, &logger), path
}

func TestBookingStoreMissingFile(t *testing.T) {
	store, _ := newBookingStore(t)

	if got := store.Load(); len(got) != 0 {
		t.Errorf("expected empty list for missing file, got %v", got)
	}
}

func TestBookingStoreCorruptFile(t *testing.T) {
	store, path := newBookingStore(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := store.Load(); len(got) != 0 {
		t.Errorf("expected empty list for corrupt file, got %v", got)
	}
}

func TestBookingStoreRoundTrip(t *testing.T) {
	store, _ := newBookingStore(t)

	in := []models.Booking{
		{ID: "abc", UserID: "1", Movie: "Дюна", Session: "2025-12-15 19:00", Seat: "5"},
	}
	if err := store.Save(in); err != nil {
		t.Fatal(err)
	}

	out := store.Load()
	if len(out) != 1 || out[0] != in[0] {
		t.Errorf("round trip mismatch: %v", out)
	}
}

func TestBookingStoreLegacyUserString(t *testing.T) {
	store, path := newBookingStore(t)
	raw := `[{"user": "123", "movie": "Дюна", "session": "2025-12-15 19:00", "seat": "5"}]`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	out := store.Load()
	if len(out) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(out))
	}
	if out[0].UserID != "123" {
		t.Errorf("expected user id 123, got %q", out[0].UserID)
	}
}

func TestBookingStoreLegacyUserObject(t *testing.T) {
	store, path := newBookingStore(t)
	raw := `[
		{"user": {"id": "123"}, "movie": "Дюна", "session": "2025-12-15 19:00", "seat": "5"},
		{"user": {"id": 456}, "movie": "Дюна", "session": "2025-12-15 19:00", "seat": "6"}
	]`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	out := store.Load()
	if len(out) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(out))
	}
	if out[0].UserID != "123" {
		t.Errorf("string id: got %q", out[0].UserID)
	}
	if out[1].UserID != "456" {
		t.Errorf("numeric id: got %q", out[1].UserID)
	}
}

func TestBookingStoreLegacyDerivedID(t *testing.T) {
	store, path := newBookingStore(t)
	raw := `[{"user_id": "1", "movie": "Интерстеллар", "session": "2025-12-15 19:00", "seat": "5"}]`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	out := store.Load()
	if len(out) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(out))
	}
	want := "Инт2025-12-1519:005"
	if out[0].ID != want {
		t.Errorf("derived id = %q, want %q", out[0].ID, want)
	}

	// Записи с настоящим id шим не трогает
	raw = `[{"id": "real-id", "user_id": "1", "movie": "Дюна", "session": "s", "seat": "5"}]`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	out = store.Load()
	if out[0].ID != "real-id" {
		t.Errorf("existing id must be kept, got %q", out[0].ID)
	}
}

func TestLegacyBookingID(t *testing.T) {
	tests := []struct {
		movie, session, seat, want string
	}{
		{"Интерстеллар", "2025-12-15 19:00", "5", "Инт2025-12-1519:005"},
		{"Ы", "a b", "1", "Ыab1"},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		if got := LegacyBookingID(tt.movie, tt.session, tt.seat); got != tt.want {
			t.Errorf("LegacyBookingID(%q, %q, %q) = %q, want %q", tt.movie, tt.session, tt.seat, got, tt.want)
		}
	}
}
