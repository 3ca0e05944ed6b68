package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"kinobot/internal/models"

	"github.com/rs/zerolog"
)

func newCatalogStore(t *testing.T) (*CatalogStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.json")
	logger := zerolog.New(io.Discard)
	return NewCatalogStore(path, &logger), path
}

func TestCatalogStoreMissingFile(t *testing.T) {
	store, _ := newCatalogStore(t)

	if got := store.Load(); len(got) != 0 {
		t.Errorf("expected empty catalog for missing file, got %v", got)
	}
}

func TestCatalogStoreCorruptFile(t *testing.T) {
	store, path := newCatalogStore(t)
	if err := os.WriteFile(path, []byte("oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := store.Load(); len(got) != 0 {
		t.Errorf("expected empty catalog for corrupt file, got %v", got)
	}
}

func TestCatalogStoreRoundTrip(t *testing.T) {
	store, _ := newCatalogStore(t)

	in := []models.Movie{
		{Title: "Дюна", Sessions: []models.Session{{Date: "2025-12-15", Time: "19:00"}}},
		{Title: "Без сеансов"},
	}
	if err := store.Save(in); err != nil {
		t.Fatal(err)
	}

	out := store.Load()
	if len(out) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(out))
	}
	if out[0].Title != "Дюна" || len(out[0].Sessions) != 1 {
		t.Errorf("unexpected movie: %+v", out[0])
	}
}

func TestCatalogStoreSaveCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deep", "movies.json")
	logger := zerolog.New(io.Discard)
	store := NewCatalogStore(path, &logger)

	if err := store.Save([]models.Movie{{Title: "Дюна"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file created: %v", err)
	}
}

func TestCatalogStoreNilSavesEmptyList(t *testing.T) {
	store, path := newCatalogStore(t)

	if err := store.Save(nil); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("expected empty JSON array on disk, got %q", string(data))
	}
}
