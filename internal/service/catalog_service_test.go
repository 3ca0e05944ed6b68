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

type fakeCatalogStore struct {
	movies []models.Movie
	saves  int
}

func (f *fakeCatalogStore) Load() []models.Movie {
	out := make([]models.Movie, len(f.movies))
	copy(out, f.movies)
	return out
}

func (f *fakeCatalogStore) Save(movies []models.Movie) error {
	f.saves++
	f.movies = movies
	return nil
}

func newCatalogService(movies []models.Movie) (*CatalogService, *fakeCatalogStore) {
	logger := zerolog.New(io.Discard)
	store := &fakeCatalogStore{movies: movies}
	return NewCatalogService(store, events.NewEventBus(), &logger), store
}

func TestCatalogServiceAddMovie(t *testing.T) {
	svc, store := newCatalogService(nil)
	ctx := context.Background()

	movie := models.Movie{Title: "Дюна", Sessions: []models.Session{{Date: "2025-12-15", Time: "19:00"}}}
	require.NoError(t, svc.AddMovie(ctx, movie))

	assert.Len(t, store.movies, 1)
	assert.Equal(t, "Дюна", store.movies[0].Title)
}

func TestCatalogServiceAddMovieDuplicate(t *testing.T) {
	svc, store := newCatalogService([]models.Movie{{Title: "Дюна"}})
	ctx := context.Background()

	err := svc.AddMovie(ctx, models.Movie{Title: "ДЮНА"})
	assert.ErrorIs(t, err, ErrMovieExists)
	assert.Len(t, store.movies, 1)
	assert.Zero(t, store.saves)
}

func TestCatalogServiceMovieByTitle(t *testing.T) {
	svc, _ := newCatalogService([]models.Movie{{Title: "Дюна"}})
	ctx := context.Background()

	m, ok := svc.MovieByTitle(ctx, "Дюна")
	require.True(t, ok)
	assert.Equal(t, "Дюна", m.Title)

	// Поиск регистрозависимый, в отличие от проверки конфликта
	_, ok = svc.MovieByTitle(ctx, "дюна")
	assert.False(t, ok)
}

func TestCatalogServiceDeleteMovie(t *testing.T) {
	svc, store := newCatalogService([]models.Movie{{Title: "Дюна"}, {Title: "Интерстеллар"}})
	ctx := context.Background()

	require.NoError(t, svc.DeleteMovie(ctx, "Дюна"))
	assert.Len(t, store.movies, 1)
	assert.Equal(t, "Интерстеллар", store.movies[0].Title)

	err := svc.DeleteMovie(ctx, "Дюна")
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestCatalogServiceUpdateSession(t *testing.T) {
	svc, store := newCatalogService([]models.Movie{
		{Title: "Дюна", Sessions: []models.Session{
			{Date: "2025-12-15", Time: "19:00"},
			{Date: "2025-12-16", Time: "21:00"},
		}},
	})
	ctx := context.Background()

	require.NoError(t, svc.UpdateSession(ctx, "дюна", 1, "2025-12-25", "22:00"))

	assert.Equal(t, models.Session{Date: "2025-12-25", Time: "22:00"}, store.movies[0].Sessions[1])
	assert.Equal(t, models.Session{Date: "2025-12-15", Time: "19:00"}, store.movies[0].Sessions[0])
}

func TestCatalogServiceUpdateSessionOutOfBounds(t *testing.T) {
	svc, store := newCatalogService([]models.Movie{
		{Title: "Дюна", Sessions: []models.Session{{Date: "2025-12-15", Time: "19:00"}}},
	})
	ctx := context.Background()

	assert.ErrorIs(t, svc.UpdateSession(ctx, "Дюна", 5, "d", "t"), ErrSessionNotFound)
	assert.ErrorIs(t, svc.UpdateSession(ctx, "Дюна", -1, "d", "t"), ErrSessionNotFound)
	// Стор не перезаписывался
	assert.Zero(t, store.saves)
}

func TestCatalogServiceUpdateSessionUnknownMovie(t *testing.T) {
	svc, store := newCatalogService([]models.Movie{{Title: "Дюна"}})
	ctx := context.Background()

	assert.ErrorIs(t, svc.UpdateSession(ctx, "Нет такого", 0, "d", "t"), ErrMovieNotFound)
	assert.Zero(t, store.saves)
}
