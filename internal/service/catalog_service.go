package service

import (
	"context"
	"strings"
	"sync"

	"kinobot/internal/domain"
	"kinobot/internal/events"
	"kinobot/internal/models"

	"github.com/rs/zerolog"
)

// CatalogService реализует мутации каталога поверх файлового стора.
// Каждая мутация — это полный цикл "прочитать список, изменить, записать";
// мьютекс закрывает весь цикл, чтобы параллельные горутины (HTTP API,
// бэкапы) не потеряли чужие обновления.
type CatalogService struct {
	store    domain.CatalogStore
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	mu       sync.Mutex
}

func NewCatalogService(store domain.CatalogStore, eventBus domain.EventPublisher, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *CatalogService) Movies(ctx context.Context) []models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load()
}

// MovieByTitle ищет фильм по точному совпадению названия.
func (s *CatalogService) MovieByTitle(ctx context.Context, title string) (models.Movie, bool) {
	for _, m := range s.Movies(ctx) {
		if m.Title == title {
			return m, true
		}
	}
	return models.Movie{}, false
}

// AddMovie добавляет фильм целиком: частичные списки сеансов никогда не
// попадают в стор. Дубликат названия без учета регистра — конфликт.
func (s *CatalogService) AddMovie(ctx context.Context, movie models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	movies := s.store.Load()
	for _, m := range movies {
		if strings.EqualFold(m.Title, movie.Title) {
			return ErrMovieExists
		}
	}

	movies = append(movies, movie)
	if err := s.store.Save(movies); err != nil {
		s.logger.Error().Err(err).Str("title", movie.Title).Msg("failed to save catalog")
		return err
	}

	_ = s.eventBus.PublishJSON(events.EventMovieAdded, events.CatalogEventPayload{
		Title:        movie.Title,
		SessionCount: len(movie.Sessions),
	})

	return nil
}

// DeleteMovie удаляет фильм по точному совпадению названия. Бронирования,
// ссылающиеся на фильм, остаются: связь денормализована.
func (s *CatalogService) DeleteMovie(ctx context.Context, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	movies := s.store.Load()
	kept := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if m.Title != title {
			kept = append(kept, m)
		}
	}

	if len(kept) == len(movies) {
		return ErrMovieNotFound
	}

	if err := s.store.Save(kept); err != nil {
		s.logger.Error().Err(err).Str("title", title).Msg("failed to save catalog")
		return err
	}

	_ = s.eventBus.PublishJSON(events.EventMovieDeleted, events.CatalogEventPayload{Title: title})

	return nil
}

// UpdateSession правит сеанс по индексу на месте. Название сравнивается без
// учета регистра. Неизвестное название или индекс вне границ — отказ без
// записи, файл каталога не меняется.
func (s *CatalogService) UpdateSession(ctx context.Context, title string, index int, date, timeStr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	movies := s.store.Load()
	for i, m := range movies {
		if !strings.EqualFold(m.Title, title) {
			continue
		}

		if index < 0 || index >= len(m.Sessions) {
			return ErrSessionNotFound
		}

		movies[i].Sessions[index].Date = date
		movies[i].Sessions[index].Time = timeStr

		if err := s.store.Save(movies); err != nil {
			s.logger.Error().Err(err).Str("title", title).Msg("failed to save catalog")
			return err
		}

		_ = s.eventBus.PublishJSON(events.EventSessionUpdated, events.CatalogEventPayload{
			Title:        m.Title,
			SessionIndex: index,
		})

		return nil
	}

	return ErrMovieNotFound
}
