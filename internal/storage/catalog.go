package storage

import (
	"os"

	"kinobot/internal/models"

	"github.com/rs/zerolog"
)

// CatalogStore хранит список фильмов в одном JSON-файле.
type CatalogStore struct {
	path   string
	logger *zerolog.Logger
}

func NewCatalogStore(path string, logger *zerolog.Logger) *CatalogStore {
	return &CatalogStore{path: path, logger: logger}
}

// Load возвращает весь каталог. Отсутствующий или нечитаемый файл — это
// пустой каталог, а не ошибка: деградация тихая, пользователь видит
// "нет фильмов".
func (s *CatalogStore) Load() []models.Movie {
	var movies []models.Movie
	if err := readCollection(s.path, &movies); err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("catalog load failed, treating as empty")
		}
		return nil
	}
	return movies
}

// Save перезаписывает каталог целиком.
func (s *CatalogStore) Save(movies []models.Movie) error {
	if movies == nil {
		movies = []models.Movie{}
	}
	return writeCollection(s.path, movies)
}
