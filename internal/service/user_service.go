package service

import (
	"context"

	"kinobot/internal/database"
	"kinobot/internal/models"

	"github.com/rs/zerolog"
)

// UserService — учёт пользователей бота поверх sqlite.
type UserService struct {
	db     *database.DB
	logger *zerolog.Logger
}

func NewUserService(db *database.DB, logger *zerolog.Logger) *UserService {
	return &UserService{
		db:     db,
		logger: logger,
	}
}

func (s *UserService) SaveUser(ctx context.Context, user *models.User) error {
	return s.db.CreateOrUpdateUser(ctx, user)
}

func (s *UserService) UpdateUserActivity(ctx context.Context, telegramID int64) error {
	return s.db.UpdateUserActivity(ctx, telegramID)
}

func (s *UserService) CountUsers(ctx context.Context) (int, error) {
	return s.db.CountUsers(ctx)
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.db.GetAllUsers(ctx)
}

func (s *UserService) GetActiveUsers(ctx context.Context, days int) ([]*models.User, error) {
	return s.db.GetActiveUsers(ctx, days)
}
