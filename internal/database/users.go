package database

import (
	"context"
	"fmt"
	"time"

	"kinobot/internal/models"
)

func (db *DB) CreateOrUpdateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (
				telegram_id, username, first_name, last_name,
				is_admin, language_code,
				last_activity, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
              ON CONFLICT(telegram_id) DO UPDATE SET
                username = excluded.username,
                first_name = excluded.first_name,
                last_name = excluded.last_name,
                language_code = excluded.language_code,
                last_activity = excluded.last_activity,
                updated_at = excluded.updated_at`
	lastActivity := user.LastActivity
	if lastActivity.IsZero() {
		lastActivity = time.Now()
	}
	now := time.Now()
	_, err := db.db.ExecContext(ctx, query,
		user.TelegramID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.IsAdmin,
		user.LanguageCode,
		lastActivity,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create or update user: %w", err)
	}
	return nil
}

func (db *DB) UpdateUserActivity(ctx context.Context, telegramID int64) error {
	query := `UPDATE users SET last_activity = ?, updated_at = ? WHERE telegram_id = ?`
	_, err := db.db.ExecContext(ctx, query, time.Now(), time.Now(), telegramID)
	return err
}

func (db *DB) GetUserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	query := `SELECT id, telegram_id, username, first_name, last_name,
	                 is_admin, language_code, last_activity, created_at, updated_at
              FROM users WHERE telegram_id = ?`

	var user models.User
	err := db.db.QueryRowContext(ctx, query, telegramID).Scan(
		&user.ID, &user.TelegramID, &user.Username, &user.FirstName, &user.LastName,
		&user.IsAdmin, &user.LanguageCode, &user.LastActivity, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *DB) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, telegram_id, username, first_name, last_name,
	                 is_admin, language_code, last_activity, created_at, updated_at
              FROM users ORDER BY last_activity DESC`
	return db.queryUsers(ctx, query)
}

func (db *DB) GetActiveUsers(ctx context.Context, days int) ([]*models.User, error) {
	query := `SELECT id, telegram_id, username, first_name, last_name,
	                 is_admin, language_code, last_activity, created_at, updated_at
              FROM users WHERE last_activity >= ? ORDER BY last_activity DESC`
	cutoff := time.Now().AddDate(0, 0, -days)
	return db.queryUsers(ctx, query, cutoff)
}

func (db *DB) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (db *DB) queryUsers(ctx context.Context, query string, args ...interface{}) ([]*models.User, error) {
	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.TelegramID, &user.Username, &user.FirstName, &user.LastName,
			&user.IsAdmin, &user.LanguageCode, &user.LastActivity, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}
