package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gymboost-server/internal/domain"
	"gymboost-server/internal/repository"
)

const createSettingsTable = `
CREATE TABLE IF NOT EXISTS user_settings (
	user_id INTEGER PRIMARY KEY,
	dark_mode INTEGER NOT NULL DEFAULT 0,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);
`

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSettingsTable); err != nil {
		return fmt.Errorf("create user_settings table: %w", err)
	}
	return nil
}

func (r *SettingsRepository) Get(ctx context.Context, userID int64) (*domain.Settings, error) {
	var s domain.Settings
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, dark_mode, updated_at
FROM user_settings
WHERE user_id = ?`, userID).Scan(&s.UserID, &s.DarkMode, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("settings for user %d: %w", userID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan settings: %w", err)
	}
	return &s, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, settings *domain.Settings) error {
	settings.UpdatedAt = time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, `
INSERT INTO user_settings (user_id, dark_mode, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
	dark_mode = excluded.dark_mode,
	updated_at = excluded.updated_at`,
		settings.UserID,
		settings.DarkMode,
		settings.UpdatedAt,
	); err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
