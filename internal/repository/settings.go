package repository

import (
	"context"

	"gymboost-server/internal/domain"
)

// SettingsRepository persists per-user preferences.
type SettingsRepository interface {
	Init(ctx context.Context) error
	Get(ctx context.Context, userID int64) (*domain.Settings, error)
	Upsert(ctx context.Context, settings *domain.Settings) error
}
