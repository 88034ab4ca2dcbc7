package service

import (
	"context"
	"errors"

	"gymboost-server/internal/domain"
	"gymboost-server/internal/repository"
)

// SettingsService stores client preferences per user rather than per device.
type SettingsService interface {
	Get(ctx context.Context, userID int64) (*domain.Settings, error)
	SetDarkMode(ctx context.Context, userID int64, enabled bool) error
}

type settingsService struct {
	settings repository.SettingsRepository
}

func NewSettingsService(settings repository.SettingsRepository) SettingsService {
	return &settingsService{settings: settings}
}

// Get returns defaults for users that never saved a preference.
func (s *settingsService) Get(ctx context.Context, userID int64) (*domain.Settings, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.Settings{UserID: userID}, nil
		}
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) SetDarkMode(ctx context.Context, userID int64, enabled bool) error {
	return s.settings.Upsert(ctx, &domain.Settings{UserID: userID, DarkMode: enabled})
}
