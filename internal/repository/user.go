package repository

import (
	"context"

	"gymboost-server/internal/domain"
	"gymboost-server/internal/nutrition"
)

// UserRepository defines persistence operations for User entities and
// their nutrition ledger.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ClearFirstLogin(ctx context.Context, id int64) error
	SetAvatarURL(ctx context.Context, id int64, url string) error

	// Fold applies delta to the user's totals and re-derives calories
	// needed in a single atomic statement.
	Fold(ctx context.Context, id int64, delta nutrition.Delta) error
	// SetDailyCalories replaces the goal and re-derives calories needed.
	SetDailyCalories(ctx context.Context, id int64, calories int) error
	// ReplaceTotals overwrites consumed calories and macros and re-derives
	// calories needed.
	ReplaceTotals(ctx context.Context, id int64, caloriesConsumed int, carbs, fat, protein float64) error
	GetLedger(ctx context.Context, id int64) (*domain.Ledger, error)
}
