package service

import (
	"context"
	"errors"
	"math"

	"gymboost-server/internal/domain"
	"gymboost-server/internal/nutrition"
	"gymboost-server/internal/repository"
)

const (
	MinDailyCalories = 1000
	MaxDailyCalories = 10000
)

// MealItem identifies a previously logged food contribution.
type MealItem struct {
	FoodID   int64
	Quantity float64
	Unit     string
}

// Totals is a client-reported ledger state used for reconciliation.
type Totals struct {
	CaloriesConsumed int
	Carbs            float64
	Fat              float64
	Protein          float64
}

// LedgerService maintains per-user calorie and macro totals. Every mutation
// is a single fold against the stored row; callers are expected to have
// passed the session gate already.
type LedgerService interface {
	AddFood(ctx context.Context, userID, foodID int64, quantity float64, unit string) (*domain.Ledger, error)
	AddContribution(ctx context.Context, userID int64, delta nutrition.Delta) error
	ClearMeal(ctx context.Context, userID int64, items []MealItem) (*domain.Ledger, error)
	SetDailyGoal(ctx context.Context, userID int64, calories int) error
	Reconcile(ctx context.Context, userID int64, totals Totals) error
	Snapshot(ctx context.Context, userID int64) (*domain.Ledger, error)
}

type ledgerService struct {
	users repository.UserRepository
	foods repository.FoodRepository
}

func NewLedgerService(users repository.UserRepository, foods repository.FoodRepository) LedgerService {
	return &ledgerService{
		users: users,
		foods: foods,
	}
}

// AddFood is additive: submitting the same food twice counts it twice.
func (s *ledgerService) AddFood(ctx context.Context, userID, foodID int64, quantity float64, unit string) (*domain.Ledger, error) {
	delta, err := s.contribution(ctx, MealItem{FoodID: foodID, Quantity: quantity, Unit: unit})
	if err != nil {
		return nil, err
	}
	if err := s.fold(ctx, userID, delta); err != nil {
		return nil, err
	}
	return s.Snapshot(ctx, userID)
}

func (s *ledgerService) AddContribution(ctx context.Context, userID int64, delta nutrition.Delta) error {
	if delta.Calories < 0 || delta.Carbs < 0 || delta.Fat < 0 || delta.Protein < 0 {
		return invalid("Calories and macros must not be negative.")
	}
	if err := nutrition.CheckDelta(delta); err != nil {
		return scaleInvalid(err)
	}
	return s.fold(ctx, userID, delta)
}

// ClearMeal subtracts the summed contributions of items from the current
// totals. It is an approximate inverse: totals clamp at zero, so removing
// more than was logged does not restore an exact earlier state.
func (s *ledgerService) ClearMeal(ctx context.Context, userID int64, items []MealItem) (*domain.Ledger, error) {
	deltas := make([]nutrition.Delta, 0, len(items))
	for _, item := range items {
		d, err := s.contribution(ctx, item)
		if err != nil {
			return nil, err
		}
		deltas = append(deltas, d)
	}

	total := nutrition.Sum(deltas...)
	if err := nutrition.CheckDelta(total); err != nil {
		return nil, scaleInvalid(err)
	}
	if !total.IsZero() {
		if err := s.fold(ctx, userID, total.Negate()); err != nil {
			return nil, err
		}
	}
	return s.Snapshot(ctx, userID)
}

func (s *ledgerService) SetDailyGoal(ctx context.Context, userID int64, calories int) error {
	if calories < MinDailyCalories || calories > MaxDailyCalories {
		return invalid("Daily calories must be between %d and %d.", MinDailyCalories, MaxDailyCalories)
	}
	return mapUserErr(s.users.SetDailyCalories(ctx, userID, calories))
}

func (s *ledgerService) Reconcile(ctx context.Context, userID int64, totals Totals) error {
	if totals.CaloriesConsumed < 0 || totals.Carbs < 0 || totals.Fat < 0 || totals.Protein < 0 {
		return invalid("Nutrition totals must not be negative.")
	}
	if !finite(totals.Carbs, totals.Fat, totals.Protein) {
		return invalid("Nutrition totals must be finite numbers.")
	}
	if totals.CaloriesConsumed > nutrition.MaxTotalCalories ||
		totals.Carbs > nutrition.MaxTotalGrams || totals.Fat > nutrition.MaxTotalGrams || totals.Protein > nutrition.MaxTotalGrams {
		return invalid("Nutrition totals may not exceed %d calories or %d g per macro.", nutrition.MaxTotalCalories, nutrition.MaxTotalGrams)
	}
	return mapUserErr(s.users.ReplaceTotals(ctx, userID, totals.CaloriesConsumed, totals.Carbs, totals.Fat, totals.Protein))
}

func (s *ledgerService) Snapshot(ctx context.Context, userID int64) (*domain.Ledger, error) {
	ledger, err := s.users.GetLedger(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return ledger, nil
}

func (s *ledgerService) fold(ctx context.Context, userID int64, delta nutrition.Delta) error {
	return mapUserErr(s.users.Fold(ctx, userID, delta))
}

func (s *ledgerService) contribution(ctx context.Context, item MealItem) (nutrition.Delta, error) {
	food, err := s.foods.Get(ctx, item.FoodID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nutrition.Delta{}, ErrFoodNotFound
		}
		return nutrition.Delta{}, err
	}

	delta, err := nutrition.Scale(*food, item.Quantity, item.Unit)
	if err != nil {
		return nutrition.Delta{}, scaleInvalid(err)
	}
	return delta, nil
}

func scaleInvalid(err error) error {
	var scaleErr *nutrition.ScaleError
	if errors.As(err, &scaleErr) {
		return &ValidationError{Message: scaleErr.Reason}
	}
	return err
}

func mapUserErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrOutOfRange):
		return invalid("Daily totals may not exceed %d calories or %d g per macro.", nutrition.MaxTotalCalories, nutrition.MaxTotalGrams)
	}
	return err
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
