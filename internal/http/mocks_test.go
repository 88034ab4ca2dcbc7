package http

import (
	"context"
	"errors"
	"io"

	"gymboost-server/internal/domain"
	"gymboost-server/internal/nutrition"
	"gymboost-server/internal/service"
)

// =============================================================================
// Service mocks
// =============================================================================

var errNotImplemented = errors.New("not implemented")

type mockSessions struct {
	service.SessionAuthority

	validateFn func(ctx context.Context, token string) (int64, error)
}

func (m *mockSessions) Validate(ctx context.Context, token string) (int64, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, token)
	}
	return 0, service.ErrUnauthorized
}

type mockUsers struct {
	registerFn func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*service.LoginResult, error)
	logoutFn   func(ctx context.Context, userID int64) error
	getByIDFn  func(ctx context.Context, id int64) (*domain.User, error)
}

func (m *mockUsers) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, username, password)
	}
	return nil, errNotImplemented
}

func (m *mockUsers) Login(ctx context.Context, username, password string) (*service.LoginResult, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return nil, errNotImplemented
}

func (m *mockUsers) Logout(ctx context.Context, userID int64) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, userID)
	}
	return nil
}

func (m *mockUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, errNotImplemented
}

type mockLedger struct {
	calls int

	addFoodFn         func(ctx context.Context, userID, foodID int64, quantity float64, unit string) (*domain.Ledger, error)
	addContributionFn func(ctx context.Context, userID int64, delta nutrition.Delta) error
	clearMealFn       func(ctx context.Context, userID int64, items []service.MealItem) (*domain.Ledger, error)
	setDailyGoalFn    func(ctx context.Context, userID int64, calories int) error
	reconcileFn       func(ctx context.Context, userID int64, totals service.Totals) error
	snapshotFn        func(ctx context.Context, userID int64) (*domain.Ledger, error)
}

func (m *mockLedger) AddFood(ctx context.Context, userID, foodID int64, quantity float64, unit string) (*domain.Ledger, error) {
	m.calls++
	if m.addFoodFn != nil {
		return m.addFoodFn(ctx, userID, foodID, quantity, unit)
	}
	return nil, errNotImplemented
}

func (m *mockLedger) AddContribution(ctx context.Context, userID int64, delta nutrition.Delta) error {
	m.calls++
	if m.addContributionFn != nil {
		return m.addContributionFn(ctx, userID, delta)
	}
	return errNotImplemented
}

func (m *mockLedger) ClearMeal(ctx context.Context, userID int64, items []service.MealItem) (*domain.Ledger, error) {
	m.calls++
	if m.clearMealFn != nil {
		return m.clearMealFn(ctx, userID, items)
	}
	return nil, errNotImplemented
}

func (m *mockLedger) SetDailyGoal(ctx context.Context, userID int64, calories int) error {
	m.calls++
	if m.setDailyGoalFn != nil {
		return m.setDailyGoalFn(ctx, userID, calories)
	}
	return errNotImplemented
}

func (m *mockLedger) Reconcile(ctx context.Context, userID int64, totals service.Totals) error {
	m.calls++
	if m.reconcileFn != nil {
		return m.reconcileFn(ctx, userID, totals)
	}
	return errNotImplemented
}

func (m *mockLedger) Snapshot(ctx context.Context, userID int64) (*domain.Ledger, error) {
	m.calls++
	if m.snapshotFn != nil {
		return m.snapshotFn(ctx, userID)
	}
	return nil, errNotImplemented
}

type mockFoods struct {
	service.FoodService

	searchFn func(ctx context.Context, search, sort, order string) ([]domain.FoodReference, error)
}

func (m *mockFoods) Search(ctx context.Context, search, sort, order string) ([]domain.FoodReference, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, search, sort, order)
	}
	return nil, errNotImplemented
}

type mockWorkouts struct {
	service.WorkoutService

	saveFn func(ctx context.Context, userID int64, name string, sets, reps int, day string) (*domain.Workout, error)
	listFn func(ctx context.Context, userID int64) ([]domain.Workout, error)
}

func (m *mockWorkouts) Save(ctx context.Context, userID int64, name string, sets, reps int, day string) (*domain.Workout, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, userID, name, sets, reps, day)
	}
	return nil, errNotImplemented
}

func (m *mockWorkouts) List(ctx context.Context, userID int64) ([]domain.Workout, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, errNotImplemented
}

type mockSettings struct {
	darkMode map[int64]bool
}

func (m *mockSettings) Get(ctx context.Context, userID int64) (*domain.Settings, error) {
	return &domain.Settings{UserID: userID, DarkMode: m.darkMode[userID]}, nil
}

func (m *mockSettings) SetDarkMode(ctx context.Context, userID int64, enabled bool) error {
	if m.darkMode == nil {
		m.darkMode = make(map[int64]bool)
	}
	m.darkMode[userID] = enabled
	return nil
}

type mockAvatars struct {
	uploadFn func(ctx context.Context, userID int64, body io.Reader, size int64) (string, error)
}

func (m *mockAvatars) Upload(ctx context.Context, userID int64, body io.Reader, size int64) (string, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, userID, body, size)
	}
	return "", errNotImplemented
}
