package service

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"gymboost-server/internal/domain"
	"gymboost-server/internal/nutrition"
	"gymboost-server/internal/repository"
	"gymboost-server/internal/repository/sqlite"
	"gymboost-server/internal/storage"
)

// =============================================================================
// SQLite-backed fixtures
// =============================================================================

type testStore struct {
	db        *sql.DB
	users     repository.UserRepository
	sessions  repository.SessionRepository
	foods     repository.FoodRepository
	exercises repository.ExerciseRepository
	workouts  repository.WorkoutRepository
	settings  repository.SettingsRepository
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "service.db"))
	if err != nil {
		t.Fatalf("sqlite.Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := &testStore{
		db:        db,
		users:     sqlite.NewUserRepository(db),
		sessions:  sqlite.NewSessionRepository(db),
		foods:     sqlite.NewFoodRepository(db),
		exercises: sqlite.NewExerciseRepository(db),
		workouts:  sqlite.NewWorkoutRepository(db),
		settings:  sqlite.NewSettingsRepository(db),
	}

	ctx := context.Background()
	inits := []interface{ Init(context.Context) error }{s.users, s.sessions, s.foods, s.exercises, s.workouts, s.settings}
	for _, repo := range inits {
		if err := repo.Init(ctx); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
	}
	return s
}

func (s *testStore) addUser(t *testing.T, username string) *domain.User {
	t.Helper()

	user := &domain.User{
		Username:     username,
		PasswordHash: "hash",
		FirstLogin:   true,
		Ledger:       domain.Ledger{DailyCalories: domain.DefaultDailyCalories},
	}
	if _, err := s.users.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return user
}

func (s *testStore) addFood(t *testing.T, food domain.FoodReference) int64 {
	t.Helper()

	if err := s.foods.Upsert(context.Background(), &food); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	return food.ID
}

func scrambledEggs() domain.FoodReference {
	return domain.FoodReference{
		Name:     "Scrambled Eggs",
		Calories: 140,
		Nutrients: []domain.Nutrient{
			{Name: "protein", Amount: 100, Unit: "g", Value: 12},
		},
	}
}

func newUserService(s *testStore, clock func() time.Time) UserService {
	sessions := NewSessionAuthority(s.sessions, time.Hour, WithClock(clock))
	return NewUserService(s.users, sessions, bcrypt.MinCost, discardLogger())
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func assertLedgerInvariant(t *testing.T, l *domain.Ledger) {
	t.Helper()

	if want := domain.CaloriesNeededFor(l.DailyCalories, l.CaloriesConsumed); l.CaloriesNeeded != want {
		t.Errorf("CaloriesNeeded = %d, want %d (daily=%d consumed=%d)", l.CaloriesNeeded, want, l.DailyCalories, l.CaloriesConsumed)
	}
	if l.CaloriesConsumed < 0 || l.Carbs < 0 || l.Fat < 0 || l.Protein < 0 {
		t.Errorf("ledger went negative: %+v", l)
	}
}

// =============================================================================
// Mocks
// =============================================================================

type mockUserRepository struct {
	repository.UserRepository

	foldFn          func(ctx context.Context, id int64, delta nutrition.Delta) error
	getLedgerFn     func(ctx context.Context, id int64) (*domain.Ledger, error)
	setDailyFn      func(ctx context.Context, id int64, calories int) error
	replaceTotalsFn func(ctx context.Context, id int64, consumed int, carbs, fat, protein float64) error
	setAvatarURLFn  func(ctx context.Context, id int64, url string) error
}

func (m *mockUserRepository) Fold(ctx context.Context, id int64, delta nutrition.Delta) error {
	if m.foldFn != nil {
		return m.foldFn(ctx, id, delta)
	}
	return nil
}

func (m *mockUserRepository) GetLedger(ctx context.Context, id int64) (*domain.Ledger, error) {
	if m.getLedgerFn != nil {
		return m.getLedgerFn(ctx, id)
	}
	return &domain.Ledger{}, nil
}

func (m *mockUserRepository) SetDailyCalories(ctx context.Context, id int64, calories int) error {
	if m.setDailyFn != nil {
		return m.setDailyFn(ctx, id, calories)
	}
	return nil
}

func (m *mockUserRepository) ReplaceTotals(ctx context.Context, id int64, consumed int, carbs, fat, protein float64) error {
	if m.replaceTotalsFn != nil {
		return m.replaceTotalsFn(ctx, id, consumed, carbs, fat, protein)
	}
	return nil
}

func (m *mockUserRepository) SetAvatarURL(ctx context.Context, id int64, url string) error {
	if m.setAvatarURLFn != nil {
		return m.setAvatarURLFn(ctx, id, url)
	}
	return nil
}

type mockFoodRepository struct {
	repository.FoodRepository

	getFn    func(ctx context.Context, id int64) (*domain.FoodReference, error)
	searchFn func(ctx context.Context, q repository.FoodQuery) ([]domain.FoodReference, error)
}

func (m *mockFoodRepository) Get(ctx context.Context, id int64) (*domain.FoodReference, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockFoodRepository) Search(ctx context.Context, q repository.FoodQuery) ([]domain.FoodReference, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return nil, nil
}

type mockStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string

	putErr    error
	listErr   error
	deleteErr error
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (m *mockStorage) PutObject(_ context.Context, body io.Reader, opts storage.PutOptions) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[opts.Key] = data
	m.types[opts.Key] = opts.ContentType
	return m.ObjectURL(opts.Key), nil
}

func (m *mockStorage) ListObjects(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.ObjectInfo
	for key, data := range m.objects {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	return out, nil
}

func (m *mockStorage) DeleteObjects(_ context.Context, keys ...string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.objects, key)
		delete(m.types, key)
	}
	return nil
}

func (m *mockStorage) ObjectURL(key string) string {
	return "https://cdn.test/" + key
}
