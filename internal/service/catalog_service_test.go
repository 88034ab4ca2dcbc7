package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gymboost-server/internal/domain"
	"gymboost-server/internal/repository"
)

// =============================================================================
// FoodService
// =============================================================================

func TestFoodService_SearchParams(t *testing.T) {
	var got repository.FoodQuery
	foods := &mockFoodRepository{
		searchFn: func(ctx context.Context, q repository.FoodQuery) ([]domain.FoodReference, error) {
			got = q
			return nil, nil
		},
	}
	svc := NewFoodService(foods, discardLogger())

	tests := []struct {
		name      string
		sort      string
		order     string
		wantSort  repository.FoodSort
		wantDesc  bool
		wantError bool
	}{
		{name: "defaults", wantSort: repository.FoodSortName},
		{name: "calories desc", sort: "calories", order: "desc", wantSort: repository.FoodSortCalories, wantDesc: true},
		{name: "case insensitive", sort: "Name", order: "ASC", wantSort: repository.FoodSortName},
		{name: "bad sort", sort: "protein", wantError: true},
		{name: "bad order", order: "sideways", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = repository.FoodQuery{}
			_, err := svc.Search(context.Background(), "egg", tt.sort, tt.order)

			if tt.wantError {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Errorf("Search() error = %v, want *ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if got.Search != "egg" || got.Sort != tt.wantSort || got.Descending != tt.wantDesc {
				t.Errorf("query = %+v, want sort %q desc %v", got, tt.wantSort, tt.wantDesc)
			}
		})
	}
}

func TestFoodService_Import(t *testing.T) {
	store := newTestStore(t)
	svc := NewFoodService(store.foods, discardLogger())
	ctx := context.Background()

	seed := `[
		{"name": "Scrambled Eggs", "calories": 140,
		 "nutrients": [{"name": "protein", "amount": 100, "unit": "g", "value": 12}]},
		{"name": "White Rice", "serving_amount": 1, "serving_unit": "cup", "calories": 200},
		{"name": "   ", "calories": 1}
	]`

	n, err := svc.Import(ctx, strings.NewReader(seed))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Import() = %d, want 2", n)
	}

	// re-importing replaces by name instead of duplicating
	if _, err := svc.Import(ctx, strings.NewReader(`[{"name": "White Rice", "serving_amount": 1, "serving_unit": "cup", "calories": 210}]`)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	foods, err := svc.Search(ctx, "", "calories", "desc")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(foods) != 2 {
		t.Fatalf("Search() returned %d foods, want 2", len(foods))
	}
	if foods[0].Name != "White Rice" || foods[0].Calories != 210 {
		t.Errorf("first food = %+v, want updated White Rice", foods[0])
	}
	if len(foods[1].Nutrients) != 1 {
		t.Errorf("eggs nutrients = %+v", foods[1].Nutrients)
	}

	if _, err := svc.Import(ctx, strings.NewReader(`{not json`)); err == nil {
		t.Error("Import() of malformed JSON should fail")
	}
}

// =============================================================================
// WorkoutService
// =============================================================================

func seedExercises(t *testing.T, svc WorkoutService) {
	t.Helper()

	seed := `[
		{"name": "Bench Press", "muscle_group": "chest"},
		{"name": "Squat", "muscle_group": "legs"}
	]`
	if n, err := svc.ImportExercises(context.Background(), strings.NewReader(seed)); err != nil || n != 2 {
		t.Fatalf("ImportExercises() = %d, %v", n, err)
	}
}

func TestWorkoutService_SaveAndList(t *testing.T) {
	store := newTestStore(t)
	user := store.addUser(t, "alice")
	svc := NewWorkoutService(store.exercises, store.workouts, discardLogger())
	seedExercises(t, svc)
	ctx := context.Background()

	saves := []struct {
		name string
		day  string
	}{
		{name: "Squat", day: "Friday"},
		{name: "Bench Press", day: "Monday"},
		{name: "Squat", day: "Monday"},
	}
	for _, s := range saves {
		if _, err := svc.Save(ctx, user.ID, s.name, 3, 10, s.day); err != nil {
			t.Fatalf("Save(%s, %s) error = %v", s.name, s.day, err)
		}
	}

	workouts, err := svc.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"Monday/Bench Press", "Monday/Squat", "Friday/Squat"}
	if len(workouts) != len(want) {
		t.Fatalf("List() returned %d workouts, want %d", len(workouts), len(want))
	}
	for i, w := range workouts {
		if got := w.Day + "/" + w.Name; got != want[i] {
			t.Errorf("workouts[%d] = %s, want %s", i, got, want[i])
		}
	}

	other := store.addUser(t, "bob")
	if list, _ := svc.List(ctx, other.ID); len(list) != 0 {
		t.Errorf("other user sees %d workouts, want 0", len(list))
	}
}

func TestWorkoutService_SaveValidation(t *testing.T) {
	store := newTestStore(t)
	user := store.addUser(t, "alice")
	svc := NewWorkoutService(store.exercises, store.workouts, discardLogger())
	seedExercises(t, svc)

	tests := []struct {
		name     string
		exercise string
		sets     int
		reps     int
		day      string
		wantErr  error
	}{
		{name: "missing name", exercise: " ", sets: 3, reps: 10, day: "Monday"},
		{name: "zero sets", exercise: "Squat", sets: 0, reps: 10, day: "Monday"},
		{name: "negative reps", exercise: "Squat", sets: 3, reps: -1, day: "Monday"},
		{name: "lowercase day", exercise: "Squat", sets: 3, reps: 10, day: "monday"},
		{name: "not a day", exercise: "Squat", sets: 3, reps: 10, day: "Someday"},
		{name: "unknown exercise", exercise: "Levitation", sets: 3, reps: 10, day: "Monday", wantErr: ErrExerciseNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), user.ID, tt.exercise, tt.sets, tt.reps, tt.day)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Save() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("Save() error = %v, want *ValidationError", err)
			}
		})
	}
}

// =============================================================================
// SettingsService
// =============================================================================

func TestSettingsService(t *testing.T) {
	store := newTestStore(t)
	user := store.addUser(t, "alice")
	svc := NewSettingsService(store.settings)
	ctx := context.Background()

	settings, err := svc.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if settings.DarkMode {
		t.Error("dark mode should default to off")
	}

	if err := svc.SetDarkMode(ctx, user.ID, true); err != nil {
		t.Fatalf("SetDarkMode() error = %v", err)
	}
	if settings, _ := svc.Get(ctx, user.ID); !settings.DarkMode {
		t.Error("dark mode should be on after SetDarkMode(true)")
	}

	if err := svc.SetDarkMode(ctx, user.ID, false); err != nil {
		t.Fatalf("SetDarkMode() error = %v", err)
	}
	if settings, _ := svc.Get(ctx, user.ID); settings.DarkMode {
		t.Error("dark mode should be off after SetDarkMode(false)")
	}
}
