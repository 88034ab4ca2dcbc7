package repository

import (
	"context"

	"gymboost-server/internal/domain"
)

// ExerciseRepository exposes the exercise catalog.
type ExerciseRepository interface {
	Init(ctx context.Context) error
	Upsert(ctx context.Context, exercise *domain.Exercise) error
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
}

// WorkoutRepository persists scheduled workouts.
type WorkoutRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, workout *domain.Workout) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Workout, error)
}
