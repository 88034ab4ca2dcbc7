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

const (
	createExercisesTable = `
CREATE TABLE IF NOT EXISTS exercises (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	muscle_group TEXT NOT NULL DEFAULT ''
);
`
	createWorkoutsTable = `
CREATE TABLE IF NOT EXISTS workouts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	exercise_id INTEGER NOT NULL,
	sets INTEGER NOT NULL,
	reps INTEGER NOT NULL,
	day TEXT NOT NULL,
	day_index INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY(exercise_id) REFERENCES exercises(id)
);
CREATE INDEX IF NOT EXISTS idx_workouts_user_id ON workouts(user_id);
`
)

type ExerciseRepository struct {
	db *sql.DB
}

func NewExerciseRepository(db *sql.DB) repository.ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createExercisesTable); err != nil {
		return fmt.Errorf("create exercises table: %w", err)
	}
	return nil
}

func (r *ExerciseRepository) Upsert(ctx context.Context, exercise *domain.Exercise) error {
	row := r.db.QueryRowContext(ctx, `
INSERT INTO exercises (name, muscle_group)
VALUES (?, ?)
ON CONFLICT(name) DO UPDATE SET muscle_group = excluded.muscle_group
RETURNING id`,
		exercise.Name,
		exercise.MuscleGroup,
	)
	if err := row.Scan(&exercise.ID); err != nil {
		return fmt.Errorf("upsert exercise %s: %w", exercise.Name, err)
	}
	return nil
}

func (r *ExerciseRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	var ex domain.Exercise
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, muscle_group
FROM exercises
WHERE name = ?`, name).Scan(&ex.ID, &ex.Name, &ex.MuscleGroup)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("exercise %s: %w", name, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan exercise: %w", err)
	}
	return &ex, nil
}

type WorkoutRepository struct {
	db *sql.DB
}

func NewWorkoutRepository(db *sql.DB) repository.WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createWorkoutsTable); err != nil {
		return fmt.Errorf("create workouts table: %w", err)
	}
	return nil
}

func (r *WorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (int64, error) {
	workout.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO workouts (user_id, exercise_id, sets, reps, day, day_index, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		workout.UserID,
		workout.ExerciseID,
		workout.Sets,
		workout.Reps,
		workout.Day,
		domain.WeekdayIndex(workout.Day),
		workout.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert workout: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("workout last insert id: %w", err)
	}
	workout.ID = id
	return id, nil
}

func (r *WorkoutRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Workout, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT w.id, w.user_id, w.exercise_id, e.name, w.sets, w.reps, w.day, w.created_at
FROM workouts w
JOIN exercises e ON e.id = w.exercise_id
WHERE w.user_id = ?
ORDER BY w.day_index ASC, w.id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	defer rows.Close()

	workouts := []domain.Workout{}
	for rows.Next() {
		var w domain.Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.ExerciseID, &w.Name, &w.Sets, &w.Reps, &w.Day, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}
