package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"gymboost-server/internal/domain"
	"gymboost-server/internal/repository"
)

// WorkoutService schedules catalog exercises on weekdays.
type WorkoutService interface {
	Save(ctx context.Context, userID int64, name string, sets, reps int, day string) (*domain.Workout, error)
	List(ctx context.Context, userID int64) ([]domain.Workout, error)
	ImportExercises(ctx context.Context, r io.Reader) (int, error)
}

type workoutService struct {
	exercises repository.ExerciseRepository
	workouts  repository.WorkoutRepository
	log       logrus.FieldLogger
}

func NewWorkoutService(exercises repository.ExerciseRepository, workouts repository.WorkoutRepository, log logrus.FieldLogger) WorkoutService {
	return &workoutService{
		exercises: exercises,
		workouts:  workouts,
		log:       log,
	}
}

func (s *workoutService) Save(ctx context.Context, userID int64, name string, sets, reps int, day string) (*domain.Workout, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("Exercise name is required.")
	}
	if sets <= 0 || reps <= 0 {
		return nil, invalid("Sets and reps must be positive numbers.")
	}
	if domain.WeekdayIndex(day) < 0 {
		return nil, invalid("Invalid day %q; expected one of %s.", day, strings.Join(domain.Weekdays, ", "))
	}

	exercise, err := s.exercises.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	workout := &domain.Workout{
		UserID:     userID,
		ExerciseID: exercise.ID,
		Name:       exercise.Name,
		Sets:       sets,
		Reps:       reps,
		Day:        day,
	}
	if _, err := s.workouts.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) List(ctx context.Context, userID int64) ([]domain.Workout, error) {
	return s.workouts.ListByUser(ctx, userID)
}

func (s *workoutService) ImportExercises(ctx context.Context, r io.Reader) (int, error) {
	var exercises []domain.Exercise
	if err := json.NewDecoder(r).Decode(&exercises); err != nil {
		return 0, fmt.Errorf("decode exercise catalog: %w", err)
	}

	imported := 0
	for i := range exercises {
		ex := &exercises[i]
		ex.Name = strings.TrimSpace(ex.Name)
		if ex.Name == "" {
			s.log.WithField("index", i).Warn("skipping exercise without a name")
			continue
		}
		if err := s.exercises.Upsert(ctx, ex); err != nil {
			return imported, err
		}
		imported++
	}

	s.log.WithField("count", imported).Info("exercise catalog imported")
	return imported, nil
}
