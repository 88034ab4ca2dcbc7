package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when attempting to register with an existing username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUnauthorized is returned for missing, unknown or expired session tokens.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserNotFound is returned when the user behind a request no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrFoodNotFound is returned when a food id is not in the catalog.
	ErrFoodNotFound = errors.New("food not found")
	// ErrExerciseNotFound is returned when a workout names an unknown exercise.
	ErrExerciseNotFound = errors.New("exercise not found")
	// ErrStorageUnavailable is returned when object storage is not configured.
	ErrStorageUnavailable = errors.New("storage not configured")
)

// ValidationError carries a client-facing description of rejected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
