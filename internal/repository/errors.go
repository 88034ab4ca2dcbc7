package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("record already exists")
	// ErrOutOfRange is returned when a write would push a value past its bound.
	ErrOutOfRange = errors.New("value out of range")
)
