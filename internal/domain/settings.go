package domain

import "time"

// Settings stores per-user client preferences.
type Settings struct {
	UserID    int64
	DarkMode  bool
	UpdatedAt time.Time
}
