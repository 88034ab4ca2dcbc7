package domain

import "time"

// DefaultDailyCalories is the goal assigned at registration until the user sets one.
const DefaultDailyCalories = 2000

// User represents an account together with its running nutrition ledger.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FirstLogin   bool
	AvatarURL    *string
	Ledger       Ledger
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Ledger holds the per-user daily totals mutated by fold operations.
type Ledger struct {
	DailyCalories    int
	CaloriesConsumed int
	CaloriesBurned   int
	CaloriesNeeded   int
	Carbs            float64
	Fat              float64
	Protein          float64
}

// CaloriesNeededFor derives the remaining calories for a goal and intake.
func CaloriesNeededFor(daily, consumed int) int {
	if consumed >= daily {
		return 0
	}
	return daily - consumed
}
