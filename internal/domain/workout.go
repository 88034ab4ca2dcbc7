package domain

import "time"

// Exercise is a catalog entry a workout can reference.
type Exercise struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
}

// Workout is an exercise scheduled by a user on a weekday.
type Workout struct {
	ID         int64
	UserID     int64
	ExerciseID int64
	Name       string
	Sets       int
	Reps       int
	Day        string
	CreatedAt  time.Time
}

// Weekdays lists valid workout days in calendar order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayIndex returns the position of day in Weekdays, or -1.
func WeekdayIndex(day string) int {
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return -1
}
