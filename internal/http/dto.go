package http

import "gymboost-server/internal/domain"

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateCaloriesRequest struct {
	DailyCalories *int `json:"daily_calories"`
	// accepted for older clients; the server derives it
	CaloriesNeeded *int `json:"calories_needed"`
}

type caloriesNeededRequest struct {
	FoodCalories *float64 `json:"food_calories"`
	Protein      float64  `json:"protein"`
	Fat          float64  `json:"fat"`
	Carbs        float64  `json:"carbs"`
}

type nutritionRequest struct {
	CaloriesConsumed *int     `json:"calories_consumed"`
	Carbs            *float64 `json:"carbs"`
	Fat              *float64 `json:"fat"`
	Protein          *float64 `json:"protein"`
}

type mealItemRequest struct {
	FoodID   int64   `json:"food_id"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type clearMealRequest struct {
	Items []mealItemRequest `json:"items"`
}

type saveWorkoutRequest struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps int    `json:"reps"`
	Day  string `json:"day"`
}

type darkModeRequest struct {
	DarkMode *bool `json:"dark_mode"`
}

type LedgerResponse struct {
	DailyCalories    int     `json:"daily_calories"`
	CaloriesConsumed int     `json:"calories_consumed"`
	CaloriesBurned   int     `json:"calories_burned"`
	CaloriesNeeded   int     `json:"calories_needed"`
	Carbs            float64 `json:"carbs"`
	Fat              float64 `json:"fat"`
	Protein          float64 `json:"protein"`
}

type ProfileResponse struct {
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

type WorkoutResponse struct {
	ID           int64  `json:"id"`
	ExerciseName string `json:"exercise_name"`
	Sets         int    `json:"sets"`
	Reps         int    `json:"reps"`
	Day          string `json:"day"`
}

func ledgerToResponse(l domain.Ledger) LedgerResponse {
	return LedgerResponse{
		DailyCalories:    l.DailyCalories,
		CaloriesConsumed: l.CaloriesConsumed,
		CaloriesBurned:   l.CaloriesBurned,
		CaloriesNeeded:   l.CaloriesNeeded,
		Carbs:            l.Carbs,
		Fat:              l.Fat,
		Protein:          l.Protein,
	}
}

func workoutToResponse(w domain.Workout) WorkoutResponse {
	return WorkoutResponse{
		ID:           w.ID,
		ExerciseName: w.Name,
		Sets:         w.Sets,
		Reps:         w.Reps,
		Day:          w.Day,
	}
}
