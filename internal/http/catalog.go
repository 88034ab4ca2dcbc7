package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymboost-server/internal/domain"
)

func (h *Handler) searchFoods(c *gin.Context) {
	foods, err := h.svc.Foods.Search(c.Request.Context(), c.Query("search"), c.Query("sort"), c.Query("order"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if foods == nil {
		foods = []domain.FoodReference{}
	}
	c.JSON(http.StatusOK, gin.H{"data": foods})
}

func (h *Handler) saveWorkout(c *gin.Context) {
	var req saveWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if _, err := h.svc.Workouts.Save(c.Request.Context(), currentUserID(c), req.Name, req.Sets, req.Reps, req.Day); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Workout saved successfully"})
}

func (h *Handler) getWorkouts(c *gin.Context) {
	workouts, err := h.svc.Workouts.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		resp[i] = workoutToResponse(workouts[i])
	}
	c.JSON(http.StatusOK, resp)
}
