package http

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"gymboost-server/internal/nutrition"
	"gymboost-server/internal/service"
)

func (h *Handler) caloriesData(c *gin.Context) {
	ledger, err := h.svc.Ledger.Snapshot(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledgerToResponse(*ledger))
}

// updateCalories sets the daily goal. Any calories_needed in the body is
// ignored; it is always recomputed from the stored totals.
func (h *Handler) updateCalories(c *gin.Context) {
	var req updateCaloriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.DailyCalories == nil {
		badRequest(c, "daily_calories is required.")
		return
	}

	if err := h.svc.Ledger.SetDailyGoal(c.Request.Context(), currentUserID(c), *req.DailyCalories); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Calories updated successfully"})
}

func (h *Handler) updateCaloriesNeeded(c *gin.Context) {
	var req caloriesNeededRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.FoodCalories == nil {
		badRequest(c, "food_calories is required.")
		return
	}
	if math.IsNaN(*req.FoodCalories) || math.IsInf(*req.FoodCalories, 0) {
		badRequest(c, "food_calories must be a number.")
		return
	}
	if math.Abs(*req.FoodCalories) > nutrition.MaxDeltaCalories {
		badRequest(c, "Calories are too large for a single entry.")
		return
	}

	delta := nutrition.Delta{
		Calories: int(math.Round(*req.FoodCalories)),
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Protein:  req.Protein,
	}
	if err := h.svc.Ledger.AddContribution(c.Request.Context(), currentUserID(c), delta); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Calories needed updated successfully"})
}

func (h *Handler) updateNutrition(c *gin.Context) {
	var req nutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.CaloriesConsumed == nil || req.Carbs == nil || req.Fat == nil || req.Protein == nil {
		badRequest(c, "calories_consumed, carbs, fat and protein are required.")
		return
	}

	totals := service.Totals{
		CaloriesConsumed: *req.CaloriesConsumed,
		Carbs:            *req.Carbs,
		Fat:              *req.Fat,
		Protein:          *req.Protein,
	}
	if err := h.svc.Ledger.Reconcile(c.Request.Context(), currentUserID(c), totals); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) logFood(c *gin.Context) {
	var req mealItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	ledger, err := h.svc.Ledger.AddFood(c.Request.Context(), currentUserID(c), req.FoodID, req.Quantity, req.Unit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledgerToResponse(*ledger))
}

func (h *Handler) clearMeal(c *gin.Context) {
	var req clearMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	items := make([]service.MealItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = service.MealItem{FoodID: it.FoodID, Quantity: it.Quantity, Unit: it.Unit}
	}

	ledger, err := h.svc.Ledger.ClearMeal(c.Request.Context(), currentUserID(c), items)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledgerToResponse(*ledger))
}
