package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gymboost-server/internal/service"
)

// respondError maps service errors onto status codes. Causes of 500s are
// logged, never returned.
func (h *Handler) respondError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": vErr.Message})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid username or password"})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Invalid or expired session"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, service.ErrFoodNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Food not found"})
	case errors.Is(err, service.ErrExerciseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Exercise not found"})
	case errors.Is(err, service.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Avatar storage is not configured"})
	default:
		loggerFrom(c, h.log).WithError(err).Error("unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}
