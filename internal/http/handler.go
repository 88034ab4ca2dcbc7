package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gymboost-server/internal/service"
)

// Services bundles the domain services the HTTP layer fronts.
type Services struct {
	Users    service.UserService
	Sessions service.SessionAuthority
	Ledger   service.LedgerService
	Foods    service.FoodService
	Workouts service.WorkoutService
	Settings service.SettingsService
	Avatars  service.AvatarService
}

// Options tunes router-wide middleware.
type Options struct {
	AllowOrigins   []string
	RateLimitRPS   float64
	RateLimitBurst int
	Logger         logrus.FieldLogger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	svc  Services
	opts Options
	log  logrus.FieldLogger
}

func NewHandler(svc Services, opts Options) *Handler {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		svc:  svc,
		opts: opts,
		log:  log,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.log))
	router.Use(cors.New(h.corsConfig()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/api/foods", h.searchFoods)

	limited := router.Group("/")
	if h.opts.RateLimitRPS > 0 && h.opts.RateLimitBurst > 0 {
		limited.Use(rateLimitByIP(h.opts.RateLimitRPS, h.opts.RateLimitBurst))
	}
	{
		limited.POST("/register", h.register)
		limited.POST("/login", h.login)
	}

	authed := router.Group("/")
	authed.Use(h.requireSession())
	{
		authed.POST("/logout", h.logout)
		authed.GET("/profile", h.profile)
		authed.POST("/upload-avatar", h.uploadAvatar)
		authed.GET("/settings", h.getSettings)
		authed.POST("/update-dark-mode", h.updateDarkMode)

		authed.GET("/caloriesData", h.caloriesData)
		authed.POST("/update-calories", h.updateCalories)
		authed.POST("/update-calories-needed", h.updateCaloriesNeeded)
		authed.POST("/update-nutrition", h.updateNutrition)
		authed.POST("/log-food", h.logFood)
		authed.POST("/clear-meal", h.clearMeal)

		authed.POST("/save-workout", h.saveWorkout)
		authed.GET("/get-workouts", h.getWorkouts)
	}
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if len(h.opts.AllowOrigins) == 0 || (len(h.opts.AllowOrigins) == 1 && h.opts.AllowOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = h.opts.AllowOrigins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", requestIDHeader)
	cfg.ExposeHeaders = []string{requestIDHeader}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}
