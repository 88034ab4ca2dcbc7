package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gymboost-server/internal/config"
	apphttp "gymboost-server/internal/http"
	"gymboost-server/internal/repository/sqlite"
	"gymboost-server/internal/service"
	"gymboost-server/internal/storage"
	"gymboost-server/internal/sweeper"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)
	foodRepo := sqlite.NewFoodRepository(db)
	exerciseRepo := sqlite.NewExerciseRepository(db)
	workoutRepo := sqlite.NewWorkoutRepository(db)
	settingsRepo := sqlite.NewSettingsRepository(db)

	repos := []struct {
		name string
		repo interface{ Init(context.Context) error }
	}{
		{"user", userRepo},
		{"session", sessionRepo},
		{"food", foodRepo},
		{"exercise", exerciseRepo},
		{"workout", workoutRepo},
		{"settings", settingsRepo},
	}
	for _, r := range repos {
		if err := r.repo.Init(ctx); err != nil {
			logger.Fatalf("init %s repository: %v", r.name, err)
		}
	}

	sessions := service.NewSessionAuthority(sessionRepo, cfg.Auth.SessionTTL)
	userService := service.NewUserService(userRepo, sessions, cfg.Auth.BcryptCost, logger)
	ledgerService := service.NewLedgerService(userRepo, foodRepo)
	foodService := service.NewFoodService(foodRepo, logger)
	workoutService := service.NewWorkoutService(exerciseRepo, workoutRepo, logger)
	settingsService := service.NewSettingsService(settingsRepo)

	// sweeps once at startup, then every purge interval
	sessionSweeper := sweeper.New(sweeper.Config{
		Interval: cfg.Auth.PurgeInterval,
		Logger:   logger,
	}, sessions)
	sessionSweeper.Start(ctx)

	seeds := []struct {
		name string
		path string
		load func(context.Context, io.Reader) (int, error)
	}{
		{"foods", cfg.Catalog.FoodsFile, foodService.Import},
		{"exercises", cfg.Catalog.ExercisesFile, workoutService.ImportExercises},
	}
	for _, seed := range seeds {
		err := seedCatalog(ctx, seed.path, seed.load)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Warnf("%s seed file %s not found, catalog left as is", seed.name, seed.path)
		case err != nil:
			logger.Fatalf("seed %s: %v", seed.name, err)
		}
	}

	var store storage.Service
	if cfg.StorageEnabled() {
		s3Store, err := buildStorage(ctx, cfg, logger)
		if err != nil {
			logger.Fatalf("setup storage: %v", err)
		}
		store = s3Store
	} else {
		logger.Warn("storage bucket not configured, avatar uploads disabled")
	}
	avatarService := service.NewAvatarService(userRepo, store, cfg.Storage.KeyPrefix, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(apphttp.Services{
		Users:    userService,
		Sessions: sessions,
		Ledger:   ledgerService,
		Foods:    foodService,
		Workouts: workoutService,
		Settings: settingsService,
		Avatars:  avatarService,
	}, apphttp.Options{
		AllowOrigins:   cfg.CORS.AllowOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		Logger:         logger,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	sessionSweeper.Shutdown()

	logger.Info("bye")
}

// seedCatalog feeds a JSON seed file to an importer. An empty path skips
// seeding.
func seedCatalog(ctx context.Context, path string, importFn func(context.Context, io.Reader) (int, error)) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	_, err = importFn(ctx, f)
	return err
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)

	return storage.NewS3Service(client, storage.S3Config{
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		Endpoint:      cfg.Storage.Endpoint,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	}), nil
}
