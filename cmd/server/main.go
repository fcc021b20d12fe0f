package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/growth-tracker/adapters/event"
	httpAdapter "github.com/khoahotran/growth-tracker/adapters/http"
	"github.com/khoahotran/growth-tracker/adapters/media_storage"
	"github.com/khoahotran/growth-tracker/adapters/persistence"
	"github.com/khoahotran/growth-tracker/internal/application/service"
	achievementUC "github.com/khoahotran/growth-tracker/internal/application/usecase/achievement"
	authUC "github.com/khoahotran/growth-tracker/internal/application/usecase/auth"
	goalUC "github.com/khoahotran/growth-tracker/internal/application/usecase/goal"
	migrationUC "github.com/khoahotran/growth-tracker/internal/application/usecase/migration"
	profileUC "github.com/khoahotran/growth-tracker/internal/application/usecase/profile"
	skillUC "github.com/khoahotran/growth-tracker/internal/application/usecase/skill"
	statsUC "github.com/khoahotran/growth-tracker/internal/application/usecase/stats"
	"github.com/khoahotran/growth-tracker/internal/config"
	"github.com/khoahotran/growth-tracker/pkg/auth"
	"github.com/khoahotran/growth-tracker/pkg/logger"
	"github.com/khoahotran/growth-tracker/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewZapLogger("development").Fatal("cannot load config", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Start Growth Tracker API Server...", zap.String("env", cfg.App.Env))

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "growth-tracker-api")
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer tracing.Shutdown(tp, appLogger)

	// Initialize dependencies
	if err := persistence.RunMigrations(cfg.DB.MigrationsPath, cfg.DB.DSN, appLogger); err != nil {
		appLogger.Fatal("cannot migrate database", err)
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	var statsCache service.StatsCache
	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Redis unavailable, stats will not be cached", zap.Error(err))
	} else {
		defer redisClient.Close()
		statsCache = persistence.NewRedisStatsCache(redisClient)
	}

	var publisher service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else {
		appLogger.Warn("Kafka brokers not configured, growth events are not published")
	}

	var uploader service.Uploader
	if cfg.Cloudinary.CloudName != "" {
		uploader, err = media_storage.NewCloudinaryAdapter(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize uploader", err)
		}
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	skillRepo := persistence.NewPostgresSkillRepo(dbPool, appLogger)
	goalRepo := persistence.NewPostgresGoalRepo(dbPool, appLogger)
	achievementRepo := persistence.NewPostgresAchievementRepo(dbPool, appLogger)
	importer := persistence.NewPostgresImporter(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	notifier := service.NewChangeNotifier(publisher, statsCache, appLogger)

	// Use Cases
	signUpUseCase := authUC.NewSignUpUseCase(userRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, uploader, notifier, appLogger)
	skillUseCase := skillUC.NewSkillUseCase(skillRepo, notifier, appLogger)
	goalUseCase := goalUC.NewGoalUseCase(goalRepo, notifier, appLogger)
	achievementUseCase := achievementUC.NewAchievementUseCase(achievementRepo, notifier, appLogger)
	rssUseCase := achievementUC.NewRSSUseCase(profileUseCase, achievementRepo, publicBaseURL(cfg), appLogger)
	importUseCase := migrationUC.NewImportUseCase(importer, notifier, appLogger)
	statsUseCase := statsUC.NewStatsUseCase(skillRepo, goalRepo, achievementRepo, statsCache, appLogger)

	// HTTP Handlers
	handlers := httpAdapter.Handlers{
		Auth:        httpAdapter.NewAuthHandler(signUpUseCase, loginUseCase, appLogger),
		Profile:     httpAdapter.NewProfileHandler(profileUseCase, appLogger),
		Skill:       httpAdapter.NewSkillHandler(skillUseCase, appLogger),
		Goal:        httpAdapter.NewGoalHandler(goalUseCase, appLogger),
		Achievement: httpAdapter.NewAchievementHandler(achievementUseCase, appLogger),
		Migration:   httpAdapter.NewMigrationHandler(importUseCase, appLogger),
		Stats:       httpAdapter.NewStatsHandler(statsUseCase, appLogger),
		RSS:         httpAdapter.NewRSSHandler(rssUseCase, appLogger),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(handlers, jwtSvc, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}

// publicBaseURL is where feed links point.
func publicBaseURL(cfg config.Config) string {
	if cfg.Client.APIBaseURL != "" {
		return cfg.Client.APIBaseURL
	}
	return "http://localhost:" + cfg.App.Port + "/api"
}
