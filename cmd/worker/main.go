package main

import (
	"context"
	"encoding/json"
	"errors"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/growth-tracker/adapters/event"
	"github.com/khoahotran/growth-tracker/adapters/media_storage"
	"github.com/khoahotran/growth-tracker/adapters/persistence"
	"github.com/khoahotran/growth-tracker/internal/application/service"
	backupUC "github.com/khoahotran/growth-tracker/internal/application/usecase/backup"
	statsUC "github.com/khoahotran/growth-tracker/internal/application/usecase/stats"
	"github.com/khoahotran/growth-tracker/internal/config"
	"github.com/khoahotran/growth-tracker/pkg/logger"
	"github.com/khoahotran/growth-tracker/pkg/tracing"
)

// The worker keeps the per-user stats cache warm by recomputing it whenever
// a growth event arrives. With Cloudinary configured it also replaces the
// user's JSON backup.
func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewZapLogger("development").Fatal("cannot load config", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Growth Tracker Worker...")

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "growth-tracker-worker")
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer tracing.Shutdown(tp, appLogger)

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	// Repositories
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	skillRepo := persistence.NewPostgresSkillRepo(dbPool, appLogger)
	goalRepo := persistence.NewPostgresGoalRepo(dbPool, appLogger)
	achievementRepo := persistence.NewPostgresAchievementRepo(dbPool, appLogger)

	// Worker Use Case
	statsUseCase := statsUC.NewStatsUseCase(skillRepo, goalRepo, achievementRepo, persistence.NewRedisStatsCache(redisClient), appLogger)

	handler := &eventHandler{stats: statsUseCase, log: appLogger}
	if cfg.Cloudinary.CloudName != "" {
		uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Cloudinary", err)
		}
		handler.backup = backupUC.NewBackupUseCase(profileRepo, skillRepo, goalRepo, achievementRepo, uploader, appLogger)
	} else {
		appLogger.Warn("Cloudinary not configured, backups disabled")
	}

	// Kafka Consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicGrowthEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicGrowthEvents), zap.String("group_id", cfg.Kafka.GroupID))

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var ev service.GrowthEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			appLogger.Warn("Skipping malformed growth event", zap.ByteString("key", msg.Key), zap.Error(err))
			commitMessage(ctx, consumer, msg, appLogger)
			continue
		}

		handler.handle(ctx, ev, msg.Offset)
		commitMessage(ctx, consumer, msg, appLogger)
	}
}

func commitMessage(ctx context.Context, consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
