package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/growth-tracker/pkg/logger"
)

const (
	EventTypeCreated  = "created"
	EventTypeUpdated  = "updated"
	EventTypeDeleted  = "deleted"
	EventTypeImported = "imported"
)

const (
	CollectionProfiles     = "profiles"
	CollectionSkills       = "skills"
	CollectionGoals        = "goals"
	CollectionAchievements = "achievements"
)

// GrowthEvent announces that a user's growth data changed.
type GrowthEvent struct {
	EventType  string    `json:"event_type"`
	UserID     uuid.UUID `json:"user_id"`
	Collection string    `json:"collection"`
	EntityID   uuid.UUID `json:"entity_id"`
}

type EventPublisher interface {
	PublishGrowthEvent(ctx context.Context, ev GrowthEvent) error
}

// ChangeNotifier drops the user's cached stats and publishes the event in
// the background. Both dependencies are optional.
type ChangeNotifier struct {
	publisher EventPublisher
	cache     StatsCache
	logger    logger.Logger
}

func NewChangeNotifier(pub EventPublisher, cache StatsCache, log logger.Logger) *ChangeNotifier {
	return &ChangeNotifier{publisher: pub, cache: cache, logger: log}
}

func (n *ChangeNotifier) Notify(ev GrowthEvent) {
	if n == nil {
		return
	}
	go func() {
		ctx := context.Background()
		if n.cache != nil {
			if err := n.cache.Invalidate(ctx, ev.UserID); err != nil {
				n.logger.Warn("Failed to invalidate stats cache", zap.String("user_id", ev.UserID.String()), zap.Error(err))
			}
		}
		if n.publisher == nil {
			return
		}
		if err := n.publisher.PublishGrowthEvent(ctx, ev); err != nil {
			n.logger.Error("Failed to publish Kafka growth event", err,
				zap.String("event_type", ev.EventType),
				zap.String("collection", ev.Collection),
				zap.String("entity_id", ev.EntityID.String()),
			)
		}
	}()
}
