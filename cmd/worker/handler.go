package main

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/growth-tracker/internal/application/service"
	"github.com/khoahotran/growth-tracker/internal/growth"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type statsRecomputer interface {
	Recompute(ctx context.Context, userID uuid.UUID) (*growth.Stats, error)
}

type backupRunner interface {
	Execute(ctx context.Context, userID uuid.UUID) (string, error)
}

// eventHandler applies one growth event. The stats cache is a best-effort
// projection: the caller commits every event, so a failed recompute drops it
// and the next change for that user, or the next read, rebuilds the cache.
type eventHandler struct {
	stats  statsRecomputer
	backup backupRunner // nil when backups are disabled
	log    logger.Logger
}

// handle reports whether the stats were recomputed.
func (h *eventHandler) handle(ctx context.Context, ev service.GrowthEvent, offset int64) bool {
	log := h.log.With(
		zap.String("event_type", ev.EventType),
		zap.String("collection", ev.Collection),
		zap.String("user_id", ev.UserID.String()),
		zap.Int64("offset", offset),
	)
	if _, err := h.stats.Recompute(ctx, ev.UserID); err != nil {
		log.Error("Dropping growth event, stats recompute failed", err)
		return false
	}
	log.Debug("Stats recomputed")

	if h.backup != nil {
		if _, err := h.backup.Execute(ctx, ev.UserID); err != nil {
			log.Error("Failed to back up growth data", err)
		}
	}
	return true
}
