package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/growth-tracker/internal/growth"
)

type StatsCache interface {
	// Get returns nil, nil on a cache miss.
	Get(ctx context.Context, userID uuid.UUID) (*growth.Stats, error)
	Set(ctx context.Context, userID uuid.UUID, st growth.Stats) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
