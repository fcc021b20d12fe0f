package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/growth-tracker/internal/application/service"
	"github.com/khoahotran/growth-tracker/internal/growth"
)

const statsTTL = 24 * time.Hour

type redisStatsCache struct {
	rdb *redis.Client
}

func NewRedisStatsCache(rdb *redis.Client) service.StatsCache {
	return &redisStatsCache{rdb: rdb}
}

func statsKey(userID uuid.UUID) string {
	return "stats:" + userID.String()
}

func (c *redisStatsCache) Get(ctx context.Context, userID uuid.UUID) (*growth.Stats, error) {
	raw, err := c.rdb.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var st growth.Stats
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *redisStatsCache) Set(ctx context.Context, userID uuid.UUID, st growth.Stats) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey(userID), raw, statsTTL).Err()
}

func (c *redisStatsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.rdb.Del(ctx, statsKey(userID)).Err()
}
