package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pokernight/stats-api/internal/models"
)

const statsKeyPrefix = "pokernight:stats:"

// RedisClient is the slice of go-redis the cache uses; tests supply mocks.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Cache keeps aggregated per-player snapshots in Redis. The TTL is kept
// short because the calendar buckets inside a snapshot are anchored to the
// time it was computed.
type Cache struct {
	client RedisClient
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewCache(client RedisClient, ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl, logger: logger.Sugar()}
}

// Get treats every failure as a miss; the caller recomputes from Postgres.
func (c *Cache) Get(ctx context.Context, playerID string) (*models.PlayerStats, bool) {
	raw, err := c.client.Get(ctx, statsKeyPrefix+playerID).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnw("stats cache read failed", "player", playerID, "error", err)
		}
		return nil, false
	}

	var stats models.PlayerStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		c.logger.Warnw("stats cache entry corrupt, dropping", "player", playerID, "error", err)
		c.client.Del(ctx, statsKeyPrefix+playerID)
		return nil, false
	}
	return &stats, true
}

func (c *Cache) Set(ctx context.Context, stats *models.PlayerStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		c.logger.Warnw("stats cache marshal failed", "player", stats.PlayerID, "error", err)
		return
	}
	if err := c.client.Set(ctx, statsKeyPrefix+stats.PlayerID, raw, c.ttl).Err(); err != nil {
		c.logger.Warnw("stats cache write failed", "player", stats.PlayerID, "error", err)
	}
}

// Invalidate drops snapshots after new results land for these players.
func (c *Cache) Invalidate(ctx context.Context, playerIDs ...string) {
	if len(playerIDs) == 0 {
		return
	}
	keys := make([]string, len(playerIDs))
	for i, id := range playerIDs {
		keys[i] = statsKeyPrefix + id
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnw("stats cache invalidation failed", "players", playerIDs, "error", err)
	}
}
