package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"stylista-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "stylista:trending"

// TrendingCache stores ranked trending product ids in Redis. Trend
// aggregation scans order_items, and the ranking only moves slowly.
// A nil client turns every lookup into a miss.
type TrendingCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewTrendingCache(rdb *redis.Client, ttl time.Duration, log logger.ILogger) *TrendingCache {
	return &TrendingCache{rdb: rdb, ttl: ttl, logger: log}
}

func Key(category string, days, limit int) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("%s:%s:%d:%d", keyPrefix, category, days, limit)
}

// Get reports a miss on any Redis failure; the caller recomputes.
func (c *TrendingCache) Get(ctx context.Context, key string) ([]int64, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("CACHE", "Trending cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return nil, false
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, false
	}
	return ids, true
}

func (c *TrendingCache) Set(ctx context.Context, key string, ids []int64) {
	if c == nil || c.rdb == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("CACHE", "Trending cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
