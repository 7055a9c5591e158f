// Package cache holds the Redis-backed cache for the trip summary aggregate.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pkordes/trip-planner/internal/domain"
)

const summaryKey = "trips:summary"

// SummaryCache stores the latest domain.Summary under a single key with a TTL.
// Writers call Invalidate after every trip write; the TTL bounds staleness
// if an invalidation is lost.
type SummaryCache struct {
	rdb goredis.UniversalClient
	ttl time.Duration
}

// NewSummaryCache wraps an existing Redis client.
func NewSummaryCache(rdb goredis.UniversalClient, ttl time.Duration) *SummaryCache {
	return &SummaryCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached summary. ok is false on a miss.
func (c *SummaryCache) Get(ctx context.Context) (_ domain.Summary, ok bool, _ error) {
	raw, err := c.rdb.Get(ctx, summaryKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.Summary{}, false, nil
		}
		return domain.Summary{}, false, fmt.Errorf("cache.SummaryCache.Get: %w", err)
	}

	var s domain.Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.Summary{}, false, fmt.Errorf("cache.SummaryCache.Get: decode: %w", err)
	}
	return s, true, nil
}

// Set stores s until the TTL expires.
func (c *SummaryCache) Set(ctx context.Context, s domain.Summary) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("cache.SummaryCache.Set: encode: %w", err)
	}
	if err := c.rdb.Set(ctx, summaryKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache.SummaryCache.Set: %w", err)
	}
	return nil
}

// Invalidate drops the cached summary.
func (c *SummaryCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, summaryKey).Err(); err != nil {
		return fmt.Errorf("cache.SummaryCache.Invalidate: %w", err)
	}
	return nil
}

// Connect opens a Redis client for addr and verifies it with PING.
func Connect(ctx context.Context, addr, password string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr, Password: password})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache.Connect: ping %s: %w", addr, err)
	}
	return rdb, nil
}
