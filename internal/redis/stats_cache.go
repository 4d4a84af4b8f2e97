package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/domain"
)

// StatsCache keeps the dashboard summary snapshot in Redis for a short TTL.
// Writers invalidate the key, so a cached snapshot is never staler than the
// last write plus the TTL.
type StatsCache struct {
	client *goredis.Client
	key    string
	ttl    time.Duration
}

func NewStatsCache(r *Redis, ttl time.Duration) *StatsCache {
	return &StatsCache{
		client: r.Client,
		key:    "incidents:stats",
		ttl:    ttl,
	}
}

// Get returns the cached snapshot, or nil on a miss.
func (c *StatsCache) Get(ctx context.Context) (*domain.IncidentStats, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats domain.IncidentStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

func (c *StatsCache) Set(ctx context.Context, stats *domain.IncidentStats) error {
	b, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, c.ttl).Err()
}

// Invalidate drops the snapshot after a write to the incident table.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
