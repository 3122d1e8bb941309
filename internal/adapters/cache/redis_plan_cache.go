package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"load-route-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	planKeyPrefix  = "plan:segments:"
	DefaultPlanTTL = 24 * time.Hour
)

// RedisPlanCache is a Redis-backed PlanCache. Entries expire after TTL.
type RedisPlanCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPlanCache(client *redis.Client, ttl time.Duration) *RedisPlanCache {
	if ttl <= 0 {
		ttl = DefaultPlanTTL
	}
	return &RedisPlanCache{Client: client, TTL: ttl}
}

// Connect a Redis client from a redis:// URL and verify it answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// Fetch the cached segments for key.
func (c *RedisPlanCache) GetPlan(ctx context.Context, key string) (_ [][]int, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.GetPlan")(&err)

	if c.Client == nil {
		return nil, false, errors.New("plan cache: client is nil")
	}

	data, err := c.Client.Get(ctx, planKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan %s: %w", key, err)
	}

	var segments [][]int
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, false, fmt.Errorf("get plan %s: decode: %w", key, err)
	}
	return segments, true, nil
}

// Store segments under key, replacing any previous entry.
func (c *RedisPlanCache) PutPlan(ctx context.Context, key string, segments [][]int) (err error) {
	defer obs.Time(ctx, "plan.cache.PutPlan")(&err)

	if c.Client == nil {
		return errors.New("plan cache: client is nil")
	}
	if segments == nil {
		segments = [][]int{}
	}

	data, err := json.Marshal(segments)
	if err != nil {
		return fmt.Errorf("put plan %s: encode: %w", key, err)
	}
	if err := c.Client.Set(ctx, planKeyPrefix+key, data, c.TTL).Err(); err != nil {
		return fmt.Errorf("put plan %s: %w", key, err)
	}
	return nil
}
