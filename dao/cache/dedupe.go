package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// IntentDedupe remembers executed side-effect keys.
type IntentDedupe struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewIntentDedupe(rds *redis.Client, ttl time.Duration) *IntentDedupe {
	return &IntentDedupe{redis: rds, ttl: ttl}
}

func (d *IntentDedupe) Claim(ctx context.Context, key string) (bool, error) {
	return d.redis.SetNX(ctx, d.name(key), 1, d.ttl).Result()
}

func (d *IntentDedupe) Release(ctx context.Context, key string) error {
	return d.redis.Del(ctx, d.name(key)).Err()
}

func (d *IntentDedupe) name(key string) string {
	return "petly:intent:" + key
}
