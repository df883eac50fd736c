package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotentTTL = 24 * time.Hour
	inFlight      = "__pending__"
)

// IdempotentStorage collapses repeated client submissions carrying the same key.
type IdempotentStorage struct {
	redis *redis.Client
}

func NewIdempotentStorage(rds *redis.Client) *IdempotentStorage {
	return &IdempotentStorage{rds}
}

// Acquire claims the key. When someone else holds it, result is the stored
// outcome of the first request, or empty while that request is still running.
func (s *IdempotentStorage) Acquire(ctx context.Context, scope string, uid uint64, key string) (acquired bool, result string, err error) {
	name := s.name(scope, uid, key)
	ok, err := s.redis.SetNX(ctx, name, inFlight, idempotentTTL).Result()
	if err != nil {
		return false, "", err
	}
	if ok {
		return true, "", nil
	}
	val, err := s.redis.Get(ctx, name).Result()
	if errors.Is(err, redis.Nil) {
		return false, "", nil
	}
	if err != nil {
		return false, "", err
	}
	if val == inFlight {
		return false, "", nil
	}
	return false, val, nil
}

// Complete records the outcome of the request that acquired the key.
func (s *IdempotentStorage) Complete(ctx context.Context, scope string, uid uint64, key, result string) error {
	return s.redis.Set(ctx, s.name(scope, uid, key), result, idempotentTTL).Err()
}

// Release drops the key so that a failed request may be retried.
func (s *IdempotentStorage) Release(ctx context.Context, scope string, uid uint64, key string) error {
	return s.redis.Del(ctx, s.name(scope, uid, key)).Err()
}

func (s *IdempotentStorage) name(scope string, uid uint64, key string) string {
	return fmt.Sprintf("petly:idem:%s:%d:%s", scope, uid, key)
}
