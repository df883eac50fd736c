package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// unread counters expire after 14 days and are rebuilt from MySQL on miss
const unreadExpireAt = 14 * 24 * time.Hour

type UnreadStorage struct {
	redis *redis.Client
}

func NewUnreadStorage(rds *redis.Client) *UnreadStorage {
	return &UnreadStorage{rds}
}

// Incr bumps the counter only when it is already cached, so a miss keeps
// falling back to the database count.
func (u *UnreadStorage) Incr(ctx context.Context, uid uint64) error {
	name := u.name(uid)
	n, err := u.redis.Exists(ctx, name).Result()
	if err != nil || n == 0 {
		return err
	}
	pipe := u.redis.Pipeline()
	pipe.Incr(ctx, name)
	pipe.Expire(ctx, name, unreadExpireAt)
	_, err = pipe.Exec(ctx)
	return err
}

// Get returns the cached count; ok is false on a miss.
func (u *UnreadStorage) Get(ctx context.Context, uid uint64) (int64, bool) {
	i, err := u.redis.Get(ctx, u.name(uid)).Int64()
	if err != nil {
		return 0, false
	}
	return i, true
}

func (u *UnreadStorage) Set(ctx context.Context, uid uint64, count int64) error {
	return u.redis.Set(ctx, u.name(uid), count, unreadExpireAt).Err()
}

func (u *UnreadStorage) Reset(ctx context.Context, uid uint64) error {
	return u.redis.Del(ctx, u.name(uid)).Err()
}

func (u *UnreadStorage) name(uid uint64) string {
	return fmt.Sprintf("petly:notify:unread:%d", uid)
}
