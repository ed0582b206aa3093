package sortedstorage

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

var _ i.SortedIndex = &RedisSortedIndex{}

// RedisSortedIndex keeps scored members in Redis sorted sets with TTL support.
type RedisSortedIndex struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisSortedIndex initializes a RedisSortedIndex with the provided Redis client and TTL.
func NewRedisSortedIndex(client *redis.Client, ttl time.Duration) *RedisSortedIndex {
	index := &RedisSortedIndex{
		client: client,
		ttl:    ttl,
	}
	pool := goredis.NewPool(client)
	index.locker = redsync.New(pool)
	return index
}

// Add inserts or re-scores a member and sets the key expiration if it has none.
func (r *RedisSortedIndex) Add(ctx context.Context, key string, score float64, member string) error {
	if _, err := r.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Result(); err != nil {
		return err
	}

	// Set expiration only if it's not already set
	if r.ttl > 0 {
		ttl, err := r.client.TTL(ctx, key).Result()
		if err == nil && ttl < 0 {
			_ = r.client.Expire(ctx, key, r.ttl).Err()
		}
	}

	return nil
}

// Tops returns up to n members with the highest scores, highest first.
func (r *RedisSortedIndex) Tops(ctx context.Context, key string, n int64) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	return r.client.ZRevRange(ctx, key, 0, n-1).Result()
}

// Remove deletes a member from the set.
func (r *RedisSortedIndex) Remove(ctx context.Context, key string, member string) error {
	return r.client.ZRem(ctx, key, member).Err()
}

// Trim pops the lowest scored members until at most max remain. Concurrent
// trims of the same key are serialized by a redsync lock.
func (r *RedisSortedIndex) Trim(ctx context.Context, key string, max int64) error {
	mutex := r.locker.NewMutex(key + ":trim_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("obtaining trim lock: %w", err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	count, err := r.Count(ctx, key)
	if err != nil {
		return err
	}
	if count <= max {
		return nil
	}
	return r.client.ZPopMin(ctx, key, count-max).Err()
}

// Count returns the number of members in the set.
func (r *RedisSortedIndex) Count(ctx context.Context, key string) (int64, error) {
	return r.client.ZCard(ctx, key).Result()
}
