// Package cache keeps finished mazes in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	defaultPrefix = "maze"
	mazeKeyFmt    = "%s:blob:%s"
)

var _ i.MazeCache = &RedisMazeCache{}

// RedisMazeCache stores each maze as a BSON blob under its own key.
type RedisMazeCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisMazeCache creates a cache whose entries expire after ttl. An empty
// prefix falls back to "maze".
func NewRedisMazeCache(client *redis.Client, prefix string, ttl time.Duration) *RedisMazeCache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisMazeCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Set implements i.MazeCache.
func (c *RedisMazeCache) Set(ctx context.Context, m *dmn.Maze) error {
	blob, err := bson.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding maze %s: %w", m.ID, err)
	}
	return c.client.Set(ctx, c.key(m.ID), blob, c.ttl).Err()
}

// Get implements i.MazeCache.
func (c *RedisMazeCache) Get(ctx context.Context, id uuid.UUID) (*dmn.Maze, error) {
	blob, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, i.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var m dmn.Maze
	if err := bson.Unmarshal(blob, &m); err != nil {
		return nil, fmt.Errorf("decoding maze %s: %w", id, err)
	}
	return &m, nil
}

// Delete implements i.MazeCache.
func (c *RedisMazeCache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *RedisMazeCache) key(id uuid.UUID) string {
	return fmt.Sprintf(mazeKeyFmt, c.prefix, id)
}
