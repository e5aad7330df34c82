package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/memevault/meme-api/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// Client is the subset of *redis.Client the meme cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// MemeCache stores JSON encoded memes with a fixed TTL.
// Key format: meme:<id>
type MemeCache struct {
	client Client
	ttl    time.Duration
}

func NewMemeCache(client Client, ttl time.Duration) *MemeCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &MemeCache{client: client, ttl: ttl}
}

func (c *MemeCache) Get(ctx context.Context, id int64) (*domain.Meme, bool, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("meme cache get: %w", err)
	}

	var m domain.Meme
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false, fmt.Errorf("meme cache decode: %w", err)
	}
	return &m, true, nil
}

func (c *MemeCache) Set(ctx context.Context, meme *domain.Meme) error {
	raw, err := json.Marshal(meme)
	if err != nil {
		return fmt.Errorf("meme cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(meme.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("meme cache set: %w", err)
	}
	return nil
}

func (c *MemeCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *MemeCache) key(id int64) string {
	return fmt.Sprintf("meme:%d", id)
}
