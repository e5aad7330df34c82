// Package cache holds in-process MemeCache implementations.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/memevault/meme-api/internal/core/domain"
)

// Memory keeps memes in a bigcache shard set. Entries expire after the
// configured life window.
type Memory struct {
	cache *bigcache.BigCache
}

func NewMemory(ttl time.Duration) (*Memory, error) {
	cfg := bigcache.DefaultConfig(ttl)
	cfg.Verbose = false
	c, err := bigcache.NewBigCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("bigcache: %w", err)
	}
	return &Memory{cache: c}, nil
}

func (m *Memory) Get(_ context.Context, id int64) (*domain.Meme, bool, error) {
	raw, err := m.cache.Get(strconv.FormatInt(id, 10))
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var meme domain.Meme
	if err := json.Unmarshal(raw, &meme); err != nil {
		return nil, false, fmt.Errorf("decode cached meme: %w", err)
	}
	return &meme, true, nil
}

func (m *Memory) Set(_ context.Context, meme *domain.Meme) error {
	raw, err := json.Marshal(meme)
	if err != nil {
		return fmt.Errorf("encode meme: %w", err)
	}
	return m.cache.Set(strconv.FormatInt(meme.ID, 10), raw)
}

func (m *Memory) Close() error {
	return m.cache.Close()
}
