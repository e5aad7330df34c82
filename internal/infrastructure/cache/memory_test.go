package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memevault/meme-api/internal/core/domain"
)

func TestMemory_RoundTrip(t *testing.T) {
	c, err := NewMemory(time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	_, found, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, found)

	meme := &domain.Meme{
		ID:          1,
		Title:       "cached",
		Description: "from memory",
		ImageURL:    "https://img.example/1.png",
		CreatedAt:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, c.Set(context.Background(), meme))

	got, found, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, meme.Title, got.Title)
	assert.Equal(t, meme.Description, got.Description)
	assert.True(t, meme.CreatedAt.Equal(got.CreatedAt))

	_, found, err = c.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, found)
}
