package ports

import (
	"context"

	"github.com/memevault/meme-api/internal/core/domain"
)

// MemeRepository defines persistence operations for memes.
type MemeRepository interface {
	// List returns every meme, newest first.
	List(ctx context.Context) ([]domain.Meme, error)
	// Random returns domain.ErrNoMemes when the store is empty.
	Random(ctx context.Context) (*domain.Meme, error)
	// FindByID returns domain.ErrMemeNotFound when no meme has the given id.
	FindByID(ctx context.Context, id int64) (*domain.Meme, error)
	// Create assigns ID and stores the meme, returning the stored record.
	Create(ctx context.Context, meme *domain.Meme) (*domain.Meme, error)
}

// MemeCache is a best-effort read cache in front of MemeRepository.
type MemeCache interface {
	// Get reports found=false on a miss.
	Get(ctx context.Context, id int64) (meme *domain.Meme, found bool, err error)
	Set(ctx context.Context, meme *domain.Meme) error
}
