package ports

import (
	"context"

	"github.com/memevault/meme-api/internal/core/domain"
)

// CreateMemeInput carries the fields a client may set on a new meme.
type CreateMemeInput struct {
	Title       string
	Description string
	ImageURL    string
	// RequestedBy is the authenticated username, used for audit logging only.
	RequestedBy string
}

// MemeService defines use-case operations for memes.
type MemeService interface {
	List(ctx context.Context) ([]domain.Meme, error)
	Random(ctx context.Context) (*domain.Meme, error)
	Get(ctx context.Context, id int64) (*domain.Meme, error)
	Create(ctx context.Context, input CreateMemeInput) (*domain.Meme, error)
}
