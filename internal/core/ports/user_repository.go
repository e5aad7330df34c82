package ports

import (
	"context"

	"github.com/memevault/meme-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create inserts a new user and returns it with its assigned ID. A
	// username collision must surface as domain.ErrUsernameTaken; the store
	// enforces this with a unique index, not a read-before-write.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsername returns domain.ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
