package ports

import "github.com/memevault/meme-api/internal/core/domain"

// PasswordHasher turns passwords into salted one-way hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. A malformed hash is a
	// mismatch, never an error.
	Verify(password, hash string) bool
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64, username string) (string, error)
}

// TokenVerifier checks signature and expiry of an access token and decodes
// its claims.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}
