package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/memevault/meme-api/internal/core/domain"
)

// IdentityKey is the echo context key the Auth middleware stores the
// verified *domain.Identity under.
const IdentityKey = "identity"

// IdentityFrom returns the identity attached by the Auth middleware.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	identity, ok := c.Get(IdentityKey).(*domain.Identity)
	return identity, ok && identity != nil
}
