package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/memevault/meme-api/internal/api/handler"
	"github.com/memevault/meme-api/internal/api/metrics"
	"github.com/memevault/meme-api/internal/core/ports"
)

const bearerPrefix = "Bearer "

type errorResponse struct {
	Error string `json:"error"`
}

// Auth validates the bearer token and injects the decoded identity into the
// context under handler.IdentityKey.
//
// A missing header is 401. Anything else that fails verification is 400,
// including headers that do not use the Bearer scheme: the prefix is only
// stripped when present and the remainder goes to the verifier as is.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.AuthGateTotal.WithLabelValues("unauthenticated").Inc()
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Access denied. No token provided."})
			}

			token := strings.TrimPrefix(authHeader, bearerPrefix)
			identity, err := verifier.Verify(token)
			if err != nil {
				metrics.AuthGateTotal.WithLabelValues("rejected").Inc()
				return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid token"})
			}

			metrics.AuthGateTotal.WithLabelValues("accepted").Inc()
			c.Set(handler.IdentityKey, identity)
			return next(c)
		}
	}
}
