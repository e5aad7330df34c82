package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/memevault/meme-api/internal/api/handler"
	"github.com/memevault/meme-api/internal/infrastructure/security"
)

func newManager(t *testing.T) *security.JWTManager {
	t.Helper()
	m, err := security.NewJWTManager("secret", time.Hour)
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}
	return m
}

func run(t *testing.T, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Auth(newManager(t))(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func mustNotReach(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp.Error
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	signed, err := newManager(t).Issue(7, "alice")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	called := false
	rec := run(t, "Bearer "+signed, func(c echo.Context) error {
		called = true
		identity, ok := handler.IdentityFrom(c)
		if !ok {
			t.Fatalf("identity not set")
		}
		if identity.UserID != 7 || identity.Username != "alice" {
			t.Fatalf("unexpected identity: %+v", identity)
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec := run(t, "", mustNotReach(t))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorBody(t, rec); msg != "Access denied. No token provided." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	rec := run(t, "Bearer garbage", mustNotReach(t))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errorBody(t, rec); msg != "Invalid token" {
		t.Fatalf("unexpected message %q", msg)
	}
}

// A header without the Bearer prefix is verified as is and fails as a bad
// token, not as a missing one.
func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	signed, err := newManager(t).Issue(7, "alice")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	for _, header := range []string{"Token abc", "bearer " + signed, "Basic YWxpY2U6cHc="} {
		rec := run(t, header, mustNotReach(t))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("header %q: expected 400, got %d", header, rec.Code)
		}
	}
}

func TestAuthMiddleware_BareTokenAccepted(t *testing.T) {
	signed, err := newManager(t).Issue(7, "alice")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := run(t, signed, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_TamperedToken(t *testing.T) {
	signed, err := newManager(t).Issue(7, "alice")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := run(t, "Bearer "+signed+"x", mustNotReach(t))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	issuer, err := security.NewJWTManager("secret", time.Hour, security.WithClock(func() time.Time { return past }))
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}
	signed, err := issuer.Issue(7, "alice")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := run(t, "Bearer "+signed, mustNotReach(t))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
