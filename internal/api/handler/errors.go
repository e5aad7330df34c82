package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memevault/meme-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

const msgInternal = "Internal Server Error"

// ErrorStatus maps an error to the HTTP status and client-facing message.
// Anything unrecognised is a 500 with a generic message.
func ErrorStatus(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message
	}

	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusBadRequest, "Username already taken"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid username or password"
	case errors.Is(err, domain.ErrMemeNotFound):
		return http.StatusNotFound, "Meme not found"
	case errors.Is(err, domain.ErrNoMemes):
		return http.StatusNotFound, "No memes found"
	}
	return http.StatusInternalServerError, msgInternal
}

// respondError renders known errors directly and hands unexpected ones to
// the central error handler, which logs them.
func respondError(c echo.Context, err error) error {
	status, msg := ErrorStatus(err)
	if status == http.StatusInternalServerError {
		return err
	}
	return c.JSON(status, errorResponse{Error: msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
