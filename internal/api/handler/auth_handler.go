package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memevault/meme-api/internal/api/metrics"
	"github.com/memevault/meme-api/internal/core/domain"
	"github.com/memevault/meme-api/internal/core/ports"
)

const (
	msgInvalidBody        = "Invalid request body"
	msgMissingCredentials = "Username and password are required"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type registerResponse struct {
	Message string      `json:"message"`
	User    userSummary `json:"user"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// bindCredentials returns the client-facing message when the body is unusable.
func bindCredentials(c echo.Context) (credentialsRequest, string) {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return req, msgInvalidBody
	}
	if err := c.Validate(&req); err != nil {
		return req, msgMissingCredentials
	}
	return req, ""
}

// Register creates a new user account.
//
// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	req, msg := bindCredentials(c)
	if msg != "" {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return badRequest(c, msg)
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		case errors.As(err, &ve):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return respondError(c, err)
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		Message: "User registered",
		User:    userSummary{ID: user.ID, Username: user.Username},
	})
}

// Login authenticates a user and returns a JWT token.
//
// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	req, msg := bindCredentials(c)
	if msg != "" {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return badRequest(c, msg)
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return respondError(c, err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Message: "Login successful", Token: token})
}
