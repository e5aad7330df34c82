package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/memevault/meme-api/internal/api/metrics"
	"github.com/memevault/meme-api/internal/core/domain"
	"github.com/memevault/meme-api/internal/core/ports"
)

// MemeHandler handles HTTP requests for meme operations. Every route sits
// behind the Auth middleware.
type MemeHandler struct {
	service ports.MemeService
}

func NewMemeHandler(service ports.MemeService) *MemeHandler {
	return &MemeHandler{service: service}
}

// --- Request / Response types ---

type createMemeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type memeResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl"`
	CreatedAt   string `json:"createdAt"`
}

func toMemeResponse(m *domain.Meme) memeResponse {
	return memeResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /api/memes.
func (h *MemeHandler) List(c echo.Context) error {
	memes, err := h.service.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]memeResponse, 0, len(memes))
	for i := range memes {
		resp = append(resp, toMemeResponse(&memes[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Random handles GET /api/memes/random.
func (h *MemeHandler) Random(c echo.Context) error {
	meme, err := h.service.Random(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toMemeResponse(meme))
}

// Get handles GET /api/memes/:id.
func (h *MemeHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid meme id")
	}

	meme, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toMemeResponse(meme))
}

// Create handles POST /api/memes.
func (h *MemeHandler) Create(c echo.Context) error {
	var req createMemeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, msgInvalidBody)
	}

	input := ports.CreateMemeInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if identity, ok := IdentityFrom(c); ok {
		input.RequestedBy = identity.Username
	}

	meme, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	metrics.MemesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toMemeResponse(meme))
}
