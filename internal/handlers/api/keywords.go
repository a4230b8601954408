package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"go2/internal/models"
)

// IndexSource provides the full keyword index.
type IndexSource interface {
	GetKeywordIndex(ctx context.Context) (models.KeywordIndex, error)
}

// KeywordsHandler serves the keyword index the browser loads.
type KeywordsHandler struct {
	source IndexSource
	maxAge time.Duration
}

// NewKeywordsHandler creates a new keyword index handler. maxAge sets the
// Cache-Control lifetime clients may reuse the index for.
func NewKeywordsHandler(source IndexSource, maxAge time.Duration) *KeywordsHandler {
	return &KeywordsHandler{source: source, maxAge: maxAge}
}

// List returns every keyword with its links and click count, keyed by keyword.
// The body is the bare index, not the status envelope, so it can be decoded
// as a single JSON object.
func (h *KeywordsHandler) List(c fiber.Ctx) error {
	index, err := h.source.GetKeywordIndex(c.Context())
	if err != nil {
		slog.Error("failed to fetch keyword index", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch keywords")
	}
	if index == nil {
		index = models.KeywordIndex{}
	}

	if h.maxAge > 0 {
		c.Set(fiber.HeaderCacheControl, fmt.Sprintf("max-age=%d", int(h.maxAge.Seconds())))
	}
	return c.JSON(index)
}
