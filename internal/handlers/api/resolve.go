package api

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"go2/internal/db"
	"go2/internal/models"
	"go2/internal/validation"
)

// KeywordSource looks up a single keyword.
type KeywordSource interface {
	GetKeywordList(ctx context.Context, keyword string) (*models.KeywordList, error)
}

// ResolveHandler handles keyword resolution via JSON API.
type ResolveHandler struct {
	source  KeywordSource
	baseURL string
}

// NewResolveHandler creates a new API resolve handler. baseURL prefixes the
// list page URL returned for keywords with the list behavior.
func NewResolveHandler(source KeywordSource, baseURL string) *ResolveHandler {
	return &ResolveHandler{source: source, baseURL: strings.TrimRight(baseURL, "/")}
}

// Resolve resolves a keyword to the URL a redirect would go to, without
// performing the redirect or counting a click.
func (h *ResolveHandler) Resolve(c fiber.Ctx) error {
	keyword := validation.NormalizeKeyword(c.Params("keyword"))

	if !validation.ValidateKeyword(keyword) {
		return jsonError(c, fiber.StatusBadRequest, "invalid keyword")
	}

	list, err := h.source.GetKeywordList(c.Context(), keyword)
	if err != nil {
		if errors.Is(err, db.ErrKeywordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "keyword not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to resolve keyword")
	}

	behavior := list.Behavior
	if behavior == "" {
		behavior = models.BehaviorFreshest
	}
	if len(list.Links) == 0 {
		return jsonError(c, fiber.StatusNotFound, "keyword has no links")
	}

	link, ok := list.RedirectTarget()
	if !ok {
		return jsonSuccess(c, models.ResolveResponse{
			Keyword:  list.Keyword,
			Behavior: behavior,
			URL:      h.baseURL + "/." + list.Keyword,
			Links:    len(list.Links),
		})
	}

	return jsonSuccess(c, models.ResolveResponse{
		Keyword:  list.Keyword,
		Behavior: behavior,
		LinkID:   link.ID,
		URL:      link.URL,
		Title:    link.Title,
		Links:    len(list.Links),
	})
}
