package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"go2/internal/config"
	"go2/internal/keywords"
)

// KeywordHandler serves the keyword browser: the search page and the
// fragment HTMX swaps into it on every keystroke.
type KeywordHandler struct {
	ctrl *keywords.Controller
	cfg  *config.Config
}

// NewKeywordHandler creates a new keyword browser handler.
func NewKeywordHandler(ctrl *keywords.Controller, cfg *config.Config) *KeywordHandler {
	return &KeywordHandler{ctrl: ctrl, cfg: cfg}
}

// Index renders the search page with the list already filtered by ?q=.
func (h *KeywordHandler) Index(c fiber.Ctx) error {
	query := c.Query("q")
	view := h.ctrl.OnQueryChange(query)

	markup, err := h.ctrl.Renderer().Markup(view)
	if err != nil {
		return err
	}

	return c.Render("index", MergeBranding(fiber.Map{
		"Query":        query,
		"KeywordsHTML": markup,
	}, h.cfg))
}

// Filter renders only the keyword list for ?q=.
func (h *KeywordHandler) Filter(c fiber.Ctx) error {
	view := h.ctrl.OnQueryChange(c.Query("q"))

	markup, err := h.ctrl.Renderer().Markup(view)
	if err != nil {
		slog.Error("failed to render keyword list", "query", view.Query, "error", err)
		return htmxError(c, "Failed to render keywords")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(string(markup))
}
