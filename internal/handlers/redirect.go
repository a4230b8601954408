package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"go2/internal/config"
	"go2/internal/db"
	"go2/internal/keywords"
	"go2/internal/validation"
)

// RedirectHandler handles keyword-to-URL redirects and the per-keyword
// link list.
type RedirectHandler struct {
	store KeywordStore
	cfg   *config.Config
}

// NewRedirectHandler creates a new redirect handler.
func NewRedirectHandler(store KeywordStore, cfg *config.Config) *RedirectHandler {
	return &RedirectHandler{store: store, cfg: cfg}
}

// Redirect sends go2/<keyword> to the link picked by the keyword's redirect
// behavior. A path of the form /.<keyword>, a keyword without links, or the
// list behavior shows the list of links instead.
func (h *RedirectHandler) Redirect(c fiber.Ctx) error {
	keyword, listPage := validation.ParseKeywordPath(c.Params("keyword"))
	if !validation.ValidateKeyword(keyword) {
		return h.notFound(c, keyword)
	}

	list, err := h.store.GetKeywordList(c.Context(), keyword)
	if err != nil {
		if errors.Is(err, db.ErrKeywordNotFound) {
			return h.notFound(c, keyword)
		}
		return err
	}

	link, ok := list.RedirectTarget()
	if listPage || !ok {
		return c.Render("list", MergeBranding(fiber.Map{
			"Title":       "go2/" + list.Keyword,
			"Keyword":     list.Keyword,
			"Links":       list.SortedLinks(),
			"ClicksLabel": keywords.ClickLabel(list.Clicks),
			"LinksLabel":  keywords.LinkLabel(len(list.Links)),
		}, h.cfg))
	}

	// Increment click count asynchronously
	go func() {
		if err := h.store.IncrementClicks(context.Background(), list.Keyword, link.ID); err != nil {
			slog.Error("failed to record click", "keyword", list.Keyword, "link", link.ID, "error", err)
		}
	}()

	return c.Redirect().Status(fiber.StatusTemporaryRedirect).To(link.URL)
}

func (h *RedirectHandler) notFound(c fiber.Ctx, keyword string) error {
	return c.Status(fiber.StatusNotFound).Render("error", MergeBranding(fiber.Map{
		"Title":   "Not Found",
		"Message": "The keyword '" + keyword + "' does not exist.",
	}, h.cfg))
}
