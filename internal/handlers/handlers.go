package handlers

import (
	"context"
	"html"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"go2/internal/models"
)

// KeywordStore is the link database behind the redirect and list pages.
// Both *db.DB and *sqlitedb.Store satisfy it.
type KeywordStore interface {
	GetKeywordIndex(ctx context.Context) (models.KeywordIndex, error)
	GetKeywordList(ctx context.Context, keyword string) (*models.KeywordList, error)
	IncrementClicks(ctx context.Context, keyword string, linkID uuid.UUID) error
	Ping(ctx context.Context) error
}

// htmxError returns an error message as HTML that HTMX will display.
// Uses 200 status so HTMX processes the swap (HTMX ignores non-2xx by default).
func htmxError(c fiber.Ctx, message string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(
		`<li class="list-inline-item text-danger">` + html.EscapeString(message) + `</li>`,
	)
}
