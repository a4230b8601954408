package keywords

import (
	"bytes"
	"html/template"
	"io"
)

// ListTemplate is the view that draws the contents of the keyword list container.
const ListTemplate = "partials/keywords"

// Views renders named templates. The gofiber html engine satisfies it.
type Views interface {
	Render(out io.Writer, name string, binding any, layout ...string) error
}

// View is what the keyword list container currently shows.
type View struct {
	Query       string
	Keywords    []Keyword
	Suggestions []string
}

// Item is a single rendered list entry.
type Item struct {
	Keyword   string
	LinkCount int
	Title     string
}

// Renderer turns a View into the markup of the keyword list container.
type Renderer struct {
	views       Views
	trackClicks bool
}

// NewRenderer creates a renderer. With trackClicks set, keywords are ordered
// by click count and the tooltip reports clicks; otherwise the view order is
// kept and only the link count is shown.
func NewRenderer(views Views, trackClicks bool) *Renderer {
	return &Renderer{views: views, trackClicks: trackClicks}
}

// Render writes the markup for view to w, replacing whatever was shown before.
func (r *Renderer) Render(w io.Writer, view View) error {
	return r.views.Render(w, ListTemplate, r.binding(view))
}

// Markup renders view into a string suitable for embedding in a page.
func (r *Renderer) Markup(view View) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, view); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) binding(view View) map[string]any {
	list := view.Keywords
	if r.trackClicks {
		list = SortByClicks(list)
	}

	items := make([]Item, len(list))
	for i, kw := range list {
		items[i] = Item{
			Keyword:   kw.Keyword,
			LinkCount: kw.LinkCount,
			Title:     r.title(kw),
		}
	}

	return map[string]any{
		"Items":       items,
		"Query":       view.Query,
		"Suggestions": view.Suggestions,
	}
}

func (r *Renderer) title(kw Keyword) string {
	if !r.trackClicks {
		return LinkLabel(kw.LinkCount)
	}
	return ClickLabel(kw.ClickCount) + ", " + LinkLabel(kw.LinkCount)
}
