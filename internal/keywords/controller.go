package keywords

import (
	"context"
	"log/slog"
	"sync"
)

// State is the lifecycle state of a Controller.
type State int

const (
	// StateUnloaded means no load has succeeded yet; the list is empty.
	StateUnloaded State = iota
	// StateLoaded means a working list is available.
	StateLoaded
)

func (s State) String() string {
	if s == StateLoaded {
		return "loaded"
	}
	return "unloaded"
}

// Controller owns the working list and the current view of the keyword browser.
type Controller struct {
	loader   *Loader
	renderer *Renderer

	mu      sync.RWMutex
	state   State
	working []Keyword
	current View
}

// NewController creates a controller in the unloaded state.
func NewController(loader *Loader, renderer *Renderer) *Controller {
	return &Controller{loader: loader, renderer: renderer}
}

// Load fetches the index and, on success, replaces the working list and resets
// the current view to the full list. A failed load is logged and leaves the
// existing state untouched.
func (c *Controller) Load(ctx context.Context) Result {
	res := c.loader.Load(ctx)
	if !res.OK() {
		slog.Error("failed to load keywords", "endpoint", c.loader.Endpoint(), "error", res.Err)
		return res
	}

	c.mu.Lock()
	c.working = res.Keywords
	c.state = StateLoaded
	c.current = View{Keywords: res.Keywords}
	c.mu.Unlock()

	slog.Debug("keywords loaded", "count", len(res.Keywords))
	return res
}

// OnQueryChange filters the working list by query and makes the result the
// current view.
func (c *Controller) OnQueryChange(query string) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := c.viewLocked(query)
	c.current = view
	return view
}

// View computes the view for query without touching the current view.
func (c *Controller) View(query string) View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewLocked(query)
}

func (c *Controller) viewLocked(query string) View {
	if c.state == StateUnloaded {
		return View{Query: query}
	}
	view := View{
		Query:    query,
		Keywords: Filter(c.working, query),
	}
	if len(view.Keywords) == 0 && query != "" {
		view.Suggestions = Suggest(c.working, query)
	}
	return view
}

// CurrentView returns the most recently produced view.
func (c *Controller) CurrentView() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Keywords returns the working list.
func (c *Controller) Keywords() []Keyword {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.working
}

// Renderer returns the renderer used for views.
func (c *Controller) Renderer() *Renderer {
	return c.renderer
}
