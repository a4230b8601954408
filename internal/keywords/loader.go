package keywords

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3/client"
)

// Result is the outcome of a load: either the working list or the reason it
// could not be built.
type Result struct {
	Keywords []Keyword
	Err      error
}

// OK reports whether the load succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Loader fetches the keyword index from a go2 backend.
type Loader struct {
	endpoint string
	client   *client.Client
	timeout  time.Duration
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithTimeout bounds each fetch. The default is no timeout.
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		l.timeout = d
	}
}

// NewLoader creates a loader for the given index URL, e.g.
// "http://localhost:3000/api/keywords".
func NewLoader(endpoint string, opts ...LoaderOption) *Loader {
	l := &Loader{
		endpoint: endpoint,
		client:   client.New(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Endpoint returns the index URL this loader fetches.
func (l *Loader) Endpoint() string {
	return l.endpoint
}

// Load performs a single fetch of the index. It never retries.
func (l *Loader) Load(ctx context.Context) Result {
	cfg := client.Config{
		Ctx:    ctx,
		Header: map[string]string{"Accept": "application/json"},
	}
	if l.timeout > 0 {
		cfg.Timeout = l.timeout
	}

	resp, err := l.client.Get(l.endpoint, cfg)
	if err != nil {
		return Result{Err: fmt.Errorf("failed to fetch %s: %w", l.endpoint, err)}
	}
	defer resp.Close()

	if status := resp.StatusCode(); status >= 400 {
		return Result{Err: fmt.Errorf("%w %d from %s", ErrUnexpectedStatus, status, l.endpoint)}
	}

	list, err := DecodeIndex(bytes.NewReader(resp.Body()))
	if err != nil {
		return Result{Err: fmt.Errorf("failed to decode %s: %w", l.endpoint, err)}
	}
	return Result{Keywords: list}
}
