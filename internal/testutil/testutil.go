// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v3"

	"go2/internal/models"
	"go2/internal/sqlitedb"
)

// SeededStore opens a sqlite link database in a temp dir and seeds it.
// The store is closed when the test ends.
func SeededStore(t *testing.T, seeds ...models.Seed) *sqlitedb.Store {
	t.Helper()

	store, err := sqlitedb.Open(filepath.Join(t.TempDir(), "go2.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.SeedKeywords(context.Background(), seeds); err != nil {
		t.Fatalf("failed to seed test database: %v", err)
	}
	return store
}

// ServeIndex starts an HTTP server that answers every request with body as
// JSON and returns its URL.
func ServeIndex(t *testing.T, body string) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

// Get performs a GET against app and returns the response with its body read.
func Get(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("request %s failed: %v", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body of %s: %v", target, err)
	}
	return resp, string(body)
}
