package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gofiber/fiber/v3"

	"go2/internal/config"
	"go2/internal/keywords"
	"go2/internal/models"
	"go2/internal/testutil"
	"go2/views"
)

var testSeeds = []models.Seed{
	{Keyword: "wiki", Clicks: 4, Links: []models.SeedLink{
		{URL: "https://en.wikipedia.org", Title: "english wikipedia"},
		{URL: "https://de.wikipedia.org", Title: "german wikipedia"},
	}},
	{Keyword: "github", Clicks: 9, Links: []models.SeedLink{{URL: "https://github.com"}}},
	{Keyword: "empty"},
}

func testConfig() *config.Config {
	return &config.Config{SiteTitle: "go2", SiteTagline: "Keyword redirector"}
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		Views:       views.NewEngine(false),
		ViewsLayout: "layouts/main",
	})
}

// loadedController returns a controller loaded from an index with the given body.
func loadedController(t *testing.T, body string) *keywords.Controller {
	t.Helper()
	ctrl := keywords.NewController(keywords.NewLoader(testutil.ServeIndex(t, body)), keywords.NewRenderer(views.NewEngine(false), true))
	if res := ctrl.Load(context.Background()); !res.OK() {
		t.Fatalf("Load failed: %v", res.Err)
	}
	return ctrl
}

func parse(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	return doc
}

const testIndex = `{
	"github": {"Links": {"1": {}}, "Clicks": 2},
	"gitlab": {"Links": {"2": {}, "3": {}}, "Clicks": 8},
	"docs":   {"Links": {"4": {}}, "Clicks": 5}
}`

func TestKeywordHandler_Index(t *testing.T) {
	ctrl := loadedController(t, testIndex)
	h := NewKeywordHandler(ctrl, testConfig())
	app := newTestApp()
	app.Get("/", h.Index)

	resp, body := testutil.Get(t, app, "/?q=git")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	doc := parse(t, body)
	if v, _ := doc.Find("#go2input").Attr("value"); v != "git" {
		t.Errorf("input value = %q, want git", v)
	}
	var got []string
	doc.Find("#keywordslist a.go2keyword").Each(func(_ int, s *goquery.Selection) {
		got = append(got, s.Text())
	})
	if strings.Join(got, ",") != "go2/gitlab,go2/github" {
		t.Errorf("list = %v", got)
	}
	if q := ctrl.CurrentView().Query; q != "git" {
		t.Errorf("current query = %q", q)
	}
}

func TestKeywordHandler_Filter(t *testing.T) {
	ctrl := loadedController(t, testIndex)
	h := NewKeywordHandler(ctrl, testConfig())
	app := newTestApp()
	app.Get("/keywords", h.Filter)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"all", "", "go2/gitlab,go2/docs,go2/github"},
		{"upper case", "DOC", "go2/docs"},
		{"no match", "zzz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := testutil.Get(t, app, "/keywords?q="+tt.query)
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if ct := resp.Header.Get(fiber.HeaderContentType); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("content type = %q", ct)
			}
			if strings.Contains(body, "<html") {
				t.Error("fragment was wrapped in the layout")
			}

			var got []string
			parse(t, "<ul>"+body+"</ul>").Find("a.go2keyword").Each(func(_ int, s *goquery.Selection) {
				got = append(got, s.Text())
			})
			if strings.Join(got, ",") != tt.want {
				t.Errorf("list = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestKeywordHandler_FilterUnloaded(t *testing.T) {
	ctrl := keywords.NewController(keywords.NewLoader("http://127.0.0.1:1/api/keywords"), keywords.NewRenderer(views.NewEngine(false), true))
	app := newTestApp()
	app.Get("/keywords", NewKeywordHandler(ctrl, testConfig()).Filter)

	resp, body := testutil.Get(t, app, "/keywords?q=a")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if strings.TrimSpace(body) != "" {
		t.Errorf("expected empty fragment, got %q", body)
	}
}

func TestRedirectHandler(t *testing.T) {
	store := testutil.SeededStore(t, testSeeds...)
	app := newTestApp()
	app.Get("/:keyword", NewRedirectHandler(store, testConfig()).Redirect)

	t.Run("redirects to the newest link", func(t *testing.T) {
		resp, _ := testutil.Get(t, app, "/Wiki")
		if resp.StatusCode != fiber.StatusTemporaryRedirect {
			t.Fatalf("status = %d, want 307", resp.StatusCode)
		}
		if loc := resp.Header.Get(fiber.HeaderLocation); loc != "https://de.wikipedia.org" {
			t.Errorf("Location = %q", loc)
		}

		deadline := time.Now().Add(2 * time.Second)
		for {
			list, err := store.GetKeywordList(context.Background(), "wiki")
			if err != nil {
				t.Fatalf("GetKeywordList() error = %v", err)
			}
			if list.Clicks == 5 {
				break
			}
			if time.Now().After(deadline) {
				t.Fatalf("clicks = %d, want 5", list.Clicks)
			}
			time.Sleep(10 * time.Millisecond)
		}
	})

	t.Run("dot shows the list", func(t *testing.T) {
		resp, body := testutil.Get(t, app, "/.wiki")
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		doc := parse(t, body)
		var titles []string
		doc.Find("a.go2link").Each(func(_ int, s *goquery.Selection) {
			titles = append(titles, s.Text())
		})
		if strings.Join(titles, ",") != "german wikipedia,english wikipedia" {
			t.Errorf("links = %v", titles)
		}
		if !strings.Contains(body, "2 links") {
			t.Error("link count label missing")
		}
	})

	t.Run("keyword without links shows the list", func(t *testing.T) {
		resp, body := testutil.Get(t, app, "/empty")
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if !strings.Contains(body, "No links yet.") {
			t.Error("empty list message missing")
		}
	})

	t.Run("unknown keyword", func(t *testing.T) {
		resp, body := testutil.Get(t, app, "/nope")
		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
		if !strings.Contains(body, "nope") {
			t.Error("error page does not name the keyword")
		}
	})

	t.Run("invalid keyword", func(t *testing.T) {
		resp, _ := testutil.Get(t, app, "/bad%20word")
		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
	})
}

func TestRedirectHandler_Behaviors(t *testing.T) {
	store := testutil.SeededStore(t,
		models.Seed{Keyword: "listed", Behavior: models.BehaviorList, Links: []models.SeedLink{{URL: "https://a.example", Title: "a"}}},
		models.Seed{Keyword: "pinned", Behavior: "https://old.example", Links: []models.SeedLink{
			{URL: "https://old.example"},
			{URL: "https://new.example"},
		}},
		models.Seed{Keyword: "top", Behavior: models.BehaviorTop, Links: []models.SeedLink{
			{URL: "https://old.example"},
			{URL: "https://new.example"},
		}},
	)
	app := newTestApp()
	app.Get("/:keyword", NewRedirectHandler(store, testConfig()).Redirect)

	tests := []struct {
		path     string
		status   int
		location string
	}{
		{"/listed", fiber.StatusOK, ""},
		{"/pinned", fiber.StatusTemporaryRedirect, "https://old.example"},
		// No clicks yet, so top falls to the freshest link.
		{"/top", fiber.StatusTemporaryRedirect, "https://new.example"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := testutil.Get(t, app, tt.path)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if loc := resp.Header.Get(fiber.HeaderLocation); loc != tt.location {
				t.Errorf("Location = %q, want %q", loc, tt.location)
			}
			if tt.status == fiber.StatusOK && parse(t, body).Find("a.go2link").Length() != 1 {
				t.Error("list page does not show the link")
			}
		})
	}
}

func TestProbeHandler(t *testing.T) {
	store := testutil.SeededStore(t, testSeeds...)
	ctrl := loadedController(t, testIndex)
	h := NewProbeHandler(store, ctrl)

	app := fiber.New()
	app.Get("/healthz", h.Liveness)
	app.Get("/readyz", h.Readiness)

	if resp, _ := testutil.Get(t, app, "/healthz"); resp.StatusCode != fiber.StatusOK {
		t.Errorf("liveness status = %d", resp.StatusCode)
	}

	resp, body := testutil.Get(t, app, "/readyz")
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("readiness status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"keywords":"loaded"`) || !strings.Contains(body, `"count":3`) {
		t.Errorf("readiness body = %s", body)
	}

	_ = store.Close()
	if resp, _ := testutil.Get(t, app, "/readyz"); resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("readiness with closed store = %d, want 503", resp.StatusCode)
	}
}
