// Package views holds the HTML templates rendered by the server.
package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v3"
)

//go:embed *.html layouts/*.html partials/*.html
var FS embed.FS

// NewEngine returns a template engine over the embedded views.
func NewEngine(reload bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(FS), ".html")
	engine.Reload(reload)
	return engine
}
