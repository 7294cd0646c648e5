//go:build !dev

package resources

import (
	"embed"
	"net/http"
	"strings"
	"sync"
	"time"
)

//go:embed static/*
var staticFS embed.FS

var stylesheet = sync.OnceValues(func() (string, error) {
	raw, err := staticFS.ReadFile("static/" + StylesheetName)
	if err != nil {
		return "", err
	}
	return MinifyCSS(string(raw))
})

// Stylesheet returns the minified dashboard stylesheet.
func Stylesheet() (string, error) {
	return stylesheet()
}

// Handler returns an HTTP handler for serving static files.
// Assets are embedded in the binary and minified once on first use.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/static/")
		if name != StylesheetName {
			http.NotFound(w, r)
			return
		}
		css, err := Stylesheet()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		// Cache embedded static assets for 1 year (they never change in prod)
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		http.ServeContent(w, r, name, time.Time{}, strings.NewReader(css))
	})
}
