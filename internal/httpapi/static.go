package httpapi

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// mountStatic serves the browser UI from staticDir.
func mountStatic(r chi.Router, dir string) {
	page := func(name string) http.HandlerFunc {
		path := filepath.Join(dir, name)
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			http.ServeFile(w, r, path)
		}
	}
	r.Get("/", page("index.html"))
	r.Get("/image-generator", page("image_generator.html"))
	r.Handle("/static/*", noDirListing(http.StripPrefix("/static/", http.FileServer(http.Dir(dir)))))
}

// noDirListing answers 404 for directory paths so only files are served.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
