package httpapi

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStaticUI(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"index.html":           "<h1>chat</h1>",
		"image_generator.html": "<h1>images</h1>",
		"app.js":               "console.log(1)",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	SetStaticDir(dir)
	defer SetStaticDir("")

	h := newTestMux(&mockImages{}, nil)
	for path, want := range map[string]string{
		"/":                "<h1>chat</h1>",
		"/image-generator": "<h1>images</h1>",
		"/static/app.js":   "console.log(1)",
	} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), want) {
			t.Fatalf("%s: status=%d body=%q", path, w.Code, w.Body.String())
		}
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/missing.css", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing asset, got %d", w.Code)
	}
}

func TestStaticUIDisabledByDefault(t *testing.T) {
	h := newTestMux(nil, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/image-generator", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without static dir, got %d", w.Code)
	}
}

func TestStaticUINoDirectoryListing(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "css"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "css", "site.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetStaticDir(dir)
	defer SetStaticDir("")
	h := newTestMux(nil, nil)

	for _, path := range []string{"/static/", "/static/css/"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, w.Code)
		}
		if strings.Contains(w.Body.String(), "site.css") {
			t.Fatalf("%s: directory contents listed: %q", path, w.Body.String())
		}
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil))
	if w.Code != http.StatusOK || w.Body.String() != "body{}" {
		t.Fatalf("file under subdirectory: status=%d body=%q", w.Code, w.Body.String())
	}
}
