//go:build !swagger

package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountSwagger_StubServesNothing(t *testing.T) {
	h := newTestMux(&mockImages{}, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected /swagger to be unmounted without the swagger tag, got %d", w.Code)
	}
}
