package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	var resolved []string
	resolve := func(path string) (string, bool) {
		resolved = append(resolved, path)
		return "home", path == "/"
	}
	h := NotFound(resolve, ErrorHandler)

	tests := []struct {
		method, path string
		code         int
		body         string
	}{
		{http.MethodGet, "/about", http.StatusNotFound, "Not Found\n"},
		{http.MethodGet, "/index.html", http.StatusNotFound, "Not Found\n"},
		{http.MethodPost, "/", http.StatusMethodNotAllowed, "Method Not Allowed\n"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.code, rec.Code, tt.path)
		assert.Equal(t, tt.body, rec.Body.String(), tt.path)
	}
	assert.Equal(t, []string{"/about", "/index.html", "/"}, resolved)
}
