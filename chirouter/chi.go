// Package chirouter adapts a go-chi router to lightmix.Router.
package chirouter

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lightmix/lightmix"
)

type chiRouter struct {
	router chi.Router
}

// NewChiRouter wraps r so page trees can be mounted on it.
func NewChiRouter(r chi.Router) lightmix.Router {
	return &chiRouter{router: r}
}

func (r *chiRouter) Route(path string, fn func(lightmix.Router)) {
	path = chiPattern(path)
	if path == "/" {
		fn(r)
		return
	}
	r.router.Route(path, func(r chi.Router) {
		fn(&chiRouter{router: r})
	})
}

func (r *chiRouter) HandleMethod(method, path string, handler http.Handler) {
	path = chiPattern(path)
	if method == lightmix.MethodAll || method == "" {
		r.router.Handle(path, handler)
	} else {
		r.router.Method(method, path, handler)
	}
}

func (r *chiRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// chiPattern converts ServeMux pattern syntax: chi routes match exactly, so
// {$} is dropped, and {name...} becomes a catch-all.
func chiPattern(p string) string {
	p = strings.TrimSuffix(p, "{$}")
	if i := strings.LastIndex(p, "{"); i >= 0 && strings.HasSuffix(p, "...}") {
		p = p[:i] + "*"
	}
	if p == "" {
		return "/"
	}
	return p
}
