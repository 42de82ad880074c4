package lightmix

import (
	"net/http"
	"strings"
)

// Router is an interface for registering HTTP routes.
// It lets lightmix work with different routing implementations.
type Router interface {
	HandleMethod(method, pattern string, handler http.Handler)
	Route(pattern string, fn func(Router))
	http.Handler
}

type stdRouter struct {
	router *http.ServeMux
	prefix string
}

// NewRouter creates a new router that wraps http.ServeMux.
// If router is nil, it uses http.DefaultServeMux.
//
// Example:
//
//	mux := http.NewServeMux()
//	router := lightmix.NewRouter(mux)
//	sp.MountPages(router, pages{}, "/", "My App")
func NewRouter(router *http.ServeMux) Router {
	if router == nil {
		router = http.DefaultServeMux
	}
	return &stdRouter{router: router}
}

func (r *stdRouter) Route(pattern string, fn func(Router)) {
	fn(&stdRouter{router: r.router, prefix: JoinPattern(r.prefix, pattern)})
}

func (r *stdRouter) HandleMethod(method, pattern string, handler http.Handler) {
	pattern = JoinPattern(r.prefix, pattern)
	if method != MethodAll && method != "" {
		pattern = method + " " + pattern
	}
	r.router.Handle(pattern, handler)
}

func (r *stdRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// JoinPattern joins a route prefix and a pattern, keeping the trailing slash
// and {$} marker of the pattern intact.
func JoinPattern(prefix, pattern string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	switch {
	case pattern == "" || pattern == "/":
		if prefix == "" {
			return "/"
		}
		return prefix
	case strings.HasPrefix(pattern, "/"):
		return prefix + pattern
	default:
		return prefix + "/" + pattern
	}
}
