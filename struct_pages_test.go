package lightmix

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeter struct{ greeting string }

type helloPage struct{}

func (helloPage) Props(r *http.Request, g *greeter) (string, error) {
	name := r.URL.Query().Get("name")
	if name == "" {
		return "", NewHTTPError(http.StatusBadRequest, "name required")
	}
	return g.greeting + ", " + name, nil
}

func (helloPage) Page(msg string) testComponent {
	return testComponent{"<html>" + msg + "</html>"}
}

func (helloPage) Greeting(msg string) testComponent {
	return testComponent{msg}
}

type brokenPage struct{}

func (brokenPage) Page() failingComponent { return failingComponent{} }

type errHandlerPage struct{}

func (errHandlerPage) ServeHTTP(w http.ResponseWriter, r *http.Request) error {
	return errors.New("boom")
}

type configPage struct{}

func (configPage) PageConfig(r *http.Request) (string, error) {
	if r.URL.Query().Has("fail") {
		return "", errors.New("no config")
	}
	return "Other", nil
}

func (configPage) Page() testComponent  { return testComponent{"page"} }
func (configPage) Other() testComponent { return testComponent{"other"} }

type mwPage struct{}

func (mwPage) Page() testComponent { return testComponent{"mw page"} }

func (mwPage) Middlewares() []MiddlewareFunc {
	return []MiddlewareFunc{headerMiddleware("X-Page", "1"), headerMiddleware("X-Page", "2")}
}

func headerMiddleware(key, value string) MiddlewareFunc {
	return func(next http.Handler, pn *PageNode) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(key, value+":"+pn.Name)
			next.ServeHTTP(w, r)
		})
	}
}

type appPages struct {
	hello  helloPage       `route:"GET /hello Hello"`
	broken brokenPage      `route:"/broken"`
	errh   errHandlerPage  `route:"POST /err"`
	config configPage      `route:"/config"`
	mw     mwPage          `route:"/mw"`
	plain  TestHandlerPage `route:"/plain"`
}

func mountTestPages(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	sp := New(opts...)
	err := sp.MountPages(NewRouter(mux), appPages{}, "/", "Test", &greeter{greeting: "Hello"})
	require.NoError(t, err)
	return mux
}

func serve(h http.Handler, method, target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMountPagesRendersPage(t *testing.T) {
	h := mountTestPages(t)
	rec := serve(h, http.MethodGet, "/hello?name=World")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>Hello, World</html>", rec.Body.String())

	rec = serve(h, http.MethodPost, "/hello?name=World")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = serve(h, http.MethodGet, "/plain")
	assert.Equal(t, "TestHttpHandler", rec.Body.String())
}

func TestPropsError(t *testing.T) {
	h := mountTestPages(t)
	rec := serve(h, http.MethodGet, "/hello")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name required\n", rec.Body.String())
}

func TestHTMXPartials(t *testing.T) {
	h := mountTestPages(t, WithDefaultPageConfig(HTMXPageConfig))

	rec := serve(h, http.MethodGet, "/hello?name=htmx", "HX-Request", "true", "HX-Target", "greeting")
	assert.Equal(t, "Hello, htmx", rec.Body.String())
	assert.Empty(t, rec.Header().Get("HX-Retarget"))

	rec = serve(h, http.MethodGet, "/hello?name=htmx", "HX-Request", "true", "HX-Target", "somewhere-else")
	assert.Equal(t, "<html>Hello, htmx</html>", rec.Body.String())
	assert.Equal(t, "body", rec.Header().Get("HX-Retarget"))

	rec = serve(h, http.MethodGet, "/hello?name=plain", "HX-Target", "greeting")
	assert.Equal(t, "<html>Hello, plain</html>", rec.Body.String())
}

func TestPageConfigMethod(t *testing.T) {
	h := mountTestPages(t, WithDefaultPageConfig(HTMXPageConfig))
	assert.Equal(t, "other", serve(h, http.MethodGet, "/config").Body.String())
	assert.Equal(t, http.StatusInternalServerError, serve(h, http.MethodGet, "/config?fail").Code)
}

func TestFailedRenderWritesNoPartialOutput(t *testing.T) {
	var got error
	h := mountTestPages(t, WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
		got = err
		http.Error(w, "custom error", http.StatusServiceUnavailable)
	}))
	rec := serve(h, http.MethodGet, "/broken")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "custom error\n", rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "half a page")
	assert.EqualError(t, got, "render failed")
}

func TestErrHandlerPage(t *testing.T) {
	h := mountTestPages(t)
	rec := serve(h, http.MethodPost, "/err")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error\n", rec.Body.String())
}

func TestMiddlewares(t *testing.T) {
	var order []string
	global := func(name string) MiddlewareFunc {
		return func(next http.Handler, pn *PageNode) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+":"+pn.Name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := mountTestPages(t, WithMiddlewares(global("g1"), global("g2")))

	rec := serve(h, http.MethodGet, "/mw")
	assert.Equal(t, "mw page", rec.Body.String())
	// page middlewares wrap in declaration order, so the last one runs first
	assert.Equal(t, []string{"2:mw", "1:mw"}, rec.Header().Values("X-Page"))
	assert.Equal(t, []string{"g2:mw", "g1:mw"}, order)
}

type missingPage struct{}

func (missingPage) Partial() testComponent { return testComponent{} }

type missingDepPage struct{}

func (missingDepPage) Init(*greeter) {}

func TestMountPagesErrors(t *testing.T) {
	tests := []struct {
		name string
		page any
		want string
	}{
		{
			name: "component without Page",
			page: struct {
				p missingPage `route:"/p"`
			}{},
			want: "does not have a Page component",
		},
		{
			name: "missing dependency",
			page: struct {
				p missingDepPage `route:"/p"`
			}{},
			want: "requires argument of type *lightmix.greeter",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().MountPages(NewRouter(http.NewServeMux()), tt.page, "/", "")
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), fmt.Sprintf("error %q should contain %q", err, tt.want))
		})
	}
}

type editItemPage struct{}

func (editItemPage) Page() testComponent { return testComponent{"edit"} }

type linksPage struct{}

func (linksPage) ServeHTTP(w http.ResponseWriter, r *http.Request) error {
	u, err := URLFor(r.Context(), editItemPage{}, 42)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, u)
	return err
}

type urlPages struct {
	edit  editItemPage `route:"/items/{id}/edit"`
	links linksPage    `route:"/links"`
}

func TestURLForInsidePage(t *testing.T) {
	mux := http.NewServeMux()
	require.NoError(t, New().MountPages(NewRouter(mux), urlPages{}, "/", ""))
	rec := serve(mux, http.MethodGet, "/links")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/items/42/edit", rec.Body.String())
}
