package lightmix

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/angelofallars/htmx-go"
)

// MiddlewareFunc wraps the handler of a page. The node is the page being wrapped.
type MiddlewareFunc func(http.Handler, *PageNode) http.Handler

// ErrorHandler renders an error returned while serving a page.
type ErrorHandler func(http.ResponseWriter, *http.Request, error)

// PageConfigFunc picks the name of the component to render for a request.
type PageConfigFunc func(*http.Request) (string, error)

// StructPages mounts page trees onto routers.
type StructPages struct {
	onError           ErrorHandler
	middlewares       []MiddlewareFunc
	defaultPageConfig PageConfigFunc
}

// Option configures a StructPages.
type Option func(*StructPages)

// New creates a StructPages with the given options.
func New(options ...Option) *StructPages {
	sp := &StructPages{
		onError: DefaultErrorHandler,
	}
	for _, opt := range options {
		opt(sp)
	}
	return sp
}

// WithErrorHandler sets the handler for errors returned by pages.
func WithErrorHandler(onError ErrorHandler) Option {
	return func(sp *StructPages) {
		sp.onError = onError
	}
}

// WithMiddlewares adds middlewares applied to every page, outermost last.
func WithMiddlewares(middlewares ...MiddlewareFunc) Option {
	return func(sp *StructPages) {
		sp.middlewares = append(sp.middlewares, middlewares...)
	}
}

// WithDefaultPageConfig sets the component selector used by pages without a
// PageConfig method.
func WithDefaultPageConfig(config PageConfigFunc) Option {
	return func(sp *StructPages) {
		sp.defaultPageConfig = config
	}
}

// DefaultErrorHandler writes the status of an HTTPError, or 500 for any other error.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		http.Error(w, httpErr.Message, httpErr.Code)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// MountPages parses the page tree rooted at page and registers every page on
// router. args are injected into page methods by type.
func (sp *StructPages) MountPages(router Router, page any, route, title string, args ...any) error {
	pc, err := parsePageTree(route, page, args...)
	if err != nil {
		return err
	}
	pc.root.Title = title
	return sp.registerPageItem(router, pc, pc.root)
}

func (sp *StructPages) registerPageItem(router Router, pc *parseContext, page *PageNode) error {
	if page.Route == "" {
		return fmt.Errorf("page item route is empty: %s", page.Name)
	}
	if page.Children != nil {
		var err error
		// nested pages are registered first to avoid conflicts with the parent route
		router.Route(page.Route, func(router Router) {
			for _, child := range page.Children {
				if err = sp.registerPageItem(router, pc, child); err != nil {
					return
				}
			}
		})
		if err != nil {
			return err
		}
	}
	handler, err := sp.buildHandler(page, pc)
	if err != nil {
		return err
	}
	if handler == nil {
		return nil
	}
	if page.Middlewares != nil {
		res, err := pc.callMethod(page, page.Middlewares)
		if err != nil {
			return fmt.Errorf("error calling Middlewares method on %s: %w", page.Name, err)
		}
		if len(res) != 1 {
			return fmt.Errorf("middlewares method on %s did not return single result", page.Name)
		}
		middlewares, ok := res[0].Interface().([]MiddlewareFunc)
		if !ok {
			return fmt.Errorf("middlewares method on %s did not return []MiddlewareFunc", page.Name)
		}
		for _, mw := range middlewares {
			handler = mw(handler, page)
		}
	}
	for _, middleware := range sp.middlewares {
		handler = middleware(handler, page)
	}
	handler = withPcCtx(pc)(handler, page)
	router.HandleMethod(page.Method, page.Route, handler)
	return nil
}

func (sp *StructPages) buildHandler(page *PageNode, pc *parseContext) (http.Handler, error) {
	if h := sp.getHttpHandler(page.Value); h != nil {
		return h, nil
	}
	if len(page.Components) == 0 {
		return nil, nil
	}
	if page.Components["Page"] == nil {
		return nil, fmt.Errorf("page item %s does not have a Page component", page.Name)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, err := sp.componentName(pc, page, r)
		if err != nil {
			sp.onError(w, r, fmt.Errorf("error selecting component on %s: %w", page.Name, err))
			return
		}
		method := page.Components[name]
		if method == nil {
			// the target is not a partial of this page: swap the whole body
			method = page.Components["Page"]
			if htmx.IsHTMX(r) {
				w.Header().Set("HX-Retarget", "body")
			}
		}

		var props []reflect.Value
		if page.Props != nil {
			props, err = pc.callMethod(page, page.Props, reflect.ValueOf(r))
			if err == nil {
				props, err = extractError(props)
			}
			if err != nil {
				sp.onError(w, r, fmt.Errorf("error calling Props method on %s: %w", page.Name, err))
				return
			}
		}

		comp, err := pc.callComponentMethod(page, method, props...)
		if err != nil {
			sp.onError(w, r, err)
			return
		}
		buf := newBuffered(w)
		defer buf.release()
		if err := comp.Render(r.Context(), buf); err != nil {
			sp.onError(w, r, err)
			return
		}
		if err := buf.flush(); err != nil {
			sp.onError(w, r, err)
		}
	}), nil
}

func (sp *StructPages) componentName(pc *parseContext, page *PageNode, r *http.Request) (string, error) {
	if page.Config != nil {
		res, err := pc.callMethod(page, page.Config, reflect.ValueOf(r))
		if err != nil {
			return "", err
		}
		res, err = extractError(res)
		if err != nil {
			return "", err
		}
		if len(res) != 1 || res[0].Kind() != reflect.String {
			return "", fmt.Errorf("PageConfig method on %s must return (string, error)", page.Name)
		}
		return res[0].String(), nil
	}
	if sp.defaultPageConfig != nil {
		return sp.defaultPageConfig(r)
	}
	return "Page", nil
}

type httpErrHandler interface {
	ServeHTTP(http.ResponseWriter, *http.Request) error
}

var (
	errorType      = reflect.TypeOf((*error)(nil)).Elem()
	handlerType    = reflect.TypeOf((*http.Handler)(nil)).Elem()
	errHandlerType = reflect.TypeOf((*httpErrHandler)(nil)).Elem()
)

func extractError(args []reflect.Value) ([]reflect.Value, error) {
	var err error
	if len(args) >= 1 && args[len(args)-1].Type().AssignableTo(errorType) {
		i := args[len(args)-1].Interface()
		args = args[:len(args)-1]
		if i == nil {
			return args, nil
		}
		err = i.(error)
	}
	return args, err
}

func (sp *StructPages) getHttpHandler(v reflect.Value) http.Handler {
	if v.Type().Implements(handlerType) {
		return v.Interface().(http.Handler)
	}
	if v.Type().Implements(errHandlerType) {
		h := v.Interface().(httpErrHandler)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := h.ServeHTTP(w, r); err != nil {
				sp.onError(w, r, err)
			}
		})
	}
	return nil
}
