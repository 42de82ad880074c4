// Package site is the lightmix site shell: a header linking back to the root
// and the site stylesheet.
package site

import (
	"context"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/lightmix/lightmix"
	"github.com/lightmix/lightmix/internal/app"
	"github.com/sirupsen/logrus"
)

type pages struct {
	home   Home       `route:"GET /{$} lightmix"`
	assets assetsPage `route:"GET /assets/"`
}

func (Home) Page() templ.Component {
	return document("lightmix", Stylesheet, header())
}

// Header is rendered alone for htmx requests that target the header.
func (Home) Header() templ.Component {
	return header()
}

// NewHandler builds the site shell.
func NewHandler(_ context.Context, log *logrus.Logger) (http.Handler, error) {
	mux := http.NewServeMux()
	router := lightmix.NewRouter(mux)
	sp := lightmix.New(
		lightmix.WithDefaultPageConfig(lightmix.HTMXPageConfig),
		lightmix.WithErrorHandler(app.ErrorHandler),
		lightmix.WithMiddlewares(app.LogRequests(log)),
	)
	if err := sp.MountPages(router, pages{}, "/", "lightmix"); err != nil {
		return nil, fmt.Errorf("mount pages: %w", err)
	}
	// catch-all below every mounted page
	mux.Handle("/", app.NotFound(Resolve, app.ErrorHandler))
	if routes, err := lightmix.PrintRoutes("/", pages{}); err == nil {
		log.Debugf("registered pages:\n%s", routes)
	}
	return router, nil
}
