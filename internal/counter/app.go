// Package counter is the High-Five counter app: one page with a heading that
// shows a count and two buttons that change it.
package counter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lightmix/lightmix"
	"github.com/lightmix/lightmix/chirouter"
	"github.com/lightmix/lightmix/internal/app"
	"github.com/sirupsen/logrus"
)

const sweepInterval = time.Minute

// NewHandler builds the counter app. Idle views are unmounted in the
// background until ctx is cancelled.
func NewHandler(ctx context.Context, log *logrus.Logger) (http.Handler, error) {
	in := NewInstances()
	go in.Run(ctx, sweepInterval, func(n int) {
		log.WithField("removed", n).Debug("unmounted idle counter views")
	})
	return newHandler(in, log)
}

func newHandler(in *Instances, log *logrus.Logger) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, middleware.GetHead)
	r.NotFound(app.NotFound(Resolve, errorHandler))

	sp := lightmix.New(
		lightmix.WithErrorHandler(errorHandler),
		lightmix.WithMiddlewares(app.LogRequests(log)),
	)
	router := chirouter.NewChiRouter(r)
	if err := sp.MountPages(router, pages{}, "/", "High-Five counter", in); err != nil {
		return nil, fmt.Errorf("mount pages: %w", err)
	}
	if routes, err := lightmix.PrintRoutes("/", pages{}, in); err == nil {
		log.Debugf("registered pages:\n%s", routes)
	}
	return router, nil
}

// errorHandler asks htmx clients of an unmounted view to reload, which mounts
// a new view. Everything else goes to the app error handler.
func errorHandler(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr lightmix.HTTPError
	if htmx.IsHTMX(r) && errors.As(err, &httpErr) && httpErr.Code == http.StatusNotFound {
		app.Logger(r.Context()).WithError(err).Info("stale counter view, reloading client")
		if err := htmx.NewResponse().Refresh(true).Write(w); err != nil {
			app.Logger(r.Context()).WithError(err).Warn("write refresh response")
		}
		return
	}
	app.ErrorHandler(w, r, err)
}
