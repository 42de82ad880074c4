package app

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackielii/ctxkey"
	"github.com/lightmix/lightmix"
	"github.com/sirupsen/logrus"
)

var logCtx = ctxkey.New[*logrus.Entry]("lightmix.app.logger", nil)

// Logger returns the request scoped logger stored by LogRequests.
// Outside a request it returns a logger that discards everything.
func Logger(ctx context.Context) *logrus.Entry {
	if entry := logCtx.Value(ctx); entry != nil {
		return entry
	}
	return logrus.NewEntry(discard)
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// LogRequests logs method, path, status and duration of every page request.
func LogRequests(log *logrus.Logger) lightmix.MiddlewareFunc {
	return func(next http.Handler, pn *lightmix.PageNode) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			entry := log.WithFields(logrus.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"page":   pn.Name,
			})
			if id := middleware.GetReqID(r.Context()); id != "" {
				entry = entry.WithField("request_id", id)
			}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(logCtx.WithValue(r.Context(), entry)))
			entry.WithFields(logrus.Fields{
				"status":   statusOrOK(ww.Status()),
				"bytes":    ww.BytesWritten(),
				"duration": time.Since(start),
			}).Info("request")
		})
	}
}

// a handler that never calls WriteHeader answered 200
func statusOrOK(status int) int {
	if status == 0 {
		return http.StatusOK
	}
	return status
}

// ErrorHandler logs page errors and writes them with lightmix.DefaultErrorHandler.
func ErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	Logger(r.Context()).WithError(err).Warn("page error")
	lightmix.DefaultErrorHandler(w, r, err)
}
