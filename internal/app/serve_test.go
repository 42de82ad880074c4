package app

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lightmix/lightmix"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestServeListenerShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	go func() { done <- ServeListener(ctx, ln, h, quietLogger()) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	require.NoError(t, <-done)
}

func TestServeListenFailure(t *testing.T) {
	err := Serve(context.Background(), Config{Addr: "not an address"}, http.NotFoundHandler(), quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on not an address")
}

type loggedPage struct{}

func (loggedPage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	Logger(r.Context()).Info("inside")
	w.WriteHeader(http.StatusTeapot)
}

func TestLogRequests(t *testing.T) {
	var out bytes.Buffer
	log := logrus.New()
	log.SetOutput(&out)
	log.SetFormatter(&logrus.JSONFormatter{})

	type pages struct {
		teapot loggedPage `route:"GET /tea Tea"`
	}
	mux := http.NewServeMux()
	sp := lightmix.New(lightmix.WithMiddlewares(LogRequests(log)))
	require.NoError(t, sp.MountPages(lightmix.NewRouter(mux), pages{}, "/", "Test"))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tea", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	logged := out.String()
	assert.Contains(t, logged, `"msg":"inside"`)
	assert.Contains(t, logged, `"status":418`)
	assert.Contains(t, logged, `"page":"teapot"`)
	assert.Contains(t, logged, `"path":"/tea"`)
}

func TestLoggerOutsideRequest(t *testing.T) {
	assert.NotPanics(t, func() { Logger(context.Background()).Info("dropped") })
}

func TestErrorHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ErrorHandler(rec, req, lightmix.NewHTTPError(http.StatusNotFound, "gone"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "gone\n", rec.Body.String())
}
