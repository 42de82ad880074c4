package lightmix

import (
	"context"
	"errors"
	"io"
	"net/http"
)

type testComponent struct {
	content string
}

func (c testComponent) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, c.content)
	return err
}

// failingComponent writes part of its output before failing.
type failingComponent struct{}

func (failingComponent) Render(ctx context.Context, w io.Writer) error {
	_, _ = io.WriteString(w, "half a page")
	return errors.New("render failed")
}

type TestHandlerPage struct{}

func (TestHandlerPage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("TestHttpHandler"))
}
