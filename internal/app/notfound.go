package app

import (
	"net/http"

	"github.com/lightmix/lightmix"
)

// NotFound answers requests no mounted page matched. resolve is the app's
// route table: a path it knows was reached with a method no page serves, so
// it gets 405. Anything else is 404.
func NotFound[R any](resolve func(path string) (R, bool), onError lightmix.ErrorHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := resolve(r.URL.Path); ok {
			onError(w, r, lightmix.NewHTTPError(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed)))
			return
		}
		onError(w, r, lightmix.NotFound())
	}
}
