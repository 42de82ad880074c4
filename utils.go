package lightmix

import (
	"bytes"
	"net/http"
	"sync"
)

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// buffered holds the body of a response until the component has rendered
// completely, so a failing component never leaves half a page behind.
type buffered struct {
	http.ResponseWriter
	buf *bytes.Buffer
}

func newBuffered(w http.ResponseWriter) buffered {
	return buffered{ResponseWriter: w, buf: bufferPool.Get().(*bytes.Buffer)}
}

func (w buffered) Write(b []byte) (int, error) {
	return w.buf.Write(b)
}

func (w buffered) flush() error {
	_, err := w.ResponseWriter.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func (w buffered) release() {
	w.buf.Reset()
	bufferPool.Put(w.buf)
}
