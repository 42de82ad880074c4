package counter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/a-h/templ"
	"github.com/lightmix/lightmix/signal"
)

// ErrUnmounted is returned for events on a counter whose view is gone.
var ErrUnmounted = errors.New("counter view not mounted")

// Counter is the state of one mounted Home view. Events are applied one at a
// time; each write re-renders the heading.
type Counter struct {
	id     string
	mu     sync.Mutex
	count  *signal.Signal[int64]
	frame  []byte
	stop   func()
	closed bool
}

func newCounter(id string) *Counter {
	return newCounterAt(id, 0)
}

func newCounterAt(id string, initial int64) *Counter {
	c := &Counter{id: id, count: signal.New(initial)}
	c.frame = renderHeading(initial)
	// the subscription runs while c.mu is held by the event
	c.stop = c.count.Subscribe(func(v int64) {
		c.frame = renderHeading(v)
	})
	return c
}

// ID identifies the mounted view the counter belongs to.
func (c *Counter) ID() string { return c.id }

// Value returns the current count.
func (c *Counter) Value() int64 { return c.count.Get() }

// Up handles a click on "Up high!".
func (c *Counter) Up() (int64, error) { return c.add(1) }

// Down handles a click on "Down low!".
func (c *Counter) Down() (int64, error) { return c.add(-1) }

func (c *Counter) add(delta int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrUnmounted
	}
	return c.count.Update(func(v int64) int64 { return saturatingAdd(v, delta) }), nil
}

// Heading returns the last rendered heading markup.
func (c *Counter) Heading() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return bytes.Clone(c.frame)
}

// close detaches the heading renderer when the view is unmounted. Later
// events fail with ErrUnmounted.
func (c *Counter) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}

// saturatingAdd clamps at the int64 bounds instead of wrapping.
func saturatingAdd(a, b int64) int64 {
	s := a + b
	switch {
	case b > 0 && s < a:
		return math.MaxInt64
	case b < 0 && s > a:
		return math.MinInt64
	}
	return s
}

// HeadingText is the heading shown for count.
func HeadingText(count int64) string {
	return fmt.Sprintf("High-Five counter: %d", count)
}

func renderHeading(count int64) []byte {
	var buf bytes.Buffer
	// rendering into a bytes.Buffer can't fail
	_ = heading(count).Render(context.Background(), &buf)
	return buf.Bytes()
}

// frame is the heading as last rendered by the counter.
func frame(c *Counter) templ.Component {
	return templ.Raw(string(c.Heading()))
}
