package counter

import (
	"container/list"
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

const (
	// DefaultTTL is how long an untouched view keeps its counter.
	DefaultTTL = 30 * time.Minute
	// DefaultCapacity bounds the number of mounted views.
	DefaultCapacity = 10000
)

// Instances owns the counters of all mounted Home views. A view is unmounted
// when it has been idle for longer than the TTL, or when it is the least
// recently used one and the capacity is exceeded.
type Instances struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	now      func() time.Time
	lru      *list.List // front is most recently used
	byID     map[string]*list.Element
}

type instance struct {
	counter  *Counter
	lastSeen time.Time
}

// InstancesOption configures Instances.
type InstancesOption func(*Instances)

// WithTTL sets the idle time after which a view is unmounted.
func WithTTL(ttl time.Duration) InstancesOption {
	return func(in *Instances) { in.ttl = ttl }
}

// WithCapacity sets the maximum number of mounted views.
func WithCapacity(n int) InstancesOption {
	return func(in *Instances) { in.capacity = n }
}

func withClock(now func() time.Time) InstancesOption {
	return func(in *Instances) { in.now = now }
}

// NewInstances creates an empty registry.
func NewInstances(opts ...InstancesOption) *Instances {
	in := &Instances{
		ttl:      DefaultTTL,
		capacity: DefaultCapacity,
		now:      time.Now,
		lru:      list.New(),
		byID:     make(map[string]*list.Element),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Mount creates the counter of a newly rendered view, starting at 0.
func (in *Instances) Mount() *Counter {
	c := newCounter(newID())
	in.mu.Lock()
	defer in.mu.Unlock()
	in.byID[c.id] = in.lru.PushFront(&instance{counter: c, lastSeen: in.now()})
	for in.capacity > 0 && in.lru.Len() > in.capacity {
		in.removeLocked(in.lru.Back())
	}
	return c
}

// Get returns the counter of a mounted view and marks it as used.
func (in *Instances) Get(id string) (*Counter, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	el, ok := in.byID[id]
	if !ok {
		return nil, false
	}
	el.Value.(*instance).lastSeen = in.now()
	in.lru.MoveToFront(el)
	return el.Value.(*instance).counter, true
}

// Unmount destroys the counter of a view. It reports whether the view existed.
func (in *Instances) Unmount(id string) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	el, ok := in.byID[id]
	if !ok {
		return false
	}
	in.removeLocked(el)
	return true
}

// Len returns the number of mounted views.
func (in *Instances) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.lru.Len()
}

// Sweep unmounts every view idle for longer than the TTL and returns how many
// were removed.
func (in *Instances) Sweep() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	deadline := in.now().Add(-in.ttl)
	n := 0
	for el := in.lru.Back(); el != nil; {
		if el.Value.(*instance).lastSeen.After(deadline) {
			break
		}
		prev := el.Prev()
		in.removeLocked(el)
		el = prev
		n++
	}
	return n
}

// Run sweeps idle views every interval until ctx is done.
func (in *Instances) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := in.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

func (in *Instances) removeLocked(el *list.Element) {
	inst := in.lru.Remove(el).(*instance)
	delete(in.byID, inst.counter.id)
	inst.counter.close()
}

func newID() string {
	var b [16]byte
	// crypto/rand.Read never returns an error
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
