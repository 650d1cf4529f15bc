package gesture

import "sync"

// Dispatcher marshals a state commit onto the interaction timeline.
// Gesture math may run anywhere; every write to the transform goes through Do.
type Dispatcher interface {
	Do(fn func())
}

// DispatcherFunc adapts a function to the Dispatcher interface
type DispatcherFunc func(fn func())

// Do implements Dispatcher
func (f DispatcherFunc) Do(fn func()) {
	f(fn)
}

// Immediate runs commits synchronously on the calling goroutine.
// Use it when all input already arrives on the timeline, and in tests.
var Immediate Dispatcher = DispatcherFunc(func(fn func()) { fn() })

// Queue collects commits from any goroutine until the owning loop drains them.
// Commits are never dropped, so terminal events like gesture end always apply.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// NewQueue creates an empty commit queue
func NewQueue() *Queue {
	return &Queue{}
}

// Do enqueues fn for the next Drain
func (q *Queue) Do(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len returns the number of commits waiting
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain runs every queued commit in order and returns how many ran.
// Commits enqueued while draining run in the same call.
func (q *Queue) Drain() int {
	n := 0
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()

		if len(batch) == 0 {
			return n
		}
		for _, fn := range batch {
			fn()
		}
		n += len(batch)
	}
}
