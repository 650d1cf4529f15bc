package anim

// CancelFunc stops an in-flight settle. The done callback is not invoked.
// Calling it after completion, or more than once, does nothing.
type CancelFunc func()

// Settler runs a settle transition from one value to another.
//
// apply is called with intermediate values and finally with to; done is called
// once after the final apply unless the settle is cancelled. Both callbacks run
// on the interaction timeline.
type Settler interface {
	Settle(from, to float64, apply func(float64), done func()) CancelFunc
}

// maxStep bounds a single integration step so a slow frame cannot destabilise the spring
const maxStep = 1.0 / 240

type settle struct {
	x, v      float64
	target    float64
	apply     func(float64)
	done      func()
	cancelled bool
}

// FrameSettler advances springs explicitly, one frame at a time.
// It is meant for hosts that own their frame loop, and for tests.
// It is not safe for concurrent use.
type FrameSettler struct {
	Spring Spring
	active []*settle
}

// NewFrameSettler creates a settler using the given spring
func NewFrameSettler(spring Spring) *FrameSettler {
	return &FrameSettler{Spring: spring}
}

// Settle implements Settler
func (f *FrameSettler) Settle(from, to float64, apply func(float64), done func()) CancelFunc {
	s := &settle{x: from, target: to, apply: apply, done: done}
	f.active = append(f.active, s)
	return func() { s.cancelled = true }
}

// Active returns the number of settles still running
func (f *FrameSettler) Active() int {
	n := 0
	for _, s := range f.active {
		if !s.cancelled {
			n++
		}
	}
	return n
}

// Step advances every running settle by dt seconds
func (f *FrameSettler) Step(dt float64) {
	running := f.active
	f.active = nil

	var finished []*settle
	for _, s := range running {
		if s.cancelled {
			continue
		}
		for remaining := dt; remaining > 0; remaining -= maxStep {
			s.x, s.v = f.Spring.step(s.x, s.v, s.target, min(remaining, maxStep))
		}
		if f.Spring.atRest(s.x, s.v, s.target) {
			s.x = s.target
			finished = append(finished, s)
		} else {
			f.active = append(f.active, s)
		}
		if s.apply != nil {
			s.apply(s.x)
		}
	}

	for _, s := range finished {
		if !s.cancelled && s.done != nil {
			s.done()
		}
	}
}

// Flush runs every pending settle to completion
func (f *FrameSettler) Flush() {
	for i := 0; f.Active() > 0 && i < 10000; i++ {
		f.Step(1.0 / 60)
	}
}

// Instant completes every settle synchronously with no intermediate values
type Instant struct{}

// Settle implements Settler
func (Instant) Settle(from, to float64, apply func(float64), done func()) CancelFunc {
	if apply != nil {
		apply(to)
	}
	if done != nil {
		done()
	}
	return func() {}
}
