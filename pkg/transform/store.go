// Package transform holds the live position/scale state of the draggable label.
//
// Store has exactly one writer role (the gesture controller) and any number of
// readers. Every field has its own mutation method, and each mutation keeps the
// invariants below:
//
//   - Scale stays within [geometry.MinScale, geometry.MaxScale]
//   - IsCenteredX/IsCenteredY are only true while IsDragging is true
//   - HasAutoCentered never goes back to false
//
// Position bounds depend on measurements the store does not own, so positions
// are clamped by the caller before they are committed.
//
// State() is safe from any goroutine. Mutations must happen on the interaction
// timeline (see gesture.Dispatcher).
package transform

import (
	"fmt"
	"strings"
	"sync"

	"github.com/philipparndt/draglabel/pkg/geometry"
)

// State is a snapshot of the label transform and gesture flags
type State struct {
	Position        geometry.Vector2
	Scale           float64
	IsDragging      bool
	IsPinching      bool
	IsCenteredX     bool
	IsCenteredY     bool
	HasAutoCentered bool
}

// String renders the state as a one-line status, e.g. "x  100  y  230  scale 1.00 drag |"
func (s State) String() string {
	var flags strings.Builder
	if s.IsDragging {
		flags.WriteString(" drag")
	}
	if s.IsPinching {
		flags.WriteString(" pinch")
	}
	if s.IsCenteredX {
		flags.WriteString(" |")
	}
	if s.IsCenteredY {
		flags.WriteString(" -")
	}
	return fmt.Sprintf("x %4.0f  y %4.0f  scale %.2f%s", s.Position.X, s.Position.Y, s.Scale, flags.String())
}

// Unsubscribe removes a listener registered with Subscribe
type Unsubscribe func()

type listener struct {
	id uint64
	fn func(State)
}

// Store owns the transform state and notifies listeners on change
type Store struct {
	mu        sync.RWMutex
	state     State
	dragStart geometry.Vector2
	scaleBase float64
	listeners []listener
	nextID    uint64
	batch     int
	dirty     bool
}

// NewStore creates a store at the origin with scale 1 and all flags cleared
func NewStore() *Store {
	return &Store{
		state:     State{Scale: 1},
		scaleBase: 1,
	}
}

// State returns the current snapshot
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// DragStart returns the position captured by the last SnapshotDrag
func (s *Store) DragStart() geometry.Vector2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dragStart
}

// ScaleStart returns the scale captured by the last SnapshotScale
func (s *Store) ScaleStart() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scaleBase
}

// Subscribe registers fn to be called with the new state after every change.
// Within a Batch, fn is called once when the outermost batch completes.
func (s *Store) Subscribe(fn func(State)) Unsubscribe {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Batch runs fn and coalesces all notifications it causes into one
func (s *Store) Batch(fn func()) {
	s.mu.Lock()
	s.batch++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.batch--
		flush := s.batch == 0 && s.dirty
		if flush {
			s.dirty = false
		}
		s.mu.Unlock()

		if flush {
			s.notify()
		}
	}()

	fn()
}

// SetPosition commits a new top-left offset
func (s *Store) SetPosition(p geometry.Vector2) {
	s.mutate(func(st *State) bool {
		if st.Position == p {
			return false
		}
		st.Position = p
		return true
	})
}

// SetScale commits a new scale, clamped to the legal range
func (s *Store) SetScale(scale float64) {
	scale = geometry.ClampScale(scale)
	s.mutate(func(st *State) bool {
		if st.Scale == scale {
			return false
		}
		st.Scale = scale
		return true
	})
}

// SetDragging sets the drag flag. Clearing it also clears both centered flags.
func (s *Store) SetDragging(dragging bool) {
	s.mutate(func(st *State) bool {
		changed := st.IsDragging != dragging || (!dragging && (st.IsCenteredX || st.IsCenteredY))
		st.IsDragging = dragging
		if !dragging {
			st.IsCenteredX = false
			st.IsCenteredY = false
		}
		return changed
	})
}

// SetPinching sets the pinch flag
func (s *Store) SetPinching(pinching bool) {
	s.mutate(func(st *State) bool {
		if st.IsPinching == pinching {
			return false
		}
		st.IsPinching = pinching
		return true
	})
}

// SetCentered sets the per-axis center-snap flags. Ignored while not dragging.
func (s *Store) SetCentered(x, y bool) {
	s.mutate(func(st *State) bool {
		if !st.IsDragging {
			x, y = false, false
		}
		if st.IsCenteredX == x && st.IsCenteredY == y {
			return false
		}
		st.IsCenteredX = x
		st.IsCenteredY = y
		return true
	})
}

// MarkAutoCentered records that the one-shot initial centering has happened
func (s *Store) MarkAutoCentered() {
	s.mutate(func(st *State) bool {
		if st.HasAutoCentered {
			return false
		}
		st.HasAutoCentered = true
		return true
	})
}

// SnapshotDrag captures the live position as the reference for the current drag
func (s *Store) SnapshotDrag() geometry.Vector2 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragStart = s.state.Position
	return s.dragStart
}

// SnapshotScale captures the live scale as the reference for the current pinch
func (s *Store) SnapshotScale() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scaleBase = s.state.Scale
	return s.scaleBase
}

// mutate applies fn under the lock and notifies listeners if it reports a change
func (s *Store) mutate(fn func(*State) bool) {
	s.mu.Lock()
	changed := fn(&s.state)
	if changed && s.batch > 0 {
		s.dirty = true
		changed = false
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	state := s.state
	fns := make([]func(State), len(s.listeners))
	for i, l := range s.listeners {
		fns[i] = l.fn
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(state)
	}
}
