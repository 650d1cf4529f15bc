// Package gesture turns pan and pinch input into label transform updates.
//
// The two recognizers are independent state machines. Pan writes position,
// IsDragging and the centered flags; pinch writes scale and IsPinching. They
// share read access to the measured bounds and nothing else.
//
// All exported event methods may be called from any goroutine. They hand the
// actual commit to the configured Dispatcher, so every mutation of the
// transform happens serially on one timeline.
package gesture

import (
	"io"
	"log"

	"github.com/philipparndt/draglabel/pkg/anim"
	"github.com/philipparndt/draglabel/pkg/geometry"
	"github.com/philipparndt/draglabel/pkg/transform"
)

// Defaults for the recognizer tuning
const (
	DefaultDragThreshold = 10.0
	DefaultSnapTolerance = 3.0
)

// Property identifies a settle-animated value
type Property int

const (
	PropertyX Property = iota
	PropertyY
	PropertyScale
)

func (p Property) String() string {
	switch p {
	case PropertyX:
		return "x"
	case PropertyY:
		return "y"
	case PropertyScale:
		return "scale"
	}
	return "unknown"
}

// Controller converts gesture and measurement events into transform state
type Controller struct {
	store    *transform.Store
	dispatch Dispatcher
	settler  anim.Settler
	logger   *log.Logger

	text          string
	dragThreshold float64
	snapTolerance float64
	onLayout      func(*geometry.Rect)
	onChangeText  func(string)

	// Timeline-only state below
	bounds             geometry.Bounds
	pan                PanPhase
	pinch              PinchPhase
	translation        geometry.Vector2
	pinchedDuringTouch bool
	panSettles         int
	settles            map[Property]anim.CancelFunc
}

// Option configures a Controller
type Option func(*Controller)

// WithText sets the label text passed to the change-text callback
func WithText(text string) Option {
	return func(c *Controller) {
		c.text = text
	}
}

// WithDragThreshold sets the distance a touch must travel before it becomes a drag.
// Non-positive values are ignored.
func WithDragThreshold(px float64) Option {
	return func(c *Controller) {
		if px > 0 {
			c.dragThreshold = px
		}
	}
}

// WithSnapTolerance sets the center-snap band in pixels. Negative values are ignored.
func WithSnapTolerance(px float64) Option {
	return func(c *Controller) {
		if px >= 0 {
			c.snapTolerance = px
		}
	}
}

// WithDispatcher sets how commits reach the interaction timeline
func WithDispatcher(d Dispatcher) Option {
	return func(c *Controller) {
		if d != nil {
			c.dispatch = d
		}
	}
}

// WithSettler sets the animator used for release transitions
func WithSettler(s anim.Settler) Option {
	return func(c *Controller) {
		if s != nil {
			c.settler = s
		}
	}
}

// WithLogger enables transition tracing
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStore makes the controller write into an existing store
func WithStore(s *transform.Store) Option {
	return func(c *Controller) {
		if s != nil {
			c.store = s
		}
	}
}

// WithOnLayout registers a callback for label rectangle changes.
// It receives nil while the label size is unknown.
func WithOnLayout(fn func(*geometry.Rect)) Option {
	return func(c *Controller) {
		c.onLayout = fn
	}
}

// WithOnChangeText registers a callback invoked with the label text when the label is tapped
func WithOnChangeText(fn func(string)) Option {
	return func(c *Controller) {
		c.onChangeText = fn
	}
}

// NewController creates a controller with a fresh transform at the origin
func NewController(opts ...Option) *Controller {
	c := &Controller{
		store:         transform.NewStore(),
		dispatch:      Immediate,
		settler:       anim.Instant{},
		logger:        log.New(io.Discard, "", 0),
		dragThreshold: DefaultDragThreshold,
		snapTolerance: DefaultSnapTolerance,
		settles:       make(map[Property]anim.CancelFunc),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current transform snapshot. Safe from any goroutine.
func (c *Controller) State() transform.State {
	return c.store.State()
}

// Subscribe registers a listener for transform changes
func (c *Controller) Subscribe(fn func(transform.State)) transform.Unsubscribe {
	return c.store.Subscribe(fn)
}

// Store returns the transform store the controller writes to
func (c *Controller) Store() *transform.Store {
	return c.store
}

// Bounds returns the bounds used by the next clamp
func (c *Controller) Bounds() geometry.Bounds {
	return c.bounds
}

// PanPhase returns the pan recognizer state
func (c *Controller) PanPhase() PanPhase {
	return c.pan
}

// PinchPhase returns the pinch recognizer state
func (c *Controller) PinchPhase() PinchPhase {
	return c.pinch
}

// Text returns the label text
func (c *Controller) Text() string {
	return c.text
}

// SetText replaces the label text
func (c *Controller) SetText(text string) {
	c.dispatch.Do(func() {
		c.text = text
	})
}

// ContainerMeasured reports the size of the hosting surface
func (c *Controller) ContainerMeasured(width, height float64) {
	c.dispatch.Do(func() {
		if c.setBounds(geometry.NewSize(width, height), c.bounds.Label) {
			c.reportLayout()
		}
	})
}

// LabelMeasured reports the size of the rendered label
func (c *Controller) LabelMeasured(width, height float64) {
	c.dispatch.Do(func() {
		label := geometry.NewSize(width, height).Sanitize()
		changed := label != c.bounds.Label
		centered := c.setBounds(c.bounds.Container, label)
		if changed || centered {
			c.reportLayout()
		}
	})
}

// setBounds reports whether the new bounds triggered the auto-center
func (c *Controller) setBounds(container, label geometry.Size) bool {
	c.bounds = geometry.NewBounds(container, label)
	c.logger.Printf("bounds: container=%vx%v label=%vx%v",
		c.bounds.Container.Width, c.bounds.Container.Height,
		c.bounds.Label.Width, c.bounds.Label.Height)

	// an in-flight drag follows the new bounds; committed positions do not
	if c.pan == PanActive {
		c.applyPan()
	}
	return c.autoCenter()
}

// autoCenter places the label in the middle of the container the first time
// both are measured
func (c *Controller) autoCenter() bool {
	if c.store.State().HasAutoCentered || !c.bounds.Known() {
		return false
	}
	center := c.bounds.Center()
	c.store.Batch(func() {
		c.store.SetPosition(center)
		c.store.MarkAutoCentered()
	})
	c.logger.Printf("auto-centered at %v", center)
	return true
}

func (c *Controller) reportLayout() {
	if c.onLayout == nil {
		return
	}
	if !c.bounds.Label.Known() {
		c.onLayout(nil)
		return
	}
	rect := geometry.NewRect(c.store.State().Position, c.bounds.Label)
	c.onLayout(&rect)
}

// settle starts a release transition for prop, replacing any running one
func (c *Controller) settle(prop Property, from, to float64, apply func(float64), done func()) {
	c.cancelSettle(prop)

	finished := false
	cancel := c.settler.Settle(from, to, apply, func() {
		finished = true
		delete(c.settles, prop)
		c.logger.Printf("settle %s: done", prop)
		done()
	})
	if !finished {
		c.settles[prop] = cancel
	}
}

func (c *Controller) cancelSettle(prop Property) {
	if cancel, ok := c.settles[prop]; ok {
		cancel()
		delete(c.settles, prop)
		c.logger.Printf("settle %s: superseded", prop)
	}
}
