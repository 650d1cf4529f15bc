package gesture

import "github.com/philipparndt/draglabel/pkg/geometry"

// PointerFrame is the raw pointer input sampled once per frame by hosts that
// poll their input (rather than receiving recognized gestures)
type PointerFrame struct {
	// Touches holds the active contact points. A held primary mouse button counts as one.
	Touches []geometry.Vector2
	// Wheel is the scroll wheel movement of this frame, positive away from the user
	Wheel float64
}

// Defaults for polled input
const (
	DefaultWheelStep       = 50.0
	DefaultWheelIdleFrames = 15
)

// PointerTracker recognizes pan, two-finger pinch and wheel pinch from
// per-frame pointer samples and forwards them to a Controller.
// It is not safe for concurrent use.
type PointerTracker struct {
	WheelStep       float64 // wheel units per notch passed to WheelPinch
	WheelIdleFrames int     // frames without wheel movement that end a wheel pinch

	controller *Controller
	wheel      *WheelPinch
	idleFrames int

	down        bool
	origin      geometry.Vector2
	translation geometry.Vector2
	contacts    int
	pinching    bool
	pinchBase   float64
}

// NewPointerTracker creates a tracker driving c
func NewPointerTracker(c *Controller) *PointerTracker {
	return &PointerTracker{
		WheelStep:       DefaultWheelStep,
		WheelIdleFrames: DefaultWheelIdleFrames,
		controller:      c,
		wheel:           NewWheelPinch(c),
	}
}

// Update processes one frame of input. label is the current label box; a
// touch only starts a gesture when it lands inside it.
func (p *PointerTracker) Update(frame PointerFrame, label geometry.Rect) {
	touches := frame.Touches

	if !p.down && len(touches) > 0 && label.Contains(touches[0]) {
		p.down = true
		p.origin = touches[0]
		p.translation = geometry.Vector2{}
		p.contacts = len(touches)
		p.controller.PanDown()
	}

	if p.down {
		p.updatePinch(touches)
		if len(touches) > 0 {
			// touches[0] may now be a different finger; keep the translation continuous
			if len(touches) != p.contacts {
				p.origin = touches[0].Sub(p.translation)
				p.contacts = len(touches)
			}
			p.translation = touches[0].Sub(p.origin)
			p.controller.PanUpdate(p.translation)
		} else {
			p.down = false
			p.contacts = 0
			p.controller.PanEnd()
		}
	}

	p.updateWheel(frame.Wheel)
}

func (p *PointerTracker) updatePinch(touches []geometry.Vector2) {
	if len(touches) < 2 {
		if p.pinching {
			p.pinching = false
			p.controller.PinchEnd()
		}
		return
	}

	distance := touches[0].Distance(touches[1])
	if !p.pinching {
		p.pinching = true
		p.pinchBase = distance
		p.controller.PinchStart()
		return
	}
	if p.pinchBase > 0 {
		p.controller.PinchUpdate(distance / p.pinchBase)
	}
}

func (p *PointerTracker) updateWheel(delta float64) {
	if delta != 0 {
		p.idleFrames = 0
		p.wheel.Scroll(delta * p.WheelStep)
		return
	}
	if p.wheel.Active() {
		p.idleFrames++
		if p.idleFrames >= p.WheelIdleFrames {
			p.wheel.Finish()
		}
	}
}

// Cancel aborts every running gesture, e.g. when the window loses focus
func (p *PointerTracker) Cancel() {
	if p.down {
		p.down = false
		p.controller.PanCancel()
	}
	if p.pinching {
		p.pinching = false
		p.controller.PinchCancel()
	}
	p.wheel.Finish()
}
