package gesture

import (
	"math"

	"github.com/philipparndt/draglabel/pkg/geometry"
)

// PinchPhase is the state of the scale recognizer
type PinchPhase int

const (
	PinchIdle PinchPhase = iota
	PinchActive
	PinchSettling
)

func (p PinchPhase) String() string {
	switch p {
	case PinchIdle:
		return "idle"
	case PinchActive:
		return "active"
	case PinchSettling:
		return "settling"
	}
	return "unknown"
}

// PinchStart reports that a pinch was recognized
func (c *Controller) PinchStart() {
	c.dispatch.Do(c.pinchStart)
}

// PinchUpdate reports the cumulative scale factor since the pinch started
func (c *Controller) PinchUpdate(factor float64) {
	c.dispatch.Do(func() {
		c.pinchUpdate(factor)
	})
}

// PinchEnd reports that the pinch finished
func (c *Controller) PinchEnd() {
	c.dispatch.Do(c.finishPinch)
}

// PinchCancel reports that the system interrupted the pinch
func (c *Controller) PinchCancel() {
	c.dispatch.Do(c.finishPinch)
}

func (c *Controller) pinchStart() {
	if c.pinch == PinchActive {
		return
	}
	c.cancelSettle(PropertyScale)

	c.pinch = PinchActive
	if c.pan == PanTouching || c.pan == PanActive {
		c.pinchedDuringTouch = true
	}
	c.store.SetPinching(true)
	start := c.store.SnapshotScale()
	c.logger.Printf("pinch: %s from %v", c.pinch, start)
}

func (c *Controller) pinchUpdate(factor float64) {
	if c.pinch != PinchActive || math.IsNaN(factor) {
		return
	}
	c.store.SetScale(geometry.ClampScale(c.store.ScaleStart() * factor))
}

// finishPinch handles end and cancellation. IsPinching is always cleared.
func (c *Controller) finishPinch() {
	if c.pinch != PinchActive {
		c.store.SetPinching(false)
		return
	}
	c.pinch = PinchSettling
	c.store.SetPinching(false)
	c.logger.Printf("pinch: %s", c.pinch)

	scale := c.store.State().Scale
	c.settle(PropertyScale, scale, scale, c.store.SetScale, func() {
		if c.pinch == PinchSettling {
			c.pinch = PinchIdle
			c.logger.Printf("pinch: %s", c.pinch)
		}
	})
}
