package gesture

import (
	"math"

	"github.com/philipparndt/draglabel/pkg/geometry"
)

// PanPhase is the state of the drag recognizer
type PanPhase int

const (
	PanIdle PanPhase = iota
	PanTouching
	PanActive
	PanSettling
)

func (p PanPhase) String() string {
	switch p {
	case PanIdle:
		return "idle"
	case PanTouching:
		return "touching"
	case PanActive:
		return "active"
	case PanSettling:
		return "settling"
	}
	return "unknown"
}

// PanDown reports first finger contact on the label
func (c *Controller) PanDown() {
	c.dispatch.Do(c.panDown)
}

// PanStart reports that the toolkit recognized a drag. A missing PanDown is implied.
func (c *Controller) PanStart() {
	c.dispatch.Do(c.panStart)
}

// PanUpdate reports the cumulative translation since touch-down.
// While touching, the drag activates once the translation exceeds the drag threshold.
func (c *Controller) PanUpdate(translation geometry.Vector2) {
	c.dispatch.Do(func() {
		c.panUpdate(translation)
	})
}

// PanEnd reports that all fingers lifted. Releasing before the drag activated is a tap.
func (c *Controller) PanEnd() {
	c.dispatch.Do(func() {
		c.finishPan(true)
	})
}

// PanCancel reports that the system interrupted the gesture
func (c *Controller) PanCancel() {
	c.dispatch.Do(func() {
		c.finishPan(false)
	})
}

// Tap reports a tap recognized by the toolkit. It completes a pending touch,
// or stands on its own when no touch-down was reported.
func (c *Controller) Tap() {
	c.dispatch.Do(func() {
		switch c.pan {
		case PanTouching:
			c.finishPan(true)
		case PanIdle, PanSettling:
			if c.pinch != PinchActive {
				c.fireTap()
			}
		}
	})
}

func (c *Controller) panDown() {
	if c.pan == PanTouching || c.pan == PanActive {
		return
	}
	c.cancelSettle(PropertyX)
	c.cancelSettle(PropertyY)
	c.panSettles = 0

	c.pan = PanTouching
	c.translation = geometry.Vector2{}
	c.pinchedDuringTouch = c.pinch == PinchActive
	c.store.SetDragging(true)
	c.logger.Printf("pan: %s", c.pan)
}

func (c *Controller) panStart() {
	if c.pan == PanIdle || c.pan == PanSettling {
		c.panDown()
	}
	if c.pan != PanTouching {
		return
	}
	c.pan = PanActive
	start := c.store.SnapshotDrag()
	c.logger.Printf("pan: %s from %v", c.pan, start)
}

func (c *Controller) panUpdate(translation geometry.Vector2) {
	switch c.pan {
	case PanTouching:
		c.translation = translation
		if translation.Length() <= c.dragThreshold {
			return
		}
		c.panStart()
	case PanActive:
		c.translation = translation
	default:
		return
	}
	c.applyPan()
}

// applyPan commits dragStart + translation: clamped, rounded to whole pixels,
// then snapped per axis onto the container center when within tolerance
func (c *Controller) applyPan() {
	candidate := c.store.DragStart().Add(c.translation)
	committed := c.bounds.Clamp(c.bounds.Clamp(candidate).Round())
	center := c.bounds.Center()

	snapX := math.Abs(committed.X-center.X) <= c.snapTolerance
	if snapX {
		committed.X = center.X
	}
	snapY := math.Abs(committed.Y-center.Y) <= c.snapTolerance
	if snapY {
		committed.Y = center.Y
	}

	c.store.Batch(func() {
		c.store.SetPosition(committed)
		c.store.SetCentered(snapX, snapY)
	})
}

// finishPan handles release and cancellation. IsDragging is always cleared.
func (c *Controller) finishPan(allowTap bool) {
	switch c.pan {
	case PanTouching:
		tap := allowTap && !c.pinchedDuringTouch && c.pinch != PinchActive
		c.pan = PanIdle
		c.store.SetDragging(false)
		c.logger.Printf("pan: released without drag (tap=%v)", tap)
		if tap {
			c.fireTap()
		}
	case PanActive:
		c.pan = PanSettling
		c.store.SetDragging(false)
		c.logger.Printf("pan: %s", c.pan)
		c.settlePosition()
	default:
		c.store.SetDragging(false)
	}
}

// settlePosition springs both axes onto the committed, already clamped position
func (c *Controller) settlePosition() {
	pos := c.store.State().Position
	c.panSettles = 2

	done := func() {
		c.panSettles--
		if c.panSettles == 0 && c.pan == PanSettling {
			c.pan = PanIdle
			c.logger.Printf("pan: %s", c.pan)
		}
	}
	c.settle(PropertyX, pos.X, pos.X, func(v float64) {
		p := c.store.State().Position
		c.store.SetPosition(geometry.NewVector2(v, p.Y))
	}, done)
	c.settle(PropertyY, pos.Y, pos.Y, func(v float64) {
		p := c.store.State().Position
		c.store.SetPosition(geometry.NewVector2(p.X, v))
	}, done)
}

func (c *Controller) fireTap() {
	if c.onChangeText != nil {
		c.onChangeText(c.text)
	}
}
