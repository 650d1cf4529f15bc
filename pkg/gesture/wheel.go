package gesture

import "math"

// DefaultWheelSensitivity is the scale change per scroll unit
const DefaultWheelSensitivity = 0.002

// minWheelFactor keeps the accumulated factor positive
const minWheelFactor = 0.01

// WheelPinch emulates a pinch with a scroll wheel or trackpad scroll.
// The first Scroll starts a pinch and each further Scroll multiplies the
// factor. The host decides when scrolling has stopped and calls Finish.
// It is not safe for concurrent use; call it from the host's event goroutine.
type WheelPinch struct {
	Sensitivity float64

	controller *Controller
	factor     float64
	active     bool
}

// NewWheelPinch creates a wheel emulator driving c
func NewWheelPinch(c *Controller) *WheelPinch {
	return &WheelPinch{
		Sensitivity: DefaultWheelSensitivity,
		controller:  c,
		factor:      1,
	}
}

// Active reports whether an emulated pinch is running
func (w *WheelPinch) Active() bool {
	return w.active
}

// Factor returns the accumulated scale factor of the running pinch
func (w *WheelPinch) Factor() float64 {
	return w.factor
}

// Scroll feeds one wheel step. Positive delta zooms in.
func (w *WheelPinch) Scroll(delta float64) {
	if delta == 0 || math.IsNaN(delta) {
		return
	}
	if !w.active {
		w.active = true
		w.factor = 1
		w.controller.PinchStart()
	}
	w.factor = math.Max(minWheelFactor, w.factor*(1+delta*w.Sensitivity))
	w.controller.PinchUpdate(w.factor)
}

// Finish ends the running emulated pinch, if any
func (w *WheelPinch) Finish() {
	if !w.active {
		return
	}
	w.active = false
	w.factor = 1
	w.controller.PinchEnd()
}
