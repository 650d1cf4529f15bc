package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWheelPinch(t *testing.T) {
	c := newMeasured(t)
	w := NewWheelPinch(c)

	w.Scroll(100)
	assert.True(t, w.Active())
	assert.Equal(t, PinchActive, c.PinchPhase())
	assert.InDelta(t, 1.2, c.State().Scale, 1e-9)

	w.Scroll(100)
	assert.InDelta(t, 1.44, c.State().Scale, 1e-9)

	w.Finish()
	assert.False(t, w.Active())
	assert.False(t, c.State().IsPinching)
	assert.Equal(t, PinchIdle, c.PinchPhase())

	// a new scroll burst starts from the settled scale
	w.Scroll(-100)
	assert.InDelta(t, 1.152, c.State().Scale, 1e-9)
}

func TestWheelPinch_FactorStaysPositive(t *testing.T) {
	c := newMeasured(t)
	w := NewWheelPinch(c)

	w.Scroll(-100000)

	assert.Greater(t, w.Factor(), 0.0)
	assert.Equal(t, 0.5, c.State().Scale)
}

func TestWheelPinch_IgnoresZeroAndFinishWhenIdle(t *testing.T) {
	c := newMeasured(t)
	w := NewWheelPinch(c)

	w.Scroll(0)
	w.Finish()

	assert.False(t, w.Active())
	assert.Equal(t, PinchIdle, c.PinchPhase())
	assert.Equal(t, 1.0, c.State().Scale)
}
