package gesture

import (
	"math/rand"
	"testing"

	"github.com/philipparndt/draglabel/pkg/anim"
	"github.com/philipparndt/draglabel/pkg/geometry"
	"github.com/philipparndt/draglabel/pkg/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMeasured returns a controller laid out in a 300x500 container with a
// 100x40 label, which auto-centers it at (100, 230)
func newMeasured(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	c := NewController(opts...)
	c.ContainerMeasured(300, 500)
	c.LabelMeasured(100, 40)
	require.Equal(t, geometry.NewVector2(100, 230), c.State().Position)
	return c
}

func TestNewController(t *testing.T) {
	c := NewController()

	assert.Equal(t, transform.State{Scale: 1}, c.State())
	assert.Equal(t, PanIdle, c.PanPhase())
	assert.Equal(t, PinchIdle, c.PinchPhase())
}

func TestAutoCenter_FiresOnce(t *testing.T) {
	c := NewController()

	c.ContainerMeasured(300, 500)
	assert.False(t, c.State().HasAutoCentered, "label not measured yet")

	c.LabelMeasured(100, 40)
	st := c.State()
	assert.Equal(t, geometry.NewVector2(100, 230), st.Position)
	assert.True(t, st.HasAutoCentered)

	c.LabelMeasured(120, 40)
	assert.Equal(t, geometry.NewVector2(100, 230), c.State().Position, "re-measure must not re-center")
}

func TestAutoCenter_DegenerateSizes(t *testing.T) {
	tests := map[string]struct {
		container, label geometry.Size
	}{
		"zero container width": {geometry.NewSize(0, 500), geometry.NewSize(100, 40)},
		"zero label height":    {geometry.NewSize(300, 500), geometry.NewSize(100, 0)},
		"negative label":       {geometry.NewSize(300, 500), geometry.NewSize(-100, 40)},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := NewController()
			c.ContainerMeasured(tt.container.Width, tt.container.Height)
			c.LabelMeasured(tt.label.Width, tt.label.Height)

			st := c.State()
			assert.False(t, st.HasAutoCentered)
			assert.Equal(t, geometry.Vector2{}, st.Position)
		})
	}
}

func TestAutoCenter_LabelMeasuredFirst(t *testing.T) {
	c := NewController()
	c.LabelMeasured(100, 40)
	c.ContainerMeasured(300, 500)

	assert.Equal(t, geometry.NewVector2(100, 230), c.State().Position)
}

func TestCenterSnap(t *testing.T) {
	tests := map[string]struct {
		x        float64
		wantX    float64
		centered bool
	}{
		"98 snaps":      {x: 98, wantX: 100, centered: true},
		"99 snaps":      {x: 99, wantX: 100, centered: true},
		"100 snaps":     {x: 100, wantX: 100, centered: true},
		"101 snaps":     {x: 101, wantX: 100, centered: true},
		"102 snaps":     {x: 102, wantX: 100, centered: true},
		"103 snaps":     {x: 103, wantX: 100, centered: true},
		"104 is free":   {x: 104, wantX: 104, centered: false},
		"96 is free":    {x: 96, wantX: 96, centered: false},
		"97 edge snaps": {x: 97, wantX: 100, centered: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := newMeasured(t)

			c.PanDown()
			c.PanUpdate(geometry.NewVector2(0, 100)) // activate, away from the vertical center
			c.PanUpdate(geometry.NewVector2(tt.x-100, 100))

			st := c.State()
			assert.Equal(t, tt.wantX, st.Position.X)
			assert.Equal(t, 330.0, st.Position.Y)
			assert.Equal(t, tt.centered, st.IsCenteredX)
			assert.False(t, st.IsCenteredY, "axes snap independently")
		})
	}
}

func TestCenterSnap_BothAxes(t *testing.T) {
	c := newMeasured(t)

	c.PanDown()
	c.PanUpdate(geometry.NewVector2(40, 0))
	c.PanUpdate(geometry.NewVector2(2, -3))

	st := c.State()
	assert.Equal(t, geometry.NewVector2(100, 230), st.Position)
	assert.True(t, st.IsCenteredX)
	assert.True(t, st.IsCenteredY)

	c.PanEnd()
	st = c.State()
	assert.False(t, st.IsCenteredX, "centered flags only hold while dragging")
	assert.False(t, st.IsCenteredY)
}

func TestPan_ClampsAndRounds(t *testing.T) {
	c := newMeasured(t)

	c.PanDown()
	c.PanUpdate(geometry.NewVector2(50.4, -20.6))
	assert.Equal(t, geometry.NewVector2(150, 209), c.State().Position)

	c.PanUpdate(geometry.NewVector2(1000, -1000))
	assert.Equal(t, geometry.NewVector2(200, 0), c.State().Position)

	c.PanUpdate(geometry.NewVector2(-1000, 1000))
	assert.Equal(t, geometry.NewVector2(0, 460), c.State().Position)
}

func TestPan_RoundingNeverLeavesBounds(t *testing.T) {
	c := NewController()
	c.ContainerMeasured(300.6, 500)
	c.LabelMeasured(100, 40)

	c.PanDown()
	c.PanUpdate(geometry.NewVector2(500, 0))

	assert.LessOrEqual(t, c.State().Position.X, c.Bounds().MaxOffset().X)
}

func TestPan_PhasesAndSnapshot(t *testing.T) {
	c := newMeasured(t)

	c.PanDown()
	assert.Equal(t, PanTouching, c.PanPhase())
	assert.True(t, c.State().IsDragging, "dragging starts at first contact")

	c.PanUpdate(geometry.NewVector2(5, 5))
	assert.Equal(t, PanTouching, c.PanPhase(), "below the drag threshold")
	assert.Equal(t, geometry.NewVector2(100, 230), c.State().Position)

	c.PanUpdate(geometry.NewVector2(20, 0))
	assert.Equal(t, PanActive, c.PanPhase())
	assert.Equal(t, geometry.NewVector2(120, 230), c.State().Position)

	c.PanEnd()
	assert.Equal(t, PanIdle, c.PanPhase(), "instant settle completes immediately")
	assert.False(t, c.State().IsDragging)

	// next drag starts from the committed position
	c.PanDown()
	c.PanUpdate(geometry.NewVector2(0, 15))
	assert.Equal(t, geometry.NewVector2(120, 245), c.State().Position)
}

func TestPan_ExplicitStart(t *testing.T) {
	c := newMeasured(t)

	c.PanStart() // no touch-down reported
	assert.Equal(t, PanActive, c.PanPhase())
	assert.True(t, c.State().IsDragging)

	c.PanUpdate(geometry.NewVector2(1, 0))
	assert.Equal(t, geometry.NewVector2(100, 230), c.State().Position, "snapped to center")
}

func TestPan_UpdateWhileIdleIgnored(t *testing.T) {
	c := newMeasured(t)

	c.PanUpdate(geometry.NewVector2(50, 50))

	assert.Equal(t, PanIdle, c.PanPhase())
	assert.Equal(t, geometry.NewVector2(100, 230), c.State().Position)
}

func TestTapVersusDrag(t *testing.T) {
	tests := map[string]struct {
		translation geometry.Vector2
		wantTap     bool
	}{
		"still":            {translation: geometry.Vector2{}, wantTap: true},
		"jitter":           {translation: geometry.NewVector2(2, -1), wantTap: true},
		"at threshold":     {translation: geometry.NewVector2(10, 0), wantTap: true},
		"beyond threshold": {translation: geometry.NewVector2(11, 0), wantTap: false},
		"long drag":        {translation: geometry.NewVector2(80, 40), wantTap: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var got []string
			c := newMeasured(t,
				WithText("Hello"),
				WithOnChangeText(func(s string) { got = append(got, s) }),
			)

			c.PanDown()
			c.PanUpdate(tt.translation)
			c.PanEnd()

			if tt.wantTap {
				assert.Equal(t, []string{"Hello"}, got)
			} else {
				assert.Empty(t, got)
			}
			assert.False(t, c.State().IsDragging)
		})
	}
}

func TestTap_CancelIsNotATap(t *testing.T) {
	called := false
	c := newMeasured(t, WithOnChangeText(func(string) { called = true }))

	c.PanDown()
	c.PanCancel()

	assert.False(t, called)
	assert.False(t, c.State().IsDragging)
}

func TestTap_PinchDuringTouchIsNotATap(t *testing.T) {
	called := false
	c := newMeasured(t, WithOnChangeText(func(string) { called = true }))

	c.PanDown()
	c.PinchStart()
	c.PinchUpdate(1.5)
	c.PinchEnd()
	c.PanEnd()

	assert.False(t, called)
}

func TestTap_Standalone(t *testing.T) {
	var got string
	c := newMeasured(t, WithText("Edit me"), WithOnChangeText(func(s string) { got = s }))

	c.Tap()
	assert.Equal(t, "Edit me", got)

	c.SetText("Changed")
	c.Tap()
	assert.Equal(t, "Changed", got)
}

func TestTap_NoCallbackConfigured(t *testing.T) {
	c := newMeasured(t)

	assert.NotPanics(t, func() {
		c.PanDown()
		c.PanEnd()
		c.Tap()
	})
}

func TestPinch_ScaleStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := newMeasured(t)

	var scales []float64
	c.Subscribe(func(st transform.State) { scales = append(scales, st.Scale) })

	for round := 0; round < 20; round++ {
		c.PinchStart()
		for i := 0; i < 30; i++ {
			c.PinchUpdate(rng.Float64() * 8)
		}
		c.PinchEnd()
	}

	require.NotEmpty(t, scales)
	for _, s := range scales {
		assert.GreaterOrEqual(t, s, geometry.MinScale)
		assert.LessOrEqual(t, s, geometry.MaxScale)
	}
}

func TestPinch_RelativeToStart(t *testing.T) {
	c := newMeasured(t)

	c.PinchStart()
	assert.True(t, c.State().IsPinching)
	c.PinchUpdate(2)
	assert.Equal(t, 2.0, c.State().Scale)
	c.PinchUpdate(1.25)
	assert.Equal(t, 1.25, c.State().Scale, "factor is cumulative, not incremental")
	c.PinchEnd()
	assert.False(t, c.State().IsPinching)

	c.PinchStart()
	c.PinchUpdate(2)
	assert.Equal(t, 2.5, c.State().Scale)
	c.PinchUpdate(10)
	assert.Equal(t, geometry.MaxScale, c.State().Scale)
	c.PinchUpdate(0)
	assert.Equal(t, geometry.MinScale, c.State().Scale)
}

func TestPinch_UpdateWhileIdleIgnored(t *testing.T) {
	c := newMeasured(t)

	c.PinchUpdate(2)

	assert.Equal(t, 1.0, c.State().Scale)
}

func TestCancellationResetsFlags(t *testing.T) {
	c := newMeasured(t)

	c.PanDown()
	c.PanUpdate(geometry.NewVector2(30, 0))
	c.PanUpdate(geometry.NewVector2(1, 40))
	c.PinchStart()
	c.PinchUpdate(1.4)

	st := c.State()
	require.True(t, st.IsCenteredX)
	require.True(t, st.IsDragging)
	require.True(t, st.IsPinching)

	c.PanCancel()
	c.PinchCancel()

	st = c.State()
	assert.False(t, st.IsDragging)
	assert.False(t, st.IsPinching)
	assert.False(t, st.IsCenteredX)
	assert.False(t, st.IsCenteredY)
}

func TestCancellationWhileIdleStillClearsFlags(t *testing.T) {
	c := newMeasured(t)

	assert.NotPanics(t, func() {
		c.PanCancel()
		c.PinchCancel()
		c.PanEnd()
		c.PinchEnd()
	})
	assert.False(t, c.State().IsDragging)
	assert.False(t, c.State().IsPinching)
}

func TestSimultaneousPanAndPinch(t *testing.T) {
	c := newMeasured(t)

	c.PanDown()
	c.PinchStart()
	c.PanUpdate(geometry.NewVector2(-50, 0))
	c.PinchUpdate(2)
	c.PanUpdate(geometry.NewVector2(-60, 0))

	st := c.State()
	assert.Equal(t, geometry.NewVector2(40, 230), st.Position)
	assert.Equal(t, 2.0, st.Scale)
	assert.True(t, st.IsDragging)
	assert.True(t, st.IsPinching)

	c.PinchEnd()
	assert.True(t, c.State().IsDragging, "ending the pinch leaves the drag alone")
	assert.Equal(t, PanActive, c.PanPhase())

	c.PanEnd()
	assert.False(t, c.State().IsDragging)
}

func TestBoundsChange_InFlightDragReclamps(t *testing.T) {
	c := newMeasured(t)

	c.PanDown()
	c.PanUpdate(geometry.NewVector2(500, 0))
	require.Equal(t, 200.0, c.State().Position.X)

	c.ContainerMeasured(250, 500)
	assert.Equal(t, 150.0, c.State().Position.X)
}

func TestBoundsChange_CommittedPositionKept(t *testing.T) {
	c := newMeasured(t)

	c.PanDown()
	c.PanUpdate(geometry.NewVector2(500, 0))
	c.PanEnd()

	c.ContainerMeasured(250, 500)
	assert.Equal(t, 200.0, c.State().Position.X, "no retroactive re-clamp after the gesture")

	// the next drag clamps against the new bounds
	c.PanDown()
	c.PanUpdate(geometry.NewVector2(0, 20))
	assert.Equal(t, 150.0, c.State().Position.X)
}

func TestOnLayout(t *testing.T) {
	var rects []*geometry.Rect
	c := NewController(WithOnLayout(func(r *geometry.Rect) { rects = append(rects, r) }))

	c.ContainerMeasured(300, 500)
	assert.Empty(t, rects, "container changes are not label layouts")

	c.LabelMeasured(100, 0)
	require.Len(t, rects, 1)
	assert.Nil(t, rects[0])

	c.LabelMeasured(100, 40)
	require.Len(t, rects, 2)
	require.NotNil(t, rects[1])
	assert.Equal(t, geometry.NewRect(geometry.NewVector2(100, 230), geometry.NewSize(100, 40)), *rects[1])

	c.LabelMeasured(100, 40)
	assert.Len(t, rects, 2, "unchanged size does not report again")
}

func TestOnLayout_AutoCenterAfterLabelMeasured(t *testing.T) {
	var rects []*geometry.Rect
	c := NewController(WithOnLayout(func(r *geometry.Rect) { rects = append(rects, r) }))

	c.LabelMeasured(100, 40)
	require.Len(t, rects, 1)
	assert.Equal(t, geometry.NewVector2(0, 0), rects[0].Position)

	c.ContainerMeasured(300, 500)
	require.Len(t, rects, 2, "auto-center moves the label and reports it")
	assert.Equal(t, geometry.NewRect(geometry.NewVector2(100, 230), geometry.NewSize(100, 40)), *rects[1])

	c.ContainerMeasured(400, 500)
	assert.Len(t, rects, 2, "later container changes do not move the label")
}

func TestSettle_SupersededByNewGesture(t *testing.T) {
	settler := anim.NewFrameSettler(anim.DefaultSpring)
	c := newMeasured(t, WithSettler(settler))

	c.PinchStart()
	c.PinchUpdate(2)
	c.PinchEnd()
	assert.Equal(t, PinchSettling, c.PinchPhase())
	assert.Equal(t, 1, settler.Active())

	c.PinchStart()
	assert.Equal(t, PinchActive, c.PinchPhase())
	assert.Equal(t, 0, settler.Active(), "new pinch cancels the running settle")
	assert.Equal(t, 2.0, c.Store().ScaleStart(), "snapshot comes from the live value")

	c.PinchEnd()
	settler.Flush()
	assert.Equal(t, PinchIdle, c.PinchPhase())
	assert.Equal(t, 2.0, c.State().Scale)
}

func TestSettle_PanGoesIdleAfterBothAxes(t *testing.T) {
	settler := anim.NewFrameSettler(anim.DefaultSpring)
	c := newMeasured(t, WithSettler(settler))

	c.PanDown()
	c.PanUpdate(geometry.NewVector2(40, 40))
	c.PanEnd()

	assert.Equal(t, PanSettling, c.PanPhase())
	assert.False(t, c.State().IsDragging, "drag flag clears before the settle finishes")
	assert.Equal(t, 2, settler.Active())

	settler.Step(1.0 / 60)
	assert.Equal(t, PanIdle, c.PanPhase())
	assert.Equal(t, geometry.NewVector2(140, 270), c.State().Position)
}

func TestSettle_NewDragDuringSettle(t *testing.T) {
	settler := anim.NewFrameSettler(anim.DefaultSpring)
	c := newMeasured(t, WithSettler(settler))

	c.PanDown()
	c.PanUpdate(geometry.NewVector2(40, 40))
	c.PanEnd()
	c.PanDown()

	assert.Equal(t, PanTouching, c.PanPhase())
	assert.Equal(t, 0, settler.Active())

	settler.Flush()
	assert.Equal(t, PanTouching, c.PanPhase(), "stale settle must not reset the new touch")
}

func TestQueueDispatcherSerializesCommits(t *testing.T) {
	q := NewQueue()
	c := NewController(WithDispatcher(q))

	c.ContainerMeasured(300, 500)
	c.LabelMeasured(100, 40)
	c.PanDown()
	assert.Equal(t, transform.State{Scale: 1}, c.State(), "nothing commits before the drain")
	assert.Equal(t, 3, q.Len())

	assert.Equal(t, 3, q.Drain())
	st := c.State()
	assert.Equal(t, geometry.NewVector2(100, 230), st.Position)
	assert.True(t, st.IsDragging)
}
