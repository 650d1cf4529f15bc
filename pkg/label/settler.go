package label

import (
	"time"

	"fyne.io/fyne/v2"
	"github.com/philipparndt/draglabel/pkg/anim"
	"github.com/philipparndt/draglabel/pkg/gesture"
)

// Dispatcher commits controller updates on the Fyne main goroutine
var Dispatcher gesture.Dispatcher = gesture.DispatcherFunc(fyne.Do)

// AnimationSettler runs spring settles as Fyne animations.
// Ticks arrive on the Fyne main goroutine.
type AnimationSettler struct {
	Spring anim.Spring
}

// NewAnimationSettler creates a settler using the given spring
func NewAnimationSettler(spring anim.Spring) *AnimationSettler {
	return &AnimationSettler{Spring: spring}
}

// Settle implements anim.Settler
func (s *AnimationSettler) Settle(from, to float64, apply func(float64), done func()) anim.CancelFunc {
	seconds := s.Spring.SettleDuration()
	finished := false

	a := fyne.NewAnimation(time.Duration(seconds*float64(time.Second)), func(p float32) {
		if finished {
			return
		}
		if p >= 1 {
			finished = true
			apply(to)
			done()
			return
		}
		apply(from + (to-from)*s.Spring.Progress(float64(p)*seconds))
	})
	// the spring shape is applied above; Fyne only supplies linear time
	a.Curve = fyne.AnimationLinear
	a.Start()

	return func() {
		if finished {
			return
		}
		finished = true
		a.Stop()
	}
}
