package label

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/draglabel/pkg/geometry"
	"github.com/philipparndt/draglabel/pkg/gesture"
	"github.com/philipparndt/draglabel/pkg/transform"
)

// BaseFontSize is the text size at scale 1
const BaseFontSize = 22

// textPadding is the gap between the label text and its box
const textPadding = 8

// wheelIdle ends an emulated pinch once scrolling pauses this long
const wheelIdle = 250 * time.Millisecond

// Style holds the presentation settings of the label
type Style struct {
	TextColor  color.Color
	Background color.Color
	Container  color.Color
	Highlight  color.Color
	TextStyle  fyne.TextStyle
}

// DefaultStyle returns white text on a transparent box over a dark surface
func DefaultStyle() Style {
	return Style{
		TextColor:  color.White,
		Background: color.Transparent,
		Container:  color.NRGBA{R: 15, G: 18, B: 25, A: 255},
		Highlight:  color.NRGBA{R: 61, G: 139, B: 253, A: 255},
	}
}

// DraggableLabel is a surface holding one text label that can be dragged and
// pinch-scaled. On desktop the scroll wheel stands in for pinch.
type DraggableLabel struct {
	widget.BaseWidget
	controller  *gesture.Controller
	wheel       *gesture.WheelPinch
	wheelTimer  *time.Timer
	style       Style
	pressed     bool             // primary button is down anywhere on the surface
	tracking    bool             // pointer went down on the label
	dragging    bool             // toolkit recognized a drag
	rejected    bool             // current drag began off the label
	dragged     geometry.Vector2 // cumulative translation of the current drag
	unsubscribe transform.Unsubscribe
}

// NewDraggableLabel creates a label surface driven by the given controller
func NewDraggableLabel(controller *gesture.Controller, style Style) *DraggableLabel {
	l := &DraggableLabel{
		controller: controller,
		wheel:      gesture.NewWheelPinch(controller),
		style:      style,
	}
	l.ExtendBaseWidget(l)
	return l
}

// SetStyle replaces the presentation settings
func (l *DraggableLabel) SetStyle(style Style) {
	l.style = style
	l.Refresh()
}

// SetText replaces the label text
func (l *DraggableLabel) SetText(text string) {
	l.controller.SetText(text)
	l.Refresh()
}

// LabelSize returns the size of the label box at the current scale
func (l *DraggableLabel) LabelSize() geometry.Size {
	size := fyne.MeasureText(l.controller.Text(), l.textSize(), l.style.TextStyle)
	return geometry.NewSize(
		float64(size.Width)+2*textPadding,
		float64(size.Height)+2*textPadding,
	)
}

func (l *DraggableLabel) textSize() float32 {
	return float32(BaseFontSize * l.controller.State().Scale)
}

// labelRect returns the label box in widget coordinates
func (l *DraggableLabel) labelRect() geometry.Rect {
	return geometry.NewRect(l.controller.State().Position, l.LabelSize())
}

func (l *DraggableLabel) onLabel(pos fyne.Position) bool {
	return l.labelRect().Contains(geometry.NewVector2(float64(pos.X), float64(pos.Y)))
}

// CreateRenderer creates the renderer for the widget
func (l *DraggableLabel) CreateRenderer() fyne.WidgetRenderer {
	r := &labelRenderer{
		label:     l,
		container: canvas.NewRectangle(l.style.Container),
		box:       canvas.NewRectangle(l.style.Background),
		text:      canvas.NewText(l.controller.Text(), l.style.TextColor),
		vGuide:    canvas.NewLine(l.style.Highlight),
		hGuide:    canvas.NewLine(l.style.Highlight),
	}
	r.box.StrokeWidth = 2
	r.vGuide.StrokeWidth = 1
	r.hGuide.StrokeWidth = 1
	r.objects = []fyne.CanvasObject{r.container, r.vGuide, r.hGuide, r.box, r.text}

	if l.unsubscribe == nil {
		l.unsubscribe = l.controller.Subscribe(func(transform.State) {
			l.Refresh()
		})
	}
	return r
}

// MouseDown starts a touch when the primary button goes down on the label
func (l *DraggableLabel) MouseDown(event *desktop.MouseEvent) {
	if event.Button != desktop.MouseButtonPrimary {
		return
	}
	l.pressed = true
	if !l.onLabel(event.Position) {
		return
	}
	l.tracking = true
	l.controller.PanDown()
}

// MouseUp releases a touch that never became a drag. A tap, if any, arrives via Tapped.
func (l *DraggableLabel) MouseUp(*desktop.MouseEvent) {
	l.pressed = false
	if !l.tracking || l.dragging {
		return
	}
	l.tracking = false
	l.controller.PanCancel()
}

// Dragged handles drag events for moving the label
func (l *DraggableLabel) Dragged(event *fyne.DragEvent) {
	if l.rejected {
		return
	}
	if !l.dragging {
		if !l.tracking {
			// A press off the label owns this drag. Without a press (touch
			// screens) the first event tells where the drag began.
			start := event.Position.Subtract(event.Dragged)
			if l.pressed || !l.onLabel(start) {
				l.rejected = true
				return
			}
			l.tracking = true
		}
		l.dragging = true
		l.dragged = geometry.Vector2{}
		l.controller.PanStart()
	}

	l.dragged = l.dragged.Add(geometry.NewVector2(float64(event.Dragged.DX), float64(event.Dragged.DY)))
	l.controller.PanUpdate(l.dragged)
}

// DragEnd handles the end of a drag event
func (l *DraggableLabel) DragEnd() {
	l.pressed = false
	l.rejected = false
	if !l.dragging {
		return
	}
	l.dragging = false
	l.tracking = false
	l.controller.PanEnd()
}

// Tapped reports taps on the label
func (l *DraggableLabel) Tapped(event *fyne.PointEvent) {
	if l.onLabel(event.Position) {
		l.controller.Tap()
	}
}

// Scrolled handles scroll events for scaling
func (l *DraggableLabel) Scrolled(event *fyne.ScrollEvent) {
	l.wheel.Scroll(float64(event.Scrolled.DY))

	if l.wheelTimer != nil {
		l.wheelTimer.Stop()
	}
	l.wheelTimer = time.AfterFunc(wheelIdle, func() {
		fyne.Do(l.wheel.Finish)
	})
}

// EndScroll finishes an emulated pinch immediately
func (l *DraggableLabel) EndScroll() {
	if l.wheelTimer != nil {
		l.wheelTimer.Stop()
		l.wheelTimer = nil
	}
	l.wheel.Finish()
}

// labelRenderer implements fyne.WidgetRenderer
type labelRenderer struct {
	label     *DraggableLabel
	container *canvas.Rectangle
	box       *canvas.Rectangle
	text      *canvas.Text
	vGuide    *canvas.Line
	hGuide    *canvas.Line
	objects   []fyne.CanvasObject
	measured  geometry.Size
}

func (r *labelRenderer) Layout(size fyne.Size) {
	r.container.Resize(size)
	r.label.controller.ContainerMeasured(float64(size.Width), float64(size.Height))
	r.update(size)
}

func (r *labelRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *labelRenderer) Refresh() {
	r.update(r.label.Size())
	canvas.Refresh(r.label)
}

// update measures the label, reports size changes and places every object
func (r *labelRenderer) update(size fyne.Size) {
	l := r.label

	labelSize := l.LabelSize()
	if labelSize != r.measured {
		r.measured = labelSize
		l.controller.LabelMeasured(labelSize.Width, labelSize.Height)
	}
	state := l.controller.State()

	r.container.FillColor = l.style.Container

	r.text.Text = l.controller.Text()
	r.text.Color = l.style.TextColor
	r.text.TextStyle = l.style.TextStyle
	r.text.TextSize = l.textSize()
	pos := fyne.NewPos(float32(state.Position.X), float32(state.Position.Y))
	r.text.Move(pos.AddXY(textPadding, textPadding))
	r.text.Resize(fyne.NewSize(float32(labelSize.Width-2*textPadding), float32(labelSize.Height-2*textPadding)))

	r.box.FillColor = l.style.Background
	r.box.StrokeColor = color.Transparent
	if state.IsDragging || state.IsPinching {
		r.box.StrokeColor = l.style.Highlight
	}
	r.box.Move(pos)
	r.box.Resize(fyne.NewSize(float32(labelSize.Width), float32(labelSize.Height)))

	r.vGuide.StrokeColor = l.style.Highlight
	r.vGuide.Position1 = fyne.NewPos(size.Width/2, 0)
	r.vGuide.Position2 = fyne.NewPos(size.Width/2, size.Height)
	setVisible(r.vGuide, state.IsDragging && state.IsCenteredX)

	r.hGuide.StrokeColor = l.style.Highlight
	r.hGuide.Position1 = fyne.NewPos(0, size.Height/2)
	r.hGuide.Position2 = fyne.NewPos(size.Width, size.Height/2)
	setVisible(r.hGuide, state.IsDragging && state.IsCenteredY)
}

func (r *labelRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *labelRenderer) Destroy() {
	r.label.EndScroll()
	if r.label.unsubscribe != nil {
		r.label.unsubscribe()
		r.label.unsubscribe = nil
	}
}

func setVisible(o fyne.CanvasObject, visible bool) {
	if visible {
		o.Show()
	} else {
		o.Hide()
	}
}
