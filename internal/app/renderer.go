package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/draglabel/pkg/geometry"
	"github.com/philipparndt/draglabel/version"
)

const (
	baseFontSize = 22
	textPadding  = 8
	statusHeight = 24
)

// fontSize returns the rendered text size at the given scale
func fontSize(scale float64) float32 {
	return float32(baseFontSize * scale)
}

// labelSize measures the label box: text extent plus padding on every side
func (app *App) labelSize(scale float64) geometry.Size {
	size := fontSize(scale)
	extent := rl.MeasureTextEx(app.UI.font, app.displayText(), size, size/10)
	return geometry.NewSize(float64(extent.X)+2*textPadding, float64(extent.Y)+2*textPadding)
}

// measure reports container and label size changes to the controller
func (app *App) measure() {
	height := rl.GetScreenHeight()
	if app.View.showStatus {
		height -= statusHeight
	}
	container := geometry.NewSize(float64(rl.GetScreenWidth()), float64(height)).Sanitize()
	if container != app.Label.container {
		app.Label.container = container
		app.Label.controller.ContainerMeasured(container.Width, container.Height)
	}

	label := app.labelSize(app.Label.controller.State().Scale)
	if label != app.Label.measured {
		app.Label.measured = label
		app.Label.controller.LabelMeasured(label.Width, label.Height)
	}
}

// drawLabel draws the center guides, the label box and its text
func (app *App) drawLabel() {
	st := app.Label.controller.State()
	container := app.Label.container

	if st.IsDragging && st.IsCenteredX {
		x := float32(container.Width / 2)
		rl.DrawLineEx(rl.Vector2{X: x, Y: 0}, rl.Vector2{X: x, Y: float32(container.Height)}, 1, app.View.highlight)
	}
	if st.IsDragging && st.IsCenteredY {
		y := float32(container.Height / 2)
		rl.DrawLineEx(rl.Vector2{X: 0, Y: y}, rl.Vector2{X: float32(container.Width), Y: y}, 1, app.View.highlight)
	}

	rect := rl.Rectangle{
		X:      float32(st.Position.X),
		Y:      float32(st.Position.Y),
		Width:  float32(app.Label.measured.Width),
		Height: float32(app.Label.measured.Height),
	}
	rl.DrawRectangleRec(rect, app.View.background)
	if st.IsDragging || st.IsPinching || app.Input.editing {
		rl.DrawRectangleLinesEx(rect, 2, app.View.highlight)
	}

	size := fontSize(st.Scale)
	pos := rl.Vector2{X: rect.X + textPadding, Y: rect.Y + textPadding}
	rl.DrawTextEx(app.UI.font, app.displayText(), pos, size, size/10, app.View.textColor)
}

// drawStatus draws the transform readout below the container
func (app *App) drawStatus() {
	if !app.View.showStatus {
		return
	}

	y := float32(rl.GetScreenHeight() - statusHeight)
	width := float32(rl.GetScreenWidth())
	rl.DrawRectangleRec(rl.Rectangle{X: 0, Y: y, Width: width, Height: statusHeight}, rl.NewColor(0, 0, 0, 160))

	text := app.Label.controller.State().String()
	if app.Input.editing {
		text = "editing: Enter to apply, Esc to cancel"
	}
	rl.DrawTextEx(app.UI.font, text, rl.Vector2{X: 8, Y: y + 5}, 14, 1.4, rl.LightGray)

	ver := "v" + version.GetVersion()
	verSize := rl.MeasureTextEx(app.UI.font, ver, 14, 1.4)
	rl.DrawTextEx(app.UI.font, ver, rl.Vector2{X: width - verSize.X - 8, Y: y + 5}, 14, 1.4, rl.Gray)
}
