package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/draglabel/pkg/geometry"
	"github.com/philipparndt/draglabel/pkg/gesture"
)

// handleInput processes user input
func (app *App) handleInput() {
	// Losing focus mid-gesture means the release will never arrive
	focused := rl.IsWindowFocused()
	if !focused && app.Input.focused {
		app.Input.tracker.Cancel()
	}
	app.Input.focused = focused
	if !focused {
		return
	}

	if app.Input.editing {
		app.handleTextEdit()
		return
	}

	if rl.IsKeyPressed(rl.KeyF1) {
		app.View.showStatus = !app.View.showStatus
	}

	rect := geometry.NewRect(app.Label.controller.State().Position, app.Label.measured)
	app.Input.tracker.Update(readPointer(), rect)
}

// readPointer samples touch points, falling back to the mouse on desktop
func readPointer() gesture.PointerFrame {
	var frame gesture.PointerFrame

	if count := int(rl.GetTouchPointCount()); count >= 2 {
		for i := 0; i < count && i < 2; i++ {
			p := rl.GetTouchPosition(int32(i))
			frame.Touches = append(frame.Touches, geometry.NewVector2(float64(p.X), float64(p.Y)))
		}
	} else if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		p := rl.GetMousePosition()
		frame.Touches = append(frame.Touches, geometry.NewVector2(float64(p.X), float64(p.Y)))
	}

	frame.Wheel = float64(rl.GetMouseWheelMove())
	return frame
}

// beginEdit is the label's change-text callback
func (app *App) beginEdit(text string) {
	app.Input.editing = true
	app.Input.draft = []rune(text)
}

// handleTextEdit applies typed characters to the draft.
// Enter commits the draft as the new label text, Escape discards it.
func (app *App) handleTextEdit() {
	// Use character input instead of physical keys to work across all keyboard layouts
	for char := rl.GetCharPressed(); char != 0; char = rl.GetCharPressed() {
		app.Input.draft = append(app.Input.draft, rune(char))
	}

	if rl.IsKeyPressed(rl.KeyBackspace) && len(app.Input.draft) > 0 {
		app.Input.draft = app.Input.draft[:len(app.Input.draft)-1]
	}

	switch {
	case rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter):
		app.Label.controller.SetText(string(app.Input.draft))
		app.Input.editing = false
	case rl.IsKeyPressed(rl.KeyEscape):
		app.Input.editing = false
	}
}

// displayText is the text currently drawn inside the label box
func (app *App) displayText() string {
	if app.Input.editing {
		return string(app.Input.draft) + "_"
	}
	return app.Label.controller.Text()
}
