package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/draglabel/internal/config"
	"github.com/philipparndt/draglabel/pkg/anim"
	"github.com/philipparndt/draglabel/pkg/geometry"
	"github.com/philipparndt/draglabel/pkg/gesture"
	"github.com/philipparndt/draglabel/pkg/watcher"
)

// LabelState holds the gesture controller and the frame-driven commit timeline
type LabelState struct {
	controller *gesture.Controller

	// queue is drained on the main thread, several times per frame
	queue   *gesture.Queue
	settler *anim.FrameSettler

	// Last reported sizes
	container geometry.Size
	measured  geometry.Size
}

// InputState holds pointer and keyboard state
type InputState struct {
	tracker *gesture.PointerTracker
	focused bool

	// Inline text editing, entered by tapping the label
	editing bool
	draft   []rune
}

// ViewSettings holds display settings
type ViewSettings struct {
	textColor  rl.Color
	background rl.Color
	container  rl.Color
	highlight  rl.Color
	showStatus bool
}

// ConfigState holds config file watching and reload state
type ConfigState struct {
	conf        *config.Config
	path        string
	fileWatcher *watcher.FileWatcher
}

// UIState holds UI-related state
type UIState struct {
	font rl.Font
}

func toColor(s string) rl.Color {
	c := config.MustColor(s)
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func viewFromConfig(conf *config.Config) ViewSettings {
	return ViewSettings{
		textColor:  toColor(conf.TextColor),
		background: toColor(conf.BackgroundColor),
		container:  toColor(conf.ContainerColor),
		highlight:  toColor(conf.HighlightColor),
		showStatus: true,
	}
}
