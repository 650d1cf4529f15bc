package app

import (
	"fmt"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/draglabel/internal/config"
	"github.com/philipparndt/draglabel/pkg/anim"
	"github.com/philipparndt/draglabel/pkg/gesture"
	"github.com/philipparndt/draglabel/pkg/watcher"
)

// reloadDebounce coalesces bursts of editor writes to the config file
const reloadDebounce = 200 * time.Millisecond

// Options controls how the window is hosted
type Options struct {
	ConfigPath string // file to hot-reload; empty disables watching
	Watch      bool
}

// App is the raylib host for the draggable label
type App struct {
	Label  LabelState
	Input  InputState
	View   ViewSettings
	Config ConfigState
	UI     UIState
}

// Run opens the window and blocks until it is closed
func Run(conf *config.Config, opts Options) error {
	if err := conf.Validate(); err != nil {
		return err
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(conf.WindowWidth), int32(conf.WindowHeight), "draglabel")
	rl.SetTargetFPS(60)

	app := newApp(conf)
	app.UI.font = rl.GetFontDefault()

	if opts.Watch && opts.ConfigPath != "" {
		if err := app.setupConfigWatcher(opts.ConfigPath); err != nil {
			fmt.Printf("Warning: Failed to watch config: %v\n", err)
		} else {
			defer app.Config.fileWatcher.Close()
		}
	}

	// Main loop
	for {
		// Escape leaves text editing instead of closing the window
		if rl.WindowShouldClose() && !(app.Input.editing && rl.IsKeyPressed(rl.KeyEscape)) {
			break
		}
		app.frame(float64(rl.GetFrameTime()))
	}

	rl.CloseWindow()
	return nil
}

func newApp(conf *config.Config) *App {
	app := &App{
		View:   viewFromConfig(conf),
		Config: ConfigState{conf: conf},
		Input:  InputState{focused: true},
	}

	app.Label.queue = gesture.NewQueue()
	app.Label.settler = anim.NewFrameSettler(anim.DefaultSpring)
	options := []gesture.Option{
		gesture.WithText(conf.Text),
		gesture.WithDragThreshold(conf.DragThreshold),
		gesture.WithSnapTolerance(conf.SnapTolerance),
		gesture.WithDispatcher(app.Label.queue),
		gesture.WithSettler(app.Label.settler),
		gesture.WithOnChangeText(app.beginEdit),
	}
	if conf.Debug {
		options = append(options, gesture.WithLogger(log.Default()))
	}
	app.Label.controller = gesture.NewController(options...)
	app.Input.tracker = gesture.NewPointerTracker(app.Label.controller)
	return app
}

// frame runs one update and draw pass. Every controller commit happens
// here, on the thread that owns the window.
func (app *App) frame(dt float64) {
	app.measure()
	app.Label.queue.Drain()

	app.handleInput()
	app.Label.queue.Drain()

	app.Label.settler.Step(dt)
	app.Label.queue.Drain()

	// A pinch this frame changes the rendered size
	app.measure()
	app.Label.queue.Drain()

	rl.BeginDrawing()
	rl.ClearBackground(app.View.container)
	app.drawLabel()
	app.drawStatus()
	rl.EndDrawing()
}

func (app *App) setupConfigWatcher(path string) error {
	fw, err := watcher.NewFileWatcher(reloadDebounce)
	if err != nil {
		return err
	}
	fw.OnError(func(err error) {
		fmt.Printf("Config watcher error: %v\n", err)
	})
	if err := fw.Watch(path, app.reloadConfig); err != nil {
		fw.Close()
		return err
	}
	fw.Start()

	app.Config.path = path
	app.Config.fileWatcher = fw
	fmt.Printf("Watching %s for changes\n", path)
	return nil
}

// reloadConfig runs on the watcher goroutine and hands the result to the frame loop
func (app *App) reloadConfig(path string) {
	conf, err := config.Load(path)
	if err != nil {
		fmt.Printf("Keeping previous config: %v\n", err)
		return
	}
	app.Label.queue.Do(func() {
		app.applyConfig(conf)
		fmt.Printf("Reloaded %s\n", path)
	})
}

// applyConfig swaps text and colors. The transform is left untouched.
func (app *App) applyConfig(conf *config.Config) {
	showStatus := app.View.showStatus
	app.View = viewFromConfig(conf)
	app.View.showStatus = showStatus
	app.Config.conf = conf
	app.Label.controller.SetText(conf.Text)
}
