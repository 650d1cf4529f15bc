package gui

import (
	"io"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/draglabel/internal/config"
	"github.com/philipparndt/draglabel/pkg/anim"
	"github.com/philipparndt/draglabel/pkg/geometry"
	"github.com/philipparndt/draglabel/pkg/gesture"
	"github.com/philipparndt/draglabel/pkg/label"
	"github.com/philipparndt/draglabel/pkg/transform"
	"github.com/philipparndt/draglabel/pkg/watcher"
)

// reloadDebounce coalesces bursts of editor writes to the config file
const reloadDebounce = 200 * time.Millisecond

// Options controls how the window is hosted
type Options struct {
	ConfigPath string // file to hot-reload; empty disables watching
	Watch      bool
}

// App is the Fyne host for the draggable label
type App struct {
	window     fyne.Window
	controller *gesture.Controller
	label      *label.DraggableLabel
	status     *widget.Label
	conf       *config.Config
	watcher    *watcher.FileWatcher
	logger     *log.Logger
}

// Run opens the window and blocks until it is closed
func Run(conf *config.Config, opts Options) error {
	a, err := New(app.New(), conf, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	a.window.ShowAndRun()
	return nil
}

// New builds the window content without showing it
func New(fyneApp fyne.App, conf *config.Config, opts Options) (*App, error) {
	a := &App{
		window: fyneApp.NewWindow("draglabel"),
		conf:   conf,
		logger: log.New(io.Discard, "", 0),
	}
	if conf.Debug {
		a.logger = log.Default()
	}

	style, err := StyleFromConfig(conf)
	if err != nil {
		return nil, err
	}

	a.controller = gesture.NewController(
		gesture.WithText(conf.Text),
		gesture.WithDragThreshold(conf.DragThreshold),
		gesture.WithSnapTolerance(conf.SnapTolerance),
		gesture.WithDispatcher(label.Dispatcher),
		gesture.WithSettler(label.NewAnimationSettler(anim.DefaultSpring)),
		gesture.WithLogger(a.logger),
		gesture.WithOnChangeText(a.editText),
		gesture.WithOnLayout(func(r *geometry.Rect) {
			if r != nil {
				a.logger.Printf("label layout: %v %vx%v", r.Position, r.Size.Width, r.Size.Height)
			}
		}),
	)
	a.label = label.NewDraggableLabel(a.controller, style)

	a.status = widget.NewLabel("")
	a.status.TextStyle = fyne.TextStyle{Monospace: true}
	a.controller.Subscribe(a.updateStatus)
	a.updateStatus(a.controller.State())

	a.window.SetContent(container.NewBorder(nil, a.status, nil, nil, a.label))
	a.window.Resize(fyne.NewSize(float32(conf.WindowWidth), float32(conf.WindowHeight)))

	if opts.Watch && opts.ConfigPath != "" {
		if err := a.watchConfig(opts.ConfigPath); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Close stops the config watcher
func (a *App) Close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("Failed to stop config watcher: %v", err)
		}
		a.watcher = nil
	}
}

// StyleFromConfig converts the configured colors and text style
func StyleFromConfig(conf *config.Config) (label.Style, error) {
	if err := conf.Validate(); err != nil {
		return label.Style{}, err
	}
	return label.Style{
		TextColor:  config.MustColor(conf.TextColor),
		Background: config.MustColor(conf.BackgroundColor),
		Container:  config.MustColor(conf.ContainerColor),
		Highlight:  config.MustColor(conf.HighlightColor),
		TextStyle: fyne.TextStyle{
			Bold:      conf.Bold,
			Italic:    conf.Italic,
			Monospace: conf.Monospace,
		},
	}, nil
}

// applyConfig swaps text and colors. The transform is left untouched.
func (a *App) applyConfig(conf *config.Config) error {
	style, err := StyleFromConfig(conf)
	if err != nil {
		return err
	}
	a.conf = conf
	a.label.SetStyle(style)
	a.label.SetText(conf.Text)
	return nil
}

func (a *App) watchConfig(path string) error {
	fw, err := watcher.NewFileWatcher(reloadDebounce)
	if err != nil {
		return err
	}
	fw.OnError(func(err error) {
		log.Printf("Config watcher error: %v", err)
	})
	if err := fw.Watch(path, a.reload); err != nil {
		fw.Close()
		return err
	}
	fw.Start()
	a.watcher = fw
	log.Printf("Watching %s for changes", path)
	return nil
}

// reload runs on the watcher goroutine
func (a *App) reload(path string) {
	conf, err := config.Load(path)
	if err != nil {
		log.Printf("Keeping previous config: %v", err)
		return
	}
	fyne.Do(func() {
		if err := a.applyConfig(conf); err != nil {
			log.Printf("Keeping previous config: %v", err)
			return
		}
		log.Printf("Reloaded %s", path)
	})
}

// editText is the label's change-text callback: it offers the text for editing
func (a *App) editText(text string) {
	entry := widget.NewEntry()
	entry.SetText(text)
	dialog.ShowForm("Edit label", "Apply", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Text", entry)},
		func(ok bool) {
			if ok {
				a.label.SetText(entry.Text)
			}
		}, a.window)
}

func (a *App) updateStatus(st transform.State) {
	a.status.SetText(st.String())
}
