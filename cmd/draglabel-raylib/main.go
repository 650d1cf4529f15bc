package main

import (
	"runtime"

	"github.com/philipparndt/draglabel/cmd"
	"github.com/philipparndt/draglabel/internal/app"
	"github.com/philipparndt/draglabel/internal/config"
)

func init() {
	// raylib must run on the main OS thread
	runtime.LockOSThread()
}

func main() {
	cmd.Execute(cmd.NewRootCommand("draglabel-raylib", func(conf *config.Config, opts cmd.RunOptions) error {
		return app.Run(conf, app.Options{ConfigPath: opts.ConfigPath, Watch: opts.Watch})
	}))
}
