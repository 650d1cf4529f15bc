package main

import (
	"github.com/philipparndt/draglabel/cmd"
	"github.com/philipparndt/draglabel/internal/config"
	"github.com/philipparndt/draglabel/internal/gui"
)

func main() {
	cmd.Execute(cmd.NewRootCommand("draglabel", func(conf *config.Config, opts cmd.RunOptions) error {
		return gui.Run(conf, gui.Options{ConfigPath: opts.ConfigPath, Watch: opts.Watch})
	}))
}
