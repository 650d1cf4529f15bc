package cmd

import (
	"fmt"
	"os"

	"github.com/philipparndt/draglabel/internal/config"
	"github.com/philipparndt/draglabel/version"
	"github.com/spf13/cobra"
)

// RunOptions is what a host needs beyond the resolved config
type RunOptions struct {
	ConfigPath string
	Watch      bool
}

// Host opens the label window and blocks until it is closed
type Host func(conf *config.Config, opts RunOptions) error

type rootOptions struct {
	configPath string
	watch      bool
	textColor  string
	background string
	debug      bool
}

// NewRootCommand builds the command line shared by every host binary
func NewRootCommand(name string, host Host) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   name + " [text]",
		Short: "A draggable, pinch-scalable text label",
		Long: `Shows a single text label that can be dragged around the window and scaled
with a pinch (or the scroll wheel). The label snaps onto the window center and
settles with a spring when released. Tap the label to edit its text.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, path, err := opts.load(cmd, args)
			if err != nil {
				return err
			}
			return host(conf, RunOptions{ConfigPath: path, Watch: opts.watch})
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default is the user config directory)")
	rootCmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the config file when it changes")
	rootCmd.Flags().StringVar(&opts.textColor, "text-color", "", "text color as #RRGGBB or #RRGGBBAA")
	rootCmd.Flags().StringVar(&opts.background, "background", "", "label background color as #RRGGBB or #RRGGBBAA")
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "log gesture transitions")

	rootCmd.AddCommand(newConfigCmd(opts), newVersionCmd(name))
	return rootCmd
}

// Execute runs the root command
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// path resolves the config file location
func (o *rootOptions) path() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.DefaultPath()
}

// load reads the config file and applies command line overrides on top
func (o *rootOptions) load(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	path, err := o.path()
	if err != nil {
		return nil, "", err
	}
	conf, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}

	if len(args) == 1 {
		conf.Text = args[0]
	}
	if cmd.Flags().Changed("text-color") {
		conf.TextColor = o.textColor
	}
	if cmd.Flags().Changed("background") {
		conf.BackgroundColor = o.background
	}
	if o.debug {
		conf.Debug = true
	}

	if err := conf.Validate(); err != nil {
		return nil, "", err
	}
	return conf, path, nil
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config unless one exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.path()
			if err != nil {
				return err
			}
			written, err := config.InitIfMissing(path)
			if err != nil {
				return err
			}
			if written {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
			}
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.path()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return configCmd
}

func newVersionCmd(name string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", name, version.GetFullVersion())
		},
	}
}
