// Package cli implements the backdrop command-line interface.
//
// # Commands
//
//   - seed: generate a new background image with centered text
//   - update: refresh an existing image (currently a pass-through)
//   - watch: seed again each time the config file changes
//   - init: write the default config file
//
// # Configuration
//
// Defaults come from an optional TOML file (see package config). Flags
// given on the command line override file values.
//
// # Logging
//
// Log output goes to stderr through charmbracelet/log, or to a rotating
// file when [log] file is set. --verbose (-v) lowers the level to debug.
// The same logger is installed into the backdrop library via slog.
package cli

import (
	"context"
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/backdrop"
	"github.com/gogpu/backdrop/internal/config"
)

// app holds state shared by all commands of one invocation.
type app struct {
	verbose    bool
	configPath string

	cfg     *config.Config
	cfgFile string // resolved config path, "" when unknown
	logger  *charmlog.Logger
	closer  io.Closer // log file, if any
}

// Execute runs the backdrop CLI with the given arguments.
//
// Example:
//
//	func main() {
//	    if err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	defer a.close()

	root := a.rootCommand(stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (a *app) rootCommand(logOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "backdrop",
		Short:         "backdrop generates background images with centered text",
		Long:          `backdrop fills an image with a solid color and draws a line of text in the middle of it, using a randomly chosen font in the inverse color.`,
		Version:       backdrop.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(logOut, cmd.Name() != "init")
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/backdrop/config.toml)")

	root.AddCommand(a.seedCommand())
	root.AddCommand(a.updateCommand())
	root.AddCommand(a.watchCommand())
	root.AddCommand(a.initCommand())

	return root
}

// setup resolves the config path, loads the file unless load is false,
// and wires logging.
func (a *app) setup(logOut io.Writer, load bool) error {
	path, optional := a.configPath, false
	if path == "" {
		optional = true
		var err error
		if path, err = config.DefaultPath(); err != nil {
			path = ""
		}
	}

	cfg := config.DefaultConfig()
	if path != "" && load {
		var err error
		if cfg, err = config.Load(path, optional); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.cfgFile = path

	level, _ := charmlog.ParseLevel(cfg.Log.Level)
	if a.verbose {
		level = charmlog.DebugLevel
	}

	w := logOut
	if cfg.Log.File != "" {
		lj := newLogFile(cfg.Log.File, cfg.Log.MaxSizeMB)
		a.closer = lj
		w = lj
	}
	a.logger = newLogger(w, level)
	backdrop.SetLogger(slog.New(a.logger))

	a.logger.Debug("config loaded", "path", path, "optional", optional)
	return nil
}

func (a *app) close() {
	backdrop.SetLogger(nil)
	if a.closer != nil {
		_ = a.closer.Close()
		a.closer = nil
	}
}
