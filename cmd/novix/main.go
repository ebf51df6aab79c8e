// Package main implements the novix command-line interface.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/renato0307/novix/internal/config"
	"github.com/renato0307/novix/internal/logging"
	"github.com/renato0307/novix/internal/ui"
)

var (
	// Version is set at build time
	version = "0.1.0"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions is shared by every subcommand. The loader is ready once the
// persistent pre-run has bound the flags.
type rootOptions struct {
	configPath string
	debug      bool
	loader     *config.Loader
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "novix",
		Short: "novix - a keyboard-first writing workspace",
		Long: `novix is a terminal workspace for long-form writing projects.

Everything is reachable from the command palette (ctrl+k): jump to
characters and chapters, toggle settings, pin writing techniques to the
open chapter, or create cards with the command language:

  + character Alice --age 30 --tag hero
  + blueprint "Three Acts" --scenes 9
  pin tech flashback high --weight 2`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.bind(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Shutdown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default $XDG_CONFIG_HOME/novix/config.yaml)")
	flags.String("theme", "", "Color theme ("+strings.Join(ui.AvailableThemes(), ", ")+")")
	flags.String("mode", "", "Color mode (system, light, dark)")
	flags.String("project", "", "Project to open")
	flags.String("log-file", "", "Write logs to this file")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")

	cmd.AddCommand(newParseCmd(opts))
	cmd.AddCommand(newRankCmd(opts))
	cmd.AddCommand(newReplCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

// flagKeys maps persistent flags to the settings they override.
var flagKeys = map[string]string{
	"theme":     config.KeyTheme,
	"mode":      config.KeyMode,
	"project":   config.KeyProject,
	"log-file":  config.KeyLogFile,
	"log-level": config.KeyLogLevel,
}

func (o *rootOptions) bind(cmd *cobra.Command) error {
	o.loader = config.NewLoader(o.configPath)
	v := o.loader.Viper()
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

// load resolves the configuration and starts logging. One-shot commands
// pass their stderr so --debug output lands there; the TUI passes nil and
// logs to a file.
func (o *rootOptions) load(stderr io.Writer) (*config.Config, error) {
	cfg, err := o.loader.Load()
	if err != nil {
		return nil, err
	}

	lc := cfg.Logging()
	if o.debug {
		lc.Level = slog.LevelDebug
		if lc.FilePath == "" {
			if stderr != nil {
				lc.Output = stderr
			} else {
				lc.FilePath = config.DefaultLogPath()
			}
		}
	}
	if err := logging.Init(lc); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return cfg, nil
}
