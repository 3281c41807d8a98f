package main

import (
	"fmt"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	verrors "github.com/vango-dev/vtree/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds state shared by subcommands once the root command has loaded
// configuration.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ve *verrors.Error
		if errors.As(err, &ve) {
			fmt.Fprint(os.Stderr, ve.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		noColor    bool
	)
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "vtree",
		Short: "Keyed children reconciliation for host trees",
		Long: `vtree reconciles descriptor trees against a host document.

Trees are JSON documents:

  {"type": "element", "tag": "ul", "children": [
    {"type": "element", "tag": "li", "key": "a", "children": ["a"]}
  ]}

Commands print the host mutations a render pass makes, hydrate server
markup, benchmark keyed reordering and run a playground server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				verrors.DisableColors()
			}
			return a.setup(configPath, logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: vtree.json or vtree.toml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		diffCmd(a),
		hydrateCmd(a),
		benchCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return rootCmd
}

func (a *app) setup(configPath, logLevel string) error {
	var err error
	if configPath != "" {
		a.cfg, err = config.LoadFile(configPath)
	} else {
		a.cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return err
	}
	if logLevel != "" {
		a.cfg.LogLevel = logLevel
	}
	level, err := a.cfg.SlogLevel()
	if err != nil {
		return err
	}

	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	return nil
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
