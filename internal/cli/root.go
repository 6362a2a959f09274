// Package cli wires the skycount commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/skycount/internal/config"
	"github.com/Makepad-fr/skycount/internal/logging"
	"github.com/Makepad-fr/skycount/internal/ui"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfgPath string
	verbose bool
	theme   string

	cfg *config.Config
	log *zap.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: logging.NewNop()}

	root := &cobra.Command{
		Use:   "skycount",
		Short: "A counter, a login toggle and the weather, driven by one store",
		Long: `skycount renders a counter, a login toggle and current weather conditions
from a single state container. Every change goes through a signal.

Run without arguments to start the interactive view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
		RunE: a.runInteractive,
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default ~/.skycount/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&a.theme, "theme", "", "classic, neon or mono")

	root.AddCommand(
		a.newWeatherCmd(),
		a.newReplayCmd(),
		a.newAuthCmd(),
		a.newServeCmd(),
	)
	return root
}

// setup loads config and builds the logger. The interactive view logs to
// the configured file; everything else logs to stderr.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.theme != "" {
		cfg.UI.Theme = a.theme
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	ui.SetTheme(cfg.UI.Theme)

	opt := logging.Options{Level: cfg.Logging.Level, Verbose: a.verbose}
	if cmd.Root() == cmd {
		opt.File = cfg.Logging.File
	}
	log, err := logging.New(opt)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

// Execute runs the root command and returns an exit code (0 ok, 1 error).
// SIGINT and SIGTERM cancel the command context.
func Execute() int {
	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, NewRootCmd(), os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, root *cobra.Command, args []string, stdout, stderr io.Writer) int {
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		ui.Fail(stderr, fmt.Sprint(err))
		return 1
	}
	return 0
}
