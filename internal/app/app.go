package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/paramsweep/internal/cli"
	"github.com/agbru/paramsweep/internal/config"
	apperrors "github.com/agbru/paramsweep/internal/errors"
	"github.com/agbru/paramsweep/internal/logging"
	"github.com/agbru/paramsweep/internal/sweepfile"
	"github.com/agbru/paramsweep/internal/ui"
	"github.com/rs/zerolog"
)

// Application represents the paramsweep application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := cli.ProgramName
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	logger := a.newLogger()

	def, err := a.loadDefinition()
	if err != nil {
		return apperrors.HandleRunError(err, 0, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	a.Config = a.Config.ApplyDefinition(def)
	logger.Debug("sweep loaded",
		logging.String("source", sourceLabel(def)),
		logging.Int("combinations", def.Axes.Size()),
	)

	if a.Config.TUI {
		return a.runTUI(ctx, def, out)
	}
	return a.runSweep(ctx, def, out, logger)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// loadDefinition resolves the sweep from the file, the demo or inline flags.
func (a *Application) loadDefinition() (*sweepfile.Definition, error) {
	switch {
	case a.Config.Demo:
		return sweepfile.Demo(), nil
	case a.Config.File != "":
		return sweepfile.Load(a.Config.File)
	default:
		return sweepfile.FromSpecs(a.Config.Axes, a.Config.Objective)
	}
}

func (a *Application) newLogger() logging.Logger {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	if a.Config.LogFormat == config.LogFormatJSON {
		return logging.NewLogger(a.ErrWriter, "paramsweep").WithLevel(level)
	}
	return logging.NewConsoleLogger(a.ErrWriter, level, a.Config.NoColor)
}

// lifecycle applies the configured timeout and cancels on SIGINT/SIGTERM.
func (a *Application) lifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	cancelTimeout := context.CancelFunc(func() {})
	if a.Config.Timeout > 0 {
		ctx, cancelTimeout = context.WithTimeout(ctx, a.Config.Timeout)
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

func sourceLabel(def *sweepfile.Definition) string {
	if def.Path != "" {
		return def.Path
	}
	return "inline"
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
