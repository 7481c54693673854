package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/paramsweep/internal/analysis"
	"github.com/agbru/paramsweep/internal/chart"
	"github.com/agbru/paramsweep/internal/cli"
	apperrors "github.com/agbru/paramsweep/internal/errors"
	"github.com/agbru/paramsweep/internal/logging"
	"github.com/agbru/paramsweep/internal/metrics"
	"github.com/agbru/paramsweep/internal/notify"
	"github.com/agbru/paramsweep/internal/orchestration"
	"github.com/agbru/paramsweep/internal/output"
	"github.com/agbru/paramsweep/internal/store"
	"github.com/agbru/paramsweep/internal/sweep"
	"github.com/agbru/paramsweep/internal/sweepfile"
	"github.com/agbru/paramsweep/internal/tui"
	"github.com/agbru/paramsweep/internal/ui"
)

// completedRun is a successful sweep waiting to be reported.
type completedRun struct {
	source    string
	axes      []string
	records   []sweep.Record
	startedAt time.Time
	elapsed   time.Duration
	memBefore metrics.MemorySnapshot
}

// runSweep runs the sweep in the terminal with a spinner progress line.
func (a *Application) runSweep(ctx context.Context, def *sweepfile.Definition, out io.Writer, logger logging.Logger) int {
	ctx, stop := a.lifecycle(ctx)
	defer stop()

	source := sourceLabel(def)
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, source, def.Axes, def.Objective.Source(), out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	opts, shutdown, err := a.runOptions(out, logger)
	if err != nil {
		return apperrors.HandleRunError(err, 0, a.Config.Timeout, a.ErrWriter, cli.CLIColorProvider{})
	}
	defer shutdown()
	opts = append(opts, orchestration.WithProgressReporter(reporter, progressOut))

	memBefore := metrics.ReadMemory()
	startedAt := time.Now()
	records, err := orchestration.Run(ctx, def.Axes, def.Objective, opts...)
	elapsed := time.Since(startedAt)
	if err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, elapsed, a.Config.Timeout, out)
	}

	return a.report(ctx, completedRun{
		source:    source,
		axes:      def.Axes.Names(),
		records:   records,
		startedAt: startedAt,
		elapsed:   elapsed,
		memBefore: memBefore,
	}, out, logger)
}

// runTUI runs the sweep inside the interactive dashboard, then reports the
// last finished run like the terminal mode does.
func (a *Application) runTUI(ctx context.Context, def *sweepfile.Definition, out io.Writer) int {
	ctx, stop := a.lifecycle(ctx)
	defer stop()

	// Log lines would corrupt the alternate screen.
	quiet := logging.NewNopLogger()
	opts, shutdown, err := a.runOptions(out, quiet)
	if err != nil {
		return apperrors.HandleRunError(err, 0, a.Config.Timeout, a.ErrWriter, cli.CLIColorProvider{})
	}
	defer shutdown()

	memBefore := metrics.ReadMemory()
	startedAt := time.Now()
	outcome, err := tui.Run(ctx, tui.Job{
		Source:  sourceLabel(def),
		Axes:    def.Axes,
		Func:    def.Objective,
		Options: opts,
		Columns: a.Config.Columns,
	}, Version)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "%sError:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
		return apperrors.ExitErrorGeneric
	}
	if outcome.Err != nil {
		return cli.CLIResultPresenter{}.HandleError(outcome.Err, outcome.Elapsed, a.Config.Timeout, out)
	}

	return a.report(ctx, completedRun{
		source:    sourceLabel(def),
		axes:      def.Axes.Names(),
		records:   outcome.Records,
		startedAt: startedAt,
		elapsed:   outcome.Elapsed,
		memBefore: memBefore,
	}, out, a.newLogger())
}

// runOptions builds the orchestration options shared by both modes. The
// returned function stops the metrics server, if one was started.
func (a *Application) runOptions(out io.Writer, logger logging.Logger) ([]orchestration.Option, func(), error) {
	opts := []orchestration.Option{
		orchestration.WithWorkers(a.Config.EffectiveWorkers()),
		orchestration.WithMaxChunkSize(a.Config.MaxChunkSize),
		orchestration.WithMaxCombinations(a.Config.MaxCombinations),
		orchestration.WithNotifier(notify.ByName(a.Config.Notify, out)),
		orchestration.WithLogger(logger),
	}
	if a.Config.MetricsAddr == "" {
		return opts, func() {}, nil
	}

	sm := metrics.NewSweepMetrics()
	srv, err := startMetricsServer(a.Config.MetricsAddr, sm, logger)
	if err != nil {
		return nil, nil, err
	}
	return append(opts, orchestration.WithObserver(sm)), srv.Shutdown, nil
}

// report presents a successful run and writes it to the configured sinks.
// A sink failure is reported and turns the exit code to generic failure
// without stopping the other sinks.
func (a *Application) report(ctx context.Context, run completedRun, out io.Writer, logger logging.Logger) int {
	cfg := a.Config
	presenter := cli.CLIResultPresenter{}

	if !cfg.Quiet {
		if !cfg.NoTable {
			fmt.Fprintln(out)
			presenter.PresentRecords(run.records, cfg.Columns, out)
		}
		if cfg.Demo {
			fmt.Fprintln(out)
			cli.DisplayRecords(run.records, out)
		}
		plan := orchestration.NewPlan(len(run.records), cfg.EffectiveWorkers(), cfg.MaxChunkSize)
		presenter.PresentRunSummary(orchestration.RunSummary{
			Combinations: plan.Combinations,
			Workers:      plan.Workers,
			ChunkSize:    plan.ChunkSize,
			Duration:     run.elapsed,
		}, out)
	}

	exitCode := apperrors.ExitSuccess
	fail := func(what string, err error) {
		logger.Error("sink failed", err, logging.String("sink", what))
		fmt.Fprintf(a.ErrWriter, "%sError saving %s:%s %v\n", ui.ColorRed(), what, ui.ColorReset(), err)
		exitCode = apperrors.ExitErrorGeneric
	}

	var resultsPath string
	if cfg.OutputFile != "" {
		w := output.NewResultWriter()
		w.Separator = cfg.Separator
		w.Timestamp = !cfg.NoTimestamp
		path, err := w.Write(run.records, cfg.OutputFile)
		if err != nil {
			fail("results", err)
		} else {
			resultsPath = path
			if !cfg.Quiet {
				cli.DisplaySavedFile("Results", path, out)
			}
		}
	}

	if cfg.SQLitePath != "" {
		runID, err := saveToStore(context.WithoutCancel(ctx), cfg.SQLitePath, run)
		if err != nil {
			fail("run to SQLite", err)
		} else if !cfg.Quiet {
			cli.DisplaySavedFile("Run "+runID, cfg.SQLitePath, out)
		}
	}

	if cfg.ChartPath != "" {
		if err := chart.WriteFile(cfg.ChartPath, run.records, "Sweep: "+run.source); err != nil {
			fail("chart", err)
		} else if !cfg.Quiet {
			cli.DisplaySavedFile("Chart", cfg.ChartPath, out)
		}
	}

	if cfg.Verbose && !cfg.Quiet {
		fmt.Fprintln(out)
		analysis.Summarize(run.records).Print(out)
		cli.DisplayMemoryStats(metrics.ReadMemory().Since(run.memBefore), out)
		cli.DisplaySystemStats(metrics.SampleSystem(), out)
	}

	if cfg.Quiet {
		cli.DisplayQuietResult(resultsPath, out)
	}
	return exitCode
}

func saveToStore(ctx context.Context, path string, run completedRun) (string, error) {
	st, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer st.Close()
	id, err := st.SaveRun(ctx, run.source, run.axes, run.startedAt, run.elapsed, run.records)
	return id, apperrors.WrapError(err, "saving run from %s", run.source)
}
