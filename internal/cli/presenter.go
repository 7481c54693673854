package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/paramsweep/internal/errors"
	"github.com/agbru/paramsweep/internal/format"
	"github.com/agbru/paramsweep/internal/metrics"
	"github.com/agbru/paramsweep/internal/orchestration"
	"github.com/agbru/paramsweep/internal/output"
	"github.com/agbru/paramsweep/internal/progress"
	"github.com/agbru/paramsweep/internal/sweep"
	"github.com/agbru/paramsweep/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and a progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, total int, out io.Writer) {
	DisplayProgress(wg, progressChan, total, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for the
// terminal.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentRecords prints the records as a double-bordered table.
func (CLIResultPresenter) PresentRecords(records []sweep.Record, columns []string, out io.Writer) {
	output.PrintTable(out, records, columns...)
}

// PresentRunSummary prints run statistics.
func (CLIResultPresenter) PresentRunSummary(s orchestration.RunSummary, out io.Writer) {
	fmt.Fprintf(out, "\n%sSwept %s%s%s combinations with %s%d%s workers (chunk size %d) in %s%s%s.\n",
		ui.ColorGreen(), ui.ColorCyan(), format.FormatCount(s.Combinations), ui.ColorReset(),
		ui.ColorCyan(), s.Workers, ui.ColorReset(), s.ChunkSize,
		ui.ColorYellow(), format.FormatExecutionDuration(s.Duration), ui.ColorReset())
}

// HandleError prints a run failure and returns the exit code.
func (CLIResultPresenter) HandleError(err error, elapsed, timeout time.Duration, out io.Writer) int {
	return apperrors.HandleRunError(err, elapsed, timeout, out, CLIColorProvider{})
}

// CLIColorProvider implements apperrors.ColorProvider with the active theme.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// DisplayMemoryStats shows Go heap activity during a run.
func DisplayMemoryStats(m metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(m.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(m.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", m.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(m.PauseTotalNs)/1e6)
}

// DisplaySystemStats shows system-wide CPU and memory usage.
func DisplaySystemStats(s metrics.SystemStats, out io.Writer) {
	fmt.Fprintf(out, "  System CPU:      %.1f%%\n", s.CPUPercent)
	fmt.Fprintf(out, "  System memory:   %.1f%%\n", s.MemPercent)
}
