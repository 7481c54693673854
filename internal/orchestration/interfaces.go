package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/agbru/paramsweep/internal/progress"
	"github.com/agbru/paramsweep/internal/sweep"
)

// ProgressReporter defines the interface for displaying sweep progress.
// This interface decouples the orchestration layer from the presentation layer.
//
// Implementations handle the visual representation of progress (spinners,
// progress bars, metrics) while the orchestration layer focuses on
// coordinating the workers.
type ProgressReporter interface {
	// DisplayProgress consumes progress updates from the channel.
	// It is called in a separate goroutine and must drain progressChan
	// until it is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from workers.
	//   - total: The number of combinations in the run.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, total int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.Update, total int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, total int, out io.Writer) {
	f(wg, progressChan, total, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// RunSummary describes a finished run.
type RunSummary struct {
	Combinations int
	Workers      int
	ChunkSize    int
	Duration     time.Duration
}

// ResultPresenter defines the interface for presenting sweep results.
type ResultPresenter interface {
	// PresentRecords displays the records, ordering columns as given
	// (nil means axis order followed by the result).
	PresentRecords(records []sweep.Record, columns []string, out io.Writer)

	// PresentRunSummary displays run statistics.
	PresentRunSummary(summary RunSummary, out io.Writer)
}

// Notifier signals that a run has completed. Failures are reported to the
// caller but never change the outcome of the run.
type Notifier interface {
	Notify(ctx context.Context) error
}

// Observer receives lifecycle events from the harness. Implementations must
// be safe for concurrent use.
type Observer interface {
	RunStarted(plan Plan)
	WorkerActive(worker int, active bool)
	ChunkDone(worker, items int, elapsed time.Duration)
	RunFinished(elapsed time.Duration, err error)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) RunStarted(Plan)                   {}
func (NopObserver) WorkerActive(int, bool)            {}
func (NopObserver) ChunkDone(int, int, time.Duration) {}
func (NopObserver) RunFinished(time.Duration, error)  {}
