package orchestration

import (
	"time"

	"github.com/agbru/paramsweep/internal/format"
	"github.com/agbru/paramsweep/internal/progress"
)

// ProgressAggregator turns per-worker updates into overall progress.
// It wraps format.ProgressWithETA; both the CLI and the TUI use it to
// avoid duplicating the aggregation logic.
type ProgressAggregator struct {
	state *format.ProgressWithETA
	total int
}

// NewProgressAggregator creates an aggregator for total combinations.
// Returns nil if total <= 0.
func NewProgressAggregator(total int) *ProgressAggregator {
	if total <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgressWithETA(total), total: total}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// Worker is the index of the worker that sent the update.
	Worker int
	// Done is the number of combinations completed so far.
	Done int
	// Total is the size of the parameter space.
	Total int
	// Fraction is Done/Total.
	Fraction float64
	// ETA is the estimated time remaining based on the smoothed rate.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update progress.Update) AggregatedProgress {
	fraction, eta := a.state.AddWithETA(update.Completed)
	done, _ := a.state.Counts()
	return AggregatedProgress{
		Worker:   update.Worker,
		Done:     done,
		Total:    a.total,
		Fraction: fraction,
		ETA:      eta,
	}
}

// Fraction returns the current completed fraction without updating.
func (a *ProgressAggregator) Fraction() float64 {
	return a.state.Fraction()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// Total returns the number of combinations being tracked.
func (a *ProgressAggregator) Total() int {
	return a.total
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan progress.Update) {
	for range progressChan {
	}
}
