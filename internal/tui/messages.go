package tui

import (
	"time"

	"github.com/agbru/paramsweep/internal/metrics"
	"github.com/agbru/paramsweep/internal/sweep"
)

// ProgressMsg carries aggregated sweep progress.
type ProgressMsg struct {
	Worker   int
	Done     int
	Total    int
	Fraction float64
	ETA      time.Duration
}

// ProgressDoneMsg is sent once the progress channel is closed.
type ProgressDoneMsg struct{}

// SweepDoneMsg reports the end of one sweep run.
type SweepDoneMsg struct {
	Records    []sweep.Record
	Err        error
	Elapsed    time.Duration
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a heap snapshot.
type MemStatsMsg struct {
	metrics.MemorySnapshot
}

// SysStatsMsg carries system-wide CPU and memory usage.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ContextCancelledMsg is sent when the run context ends before the sweep.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
