package config

import (
	"runtime"

	"github.com/agbru/paramsweep/internal/sweep"
)

const defaultMaxCombinations = sweep.MaxCombinations

// Worker resolution chain (highest priority first):
//   1. --workers
//   2. PARAMSWEEP_WORKERS
//   3. settings { workers } in the sweep file
//   4. DefaultWorkers (this file)

// DefaultWorkers returns the available parallelism: GOMAXPROCS, which
// respects cgroup CPU limits, bounded by the number of logical CPUs.
func DefaultWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if cpus := runtime.NumCPU(); cpus < n {
		n = cpus
	}
	return max(1, n)
}
