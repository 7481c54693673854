// Package analysis computes descriptive statistics over sweep results.
package analysis

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/agbru/paramsweep/internal/sweep"
)

// Summary describes the numeric results of a sweep. Non-numeric results are
// counted but otherwise ignored.
type Summary struct {
	Count   int
	Numeric int
	Min     float64
	Max     float64
	Mean    float64
	StdDev  float64
	Median  float64
	// ArgMin and ArgMax are the first records holding Min and Max.
	ArgMin sweep.Record
	ArgMax sweep.Record
}

// HasNumeric reports whether any result was a number.
func (s Summary) HasNumeric() bool { return s.Numeric > 0 }

// Summarize computes the summary of records.
func Summarize(records []sweep.Record) Summary {
	s := Summary{Count: len(records)}
	values := make([]float64, 0, len(records))
	index := make([]int, 0, len(records))
	for i, r := range records {
		v, ok := sweep.AsFloat64(r.Result())
		if !ok || math.IsNaN(v) {
			continue
		}
		values = append(values, v)
		index = append(index, i)
	}
	s.Numeric = len(values)
	if s.Numeric == 0 {
		return s
	}

	s.ArgMin = records[index[floats.MinIdx(values)]]
	s.ArgMax = records[index[floats.MaxIdx(values)]]
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	if s.Numeric > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	} else {
		s.Mean = values[0]
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	floats.Argsort(sorted, make([]int, len(sorted)))
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return s
}

// Print writes the summary in the verbose output layout.
func (s Summary) Print(out io.Writer) {
	fmt.Fprintf(out, "\nResult summary:\n")
	fmt.Fprintf(out, "  Records:  %d (%d numeric)\n", s.Count, s.Numeric)
	if !s.HasNumeric() {
		return
	}
	fmt.Fprintf(out, "  Min:      %g at %s\n", s.Min, s.ArgMin.Combination())
	fmt.Fprintf(out, "  Max:      %g at %s\n", s.Max, s.ArgMax.Combination())
	fmt.Fprintf(out, "  Mean:     %g\n", s.Mean)
	fmt.Fprintf(out, "  Median:   %g\n", s.Median)
	fmt.Fprintf(out, "  Std dev:  %g\n", s.StdDev)
}
