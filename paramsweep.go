// Package paramsweep evaluates a function on every combination of a set of
// named parameter axes, in parallel, and returns each combination paired with
// its result in a deterministic order.
//
// The last declared axis varies fastest:
//
//	axes := paramsweep.MustAxisSet(
//		paramsweep.NewAxis("a", 1, 2, 3),
//		paramsweep.NewAxis("b", 5, 9, 11),
//	)
//	fn := paramsweep.Bind2("a", "b", func(a, b int) (any, error) { return a * b, nil })
//	records, err := paramsweep.Run(ctx, axes, fn)
//
// A function whose parameter names differ from the axis names is rejected
// with a ConfigError before any work starts. The first failing evaluation
// aborts the run with an EvaluationError naming the combination.
package paramsweep

import (
	"context"
	"io"

	apperrors "github.com/agbru/paramsweep/internal/errors"
	"github.com/agbru/paramsweep/internal/orchestration"
	"github.com/agbru/paramsweep/internal/output"
	"github.com/agbru/paramsweep/internal/sweep"
)

// ResultField is the reserved record field holding the computed result.
const ResultField = sweep.ResultField

type (
	// Axis is a named, ordered list of candidate values.
	Axis = sweep.Axis
	// AxisSet is a validated, ordered collection of axes.
	AxisSet = sweep.AxisSet
	// Combination holds one value per axis.
	Combination = sweep.Combination
	// Record is a combination plus its result.
	Record = sweep.Record
	// Func is a function evaluated on each combination.
	Func = sweep.Func
	// FuncOf is the signature Bind adapts into a Func.
	FuncOf = sweep.FuncOf
	// Option configures Run.
	Option = orchestration.Option
	// Notifier is invoked once after a successful run.
	Notifier = orchestration.Notifier
	// ProgressReporter consumes progress updates during a run.
	ProgressReporter = orchestration.ProgressReporter

	// ConfigError reports an invalid sweep, detected before evaluation.
	ConfigError = apperrors.ConfigError
	// EvaluationError reports the first combination whose evaluation failed.
	EvaluationError = apperrors.EvaluationError
)

// Construction and binding helpers.
var (
	NewAxis     = sweep.NewAxis
	NewAxisSet  = sweep.NewAxisSet
	MustAxisSet = sweep.MustAxisSet
	Bind        = sweep.Bind
	Enumerate   = sweep.Enumerate
)

// Run options.
var (
	WithWorkers          = orchestration.WithWorkers
	WithMaxChunkSize     = orchestration.WithMaxChunkSize
	WithMaxCombinations  = orchestration.WithMaxCombinations
	WithProgressReporter = orchestration.WithProgressReporter
	WithNotifier         = orchestration.WithNotifier
	WithTracer           = orchestration.WithTracer
)

// Run evaluates fn on every combination of axes and returns one record per
// combination in enumeration order.
func Run(ctx context.Context, axes AxisSet, fn Func, opts ...Option) ([]Record, error) {
	return orchestration.Run(ctx, axes, fn, opts...)
}

// ChooseChunkSize returns the batch size used for total combinations over
// workers: total/workers clamped to [1, 10].
func ChooseChunkSize(total, workers int) int {
	return orchestration.ChooseChunkSize(total, workers)
}

// Bind1 adapts a one-parameter function.
func Bind1[A any](p1 string, fn func(A) (any, error)) Func {
	return sweep.Bind1(p1, fn)
}

// Bind2 adapts a two-parameter function.
func Bind2[A, B any](p1, p2 string, fn func(A, B) (any, error)) Func {
	return sweep.Bind2(p1, p2, fn)
}

// Bind3 adapts a three-parameter function.
func Bind3[A, B, C any](p1, p2, p3 string, fn func(A, B, C) (any, error)) Func {
	return sweep.Bind3(p1, p2, p3, fn)
}

// ValueOf returns the named value of c converted to T.
func ValueOf[T any](c Combination, name string) (T, error) {
	return sweep.ValueOf[T](c, name)
}

// WriteResults writes records as a delimited file derived from destination
// (a timestamp is inserted into the name) and returns the path written.
func WriteResults(records []Record, destination string) (string, error) {
	return output.NewResultWriter().Write(records, destination)
}

// PrintTable renders records as a bordered table. Columns default to all
// fields.
func PrintTable(out io.Writer, records []Record, columns ...string) {
	output.PrintTable(out, records, columns...)
}
