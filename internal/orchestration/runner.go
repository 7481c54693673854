package orchestration

import (
	"context"
	"io"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/paramsweep/internal/logging"
	"github.com/agbru/paramsweep/internal/sweep"
)

const tracerName = "github.com/agbru/paramsweep/internal/orchestration"

// Option configures Run.
type Option func(*runOptions)

type runOptions struct {
	workers         int
	maxChunk        int
	maxCombinations int
	reporter        ProgressReporter
	out             io.Writer
	notifier        Notifier
	logger          logging.Logger
	observer        Observer
	tracer          trace.Tracer
}

// WithWorkers sets the pool size. The default is the host's available
// parallelism; values below one degrade to one worker.
func WithWorkers(n int) Option { return func(o *runOptions) { o.workers = n } }

// WithMaxChunkSize overrides MaxChunkSize.
func WithMaxChunkSize(n int) Option { return func(o *runOptions) { o.maxChunk = n } }

// WithMaxCombinations overrides sweep.MaxCombinations.
func WithMaxCombinations(n int) Option { return func(o *runOptions) { o.maxCombinations = n } }

// WithProgressReporter sets the reporter and the writer it draws to.
func WithProgressReporter(r ProgressReporter, out io.Writer) Option {
	return func(o *runOptions) { o.reporter, o.out = r, out }
}

// WithNotifier sets the completion notifier.
func WithNotifier(n Notifier) Option { return func(o *runOptions) { o.notifier = n } }

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option { return func(o *runOptions) { o.logger = l } }

// WithObserver sets the lifecycle observer.
func WithObserver(obs Observer) Option { return func(o *runOptions) { o.observer = obs } }

// WithTracer sets the tracer used for the run span.
func WithTracer(t trace.Tracer) Option { return func(o *runOptions) { o.tracer = t } }

// Run validates, enumerates, evaluates and assembles a sweep.
//
// Configuration problems (a function whose parameters differ from the axis
// names, an oversized space) are reported as ConfigError before any worker
// starts. The notifier, when set, is invoked once after a successful run;
// its failure is logged and does not affect the result.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - axes: The validated axis set.
//   - fn: The function to evaluate on each combination.
//   - opts: Functional options.
//
// Returns:
//   - []sweep.Record: One record per combination, in enumeration order.
//   - error: A ConfigError, an EvaluationError or a context error.
func Run(ctx context.Context, axes sweep.AxisSet, fn sweep.Func, opts ...Option) ([]sweep.Record, error) {
	o := runOptions{
		workers:         runtime.GOMAXPROCS(0),
		maxChunk:        MaxChunkSize,
		maxCombinations: sweep.MaxCombinations,
		reporter:        NullProgressReporter{},
		out:             io.Discard,
		logger:          logging.NewNopLogger(),
		observer:        NopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	if o.logger == nil {
		o.logger = logging.NewNopLogger()
	}
	if o.observer == nil {
		o.observer = NopObserver{}
	}

	if err := sweep.CheckBinding(fn, axes); err != nil {
		return nil, err
	}
	if err := axes.CheckSize(o.maxCombinations); err != nil {
		return nil, err
	}
	if o.workers < 1 {
		o.logger.Debug("worker count below one, using a single worker", logging.Int("requested", o.workers))
	}

	space := sweep.Enumerate(axes)
	plan := NewPlan(len(space), o.workers, o.maxChunk)

	ctx, span := o.tracer.Start(ctx, "sweep.run", trace.WithAttributes(
		attribute.StringSlice("sweep.axes", axes.Names()),
		attribute.Int("sweep.combinations", plan.Combinations),
		attribute.Int("sweep.workers", plan.Workers),
		attribute.Int("sweep.chunk_size", plan.ChunkSize),
	))
	defer span.End()

	o.logger.Info("sweep started",
		logging.Int("combinations", plan.Combinations),
		logging.Int("workers", plan.Workers),
		logging.Int("chunk_size", plan.ChunkSize),
	)
	o.observer.RunStarted(plan)
	start := time.Now()

	h := harness{
		space:     space,
		fn:        fn,
		chunkSize: plan.ChunkSize,
		workers:   plan.Workers,
		observer:  o.observer,
		logger:    o.logger,
	}
	results, err := h.run(ctx, o.reporter, o.out)
	elapsed := time.Since(start)
	o.observer.RunFinished(elapsed, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.logger.Error("sweep failed", err, logging.Duration("elapsed", elapsed))
		return nil, err
	}

	records := sweep.Assemble(space, results)
	span.SetStatus(codes.Ok, "")
	o.logger.Info("sweep finished", logging.Int("records", len(records)), logging.Duration("elapsed", elapsed))

	if o.notifier != nil {
		if nerr := o.notifier.Notify(ctx); nerr != nil {
			o.logger.Warn("completion notifier failed", logging.Err(nerr))
		}
	}
	return records, nil
}
