package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/paramsweep/internal/errors"
	"github.com/agbru/paramsweep/internal/logging"
	"github.com/agbru/paramsweep/internal/progress"
	"github.com/agbru/paramsweep/internal/sweep"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking workers when the
// UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// Execute evaluates fn on every combination of space using a fixed pool of
// workers and returns the results in the order of space.
//
// The space is cut into consecutive chunks of chunkSize combinations that are
// handed to workers one at a time. Each result is stored at the position of
// its combination, so completion order never affects output order. The first
// failure cancels the remaining work and is returned as an EvaluationError;
// no partial results are returned.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - space: The enumerated combinations.
//   - fn: The function to evaluate.
//   - chunkSize: Combinations per dispatch (values below one mean one).
//   - workers: Pool size (values below one mean one).
//   - reporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []any: One result per combination, in input order.
//   - error: An EvaluationError, or the context error if ctx ended first.
func Execute(ctx context.Context, space []sweep.Combination, fn sweep.Func, chunkSize, workers int, reporter ProgressReporter, out io.Writer) ([]any, error) {
	h := harness{space: space, fn: fn, chunkSize: chunkSize, workers: workers, observer: NopObserver{}}
	return h.run(ctx, reporter, out)
}

type harness struct {
	space     []sweep.Combination
	fn        sweep.Func
	chunkSize int
	workers   int
	observer  Observer
	logger    logging.Logger
}

func (h harness) run(ctx context.Context, reporter ProgressReporter, out io.Writer) ([]any, error) {
	if reporter == nil {
		reporter = NullProgressReporter{}
	}
	if out == nil {
		out = io.Discard
	}

	chunks := splitChunks(len(h.space), h.chunkSize)
	workers := max(1, min(h.workers, len(chunks)))
	results := make([]any, len(h.space))

	progressChan := make(chan progress.Update, workers*ProgressBufferMultiplier)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(h.space), out)

	g, gctx := errgroup.WithContext(ctx)
	work := make(chan span)

	g.Go(func() error {
		defer close(work)
		for _, c := range chunks {
			select {
			case work <- c:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := range workers {
		g.Go(func() error {
			h.observer.WorkerActive(w, true)
			defer h.observer.WorkerActive(w, false)
			for c := range work {
				start := time.Now()
				for i := c.lo; i < c.hi; i++ {
					if err := gctx.Err(); err != nil {
						return err
					}
					res, err := sweep.Call(gctx, h.fn, h.space[i])
					if err != nil {
						return apperrors.EvaluationError{Index: i, Combination: h.space[i].String(), Cause: err}
					}
					results[i] = res
				}
				h.observer.ChunkDone(w, c.hi-c.lo, time.Since(start))
				progress.Send(gctx, progressChan, progress.Update{Worker: w, Completed: c.hi - c.lo})
			}
			return nil
		})
	}

	err := g.Wait()
	close(progressChan)
	displayWg.Wait()

	if err != nil {
		if h.logger != nil {
			h.logger.Debug("sweep aborted", logging.Err(err))
		}
		return nil, err
	}
	return results, nil
}
