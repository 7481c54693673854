//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/paramsweep/internal/format"
	"github.com/agbru/paramsweep/internal/orchestration"
	"github.com/agbru/paramsweep/internal/progress"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress line.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so that DisplayProgress can be
// tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a spinner with a progress bar, the completed
// count and an ETA until progressChan is closed. It must drain the channel
// completely so that workers never block on it.
//
// Parameters:
//   - wg: Signalled when the display has finished.
//   - progressChan: Updates from the workers.
//   - total: The number of combinations in the run.
//   - out: The writer for progress output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, total int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(total)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressLine(0, total, 0, 0))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var last orchestration.AggregatedProgress
	defer func() {
		s.Stop()
		fmt.Fprintf(out, "[%s] %5.1f%% (%s/%s)\n", format.ProgressBar(last.Fraction, ProgressBarWidth),
			last.Fraction*100, format.FormatCount(last.Done), format.FormatCount(total))
	}()
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				return
			}
			last = agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(progressLine(last.Fraction, total, last.Done, last.ETA))
		}
	}
}

// progressLine formats " [bar]  42.0% ETA: 3s (420/1,000)".
func progressLine(fraction float64, total, done int, eta time.Duration) string {
	return fmt.Sprintf(" %s (%s/%s)",
		format.FormatProgressBarWithETA(fraction, eta, ProgressBarWidth),
		format.FormatCount(done), format.FormatCount(total))
}
