package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps estimates so that a stalled sweep does not report absurd values.
const maxETA = 24 * time.Hour

// etaSmoothing is the weight of the newest rate sample in the moving average.
const etaSmoothing = 0.3

// ProgressBar renders a fixed-width bar of filled and empty cells.
// The fraction is clamped to [0, 1].
func ProgressBar(fraction float64, width int) string {
	fraction = clamp01(fraction)
	filled := int(fraction * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatProgressBarWithETA renders "[bar]  42.0% ETA: 3s".
func FormatProgressBarWithETA(fraction float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(fraction, width), clamp01(fraction)*100, FormatETA(eta))
}

// ProgressState counts completed combinations against a known total.
// It is safe for concurrent use.
type ProgressState struct {
	mu    sync.Mutex
	total int
	done  int
}

// NewProgressState creates a state for total items.
func NewProgressState(total int) *ProgressState {
	return &ProgressState{total: total}
}

// Add records n more completed items and returns the completed fraction.
func (p *ProgressState) Add(n int) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n > 0 {
		p.done = min(p.done+n, p.total)
	}
	return p.fractionLocked()
}

// Fraction returns the completed fraction in [0, 1].
func (p *ProgressState) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fractionLocked()
}

// Counts returns the completed and total item counts.
func (p *ProgressState) Counts() (done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done, p.total
}

func (p *ProgressState) fractionLocked() float64 {
	if p.total <= 0 {
		return 0
	}
	return float64(p.done) / float64(p.total)
}

// ProgressWithETA extends ProgressState with a smoothed completion rate.
type ProgressWithETA struct {
	*ProgressState
	progressRate float64 // fraction per second, exponentially smoothed
	startTime    time.Time
	lastUpdate   time.Time
	lastFraction float64
}

// NewProgressWithETA creates a tracker for total items starting now.
func NewProgressWithETA(total int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(total),
		startTime:     now,
		lastUpdate:    now,
	}
}

// AddWithETA records n completed items and returns the fraction and estimate.
func (p *ProgressWithETA) AddWithETA(n int) (float64, time.Duration) {
	fraction := p.Add(n)
	now := time.Now()

	p.mu.Lock()
	if elapsed := now.Sub(p.lastUpdate).Seconds(); elapsed > 0 && fraction > p.lastFraction {
		sample := (fraction - p.lastFraction) / elapsed
		if p.progressRate == 0 {
			p.progressRate = sample
		} else {
			p.progressRate = etaSmoothing*sample + (1-etaSmoothing)*p.progressRate
		}
		p.lastUpdate = now
		p.lastFraction = fraction
	}
	p.mu.Unlock()

	return fraction, p.GetETA()
}

// GetETA returns the estimated remaining time, or zero when unknown.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	fraction := p.fractionLocked()
	if p.progressRate <= 0 || fraction >= 1 {
		return 0
	}
	eta := time.Duration((1 - fraction) / p.progressRate * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// Elapsed returns the time since tracking started.
func (p *ProgressWithETA) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

func clamp01(f float64) float64 {
	return max(0, min(1, f))
}
