package tui

import "strings"

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// History keeps the most recent percentage samples for a sparkline.
type History struct {
	samples []float64
	limit   int
}

// NewHistory returns a history holding at most limit samples.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 1
	}
	return &History{samples: make([]float64, 0, limit), limit: limit}
}

// Add appends a sample and evicts the oldest once full.
func (h *History) Add(v float64) {
	if len(h.samples) == h.limit {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.limit-1]
	}
	h.samples = append(h.samples, v)
}

// Latest returns the newest sample, or 0.
func (h *History) Latest() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	return h.samples[len(h.samples)-1]
}

// Len returns the number of samples held.
func (h *History) Len() int { return len(h.samples) }

// Clear drops every sample.
func (h *History) Clear() { h.samples = h.samples[:0] }

// Sparkline renders the samples (0..100) oldest first, padded on the left
// to width.
func (h *History) Sparkline(width int) string {
	values := h.samples
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	var b strings.Builder
	for range width - len(values) {
		b.WriteRune(' ')
	}
	for _, v := range values {
		b.WriteRune(sparkBlock(v))
	}
	return b.String()
}

func sparkBlock(pct float64) rune {
	switch {
	case pct <= 0:
		return sparkBlocks[0]
	case pct >= 100:
		return sparkBlocks[len(sparkBlocks)-1]
	}
	return sparkBlocks[int(pct/100*float64(len(sparkBlocks)-1))]
}
