package tui

import (
	"testing"
	"unicode/utf8"
)

func TestHistory_EvictsOldest(t *testing.T) {
	t.Parallel()

	h := NewHistory(3)
	for _, v := range []float64{10, 20, 30, 40} {
		h.Add(v)
	}
	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	if h.Latest() != 40 {
		t.Errorf("Latest() = %v, want 40", h.Latest())
	}
	if got := h.Sparkline(3); got != "▂▃▃" {
		t.Errorf("Sparkline(3) = %q", got)
	}
}

func TestHistory_Sparkline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		samples []float64
		width   int
		want    string
	}{
		{"empty pads", nil, 3, "   "},
		{"bounds", []float64{-5, 0, 100, 250}, 4, "▁▁██"},
		{"left padded", []float64{50}, 3, "  ▄"},
		{"truncated to newest", []float64{0, 0, 100}, 1, "█"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHistory(10)
			for _, v := range tt.samples {
				h.Add(v)
			}
			got := h.Sparkline(tt.width)
			if got != tt.want {
				t.Errorf("Sparkline(%d) = %q, want %q", tt.width, got, tt.want)
			}
			if utf8.RuneCountInString(got) != tt.width {
				t.Errorf("width = %d runes, want %d", utf8.RuneCountInString(got), tt.width)
			}
		})
	}
}

func TestHistory_ClearAndZeroLimit(t *testing.T) {
	t.Parallel()

	h := NewHistory(0)
	h.Add(1)
	h.Add(2)
	if h.Len() != 1 || h.Latest() != 2 {
		t.Errorf("limit 0 should hold one sample, got len=%d latest=%v", h.Len(), h.Latest())
	}
	h.Clear()
	if h.Len() != 0 || h.Latest() != 0 {
		t.Error("Clear should drop all samples")
	}
}
