package orchestration

import (
	"testing"

	"github.com/agbru/paramsweep/internal/progress"
)

func TestNewProgressAggregator(t *testing.T) {
	t.Parallel()
	if agg := NewProgressAggregator(9); agg == nil || agg.Total() != 9 {
		t.Fatalf("expected aggregator for 9 combinations, got %+v", agg)
	}
	for _, n := range []int{0, -1} {
		if agg := NewProgressAggregator(n); agg != nil {
			t.Errorf("expected nil aggregator for total=%d", n)
		}
	}
}

func TestProgressAggregator_Update(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(20)

	ap := agg.Update(progress.Update{Worker: 2, Completed: 5})
	if ap.Worker != 2 || ap.Done != 5 || ap.Total != 20 || ap.Fraction != 0.25 {
		t.Errorf("first update = %+v", ap)
	}
	ap = agg.Update(progress.Update{Worker: 0, Completed: 15})
	if ap.Done != 20 || ap.Fraction != 1 {
		t.Errorf("final update = %+v", ap)
	}
	if ap.ETA != 0 {
		t.Errorf("ETA at completion = %v, want 0", ap.ETA)
	}
	if agg.Fraction() != 1 || agg.GetETA() != 0 {
		t.Errorf("Fraction() = %f, GetETA() = %v", agg.Fraction(), agg.GetETA())
	}
}

func TestDrainChannel(t *testing.T) {
	t.Parallel()
	ch := make(chan progress.Update, 3)
	ch <- progress.Update{Completed: 1}
	ch <- progress.Update{Completed: 2}
	close(ch)
	DrainChannel(ch)
	if len(ch) != 0 {
		t.Errorf("channel still holds %d updates", len(ch))
	}
}
