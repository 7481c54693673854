package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	apperrors "github.com/agbru/paramsweep/internal/errors"
	"github.com/agbru/paramsweep/internal/orchestration"
	"github.com/agbru/paramsweep/internal/sweep"
)

func TestSweepMetrics_ObservesRun(t *testing.T) {
	t.Parallel()
	m := NewSweepMetrics()
	axes := sweep.MustAxisSet(
		sweep.NewAxis("a", 1, 2, 3),
		sweep.NewAxis("b", 5, 9, 11),
	)
	fn := sweep.Bind2("a", "b", func(a, b int) (any, error) { return a * b, nil })

	if _, err := orchestration.Run(context.Background(), axes, fn, orchestration.WithWorkers(2), orchestration.WithObserver(m)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := testutil.ToFloat64(m.evaluated); got != 9 {
		t.Errorf("evaluated = %v, want 9", got)
	}
	if got := testutil.ToFloat64(m.combinations); got != 9 {
		t.Errorf("combinations = %v, want 9", got)
	}
	if got := testutil.ToFloat64(m.activeWorkers); got != 0 {
		t.Errorf("active workers after run = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.runs.WithLabelValues("success")); got != 1 {
		t.Errorf("successful runs = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.chunkDuration); got != 1 {
		t.Errorf("chunk histogram series = %d, want 1", got)
	}
}

func TestSweepMetrics_RunFinished(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		outcome  string
		failures float64
	}{
		{"success", nil, "success", 0},
		{"evaluation failure", apperrors.EvaluationError{Index: 1, Cause: errors.New("boom")}, "failure", 1},
		{"canceled", context.Canceled, "canceled", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewSweepMetrics()
			m.RunFinished(time.Second, tt.err)
			if got := testutil.ToFloat64(m.runs.WithLabelValues(tt.outcome)); got != 1 {
				t.Errorf("runs{outcome=%q} = %v, want 1", tt.outcome, got)
			}
			if got := testutil.ToFloat64(m.failures); got != tt.failures {
				t.Errorf("failures = %v, want %v", got, tt.failures)
			}
			if got := testutil.ToFloat64(m.runDuration); got != 1 {
				t.Errorf("run duration = %v, want 1", got)
			}
		})
	}
}

func TestSweepMetrics_Handler(t *testing.T) {
	t.Parallel()
	m := NewSweepMetrics()
	m.ChunkDone(0, 4, 10*time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{
		"paramsweep_combinations_evaluated_total 4",
		"paramsweep_chunk_duration_seconds_count 1",
		"paramsweep_active_workers",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("exposition is missing %q", want)
		}
	}
}
