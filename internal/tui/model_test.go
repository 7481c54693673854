package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/paramsweep/internal/orchestration"
	"github.com/agbru/paramsweep/internal/progress"
	"github.com/agbru/paramsweep/internal/sweep"
)

func testJob() Job {
	return Job{
		Source: "test.hcl",
		Axes: sweep.MustAxisSet(
			sweep.NewAxis("a", 1, 2, 3),
			sweep.NewAxis("b", 10, 20),
		),
		Func: sweep.Bind2("a", "b", func(a, b int) (any, error) {
			return a * b, nil
		}),
		Options: []orchestration.Option{orchestration.WithWorkers(2)},
	}
}

func sizedModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(context.Background(), testJob(), "v1.0.0")
	t.Cleanup(m.cancel)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m := NewModel(context.Background(), testJob(), "dev")
	defer m.cancel()

	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q, want Initializing...", got)
	}
}

func TestModel_ProgressAndStats(t *testing.T) {
	m := sizedModel(t)

	next, _ := m.Update(ProgressMsg{Done: 3, Total: 6, Fraction: 0.5, ETA: 2 * time.Second})
	m = next.(Model)
	next, _ = m.Update(SysStatsMsg{CPUPercent: 42, MemPercent: 12.5})
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"paramsweep v1.0.0", "test.hcl", "6 combinations over 2 axes (a, b)", "3/6", "2s", "42.0%", "12.5%", "Running..."} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_SweepDoneShowsResults(t *testing.T) {
	m := sizedModel(t)

	records := []sweep.Record{
		sweep.NewRecord(sweep.NewCombination([]string{"a", "b"}, []any{3, 20}), 60),
	}
	next, cmd := m.Update(SweepDoneMsg{Records: records, Elapsed: time.Second})
	m = next.(Model)

	if cmd != nil {
		t.Error("SweepDoneMsg should not schedule commands")
	}
	if m.running {
		t.Error("model should stop running")
	}
	if got := m.Outcome(); len(got.Records) != 1 || got.Err != nil {
		t.Errorf("Outcome() = %+v", got)
	}
	view := m.View()
	for _, want := range []string{"Done: 1 records", "60", "result"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	// Ticks stop once the sweep is over.
	if _, cmd := m.Update(TickMsg(time.Now())); cmd != nil {
		t.Error("TickMsg after completion should not reschedule")
	}
}

func TestModel_SweepFailure(t *testing.T) {
	m := sizedModel(t)

	next, _ := m.Update(SweepDoneMsg{Err: errors.New("boom")})
	m = next.(Model)

	if !strings.Contains(m.View(), "Failed: boom") {
		t.Error("View() should show the failure")
	}
	if m.Outcome().Err == nil {
		t.Error("Outcome() should carry the error")
	}
}

func TestModel_IgnoresStaleGeneration(t *testing.T) {
	m := sizedModel(t)
	m.generation = 2

	next, _ := m.Update(SweepDoneMsg{Generation: 1})
	m = next.(Model)
	if !m.running {
		t.Error("stale SweepDoneMsg should be ignored")
	}

	next, cmd := m.Update(ContextCancelledMsg{Err: context.Canceled, Generation: 1})
	m = next.(Model)
	if !m.running || cmd != nil {
		t.Error("stale ContextCancelledMsg should be ignored")
	}
}

func TestModel_ContextCancelledQuits(t *testing.T) {
	m := sizedModel(t)

	next, cmd := m.Update(ContextCancelledMsg{Err: context.DeadlineExceeded})
	m = next.(Model)

	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if !errors.Is(m.Outcome().Err, context.DeadlineExceeded) {
		t.Errorf("Outcome().Err = %v, want deadline exceeded", m.Outcome().Err)
	}
}

func TestModel_QuitWhileRunning(t *testing.T) {
	m := sizedModel(t)

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)

	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if !errors.Is(m.Outcome().Err, context.Canceled) {
		t.Errorf("Outcome().Err = %v, want canceled", m.Outcome().Err)
	}
	if m.ctx.Err() == nil {
		t.Error("quitting should cancel the run context")
	}
}

func TestModel_RerunBumpsGeneration(t *testing.T) {
	m := sizedModel(t)
	next, _ := m.Update(SweepDoneMsg{Err: errors.New("boom")})
	m = next.(Model)
	oldCtx := m.ctx

	next, cmd := m.Update(keyMsg("r"))
	m = next.(Model)

	if cmd == nil {
		t.Fatal("rerun should start a new sweep")
	}
	if m.generation != 1 || !m.running || m.outcome.Err != nil {
		t.Errorf("rerun state: generation=%d running=%v err=%v", m.generation, m.running, m.outcome.Err)
	}
	if oldCtx.Err() == nil {
		t.Error("rerun should cancel the previous run")
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m := sizedModel(t)

	next, _ := m.Update(keyMsg("?"))
	if !next.(Model).help.ShowAll {
		t.Error("? should expand help")
	}
}

func TestStartSweepCmd_RunsSweep(t *testing.T) {
	ref := &programRef{}
	msg := startSweepCmd(ref, context.Background(), testJob(), 7)()

	done, ok := msg.(SweepDoneMsg)
	if !ok {
		t.Fatalf("got %T, want SweepDoneMsg", msg)
	}
	if done.Err != nil {
		t.Fatalf("unexpected error: %v", done.Err)
	}
	if done.Generation != 7 {
		t.Errorf("Generation = %d, want 7", done.Generation)
	}
	if len(done.Records) != 6 {
		t.Fatalf("got %d records, want 6", len(done.Records))
	}
	if got := done.Records[5].Result(); got != 60 {
		t.Errorf("last result = %v, want 60", got)
	}
}

func TestWatchContextCmd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg := watchContextCmd(ctx, 3)()
	cc, ok := msg.(ContextCancelledMsg)
	if !ok || cc.Generation != 3 || !errors.Is(cc.Err, context.Canceled) {
		t.Errorf("got %#v", msg)
	}
}

func TestTUIProgressReporter_DrainsChannel(t *testing.T) {
	reporter := &TUIProgressReporter{ref: &programRef{}}

	tests := []struct {
		name  string
		total int
	}{
		{"with total", 4},
		{"zero total", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := make(chan progress.Update, 4)
			for range 4 {
				ch <- progress.Update{Worker: 0, Completed: 1}
			}
			close(ch)

			var wg sync.WaitGroup
			wg.Add(1)
			go reporter.DisplayProgress(&wg, ch, tt.total, nil)
			wg.Wait()

			if len(ch) != 0 {
				t.Errorf("%d updates left in channel", len(ch))
			}
		})
	}
}
