package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/paramsweep/internal/format"
	"github.com/agbru/paramsweep/internal/metrics"
	"github.com/agbru/paramsweep/internal/orchestration"
	"github.com/agbru/paramsweep/internal/output"
	"github.com/agbru/paramsweep/internal/sweep"
)

// Job describes the sweep the dashboard runs.
type Job struct {
	// Source labels where the sweep came from (file path, "demo", "flags").
	Source string
	Axes   sweep.AxisSet
	Func   sweep.Func
	// Options are passed to orchestration.Run; the dashboard adds its own
	// progress reporter.
	Options []orchestration.Option
	// Columns restricts the result table; empty means all.
	Columns []string
}

// Outcome is the last finished run when the dashboard exits.
type Outcome struct {
	Records []sweep.Record
	Err     error
	Elapsed time.Duration
}

// ExecutionState holds the execution-related fields of a session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	running    bool
	outcome    Outcome
}

// LayoutManager holds terminal dimensions and derives panel sizes.
type LayoutManager struct {
	width  int
	height int
}

const (
	headerHeight  = 1
	footerHeight  = 1
	statusLines   = 7
	panelChrome   = 2
	minResultRows = 3
	sparkWidth    = 30
	sampleEvery   = 500 * time.Millisecond
)

func (l LayoutManager) innerWidth() int {
	return max(l.width-panelChrome-2, 10)
}

func (l LayoutManager) resultsHeight() int {
	h := l.height - headerHeight - footerHeight - statusLines - 2*panelChrome
	return max(h, minResultRows)
}

// Model is the root bubbletea model for the sweep dashboard.
type Model struct {
	header  HeaderModel
	bar     progress.Model
	results viewport.Model
	help    help.Model
	keymap  KeyMap

	cpu  *History
	mem  *History
	heap metrics.MemorySnapshot
	last ProgressMsg

	ExecutionState
	LayoutManager

	parentCtx context.Context
	job       Job
	total     int
	ref       *programRef
}

// NewModel creates a dashboard for job.
func NewModel(parentCtx context.Context, job Job, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		header:  NewHeaderModel(version, job.Source),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		results: viewport.New(80, minResultRows),
		help:    help.New(),
		keymap:  DefaultKeyMap(),
		cpu:     NewHistory(sparkWidth),
		mem:     NewHistory(sparkWidth),
		ExecutionState: ExecutionState{
			ctx:     ctx,
			cancel:  cancel,
			running: true,
		},
		parentCtx: parentCtx,
		job:       job,
		total:     job.Axes.Size(),
		ref:       &programRef{},
	}
}

// Init starts the sweep and the samplers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startSweepCmd(m.ref, m.ctx, m.job, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if m.running {
			m.last = msg
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case TickMsg:
		if !m.running {
			return m, nil
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.heap = msg.MemorySnapshot
		return m, nil

	case SysStatsMsg:
		m.cpu.Add(msg.CPUPercent)
		m.mem.Add(msg.MemPercent)
		return m, nil

	case SweepDoneMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.finish(Outcome{Records: msg.Records, Err: msg.Err, Elapsed: msg.Elapsed})
		if msg.Err == nil {
			m.last.Done, m.last.Total, m.last.Fraction = m.total, m.total, 1
			m.results.SetContent(output.FormatTable(msg.Records, m.job.Columns))
			m.results.GotoTop()
		}
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if m.running {
			m.finish(Outcome{Err: msg.Err, Elapsed: m.header.Elapsed()})
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) finish(o Outcome) {
	m.running = false
	m.outcome = o
	m.header.SetDone()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.running {
			m.finish(Outcome{Err: context.Canceled, Elapsed: m.header.Elapsed()})
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Rerun):
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
		m.running = true
		m.outcome = Outcome{}
		m.last = ProgressMsg{}
		m.cpu.Clear()
		m.mem.Clear()
		m.results.SetContent("")
		m.header.Reset()
		return m, tea.Batch(
			tickCmd(),
			startSweepCmd(m.ref, m.ctx, m.job, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.help.Width = m.width
	m.bar.Width = max(m.innerWidth()-30, 10)
	m.results.Width = m.innerWidth()
	m.results.Height = m.resultsHeight()
}

// Outcome returns the last finished run.
func (m Model) Outcome() Outcome { return m.outcome }

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	status := panelStyle.Width(m.width - panelChrome).Render(m.statusView())
	sections := []string{m.header.View(), status}
	if !m.running && m.outcome.Err == nil {
		sections = append(sections, panelStyle.Width(m.width-panelChrome).Render(m.results.View()))
	}
	sections = append(sections, m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) statusView() string {
	axes := strings.Join(m.job.Axes.Names(), ", ")
	lines := []string{
		labelStyle.Render("Sweep") + fmt.Sprintf("%s combinations over %d axes (%s)",
			format.FormatCount(m.total), m.job.Axes.Len(), axes),
		labelStyle.Render("Progress") + m.bar.ViewAs(m.last.Fraction) +
			fmt.Sprintf("  %d/%d  %s", m.last.Done, m.total, format.FormatETA(m.last.ETA)),
		labelStyle.Render("CPU") + cpuSparkStyle.Render(m.cpu.Sparkline(sparkWidth)) +
			fmt.Sprintf(" %5.1f%%", m.cpu.Latest()),
		labelStyle.Render("Memory") + memSparkStyle.Render(m.mem.Sparkline(sparkWidth)) +
			fmt.Sprintf(" %5.1f%%", m.mem.Latest()),
		labelStyle.Render("Heap") + fmt.Sprintf("%s  (%d GC)", format.FormatBytes(m.heap.HeapAlloc), m.heap.NumGC),
		"",
		m.statusLine(),
	}
	return strings.Join(lines, "\n")
}

func (m Model) statusLine() string {
	switch {
	case m.running:
		return statusRunStyle.Render("Running...")
	case m.outcome.Err != nil:
		return statusErrorStyle.Render("Failed: " + m.outcome.Err.Error())
	default:
		return statusDoneStyle.Render(fmt.Sprintf("Done: %d records in %s",
			len(m.outcome.Records), format.FormatExecutionDuration(m.outcome.Elapsed)))
	}
}

// Run shows the dashboard until the user quits or ctx ends, and returns
// the last finished run.
func Run(ctx context.Context, job Job, version string) (Outcome, error) {
	initTUIStyles()

	model := NewModel(ctx, job, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		return Outcome{}, fmt.Errorf("dashboard failed: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return Outcome{Err: context.Canceled}, nil
	}
	m.cancel()
	return m.outcome, nil
}

// startSweepCmd runs the sweep for generation gen.
func startSweepCmd(ref *programRef, ctx context.Context, job Job, gen uint64) tea.Cmd {
	return func() tea.Msg {
		opts := make([]orchestration.Option, 0, len(job.Options)+1)
		opts = append(opts, job.Options...)
		opts = append(opts, orchestration.WithProgressReporter(&TUIProgressReporter{ref: ref}, io.Discard))

		start := time.Now()
		records, err := orchestration.Run(ctx, job.Axes, job.Func, opts...)
		return SweepDoneMsg{Records: records, Err: err, Elapsed: time.Since(start), Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(sampleEvery, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg{metrics.ReadMemory()}
	}
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := metrics.SampleSystem()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd waits for ctx to end and reports it.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
