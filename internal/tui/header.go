package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/paramsweep/internal/format"
)

// HeaderModel renders the top bar: title, version, source and elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	source    string
	width     int
}

// NewHeaderModel creates a header for a sweep loaded from source.
func NewHeaderModel(version, source string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		source:    source,
	}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time since start, frozen once SetDone was called.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "paramsweep"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	parts := []string{titleStyle.Render(titleText)}
	if h.source != "" {
		parts = append(parts, dimStyle.Render(h.source))
	}
	parts = append(parts, accentStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed()))))
	row := strings.Join(parts, dimStyle.Render(" | "))

	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}
	return headerStyle.Render(row)
}
