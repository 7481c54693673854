// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//   - Print* functions write fixed informational blocks.
//   - Format* functions return a formatted string without performing I/O.

package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/agbru/paramsweep/internal/config"
	"github.com/agbru/paramsweep/internal/format"
	"github.com/agbru/paramsweep/internal/sweep"
	"github.com/agbru/paramsweep/internal/ui"
)

// PrintExecutionConfig displays the sweep about to run.
//
// Parameters:
//   - cfg: The application configuration.
//   - source: Where the sweep came from (file path, "demo" or "inline").
//   - axes: The axes to sweep.
//   - objective: The objective expression.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, source string, axes sweep.AxisSet, objective string, out io.Writer) {
	fmt.Fprintf(out, "--- Sweep Configuration ---\n")
	fmt.Fprintf(out, "Source: %s%s%s\n", ui.ColorBlue(), source, ui.ColorReset())
	for i := range axes.Len() {
		a := axes.Axis(i)
		fmt.Fprintf(out, "  %s%s%s (%d values): %s\n",
			ui.ColorBlue(), a.Name, ui.ColorReset(), len(a.Values), FormatValues(a.Values, 8))
	}
	fmt.Fprintf(out, "Objective: %s%s%s\n", ui.ColorYellow(), objective, ui.ColorReset())
	fmt.Fprintf(out, "Combinations: %s%s%s\n", ui.ColorCyan(), format.FormatCount(axes.Size()), ui.ColorReset())

	timeout := "none"
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout.String()
	}
	fmt.Fprintf(out, "Workers: %s%d%s, max chunk size %d, timeout %s.\n",
		ui.ColorCyan(), cfg.EffectiveWorkers(), ui.ColorReset(), cfg.MaxChunkSize, timeout)
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), runtime.Version())
	fmt.Fprintf(out, "\n--- Starting Sweep ---\n")
}

// FormatValues renders at most limit values, eliding the middle.
func FormatValues(values []any, limit int) string {
	parts := make([]string, 0, min(len(values), limit+1))
	if len(values) <= limit {
		for _, v := range values {
			parts = append(parts, fmt.Sprint(v))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	head := limit / 2
	for _, v := range values[:head] {
		parts = append(parts, fmt.Sprint(v))
	}
	parts = append(parts, "…")
	for _, v := range values[len(values)-(limit-head):] {
		parts = append(parts, fmt.Sprint(v))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DisplayRecords prints one record per line ("{a=2, b=9} -> 18").
func DisplayRecords(records []sweep.Record, out io.Writer) {
	for _, r := range records {
		fmt.Fprintln(out, r.String())
	}
}

// DisplaySavedFile confirms where a file was written.
func DisplaySavedFile(what, path string, out io.Writer) {
	fmt.Fprintf(out, "%s✓ %s saved to: %s%s%s\n", ui.ColorGreen(), what, ui.ColorCyan(), path, ui.ColorReset())
}

// DisplayQuietResult prints only the results file path, for scripts.
func DisplayQuietResult(path string, out io.Writer) {
	if path != "" {
		fmt.Fprintln(out, path)
	}
}

// DisplayDuration prints the elapsed time of a phase.
func DisplayDuration(label string, d time.Duration, out io.Writer) {
	fmt.Fprintf(out, "%s: %s%s%s\n", label, ui.ColorYellow(), format.FormatExecutionDuration(d), ui.ColorReset())
}
