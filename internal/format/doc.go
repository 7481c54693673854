// Package format holds presentation helpers shared by the CLI and TUI:
// durations, ETAs, counts and text progress bars.
package format
