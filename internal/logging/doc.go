// Package logging provides a unified logging interface for the sweep runner.
// It abstracts the underlying logging implementation, allowing consistent logging
// across components with zerolog rendering either JSON or console output.
package logging
