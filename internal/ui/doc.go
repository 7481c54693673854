// Package ui holds the terminal palette shared by the CLI and the dashboard.
// Color* functions return ANSI sequences for the active theme and return
// empty strings when colors are disabled.
package ui
