package ui

import "testing"

// Theme tests mutate package state and do not run in parallel.

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	tests := []struct{ name, want string }{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"unknown", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) active = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme(true)
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("colors should be empty with --no-color")
	}
	if GetCurrentTUITheme() != NoColorTUITheme {
		t.Error("--no-color should select the colorless dashboard palette")
	}

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Error("NO_COLOR should disable colors")
	}
}

func TestColorFunctions(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetCurrentTheme(DarkTheme)
	if ColorRed() != DarkTheme.Error || ColorCyan() != DarkTheme.Info || ColorReset() != DarkTheme.Reset {
		t.Error("color functions should follow the active theme")
	}
	if GetCurrentTUITheme() != DarkTUITheme {
		t.Error("dark theme should map to the dark dashboard palette")
	}
}
