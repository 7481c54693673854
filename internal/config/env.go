// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the PARAMSWEEP_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value. The
// first flag name is the one recorded as explicitly set. apply reports
// whether the value was usable.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) bool
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Sources
	{"FILE", []string{"file", "f"}, func(c *AppConfig, v string) bool {
		if c.File != "" || c.Demo || len(c.Axes) > 0 || c.Objective != "" {
			return false
		}
		c.File = v
		return true
	}},

	// Numeric overrides
	{"WORKERS", []string{"workers"}, intSetter(func(c *AppConfig) *int { return &c.Workers })},
	{"MAX_CHUNK_SIZE", []string{"max-chunk-size"}, intSetter(func(c *AppConfig) *int { return &c.MaxChunkSize })},
	{"MAX_COMBINATIONS", []string{"max-combinations"}, intSetter(func(c *AppConfig) *int { return &c.MaxCombinations })},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) bool {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return false
		}
		c.Timeout = parsed
		return true
	}},

	// String overrides
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) bool { c.OutputFile = v; return true }},
	{"SEPARATOR", []string{"separator"}, func(c *AppConfig, v string) bool { c.Separator = v; return true }},
	{"COLUMNS", []string{"columns"}, func(c *AppConfig, v string) bool { c.Columns = splitList(v); return true }},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) bool { c.LogLevel = v; return true }},
	{"LOG_FORMAT", []string{"log-format"}, func(c *AppConfig, v string) bool { c.LogFormat = v; return true }},
	{"NOTIFY", []string{"notify"}, func(c *AppConfig, v string) bool { c.Notify = v; return true }},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) bool { c.MetricsAddr = v; return true }},
	{"SQLITE", []string{"sqlite"}, func(c *AppConfig, v string) bool { c.SQLitePath = v; return true }},
	{"CHART", []string{"chart"}, func(c *AppConfig, v string) bool { c.ChartPath = v; return true }},

	// Boolean overrides
	{"NO_TIMESTAMP", []string{"no-timestamp"}, boolSetter(func(c *AppConfig) *bool { return &c.NoTimestamp })},
	{"NO_TABLE", []string{"no-table"}, boolSetter(func(c *AppConfig) *bool { return &c.NoTable })},
	{"QUIET", []string{"quiet", "q"}, boolSetter(func(c *AppConfig) *bool { return &c.Quiet })},
	{"VERBOSE", []string{"verbose", "v"}, boolSetter(func(c *AppConfig) *bool { return &c.Verbose })},
	{"NO_COLOR", []string{"no-color"}, boolSetter(func(c *AppConfig) *bool { return &c.NoColor })},
	{"TUI", []string{"tui"}, boolSetter(func(c *AppConfig) *bool { return &c.TUI })},
}

func intSetter(field func(*AppConfig) *int) func(*AppConfig, string) bool {
	return func(c *AppConfig, v string) bool {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return false
		}
		*field(c) = parsed
		return true
	}
}

func boolSetter(field func(*AppConfig) *bool) func(*AppConfig, string) bool {
	return func(c *AppConfig, v string) bool {
		parsed, ok := parseBoolEnv(v)
		if ok {
			*field(c) = parsed
		}
		return ok
	}
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func parseBoolEnv(val string) (value, ok bool) {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
// Unparsable values are ignored.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			if o.apply(config, val) {
				config.markSet(o.flags[0])
			}
		}
	}
}
