// Package config builds the application configuration from command-line
// flags, PARAMSWEEP_ environment variables and the settings block of a sweep
// file, in that order of priority.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/paramsweep/internal/errors"
	"github.com/agbru/paramsweep/internal/logging"
	"github.com/agbru/paramsweep/internal/orchestration"
	"github.com/agbru/paramsweep/internal/sweepfile"
)

// EnvPrefix is prepended to every environment variable the configuration
// reads.
const EnvPrefix = "PARAMSWEEP_"

// Log formats accepted by --log-format.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// DefaultSeparator separates fields in the results file.
const DefaultSeparator = ";;"

// SupportedShells lists the shells accepted by --completion.
var SupportedShells = []string{"bash", "zsh", "fish", "powershell"}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// File is the sweep definition to run.
	File string
	// Demo runs the built-in demonstration sweep.
	Demo bool
	// Axes and Objective define a sweep inline ("name=values" and an expression).
	Axes      []string
	Objective string

	// Workers is the pool size; zero selects DefaultWorkers.
	Workers int
	// MaxChunkSize caps the number of combinations handed to a worker at once.
	MaxChunkSize int
	// MaxCombinations caps the size of the parameter space.
	MaxCombinations int
	// Timeout bounds the whole run; zero disables it.
	Timeout time.Duration

	// OutputFile is the results file destination (empty for none).
	OutputFile  string
	Separator   string
	NoTimestamp bool
	// Columns restricts and orders the printed table.
	Columns []string
	NoTable bool

	Quiet     bool
	Verbose   bool
	NoColor   bool
	LogLevel  string
	LogFormat string
	// Notify selects the completion notifier ("bell", "beep", "default", a
	// command line, or empty for none).
	Notify string

	MetricsAddr string
	SQLitePath  string
	ChartPath   string
	TUI         bool

	Completion string

	explicit map[string]bool
}

// IsSet reports whether a setting was given by a flag or an environment
// variable. The name is the long flag name.
func (c AppConfig) IsSet(name string) bool {
	return c.explicit[name]
}

func (c *AppConfig) markSet(name string) {
	if c.explicit == nil {
		c.explicit = map[string]bool{}
	}
	c.explicit[name] = true
}

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, " ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Default returns the configuration used when nothing is specified.
func Default() AppConfig {
	return AppConfig{
		MaxChunkSize:    orchestration.MaxChunkSize,
		MaxCombinations: defaultMaxCombinations,
		Separator:       DefaultSeparator,
		LogLevel:        "warn",
		LogFormat:       LogFormatConsole,
	}
}

// ParseConfig parses command-line arguments, applies environment overrides
// and validates the result.
//
// Parameters:
//   - programName: The name of the program (usually os.Args[0]).
//   - args: The command-line arguments (excluding the program name).
//   - errorWriter: The writer for usage and error messages.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() { printUsage(fs, errorWriter) }

	config := Default()
	var axes stringList
	var columns string

	fs.StringVar(&config.File, "file", "", "Sweep definition file (HCL).")
	fs.StringVar(&config.File, "f", "", "Sweep definition file (shorthand).")
	fs.BoolVar(&config.Demo, "demo", false, "Run the built-in demonstration sweep.")
	fs.Var(&axes, "axis", "Inline axis as name=values, repeatable (values: 1,2,3 or min:max:step).")
	fs.StringVar(&config.Objective, "objective", "", "Inline objective expression over the axis names.")
	fs.IntVar(&config.Workers, "workers", 0, "Number of workers (0 = available parallelism).")
	fs.IntVar(&config.MaxChunkSize, "max-chunk-size", config.MaxChunkSize, "Upper bound on combinations per dispatch.")
	fs.IntVar(&config.MaxCombinations, "max-combinations", config.MaxCombinations, "Refuse parameter spaces larger than this.")
	fs.DurationVar(&config.Timeout, "timeout", 0, "Maximum run time (e.g. 30s, 5m; 0 = none).")
	fs.StringVar(&config.OutputFile, "output", "", "Write results to this file (timestamp appended).")
	fs.StringVar(&config.OutputFile, "o", "", "Write results to this file (shorthand).")
	fs.StringVar(&config.Separator, "separator", config.Separator, "Field separator of the results file.")
	fs.BoolVar(&config.NoTimestamp, "no-timestamp", false, "Do not add a timestamp to the results file name.")
	fs.StringVar(&columns, "columns", "", "Comma-separated columns to print (default: all).")
	fs.BoolVar(&config.NoTable, "no-table", false, "Do not print the results table.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode: results file and errors only.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print the result summary and resource usage.")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose output (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "Log level: debug, info, warn or error.")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "Log format: console or json.")
	fs.StringVar(&config.Notify, "notify", "", "Completion notifier: bell, beep, default or a command.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the run.")
	fs.StringVar(&config.SQLitePath, "sqlite", "", "Store the run in this SQLite database.")
	fs.StringVar(&config.ChartPath, "chart", "", "Write an HTML chart of the results to this file.")
	fs.BoolVar(&config.TUI, "tui", false, "Show the interactive dashboard.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script (bash, zsh, fish, powershell).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if fs.NArg() > 0 {
		var err error
		switch {
		case config.File != "":
			err = apperrors.NewConfigError("sweep file given both as --file and as argument %q", fs.Arg(0))
		case fs.NArg() > 1:
			err = apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args()[1:], " "))
		}
		if err != nil {
			fmt.Fprintln(errorWriter, "Error:", err)
			return AppConfig{}, err
		}
		config.File = fs.Arg(0)
		config.markSet("file")
	}
	config.Axes = axes
	if columns != "" {
		config.Columns = splitList(columns)
	}

	fs.Visit(func(f *flag.Flag) {
		config.markSet(canonicalFlag(f.Name))
	})
	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

var shorthands = map[string]string{"f": "file", "o": "output", "q": "quiet", "v": "verbose"}

func canonicalFlag(name string) string {
	if long, ok := shorthands[name]; ok {
		return long
	}
	return name
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the configuration for consistency.
func (c AppConfig) Validate() error {
	if c.Completion != "" {
		if !slices.Contains(SupportedShells, c.Completion) {
			return apperrors.NewConfigError("unsupported shell %q for --completion (supported: %s)",
				c.Completion, strings.Join(SupportedShells, ", "))
		}
		return nil
	}

	sources := 0
	for _, used := range []bool{c.File != "", c.Demo, len(c.Axes) > 0 || c.Objective != ""} {
		if used {
			sources++
		}
	}
	switch {
	case sources == 0:
		return apperrors.NewConfigError("nothing to sweep: give a sweep file, --demo, or --axis with --objective")
	case sources > 1:
		return apperrors.NewConfigError("a sweep file, --demo and inline --axis/--objective are mutually exclusive")
	}
	if (len(c.Axes) > 0) != (c.Objective != "") {
		return apperrors.NewConfigError("--axis and --objective must be used together")
	}

	if c.MaxChunkSize < 1 {
		return apperrors.ValidationError{Field: "max-chunk-size", Message: fmt.Sprintf("must be at least 1, got %d", c.MaxChunkSize)}
	}
	if c.MaxCombinations < 1 {
		return apperrors.ValidationError{Field: "max-combinations", Message: fmt.Sprintf("must be at least 1, got %d", c.MaxCombinations)}
	}
	if c.Timeout < 0 {
		return apperrors.ValidationError{Field: "timeout", Message: fmt.Sprintf("must not be negative, got %s", c.Timeout)}
	}
	if c.Separator == "" {
		return apperrors.ValidationError{Field: "separator", Message: "must not be empty"}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.ValidationError{Field: "log-level", Message: err.Error()}
	}
	if c.LogFormat != LogFormatConsole && c.LogFormat != LogFormatJSON {
		return apperrors.ValidationError{Field: "log-format", Message: fmt.Sprintf("must be %s or %s, got %q", LogFormatConsole, LogFormatJSON, c.LogFormat)}
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("--quiet and --tui are mutually exclusive")
	}
	return nil
}

// ApplyDefinition fills settings still at their defaults from the sweep
// file's settings and output blocks.
func (c AppConfig) ApplyDefinition(def *sweepfile.Definition) AppConfig {
	if def == nil {
		return c
	}
	s := def.Settings
	if !c.IsSet("workers") && s.Workers > 0 {
		c.Workers = s.Workers
	}
	if !c.IsSet("max-chunk-size") && s.MaxChunkSize > 0 {
		c.MaxChunkSize = s.MaxChunkSize
	}
	if !c.IsSet("timeout") && s.Timeout > 0 {
		c.Timeout = s.Timeout
	}

	o := def.Output
	if !c.IsSet("output") && o.File != "" {
		c.OutputFile = o.File
	}
	if !c.IsSet("separator") && o.Separator != "" {
		c.Separator = o.Separator
	}
	if !c.IsSet("columns") && len(o.Columns) > 0 {
		c.Columns = slices.Clone(o.Columns)
	}
	if !c.IsSet("no-timestamp") && o.Timestamp != nil {
		c.NoTimestamp = !*o.Timestamp
	}
	return c
}

// EffectiveWorkers returns the configured pool size, or DefaultWorkers when
// none was given.
func (c AppConfig) EffectiveWorkers() int {
	if c.Workers != 0 {
		return c.Workers
	}
	return DefaultWorkers()
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [flags] [sweep-file]\n\n", fs.Name())
	fmt.Fprintf(w, "Evaluates a function on every combination of the declared axes.\n\n")
	fmt.Fprintf(w, "Flags:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nEnvironment variables (%s*) override defaults but not flags.\n", EnvPrefix)
}
