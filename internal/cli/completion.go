package cli

import (
	"fmt"
	"io"
	"strings"
)

// ProgramName is the command the completion scripts register.
const ProgramName = "paramsweep"

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--"
	Short     string   // short flag without "-"
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free-form)
	ValueName string   // label for the value; empty for boolean flags
	IsFile    bool     // the flag takes a file path
}

func (f FlagCompletion) takesValue() bool { return f.ValueName != "" }

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "file", Short: "f", Help: "Sweep definition file", IsFile: true, ValueName: "file"},
	{Long: "demo", Help: "Run the demonstration sweep"},
	{Long: "axis", Help: "Inline axis name=values", ValueName: "axis"},
	{Long: "objective", Help: "Inline objective expression", ValueName: "expression"},
	{Long: "workers", Help: "Number of workers", Values: []string{"1", "2", "4", "8", "16"}, ValueName: "count"},
	{Long: "max-chunk-size", Help: "Combinations per dispatch", Values: []string{"1", "5", "10", "50"}, ValueName: "count"},
	{Long: "max-combinations", Help: "Largest accepted parameter space", ValueName: "count"},
	{Long: "timeout", Help: "Maximum run time", Values: []string{"30s", "1m", "5m", "30m", "1h"}, ValueName: "duration"},
	{Long: "output", Short: "o", Help: "Results file", IsFile: true, ValueName: "file"},
	{Long: "separator", Help: "Results file field separator", Values: []string{";;", ",", ";"}, ValueName: "separator"},
	{Long: "no-timestamp", Help: "Keep the results file name as given"},
	{Long: "columns", Help: "Columns to print", ValueName: "columns"},
	{Long: "no-table", Help: "Do not print the results table"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "verbose", Short: "v", Help: "Print summary and resource usage"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "log-format", Help: "Log format", Values: []string{"console", "json"}, ValueName: "format"},
	{Long: "notify", Help: "Completion notifier", Values: []string{"bell", "beep", "default"}, ValueName: "notifier"},
	{Long: "metrics-addr", Help: "Prometheus listen address", ValueName: "address"},
	{Long: "sqlite", Help: "SQLite database for run history", IsFile: true, ValueName: "file"},
	{Long: "chart", Help: "HTML chart output", IsFile: true, ValueName: "file"},
	{Long: "tui", Help: "Interactive dashboard"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// zshHelpOverrides provides shell-specific help text overrides for zsh.
var zshHelpOverrides = map[string]string{
	"axis": "Inline axis, repeatable (name=1,2,3 or name=min:max:step)",
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh",
// "fish" or "powershell").
func GenerateCompletion(out io.Writer, shell string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion()
	case "zsh":
		script = zshCompletion()
	case "fish":
		script = fishCompletion()
	case "powershell", "ps":
		script = powerShellCompletion()
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// flagKey returns the identifier used for lookups: Long name if present, else Short.
func flagKey(f FlagCompletion) string {
	if f.Long != "" {
		return f.Long
	}
	return f.Short
}

func optionNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func bashCompletion() string {
	var opts, filePatterns []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, optionNames(f)...)
		switch {
		case f.IsFile:
			filePatterns = append(filePatterns, optionNames(f)...)
		case len(f.Values) > 0:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				strings.Join(optionNames(f), "|"), strings.Join(f.Values, " "))
		case f.takesValue():
			fmt.Fprintf(&cases, "        %s)\n            return 0\n            ;;\n", strings.Join(optionNames(f), "|"))
		}
	}
	fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
		strings.Join(filePatterns, "|"))

	return fmt.Sprintf(`# Bash completion script for %[1]s
# Add this to your ~/.bashrc or ~/.bash_completion

_%[1]s_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%[2]s"

    case "${prev}" in
%[3]s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi

    # Sweep definition files
    COMPREPLY=( $(compgen -f -X '!*.hcl' -- "${cur}") $(compgen -d -- "${cur}") )
}

complete -F _%[1]s_completions %[1]s
`, ProgramName, strings.Join(opts, " "), cases.String())
}

// zshHelp returns the help text for a flag in zsh, using an override if available.
func zshHelp(f FlagCompletion) string {
	if override, ok := zshHelpOverrides[flagKey(f)]; ok {
		return override
	}
	return f.Help
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	help := zshHelp(f)
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.takesValue():
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}
	repeat := ""
	if f.Long == "axis" {
		repeat = "*"
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '%s--%s[%s]%s'", repeat, f.Long, help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, help, valueSuffix)
}

func zshCompletion() string {
	args := make([]string, 0, len(flagRegistry)+1)
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	args = append(args, "        '1:sweep file:_files -g \"*.hcl\"'")

	return fmt.Sprintf(`#compdef %[1]s

# Zsh completion script for %[1]s
# Add this to your ~/.zshrc or place in $fpath

_%[1]s() {
    _arguments -s \
%[2]s
}

_%[1]s "$@"
`, ProgramName, strings.Join(args, " \\\n"))
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion) string {
	parts := []string{"complete -c " + ProgramName}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))
	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.takesValue():
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func fishCompletion() string {
	lines := []string{
		"# Fish completion script for " + ProgramName,
		"# Add this to ~/.config/fish/completions/" + ProgramName + ".fish",
		"",
		"# Sweep definition files",
		fmt.Sprintf("complete -c %s -k -xa '(__fish_complete_suffix .hcl)'", ProgramName),
		"",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f))
	}
	return strings.Join(lines, "\n") + "\n"
}

func powerShellCompletion() string {
	var options, cases []string
	for _, f := range flagRegistry {
		for _, name := range optionNames(f) {
			options = append(options, fmt.Sprintf("        @{Name = '%s'; Description = '%s' }", name, f.Help))
		}
		if len(f.Values) == 0 || f.IsFile {
			continue
		}
		quoted := make([]string, len(f.Values))
		for i, v := range f.Values {
			quoted[i] = fmt.Sprintf("'%s'", v)
		}
		cases = append(cases, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
	}

	return fmt.Sprintf(`# PowerShell completion script for %[1]s
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName '%[1]s' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%[2]s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%[3]s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, ProgramName, strings.Join(options, "\n"), strings.Join(cases, "\n"))
}
