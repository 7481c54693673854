package sweepfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/paramsweep/internal/errors"
	"github.com/agbru/paramsweep/internal/sweep"
)

const fullSweep = `
settings {
  workers        = 3
  max_chunk_size = 4
  timeout        = "90s"
}

axis "b" {
  range = "5:11:3"
}

axis "a" {
  values = [1, 2, 3]
}

axis "mode" {
  values = ["fast", "slow"]
}

objective {
  result = mode == "fast" ? a * b : a * b * 10
}

output {
  file      = "results.csv"
  separator = ","
  columns   = ["mode", "a", "b", "result"]
  timestamp = false
}
`

func TestParse_FullDefinition(t *testing.T) {
	t.Parallel()
	def, err := Parse([]byte(fullSweep), "full.hcl")
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a", "mode"}, def.Axes.Names(), "axis declaration order is preserved")
	assert.Equal(t, []any{5, 8, 11}, def.Axes.Axis(0).Values)
	assert.Equal(t, []any{1, 2, 3}, def.Axes.Axis(1).Values)
	assert.Equal(t, []any{"fast", "slow"}, def.Axes.Axis(2).Values)

	assert.Equal(t, Settings{Workers: 3, MaxChunkSize: 4, Timeout: 90 * time.Second}, def.Settings)
	assert.Equal(t, "results.csv", def.Output.File)
	assert.Equal(t, ",", def.Output.Separator)
	assert.Equal(t, []string{"mode", "a", "b", "result"}, def.Output.Columns)
	require.NotNil(t, def.Output.Timestamp)
	assert.False(t, *def.Output.Timestamp)

	require.NoError(t, sweep.CheckBinding(def.Objective, def.Axes))
	assert.Equal(t, []string{"a", "b", "mode"}, def.Objective.Params())
	assert.Equal(t, `mode == "fast" ? a * b : a * b * 10`, def.Objective.Source())

	combo := sweep.NewCombination([]string{"b", "a", "mode"}, []any{8, 2, "slow"})
	got, err := def.Objective.Call(context.Background(), combo)
	require.NoError(t, err)
	assert.Equal(t, 160, got)
}

func TestParse_FunctionsInValues(t *testing.T) {
	t.Parallel()
	src := `
axis "n" { values = range(1, 4) }
axis "s" { values = [upper("x"), format("%s-%d", "y", 2)] }
objective { result = max(n, 2) }
`
	def, err := Parse([]byte(src), "fn.hcl")
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, def.Axes.Axis(0).Values)
	assert.Equal(t, []any{"X", "y-2"}, def.Axes.Axis(1).Values)

	err = sweep.CheckBinding(def.Objective, def.Axes)
	require.Error(t, err, "s is never referenced by the objective")
	assert.True(t, apperrors.IsConfigError(err))
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		src      string
		contains string
	}{
		{"syntax error", `axis "a" { values = [1, 2 }`, "failed to parse"},
		{"missing objective", `axis "a" { values = [1] }`, "missing objective"},
		{"values and range", `axis "a" {
  values = [1]
  range  = "1:2:1"
}
objective { result = a }`, "mutually exclusive"},
		{"neither values nor range", `axis "a" {}
objective { result = a }`, "one of values or range is required"},
		{"values not a list", `axis "a" { values = "abc" }
objective { result = a }`, "values must be a list"},
		{"empty values", `axis "a" { values = [] }
objective { result = a }`, `axis "a" has no values`},
		{"bad range", `axis "a" { range = "3:1:1" }
objective { result = a }`, "greater than max"},
		{"reserved axis name", `axis "result" { values = [1] }
objective { result = 1 }`, "reserved"},
		{"duplicate axis", `axis "a" { values = [1] }
axis "a" { values = [2] }
objective { result = a }`, "declared more than once"},
		{"bad workers", `settings { workers = 0 }
axis "a" { values = [1] }
objective { result = a }`, "workers must be positive"},
		{"bad timeout", `settings { timeout = "soon" }
axis "a" { values = [1] }
objective { result = a }`, "timeout"},
		{"unknown block", `thing {}
axis "a" { values = [1] }
objective { result = a }`, "failed to decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			assert.True(t, apperrors.IsConfigError(err), "expected ConfigError, got %T", err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "demo.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
axis "a" { values = [1, 2, 3] }
axis "b" { values = [5, 9, 11] }
objective { result = a * b }
`), 0o600))

	def, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, def.Path)
	assert.Equal(t, 9, def.Axes.Size())

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
	assert.True(t, apperrors.IsConfigError(err))
}

func TestFromSpecs(t *testing.T) {
	t.Parallel()
	def, err := FromSpecs([]string{"a=1,2,3", "b = 5:11:3"}, "a * b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, def.Axes.Names())
	assert.Equal(t, []any{5, 8, 11}, def.Axes.Axis(1).Values)
	require.NoError(t, sweep.CheckBinding(def.Objective, def.Axes))

	for _, bad := range []struct {
		specs     []string
		objective string
	}{
		{[]string{"a"}, "a"},
		{[]string{"a="}, "a"},
		{[]string{"a=1"}, ""},
		{[]string{"a=1"}, "a +"},
	} {
		_, err := FromSpecs(bad.specs, bad.objective)
		assert.Error(t, err, "specs %v objective %q", bad.specs, bad.objective)
		assert.True(t, apperrors.IsConfigError(err))
	}
}

func TestDemo(t *testing.T) {
	t.Parallel()
	def := Demo()
	assert.Equal(t, []string{"a", "b"}, def.Axes.Names())
	require.NoError(t, sweep.CheckBinding(def.Objective, def.Axes))
}
