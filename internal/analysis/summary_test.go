package analysis

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/paramsweep/internal/sweep"
)

func records(results ...any) []sweep.Record {
	out := make([]sweep.Record, len(results))
	for i, r := range results {
		out[i] = sweep.NewRecord(sweep.NewCombination([]string{"i"}, []any{i}), r)
	}
	return out
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	s := Summarize(records(5, 9, 11, 10, 18, 22, 15, 27, 33))

	assert.Equal(t, 9, s.Count)
	assert.Equal(t, 9, s.Numeric)
	assert.Equal(t, 5.0, s.Min)
	assert.Equal(t, 33.0, s.Max)
	assert.InDelta(t, 150.0/9, s.Mean, 1e-9)
	assert.Equal(t, 15.0, s.Median)
	assert.Greater(t, s.StdDev, 0.0)

	v, _ := s.ArgMin.Combination().Get("i")
	assert.Equal(t, 0, v)
	v, _ = s.ArgMax.Combination().Get("i")
	assert.Equal(t, 8, v)
}

func TestSummarize_SkipsNonNumeric(t *testing.T) {
	t.Parallel()
	s := Summarize(records("x", 2.5, nil, math.NaN(), int64(-1), []any{1}))
	assert.Equal(t, 6, s.Count)
	assert.Equal(t, 2, s.Numeric)
	assert.Equal(t, -1.0, s.Min)
	assert.Equal(t, 2.5, s.Max)
	v, _ := s.ArgMax.Combination().Get("i")
	assert.Equal(t, 1, v)
}

func TestSummarize_Degenerate(t *testing.T) {
	t.Parallel()
	empty := Summarize(nil)
	assert.False(t, empty.HasNumeric())

	one := Summarize(records(7))
	require.True(t, one.HasNumeric())
	assert.Equal(t, 7.0, one.Mean)
	assert.Equal(t, 0.0, one.StdDev)
	assert.Equal(t, 7.0, one.Median)
}

func TestSummary_Print(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	Summarize(records(1, 3)).Print(&buf)
	out := buf.String()
	assert.Contains(t, out, "Records:  2 (2 numeric)")
	assert.Contains(t, out, "Max:      3 at {i=1}")

	buf.Reset()
	Summarize(records("a")).Print(&buf)
	assert.NotContains(t, buf.String(), "Mean")
}
