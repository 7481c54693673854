package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/paramsweep/internal/sweep"
)

var fixedNow = func() time.Time { return time.Date(2024, 3, 7, 9, 5, 2, 0, time.UTC) }

func demoRecords() []sweep.Record {
	names := []string{"a", "b"}
	return []sweep.Record{
		sweep.NewRecord(sweep.NewCombination(names, []any{1, 5}), 5),
		sweep.NewRecord(sweep.NewCombination(names, []any{2, 9}), 18),
	}
}

func TestResultWriter_Write(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w := &ResultWriter{Separator: ";;", Timestamp: false}

	path, err := w.Write(demoRecords(), filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a;;b;;result\n1;;5;;5\n2;;9;;18\n", string(data))
}

func TestResultWriter_EncodesNonPrimitivesAsJSON(t *testing.T) {
	t.Parallel()
	names := []string{"name", "cfg", "on", "ratio"}
	records := []sweep.Record{
		sweep.NewRecord(
			sweep.NewCombination(names, []any{"x", map[string]any{"depth": 2}, true, 0.5}),
			"done",
		),
		sweep.NewRecord(
			sweep.NewCombination(names, []any{"y", []any{1, 2}, false, 1.25}),
			[]any{1, "two"},
		),
	}
	w := &ResultWriter{Separator: ",", Timestamp: false}
	path, err := w.Write(records, filepath.Join(t.TempDir(), "r.txt"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,cfg,on,ratio,result", lines[0])
	assert.Equal(t, `x,{"depth":2},true,0.5,"done"`, lines[1])
	assert.Equal(t, `y,[1,2],false,1.25,[1,"two"]`, lines[2])
}

func TestResultWriter_DestinationPath(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		destination string
		timestamp   bool
		want        string
	}{
		{"single extension", "results.csv", true, "results_24-03-07-09-05-02.csv"},
		{"no extension", "results", true, "results_24-03-07_09-05-02.csv"},
		{"several dots", "my.results.csv", true, "my.results.csv_24-03-07_09-05-02.csv"},
		{"directory kept", filepath.Join("out", "r.tsv"), true, filepath.Join("out", "r_24-03-07-09-05-02.tsv")},
		{"default name", "", true, "paramsweep_24-03-07_09-05-02.csv"},
		{"timestamp disabled", "results", false, "results"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := &ResultWriter{Timestamp: tt.timestamp, Now: fixedNow}
			assert.Equal(t, tt.want, w.destinationPath(tt.destination))
		})
	}
}

func TestResultWriter_NoRecords(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	_, err := NewResultWriter().Write(nil, filepath.Join(dir, "empty.csv"))
	require.ErrorIs(t, err, ErrNoRecords)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file is created")
}

func TestFormatField(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   any
		want string
	}{
		{1, "1"},
		{int64(-7), "-7"},
		{2.5, "2.5"},
		{"plain", "plain"},
		{true, "true"},
		{nil, "null"},
		{[]any{1, "a"}, `[1,"a"]`},
	}
	for _, tt := range tests {
		got, err := FormatField(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
