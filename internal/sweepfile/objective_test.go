package sweepfile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/agbru/paramsweep/internal/sweep"
)

func TestExpressionFunc_Call(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		expr   string
		names  []string
		values []any
		want   any
	}{
		{"integer product", "a * b", []string{"a", "b"}, []any{2, 9}, 18},
		{"float division", "a / b", []string{"a", "b"}, []any{1, 4}, 0.25},
		{"string template", `"${name}-${n}"`, []string{"name", "n"}, []any{"run", 3}, "run-3"},
		{"structured axis value", "cfg.depth * 2", []string{"cfg"}, []any{map[string]any{"depth": 4}}, 8},
		{"list result", "[a, a + 1]", []string{"a"}, []any{1}, []any{1, 2}},
		{"object result", "{ sum = a + b, ok = a < b }", []string{"a", "b"}, []any{1, 2}, map[string]any{"sum": 3, "ok": true}},
		{"stdlib function", "pow(a, 2) + abs(b)", []string{"a", "b"}, []any{3, -4}, 13},
		{"no variables", "42", nil, nil, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fn, err := ParseExpression(tt.expr)
			require.NoError(t, err)
			got, err := fn.Call(context.Background(), sweep.NewCombination(tt.names, tt.values))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpressionFunc_Params(t *testing.T) {
	t.Parallel()
	fn, err := ParseExpression("[for x in [1, 2] : x * b.k + a + a]")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, fn.Params(), "iteration variables are not parameters")
}

func TestExpressionFunc_EvaluationError(t *testing.T) {
	t.Parallel()
	fn, err := ParseExpression("a * b")
	require.NoError(t, err)
	_, err = fn.Call(context.Background(), sweep.NewCombination([]string{"a", "b"}, []any{"x", 2}))
	assert.Error(t, err)
}

func TestConvert_RoundTrip(t *testing.T) {
	t.Parallel()
	values := []any{
		nil, "s", true, 7, 2.5,
		[]any{1, "two", []any{}},
		map[string]any{"k": []any{1.5}, "empty": map[string]any{}},
	}
	for _, v := range values {
		cv, err := ToCtyValue(v)
		require.NoError(t, err)
		back, err := FromCtyValue(cv)
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}
}

func TestFromCtyValue_Numbers(t *testing.T) {
	t.Parallel()
	got, err := FromCtyValue(cty.NumberFloatVal(3.0))
	require.NoError(t, err)
	assert.Equal(t, 3, got, "whole numbers become int")

	got, err = FromCtyValue(cty.NumberFloatVal(1e30))
	require.NoError(t, err)
	assert.Equal(t, 1e30, got, "numbers beyond int range stay float64")

	got, err = FromCtyValue(cty.UnknownVal(cty.Number))
	require.NoError(t, err)
	assert.Nil(t, got)
}
