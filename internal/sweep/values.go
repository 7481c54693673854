package sweep

import (
	"math"
	"reflect"
)

// cloneValue copies the container kinds produced by the sweep-file loader so
// that combinations never share mutable storage. Other values are returned
// as-is.
func cloneValue(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func equalValue(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// AsFloat64 reports the numeric value of v as a float64, if v is a Go number.
func AsFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// maxExactFloatInt is the largest magnitude below which every integer has an
// exact float64 representation.
const maxExactFloatInt = 1 << 53

// asInt64 returns v as an int64 when v is an integer kind, or an integral
// float, whose value fits without loss.
func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), uint64(x) <= math.MaxInt64
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), x <= math.MaxInt64
	case float32:
		return floatToInt64(float64(x))
	case float64:
		return floatToInt64(x)
	}
	return 0, false
}

// floatToInt64 rejects fractional, non-finite and out-of-range values.
// -2^63 is representable; 2^63 is not.
func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f < math.MinInt64 || f >= -math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// asExactFloat64 returns v as a float64 when no precision is lost.
func asExactFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	i, ok := asInt64(v)
	if !ok || i > maxExactFloatInt || i < -maxExactFloatInt {
		return 0, false
	}
	return float64(i), true
}

func convertNumber[T any](v any) (T, bool) {
	var zero T
	var out any
	switch any(zero).(type) {
	case float64:
		f, ok := asExactFloat64(v)
		if !ok {
			return zero, false
		}
		out = f
	case float32:
		f, ok := asExactFloat64(v)
		if !ok || math.Abs(f) > math.MaxFloat32 {
			return zero, false
		}
		out = float32(f)
	case int:
		i, ok := asInt64(v)
		if !ok || i < math.MinInt || i > math.MaxInt {
			return zero, false
		}
		out = int(i)
	case int64:
		i, ok := asInt64(v)
		if !ok {
			return zero, false
		}
		out = i
	default:
		return zero, false
	}
	return out.(T), true
}
