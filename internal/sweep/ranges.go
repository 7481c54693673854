package sweep

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxRangeValues bounds the number of values a single range may expand to.
const MaxRangeValues = 10000

// RangeResolution is the rounding step of non-integral range values. Smaller
// steps would repeat values.
const RangeResolution = 0.001

// RangeSpec is an inclusive "min:max:step" range.
type RangeSpec struct {
	Min, Max, Step float64
	// Integral is set when all three bounds were written as integers.
	Integral bool
}

// ParseRangeSpec parses a "min:max:step" string.
func ParseRangeSpec(s string) (RangeSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return RangeSpec{}, fmt.Errorf("invalid range format %q: expected min:max:step", s)
	}

	var (
		bounds   [3]float64
		integral = true
		labels   = [3]string{"min", "max", "step"}
	)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if _, err := strconv.ParseInt(p, 10, 64); err != nil {
			integral = false
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return RangeSpec{}, fmt.Errorf("invalid %s value %q: %w", labels[i], p, err)
		}
		bounds[i] = v
	}
	if bounds[2] <= 0 {
		return RangeSpec{}, fmt.Errorf("step must be positive, got %g", bounds[2])
	}
	if bounds[0] > bounds[1] {
		return RangeSpec{}, fmt.Errorf("min %g is greater than max %g", bounds[0], bounds[1])
	}
	if !integral && bounds[2] < RangeResolution {
		return RangeSpec{}, fmt.Errorf("step %g is below the range resolution %g", bounds[2], RangeResolution)
	}
	return RangeSpec{Min: bounds[0], Max: bounds[1], Step: bounds[2], Integral: integral}, nil
}

// Values expands the range. Integral ranges produce ints; others produce
// float64 values rounded to RangeResolution to avoid accumulation drift.
// Values are always distinct.
func (r RangeSpec) Values() ([]any, error) {
	count := int((r.Max-r.Min)/r.Step) + 1
	if count > MaxRangeValues || count < 0 {
		return nil, fmt.Errorf("range %g:%g:%g expands to more than %d values", r.Min, r.Max, r.Step, MaxRangeValues)
	}

	out := make([]any, 0, count)
	if r.Integral {
		lo, hi, step := int(r.Min), int(r.Max), int(r.Step)
		for v := lo; v <= hi; v += step {
			out = append(out, v)
		}
		return out, nil
	}
	var last float64
	for i := 0; i < count+1 && len(out) < MaxRangeValues; i++ {
		rounded := math.Round((r.Min+float64(i)*r.Step)*1000) / 1000
		if rounded > r.Max {
			break
		}
		if len(out) > 0 && rounded == last {
			continue
		}
		out = append(out, rounded)
		last = rounded
	}
	return out, nil
}

// ParseValueList parses either a range ("1:10:2") or a comma-separated list
// ("1, 2.5, red"). List items are parsed as int, then float, then bool,
// falling back to a trimmed string.
func ParseValueList(s string) ([]any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty value list")
	}
	if strings.Count(s, ":") == 2 && !strings.Contains(s, ",") {
		spec, err := ParseRangeSpec(s)
		if err != nil {
			return nil, err
		}
		return spec.Values()
	}
	parts := strings.Split(s, ",")
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		out = append(out, parseScalar(strings.TrimSpace(p)))
	}
	return out, nil
}

func parseScalar(s string) any {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}
