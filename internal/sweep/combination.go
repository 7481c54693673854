package sweep

import (
	"fmt"
	"strings"
)

// Combination is one selection of a value per axis. The axis names are shared
// read-only between all combinations of a space; the values are owned by the
// combination.
type Combination struct {
	names  []string
	values []any
}

// NewCombination builds a combination from parallel name and value slices.
// Both slices are copied.
func NewCombination(names []string, values []any) Combination {
	if len(names) != len(values) {
		panic(fmt.Sprintf("sweep: %d names for %d values", len(names), len(values)))
	}
	n := make([]string, len(names))
	copy(n, names)
	v := make([]any, len(values))
	for i, x := range values {
		v[i] = cloneValue(x)
	}
	return Combination{names: n, values: v}
}

// Len returns the number of axes in the combination.
func (c Combination) Len() int { return len(c.values) }

// Names returns the axis names in declaration order.
func (c Combination) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Values returns a copy of the selected values in axis order.
func (c Combination) Values() []any {
	out := make([]any, len(c.values))
	copy(out, c.values)
	return out
}

// At returns the value selected for the i-th axis.
func (c Combination) At(i int) any { return c.values[i] }

// Get returns the value selected for the named axis.
func (c Combination) Get(name string) (any, bool) {
	for i, n := range c.names {
		if n == name {
			return c.values[i], true
		}
	}
	return nil, false
}

// Map returns the combination as a freshly allocated map.
func (c Combination) Map() map[string]any {
	m := make(map[string]any, len(c.values))
	for i, n := range c.names {
		m[n] = c.values[i]
	}
	return m
}

// Equal reports whether two combinations select equal values for the same axes.
func (c Combination) Equal(o Combination) bool {
	if len(c.values) != len(o.values) {
		return false
	}
	for i := range c.values {
		if c.names[i] != o.names[i] || !equalValue(c.values[i], o.values[i]) {
			return false
		}
	}
	return true
}

// String renders the combination as {a=1, b=5}.
func (c Combination) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, n := range c.names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", n, c.values[i])
	}
	b.WriteByte('}')
	return b.String()
}

// ValueOf returns the named value converted to T. Numeric values are
// converted to int, int64 and float64 only when the conversion is exact;
// float32 takes the nearest value within its range.
func ValueOf[T any](c Combination, name string) (T, error) {
	var zero T
	v, ok := c.Get(name)
	if !ok {
		return zero, fmt.Errorf("combination has no axis %q", name)
	}
	if t, ok := v.(T); ok {
		return t, nil
	}
	if t, ok := convertNumber[T](v); ok {
		return t, nil
	}
	return zero, fmt.Errorf("axis %q holds %T, not %T", name, v, zero)
}
