package sweep

import (
	"math"
	"strings"

	apperrors "github.com/agbru/paramsweep/internal/errors"
)

// ResultField is the reserved field name under which a Record stores the
// computed result. No axis may use it.
const ResultField = "result"

// MaxCombinations bounds the size of a parameter space accepted by the runner.
const MaxCombinations = 10_000_000

// Axis is one named, ordered dimension of a sweep.
type Axis struct {
	Name   string
	Values []any
}

// NewAxis builds an axis from a name and its candidate values.
func NewAxis(name string, values ...any) Axis {
	return Axis{Name: name, Values: values}
}

// AxisSet is an ordered collection of axes with unique names. The zero value
// is a valid set with no axes. It is immutable once constructed.
type AxisSet struct {
	axes  []Axis
	names []string
}

// NewAxisSet validates the axes and returns them as an AxisSet. Axis order is
// preserved and defines enumeration order. Values are copied so that later
// changes to the caller's slices do not affect the set.
//
// A ConfigError is returned when an axis has no name or no values, when two
// axes share a name, or when an axis uses the reserved ResultField name.
func NewAxisSet(axes ...Axis) (AxisSet, error) {
	set := AxisSet{
		axes:  make([]Axis, 0, len(axes)),
		names: make([]string, 0, len(axes)),
	}
	seen := make(map[string]struct{}, len(axes))
	for i, a := range axes {
		name := strings.TrimSpace(a.Name)
		switch {
		case name == "":
			return AxisSet{}, apperrors.NewConfigError("axis #%d has an empty name", i)
		case name == ResultField:
			return AxisSet{}, apperrors.NewConfigError("axis name %q is reserved for results", ResultField)
		case len(a.Values) == 0:
			return AxisSet{}, apperrors.NewConfigError("axis %q has no values", name)
		}
		if _, dup := seen[name]; dup {
			return AxisSet{}, apperrors.NewConfigError("axis %q is declared more than once", name)
		}
		seen[name] = struct{}{}

		values := make([]any, len(a.Values))
		for j, v := range a.Values {
			values[j] = cloneValue(v)
		}
		set.axes = append(set.axes, Axis{Name: name, Values: values})
		set.names = append(set.names, name)
	}
	return set, nil
}

// MustAxisSet is like NewAxisSet but panics on error. Intended for tests and
// static sweep definitions.
func MustAxisSet(axes ...Axis) AxisSet {
	set, err := NewAxisSet(axes...)
	if err != nil {
		panic(err)
	}
	return set
}

// Len returns the number of axes.
func (s AxisSet) Len() int { return len(s.axes) }

// Names returns the axis names in declaration order.
func (s AxisSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Axis returns the i-th axis. The returned Values slice is a copy.
func (s AxisSet) Axis(i int) Axis {
	a := s.axes[i]
	values := make([]any, len(a.Values))
	copy(values, a.Values)
	return Axis{Name: a.Name, Values: values}
}

// Size returns the number of combinations in the product of all axes,
// saturating at math.MaxInt.
func (s AxisSet) Size() int {
	total := 1
	for _, a := range s.axes {
		n := len(a.Values)
		if total > math.MaxInt/n {
			return math.MaxInt
		}
		total *= n
	}
	return total
}

// CheckSize returns a ConfigError when the space exceeds limit combinations.
func (s AxisSet) CheckSize(limit int) error {
	if size := s.Size(); size > limit {
		return apperrors.NewConfigError("parameter space of %d combinations exceeds the limit of %d", size, limit)
	}
	return nil
}
