package sweepfile

import (
	"strings"

	apperrors "github.com/agbru/paramsweep/internal/errors"
	"github.com/agbru/paramsweep/internal/sweep"
)

// FromSpecs builds a definition from command-line style axis specifications
// ("name=1,2,3" or "name=0:1:0.25") and an objective expression.
func FromSpecs(axisSpecs []string, objective string) (*Definition, error) {
	axes := make([]sweep.Axis, 0, len(axisSpecs))
	for _, spec := range axisSpecs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, apperrors.NewConfigError("invalid axis %q: expected name=values", spec)
		}
		values, err := sweep.ParseValueList(list)
		if err != nil {
			return nil, apperrors.NewConfigError("axis %q: %v", strings.TrimSpace(name), err)
		}
		axes = append(axes, sweep.Axis{Name: strings.TrimSpace(name), Values: values})
	}
	set, err := sweep.NewAxisSet(axes...)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(objective) == "" {
		return nil, apperrors.NewConfigError("an objective expression is required")
	}
	fn, err := ParseExpression(objective)
	if err != nil {
		return nil, err
	}
	return &Definition{Axes: set, Objective: fn}, nil
}

// Demo returns the built-in example sweep: a in [1, 2, 3], b in [5, 9, 11],
// result = a * b.
func Demo() *Definition {
	fn, err := ParseExpression("a * b")
	if err != nil {
		panic(err)
	}
	return &Definition{
		Path:      "demo",
		Axes:      sweep.MustAxisSet(sweep.NewAxis("a", 1, 2, 3), sweep.NewAxis("b", 5, 9, 11)),
		Objective: fn,
	}
}
