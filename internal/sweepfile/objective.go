package sweepfile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	apperrors "github.com/agbru/paramsweep/internal/errors"
	"github.com/agbru/paramsweep/internal/sweep"
)

// ExpressionFunc evaluates an HCL expression once per combination, binding
// each axis name as a variable. It implements sweep.Func and is safe for
// concurrent use.
type ExpressionFunc struct {
	expr      hcl.Expression
	source    string
	params    []string
	functions map[string]function.Function
}

var _ sweep.Func = (*ExpressionFunc)(nil)

// NewExpressionFunc wraps a parsed expression. The parameters are the root
// names of the variables the expression references, sorted.
func NewExpressionFunc(expr hcl.Expression, source string) *ExpressionFunc {
	seen := map[string]struct{}{}
	for _, tr := range expr.Variables() {
		seen[tr.RootName()] = struct{}{}
	}
	params := make([]string, 0, len(seen))
	for name := range seen {
		params = append(params, name)
	}
	sort.Strings(params)
	return &ExpressionFunc{expr: expr, source: strings.TrimSpace(source), params: params, functions: Functions()}
}

// ParseExpression parses src as a native-syntax HCL expression.
func ParseExpression(src string) (*ExpressionFunc, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "objective", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, apperrors.NewConfigError("invalid objective %q: %s", src, diags.Error())
	}
	return NewExpressionFunc(expr, src), nil
}

// Params returns the variable names the expression references.
func (f *ExpressionFunc) Params() []string {
	out := make([]string, len(f.params))
	copy(out, f.params)
	return out
}

// Source returns the expression text.
func (f *ExpressionFunc) Source() string { return f.source }

// Call evaluates the expression with the combination's values bound.
func (f *ExpressionFunc) Call(_ context.Context, c sweep.Combination) (any, error) {
	names := c.Names()
	vars := make(map[string]cty.Value, len(names))
	for i, name := range names {
		v, err := ToCtyValue(c.At(i))
		if err != nil {
			return nil, fmt.Errorf("axis %q: %w", name, err)
		}
		vars[name] = v
	}
	val, diags := f.expr.Value(&hcl.EvalContext{Variables: vars, Functions: f.functions})
	if diags.HasErrors() {
		return nil, diags
	}
	return FromCtyValue(val)
}
