package sweep

import (
	"context"
	"fmt"
	"slices"

	apperrors "github.com/agbru/paramsweep/internal/errors"
)

// Func is a function evaluated once per combination. Params names the
// formal parameters; they must match the sweep's axis names exactly.
// Call must be safe for concurrent use.
type Func interface {
	Params() []string
	Call(ctx context.Context, c Combination) (any, error)
}

// FuncOf is the signature of a plain Go function adapted by Bind.
type FuncOf func(ctx context.Context, c Combination) (any, error)

type boundFunc struct {
	params []string
	fn     FuncOf
}

func (b boundFunc) Params() []string { return slices.Clone(b.params) }

func (b boundFunc) Call(ctx context.Context, c Combination) (any, error) {
	return b.fn(ctx, c)
}

// Bind declares the parameter names of fn.
func Bind(params []string, fn FuncOf) Func {
	return boundFunc{params: slices.Clone(params), fn: fn}
}

// Bind1 adapts a one-argument function. The argument is read from the named
// axis and converted with ValueOf.
func Bind1[A any](p1 string, fn func(A) (any, error)) Func {
	return Bind([]string{p1}, func(_ context.Context, c Combination) (any, error) {
		a, err := ValueOf[A](c, p1)
		if err != nil {
			return nil, err
		}
		return fn(a)
	})
}

// Bind2 adapts a two-argument function.
func Bind2[A, B any](p1, p2 string, fn func(A, B) (any, error)) Func {
	return Bind([]string{p1, p2}, func(_ context.Context, c Combination) (any, error) {
		a, err := ValueOf[A](c, p1)
		if err != nil {
			return nil, err
		}
		b, err := ValueOf[B](c, p2)
		if err != nil {
			return nil, err
		}
		return fn(a, b)
	})
}

// Bind3 adapts a three-argument function.
func Bind3[A, B, C any](p1, p2, p3 string, fn func(A, B, C) (any, error)) Func {
	return Bind([]string{p1, p2, p3}, func(_ context.Context, c Combination) (any, error) {
		a, err := ValueOf[A](c, p1)
		if err != nil {
			return nil, err
		}
		b, err := ValueOf[B](c, p2)
		if err != nil {
			return nil, err
		}
		x, err := ValueOf[C](c, p3)
		if err != nil {
			return nil, err
		}
		return fn(a, b, x)
	})
}

// CheckBinding verifies that the parameter names of fn are exactly the axis
// names (in any order). A mismatch is reported as a ConfigError listing the
// missing and unexpected names.
func CheckBinding(fn Func, axes AxisSet) error {
	if fn == nil {
		return apperrors.NewConfigError("no function to evaluate")
	}
	params := fn.Params()
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if _, dup := seen[p]; dup {
			return apperrors.NewConfigError("function parameter %q is declared more than once", p)
		}
		seen[p] = struct{}{}
	}

	var missing, unexpected []string
	for _, p := range params {
		if !slices.Contains(axes.names, p) {
			missing = append(missing, p)
		}
	}
	for _, n := range axes.names {
		if _, ok := seen[n]; !ok {
			unexpected = append(unexpected, n)
		}
	}
	if len(missing) > 0 || len(unexpected) > 0 {
		return apperrors.BindingError(missing, unexpected)
	}
	return nil
}

// Call invokes fn on c and converts a panic into an error.
func Call(ctx context.Context, fn Func, c Combination) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn.Call(ctx, c)
}
