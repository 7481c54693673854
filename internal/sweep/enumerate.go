package sweep

// Enumerate returns every combination of the axis set in nested-loop order:
// the first axis is the outermost loop and the last axis varies fastest.
// An empty set yields exactly one empty combination.
//
// The working buffer is copied at each leaf so that no two combinations
// share storage.
func Enumerate(axes AxisSet) []Combination {
	space := make([]Combination, 0, axes.Size())
	buf := make([]any, len(axes.axes))

	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(axes.axes) {
			values := make([]any, len(buf))
			for i, v := range buf {
				values[i] = cloneValue(v)
			}
			space = append(space, Combination{names: axes.names, values: values})
			return
		}
		for _, v := range axes.axes[depth].Values {
			buf[depth] = v
			walk(depth + 1)
		}
	}
	walk(0)
	return space
}
