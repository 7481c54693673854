// Package sweep models a parameter sweep: named axes of candidate values,
// the combinations obtained by taking their Cartesian product, the functions
// evaluated on each combination, and the records pairing combinations with
// their results.
//
// Enumeration is deterministic. Axes are walked in declaration order with the
// last-declared axis varying fastest, so
//
//	a: [1, 2]  b: [5, 9, 11]
//
// yields (1,5) (1,9) (1,11) (2,5) (2,9) (2,11). Every emitted Combination owns
// its value storage; mutating one never affects another.
package sweep
