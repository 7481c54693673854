// Package sweepfile loads sweep definitions written in HCL and evaluates
// their objective expressions.
//
// A definition declares axes in order, an objective expression over the axis
// names and optional settings:
//
//	settings {
//	  workers        = 4
//	  max_chunk_size = 10
//	  timeout        = "5m"
//	}
//
//	axis "a" { values = [1, 2, 3] }
//	axis "b" { range  = "5:11:3" }
//
//	objective { result = a * b }
//
//	output {
//	  file      = "results.csv"
//	  separator = ";;"
//	  columns   = ["b", "a", "result"]
//	}
//
// Axis values may use functions (values = range(1, 10)). The objective's free
// variables must be exactly the axis names.
package sweepfile
