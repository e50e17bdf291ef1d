package tardis

import "sort"

// LineSearch returns the smallest index i such that lineListNu[i] <=
// nuComov, given lineListNu sorted strictly decreasing. If no such index
// exists (the packet is off the red end of the line list), it returns
// len(lineListNu). The contract: for all i < result, lineListNu[i] >
// nuComov.
func LineSearch(lineListNu []float64, nuComov float64) int {
	n := len(lineListNu)
	// sort.Search requires a non-decreasing predicate over [0, n); the
	// list itself is decreasing, so the predicate "lineListNu[i] <=
	// nuComov" is monotonically non-decreasing in i, which is exactly
	// what sort.Search needs.
	return sort.Search(n, func(i int) bool {
		return lineListNu[i] <= nuComov
	})
}
