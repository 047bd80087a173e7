// Package stats computes descriptive statistics over a series of numbers
// and over the lowest percentile slices of that series.
package stats

// Slice returns the lowest percentile portion of a sorted series, that is
// the first p*n/100 values. The slice must already be sorted in ascending
// order and p must lie in [1, 99]. The result shares the backing array
// of sorted and may be empty.
func Slice(sorted []float64, p int) []float64 {
	idx := (p * len(sorted)) / 100
	if idx > len(sorted) {
		idx = len(sorted)
	}
	return sorted[:idx]
}
