package stats

import "math"

// Statistics is a snapshot of aggregates over one slice of a series.
// Instances are only produced for non-empty slices.
type Statistics struct {
	// Percentile is the slice the values were computed over. Zero means
	// the whole series.
	Percentile int
	Count      int
	Sum        float64
	Mean       float64
	Upper      float64
	Lower      float64
	Median     float64
	StdDev     float64
}

// IsGlobal reports whether s covers the whole series.
func (s Statistics) IsGlobal() bool {
	return s.Percentile == 0
}

// Compute returns statistics over values, which must be sorted ascending
// for the median to be correct. The second result is false when values is
// empty; no Statistics exist for an empty slice.
func Compute(values []float64) (Statistics, bool) {
	if len(values) == 0 {
		return Statistics{}, false
	}

	count := len(values)
	lower, upper, sum := minMaxSum(values)
	mean := sum / float64(count)

	return Statistics{
		Count:  count,
		Sum:    sum,
		Mean:   mean,
		Upper:  upper,
		Lower:  lower,
		Median: median(values),
		StdDev: stddev(values, mean),
	}, true
}

// ComputePercentile returns statistics over the lowest p percent of a
// sorted series. The second result is false when the slice is empty.
func ComputePercentile(sorted []float64, p int) (Statistics, bool) {
	s, ok := Compute(Slice(sorted, p))
	if !ok {
		return Statistics{}, false
	}
	s.Percentile = p
	return s, true
}

func minMaxSum(values []float64) (lower, upper, sum float64) {
	lower = math.Inf(1)
	upper = math.Inf(-1)
	for _, v := range values {
		if v > upper {
			upper = v
		}
		if v < lower {
			lower = v
		}
		sum += v
	}
	return lower, upper, sum
}

func median(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 0 {
		return midpoint(sorted[mid-1], sorted[mid])
	}
	return sorted[mid]
}

// midpoint averages a <= b without overflowing for large finite values.
func midpoint(a, b float64) float64 {
	if (a < 0) != (b < 0) {
		return (a + b) / 2
	}
	return a + (b-a)/2
}

// stddev is the population standard deviation around mean.
func stddev(values []float64, mean float64) float64 {
	if len(values) == 1 {
		return 0
	}
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}
