package stats

import "io"

// Bundle groups the statistics of a whole series with those of the
// requested percentile slices. A Bundle is read-only once built.
type Bundle struct {
	global      Statistics
	percentiles []Statistics
}

// NewBundle computes global statistics over sorted plus one entry per
// requested percentile, in the order given and with duplicates kept.
// Percentiles whose slice is empty are left out. The second result is
// false when sorted is empty.
func NewBundle(sorted []float64, percentiles []int) (*Bundle, bool) {
	global, ok := Compute(sorted)
	if !ok {
		return nil, false
	}

	b := &Bundle{
		global:      global,
		percentiles: make([]Statistics, 0, len(percentiles)),
	}
	for _, p := range percentiles {
		if s, ok := ComputePercentile(sorted, p); ok {
			b.percentiles = append(b.percentiles, s)
		}
	}
	return b, true
}

// BundleFromReader reads and sorts values from r and bundles them. The
// second result is false when r held no valid values.
func BundleFromReader(r io.Reader, percentiles []int) (*Bundle, bool, error) {
	values, err := ReadValues(r, Sorted)
	if err != nil {
		return nil, false, err
	}
	b, ok := NewBundle(values, percentiles)
	return b, ok, nil
}

// Global returns the statistics over the whole series.
func (b *Bundle) Global() Statistics {
	return b.global
}

// Percentiles returns the percentile statistics in request order.
func (b *Bundle) Percentiles() []Statistics {
	out := make([]Statistics, len(b.percentiles))
	copy(out, b.percentiles)
	return out
}

// All returns the global statistics followed by the percentile ones.
func (b *Bundle) All() []Statistics {
	out := make([]Statistics, 0, len(b.percentiles)+1)
	out = append(out, b.global)
	return append(out, b.percentiles...)
}
