package stats

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

var sample = []float64{1, 2, 5, 7, 9, 12}

func TestSlice(t *testing.T) {
	tests := []struct {
		p    int
		n    int
		want int
	}{
		{50, 6, 3},
		{75, 6, 4},
		{99, 6, 5},
		{1, 10, 0},
		{1, 50, 0},
		{1, 100, 1},
		{90, 10, 9},
		{99, 1, 0},
		{50, 0, 0},
	}

	for _, tt := range tests {
		values := make([]float64, tt.n)
		for i := range values {
			values[i] = float64(i)
		}
		got := Slice(values, tt.p)
		if len(got) != tt.want {
			t.Errorf("len(Slice(n=%d, p=%d)) = %d, want %d", tt.n, tt.p, len(got), tt.want)
		}
	}
}

func TestSliceIsPrefixView(t *testing.T) {
	values := []float64{1, 2, 5, 7, 9, 12}
	got := Slice(values, 50)
	assert.Equal(t, []float64{1, 2, 5}, got)

	got[0] = 100
	assert.Equal(t, 100.0, values[0], "Slice should share the backing array")
}

func TestComputeGlobal(t *testing.T) {
	s, ok := Compute(sample)
	require.True(t, ok)

	assert.True(t, s.IsGlobal())
	assert.Equal(t, 6, s.Count)
	assert.Equal(t, 36.0, s.Sum)
	assert.Equal(t, 6.0, s.Mean)
	assert.Equal(t, 6.0, s.Median)
	assert.Equal(t, 1.0, s.Lower)
	assert.Equal(t, 12.0, s.Upper)
	assert.InDelta(t, 3.8297, s.StdDev, 1e-4)
}

func TestComputePercentile(t *testing.T) {
	s, ok := ComputePercentile(sample, 50)
	require.True(t, ok)

	assert.False(t, s.IsGlobal())
	assert.Equal(t, 50, s.Percentile)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 8.0, s.Sum)
	assert.InDelta(t, 2.6667, s.Mean, 1e-4)
	assert.Equal(t, 2.0, s.Median)
	assert.Equal(t, 1.0, s.Lower)
	assert.Equal(t, 5.0, s.Upper)
	assert.InDelta(t, 1.6997, s.StdDev, 1e-4)
}

func TestComputeSingleValue(t *testing.T) {
	s, ok := Compute([]float64{13})
	require.True(t, ok)

	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 13.0, s.Sum)
	assert.Equal(t, 13.0, s.Mean)
	assert.Equal(t, 13.0, s.Median)
	assert.Equal(t, 13.0, s.Lower)
	assert.Equal(t, 13.0, s.Upper)
	assert.Equal(t, 0.0, s.StdDev)
}

func TestComputeEmpty(t *testing.T) {
	s, ok := Compute(nil)
	assert.False(t, ok)
	assert.Equal(t, Statistics{}, s)

	_, ok = ComputePercentile([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 1)
	assert.False(t, ok)
}

func TestComputeMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"odd", []float64{1, 3, 8}, 3},
		{"even", []float64{1, 3, 8, 10}, 5.5},
		{"two", []float64{-4, 4}, 0},
		{"negative", []float64{-9, -5, -1}, -5},
		{"ties", []float64{2, 2, 2, 2}, 2},
		{"large", []float64{1e308, 1.5e308}, 1.25e308},
		{"large negative", []float64{-1.5e308, -1e308}, -1.25e308},
		{"extremes", []float64{-math.MaxFloat64, math.MaxFloat64}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Compute(tt.values)
			require.True(t, ok)
			assert.InDelta(t, tt.want, s.Median, math.Abs(tt.want)*1e-15)
			assert.LessOrEqual(t, s.Lower, s.Median)
			assert.LessOrEqual(t, s.Median, s.Upper)
		})
	}
}

func TestComputeAllNegative(t *testing.T) {
	s, ok := Compute([]float64{-30, -20, -10})
	require.True(t, ok)
	assert.Equal(t, -10.0, s.Upper)
	assert.Equal(t, -30.0, s.Lower)
}

func TestComputeProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 200; i++ {
		n := 1 + rng.IntN(500)
		values := make([]float64, n)
		for j := range values {
			values[j] = (rng.Float64() - 0.5) * 1e4
		}
		SortValues(values)

		s, ok := Compute(values)
		require.True(t, ok)

		var sum float64
		for _, v := range values {
			sum += v
		}
		assert.Equal(t, n, s.Count)
		assert.Equal(t, sum, s.Sum)
		assert.Equal(t, s.Sum/float64(s.Count), s.Mean)
		assert.LessOrEqual(t, s.Lower, s.Median)
		assert.LessOrEqual(t, s.Median, s.Upper)
		assert.Equal(t, values[0], s.Lower)
		assert.Equal(t, values[n-1], s.Upper)
		assert.False(t, math.IsNaN(s.StdDev))

		assert.InDelta(t, stat.Mean(values, nil), s.Mean, 1e-6)
		assert.InDelta(t, stat.PopStdDev(values, nil), s.StdDev, 1e-6)

		p := 1 + rng.IntN(99)
		ps, ok := ComputePercentile(values, p)
		if want := p * n / 100; want == 0 {
			assert.False(t, ok)
		} else {
			require.True(t, ok)
			assert.Equal(t, want, ps.Count)
			assert.LessOrEqual(t, ps.Upper, s.Upper)
			assert.Equal(t, s.Lower, ps.Lower)
		}
	}
}
