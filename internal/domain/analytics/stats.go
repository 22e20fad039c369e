package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean is the arithmetic mean; NaN for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	return stat.Mean(data, nil)
}

// PopStdDev is the population standard deviation (divides by n); NaN for an
// empty slice.
func PopStdDev(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	return stat.PopStdDev(data, nil)
}

// Median returns the middle value, or the mean of the two middle values for
// an even count; NaN for an empty slice. data is not modified.
func Median(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Max returns the largest value and the index of its first occurrence.
// data must not be empty.
func Max(data []float64) (float64, int) {
	i := floats.MaxIdx(data)
	return data[i], i
}
