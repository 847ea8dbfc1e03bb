package column

import (
	"math"
	"slices"

	"github.com/arloliu/fame/internal/pool"
)

// Mean returns the arithmetic mean, or null for an empty slice.
func Mean(values []float64) Float {
	if len(values) == 0 {
		return Null()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return Some(sum / float64(len(values)))
}

// StandardDeviation returns the standard deviation with ddof delta degrees of
// freedom. It is null when len(values) <= ddof.
func StandardDeviation(values []float64, ddof int) Float {
	n := len(values)
	if n == 0 || n <= ddof {
		return Null()
	}
	mean := Mean(values).Value
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}

	return Some(math.Sqrt(ss / float64(n-ddof)))
}

// Median returns the median of the valid cells, or null if there are none.
func Median(values []Float) Float {
	valid, release := compact(values)
	defer release()
	if len(valid) == 0 {
		return Null()
	}
	slices.Sort(valid)
	mid := len(valid) / 2
	if len(valid)%2 == 1 {
		return Some(valid[mid])
	}

	return Some((valid[mid-1] + valid[mid]) / 2)
}

// Min returns the smallest valid cell, or null if there are none.
func Min(values []Float) Float {
	valid, release := compact(values)
	defer release()
	if len(valid) == 0 {
		return Null()
	}

	return Some(slices.Min(valid))
}

// Max returns the largest valid cell, or null if there are none.
func Max(values []Float) Float {
	valid, release := compact(values)
	defer release()
	if len(valid) == 0 {
		return Null()
	}

	return Some(slices.Max(valid))
}

// compact copies the valid, non-NaN cells into a pooled scratch slice.
func compact(values []Float) ([]float64, func()) {
	scratch, release := pool.GetFloat64Slice(len(values))
	n := 0
	for _, v := range values {
		if v.Valid && !math.IsNaN(v.Value) {
			scratch[n] = v.Value
			n++
		}
	}

	return scratch[:n], release
}
