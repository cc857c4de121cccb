package domain

import (
	"errors"
	"fmt"
)

// Interpolant evaluates a continuous curve at an arbitrary day index.
type Interpolant func(day float64) float64

var (
	// ErrSeriesLengthMismatch reports day and value slices of different lengths.
	ErrSeriesLengthMismatch = errors.New("series: day and value lengths differ")

	// ErrSeriesTooShort reports a series with fewer than two samples.
	ErrSeriesTooShort = errors.New("series: at least two samples required")

	// ErrSeriesNotIncreasing reports day indices that are not strictly increasing.
	ErrSeriesNotIncreasing = errors.New("series: day indices must be strictly increasing")
)

// NewInterpolant builds a piecewise-linear interpolant over (days[i],
// values[i]). Queries between samples interpolate linearly; queries outside
// the sampled range extrapolate along the slope of the nearest segment, so
// the curve stays evaluable for any real day index. Malformed input is
// rejected here rather than surfacing later as a wrong interpolation.
func NewInterpolant(days []float64, values []float64) (Interpolant, error) {
	if len(days) != len(values) {
		return nil, fmt.Errorf("%w: %d days, %d values", ErrSeriesLengthMismatch, len(days), len(values))
	}
	if len(days) < 2 {
		return nil, ErrSeriesTooShort
	}
	for i := 1; i < len(days); i++ {
		if days[i] <= days[i-1] {
			return nil, fmt.Errorf("%w: days[%d]=%g, days[%d]=%g", ErrSeriesNotIncreasing, i-1, days[i-1], i, days[i])
		}
	}

	// Copy so later mutation of the caller's slices cannot skew the curve.
	xs := append([]float64(nil), days...)
	ys := append([]float64(nil), values...)

	return func(day float64) float64 {
		// Pick the segment whose left endpoint is the last sample <= day.
		// Out-of-range queries reuse the first or last segment, which is
		// exactly the boundary extrapolation.
		lo := 0
		hi := len(xs) - 1
		for hi-lo > 1 {
			mid := (lo + hi) / 2
			if xs[mid] <= day {
				lo = mid
			} else {
				hi = mid
			}
		}
		slope := (ys[hi] - ys[lo]) / (xs[hi] - xs[lo])
		return ys[lo] + slope*(day-xs[lo])
	}, nil
}

// NewDaySeries builds an interpolant over integer day indices. Convenience
// wrapper for the CSV loaders, which index samples by period day.
func NewDaySeries(days []int, values []float64) (Interpolant, error) {
	xs := make([]float64, len(days))
	for i, d := range days {
		xs[i] = float64(d)
	}
	return NewInterpolant(xs, values)
}
