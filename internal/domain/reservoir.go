package domain

import (
	"errors"
	"fmt"
)

// ReservoirParams configures the water-balance model driving the carrying
// capacity. Defaults were fitted for the surveillance study sites.
type ReservoirParams struct {
	Kmax     float64 // carrying-capacity ceiling
	Hmax     float64 // reservoir capacity, mm
	Humidity float64 // relative air humidity, percent
	Lambda   float64 // evaporation coefficient
}

// DefaultReservoirParams returns the fitted study parameters.
func DefaultReservoirParams() ReservoirParams {
	return ReservoirParams{
		Kmax:     212,
		Hmax:     24,
		Humidity: 85,
		Lambda:   3.9e-5,
	}
}

// ErrReservoirCapacity reports a non-positive Hmax, which would make the
// capacity formula divide by zero. Configuration error, not recoverable.
var ErrReservoirCapacity = errors.New("reservoir: Hmax must be positive")

// Validate rejects parameter sets the model formulas are undefined for.
func (p ReservoirParams) Validate() error {
	if p.Hmax <= 0 {
		return fmt.Errorf("%w (got %g)", ErrReservoirCapacity, p.Hmax)
	}
	return nil
}

// Evaporation returns the modeled daily water loss at the given temperature:
// lambda * (25 + T)^2 * (100 - Hum).
func (p ReservoirParams) Evaporation(temp float64) float64 {
	return p.Lambda * (25 + temp) * (25 + temp) * (100 - p.Humidity)
}

// ComputeCapacity runs the reservoir recurrence over the sample days and
// returns the carrying capacity K aligned with days.
//
// The water level starts empty and each step adds the previous day's
// rainfall and removes the previous day's evaporation, clamped to
// [0, Hmax] before the next step consumes it:
//
//	H[0] = 0
//	H[i] = clamp(H[i-1] + P(days[i-1]) - Evap(days[i-1]), 0, Hmax)
//	K[i] = Kmax * H[i] / Hmax + 1
func (p ReservoirParams) ComputeCapacity(days []int, temperature, pluviosity Interpolant) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, errors.New("reservoir: no sample days")
	}

	h := make([]float64, len(days))
	for i := 1; i < len(days); i++ {
		prev := float64(days[i-1])
		h[i] = h[i-1] + pluviosity(prev) - p.Evaporation(temperature(prev))
		if h[i] > p.Hmax {
			h[i] = p.Hmax
		}
		if h[i] < 0 {
			h[i] = 0
		}
	}

	k := make([]float64, len(days))
	for i := range h {
		k[i] = p.Kmax*h[i]/p.Hmax + 1
	}
	return k, nil
}

// CapacityCurve computes the capacity series and wraps it in an Interpolant
// so K(t) can be queried at arbitrary real-valued days, extrapolating past
// both ends of the sampled range.
func (p ReservoirParams) CapacityCurve(days []int, temperature, pluviosity Interpolant) (Interpolant, error) {
	k, err := p.ComputeCapacity(days, temperature, pluviosity)
	if err != nil {
		return nil, err
	}
	return NewDaySeries(days, k)
}
