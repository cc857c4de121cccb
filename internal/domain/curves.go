package domain

import (
	"errors"
	"fmt"
	"math"
)

// Curve maps a scalar (temperature, rainfall, ...) to a weighting
// coefficient in or near [0, 1].
type Curve func(v float64) float64

var (
	// ErrCurveSpread reports a spread parameter the curve is undefined for.
	ErrCurveSpread = errors.New("curve: invalid spread parameter")

	// ErrPhiScale reports a non-positive phi scale.
	ErrPhiScale = errors.New("curve: phi scale must be positive")

	// ErrPhiNormalizer reports a zero phi normalizer.
	ErrPhiNormalizer = errors.New("curve: phi normalizer must be nonzero")
)

// NormalCurve returns a Gaussian bump centered at mu with spread controlled
// by r: exp(-(v-mu)^2 / (2r)). The peak value at mu is exactly 1. r must be
// nonzero; r=0 would divide by zero.
func NormalCurve(r, mu float64) (Curve, error) {
	if r == 0 {
		return nil, fmt.Errorf("%w: r must be nonzero", ErrCurveSpread)
	}
	return func(v float64) float64 {
		d := v - mu
		return math.Exp(-d * d / (2 * r))
	}, nil
}

// PlateauForm selects which of the two plateau shapes used across the study
// scripts a curve is built with. The forms are close inside [mu-r, mu+r]
// but not numerically interchangeable, so the choice is explicit.
type PlateauForm string

const (
	// PlateauPower is the steep power-law bump exp(-(v-mu)^8 / (2r)^5).
	PlateauPower PlateauForm = "power"

	// PlateauSmooth combines two saturating erf edges into a plateau with
	// smooth transitions: (erf(10*(v-(mu-r))/r) * erf(10*((mu+r)-v)/r) + 1) / 2.
	PlateauSmooth PlateauForm = "smooth"
)

// PlateauCurve returns a plateau-shaped weighting curve that is
// approximately 1 inside [mu-r, mu+r] and tapers toward 0 outside.
// r must be positive for both forms.
func PlateauCurve(r, mu float64, form PlateauForm) (Curve, error) {
	if r <= 0 {
		return nil, fmt.Errorf("%w: r must be positive", ErrCurveSpread)
	}
	switch form {
	case PlateauPower:
		denom := math.Pow(2*r, 5)
		return func(v float64) float64 {
			d := v - mu
			return math.Exp(-math.Pow(d, 8) / denom)
		}, nil
	case PlateauSmooth:
		return func(v float64) float64 {
			left := math.Erf(10 * (v - (mu - r)) / r)
			right := math.Erf(10 * ((mu + r) - v) / r)
			return (left*right + 1) / 2
		}, nil
	default:
		return nil, fmt.Errorf("curve: unknown plateau form %q", form)
	}
}

// PhiParams configures the saturating rainfall transform. Offset and
// Normalizer vary between study deployments, so they are configuration
// rather than constants.
type PhiParams struct {
	Center     float64
	Scale      float64
	Offset     float64
	Normalizer float64
}

// DefaultPhiParams returns the test-dataset parameterization:
// (erf((P-10)/40) + 0.3) / 1.2.
func DefaultPhiParams() PhiParams {
	return PhiParams{Center: 10, Scale: 40, Offset: 0.3, Normalizer: 1.2}
}

// WidePhiParams returns the alternative parameterization used by the
// historical-data scripts: (erf((P-10)/40) + 1.2) / 2.2.
func WidePhiParams() PhiParams {
	return PhiParams{Center: 10, Scale: 40, Offset: 1.2, Normalizer: 2.2}
}

// PhiCurve returns the sigmoid-like transform
// (erf((v-Center)/Scale) + Offset) / Normalizer. It is non-decreasing in v
// whenever Scale and Normalizer are positive, which Validate-style checks
// here enforce for Scale; a negative Normalizer flips the curve and is
// rejected only when zero, matching the deployed parameter sets.
func PhiCurve(p PhiParams) (Curve, error) {
	if p.Scale <= 0 {
		return nil, fmt.Errorf("%w (got %g)", ErrPhiScale, p.Scale)
	}
	if p.Normalizer == 0 {
		return nil, ErrPhiNormalizer
	}
	return func(v float64) float64 {
		return (math.Erf((v-p.Center)/p.Scale) + p.Offset) / p.Normalizer
	}, nil
}
