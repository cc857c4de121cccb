package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalCurve_PeakAtCenter(t *testing.T) {
	for _, r := range []float64{0.5, 2, 50} {
		f, err := NormalCurve(r, 27)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, f(27), 1e-12, "r=%g", r)
	}
}

func TestNormalCurve_SymmetricDecay(t *testing.T) {
	f, err := NormalCurve(2, 27)
	require.NoError(t, err)

	assert.InDelta(t, f(25), f(29), 1e-12)
	assert.Less(t, f(30), f(28))
	assert.Less(t, f(28), f(27))
}

func TestNormalCurve_ZeroSpread(t *testing.T) {
	_, err := NormalCurve(0, 27)
	assert.ErrorIs(t, err, ErrCurveSpread)
}

func TestPlateauCurve_Power(t *testing.T) {
	f, err := PlateauCurve(4, 27, PlateauPower)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, f(27), 1e-12)
	assert.Greater(t, f(28), 0.9)      // flat top near the center
	assert.Less(t, f(27+12), 1e-6)     // steep falloff well outside the window
}

func TestPlateauCurve_Smooth(t *testing.T) {
	f, err := PlateauCurve(4, 27, PlateauSmooth)
	require.NoError(t, err)

	// ~1 inside [mu-r, mu+r], ~0 well outside, 0.5 at the window edges
	// where one erf term crosses zero.
	assert.InDelta(t, 1.0, f(27), 1e-9)
	assert.InDelta(t, 1.0, f(25), 1e-6)
	assert.InDelta(t, 0.5, f(27+4), 1e-9)
	assert.InDelta(t, 0.5, f(27-4), 1e-9)
	assert.InDelta(t, 0.0, f(27+12), 1e-6)
	assert.InDelta(t, 0.0, f(27-12), 1e-6)
}

func TestPlateauCurve_InvalidSpread(t *testing.T) {
	for _, r := range []float64{0, -3} {
		_, err := PlateauCurve(r, 27, PlateauSmooth)
		assert.ErrorIs(t, err, ErrCurveSpread, "r=%g", r)
	}
}

func TestPlateauCurve_UnknownForm(t *testing.T) {
	_, err := PlateauCurve(4, 27, PlateauForm("triangular"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "triangular")
}

func TestPhiCurve_Presets(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		phi, err := PhiCurve(DefaultPhiParams())
		require.NoError(t, err)
		// erf(0) = 0 at the center.
		assert.InDelta(t, 0.3/1.2, phi(10), 1e-12)
	})
	t.Run("wide", func(t *testing.T) {
		phi, err := PhiCurve(WidePhiParams())
		require.NoError(t, err)
		assert.InDelta(t, 1.2/2.2, phi(10), 1e-12)
	})
}

func TestPhiCurve_NonDecreasing(t *testing.T) {
	phi, err := PhiCurve(DefaultPhiParams())
	require.NoError(t, err)

	prev := phi(-50)
	for v := -49.0; v <= 250; v++ {
		cur := phi(v)
		assert.GreaterOrEqual(t, cur, prev, "phi decreased at %g", v)
		prev = cur
	}
}

func TestPhiCurve_InvalidParams(t *testing.T) {
	t.Run("zero scale", func(t *testing.T) {
		_, err := PhiCurve(PhiParams{Center: 10, Scale: 0, Offset: 0.3, Normalizer: 1.2})
		assert.ErrorIs(t, err, ErrPhiScale)
	})
	t.Run("negative scale", func(t *testing.T) {
		_, err := PhiCurve(PhiParams{Center: 10, Scale: -1, Offset: 0.3, Normalizer: 1.2})
		assert.ErrorIs(t, err, ErrPhiScale)
	})
	t.Run("zero normalizer", func(t *testing.T) {
		_, err := PhiCurve(PhiParams{Center: 10, Scale: 40, Offset: 0.3, Normalizer: 0})
		assert.ErrorIs(t, err, ErrPhiNormalizer)
	})
}
