package fractal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-fractal/algorithms/synth"
)

func TestDFAWhiteNoiseExponent(t *testing.T) {
	// Uncorrelated noise has a scaling exponent near 0.5
	noise := synth.WhiteNoise(4000, 11)

	exponent, err := NewDFA().Compute(noise)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, exponent, 0.15)
}

func TestDFARecoversHurstExponent(t *testing.T) {
	// Power-law noise synthesized with a target Hurst exponent should
	// come back within a tolerance band of that exponent
	dfa := NewDFA()

	persistent := synth.PowerLawNoise(8000, 0.8, 21)
	exponent, err := dfa.Compute(persistent)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, exponent, 0.2)

	antiPersistent := synth.PowerLawNoise(8000, 0.3, 21)
	low, err := dfa.Compute(antiPersistent)
	require.NoError(t, err)

	white := synth.WhiteNoise(8000, 21)
	mid, err := dfa.Compute(white)
	require.NoError(t, err)

	// Ordering must hold even where absolute recovery is biased
	assert.Less(t, low, mid)
	assert.Less(t, mid, exponent)
}

func TestDFAConstantSignalIsDegenerate(t *testing.T) {
	constant := make([]float64, 1000)

	_, err := NewDFA().Compute(constant)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDegenerateSignal)

	var degenerate *DegenerateSignalError
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, "dfa", degenerate.Estimator)
}

func TestDFACollapsedScaleRangeIsDegenerate(t *testing.T) {
	// With defaults the top scale is min(100, N/4); at N=24 only one
	// scale survives, which cannot feed a regression
	_, err := NewDFA().Compute(synth.WhiteNoise(24, 1))
	assert.ErrorIs(t, err, ErrDegenerateSignal)
}

func TestDFAMinScaleTooSmall(t *testing.T) {
	dfa := NewDFAWithParams(DFAParams{MinScale: 1, MaxScale: 50})
	_, err := dfa.Compute(synth.WhiteNoise(1000, 1))
	assert.ErrorIs(t, err, ErrDegenerateSignal)
}

func TestDFADeterminism(t *testing.T) {
	series := synth.WhiteNoise(2000, 5)
	dfa := NewDFA()

	first, err := dfa.Compute(series)
	require.NoError(t, err)
	second, err := dfa.Compute(series)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
