package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 2.5, Mean([]float64{1, 2, 3, 4}))
	assert.Equal(t, 0.0, Mean(nil))
}

func TestPopStdDev(t *testing.T) {
	// Population flavor: denominator n, not n-1
	assert.InDelta(t, math.Sqrt(1.25), PopStdDev([]float64{1, 2, 3, 4}), 1e-12)
	assert.Equal(t, 0.0, PopStdDev([]float64{7, 7, 7}))
	assert.Equal(t, 0.0, PopStdDev(nil))
}

func TestStdDevSampleFlavor(t *testing.T) {
	assert.InDelta(t, math.Sqrt(5.0/3.0), StdDev([]float64{1, 2, 3, 4}), 1e-12)
	assert.Equal(t, 0.0, StdDev([]float64{1}))
}

func TestLinearFitExactLine(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 2*v + 1
	}

	intercept, slope := LinearFit(x, y)
	assert.InDelta(t, 1.0, intercept, 1e-12)
	assert.InDelta(t, 2.0, slope, 1e-12)
	assert.InDelta(t, 2.0, Slope(x, y), 1e-12)
}

func TestLinearFitDegenerateInput(t *testing.T) {
	intercept, slope := LinearFit([]float64{1}, []float64{2})
	assert.Equal(t, 0.0, intercept)
	assert.Equal(t, 0.0, slope)

	_, slope = LinearFit([]float64{1, 2}, []float64{1})
	assert.Equal(t, 0.0, slope)
}

func TestRMS(t *testing.T) {
	assert.InDelta(t, math.Sqrt(12.5), RMS([]float64{3, 4}), 1e-12)
	assert.Equal(t, 0.0, RMS(nil))
}

func TestMinMax(t *testing.T) {
	minVal, maxVal := MinMax([]float64{3, -1, 7, 2})
	assert.Equal(t, -1.0, minVal)
	assert.Equal(t, 7.0, maxVal)
}

func TestAllEqual(t *testing.T) {
	assert.True(t, AllEqual([]float64{5, 5, 5}))
	assert.True(t, AllEqual(nil))
	assert.False(t, AllEqual([]float64{5, 5, 4}))
}
