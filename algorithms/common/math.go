package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions shared by the fractal estimators and the
// classification pipeline, built on gonum for robustness

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation (n-1 denominator)
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.StdDev(data, nil)
}

// PopStdDev calculates the population standard deviation (n denominator).
// The adaptive thresholds and the classifier's sub-window spread both use
// the population flavor.
func PopStdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.PopStdDev(data, nil)
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// LinearFit performs an ordinary least-squares degree-1 fit of y against x
// and returns the intercept and slope, using gonum's LinearRegression.
func LinearFit(x, y []float64) (intercept, slope float64) {
	if len(x) != len(y) || len(x) < 2 {
		return 0.0, 0.0
	}
	return stat.LinearRegression(x, y, nil, false)
}

// Slope returns only the slope of the least-squares line through (x, y)
func Slope(x, y []float64) float64 {
	_, slope := LinearFit(x, y)
	return slope
}

// MinMax returns the smallest and largest values in data
func MinMax(data []float64) (minVal, maxVal float64) {
	if len(data) == 0 {
		return 0.0, 0.0
	}
	return floats.Min(data), floats.Max(data)
}

// AllEqual reports whether every value in data equals the first one.
// Constant sub-signals are the degenerate case for both estimators.
func AllEqual(data []float64) bool {
	if len(data) == 0 {
		return true
	}
	first := data[0]
	for _, v := range data[1:] {
		if v != first {
			return false
		}
	}
	return true
}
