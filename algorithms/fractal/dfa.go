package fractal

import (
	"math"

	"github.com/RyanBlaney/sonido-fractal/algorithms/common"
)

// DFAParams contains parameters for detrended fluctuation analysis
type DFAParams struct {
	MinScale int `json:"min_scale"` // Smallest segment length in samples
	MaxScale int `json:"max_scale"` // Upper bound on segment length, capped at N/4
}

// DFA implements detrended fluctuation analysis
//
// References:
// - Peng, C.K. et al. (1994). "Mosaic organization of DNA nucleotides"
// - Hardstone, R. et al. (2012). "Detrended fluctuation analysis: a
//   scale-free view on neuronal oscillations"
//
// The mean-centered series is integrated, partitioned into non-overlapping
// segments per scale, linearly detrended per segment, and the RMS residual
// averaged into F(s). The slope of log(s) vs log(F(s)) is the returned
// scaling exponent (a Hurst-like measure of long-range correlation).
//
// Scales run from MinScale up to but excluding min(MaxScale, N/4).
//
// Pure and stateless; safe to share across goroutines.
type DFA struct {
	params DFAParams
}

// NewDFA creates a DFA estimator with default parameters
func NewDFA() *DFA {
	return &DFA{
		params: DFAParams{
			MinScale: 5,
			MaxScale: 100,
		},
	}
}

// NewDFAWithParams creates a DFA estimator with custom parameters
func NewDFAWithParams(params DFAParams) *DFA {
	return &DFA{params: params}
}

// Compute returns the DFA scaling exponent of the series.
//
// When the scale range collapses to fewer than 2 usable scales, or a scale
// yields zero fluctuation (constant sub-signal), the log-log regression is
// undefined and a DegenerateSignalError is returned instead of NaN.
func (d *DFA) Compute(series []float64) (float64, error) {
	n := len(series)

	scaleTop := min(d.params.MaxScale, n/4)
	if scaleTop-d.params.MinScale < 2 {
		return 0, &DegenerateSignalError{Estimator: "dfa", Reason: "scale range collapsed to fewer than 2 scales"}
	}
	if d.params.MinScale < 2 {
		return 0, &DegenerateSignalError{Estimator: "dfa", Reason: "minimum scale must be at least 2"}
	}

	// Integrated profile of the mean-centered series
	mean := common.Mean(series)
	profile := make([]float64, n)
	cum := 0.0
	for i, v := range series {
		cum += v - mean
		profile[i] = cum
	}

	numScales := scaleTop - d.params.MinScale
	logScales := make([]float64, 0, numScales)
	logF := make([]float64, 0, numScales)

	for scale := d.params.MinScale; scale < scaleTop; scale++ {
		segments := n / scale

		t := make([]float64, scale)
		for i := range t {
			t[i] = float64(i)
		}

		fSum := 0.0
		for j := 0; j < segments; j++ {
			segment := profile[j*scale : (j+1)*scale]
			intercept, slope := common.LinearFit(t, segment)

			sumSq := 0.0
			for i, v := range segment {
				residual := v - (intercept + slope*t[i])
				sumSq += residual * residual
			}
			fSum += math.Sqrt(sumSq / float64(scale))
		}
		f := fSum / float64(segments)

		if f <= 0 {
			return 0, &DegenerateSignalError{Estimator: "dfa", Reason: "zero fluctuation (constant sub-signal)"}
		}

		logScales = append(logScales, math.Log(float64(scale)))
		logF = append(logF, math.Log(f))
	}

	return common.Slope(logScales, logF), nil
}

// ScaleRange returns the configured scale bounds
func (d *DFA) ScaleRange() (minScale, maxScale int) {
	return d.params.MinScale, d.params.MaxScale
}
