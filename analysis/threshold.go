package analysis

import (
	"github.com/RyanBlaney/sonido-fractal/algorithms/common"
)

// ThresholdCalibrator derives adaptive decision thresholds from the
// statistical distribution of all computed feature values. It is a
// one-shot, order-independent reduction over the pooled series; nothing
// persists across runs.
type ThresholdCalibrator struct {
	sigma float64
}

// NewThresholdCalibrator creates a calibrator that places each threshold
// sigma population standard deviations above the pooled mean
func NewThresholdCalibrator(sigma float64) *ThresholdCalibrator {
	return &ThresholdCalibrator{sigma: sigma}
}

// Calibrate pools every HFD and DFA value across all window sizes and
// returns mean + sigma*std per measure
func (tc *ThresholdCalibrator) Calibrate(series []FeatureSeries) (Thresholds, error) {
	total := 0
	for i := range series {
		total += len(series[i].HFD)
	}
	if total == 0 {
		return Thresholds{}, &MisalignedSeriesError{Detail: "no feature values to calibrate on"}
	}

	allHFD := make([]float64, 0, total)
	allDFA := make([]float64, 0, total)
	for i := range series {
		allHFD = append(allHFD, series[i].HFD...)
		allDFA = append(allDFA, series[i].DFA...)
	}

	return Thresholds{
		HFD: common.Mean(allHFD) + tc.sigma*common.PopStdDev(allHFD),
		DFA: common.Mean(allDFA) + tc.sigma*common.PopStdDev(allDFA),
	}, nil
}
