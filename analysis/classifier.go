package analysis

import (
	"fmt"

	"github.com/RyanBlaney/sonido-fractal/algorithms/common"
	"github.com/RyanBlaney/sonido-fractal/analysis/config"
)

// SegmentClassifier turns the feature series into a per-time-step boolean
// classification by pooling a rolling window of consecutive steps and
// applying a weighted indicator vote against the adaptive thresholds.
type SegmentClassifier struct {
	window         int
	hfdWeight      float64
	dfaWeight      float64
	hfdSpreadLimit float64
	dfaSpreadLimit float64
}

// NewSegmentClassifier creates a classifier from the run configuration
func NewSegmentClassifier(cfg *config.Config) *SegmentClassifier {
	return &SegmentClassifier{
		window:         cfg.SmoothingWindow,
		hfdWeight:      cfg.HFDWeight,
		dfaWeight:      cfg.DFAWeight,
		hfdSpreadLimit: cfg.HFDSpreadLimit,
		dfaSpreadLimit: cfg.DFASpreadLimit,
	}
}

// Classify produces one boolean per time step up to the shortest common
// series length. Each decision at step i pools steps [i, i+window):
// per-size means and spreads are averaged across sizes, each measure trips
// its flag when the averaged mean exceeds its threshold or the averaged
// spread exceeds its variability limit, and the flags combine through the
// weighted sum kept as literal arithmetic, not a boolean shortcut.
//
// The rolling window shortens the raw decision sequence by window-1 steps;
// the tail is padded by repeating the last computed value so the output
// length equals the input minLength.
func (sc *SegmentClassifier) Classify(series []FeatureSeries, thresholds Thresholds) ([]bool, error) {
	if len(series) == 0 {
		return nil, &MisalignedSeriesError{Detail: "no feature series to classify"}
	}

	minLength := series[0].Len()
	for i := range series[1:] {
		minLength = min(minLength, series[i+1].Len())
	}

	if minLength < sc.window {
		return nil, fmt.Errorf("%w: %d time steps, smoothing window needs %d",
			ErrInputTooShort, minLength, sc.window)
	}

	classifications := make([]bool, 0, minLength)

	hfdMeans := make([]float64, len(series))
	dfaMeans := make([]float64, len(series))
	hfdSpreads := make([]float64, len(series))
	dfaSpreads := make([]float64, len(series))

	for i := 0; i <= minLength-sc.window; i++ {
		for s := range series {
			hfdWin := series[s].HFD[i : i+sc.window]
			dfaWin := series[s].DFA[i : i+sc.window]

			hfdMeans[s] = common.Mean(hfdWin)
			dfaMeans[s] = common.Mean(dfaWin)
			hfdSpreads[s] = common.PopStdDev(hfdWin)
			dfaSpreads[s] = common.PopStdDev(dfaWin)
		}

		hfdAvg := common.Mean(hfdMeans)
		dfaAvg := common.Mean(dfaMeans)
		hfdVar := common.Mean(hfdSpreads)
		dfaVar := common.Mean(dfaSpreads)

		// Higher values and higher variability suggest a synthetic voice
		hfdFlag := 0.0
		if hfdAvg > thresholds.HFD || hfdVar > sc.hfdSpreadLimit {
			hfdFlag = 1.0
		}
		dfaFlag := 0.0
		if dfaAvg > thresholds.DFA || dfaVar > sc.dfaSpreadLimit {
			dfaFlag = 1.0
		}

		isAI := sc.hfdWeight*hfdFlag+sc.dfaWeight*dfaFlag > 0.5
		classifications = append(classifications, isAI)
	}

	// Pad to minLength with the last computed value
	last := classifications[len(classifications)-1]
	for len(classifications) < minLength {
		classifications = append(classifications, last)
	}

	return classifications, nil
}
