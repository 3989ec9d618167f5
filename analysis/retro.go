package analysis

import (
	"math"
)

// RetroactiveAggregator partitions the classified timeline into three
// contiguous equal-duration segments and summarizes each: mean HFD and DFA
// per window size plus the fraction of steps labeled AI.
//
// The ranges are [0,d), [d,2d), [2d,total] with d = total/3; the last
// range is closed at both ends so every timestamp falls in exactly one
// range.
type RetroactiveAggregator struct{}

// NewRetroactiveAggregator creates an aggregator
func NewRetroactiveAggregator() *RetroactiveAggregator {
	return &RetroactiveAggregator{}
}

// Aggregate summarizes the three retroactive segments. All inputs must
// already be truncated to a common length; time, each series, and the
// classification sequence are intersected to their shortest length before
// any index selection.
func (ra *RetroactiveAggregator) Aggregate(timeAxis []float64, series []FeatureSeries, classifications []bool) ([]SegmentSummary, error) {
	minLength := min(len(timeAxis), len(classifications))
	for i := range series {
		minLength = min(minLength, series[i].Len())
	}
	if minLength == 0 {
		return nil, &MisalignedSeriesError{Detail: "empty timeline"}
	}

	totalDuration := timeAxis[minLength-1]
	segmentDuration := totalDuration / 3.0

	bounds := [3][2]float64{
		{0, segmentDuration},
		{segmentDuration, 2 * segmentDuration},
		{2 * segmentDuration, totalDuration},
	}

	summaries := make([]SegmentSummary, 0, 3)

	for seg, b := range bounds {
		start, end := b[0], b[1]
		closedEnd := seg == 2

		var indices []int
		for i := 0; i < minLength; i++ {
			t := timeAxis[i]
			if t >= start && (t < end || (closedEnd && t <= end)) {
				indices = append(indices, i)
			}
		}

		summary := SegmentSummary{
			Start:       start,
			End:         end,
			SampleCount: len(indices),
			MeanHFD:     make([]float64, len(series)),
			MeanDFA:     make([]float64, len(series)),
		}

		if len(indices) == 0 {
			// Empty range: reported as missing, never raised
			for s := range series {
				summary.MeanHFD[s] = math.NaN()
				summary.MeanDFA[s] = math.NaN()
			}
			summary.AIFraction = math.NaN()
			summaries = append(summaries, summary)
			continue
		}

		for s := range series {
			hfdSum, dfaSum := 0.0, 0.0
			for _, i := range indices {
				hfdSum += series[s].HFD[i]
				dfaSum += series[s].DFA[i]
			}
			summary.MeanHFD[s] = hfdSum / float64(len(indices))
			summary.MeanDFA[s] = dfaSum / float64(len(indices))
		}

		aiCount := 0
		for _, i := range indices {
			if classifications[i] {
				aiCount++
			}
		}
		summary.AIFraction = float64(aiCount) / float64(len(indices))

		summaries = append(summaries, summary)
	}

	return summaries, nil
}
