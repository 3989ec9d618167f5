package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatePartitionCoverage(t *testing.T) {
	// 31 steps at 0.1 s: total duration 3.0 s, segment duration 1.0 s
	n := 31
	timeAxis := make([]float64, n)
	classifications := make([]bool, n)
	s := FeatureSeries{Spec: WindowSpec{Size: 1, Samples: 1000}}
	for i := 0; i < n; i++ {
		timeAxis[i] = 0.1 * float64(i)
		s.HFD = append(s.HFD, 1.0)
		s.DFA = append(s.DFA, 0.5)
	}

	summaries, err := NewRetroactiveAggregator().Aggregate(timeAxis, []FeatureSeries{s}, classifications)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	// The three ranges partition [0, total]: no gaps, no overlaps, and
	// every timestamp lands in exactly one range
	assert.Equal(t, 0.0, summaries[0].Start)
	assert.Equal(t, summaries[0].End, summaries[1].Start)
	assert.Equal(t, summaries[1].End, summaries[2].Start)
	assert.InDelta(t, 3.0, summaries[2].End, 1e-12)

	totalCount := 0
	for _, summary := range summaries {
		totalCount += summary.SampleCount
	}
	assert.Equal(t, n, totalCount)

	// The final timestamp belongs to the closed last range
	assert.Equal(t, 11, summaries[2].SampleCount)
}

func TestAggregateSegmentMeans(t *testing.T) {
	timeAxis := []float64{0, 1, 2, 3, 4, 5, 6}
	classifications := []bool{true, true, false, false, true, false, true}
	s := FeatureSeries{
		Spec: WindowSpec{Size: 1, Samples: 1000},
		HFD:  []float64{1, 2, 3, 4, 5, 6, 7},
		DFA:  []float64{7, 6, 5, 4, 3, 2, 1},
	}

	summaries, err := NewRetroactiveAggregator().Aggregate(timeAxis, []FeatureSeries{s}, classifications)
	require.NoError(t, err)

	// total 6, segment duration 2: [0,2) -> {0,1}, [2,4) -> {2,3},
	// [4,6] -> {4,5,6}
	assert.Equal(t, 2, summaries[0].SampleCount)
	assert.InDelta(t, 1.5, summaries[0].MeanHFD[0], 1e-12)
	assert.InDelta(t, 6.5, summaries[0].MeanDFA[0], 1e-12)
	assert.InDelta(t, 1.0, summaries[0].AIFraction, 1e-12)

	assert.Equal(t, 2, summaries[1].SampleCount)
	assert.InDelta(t, 3.5, summaries[1].MeanHFD[0], 1e-12)
	assert.InDelta(t, 0.0, summaries[1].AIFraction, 1e-12)

	assert.Equal(t, 3, summaries[2].SampleCount)
	assert.InDelta(t, 6.0, summaries[2].MeanHFD[0], 1e-12)
	assert.InDelta(t, 2.0/3.0, summaries[2].AIFraction, 1e-12)
}

func TestAggregateEmptyRangeReportedAsMissing(t *testing.T) {
	// A bunched time axis leaves the middle third with no timestamps;
	// the summary reports it as missing rather than failing the run
	timeAxis := []float64{0, 0.1, 0.2, 10}
	classifications := []bool{false, false, false, true}
	s := FeatureSeries{
		Spec: WindowSpec{Size: 1, Samples: 1000},
		HFD:  []float64{1, 1, 1, 1},
		DFA:  []float64{1, 1, 1, 1},
	}

	summaries, err := NewRetroactiveAggregator().Aggregate(timeAxis, []FeatureSeries{s}, classifications)
	require.NoError(t, err)

	assert.Equal(t, 3, summaries[0].SampleCount)
	assert.Equal(t, 0, summaries[1].SampleCount)
	assert.True(t, math.IsNaN(summaries[1].MeanHFD[0]))
	assert.True(t, math.IsNaN(summaries[1].AIFraction))
	assert.Equal(t, 1, summaries[2].SampleCount)
	assert.InDelta(t, 1.0, summaries[2].AIFraction, 1e-12)
}

func TestAggregateEmptyTimeline(t *testing.T) {
	_, err := NewRetroactiveAggregator().Aggregate(nil, nil, nil)

	var misaligned *MisalignedSeriesError
	assert.ErrorAs(t, err, &misaligned)
}
