package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-fractal/analysis/config"
)

// constantSeries builds a FeatureSeries with flat HFD/DFA values so the
// sub-window spread is exactly zero
func constantSeries(size float64, n int, hfd, dfa float64) FeatureSeries {
	s := FeatureSeries{Spec: WindowSpec{Size: size, Samples: int(size * 1000)}}
	for i := 0; i < n; i++ {
		s.HFD = append(s.HFD, hfd)
		s.DFA = append(s.DFA, dfa)
	}
	return s
}

func TestClassifyLengthInvariant(t *testing.T) {
	classifier := NewSegmentClassifier(config.Default())
	series := []FeatureSeries{
		constantSeries(1, 12, 1.0, 0.5),
		constantSeries(3, 8, 1.0, 0.5), // minLength = 8
	}

	classifications, err := classifier.Classify(series, Thresholds{HFD: 2.0, DFA: 1.0})
	require.NoError(t, err)

	// len == minLength after padding, always
	assert.Len(t, classifications, 8)
}

func TestClassifyAllBelowThresholds(t *testing.T) {
	classifier := NewSegmentClassifier(config.Default())
	series := []FeatureSeries{constantSeries(1, 10, 1.0, 0.5)}

	classifications, err := classifier.Classify(series, Thresholds{HFD: 2.0, DFA: 1.0})
	require.NoError(t, err)

	for _, c := range classifications {
		assert.False(t, c)
	}
}

func TestClassifyHFDFlagAloneDecides(t *testing.T) {
	// With weights 0.7/0.3 and the literal arithmetic, the HFD flag alone
	// crosses 0.5 while the DFA flag alone does not
	classifier := NewSegmentClassifier(config.Default())
	thresholds := Thresholds{HFD: 2.0, DFA: 1.0}

	hfdOnly := []FeatureSeries{constantSeries(1, 10, 2.5, 0.5)}
	classifications, err := classifier.Classify(hfdOnly, thresholds)
	require.NoError(t, err)
	for _, c := range classifications {
		assert.True(t, c)
	}

	dfaOnly := []FeatureSeries{constantSeries(1, 10, 1.0, 1.5)}
	classifications, err = classifier.Classify(dfaOnly, thresholds)
	require.NoError(t, err)
	for _, c := range classifications {
		assert.False(t, c)
	}
}

func TestClassifySpreadTripsFlag(t *testing.T) {
	// Values stay below the threshold but alternate hard enough that the
	// rolling spread exceeds the HFD variability limit
	classifier := NewSegmentClassifier(config.Default())
	s := FeatureSeries{Spec: WindowSpec{Size: 1, Samples: 1000}}
	for i := 0; i < 10; i++ {
		v := 1.0
		if i%2 == 0 {
			v = 1.5
		}
		s.HFD = append(s.HFD, v)
		s.DFA = append(s.DFA, 0.5)
	}

	classifications, err := classifier.Classify([]FeatureSeries{s}, Thresholds{HFD: 5.0, DFA: 5.0})
	require.NoError(t, err)
	for _, c := range classifications {
		assert.True(t, c)
	}
}

func TestClassifyTailPadding(t *testing.T) {
	// 9 steps with a rolling window of 5 yields 5 computed decisions;
	// the last one is repeated 4 times. Build a series whose final
	// rolling window flips the decision to true and check the tail.
	classifier := NewSegmentClassifier(config.Default())
	s := FeatureSeries{Spec: WindowSpec{Size: 1, Samples: 1000}}
	hfd := []float64{1, 1, 1, 1, 1, 1, 1, 1, 9}
	for _, v := range hfd {
		s.HFD = append(s.HFD, v)
		s.DFA = append(s.DFA, 0.5)
	}

	classifications, err := classifier.Classify([]FeatureSeries{s}, Thresholds{HFD: 2.0, DFA: 1.0})
	require.NoError(t, err)
	require.Len(t, classifications, 9)

	// Only the window [4,9) sees the spike; decisions 0-3 stay false and
	// the padded tail repeats decision 4
	assert.Equal(t, []bool{false, false, false, false, true, true, true, true, true}, classifications)
}

func TestClassifyTooFewSteps(t *testing.T) {
	classifier := NewSegmentClassifier(config.Default())
	series := []FeatureSeries{constantSeries(1, 4, 1.0, 0.5)} // below the 5-step window

	_, err := classifier.Classify(series, Thresholds{HFD: 2.0, DFA: 1.0})
	assert.ErrorIs(t, err, ErrInputTooShort)
}

func TestClassifyNoSeries(t *testing.T) {
	classifier := NewSegmentClassifier(config.Default())
	_, err := classifier.Classify(nil, Thresholds{})

	var misaligned *MisalignedSeriesError
	assert.ErrorAs(t, err, &misaligned)
}
