package analysis

import (
	"strconv"
)

// Signal is an immutable buffer of audio samples plus its sample rate.
// The pipeline never mutates it after construction.
type Signal struct {
	Samples    []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
}

// Duration returns the signal length in seconds
func (s *Signal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / float64(s.SampleRate)
}

// Clip returns a signal capped at maxDuration seconds. The underlying
// sample buffer is shared, not copied.
func (s *Signal) Clip(maxDuration float64) *Signal {
	maxSamples := int(maxDuration * float64(s.SampleRate))
	if maxSamples <= 0 || maxSamples >= len(s.Samples) {
		return s
	}
	return &Signal{Samples: s.Samples[:maxSamples], SampleRate: s.SampleRate}
}

// WindowSpec identifies one configured analysis window
type WindowSpec struct {
	Size    float64 `json:"size"`    // Window duration in seconds
	Samples int     `json:"samples"` // Window length in samples
}

// Label renders the window size the way result columns name it, e.g. "1s"
// or "1.5s"
func (w WindowSpec) Label() string {
	return strconv.FormatFloat(w.Size, 'g', -1, 64) + "s"
}

// FeatureSeries holds the per-window estimator outputs for one WindowSpec,
// ordered by ascending window offset
type FeatureSeries struct {
	Spec WindowSpec `json:"spec"`
	HFD  []float64  `json:"hfd"`
	DFA  []float64  `json:"dfa"`
}

// Len returns the number of window positions in the series
func (fs *FeatureSeries) Len() int {
	return min(len(fs.HFD), len(fs.DFA))
}

// Thresholds are the adaptive decision levels derived from the pooled
// feature distribution. Immutable once computed.
type Thresholds struct {
	HFD float64 `json:"hfd"`
	DFA float64 `json:"dfa"`
}

// SegmentSummary describes one of the three retroactive time ranges.
// MeanHFD and MeanDFA align with the run's window-size ordering. A range
// no timestamp fell into reports SampleCount 0 with NaN means rather than
// failing the run.
type SegmentSummary struct {
	Start       float64   `json:"start"`
	End         float64   `json:"end"`
	SampleCount int       `json:"sample_count"`
	MeanHFD     []float64 `json:"mean_hfd"`
	MeanDFA     []float64 `json:"mean_dfa"`
	AIFraction  float64   `json:"ai_fraction"`
}

// Result is the complete outcome of one pipeline run. Time, every
// FeatureSeries, and Classifications are all truncated to the same
// MinLength before the result is assembled.
type Result struct {
	Time            []float64        `json:"time"`
	Series          []FeatureSeries  `json:"series"`
	Thresholds      Thresholds       `json:"thresholds"`
	Classifications []bool           `json:"classifications"`
	MinLength       int              `json:"min_length"`
	Segments        []SegmentSummary `json:"segments"`

	// Overall verdict over the whole classified timeline
	AIFraction float64 `json:"ai_fraction"`
	Verdict    string  `json:"verdict"`
	Confidence float64 `json:"confidence"`
}

// WindowLabels returns the column labels for the run's window sizes, in
// series order
func (r *Result) WindowLabels() []string {
	labels := make([]string, len(r.Series))
	for i, s := range r.Series {
		labels[i] = s.Spec.Label()
	}
	return labels
}
