package analysis

import (
	"fmt"

	"github.com/RyanBlaney/sonido-fractal/analysis/config"
	"github.com/RyanBlaney/sonido-fractal/logging"
)

// Analyzer runs the full fractal voice analysis pipeline over a signal:
// window scan -> adaptive thresholds -> smoothed classification ->
// retroactive segment summaries.
//
// A run is a deterministic single-pass batch computation: identical input
// and configuration produce identical output, and any stage failure aborts
// the whole run with no partial result.
type Analyzer struct {
	cfg        *config.Config
	scanner    *WindowScanner
	calibrator *ThresholdCalibrator
	classifier *SegmentClassifier
	aggregator *RetroactiveAggregator
	logger     logging.Logger
}

// NewAnalyzer creates an analyzer for the given configuration; nil means
// defaults. The configuration is validated once here.
func NewAnalyzer(cfg *config.Config) (*Analyzer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}

	return &Analyzer{
		cfg:        cfg,
		scanner:    NewWindowScanner(cfg),
		calibrator: NewThresholdCalibrator(cfg.ThresholdSigma),
		classifier: NewSegmentClassifier(cfg),
		aggregator: NewRetroactiveAggregator(),
		logger: logging.WithFields(logging.Fields{
			"component": "analyzer",
		}),
	}, nil
}

// Config returns the analyzer's configuration
func (a *Analyzer) Config() *config.Config {
	return a.cfg
}

// Analyze runs the pipeline over the signal and returns the assembled
// result. The signal is clipped to the configured duration cap first; the
// analyzer never performs I/O.
func (a *Analyzer) Analyze(signal *Signal) (*Result, error) {
	if signal == nil || len(signal.Samples) == 0 {
		return nil, fmt.Errorf("%w: empty signal", ErrInputTooShort)
	}
	if signal.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive: %d", signal.SampleRate)
	}

	signal = signal.Clip(a.cfg.MaxDuration)

	logger := a.logger.WithFields(logging.Fields{
		"function":    "Analyze",
		"sample_rate": signal.SampleRate,
		"duration":    signal.Duration(),
	})
	logger.Debug("Starting analysis run")

	timeAxis, series, err := a.scanner.Scan(signal)
	if err != nil {
		return nil, err
	}

	thresholds, err := a.calibrator.Calibrate(series)
	if err != nil {
		return nil, err
	}
	logger.Debug("Calibrated adaptive thresholds", logging.Fields{
		"hfd_threshold": thresholds.HFD,
		"dfa_threshold": thresholds.DFA,
	})

	classifications, err := a.classifier.Classify(series, thresholds)
	if err != nil {
		return nil, err
	}

	// Intersect everything to the shortest common length before any
	// combination
	minLength := min(len(timeAxis), len(classifications))
	for i := range series {
		minLength = min(minLength, series[i].Len())
	}

	timeAxis = timeAxis[:minLength]
	classifications = classifications[:minLength]
	truncated := make([]FeatureSeries, len(series))
	for i := range series {
		truncated[i] = FeatureSeries{
			Spec: series[i].Spec,
			HFD:  series[i].HFD[:minLength],
			DFA:  series[i].DFA[:minLength],
		}
	}

	if err := checkAligned(timeAxis, truncated, minLength); err != nil {
		return nil, err
	}

	segments, err := a.aggregator.Aggregate(timeAxis, truncated, classifications)
	if err != nil {
		return nil, err
	}

	aiCount := 0
	for _, c := range classifications {
		if c {
			aiCount++
		}
	}
	aiFraction := float64(aiCount) / float64(minLength)

	verdict := "Human"
	if aiFraction > 0.5 {
		verdict = "AI-generated"
	}
	confidence := max(aiFraction, 1.0-aiFraction)

	logger.Debug("Analysis run completed", logging.Fields{
		"time_steps":  minLength,
		"ai_fraction": aiFraction,
		"verdict":     verdict,
	})

	return &Result{
		Time:            timeAxis,
		Series:          truncated,
		Thresholds:      thresholds,
		Classifications: classifications,
		MinLength:       minLength,
		Segments:        segments,
		AIFraction:      aiFraction,
		Verdict:         verdict,
		Confidence:      confidence,
	}, nil
}

// checkAligned verifies the combination invariants: every series matches
// minLength and the shared time axis strictly increases
func checkAligned(timeAxis []float64, series []FeatureSeries, minLength int) error {
	for i := range series {
		if len(series[i].HFD) != minLength || len(series[i].DFA) != minLength {
			return &MisalignedSeriesError{
				Detail: fmt.Sprintf("series %s has %d/%d values, want %d",
					series[i].Spec.Label(), len(series[i].HFD), len(series[i].DFA), minLength),
			}
		}
	}
	for i := 1; i < len(timeAxis); i++ {
		if timeAxis[i] <= timeAxis[i-1] {
			return &MisalignedSeriesError{
				Detail: fmt.Sprintf("time axis not strictly increasing at index %d", i),
			}
		}
	}
	return nil
}
