// Package config holds the per-run configuration for the fractal voice
// analysis pipeline. A Config is built once, validated, and passed
// explicitly through the pipeline; there is no process-wide mutable state.
package config

import (
	"fmt"
	"slices"
)

// Config configures a single analysis run
type Config struct {
	// MaxDuration caps how many seconds of audio are analyzed
	MaxDuration float64 `json:"max_duration"`

	// KMax is the maximum Higuchi curve reconstruction scale
	KMax int `json:"k_max"`

	// WindowSizes lists the analysis window durations in seconds. All
	// windows slide on a shared step grid of 10% of the smallest size.
	WindowSizes []float64 `json:"window_sizes"`

	// DFAMinScale and DFAMaxScale bound the DFA segment lengths in
	// samples; the upper bound is further capped at a quarter of each
	// window length.
	DFAMinScale int `json:"dfa_min_scale"`
	DFAMaxScale int `json:"dfa_max_scale"`

	// SmoothingWindow is the number of consecutive time steps the
	// classifier pools before deciding
	SmoothingWindow int `json:"smoothing_window"`

	// HFDWeight and DFAWeight combine the two indicator flags into the
	// weighted vote
	HFDWeight float64 `json:"hfd_weight"`
	DFAWeight float64 `json:"dfa_weight"`

	// HFDSpreadLimit and DFASpreadLimit are the sub-window variability
	// levels above which a flag trips regardless of the threshold
	HFDSpreadLimit float64 `json:"hfd_spread_limit"`
	DFASpreadLimit float64 `json:"dfa_spread_limit"`

	// ThresholdSigma scales the pooled standard deviation added to the
	// pooled mean when deriving the adaptive thresholds
	ThresholdSigma float64 `json:"threshold_sigma"`

	// Workers bounds the number of concurrent window scans; <= 0 means
	// one worker per CPU
	Workers int `json:"workers"`
}

// Default returns the reference configuration
func Default() *Config {
	return &Config{
		MaxDuration:     60.0,
		KMax:            10,
		WindowSizes:     []float64{1.0, 3.0},
		DFAMinScale:     5,
		DFAMaxScale:     100,
		SmoothingWindow: 5,
		HFDWeight:       0.7,
		DFAWeight:       0.3,
		HFDSpreadLimit:  0.1,
		DFASpreadLimit:  0.05,
		ThresholdSigma:  0.25,
		Workers:         0,
	}
}

// Validate checks the configuration for values the pipeline cannot run with
func (c *Config) Validate() error {
	if c.MaxDuration <= 0 {
		return fmt.Errorf("max duration must be positive: %v", c.MaxDuration)
	}
	if c.KMax < 1 {
		return fmt.Errorf("kMax must be at least 1: %d", c.KMax)
	}
	if len(c.WindowSizes) == 0 {
		return fmt.Errorf("at least one window size is required")
	}
	for _, size := range c.WindowSizes {
		if size <= 0 {
			return fmt.Errorf("window sizes must be positive: %v", size)
		}
	}
	if c.DFAMinScale < 2 {
		return fmt.Errorf("DFA minimum scale must be at least 2: %d", c.DFAMinScale)
	}
	if c.DFAMaxScale <= c.DFAMinScale {
		return fmt.Errorf("DFA maximum scale %d must exceed minimum scale %d", c.DFAMaxScale, c.DFAMinScale)
	}
	if c.SmoothingWindow < 1 {
		return fmt.Errorf("smoothing window must be at least 1: %d", c.SmoothingWindow)
	}
	if c.HFDWeight < 0 || c.DFAWeight < 0 {
		return fmt.Errorf("classifier weights must be non-negative")
	}
	return nil
}

// SortedWindowSizes returns the window sizes in ascending order. The
// pipeline fixes this total ordering at configuration time so pooled
// reductions iterate deterministically; the smallest size is the reference
// for the shared step grid and the time axis.
func (c *Config) SortedWindowSizes() []float64 {
	sorted := slices.Clone(c.WindowSizes)
	slices.Sort(sorted)
	return sorted
}

// ReferenceWindowSize returns the smallest configured window duration
func (c *Config) ReferenceWindowSize() float64 {
	return c.SortedWindowSizes()[0]
}
