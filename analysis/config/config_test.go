package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero duration", func(c *Config) { c.MaxDuration = 0 }},
		{"zero kMax", func(c *Config) { c.KMax = 0 }},
		{"no window sizes", func(c *Config) { c.WindowSizes = nil }},
		{"negative window size", func(c *Config) { c.WindowSizes = []float64{1, -3} }},
		{"dfa min scale too small", func(c *Config) { c.DFAMinScale = 1 }},
		{"dfa scales inverted", func(c *Config) { c.DFAMaxScale = c.DFAMinScale }},
		{"zero smoothing window", func(c *Config) { c.SmoothingWindow = 0 }},
		{"negative weight", func(c *Config) { c.HFDWeight = -0.1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSortedWindowSizes(t *testing.T) {
	cfg := Default()
	cfg.WindowSizes = []float64{3, 0.5, 1}

	assert.Equal(t, []float64{0.5, 1, 3}, cfg.SortedWindowSizes())
	assert.Equal(t, 0.5, cfg.ReferenceWindowSize())

	// The configured slice is left untouched
	assert.Equal(t, []float64{3, 0.5, 1}, cfg.WindowSizes)
}
