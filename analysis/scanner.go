package analysis

import (
	"runtime"
	"sync"

	"github.com/RyanBlaney/sonido-fractal/algorithms/fractal"
	"github.com/RyanBlaney/sonido-fractal/analysis/config"
	"github.com/RyanBlaney/sonido-fractal/logging"
)

// WindowScanner slides fixed-size windows over a signal and computes both
// fractal descriptors per window position.
//
// Every configured window size shares one step grid: 10% of the smallest
// window duration, regardless of each window's own length. Series for
// different sizes therefore differ in length, and downstream consumers
// always intersect to the shortest common length before combining them.
//
// Window positions are independent, so the scan fans out across a bounded
// worker pool; results are collected into preallocated index slots, which
// keeps the output ordered by ascending window offset no matter which
// worker finishes first.
type WindowScanner struct {
	cfg     *config.Config
	higuchi *fractal.Higuchi
	dfa     *fractal.DFA
	logger  logging.Logger
}

// NewWindowScanner creates a scanner for the given configuration
func NewWindowScanner(cfg *config.Config) *WindowScanner {
	return &WindowScanner{
		cfg: cfg,
		higuchi: fractal.NewHiguchiWithParams(fractal.HiguchiParams{
			KMax: cfg.KMax,
		}),
		dfa: fractal.NewDFAWithParams(fractal.DFAParams{
			MinScale: cfg.DFAMinScale,
			MaxScale: cfg.DFAMaxScale,
		}),
		logger: logging.WithFields(logging.Fields{
			"component": "window_scanner",
		}),
	}
}

// Scan computes the shared time axis and one FeatureSeries per configured
// window size, smallest first. The time axis comes from the smallest
// (reference) window's grid only.
func (ws *WindowScanner) Scan(signal *Signal) ([]float64, []FeatureSeries, error) {
	sr := signal.SampleRate
	step := int(0.1 * ws.cfg.ReferenceWindowSize() * float64(sr))
	if step < 1 {
		return nil, nil, &MisalignedSeriesError{Detail: "step grid collapsed to zero samples"}
	}

	sizes := ws.cfg.SortedWindowSizes()

	logger := ws.logger.WithFields(logging.Fields{
		"function":     "Scan",
		"sample_rate":  sr,
		"samples":      len(signal.Samples),
		"step_samples": step,
	})
	logger.Debug("Starting window scan")

	var timeAxis []float64
	series := make([]FeatureSeries, 0, len(sizes))

	for i, size := range sizes {
		spec := WindowSpec{Size: size, Samples: int(size * float64(sr))}

		positions := 0
		if spec.Samples <= len(signal.Samples) {
			positions = (len(signal.Samples)-spec.Samples)/step + 1
		}
		if i == 0 && positions == 0 {
			return nil, nil, ErrInputTooShort
		}

		hfd, dfa, err := ws.scanSpec(signal.Samples, spec, step, positions)
		if err != nil {
			logger.Error(err, "Window scan failed", logging.Fields{
				"window_size": size,
			})
			return nil, nil, err
		}

		// Only the reference window contributes the shared time axis
		if i == 0 {
			timeAxis = make([]float64, positions)
			for p := range timeAxis {
				timeAxis[p] = float64(p*step) / float64(sr)
			}
		}

		series = append(series, FeatureSeries{Spec: spec, HFD: hfd, DFA: dfa})

		logger.Debug("Window size scanned", logging.Fields{
			"window_size": size,
			"positions":   positions,
		})
	}

	return timeAxis, series, nil
}

// scanSpec runs both estimators at every window position of one spec
func (ws *WindowScanner) scanSpec(samples []float64, spec WindowSpec, step, positions int) ([]float64, []float64, error) {
	hfdVals := make([]float64, positions)
	dfaVals := make([]float64, positions)
	errs := make([]error, positions)

	workers := ws.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(positions, 1))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				offset := idx * step
				window := samples[offset : offset+spec.Samples]

				h, err := ws.higuchi.Compute(window)
				if err != nil {
					errs[idx] = &WindowError{WindowSize: spec.Size, Offset: offset, Err: err}
					continue
				}
				d, err := ws.dfa.Compute(window)
				if err != nil {
					errs[idx] = &WindowError{WindowSize: spec.Size, Offset: offset, Err: err}
					continue
				}

				hfdVals[idx] = h
				dfaVals[idx] = d
			}
		}()
	}

	for idx := 0; idx < positions; idx++ {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	// Surface the earliest failing window so error reporting stays
	// deterministic regardless of worker scheduling
	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}

	return hfdVals, dfaVals, nil
}
