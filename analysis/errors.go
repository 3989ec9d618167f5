package analysis

import (
	"errors"
	"fmt"
)

// ErrInputTooShort reports a signal shorter than the minimum the smallest
// configured window (or the classifier's smoothing window) requires
var ErrInputTooShort = errors.New("input signal too short for configured windows")

// MisalignedSeriesError reports a post-hoc invariant violation: the
// per-window-size series could not be reconciled to a common length. This
// indicates a configuration bug, never normal data.
type MisalignedSeriesError struct {
	Detail string
}

func (e *MisalignedSeriesError) Error() string {
	return fmt.Sprintf("misaligned feature series: %s", e.Detail)
}

// WindowError wraps an estimator failure with the window it occurred in.
// Any single window failure is fatal to the whole run; partially populated
// series are never returned.
type WindowError struct {
	WindowSize float64 // seconds
	Offset     int     // samples
	Err        error
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("window %gs at sample %d: %v", e.WindowSize, e.Offset, e.Err)
}

func (e *WindowError) Unwrap() error {
	return e.Err
}
