package fractal

import (
	"errors"
	"fmt"
)

// ErrDegenerateSignal is the sentinel for signals whose statistics cannot
// feed the log-log regression (constant sub-signals, collapsed scale
// ranges). Both estimators wrap it so callers can match with errors.Is.
var ErrDegenerateSignal = errors.New("degenerate signal")

// DegenerateSignalError reports which estimator rejected the series and why
type DegenerateSignalError struct {
	Estimator string
	Reason    string
}

func (e *DegenerateSignalError) Error() string {
	return fmt.Sprintf("%s: degenerate signal: %s", e.Estimator, e.Reason)
}

func (e *DegenerateSignalError) Unwrap() error {
	return ErrDegenerateSignal
}
