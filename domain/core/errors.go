package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error taxonomy for the analysis engine
var (
	// ErrInsufficientData signals that too few samples survived alignment
	// (or were supplied) for a statistically meaningful estimate.
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// ErrDegenerateSeries signals a zero-variance input where correlation
	// is mathematically undefined.
	ErrDegenerateSeries = errors.New("degenerate series: zero variance")

	// ErrInvalidParameter signals a configuration value outside its
	// recognized domain.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrAlignment signals that two timestamp grids cannot be reconciled
	// onto a common cadence.
	ErrAlignment = errors.New("timestamp grids cannot be reconciled")
)

// Error constructors with context

// NewInsufficientDataError reports the stage, the observed count, and the
// minimum required, so a calling service can render a precise diagnostic.
func NewInsufficientDataError(stage string, got, need int) error {
	return fmt.Errorf("%w: %s produced %d points, need at least %d", ErrInsufficientData, stage, got, need)
}

// NewDegenerateSeriesError names the zero-variance input within its stage.
func NewDegenerateSeriesError(stage, series string) error {
	return fmt.Errorf("%w: %s input %q has no variation", ErrDegenerateSeries, stage, series)
}

// NewInvalidParameterError names the offending field.
func NewInvalidParameterError(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidParameter, field, reason)
}

// NewAlignmentError reports why two grids could not be merged.
func NewAlignmentError(reason string) error {
	return fmt.Errorf("%w: %s", ErrAlignment, reason)
}

// Error checking helpers
func IsInsufficientDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsDegenerateSeriesError(err error) bool {
	return errors.Is(err, ErrDegenerateSeries)
}

func IsInvalidParameterError(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsAlignmentError(err error) bool {
	return errors.Is(err, ErrAlignment)
}
