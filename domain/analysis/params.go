package analysis

import (
	"fmt"

	"heliocorr/domain/core"
	"heliocorr/domain/timeseries"
)

// Method selects how the correlation stage treats lag.
// This is a closed set: unsupported values are rejected at validation time.
type Method string

const (
	// MethodPearson computes the zero-lag Pearson coefficient only.
	MethodPearson Method = "pearson"
	// MethodCrossCorrelation additionally scans a lag window for the
	// offset of maximum association.
	MethodCrossCorrelation Method = "cross_correlation"
)

// IsValid reports whether the method is recognized
func (m Method) IsValid() bool {
	switch m {
	case MethodPearson, MethodCrossCorrelation:
		return true
	}
	return false
}

// Params configures one analysis request.
type Params struct {
	// ResampleCadence is the grid both raw series are aligned onto.
	ResampleCadence timeseries.Cadence `json:"resample_cadence"`
	// MaxLag bounds the cross-correlation lag scan, in grid units.
	MaxLag int `json:"max_lag"`
	// SeasonalPeriod is the expected cycle length in grid units
	// (e.g. ~132 for an 11-year cycle on monthly data).
	SeasonalPeriod int `json:"seasonal_period"`
	// MinPoints is the minimum number of aligned points required before
	// any statistical estimate is attempted.
	MinPoints int `json:"min_points"`
	// CorrelationMethod selects the correlation stage behavior.
	CorrelationMethod Method `json:"correlation_method"`
}

// DefaultParams returns the engine defaults: monthly cadence, a ±365-step
// lag window, the reference solar-cycle period, and cross-correlation.
func DefaultParams() Params {
	return Params{
		ResampleCadence:   timeseries.CadenceMonthly,
		MaxLag:            365,
		SeasonalPeriod:    132,
		MinPoints:         8,
		CorrelationMethod: MethodCrossCorrelation,
	}
}

// Validate fails fast on the first out-of-range option, naming the field.
func (p Params) Validate() error {
	if !p.ResampleCadence.IsValid() {
		return core.NewInvalidParameterError("resample_cadence",
			fmt.Sprintf("unrecognized cadence %q (want daily, weekly, or monthly)", p.ResampleCadence))
	}
	if p.MaxLag <= 0 {
		return core.NewInvalidParameterError("max_lag",
			fmt.Sprintf("must be a positive integer, got %d", p.MaxLag))
	}
	if p.SeasonalPeriod <= 0 {
		return core.NewInvalidParameterError("seasonal_period",
			fmt.Sprintf("must be a positive integer, got %d", p.SeasonalPeriod))
	}
	if p.MinPoints < 4 {
		return core.NewInvalidParameterError("min_points",
			fmt.Sprintf("must be at least 4, got %d", p.MinPoints))
	}
	if !p.CorrelationMethod.IsValid() {
		return core.NewInvalidParameterError("correlation_method",
			fmt.Sprintf("unrecognized method %q (want pearson or cross_correlation)", p.CorrelationMethod))
	}
	return nil
}
