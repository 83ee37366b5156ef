package analysis

import (
	"time"

	"heliocorr/domain/core"
)

// RiskLevel classifies where the activity series sits in its cycle.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// CorrelationResult captures the association between the two aligned series.
// ConfidenceInterval always brackets Coefficient and is clamped to [-1, 1];
// with n <= 3 samples it degrades to the uninformative [-1, 1].
type CorrelationResult struct {
	Coefficient        float64    `json:"coefficient"`
	PValue             float64    `json:"p_value"`
	Lag                int        `json:"lag"` // grid units; positive = event series lags activity series
	ConfidenceInterval [2]float64 `json:"confidence_interval"`
	SampleSize         int        `json:"sample_size"`
}

// Significant reports whether the zero-lag association passes the given level
func (r CorrelationResult) Significant(alpha float64) bool {
	return r.PValue < alpha
}

// SpectralSummary characterizes the dominant periodicity of one series.
// Frequencies are normalized (cycles per grid step, DC excluded). A constant
// series reports {0, 0}: absence of periodicity is a finding, not a failure.
type SpectralSummary struct {
	DominantFrequency float64 `json:"dominant_frequency"`
	PowerAtDominant   float64 `json:"power_at_dominant"`
}

// DominantPeriod returns 1/frequency in grid steps, or 0 when no periodicity
// was detected.
func (s SpectralSummary) DominantPeriod() float64 {
	if s.DominantFrequency <= 0 {
		return 0
	}
	return 1.0 / s.DominantFrequency
}

// PhaseSummary reports phase synchrony between the two series: the mean
// absolute instantaneous phase difference, in [0, pi]. Near 0 the series move
// in sync; near pi they move in antiphase.
type PhaseSummary struct {
	MeanPhaseDiff float64 `json:"mean_phase_difference"`
}

// SeasonalSummary reports the seasonal-strength ratio
// stddev(seasonal)/stddev(residual). Zero means the decomposition was
// degenerate or found no structure beyond what was modeled.
type SeasonalSummary struct {
	SeasonalStrength float64 `json:"seasonal_strength"`
}

// CyclePrediction projects the next cyclical maximum of the activity series.
type CyclePrediction struct {
	NextPeak         time.Time `json:"next_peak,omitempty"`
	HasNextPeak      bool      `json:"has_next_peak"`
	PhaseFraction    float64   `json:"current_phase_fraction"` // 0..1; 0.5 for a flat series
	RiskLevel        RiskLevel `json:"risk_level"`
	PeakCount        int       `json:"peak_count"`
	MeanPeakInterval float64   `json:"mean_peak_interval"` // grid units; 0 with fewer than 2 peaks
	TrendSlope       float64   `json:"trend_slope"`        // short-window linear slope per grid unit
}

// AnalysisReport aggregates every stage's result for one request.
type AnalysisReport struct {
	ID          core.ReportID    `json:"id"`
	Fingerprint core.Fingerprint `json:"fingerprint"`
	CreatedAt   core.Timestamp   `json:"created_at"`
	Params      Params           `json:"params"`
	SampleSize  int              `json:"sample_size"`

	Correlation      CorrelationResult `json:"correlation"`
	ActivitySpectrum SpectralSummary   `json:"activity_spectrum"`
	EventSpectrum    SpectralSummary   `json:"event_spectrum"`
	Phase            PhaseSummary      `json:"phase"`
	Seasonal         SeasonalSummary   `json:"seasonal"`
	Cycle            CyclePrediction   `json:"cycle"`

	Recommendations []string `json:"recommendations"`
}
