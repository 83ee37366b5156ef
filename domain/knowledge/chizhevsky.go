// Package knowledge holds the heliobiological interpretation tables the
// orchestrator uses to turn numeric results into recommendations. The
// constants follow Chizhevsky's documented solar-cycle phenomenology.
package knowledge

import (
	"fmt"
	"time"

	"heliocorr/domain/analysis"
)

// Reference Schwabe cycle length.
const (
	ReferenceCycleYears  = 11.2
	ReferenceCycleMonths = 134
)

// Interpretation thresholds used when deriving recommendations.
const (
	// StrongCorrelation marks |r| above which the association is called strong.
	StrongCorrelation = 0.6
	// PhaseLockThreshold marks the mean phase difference (radians) below
	// which the two series are considered phase-locked.
	PhaseLockThreshold = 0.5
	// MarkedSeasonality marks the seasonal-strength ratio above which a
	// fixed periodic pattern dominates the residual.
	MarkedSeasonality = 1.0
	// SignificanceLevel is the default two-sided alpha.
	SignificanceLevel = 0.05
)

// CorrelationStrength interprets |r| on the bands used throughout the
// heliobiology literature.
func CorrelationStrength(absR float64) string {
	switch {
	case absR >= 0.9:
		return "very strong"
	case absR >= 0.7:
		return "strong"
	case absR >= 0.5:
		return "moderate"
	case absR >= 0.3:
		return "weak"
	default:
		return "very weak or absent"
	}
}

// CyclePhaseName maps a phase fraction onto the classical four-phase cycle
// vocabulary (minimum, ascending, maximum, declining).
func CyclePhaseName(fraction, slope float64) string {
	switch {
	case fraction < 0.2:
		return "minimum"
	case fraction > 0.7:
		return "maximum"
	case slope >= 0:
		return "ascending"
	default:
		return "declining"
	}
}

// Recommendations derives the advisory list for a completed report.
// Every rule is a plain threshold on already-computed results; no rule
// re-examines the raw series.
func Recommendations(r *analysis.AnalysisReport) []string {
	recs := make([]string, 0, 6)

	absR := r.Correlation.Coefficient
	if absR < 0 {
		absR = -absR
	}

	if absR > StrongCorrelation && r.Correlation.Significant(SignificanceLevel) {
		recs = append(recs, fmt.Sprintf(
			"Strong correlation detected (r=%.3f, p=%.4f): treat the activity series as a leading indicator.",
			r.Correlation.Coefficient, r.Correlation.PValue))
	} else if !r.Correlation.Significant(SignificanceLevel) {
		recs = append(recs, fmt.Sprintf(
			"Association is %s and not statistically significant (p=%.3f); collect a longer record before acting on it.",
			CorrelationStrength(absR), r.Correlation.PValue))
	}

	if r.Correlation.Lag > 0 {
		recs = append(recs, fmt.Sprintf(
			"Event series lags activity by %d %s steps: this lead time is available for preparedness measures.",
			r.Correlation.Lag, r.Params.ResampleCadence))
	}

	if r.Phase.MeanPhaseDiff < PhaseLockThreshold {
		recs = append(recs, fmt.Sprintf(
			"Series are phase-locked (mean phase difference %.2f rad): cyclical co-movement is consistent over the record.",
			r.Phase.MeanPhaseDiff))
	}

	if r.Seasonal.SeasonalStrength > MarkedSeasonality {
		recs = append(recs, fmt.Sprintf(
			"Marked periodic structure (seasonal strength %.1f): the %d-step cycle explains most residual variation.",
			r.Seasonal.SeasonalStrength, r.Params.SeasonalPeriod))
	}

	switch r.Cycle.RiskLevel {
	case analysis.RiskHigh:
		if r.Cycle.HasNextPeak {
			recs = append(recs, fmt.Sprintf(
				"Activity is rising into a cycle maximum (next peak projected near %s): elevated biological risk window.",
				r.Cycle.NextPeak.Format(time.DateOnly)))
		} else {
			recs = append(recs, "Activity is rising into a cycle maximum: elevated biological risk window.")
		}
	case analysis.RiskLow:
		recs = append(recs, "Activity sits near its cycle minimum: baseline risk period.")
	}

	return recs
}
