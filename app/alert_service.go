package app

import (
	"fmt"

	"heliocorr/domain/analysis"
	"heliocorr/domain/core"
	"heliocorr/internal"
)

// Alert types emitted by the evaluator.
const (
	AlertHighActivity        = "HIGH_ACTIVITY"
	AlertCorrelationDetected = "CORRELATION_DETECTED"
	AlertRiskHigh            = "RISK_HIGH"
)

// AlertEvent is one triggered advisory. Alerts are derived views over a
// finished report; they never change the report itself.
type AlertEvent struct {
	ID          core.AlertID   `json:"id"`
	Type        string         `json:"type"`
	Severity    string         `json:"severity"`
	Message     string         `json:"message"`
	TriggeredBy core.ReportID  `json:"triggered_by"`
	CreatedAt   core.Timestamp `json:"created_at"`
}

// AlertConfig sets the evaluation thresholds
type AlertConfig struct {
	// ActivityThreshold is the raw activity level above which the latest
	// observation alone triggers an alert.
	ActivityThreshold float64
	// CorrelationThreshold is the |r| above which a significant
	// correlation is worth flagging. Zero takes the default; a negative
	// value stands for a literal zero, flagging every significant
	// correlation regardless of strength.
	CorrelationThreshold float64
}

// AlertService evaluates completed reports against static thresholds
type AlertService struct {
	logger *internal.Logger
	cfg    AlertConfig
}

// NewAlertService creates an alert evaluator
func NewAlertService(logger *internal.Logger, cfg AlertConfig) *AlertService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if cfg.CorrelationThreshold == 0 {
		cfg.CorrelationThreshold = 0.5
	} else if cfg.CorrelationThreshold < 0 {
		cfg.CorrelationThreshold = 0
	}
	return &AlertService{logger: logger, cfg: cfg}
}

// Evaluate inspects one report plus the latest raw activity reading and
// returns every alert whose condition holds. The order is stable: activity
// level, then correlation, then cycle risk.
func (s *AlertService) Evaluate(report *analysis.AnalysisReport, latestActivity float64) []AlertEvent {
	var alerts []AlertEvent

	if s.cfg.ActivityThreshold > 0 && latestActivity > s.cfg.ActivityThreshold {
		alerts = append(alerts, s.newAlert(report, AlertHighActivity, "warning",
			fmt.Sprintf("Latest activity reading %.1f exceeds threshold %.1f.",
				latestActivity, s.cfg.ActivityThreshold)))
	}

	absR := report.Correlation.Coefficient
	if absR < 0 {
		absR = -absR
	}
	if report.Correlation.Significant(0.05) && absR > s.cfg.CorrelationThreshold {
		alerts = append(alerts, s.newAlert(report, AlertCorrelationDetected, "info",
			fmt.Sprintf("Significant correlation r=%.3f at lag %d (p=%.4f).",
				report.Correlation.Coefficient, report.Correlation.Lag, report.Correlation.PValue)))
	}

	if report.Cycle.RiskLevel == analysis.RiskHigh {
		alerts = append(alerts, s.newAlert(report, AlertRiskHigh, "critical",
			"Activity series is rising into a cycle maximum."))
	}

	for _, a := range alerts {
		s.logger.Info("alert %s (%s): %s", a.Type, a.Severity, a.Message)
	}
	return alerts
}

func (s *AlertService) newAlert(report *analysis.AnalysisReport, alertType, severity, message string) AlertEvent {
	return AlertEvent{
		ID:          core.AlertID(core.NewID()),
		Type:        alertType,
		Severity:    severity,
		Message:     message,
		TriggeredBy: report.ID,
		CreatedAt:   core.Now(),
	}
}
