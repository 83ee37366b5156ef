package app

import (
	"strings"
	"testing"

	"heliocorr/domain/analysis"
	"heliocorr/domain/core"
)

func baselineReport() *analysis.AnalysisReport {
	return &analysis.AnalysisReport{
		ID: core.ReportID(core.NewID()),
		Correlation: analysis.CorrelationResult{
			Coefficient: 0.2,
			PValue:      0.4,
			SampleSize:  50,
		},
		Cycle: analysis.CyclePrediction{RiskLevel: analysis.RiskLow},
	}
}

func alertTypes(alerts []AlertEvent) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.Type
	}
	return out
}

func TestEvaluate_QuietReport(t *testing.T) {
	svc := NewAlertService(nil, AlertConfig{ActivityThreshold: 150, CorrelationThreshold: 0.5})

	alerts := svc.Evaluate(baselineReport(), 100)
	if len(alerts) != 0 {
		t.Errorf("Expected no alerts, got %v", alertTypes(alerts))
	}
}

func TestEvaluate_HighActivity(t *testing.T) {
	svc := NewAlertService(nil, AlertConfig{ActivityThreshold: 150, CorrelationThreshold: 0.5})

	alerts := svc.Evaluate(baselineReport(), 200)
	if len(alerts) != 1 || alerts[0].Type != AlertHighActivity {
		t.Fatalf("Expected one HIGH_ACTIVITY alert, got %v", alertTypes(alerts))
	}
	if alerts[0].Severity != "warning" {
		t.Errorf("Expected warning severity, got %s", alerts[0].Severity)
	}
}

func TestEvaluate_CorrelationDetected(t *testing.T) {
	svc := NewAlertService(nil, AlertConfig{ActivityThreshold: 150, CorrelationThreshold: 0.5})

	report := baselineReport()
	report.Correlation.Coefficient = -0.72 // sign must not matter
	report.Correlation.PValue = 0.001
	report.Correlation.Lag = 3

	alerts := svc.Evaluate(report, 100)
	if len(alerts) != 1 || alerts[0].Type != AlertCorrelationDetected {
		t.Fatalf("Expected one CORRELATION_DETECTED alert, got %v", alertTypes(alerts))
	}
	if !strings.Contains(alerts[0].Message, "lag 3") {
		t.Errorf("Message should name the lag: %q", alerts[0].Message)
	}
	if alerts[0].TriggeredBy != report.ID {
		t.Error("Alert must reference the triggering report")
	}
}

func TestEvaluate_SignificantButWeakStaysQuiet(t *testing.T) {
	svc := NewAlertService(nil, AlertConfig{ActivityThreshold: 150, CorrelationThreshold: 0.5})

	report := baselineReport()
	report.Correlation.Coefficient = 0.3 // below threshold
	report.Correlation.PValue = 0.001

	if alerts := svc.Evaluate(report, 100); len(alerts) != 0 {
		t.Errorf("Weak correlation should not alert, got %v", alertTypes(alerts))
	}
}

func TestEvaluate_NegativeThresholdFlagsAnySignificantCorrelation(t *testing.T) {
	svc := NewAlertService(nil, AlertConfig{ActivityThreshold: 150, CorrelationThreshold: -1})

	report := baselineReport()
	report.Correlation.Coefficient = 0.1
	report.Correlation.PValue = 0.001

	alerts := svc.Evaluate(report, 100)
	if len(alerts) != 1 || alerts[0].Type != AlertCorrelationDetected {
		t.Errorf("Negative threshold should flag any significant correlation, got %v", alertTypes(alerts))
	}
}

func TestEvaluate_HighRisk(t *testing.T) {
	svc := NewAlertService(nil, AlertConfig{ActivityThreshold: 150, CorrelationThreshold: 0.5})

	report := baselineReport()
	report.Cycle.RiskLevel = analysis.RiskHigh

	alerts := svc.Evaluate(report, 100)
	if len(alerts) != 1 || alerts[0].Type != AlertRiskHigh {
		t.Fatalf("Expected one RISK_HIGH alert, got %v", alertTypes(alerts))
	}
	if alerts[0].Severity != "critical" {
		t.Errorf("Expected critical severity, got %s", alerts[0].Severity)
	}
}

func TestEvaluate_StableOrdering(t *testing.T) {
	svc := NewAlertService(nil, AlertConfig{ActivityThreshold: 150, CorrelationThreshold: 0.5})

	report := baselineReport()
	report.Correlation.Coefficient = 0.8
	report.Correlation.PValue = 0.001
	report.Cycle.RiskLevel = analysis.RiskHigh

	alerts := svc.Evaluate(report, 999)
	want := []string{AlertHighActivity, AlertCorrelationDetected, AlertRiskHigh}
	if len(alerts) != len(want) {
		t.Fatalf("Expected %d alerts, got %v", len(want), alertTypes(alerts))
	}
	for i, w := range want {
		if alerts[i].Type != w {
			t.Errorf("Position %d: expected %s, got %s", i, w, alerts[i].Type)
		}
	}
}
