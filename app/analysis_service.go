package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"heliocorr/adapters/stats/correlate"
	"heliocorr/adapters/stats/cycle"
	"heliocorr/adapters/stats/seasonal"
	"heliocorr/adapters/stats/spectral"
	"heliocorr/adapters/stats/temporal"
	"heliocorr/domain/analysis"
	"heliocorr/domain/core"
	"heliocorr/domain/knowledge"
	"heliocorr/domain/timeseries"
	"heliocorr/internal"
	apperrors "heliocorr/internal/errors"
)

// AnalysisService orchestrates the full pipeline: align, then the independent
// statistical stages, then interpretation. Stage order is fixed; only stages
// with no data dependency on each other run concurrently.
type AnalysisService struct {
	logger  *internal.Logger
	cache   *ResultCache
	riskCfg cycle.Config
}

// NewAnalysisService creates the orchestrator. A nil cache disables
// memoization; a zero riskCfg takes the predictor defaults.
func NewAnalysisService(logger *internal.Logger, cache *ResultCache, riskCfg cycle.Config) *AnalysisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnalysisService{
		logger:  logger,
		cache:   cache,
		riskCfg: riskCfg,
	}
}

// Analyze runs one correlation analysis of an activity series against an
// event series. Identical inputs always produce an identical report (modulo
// the report ID and timestamp), which is what makes the cache sound.
func (s *AnalysisService) Analyze(ctx context.Context, activity, event *timeseries.TimeSeries, params analysis.Params) (*analysis.AnalysisReport, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if activity.Len() < 2 {
		return nil, core.NewInsufficientDataError("input", activity.Len(), 2)
	}
	if event.Len() < 2 {
		return nil, core.NewInsufficientDataError("input", event.Len(), 2)
	}

	fp := RequestFingerprint(activity, event, params)
	if s.cache == nil {
		return s.analyze(ctx, activity, event, params, fp)
	}
	return s.cache.GetOrCompute(fp, func() (*analysis.AnalysisReport, error) {
		return s.analyze(ctx, activity, event, params, fp)
	})
}

func (s *AnalysisService) analyze(ctx context.Context, activity, event *timeseries.TimeSeries, params analysis.Params, fp core.Fingerprint) (*analysis.AnalysisReport, error) {
	pair, err := temporal.Align(activity, event, temporal.Config{
		Cadence:   params.ResampleCadence,
		MinPoints: params.MinPoints,
	})
	if err != nil {
		return nil, apperrors.AnalysisError("alignment", err)
	}
	s.logger.Debug("aligned %d activity and %d event samples onto %d %s slots",
		activity.Len(), event.Len(), pair.Len(), params.ResampleCadence)

	report := &analysis.AnalysisReport{
		ID:          core.ReportID(core.NewID()),
		Fingerprint: fp,
		CreatedAt:   core.Now(),
		Params:      params,
		SampleSize:  pair.Len(),
	}

	// Spectral, phase, and seasonal stages read only the aligned pair and
	// are independent of each other.
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.ActivitySpectrum = spectral.Estimate(pair.Source)
		return nil
	})
	g.Go(func() error {
		report.EventSpectrum = spectral.Estimate(pair.Target)
		return nil
	})
	g.Go(func() error {
		phase, err := spectral.MeanPhaseDiff(pair.Source, pair.Target)
		if err != nil {
			return apperrors.AnalysisError("phase", err)
		}
		report.Phase = phase
		return nil
	})
	g.Go(func() error {
		report.Seasonal = seasonal.Strength(pair.Source, params.SeasonalPeriod)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	corr, err := correlate.Estimate(pair.Source, pair.Target, correlate.Config{
		Method: params.CorrelationMethod,
		MaxLag: params.MaxLag,
	})
	if err != nil {
		return nil, apperrors.AnalysisError("correlation", err)
	}
	report.Correlation = corr

	report.Cycle = cycle.Predict(pair.Grid, pair.Source, pair.Cadence, s.riskCfg)
	report.Recommendations = knowledge.Recommendations(report)

	s.logger.Info("analysis %s complete: r=%.3f p=%.4f lag=%d risk=%s",
		report.ID, corr.Coefficient, corr.PValue, corr.Lag, report.Cycle.RiskLevel)
	return report, nil
}
