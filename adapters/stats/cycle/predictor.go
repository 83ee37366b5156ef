// Package cycle detects activity peaks in an aligned series and projects the
// next one forward, summarizing where in the current cycle the series sits and
// how much risk that position carries.
package cycle

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"heliocorr/domain/analysis"
	"heliocorr/domain/timeseries"
)

// Config tunes peak detection and risk classification. Zero values take the
// documented defaults.
type Config struct {
	// MinHeight is the minimum value a peak must reach. Zero means "use the
	// series mean", which adapts the threshold to the series scale.
	MinHeight float64
	// MinSpacing is the minimum number of grid steps between accepted peaks.
	MinSpacing int
	// TrendWindow is how many trailing samples feed the trend slope.
	TrendWindow int
	// HighFraction and LowFraction split the cycle position into risk bands.
	// A negative LowFraction stands for a literal zero, disabling the low
	// band so every position reads at least moderate.
	HighFraction float64
	LowFraction  float64
}

const (
	DefaultMinSpacing  = 2
	DefaultTrendWindow = 12

	defaultHighFraction = 0.7
	defaultLowFraction  = 0.3
)

// Predict analyzes one aligned series for cyclic peaks. It never fails: a
// series too short or too flat to show peaks yields a prediction with
// HasNextPeak false, which is itself a finding.
func Predict(grid []time.Time, values []float64, cadence timeseries.Cadence, cfg Config) analysis.CyclePrediction {
	cfg = withDefaults(cfg)

	height := cfg.MinHeight
	if height == 0 {
		height = stat.Mean(values, nil)
	}

	peaks := findPeaks(values, height, cfg.MinSpacing)
	fraction := phaseFraction(values)
	slope := trendSlope(values, cfg.TrendWindow)

	pred := analysis.CyclePrediction{
		PhaseFraction: fraction,
		RiskLevel:     classifyRisk(fraction, slope, cfg),
		PeakCount:     len(peaks),
		TrendSlope:    slope,
	}

	// Projection needs at least two peaks to establish an interval.
	if len(peaks) >= 2 {
		var total float64
		for i := 1; i < len(peaks); i++ {
			total += float64(peaks[i] - peaks[i-1])
		}
		mean := total / float64(len(peaks)-1)

		pred.MeanPeakInterval = mean
		pred.HasNextPeak = true
		pred.NextPeak = cadence.Advance(grid[peaks[len(peaks)-1]], int(math.Round(mean)))
	}

	return pred
}

// findPeaks returns indices of strict local maxima at or above height, each at
// least spacing steps after the previously accepted peak. Endpoints are never
// peaks: a rising edge at the boundary is not evidence of a turn.
func findPeaks(values []float64, height float64, spacing int) []int {
	var peaks []int
	last := -spacing - 1
	for i := 1; i < len(values)-1; i++ {
		if values[i] <= values[i-1] || values[i] <= values[i+1] {
			continue
		}
		if values[i] < height {
			continue
		}
		if i-last < spacing {
			continue
		}
		peaks = append(peaks, i)
		last = i
	}
	return peaks
}

// phaseFraction places the latest value within the observed range: 0 at the
// series minimum, 1 at its maximum. A flat series sits at 0.5 - no evidence
// for either extreme.
func phaseFraction(values []float64) float64 {
	if len(values) == 0 {
		return 0.5
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return 0.5
	}
	return (values[len(values)-1] - lo) / (hi - lo)
}

// trendSlope fits a least-squares line through the last window samples and
// returns its slope in value units per grid step.
func trendSlope(values []float64, window int) float64 {
	if window > len(values) {
		window = len(values)
	}
	if window < 2 {
		return 0
	}

	tail := values[len(values)-window:]
	xs := make([]float64, window)
	for i := range xs {
		xs[i] = float64(i)
	}

	_, slope := stat.LinearRegression(xs, tail, nil, false)
	return slope
}

// classifyRisk maps cycle position and trend onto a level. High requires both
// a late-cycle position and a rising trend; a late position alone still reads
// Moderate, matching how a post-peak decline should be treated.
func classifyRisk(fraction, slope float64, cfg Config) analysis.RiskLevel {
	if fraction > cfg.HighFraction && slope > 0 {
		return analysis.RiskHigh
	}
	if fraction >= cfg.LowFraction {
		return analysis.RiskModerate
	}
	return analysis.RiskLow
}

func withDefaults(cfg Config) Config {
	if cfg.MinSpacing == 0 {
		cfg.MinSpacing = DefaultMinSpacing
	}
	if cfg.TrendWindow == 0 {
		cfg.TrendWindow = DefaultTrendWindow
	}
	if cfg.HighFraction == 0 {
		cfg.HighFraction = defaultHighFraction
	}
	if cfg.LowFraction == 0 {
		cfg.LowFraction = defaultLowFraction
	} else if cfg.LowFraction < 0 {
		cfg.LowFraction = 0
	}
	return cfg
}
