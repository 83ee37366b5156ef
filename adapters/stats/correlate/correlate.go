// Package correlate estimates the association between two aligned series:
// the zero-lag Pearson coefficient with Fisher-z uncertainty, and the lag of
// maximum normalized cross-correlation.
package correlate

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"heliocorr/domain/analysis"
	"heliocorr/domain/core"
)

// Config bounds the estimator
type Config struct {
	Method analysis.Method
	// MaxLag bounds the lag scan in grid units. The effective window is
	// further capped at n/2-1 so every tested lag keeps a usable overlap.
	MaxLag int
}

// zCritical95 is the two-sided 95% standard normal quantile.
const zCritical95 = 1.959963984540054

// Estimate computes the correlation result for an aligned pair. The
// coefficient and p-value always refer to zero lag; the lag field reports
// where the normalized cross-correlation peaks (positive = target lags
// source), scanned only for MethodCrossCorrelation.
//
// Fails with core.ErrDegenerateSeries when either input has exactly zero
// variance - correlation is undefined there and NaN must never escape.
func Estimate(source, target []float64, cfg Config) (analysis.CorrelationResult, error) {
	n := len(source)
	if n != len(target) {
		return analysis.CorrelationResult{}, core.NewAlignmentError("correlation inputs differ in length")
	}
	if n < 2 {
		return analysis.CorrelationResult{}, core.NewInsufficientDataError("correlation", n, 2)
	}
	if !hasVariance(source) {
		return analysis.CorrelationResult{}, core.NewDegenerateSeriesError("correlation", "activity")
	}
	if !hasVariance(target) {
		return analysis.CorrelationResult{}, core.NewDegenerateSeriesError("correlation", "event")
	}

	r := stat.Correlation(source, target, nil)

	result := analysis.CorrelationResult{
		Coefficient:        clamp(r),
		PValue:             pValue(r, n),
		ConfidenceInterval: fisherInterval(r, n),
		SampleSize:         n,
	}

	if cfg.Method == analysis.MethodCrossCorrelation {
		result.Lag = bestLag(source, target, cfg.MaxLag)
	}
	return result, nil
}

// bestLag scans lags in [-maxLag, maxLag] for the maximum absolute
// correlation. Ties prefer the smaller absolute lag, then the positive side,
// so the result is deterministic. Swapping the inputs negates the lag except
// when -k and +k tie exactly in |corr|: that tie is symmetric in both scan
// directions, so both resolve to +k, the "events lag activity" reading.
func bestLag(source, target []float64, maxLag int) int {
	n := len(source)
	limit := n/2 - 1
	if maxLag <= 0 || maxLag > limit {
		maxLag = limit
	}
	if maxLag < 1 {
		return 0
	}

	best, bestCorr := 0, 0.0
	for lag := -maxLag; lag <= maxLag; lag++ {
		corr := laggedCorrelation(source, target, lag)
		switch {
		case math.Abs(corr) > math.Abs(bestCorr):
			best, bestCorr = lag, corr
		case math.Abs(corr) == math.Abs(bestCorr) && abs(lag) < abs(best):
			best, bestCorr = lag, corr
		case math.Abs(corr) == math.Abs(bestCorr) && abs(lag) == abs(best) && lag > best:
			best, bestCorr = lag, corr
		}
	}
	return best
}

// laggedCorrelation correlates source[t] with target[t+lag] over the valid
// overlap. Degenerate overlaps report 0 rather than NaN.
func laggedCorrelation(source, target []float64, lag int) float64 {
	n := len(source)
	var x, y []float64
	if lag >= 0 {
		if lag >= n {
			return 0
		}
		x, y = source[:n-lag], target[lag:]
	} else {
		if -lag >= n {
			return 0
		}
		x, y = source[-lag:], target[:n+lag]
	}
	return pearson(x, y)
}

// pearson is a NaN-safe Pearson coefficient: zero-variance windows yield 0.
func pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}

	meanX := stat.Mean(x, nil)
	meanY := stat.Mean(y, nil)

	var num, sumXX, sumYY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		num += dx * dy
		sumXX += dx * dx
		sumYY += dy * dy
	}

	den := math.Sqrt(sumXX * sumYY)
	if den == 0 {
		return 0
	}
	// Rounding can push a perfect relationship a hair past 1.
	return clamp(num / den)
}

// pValue is the two-sided significance of r under the null of no correlation,
// via the Fisher z-transform and a standard normal approximation.
func pValue(r float64, n int) float64 {
	absR := math.Abs(r)
	if absR >= 1 {
		return 1e-10
	}
	if absR == 0 || n <= 3 {
		return 1.0
	}

	z := math.Atanh(absR)
	se := 1.0 / math.Sqrt(float64(n-3))
	normal := distuv.Normal{Mu: 0, Sigma: 1}

	p := 2 * (1 - normal.CDF(z/se))
	if p < 1e-10 {
		p = 1e-10
	}
	return p
}

// fisherInterval is the 95% confidence interval tanh(atanh(r) +/- 1.96/sqrt(n-3)),
// clamped to [-1, 1]. With n <= 3 the interval is undefined and degrades to
// the uninformative [-1, 1].
func fisherInterval(r float64, n int) [2]float64 {
	if n <= 3 {
		return [2]float64{-1, 1}
	}
	if math.Abs(r) >= 1 {
		c := clamp(r)
		return [2]float64{c, c}
	}

	z := math.Atanh(r)
	se := 1.0 / math.Sqrt(float64(n-3))
	return [2]float64{
		clamp(math.Tanh(z - zCritical95*se)),
		clamp(math.Tanh(z + zCritical95*se)),
	}
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func hasVariance(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
