// Package seasonal implements classical moving-average decomposition of one
// series into trend, seasonal, and residual components, and derives the
// seasonal-strength ratio from them.
package seasonal

import (
	"math"

	"github.com/montanaflynn/stats"

	"heliocorr/domain/analysis"
)

// Decomposition holds the additive components. Trend (and therefore seasonal
// and residual) is undefined within half a period of each edge; those slots
// carry NaN, mirroring how classical decomposition is reported elsewhere.
type Decomposition struct {
	Trend    []float64
	Seasonal []float64
	Residual []float64
	Period   int
}

// Decompose splits values into trend + seasonal + residual for the expected
// period (in grid units). Returns ok=false when the decomposition is
// undefined: period below 2 or exceeding half the series length.
func Decompose(values []float64, period int) (*Decomposition, bool) {
	n := len(values)
	if period < 2 || period > n/2 {
		return nil, false
	}

	trend := movingAverage(values, period)

	// Per-position means of the detrended series, re-centered to zero so
	// the seasonal component carries shape only.
	posSum := make([]float64, period)
	posCount := make([]int, period)
	for i, t := range trend {
		if math.IsNaN(t) {
			continue
		}
		posSum[i%period] += values[i] - t
		posCount[i%period]++
	}

	indices := make([]float64, period)
	var total float64
	defined := 0
	for p := range indices {
		if posCount[p] > 0 {
			indices[p] = posSum[p] / float64(posCount[p])
			total += indices[p]
			defined++
		}
	}
	if defined > 0 {
		offset := total / float64(defined)
		for p := range indices {
			indices[p] -= offset
		}
	}

	seasonal := make([]float64, n)
	residual := make([]float64, n)
	for i := range values {
		if math.IsNaN(trend[i]) {
			seasonal[i] = math.NaN()
			residual[i] = math.NaN()
			continue
		}
		seasonal[i] = indices[i%period]
		residual[i] = values[i] - trend[i] - seasonal[i]
	}

	return &Decomposition{Trend: trend, Seasonal: seasonal, Residual: residual, Period: period}, true
}

// Strength reports stddev(seasonal)/stddev(residual). Zero residual variance
// or an undefined decomposition yields 0: "no detectable additional structure
// beyond what was modeled" is a finding, not a failure.
func Strength(values []float64, period int) analysis.SeasonalSummary {
	dec, ok := Decompose(values, period)
	if !ok {
		return analysis.SeasonalSummary{}
	}

	seasonalStd, _ := stats.StandardDeviation(dropNaN(dec.Seasonal))
	residualStd, _ := stats.StandardDeviation(dropNaN(dec.Residual))
	if residualStd == 0 || math.IsNaN(residualStd) || math.IsNaN(seasonalStd) {
		return analysis.SeasonalSummary{}
	}

	return analysis.SeasonalSummary{SeasonalStrength: seasonalStd / residualStd}
}

// movingAverage is the centered trend filter of classical decomposition: a
// plain window for odd periods, the standard 2xm double average for even
// ones. Edges without a full window are NaN.
func movingAverage(values []float64, period int) []float64 {
	n := len(values)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	if period%2 == 1 {
		half := period / 2
		for i := half; i < n-half; i++ {
			sum := 0.0
			for j := i - half; j <= i+half; j++ {
				sum += values[j]
			}
			out[i] = sum / float64(period)
		}
		return out
	}

	half := period / 2
	for i := half; i < n-half; i++ {
		// 2xm MA: average of the two windows offset by one sample,
		// equivalently half-weights on the window endpoints.
		sum := values[i-half]/2 + values[i+half]/2
		for j := i - half + 1; j <= i+half-1; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(period)
	}
	return out
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
