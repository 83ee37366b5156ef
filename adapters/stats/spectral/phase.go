package spectral

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"heliocorr/domain/analysis"
)

// AnalyticSignal builds the complex analytic representation of a real series
// via the frequency domain: transform, zero the negative frequencies, double
// the positive ones, and invert. The argument of each sample is the
// instantaneous phase. The input is mean-centered first.
func AnalyticSignal(values []float64) []complex128 {
	n := len(values)
	centered := center(values)

	seq := make([]complex128, n)
	for i, v := range centered {
		seq[i] = complex(v, 0)
	}

	fft := fourier.NewCmplxFFT(n)
	coeffs := fft.Coefficients(nil, seq)

	// Keep DC and (for even n) the Nyquist bin untouched; double the
	// positive frequencies and zero the negative ones.
	for i := 1; i < (n+1)/2; i++ {
		coeffs[i] *= 2
	}
	for i := n/2 + 1; i < n; i++ {
		coeffs[i] = 0
	}

	out := fft.Sequence(nil, coeffs)
	inv := complex(1/float64(n), 0) // Sequence is unnormalized
	for i := range out {
		out[i] *= inv
	}
	return out
}

// InstantaneousPhase returns the pointwise phase of the analytic signal,
// each value in (-pi, pi].
func InstantaneousPhase(values []float64) []float64 {
	sig := AnalyticSignal(values)
	phases := make([]float64, len(sig))
	for i, c := range sig {
		phases[i] = cmplx.Phase(c)
	}
	return phases
}

// MeanPhaseDiff computes the mean absolute pointwise phase difference between
// two equal-length series, in [0, pi]. Near 0 the series move in sync,
// near pi in antiphase, independent of amplitude.
func MeanPhaseDiff(x, y []float64) (analysis.PhaseSummary, error) {
	if len(x) != len(y) {
		return analysis.PhaseSummary{}, fmt.Errorf("phase analysis requires equal-length series: %d vs %d", len(x), len(y))
	}
	if len(x) < 2 {
		return analysis.PhaseSummary{}, fmt.Errorf("phase analysis requires at least 2 samples, got %d", len(x))
	}

	px := InstantaneousPhase(x)
	py := InstantaneousPhase(y)

	sum := 0.0
	for i := range px {
		d := math.Abs(px[i] - py[i])
		if d > math.Pi {
			d = 2*math.Pi - d
		}
		sum += d
	}

	return analysis.PhaseSummary{MeanPhaseDiff: sum / float64(len(px))}, nil
}
