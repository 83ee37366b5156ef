// Package spectral provides frequency-domain characterization of a single
// series: the periodogram-based dominant frequency and the analytic-signal
// instantaneous phase.
package spectral

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"heliocorr/domain/analysis"
)

// Periodogram computes a power spectral density estimate over normalized
// frequency (cycles per sample, unit spacing). The series is mean-centered
// first so bin 0 carries no information; callers exclude it anyway.
func Periodogram(values []float64) []float64 {
	n := len(values)
	if n < 2 {
		return nil
	}

	centered := center(values)
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, centered)

	psd := make([]float64, len(coeffs))
	for i, c := range coeffs {
		re, im := real(c), imag(c)
		psd[i] = (re*re + im*im) / float64(n)
	}
	return psd
}

// Estimate returns the frequency bin of maximum power, strictly excluding the
// DC component: DC reflects the mean, not periodicity. A constant (zero
// variance) series yields {0, 0} - absence of periodicity is a reportable
// outcome, not an error.
func Estimate(values []float64) analysis.SpectralSummary {
	n := len(values)
	if n < 2 || !hasVariance(values) {
		return analysis.SpectralSummary{}
	}

	psd := Periodogram(values)
	fft := fourier.NewFFT(n)

	best, bestPower := 0, 0.0
	for i := 1; i < len(psd); i++ {
		if psd[i] > bestPower {
			best, bestPower = i, psd[i]
		}
	}
	if best == 0 {
		return analysis.SpectralSummary{}
	}

	return analysis.SpectralSummary{
		DominantFrequency: fft.Freq(best),
		PowerAtDominant:   bestPower,
	}
}

func center(values []float64) []float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v - mean
	}
	return out
}

func hasVariance(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return true
		}
	}
	return false
}
