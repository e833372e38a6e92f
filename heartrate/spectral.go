// SPDX-License-Identifier: EPL-2.0

package heartrate

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// envelopeRate is the target rate in Hz of the decimated energy
	// envelope searched by Spectral.
	envelopeRate = 50
	// harmonics is how many multiples of a bin count towards its score.
	harmonics = 3
)

// Spectral estimates the rate from the dominant periodicity of the energy
// envelope instead of counting peaks. The envelope is averaged down to about
// 50 Hz and its mean removed. Each FFT bin between MinBPM and MaxBPM is
// scored by the magnitude of its first harmonics, which keeps a pulse train
// with a strong second heart sound from being read at twice its rate. The
// best bin is refined by parabolic interpolation. It is meant as a
// cross-check of Estimate.
func (e *Estimator) Spectral(w Waveform) (float64, error) {
	energy, err := Energy(w)
	if err != nil {
		return 0, err
	}

	hop := max(w.SampleRate/envelopeRate, 1)
	env := decimate(energy, hop)
	if len(env) < 4 {
		return 0, fmt.Errorf("%w: recording too short for spectral analysis", ErrInsufficientSignal)
	}

	floats.AddConst(-stat.Mean(env, nil), env)

	coeffs := fourier.NewFFT(len(env)).Coefficients(nil, env)

	rate := float64(w.SampleRate) / float64(hop)
	binBPM := rate / float64(len(env)) * 60

	lo := max(int(e.minBPM/binBPM), 1)
	hi := min(int(e.maxBPM/binBPM), len(coeffs)-1)

	best, bestMag := -1, 0.0
	for k := lo; k <= hi; k++ {
		bpm := float64(k) * binBPM
		if bpm < e.minBPM || bpm > e.maxBPM {
			continue
		}
		if m := harmonicScore(coeffs, k); m > bestMag {
			best, bestMag = k, m
		}
	}

	if best < 0 || bestMag < 1e-12 {
		return 0, fmt.Errorf("%w: no periodic component between %v and %v BPM", ErrInsufficientSignal, e.minBPM, e.maxBPM)
	}

	return (float64(best) + vertexOffset(coeffs, best)) * binBPM, nil
}

func harmonicScore(coeffs []complex128, k int) float64 {
	var sum float64
	for h := 1; h <= harmonics && h*k < len(coeffs); h++ {
		sum += cmplx.Abs(coeffs[h*k])
	}

	return sum
}

// decimate averages consecutive blocks of hop values; a short last block is
// dropped.
func decimate(x []float64, hop int) []float64 {
	out := make([]float64, len(x)/hop)
	for i := range out {
		out[i] = floats.Sum(x[i*hop:(i+1)*hop]) / float64(hop)
	}

	return out
}

// vertexOffset fits a parabola through the magnitudes around bin k and
// returns the offset of its vertex, within [-0.5, 0.5].
func vertexOffset(coeffs []complex128, k int) float64 {
	if k <= 0 || k >= len(coeffs)-1 {
		return 0
	}

	a := cmplx.Abs(coeffs[k-1])
	b := cmplx.Abs(coeffs[k])
	c := cmplx.Abs(coeffs[k+1])

	den := a - 2*b + c
	if den == 0 {
		return 0
	}

	return min(max(0.5*(a-c)/den, -0.5), 0.5)
}
