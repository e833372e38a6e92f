// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

const (
	// lub
	s1Freq      = 40.0
	s1Sigma     = 0.025
	s1Amplitude = 1.0

	// dub, quiet enough that its energy stays under the default peak height
	s2Freq      = 60.0
	s2Sigma     = 0.018
	s2Amplitude = 0.25
	s2Delay     = 0.3

	// first beat offset so the first S1 is not cut by the start of the file
	leadIn = 0.1
)

// Heartbeat describes a synthetic phonocardiogram: one S1/S2 pair per beat,
// each a gaussian windowed low frequency tone, plus optional gaussian noise.
type Heartbeat struct {
	SampleRate int
	BPM        float64
	Duration   time.Duration
	// Noise is the standard deviation of the added noise.
	Noise float64
	// Seed makes the noise reproducible.
	Seed uint64
}

func (h Heartbeat) Validate() error {
	switch {
	case h.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidParameter, h.SampleRate)
	case !(h.BPM > 0) || h.BPM > 600:
		return fmt.Errorf("%w: bpm %v", ErrInvalidParameter, h.BPM)
	case h.Duration <= 0:
		return fmt.Errorf("%w: duration %s", ErrInvalidParameter, h.Duration)
	case !(h.Noise >= 0) || h.Noise > 1:
		return fmt.Errorf("%w: noise %v", ErrInvalidParameter, h.Noise)
	}

	return nil
}

// Beats returns the S1 onset times in seconds.
func (h Heartbeat) Beats() []float64 {
	period := 60 / h.BPM
	end := h.Duration.Seconds()

	var out []float64
	for t := leadIn; t < end; t += period {
		out = append(out, t)
	}

	return out
}

// Samples renders the mono signal, clipped to [-1, 1].
func (h Heartbeat) Samples() ([]float32, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}

	rate := float64(h.SampleRate)
	n := int(h.Duration.Seconds() * rate)
	out := make([]float64, n)

	for _, t := range h.Beats() {
		burst(out, rate, t, s1Freq, s1Sigma, s1Amplitude)
		burst(out, rate, t+s2Delay, s2Freq, s2Sigma, s2Amplitude)
	}

	if h.Noise > 0 {
		rng := rand.New(rand.NewPCG(h.Seed, h.Seed^0x9e3779b97f4a7c15))
		for i := range out {
			out[i] += h.Noise * rng.NormFloat64()
		}
	}

	samples := make([]float32, n)
	for i, v := range out {
		samples[i] = float32(min(max(v, -1), 1))
	}

	return samples, nil
}

// burst adds a gaussian windowed cosine centered at t seconds.
func burst(dst []float64, rate, t, freq, sigma, amp float64) {
	reach := 4 * sigma
	lo := max(int(math.Floor((t-reach)*rate)), 0)
	hi := min(int(math.Ceil((t+reach)*rate)), len(dst)-1)

	for i := lo; i <= hi; i++ {
		d := float64(i)/rate - t
		dst[i] += amp * math.Exp(-0.5*(d/sigma)*(d/sigma)) * math.Cos(2*math.Pi*freq*d)
	}
}
