// SPDX-License-Identifier: EPL-2.0

package audiotest

import "math"

// PulseTrain returns mono samples of the given length that are zero except
// for unit impulses at first, first+period, first+2*period and so on.
func PulseTrain(length, first, period int) []float32 {
	out := make([]float32, length)
	if period <= 0 {
		return out
	}

	for i := first; i >= 0 && i < length; i += period {
		out[i] = 1
	}

	return out
}

// GaussianPulses returns mono samples with a gaussian bump of standard
// deviation sigma (in samples) centered every period samples starting at
// first. Bumps are summed, so overlapping tails add up.
func GaussianPulses(length, first, period int, sigma float64) []float32 {
	out := make([]float32, length)
	if period <= 0 || sigma <= 0 {
		return out
	}

	reach := int(math.Ceil(4 * sigma))
	for c := first; c < length+reach; c += period {
		lo := max(c-reach, 0)
		hi := min(c+reach, length-1)
		for i := lo; i <= hi; i++ {
			d := float64(i-c) / sigma
			out[i] += float32(math.Exp(-0.5 * d * d))
		}
	}

	return out
}

// Interleave repeats every mono sample on channels channels.
func Interleave(mono []float32, channels int) []float32 {
	out := make([]float32, 0, len(mono)*channels)
	for _, v := range mono {
		for range channels {
			out = append(out, v)
		}
	}

	return out
}
