// SPDX-License-Identifier: EPL-2.0

package heartrate

import (
	"math"
	"slices"
)

// MinDistance is the smallest allowed gap in samples between two accepted
// peaks for a given sample rate and maximum rate: ceil(fs / (maxBPM / 60)),
// never less than one.
func MinDistance(sampleRate int, maxBPM float64) int {
	if sampleRate <= 0 || !(maxBPM > 0) {
		return 1
	}

	d := int(math.Ceil(float64(sampleRate) * 60 / maxBPM))

	return max(d, 1)
}

// DetectPeaks returns the indices of local maxima of energy that reach height
// and lie at least minDistance apart, in increasing order.
//
// An index is a candidate when its value is >= both neighbours (a missing
// neighbour at either edge is ignored) and >= height. Candidates are then
// visited from the highest value down, equal values in index order; each one
// still standing is kept and removes every other candidate closer than
// minDistance.
func DetectPeaks(energy []float64, height float64, minDistance int) []int {
	n := len(energy)
	minDistance = max(minDistance, 1)

	var candidates []int
	for i, v := range energy {
		if v < height {
			continue
		}
		if i > 0 && v < energy[i-1] {
			continue
		}
		if i < n-1 && v < energy[i+1] {
			continue
		}
		candidates = append(candidates, i)
	}

	if len(candidates) < 2 || minDistance == 1 {
		return candidates
	}

	// positions into candidates, strongest first; the stable sort keeps
	// equal energies in index order
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		ea, eb := energy[candidates[a]], energy[candidates[b]]
		switch {
		case ea > eb:
			return -1
		case ea < eb:
			return 1
		default:
			return 0
		}
	})

	keep := make([]bool, len(candidates))
	for i := range keep {
		keep[i] = true
	}

	for _, j := range order {
		if !keep[j] {
			continue
		}

		at := candidates[j]
		for k := j - 1; k >= 0 && at-candidates[k] < minDistance; k-- {
			keep[k] = false
		}
		for k := j + 1; k < len(candidates) && candidates[k]-at < minDistance; k++ {
			keep[k] = false
		}
	}

	peaks := candidates[:0]
	for i, idx := range candidates {
		if keep[i] {
			peaks = append(peaks, idx)
		}
	}

	return peaks
}
