// SPDX-License-Identifier: EPL-2.0

package heartrate

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultMaxBPM          = 180.0
	DefaultMinBPM          = 30.0
	DefaultHeightThreshold = 0.1
)

// Rounding selects how the raw rate becomes an integer BPM.
type Rounding int

const (
	// RoundNearest rounds half away from zero.
	RoundNearest Rounding = iota
	// RoundTruncate drops the fraction.
	RoundTruncate
)

func (r Rounding) String() string {
	switch r {
	case RoundNearest:
		return "nearest"
	case RoundTruncate:
		return "truncate"
	default:
		return fmt.Sprintf("Rounding(%d)", int(r))
	}
}

func (r Rounding) apply(raw float64) int {
	if r == RoundTruncate {
		return int(math.Trunc(raw))
	}

	return int(math.Round(raw))
}

// ParseRounding accepts "nearest" or "truncate", case-insensitively.
func ParseRounding(s string) (Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest", "round":
		return RoundNearest, nil
	case "truncate", "trunc":
		return RoundTruncate, nil
	default:
		return 0, fmt.Errorf("%w: unknown rounding %q", ErrInvalidOption, s)
	}
}

// Option configures an Estimator.
type Option func(*Estimator) error

// WithMaxBPM sets the highest detectable rate. It fixes the minimum peak
// distance at sampleRate / (bpm / 60) samples.
func WithMaxBPM(bpm float64) Option {
	return func(e *Estimator) error {
		if !(bpm > 0) || math.IsInf(bpm, 0) {
			return fmt.Errorf("%w: max bpm %v", ErrInvalidOption, bpm)
		}
		e.maxBPM = bpm
		return nil
	}
}

// WithMinBPM sets the lower edge of the spectral search band.
func WithMinBPM(bpm float64) Option {
	return func(e *Estimator) error {
		if !(bpm >= 0) || math.IsInf(bpm, 0) {
			return fmt.Errorf("%w: min bpm %v", ErrInvalidOption, bpm)
		}
		e.minBPM = bpm
		return nil
	}
}

// WithHeightThreshold sets the minimum normalized energy of a peak, in [0, 1].
func WithHeightThreshold(h float64) Option {
	return func(e *Estimator) error {
		if !(h >= 0 && h <= 1) {
			return fmt.Errorf("%w: height threshold %v", ErrInvalidOption, h)
		}
		e.height = h
		return nil
	}
}

func WithRounding(r Rounding) Option {
	return func(e *Estimator) error {
		if r != RoundNearest && r != RoundTruncate {
			return fmt.Errorf("%w: %v", ErrInvalidOption, r)
		}
		e.rounding = r
		return nil
	}
}
