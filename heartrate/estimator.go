// SPDX-License-Identifier: EPL-2.0

package heartrate

import (
	"fmt"
	"math"
	"time"

	"github.com/ik5/heartbpm/audio"
	"gonum.org/v1/gonum/floats"
)

// Result is a successful estimate.
type Result struct {
	// BPM is RawBPM converted with the estimator's Rounding.
	BPM    int
	RawBPM float64
	// Peaks holds the accepted mono frame indices in increasing order.
	Peaks       []int
	Frames      int
	SampleRate  int
	Duration    time.Duration
	MinDistance int
}

// Estimator turns a Waveform into a heart rate. It holds only configuration
// and is safe for concurrent use.
type Estimator struct {
	maxBPM   float64
	minBPM   float64
	height   float64
	rounding Rounding
}

// New returns an Estimator with the defaults (180 BPM cap, 0.1 height
// threshold, nearest rounding) adjusted by opts.
func New(opts ...Option) (*Estimator, error) {
	e := &Estimator{
		maxBPM:   DefaultMaxBPM,
		minBPM:   DefaultMinBPM,
		height:   DefaultHeightThreshold,
		rounding: RoundNearest,
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.minBPM >= e.maxBPM {
		return nil, fmt.Errorf("%w: min bpm %v is not below max bpm %v", ErrInvalidOption, e.minBPM, e.maxBPM)
	}

	return e, nil
}

var defaultEstimator, _ = New()

// Estimate runs the default Estimator.
func Estimate(w Waveform) (Result, error) {
	return defaultEstimator.Estimate(w)
}

func (e *Estimator) MaxBPM() float64          { return e.maxBPM }
func (e *Estimator) MinBPM() float64          { return e.minBPM }
func (e *Estimator) HeightThreshold() float64 { return e.height }
func (e *Estimator) Rounding() Rounding       { return e.rounding }

// Estimate mixes w to mono, normalizes it by its peak amplitude, squares it
// into an energy signal and counts the peaks of that signal over the length
// of the recording.
func (e *Estimator) Estimate(w Waveform) (Result, error) {
	energy, err := Energy(w)
	if err != nil {
		return Result{}, err
	}

	dist := MinDistance(w.SampleRate, e.maxBPM)
	peaks := DetectPeaks(energy, e.height, dist)
	if len(peaks) <= 1 {
		return Result{}, fmt.Errorf("%w: found %d peak(s)", ErrInsufficientSignal, len(peaks))
	}

	frames := len(energy)
	seconds := float64(frames) / float64(w.SampleRate)
	raw := float64(len(peaks)) / seconds * 60

	return Result{
		BPM:         e.rounding.apply(raw),
		RawBPM:      raw,
		Peaks:       peaks,
		Frames:      frames,
		SampleRate:  w.SampleRate,
		Duration:    w.Duration(),
		MinDistance: dist,
	}, nil
}

// Energy validates w and returns its normalized energy signal, one value in
// [0, 1] per mono frame.
func Energy(w Waveform) ([]float64, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}

	frames := w.Frames()
	mono := w.Samples[:frames]
	if w.Channels > 1 {
		mono = make([]float32, frames)
		audio.MixToMono(mono, w.Samples[:frames*w.Channels], w.Channels)
	}

	energy := make([]float64, frames)
	for i, v := range mono {
		x := float64(v)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: frame %d", ErrNonFiniteSample, i)
		}
		energy[i] = x
	}

	peak := floats.Norm(energy, math.Inf(1))
	if peak == 0 {
		return nil, ErrSilentInput
	}

	floats.Scale(1/peak, energy)
	floats.Mul(energy, energy)

	return energy, nil
}
