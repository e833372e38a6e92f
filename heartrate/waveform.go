// SPDX-License-Identifier: EPL-2.0

package heartrate

import "time"

// Waveform is decoded PCM audio held in memory. Samples are interleaved when
// Channels > 1 and nominally lie in [-1, 1]. The estimator never writes to
// Samples.
type Waveform struct {
	SampleRate int
	Channels   int
	Samples    []float32
}

// Frames returns the number of complete frames; a trailing partial frame is
// not counted.
func (w Waveform) Frames() int {
	if w.Channels <= 0 {
		return 0
	}

	return len(w.Samples) / w.Channels
}

// Duration returns the playing time of the complete frames.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(w.Frames()) / float64(w.SampleRate) * float64(time.Second))
}

func (w Waveform) validate() error {
	switch {
	case w.SampleRate <= 0:
		return ErrInvalidSampleRate
	case w.Channels <= 0:
		return ErrInvalidChannelCount
	case w.Frames() == 0:
		return ErrEmptyWaveform
	}

	return nil
}
