// SPDX-License-Identifier: EPL-2.0

package heartrate

import "errors"

var (
	ErrInvalidSampleRate   = errors.New("sample rate must be positive")
	ErrInvalidChannelCount = errors.New("channel count must be positive")
	ErrEmptyWaveform       = errors.New("waveform contains no samples")
	ErrNonFiniteSample     = errors.New("waveform contains NaN or infinite samples")
	ErrSilentInput         = errors.New("waveform is silent")
	ErrInsufficientSignal  = errors.New("not enough heartbeats detected to estimate a rate")
	ErrInvalidOption       = errors.New("invalid estimator option")
)
