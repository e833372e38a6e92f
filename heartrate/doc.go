// SPDX-License-Identifier: EPL-2.0

// Package heartrate estimates a heart rate in beats per minute from a
// recording of heart sounds.
//
// # Algorithm
//
// Estimate works on a decoded Waveform in four steps:
//
//  1. Multi-channel audio is averaged into one channel, frame by frame.
//  2. The signal is divided by its largest absolute sample. A silent
//     recording fails with ErrSilentInput.
//  3. Every sample is squared, giving an energy signal in [0, 1].
//  4. Peaks of the energy signal at least HeightThreshold high (0.1 by
//     default) are collected, keeping at most one per MinDistance samples.
//     MinDistance is ceil(sampleRate / (MaxBPM / 60)), so the default cap of
//     180 BPM allows one beat per third of a second. Between two peaks that
//     are too close the stronger one wins, and on equal energy the earlier.
//
// The rate is the number of peaks divided by the recording length, scaled to
// a minute. Fewer than two peaks fail with ErrInsufficientSignal.
//
// # Rounding
//
// Result.RawBPM keeps the fraction. Result.BPM rounds it to the nearest
// integer unless the estimator was built WithRounding(RoundTruncate), which
// drops the fraction instead.
//
// # Spectral cross-check
//
// Spectral reads the rate off the strongest periodicity of the energy
// envelope. It does not depend on the peak threshold and is useful to spot
// recordings where the peak count is off by a few beats, but Estimate stays
// the reported value.
//
// # Errors
//
// Every failure wraps one of the package's sentinel errors; use errors.Is:
//
//	res, err := heartrate.Estimate(w)
//	switch {
//	case errors.Is(err, heartrate.ErrSilentInput):
//	case errors.Is(err, heartrate.ErrInsufficientSignal):
//	}
//
// The estimator performs no I/O and keeps no state between calls.
package heartrate
