// SPDX-License-Identifier: EPL-2.0

// Package heartbpm turns recorded heart sounds into a beats-per-minute
// figure.
//
// The root package loads audio into a heartrate.Waveform; the estimation
// itself lives in the heartrate subpackage:
//
//	w, err := heartbpm.LoadFile("beat.wav", nil, heartbpm.DefaultLoadOptions())
//	if err != nil {
//	    return err
//	}
//
//	res, err := heartrate.Estimate(w)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.BPM)
//
// # Supported Formats
//
// The built-in registry (formats.NewRegistry) decodes:
//   - WAV (PCM 16, 24 and 32-bit, including WAVE_FORMAT_EXTENSIBLE)
//   - AIFF (PCM 8, 16, 24 and 32-bit)
//   - MP3
//   - Ogg Vorbis
//
// The container is recognized from the first bytes of the stream, falling
// back to the file extension, so "recording.bin" holding WAV data still
// decodes. Pass a custom *audio.Registry to LoadFile or LoadReader to add or
// replace decoders.
//
// # Loading
//
// Load drains any audio.Source and applies LoadOptions on the way:
//
//	opts := heartbpm.DefaultLoadOptions() // mono, native rate, 10 minute cap
//	opts.TargetRate = 8000                // optional resampling
//	w, err := heartbpm.Load(src, opts)
//
// Recordings longer than MaxDuration fail with ErrTooLong before the whole
// stream is buffered.
//
// # Subpackages
//
//   - audio: the Source abstraction, resampler, downmixer and registry
//   - formats: container decoders and sniffing
//   - heartrate: peak based and spectral BPM estimation
//   - synth: synthetic heartbeat generation for testing and demos
package heartbpm
