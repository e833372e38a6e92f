// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives the heart-rate pipeline is
// built from.
//
// # Source Interface
//
// Every decoder and processor implements Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values nominally in [-1, 1]. ReadSamples
// returns the number of values written, not frames, and io.EOF once the
// stream is finished. A read may return data together with io.EOF, so
// callers handle n before err.
//
// # Processing
//
// Sources chain:
//
//	src, _ := decoder.Decode(file)
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 8000))
//	samples, err := audio.ReadAll(mono, 4096, 0)
//
// Resampler uses Catmull-Rom interpolation with a one-pole low-pass filter
// when downsampling. MonoMixer and MixToMono average channels per frame.
//
// # Integer PCM
//
// PCMSource turns the integer buffers produced by the go-audio decoders into
// float32 samples, scaled by PCMScale for 8, 16, 24 and 32 bit depths.
//
// # Format Registry
//
// Registry maps file extensions to decoders. Keys are case-insensitive and a
// leading dot is ignored:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, ok := registry.ForPath("/tmp/HEARTBEAT.WAV")
//
// The registry is safe for concurrent use.
package audio
