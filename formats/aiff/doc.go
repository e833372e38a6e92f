// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files through
// github.com/go-audio/aiff.
//
// Signed PCM at 8, 16, 24 and 32 bits is supported with any channel count
// and sample rate. Samples are delivered as interleaved float32 in [-1, 1).
//
//	file, _ := os.Open("heartbeat.aiff")
//	source, err := aiff.Decoder{}.Decode(file)
//
// Like the WAV decoder, Decode buffers non-seekable readers in memory.
package aiff
