// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through
// github.com/jfreymuth/oggvorbis.
//
// Channel count and sample rate come from the stream headers; samples are
// interleaved float32 as produced by the Vorbis decoder:
//
//	file, _ := os.Open("heartbeat.ogg")
//	source, err := vorbis.Decoder{}.Decode(file)
//	if errors.Is(err, vorbis.ErrNotVorbisFile) {
//	    // missing or broken identification header
//	}
//
// Reads are trimmed to whole frames so channels never shift.
package vorbis
