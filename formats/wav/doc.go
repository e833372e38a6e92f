// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE files through github.com/go-audio/wav.
//
// Integer PCM at 16, 24 and 32 bits is accepted, both with the plain PCM
// format tag and with WAVE_FORMAT_EXTENSIBLE headers. Unknown chunks
// between fmt and data are skipped.
//
//	file, _ := os.Open("heartbeat.wav")
//	source, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE at all
//	}
//
// Decode needs to seek; a reader without Seek is buffered in memory first.
// Samples come out as interleaved float32 in [-1, 1).
package wav
