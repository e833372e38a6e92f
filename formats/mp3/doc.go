// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio through
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always emits interleaved stereo 16-bit PCM, so a mono recording
// comes out as two identical channels. Downmix with audio.MonoMixer or let
// the estimator average the channels:
//
//	file, _ := os.Open("heartbeat.mp3")
//	source, err := mp3.Decoder{}.Decode(file)
//	if errors.Is(err, mp3.ErrNotMP3File) {
//	    // no decodable frame
//	}
//	mono := audio.NewMonoMixer(source)
//
// The stream is decoded lazily; nothing is buffered beyond one read.
package mp3
