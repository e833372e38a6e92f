// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/heartbpm/utils"
)

const (
	wavBitDepth  = 16
	wavFormatPCM = 1
)

// WriteWAV encodes mono samples as a 16-bit PCM WAV file. The header sizes
// are patched on completion, hence the io.WriteSeeker.
func WriteWAV(w io.WriteSeeker, sampleRate int, samples []float32) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidParameter, sampleRate)
	}

	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = utils.FloatToPCM(v, wavBitDepth)
	}

	enc := gowav.NewEncoder(w, sampleRate, wavBitDepth, 1, wavFormatPCM)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}
