// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MixToMono averages each interleaved frame of src into dst and returns the
// number of frames written. A trailing partial frame is ignored. dst must hold
// at least len(src)/channels values.
func MixToMono(dst, src []float32, channels int) int {
	if channels <= 0 {
		return 0
	}

	frames := len(src) / channels
	if channels == 1 {
		return copy(dst, src[:frames])
	}

	inv := float32(1) / float32(channels)

	switch channels {
	case 2:
		for f := range frames {
			i := f << 1
			dst[f] = (src[i] + src[i+1]) * 0.5
		}
	default:
		for f := range frames {
			var sum float32
			for _, v := range src[f*channels : (f+1)*channels] {
				sum += v
			}
			dst[f] = sum * inv
		}
	}

	return frames
}

// MonoMixer is a Source that downmixes src to a single channel.
type MonoMixer struct {
	src Source
	tmp []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]float32, 0, 8192),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}
	if channels <= 0 {
		return 0, ErrInvalidChannels
	}

	need := len(dst) * channels
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}

	return MixToMono(dst, m.tmp[:n], channels), err
}
