// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
)

// mockSource generates frames from a waveform function. failAt, when set,
// makes ReadSamples return err once that many frames were produced.
type mockSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	waveform   func(frame, channel int) float32

	failAt int
	err    error
	closed bool
}

func newMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *mockSource {
	return &mockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
		failAt:     -1,
	}
}

func newSilentSource(sampleRate, channels, frames int) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

func newSineSource(sampleRate, channels, frames int, freq float64) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(sampleRate)))
	})
}

// newRampSource yields frame index times step on every channel.
func newRampSource(sampleRate, channels, frames int, step float32) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(frame) * step
	})
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 1024 }

func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

func (m *mockSource) Reset() { m.pos = 0 }

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.failAt >= 0 && m.pos >= m.failAt {
		return 0, m.err
	}
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	want := min(len(dst)/m.channels, m.frames-m.pos)
	if m.failAt >= 0 {
		want = min(want, m.failAt-m.pos)
	}

	for f := range want {
		for c := range m.channels {
			dst[f*m.channels+c] = m.waveform(m.pos+f, c)
		}
	}
	m.pos += want

	if m.pos >= m.frames {
		return want * m.channels, io.EOF
	}

	return want * m.channels, nil
}
