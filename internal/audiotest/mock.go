// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds in-memory audio fixtures shared by the tests of the
// decoding, loading and estimation packages.
package audiotest

import (
	"io"
	"math"
)

// MockSource is an audio.Source backed by a waveform function. It does not
// import the audio package so that package's own tests can use it.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	waveform   func(frame, channel int) float32

	// Err, when set, is returned by ReadSamples once FailAt frames were read.
	Err    error
	FailAt int

	Closed bool
}

// NewMockSource builds a source of frames frames whose value for each
// channel comes from waveform.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// NewSliceSource replays mono samples on every channel.
func NewSliceSource(sampleRate, channels int, mono []float32) *MockSource {
	return NewMockSource(sampleRate, channels, len(mono), func(frame, _ int) float32 {
		return mono[frame]
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.Closed = true
	return nil
}

// Reset rewinds the source to its first frame.
func (m *MockSource) Reset() {
	m.pos = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.Err != nil && m.pos >= m.FailAt {
		return 0, m.Err
	}
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	want := min(len(dst)/m.channels, m.frames-m.pos)
	if m.Err != nil {
		want = min(want, m.FailAt-m.pos)
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
