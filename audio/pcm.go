// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// PCMScale returns the divisor mapping signed integer samples of bitDepth
// bits onto [-1, 1).
func PCMScale(bitDepth int) (float32, error) {
	switch bitDepth {
	case 8:
		return 1 << 7, nil
	case 16:
		return 1 << 15, nil
	case 24:
		return 1 << 23, nil
	case 32:
		return 1 << 31, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

// IntsToFloats scales src into dst and returns the number of samples written.
func IntsToFloats(dst []float32, src []int, scale float32) int {
	n := min(len(dst), len(src))
	inv := 1 / scale
	for i, v := range src[:n] {
		dst[i] = float32(v) * inv
	}

	return n
}

// Seekable returns r itself when it can seek, otherwise it buffers the
// remaining input in memory.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}

	return bytes.NewReader(data), nil
}

// PCMReader is the reading half shared by the go-audio wav and aiff decoders.
type PCMReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// PCMSource adapts a PCMReader to Source.
type PCMSource struct {
	dec        PCMReader
	sampleRate int
	channels   int
	scale      float32

	buf   *goaudio.IntBuffer
	data  []int
	carry []int // samples of a frame split across two reads
	done  bool
}

// NewPCMSource wraps dec, whose integer samples are bitDepth bits wide.
func NewPCMSource(dec PCMReader, sampleRate, channels, bitDepth int) (*PCMSource, error) {
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}

	scale, err := PCMScale(bitDepth)
	if err != nil {
		return nil, err
	}

	return &PCMSource{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		scale:      scale,
		buf:        &goaudio.IntBuffer{Format: dec.Format(), SourceBitDepth: bitDepth},
		carry:      make([]int, 0, channels),
	}, nil
}

func (s *PCMSource) SampleRate() int { return s.sampleRate }
func (s *PCMSource) Channels() int   { return s.channels }
func (s *PCMSource) Close() error    { return nil }

func (s *PCMSource) BufSize() int {
	if cap(s.data) > 0 {
		return cap(s.data)
	}

	return 4096
}

func (s *PCMSource) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}

	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	if cap(s.data) < want {
		s.data = make([]int, want)
	}
	s.data = s.data[:want]

	for {
		c := copy(s.data, s.carry)
		s.carry = s.carry[:0]

		s.buf.Data = s.data[c:]
		n, err := s.dec.PCMBuffer(s.buf)
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("reading PCM: %w", err)
		}
		if n == 0 {
			// a truncated last frame is dropped
			s.done = true
			return 0, io.EOF
		}

		total := c + n
		whole := total - total%s.channels
		s.carry = append(s.carry, s.data[whole:total]...)

		if whole > 0 {
			return IntsToFloats(dst, s.data[:whole], s.scale), nil
		}
	}
}
