// SPDX-License-Identifier: EPL-2.0

package heartbpm

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/heartbpm/audio"
	"github.com/ik5/heartbpm/formats"
	"github.com/ik5/heartbpm/heartrate"
)

const (
	DefaultBufferSize  = 4096
	DefaultMaxDuration = 10 * time.Minute
)

// LoadOptions control how a decoded stream becomes a Waveform.
type LoadOptions struct {
	// TargetRate resamples the stream when positive and different from the
	// native rate.
	TargetRate int
	// Mono downmixes multi-channel streams while reading.
	Mono bool
	// BufferSize is the number of samples requested per read.
	BufferSize int
	// MaxDuration rejects longer recordings with ErrTooLong. Zero disables
	// the check.
	MaxDuration time.Duration
}

// DefaultLoadOptions keeps the native rate, downmixes to mono and caps
// recordings at ten minutes.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Mono:        true,
		BufferSize:  DefaultBufferSize,
		MaxDuration: DefaultMaxDuration,
	}
}

// Load drains src into memory. src is not closed.
func Load(src audio.Source, opts LoadOptions) (heartrate.Waveform, error) {
	if src.SampleRate() <= 0 {
		return heartrate.Waveform{}, fmt.Errorf("%w: %d", heartrate.ErrInvalidSampleRate, src.SampleRate())
	}
	if src.Channels() <= 0 {
		return heartrate.Waveform{}, fmt.Errorf("%w: %d", heartrate.ErrInvalidChannelCount, src.Channels())
	}

	s := src
	if opts.TargetRate > 0 && opts.TargetRate != s.SampleRate() {
		s = audio.NewResampler(s, opts.TargetRate)
	}
	if opts.Mono && s.Channels() > 1 {
		s = audio.NewMonoMixer(s)
	}

	bufSize := opts.BufferSize
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}

	limit := 0
	if opts.MaxDuration > 0 {
		frames := int(math.Ceil(opts.MaxDuration.Seconds() * float64(s.SampleRate())))
		limit = frames * s.Channels()
	}

	samples, err := audio.ReadAll(s, bufSize, limit)
	if errors.Is(err, audio.ErrStreamTooLong) {
		return heartrate.Waveform{}, fmt.Errorf("%w of %s", ErrTooLong, opts.MaxDuration)
	}
	if err != nil {
		return heartrate.Waveform{}, fmt.Errorf("%w: reading samples: %w", ErrDecode, err)
	}

	return heartrate.Waveform{
		SampleRate: s.SampleRate(),
		Channels:   s.Channels(),
		Samples:    samples,
	}, nil
}

// LoadFile decodes the file at path with a decoder from reg, or the built-in
// registry when reg is nil.
func LoadFile(path string, reg *audio.Registry, opts LoadOptions) (heartrate.Waveform, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return heartrate.Waveform{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return heartrate.Waveform{}, fmt.Errorf("%w", err)
	}
	if info.IsDir() {
		return heartrate.Waveform{}, fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return heartrate.Waveform{}, fmt.Errorf("%w", err)
	}
	defer f.Close()

	return LoadReader(f, filepath.Base(path), reg, opts)
}

// LoadReader decodes r. The container is recognized from its first bytes when
// possible and from the extension of name otherwise, so a mislabeled upload
// still decodes.
func LoadReader(r io.Reader, name string, reg *audio.Registry, opts LoadOptions) (heartrate.Waveform, error) {
	if reg == nil {
		reg = formats.NewRegistry()
	}

	header, r, err := peekHeader(r)
	if err != nil {
		return heartrate.Waveform{}, err
	}

	dec, kind, err := pickDecoder(reg, header, name)
	if err != nil {
		return heartrate.Waveform{}, err
	}

	src, err := dec.Decode(r)
	if err != nil {
		return heartrate.Waveform{}, fmt.Errorf("%w as %s: %w", ErrDecode, kind, err)
	}
	defer src.Close()

	return Load(src, opts)
}

func pickDecoder(reg *audio.Registry, header []byte, name string) (audio.Decoder, string, error) {
	if kind := formats.Sniff(header); kind != "" {
		if dec, ok := reg.Get(kind); ok {
			return dec, kind, nil
		}
	}

	if dec, ok := reg.ForPath(name); ok {
		return dec, strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), "."), nil
	}

	ext := filepath.Ext(name)
	if ext == "" {
		ext = "no extension"
	}

	return nil, "", fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(reg.Formats(), ", "))
}

// peekHeader reads the first bytes of r and returns a reader that still
// yields the whole stream. Seekable readers are rewound so decoders can keep
// seeking on them.
func peekHeader(r io.Reader) ([]byte, io.Reader, error) {
	header := make([]byte, formats.SniffLen)

	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	header = header[:n]

	if rs, ok := r.(io.ReadSeeker); ok {
		if _, err := rs.Seek(int64(-n), io.SeekCurrent); err != nil {
			return nil, nil, fmt.Errorf("rewinding: %w", err)
		}
		return header, rs, nil
	}

	return header, io.MultiReader(bytes.NewReader(header), r), nil
}
