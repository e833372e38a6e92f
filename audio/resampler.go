// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/heartbpm/utils"
)

// lowpassAlpha is the coefficient of the one-pole filter applied to the input
// when downsampling.
const lowpassAlpha = 0.5

// Resampler converts src to another sample rate with Catmull-Rom
// interpolation. Interleaved layout and channel count are preserved.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames consumed per output frame
	channels int

	// window[0..3] hold frames t-1, t, t+1, t+2; output lies between
	// window[1] and window[2] at offset frac.
	window  [4][]float32
	frac    float64
	padding int // repeated tail frames pushed after the source ended

	frame   []float32
	started bool
	eof     bool

	lowpass bool
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		frame:    make([]float32, channels),
		state:    make([]float32, channels),
	}
	r.lowpass = r.step > 1

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// pull reads exactly one frame from src into r.frame. ok is false once the
// source is exhausted.
func (r *Resampler) pull() (ok bool, err error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.frame)
	if errors.Is(err, io.EOF) || (n == 0 && err == nil) {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("%w", err)
	}

	if n < r.channels {
		return false, nil
	}

	if r.lowpass {
		for c, v := range r.frame {
			r.state[c] = lowpassAlpha*v + (1-lowpassAlpha)*r.state[c]
			r.frame[c] = r.state[c]
		}
	}

	return true, nil
}

// advance shifts the window by one frame, repeating the newest frame when the
// source has nothing left.
func (r *Resampler) advance() error {
	ok, err := r.pull()
	if err != nil {
		return err
	}

	first := r.window[0]
	copy(r.window[:], r.window[1:])
	r.window[3] = first

	if ok {
		copy(r.window[3], r.frame)
	} else {
		copy(r.window[3], r.window[2])
		r.padding++
	}

	return nil
}

func (r *Resampler) prime() error {
	r.started = true

	ok, err := r.pull()
	if err != nil {
		return err
	}
	if !ok {
		r.padding = len(r.window)
		return nil
	}

	if r.lowpass {
		// settle the filter on the first frame instead of ramping up from zero
		copy(r.state, r.frame)
	}

	copy(r.window[0], r.frame)
	copy(r.window[1], r.frame)

	for i := 2; i < len(r.window); i++ {
		ok, err := r.pull()
		if err != nil {
			return err
		}
		if ok {
			copy(r.window[i], r.frame)
			continue
		}

		copy(r.window[i], r.window[i-1])
		r.padding++
	}

	return nil
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels <= 0 {
		return 0, ErrInvalidChannels
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.started {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written < len(dst) {
		// window[1] turns into padding once three tail frames were pushed
		if r.padding > 2 {
			return written, io.EOF
		}

		t := float32(r.frac)
		for c := range r.channels {
			dst[written+c] = utils.CubicInterpolate(
				r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], t,
			)
		}
		written += r.channels

		r.frac += r.step
		for r.frac >= 1 {
			r.frac--
			if err := r.advance(); err != nil {
				return written, err
			}
		}
	}

	return written, nil
}
