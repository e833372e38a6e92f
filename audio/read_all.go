// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// ReadAll drains src and returns every interleaved sample it produced.
// bufferSize is the number of samples requested per read; values below one
// fall back to src.BufSize(). maxSamples caps the collected length, zero
// disables the cap; a longer stream fails with ErrStreamTooLong.
func ReadAll(src Source, bufferSize, maxSamples int) ([]float32, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}

	if bufferSize < 1 {
		bufferSize = src.BufSize()
	}
	// keep reads frame aligned
	bufferSize = max(bufferSize-bufferSize%channels, channels)

	buf := make([]float32, bufferSize)
	var out []float32

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			if maxSamples > 0 && len(out)+n > maxSamples {
				return nil, ErrStreamTooLong
			}
			out = append(out, buf[:n]...)
		}

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if n == 0 {
			// a source that makes no progress is treated as finished
			return out, nil
		}
	}
}
