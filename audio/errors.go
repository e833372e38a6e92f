// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize      = errors.New("dst size must be multiple of channels")
	ErrInvalidChannels     = errors.New("channel count must be positive")
	ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")
	ErrStreamTooLong       = errors.New("stream exceeds sample limit")
)
