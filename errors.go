// SPDX-License-Identifier: EPL-2.0

package heartbpm

import "errors"

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrTooLong           = errors.New("recording exceeds the maximum duration")
	ErrDecode            = errors.New("cannot decode audio")
)
