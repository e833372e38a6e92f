// SPDX-License-Identifier: EPL-2.0

package synth

import "errors"

var ErrInvalidParameter = errors.New("invalid synthesis parameter")
