// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrInvalidChannels     = errors.New("channel count must be positive")
)
