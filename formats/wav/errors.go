// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrInvalidHeader        = errors.New("invalid WAV header")
	ErrHeaderOverflow       = errors.New("WAV payload does not fit a RIFF chunk")
	ErrPayloadLength        = errors.New("payload length does not match header")
)
