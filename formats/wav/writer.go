// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	// HeaderSize is the size of the canonical RIFF, fmt and data headers.
	HeaderSize = 44

	// MaxPayload is the largest data chunk a header can describe.
	MaxPayload = math.MaxUint32 - (HeaderSize - 1)

	formatPCM = 1
	fmtSize   = 16
)

// Header describes a canonical PCM WAV file.
type Header struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
	DataLen       int
}

// ByteRate is SampleRate*Channels*BitsPerSample/8, truncated.
func (h Header) ByteRate() uint32 {
	return uint32(h.byteRate())
}

func (h Header) byteRate() int64 {
	return int64(h.SampleRate) * int64(h.Channels) * int64(h.BitsPerSample) / 8
}

// BlockAlign is Channels*BitsPerSample/8, truncated.
func (h Header) BlockAlign() uint16 {
	return uint16(h.Channels * h.BitsPerSample / 8)
}

// Validate reports whether every field fits its slot in the header.
func (h Header) Validate() error {
	switch {
	case h.Channels < 1 || h.Channels > math.MaxUint16:
		return fmt.Errorf("%w: %d channels", ErrInvalidHeader, h.Channels)
	case h.BitsPerSample < 1 || h.BitsPerSample > 32:
		return fmt.Errorf("%w: %d bits per sample", ErrInvalidHeader, h.BitsPerSample)
	case h.SampleRate < 0 || int64(h.SampleRate) > math.MaxUint32:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidHeader, h.SampleRate)
	case h.Channels*h.BitsPerSample/8 > math.MaxUint16:
		return fmt.Errorf("%w: block align of %d channels at %d bits", ErrInvalidHeader, h.Channels, h.BitsPerSample)
	case h.byteRate() > math.MaxUint32:
		return fmt.Errorf("%w: byte rate %d", ErrInvalidHeader, h.byteRate())
	case h.DataLen < 0:
		return fmt.Errorf("%w: data length %d", ErrInvalidHeader, h.DataLen)
	case int64(h.DataLen) > MaxPayload:
		return fmt.Errorf("%w: %d bytes", ErrHeaderOverflow, h.DataLen)
	}
	return nil
}

// AppendBinary appends the 44 header bytes to dst. h is not validated.
func (h Header) AppendBinary(dst []byte) []byte {
	le := binary.LittleEndian

	dst = append(dst, "RIFF"...)
	dst = le.AppendUint32(dst, uint32(HeaderSize-8+h.DataLen))
	dst = append(dst, "WAVE"...)

	dst = append(dst, "fmt "...)
	dst = le.AppendUint32(dst, fmtSize)
	dst = le.AppendUint16(dst, formatPCM)
	dst = le.AppendUint16(dst, uint16(h.Channels))
	dst = le.AppendUint32(dst, uint32(h.SampleRate))
	dst = le.AppendUint32(dst, h.ByteRate())
	dst = le.AppendUint16(dst, h.BlockAlign())
	dst = le.AppendUint16(dst, uint16(h.BitsPerSample))

	dst = append(dst, "data"...)
	dst = le.AppendUint32(dst, uint32(h.DataLen))
	return dst
}

// WriteHeader validates h and writes its 44 bytes to w.
func WriteHeader(w io.Writer, h Header) error {
	if err := h.Validate(); err != nil {
		return err
	}

	if _, err := w.Write(h.AppendBinary(make([]byte, 0, HeaderSize))); err != nil {
		return fmt.Errorf("writing WAV header: %w", err)
	}
	return nil
}

// Write emits a complete WAV file: the header followed by the payload
// chunks in order. The chunk lengths must add up to h.DataLen.
func Write(w io.Writer, h Header, payload ...[]byte) error {
	total := 0
	for _, p := range payload {
		total += len(p)
	}
	if total != h.DataLen {
		return fmt.Errorf("%w: header %d, payload %d", ErrPayloadLength, h.DataLen, total)
	}

	if err := WriteHeader(w, h); err != nil {
		return err
	}

	for _, p := range payload {
		if len(p) == 0 {
			continue
		}
		if _, err := w.Write(p); err != nil {
			return fmt.Errorf("writing WAV data: %w", err)
		}
	}
	return nil
}
