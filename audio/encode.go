// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/fmodgo/utils"
)

// AppendInts appends samples to dst as little-endian PCM of bitDepth bits.
// 8-bit samples are expected unsigned (0-255), as WAV stores them.
func AppendInts(dst []byte, samples []int, bitDepth int) ([]byte, error) {
	switch bitDepth {
	case 8:
		for _, s := range samples {
			dst = append(dst, byte(s))
		}
	case 16:
		for _, s := range samples {
			dst = binary.LittleEndian.AppendUint16(dst, uint16(int16(s)))
		}
	case 24:
		for _, s := range samples {
			v := uint32(int32(s))
			dst = append(dst, byte(v), byte(v>>8), byte(v>>16))
		}
	case 32:
		for _, s := range samples {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(int32(s)))
		}
	default:
		return dst, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	return dst, nil
}

// AppendFloat32s appends samples in [-1,1] to dst as 16-bit PCM.
func AppendFloat32s(dst []byte, samples []float32) []byte {
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(utils.Float32ToInt16(s)))
	}
	return dst
}
