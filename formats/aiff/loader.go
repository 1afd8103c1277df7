// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/fmodgo/audio"
)

// chunkSamples is the number of samples decoded per PCMBuffer call.
const chunkSamples = 4096

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Loader decodes AIFF files with github.com/go-audio/aiff.
type Loader struct{}

func (Loader) Load(r io.Reader) (*audio.PCM, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	return decode(dec, int(dec.BitDepth))
}

func decode(dec aiffReader, bitDepth int) (*audio.PCM, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", audio.ErrUnsupportedBitDepth, bitDepth)
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}
	if format.NumChannels < 1 {
		return nil, audio.ErrInvalidChannels
	}

	buf := &goaudio.IntBuffer{
		Data:           make([]int, chunkSamples),
		Format:         format,
		SourceBitDepth: bitDepth,
	}

	var data []byte
	for {
		n, err := dec.PCMBuffer(buf)
		if n > 0 {
			samples := buf.Data[:n]
			// AIFF stores 8-bit samples signed, WAV layout wants them unsigned.
			if bitDepth == 8 {
				for i := range samples {
					samples[i] += 128
				}
			}

			var aerr error
			if data, aerr = audio.AppendInts(data, samples, bitDepth); aerr != nil {
				return nil, aerr
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding aiff data: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return &audio.PCM{
		SampleRate: format.SampleRate,
		Channels:   format.NumChannels,
		BitDepth:   bitDepth,
		Data:       data,
	}, nil
}
