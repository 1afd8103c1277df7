// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/fmodgo/audio"
	"github.com/jfreymuth/oggvorbis"
)

// readSize is the number of float values requested per Read.
const readSize = 4096

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// Loader decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
type Loader struct{}

func (Loader) Load(r io.Reader) (*audio.PCM, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening ogg stream: %w", err)
	}

	return decode(dec)
}

// decode drains dec and quantises its float output to 16-bit PCM.
func decode(dec oggReader) (*audio.PCM, error) {
	channels := dec.Channels()
	if channels < 1 {
		return nil, audio.ErrInvalidChannels
	}

	buf := make([]float32, readSize-readSize%channels)
	var data []byte

	for {
		n, err := dec.Read(buf)
		data = audio.AppendFloat32s(data, buf[:n])

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding ogg data: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return &audio.PCM{
		SampleRate: dec.SampleRate(),
		Channels:   channels,
		BitDepth:   16,
		Data:       data,
	}, nil
}
