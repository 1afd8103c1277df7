// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/fmodgo/audio"
)

const (
	// go-mp3 always decodes to interleaved 16-bit stereo.
	channels = 2
	bitDepth = 16
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// Loader decodes MP3 files with github.com/hajimehoshi/go-mp3.
type Loader struct{}

func (Loader) Load(r io.Reader) (*audio.PCM, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	return decode(dec)
}

func decode(dec mp3Reader) (*audio.PCM, error) {
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decoding mp3 data: %w", err)
	}

	// Drop a trailing partial frame.
	frame := channels * bitDepth / 8
	data = data[:len(data)/frame*frame]

	return &audio.PCM{
		SampleRate: dec.SampleRate(),
		Channels:   channels,
		BitDepth:   bitDepth,
		Data:       data,
	}, nil
}
