// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/fmodgo/audio"
)

// pcmReader is the subset of wav.Decoder the loader needs, for testing.
type pcmReader interface {
	IsValidFile() bool
	FullPCMBuffer() (*goaudio.IntBuffer, error)
}

// Loader decodes integer PCM WAV files with github.com/go-audio/wav.
type Loader struct{}

func (Loader) Load(r io.Reader) (*audio.PCM, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedWavLayout, dec.WavAudioFormat)
	}

	return decode(dec, int(dec.BitDepth))
}

func decode(dec pcmReader, bitDepth int) (*audio.PCM, error) {
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decoding wav data: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, audio.ErrInvalidChannels
	}

	data, err := audio.AppendInts(make([]byte, 0, len(buf.Data)*bitDepth/8), buf.Data, bitDepth)
	if err != nil {
		return nil, err
	}

	return &audio.PCM{
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
		BitDepth:   bitDepth,
		Data:       data,
	}, nil
}
