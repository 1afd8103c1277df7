// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/go-audio/wav"
	"github.com/ik5/fmodgo/audio"
)

// failWriter accepts limit bytes, then fails.
type failWriter struct {
	limit int
	n     int
}

var errWrite = errors.New("disk full")

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > w.limit {
		return 0, errWrite
	}
	w.n += len(p)
	return len(p), nil
}

func TestWrite_ByteExact(t *testing.T) {
	t.Parallel()

	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	h := Header{Channels: 2, SampleRate: 44100, BitsPerSample: 16, DataLen: len(payload)}

	buf := new(bytes.Buffer)
	if err := Write(buf, h, payload[:6], payload[6:]); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := []byte{
		'R', 'I', 'F', 'F', 44, 0, 0, 0, 'W', 'A', 'V', 'E',
		'f', 'm', 't', ' ', 16, 0, 0, 0,
		1, 0, // PCM
		2, 0, // channels
		0x44, 0xac, 0, 0, // 44100
		0x10, 0xb1, 0x02, 0, // 176400
		4, 0, // block align
		16, 0, // bits
		'd', 'a', 't', 'a', 8, 0, 0, 0,
		1, 2, 3, 4, 5, 6, 7, 8,
	}

	if got := buf.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("Write() =\n% x\nwant\n% x", got, want)
	}
}

func TestWrite_EmptyPayload(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	h := Header{Channels: 1, SampleRate: 8000, BitsPerSample: 8}
	if err := Write(buf, h); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data := buf.Bytes()
	if len(data) != HeaderSize {
		t.Fatalf("len = %d, want %d", len(data), HeaderSize)
	}
	if got := binary.LittleEndian.Uint32(data[4:8]); got != 36 {
		t.Errorf("RIFF size = %d, want 36", got)
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != 0 {
		t.Errorf("data size = %d, want 0", got)
	}
}

func TestHeader_DerivedFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		header     Header
		byteRate   uint32
		blockAlign uint16
	}{
		{
			name:       "stereo 16-bit",
			header:     Header{Channels: 2, SampleRate: 44100, BitsPerSample: 16},
			byteRate:   176400,
			blockAlign: 4,
		},
		{
			name:       "mono 8-bit",
			header:     Header{Channels: 1, SampleRate: 8000, BitsPerSample: 8},
			byteRate:   8000,
			blockAlign: 1,
		},
		{
			name:       "mono 4-bit truncates",
			header:     Header{Channels: 1, SampleRate: 8001, BitsPerSample: 4},
			byteRate:   4000,
			blockAlign: 0,
		},
		{
			name:       "5.1 24-bit",
			header:     Header{Channels: 6, SampleRate: 48000, BitsPerSample: 24},
			byteRate:   864000,
			blockAlign: 18,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.header.ByteRate(); got != tt.byteRate {
				t.Errorf("ByteRate() = %d, want %d", got, tt.byteRate)
			}
			if got := tt.header.BlockAlign(); got != tt.blockAlign {
				t.Errorf("BlockAlign() = %d, want %d", got, tt.blockAlign)
			}
		})
	}
}

func TestHeader_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  Header
		wantErr error
	}{
		{name: "valid", header: Header{Channels: 2, SampleRate: 44100, BitsPerSample: 16, DataLen: 8}},
		{name: "largest payload", header: Header{Channels: 1, SampleRate: 8000, BitsPerSample: 8, DataLen: MaxPayload}},
		{name: "zero channels", header: Header{SampleRate: 8000, BitsPerSample: 16}, wantErr: ErrInvalidHeader},
		{name: "zero bits", header: Header{Channels: 1, SampleRate: 8000}, wantErr: ErrInvalidHeader},
		{name: "oversized bits", header: Header{Channels: 1, SampleRate: 8000, BitsPerSample: 64}, wantErr: ErrInvalidHeader},
		{name: "negative rate", header: Header{Channels: 1, SampleRate: -1, BitsPerSample: 16}, wantErr: ErrInvalidHeader},
		{name: "negative length", header: Header{Channels: 1, SampleRate: 8000, BitsPerSample: 16, DataLen: -1}, wantErr: ErrInvalidHeader},
		{name: "overflow", header: Header{Channels: 1, SampleRate: 8000, BitsPerSample: 16, DataLen: MaxPayload + 1}, wantErr: ErrHeaderOverflow},
		{name: "largest block", header: Header{Channels: 16383, SampleRate: 8000, BitsPerSample: 32}},
		{name: "block align overflow", header: Header{Channels: math.MaxUint16, SampleRate: 8000, BitsPerSample: 16}, wantErr: ErrInvalidHeader},
		{name: "byte rate overflow", header: Header{Channels: math.MaxUint16, SampleRate: 96000, BitsPerSample: 8}, wantErr: ErrInvalidHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.header.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWrite_PayloadMismatch(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	h := Header{Channels: 1, SampleRate: 8000, BitsPerSample: 16, DataLen: 4}

	err := Write(buf, h, []byte{1, 2})
	if !errors.Is(err, ErrPayloadLength) {
		t.Fatalf("Write() error = %v, want ErrPayloadLength", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Write() wrote %d bytes before failing, want 0", buf.Len())
	}
}

func TestWrite_InvalidHeaderWritesNothing(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	err := Write(buf, Header{SampleRate: 8000, BitsPerSample: 16})
	if !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("Write() error = %v, want ErrInvalidHeader", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Write() wrote %d bytes, want 0", buf.Len())
	}
}

func TestWrite_WriterErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		limit int
	}{
		{name: "header", limit: 10},
		{name: "first chunk", limit: HeaderSize},
		{name: "second chunk", limit: HeaderSize + 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := Header{Channels: 1, SampleRate: 8000, BitsPerSample: 16, DataLen: 4}
			err := Write(&failWriter{limit: tt.limit}, h, []byte{1, 2}, []byte{3, 4})
			if !errors.Is(err, errWrite) {
				t.Errorf("Write() error = %v, want %v", err, errWrite)
			}
		})
	}
}

func TestWrite_ReadBack(t *testing.T) {
	t.Parallel()

	samples := []int{0, 1000, -1000, 32767, -32768, 42, 7, -7}
	payload, err := audio.AppendInts(nil, samples, 16)
	if err != nil {
		t.Fatal(err)
	}

	h := Header{Channels: 2, SampleRate: 22050, BitsPerSample: 16, DataLen: len(payload)}
	buf := new(bytes.Buffer)
	if err := Write(buf, h, payload); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	dec := wav.NewDecoder(bytes.NewReader(buf.Bytes()))
	if !dec.IsValidFile() {
		t.Fatalf("go-audio rejected the file: %v", dec.Err())
	}
	if dec.NumChans != 2 || dec.SampleRate != 22050 || dec.BitDepth != 16 {
		t.Errorf("decoded format = %d ch, %d Hz, %d bits", dec.NumChans, dec.SampleRate, dec.BitDepth)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}
	if len(pcm.Data) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(pcm.Data), len(samples))
	}
	for i, s := range samples {
		if pcm.Data[i] != s {
			t.Errorf("sample %d = %d, want %d", i, pcm.Data[i], s)
		}
	}
}

func BenchmarkWrite(b *testing.B) {
	payload := make([]byte, 1<<16)
	h := Header{Channels: 2, SampleRate: 44100, BitsPerSample: 16, DataLen: len(payload)}
	buf := new(bytes.Buffer)

	b.ReportAllocs()

	for range b.N {
		buf.Reset()
		if err := Write(buf, h, payload); err != nil {
			b.Fatal(err)
		}
	}
}
