// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes canonical PCM WAV files.
//
// # Writing
//
// Write emits the 44-byte canonical header followed by the payload:
//
//	RIFF <36+len> WAVE
//	fmt  16 <tag 1> <channels> <rate> <byte rate> <block align> <bits>
//	data <len> <payload>
//
// All fields are little endian. Byte rate and block align are computed with
// truncating integer arithmetic, so odd bit depths produce the same values
// other tools write. The payload can be passed as several slices, which is
// how the two halves of a locked ring buffer are written without copying:
//
//	h := wav.Header{Channels: 2, SampleRate: 44100, BitsPerSample: 16, DataLen: len(a) + len(b)}
//	err := wav.Write(w, h, a, b)
//
// Header.Validate rejects headers whose fields do not fit the format:
// zero channels, bit depths outside 1..32, and payloads too large for the
// 32-bit RIFF size (ErrHeaderOverflow). Nothing is written for an invalid
// header.
//
// # Loading
//
// Loader decodes integer PCM files with github.com/go-audio/wav and returns
// the data chunk as audio.PCM. Non-PCM files (float, ADPCM) fail with
// ErrUnsupportedWavLayout. go-audio needs an io.ReadSeeker, so other
// readers are read into memory first.
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrUnsupportedWavLayout: the format tag is not integer PCM
//   - ErrInvalidHeader: a header field is out of range
//   - ErrHeaderOverflow: the payload does not fit a RIFF chunk
//   - ErrPayloadLength: the payload slices do not add up to DataLen
package wav
