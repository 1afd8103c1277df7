// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file loading.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
// The whole stream is decoded into memory:
//
//	f, _ := os.Open("audio.mp3")
//	pcm, err := mp3.Loader{}.Load(f)
//
// # Output Format
//
//   - Sample format: 16-bit signed little endian
//   - Channels: 2 (go-mp3 duplicates mono streams)
//   - Sample rate: as stored in the file (typically 44.1kHz or 48kHz)
package mp3
