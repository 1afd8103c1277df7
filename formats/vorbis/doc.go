// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file loading.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis files.
// Vorbis is a free, open-source lossy audio compression format.
//
// The decoder produces float samples; Loader quantises them to 16-bit PCM,
// clamping anything outside [-1.0, 1.0]:
//
//	f, _ := os.Open("audio.ogg")
//	pcm, err := vorbis.Loader{}.Load(f)
//
// Channel count and sample rate are taken from the stream headers.
package vorbis
