// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) loading.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// Loader decodes the whole file and returns it as audio.PCM. AIFF stores
// samples big endian and signed; the loader rewrites them into the WAV
// layout audio.PCM uses, so 8-bit samples come out unsigned.
//
//	f, _ := os.Open("audio.aif")
//	pcm, err := aiff.Loader{}.Load(f)
//
// Supported bit depths are 8, 16, 24 and 32. Other depths fail with
// audio.ErrUnsupportedBitDepth.
package aiff
