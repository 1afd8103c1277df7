// SPDX-License-Identifier: EPL-2.0

// Package audio holds the in-memory representation of decoded sounds.
//
// Every format package under formats/ decodes a complete file into a PCM
// value. PCM data is kept in the byte layout a WAV data chunk uses:
// interleaved frames, little-endian samples, 8-bit samples unsigned and
// wider samples signed. This is the layout an engine hands back when a
// sound's sample data is locked, so it can be written out unchanged.
//
// # Loaders
//
// A Loader turns a reader into PCM:
//
//	type Loader interface {
//	    Load(r io.Reader) (*PCM, error)
//	}
//
// Loaders are kept in a Registry keyed by format name. Keys are
// case-insensitive, and Ext maps a file name to the key used for lookup:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Loader{})
//	loader, ok := registry.Get(audio.Ext("music.WAV"))
//
// # Encoding
//
// Decoders produce either integer samples (go-audio buffers) or float
// samples in [-1.0, 1.0]. AppendInts and AppendFloat32s convert both into
// PCM bytes. Floats are always written as 16-bit samples.
//
// # Error Handling
//
// ErrUnsupportedBitDepth is returned for sample widths other than 8, 16,
// 24 and 32 bits. ErrInvalidChannels is returned when a decoder reports a
// non-positive channel count. Both are sentinels and may be wrapped.
package audio
