// SPDX-License-Identifier: EPL-2.0

// Package fmodgo is a Go object model over an FMOD Ex style audio engine.
//
// Every engine object is reached through a handle from package handle.
// Objects a program creates (the system, sounds, DSP units and groups) are
// owned and released exactly once; objects reached by traversal or owned by
// the engine (channels, connections, master groups) are borrowed and never
// released through this package.
//
//	sys, err := fmodgo.Open(soft.New())
//	if err != nil {
//	    return err
//	}
//	defer sys.Close()
//
//	sound, err := sys.CreateSound("music.ogg", engine.ModeDefault)
//	if err != nil {
//	    return err
//	}
//	ch, err := sound.Play()
//
// # Engines
//
// The engine is any engine.Engine. engine/soft decodes WAV, AIFF, MP3 and
// Ogg Vorbis files in memory and needs no native library; engine/native
// binds the FMOD Ex shared library.
//
// # Exporting
//
// Sound.ExportWAV and Sound.SaveToWAV write the sample data of a sound as a
// canonical PCM WAV file. The data is copied byte for byte as the engine
// holds it; nothing is resampled or converted.
package fmodgo
