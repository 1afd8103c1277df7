// SPDX-License-Identifier: EPL-2.0

// Package soft is an in-memory engine.Engine.
//
// Sounds are decoded completely when they are created, using the loaders
// of the formats packages (WAV, AIFF, MP3 and Ogg Vorbis, picked by file
// extension or, for in-memory data without a name, by magic bytes). All
// other objects are rows in a table holding their parameters and
// relations. No audio is mixed or played: a channel records that a sound
// was started and keeps the parameters set on it.
//
// # Objects
//
// Identifiers start at 1 and are never reused. A system is created with a
// master channel group and a master sound group; both live as long as the
// engine and cannot be released. Channels and DSP connections belong to the
// engine and Release rejects them with engine.ResultBadCommand. Releasing a
// system releases nothing else.
//
// # Locking
//
// Lock treats a sound's data as a ring. A range running past the end
// continues from offset zero in the second region. Both regions alias the
// sound's buffer, so writes through them change the sound. A sound can be
// locked once at a time and cannot be released while locked.
//
// # Parameters
//
// Defaults follow the engine conventions: volume 1, pan 0, priority 128,
// frequency equal to the sound's sample rate, mix 1, DSPs active, sound
// groups with unlimited audible sounds (-1). Volume and pan are clamped;
// boolean parameters are stored as 0 or 1.
package soft
