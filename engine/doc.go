// SPDX-License-Identifier: EPL-2.0

// Package engine defines the boundary between fmodgo and the audio engine
// that actually owns the objects.
//
// Everything the rest of the module knows about an engine is the Engine
// interface: create and release objects, query formats and lengths, lock
// and unlock PCM data, follow relations between objects and read or write
// scalar parameters. Each call is synchronous and returns a Result code.
//
// Two implementations ship with the module:
//   - engine/soft keeps every object in memory and decodes files with the
//     loaders under formats/
//   - engine/native forwards to the FMOD Ex shared library through purego
//
// # Errors
//
// Result codes are turned into errors with Check:
//
//	if err := engine.Check("sound length", res); err != nil {
//	    return err
//	}
//
// The resulting *EngineError keeps the operation name and the raw code, so
// callers can inspect it with errors.As or CodeOf.
package engine
