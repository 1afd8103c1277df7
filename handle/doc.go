// SPDX-License-Identifier: EPL-2.0

// Package handle tracks ownership of engine objects.
//
// A Registry sits in front of an engine.Engine. Objects created through it
// are wrapped in owning handles and released exactly once; identifiers
// reached by traversal are wrapped in borrowed handles that never release.
//
//	reg := handle.New(eng)
//	h, err := reg.Create(engine.KindSound, engine.CreateArgs{Name: "music.ogg"})
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
// Release is idempotent. After release every call on the handle fails with
// ErrUseAfterRelease without reaching the engine.
//
// A borrowed handle lives no longer than the owning handle of the same
// object or, for objects the engine owns, the handle it was reached from.
//
// # Locking
//
// Lock and Unlock are strictly paired per handle. A second Lock, an Unlock
// without Lock, or a release while a region is outstanding fail with
// ErrLockState.
//
// # User data
//
// Arbitrary values can be attached to an object with SetUserData and read
// back with UserDataOf. The values live in a table owned by the registry
// and are dropped together with the owning handle.
package handle
