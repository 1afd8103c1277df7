// SPDX-License-Identifier: EPL-2.0

// Package native binds the FMOD Ex shared library.
//
// The library is opened at run time with purego; no cgo toolchain is
// needed. It is searched for as FMODEX_LIB_PATH, then libfmodex64.so and
// libfmodex.so on Linux or libfmodex.dylib on macOS.
//
//	if !native.Available() {
//	    // fall back to engine/soft
//	}
//	eng, err := native.New(native.WithMaxChannels(64))
//
// Identifiers are the library's object pointers. Lock hands out slices
// over library memory; they are valid until the matching Unlock.
package native
