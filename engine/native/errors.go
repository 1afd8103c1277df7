// SPDX-License-Identifier: EPL-2.0

package native

import "errors"

// ErrLibraryNotFound is returned by New when no FMOD Ex library could be
// loaded.
var ErrLibraryNotFound = errors.New("fmod ex library not found")
