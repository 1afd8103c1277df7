// SPDX-License-Identifier: EPL-2.0

package handle

import "errors"

var (
	// ErrUseAfterRelease is returned by any call on a handle whose resource
	// was already released. No engine call is made.
	ErrUseAfterRelease = errors.New("handle used after release")

	// ErrLockState is returned for a lock issued while a lock is outstanding,
	// an unlock without a matching lock, or a release of a locked handle.
	ErrLockState = errors.New("lock state violation")

	// ErrDuplicateOwner is returned when the engine hands out an identifier
	// that already has an owning handle in the registry.
	ErrDuplicateOwner = errors.New("identifier already has an owning handle")

	// ErrNilID is returned when a create or traversal call yields identifier 0.
	ErrNilID = errors.New("engine returned a nil identifier")

	// ErrUserDataType is returned by UserDataOf when the stored value has a
	// different type.
	ErrUserDataType = errors.New("user data has a different type")
)
