// SPDX-License-Identifier: EPL-2.0

package fmodgo

import "errors"

// ErrExportUnverified is returned when the whole file was written but the
// engine refused to unlock the sound afterwards. The output is left in place.
var ErrExportUnverified = errors.New("export written but sound unlock failed")

// IOError is a file-system failure during an export.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }
