// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
)

// EngineError is returned when the engine rejects a call. The code is the
// engine's own and is never retried.
type EngineError struct {
	Op   string
	Code Result
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine: %s: %s", e.Op, e.Code)
}

// Check maps an engine result into nil or an *EngineError tagged with op.
func Check(op string, res Result) error {
	if res.OK() {
		return nil
	}
	return &EngineError{Op: op, Code: res}
}

// CodeOf returns the engine code carried by err, if any.
func CodeOf(err error) (Result, bool) {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code, true
	}
	return ResultOK, false
}
