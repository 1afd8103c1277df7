// SPDX-License-Identifier: EPL-2.0

package engine

import "fmt"

// Result is the status code an engine call returns. The numbering follows
// FMOD Ex so that native codes pass through unchanged.
type Result int32

const (
	ResultOK              Result = 0
	ResultAlreadyLocked   Result = 1
	ResultBadCommand      Result = 2
	ResultChannelAlloc    Result = 10
	ResultDSPConnection   Result = 14
	ResultFileBad         Result = 19
	ResultFileNotFound    Result = 23
	ResultFormat          Result = 25
	ResultInternal        Result = 33
	ResultInvalidHandle   Result = 36
	ResultInvalidParam    Result = 37
	ResultInvalidPosition Result = 38
	ResultMemory          Result = 43
	ResultNotReady        Result = 54
)

var resultNames = map[Result]string{
	ResultOK:              "ok",
	ResultAlreadyLocked:   "already locked",
	ResultBadCommand:      "bad command",
	ResultChannelAlloc:    "channel allocation failed",
	ResultDSPConnection:   "dsp connection error",
	ResultFileBad:         "bad file",
	ResultFileNotFound:    "file not found",
	ResultFormat:          "unsupported format",
	ResultInternal:        "internal error",
	ResultInvalidHandle:   "invalid handle",
	ResultInvalidParam:    "invalid parameter",
	ResultInvalidPosition: "invalid position",
	ResultMemory:          "out of memory",
	ResultNotReady:        "not ready",
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("result(%d)", int32(r))
}

// OK reports whether r is ResultOK.
func (r Result) OK() bool { return r == ResultOK }
