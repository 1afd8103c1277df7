// SPDX-License-Identifier: EPL-2.0

package handle

import "io"

// Region is the PCM data handed out by a lock. A ring buffer may return the
// data in two parts; B is empty for a plain linear read.
type Region struct {
	A      []byte
	B      []byte
	Offset uint32
	Length uint32

	owner *Handle
}

// Len is the number of bytes in both parts.
func (r *Region) Len() int { return len(r.A) + len(r.B) }

// Active reports whether the region has not been unlocked yet.
func (r *Region) Active() bool { return r.owner != nil }

// WriteTo writes A then B to w.
func (r *Region) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, part := range [][]byte{r.A, r.B} {
		if len(part) == 0 {
			continue
		}
		n, err := w.Write(part)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
