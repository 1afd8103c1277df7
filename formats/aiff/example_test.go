// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"fmt"
	"strings"

	"github.com/ik5/fmodgo/formats/aiff"
)

// ExampleLoader_Load shows the error returned for input that is not AIFF.
func ExampleLoader_Load() {
	_, err := aiff.Loader{}.Load(strings.NewReader("RIFF....WAVE"))
	fmt.Println(err)
	// Output:
	// not an AIFF file
}
