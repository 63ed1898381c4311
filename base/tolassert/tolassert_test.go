// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tolassert

import (
	"testing"
)

func TestEqual(t *testing.T) {
	Equal(t, float32(1), 1.000001)
	EqualTol(t, 3.5, 3.49, 0.1)
	EqualTolSlice(t, []float32{1, 2}, []float32{1.0000001, 1.9999999}, 1e-5)
}
