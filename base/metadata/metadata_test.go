// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestData(t *testing.T) {
	var md Data
	assert.Equal(t, "", md.GetName())
	md.SetName("skin")
	md.SetTexture("toon")
	md.Set("Width", 2.5)
	assert.Equal(t, "skin", md.GetName())
	assert.Equal(t, "toon", md.GetTexture())
	assert.True(t, md.Has("Width"))

	w, err := Get[float64](md, "Width")
	assert.NoError(t, err)
	assert.Equal(t, 2.5, w)
	_, err = Get[int](md, "Width")
	assert.Error(t, err)
	_, err = Get[int](md, "Missing")
	assert.Error(t, err)
	assert.Equal(t, 3, GetOr(md, "Missing", 3))

	var cp Data
	cp.Copy(md)
	cp.Delete("Width")
	assert.False(t, cp.Has("Width"))
	assert.True(t, md.Has("Width"))
}
