// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"cogentcore.org/jot/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, run(&b, config.Default(), "cube", 1, 0))
	out := b.String()
	assert.Equal(t, 2, strings.Count(out, "---\n"))
	assert.Contains(t, out, "verts: 8\n")
	assert.Contains(t, out, "verts: 26\n")

	b.Reset()
	require.NoError(t, run(&b, nil, "grid", 0, 2))
	assert.Contains(t, b.String(), "quads: 4\n")

	assert.Error(t, run(&b, config.Default(), "torus", 1, 0))
	cfg := config.Default()
	cfg.Subdiv.MaxLevel = 1
	assert.Error(t, run(&b, cfg, "tet", 2, 0))
}
