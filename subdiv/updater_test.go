// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subdiv

import (
	"testing"

	"cogentcore.org/jot/math32"
	"cogentcore.org/jot/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdater(t *testing.T) {
	cube := mesh.NewCube(nil)
	h := New(cube)
	region := cube.Faces()[:2]
	u := UpdaterFor(h, region, 2)
	assert.Equal(t, 2, u.Level())
	require.NotNil(t, u.Parent())
	root := u.Parent().Parent()
	require.NotNil(t, root)
	assert.Nil(t, root.Parent())
	assert.Same(t, u.Parent(), root.Child())
	assert.True(t, u.IsDirty())

	require.NoError(t, u.Update())
	assert.Equal(t, 3, h.NumLevels())
	assert.Len(t, u.Faces(), 2*16)
	assert.Len(t, u.Parent().Faces(), 2*4)
	for _, f := range u.Faces() {
		assert.Equal(t, h.Level(2).Mesh(), f.Mesh())
	}
	assert.Equal(t, 1, u.NumRecomputes())

	cube.Vert(7).SetPos(math32.Vec3(2, 2, 2))
	assert.True(t, root.IsDirty())
	assert.True(t, u.IsDirty())
	assert.Equal(t, Uncomputed, h.Level(2).State())
	require.NoError(t, u.Update())
	assert.Equal(t, Current, h.Level(2).State())
	assert.Equal(t, 2, u.NumRecomputes())

	u.Release()
	cube.Vert(7).SetPos(math32.Vec3(1, 1, 1))
	assert.False(t, u.IsDirty())
}

func TestUpdaterLevelEdit(t *testing.T) {
	cube := mesh.NewCube(nil)
	h := New(cube)
	u := UpdaterFor(h, cube.Faces(), 2)
	require.NoError(t, u.Update())
	mid := u.Parent()
	root := mid.Parent()

	h.Level(1).Mesh().Vert(0).SetPos(math32.Vec3(3, 3, 3))
	assert.False(t, root.IsDirty())
	assert.True(t, mid.IsDirty())
	assert.True(t, u.IsDirty())
	assert.Equal(t, Uncomputed, h.Level(2).State())
	require.NoError(t, u.Update())
	assert.Equal(t, Current, h.Level(2).State())
	assert.Equal(t, 1, root.NumRecomputes())
	assert.Equal(t, 2, u.NumRecomputes())

	h.Level(2).Mesh().Vert(0).SetPos(math32.Vec3(3, 3, 3))
	assert.False(t, mid.IsDirty())
	assert.True(t, u.IsDirty())
	require.NoError(t, u.Update())

	u.Release()
	h.Level(1).Mesh().Vert(0).SetPos(math32.Vec3(4, 4, 4))
	assert.False(t, mid.IsDirty())
	assert.False(t, u.IsDirty())
}

func TestUpdaterMaxLevel(t *testing.T) {
	tet := mesh.NewTetrahedron(nil)
	h := New(tet, WithMaxLevel(1))
	u := UpdaterFor(h, tet.Faces(), 2)
	err := u.Update()
	assert.ErrorIs(t, err, ErrMaxLevel)
	assert.True(t, u.IsDirty())
	assert.False(t, u.Parent().IsDirty())
	assert.Len(t, u.Parent().Faces(), 16)
}
