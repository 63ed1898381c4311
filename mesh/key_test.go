// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"cogentcore.org/jot/config"
	"cogentcore.org/jot/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyUnique(t *testing.T) {
	m := NewCube(nil)
	seen := map[Key]Simplex{}
	check := func(s Simplex) {
		k := s.Key()
		require.True(t, k.IsValid(), "%v", s)
		_, dup := seen[k]
		assert.False(t, dup, "duplicate key %v for %v", k, s)
		seen[k] = s
		assert.Equal(t, s, m.Lookup(k))
		assert.Equal(t, k, s.Key(), "key is stable")
	}
	for _, v := range m.Verts() {
		check(v)
	}
	for _, e := range m.Edges() {
		check(e)
	}
	for _, f := range m.Faces() {
		check(f)
	}
	assert.Equal(t, m.NumSimplices(), m.Keys().Len())
}

func TestKeyLazy(t *testing.T) {
	m := New("lazy", nil)
	v := m.AddVertex(math32.Vec3(0, 0, 0))
	assert.False(t, v.HasKey())
	assert.Equal(t, 0, m.Keys().Len())
	k := v.Key()
	assert.True(t, v.HasKey())
	assert.Equal(t, 1, k.Index())
	assert.Equal(t, uint32(1), k.Generation())
	assert.Equal(t, "1.1", k.String())
	assert.Equal(t, "nokey", NoKey.String())
}

func TestKeyTableFull(t *testing.T) {
	cfg := config.Default()
	cfg.Mesh.KeyCapacity = 2
	m := New("full", cfg)
	v := m.AddVertices(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(2, 0, 0))
	k0 := v[0].Key()
	k1 := v[1].Key()
	require.True(t, k0.IsValid())
	require.True(t, k1.IsValid())
	assert.NotEqual(t, k0, k1)

	_, err := v[2].TryKey()
	assert.ErrorIs(t, err, ErrKeyTableFull)
	assert.Equal(t, NoKey, v[2].Key())
	assert.False(t, v[2].HasKey())

	// existing keys are not disturbed
	assert.Equal(t, v[0], m.Lookup(k0))
	assert.Equal(t, v[1], m.Lookup(k1))

	// releasing a key makes room, and the stale key no longer resolves
	require.NoError(t, m.RemoveVertex(v[0]))
	k2 := v[2].Key()
	require.True(t, k2.IsValid())
	assert.Equal(t, k0.Index(), k2.Index())
	assert.NotEqual(t, k0.Generation(), k2.Generation())
	assert.Nil(t, m.Lookup(k0))
	assert.Equal(t, v[2], m.Lookup(k2))
}

func TestKeyTableUnbounded(t *testing.T) {
	kt := NewKeyTable(0)
	m := New("unbounded", nil)
	for i := range initialKeySlots + 10 {
		v := m.addVert(math32.Vec3(float32(i), 0, 0))
		k, err := kt.Assign(v)
		require.NoError(t, err)
		require.Equal(t, i+1, k.Index())
	}
	assert.Equal(t, initialKeySlots+10, kt.Len())
	assert.Nil(t, kt.Lookup(NoKey))
	assert.Nil(t, kt.Lookup(makeKey(uint32(initialKeySlots+20), 1)))
}
