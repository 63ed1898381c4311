// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"cogentcore.org/jot/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reasonLog struct {
	reasons []ChangeReason
	deleted bool
}

func (rl *reasonLog) MeshChanged(m *Mesh, r ChangeReason) { rl.reasons = append(rl.reasons, r) }

func (rl *reasonLog) MeshDeleted(m *Mesh) { rl.deleted = true }

func TestObservers(t *testing.T) {
	m := New("obs", nil)
	a, b := &reasonLog{}, &reasonLog{}
	assert.True(t, m.AddObserver(a))
	assert.False(t, m.AddObserver(a))
	assert.True(t, m.AddObserver(b))
	assert.Len(t, m.Observers(), 2)

	s0 := m.Stamp()
	v := m.AddVertex(math32.Vec3(0, 0, 0))
	v.SetPos(math32.Vec3(1, 0, 0))
	v.SetColor(math32.Vec4(1, 0, 0, 1))
	want := []ChangeReason{TopologyChanged, VertPositionsChanged, VertColorsChanged}
	assert.Equal(t, want, a.reasons)
	assert.Equal(t, want, b.reasons)
	assert.Equal(t, s0+3, m.Stamp())

	assert.True(t, m.RemoveObserver(b))
	assert.False(t, m.RemoveObserver(b))
	m.Changed(RenderingChanged)
	m.Changed(NoChange)
	assert.Len(t, a.reasons, 4)
	assert.Len(t, b.reasons, 3)

	m.Delete()
	assert.True(t, a.deleted)
	assert.False(t, b.deleted)
	assert.Empty(t, m.Observers())
}

func TestObserverRemovesItself(t *testing.T) {
	m := New("self", nil)
	calls := 0
	var obs ObserverFunc
	obs = func(m *Mesh, r ChangeReason) {
		calls++
		m.RemoveObserver(&obs)
	}
	m.AddObserver(&obs)
	m.Changed(TopologyChanged)
	m.Changed(TopologyChanged)
	assert.Equal(t, 1, calls)
}

func TestBatch(t *testing.T) {
	m := New("batch", nil)
	rl := &reasonLog{}
	m.AddObserver(rl)
	s0 := m.Stamp()
	err := m.Batch(TopologyChanged, func() error {
		v := m.AddVertices(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0))
		_, err := m.AddFace(v[0], v[1], v[2], nil)
		v[0].SetPos(math32.Vec3(-1, 0, 0))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []ChangeReason{TopologyChanged, VertPositionsChanged}, rl.reasons)
	assert.Equal(t, s0+2, m.Stamp())
}

// reasonList is an observer that cannot be compared.
type reasonList struct {
	reasons []ChangeReason
}

func (rl reasonList) MeshChanged(m *Mesh, r ChangeReason) {}

func TestObserverNotComparable(t *testing.T) {
	m := New("cmp", nil)
	rl := &reasonLog{}
	require.True(t, m.AddObserver(rl))
	assert.NotPanics(t, func() {
		assert.False(t, m.AddObserver(reasonList{}))
		assert.False(t, m.RemoveObserver(reasonList{}))
	})
	assert.Len(t, m.Observers(), 1)
	assert.True(t, m.RemoveObserver(rl))
}

func TestBatchPanic(t *testing.T) {
	m := New("panic", nil)
	rl := &reasonLog{}
	m.AddObserver(rl)
	assert.Panics(t, func() {
		m.Batch(TopologyChanged, func() error {
			panic("fail")
		})
	})
	m.Changed(VertPositionsChanged)
	assert.Equal(t, []ChangeReason{VertPositionsChanged}, rl.reasons)
}

func TestChangeReason(t *testing.T) {
	assert.Equal(t, "VertPositionsChanged", VertPositionsChanged.String())
	assert.Equal(t, "ChangeReason(42)", ChangeReason(42).String())
	assert.True(t, PatchesChanged.IsTopological())
	assert.False(t, CreasesChanged.IsTopological())
	assert.True(t, CreasesChanged.IsGeometric())
	assert.False(t, RenderingChanged.IsGeometric())

	m := NewCube(nil)
	topo := m.TopoStamp()
	m.Vert(0).SetPos(math32.Vec3(-2, -2, -2))
	assert.Equal(t, topo, m.TopoStamp())
	m.Edge(0).SetCrease(true)
	assert.Equal(t, topo+1, m.TopoStamp())
}
