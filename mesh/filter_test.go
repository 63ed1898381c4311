// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilters(t *testing.T) {
	m := NewQuadGrid(nil, 2, 1, nil)
	// 6 verts, 7 strong edges and 2 diagonals, 4 faces
	assert.Equal(t, 6, Count(m.Verts(), VertFilter{}))
	assert.Equal(t, 0, Count(m.Verts(), EdgeFilter{}))
	assert.Equal(t, 7, Count(m.Edges(), StrongEdgeFilter{}))
	assert.Equal(t, 2, Count(m.Edges(), WeakEdgeFilter{}))
	assert.Equal(t, 6, Count(m.Edges(), BorderEdgeFilter{}))
	assert.Equal(t, 6, Count(m.Edges(), PolyCreaseEdgeFilter{}))
	assert.Equal(t, 4, Count(m.Faces(), QuadFaceFilter{}))
	assert.Equal(t, 4, Count(m.Faces(), MeshFilter{M: m}))
	assert.Equal(t, 0, Count(m.Faces(), MeshFilter{M: NewCube(nil)}))

	inner := m.Vert(1).LookupEdge(m.Vert(4))
	inner.SetCrease(true)
	assert.Equal(t, []*Edge{inner}, FilterEdges(m.Edges(), CreaseEdgeFilter{}))
	assert.Equal(t, 7, Count(m.Edges(), PolyCreaseEdgeFilter{}))

	strongInterior := And(StrongEdgeFilter{}, Not(BorderEdgeFilter{}))
	assert.Equal(t, []*Edge{inner}, FilterEdges(m.Edges(), strongInterior))
	assert.Equal(t, 9, Count(m.Edges(), Or(WeakEdgeFilter{}, StrongEdgeFilter{})))
	assert.False(t, Not(AnyFilter{}).Accept(nil))
	assert.False(t, AnyFilter{}.Accept(nil))

	m.Face(0).SetBit(SelectedBit)
	assert.Equal(t, []*Face{m.Face(0)}, FilterFaces(m.Faces(), SelectedFilter{}))
	assert.Equal(t, 3, Count(m.Faces(), BitClearFilter{Bit: SelectedBit}))
	assert.Equal(t, 1, Count(m.Faces(), BitSetFilter{Bit: SelectedBit}))
}

func TestUnreachedFilter(t *testing.T) {
	m := NewCube(nil)
	f := UnreachedFilter{Flag: 1}
	// a breadth first search over the vertices reaches each once
	queue := []*Vert{m.Vert(0)}
	f.Accept(m.Vert(0))
	var order []*Vert
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)
		queue = append(queue, FilterVerts(v.StrongNbrs(), f)...)
	}
	assert.Len(t, order, 8)
	assert.Equal(t, 8, Count(m.Verts(), FlagFilter{Flag: 1}))

	ClearFlags(m.Verts())
	assert.Equal(t, 8, Count(m.Verts(), FlagFilter{Flag: 0}))
	// flags do not disturb the bits above them
	m.Vert(0).SetBit(SelectedBit)
	m.Vert(0).SetFlag(3)
	assert.True(t, m.Vert(0).IsSelected())
	assert.Equal(t, 3, m.Vert(0).Flag())
}

func TestPatchFilter(t *testing.T) {
	m := NewQuadGrid(nil, 2, 1, func(m *Mesh, i, j int) *Patch {
		if i == 0 {
			return m.NewPatch("a")
		}
		return m.NewPatch("b")
	})
	a := m.PatchByName("a")
	pf := PatchFilter{P: a}
	assert.Equal(t, 2, Count(m.Faces(), pf))
	// the middle column of vertices touches both patches
	assert.Equal(t, 4, Count(m.Verts(), pf))
	assert.Equal(t, 5, Count(m.Edges(), pf))
}
