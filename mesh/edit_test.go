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

// checkMesh verifies the adjacency invariants of m.
func checkMesh(t *testing.T, m *Mesh) {
	t.Helper()
	for i, v := range m.Verts() {
		assert.Equal(t, i, v.Index())
		assert.Equal(t, m, v.Mesh())
		for _, e := range v.edges {
			assert.True(t, e.Contains(v), "%v in %v", e, v)
		}
	}
	for i, e := range m.Edges() {
		assert.Equal(t, i, e.Index())
		assert.Contains(t, e.v1.edges, e)
		assert.Contains(t, e.v2.edges, e)
		for _, f := range e.Faces() {
			assert.True(t, f.ContainsEdge(e), "%v in %v", f, e)
		}
		if e.IsWeak() {
			assert.Equal(t, 2, e.NumFaces(), "weak %v", e)
		}
	}
	for i, f := range m.Faces() {
		assert.Equal(t, i, f.Index())
		for j := range 3 {
			e := f.E(j)
			require.NotNil(t, e)
			assert.True(t, e.Contains(f.V(j)) && e.Contains(f.V((j+1)%3)), "%v edge %d", f, j)
			assert.Contains(t, e.Faces(), f)
		}
	}
}

func TestCube(t *testing.T) {
	m := NewCube(nil)
	checkMesh(t, m)
	assert.Equal(t, 8, m.NumVerts())
	assert.Equal(t, 18, m.NumEdges())
	assert.Equal(t, 12, m.NumStrongEdges())
	assert.Equal(t, 12, m.NumFaces())
	assert.Equal(t, 6, m.NumQuads())
	assert.Equal(t, 0, m.NumTris())
	assert.True(t, m.IsAllQuads())
	for _, f := range m.Faces() {
		assert.Greater(t, f.Normal().Dot(f.Centroid()), float32(0), "outward %v", f)
		assert.True(t, f.IsQuad())
		assert.Equal(t, f.QuadRep(), f.QuadPartner().QuadRep())
		q, ok := f.QuadVerts()
		require.True(t, ok)
		assert.Equal(t, float32(0), q[0].Pos().Add(q[2].Pos()).Sub(q[1].Pos().Add(q[3].Pos())).Length(), "planar parallelogram")
		assert.Equal(t, f.QuadCentroid(), f.QuadPartner().QuadCentroid())
	}
	for _, v := range m.Verts() {
		assert.Equal(t, 3, v.NumQuads())
		assert.Equal(t, 3, len(v.StrongNbrs()))
		assert.False(t, v.IsBorder())
		n := v.Normal()
		assert.InDelta(t, 1, n.Length(), 1e-5)
		assert.Greater(t, n.Dot(v.Pos()), float32(0))
	}
}

func TestAddFaceErrors(t *testing.T) {
	m := New("errs", nil)
	v := m.AddVertices(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0))
	other := New("other", nil).AddVertex(math32.Vec3(0, 0, 0))

	_, err := m.AddFace(v[0], nil, v[2], nil)
	assert.ErrorIs(t, err, ErrNilVert)
	_, err = m.AddFace(v[0], v[1], other, nil)
	assert.ErrorIs(t, err, ErrForeignVert)
	_, err = m.AddFace(v[0], v[1], v[0], nil)
	assert.ErrorIs(t, err, ErrRepeatedVert)
	_, err = m.AddEdge(v[1], v[1])
	assert.ErrorIs(t, err, ErrRepeatedVert)
	assert.Equal(t, 0, m.NumFaces())

	f, err := m.AddFace(v[0], v[1], v[2], nil)
	require.NoError(t, err)
	again, err := m.AddFace(v[1], v[2], v[0], nil)
	require.NoError(t, err)
	assert.Same(t, f, again)
	assert.Equal(t, 3, m.NumEdges())

	e, err := m.AddEdge(v[0], v[1])
	require.NoError(t, err)
	assert.Same(t, f.E(0), e)
	assert.True(t, e.IsBorder())

	assert.ErrorIs(t, m.RemoveVertex(v[0]), ErrVertInUse)
	assert.ErrorIs(t, m.RemoveEdge(e), ErrEdgeInUse)
	require.NoError(t, m.RemoveFace(f))
	require.NoError(t, m.RemoveEdge(e))
	assert.ErrorIs(t, m.RemoveEdge(e), ErrNotInMesh)
	assert.Equal(t, 2, m.NumEdges())
	checkMesh(t, m)
}

func TestRemoveQuadHalf(t *testing.T) {
	m := NewQuadGrid(nil, 1, 1, nil)
	require.Equal(t, 1, m.NumQuads())
	f := m.Face(0)
	w := f.WeakEdge()
	require.NotNil(t, w)
	require.NoError(t, m.RemoveFace(f))
	assert.False(t, w.IsWeak())
	assert.Equal(t, 0, m.NumQuads())
	assert.Equal(t, 1, m.NumTris())
	checkMesh(t, m)
}

func TestSplitEdge(t *testing.T) {
	m := NewTetrahedron(nil)
	e := m.Vert(0).LookupEdge(m.Vert(1))
	require.NotNil(t, e)
	faces := e.Faces()
	re := newRecorder()
	rf := newRecorder()
	AddData(e, re)
	AddData(faces[0], rf)

	var split []*Vert
	obs := &splitObs{fn: func(m *Mesh, e *Edge, v *Vert) { split = append(split, v) }}
	m.AddObserver(obs)

	stamp := m.Stamp()
	mid := e.Midpoint()
	v, err := m.SplitEdge(e, mid)
	require.NoError(t, err)
	checkMesh(t, m)
	assert.Equal(t, 5, m.NumVerts())
	assert.Equal(t, 9, m.NumEdges())
	assert.Equal(t, 6, m.NumFaces())
	assert.Equal(t, []*Vert{v}, split)
	assert.Greater(t, m.Stamp(), stamp)
	assert.Equal(t, mid, v.Pos())
	assert.Equal(t, 4, v.Degree())
	assert.True(t, e.Contains(v))

	// the edge reports the new vertex and the new edge,
	// the face reports its new edge and its new face
	require.Len(t, re.splits, 2)
	assert.Equal(t, Simplex(v), re.splits[0])
	assert.IsType(t, &Edge{}, re.splits[1])
	require.Len(t, rf.splits, 2)
	assert.IsType(t, &Edge{}, rf.splits[0])
	assert.IsType(t, &Face{}, rf.splits[1])

	for _, f := range m.Faces() {
		assert.Greater(t, f.Normal().Dot(f.Centroid()), float32(0), "outward %v", f)
	}
	for _, e := range m.Edges() {
		assert.Equal(t, 2, e.NumFaces())
	}
}

type splitObs struct {
	fn func(m *Mesh, e *Edge, v *Vert)
}

func (so *splitObs) MeshChanged(m *Mesh, reason ChangeReason) {}

func (so *splitObs) MeshEdgeSplit(m *Mesh, e *Edge, v *Vert) { so.fn(m, e, v) }

func TestSplitQuadDiagonal(t *testing.T) {
	m := NewQuadGrid(nil, 1, 1, nil)
	w := m.Face(0).WeakEdge()
	_, err := m.SplitEdge(w, w.Midpoint())
	require.NoError(t, err)
	checkMesh(t, m)
	assert.Equal(t, 0, m.NumQuads())
	assert.Equal(t, 4, m.NumTris())
	for _, f := range m.Faces() {
		assert.Equal(t, "grid", f.Patch().Name())
	}
}

// newFan returns a hexagon of six triangles around a center vertex,
// which is vertex 0.
func newFan() *Mesh {
	m := New("fan", nil)
	c := m.AddVertex(math32.Vec3(0, 0, 0))
	var ring []*Vert
	for i := range 6 {
		a := float32(i) * math32.Pi / 3
		ring = append(ring, m.AddVertex(math32.Vec3(math32.Cos(a), math32.Sin(a), 0)))
	}
	for i := range 6 {
		m.AddFace(c, ring[i], ring[(i+1)%6], nil)
	}
	return m
}

func TestCollapseEdge(t *testing.T) {
	m := newFan()
	c, v1, v2, v3 := m.Vert(0), m.Vert(1), m.Vert(2), m.Vert(3)
	e := c.LookupEdge(v1)
	require.True(t, m.CanCollapse(e))

	require.NoError(t, m.CollapseEdge(e, v1))
	checkMesh(t, m)
	assert.Nil(t, c.Mesh())
	assert.Equal(t, 6, m.NumVerts())
	assert.Equal(t, 9, m.NumEdges())
	assert.Equal(t, 4, m.NumFaces())
	assert.Equal(t, 5, v1.Degree())
	for _, f := range m.Faces() {
		assert.True(t, f.Contains(v1))
		assert.Greater(t, f.Normal().Z, float32(0))
	}

	// a collapse cannot join two border vertices through the interior
	e2 := v1.LookupEdge(v2)
	require.NotNil(t, e2)
	assert.ErrorIs(t, m.CollapseEdge(v3.LookupEdge(v1), v1), ErrIllegalCollapse)
	assert.ErrorIs(t, m.CollapseEdge(e2, c), ErrIllegalCollapse)
}

func TestCollapseTetrahedron(t *testing.T) {
	m := NewTetrahedron(nil)
	for _, e := range m.Edges() {
		assert.False(t, m.CanCollapse(e), "%v", e)
	}
}

func TestRemoveDuplicateVertices(t *testing.T) {
	m := New("dups", nil)
	a := m.AddVertex(math32.Vec3(0, 0, 0))
	b := m.AddVertex(math32.Vec3(1, 0, 0))
	c := m.AddVertex(math32.Vec3(0, 1, 0))
	c2 := m.AddVertex(math32.Vec3(0, 1, 0))
	b2 := m.AddVertex(math32.Vec3(1, 0, 0))
	d := m.AddVertex(math32.Vec3(1, 1, 0))
	_, err := m.AddFace(a, b, c, nil)
	require.NoError(t, err)
	_, err = m.AddFace(c2, b2, d, nil)
	require.NoError(t, err)
	require.Equal(t, 6, m.NumEdges())

	var reasons []ChangeReason
	obs := ObserverFunc(func(m *Mesh, r ChangeReason) { reasons = append(reasons, r) })
	m.AddObserver(&obs)

	assert.Equal(t, 2, m.RemoveDuplicateVertices())
	checkMesh(t, m)
	assert.Equal(t, []ChangeReason{TriangulationChanged}, reasons)
	assert.Equal(t, 4, m.NumVerts())
	assert.Equal(t, 5, m.NumEdges())
	assert.Equal(t, 2, m.NumFaces())
	shared := b.LookupEdge(c)
	require.NotNil(t, shared)
	assert.Equal(t, 2, shared.NumFaces())
	assert.Nil(t, b2.Mesh())
	assert.Nil(t, c2.Mesh())

	assert.Equal(t, 0, m.RemoveDuplicateVertices())
	assert.Len(t, reasons, 1)
}
