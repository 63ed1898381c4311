// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subdiv

import (
	"testing"

	"cogentcore.org/jot/base/errors"
	"cogentcore.org/jot/config"
	"cogentcore.org/jot/math32"
	"cogentcore.org/jot/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkQuads verifies that every face of m is half of a quad whose
// weak edge has two faces.
func checkQuads(t *testing.T, m *mesh.Mesh) {
	t.Helper()
	for _, f := range m.Faces() {
		assert.True(t, f.IsQuad(), "%v", f)
	}
	for _, e := range m.Edges() {
		if e.IsWeak() {
			assert.Equal(t, 2, e.NumFaces(), "%v", e)
		}
	}
}

func TestCubeLevels(t *testing.T) {
	cube := mesh.NewCube(nil)
	h := New(cube)
	l1, err := h.Update(1)
	require.NoError(t, err)
	m1 := l1.Mesh()
	assert.Equal(t, Current, l1.State())
	assert.Equal(t, 26, m1.NumVerts())
	assert.Equal(t, 48, m1.NumStrongEdges())
	assert.Equal(t, 24, m1.NumQuads())
	assert.Equal(t, 48, m1.NumFaces())
	checkQuads(t, m1)

	l0 := h.Level(0)
	v7 := cube.Vert(7)
	assertVec(t, math32.Vec3(5.0/9, 5.0/9, 5.0/9), l0.VertChild(v7).Pos())
	e := cube.Vert(3).LookupEdge(v7)
	assertVec(t, math32.Vec3(0.75, 0.75, 0), l0.EdgeChild(e).Pos())
	assertVec(t, math32.Vec3(0.5, 0.5, 0.5), h.LimitPosition(v7))

	halves := l0.EdgeChildren(e)
	for _, ce := range halves {
		require.NotNil(t, ce)
		assert.Equal(t, e, l1.ParentOf(ce))
		assert.True(t, ce.Contains(l0.EdgeChild(e)))
	}
	assert.Equal(t, v7, l1.ParentOf(l0.VertChild(v7)))
	f := cube.Face(0)
	for _, cf := range l0.FaceChildren(f) {
		require.NotNil(t, cf)
		assert.Equal(t, f, l1.ParentOf(cf))
		assert.Greater(t, cf.Normal().Dot(f.Normal()), float32(0), "orientation of %v", cf)
	}
	assert.Nil(t, l0.ParentOf(v7))
	assert.Nil(t, l1.VertChild(v7))

	l2, err := h.Update(2)
	require.NoError(t, err)
	m2 := l2.Mesh()
	assert.Equal(t, 98, m2.NumVerts())
	assert.Equal(t, 192, m2.NumStrongEdges())
	assert.Equal(t, 96, m2.NumQuads())
	checkQuads(t, m2)
	assert.Equal(t, 3, h.NumLevels())
	assert.Same(t, l1, l2.Parent())
	assert.Same(t, l2, l1.Child())
	assert.Nil(t, l2.Child())

	assert.Len(t, SubdivFaces(cube.Faces(), 2), 12*16)
	assert.ElementsMatch(t, cube.Faces(), ParentFaces(m2.Faces(), 2))
	assert.Len(t, ParentFaces(m2.Faces(), 1), 48)
}

func TestTetrahedronLevels(t *testing.T) {
	tet := mesh.NewTetrahedron(nil)
	h := New(tet)
	l1, err := h.Update(1)
	require.NoError(t, err)
	m1 := l1.Mesh()
	assert.Equal(t, 10, m1.NumVerts())
	assert.Equal(t, 24, m1.NumEdges())
	assert.Equal(t, 16, m1.NumFaces())
	assert.Zero(t, m1.NumQuads())

	l0 := h.Level(0)
	v0 := tet.Vert(0)
	assertVec(t, math32.Vec3(0.25, 0.25, 0.25), l0.VertChild(v0).Pos())
	assertVec(t, math32.Vec3(0, 0, 0.5), l0.EdgeChild(v0.LookupEdge(tet.Vert(1))).Pos())

	for _, f := range m1.Faces() {
		assert.Greater(t, f.Normal().Dot(f.Centroid()), float32(0), "outward %v", f)
	}
}

func TestSchemes(t *testing.T) {
	h := New(mesh.NewTetrahedron(nil), WithScheme(config.SchemeSimple))
	assert.Equal(t, "Simple subdivision", h.PosCalc().Name())
	l1, err := h.Update(1)
	require.NoError(t, err)
	v0 := h.Control().Vert(0)
	assert.Equal(t, v0.Pos(), h.Level(0).VertChild(v0).Pos())
	assert.Equal(t, 10, l1.Mesh().NumVerts())

	h = New(mesh.NewTetrahedron(nil), WithScheme("butterfly"))
	assert.Equal(t, "Hybrid subdivision", h.PosCalc().Name())
	assert.Equal(t, "Hybrid subdivision", h.ColorCalc().Name())

	h = New(mesh.NewTetrahedron(nil), WithCalcs(NewSimpleCalc(Positions), NewLoopCalc(Colors)))
	assert.Equal(t, "Simple subdivision", h.PosCalc().Name())
	assert.Equal(t, "Loop subdivision", h.ColorCalc().Name())
}

func TestColors(t *testing.T) {
	tet := mesh.NewTetrahedron(nil)
	tet.Vert(1).SetColor(math32.Vec4(0, 0, 0, 1))
	h := New(tet)
	_, err := h.Update(1)
	require.NoError(t, err)
	e := tet.Vert(0).LookupEdge(tet.Vert(1))
	c := h.Level(0).EdgeChild(e).Color()
	// three eighths of the black endpoint
	assert.InDelta(t, 5.0/8, c.X, 1e-6)
	assert.InDelta(t, 1, c.W, 1e-6)
}

type levelLog struct {
	reasons   []mesh.ChangeReason
	generated int
}

func (ll *levelLog) MeshChanged(m *mesh.Mesh, r mesh.ChangeReason) {
	ll.reasons = append(ll.reasons, r)
}

func (ll *levelLog) MeshSubdivGenerated(m *mesh.Mesh) { ll.generated++ }

func TestInvalidate(t *testing.T) {
	cube := mesh.NewCube(nil)
	h := New(cube)
	log := &levelLog{}
	cube.AddObserver(log)
	_, err := h.Update(2)
	require.NoError(t, err)
	assert.Equal(t, 1, log.generated)
	l1, l2 := h.Level(1), h.Level(2)
	m1, m2 := l1.Mesh(), l2.Mesh()
	fine := &levelLog{}
	m2.AddObserver(fine)

	v7 := cube.Vert(7)
	c7 := h.Level(0).VertChild(v7)
	before := c7.Pos()
	v7.SetPos(math32.Vec3(2, 2, 2))
	assert.Equal(t, Uncomputed, l1.State())
	assert.Equal(t, Uncomputed, l2.State())
	assert.Equal(t, before, c7.Pos())

	_, err = h.Update(2)
	require.NoError(t, err)
	assert.Equal(t, Current, l1.State())
	assert.Equal(t, Current, l2.State())
	assert.Same(t, m1, l1.Mesh())
	assert.Same(t, m2, l2.Mesh())
	assert.Greater(t, c7.Pos().X, before.X)
	assert.Contains(t, fine.reasons, mesh.VertPositionsChanged)
	assert.NotContains(t, fine.reasons, mesh.TopologyChanged)
	assert.Equal(t, 1, log.generated)

	// an update with nothing stale does not touch the levels
	fine.reasons = nil
	_, err = h.Update(2)
	require.NoError(t, err)
	assert.Empty(t, fine.reasons)
}

func TestCreasesAndCorners(t *testing.T) {
	cube := mesh.NewCube(nil)
	h := New(cube)
	e := cube.Vert(3).LookupEdge(cube.Vert(7))
	cube.SetCrease(true, e)
	cube.Vert(7).SetCorner(true)
	_, err := h.Update(1)
	require.NoError(t, err)
	l0 := h.Level(0)
	for _, ce := range l0.EdgeChildren(e) {
		assert.True(t, ce.IsCrease())
	}
	c7 := l0.VertChild(cube.Vert(7))
	assert.True(t, c7.IsCorner())
	assert.Equal(t, cube.Vert(7).Pos(), c7.Pos())
	assertVec(t, e.Midpoint(), l0.EdgeChild(e).Pos())

	cube.SetCrease(false, e)
	cube.Vert(7).SetCorner(false)
	assert.Equal(t, Uncomputed, h.Level(1).State())
	_, err = h.Update(1)
	require.NoError(t, err)
	for _, ce := range l0.EdgeChildren(e) {
		assert.False(t, ce.IsCrease())
	}
	assert.False(t, c7.IsCorner())
	assertVec(t, math32.Vec3(5.0/9, 5.0/9, 5.0/9), c7.Pos())
}

func TestTopologyDropsLevels(t *testing.T) {
	cube := mesh.NewCube(nil)
	p := cube.Patches()[0]
	h := New(cube)
	require.NoError(t, h.SetCurLevel(2))
	assert.Equal(t, 2, h.CurLevel())
	l1, l2 := h.Level(1), h.Level(2)

	m1 := l1.Mesh()
	e := mesh.FilterEdges(m1.Edges(), mesh.StrongEdgeFilter{})[0]
	_, err := m1.SplitEdge(e, e.Midpoint())
	require.NoError(t, err)
	assert.Equal(t, 2, h.NumLevels())
	assert.Equal(t, 1, h.CurLevel())
	assert.Nil(t, l2.Mesh())
	assert.Nil(t, p.Child().Child())

	cube.AddVertex(math32.Vec3(5, 5, 5))
	assert.Equal(t, 1, h.NumLevels())
	assert.Equal(t, 0, h.CurLevel())
	assert.Nil(t, l1.Mesh())
	assert.Nil(t, p.Child())
	assert.Nil(t, SubdivVert(cube.Vert(0)))
	assert.Nil(t, l1.Child())

	// the stray vertex has no faces but subdivides
	l, err := h.Update(1)
	require.NoError(t, err)
	assert.Equal(t, 27, l.Mesh().NumVerts())
}

func TestRefine(t *testing.T) {
	h := New(mesh.NewTetrahedron(nil), WithMaxLevel(1))
	assert.Equal(t, 1, h.MaxLevel())
	assert.False(t, h.Unrefine())
	require.NoError(t, h.Refine())
	assert.Equal(t, 1, h.CurLevel())
	assert.Equal(t, h.Level(1).Mesh(), h.CurMesh())

	err := h.Refine()
	assert.ErrorIs(t, err, ErrMaxLevel)
	assert.Equal(t, 1, h.CurLevel())
	_, err = h.Level(1).GetChild()
	assert.ErrorIs(t, err, ErrMaxLevel)
	_, err = h.Update(-1)
	assert.ErrorIs(t, err, ErrMaxLevel)

	assert.True(t, h.Unrefine())
	assert.Equal(t, h.Control(), h.CurMesh())
	assert.Nil(t, h.Level(5))
	assert.Len(t, h.Levels(), 2)
}

func TestNonManifold(t *testing.T) {
	tet := mesh.NewTetrahedron(nil)
	x := tet.AddVertex(math32.Vec3(3, 3, 3))
	errors.Must1(tet.AddFace(tet.Vert(0), tet.Vert(1), x, nil))
	h := New(tet)
	_, err := h.Update(1)
	assert.ErrorIs(t, err, ErrNonManifold)
	assert.Equal(t, 1, h.NumLevels())
	assert.Equal(t, tet, h.CurMesh())
}

func TestPatchLevels(t *testing.T) {
	cube := mesh.NewCube(nil)
	p := cube.Patches()[0]
	p.Attributes.SetTexture("checker")
	h := New(cube)
	require.NoError(t, h.SetCurLevel(2))

	p1 := h.PatchAt(p, 1)
	require.NotNil(t, p1)
	assert.Equal(t, h.Level(1).Mesh(), p1.Mesh())
	assert.Equal(t, 48, p1.NumFaces())
	assert.Equal(t, 1, p1.Level())
	assert.Same(t, p, p1.CtrlPatch())
	assert.Equal(t, "checker", p1.Attrs().GetTexture())

	strips := h.CurStrips(p)
	n := 0
	for _, s := range strips {
		n += len(s.Faces)
	}
	assert.Equal(t, 192, n)
	assert.Nil(t, h.PatchAt(p, 3))
}

func TestRenderingForwarded(t *testing.T) {
	cube := mesh.NewCube(nil)
	h := New(cube)
	log := &levelLog{}
	cube.AddObserver(log)
	l1, err := h.Update(1)
	require.NoError(t, err)
	log.reasons = nil
	l1.Mesh().Changed(mesh.RenderingChanged)
	assert.Equal(t, []mesh.ChangeReason{mesh.RenderingChanged}, log.reasons)
	assert.Equal(t, Current, l1.State())
}

var pinKind = mesh.NewDataKind("pin")

// pin keeps the child of its vertex at the vertex position, and tries
// to use the hierarchy while it is being computed.
type pin struct {
	mesh.DataBase
	h         *Hierarchy
	err       error
	generated int
}

func (p *pin) HandleSubdivCalc() bool {
	_, p.err = p.h.Update(1)
	if cv := SubdivVert(p.Simplex); cv != nil {
		cv.SetPos(p.Simplex.Centroid())
	}
	return true
}

func (p *pin) SubdivGenerated() { p.generated++ }

func TestHandleSubdivCalc(t *testing.T) {
	cube := mesh.NewCube(nil)
	h := New(cube)
	v7 := cube.Vert(7)
	pn := &pin{DataBase: mesh.DataBase{Kind: pinKind}, h: h}
	mesh.AddData(v7, pn)

	_, err := h.Update(1)
	require.NoError(t, err)
	assert.ErrorIs(t, pn.err, ErrComputing)
	assert.Equal(t, 1, pn.generated)
	c7 := h.Level(0).VertChild(v7)
	assert.Equal(t, v7.Pos(), c7.Pos())

	v7.SetPos(math32.Vec3(3, 3, 3))
	_, err = h.Update(1)
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3(3, 3, 3), c7.Pos())
	assert.Equal(t, 1, pn.generated)
}

func TestDelete(t *testing.T) {
	cube := mesh.NewCube(nil)
	h := New(cube)
	l1, err := h.Update(1)
	require.NoError(t, err)
	h.Delete()
	assert.Nil(t, l1.Mesh())
	assert.Empty(t, cube.Observers())
	assert.Equal(t, 1, h.NumLevels())
	_, err = l1.GetChild()
	assert.ErrorIs(t, err, mesh.ErrNotInMesh)
}
