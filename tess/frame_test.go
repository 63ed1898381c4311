// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tess

import (
	"testing"

	"cogentcore.org/jot/base/tolassert"
	"cogentcore.org/jot/math32"
	"cogentcore.org/jot/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertOrthonormal(t *testing.T, f Frame) {
	t.Helper()
	tolassert.EqualTol(t, 1, f.T.Length(), 1e-5)
	tolassert.EqualTol(t, 1, f.N.Length(), 1e-5)
	tolassert.EqualTol(t, 0, f.T.Dot(f.N), 1e-5)
	assertVec(t, f.N.Cross(f.T), f.B)
}

func TestFrame(t *testing.T) {
	var f Frame
	f.set(math32.Vec3(1, 2, 3), math32.Vec3(0, 0, 1), math32.Vec3(2, 0, 1), "test")
	assertVec(t, math32.Vec3(1, 0, 0), f.T)
	assertVec(t, math32.Vec3(0, 1, 0), f.B)
	assertOrthonormal(t, f)

	p := math32.Vec3(2, 4, 6)
	l := f.ToLocal(p)
	assertVec(t, math32.Vec3(1, 2, 3), l)
	assertVec(t, p, f.ToWorld(l))

	// a tangent along the normal keeps the previous tangent
	f.set(math32.Vec3(0, 0, 0), math32.Vec3(0, 0, 1), math32.Vec3(0, 0, 5), "test")
	assertVec(t, math32.Vec3(1, 0, 0), f.T)

	var g Frame
	g.set(math32.Vec3(0, 0, 0), math32.Vec3(0, 0, 1), math32.Vector3{}, "test")
	assertVec(t, math32.Vec3(0, 1, 0), g.T)
	assertOrthonormal(t, g)
}

func TestCoordFrame(t *testing.T) {
	surf := mesh.NewQuadGrid(nil, 2, 2, nil)
	tr := NewTracker(surf)
	v := surf.Vert(4)
	cf := NewCoordFrame(v, tr)
	assert.Same(t, v, cf.Vert())
	require.NoError(t, cf.Update())
	assertVec(t, math32.Vec3(1, 1, 0), cf.O)
	assertVec(t, math32.Vec3(0, 0, 1), cf.N)
	assertOrthonormal(t, cf.Frame)
	other := v.Edge(0).OtherVert(v)
	assertVec(t, other.Pos().Sub(v.Pos()).Normal(), cf.T)

	lift(surf, 2)
	assert.True(t, cf.IsDirty())
	require.NoError(t, cf.Update())
	assertVec(t, math32.Vec3(1, 1, 2), cf.O)

	lone := mesh.New("lone", nil)
	lv := lone.AddVertex(math32.Vec3(3, 0, 0))
	lf := NewCoordFrame(lv, NewTracker(lone))
	require.NoError(t, lf.Update())
	assertVec(t, math32.Vec3(0, 0, 1), lf.N)
	assertOrthonormal(t, lf.Frame)
}

func TestEdgeFrame(t *testing.T) {
	surf := mesh.NewQuadGrid(nil, 2, 2, nil)
	tr := NewTracker(surf)
	e := surf.Vert(0).LookupEdge(surf.Vert(1))
	require.NotNil(t, e)
	ef := NewEdgeFrame(e, tr)
	assert.Same(t, e, ef.Edge())
	require.NoError(t, ef.Update())
	assertVec(t, e.V1().Pos(), ef.O)
	assertVec(t, e.Vec().Normal(), ef.T)
	assertVec(t, math32.Vec3(0, 0, 1), ef.N)
	assertOrthonormal(t, ef.Frame)
}
