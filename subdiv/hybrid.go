// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subdiv

import (
	"cogentcore.org/jot/mesh"
)

// Classifier finds the vertices of a mesh that are near a triangle:
// those within a given number of rings of a face that is not part of
// a quad. The vertices of a triangle are at ring 0, so with one ring
// only they are near. The classification belongs to one mesh and must
// be recomputed for each level, since the near region shrinks as the
// quads around triangles are subdivided.
type Classifier struct {
	rings int
	dist  map[*mesh.Vert]int
}

// NewClassifier classifies the vertices of m.
func NewClassifier(m *mesh.Mesh, rings int) *Classifier {
	c := &Classifier{rings: rings, dist: make(map[*mesh.Vert]int)}
	if rings <= 0 {
		return c
	}
	var front []*mesh.Vert
	for _, f := range m.Faces() {
		if f.IsQuad() {
			continue
		}
		for _, v := range f.Verts() {
			if _, ok := c.dist[v]; !ok {
				c.dist[v] = 0
				front = append(front, v)
			}
		}
	}
	for d := 1; d < rings && len(front) > 0; d++ {
		var next []*mesh.Vert
		for _, v := range front {
			for _, u := range v.Nbrs() {
				if _, ok := c.dist[u]; !ok {
					c.dist[u] = d
					next = append(next, u)
				}
			}
		}
		front = next
	}
	return c
}

// IsNear returns whether v is near a triangle.
func (c *Classifier) IsNear(v *mesh.Vert) bool {
	_, ok := c.dist[v]
	return ok
}

// Ring returns the number of rings between v and the nearest
// triangle, and false when v is not near one.
func (c *Classifier) Ring(v *mesh.Vert) (int, bool) {
	d, ok := c.dist[v]
	return d, ok
}

// NumNear returns the number of vertices near a triangle.
func (c *Classifier) NumNear() int { return len(c.dist) }

// Weights of the neighbor classes in the hybrid vertex mask.
const (
	hybridQuadQuad = 6 // across a strong edge between two quads
	hybridDiagonal = 1 // diagonally across a quad
	hybridQuadTri  = 5 // across a strong edge between a quad and a triangle
	hybridTriTri   = 4 // across an edge between two triangles
)

// HybridCalc subdivides mixed meshes of triangles and quads: Loop
// masks where there are only triangles, Catmull-Clark masks in
// regions of quads away from triangles, and blended masks in
// between. The region of a vertex is classified on the mesh passed
// to [HybridCalc.Prepare].
type HybridCalc[T Blendable[T]] struct {
	Get Accessor[T]

	// Rings is the near triangle ring count of the [Classifier].
	Rings int

	loop *LoopCalc[T]
	cc   *CatmullClarkCalc[T]
	cls  *Classifier
	m    *mesh.Mesh
}

// NewHybridCalc returns a [HybridCalc] over get.
func NewHybridCalc[T Blendable[T]](get Accessor[T], rings int) *HybridCalc[T] {
	return &HybridCalc[T]{Get: get, Rings: rings, loop: NewLoopCalc(get), cc: NewCatmullClarkCalc(get)}
}

func (hc *HybridCalc[T]) Name() string { return "Hybrid subdivision" }

// Prepare computes a new [Classifier] for m.
func (hc *HybridCalc[T]) Prepare(m *mesh.Mesh) {
	hc.m = m
	hc.cls = NewClassifier(m, hc.Rings)
}

// Classifier returns the classifier of the last prepared mesh.
func (hc *HybridCalc[T]) Classifier() *Classifier { return hc.cls }

func (hc *HybridCalc[T]) isNear(v *mesh.Vert) bool {
	if hc.cls == nil || hc.m != v.Mesh() {
		hc.Prepare(v.Mesh())
	}
	return hc.cls.IsNear(v)
}

// centroid is the weighted average of the neighbors of v used by the
// blended vertex mask.
func (hc *HybridCalc[T]) centroid(v *mesh.Vert) T {
	var sum T
	var wsum float32
	add := func(u *mesh.Vert, w float32) {
		sum = sum.Add(hc.Get(u).MulScalar(w))
		wsum += w
	}
	for _, e := range v.StrongEdges() {
		switch e.NumQuads() {
		case 2:
			add(e.OtherVert(v), hybridQuadQuad)
		case 1:
			add(e.OtherVert(v), hybridQuadTri)
		default:
			add(e.OtherVert(v), hybridTriTri)
		}
	}
	for _, u := range v.QuadNbrs() {
		add(u, hybridDiagonal)
	}
	if wsum == 0 {
		return hc.Get(v)
	}
	return sum.MulScalar(1 / wsum)
}

func (hc *HybridCalc[T]) VertVal(v *mesh.Vert) T {
	if v.IsCorner() || v.Degree() < 2 {
		return hc.Get(v)
	}
	switch len(creaseNbrs(v)) {
	case 0, 1:
		tris, quads := v.NumTris(), v.NumQuads()
		switch {
		case quads == 0:
			return hc.loop.VertVal(v)
		case tris == 0 && !hc.isNear(v):
			return hc.cc.VertVal(v)
		}
		n := float32(tris) + 1.5*float32(quads)
		k := 2 * n / 3
		loopW := 1 - loopBeta(n)
		ccW := 1 - 7/(4*k)
		s := float32(tris) / n
		return interp(hc.centroid(v), hc.Get(v), loopW*s+ccW*(1-s))
	case 2:
		return hc.loop.creaseVal(v)
	}
	return hc.Get(v)
}

func (hc *HybridCalc[T]) EdgeVal(e *mesh.Edge) T {
	if e.IsWeak() {
		return hc.cc.EdgeVal(e)
	}
	if isCreaseEdge(e) {
		return hc.loop.EdgeVal(e)
	}
	switch e.NumQuads() {
	case 0:
		return hc.loop.EdgeVal(e)
	case 2:
		if hc.isNear(e.V1()) && hc.isNear(e.V2()) {
			return hc.loop.EdgeVal(e)
		}
		return hc.cc.EdgeVal(e)
	}
	// one quad, one triangle: 3/8 of each endpoint, 1/8 of the
	// triangle's third vertex, 1/16 of each end of the far quad side
	quad, tri := e.F1(), e.F2()
	if !quad.IsQuad() {
		quad, tri = tri, quad
	}
	a, b := hc.Get(e.V1()), hc.Get(e.V2())
	far := quad.OppositeQuadEdge(e)
	if far == nil {
		return hc.loop.EdgeVal(e)
	}
	c, d := hc.Get(far.V1()), hc.Get(far.V2())
	o := hc.Get(tri.OtherVert(e))
	return c.Add(d).MulScalar(0.5).Add(a.Add(b).MulScalar(3)).Add(o).MulScalar(1.0 / 8)
}

// LimitVal uses the Catmull-Clark limit masks in regions of quads
// away from triangles, and the Loop limit masks elsewhere.
func (hc *HybridCalc[T]) LimitVal(v *mesh.Vert) T {
	if v.NumQuads() > 0 && v.NumTris() == 0 && !hc.isNear(v) {
		return hc.cc.LimitVal(v)
	}
	return hc.loop.LimitVal(v)
}
