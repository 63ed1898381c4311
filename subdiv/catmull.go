// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subdiv

import (
	"log/slog"

	"cogentcore.org/jot/mesh"
)

// CatmullClarkCalc is Catmull-Clark subdivision over quads made of
// two triangles sharing a weak edge. The vertex created at a weak
// edge is the face point of its quad.
type CatmullClarkCalc[T Blendable[T]] struct {
	Get Accessor[T]
}

// NewCatmullClarkCalc returns a [CatmullClarkCalc] over get.
func NewCatmullClarkCalc[T Blendable[T]](get Accessor[T]) *CatmullClarkCalc[T] {
	return &CatmullClarkCalc[T]{Get: get}
}

func (cc *CatmullClarkCalc[T]) Name() string { return "Catmull-Clark subdivision" }

func (cc *CatmullClarkCalc[T]) Prepare(m *mesh.Mesh) {}

// faceCentroid returns the average over the quad of f, or over f
// itself when it is a triangle.
func (cc *CatmullClarkCalc[T]) faceCentroid(f *mesh.Face) T {
	if q, ok := f.QuadVerts(); ok {
		return average(cc.Get, q[:])
	}
	vs := f.Verts()
	return average(cc.Get, vs[:])
}

// smoothCentroid is the average of the strong neighbor centroid
// and the average of the surrounding face centroids.
func (cc *CatmullClarkCalc[T]) smoothCentroid(v *mesh.Vert) T {
	vc := average(cc.Get, v.StrongNbrs())
	faces := v.QuadFaces()
	if len(faces) == 0 {
		slog.Warn("subdiv.CatmullClarkCalc: no faces at vertex", "vert", v)
		return vc
	}
	var fc T
	for _, f := range faces {
		fc = fc.Add(cc.faceCentroid(f))
	}
	fc = fc.MulScalar(1 / float32(len(faces)))
	return interp(vc, fc, 0.5)
}

// creaseNbrs returns the neighbors across the strong crease and
// border edges of v.
func creaseNbrs(v *mesh.Vert) []*mesh.Vert {
	var nbrs []*mesh.Vert
	for _, e := range v.Edges() {
		if e.IsPolyCrease() {
			nbrs = append(nbrs, e.OtherVert(v))
		}
	}
	return nbrs
}

func (cc *CatmullClarkCalc[T]) creaseCentroid(v *mesh.Vert) T {
	nbrs := creaseNbrs(v)
	if len(nbrs) != 2 {
		slog.Warn("subdiv.CatmullClarkCalc: crease vertex without two crease neighbors", "vert", v, "n", len(nbrs))
	}
	return average(cc.Get, nbrs)
}

func (cc *CatmullClarkCalc[T]) VertVal(v *mesh.Vert) T {
	if v.IsCorner() {
		return cc.Get(v)
	}
	switch len(creaseNbrs(v)) {
	case 0, 1:
		n := len(v.StrongEdges())
		if n < 2 {
			return cc.Get(v)
		}
		w := float32(n-2) / float32(n)
		return interp(cc.smoothCentroid(v), cc.Get(v), w)
	case 2:
		return interp(cc.creaseCentroid(v), cc.Get(v), 0.75)
	}
	return cc.Get(v)
}

func (cc *CatmullClarkCalc[T]) EdgeVal(e *mesh.Edge) T {
	if e.IsWeak() {
		return cc.faceCentroid(e.F1())
	}
	a, b := cc.Get(e.V1()), cc.Get(e.V2())
	if isCreaseEdge(e) {
		return interp(a, b, 0.5)
	}
	return a.Add(b).Add(cc.faceCentroid(e.F1())).Add(cc.faceCentroid(e.F2())).MulScalar(0.25)
}

// LimitVal uses the limit masks of Halstead et al. at vertices
// surrounded by quads, and the Loop limit masks elsewhere.
func (cc *CatmullClarkCalc[T]) LimitVal(v *mesh.Vert) T {
	if v.NumTris() > 0 {
		return NewLoopCalc(cc.Get).LimitVal(v)
	}
	if v.IsCorner() {
		return cc.Get(v)
	}
	switch len(creaseNbrs(v)) {
	case 0, 1:
		nbrs := v.StrongNbrs()
		n := float32(len(nbrs))
		if n < 2 {
			return cc.Get(v)
		}
		var e, f T
		for _, u := range nbrs {
			e = e.Add(cc.Get(u))
		}
		for _, u := range v.QuadNbrs() {
			f = f.Add(cc.Get(u))
		}
		return cc.Get(v).MulScalar(n * n).Add(e.MulScalar(4)).Add(f).MulScalar(1 / (n * (n + 5)))
	case 2:
		return interp(cc.creaseCentroid(v), cc.Get(v), 2.0/3)
	}
	return cc.Get(v)
}
