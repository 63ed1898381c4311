// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subdiv

import "cogentcore.org/jot/mesh"

// LoopCalc is Loop subdivision, with the crease rules of Hoppe et al.
// (Piecewise smooth surface reconstruction, 1994). It treats quads as
// their two triangles.
type LoopCalc[T Blendable[T]] struct {
	Get Accessor[T]
}

// NewLoopCalc returns a [LoopCalc] over get.
func NewLoopCalc[T Blendable[T]](get Accessor[T]) *LoopCalc[T] {
	return &LoopCalc[T]{Get: get}
}

func (lc *LoopCalc[T]) Name() string { return "Loop subdivision" }

func (lc *LoopCalc[T]) Prepare(m *mesh.Mesh) {}

// centroid returns the average of the neighbors of v that its mask
// smooths with: all of them for a smooth or dart vertex, the ones
// along the crease curve for a crease vertex.
func (lc *LoopCalc[T]) centroid(v *mesh.Vert, vm VertMask) T {
	switch vm {
	case SmoothVert, DartVert:
		return average(lc.Get, v.Nbrs())
	case RegularCreaseVert:
		var nbrs []*mesh.Vert
		for _, e := range v.Edges() {
			if isCurveEdge(e) {
				nbrs = append(nbrs, e.OtherVert(v))
			}
		}
		return average(lc.Get, nbrs)
	}
	return lc.Get(v)
}

func (lc *LoopCalc[T]) VertVal(v *mesh.Vert) T {
	switch vm := VertMaskOf(v); vm {
	case SmoothVert, DartVert:
		n := v.Degree()
		a := loopAlpha(n)
		return interp(lc.centroid(v, vm), lc.Get(v), a/(a+float32(n)))
	case RegularCreaseVert:
		return lc.creaseVal(v)
	}
	return lc.Get(v)
}

// creaseVal is 3/4 of v plus 1/8 of each neighbor along the crease.
func (lc *LoopCalc[T]) creaseVal(v *mesh.Vert) T {
	return interp(lc.centroid(v, RegularCreaseVert), lc.Get(v), 0.75)
}

func (lc *LoopCalc[T]) EdgeVal(e *mesh.Edge) T {
	a, b := lc.Get(e.V1()), lc.Get(e.V2())
	if isCreaseEdge(e) {
		return interp(a, b, 0.5)
	}
	o1 := lc.Get(e.OppositeVert(e.F1()))
	o2 := lc.Get(e.OppositeVert(e.F2()))
	return a.Add(b).MulScalar(3).Add(o1).Add(o2).MulScalar(1.0 / 8)
}

func (lc *LoopCalc[T]) LimitVal(v *mesh.Vert) T {
	switch vm := VertMaskOf(v); vm {
	case SmoothVert, DartVert:
		n := float32(v.Degree())
		b := loopBeta(n)
		o := 3 * n / (8 * b)
		return interp(lc.centroid(v, vm), lc.Get(v), o/(o+n))
	case RegularCreaseVert:
		return interp(lc.centroid(v, vm), lc.Get(v), 2.0/3)
	}
	return lc.Get(v)
}
