// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subdiv

import (
	"strconv"

	"cogentcore.org/jot/math32"
	"cogentcore.org/jot/mesh"
)

// VertMask is the class of subdivision rule that applies at a vertex.
type VertMask int32

const (
	// SmoothVert is a vertex with no incident creases.
	SmoothVert VertMask = iota

	// DartVert is a vertex with exactly one incident crease,
	// subdivided like a smooth vertex.
	DartVert

	// RegularCreaseVert is a vertex on a crease or border curve,
	// smoothed along the curve only.
	RegularCreaseVert

	// CornerVert is a vertex that does not move: one marked as a
	// corner, one with fewer than two edges, or one where more than
	// two creases meet.
	CornerVert
)

var vertMaskNames = [...]string{"SmoothVert", "DartVert", "RegularCreaseVert", "CornerVert"}

func (vm VertMask) String() string {
	if vm < 0 || int(vm) >= len(vertMaskNames) {
		return "VertMask(" + strconv.Itoa(int(vm)) + ")"
	}
	return vertMaskNames[vm]
}

// VertMaskOf returns the subdivision class of v. Polyline edges
// (edges without faces) take precedence: a vertex on exactly two of
// them is a crease, on any other number a corner.
func VertMaskOf(v *mesh.Vert) VertMask {
	if v.IsCorner() || v.Degree() < 2 {
		return CornerVert
	}
	if s := v.NumPolylines(); s > 0 {
		if s == 2 {
			return RegularCreaseVert
		}
		return CornerVert
	}
	switch v.NumCreases() {
	case 0:
		return SmoothVert
	case 1:
		return DartVert
	case 2:
		return RegularCreaseVert
	}
	return CornerVert
}

// isCreaseEdge returns whether e is subdivided as a curve, taking
// the midpoint of its endpoints.
func isCreaseEdge(e *mesh.Edge) bool {
	return e.IsCrease() || e.NumFaces() != 2 || !e.IsManifold()
}

// isCurveEdge returns whether e is part of a crease curve at one of
// its endpoints: a crease, a border or a polyline.
func isCurveEdge(e *mesh.Edge) bool {
	return e.IsCrease() || e.IsBorder() || e.IsPolyline()
}

// loopAlphaTable holds the Loop vertex weights for degrees below 32.
var loopAlphaTable = [32]float32{
	1, 1, 1.282051, 2.333333, 4.258065, 6.891565, 10.0, 13.397789,
	16.957691, 20.598919, 24.272687, 27.950704, 31.617293, 35.264345, 38.888210, 42.487807,
	46.063495, 49.616397, 53.148004, 56.659946, 60.153856, 63.631303, 67.093752, 70.542553,
	73.978934, 77.404006, 80.818773, 84.224136, 87.620905, 91.009809, 94.391503, 97.766576,
}

// loopBeta returns 5/8 - (3 + 2 cos(2 pi / n))^2 / 64.
func loopBeta(n float32) float32 {
	return 5.0/8 - math32.Sqr(3+2*math32.Cos(2*math32.Pi/n))/64
}

// loopAlpha returns the Loop weight of a vertex of degree n relative
// to the centroid of its neighbors: the vertex moves to
// (alpha v + n centroid) / (alpha + n).
func loopAlpha(n int) float32 {
	if n < len(loopAlphaTable) {
		return loopAlphaTable[max(n, 0)]
	}
	b := loopBeta(float32(n))
	return float32(n) * (1 - b) / b
}
