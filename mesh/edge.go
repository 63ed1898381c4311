// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"fmt"
	"slices"

	"cogentcore.org/jot/math32"
)

// Edge joins two vertices and is shared by up to two faces in a
// manifold mesh. Faces beyond the second are kept in a separate
// list so that non-manifold input can still be represented.
type Edge struct {
	SimplexBase

	v1, v2 *Vert
	f1, f2 *Face
	adj    []*Face
}

func (e *Edge) simplex() {}

// Dim returns 1.
func (e *Edge) Dim() int { return 1 }

func (e *Edge) String() string {
	return fmt.Sprintf("e%d(%v,%v)", e.index, e.v1, e.v2)
}

// V1 returns the first vertex.
func (e *Edge) V1() *Vert { return e.v1 }

// V2 returns the second vertex.
func (e *Edge) V2() *Vert { return e.v2 }

// F1 returns the first face, possibly nil.
func (e *Edge) F1() *Face { return e.f1 }

// F2 returns the second face, possibly nil.
func (e *Edge) F2() *Face { return e.f2 }

// Faces returns the faces containing the edge.
func (e *Edge) Faces() []*Face {
	faces := make([]*Face, 0, 2+len(e.adj))
	if e.f1 != nil {
		faces = append(faces, e.f1)
	}
	if e.f2 != nil {
		faces = append(faces, e.f2)
	}
	return append(faces, e.adj...)
}

// NumFaces returns the number of faces containing the edge.
func (e *Edge) NumFaces() int {
	n := len(e.adj)
	if e.f1 != nil {
		n++
	}
	if e.f2 != nil {
		n++
	}
	return n
}

// NumQuads returns the number of faces of the edge that are part of a quad.
func (e *Edge) NumQuads() int {
	n := 0
	for _, f := range e.Faces() {
		if f.IsQuad() {
			n++
		}
	}
	return n
}

// Contains returns whether v is an endpoint.
func (e *Edge) Contains(v *Vert) bool {
	return v != nil && (e.v1 == v || e.v2 == v)
}

// OtherVert returns the endpoint that is not v, or nil
// if v is not an endpoint.
func (e *Edge) OtherVert(v *Vert) *Vert {
	switch v {
	case e.v1:
		return e.v2
	case e.v2:
		return e.v1
	}
	return nil
}

// OtherFace returns the face of a manifold edge that is not f.
func (e *Edge) OtherFace(f *Face) *Face {
	switch f {
	case e.f1:
		return e.f2
	case e.f2:
		return e.f1
	}
	return nil
}

// OppositeVert returns the vertex of f that is not on the edge.
func (e *Edge) OppositeVert(f *Face) *Vert {
	if f == nil {
		return nil
	}
	return f.OtherVert(e)
}

// SharesVert returns the endpoint shared with the other edge, or nil.
func (e *Edge) SharesVert(o *Edge) *Vert {
	switch {
	case o == nil || o == e:
		return nil
	case o.Contains(e.v1):
		return e.v1
	case o.Contains(e.v2):
		return e.v2
	}
	return nil
}

// CCWFace returns the face in which the edge runs from V1 to V2
// in counter-clockwise order, or nil.
func (e *Edge) CCWFace() *Face {
	for _, f := range e.Faces() {
		if f.Next(e.v1) == e.v2 {
			return f
		}
	}
	return nil
}

// IsBorder returns whether the edge has exactly one face.
func (e *Edge) IsBorder() bool { return e.NumFaces() == 1 }

// IsPolyline returns whether the edge has no faces.
func (e *Edge) IsPolyline() bool { return e.NumFaces() == 0 }

// IsManifold returns whether the edge has at most two faces.
func (e *Edge) IsManifold() bool { return len(e.adj) == 0 }

// IsCrease returns whether the edge is marked as a crease.
func (e *Edge) IsCrease() bool { return e.HasBit(CreaseBit) }

// IsPolyCrease returns whether the edge is a strong edge that is a
// crease or a border: an edge subdivision keeps sharp.
func (e *Edge) IsPolyCrease() bool {
	return e.IsStrong() && (e.IsCrease() || e.NumFaces() == 1)
}

// SetCrease marks or unmarks the edge as a crease and fires
// [CreasesChanged] on the mesh.
func (e *Edge) SetCrease(on bool) {
	if e.IsCrease() == on {
		return
	}
	e.SetBitState(CreaseBit, on)
	if e.mesh != nil {
		e.mesh.Changed(CreasesChanged)
	}
}

// IsWeak returns whether the edge is the hidden diagonal of a quad.
func (e *Edge) IsWeak() bool { return e.HasBit(WeakBit) }

// IsStrong returns whether the edge is not a quad diagonal.
func (e *Edge) IsStrong() bool { return !e.HasBit(WeakBit) }

// Vec returns V2 - V1.
func (e *Edge) Vec() math32.Vector3 { return e.v2.pos.Sub(e.v1.pos) }

// Length returns the distance between the endpoints.
func (e *Edge) Length() float32 { return e.v1.pos.DistanceTo(e.v2.pos) }

// Midpoint returns the point halfway between the endpoints.
func (e *Edge) Midpoint() math32.Vector3 {
	return e.v1.pos.Add(e.v2.pos).MulScalar(0.5)
}

// Line returns the edge as a segment from V1 to V2.
func (e *Edge) Line() math32.Line3 { return math32.NewLine3(e.v1.pos, e.v2.pos) }

// Neighbors returns the faces of the edge and its endpoints.
func (e *Edge) Neighbors() []Simplex {
	faces := e.Faces()
	nbrs := make([]Simplex, 0, len(faces)+2)
	for _, f := range faces {
		nbrs = append(nbrs, f)
	}
	return append(nbrs, e.v1, e.v2)
}

// NearestPoint returns the point of the edge closest to p and its
// barycentric coordinates (1-t, t, 0).
func (e *Edge) NearestPoint(p math32.Vector3) (pt, bc math32.Vector3) {
	l := e.Line()
	pt, t := l.ClosestPointToPoint(p)
	switch t {
	case 0:
		pt = e.v1.pos
	case 1:
		pt = e.v2.pos
	}
	return pt, math32.Vec3(1-t, t, 0)
}

// BCToSimplex returns V1 or V2 when bc is at an endpoint,
// and the edge otherwise.
func (e *Edge) BCToSimplex(bc math32.Vector3) Simplex {
	switch {
	case bc.X == 1:
		return e.v1
	case bc.Y == 1:
		return e.v2
	}
	return e
}

// BCToPos returns V1*bc.X + V2*bc.Y.
func (e *Edge) BCToPos(bc math32.Vector3) math32.Vector3 {
	return e.v1.pos.MulScalar(bc.X).Add(e.v2.pos.MulScalar(bc.Y))
}

// Centroid returns the midpoint.
func (e *Edge) Centroid() math32.Vector3 { return e.Midpoint() }

func (e *Edge) addFace(f *Face) {
	switch {
	case e.f1 == nil:
		e.f1 = f
	case e.f2 == nil:
		e.f2 = f
	default:
		e.adj = append(e.adj, f)
	}
}

func (e *Edge) removeFace(f *Face) {
	switch f {
	case e.f1:
		e.f1 = nil
	case e.f2:
		e.f2 = nil
	default:
		if i := slices.Index(e.adj, f); i >= 0 {
			e.adj = slices.Delete(e.adj, i, i+1)
		}
		return
	}
	// keep f1, f2 filled before the extra faces
	if e.f1 == nil {
		e.f1, e.f2 = e.f2, nil
	}
	if e.f2 == nil && len(e.adj) > 0 {
		e.f2 = e.adj[0]
		e.adj = slices.Delete(e.adj, 0, 1)
	}
}

// redefine replaces endpoint u with v. It fails (returning false)
// when that would duplicate an existing edge or make a loop.
func (e *Edge) redefine(u, v *Vert) bool {
	o := e.OtherVert(u)
	if o == nil || o == v || v.LookupEdge(o) != nil {
		return false
	}
	u.removeEdge(e)
	if e.v1 == u {
		e.v1 = v
	} else {
		e.v2 = v
	}
	v.addEdge(e)
	return true
}
