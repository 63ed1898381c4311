// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"fmt"
	"slices"

	"cogentcore.org/jot/math32"
)

// Face is a triangle with vertices in counter-clockwise order.
// Edge i joins vertex i to vertex i+1 (mod 3). Two faces sharing a
// weak edge together represent a quad.
type Face struct {
	SimplexBase

	v      [3]*Vert
	e      [3]*Edge
	patch  *Patch
	serial int
	normal math32.Vector3
}

func (f *Face) simplex() {}

// Dim returns 2.
func (f *Face) Dim() int { return 2 }

func (f *Face) String() string {
	return fmt.Sprintf("f%d(%v,%v,%v)", f.index, f.v[0], f.v[1], f.v[2])
}

// V returns vertex i, for i in 0..2.
func (f *Face) V(i int) *Vert { return f.v[i] }

// E returns edge i, joining vertex i and vertex i+1.
func (f *Face) E(i int) *Edge { return f.e[i] }

// Verts returns the three vertices.
func (f *Face) Verts() [3]*Vert { return f.v }

// Edges returns the three edges.
func (f *Face) Edges() [3]*Edge { return f.e }

// Patch returns the patch the face belongs to, possibly nil.
func (f *Face) Patch() *Patch { return f.patch }

// Serial returns the creation order of the face within its mesh.
func (f *Face) Serial() int { return f.serial }

// VIndex returns the index of v in the face, or -1.
func (f *Face) VIndex(v *Vert) int {
	return slices.Index(f.v[:], v)
}

// EIndex returns the index of e in the face, or -1.
func (f *Face) EIndex(e *Edge) int {
	return slices.Index(f.e[:], e)
}

// Contains returns whether v is a vertex of the face.
func (f *Face) Contains(v *Vert) bool { return v != nil && f.VIndex(v) >= 0 }

// ContainsEdge returns whether e is an edge of the face.
func (f *Face) ContainsEdge(e *Edge) bool { return e != nil && f.EIndex(e) >= 0 }

// Next returns the vertex after v in counter-clockwise order, or nil.
func (f *Face) Next(v *Vert) *Vert {
	i := f.VIndex(v)
	if i < 0 {
		return nil
	}
	return f.v[(i+1)%3]
}

// Prev returns the vertex before v in counter-clockwise order, or nil.
func (f *Face) Prev(v *Vert) *Vert {
	i := f.VIndex(v)
	if i < 0 {
		return nil
	}
	return f.v[(i+2)%3]
}

// OtherVert returns the vertex that is not on edge e, or nil
// if e is not an edge of the face.
func (f *Face) OtherVert(e *Edge) *Vert {
	i := f.EIndex(e)
	if i < 0 {
		return nil
	}
	return f.v[(i+2)%3]
}

// ThirdVert returns the vertex that is neither a nor b.
func (f *Face) ThirdVert(a, b *Vert) *Vert {
	for _, v := range f.v {
		if v != a && v != b {
			return v
		}
	}
	return nil
}

// EdgeOpposite returns the edge that does not contain v, or nil
// if v is not a vertex of the face.
func (f *Face) EdgeOpposite(v *Vert) *Edge {
	i := f.VIndex(v)
	if i < 0 {
		return nil
	}
	return f.e[(i+1)%3]
}

// Nbr returns the face across edge i, or nil.
func (f *Face) Nbr(i int) *Face {
	if f.e[i] == nil {
		return nil
	}
	return f.e[i].OtherFace(f)
}

// Triangle returns the positions of the face as a triangle.
func (f *Face) Triangle() math32.Triangle {
	return math32.NewTriangle(f.v[0].pos, f.v[1].pos, f.v[2].pos)
}

// rawNormal returns the cross product of two edges, whose length
// is twice the area of the face.
func (f *Face) rawNormal() math32.Vector3 {
	a := f.v[0].pos
	return f.v[1].pos.Sub(a).Cross(f.v[2].pos.Sub(a))
}

// Normal returns the unit normal, cached until a vertex moves.
func (f *Face) Normal() math32.Vector3 {
	if f.HasBit(NormalDirtyBit) {
		f.normal = f.rawNormal().Normal()
		f.ClearBit(NormalDirtyBit)
	}
	return f.normal
}

// Area returns the area of the face.
func (f *Face) Area() float32 {
	return 0.5 * f.rawNormal().Length()
}

// WeakEdge returns the weak edge of the face, or nil.
func (f *Face) WeakEdge() *Edge {
	for _, e := range f.e {
		if e != nil && e.IsWeak() {
			return e
		}
	}
	return nil
}

// IsQuad returns whether the face is half of a quad.
func (f *Face) IsQuad() bool { return f.QuadPartner() != nil }

// QuadPartner returns the other half of the quad, or nil.
func (f *Face) QuadPartner() *Face {
	w := f.WeakEdge()
	if w == nil {
		return nil
	}
	return w.OtherFace(f)
}

// QuadVert returns the vertex of the quad partner that is not
// in this face, or nil.
func (f *Face) QuadVert() *Vert {
	p := f.QuadPartner()
	if p == nil {
		return nil
	}
	return p.OtherVert(f.WeakEdge())
}

// QuadRep returns the representative face of a quad, which is
// the half created first. A triangle is its own representative.
func (f *Face) QuadRep() *Face {
	p := f.QuadPartner()
	if p == nil || f.serial < p.serial {
		return f
	}
	return p
}

// QuadVerts returns the four vertices of a quad in counter-clockwise
// order, starting from the vertex of the representative face opposite
// the weak edge. It returns false for a triangle.
func (f *Face) QuadVerts() ([4]*Vert, bool) {
	r := f.QuadRep()
	w := r.WeakEdge()
	if w == nil || r.QuadPartner() == nil {
		return [4]*Vert{}, false
	}
	c := r.OtherVert(w)
	return [4]*Vert{c, r.Next(c), r.QuadVert(), r.Prev(c)}, true
}

// OppositeQuadEdge returns the side of the quad across from side e,
// or nil if the face is not a quad or e is not one of its sides.
func (f *Face) OppositeQuadEdge(e *Edge) *Edge {
	q, ok := f.QuadVerts()
	if !ok || e == nil {
		return nil
	}
	for i := range 4 {
		a, b := q[i], q[(i+1)%4]
		if (e.v1 == a && e.v2 == b) || (e.v1 == b && e.v2 == a) {
			return q[(i+2)%4].LookupEdge(q[(i+3)%4])
		}
	}
	return nil
}

// QuadCentroid returns the centroid of the quad, or of the
// triangle when the face is not part of a quad.
func (f *Face) QuadCentroid() math32.Vector3 {
	q, ok := f.QuadVerts()
	if !ok {
		return f.Centroid()
	}
	var sum math32.Vector3
	for _, v := range q {
		sum.SetAdd(v.pos)
	}
	return sum.MulScalar(0.25)
}

// Neighbors returns the faces that share a vertex with this face.
func (f *Face) Neighbors() []Simplex {
	var nbrs []Simplex
	for _, v := range f.v {
		for _, g := range v.Faces() {
			if g != f && !slices.Contains(nbrs, Simplex(g)) {
				nbrs = append(nbrs, g)
			}
		}
	}
	return nbrs
}

// NearestPoint returns the point of the face closest to p
// and its barycentric coordinates.
func (f *Face) NearestPoint(p math32.Vector3) (pt, bc math32.Vector3) {
	t := f.Triangle()
	return t.ClosestPoint(p)
}

// BCToSimplex returns the vertex or edge containing the point with
// the given barycentric coordinates, or the face for an interior point.
func (f *Face) BCToSimplex(bc math32.Vector3) Simplex {
	switch {
	case bc.X == 1:
		return f.v[0]
	case bc.Y == 1:
		return f.v[1]
	case bc.Z == 1:
		return f.v[2]
	case bc.X == 0:
		return f.e[1]
	case bc.Y == 0:
		return f.e[2]
	case bc.Z == 0:
		return f.e[0]
	}
	return f
}

// BCToPos returns the position with the given barycentric coordinates.
func (f *Face) BCToPos(bc math32.Vector3) math32.Vector3 {
	t := f.Triangle()
	return t.FromBarycoord(bc)
}

// Centroid returns the average of the three vertex positions.
func (f *Face) Centroid() math32.Vector3 {
	return f.v[0].pos.Add(f.v[1].pos).Add(f.v[2].pos).MulScalar(1.0 / 3)
}

func (f *Face) isAttached() bool { return f.e[0] != nil }

// detach removes the face from its edges, leaving its vertices.
func (f *Face) detach() {
	for i, e := range f.e {
		if e != nil {
			e.removeFace(f)
		}
		f.e[i] = nil
	}
}

// attach links the face to the edges joining its vertices,
// creating missing edges.
func (f *Face) attach() {
	for i := range 3 {
		e := f.mesh.getEdge(f.v[i], f.v[(i+1)%3])
		f.e[i] = e
		e.addFace(f)
	}
	f.SetBit(NormalDirtyBit)
}

// replaceVert replaces vertex u with v in a detached face.
func (f *Face) replaceVert(u, v *Vert) {
	if i := f.VIndex(u); i >= 0 {
		f.v[i] = v
	}
}
