// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/jot/math32"
)

// Vert is a mesh vertex: a position and color, with the list of
// edges incident to it.
type Vert struct {
	SimplexBase

	pos    math32.Vector3
	color  math32.Vector4
	edges  []*Edge
	normal math32.Vector3
}

func (v *Vert) simplex() {}

// Dim returns 0.
func (v *Vert) Dim() int { return 0 }

func (v *Vert) String() string {
	return fmt.Sprintf("v%d", v.index)
}

// Pos returns the position of the vertex.
func (v *Vert) Pos() math32.Vector3 { return v.pos }

// SetPos moves the vertex and fires [VertPositionsChanged] on its mesh.
// Use [Mesh.SetVertPositions] to move many vertices with one notification.
func (v *Vert) SetPos(p math32.Vector3) {
	v.setPos(p)
	if v.mesh != nil {
		v.mesh.Changed(VertPositionsChanged)
	}
}

func (v *Vert) setPos(p math32.Vector3) {
	v.pos = p
	v.geomChanged()
}

// geomChanged marks the vertex and everything whose shape depends on
// it as dirty, notifying the attached data.
func (v *Vert) geomChanged() {
	v.SetBit(NormalDirtyBit, GeomDirtyBit)
	v.NotifyChanged()
	v.NotifyNormalChanged()
	for _, e := range v.edges {
		e.SetBit(GeomDirtyBit)
		e.NotifyChanged()
		u := e.OtherVert(v)
		u.SetBit(NormalDirtyBit)
		u.NotifyNormalChanged()
	}
	for _, f := range v.Faces() {
		f.SetBit(NormalDirtyBit, GeomDirtyBit)
		f.NotifyChanged()
		f.NotifyNormalChanged()
	}
}

// Color returns the color of the vertex.
func (v *Vert) Color() math32.Vector4 { return v.color }

// SetColor sets the color of the vertex and fires [VertColorsChanged].
func (v *Vert) SetColor(c math32.Vector4) {
	v.color = c
	if v.mesh != nil {
		v.mesh.Changed(VertColorsChanged)
	}
}

// IsCorner returns whether the vertex is marked as a corner,
// which subdivision keeps fixed.
func (v *Vert) IsCorner() bool { return v.HasBit(CornerBit) }

// SetCorner marks or unmarks the vertex as a corner and
// fires [CreasesChanged].
func (v *Vert) SetCorner(on bool) {
	v.SetBitState(CornerBit, on)
	if v.mesh != nil {
		v.mesh.Changed(CreasesChanged)
	}
}

// Degree returns the number of incident edges.
func (v *Vert) Degree() int { return len(v.edges) }

// Edge returns the i-th incident edge.
func (v *Vert) Edge(i int) *Edge { return v.edges[i] }

// Edges returns a copy of the list of incident edges.
func (v *Vert) Edges() []*Edge { return slices.Clone(v.edges) }

// Nbr returns the vertex at the other end of the i-th incident edge.
func (v *Vert) Nbr(i int) *Vert { return v.edges[i].OtherVert(v) }

// Nbrs returns the neighboring vertices, in edge order.
func (v *Vert) Nbrs() []*Vert {
	nbrs := make([]*Vert, len(v.edges))
	for i, e := range v.edges {
		nbrs[i] = e.OtherVert(v)
	}
	return nbrs
}

// StrongEdges returns the incident edges that are not quad diagonals.
func (v *Vert) StrongEdges() []*Edge {
	var se []*Edge
	for _, e := range v.edges {
		if e.IsStrong() {
			se = append(se, e)
		}
	}
	return se
}

// StrongNbrs returns the neighbors across the strong incident edges.
func (v *Vert) StrongNbrs() []*Vert {
	var nbrs []*Vert
	for _, e := range v.edges {
		if e.IsStrong() {
			nbrs = append(nbrs, e.OtherVert(v))
		}
	}
	return nbrs
}

// LookupEdge returns the edge joining v and u, or nil.
func (v *Vert) LookupEdge(u *Vert) *Edge {
	if u == nil || u == v {
		return nil
	}
	// search from the vertex with fewer edges
	a, b := v, u
	if len(b.edges) < len(a.edges) {
		a, b = b, a
	}
	for _, e := range a.edges {
		if e.OtherVert(a) == b {
			return e
		}
	}
	return nil
}

// Faces returns the star of the vertex: every face containing it,
// each once, in incident edge order.
func (v *Vert) Faces() []*Face {
	var faces []*Face
	for _, e := range v.edges {
		for _, f := range e.Faces() {
			if !slices.Contains(faces, f) {
				faces = append(faces, f)
			}
		}
	}
	return faces
}

// QuadFaces returns the logical faces around the vertex: the
// triangles, plus the [Face.QuadRep] of each quad, once.
func (v *Vert) QuadFaces() []*Face {
	var faces []*Face
	for _, f := range v.Faces() {
		r := f.QuadRep()
		if !slices.Contains(faces, r) {
			faces = append(faces, r)
		}
	}
	return faces
}

// QuadNbrs returns, for each quad around the vertex, the
// corner of the quad diagonally across from the vertex.
func (v *Vert) QuadNbrs() []*Vert {
	var nbrs []*Vert
	for _, f := range v.QuadFaces() {
		q, ok := f.QuadVerts()
		if !ok {
			continue
		}
		for i := range 4 {
			if q[i] == v {
				nbrs = append(nbrs, q[(i+2)%4])
				break
			}
		}
	}
	return nbrs
}

// NumFaces returns the number of faces in the star.
func (v *Vert) NumFaces() int { return len(v.Faces()) }

// NumTris returns the number of triangles (faces that are
// not part of a quad) around the vertex.
func (v *Vert) NumTris() int {
	n := 0
	for _, f := range v.Faces() {
		if !f.IsQuad() {
			n++
		}
	}
	return n
}

// NumQuads returns the number of logical quads around the vertex.
func (v *Vert) NumQuads() int {
	n := 0
	for _, f := range v.QuadFaces() {
		if f.IsQuad() {
			n++
		}
	}
	return n
}

// IsBorder returns whether any incident edge is a border edge.
func (v *Vert) IsBorder() bool {
	return slices.ContainsFunc(v.edges, (*Edge).IsBorder)
}

// NumCreases returns the number of incident edges that are
// creases or borders.
func (v *Vert) NumCreases() int {
	n := 0
	for _, e := range v.edges {
		if e.IsPolyCrease() {
			n++
		}
	}
	return n
}

// NumPolylines returns the number of incident edges without faces.
func (v *Vert) NumPolylines() int {
	n := 0
	for _, e := range v.edges {
		if e.IsPolyline() {
			n++
		}
	}
	return n
}

// NumManifold returns the number of incident edges with at least one face.
func (v *Vert) NumManifold() int {
	return v.Degree() - v.NumPolylines()
}

// Normal returns the area weighted average of the normals of the
// faces around the vertex. It is cached until the vertex or a
// neighbor moves. A vertex without faces has a zero normal.
func (v *Vert) Normal() math32.Vector3 {
	if !v.HasBit(NormalDirtyBit) {
		return v.normal
	}
	v.ClearBit(NormalDirtyBit)
	var sum math32.Vector3
	faces := v.Faces()
	for _, f := range faces {
		sum.SetAdd(f.rawNormal())
	}
	if len(faces) == 0 {
		slog.Debug("mesh.Vert.Normal: no faces at vertex", "vert", v)
	}
	v.normal = sum.Normal()
	return v.normal
}

// Neighbors returns the faces around the vertex and its incident edges.
func (v *Vert) Neighbors() []Simplex {
	faces := v.Faces()
	nbrs := make([]Simplex, 0, len(faces)+len(v.edges))
	for _, f := range faces {
		nbrs = append(nbrs, f)
	}
	for _, e := range v.edges {
		nbrs = append(nbrs, e)
	}
	return nbrs
}

// NearestPoint returns the vertex position and (1, 0, 0).
func (v *Vert) NearestPoint(p math32.Vector3) (pt, bc math32.Vector3) {
	return v.pos, math32.Vec3(1, 0, 0)
}

// BCToSimplex returns the vertex itself.
func (v *Vert) BCToSimplex(bc math32.Vector3) Simplex { return v }

// BCToPos returns the vertex position.
func (v *Vert) BCToPos(bc math32.Vector3) math32.Vector3 { return v.pos }

// Centroid returns the vertex position.
func (v *Vert) Centroid() math32.Vector3 { return v.pos }

// NbrsCentroid returns the average position of the neighbors,
// or the vertex position when it has none.
func (v *Vert) NbrsCentroid() math32.Vector3 {
	if len(v.edges) == 0 {
		return v.pos
	}
	var sum math32.Vector3
	for _, e := range v.edges {
		sum.SetAdd(e.OtherVert(v).pos)
	}
	return sum.DivScalar(float32(len(v.edges)))
}

func (v *Vert) addEdge(e *Edge) {
	v.edges = append(v.edges, e)
}

func (v *Vert) removeEdge(e *Edge) {
	if i := slices.Index(v.edges, e); i >= 0 {
		v.edges = slices.Delete(v.edges, i, i+1)
	}
}
