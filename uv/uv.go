// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uv keeps texture coordinates on the faces of a mesh. A face
// holds a coordinate for each of its vertices, so a seam is a vertex
// with different coordinates in different faces. A vertex whose faces
// agree can hold a single continuous coordinate instead, which takes
// precedence over those of its faces.
//
// The coordinates follow [mesh.Mesh.SplitEdge], which interpolates
// them at the new vertex, and subdivision, where a child vertex keeps
// the coordinate of its parent, an edge vertex gets the midpoint of
// the edge and the vertex at the center of a quad gets the average of
// its corners.
package uv

import (
	"log/slog"
	"slices"

	"cogentcore.org/jot/math32"
	"cogentcore.org/jot/mesh"
	"cogentcore.org/jot/subdiv"
)

// Kind is the kind of the texture coordinate records.
var Kind = mesh.NewDataKind("uv")

// face holds the coordinates of a face at each of its vertices.
// The vertices are those of the face when each coordinate was set.
type face struct {
	mesh.DataBase
	verts [3]*mesh.Vert
	uvs   [3]math32.Vector2
	valid [3]bool
}

// vert holds the continuous coordinate of a vertex.
type vert struct {
	mesh.DataBase
	uv    math32.Vector2
	valid bool
}

// edge carries the coordinates to the vertex generated at an edge.
type edge struct {
	mesh.DataBase
}

func faceData(f *mesh.Face) *face {
	fd, _ := mesh.FindDataAs[*face](f, Kind)
	return fd
}

func vertData(v *mesh.Vert) *vert {
	vd, _ := mesh.FindDataAs[*vert](v, Kind)
	return vd
}

// getFaceData returns the record of f, creating it with records on
// the vertices and edges of f.
func getFaceData(f *mesh.Face) *face {
	fd := mesh.GetOrCreateData(f, Kind, func() *face { return &face{verts: f.Verts()} })
	for _, v := range f.Verts() {
		getVertData(v)
	}
	for _, e := range f.Edges() {
		getEdgeData(e)
	}
	return fd
}

func getVertData(v *mesh.Vert) *vert {
	return mesh.GetOrCreateData(v, Kind, func() *vert { return &vert{} })
}

func getEdgeData(e *mesh.Edge) *edge {
	return mesh.GetOrCreateData(e, Kind, func() *edge { return &edge{} })
}

func (fd *face) slot(v *mesh.Vert) int { return slices.Index(fd.verts[:], v) }

// at returns the coordinate of v in the face, preferring the
// continuous coordinate of v.
func (fd *face) at(v *mesh.Vert) (math32.Vector2, bool) {
	if vd := vertData(v); vd != nil && vd.valid {
		return vd.uv, true
	}
	i := fd.slot(v)
	if i < 0 || !fd.valid[i] {
		return math32.Vector2{}, false
	}
	return fd.uvs[i], true
}

func (fd *face) set(v *mesh.Vert, p math32.Vector2) bool {
	i := fd.slot(v)
	if i < 0 {
		return false
	}
	fd.uvs[i] = p
	fd.valid[i] = true
	return true
}

// HasUV returns whether f has texture coordinates.
func HasUV(f *mesh.Face) bool { return f != nil && faceData(f) != nil }

// VertUV returns the continuous coordinate of v, if it has one.
func VertUV(v *mesh.Vert) (math32.Vector2, bool) {
	if vd := vertData(v); vd != nil && vd.valid {
		return vd.uv, true
	}
	return math32.Vector2{}, false
}

// At returns the coordinate of v in f: the continuous coordinate of
// v if it has one, and otherwise the one f holds for v.
func At(v *mesh.Vert, f *mesh.Face) (math32.Vector2, bool) {
	if f == nil || !f.Contains(v) {
		return math32.Vector2{}, false
	}
	if p, ok := VertUV(v); ok {
		return p, true
	}
	if fd := faceData(f); fd != nil {
		return fd.at(v)
	}
	return math32.Vector2{}, false
}

// SetVert gives v the continuous coordinate p. It returns false and
// does nothing when v is on a seam.
func SetVert(v *mesh.Vert, p math32.Vector2) bool {
	if v == nil {
		return false
	}
	if n := DiscontinuityDegree(v); n > 0 {
		slog.Warn("uv.SetVert: vertex is on a seam", "vert", v, "edges", n)
		return false
	}
	vd := getVertData(v)
	vd.uv = p
	vd.valid = true
	return true
}

// Set sets the coordinate of v in f, which must contain v. A
// continuous coordinate of v is first moved to the faces of v, so
// that setting a different value in f makes a seam.
func Set(v *mesh.Vert, f *mesh.Face, p math32.Vector2) bool {
	if f == nil || !f.Contains(v) {
		return false
	}
	fd := getFaceData(f)
	if vd := vertData(v); vd != nil && vd.valid {
		for _, g := range v.Faces() {
			if gd := faceData(g); gd != nil {
				gd.set(v, vd.uv)
			}
		}
		vd.valid = false
	}
	return fd.set(v, p)
}

// faceOf returns the face with vertices a, b and c, or nil.
func faceOf(a, b, c *mesh.Vert) *mesh.Face {
	if a == nil || b == nil {
		return nil
	}
	e := a.LookupEdge(b)
	if e == nil {
		return nil
	}
	for _, f := range e.Faces() {
		if f.Contains(c) {
			return f
		}
	}
	return nil
}

// SetTri sets the coordinates of the face with vertices a, b and c.
// It returns false if there is no such face.
func SetTri(a, b, c *mesh.Vert, ua, ub, uc math32.Vector2) bool {
	f := faceOf(a, b, c)
	if f == nil {
		return false
	}
	Set(a, f, ua)
	Set(b, f, ub)
	Set(c, f, uc)
	return true
}

// SetQuad sets the coordinates of the quad with corners a, b, c and d
// in order, split along either diagonal. It returns false if there
// is no such quad.
func SetQuad(a, b, c, d *mesh.Vert, ua, ub, uc, ud math32.Vector2) bool {
	if faceOf(a, b, c) != nil && faceOf(a, c, d) != nil {
		return SetTri(a, b, c, ua, ub, uc) && SetTri(a, c, d, ua, uc, ud)
	}
	if faceOf(a, b, d) != nil && faceOf(b, c, d) != nil {
		return SetTri(a, b, d, ua, ub, ud) && SetTri(b, c, d, ub, uc, ud)
	}
	return false
}

// QuadUVs returns the coordinates at the corners of the quad of f,
// in the order of [mesh.Face.QuadVerts]. It returns false if f is
// not a quad or a corner has no coordinate.
func QuadUVs(f *mesh.Face) ([4]math32.Vector2, bool) {
	var uvs [4]math32.Vector2
	if f == nil {
		return uvs, false
	}
	q, ok := f.QuadVerts()
	if !ok {
		return uvs, false
	}
	r := f.QuadRep()
	for i, v := range q {
		g := r
		if !g.Contains(v) {
			g = r.QuadPartner()
		}
		if uvs[i], ok = At(v, g); !ok {
			return uvs, false
		}
	}
	return uvs, true
}

// QuadInterp returns the coordinate at st in the quad of f, bilinearly
// interpolated between its corners, with (0, 0) at the first corner
// of [mesh.Face.QuadVerts], s running toward the second corner and t
// toward the fourth.
func QuadInterp(f *mesh.Face, st math32.Vector2) (math32.Vector2, bool) {
	uvs, ok := QuadUVs(f)
	if !ok {
		return math32.Vector2{}, false
	}
	a, b, c, d := uvs[0], uvs[1], uvs[2], uvs[3]
	x0 := b.Sub(a)
	x1 := c.Sub(d)
	y0 := d.Sub(a)
	return a.Add(x0.MulScalar(st.X)).Add(y0.MulScalar(st.Y)).Add(x1.Sub(x0).MulScalar(st.X * st.Y)), true
}

// IsContinuous returns whether the coordinates agree across e. An
// edge without coordinates on either side is continuous, and one
// with coordinates on only one of its two faces is not. A border edge
// is continuous.
func IsContinuous(e *mesh.Edge) bool {
	if e == nil {
		return true
	}
	f1, f2 := e.F1(), e.F2()
	h1, h2 := HasUV(f1), HasUV(f2)
	switch {
	case !h1 && !h2:
		return true
	case h1 && h2:
		for _, v := range []*mesh.Vert{e.V1(), e.V2()} {
			p1, ok1 := At(v, f1)
			p2, ok2 := At(v, f2)
			if ok1 != ok2 || p1 != p2 {
				return false
			}
		}
		return true
	}
	return f1 == nil || f2 == nil
}

// DiscontinuityDegree returns the number of edges of v across which
// the coordinates do not agree.
func DiscontinuityDegree(v *mesh.Vert) int {
	n := 0
	for i := range v.Degree() {
		if !IsContinuous(v.Edge(i)) {
			n++
		}
	}
	return n
}

// Split gives the face split off from the face of the record the
// coordinates of the original face, interpolating them at the new
// vertex on the split edge.
func (fd *face) Split(ns mesh.Simplex) {
	f, _ := fd.Simplex.(*mesh.Face)
	switch ns := ns.(type) {
	case *mesh.Edge:
		getEdgeData(ns)
	case *mesh.Face:
		if f != nil {
			fd.splitInto(f, ns)
		}
	}
}

// splitInto handles the split of f at a new vertex, where the
// vertex a of the record was replaced in f and g is the new face.
func (fd *face) splitInto(f, g *mesh.Face) {
	old := -1
	for i, v := range fd.verts {
		if !f.Contains(v) {
			old = i
		}
	}
	var nv, c *mesh.Vert
	for _, v := range f.Verts() {
		if fd.slot(v) < 0 {
			nv = v
		}
	}
	if old < 0 || nv == nil {
		return
	}
	a := fd.verts[old]
	for _, v := range fd.verts {
		if v != a && !g.Contains(v) {
			c = v
		}
	}
	var un math32.Vector2
	ok := false
	if c != nil {
		ua, okA := fd.at(a)
		uc, okC := fd.at(c)
		if ok = okA && okC; ok {
			un = ua.Lerp(uc, splitParam(a, c, nv))
		}
	}

	gd := getFaceData(g)
	for _, v := range g.Verts() {
		if v == nv {
			if ok {
				gd.set(v, un)
			}
		} else if p, vok := fd.at(v); vok {
			gd.set(v, p)
		}
	}
	fd.verts[old] = nv
	fd.uvs[old] = un
	fd.valid[old] = ok
}

// splitParam returns where v lies along the segment from a to c,
// between 0 and 1.
func splitParam(a, c, v *mesh.Vert) float32 {
	ac := c.Pos().Sub(a.Pos())
	l2 := ac.Dot(ac)
	if l2 == 0 {
		return 0.5
	}
	return math32.Clamp(v.Pos().Sub(a.Pos()).Dot(ac)/l2, 0, 1)
}

// SubdivGenerated gives the children of the face records of their own.
func (fd *face) SubdivGenerated() {
	f, _ := fd.Simplex.(*mesh.Face)
	if f == nil {
		return
	}
	for _, c := range subdiv.SubdivFaces([]*mesh.Face{f}, 1) {
		getFaceData(c)
	}
}

// setChildren sets the coordinate of cv in the children of f that
// contain it.
func setChildren(f *mesh.Face, cv *mesh.Vert, p math32.Vector2) {
	for _, c := range subdiv.SubdivFaces([]*mesh.Face{f}, 1) {
		if c.Contains(cv) {
			getFaceData(c).set(cv, p)
		}
	}
}

// HandleSubdivCalc gives the child of the vertex the coordinates of
// the vertex. The positions are still computed by the scheme.
func (vd *vert) HandleSubdivCalc() bool {
	v, _ := vd.Simplex.(*mesh.Vert)
	cv := subdiv.SubdivVert(v)
	if v == nil || cv == nil {
		return false
	}
	cd := getVertData(cv)
	cd.uv, cd.valid = vd.uv, vd.valid
	for _, f := range v.Faces() {
		if fd := faceData(f); fd != nil {
			if p, ok := fd.at(v); ok {
				setChildren(f, cv, p)
			}
		}
	}
	return false
}

func (ed *edge) Split(ns mesh.Simplex) {
	switch ns := ns.(type) {
	case *mesh.Edge:
		getEdgeData(ns)
	case *mesh.Vert:
		getVertData(ns)
	}
}

// HandleSubdivCalc gives the vertex generated at the edge the
// midpoint of the coordinates in each face of the edge, or the
// center of the quad when the edge is its diagonal.
func (ed *edge) HandleSubdivCalc() bool {
	e, _ := ed.Simplex.(*mesh.Edge)
	mv := subdiv.SubdivVert(e)
	if e == nil || mv == nil {
		return false
	}
	md := getVertData(mv)
	u1, ok1 := VertUV(e.V1())
	u2, ok2 := VertUV(e.V2())
	md.valid = ok1 && ok2 && !e.IsWeak()
	md.uv = u1.Lerp(u2, 0.5)
	for _, f := range e.Faces() {
		if fd := faceData(f); fd != nil {
			if p, ok := edgeUV(e, f, fd); ok {
				setChildren(f, mv, p)
			}
		}
	}
	return false
}

// edgeUV returns the coordinate in f of the vertex generated at e.
func edgeUV(e *mesh.Edge, f *mesh.Face, fd *face) (math32.Vector2, bool) {
	if f.WeakEdge() == e {
		uvs, ok := QuadUVs(f)
		if !ok {
			return math32.Vector2{}, false
		}
		return uvs[0].Add(uvs[1]).Add(uvs[2]).Add(uvs[3]).MulScalar(0.25), true
	}
	a, okA := fd.at(e.V1())
	b, okB := fd.at(e.V2())
	if !okA || !okB {
		return math32.Vector2{}, false
	}
	return a.Lerp(b, 0.5), true
}
