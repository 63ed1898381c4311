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

// SplitEdge inserts a new vertex at p on edge e, splitting each face
// of e in two. The original edge and faces are kept and redefined to
// use the new vertex, and [Data] on them is told about every simplex
// split off from them. A quad whose diagonal is split becomes two
// pairs of triangles.
//
//	        c
//	      / | \
//	     d  v  b
//	      \ | /
//	        a
func (m *Mesh) SplitEdge(e *Edge, p math32.Vector3) (*Vert, error) {
	if e == nil || e.mesh != m {
		return nil, fmt.Errorf("mesh.SplitEdge: %v: %w", e, ErrNotInMesh)
	}
	if !e.IsManifold() {
		return nil, fmt.Errorf("mesh.SplitEdge: %v has %d faces: %w", e, e.NumFaces(), ErrNonManifold)
	}
	f1 := e.CCWFace()
	var f2 *Face
	if f1 != nil {
		f2 = e.OtherFace(f1)
	} else {
		f2 = e.f1
	}
	a, c := e.v1, e.v2
	e.ClearBit(WeakBit)
	if f1 != nil {
		f1.detach()
	}
	if f2 != nil {
		f2.detach()
	}

	v := m.addVert(p)
	e.NotifySplit(v)
	e.redefine(a, v)
	av := m.getEdge(v, a)
	e.NotifySplit(av)

	if f1 != nil {
		d := f1.ThirdVert(a, c)
		f1.NotifySplit(m.getEdge(v, d))
		f1.replaceVert(a, v)
		f1.attach()
		f1.NotifySplit(m.addFace(v, d, a, f1.patch))
	}
	if f2 != nil {
		b := f2.ThirdVert(a, c)
		f2.NotifySplit(m.getEdge(v, b))
		f2.replaceVert(a, v)
		f2.attach()
		f2.NotifySplit(m.addFace(v, a, b, f2.patch))
	}
	v.geomChanged()
	m.notifySplit(e, v)
	m.Changed(TopologyChanged)
	return v, nil
}

// CanCollapse returns whether collapsing e keeps the surface a
// manifold with the same topology. The endpoints may share no
// neighbors other than the opposite vertices of the faces of e,
// and an interior edge may not join two border vertices.
func (m *Mesh) CanCollapse(e *Edge) bool {
	if e == nil || e.mesh != m || !e.IsManifold() {
		return false
	}
	u, w := e.v1, e.v2
	opp := make([]*Vert, 0, 2)
	for _, f := range e.Faces() {
		opp = append(opp, f.OtherVert(e))
	}
	for _, x := range u.Nbrs() {
		if x != w && w.LookupEdge(x) != nil && !slices.Contains(opp, x) {
			return false
		}
	}
	if !e.IsBorder() && u.IsBorder() && w.IsBorder() {
		return false
	}
	// a tetrahedron cannot lose a vertex and stay a closed surface
	if e.NumFaces() == 2 && u.Degree() == 3 && w.Degree() == 3 && opp[0].LookupEdge(opp[1]) != nil {
		return false
	}
	return true
}

// CollapseEdge removes e and its faces and merges its other
// endpoint into keep, which must be an endpoint of e.
func (m *Mesh) CollapseEdge(e *Edge, keep *Vert) error {
	if e == nil || e.mesh != m {
		return fmt.Errorf("mesh.CollapseEdge: %v: %w", e, ErrNotInMesh)
	}
	u := e.OtherVert(keep)
	if u == nil {
		return fmt.Errorf("mesh.CollapseEdge: %v is not an endpoint of %v: %w", keep, e, ErrIllegalCollapse)
	}
	if !m.CanCollapse(e) {
		return fmt.Errorf("mesh.CollapseEdge: %v: %w", e, ErrIllegalCollapse)
	}
	m.removeEdgeAndFaces(e)
	m.mergeVert(u, keep)
	keep.geomChanged()
	m.Changed(TopologyChanged)
	return nil
}

// vertPair is an unordered pair of vertices.
type vertPair [2]*Vert

func makeVertPair(a, b *Vert) vertPair {
	if b.index < a.index {
		a, b = b, a
	}
	return vertPair{a, b}
}

// mergeVert identifies u with keep: the faces and edges of u are
// moved to keep, dropping those that would duplicate existing ones
// or degenerate, and u is removed.
func (m *Mesh) mergeVert(u, keep *Vert) {
	star := u.Faces()
	var weak []vertPair
	for _, f := range star {
		if w := f.WeakEdge(); w != nil && w.NumFaces() == 2 {
			a, b := w.v1, w.v2
			if a == u {
				a = keep
			}
			if b == u {
				b = keep
			}
			weak = append(weak, makeVertPair(a, b))
		}
		f.detach()
	}
	for _, e := range slices.Clone(u.edges) {
		if !e.redefine(u, keep) {
			if e.NumFaces() > 0 {
				// faces not in the star of u, from bad input
				m.removeEdgeAndFaces(e)
			} else {
				m.removeEdge(e)
			}
		}
	}
	for _, f := range star {
		if f.Contains(keep) {
			m.removeFace(f)
			continue
		}
		f.replaceVert(u, keep)
		if m.lookupFace(f.v[0], f.v[1], f.v[2]) != nil {
			m.removeFace(f)
			continue
		}
		f.attach()
	}
	for _, w := range weak {
		if e := w[0].LookupEdge(w[1]); e != nil && e.NumFaces() == 2 {
			e.SetBit(WeakBit)
		}
	}
	m.removeVert(u)
}

// RemoveDuplicateVertices merges vertices at exactly the same position,
// first removing zero length edges with their faces. It returns the
// number of vertices merged, firing [TriangulationChanged] when any were.
func (m *Mesh) RemoveDuplicateVertices() int {
	for i := len(m.edges) - 1; i >= 0; i-- {
		if i < len(m.edges) && m.edges[i].Length() == 0 {
			m.removeEdgeAndFaces(m.edges[i])
		}
	}
	if len(m.verts) < 2 {
		return 0
	}
	verts := slices.Clone(m.verts)
	slices.SortStableFunc(verts, func(a, b *Vert) int {
		return a.pos.Compare(b.pos)
	})
	count := 0
	prev := verts[0]
	for _, v := range verts[1:] {
		if v.pos == prev.pos {
			m.mergeVert(v, prev)
			count++
		} else {
			prev = v
		}
	}
	if count > 0 {
		slog.Info("mesh.RemoveDuplicateVertices", "mesh", m, "removed", count)
		m.Changed(TriangulationChanged)
	}
	return count
}
