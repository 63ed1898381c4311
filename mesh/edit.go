// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"fmt"

	"cogentcore.org/jot/math32"
)

// AddVertex adds a vertex at the given position and fires
// [TopologyChanged]. The vertex gets a key when one is first asked for.
func (m *Mesh) AddVertex(pos math32.Vector3) *Vert {
	v := m.addVert(pos)
	m.Changed(TopologyChanged)
	return v
}

// AddVertices adds a vertex at each position, firing one [TopologyChanged].
func (m *Mesh) AddVertices(pos ...math32.Vector3) []*Vert {
	verts := make([]*Vert, len(pos))
	for i, p := range pos {
		verts[i] = m.addVert(p)
	}
	m.Changed(TopologyChanged)
	return verts
}

// checkVerts validates vertices given to an edit.
func (m *Mesh) checkVerts(op string, verts ...*Vert) error {
	for i, v := range verts {
		switch {
		case v == nil:
			return fmt.Errorf("mesh.%s: vertex %d: %w", op, i, ErrNilVert)
		case v.mesh != m:
			return fmt.Errorf("mesh.%s: %v in mesh %v, not %v: %w", op, v, v.mesh, m, ErrForeignVert)
		}
		for _, u := range verts[:i] {
			if u == v {
				return fmt.Errorf("mesh.%s: %v: %w", op, v, ErrRepeatedVert)
			}
		}
	}
	return nil
}

// AddEdge returns the edge joining u and v, creating it (and firing
// [TopologyChanged]) if it does not exist yet.
func (m *Mesh) AddEdge(u, v *Vert) (*Edge, error) {
	if err := m.checkVerts("AddEdge", u, v); err != nil {
		return nil, err
	}
	if e := u.LookupEdge(v); e != nil {
		return e, nil
	}
	e := m.getEdge(u, v)
	m.Changed(TopologyChanged)
	return e, nil
}

// AddFace adds the triangle (u, v, w), in counter-clockwise order,
// to the mesh and to patch p (which may be nil), reusing existing
// edges. If a face with the same vertices exists it is returned as is.
func (m *Mesh) AddFace(u, v, w *Vert, p *Patch) (*Face, error) {
	if err := m.checkVerts("AddFace", u, v, w); err != nil {
		return nil, err
	}
	if p != nil && p.mesh != m {
		return nil, fmt.Errorf("mesh.AddFace: patch %v: %w", p, ErrNotInMesh)
	}
	if f := m.lookupFace(u, v, w); f != nil {
		return f, nil
	}
	f := m.addFace(u, v, w, p)
	m.Changed(TopologyChanged)
	return f, nil
}

// AddQuad adds the quad (u, v, w, x), in counter-clockwise order, as
// the two triangles (u, v, w) and (u, w, x) sharing the weak diagonal
// u-w. It returns the first triangle.
func (m *Mesh) AddQuad(u, v, w, x *Vert, p *Patch) (*Face, error) {
	if err := m.checkVerts("AddQuad", u, v, w, x); err != nil {
		return nil, err
	}
	if p != nil && p.mesh != m {
		return nil, fmt.Errorf("mesh.AddQuad: patch %v: %w", p, ErrNotInMesh)
	}
	f1 := m.lookupFace(u, v, w)
	if f1 == nil {
		f1 = m.addFace(u, v, w, p)
	}
	f2 := m.lookupFace(u, w, x)
	if f2 == nil {
		f2 = m.addFace(u, w, x, p)
	}
	if d := u.LookupEdge(w); d.NumFaces() == 2 {
		d.SetBit(WeakBit)
	}
	m.Changed(TopologyChanged)
	return f1, nil
}

// RemoveFace removes the face. Its edges and vertices stay.
func (m *Mesh) RemoveFace(f *Face) error {
	if f == nil || f.mesh != m {
		return fmt.Errorf("mesh.RemoveFace: %v: %w", f, ErrNotInMesh)
	}
	m.removeFace(f)
	m.Changed(TopologyChanged)
	return nil
}

// RemoveFaces removes each of the faces, firing one [TopologyChanged].
func (m *Mesh) RemoveFaces(faces []*Face) error {
	for _, f := range faces {
		if f == nil || f.mesh != m {
			return fmt.Errorf("mesh.RemoveFaces: %v: %w", f, ErrNotInMesh)
		}
	}
	for _, f := range faces {
		if f.mesh == m {
			m.removeFace(f)
		}
	}
	m.Changed(TopologyChanged)
	return nil
}

// RemoveEdge removes the edge, which must not have any faces.
func (m *Mesh) RemoveEdge(e *Edge) error {
	if e == nil || e.mesh != m {
		return fmt.Errorf("mesh.RemoveEdge: %v: %w", e, ErrNotInMesh)
	}
	if n := e.NumFaces(); n > 0 {
		return fmt.Errorf("mesh.RemoveEdge: %v has %d faces: %w", e, n, ErrEdgeInUse)
	}
	m.removeEdge(e)
	m.Changed(TopologyChanged)
	return nil
}

// RemoveVertex removes the vertex, which must not have any edges.
func (m *Mesh) RemoveVertex(v *Vert) error {
	if v == nil || v.mesh != m {
		return fmt.Errorf("mesh.RemoveVertex: %v: %w", v, ErrNotInMesh)
	}
	if n := v.Degree(); n > 0 {
		return fmt.Errorf("mesh.RemoveVertex: %v has %d edges: %w", v, n, ErrVertInUse)
	}
	m.removeVert(v)
	m.Changed(TopologyChanged)
	return nil
}

// removeEdgeAndFaces removes the edge together with its faces.
func (m *Mesh) removeEdgeAndFaces(e *Edge) {
	for _, f := range e.Faces() {
		m.removeFace(f)
	}
	m.removeEdge(e)
}

// SetCrease marks or unmarks the edges as creases, firing one
// [CreasesChanged] if any edge changed.
func (m *Mesh) SetCrease(on bool, edges ...*Edge) {
	changed := false
	for _, e := range edges {
		if e.mesh == m && e.IsCrease() != on {
			e.SetBitState(CreaseBit, on)
			changed = true
		}
	}
	if changed {
		m.Changed(CreasesChanged)
	}
}
