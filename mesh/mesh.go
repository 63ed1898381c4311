// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh provides a triangle mesh with explicit vertex, edge
// and face simplices, where pairs of triangles sharing a weak edge
// represent quads. Other subsystems annotate simplices with [Data]
// records and observe meshes with [Observer]s. Edits keep the
// adjacency consistent and report what changed.
package mesh

import (
	"cogentcore.org/jot/base/keylist"
	"cogentcore.org/jot/config"
	"cogentcore.org/jot/math32"
)

// Mesh owns vertices, edges, faces and patches.
// It is not safe for concurrent use.
type Mesh struct {
	// Name is used in messages and summaries.
	Name string

	// Config holds the settings the mesh and its subdivision use.
	Config *config.Config

	verts   []*Vert
	edges   []*Edge
	faces   []*Face
	patches *keylist.List[string, *Patch]
	keys    *KeyTable

	stamp      int64
	topoStamp  int64
	faceSerial int

	observers []Observer
	batch     int
	pending   []ChangeReason

	blendValid  bool
	blendPasses int
}

// New returns a new empty mesh with the given name, using cfg
// (nil means [config.Default]).
func New(name string, cfg *config.Config) *Mesh {
	cfg = config.OrDefault(cfg)
	return &Mesh{
		Name:    name,
		Config:  cfg,
		patches: keylist.New[string, *Patch](),
		keys:    NewKeyTable(cfg.Mesh.KeyCapacity),
	}
}

func (m *Mesh) String() string {
	if m == nil {
		return "<nil mesh>"
	}
	return m.Name
}

// Verts returns the vertices. The slice must not be modified.
func (m *Mesh) Verts() []*Vert { return m.verts }

// Edges returns the edges. The slice must not be modified.
func (m *Mesh) Edges() []*Edge { return m.edges }

// Faces returns the faces. The slice must not be modified.
func (m *Mesh) Faces() []*Face { return m.faces }

// Vert returns the i-th vertex.
func (m *Mesh) Vert(i int) *Vert { return m.verts[i] }

// Edge returns the i-th edge.
func (m *Mesh) Edge(i int) *Edge { return m.edges[i] }

// Face returns the i-th face.
func (m *Mesh) Face(i int) *Face { return m.faces[i] }

// NumVerts returns the number of vertices.
func (m *Mesh) NumVerts() int { return len(m.verts) }

// NumEdges returns the number of edges, weak ones included.
func (m *Mesh) NumEdges() int { return len(m.edges) }

// NumFaces returns the number of triangles, quad halves included.
func (m *Mesh) NumFaces() int { return len(m.faces) }

// NumSimplices returns the total number of vertices, edges and faces.
func (m *Mesh) NumSimplices() int { return len(m.verts) + len(m.edges) + len(m.faces) }

// NumStrongEdges returns the number of edges that are not quad diagonals.
func (m *Mesh) NumStrongEdges() int {
	n := 0
	for _, e := range m.edges {
		if e.IsStrong() {
			n++
		}
	}
	return n
}

// NumQuads returns the number of logical quads.
func (m *Mesh) NumQuads() int {
	n := 0
	for _, f := range m.faces {
		if f.IsQuad() {
			n++
		}
	}
	return n / 2
}

// NumTris returns the number of faces that are not part of a quad.
func (m *Mesh) NumTris() int {
	n := 0
	for _, f := range m.faces {
		if !f.IsQuad() {
			n++
		}
	}
	return n
}

// IsAllQuads returns whether every face is part of a quad.
func (m *Mesh) IsAllQuads() bool {
	return len(m.faces) > 0 && m.NumTris() == 0
}

// Stamp returns the version counter, incremented by every change.
func (m *Mesh) Stamp() int64 { return m.stamp }

// TopoStamp returns a version counter incremented only by changes
// to the structure of the mesh or its creases.
func (m *Mesh) TopoStamp() int64 { return m.topoStamp }

// Keys returns the key table of the mesh.
func (m *Mesh) Keys() *KeyTable { return m.keys }

// Lookup returns the simplex with the given key, or nil.
func (m *Mesh) Lookup(k Key) Simplex { return m.keys.Lookup(k) }

// Bounds returns the bounding box of the vertices.
func (m *Mesh) Bounds() math32.Box3 {
	b := math32.B3Empty()
	for _, v := range m.verts {
		b.ExpandByPoint(v.pos)
	}
	return b
}

// WalkEpsilon returns the tolerance used by [WalkToTarget]:
// the configured walk epsilon scaled by the bounding box diagonal.
func (m *Mesh) WalkEpsilon() float32 {
	eps := m.Config.Mesh.WalkEpsilon
	b := m.Bounds()
	if b.IsEmpty() {
		return eps
	}
	if d := b.Diagonal(); d > 0 {
		return eps * d
	}
	return eps
}

// SetVertPositions moves many vertices at once, firing a single
// [VertPositionsChanged]. verts and pos must have the same length.
func (m *Mesh) SetVertPositions(verts []*Vert, pos []math32.Vector3) {
	for i, v := range verts {
		v.setPos(pos[i])
	}
	m.Changed(VertPositionsChanged)
}

// Clear removes every simplex and patch.
func (m *Mesh) Clear() {
	for len(m.faces) > 0 {
		m.removeFace(m.faces[len(m.faces)-1])
	}
	for len(m.edges) > 0 {
		m.removeEdge(m.edges[len(m.edges)-1])
	}
	for len(m.verts) > 0 {
		m.removeVert(m.verts[len(m.verts)-1])
	}
	for _, p := range m.patches.Values {
		p.faces = nil
		p.mesh = nil
	}
	m.patches.Reset()
	m.faceSerial = 0
	m.Changed(TopologyChanged)
}

// Delete clears the mesh and tells the observers implementing
// [DeleteObserver] that it is gone. Observers are then dropped.
func (m *Mesh) Delete() {
	m.Clear()
	obs := m.observers
	m.observers = nil
	for _, o := range obs {
		if do, ok := o.(DeleteObserver); ok {
			do.MeshDeleted(m)
		}
	}
}

func (m *Mesh) addVert(pos math32.Vector3) *Vert {
	v := &Vert{pos: pos, color: math32.Vec4(1, 1, 1, 1)}
	v.This = v
	v.mesh = m
	v.index = len(m.verts)
	v.SetBit(NormalDirtyBit)
	m.verts = append(m.verts, v)
	return v
}

// getEdge returns the edge joining u and v, creating it if needed.
// The vertices must be distinct members of the mesh.
func (m *Mesh) getEdge(u, v *Vert) *Edge {
	if e := u.LookupEdge(v); e != nil {
		return e
	}
	e := &Edge{v1: u, v2: v}
	e.This = e
	e.mesh = m
	e.index = len(m.edges)
	m.edges = append(m.edges, e)
	u.addEdge(e)
	v.addEdge(e)
	return e
}

// lookupFace returns the face with the three vertices, in any order.
func (m *Mesh) lookupFace(u, v, w *Vert) *Face {
	e := u.LookupEdge(v)
	if e == nil {
		return nil
	}
	for _, f := range e.Faces() {
		if f.Contains(w) {
			return f
		}
	}
	return nil
}

func (m *Mesh) addFace(u, v, w *Vert, p *Patch) *Face {
	f := &Face{v: [3]*Vert{u, v, w}}
	f.This = f
	f.mesh = m
	f.index = len(m.faces)
	f.serial = m.faceSerial
	m.faceSerial++
	m.faces = append(m.faces, f)
	f.attach()
	if p != nil {
		p.add(f)
	}
	return f
}

// removeFace removes the face from the mesh, its edges and its patch.
// Edges whose quad partner went away lose their weak bit.
func (m *Mesh) removeFace(f *Face) {
	edges := f.e
	f.detach()
	for _, e := range edges {
		if e != nil && e.NumFaces() < 2 {
			e.ClearBit(WeakBit)
		}
	}
	if f.patch != nil {
		f.patch.remove(f)
	}
	removeAt(m.faces, f.index, func(s []*Face) { m.faces = s })
	f.release()
}

func (m *Mesh) removeEdge(e *Edge) {
	e.v1.removeEdge(e)
	e.v2.removeEdge(e)
	removeAt(m.edges, e.index, func(s []*Edge) { m.edges = s })
	e.release()
}

func (m *Mesh) removeVert(v *Vert) {
	removeAt(m.verts, v.index, func(s []*Vert) { m.verts = s })
	v.release()
}

// removeAt removes the element at index i by moving the last
// element into its place and updating that element's index.
func removeAt[S Simplex](s []S, i int, set func([]S)) {
	last := len(s) - 1
	if i != last {
		s[i] = s[last]
		s[i].AsSimplex().index = i
	}
	var zv S
	s[last] = zv
	set(s[:last])
}
