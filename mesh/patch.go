// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"fmt"
	"slices"

	"cogentcore.org/jot/base/metadata"
	"cogentcore.org/jot/base/slicesx"
)

// Patch is a named group of faces of a mesh that share rendering
// attributes. In a subdivision hierarchy each patch is linked to the
// patch it was subdivided from (its parent) and to the one subdivided
// from it (its child), and only the control patch at the coarsest
// level carries the attributes.
type Patch struct {
	// Attributes are the rendering attributes, such as texture and color.
	// They are only used on the control patch: see [Patch.Attrs].
	Attributes metadata.Data

	name  string
	mesh  *Mesh
	faces []*Face

	parent *Patch
	child  *Patch

	triStrips    []*TriStrip
	creaseStrips []*EdgeStrip
	stripStamp   int64
	creaseStamp  int64
}

func (p *Patch) String() string {
	if p == nil {
		return "<nil patch>"
	}
	return p.name
}

// Name returns the name, unique within the mesh.
func (p *Patch) Name() string { return p.name }

// Mesh returns the mesh of the patch, nil after removal.
func (p *Patch) Mesh() *Mesh { return p.mesh }

// Faces returns the faces. The slice must not be modified.
func (p *Patch) Faces() []*Face { return p.faces }

// NumFaces returns the number of faces.
func (p *Patch) NumFaces() int { return len(p.faces) }

// Parent returns the patch this one was subdivided from, or nil.
func (p *Patch) Parent() *Patch { return p.parent }

// Child returns the patch subdivided from this one, or nil.
func (p *Patch) Child() *Patch { return p.child }

// SetChild links c as the child of p, replacing any previous link.
// A nil c unlinks the current child.
func (p *Patch) SetChild(c *Patch) {
	if p.child != nil && p.child.parent == p {
		p.child.parent = nil
	}
	p.child = c
	if c != nil {
		c.parent = p
	}
}

// CtrlPatch returns the patch at the coarsest level of the hierarchy.
func (p *Patch) CtrlPatch() *Patch {
	c := p
	for c.parent != nil {
		c = c.parent
	}
	return c
}

// Level returns the number of parents above the patch.
func (p *Patch) Level() int {
	n := 0
	for c := p.parent; c != nil; c = c.parent {
		n++
	}
	return n
}

// Attrs returns the rendering attributes of the control patch,
// which finer patches use rather than their own.
func (p *Patch) Attrs() metadata.Data {
	return p.CtrlPatch().Attributes
}

// Add moves f and its quad partner from their current patch to p,
// firing [PatchesChanged].
func (p *Patch) Add(f *Face) error {
	if p.mesh == nil || f == nil || f.mesh != p.mesh {
		return fmt.Errorf("mesh.Patch.Add: %v to %v: %w", f, p, ErrNotInMesh)
	}
	changed := p.add(f)
	if q := f.QuadPartner(); q != nil && p.add(q) {
		changed = true
	}
	if changed {
		p.mesh.Changed(PatchesChanged)
	}
	return nil
}

// Remove takes f out of the patch, firing [PatchesChanged].
func (p *Patch) Remove(f *Face) error {
	if f == nil || f.patch != p {
		return fmt.Errorf("mesh.Patch.Remove: %v from %v: %w", f, p, ErrNotInMesh)
	}
	p.remove(f)
	p.mesh.Changed(PatchesChanged)
	return nil
}

// add puts f in p, returning whether it was elsewhere.
func (p *Patch) add(f *Face) bool {
	if f.patch == p {
		return false
	}
	if f.patch != nil {
		f.patch.remove(f)
	}
	f.patch = p
	p.faces = append(p.faces, f)
	return true
}

func (p *Patch) remove(f *Face) {
	p.faces, _ = slicesx.RemoveValue(p.faces, f)
	f.patch = nil
}

// Verts returns the vertices of the faces, each once.
func (p *Patch) Verts() []*Vert {
	var verts []*Vert
	for _, f := range p.faces {
		for _, v := range f.v {
			verts, _ = slicesx.AppendUnique(verts, v)
		}
	}
	return verts
}

// Edges returns the edges of the faces, each once.
func (p *Patch) Edges() []*Edge {
	var edges []*Edge
	for _, f := range p.faces {
		for _, e := range f.e {
			edges, _ = slicesx.AppendUnique(edges, e)
		}
	}
	return edges
}

// BoundaryEdges returns the edges with a face in the patch that are
// borders of the mesh or are shared with a face outside the patch.
func (p *Patch) BoundaryEdges() []*Edge {
	return FilterEdges(p.Edges(), FilterFunc(func(s Simplex) bool {
		e := s.(*Edge)
		if e.IsBorder() {
			return true
		}
		return slices.ContainsFunc(e.Faces(), func(f *Face) bool { return f.patch != p })
	}))
}

// TriStrips returns triangle strips covering the faces, rebuilt
// when the structure of the mesh has changed since the last call.
func (p *Patch) TriStrips() []*TriStrip {
	if p.triStrips == nil || p.stripStamp != p.mesh.topoStamp {
		p.triStrips = BuildTriStrips(p.faces)
		p.stripStamp = p.mesh.topoStamp
	}
	return p.triStrips
}

// CreaseStrips returns polylines covering the crease and border
// edges of the patch, rebuilt like [Patch.TriStrips].
func (p *Patch) CreaseStrips() []*EdgeStrip {
	if p.creaseStrips == nil || p.creaseStamp != p.mesh.topoStamp {
		p.creaseStrips = BuildEdgeStrips(FilterEdges(p.Edges(), PolyCreaseEdgeFilter{}))
		if p.creaseStrips == nil {
			p.creaseStrips = []*EdgeStrip{}
		}
		p.creaseStamp = p.mesh.topoStamp
	}
	return p.creaseStrips
}

// NewPatch returns the patch with the given name, adding it (and
// firing [PatchesChanged]) if there is none. An empty name is
// replaced with a generated one.
func (m *Mesh) NewPatch(name string) *Patch {
	if name == "" {
		name = fmt.Sprintf("patch%d", m.patches.Len())
		for m.patches.IndexByKey(name) >= 0 {
			name += "_"
		}
	}
	if p := m.patches.At(name); p != nil {
		return p
	}
	p := &Patch{name: name, mesh: m}
	m.patches.Add(name, p)
	m.Changed(PatchesChanged)
	return p
}

// Patches returns the patches in creation order.
// The slice must not be modified.
func (m *Mesh) Patches() []*Patch { return m.patches.Values }

// NumPatches returns the number of patches.
func (m *Mesh) NumPatches() int { return m.patches.Len() }

// PatchByName returns the patch with the given name, or nil.
func (m *Mesh) PatchByName(name string) *Patch { return m.patches.At(name) }

// RemovePatch removes the patch, leaving its faces without a patch.
func (m *Mesh) RemovePatch(p *Patch) error {
	if p == nil || p.mesh != m {
		return fmt.Errorf("mesh.RemovePatch: %v: %w", p, ErrNotInMesh)
	}
	for _, f := range p.faces {
		f.patch = nil
	}
	p.faces = nil
	if p.parent != nil {
		p.parent.SetChild(nil)
	}
	p.SetChild(nil)
	m.patches.DeleteByKey(p.name)
	p.mesh = nil
	m.Changed(PatchesChanged)
	return nil
}
