// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subdiv

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"cogentcore.org/jot/math32"
	"cogentcore.org/jot/mesh"
)

// State is the state of the values of a [Level].
type State int32

const (
	// Uncomputed means the topology of the level is there but its
	// values are stale, because the parent level changed shape.
	Uncomputed State = iota

	// Computing means the level is being generated or updated.
	Computing

	// Current means the level is up to date with its parent.
	Current
)

var stateNames = [...]string{"Uncomputed", "Computing", "Current"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
	return stateNames[s]
}

var linkKind = mesh.NewDataKind("subdiv.link")

// link ties a simplex to the simplices generated from it at the
// next level and to the simplex it was generated from.
type link struct {
	mesh.DataBase

	parent mesh.Simplex

	// vert is the child of a vertex, or the vertex created at an edge.
	vert *mesh.Vert

	// edges are the two halves of an edge.
	edges [2]*mesh.Edge

	// faces are the four children of a face.
	faces [4]*mesh.Face
}

func findLink(s mesh.Simplex) *link {
	lk, _ := mesh.FindDataAs[*link](s, linkKind)
	return lk
}

func getLink(s mesh.Simplex) *link {
	return mesh.GetOrCreateData(s, linkKind, func() *link { return &link{} })
}

func (lk *link) clearChildren() {
	lk.vert = nil
	lk.edges = [2]*mesh.Edge{}
	lk.faces = [4]*mesh.Face{}
}

func alive[S mesh.Simplex](s S) bool {
	return s.AsSimplex() != nil && s.Mesh() != nil
}

// SubdivVert returns the vertex generated from a vertex or an edge
// at the next level, or nil if there is none.
func SubdivVert(s mesh.Simplex) *mesh.Vert {
	if lk := findLink(s); lk != nil && lk.vert != nil && alive(lk.vert) {
		return lk.vert
	}
	return nil
}

// SubdivParent returns the simplex that s was generated from at the
// previous level, or nil at the control level.
func SubdivParent(s mesh.Simplex) mesh.Simplex {
	if lk := findLink(s); lk != nil && lk.parent != nil && lk.parent.Mesh() != nil {
		return lk.parent
	}
	return nil
}

// SubdivFaces returns the faces generated from the given faces
// k levels down, skipping levels that are not generated.
func SubdivFaces(faces []*mesh.Face, k int) []*mesh.Face {
	for range k {
		var next []*mesh.Face
		for _, f := range faces {
			lk := findLink(f)
			if lk == nil {
				continue
			}
			for _, c := range lk.faces {
				if c != nil && alive(c) {
					next = append(next, c)
				}
			}
		}
		faces = next
	}
	return faces
}

// ParentFaces returns the faces k levels up that the given faces
// were generated from, each once.
func ParentFaces(faces []*mesh.Face, k int) []*mesh.Face {
	for range k {
		var next []*mesh.Face
		seen := make(map[*mesh.Face]bool)
		for _, f := range faces {
			if p, ok := SubdivParent(f).(*mesh.Face); ok && !seen[p] {
				seen[p] = true
				next = append(next, p)
			}
		}
		faces = next
	}
	return faces
}

// Level is one mesh of a subdivision [Hierarchy]. Level 0 is the
// control mesh; each finer level is generated from the one above it
// on demand, and kept up to date by observing it.
type Level struct {
	h     *Hierarchy
	index int
	mesh  *mesh.Mesh
	state State
	busy  bool
}

func (l *Level) String() string {
	return fmt.Sprintf("level %d (%v)", l.index, l.state)
}

// Index returns the depth of the level. The control level is 0.
func (l *Level) Index() int { return l.index }

// Mesh returns the mesh of the level, nil once the level was dropped.
func (l *Level) Mesh() *mesh.Mesh { return l.mesh }

// Hierarchy returns the hierarchy of the level.
func (l *Level) Hierarchy() *Hierarchy { return l.h }

// State returns the state of the level values.
func (l *Level) State() State { return l.state }

// IsControl returns whether this is the control level.
func (l *Level) IsControl() bool { return l.index == 0 }

// Parent returns the next coarser level, or nil at the control level.
func (l *Level) Parent() *Level {
	if l.index == 0 || l.mesh == nil {
		return nil
	}
	return l.h.levels[l.index-1]
}

// Child returns the next finer level, or nil when it is not generated.
func (l *Level) Child() *Level {
	if l.mesh == nil || l.index+1 >= len(l.h.levels) {
		return nil
	}
	return l.h.levels[l.index+1]
}

// GetChild returns the next finer level, generating it or updating
// its values as needed.
func (l *Level) GetChild() (*Level, error) {
	switch {
	case l.mesh == nil:
		return nil, fmt.Errorf("subdiv.Level.GetChild: %v: %w", l, mesh.ErrNotInMesh)
	case l.busy:
		return nil, fmt.Errorf("subdiv.Level.GetChild: %v: %w", l, ErrComputing)
	case l.index+1 > l.h.maxLevel:
		return nil, fmt.Errorf("subdiv.Level.GetChild: level %d > %d: %w", l.index+1, l.h.maxLevel, ErrMaxLevel)
	}
	if c := l.Child(); c != nil {
		if c.state == Current {
			return c, nil
		}
		l.busy = true
		c.state = Computing
		err := c.mesh.Batch(mesh.VertPositionsChanged, func() error {
			l.computeValues(c.mesh)
			return nil
		})
		l.busy = false
		if err != nil {
			c.state = Uncomputed
			return nil, err
		}
		c.state = Current
		return c, nil
	}
	l.busy = true
	c, err := l.generate()
	l.busy = false
	return c, err
}

// VertChild returns the child of v, a vertex of this level.
func (l *Level) VertChild(v *mesh.Vert) *mesh.Vert {
	if v == nil || v.Mesh() != l.mesh {
		return nil
	}
	return SubdivVert(v)
}

// EdgeChild returns the vertex generated at e, an edge of this level.
func (l *Level) EdgeChild(e *mesh.Edge) *mesh.Vert {
	if e == nil || e.Mesh() != l.mesh {
		return nil
	}
	return SubdivVert(e)
}

// EdgeChildren returns the two halves of e at the next level.
func (l *Level) EdgeChildren(e *mesh.Edge) [2]*mesh.Edge {
	if e == nil || e.Mesh() != l.mesh {
		return [2]*mesh.Edge{}
	}
	if lk := findLink(e); lk != nil {
		return lk.edges
	}
	return [2]*mesh.Edge{}
}

// FaceChildren returns the four faces generated from f at the next
// level: the corner faces at its vertices 0, 1 and 2, then the
// center face.
func (l *Level) FaceChildren(f *mesh.Face) [4]*mesh.Face {
	if f == nil || f.Mesh() != l.mesh {
		return [4]*mesh.Face{}
	}
	if lk := findLink(f); lk != nil {
		return lk.faces
	}
	return [4]*mesh.Face{}
}

// ParentOf returns the simplex of the previous level that s, a simplex
// of this level, was generated from.
func (l *Level) ParentOf(s mesh.Simplex) mesh.Simplex {
	if s == nil || s.Mesh() != l.mesh {
		return nil
	}
	return SubdivParent(s)
}

// childPatch returns the patch of c that faces of p go to.
func childPatch(p *mesh.Patch, c *mesh.Mesh) *mesh.Patch {
	if p == nil {
		return nil
	}
	if cp := p.Child(); cp != nil && cp.Mesh() == c {
		return cp
	}
	cp := c.NewPatch(p.Name())
	p.SetChild(cp)
	return cp
}

// generate builds the next level: a vertex for each vertex and each
// edge, four faces for each face, and the crease and weak bits that
// keep creases sharp and turn each quad into four quads.
func (l *Level) generate() (*Level, error) {
	start := time.Now()
	pm := l.mesh
	for _, e := range pm.Edges() {
		if !e.IsManifold() {
			return nil, fmt.Errorf("subdiv.Level.GetChild: %v at level %d: %w", e, l.index, ErrNonManifold)
		}
	}
	cm := mesh.New(l.h.Control().Name+"/"+strconv.Itoa(l.index+1), pm.Config)
	err := cm.Batch(mesh.TopologyChanged, func() error {
		for _, v := range pm.Verts() {
			cv := cm.AddVertex(v.Pos())
			getLink(v).vert = cv
			getLink(cv).parent = v
		}
		for _, e := range pm.Edges() {
			mv := cm.AddVertex(e.Midpoint())
			getLink(e).vert = mv
			getLink(mv).parent = e
		}
		for _, f := range pm.Faces() {
			var cv, mv [3]*mesh.Vert
			for i := range 3 {
				cv[i] = findLink(f.V(i)).vert
				mv[i] = findLink(f.E(i)).vert
			}
			// mv[0] is on v0-v1, mv[1] on v1-v2, mv[2] on v2-v0
			tris := [4][3]*mesh.Vert{
				{cv[0], mv[0], mv[2]},
				{mv[0], cv[1], mv[1]},
				{mv[2], mv[1], cv[2]},
				{mv[1], mv[2], mv[0]},
			}
			cp := childPatch(f.Patch(), cm)
			lk := getLink(f)
			for i, t := range tris {
				cf, err := cm.AddFace(t[0], t[1], t[2], cp)
				if err != nil {
					return err
				}
				lk.faces[i] = cf
				getLink(cf).parent = f
			}
		}
		for _, e := range pm.Edges() {
			lk := findLink(e)
			lk.edges[0] = findLink(e.V1()).vert.LookupEdge(lk.vert)
			lk.edges[1] = findLink(e.V2()).vert.LookupEdge(lk.vert)
			for _, ce := range lk.edges {
				getLink(ce).parent = e
			}
		}
		for _, f := range pm.Faces() {
			w := f.WeakEdge()
			if w == nil {
				continue
			}
			i := f.EIndex(w)
			m := findLink(w).vert
			m1 := findLink(f.E((i + 1) % 3)).vert
			m2 := findLink(f.E((i + 2) % 3)).vert
			for _, ce := range [3]*mesh.Edge{
				findLink(f.V(i)).vert.LookupEdge(m),
				findLink(f.V((i + 1) % 3)).vert.LookupEdge(m),
				m1.LookupEdge(m2),
			} {
				if ce != nil && ce.NumFaces() == 2 {
					ce.SetBit(mesh.WeakBit)
				}
			}
		}
		l.computeValues(cm)
		return nil
	})
	if err != nil {
		l.unlinkChildren()
		cm.Delete()
		return nil, fmt.Errorf("subdiv.Level.GetChild: level %d: %w", l.index+1, err)
	}
	c := &Level{h: l.h, index: l.index + 1, mesh: cm, state: Current}
	l.h.levels = append(l.h.levels, c)
	cm.AddObserver(c)
	for _, v := range pm.Verts() {
		v.NotifySubdivGenerated()
	}
	for _, e := range pm.Edges() {
		e.NotifySubdivGenerated()
	}
	for _, f := range pm.Faces() {
		f.NotifySubdivGenerated()
	}
	pm.NotifySubdivGenerated()
	slog.Debug("subdiv: generated level", "level", c.index, "mesh", cm, "elapsed", time.Since(start))
	return c, nil
}

// computeValues sets the positions, colors, corner bits and crease
// bits of the next level from this one. Simplices whose data takes
// over the subdivision calculation are skipped.
func (l *Level) computeValues(cm *mesh.Mesh) {
	pm := l.mesh
	pos, col := l.h.pos, l.h.color
	pos.Prepare(pm)
	col.Prepare(pm)
	var verts []*mesh.Vert
	var locs []math32.Vector3
	set := func(s mesh.Simplex, cv *mesh.Vert, p math32.Vector3, c math32.Vector4) {
		if cv == nil || cv.Mesh() != cm || s.AsSimplex().HandleSubdivCalc() {
			return
		}
		verts = append(verts, cv)
		locs = append(locs, p)
		if cv.Color() != c {
			cv.SetColor(c)
		}
	}
	for _, v := range pm.Verts() {
		cv := SubdivVert(v)
		if cv != nil && cv.IsCorner() != v.IsCorner() {
			cv.SetCorner(v.IsCorner())
		}
		set(v, cv, pos.VertVal(v), col.VertVal(v))
	}
	for _, e := range pm.Edges() {
		set(e, SubdivVert(e), pos.EdgeVal(e), col.EdgeVal(e))
		if lk := findLink(e); lk != nil {
			for _, ce := range lk.edges {
				if ce != nil && alive(ce) && ce.IsCrease() != e.IsCrease() {
					ce.SetCrease(e.IsCrease())
				}
			}
		}
	}
	cm.SetVertPositions(verts, locs)
}

// unlinkChildren forgets the simplices and patches of the next level.
func (l *Level) unlinkChildren() {
	pm := l.mesh
	for _, v := range pm.Verts() {
		if lk := findLink(v); lk != nil {
			lk.clearChildren()
		}
	}
	for _, e := range pm.Edges() {
		if lk := findLink(e); lk != nil {
			lk.clearChildren()
		}
	}
	for _, f := range pm.Faces() {
		if lk := findLink(f); lk != nil {
			lk.clearChildren()
		}
	}
	for _, p := range pm.Patches() {
		p.SetChild(nil)
	}
}

// release drops the level, which must be the finest one.
func (l *Level) release() {
	if l.mesh == nil {
		return
	}
	l.mesh.RemoveObserver(l)
	if p := l.Parent(); p != nil {
		p.unlinkChildren()
	}
	l.mesh.Delete()
	l.mesh = nil
	l.state = Uncomputed
}

// MeshChanged keeps the finer levels consistent with the mesh of l:
// a change of structure drops them, a change of shape makes their
// values stale. Rendering changes at finer levels are forwarded to
// the control mesh.
func (l *Level) MeshChanged(m *mesh.Mesh, reason mesh.ChangeReason) {
	switch {
	case reason.IsTopological():
		l.h.truncate(l.index)
	case reason.IsGeometric():
		l.h.invalidate(l.index)
	case reason == mesh.RenderingChanged && l.index > 0:
		l.h.Control().Changed(mesh.RenderingChanged)
	}
}
