// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subdiv

import (
	"fmt"
	"strconv"

	"cogentcore.org/jot/bnode"
	"cogentcore.org/jot/mesh"
)

// Updater is a dependency graph node that keeps a region of faces
// of one level up to date. Its input is the updater of the faces
// they were generated from at the level above. The updater of the
// control level has no inputs. Each updater is invalidated by changes
// to the mesh of its level, so an edit at any level reaches the
// updaters of the finer levels.
type Updater struct {
	bnode.Base
	h       *Hierarchy
	level   int
	faces   []*mesh.Face
	parent  *Updater
	child   *Updater
	watched *mesh.Mesh
}

// UpdaterFor returns the updater at the given level of the faces
// generated from faces, a region of the control mesh, creating the
// updaters of the levels above it.
func UpdaterFor(h *Hierarchy, faces []*mesh.Face, level int) *Updater {
	u := &Updater{h: h, faces: faces}
	u.Init(u, "subdiv0")
	u.watch(h.Control())
	for range level {
		u = u.Child()
	}
	return u
}

// Child returns the updater of the next finer level, creating it
// on first use.
func (u *Updater) Child() *Updater {
	if u.child == nil {
		c := &Updater{h: u.h, level: u.level + 1, parent: u}
		c.Init(c, "subdiv"+strconv.Itoa(c.level))
		c.Hookup()
		u.child = c
	}
	return u.child
}

// Parent returns the updater of the next coarser level, or nil at
// the control level.
func (u *Updater) Parent() *Updater { return u.parent }

// Level returns the level of the updater.
func (u *Updater) Level() int { return u.level }

// Faces returns the region at the level of the updater, as of its
// last recompute.
func (u *Updater) Faces() []*mesh.Face { return u.faces }

func (u *Updater) Inputs() []bnode.Node {
	if u.parent == nil {
		return nil
	}
	return []bnode.Node{u.parent}
}

// Recompute makes the level of the updater current and collects the
// faces generated from the parent region.
func (u *Updater) Recompute() error {
	if u.parent == nil {
		u.faces = mesh.FilterFaces(u.faces, mesh.MeshFilter{M: u.h.Control()})
		return nil
	}
	p := u.h.Level(u.level - 1)
	if p == nil {
		return fmt.Errorf("subdiv.Updater.Recompute: level %d is not generated: %w", u.level-1, ErrMaxLevel)
	}
	c, err := p.GetChild()
	if err != nil {
		return err
	}
	u.watch(c.Mesh())
	u.faces = SubdivFaces(u.parent.faces, 1)
	return nil
}

// watch moves the observer of u to m, which may be nil.
func (u *Updater) watch(m *mesh.Mesh) {
	if u.watched == m {
		return
	}
	if u.watched != nil {
		u.watched.RemoveObserver(u)
	}
	u.watched = m
	if m != nil {
		m.AddObserver(u)
	}
}

// MeshChanged invalidates the updater and the finer ones when the
// mesh of its level changes shape or structure.
func (u *Updater) MeshChanged(m *mesh.Mesh, reason mesh.ChangeReason) {
	if reason.IsTopological() || reason.IsGeometric() {
		u.Invalidate()
	}
}

// Release detaches the updaters of every level from their meshes.
func (u *Updater) Release() {
	for u.parent != nil {
		u = u.parent
	}
	for ; u != nil; u = u.child {
		u.watch(nil)
	}
}
