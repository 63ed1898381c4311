// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tess

import (
	"log/slog"
	"slices"

	"cogentcore.org/jot/base/errors"
	"cogentcore.org/jot/bnode"
	"cogentcore.org/jot/config"
	"cogentcore.org/jot/math32"
	"cogentcore.org/jot/mesh"
	"github.com/jinzhu/copier"
)

// Params are the options of a [SkinMeme].
type Params struct {

	// H is the distance kept along the surface normal.
	H float32 `toml:"offset" yaml:"offset"`

	// Sticky keeps the vertex at fixed barycentric coordinates of the
	// simplex it tracks. Otherwise the vertex moves freely and the
	// track follows it to the closest point of the surface.
	Sticky bool `toml:"sticky" yaml:"sticky"`

	// NonPenetrate corrects a non-sticky vertex that crosses the surface.
	NonPenetrate bool `toml:"non_penetrate" yaml:"non_penetrate"`

	// StayOut is the side kept by NonPenetrate: outside if true.
	StayOut bool `toml:"stay_out" yaml:"stay_out"`

	// Patches are the names of the patches of the tracked mesh the
	// vertex may track. Empty means any patch.
	Patches []string `toml:"patches,omitempty" yaml:"patches,omitempty"`
}

// ParamsFrom returns the skin parameters of the given config, where
// nil means the defaults.
func ParamsFrom(cfg *config.Config) Params {
	s := config.OrDefault(cfg).Skin
	return Params{H: s.Offset, Sticky: s.Sticky, NonPenetrate: s.NonPenetrate, StayOut: s.StayOut,
		Patches: slices.Clone(s.Patches)}
}

// trackFilter returns the filter of the simplices of m the vertex may track.
func (p *Params) trackFilter(m *mesh.Mesh) mesh.Filter {
	if len(p.Patches) == 0 {
		return mesh.MeshFilter{M: m}
	}
	names := slices.Clone(p.Patches)
	inPatch := func(f *mesh.Face) bool {
		return f != nil && f.Patch() != nil && slices.Contains(names, f.Patch().Name())
	}
	return mesh.And(mesh.MeshFilter{M: m}, mesh.FilterFunc(func(s mesh.Simplex) bool {
		switch s := s.(type) {
		case *mesh.Face:
			return inPatch(s)
		case *mesh.Edge:
			return inPatch(s.F1()) || inPatch(s.F2())
		case *mesh.Vert:
			return slices.ContainsFunc(s.Faces(), inPatch)
		}
		return false
	}))
}

// Tracker is a node standing for the shape of a mesh. It is
// invalidated when the mesh moves or changes structure, which in turn
// invalidates the nodes that take it as input.
type Tracker struct {
	bnode.Base
	m *mesh.Mesh
}

// NewTracker returns a tracker observing m.
func NewTracker(m *mesh.Mesh) *Tracker {
	tr := &Tracker{m: m}
	tr.Init(tr, m.Name)
	m.AddObserver(tr)
	return tr
}

// Mesh returns the tracked mesh.
func (tr *Tracker) Mesh() *mesh.Mesh { return tr.m }

func (tr *Tracker) Inputs() []bnode.Node { return nil }

func (tr *Tracker) Recompute() error { return nil }

func (tr *Tracker) MeshChanged(m *mesh.Mesh, reason mesh.ChangeReason) {
	if reason == mesh.VertPositionsChanged || reason.IsTopological() {
		tr.Invalidate()
	}
}

// Release stops observing the mesh.
func (tr *Tracker) Release() { tr.m.RemoveObserver(tr) }

// SkinMeme moves a vertex of a skin mesh along with the surface of a
// tracked mesh. It keeps the simplex of the tracked surface the
// vertex is attached to and the barycentric coordinates of the
// attachment point.
type SkinMeme struct {
	bnode.Base
	Params

	v       *mesh.Vert
	tracker *Tracker
	track   mesh.Simplex
	bc      math32.Vector3
	filter  mesh.Filter
	frozen  bool
}

// NewSkinMeme returns a meme moving v with the surface of the
// tracker mesh, starting from the track simplex, which must be in
// that mesh. The attachment point is the point of the surface closest
// to the current position of v, found by walking from track.
func NewSkinMeme(v *mesh.Vert, tr *Tracker, track mesh.Simplex, p Params) *SkinMeme {
	sm := &SkinMeme{v: v, tracker: tr, Params: p}
	sm.filter = sm.Params.trackFilter(tr.Mesh())
	sm.Init(sm, "skin")
	if sm.SetTrack(track) {
		sm.retrack()
	}
	sm.Hookup()
	return sm
}

// Vert returns the skin vertex.
func (sm *SkinMeme) Vert() *mesh.Vert { return sm.v }

// Track returns the tracked simplex and the barycentric coordinates
// of the attachment point.
func (sm *SkinMeme) Track() (mesh.Simplex, math32.Vector3) { return sm.track, sm.bc }

// SetTrack sets the tracked simplex, attaching at its centroid. A
// simplex outside the tracked mesh or its patches is logged and
// returns false.
func (sm *SkinMeme) SetTrack(s mesh.Simplex) bool {
	if !sm.filter.Accept(s) {
		slog.Error("tess.SkinMeme.SetTrack: simplex is not in the tracked mesh", "simplex", s)
		return false
	}
	sm.track = s
	_, sm.bc = s.NearestPoint(s.Centroid())
	return true
}

func (sm *SkinMeme) Inputs() []bnode.Node { return []bnode.Node{sm.tracker} }

func (sm *SkinMeme) IsFrozen() bool { return sm.frozen }

// Freeze stops the meme from moving its vertex until [SkinMeme.Unfreeze].
func (sm *SkinMeme) Freeze() { sm.frozen = true }

// Unfreeze resumes tracking. The meme is invalidated so that the next
// update catches up with the surface.
func (sm *SkinMeme) Unfreeze() {
	sm.frozen = false
	sm.Invalidate()
}

// NewChild returns a meme for v with the same parameters and track
// as sm. Skin meshes generated from a skin use it to carry the
// parameters of the parent vertices. The parameters are copied deeply,
// so the child can change them on its own.
func (sm *SkinMeme) NewChild(v *mesh.Vert) *SkinMeme {
	var p Params
	errors.Log(copier.CopyWithOption(&p, &sm.Params, copier.Option{DeepCopy: true}))
	return NewSkinMeme(v, sm.tracker, sm.track, p)
}

// Recompute moves the vertex to follow the surface.
func (sm *SkinMeme) Recompute() error {
	if sm.track == nil || sm.track.Mesh() == nil {
		return errors.New("tess.SkinMeme.Recompute: no tracked simplex")
	}
	if sm.Sticky {
		n := simplexNormal(sm.track)
		sm.v.SetPos(sm.track.BCToPos(sm.bc).Add(n.MulScalar(sm.H)))
		return nil
	}
	t := sm.retrack()
	if !sm.NonPenetrate {
		return nil
	}
	p := sm.v.Pos()
	h := p.Sub(t).Dot(simplexNormal(sm.track))
	if (sm.StayOut && h < 0) || (!sm.StayOut && h > 0) {
		sm.v.SetPos(t)
	}
	return nil
}

// retrack walks the track to the point of the surface closest to the
// vertex and returns that point.
func (sm *SkinMeme) retrack() math32.Vector3 {
	target := sm.v.Pos()
	if s := mesh.WalkToTarget(sm.track, target, sm.filter, 0); s != nil {
		sm.track = s
	}
	var t math32.Vector3
	t, sm.bc = sm.track.NearestPoint(target)
	return t
}

// simplexNormal returns the unit normal of the surface at s.
func simplexNormal(s mesh.Simplex) math32.Vector3 {
	switch s := s.(type) {
	case *mesh.Vert:
		return s.Normal()
	case *mesh.Edge:
		var n math32.Vector3
		for _, f := range []*mesh.Face{s.F1(), s.F2()} {
			if f != nil {
				n = n.Add(f.Normal())
			}
		}
		return n.Normal()
	case *mesh.Face:
		return s.Normal()
	}
	return math32.Vector3{}
}

// Skin is the set of memes moving the vertices of a skin mesh with a
// tracked mesh.
type Skin struct {
	tracker *Tracker
	memes   []*SkinMeme
}

// NewSkin attaches every vertex of skin to the surface of tracked,
// walking from the first face of tracked. It returns nil if tracked
// has no faces.
func NewSkin(skin, tracked *mesh.Mesh, p Params) *Skin {
	if tracked.NumFaces() == 0 {
		slog.Error("tess.NewSkin: tracked mesh has no faces", "mesh", tracked.Name)
		return nil
	}
	sk := &Skin{tracker: NewTracker(tracked)}
	var start mesh.Simplex = tracked.Face(0)
	for _, v := range skin.Verts() {
		sm := NewSkinMeme(v, sk.tracker, start, p)
		sk.memes = append(sk.memes, sm)
		start = sm.track
	}
	return sk
}

// Tracker returns the tracker of the tracked mesh.
func (sk *Skin) Tracker() *Tracker { return sk.tracker }

// Memes returns the memes, in the order of the skin vertices.
func (sk *Skin) Memes() []*SkinMeme { return sk.memes }

// Update moves the skin vertices that are out of date.
func (sk *Skin) Update() error {
	nodes := make([]bnode.Node, len(sk.memes))
	for i, sm := range sk.memes {
		nodes[i] = sm
	}
	return bnode.UpdateAll(nodes)
}

// Release detaches the skin from the tracked mesh.
func (sk *Skin) Release() {
	for _, sm := range sk.memes {
		sm.Unhook()
	}
	sk.tracker.Release()
}
