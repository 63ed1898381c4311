// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package subdiv builds subdivision hierarchies over a control mesh.
// Each [Level] is a mesh in its own right, generated on demand from
// the level above by splitting every face into four, and positioned
// by a [Calc]: Loop, Catmull-Clark, simple midpoint, or the hybrid
// scheme that blends the first two over mixed meshes.
//
// Levels observe the level above them: editing the structure of a
// level drops the finer ones, and editing its shape makes them
// stale until they are next requested.
package subdiv

import (
	"fmt"

	"cogentcore.org/jot/base/errors"
	"cogentcore.org/jot/config"
	"cogentcore.org/jot/math32"
	"cogentcore.org/jot/mesh"
)

// Hierarchy is the stack of subdivision levels of a control mesh.
// It is not safe for concurrent use.
type Hierarchy struct {
	levels   []*Level
	cur      int
	maxLevel int
	scheme   string
	rings    int
	pos      Calc[math32.Vector3]
	color    Calc[math32.Vector4]
}

// Option configures a [Hierarchy] in [New].
type Option func(h *Hierarchy)

// WithScheme sets the scheme by config name, overriding the config
// of the control mesh.
func WithScheme(scheme string) Option {
	return func(h *Hierarchy) { h.scheme = scheme }
}

// WithMaxLevel sets the deepest level that can be generated.
func WithMaxLevel(n int) Option {
	return func(h *Hierarchy) { h.maxLevel = n }
}

// WithNearTriangleRings sets the near triangle ring count of the
// hybrid scheme.
func WithNearTriangleRings(n int) Option {
	return func(h *Hierarchy) { h.rings = n }
}

// WithCalcs sets the calculations used for positions and colors
// instead of those of the scheme.
func WithCalcs(pos Calc[math32.Vector3], color Calc[math32.Vector4]) Option {
	return func(h *Hierarchy) {
		h.pos = pos
		h.color = color
	}
}

// New returns the hierarchy of ctrl, with settings from the config
// of ctrl and then opts. An unknown scheme name is logged and the
// hybrid scheme used instead.
func New(ctrl *mesh.Mesh, opts ...Option) *Hierarchy {
	cfg := ctrl.Config.Subdiv
	h := &Hierarchy{maxLevel: cfg.MaxLevel, scheme: cfg.Scheme, rings: cfg.NearTriangleRings}
	for _, opt := range opts {
		opt(h)
	}
	if h.pos == nil || h.color == nil {
		pos, err := NewCalc(h.scheme, Positions, h.rings)
		if errors.Log(err) != nil {
			h.scheme = config.SchemeHybrid
			pos = NewHybridCalc(Positions, h.rings)
		}
		color := errors.Must1(NewCalc(h.scheme, Colors, h.rings))
		if h.pos == nil {
			h.pos = pos
		}
		if h.color == nil {
			h.color = color
		}
	}
	c := &Level{h: h, mesh: ctrl, state: Current}
	h.levels = []*Level{c}
	ctrl.AddObserver(c)
	return h
}

func (h *Hierarchy) String() string {
	return fmt.Sprintf("%v: %d levels, current %d, %s", h.Control(), len(h.levels), h.cur, h.pos.Name())
}

// Control returns the control mesh.
func (h *Hierarchy) Control() *mesh.Mesh { return h.levels[0].mesh }

// PosCalc returns the calculation used for positions.
func (h *Hierarchy) PosCalc() Calc[math32.Vector3] { return h.pos }

// ColorCalc returns the calculation used for colors.
func (h *Hierarchy) ColorCalc() Calc[math32.Vector4] { return h.color }

// MaxLevel returns the deepest level that can be generated.
func (h *Hierarchy) MaxLevel() int { return h.maxLevel }

// NumLevels returns the number of generated levels, including the
// control level.
func (h *Hierarchy) NumLevels() int { return len(h.levels) }

// Level returns level k, or nil when it is not generated.
func (h *Hierarchy) Level(k int) *Level {
	if k < 0 || k >= len(h.levels) {
		return nil
	}
	return h.levels[k]
}

// Levels returns the generated levels, coarsest first.
func (h *Hierarchy) Levels() []*Level { return h.levels }

// CurLevel returns the index of the level being edited or drawn.
func (h *Hierarchy) CurLevel() int { return h.cur }

// SetCurLevel makes level k current, generating it if needed.
func (h *Hierarchy) SetCurLevel(k int) error {
	if _, err := h.Update(k); err != nil {
		return err
	}
	h.cur = k
	return nil
}

// Refine makes the next finer level current.
func (h *Hierarchy) Refine() error { return h.SetCurLevel(h.cur + 1) }

// Unrefine makes the next coarser level current, returning false at
// the control level.
func (h *Hierarchy) Unrefine() bool {
	if h.cur == 0 {
		return false
	}
	h.cur--
	return true
}

// CurMesh returns the mesh of the current level, bringing it up to
// date first. Errors are logged and leave the deepest level that
// could be reached current.
func (h *Hierarchy) CurMesh() *mesh.Mesh {
	l, err := h.Update(h.cur)
	if errors.Log(err) != nil {
		h.cur = len(h.levels) - 1
		return h.levels[h.cur].mesh
	}
	return l.mesh
}

// Update brings levels 1 through k up to date, generating them as
// needed, and returns level k.
func (h *Hierarchy) Update(k int) (*Level, error) {
	if k < 0 || k > h.maxLevel {
		return nil, fmt.Errorf("subdiv.Hierarchy.Update: level %d of 0..%d: %w", k, h.maxLevel, ErrMaxLevel)
	}
	l := h.levels[0]
	for l.index < k {
		c, err := l.GetChild()
		if err != nil {
			return nil, err
		}
		l = c
	}
	return l, nil
}

// PatchAt returns the patch of level k generated from p, a patch of
// the control mesh, or nil when level k is not generated.
func (h *Hierarchy) PatchAt(p *mesh.Patch, k int) *mesh.Patch {
	for range k {
		if p == nil {
			return nil
		}
		p = p.Child()
	}
	return p
}

// CurStrips returns the triangle strips of the patch generated from p
// at the current level, bringing the level up to date first.
func (h *Hierarchy) CurStrips(p *mesh.Patch) []*mesh.TriStrip {
	h.CurMesh()
	if cp := h.PatchAt(p, h.cur); cp != nil {
		return cp.TriStrips()
	}
	return nil
}

// LimitPosition returns the position v converges to under repeated
// subdivision with the position calculation.
func (h *Hierarchy) LimitPosition(v *mesh.Vert) math32.Vector3 {
	return h.pos.LimitVal(v)
}

// Delete drops all finer levels and detaches the hierarchy from the
// control mesh, which is left as is.
func (h *Hierarchy) Delete() {
	h.truncate(0)
	c := h.levels[0]
	c.mesh.RemoveObserver(c)
	h.cur = 0
}

// truncate drops the levels finer than k.
func (h *Hierarchy) truncate(k int) {
	for i := len(h.levels) - 1; i > k; i-- {
		h.levels[i].release()
	}
	if len(h.levels) > k+1 {
		h.levels = h.levels[:k+1]
	}
	h.cur = min(h.cur, k)
}

// invalidate marks the levels finer than k stale.
func (h *Hierarchy) invalidate(k int) {
	for _, l := range h.levels[k+1:] {
		if l.state == Current {
			l.state = Uncomputed
		}
	}
}
