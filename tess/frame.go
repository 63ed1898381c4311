// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tess

import (
	"fmt"
	"log/slog"

	"cogentcore.org/jot/base/errors"
	"cogentcore.org/jot/bnode"
	"cogentcore.org/jot/math32"
	"cogentcore.org/jot/mesh"
)

// degenerate is the length below which a frame axis is treated as zero.
const degenerate = 1e-6

// Frame is an orthonormal coordinate frame with origin O, tangent T,
// binormal B and normal N, where B = N x T.
type Frame struct {
	O, T, B, N math32.Vector3
}

// ToLocal returns the coordinates of the world point p in the frame.
func (f Frame) ToLocal(p math32.Vector3) math32.Vector3 {
	d := p.Sub(f.O)
	return math32.Vec3(d.Dot(f.T), d.Dot(f.B), d.Dot(f.N))
}

// ToWorld returns the world point with coordinates l in the frame.
func (f Frame) ToWorld(l math32.Vector3) math32.Vector3 {
	return f.O.Add(f.T.MulScalar(l.X)).Add(f.B.MulScalar(l.Y)).Add(f.N.MulScalar(l.Z))
}

// set fills in the axes from a unit normal and a tangent direction
// that is not yet orthogonal to it. A degenerate tangent keeps the
// previous one if it still works, and otherwise any perpendicular.
func (f *Frame) set(o, n, t math32.Vector3, owner any) {
	f.O = o
	f.N = n
	t = t.ProjectOnPlane(n)
	if t.Length() < degenerate {
		errors.Warn(fmt.Errorf("tess.Frame: %v: degenerate tangent, keeping previous", owner))
		t = f.T.ProjectOnPlane(n)
		if t.Length() < degenerate {
			t = n.Perpendicular()
		}
	}
	f.T = t.Normal()
	f.B = f.N.Cross(f.T)
}

// CoordFrame is a node holding a frame anchored at a vertex. The
// normal is the vertex normal and the tangent points along the first
// edge of the vertex. Its input is the tracker of the vertex mesh.
type CoordFrame struct {
	bnode.Base
	Frame
	v       *mesh.Vert
	tracker *Tracker
}

// NewCoordFrame returns a frame anchored at v, which must be in the
// mesh of tr.
func NewCoordFrame(v *mesh.Vert, tr *Tracker) *CoordFrame {
	cf := &CoordFrame{v: v, tracker: tr}
	cf.Init(cf, "frame")
	cf.Hookup()
	return cf
}

// Vert returns the anchor vertex.
func (cf *CoordFrame) Vert() *mesh.Vert { return cf.v }

func (cf *CoordFrame) Inputs() []bnode.Node { return []bnode.Node{cf.tracker} }

func (cf *CoordFrame) Recompute() error {
	n := cf.v.Normal()
	if n.Length() < degenerate {
		slog.Warn("tess.CoordFrame: vertex has no normal, keeping previous", "vert", cf.v)
		n = cf.N
		if n.Length() < degenerate {
			n = math32.Vec3(0, 0, 1)
		}
	}
	var t math32.Vector3
	if cf.v.Degree() > 0 {
		t = cf.v.Edge(0).OtherVert(cf.v).Pos().Sub(cf.v.Pos())
	}
	cf.set(cf.v.Pos(), n, t, cf)
	return nil
}

// EdgeFrame is a node holding a frame at the first vertex of an edge,
// with the tangent along the edge and the normal the average normal
// of the faces of the edge.
type EdgeFrame struct {
	bnode.Base
	Frame
	e       *mesh.Edge
	tracker *Tracker
}

// NewEdgeFrame returns a frame on e, which must be in the mesh of tr.
func NewEdgeFrame(e *mesh.Edge, tr *Tracker) *EdgeFrame {
	ef := &EdgeFrame{e: e, tracker: tr}
	ef.Init(ef, "edge_frame")
	ef.Hookup()
	return ef
}

// Edge returns the edge of the frame.
func (ef *EdgeFrame) Edge() *mesh.Edge { return ef.e }

func (ef *EdgeFrame) Inputs() []bnode.Node { return []bnode.Node{ef.tracker} }

func (ef *EdgeFrame) Recompute() error {
	t := ef.e.Vec().Normal()
	n := simplexNormal(ef.e)
	if n.Length() < degenerate {
		slog.Warn("tess.EdgeFrame: edge has no faces", "edge", ef.e)
		n = t.Perpendicular()
	}
	// the normal follows the faces, the tangent stays along the edge
	n = n.ProjectOnPlane(t).Normal()
	if n.Length() < degenerate {
		n = t.Perpendicular()
	}
	ef.set(ef.e.V1().Pos(), n, t, ef)
	return nil
}
