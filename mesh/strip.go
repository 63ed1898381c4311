// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "log/slog"

// TriStrip is a sequence of triangles where each triangle after the
// first shares an edge with the previous one. Triangle i is made of
// Verts[i], Verts[i+1] and Verts[i+2], and is Faces[i]. Even
// triangles are counter-clockwise in that order, odd ones clockwise.
type TriStrip struct {
	Verts []*Vert
	Faces []*Face
}

// Triangles returns the triangles of the strip, each in
// counter-clockwise order.
func (ts *TriStrip) Triangles() [][3]*Vert {
	tris := make([][3]*Vert, len(ts.Faces))
	for i := range ts.Faces {
		a, b, c := ts.Verts[i], ts.Verts[i+1], ts.Verts[i+2]
		if i%2 == 1 {
			a, b = b, a
		}
		tris[i] = [3]*Vert{a, b, c}
	}
	return tris
}

// canStripAcross returns whether a strip may continue over e.
func canStripAcross(e *Edge) bool {
	return e != nil && e.IsManifold() && !e.IsCrease()
}

// growStrip returns the strip starting on face f at vertex a,
// using only faces of the set that are not claimed yet.
func growStrip(f *Face, a *Vert, claimed map[*Face]bool, inSet map[*Face]bool) *TriStrip {
	b := f.Next(a)
	c := f.Next(b)
	ts := &TriStrip{Verts: []*Vert{a, b, c}, Faces: []*Face{f}}
	used := map[*Face]bool{f: true}
	cur := f
	for {
		e := b.LookupEdge(c)
		if !canStripAcross(e) {
			break
		}
		g := e.OtherFace(cur)
		if g == nil || claimed[g] || used[g] || !inSet[g] || g.patch != f.patch {
			break
		}
		d := g.ThirdVert(b, c)
		// triangle i = len(ts.Faces) uses (b, c, d), clockwise when i is odd
		if len(ts.Faces)%2 == 1 {
			if g.Next(c) != b {
				slog.Debug("mesh.BuildTriStrips: inconsistent face orientation", "face", g)
				break
			}
		} else if g.Next(b) != c {
			slog.Debug("mesh.BuildTriStrips: inconsistent face orientation", "face", g)
			break
		}
		ts.Verts = append(ts.Verts, d)
		ts.Faces = append(ts.Faces, g)
		used[g] = true
		b, c, cur = c, d, g
	}
	return ts
}

// BuildTriStrips covers the faces with triangle strips. Strips do not
// cross creases, non-manifold edges or patch boundaries. Each strip
// is grown greedily from the first unclaimed face, starting from
// whichever of its vertices gives the longest strip.
func BuildTriStrips(faces []*Face) []*TriStrip {
	inSet := make(map[*Face]bool, len(faces))
	for _, f := range faces {
		inSet[f] = true
	}
	claimed := make(map[*Face]bool, len(faces))
	var strips []*TriStrip
	for _, f := range faces {
		if claimed[f] {
			continue
		}
		var best *TriStrip
		for _, a := range f.v {
			ts := growStrip(f, a, claimed, inSet)
			if best == nil || len(ts.Faces) > len(best.Faces) {
				best = ts
			}
		}
		for _, g := range best.Faces {
			claimed[g] = true
		}
		strips = append(strips, best)
	}
	return strips
}

// EdgeStrip is a polyline through a chain of edges:
// Edges[i] joins Verts[i] and Verts[i+1].
type EdgeStrip struct {
	Verts []*Vert
	Edges []*Edge
}

// IsClosed returns whether the strip ends where it starts.
func (es *EdgeStrip) IsClosed() bool {
	return len(es.Edges) > 0 && es.Verts[0] == es.Verts[len(es.Verts)-1]
}

// BuildEdgeStrips chains the edges into polylines. Chains start at
// vertices where the number of given edges is not two, so each open
// chain runs between such vertices; remaining edges form closed loops.
func BuildEdgeStrips(edges []*Edge) []*EdgeStrip {
	unused := make(map[*Edge]bool, len(edges))
	for _, e := range edges {
		unused[e] = true
	}
	count := func(v *Vert) int {
		n := 0
		for _, e := range v.edges {
			if unused[e] {
				n++
			}
		}
		return n
	}
	next := func(v *Vert) *Edge {
		for _, e := range v.edges {
			if unused[e] {
				return e
			}
		}
		return nil
	}
	chain := func(v *Vert) *EdgeStrip {
		es := &EdgeStrip{Verts: []*Vert{v}}
		for e := next(v); e != nil; e = next(v) {
			delete(unused, e)
			v = e.OtherVert(v)
			es.Edges = append(es.Edges, e)
			es.Verts = append(es.Verts, v)
			if count(v) != 1 {
				// a junction or an end: start a new chain there
				break
			}
		}
		return es
	}

	var strips []*EdgeStrip
	for _, e := range edges {
		for _, v := range [2]*Vert{e.v1, e.v2} {
			for unused[e] && count(v) != 2 && count(v) > 0 {
				strips = append(strips, chain(v))
			}
		}
	}
	for _, e := range edges {
		if unused[e] {
			strips = append(strips, chain(e.v1))
		}
	}
	return strips
}
