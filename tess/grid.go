// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tess builds surfaces on top of meshes. A [VertGrid] fills a
// four sided boundary with quads, and [Skin] moves the vertices of one
// mesh along with the surface of another.
package tess

import (
	"log/slog"
	"slices"

	"cogentcore.org/jot/math32"
	"cogentcore.org/jot/mesh"
)

// VertGrid is a grid of vertices spanning four boundary curves.
// Vertex (i, j) is in column i and row j; row 0 is the bottom row
// and column 0 the left column.
type VertGrid struct {
	grid [][]*mesh.Vert
	m    *mesh.Mesh

	// number of intervals between rows and between columns
	rows, cols int
	du, dv     float32
}

// Build fills the grid from its boundary and adds interior vertices
// to the mesh of the boundary. bottom and top run left to right,
// left and right run bottom to top, and they share their corners.
// Malformed input is logged and returns false, leaving the grid
// empty.
func (g *VertGrid) Build(bottom, top, left, right []*mesh.Vert) bool {
	m := meshOf(bottom)
	ok := len(bottom) >= 2 && len(bottom) == len(top) &&
		len(left) >= 2 && len(left) == len(right) &&
		m != nil && meshOf(top) == m && meshOf(left) == m && meshOf(right) == m
	ok = ok && bottom[0] == left[0] && bottom[len(bottom)-1] == right[0] &&
		top[0] == left[len(left)-1] && top[len(top)-1] == right[len(right)-1]
	if !ok {
		slog.Error("tess.VertGrid.Build: invalid boundary",
			"bottom", bottom, "top", top, "left", left, "right", right)
		g.Clear()
		return false
	}
	g.Clear()
	g.grid = append(g.grid, slices.Clone(bottom))
	for j := 1; j < len(left)-1; j++ {
		row := []*mesh.Vert{left[j]}
		for i := 1; i < len(bottom)-1; i++ {
			row = append(row, m.AddVertex(math32.Vector3{}))
		}
		g.grid = append(g.grid, append(row, right[j]))
	}
	g.grid = append(g.grid, slices.Clone(top))
	g.m = m
	g.rows = len(left) - 1
	g.cols = len(bottom) - 1
	g.du = 1 / float32(g.cols)
	g.dv = 1 / float32(g.rows)
	return true
}

// meshOf returns the mesh shared by all the vertices, or nil.
func meshOf(verts []*mesh.Vert) *mesh.Mesh {
	if len(verts) == 0 || verts[0] == nil {
		return nil
	}
	m := verts[0].Mesh()
	for _, v := range verts {
		if v == nil || v.Mesh() != m {
			return nil
		}
	}
	return m
}

// Clear empties the grid. The vertices stay in the mesh.
func (g *VertGrid) Clear() {
	*g = VertGrid{}
}

// IsGood returns whether the grid was built.
func (g *VertGrid) IsGood() bool { return g.m != nil && g.rows > 0 && g.cols > 0 }

// Mesh returns the mesh of the grid vertices.
func (g *VertGrid) Mesh() *mesh.Mesh { return g.m }

// NumRows returns the number of rows of vertices.
func (g *VertGrid) NumRows() int { return len(g.grid) }

// NumCols returns the number of columns of vertices.
func (g *VertGrid) NumCols() int {
	if len(g.grid) == 0 {
		return 0
	}
	return len(g.grid[0])
}

// DU returns the u step between columns.
func (g *VertGrid) DU() float32 { return g.du }

// DV returns the v step between rows.
func (g *VertGrid) DV() float32 { return g.dv }

// Vert returns vertex (i, j).
func (g *VertGrid) Vert(i, j int) *mesh.Vert { return g.grid[j][i] }

// Loc returns the position of vertex (i, j).
func (g *VertGrid) Loc(i, j int) math32.Vector3 { return g.grid[j][i].Pos() }

// UV returns the texture coordinates of vertex (i, j), from (0, 0)
// at the bottom left to (1, 1) at the top right.
func (g *VertGrid) UV(i, j int) (u, v float32) {
	return float32(i) * g.du, float32(j) * g.dv
}

// Row returns the vertices of row j.
func (g *VertGrid) Row(j int) []*mesh.Vert { return g.grid[j] }

// Col returns the vertices of column i.
func (g *VertGrid) Col(i int) []*mesh.Vert {
	col := make([]*mesh.Vert, len(g.grid))
	for j, row := range g.grid {
		col[j] = row[i]
	}
	return col
}

// InterpBoundary positions the interior vertices on the bilinearly
// blended Coons patch of the boundary (Farin, Curves and Surfaces
// for CAGD, section 20.2).
func (g *VertGrid) InterpBoundary() bool {
	if !g.IsGood() {
		return false
	}
	var verts []*mesh.Vert
	var pos []math32.Vector3
	for j := 1; j < g.rows; j++ {
		v := float32(j) * g.dv
		for i := 1; i < g.cols; i++ {
			u := float32(i) * g.du
			rc := g.Loc(i, 0).Lerp(g.Loc(i, g.rows), v)
			rd := g.Loc(0, j).Lerp(g.Loc(g.cols, j), u)
			rcd := g.Loc(0, 0).Lerp(g.Loc(0, g.rows), v).
				Lerp(g.Loc(g.cols, 0).Lerp(g.Loc(g.cols, g.rows), v), u)
			verts = append(verts, g.Vert(i, j))
			pos = append(pos, rc.Add(rd.Sub(rcd)))
		}
	}
	g.m.SetVertPositions(verts, pos)
	return true
}

// AddQuads adds the quads of the grid to patch p (which may be nil)
// in row order. It returns false if the grid is not built or any quad
// could not be added; failures are logged.
func (g *VertGrid) AddQuads(p *mesh.Patch) bool {
	if !g.IsGood() {
		return false
	}
	ok := true
	err := g.m.Batch(mesh.TopologyChanged, func() error {
		for j := 1; j <= g.rows; j++ {
			for i := 1; i <= g.cols; i++ {
				_, err := g.m.AddQuad(g.Vert(i-1, j-1), g.Vert(i, j-1), g.Vert(i, j), g.Vert(i-1, j), p)
				if err != nil {
					slog.Error("tess.VertGrid.AddQuads", "i", i, "j", j, "err", err)
					ok = false
				}
			}
		}
		return nil
	})
	return ok && err == nil
}

// HBand returns the faces between rows j and j+1.
func (g *VertGrid) HBand(j int) []*mesh.Face {
	return bandFaces(g.Row(j), g.Row(j+1))
}

// VBand returns the faces between columns i and i+1.
func (g *VertGrid) VBand(i int) []*mesh.Face {
	return bandFaces(g.Col(i), g.Col(i+1))
}

// bandFaces returns the faces touching both vertex lists.
func bandFaces(a, b []*mesh.Vert) []*mesh.Face {
	inA := make(map[*mesh.Face]bool)
	for _, v := range a {
		for _, f := range v.Faces() {
			inA[f] = true
		}
	}
	var faces []*mesh.Face
	seen := make(map[*mesh.Face]bool)
	for _, v := range b {
		for _, f := range v.Faces() {
			if inA[f] && !seen[f] {
				seen[f] = true
				faces = append(faces, f)
			}
		}
	}
	return faces
}
