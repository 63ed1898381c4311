// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"cogentcore.org/jot/base/errors"
	"cogentcore.org/jot/config"
	"cogentcore.org/jot/math32"
)

// NewCube returns a closed cube made of six quads in one patch,
// with corners at -1 and +1 on each axis.
func NewCube(cfg *config.Config) *Mesh {
	m := New("cube", cfg)
	p := m.NewPatch("cube")
	pos := make([]math32.Vector3, 8)
	for i := range pos {
		c := func(bit int) float32 {
			if i&bit != 0 {
				return 1
			}
			return -1
		}
		pos[i] = math32.Vec3(c(1), c(2), c(4))
	}
	v := m.AddVertices(pos...)
	quads := [6][4]int{{0, 2, 3, 1}, {4, 5, 7, 6}, {0, 1, 5, 4}, {2, 6, 7, 3}, {0, 4, 6, 2}, {1, 3, 7, 5}}
	for _, q := range quads {
		errors.Must1(m.AddQuad(v[q[0]], v[q[1]], v[q[2]], v[q[3]], p))
	}
	return m
}

// NewTetrahedron returns a closed regular tetrahedron made of four
// triangles in one patch, inscribed in the cube of [NewCube].
func NewTetrahedron(cfg *config.Config) *Mesh {
	m := New("tetrahedron", cfg)
	p := m.NewPatch("tetrahedron")
	v := m.AddVertices(
		math32.Vec3(1, 1, 1), math32.Vec3(-1, -1, 1),
		math32.Vec3(-1, 1, -1), math32.Vec3(1, -1, -1))
	tris := [4][3]int{{0, 1, 3}, {0, 2, 1}, {0, 3, 2}, {1, 2, 3}}
	for _, t := range tris {
		errors.Must1(m.AddFace(v[t[0]], v[t[1]], v[t[2]], p))
	}
	return m
}

// NewQuadGrid returns an open grid of nx by ny unit quads in the
// z = 0 plane, facing +z, with its corner at the origin. Each quad
// goes in the patch returned by patch(m, i, j), which may return nil;
// a nil patch function puts every quad in one patch named "grid".
// Vertex (i, j) is at index j*(nx+1) + i.
func NewQuadGrid(cfg *config.Config, nx, ny int, patch func(m *Mesh, i, j int) *Patch) *Mesh {
	m := New("grid", cfg)
	if patch == nil {
		patch = func(m *Mesh, i, j int) *Patch { return m.NewPatch("grid") }
	}
	pos := make([]math32.Vector3, 0, (nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			pos = append(pos, math32.Vec3(float32(i), float32(j), 0))
		}
	}
	v := m.AddVertices(pos...)
	at := func(i, j int) *Vert { return v[j*(nx+1)+i] }
	for j := range ny {
		for i := range nx {
			errors.Must1(m.AddQuad(at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1), patch(m, i, j)))
		}
	}
	return m
}
