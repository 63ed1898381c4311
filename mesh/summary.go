// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"io"

	"cogentcore.org/jot/base/iox/yamlx"
)

// Summary describes the size and structure of a mesh.
type Summary struct {
	Name        string         `yaml:"name"`
	Verts       int            `yaml:"verts"`
	Edges       int            `yaml:"edges"`
	StrongEdges int            `yaml:"strong_edges"`
	BorderEdges int            `yaml:"border_edges"`
	Creases     int            `yaml:"creases"`
	Faces       int            `yaml:"faces"`
	Tris        int            `yaml:"tris"`
	Quads       int            `yaml:"quads"`
	Stamp       int64          `yaml:"stamp"`
	Patches     []PatchSummary `yaml:"patches,omitempty"`
}

// PatchSummary describes one patch in a [Summary].
type PatchSummary struct {
	Name  string `yaml:"name"`
	Faces int    `yaml:"faces"`
	Level int    `yaml:"level"`
}

// Summary returns the current summary of the mesh.
func (m *Mesh) Summary() Summary {
	s := Summary{
		Name:        m.Name,
		Verts:       m.NumVerts(),
		Edges:       m.NumEdges(),
		StrongEdges: m.NumStrongEdges(),
		BorderEdges: Count(m.edges, BorderEdgeFilter{}),
		Creases:     Count(m.edges, CreaseEdgeFilter{}),
		Faces:       m.NumFaces(),
		Tris:        m.NumTris(),
		Quads:       m.NumQuads(),
		Stamp:       m.stamp,
	}
	for _, p := range m.Patches() {
		s.Patches = append(s.Patches, PatchSummary{Name: p.name, Faces: len(p.faces), Level: p.Level()})
	}
	return s
}

// WriteSummary writes the summary of the mesh to w as YAML.
func (m *Mesh) WriteSummary(w io.Writer) error {
	return yamlx.Write(m.Summary(), w)
}
