// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"cmp"
	"log/slog"
	"slices"

	"golang.org/x/exp/maps"
)

// PatchBlendWeightKind is the kind of [PatchBlendWeight] records.
var PatchBlendWeightKind = NewDataKind("PatchBlendWeight")

// PatchBlendWeight records on a vertex how much each patch around it
// contributes there, so rendering can blend patch attributes smoothly.
// The weights at a vertex with faces sum to 1.
type PatchBlendWeight struct {
	DataBase

	weights map[*Patch]float32
}

// Weight returns the weight of patch p.
func (pw *PatchBlendWeight) Weight(p *Patch) float32 {
	return pw.weights[p]
}

// Weights returns a copy of the weights by patch.
func (pw *PatchBlendWeight) Weights() map[*Patch]float32 {
	return maps.Clone(pw.weights)
}

// Patches returns the patches with a weight, sorted by name.
func (pw *PatchBlendWeight) Patches() []*Patch {
	ps := maps.Keys(pw.weights)
	slices.SortFunc(ps, func(a, b *Patch) int {
		return cmp.Compare(a.name, b.name)
	})
	return ps
}

// Sum returns the sum of the weights.
func (pw *PatchBlendWeight) Sum() float32 {
	var sum float32
	for _, p := range pw.Patches() {
		sum += pw.weights[p]
	}
	return sum
}

// normalize scales the weights to sum to 1.
func (pw *PatchBlendWeight) normalize() {
	sum := pw.Sum()
	if sum == 0 {
		return
	}
	for p, w := range pw.weights {
		pw.weights[p] = w / sum
	}
}

// LookupPatchBlendWeight returns the blend weights of v, or nil.
func LookupPatchBlendWeight(v *Vert) *PatchBlendWeight {
	pw, _ := FindDataAs[*PatchBlendWeight](v, PatchBlendWeightKind)
	return pw
}

func getPatchBlendWeight(v *Vert) *PatchBlendWeight {
	return GetOrCreateData(v, PatchBlendWeightKind, func() *PatchBlendWeight {
		return &PatchBlendWeight{}
	})
}

// ComputePatchBlendWeights sets the [PatchBlendWeight] of every vertex.
// Initially the weight of a patch at a vertex is the fraction of the
// faces around the vertex that are in the patch. Each smoothing pass
// then replaces the weights at every vertex with their average over
// the vertex and its neighbors, normalized to sum to 1.
func ComputePatchBlendWeights(m *Mesh, passes int) {
	for _, v := range m.verts {
		pw := getPatchBlendWeight(v)
		pw.weights = make(map[*Patch]float32)
		faces := v.Faces()
		if len(faces) == 0 {
			slog.Debug("mesh.ComputePatchBlendWeights: no faces at vertex", "vert", v)
			continue
		}
		inc := 1 / float32(len(faces))
		for _, f := range faces {
			if f.patch != nil {
				pw.weights[f.patch] += inc
			}
		}
	}
	for range passes {
		next := make([]map[*Patch]float32, len(m.verts))
		for i, v := range m.verts {
			acc := maps.Clone(LookupPatchBlendWeight(v).weights)
			for _, u := range v.Nbrs() {
				for p, w := range LookupPatchBlendWeight(u).weights {
					acc[p] += w
				}
			}
			n := float32(1 + v.Degree())
			for p := range acc {
				acc[p] /= n
			}
			next[i] = acc
		}
		for i, v := range m.verts {
			pw := LookupPatchBlendWeight(v)
			pw.weights = next[i]
			pw.normalize()
		}
	}
	m.blendValid = true
	m.blendPasses = passes
}

// UpdatePatchBlendWeights recomputes the patch blend weights with the
// configured number of smoothing passes, unless they are still valid.
func (m *Mesh) UpdatePatchBlendWeights() {
	passes := m.Config.Blend.SmoothPasses
	if m.blendValid && m.blendPasses == passes {
		return
	}
	ComputePatchBlendWeights(m, passes)
}

// PatchBlendWeightsValid returns whether the patch blend weights are
// up to date with the structure of the mesh.
func (m *Mesh) PatchBlendWeightsValid() bool { return m.blendValid }
