// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "cogentcore.org/jot/math32"

// WalkToTarget walks over the surface from start toward the point of
// the surface closest to target, moving only through simplices f
// accepts (nil accepts all), and returns the simplex where the walk
// stops. See [WalkPath] for the rules. A nil start returns nil.
func WalkToTarget(start Simplex, target math32.Vector3, f Filter, eps float32) Simplex {
	path := WalkPath(start, target, f, eps)
	if len(path) == 0 {
		return nil
	}
	return path[len(path)-1]
}

// WalkPath is like [WalkToTarget] but returns every simplex visited,
// starting with start. At each step the walk first descends to the
// lowest dimensional sub-simplex containing the point closest to the
// target, which never increases the distance. Otherwise it moves to
// the neighbor closest to the target, but only when that is closer
// than the current simplex by more than eps. A zero eps means
// [Mesh.WalkEpsilon]. The walk stops at a simplex that cannot be
// improved, and visits each simplex at most once.
func WalkPath(start Simplex, target math32.Vector3, f Filter, eps float32) []Simplex {
	if start == nil {
		return nil
	}
	if f == nil {
		f = AnyFilter{}
	}
	path := []Simplex{start}
	if !f.Accept(start) {
		return path
	}
	m := start.Mesh()
	budget := 1
	if m != nil {
		budget += m.NumSimplices()
		if eps == 0 {
			eps = m.WalkEpsilon()
		}
	}

	cur := start
	pt, bc := cur.NearestPoint(target)
	dist := pt.DistanceTo(target)
	for range budget {
		if sub := cur.BCToSimplex(bc); sub != nil && sub != cur && f.Accept(sub) {
			cur = sub
			pt, bc = cur.NearestPoint(target)
			dist = pt.DistanceTo(target)
			path = append(path, cur)
			continue
		}
		var best Simplex
		bestDist := dist - eps
		var bestPt, bestBC math32.Vector3
		for _, n := range cur.Neighbors() {
			if n == nil || !f.Accept(n) {
				continue
			}
			npt, nbc := n.NearestPoint(target)
			if d := npt.DistanceTo(target); d < bestDist {
				best, bestDist, bestPt, bestBC = n, d, npt, nbc
			}
		}
		if best == nil {
			break
		}
		cur, pt, bc, dist = best, bestPt, bestBC, bestDist
		path = append(path, cur)
	}
	return path
}
