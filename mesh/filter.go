// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

// Filter selects simplices for walks, neighbor enumeration and
// search. Callers can supply any implementation.
type Filter interface {
	Accept(s Simplex) bool
}

// FilterFunc adapts a function to the [Filter] interface.
type FilterFunc func(s Simplex) bool

func (fn FilterFunc) Accept(s Simplex) bool { return fn(s) }

// AnyFilter accepts every non-nil simplex.
type AnyFilter struct{}

func (AnyFilter) Accept(s Simplex) bool { return s != nil }

// VertFilter accepts vertices.
type VertFilter struct{}

func (VertFilter) Accept(s Simplex) bool {
	_, ok := s.(*Vert)
	return ok
}

// EdgeFilter accepts edges.
type EdgeFilter struct{}

func (EdgeFilter) Accept(s Simplex) bool {
	_, ok := s.(*Edge)
	return ok
}

// FaceFilter accepts faces.
type FaceFilter struct{}

func (FaceFilter) Accept(s Simplex) bool {
	_, ok := s.(*Face)
	return ok
}

// MeshFilter accepts simplices of mesh M.
type MeshFilter struct {
	M *Mesh
}

func (mf MeshFilter) Accept(s Simplex) bool { return s != nil && s.Mesh() == mf.M }

// BitSetFilter accepts simplices with Bit set.
type BitSetFilter struct {
	Bit Bits
}

func (bf BitSetFilter) Accept(s Simplex) bool { return s != nil && s.AsSimplex().HasBit(bf.Bit) }

// BitClearFilter accepts simplices with Bit clear.
type BitClearFilter struct {
	Bit Bits
}

func (bf BitClearFilter) Accept(s Simplex) bool { return s != nil && !s.AsSimplex().HasBit(bf.Bit) }

// SelectedFilter accepts selected simplices.
type SelectedFilter struct{}

func (SelectedFilter) Accept(s Simplex) bool { return s != nil && s.AsSimplex().IsSelected() }

// FlagFilter accepts simplices whose flag value is Flag.
type FlagFilter struct {
	Flag int
}

func (ff FlagFilter) Accept(s Simplex) bool { return s != nil && s.AsSimplex().Flag() == ff.Flag }

// UnreachedFilter accepts a simplex whose flag value differs from
// Flag, setting the flag so it is not accepted again. It is used for
// graph searches that must visit each simplex once.
type UnreachedFilter struct {
	Flag int
}

func (uf UnreachedFilter) Accept(s Simplex) bool {
	if s == nil {
		return false
	}
	sb := s.AsSimplex()
	if sb.Flag() == uf.Flag {
		return false
	}
	sb.SetFlag(uf.Flag)
	return true
}

func acceptEdge(s Simplex, fn func(e *Edge) bool) bool {
	e, ok := s.(*Edge)
	return ok && fn(e)
}

func acceptFace(s Simplex, fn func(f *Face) bool) bool {
	f, ok := s.(*Face)
	return ok && fn(f)
}

// BorderEdgeFilter accepts edges with one face.
type BorderEdgeFilter struct{}

func (BorderEdgeFilter) Accept(s Simplex) bool { return acceptEdge(s, (*Edge).IsBorder) }

// CreaseEdgeFilter accepts edges marked as creases.
type CreaseEdgeFilter struct{}

func (CreaseEdgeFilter) Accept(s Simplex) bool { return acceptEdge(s, (*Edge).IsCrease) }

// PolyCreaseEdgeFilter accepts strong edges that are creases or borders.
type PolyCreaseEdgeFilter struct{}

func (PolyCreaseEdgeFilter) Accept(s Simplex) bool { return acceptEdge(s, (*Edge).IsPolyCrease) }

// StrongEdgeFilter accepts edges that are not quad diagonals.
type StrongEdgeFilter struct{}

func (StrongEdgeFilter) Accept(s Simplex) bool { return acceptEdge(s, (*Edge).IsStrong) }

// WeakEdgeFilter accepts quad diagonals.
type WeakEdgeFilter struct{}

func (WeakEdgeFilter) Accept(s Simplex) bool { return acceptEdge(s, (*Edge).IsWeak) }

// QuadFaceFilter accepts faces that are part of a quad.
type QuadFaceFilter struct{}

func (QuadFaceFilter) Accept(s Simplex) bool { return acceptFace(s, (*Face).IsQuad) }

// PatchFilter accepts faces of patch P, and vertices or edges
// with at least one face in P.
type PatchFilter struct {
	P *Patch
}

func (pf PatchFilter) Accept(s Simplex) bool {
	switch x := s.(type) {
	case *Face:
		return x.patch == pf.P
	case *Edge:
		for _, f := range x.Faces() {
			if f.patch == pf.P {
				return true
			}
		}
	case *Vert:
		for _, f := range x.Faces() {
			if f.patch == pf.P {
				return true
			}
		}
	}
	return false
}

type andFilter []Filter

func (af andFilter) Accept(s Simplex) bool {
	for _, f := range af {
		if !f.Accept(s) {
			return false
		}
	}
	return true
}

type orFilter []Filter

func (of orFilter) Accept(s Simplex) bool {
	for _, f := range of {
		if f.Accept(s) {
			return true
		}
	}
	return false
}

type notFilter struct {
	f Filter
}

func (nf notFilter) Accept(s Simplex) bool { return s != nil && !nf.f.Accept(s) }

// And returns a filter accepting what all the filters accept,
// evaluated in order.
func And(filters ...Filter) Filter { return andFilter(filters) }

// Or returns a filter accepting what any of the filters accept,
// evaluated in order.
func Or(filters ...Filter) Filter { return orFilter(filters) }

// Not returns a filter accepting the non-nil simplices f rejects.
func Not(f Filter) Filter { return notFilter{f} }

// FilterSimplices returns the simplices f accepts, in order.
func FilterSimplices[S Simplex](list []S, f Filter) []S {
	var out []S
	for _, s := range list {
		if f.Accept(s) {
			out = append(out, s)
		}
	}
	return out
}

// FilterVerts returns the vertices f accepts.
func FilterVerts(verts []*Vert, f Filter) []*Vert { return FilterSimplices(verts, f) }

// FilterEdges returns the edges f accepts.
func FilterEdges(edges []*Edge, f Filter) []*Edge { return FilterSimplices(edges, f) }

// FilterFaces returns the faces f accepts.
func FilterFaces(faces []*Face, f Filter) []*Face { return FilterSimplices(faces, f) }

// Count returns the number of simplices f accepts.
func Count[S Simplex](list []S, f Filter) int {
	n := 0
	for _, s := range list {
		if f.Accept(s) {
			n++
		}
	}
	return n
}

// ClearFlags sets the flag value of every simplex in the list to zero.
func ClearFlags[S Simplex](list []S) {
	for _, s := range list {
		s.AsSimplex().ClearFlag()
	}
}
