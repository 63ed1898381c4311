// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subdiv

import (
	"fmt"

	"cogentcore.org/jot/config"
	"cogentcore.org/jot/math32"
	"cogentcore.org/jot/mesh"
)

// Blendable is a value that can be subdivided: positions and colors.
type Blendable[T any] interface {
	Add(other T) T
	Sub(other T) T
	MulScalar(s float32) T
}

// Accessor returns the value of type T stored at a vertex.
type Accessor[T any] func(v *mesh.Vert) T

// Positions is the [Accessor] of vertex positions.
func Positions(v *mesh.Vert) math32.Vector3 { return v.Pos() }

// Colors is the [Accessor] of vertex colors.
func Colors(v *mesh.Vert) math32.Vector4 { return v.Color() }

// interp returns a + w (b - a).
func interp[T Blendable[T]](a, b T, w float32) T {
	return a.Add(b.Sub(a).MulScalar(w))
}

// average returns the average of the values at the vertices, or
// the zero value when there are none.
func average[T Blendable[T]](get Accessor[T], verts []*mesh.Vert) T {
	var sum T
	if len(verts) == 0 {
		return sum
	}
	for _, v := range verts {
		sum = sum.Add(get(v))
	}
	return sum.MulScalar(1 / float32(len(verts)))
}

// Calc computes the values of a subdivision scheme: the value of
// the child of each vertex, the value of the vertex created at each
// edge, and the limit value at each vertex.
type Calc[T Blendable[T]] interface {
	// Name returns the name of the scheme.
	Name() string

	// Prepare is called with the mesh about to be subdivided,
	// before any value is computed for it.
	Prepare(m *mesh.Mesh)

	// VertVal returns the value of the child of v.
	VertVal(v *mesh.Vert) T

	// EdgeVal returns the value of the vertex created at e.
	EdgeVal(e *mesh.Edge) T

	// LimitVal returns the value v converges to under
	// repeated subdivision.
	LimitVal(v *mesh.Vert) T
}

// NewCalc returns the [Calc] for the scheme with the given config
// name, computing values with get. rings is the near triangle ring
// count of the hybrid scheme.
func NewCalc[T Blendable[T]](scheme string, get Accessor[T], rings int) (Calc[T], error) {
	switch scheme {
	case config.SchemeHybrid:
		return NewHybridCalc(get, rings), nil
	case config.SchemeLoop:
		return NewLoopCalc(get), nil
	case config.SchemeCatmullClark:
		return NewCatmullClarkCalc(get), nil
	case config.SchemeSimple:
		return NewSimpleCalc(get), nil
	}
	return nil, fmt.Errorf("subdiv.NewCalc: %q: %w", scheme, ErrUnknownScheme)
}

// SimpleCalc keeps the values at vertices and puts the midpoint at
// edges. It changes the triangulation without smoothing.
type SimpleCalc[T Blendable[T]] struct {
	Get Accessor[T]
}

// NewSimpleCalc returns a [SimpleCalc] over get.
func NewSimpleCalc[T Blendable[T]](get Accessor[T]) *SimpleCalc[T] {
	return &SimpleCalc[T]{Get: get}
}

func (sc *SimpleCalc[T]) Name() string { return "Simple subdivision" }

func (sc *SimpleCalc[T]) Prepare(m *mesh.Mesh) {}

func (sc *SimpleCalc[T]) VertVal(v *mesh.Vert) T { return sc.Get(v) }

func (sc *SimpleCalc[T]) EdgeVal(e *mesh.Edge) T {
	return interp(sc.Get(e.V1()), sc.Get(e.V2()), 0.5)
}

func (sc *SimpleCalc[T]) LimitVal(v *mesh.Vert) T { return sc.Get(v) }
