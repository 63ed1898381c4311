// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "cogentcore.org/jot/base/errors"

// Errors returned by mesh operations, wrapped with context;
// use [errors.Is] to test for them.
var (
	// ErrKeyTableFull is returned when a key cannot be assigned
	// because the key table of the mesh is at capacity.
	ErrKeyTableFull = errors.New("key table full")

	// ErrNilVert is returned when an edit is given a nil vertex.
	ErrNilVert = errors.New("nil vertex")

	// ErrForeignVert is returned when an edit is given a vertex
	// that belongs to another mesh.
	ErrForeignVert = errors.New("vertex belongs to another mesh")

	// ErrRepeatedVert is returned when an edge or face is given
	// the same vertex more than once.
	ErrRepeatedVert = errors.New("repeated vertex")

	// ErrVertInUse is returned when removing a vertex with incident edges.
	ErrVertInUse = errors.New("vertex has incident edges")

	// ErrEdgeInUse is returned when removing an edge with incident faces.
	ErrEdgeInUse = errors.New("edge has incident faces")

	// ErrNotInMesh is returned for a simplex that is not (or no longer)
	// part of the mesh the operation was called on.
	ErrNotInMesh = errors.New("simplex not in mesh")

	// ErrNonManifold is returned when an operation requires manifold
	// topology (at most two faces per edge).
	ErrNonManifold = errors.New("non-manifold topology")

	// ErrIllegalCollapse is returned when collapsing an edge would
	// change the topology of the surface.
	ErrIllegalCollapse = errors.New("illegal edge collapse")
)
