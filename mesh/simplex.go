// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"slices"

	"cogentcore.org/jot/base/errors"
	"cogentcore.org/jot/base/keylist"
	"cogentcore.org/jot/bitflag"
	"cogentcore.org/jot/math32"
)

// Simplex is a mesh primitive: a [*Vert], [*Edge] or [*Face].
// The set of implementations is closed; algorithms that need to
// handle each kind use a type switch.
type Simplex interface {
	// AsSimplex returns the shared state of the simplex.
	AsSimplex() *SimplexBase

	// Dim returns the dimension: 0 for a vertex, 1 for an edge, 2 for a face.
	Dim() int

	// Mesh returns the mesh that owns the simplex, nil after removal.
	Mesh() *Mesh

	// Key returns the key of the simplex, assigning it on first use.
	Key() Key

	// Neighbors returns the simplices a surface walk can move to.
	Neighbors() []Simplex

	// NearestPoint returns the point of the simplex closest to p,
	// and its barycentric coordinates with respect to the vertices
	// of the simplex (unused trailing coordinates are zero).
	NearestPoint(p math32.Vector3) (pt, bc math32.Vector3)

	// BCToSimplex returns the lowest dimension sub-simplex (possibly
	// itself) containing the point with the given barycentric coordinates.
	BCToSimplex(bc math32.Vector3) Simplex

	// BCToPos returns the position of the point with the given
	// barycentric coordinates.
	BCToPos(bc math32.Vector3) math32.Vector3

	// Centroid returns the average of the vertex positions.
	Centroid() math32.Vector3

	String() string

	simplex()
}

// Bits are ordinal bit flags stored on every simplex.
// Bits 0 and 1 hold the graph search [SimplexBase.Flag] value.
type Bits int

const (
	// SelectedBit marks a simplex selected by an editing tool.
	SelectedBit Bits = iota + flagWidth

	// ConsideredBit is scratch state for searches that need to
	// remember which simplices they have looked at.
	ConsideredBit

	// CreaseBit marks an edge as a crease for subdivision and strips.
	CreaseBit

	// WeakBit marks an edge as the hidden diagonal of a quad.
	WeakBit

	// CornerBit marks a vertex to be kept fixed by subdivision.
	CornerBit

	// NormalDirtyBit marks a cached normal as needing recomputation.
	NormalDirtyBit

	// GeomDirtyBit marks a simplex whose geometry changed since
	// dependents last looked at it. Dependents clear it.
	GeomDirtyBit

	// UserBit is the first bit free for use by other packages.
	UserBit
)

// flagWidth is the number of low bits used by the flag value.
const flagWidth = 2

// SimplexBase holds the state shared by all simplices: the
// back-pointer to the concrete simplex, the owning mesh, the lazily
// assigned key, bit flags and the attached [Data] records.
type SimplexBase struct {
	// This is the concrete simplex embedding this base.
	This Simplex

	mesh  *Mesh
	key   Key
	bits  int64
	index int
	data  *keylist.List[*DataKind, Data]
}

// AsSimplex satisfies the [Simplex] interface.
func (sb *SimplexBase) AsSimplex() *SimplexBase {
	return sb
}

// Mesh returns the mesh that owns the simplex, nil after removal.
func (sb *SimplexBase) Mesh() *Mesh {
	return sb.mesh
}

// Index returns the position of the simplex in its mesh's vertex,
// edge or face list. It changes when other simplices are removed.
func (sb *SimplexBase) Index() int {
	return sb.index
}

// Key returns the key of the simplex, assigning it on first use.
// A failed assignment is logged and returns [NoKey]; it is retried
// on the next call.
func (sb *SimplexBase) Key() Key {
	return errors.Log1(sb.TryKey())
}

// TryKey is like [SimplexBase.Key] but returns the assignment error,
// wrapping [ErrKeyTableFull] or [ErrNotInMesh].
func (sb *SimplexBase) TryKey() (Key, error) {
	if sb.key != NoKey {
		return sb.key, nil
	}
	if sb.mesh == nil {
		return NoKey, ErrNotInMesh
	}
	k, err := sb.mesh.keys.Assign(sb.This)
	if err != nil {
		return NoKey, err
	}
	sb.key = k
	return k, nil
}

// HasKey returns whether a key has been assigned.
func (sb *SimplexBase) HasKey() bool {
	return sb.key != NoKey
}

// HasBit returns whether the given bit is set.
func (sb *SimplexBase) HasBit(b Bits) bool {
	return bitflag.Has(sb.bits, b)
}

// SetBit sets the given bits.
func (sb *SimplexBase) SetBit(b ...Bits) {
	bitflag.Set(&sb.bits, b...)
}

// ClearBit clears the given bits.
func (sb *SimplexBase) ClearBit(b ...Bits) {
	bitflag.Clear(&sb.bits, b...)
}

// SetBitState sets or clears the given bit.
func (sb *SimplexBase) SetBitState(b Bits, on bool) {
	bitflag.SetState(&sb.bits, on, b)
}

// Flag returns the graph search flag value, in 0..3.
func (sb *SimplexBase) Flag() int {
	return int(bitflag.Field(sb.bits, 0, flagWidth))
}

// SetFlag sets the graph search flag value, which is truncated to 0..3.
func (sb *SimplexBase) SetFlag(v int) {
	bitflag.SetField(&sb.bits, 0, flagWidth, int64(v))
}

// ClearFlag sets the graph search flag value to zero.
func (sb *SimplexBase) ClearFlag() {
	sb.SetFlag(0)
}

// IsSelected returns whether the [SelectedBit] is set.
func (sb *SimplexBase) IsSelected() bool {
	return sb.HasBit(SelectedBit)
}

// dataValues returns a snapshot of the attached data, safe to
// iterate while handlers attach or detach records.
func (sb *SimplexBase) dataValues() []Data {
	if sb.data.Len() == 0 {
		return nil
	}
	return slices.Clone(sb.data.Values)
}

// NotifyChanged tells the attached data that the simplex geometry changed.
func (sb *SimplexBase) NotifyChanged() {
	for _, d := range sb.dataValues() {
		d.SimplexChanged()
	}
}

// NotifyNormalChanged tells the attached data that the normal changed.
func (sb *SimplexBase) NotifyNormalChanged() {
	for _, d := range sb.dataValues() {
		d.NormalChanged()
	}
}

// NotifySplit tells the attached data that the simplex was split and
// ns was created from it, so each record can propagate itself.
func (sb *SimplexBase) NotifySplit(ns Simplex) {
	for _, d := range sb.dataValues() {
		d.Split(ns)
	}
}

// NotifySubdivGenerated tells the attached data that the children
// of the simplex in the next subdivision level were generated.
func (sb *SimplexBase) NotifySubdivGenerated() {
	for _, d := range sb.dataValues() {
		d.SubdivGenerated()
	}
}

// HandleSubdivCalc asks the attached data to take over computing the
// subdivided value of the simplex, returning true if any record did.
func (sb *SimplexBase) HandleSubdivCalc() bool {
	handled := false
	for _, d := range sb.dataValues() {
		if d.HandleSubdivCalc() {
			handled = true
		}
	}
	return handled
}

// notifyDeleted delivers exactly one SimplexDeleted to each attached
// record and then drops the list.
func (sb *SimplexBase) notifyDeleted() {
	vals := sb.dataValues()
	sb.data = nil
	for _, d := range vals {
		d.SimplexDeleted()
	}
}

// release detaches the simplex from its mesh after removal.
func (sb *SimplexBase) release() {
	sb.notifyDeleted()
	if sb.mesh != nil && sb.key != NoKey {
		sb.mesh.keys.Release(sb.key)
	}
	sb.key = NoKey
	sb.mesh = nil
	sb.index = -1
}
