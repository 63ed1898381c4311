// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"fmt"
	"log/slog"

	"cogentcore.org/jot/base/keylist"
)

// DataKind identifies a kind of [Data] record. At most one record of
// each kind can be attached to a simplex. Kinds are compared by
// pointer identity; the name is only used in messages.
type DataKind struct {
	name string
}

// NewDataKind returns a new unique kind with the given name.
// It is typically called once, in a package level variable.
func NewDataKind(name string) *DataKind {
	return &DataKind{name: name}
}

func (k *DataKind) String() string {
	if k == nil {
		return "<nil kind>"
	}
	return k.name
}

// Data is an annotation attached to a simplex by some other subsystem,
// without the simplex knowing its concrete type. Implementations embed
// [DataBase] (which provides no-op defaults for all the notification
// hooks) and must be pointer types.
type Data interface {
	// AsDataBase returns the shared record state.
	AsDataBase() *DataBase

	// SimplexChanged is called when the geometry of the simplex changed.
	SimplexChanged()

	// NormalChanged is called when the normal of the simplex changed.
	NormalChanged()

	// SimplexDeleted is called exactly once, when the simplex is
	// removed from its mesh. The record is already detached.
	SimplexDeleted()

	// Split is called when the simplex was split and ns was created
	// from it, so the record can decide whether to copy itself to ns.
	Split(ns Simplex)

	// SubdivGenerated is called when the children of the simplex
	// at the next subdivision level were generated.
	SubdivGenerated()

	// HandleSubdivCalc returns true if the record takes over computing
	// the subdivided value of the simplex.
	HandleSubdivCalc() bool
}

// DataBase is the state shared by every [Data] record.
type DataBase struct {
	// Kind identifies the kind of record.
	Kind *DataKind

	// Simplex is the simplex the record is attached to, nil when detached.
	Simplex Simplex
}

// AsDataBase satisfies the [Data] interface.
func (db *DataBase) AsDataBase() *DataBase { return db }

func (db *DataBase) SimplexChanged()        {}
func (db *DataBase) NormalChanged()         {}
func (db *DataBase) Split(ns Simplex)       {}
func (db *DataBase) SubdivGenerated()       {}
func (db *DataBase) HandleSubdivCalc() bool { return false }

// SimplexDeleted clears the back-pointer to the simplex.
func (db *DataBase) SimplexDeleted() {
	db.Simplex = nil
}

// AddData attaches d to s. A nil record is ignored. Adding the
// record that is already attached logs a warning and does nothing.
// Adding a different record of a kind that is already attached is a
// programming error and panics.
func AddData(s Simplex, d Data) {
	if s == nil || d == nil {
		return
	}
	db := d.AsDataBase()
	if db == nil {
		return
	}
	if db.Kind == nil {
		panic(fmt.Sprintf("mesh.AddData: record %T on %v has no kind", d, s))
	}
	sb := s.AsSimplex()
	if cur, ok := sb.data.AtTry(db.Kind); ok {
		if cur == d {
			slog.Warn("mesh.AddData: record already attached", "kind", db.Kind, "simplex", s)
			return
		}
		panic(fmt.Sprintf("mesh.AddData: a different %v record is already attached to %v", db.Kind, s))
	}
	if sb.data == nil {
		sb.data = keylist.New[*DataKind, Data]()
	}
	sb.data.Add(db.Kind, d)
	db.Simplex = s
}

// FindData returns the record of the given kind attached to s, or nil.
func FindData(s Simplex, kind *DataKind) Data {
	if s == nil {
		return nil
	}
	return s.AsSimplex().data.At(kind)
}

// FindDataAs returns the record of the given kind attached to s,
// converted to type T, and whether it was found with that type.
func FindDataAs[T Data](s Simplex, kind *DataKind) (T, bool) {
	d, ok := FindData(s, kind).(T)
	return d, ok
}

// GetOrCreateData returns the record of the given kind attached to s,
// calling create and attaching the result when there is none yet.
// create may leave the kind of the new record unset.
func GetOrCreateData[T Data](s Simplex, kind *DataKind, create func() T) T {
	if d, ok := FindDataAs[T](s, kind); ok {
		return d
	}
	d := create()
	if db := d.AsDataBase(); db.Kind == nil {
		db.Kind = kind
	}
	AddData(s, d)
	return d
}

// RemoveData detaches and returns the record of the given kind,
// or nil if there is none. No deleted notification is sent.
func RemoveData(s Simplex, kind *DataKind) Data {
	if s == nil {
		return nil
	}
	d, ok := s.AsSimplex().data.DeleteByKey(kind)
	if !ok {
		return nil
	}
	d.AsDataBase().Simplex = nil
	return d
}

// DataList returns the records attached to s, in the order they were added.
func DataList(s Simplex) []Data {
	if s == nil {
		return nil
	}
	return s.AsSimplex().dataValues()
}
