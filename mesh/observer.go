// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strconv"
)

// ChangeReason describes the category of a change to a mesh,
// so observers can decide whether they must invalidate.
type ChangeReason int32

const (
	// NoChange is the zero reason.
	NoChange ChangeReason = iota

	// TopologyChanged means simplices were added or removed.
	TopologyChanged

	// PatchesChanged means faces moved between patches.
	PatchesChanged

	// TriangulationChanged means the faces were rebuilt, for
	// example by merging duplicate vertices.
	TriangulationChanged

	// VertPositionsChanged means vertices moved.
	VertPositionsChanged

	// VertColorsChanged means vertex colors changed.
	VertColorsChanged

	// CreasesChanged means crease edges or corner vertices changed.
	CreasesChanged

	// RenderingChanged means only rendering attributes changed.
	RenderingChanged
)

var changeReasonNames = [...]string{
	"NoChange", "TopologyChanged", "PatchesChanged", "TriangulationChanged",
	"VertPositionsChanged", "VertColorsChanged", "CreasesChanged", "RenderingChanged",
}

func (r ChangeReason) String() string {
	if r < 0 || int(r) >= len(changeReasonNames) {
		return "ChangeReason(" + strconv.Itoa(int(r)) + ")"
	}
	return changeReasonNames[r]
}

// IsTopological returns whether the change alters the structure of
// the mesh: its simplices, their connectivity or the patches.
func (r ChangeReason) IsTopological() bool {
	return r == TopologyChanged || r == PatchesChanged || r == TriangulationChanged
}

// IsGeometric returns whether the change alters the shape of the
// mesh (positions, colors or creases) while keeping its structure.
func (r ChangeReason) IsGeometric() bool {
	return r == VertPositionsChanged || r == VertColorsChanged || r == CreasesChanged
}

// Observer is notified of every change to the meshes it is registered with.
type Observer interface {
	MeshChanged(m *Mesh, reason ChangeReason)
}

// ObserverFunc adapts a function to the [Observer] interface.
// Only pointers to an ObserverFunc can be registered, since
// functions are not comparable.
type ObserverFunc func(m *Mesh, reason ChangeReason)

func (fn *ObserverFunc) MeshChanged(m *Mesh, reason ChangeReason) { (*fn)(m, reason) }

// SplitObserver is an optional interface for observers that want
// to know when an edge is split by [Mesh.SplitEdge].
type SplitObserver interface {
	MeshEdgeSplit(m *Mesh, e *Edge, v *Vert)
}

// SubdivObserver is an optional interface for observers that want
// to know when the next subdivision level of a mesh was generated.
type SubdivObserver interface {
	MeshSubdivGenerated(m *Mesh)
}

// DeleteObserver is an optional interface for observers that want
// to know when a mesh is deleted with [Mesh.Delete].
type DeleteObserver interface {
	MeshDeleted(m *Mesh)
}

// AddObserver registers o, returning false if it is already registered.
// Observers are notified in registration order. An observer must be
// comparable, so that it can be found again; others are logged and
// not registered.
func (m *Mesh) AddObserver(o Observer) bool {
	if o == nil {
		return false
	}
	if !reflect.TypeOf(o).Comparable() {
		slog.Error("mesh.AddObserver: observer is not comparable", "mesh", m.Name, "type", fmt.Sprintf("%T", o))
		return false
	}
	if m.observerIndex(o) >= 0 {
		return false
	}
	m.observers = append(m.observers, o)
	return true
}

// observerIndex returns the index of o among the observers, or -1.
func (m *Mesh) observerIndex(o Observer) int {
	if o == nil || !reflect.TypeOf(o).Comparable() {
		return -1
	}
	return slices.Index(m.observers, o)
}

// RemoveObserver unregisters o, returning false if it was not registered.
func (m *Mesh) RemoveObserver(o Observer) bool {
	i := m.observerIndex(o)
	if i < 0 {
		return false
	}
	m.observers = slices.Delete(m.observers, i, i+1)
	return true
}

// Observers returns a copy of the registered observers.
func (m *Mesh) Observers() []Observer {
	return slices.Clone(m.observers)
}

// Changed bumps the stamp and notifies every observer of the change.
// Inside [Mesh.Batch] the notification is deferred to the end of the
// batch. Observers may register or unregister during delivery; the
// change goes to the observers registered when it was fired.
func (m *Mesh) Changed(reason ChangeReason) {
	if reason == NoChange {
		return
	}
	if m.batch > 0 {
		if !slices.Contains(m.pending, reason) {
			m.pending = append(m.pending, reason)
		}
		return
	}
	m.stamp++
	if reason.IsTopological() || reason == CreasesChanged {
		m.topoStamp++
	}
	if reason.IsTopological() {
		m.blendValid = false
	}
	for _, o := range slices.Clone(m.observers) {
		o.MeshChanged(m, reason)
	}
}

// Batch calls fn with change notifications suspended, then fires
// each distinct reason that was raised, in the order first raised,
// followed by reason if it was not among them. The returned error
// is that of fn. A panic in fn ends the batch before it propagates.
func (m *Mesh) Batch(reason ChangeReason, fn func() error) error {
	err := func() error {
		m.batch++
		defer func() { m.batch-- }()
		return fn()
	}()
	if m.batch > 0 {
		m.Changed(reason)
		return err
	}
	pending := m.pending
	m.pending = nil
	if !slices.Contains(pending, reason) {
		pending = append(pending, reason)
	}
	for _, r := range pending {
		m.Changed(r)
	}
	return err
}

func (m *Mesh) notifySplit(e *Edge, v *Vert) {
	for _, o := range slices.Clone(m.observers) {
		if so, ok := o.(SplitObserver); ok {
			so.MeshEdgeSplit(m, e, v)
		}
	}
}

// NotifySubdivGenerated tells the observers implementing
// [SubdivObserver] that the next subdivision level was generated.
func (m *Mesh) NotifySubdivGenerated() {
	for _, o := range slices.Clone(m.observers) {
		if so, ok := o.(SubdivObserver); ok {
			so.MeshSubdivGenerated(m)
		}
	}
}
