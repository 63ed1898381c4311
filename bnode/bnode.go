// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bnode provides the nodes of a dependency graph. Each node
// has inputs it depends on and outputs it affects. When a node
// changes it is invalidated, which marks it and everything
// downstream of it dirty. Updating a dirty node first updates its
// inputs and then recomputes it once.
//
// Types implementing [Node] embed [Base], call [Base.Init] with
// themselves and then [Base.Hookup] once their inputs are known.
package bnode

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	"cogentcore.org/jot/base/errors"
	"cogentcore.org/jot/base/slicesx"
	"cogentcore.org/jot/bitflag"
)

// ErrCycle is returned by [Base.Update] when a node is reached again
// while it is being updated.
var ErrCycle = errors.New("dependency cycle")

// Node is a node of a dependency graph.
type Node interface {
	// AsBase returns the [Base] of the node.
	AsBase() *Base

	// Name returns the name of the node, which may be empty.
	Name() string

	// Inputs returns the nodes this node depends on.
	Inputs() []Node

	// Recompute computes the data of the node, given that its inputs
	// are up to date. An error leaves the node dirty.
	Recompute() error
}

// Freezer is implemented by nodes that can be frozen. A frozen node
// is not recomputed and stays dirty until it is unfrozen and updated.
type Freezer interface {
	IsFrozen() bool
}

// Ticker is implemented by nodes that want a callback for each
// frame while they are active in a [Graph]. Tick returns whether
// the node wants to remain active.
type Ticker interface {
	Tick() bool
}

type flags int

const (
	dirty flags = iota
	updating
	searched
)

var nextID atomic.Int64

// Base is the state shared by every [Node]. The zero value must be
// initialized with [Base.Init].
type Base struct {
	// This is the node embedding this base.
	This Node

	name       string
	id         int64
	flags      int64
	outputs    []Node
	recomputes int
}

// Init sets the node and name of the base and gives it a unique
// number. The node starts dirty.
func (b *Base) Init(this Node, name string) {
	b.This = this
	b.name = name
	b.id = nextID.Add(1)
	bitflag.Set(&b.flags, dirty)
}

// AsBase satisfies the [Node] interface.
func (b *Base) AsBase() *Base { return b }

// Name returns the name given to [Base.Init].
func (b *Base) Name() string { return b.name }

// SetName sets the name of the node.
func (b *Base) SetName(name string) { b.name = name }

// Number returns the unique number of the node.
func (b *Base) Number() int64 { return b.id }

// Identifier returns the type, name and unique number of the node.
func (b *Base) Identifier() string {
	id := strconv.FormatInt(b.id, 10)
	typ := fmt.Sprintf("%T", b.This)
	if b.name == "" {
		return typ + "_" + id
	}
	return typ + "_" + b.name + "_" + id
}

func (b *Base) String() string { return b.Identifier() }

// IsDirty returns whether the node needs to be recomputed.
func (b *Base) IsDirty() bool { return bitflag.Has(b.flags, dirty) }

// Outputs returns the nodes that depend on this node.
func (b *Base) Outputs() []Node { return b.outputs }

// NumRecomputes returns the number of times the node was recomputed.
func (b *Base) NumRecomputes() int { return b.recomputes }

// AddOutput registers o as depending on the node.
func (b *Base) AddOutput(o Node) {
	b.outputs, _ = slicesx.AppendUnique(b.outputs, o)
}

// RemoveOutput unregisters o.
func (b *Base) RemoveOutput(o Node) {
	b.outputs, _ = slicesx.RemoveValue(b.outputs, o)
}

// Hookup registers the node as an output of each of its inputs,
// invalidating it if any input is dirty.
func (b *Base) Hookup() {
	anyDirty := false
	for _, in := range b.This.Inputs() {
		in.AsBase().AddOutput(b.This)
		anyDirty = anyDirty || in.AsBase().IsDirty()
	}
	if anyDirty && !b.IsDirty() {
		slog.Debug("bnode.Hookup: input is dirty", "node", b)
		b.Invalidate()
	}
}

// Unhook unregisters the node from its inputs.
func (b *Base) Unhook() {
	for _, in := range b.This.Inputs() {
		in.AsBase().RemoveOutput(b.This)
	}
}

// Invalidate marks the node and everything downstream of it dirty.
// Outputs that are already dirty are not visited again.
func (b *Base) Invalidate() {
	bitflag.Set(&b.flags, dirty)
	for _, o := range b.outputs {
		if !o.AsBase().IsDirty() {
			o.AsBase().Invalidate()
		}
	}
}

// Update brings the node up to date: it updates the inputs, then
// recomputes the node unless it is frozen. A node with an input that
// is still dirty afterwards, such as a frozen one, stays dirty and is
// not recomputed. It does nothing for a node that is not dirty.
func (b *Base) Update() error {
	if bitflag.Has(b.flags, updating) {
		return fmt.Errorf("bnode.Update: %v: %w", b, ErrCycle)
	}
	if !b.IsDirty() {
		return nil
	}
	bitflag.Set(&b.flags, updating)
	defer bitflag.Clear(&b.flags, updating)
	for _, in := range b.This.Inputs() {
		if err := in.AsBase().Update(); err != nil {
			return err
		}
	}
	for _, in := range b.This.Inputs() {
		if in.AsBase().IsDirty() {
			return nil
		}
	}
	if fz, ok := b.This.(Freezer); ok && fz.IsFrozen() {
		return nil
	}
	if err := b.This.Recompute(); err != nil {
		return fmt.Errorf("bnode.Update: %v: %w", b, err)
	}
	b.recomputes++
	bitflag.Clear(&b.flags, dirty)
	return nil
}

// UpdateAll updates each of the nodes, returning the joined errors.
func UpdateAll(nodes []Node) error {
	var errs []error
	for _, n := range nodes {
		if err := n.AsBase().Update(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InvalidateAll invalidates each of the nodes.
func InvalidateAll(nodes []Node) {
	for _, n := range nodes {
		n.AsBase().Invalidate()
	}
}

// TopoSort returns the nodes and everything downstream of them,
// ordered so that each node comes before its outputs.
func TopoSort(nodes []Node) []Node {
	var post []Node
	var visit func(n Node)
	visit = func(n Node) {
		b := n.AsBase()
		if bitflag.Has(b.flags, searched) {
			return
		}
		bitflag.Set(&b.flags, searched)
		for _, o := range b.outputs {
			visit(o)
		}
		post = append(post, n)
	}
	for _, n := range nodes {
		visit(n)
	}
	for _, n := range post {
		bitflag.Clear(&n.AsBase().flags, searched)
	}
	sorted := make([]Node, len(post))
	for i, n := range post {
		sorted[len(post)-1-i] = n
	}
	return sorted
}

// IsTopoSorted returns whether no node of the list comes after one
// of its outputs.
func IsTopoSorted(nodes []Node) bool {
	pos := make(map[Node]int, len(nodes))
	for i, n := range nodes {
		pos[n] = i
	}
	for i, n := range nodes {
		for _, o := range n.AsBase().outputs {
			if j, ok := pos[o]; ok && j < i {
				return false
			}
		}
	}
	return true
}
