// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bnode

import (
	"log/slog"
	"slices"

	"cogentcore.org/jot/base/slicesx"
)

// Graph holds the active nodes: those that get a callback each frame.
// The active list is kept in topological order. It is not safe for
// concurrent use.
type Graph struct {
	active []Node
	sorted bool
	frame  int
}

// Activate adds n to the active list, returning false if it is
// already there.
func (g *Graph) Activate(n Node) bool {
	var added bool
	g.active, added = slicesx.AppendUnique(g.active, n)
	if added {
		g.sorted = false
	}
	return added
}

// Deactivate removes n from the active list, returning false if it
// was not there.
func (g *Graph) Deactivate(n Node) bool {
	var removed bool
	g.active, removed = slicesx.RemoveValue(g.active, n)
	return removed
}

// IsActive returns whether n is in the active list.
func (g *Graph) IsActive(n Node) bool { return slices.Contains(g.active, n) }

// Active returns the active nodes in topological order.
func (g *Graph) Active() []Node {
	g.sort()
	return g.active
}

// Frame returns the number of frames applied.
func (g *Graph) Frame() int { return g.frame }

func (g *Graph) sort() {
	if g.sorted {
		return
	}
	active := g.active
	g.active = nil
	for _, n := range TopoSort(active) {
		if slices.Contains(active, n) {
			g.active = append(g.active, n)
		}
	}
	g.sorted = true
}

// Update updates the active nodes in topological order, returning
// the joined errors.
func (g *Graph) Update() error {
	return UpdateAll(g.Active())
}

// ApplyFrame calls Tick on each active node in topological order,
// then deactivates the nodes that did not ask to remain active.
// Nodes that do not implement [Ticker] are deactivated.
func (g *Graph) ApplyFrame() {
	g.frame++
	var done []Node
	for _, n := range slices.Clone(g.Active()) {
		if t, ok := n.(Ticker); !ok || !t.Tick() {
			done = append(done, n)
		}
	}
	if len(done) > 0 {
		slog.Debug("bnode.Graph.ApplyFrame: deactivating", "frame", g.frame, "n", len(done))
	}
	for _, n := range done {
		g.Deactivate(n)
	}
}
