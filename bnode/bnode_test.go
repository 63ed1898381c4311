// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bnode

import (
	"testing"

	"cogentcore.org/jot/base/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sum is a node whose value is its own value plus those of its inputs.
type sum struct {
	Base
	inputs []Node
	own    int
	val    int
	frozen bool
	fail   bool
	ticks  int
}

var errFail = errors.New("fail")

func newSum(name string, own int, inputs ...Node) *sum {
	s := &sum{own: own, inputs: inputs}
	s.Init(s, name)
	s.Hookup()
	return s
}

func (s *sum) Inputs() []Node { return s.inputs }

func (s *sum) IsFrozen() bool { return s.frozen }

func (s *sum) Recompute() error {
	if s.fail {
		return errFail
	}
	s.val = s.own
	for _, in := range s.inputs {
		s.val += in.(*sum).val
	}
	return nil
}

func (s *sum) Tick() bool {
	s.ticks--
	return s.ticks > 0
}

func (s *sum) set(own int) {
	s.own = own
	s.Invalidate()
}

func TestUpdateChain(t *testing.T) {
	a := newSum("a", 1)
	b := newSum("b", 2, a)
	c := newSum("c", 3, b)
	assert.True(t, c.IsDirty())
	require.NoError(t, c.Update())
	assert.Equal(t, 6, c.val)
	for _, n := range []*sum{a, b, c} {
		assert.False(t, n.IsDirty())
		assert.Equal(t, 1, n.NumRecomputes(), n.Identifier())
	}

	require.NoError(t, c.Update())
	assert.Equal(t, 1, c.NumRecomputes())

	a.set(10)
	assert.True(t, b.IsDirty())
	assert.True(t, c.IsDirty())
	a.Invalidate()
	b.Invalidate()
	require.NoError(t, c.Update())
	assert.Equal(t, 15, c.val)
	for _, n := range []*sum{a, b, c} {
		assert.Equal(t, 2, n.NumRecomputes(), n.Identifier())
	}

	// updating downstream only does not touch the inputs
	c.Invalidate()
	require.NoError(t, c.Update())
	assert.Equal(t, 2, a.NumRecomputes())
	assert.Equal(t, 3, c.NumRecomputes())
}

func TestUpdateDiamond(t *testing.T) {
	a := newSum("a", 1)
	b := newSum("b", 0, a)
	c := newSum("c", 0, a)
	d := newSum("d", 0, b, c)
	require.NoError(t, d.Update())
	assert.Equal(t, 2, d.val)
	assert.Equal(t, 1, a.NumRecomputes())
	assert.ElementsMatch(t, []Node{b, c}, a.Outputs())

	sorted := TopoSort([]Node{a})
	assert.Len(t, sorted, 4)
	assert.Equal(t, Node(a), sorted[0])
	assert.Equal(t, Node(d), sorted[3])
	assert.True(t, IsTopoSorted(sorted))
	assert.False(t, IsTopoSorted([]Node{d, b, c, a}))
	// the search marks are cleared
	assert.Len(t, TopoSort([]Node{a}), 4)
}

func TestCycle(t *testing.T) {
	a := &sum{}
	b := &sum{inputs: []Node{a}}
	a.inputs = []Node{b}
	a.Init(a, "a")
	b.Init(b, "b")
	a.Hookup()
	b.Hookup()
	err := a.Update()
	assert.ErrorIs(t, err, ErrCycle)
	assert.True(t, a.IsDirty())
	assert.Zero(t, a.NumRecomputes())
}

func TestFrozen(t *testing.T) {
	a := newSum("a", 1)
	b := newSum("b", 1, a)
	b.frozen = true
	require.NoError(t, b.Update())
	assert.True(t, b.IsDirty())
	assert.False(t, a.IsDirty())
	assert.Zero(t, b.NumRecomputes())

	b.frozen = false
	require.NoError(t, b.Update())
	assert.Equal(t, 2, b.val)
	assert.False(t, b.IsDirty())
}

func TestFrozenBlocksOutputs(t *testing.T) {
	a := newSum("a", 1)
	b := newSum("b", 1, a)
	c := newSum("c", 1, b)
	b.frozen = true
	require.NoError(t, c.Update())
	assert.True(t, b.IsDirty())
	assert.True(t, c.IsDirty())
	assert.Zero(t, c.NumRecomputes())

	a.set(10)
	require.NoError(t, c.Update())
	assert.True(t, c.IsDirty())
	assert.Zero(t, c.NumRecomputes())

	// unfreezing reaches the outputs left dirty by the frozen node
	b.frozen = false
	b.Invalidate()
	assert.True(t, c.IsDirty())
	require.NoError(t, c.Update())
	assert.Equal(t, 12, c.val)
	assert.False(t, b.IsDirty())
	assert.False(t, c.IsDirty())
	assert.Equal(t, 1, c.NumRecomputes())
}

func TestRecomputeError(t *testing.T) {
	a := newSum("a", 1)
	b := newSum("b", 1, a)
	a.fail = true
	err := b.Update()
	assert.ErrorIs(t, err, errFail)
	assert.True(t, a.IsDirty())
	assert.True(t, b.IsDirty())

	a.fail = false
	assert.NoError(t, UpdateAll([]Node{a, b}))
	assert.Equal(t, 2, b.val)
}

func TestHookup(t *testing.T) {
	a := newSum("a", 1)
	require.NoError(t, a.Update())
	b := newSum("b", 1, a)
	require.NoError(t, b.Update())
	assert.False(t, b.IsDirty())

	// a clean node hooked to a dirty input goes dirty
	c := newSum("c", 1)
	d := &sum{inputs: []Node{c}}
	d.Init(d, "")
	require.NoError(t, d.Update())
	c.Invalidate()
	d.Hookup()
	assert.True(t, d.IsDirty())
	assert.Contains(t, d.Identifier(), "sum_")

	b.Unhook()
	assert.Empty(t, a.Outputs())
	a.Invalidate()
	assert.False(t, b.IsDirty())
	InvalidateAll([]Node{b})
	assert.True(t, b.IsDirty())
	assert.Contains(t, b.Identifier(), "_b_")
}

func TestGraph(t *testing.T) {
	a := newSum("a", 1)
	b := newSum("b", 1, a)
	c := newSum("c", 1, b)
	var g Graph
	assert.True(t, g.Activate(c))
	assert.True(t, g.Activate(a))
	assert.False(t, g.Activate(a))
	assert.Equal(t, []Node{a, c}, g.Active())
	assert.True(t, g.IsActive(c))
	assert.False(t, g.IsActive(b))

	require.NoError(t, g.Update())
	assert.Equal(t, 3, c.val)

	a.ticks, c.ticks = 1, 2
	g.ApplyFrame()
	assert.Equal(t, []Node{c}, g.Active())
	g.ApplyFrame()
	assert.Empty(t, g.Active())
	assert.Equal(t, 2, g.Frame())
	assert.False(t, g.Deactivate(c))
}
