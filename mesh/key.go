// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"fmt"
)

// Key is a stable identifier of a simplex within the [KeyTable] of its
// mesh. It packs a slot index in the low 32 bits and the generation of
// the slot in the high 32 bits, so that a key of a removed simplex no
// longer resolves after its slot is reused.
type Key uint64

// NoKey is the zero Key, never assigned to a simplex.
const NoKey Key = 0

func makeKey(index, gen uint32) Key {
	return Key(uint64(gen)<<32 | uint64(index))
}

// Index returns the slot index of the key.
func (k Key) Index() int {
	return int(uint32(k))
}

// Generation returns the generation of the slot when the key was assigned.
func (k Key) Generation() uint32 {
	return uint32(k >> 32)
}

// IsValid returns whether the key refers to a slot (it may still be stale).
func (k Key) IsValid() bool {
	return k.Index() != 0
}

func (k Key) String() string {
	if !k.IsValid() {
		return "nokey"
	}
	return fmt.Sprintf("%d.%d", k.Index(), k.Generation())
}

type keySlot struct {
	s   Simplex
	gen uint32
}

// KeyTable maps keys to simplices with O(1) lookup in both directions.
// Slot 0 is reserved so that the zero [Key] is never valid. Released
// slots are reused with a bumped generation. The capacity bounds the
// number of live keys; zero means unbounded.
type KeyTable struct {
	slots    []keySlot
	free     []uint32
	live     int
	capacity int
}

// initialKeySlots is the initial allocation of the slot table.
const initialKeySlots = 1 << 14

// NewKeyTable returns a new key table with the given capacity
// (0 for unbounded).
func NewKeyTable(capacity int) *KeyTable {
	return &KeyTable{capacity: capacity}
}

// Capacity returns the maximum number of live keys, 0 if unbounded.
func (kt *KeyTable) Capacity() int {
	return kt.capacity
}

// Len returns the number of live keys.
func (kt *KeyTable) Len() int {
	return kt.live
}

// Assign registers s in a free slot and returns its new key.
// It returns [ErrKeyTableFull] when the capacity is reached,
// in which case no existing key is affected.
func (kt *KeyTable) Assign(s Simplex) (Key, error) {
	if kt.capacity > 0 && kt.live >= kt.capacity {
		return NoKey, fmt.Errorf("mesh: assigning key to %v (%d live keys): %w", s, kt.live, ErrKeyTableFull)
	}
	if kt.slots == nil {
		kt.slots = make([]keySlot, 1, initialKeySlots)
	}
	kt.live++
	if n := len(kt.free); n > 0 {
		idx := kt.free[n-1]
		kt.free = kt.free[:n-1]
		sl := &kt.slots[idx]
		sl.s = s
		return makeKey(idx, sl.gen), nil
	}
	idx := uint32(len(kt.slots))
	kt.slots = append(kt.slots, keySlot{s: s, gen: 1})
	return makeKey(idx, 1), nil
}

// Lookup returns the simplex with the given key, or nil if the key
// is out of range, released, or from an earlier generation of its slot.
func (kt *KeyTable) Lookup(k Key) Simplex {
	idx := k.Index()
	if idx <= 0 || idx >= len(kt.slots) {
		return nil
	}
	sl := kt.slots[idx]
	if sl.gen != k.Generation() {
		return nil
	}
	return sl.s
}

// Release frees the slot of the given key for reuse.
// Stale or unknown keys are ignored.
func (kt *KeyTable) Release(k Key) {
	if kt.Lookup(k) == nil {
		return
	}
	idx := k.Index()
	sl := &kt.slots[idx]
	sl.s = nil
	sl.gen++
	kt.free = append(kt.free, uint32(idx))
	kt.live--
}
