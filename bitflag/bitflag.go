// Copyright (c) 2018, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bitflag provides simple bit flag setting, checking, and clearing
// functions that take bit position args as ordinal values (from const
// iota enums) and do the bit shifting from there. It also supports small
// multi-bit fields packed into the low bits of the same word, which the
// mesh core uses for its graph search flag.
package bitflag

// Mask makes a mask for checking multiple different flags
func Mask[F ~int](flags ...F) int64 {
	var mask int64
	for _, f := range flags {
		mask |= 1 << uint32(f)
	}
	return mask
}

// Set sets bit value(s) for ordinal bit position flags
func Set[F ~int](bits *int64, flags ...F) {
	*bits |= Mask(flags...)
}

// Clear clears bit value(s) for ordinal bit position flags
func Clear[F ~int](bits *int64, flags ...F) {
	*bits &^= Mask(flags...)
}

// SetState sets or clears bit value(s) depending on state (on / off) for
// ordinal bit position flags
func SetState[F ~int](bits *int64, state bool, flags ...F) {
	if state {
		Set(bits, flags...)
	} else {
		Clear(bits, flags...)
	}
}

// Toggle toggles state of bit value(s) for ordinal bit position flags
func Toggle[F ~int](bits *int64, flags ...F) {
	*bits ^= Mask(flags...)
}

// Has checks if given bit value is set for ordinal bit position flag
func Has[F ~int](bits int64, flag F) bool {
	return bits&(1<<uint32(flag)) != 0
}

// HasAny checks if any of a set of flags are set for ordinal bit position flags (logical OR)
func HasAny[F ~int](bits int64, flags ...F) bool {
	return bits&Mask(flags...) != 0
}

// HasAll checks if all of a set of flags are set for ordinal bit position flags (logical AND)
func HasAll[F ~int](bits int64, flags ...F) bool {
	mask := Mask(flags...)
	return bits&mask == mask
}

// Field returns the unsigned value stored in the width bits
// starting at bit position shift.
func Field(bits int64, shift, width uint) int64 {
	return (bits >> shift) & (1<<width - 1)
}

// SetField stores value in the width bits starting at bit
// position shift, leaving the other bits unchanged. Bits of value
// beyond width are discarded.
func SetField(bits *int64, shift, width uint, value int64) {
	mask := int64(1<<width-1) << shift
	*bits = (*bits &^ mask) | ((value << shift) & mask)
}
