// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slicesx provides additional slice functions
// beyond those in the standard [slices] package.
package slicesx

import "slices"

// RemoveValue removes the first element equal to v, preserving
// the order of the remaining elements, and returns the resulting
// slice and whether v was found.
func RemoveValue[E comparable](s []E, v E) ([]E, bool) {
	i := slices.Index(s, v)
	if i < 0 {
		return s, false
	}
	return slices.Delete(s, i, i+1), true
}

// AppendUnique appends v to s unless s already contains it,
// returning the resulting slice and whether v was added.
func AppendUnique[E comparable](s []E, v E) ([]E, bool) {
	if slices.Contains(s, v) {
		return s, false
	}
	return append(s, v), true
}
