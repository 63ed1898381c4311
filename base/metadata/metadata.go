// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metadata provides a map of named any elements
// with generic support for type-safe Get and nil-safe Set.
// Mesh patches use it to hold rendering attributes, which
// the rendering layer reads but the mesh core never interprets.
// Metadata keys function as optional fields, and therefore a
// CamelCase naming convention is typical.
package metadata

import (
	"fmt"
	"maps"

	"cogentcore.org/jot/base/errors"
)

// Standard attribute keys used by mesh patches.
const (
	// NameKey is the key for a display name.
	NameKey = "Name"

	// TextureKey is the key for the name of the texture
	// (rendering style) used to draw a patch.
	TextureKey = "Texture"

	// ColorKey is the key for a base color.
	ColorKey = "Color"
)

// Data is metadata as a map of named any elements
// with generic support for type-safe Get and nil-safe Set.
type Data map[string]any

func (md *Data) init() {
	if *md == nil {
		*md = make(map[string]any)
	}
}

// Set sets key to given value, ensuring that
// the map is created if not previously.
func (md *Data) Set(key string, value any) {
	md.init()
	(*md)[key] = value
}

// Delete removes the given key, if present.
func (md *Data) Delete(key string) {
	delete(*md, key)
}

// Has returns whether the given key is present.
func (md Data) Has(key string) bool {
	_, ok := md[key]
	return ok
}

// Get gets metadata value of given type.
// returns error if not present or item is a different type.
func Get[T any](md Data, key string) (T, error) {
	var z T
	x, ok := md[key]
	if !ok {
		return z, fmt.Errorf("key %q not found in metadata", key)
	}
	v, ok := x.(T)
	if !ok {
		return z, fmt.Errorf("key %q has a different type than expected %T: is %T", key, z, x)
	}
	return v, nil
}

// GetOr gets metadata value of given type, returning the
// given default value if it is not present or of a different type.
func GetOr[T any](md Data, key string, def T) T {
	v, err := Get[T](md, key)
	if err != nil {
		return def
	}
	return v
}

// Copy does a shallow copy of metadata from source.
// Any pointer-based values will still point to the same
// underlying data as the source, but the two maps remain
// distinct.  It uses [maps.Copy].
func (md *Data) Copy(src Data) {
	if src == nil {
		return
	}
	md.init()
	maps.Copy(*md, src)
}

// SetName sets the [NameKey] standard key.
func (md *Data) SetName(name string) {
	md.Set(NameKey, name)
}

// GetName returns the [NameKey] standard key value (empty if not set).
func (md Data) GetName() string {
	return errors.Ignore1(Get[string](md, NameKey))
}

// SetTexture sets the [TextureKey] standard key.
func (md *Data) SetTexture(texture string) {
	md.Set(TextureKey, texture)
}

// GetTexture returns the [TextureKey] standard key value (empty if not set).
func (md Data) GetTexture() string {
	return errors.Ignore1(Get[string](md, TextureKey))
}
