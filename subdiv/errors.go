// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subdiv

import (
	"cogentcore.org/jot/base/errors"
	"cogentcore.org/jot/mesh"
)

var (
	// ErrMaxLevel is returned when a level deeper than the
	// configured maximum is requested.
	ErrMaxLevel = errors.New("beyond maximum subdivision level")

	// ErrNonManifold is returned when a level cannot be subdivided
	// because an edge has more than two faces. It is the same error
	// as [mesh.ErrNonManifold].
	ErrNonManifold = mesh.ErrNonManifold

	// ErrComputing is returned when a level is requested while it
	// is being generated or updated.
	ErrComputing = errors.New("subdivision level is being computed")

	// ErrUnknownScheme is returned for a subdivision scheme name
	// that is not one of the config scheme names.
	ErrUnknownScheme = errors.New("unknown subdivision scheme")
)
