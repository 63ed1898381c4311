// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration structs for the
// mesh core: key table limits, surface walk tolerance, subdivision
// scheme selection, patch blend smoothing and logging. Config files
// are TOML or YAML, chosen by file extension.
package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"cogentcore.org/jot/base/errors"
	"cogentcore.org/jot/base/iox/tomlx"
	"cogentcore.org/jot/base/iox/yamlx"
	"cogentcore.org/jot/base/logx"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
)

// DefaultFile is the default config file name.
const DefaultFile = "jot.toml"

// Subdivision scheme names accepted by [Subdiv.Scheme].
const (
	SchemeHybrid       = "hybrid"
	SchemeLoop         = "loop"
	SchemeCatmullClark = "catmull-clark"
	SchemeSimple       = "simple"
)

// ErrInvalid is returned by [Config.Validate] for out of range settings.
var ErrInvalid = errors.New("invalid config")

// Config is the main config struct that contains all of the
// configuration options for the mesh core. The zero value is not
// valid; start from [Default]. Components take a *Config, where nil
// means the defaults.
type Config struct {

	// Mesh contains the mesh container options.
	Mesh Mesh `toml:"mesh" yaml:"mesh"`

	// Subdiv contains the subdivision hierarchy options.
	Subdiv Subdiv `toml:"subdiv" yaml:"subdiv"`

	// Blend contains the patch blend weight options.
	Blend Blend `toml:"blend" yaml:"blend"`

	// Skin contains the default options of skin vertices.
	Skin Skin `toml:"skin" yaml:"skin"`

	// Log contains the logging options.
	Log Log `toml:"log" yaml:"log"`
}

// Mesh contains the mesh container options.
type Mesh struct {

	// KeyCapacity is the maximum number of live keyed simplices per mesh.
	// Zero means unbounded. default: 8388607 (2^23 - 1)
	KeyCapacity int `toml:"key_capacity" yaml:"key_capacity"`

	// WalkEpsilon is the distance improvement a surface walk requires
	// before moving to a neighbor, relative to the mesh bounding box
	// diagonal. default: 1e-6
	WalkEpsilon float32 `toml:"walk_epsilon" yaml:"walk_epsilon"`
}

// Subdiv contains the subdivision hierarchy options.
type Subdiv struct {

	// MaxLevel is the deepest subdivision level that can be generated.
	// default: 6
	MaxLevel int `toml:"max_level" yaml:"max_level"`

	// Scheme is the subdivision scheme: hybrid, loop, catmull-clark
	// or simple. default: hybrid
	Scheme string `toml:"scheme" yaml:"scheme"`

	// NearTriangleRings is how many rings away from a triangle a
	// vertex is still subdivided with Loop masks in the hybrid scheme.
	// default: 1
	NearTriangleRings int `toml:"near_triangle_rings" yaml:"near_triangle_rings"`
}

// Blend contains the patch blend weight options.
type Blend struct {

	// SmoothPasses is the number of smoothing passes applied to patch
	// blend weights after the one-ring face counts. default: 0
	SmoothPasses int `toml:"smooth_passes" yaml:"smooth_passes"`
}

// Skin contains the default options of skin vertices that track
// another surface.
type Skin struct {

	// Offset is the distance kept along the surface normal.
	// default: 0
	Offset float32 `toml:"offset" yaml:"offset"`

	// Sticky keeps skin vertices at fixed barycentric coordinates of
	// the simplex they track, instead of sliding to the closest point.
	// default: false
	Sticky bool `toml:"sticky" yaml:"sticky"`

	// NonPenetrate corrects skin vertices that cross the surface.
	// default: true
	NonPenetrate bool `toml:"non_penetrate" yaml:"non_penetrate"`

	// StayOut is the side kept by NonPenetrate: outside if true,
	// inside otherwise. default: true
	StayOut bool `toml:"stay_out" yaml:"stay_out"`

	// Patches are the names of the patches skin vertices may track.
	// default: any patch
	Patches []string `toml:"patches,omitempty" yaml:"patches,omitempty"`
}

// Log contains the logging options.
type Log struct {

	// Level is the user verbosity level: debug, info, warn or error.
	// default: warn
	Level string `toml:"level" yaml:"level"`
}

// Default returns a new config with the default settings.
func Default() *Config {
	return &Config{
		Mesh:   Mesh{KeyCapacity: 1<<23 - 1, WalkEpsilon: 1e-6},
		Subdiv: Subdiv{MaxLevel: 6, Scheme: SchemeHybrid, NearTriangleRings: 1},
		Skin:   Skin{NonPenetrate: true, StayOut: true},
		Log:    Log{Level: "warn"},
	}
}

// OrDefault returns c, or [Default] if c is nil.
func OrDefault(c *Config) *Config {
	if c == nil {
		return Default()
	}
	return c
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	nc := &Config{}
	errors.Log(copier.CopyWithOption(nc, c, copier.Option{DeepCopy: true}))
	return nc
}

// Validate returns an error wrapping [ErrInvalid] if any
// setting is out of range.
func (c *Config) Validate() error {
	var errs []error
	if c.Mesh.KeyCapacity < 0 {
		errs = append(errs, fmt.Errorf("%w: mesh.key_capacity %d < 0", ErrInvalid, c.Mesh.KeyCapacity))
	}
	if c.Mesh.WalkEpsilon < 0 {
		errs = append(errs, fmt.Errorf("%w: mesh.walk_epsilon %g < 0", ErrInvalid, c.Mesh.WalkEpsilon))
	}
	if c.Subdiv.MaxLevel < 0 {
		errs = append(errs, fmt.Errorf("%w: subdiv.max_level %d < 0", ErrInvalid, c.Subdiv.MaxLevel))
	}
	switch c.Subdiv.Scheme {
	case SchemeHybrid, SchemeLoop, SchemeCatmullClark, SchemeSimple:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown subdiv.scheme %q", ErrInvalid, c.Subdiv.Scheme))
	}
	if c.Subdiv.NearTriangleRings < 0 {
		errs = append(errs, fmt.Errorf("%w: subdiv.near_triangle_rings %d < 0", ErrInvalid, c.Subdiv.NearTriangleRings))
	}
	if c.Blend.SmoothPasses < 0 {
		errs = append(errs, fmt.Errorf("%w: blend.smooth_passes %d < 0", ErrInvalid, c.Blend.SmoothPasses))
	}
	if _, ok := logx.LevelFromString(c.Log.Level); !ok {
		errs = append(errs, fmt.Errorf("%w: unknown log.level %q", ErrInvalid, c.Log.Level))
	}
	return errors.Join(errs...)
}

// ApplyLog sets [logx.UserLevel] from the Log section.
func (c *Config) ApplyLog() {
	lvl, ok := logx.LevelFromString(c.Log.Level)
	if !ok {
		slog.Warn("config: unknown log level, keeping default", "level", c.Log.Level)
	}
	logx.UserLevel = lvl
}

// Open returns the config read from the given file, on top of the
// defaults. A leading ~ is expanded to the home directory. Files
// ending in .yaml or .yml are read as YAML, all others as TOML.
// The result is validated.
func Open(file string) (*Config, error) {
	c := Default()
	if err := c.OpenFile(file); err != nil {
		return nil, err
	}
	return c, nil
}

// OpenFile reads the given file on top of the current values of c
// and validates the result.
func (c *Config) OpenFile(file string) error {
	path, err := homedir.Expand(file)
	if err != nil {
		return err
	}
	if isYAML(path) {
		err = yamlx.Open(c, path)
	} else {
		err = tomlx.Open(c, path)
	}
	if err != nil {
		return fmt.Errorf("config: opening %q: %w", path, err)
	}
	return c.Validate()
}

// Save writes the config to the given file, in YAML or TOML
// according to the file extension.
func (c *Config) Save(file string) error {
	path, err := homedir.Expand(file)
	if err != nil {
		return err
	}
	if isYAML(path) {
		return yamlx.Save(c, path)
	}
	return tomlx.Save(c, path)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
