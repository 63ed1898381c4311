// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command jot builds one of the built-in control meshes, subdivides
// it and prints a YAML summary of every level.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cogentcore.org/jot/base/errors"
	"cogentcore.org/jot/base/logx"
	"cogentcore.org/jot/config"
	"cogentcore.org/jot/mesh"
	"cogentcore.org/jot/subdiv"
)

func main() {
	var (
		file  = flag.String("config", "", "config file (TOML or YAML)")
		shape = flag.String("shape", "cube", "control mesh: cube, tetrahedron or grid")
		level = flag.Int("level", 2, "subdivision level to generate")
		size  = flag.Int("n", 4, "quads per side of the grid shape")
		vv    = flag.Bool("vv", false, "debug logging")
		v     = flag.Bool("v", false, "info logging")
		q     = flag.Bool("q", false, "only log errors")
	)
	flag.Parse()
	logx.UserLevel = logx.LevelFromFlags(*vv, *v, *q)
	logx.SetDefaultLogger()

	cfg := config.Default()
	if *file != "" {
		var err error
		cfg, err = config.Open(*file)
		if errors.Log(err) != nil {
			os.Exit(1)
		}
		if !*vv && !*v && !*q {
			cfg.ApplyLog()
		}
	}
	if err := run(os.Stdout, cfg, *shape, *level, *size); err != nil {
		slog.Error("jot", "err", err)
		os.Exit(1)
	}
}

// run writes the summaries of levels 0 through level of the shape.
func run(w io.Writer, cfg *config.Config, shape string, level, size int) error {
	var ctrl *mesh.Mesh
	switch shape {
	case "cube":
		ctrl = mesh.NewCube(cfg)
	case "tetrahedron", "tet":
		ctrl = mesh.NewTetrahedron(cfg)
	case "grid":
		ctrl = mesh.NewQuadGrid(cfg, size, size, nil)
	default:
		return fmt.Errorf("unknown shape %q", shape)
	}
	h := subdiv.New(ctrl)
	defer h.Delete()
	if _, err := h.Update(level); err != nil {
		return err
	}
	for _, l := range h.Levels() {
		if err := l.Mesh().WriteSummary(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
	}
	return nil
}
