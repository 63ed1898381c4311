// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// Watch reloads the given config file each time it is written or
// re-created, calling fn with the freshly read config on success.
// Files that fail to read or validate are logged and skipped, and
// fn is not called. The directory of the file is watched so that
// editors that save by rename are seen. Watch returns once the
// watcher is running; it stops when ctx is done.
//
// fn runs on the watcher goroutine. The mesh core is not safe for
// concurrent use, so fn must hand the config over to the goroutine
// that owns the meshes (for example through a channel).
func Watch(ctx context.Context, file string, fn func(c *Config)) error {
	path, err := homedir.Expand(file)
	if err != nil {
		return err
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				c, err := Open(path)
				if err != nil {
					slog.Error("config: reload failed", "file", path, "err", err)
					continue
				}
				fn(c)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("config: watcher", "err", err)
			}
		}
	}()
	return nil
}
