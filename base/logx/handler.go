// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// UseColor is whether to use color in log messages.
// It is on by default when the output supports colors.
var UseColor = true

// NewHandler returns a new text [slog.Handler] writing to w that
// filters by [UserLevel] and colors the level names with termenv
// if [UseColor] is on and w supports colors. The time attribute is
// dropped; mesh tools log short-lived, interactive sessions.
func NewHandler(w io.Writer) slog.Handler {
	out := termenv.NewOutput(w)
	color := UseColor && out.ColorProfile() != termenv.Ascii
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: userLeveler{},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.LevelKey:
				if color {
					if lvl, ok := a.Value.Any().(slog.Level); ok {
						a.Value = slog.StringValue(colorLevel(out, lvl))
					}
				}
			}
			return a
		},
	})
}

// SetDefaultLogger sets the default logger to one writing to
// [os.Stderr] through [NewHandler].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}

func colorLevel(out *termenv.Output, lvl slog.Level) string {
	s := out.String(lvl.String())
	switch {
	case lvl >= slog.LevelError:
		s = s.Foreground(termenv.ANSIRed).Bold()
	case lvl >= slog.LevelWarn:
		s = s.Foreground(termenv.ANSIYellow)
	case lvl >= slog.LevelInfo:
		s = s.Foreground(termenv.ANSIBlue)
	default:
		s = s.Foreground(termenv.ANSIBrightBlack)
	}
	return s.String()
}
