/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes rendered scenes to PNG, SVG and PDF. Every exporter
// consumes the same draw calls a GPU backend would, so files match what the
// canvas shows.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"vecdraw/internal/render"
	"vecdraw/internal/vector"
)

// Options controls the output frame.
//   - Viewport: scene rectangle to export; zero fits all draw calls.
//   - Padding: scene units added around a fitted viewport.
//   - Scale: output pixels per scene unit for PNG and the SVG width and
//     height attributes; 0 means 1. PDF pages are always one point per unit.
//   - Background: painted under the scene unless fully transparent.
type Options struct {
	Viewport   vector.Rect
	Padding    float64
	Scale      float64
	Background vector.Color
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

// Frame resolves the exported scene rectangle.
func Frame(calls []render.DrawCall, opt Options) vector.Rect {
	if opt.Viewport.W > 0 && opt.Viewport.H > 0 {
		return opt.Viewport
	}
	var rs []vector.Rect
	for i := range calls {
		if r, ok := sceneBounds(&calls[i]); ok {
			rs = append(rs, r)
		}
	}
	r, ok := vector.UnionAll(rs)
	if !ok {
		return vector.Rect{W: 1, H: 1}
	}
	r = r.Inset(-opt.Padding, -opt.Padding)
	if r.W <= 0 {
		r.W = 1
	}
	if r.H <= 0 {
		r.H = 1
	}
	return r
}

// scenePoint maps a native vertex of dc into scene space.
func scenePoint(dc *render.DrawCall, x, y float32) vector.Pt {
	p := vector.Pt{X: float64(x) + dc.Offset.X, Y: float64(y) + dc.Offset.Y}
	if dc.Rotation == 0 {
		return p
	}
	return vector.RotateAround(p, dc.Center, dc.Rotation)
}

func sceneBounds(dc *render.DrawCall) (vector.Rect, bool) {
	var pts []vector.Pt
	for _, buf := range [][]float32{dc.Fill, dc.Stroke} {
		for i := 0; i+1 < len(buf); i += 2 {
			pts = append(pts, scenePoint(dc, buf[i], buf[i+1]))
		}
	}
	r, ok := vector.RectFromPoints(pts)
	if ok && dc.StrokeWidth > 0 && len(dc.Stroke) > 0 {
		r = r.Inset(-dc.StrokeWidth/2, -dc.StrokeWidth/2)
	}
	return r, ok
}

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")); f {
	case FormatPNG, FormatSVG, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", filepath.Ext(path))
	}
}

// Write encodes calls in format f.
func Write(w io.Writer, f Format, calls []render.DrawCall, opt Options) error {
	switch f {
	case FormatPNG:
		return PNG(w, calls, opt)
	case FormatSVG:
		return SVG(w, calls, opt)
	case FormatPDF:
		return PDF(w, calls, opt)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// WriteFile exports to path, creating parent directories. The format
// follows the extension.
func WriteFile(path string, calls []render.DrawCall, opt Options) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", f, err)
	}
	if err := Write(out, f, calls, opt); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", f, err)
	}
	return nil
}
