/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package glyph

import (
	"vecdraw/internal/typeid"
	"vecdraw/internal/vector"
)

// Layout places every rune of text on one baseline starting at x. Pair
// kerning is applied between consecutive glyphs. Blank glyphs are kept so
// callers can see their advances.
func Layout(f *Font, text string, x, baseline, size float64) ([]Glyph, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Glyph
	pen := x
	var prev rune
	for i, r := range []rune(text) {
		gi := f.index(r)
		if i > 0 {
			pen += f.kern(f.index(prev), gi, size)
		}
		g, err := f.outline(r, gi, pen, baseline, size)
		if err != nil {
			return out, err
		}
		out = append(out, g)
		pen += g.Advance
		prev = r
	}
	return out, nil
}

// TextToPaths converts text into one path shape per visible glyph, wrapped
// in a group.
func TextToPaths(f *Font, text string, x, y, size float64) (*vector.GroupShape, error) {
	glyphs, err := Layout(f, text, x, y, size)
	if err != nil {
		return nil, err
	}
	g := &vector.GroupShape{Common: vector.Common{ID: typeid.NewGroupID(), Name: text, Opacity: 1}}
	for _, gl := range glyphs {
		if gl.Blank() {
			continue
		}
		g.Children = append(g.Children, &vector.PathShape{
			Common: vector.Common{
				ID:      typeid.NewShapeID(),
				Name:    string(gl.Rune),
				Opacity: 1,
				Fill:    vector.Fill{Color: vector.Black, Opacity: 1, Enabled: true},
			},
			D:      gl.D,
			Bounds: gl.Ink,
		})
	}
	return g, nil
}

// ConvertText outlines a text shape. The glyph paths inherit the paint of
// t; the group takes its name, rotation and opacity.
func ConvertText(f *Font, t *vector.TextShape) (*vector.GroupShape, error) {
	g, err := TextToPaths(f, t.Text, t.X, t.Y, t.FontSize)
	if err != nil {
		return nil, err
	}
	g.Name = t.Name + " (Outlined)"
	g.Rotation = t.Rotation
	g.Opacity = t.Opacity
	for _, c := range g.Children {
		b := c.Base()
		if t.Fill.Enabled {
			b.Fill = t.Fill
		}
		b.Stroke = t.Stroke
		b.Opacity = t.Opacity
	}
	return g, nil
}

// TextBounds is the union of the glyph ink boxes. Text without ink reports
// a zero-size box at the origin and ok=false.
func TextBounds(f *Font, text string, x, y, size float64) (r vector.Rect, ok bool) {
	glyphs, err := Layout(f, text, x, y, size)
	if err != nil {
		return vector.Rect{X: x, Y: y}, false
	}
	var inks []vector.Rect
	for _, g := range glyphs {
		if !g.Blank() {
			inks = append(inks, g.Ink)
		}
	}
	if r, ok = vector.UnionAll(inks); !ok {
		return vector.Rect{X: x, Y: y}, false
	}
	return r, true
}

// MeasureInk stores the ink box of t relative to its anchor so bounds
// queries no longer fall back to the size estimate.
func MeasureInk(f *Font, t *vector.TextShape) {
	r, ok := TextBounds(f, t.Text, t.X, t.Y, t.FontSize)
	if !ok {
		t.Ink = nil
		return
	}
	t.Ink = &vector.Rect{X: r.X - t.X, Y: r.Y - t.Y, W: r.W, H: r.H}
}
