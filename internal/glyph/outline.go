/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package glyph

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"vecdraw/internal/pathdata"
	"vecdraw/internal/vector"
)

// Glyph is one placed outline. Ink is the tight box of the outline curves;
// it is empty for blank glyphs such as spaces.
type Glyph struct {
	Rune    rune
	X       float64
	Advance float64
	Cmds    []vector.PathCmd
	D       string
	Ink     vector.Rect
}

func (g Glyph) Blank() bool { return len(g.Cmds) == 0 }

// Outline places rune r with its origin at (x, baseline) scaled to size.
func Outline(f *Font, r rune, x, baseline, size float64) (Glyph, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outline(r, f.index(r), x, baseline, size)
}

func (f *Font) outline(r rune, gi sfnt.GlyphIndex, x, baseline, size float64) (Glyph, error) {
	g := Glyph{Rune: r, X: x, Advance: f.advance(gi, size)}
	segs, err := f.sf.LoadGlyph(&f.buf, gi, ppem(size), nil)
	if err != nil {
		return g, err
	}
	pt := func(p fixed.Point26_6) (float64, float64) {
		return x + fromFixed(p.X), baseline + fromFixed(p.Y)
	}
	var p vector.Path
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			p.MoveTo(pt(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			p.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(s.Args[0])
			ex, ey := pt(s.Args[1])
			p.QuadTo(cx, cy, ex, ey)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(s.Args[0])
			c2x, c2y := pt(s.Args[1])
			ex, ey := pt(s.Args[2])
			p.CubicTo(c1x, c1y, c2x, c2y, ex, ey)
		}
	}
	if open {
		p.Close()
	}
	g.Cmds = p.Cmds
	if len(g.Cmds) > 0 {
		g.D = pathdata.Stringify(g.Cmds)
		g.Ink = pathdata.CurveBounds(g.Cmds)
	}
	return g, nil
}
