/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render turns a scene into the draw calls a rasterizing backend
// consumes: tessellated vertex buffers plus the transform and paint
// uniforms for each visible leaf shape.
package render

import (
	"vecdraw/internal/glyph"
	"vecdraw/internal/gradient"
	"vecdraw/internal/kernel"
	"vecdraw/internal/pathdata"
	"vecdraw/internal/tessellate"
	"vecdraw/internal/vector"
)

// DrawCall is everything needed to draw one shape. Vertex buffers hold
// (x, y) pairs in the shape's native space; the backend adds Offset and then
// rotates by Rotation about Center. Fill is a triangle list and Stroke a
// list of segment pairs. Colors are straight RGB with alpha already scaled
// by element, ancestor and paint opacity.
type DrawCall struct {
	ID   string
	Kind vector.Kind

	Fill   []float32
	Stroke []float32
	// UV holds one (u, v) pair per fill vertex when FillGradient is set.
	UV []float32

	Offset   vector.Pt
	Rotation float64
	Center   vector.Pt
	Bounds   vector.Rect

	FillColor    [4]float32
	FillGradient *gradient.Uniforms
	StrokeColor  [4]float32
	StrokeWidth  float64

	Href string
}

type Builder struct {
	Kernel    *kernel.Kernel
	Gradients map[string]*gradient.Gradient
	// Fonts resolves text families; nil uses Go Regular for everything.
	Fonts *glyph.FontLibrary
}

// Build returns the draw calls for shapes in paint order.
func Build(k *kernel.Kernel, shapes []vector.Shape, gradients map[string]*gradient.Gradient) []DrawCall {
	b := Builder{Kernel: k, Gradients: gradients}
	return b.Build(shapes)
}

func (b *Builder) Build(shapes []vector.Shape) []DrawCall {
	var out []DrawCall
	for _, s := range shapes {
		out = b.appendShape(out, s, 1)
	}
	return out
}

func (b *Builder) appendShape(out []DrawCall, s vector.Shape, parentOpacity float64) []DrawCall {
	c := s.Base()
	if c.Hidden {
		return out
	}
	opacity := parentOpacity * vector.EffectiveOpacity(c.Opacity)
	if g, ok := s.(*vector.GroupShape); ok {
		for _, child := range g.Children {
			out = b.appendShape(out, child, opacity)
		}
		return out
	}
	dc, ok := b.drawCall(s, opacity)
	if !ok {
		return out
	}
	return append(out, dc)
}

func (b *Builder) drawCall(s vector.Shape, opacity float64) (DrawCall, bool) {
	c := s.Base()
	dc := DrawCall{ID: c.ID, Kind: s.Kind(), Rotation: c.Rotation}
	var e *tessellate.Entry
	switch v := s.(type) {
	case *vector.PathShape:
		e = b.Kernel.Geometry(v)
		dc.Offset = b.Kernel.RenderOffset(v)
		dc.Bounds = v.Bounds.Normalize()
	case *vector.TextShape:
		cmds, ink, ok := b.textPath(v)
		if !ok {
			return dc, false
		}
		e = b.synth(c, cmds, ink)
		dc.Bounds = ink
	default:
		cmds, ok := ShapePath(s)
		if !ok {
			return dc, false
		}
		e = b.synth(c, cmds, vector.Bounds(s))
		dc.Bounds = vector.Bounds(s)
	}
	switch v := s.(type) {
	case *vector.EllipseShape:
		dc.Center = vector.Pt{X: v.CX, Y: v.CY}
	case *vector.LineShape:
		dc.Rotation = 0
		dc.Center = dc.Bounds.Center()
	case *vector.ImageShape:
		dc.Href = v.Href
		dc.Center = dc.Bounds.Center()
	default:
		dc.Center = dc.Bounds.Center()
	}

	if _, isLine := s.(*vector.LineShape); c.Fill.Enabled && !isLine && len(e.Fill) >= 6 {
		dc.Fill = e.Fill
		fo := vector.EffectiveOpacity(c.Fill.Opacity) * opacity
		if g := b.Gradients[c.Fill.Gradient]; c.Fill.Gradient != "" && g != nil {
			u := gradient.Pack(g, fo)
			dc.FillGradient = &u
			dc.UV = UVs(e.Fill)
		} else {
			dc.FillColor = paint(c.Fill.Color, fo)
		}
	}
	if c.Stroke.Enabled && len(e.Stroke) >= 4 {
		dc.Stroke = e.Stroke
		dc.StrokeWidth = c.Stroke.Width
		color := c.Stroke.Color
		if g := b.Gradients[c.Stroke.Gradient]; c.Stroke.Gradient != "" && g != nil && len(g.Stops) > 0 {
			color = gradient.MustColor(gradient.SortStops(g.Stops)[0].Color)
		}
		dc.StrokeColor = paint(color, vector.EffectiveOpacity(c.Stroke.Opacity)*opacity)
	}
	if dc.Fill == nil && dc.Stroke == nil {
		return dc, false
	}
	return dc, true
}

// synth tessellates generated scene-space geometry through the kernel
// cache, keyed by the shape id like any stored path.
func (b *Builder) synth(c *vector.Common, cmds []vector.PathCmd, bounds vector.Rect) *tessellate.Entry {
	p := &vector.PathShape{
		Common: vector.Common{ID: c.ID, Stroke: c.Stroke},
		D:      pathdata.Stringify(cmds),
		Bounds: bounds,
	}
	return b.Kernel.Geometry(p)
}

func (b *Builder) textPath(t *vector.TextShape) ([]vector.PathCmd, vector.Rect, bool) {
	f := b.Fonts.Lookup(t.FontFamily)
	glyphs, err := glyph.Layout(f, t.Text, t.X, t.Y, t.FontSize)
	if err != nil {
		return nil, vector.Rect{}, false
	}
	var cmds []vector.PathCmd
	var inks []vector.Rect
	for _, g := range glyphs {
		if g.Blank() {
			continue
		}
		cmds = append(cmds, g.Cmds...)
		inks = append(inks, g.Ink)
	}
	ink, ok := vector.UnionAll(inks)
	return cmds, ink, ok
}

func paint(c vector.Color, opacity float64) [4]float32 {
	f := c.Floats()
	f[3] *= float32(opacity)
	return f
}

// UVs maps every vertex into the unit square of the vertex bounds. A zero
// extent on an axis maps to 0.
func UVs(vertices []float32) []float32 {
	r, ok := tessellate.Bounds(vertices)
	if !ok {
		return nil
	}
	out := make([]float32, len(vertices))
	for i := 0; i+1 < len(vertices); i += 2 {
		if r.W > 0 {
			out[i] = float32((float64(vertices[i]) - r.X) / r.W)
		}
		if r.H > 0 {
			out[i+1] = float32((float64(vertices[i+1]) - r.Y) / r.H)
		}
	}
	return out
}
