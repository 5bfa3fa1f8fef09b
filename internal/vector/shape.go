/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Shape is a closed set of drawable scene elements. Every function that
// branches on the concrete kind uses an exhaustive type switch over the
// variants below; adding a kind means extending those switches.

import "math"

type Kind string

const (
	KindRect     Kind = "rect"
	KindEllipse  Kind = "ellipse"
	KindLine     Kind = "line"
	KindPath     Kind = "path"
	KindPolygon  Kind = "polygon"
	KindPolyline Kind = "polyline"
	KindText     Kind = "text"
	KindImage    Kind = "image"
	KindGroup    Kind = "group"
)

// Common carries the attributes every shape kind shares.
type Common struct {
	ID           string
	Name         string
	Rotation     float64 // radians about the bounds center
	Opacity      float64
	Fill         Fill
	Stroke       Stroke
	Hidden       bool
	Locked       bool
	AspectLocked bool
}

type Shape interface {
	Kind() Kind
	Base() *Common
	sealed()
}

type RectShape struct {
	Common
	X, Y, W, H float64
	RX, RY     float64 // corner radii
}

type EllipseShape struct {
	Common
	CX, CY, RX, RY float64
}

type LineShape struct {
	Common
	X1, Y1, X2, Y2 float64
}

// PathShape stores its geometry as a path description. Bounds is the last
// known extent of the rendered geometry and is refreshed by the kernel.
type PathShape struct {
	Common
	D      string
	Bounds Rect
}

type PolygonShape struct {
	Common
	Points []Pt
}

type PolylineShape struct {
	Common
	Points []Pt
}

// TextShape anchors text at a baseline origin. Ink, when set, is the glyph
// ink box relative to (X, Y).
type TextShape struct {
	Common
	X, Y       float64
	Text       string
	FontSize   float64
	FontFamily string
	Ink        *Rect
}

type ImageShape struct {
	Common
	X, Y, W, H float64
	Href       string
}

// GroupShape owns its children. A group has no geometry of its own.
type GroupShape struct {
	Common
	Children []Shape
}

func (s *RectShape) Kind() Kind     { return KindRect }
func (s *EllipseShape) Kind() Kind  { return KindEllipse }
func (s *LineShape) Kind() Kind     { return KindLine }
func (s *PathShape) Kind() Kind     { return KindPath }
func (s *PolygonShape) Kind() Kind  { return KindPolygon }
func (s *PolylineShape) Kind() Kind { return KindPolyline }
func (s *TextShape) Kind() Kind     { return KindText }
func (s *ImageShape) Kind() Kind    { return KindImage }
func (s *GroupShape) Kind() Kind    { return KindGroup }

func (c *Common) Base() *Common { return c }
func (c *Common) sealed()       {}

// Bounds returns the axis-aligned, unrotated bounding box of s.
// Path shapes report their stored bounds; callers that own a tessellation
// cache should prefer the tessellated extents.
func Bounds(s Shape) Rect {
	switch v := s.(type) {
	case *RectShape:
		return Rect{X: v.X, Y: v.Y, W: v.W, H: v.H}.Normalize()
	case *EllipseShape:
		return Rect{X: v.CX - v.RX, Y: v.CY - v.RY, W: 2 * v.RX, H: 2 * v.RY}.Normalize()
	case *LineShape:
		r, _ := RectFromPoints([]Pt{{v.X1, v.Y1}, {v.X2, v.Y2}})
		return r
	case *PathShape:
		return v.Bounds.Normalize()
	case *PolygonShape:
		r, _ := RectFromPoints(v.Points)
		return r
	case *PolylineShape:
		r, _ := RectFromPoints(v.Points)
		return r
	case *TextShape:
		return TextBounds(v)
	case *ImageShape:
		return Rect{X: v.X, Y: v.Y, W: v.W, H: v.H}.Normalize()
	case *GroupShape:
		return GroupBounds(v, Bounds)
	}
	return Rect{}
}

// GroupBounds unions the bounds of every child using boundsOf. An empty
// group has zero bounds.
func GroupBounds(g *GroupShape, boundsOf func(Shape) Rect) Rect {
	rs := make([]Rect, 0, len(g.Children))
	for _, c := range g.Children {
		if cg, ok := c.(*GroupShape); ok && len(cg.Children) == 0 {
			continue
		}
		rs = append(rs, boundsOf(c))
	}
	r, _ := UnionAll(rs)
	return r
}

// TextBounds uses the ink box when known and otherwise a size-based estimate.
func TextBounds(t *TextShape) Rect {
	if t.Ink != nil {
		return Rect{X: t.X + t.Ink.X, Y: t.Y + t.Ink.Y, W: t.Ink.W, H: t.Ink.H}.Normalize()
	}
	n := float64(len([]rune(t.Text)))
	return Rect{X: t.X, Y: t.Y - t.FontSize, W: n * t.FontSize * 0.6, H: t.FontSize * 1.2}.Normalize()
}

// Center returns the rotation pivot of s. Ellipses pivot on their own
// center; every other kind pivots on its bounds center.
func Center(s Shape) Pt {
	if e, ok := s.(*EllipseShape); ok {
		return Pt{e.CX, e.CY}
	}
	return Bounds(s).Center()
}

// Transform is the editable position, size and rotation of a shape as shown
// to the user.
type Transform struct {
	X, Y, W, H float64
	Rotation   float64
}

// ElementTransform reports s as x/y/w/h/rotation. Lines report their
// midpoint, length and direction instead of a box.
func ElementTransform(s Shape) Transform {
	if l, ok := s.(*LineShape); ok {
		dx, dy := l.X2-l.X1, l.Y2-l.Y1
		return Transform{
			X:        (l.X1 + l.X2) / 2,
			Y:        (l.Y1 + l.Y2) / 2,
			W:        math.Hypot(dx, dy),
			H:        0,
			Rotation: math.Atan2(dy, dx),
		}
	}
	b := Bounds(s)
	return Transform{X: b.X, Y: b.Y, W: b.W, H: b.H, Rotation: s.Base().Rotation}
}

// RotatedBoundsOf pairs the bounds of s with its rotation.
func RotatedBoundsOf(s Shape) RotatedBounds {
	if _, ok := s.(*LineShape); ok {
		return RotatedBounds{Rect: Bounds(s)}
	}
	return RotatedBounds{Rect: Bounds(s), Rotation: s.Base().Rotation}
}

// Flatten expands groups depth-first and returns the leaf shapes in order.
func Flatten(shapes []Shape) []Shape {
	var out []Shape
	for _, s := range shapes {
		if g, ok := s.(*GroupShape); ok {
			out = append(out, Flatten(g.Children)...)
			continue
		}
		out = append(out, s)
	}
	return out
}

// DescendantIDs returns the ids of shapes and of everything nested below them.
func DescendantIDs(shapes []Shape) map[string]struct{} {
	ids := make(map[string]struct{})
	var walk func([]Shape)
	walk = func(list []Shape) {
		for _, s := range list {
			ids[s.Base().ID] = struct{}{}
			if g, ok := s.(*GroupShape); ok {
				walk(g.Children)
			}
		}
	}
	walk(shapes)
	return ids
}

// Find looks up a shape by id anywhere in the tree.
func Find(shapes []Shape, id string) Shape {
	for _, s := range shapes {
		if s.Base().ID == id {
			return s
		}
		if g, ok := s.(*GroupShape); ok {
			if hit := Find(g.Children, id); hit != nil {
				return hit
			}
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func Clone(s Shape) Shape {
	switch v := s.(type) {
	case *RectShape:
		c := *v
		return &c
	case *EllipseShape:
		c := *v
		return &c
	case *LineShape:
		c := *v
		return &c
	case *PathShape:
		c := *v
		return &c
	case *PolygonShape:
		c := *v
		c.Points = append([]Pt(nil), v.Points...)
		return &c
	case *PolylineShape:
		c := *v
		c.Points = append([]Pt(nil), v.Points...)
		return &c
	case *TextShape:
		c := *v
		if v.Ink != nil {
			ink := *v.Ink
			c.Ink = &ink
		}
		return &c
	case *ImageShape:
		c := *v
		return &c
	case *GroupShape:
		c := *v
		c.Children = make([]Shape, len(v.Children))
		for i, ch := range v.Children {
			c.Children[i] = Clone(ch)
		}
		return &c
	}
	return nil
}
