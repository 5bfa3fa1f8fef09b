/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package kernel

import (
	"math"

	"vecdraw/internal/pathdata"
	"vecdraw/internal/vector"
)

// MoveShape translates s in place. Groups move their children.
func (k *Kernel) MoveShape(s vector.Shape, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	switch v := s.(type) {
	case *vector.RectShape:
		v.X, v.Y = v.X+dx, v.Y+dy
	case *vector.EllipseShape:
		v.CX, v.CY = v.CX+dx, v.CY+dy
	case *vector.LineShape:
		v.X1, v.Y1 = v.X1+dx, v.Y1+dy
		v.X2, v.Y2 = v.X2+dx, v.Y2+dy
	case *vector.PathShape:
		v.D = pathdata.Stringify(pathdata.TranslatePath(k.Parse(v.D), dx, dy))
		v.Bounds = v.Bounds.Translate(dx, dy)
	case *vector.PolygonShape:
		movePoints(v.Points, dx, dy)
	case *vector.PolylineShape:
		movePoints(v.Points, dx, dy)
	case *vector.TextShape:
		v.X, v.Y = v.X+dx, v.Y+dy
	case *vector.ImageShape:
		v.X, v.Y = v.X+dx, v.Y+dy
	case *vector.GroupShape:
		for _, c := range v.Children {
			k.MoveShape(c, dx, dy)
		}
	}
}

func movePoints(pts []vector.Pt, dx, dy float64) {
	for i := range pts {
		pts[i].X += dx
		pts[i].Y += dy
	}
}

// ResizeShape maps s in place so that the box from lands on to. Groups
// apply the same mapping to every descendant.
func (k *Kernel) ResizeShape(s vector.Shape, from, to vector.Rect) {
	from, to = from.Normalize(), to.Normalize()
	m := vector.MapRect(from, to)
	sx, sy := 1.0, 1.0
	if from.W != 0 {
		sx = to.W / from.W
	}
	if from.H != 0 {
		sy = to.H / from.H
	}
	k.resize(s, m, sx, sy)
}

func (k *Kernel) resize(s vector.Shape, m vector.Affine2D, sx, sy float64) {
	mapBox := func(x, y, w, h float64) vector.Rect {
		a := m.Apply(vector.Pt{X: x, Y: y})
		b := m.Apply(vector.Pt{X: x + w, Y: y + h})
		r, _ := vector.RectFromPoints([]vector.Pt{a, b})
		return r
	}
	switch v := s.(type) {
	case *vector.RectShape:
		r := mapBox(v.X, v.Y, v.W, v.H)
		v.X, v.Y, v.W, v.H = r.X, r.Y, r.W, r.H
		v.RX, v.RY = v.RX*math.Abs(sx), v.RY*math.Abs(sy)
	case *vector.EllipseShape:
		c := m.Apply(vector.Pt{X: v.CX, Y: v.CY})
		v.CX, v.CY = c.X, c.Y
		v.RX, v.RY = v.RX*math.Abs(sx), v.RY*math.Abs(sy)
	case *vector.LineShape:
		a := m.Apply(vector.Pt{X: v.X1, Y: v.Y1})
		b := m.Apply(vector.Pt{X: v.X2, Y: v.Y2})
		v.X1, v.Y1, v.X2, v.Y2 = a.X, a.Y, b.X, b.Y
	case *vector.PathShape:
		v.D = pathdata.Stringify(vector.TransformPath(k.Parse(v.D), m))
		b := v.Bounds.Normalize()
		v.Bounds = mapBox(b.X, b.Y, b.W, b.H)
	case *vector.PolygonShape:
		mapPoints(v.Points, m)
	case *vector.PolylineShape:
		mapPoints(v.Points, m)
	case *vector.TextShape:
		p := m.Apply(vector.Pt{X: v.X, Y: v.Y})
		v.X, v.Y = p.X, p.Y
		v.FontSize *= math.Abs(sy)
		if v.Ink != nil {
			ink := vector.Rect{X: v.Ink.X * sx, Y: v.Ink.Y * sy, W: v.Ink.W * sx, H: v.Ink.H * sy}.Normalize()
			v.Ink = &ink
		}
	case *vector.ImageShape:
		r := mapBox(v.X, v.Y, v.W, v.H)
		v.X, v.Y, v.W, v.H = r.X, r.Y, r.W, r.H
	case *vector.GroupShape:
		for _, c := range v.Children {
			k.resize(c, m, sx, sy)
		}
	}
}

func mapPoints(pts []vector.Pt, m vector.Affine2D) {
	for i, p := range pts {
		pts[i] = m.Apply(p)
	}
}

// RotateShape turns s about center by delta radians. Line endpoints rotate
// directly; every other kind moves its pivot around center and accumulates
// delta in its rotation. A group keeps rotation 0 and rotates its children.
func (k *Kernel) RotateShape(s vector.Shape, center vector.Pt, delta float64) {
	if delta == 0 || math.IsNaN(delta) {
		return
	}
	switch v := s.(type) {
	case *vector.LineShape:
		a := vector.RotateAround(vector.Pt{X: v.X1, Y: v.Y1}, center, delta)
		b := vector.RotateAround(vector.Pt{X: v.X2, Y: v.Y2}, center, delta)
		v.X1, v.Y1, v.X2, v.Y2 = a.X, a.Y, b.X, b.Y
	case *vector.GroupShape:
		for _, c := range v.Children {
			k.RotateShape(c, center, delta)
		}
	case *vector.RectShape, *vector.EllipseShape, *vector.PathShape, *vector.PolygonShape,
		*vector.PolylineShape, *vector.TextShape, *vector.ImageShape:
		pivot := k.pivot(s)
		moved := vector.RotateAround(pivot, center, delta)
		k.MoveShape(s, moved.X-pivot.X, moved.Y-pivot.Y)
		s.Base().Rotation += delta
	}
}

// pivot is vector.Center with tessellated path bounds.
func (k *Kernel) pivot(s vector.Shape) vector.Pt {
	if p, ok := s.(*vector.PathShape); ok {
		return k.PathBounds(p).Center()
	}
	return vector.Center(s)
}

// ResizeFromHandle applies a handle drag to s, honoring its rotation and
// aspect lock, and returns the new rotated bounds.
func (k *Kernel) ResizeFromHandle(s vector.Shape, h vector.Handle, sceneDelta vector.Pt) vector.RotatedBounds {
	rb := k.RotatedBounds(s)
	next := vector.ResizeRotated(rb, h, sceneDelta, s.Base().AspectLocked)
	k.ResizeShape(s, rb.Rect, next.Rect)
	return next
}
