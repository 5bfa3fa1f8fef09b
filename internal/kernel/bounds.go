/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package kernel

import (
	"vecdraw/internal/pathdata"
	"vecdraw/internal/tessellate"
	"vecdraw/internal/vector"
)

// Bounds is vector.Bounds with path extents taken from the tessellated
// geometry: fill triangles first, then stroke segments, then the stored box.
func (k *Kernel) Bounds(s vector.Shape) vector.Rect {
	switch v := s.(type) {
	case *vector.PathShape:
		return k.PathBounds(v)
	case *vector.GroupShape:
		return vector.GroupBounds(v, k.Bounds)
	case *vector.RectShape, *vector.EllipseShape, *vector.LineShape, *vector.PolygonShape,
		*vector.PolylineShape, *vector.TextShape, *vector.ImageShape:
		return vector.Bounds(s)
	}
	return vector.Rect{}
}

func (k *Kernel) PathBounds(p *vector.PathShape) vector.Rect {
	e := k.Geometry(p)
	if r, ok := tessellate.Bounds(e.Fill); ok {
		return r
	}
	if r, ok := tessellate.Bounds(e.Stroke); ok {
		return r
	}
	return p.Bounds.Normalize()
}

// RefreshBounds stores the tessellated extents on every path in shapes,
// descending into groups.
func (k *Kernel) RefreshBounds(shapes []vector.Shape) {
	for _, s := range vector.Flatten(shapes) {
		if p, ok := s.(*vector.PathShape); ok {
			p.Bounds = k.PathBounds(p)
		}
	}
}

// RotatedBounds pairs Bounds with the shape's rotation.
func (k *Kernel) RotatedBounds(s vector.Shape) vector.RotatedBounds {
	rb := vector.RotatedBoundsOf(s)
	rb.Rect = k.Bounds(s)
	return rb
}

// PointsBounds measures anchors being edited, before they are committed as a
// description. Lines without area fall back to stroke extents, and a lone
// anchor to the anchors themselves.
func (k *Kernel) PointsBounds(points []pathdata.EditablePoint) vector.Rect {
	if len(points) == 0 {
		return vector.Rect{}
	}
	cmds := k.Parse(pathdata.FromEditable(points))
	if r, ok := tessellate.Bounds(k.tess.Fill(cmds)); ok {
		return r
	}
	if r, ok := tessellate.Bounds(tessellate.StrokeVertices(cmds, 2)); ok {
		return r
	}
	return pathdata.AnchorBounds(points)
}

// ShapeAt returns the top-level shape under p, testing from the top of the
// stacking order down. Groups are hit through any of their children.
func (k *Kernel) ShapeAt(shapes []vector.Shape, p vector.Pt) vector.Shape {
	for i := len(shapes) - 1; i >= 0; i-- {
		if k.hit(shapes[i], p) {
			return shapes[i]
		}
	}
	return nil
}

func (k *Kernel) hit(s vector.Shape, p vector.Pt) bool {
	if s.Base().Hidden {
		return false
	}
	if g, ok := s.(*vector.GroupShape); ok {
		for i := len(g.Children) - 1; i >= 0; i-- {
			if k.hit(g.Children[i], p) {
				return true
			}
		}
		return false
	}
	return vector.HitRotated(k.RotatedBounds(s), p)
}
