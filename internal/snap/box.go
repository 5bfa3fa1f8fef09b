/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import "vecdraw/internal/vector"

// Box is an axis-aligned candidate or moving bounding box. ID is optional.
type Box struct {
	ID   string  `json:"id,omitempty"`
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

func BoxFromRect(r vector.Rect) Box {
	return Box{MinX: r.X, MinY: r.Y, MaxX: r.X + r.W, MaxY: r.Y + r.H}
}

func (b Box) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }
func (b Box) CenterY() float64 { return (b.MinY + b.MaxY) / 2 }
func (b Box) Width() float64   { return b.MaxX - b.MinX }
func (b Box) Height() float64  { return b.MaxY - b.MinY }

func (b Box) Rect() vector.Rect {
	return vector.Rect{X: b.MinX, Y: b.MinY, W: b.Width(), H: b.Height()}
}

// ProjectedBounds is where a box would land after moving by (dx, dy).
func ProjectedBounds(b Box, dx, dy float64) Box {
	return Box{ID: b.ID, MinX: b.MinX + dx, MinY: b.MinY + dy, MaxX: b.MaxX + dx, MaxY: b.MaxY + dy}
}

// ShapeBox is the candidate box of a shape; path shapes use their stored
// bounds, so callers owning a kernel should refresh those first.
func ShapeBox(s vector.Shape) Box {
	b := BoxFromRect(vector.Bounds(s))
	b.ID = s.Base().ID
	return b
}

// CandidatePoints lists the exact points other shapes can snap onto.
func CandidatePoints(s vector.Shape) []vector.Pt {
	switch v := s.(type) {
	case *vector.RectShape:
		return []vector.Pt{
			{X: v.X, Y: v.Y},
			{X: v.X + v.W, Y: v.Y},
			{X: v.X + v.W, Y: v.Y + v.H},
			{X: v.X, Y: v.Y + v.H},
		}
	case *vector.LineShape:
		return []vector.Pt{{X: v.X1, Y: v.Y1}, {X: v.X2, Y: v.Y2}}
	case *vector.PathShape:
		b := v.Bounds
		return []vector.Pt{
			{X: b.X, Y: b.Y},
			{X: b.X + b.W, Y: b.Y},
			{X: b.X + b.W, Y: b.Y + b.H},
			{X: b.X, Y: b.Y + b.H},
		}
	case *vector.EllipseShape:
		return []vector.Pt{
			{X: v.CX, Y: v.CY},
			{X: v.CX, Y: v.CY - v.RY},
			{X: v.CX + v.RX, Y: v.CY},
			{X: v.CX, Y: v.CY + v.RY},
			{X: v.CX - v.RX, Y: v.CY},
		}
	case *vector.PolygonShape:
		return append([]vector.Pt(nil), v.Points...)
	case *vector.PolylineShape:
		return append([]vector.Pt(nil), v.Points...)
	case *vector.TextShape, *vector.ImageShape, *vector.GroupShape:
		return nil
	}
	return nil
}
