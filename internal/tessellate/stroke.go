/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tessellate

import "vecdraw/internal/vector"

// StrokeVertices flattens cmds into independent line segments, written as
// x0,y0,x1,y1 per segment. A Close adds the closing segment only when the pen
// is not already back at the sub-path start.
func StrokeVertices(cmds []vector.PathCmd, n int) []float32 {
	if n < 1 {
		n = 1
	}
	var out []float32
	seg := func(a, b vector.Pt) {
		out = append(out, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y))
	}
	var pen, start vector.Pt
	for _, c := range cmds {
		switch c.Op {
		case vector.MoveTo:
			pen = vector.Pt{X: c.Data[0], Y: c.Data[1]}
			start = pen
		case vector.LineTo:
			next := vector.Pt{X: c.Data[0], Y: c.Data[1]}
			seg(pen, next)
			pen = next
		case vector.QuadTo:
			pts := FlattenQuadratic(pen, vector.Pt{X: c.Data[0], Y: c.Data[1]}, vector.Pt{X: c.Data[2], Y: c.Data[3]}, n)
			for i := 1; i < len(pts); i++ {
				seg(pts[i-1], pts[i])
			}
			pen = pts[len(pts)-1]
		case vector.CubicTo:
			pts := FlattenCubic(pen, vector.Pt{X: c.Data[0], Y: c.Data[1]}, vector.Pt{X: c.Data[2], Y: c.Data[3]}, vector.Pt{X: c.Data[4], Y: c.Data[5]}, n)
			for i := 1; i < len(pts); i++ {
				seg(pts[i-1], pts[i])
			}
			pen = pts[len(pts)-1]
		case vector.Close:
			if pen != start {
				seg(pen, start)
			}
			pen = start
		}
	}
	return out
}

// Bounds returns the extent of a flat x,y vertex buffer.
func Bounds(vertices []float32) (vector.Rect, bool) {
	if len(vertices) < 2 {
		return vector.Rect{}, false
	}
	minX, minY := vertices[0], vertices[1]
	maxX, maxY := minX, minY
	for i := 2; i+1 < len(vertices); i += 2 {
		x, y := vertices[i], vertices[i+1]
		minX = min(minX, x)
		minY = min(minY, y)
		maxX = max(maxX, x)
		maxY = max(maxY, y)
	}
	return vector.Rect{X: float64(minX), Y: float64(minY), W: float64(maxX - minX), H: float64(maxY - minY)}, true
}
