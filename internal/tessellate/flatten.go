/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package tessellate turns normalized path commands into GPU-ready vertex
// buffers: segment pairs for strokes and triangle lists for fills.
package tessellate

import (
	"math"

	"vecdraw/internal/vector"
)

// DefaultSegments is the number of line segments per curve when the caller
// has no better estimate.
const DefaultSegments = 16

// MaxSegments caps StrokeSegments.
const MaxSegments = 64

// FlattenCubic evaluates the cubic p0,c1,c2,p1 at n+1 evenly spaced
// parameters in Bernstein form. Both endpoints are included exactly.
func FlattenCubic(p0, c1, c2, p1 vector.Pt, n int) []vector.Pt {
	if n < 1 {
		n = 1
	}
	out := make([]vector.Pt, n+1)
	for i := 0; i <= n; i++ {
		out[i] = cubicAt(p0, c1, c2, p1, float64(i)/float64(n))
	}
	out[0], out[n] = p0, p1
	return out
}

// FlattenQuadratic evaluates the quadratic p0,c,p1 at n+1 evenly spaced
// parameters.
func FlattenQuadratic(p0, c, p1 vector.Pt, n int) []vector.Pt {
	if n < 1 {
		n = 1
	}
	out := make([]vector.Pt, n+1)
	for i := 0; i <= n; i++ {
		out[i] = quadAt(p0, c, p1, float64(i)/float64(n))
	}
	out[0], out[n] = p0, p1
	return out
}

// StrokeSegments picks a per-curve segment count for a stroke of the given
// width: wide strokes show faceting sooner, so they get more segments.
func StrokeSegments(width float64) int {
	if math.IsNaN(width) || width <= 4 {
		return DefaultSegments
	}
	n := DefaultSegments + int(math.Ceil((width-4)/2))*4
	if n > MaxSegments {
		return MaxSegments
	}
	return n
}

func cubicAt(p0, p1, p2, p3 vector.Pt, t float64) vector.Pt {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return vector.Pt{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

func quadAt(p0, p1, p2 vector.Pt, t float64) vector.Pt {
	mt := 1 - t
	a := mt * mt
	b := 2 * mt * t
	c := t * t
	return vector.Pt{
		X: a*p0.X + b*p1.X + c*p2.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y,
	}
}

// Polyline flattens cmds into one point list per sub-path, in order. Curves
// contribute n points each after their start.
func Polyline(cmds []vector.PathCmd, n int) [][]vector.Pt {
	var out [][]vector.Pt
	var cur []vector.Pt
	var pen vector.Pt
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
	}
	for _, c := range cmds {
		switch c.Op {
		case vector.MoveTo:
			flush()
			pen = vector.Pt{X: c.Data[0], Y: c.Data[1]}
			cur = append(cur, pen)
		case vector.LineTo:
			pen = vector.Pt{X: c.Data[0], Y: c.Data[1]}
			cur = append(cur, pen)
		case vector.QuadTo:
			pts := FlattenQuadratic(pen, vector.Pt{X: c.Data[0], Y: c.Data[1]}, vector.Pt{X: c.Data[2], Y: c.Data[3]}, n)
			cur = append(cur, pts[1:]...)
			pen = pts[len(pts)-1]
		case vector.CubicTo:
			pts := FlattenCubic(pen, vector.Pt{X: c.Data[0], Y: c.Data[1]}, vector.Pt{X: c.Data[2], Y: c.Data[3]}, vector.Pt{X: c.Data[4], Y: c.Data[5]}, n)
			cur = append(cur, pts[1:]...)
			pen = pts[len(pts)-1]
		case vector.Close:
		}
	}
	flush()
	return out
}
