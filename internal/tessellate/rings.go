/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tessellate

import (
	"math"

	"vecdraw/internal/vector"
)

// closeEps is how far apart the first and last point of a ring may be
// before an explicit closing point is appended.
const closeEps = 1e-3

// Rings flattens cmds into closed rings, one per MoveTo. Rings with fewer
// than three distinct points are dropped. Each ring ends with a copy of its
// first point.
func Rings(cmds []vector.PathCmd, n int) [][]vector.Pt {
	var out [][]vector.Pt
	for _, r := range Polyline(cmds, n) {
		first, last := r[0], r[len(r)-1]
		if math.Abs(first.X-last.X) > closeEps || math.Abs(first.Y-last.Y) > closeEps {
			r = append(r, first)
		}
		if distinctAtLeast(r, 3) {
			out = append(out, r)
		}
	}
	return out
}

func distinctAtLeast(r []vector.Pt, k int) bool {
	seen := make([]vector.Pt, 0, k)
outer:
	for _, p := range r {
		for _, s := range seen {
			if s == p {
				continue outer
			}
		}
		seen = append(seen, p)
		if len(seen) >= k {
			return true
		}
	}
	return false
}

// open drops the closing duplicate of a ring and any consecutive repeats.
func open(r []vector.Pt) []vector.Pt {
	out := make([]vector.Pt, 0, len(r))
	for _, p := range r {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// signedArea is positive for counter-clockwise rings in y-up space.
func signedArea(pts []vector.Pt) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a * 0.5
}

func reversed(pts []vector.Pt) []vector.Pt {
	out := make([]vector.Pt, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// pointInRing is an even-odd ray cast.
func pointInRing(p vector.Pt, ring []vector.Pt) bool {
	in := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func onSegment(p, a, b vector.Pt) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > 1e-9*math.Max(1, math.Abs(b.X-a.X)+math.Abs(b.Y-a.Y)) {
		return false
	}
	return p.X >= math.Min(a.X, b.X)-1e-9 && p.X <= math.Max(a.X, b.X)+1e-9 &&
		p.Y >= math.Min(a.Y, b.Y)-1e-9 && p.Y <= math.Max(a.Y, b.Y)+1e-9
}

func onBoundary(p vector.Pt, ring []vector.Pt) bool {
	for i := range ring {
		if onSegment(p, ring[i], ring[(i+1)%len(ring)]) {
			return true
		}
	}
	return false
}

// ringInside reports whether every vertex of inner that is off the boundary
// of outer lies inside it. A ring lying wholly on the boundary is not inside.
func ringInside(inner, outer []vector.Pt) bool {
	inside := false
	for _, p := range inner {
		if onBoundary(p, outer) {
			continue
		}
		if !pointInRing(p, outer) {
			return false
		}
		inside = true
	}
	return inside
}
