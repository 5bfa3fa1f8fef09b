/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tessellate

import (
	"sort"

	"vecdraw/internal/vector"
)

// Triangulate ear-clips p into a triangle list (three points per triangle).
// Holes are first bridged into the outer ring, rightmost hole first, which
// turns the polygon into a single weakly simple ring. ok is false when
// clipping stalled on degenerate input and the remainder was fanned.
func Triangulate(p Polygon) (tris []vector.Pt, ok bool) {
	ring := orient(open(p.Outer), true)
	if len(ring) < 3 {
		return nil, true
	}
	holes := make([][]vector.Pt, 0, len(p.Holes))
	for _, h := range p.Holes {
		if o := open(h); len(o) >= 3 {
			holes = append(holes, orient(o, false))
		}
	}
	sort.SliceStable(holes, func(i, j int) bool { return maxX(holes[i]) > maxX(holes[j]) })
	for i, h := range holes {
		ring = bridge(ring, h, holes[i+1:])
	}
	return earClip(ring)
}

func maxX(pts []vector.Pt) float64 {
	m := pts[0].X
	for _, p := range pts[1:] {
		m = max(m, p.X)
	}
	return m
}

// bridge splices hole into ring through the closest vertex of ring that is
// visible from the hole's rightmost vertex.
func bridge(ring, hole []vector.Pt, rest [][]vector.Pt) []vector.Pt {
	m := 0
	for i, p := range hole {
		if p.X > hole[m].X || (p.X == hole[m].X && p.Y > hole[m].Y) {
			m = i
		}
	}
	M := hole[m]

	order := make([]int, len(ring))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return M.Dist(ring[order[a]]) < M.Dist(ring[order[b]])
	})

	vi := order[0]
	for _, cand := range order {
		if visible(M, ring[cand], ring, hole, rest) {
			vi = cand
			break
		}
	}
	V := ring[vi]

	out := make([]vector.Pt, 0, len(ring)+len(hole)+2)
	out = append(out, ring[:vi+1]...)
	out = append(out, hole[m:]...)
	out = append(out, hole[:m]...)
	out = append(out, M, V)
	out = append(out, ring[vi+1:]...)
	return out
}

// visible reports whether the segment a-b crosses no edge of any of the
// given rings and runs through the filled region.
func visible(a, b vector.Pt, ring, hole []vector.Pt, rest [][]vector.Pt) bool {
	if a == b {
		return true
	}
	all := append([][]vector.Pt{ring, hole}, rest...)
	for _, r := range all {
		for i := range r {
			q1, q2 := r[i], r[(i+1)%len(r)]
			if q1 != a && q1 != b && onSegment(q1, a, b) {
				return false
			}
			if q1 == a || q1 == b || q2 == a || q2 == b {
				continue
			}
			if segmentsCross(a, b, q1, q2) {
				return false
			}
		}
	}
	mid := vector.Pt{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	if !pointInRing(mid, ring) || pointInRing(mid, hole) {
		return false
	}
	for _, r := range rest {
		if pointInRing(mid, r) {
			return false
		}
	}
	return true
}

func cross(a, b, c vector.Pt) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func segmentsCross(p1, p2, q1, q2 vector.Pt) bool {
	d1 := cross(q1, q2, p1)
	d2 := cross(q1, q2, p2)
	d3 := cross(p1, p2, q1)
	d4 := cross(p1, p2, q2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func pointInTri(p, a, b, c vector.Pt) bool {
	d1 := cross(a, b, p)
	d2 := cross(b, c, p)
	d3 := cross(c, a, p)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// earClip triangulates a counter-clockwise ring.
func earClip(pts []vector.Pt) ([]vector.Pt, bool) {
	V := make([]int, len(pts))
	for i := range V {
		V[i] = i
	}
	var out []vector.Pt
	at := func(k int) vector.Pt { return pts[V[(k+len(V))%len(V)]] }

	i := 0
	stalled := 0
	for len(V) > 3 {
		if stalled >= len(V) {
			// no ear in a full lap: drop a degenerate vertex, or give up
			if k := degenerate(V, at); k >= 0 {
				V = append(V[:k], V[k+1:]...)
				stalled = 0
				continue
			}
			a := at(0)
			for k := 1; k+1 < len(V); k++ {
				out = append(out, a, at(k), at(k+1))
			}
			return out, false
		}
		i %= len(V)
		a, b, c := at(i-1), at(i), at(i+1)
		if isEar(V, i, a, b, c, at) {
			out = append(out, a, b, c)
			V = append(V[:i], V[i+1:]...)
			stalled = 0
			continue
		}
		i++
		stalled++
	}
	if len(V) == 3 && cross(at(0), at(1), at(2)) != 0 {
		out = append(out, at(0), at(1), at(2))
	}
	return out, true
}

func isEar(V []int, i int, a, b, c vector.Pt, at func(int) vector.Pt) bool {
	if cross(a, b, c) <= 0 {
		return false
	}
	for k := range V {
		if k == i || (k+1)%len(V) == i || (i+1)%len(V) == k {
			continue
		}
		p := at(k)
		if p == a || p == b || p == c {
			continue
		}
		// only reflex vertices can sit inside an ear
		if cross(at(k-1), p, at(k+1)) > 0 {
			continue
		}
		if pointInTri(p, a, b, c) {
			return false
		}
	}
	return true
}

// degenerate returns the index of a vertex with collinear or coincident
// neighbours, or -1.
func degenerate(V []int, at func(int) vector.Pt) int {
	for k := range V {
		a, b, c := at(k-1), at(k), at(k+1)
		if a == b || b == c || cross(a, b, c) == 0 {
			return k
		}
	}
	return -1
}
