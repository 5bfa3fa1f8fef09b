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
	"sort"

	polyclip "github.com/ctessum/polyclip-go"

	"vecdraw/internal/vector"
)

// Polygon is an outer ring with zero or more holes. Rings are open (the
// first point is not repeated). Outer rings wind counter-clockwise in y-up
// space and holes clockwise.
type Polygon struct {
	Outer []vector.Pt
	Holes [][]vector.Pt
}

// PolygonUnion resolves a set of closed rings, which may overlap each other
// or nest, into non-overlapping polygons with holes.
type PolygonUnion interface {
	Union(rings [][]vector.Pt) []Polygon
}

// minArea is the area below which a ring is treated as empty.
const minArea = 1e-9

// Nest assigns rings to polygons by even-odd containment depth: a ring
// inside an even number of other rings is an outer boundary, a ring inside
// an odd number is a hole of its innermost container.
func Nest(rings [][]vector.Pt) []Polygon {
	type item struct {
		pts    []vector.Pt
		area   float64
		depth  int
		parent int
	}
	items := make([]item, 0, len(rings))
	for _, r := range rings {
		o := open(r)
		if len(o) < 3 {
			continue
		}
		a := signedArea(o)
		if math.Abs(a) < minArea {
			continue
		}
		items = append(items, item{pts: o, area: math.Abs(a), parent: -1})
	}
	// larger rings first so a parent always precedes its children
	sort.SliceStable(items, func(i, j int) bool { return items[i].area > items[j].area })

	for i := range items {
		for j := 0; j < i; j++ {
			if ringInside(items[i].pts, items[j].pts) {
				items[i].depth++
				if items[i].parent < 0 || items[j].depth >= items[items[i].parent].depth {
					items[i].parent = j
				}
			}
		}
	}

	var polys []Polygon
	index := make(map[int]int)
	for i, it := range items {
		if it.depth%2 == 0 {
			index[i] = len(polys)
			polys = append(polys, Polygon{Outer: orient(it.pts, true)})
		}
	}
	for _, it := range items {
		if it.depth%2 == 0 {
			continue
		}
		if pi, ok := index[it.parent]; ok {
			polys[pi].Holes = append(polys[pi].Holes, orient(it.pts, false))
		}
	}
	return polys
}

func orient(pts []vector.Pt, ccw bool) []vector.Pt {
	if (signedArea(pts) > 0) != ccw {
		return reversed(pts)
	}
	return pts
}

// NestingUnion only classifies rings into outers and holes. It suits input
// that is already free of overlaps, such as glyph outlines.
type NestingUnion struct{}

func (NestingUnion) Union(rings [][]vector.Pt) []Polygon { return Nest(rings) }

// PolyclipUnion resolves self-intersections in every ring, then combines
// the rings with a planar boolean union. Rings are layered by how many other
// rings fully contain them: even layers are added and odd layers cut out, so
// overlapping sub-paths fill once while nested sub-paths still leave holes.
type PolyclipUnion struct{}

func (PolyclipUnion) Union(rings [][]vector.Pt) []Polygon {
	var acc polyclip.Polygon
	for depth, layer := range containmentLayers(rings) {
		var merged polyclip.Polygon
		for _, r := range layer {
			merged = unionInto(merged, polyclip.Polygon{toContour(r)}.MakeValid())
		}
		if depth%2 == 0 {
			acc = unionInto(acc, merged)
		} else if len(acc) > 0 && len(merged) > 0 {
			acc = acc.Construct(polyclip.DIFFERENCE, merged)
		}
	}
	contours := make([][]vector.Pt, 0, len(acc))
	for _, c := range acc {
		ring := make([]vector.Pt, len(c))
		for i, p := range c {
			ring[i] = vector.Pt{X: p.X, Y: p.Y}
		}
		contours = append(contours, ring)
	}
	return Nest(contours)
}

func unionInto(acc, p polyclip.Polygon) polyclip.Polygon {
	switch {
	case len(p) == 0:
		return acc
	case len(acc) == 0:
		return p
	}
	return acc.Construct(polyclip.UNION, p)
}

// containmentLayers groups open rings by the number of larger rings that
// fully contain them. Area filtering is left to the caller so that rings
// with no net signed area, such as a bowtie, still reach the union.
func containmentLayers(rings [][]vector.Pt) [][][]vector.Pt {
	pts := make([][]vector.Pt, 0, len(rings))
	for _, r := range rings {
		if o := open(r); len(o) >= 3 {
			pts = append(pts, o)
		}
	}
	var layers [][][]vector.Pt
	for i, r := range pts {
		depth := 0
		for j, other := range pts {
			if i != j && extent(other) > extent(r) && ringInside(r, other) {
				depth++
			}
		}
		for len(layers) <= depth {
			layers = append(layers, nil)
		}
		layers[depth] = append(layers[depth], r)
	}
	return layers
}

// extent is the area of the ring's bounding box. Unlike the signed area it
// stays positive for self-intersecting rings.
func extent(pts []vector.Pt) float64 {
	r, _ := vector.RectFromPoints(pts)
	return r.W * r.H
}

func toContour(pts []vector.Pt) polyclip.Contour {
	c := make(polyclip.Contour, len(pts))
	for i, p := range pts {
		c[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return c
}
