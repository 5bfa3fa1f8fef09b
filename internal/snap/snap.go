/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import (
	"math"
	"sort"
	"strconv"

	"vecdraw/internal/vector"
)

// Result is the correction to add to the proposed position.
type Result struct {
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Guides []Guide `json:"guides"`
}

// axisSnap is the best candidate found for one axis by one source.
type axisSnap struct {
	adjust float64
	dist   float64
	guides []Guide
}

// Compute snaps the projected moving box against candidate boxes and points.
// Ties go to the first candidate in iteration order, so callers must pass
// candidates in a stable order.
func Compute(moving Box, boxes []Box, points []vector.Pt, opts Options) Result {
	t := opts.Threshold()
	res := Result{}

	if opts.SnapToGrid {
		res.DX, res.DY = gridSnap(moving, opts.gridSize(), t)
	}

	if opts.SnapToObjects && len(boxes) > 0 {
		ax, ay := alignmentSnaps(moving, boxes, t)
		sx, sy := spacingSnaps(moving, boxes, t)
		res.DX, res.Guides = merge(ax, sx, t, res.DX, res.Guides)
		res.DY, res.Guides = merge(ay, sy, t, res.DY, res.Guides)
	}

	if opts.SnapToGeometry && len(points) > 0 {
		dx, dy, g := geometrySnap(moving, points, t)
		if dx != 0 || dy != 0 {
			res.DX, res.DY = dx, dy
			res.Guides = append(res.Guides, g...)
		}
	}
	return res
}

// merge prefers alignment unless spacing is strictly closer. Spacing carries
// its own wider gate and is not checked against the threshold again.
func merge(align, space axisSnap, t, cur float64, guides []Guide) (float64, []Guide) {
	if align.dist <= space.dist {
		if align.dist < t {
			return align.adjust, append(guides, align.guides...)
		}
		return cur, guides
	}
	return space.adjust, append(guides, space.guides...)
}

func gridSnap(b Box, size, t float64) (dx, dy float64) {
	left := roundHalfUp(b.MinX/size) * size
	top := roundHalfUp(b.MinY/size) * size
	if math.Abs(left-b.MinX) < t {
		dx = left - b.MinX
	}
	if math.Abs(top-b.MinY) < t {
		dy = top - b.MinY
	}
	return dx, dy
}

func alignmentSnaps(m Box, boxes []Box, t float64) (bx, by axisSnap) {
	bx = axisSnap{dist: t}
	by = axisSnap{dist: t}
	cx, cy := m.CenterX(), m.CenterY()
	myX := [3]float64{m.MinX, cx, m.MaxX}
	myY := [3]float64{m.MinY, cy, m.MaxY}

	for _, b := range boxes {
		targetsX := [3]float64{b.MinX, b.CenterX(), b.MaxX}
		targetsY := [3]float64{b.MinY, b.CenterY(), b.MaxY}

		for i, v := range myX {
			for _, tx := range targetsX {
				d := tx - v
				if math.Abs(d) >= bx.dist {
					continue
				}
				g := []Guide{alignmentX(tx, math.Min(m.MinY, b.MinY), math.Max(m.MaxY, b.MaxY))}
				if i == 1 {
					g = append(g, center(vector.Pt{X: tx, Y: cy + d}))
				}
				bx = axisSnap{adjust: d, dist: math.Abs(d), guides: g}
			}
		}

		for i, v := range myY {
			for _, ty := range targetsY {
				d := ty - v
				if math.Abs(d) >= by.dist {
					continue
				}
				g := []Guide{alignmentY(ty, math.Min(m.MinX, b.MinX), math.Max(m.MaxX, b.MaxX))}
				if i == 1 {
					// the marker follows the x correction chosen so far
					g = append(g, center(vector.Pt{X: cx + bx.adjust, Y: ty}))
				}
				by = axisSnap{adjust: d, dist: math.Abs(d), guides: g}
			}
		}
	}
	return bx, by
}

func spacingSnaps(m Box, boxes []Box, t float64) (bx, by axisSnap) {
	bx = axisSnap{dist: 2 * t}
	by = axisSnap{dist: 2 * t}

	var inRow []Box
	for _, c := range boxes {
		if c.MaxY > m.MinY && c.MinY < m.MaxY {
			inRow = append(inRow, c)
		}
	}
	sort.SliceStable(inRow, func(i, j int) bool { return inRow[i].MinX < inRow[j].MinX })
	if left, right, ok := neighbors(inRow, m.MinX, m.MaxX, func(b Box) (float64, float64) { return b.MinX, b.MaxX }); ok {
		gap := (right.MinX - left.MaxX - m.Width()) / 2
		target := left.MaxX + gap
		d := target - m.MinX
		if math.Abs(d) < 2*t {
			y := m.CenterY()
			label := gapLabel(gap)
			bx = axisSnap{adjust: d, dist: math.Abs(d), guides: []Guide{
				spacing(vector.Pt{X: left.MaxX, Y: y}, vector.Pt{X: target, Y: y}, label),
				spacing(vector.Pt{X: target + m.Width(), Y: y}, vector.Pt{X: right.MinX, Y: y}, label),
			}}
		}
	}

	var inCol []Box
	for _, c := range boxes {
		if c.MaxX > m.MinX && c.MinX < m.MaxX {
			inCol = append(inCol, c)
		}
	}
	sort.SliceStable(inCol, func(i, j int) bool { return inCol[i].MinY < inCol[j].MinY })
	if top, bottom, ok := neighbors(inCol, m.MinY, m.MaxY, func(b Box) (float64, float64) { return b.MinY, b.MaxY }); ok {
		gap := (bottom.MinY - top.MaxY - m.Height()) / 2
		target := top.MaxY + gap
		d := target - m.MinY
		if math.Abs(d) < 2*t {
			x := m.CenterX()
			label := gapLabel(gap)
			by = axisSnap{adjust: d, dist: math.Abs(d), guides: []Guide{
				spacing(vector.Pt{X: x, Y: top.MaxY}, vector.Pt{X: x, Y: target}, label),
				spacing(vector.Pt{X: x, Y: target + m.Height()}, vector.Pt{X: x, Y: bottom.MinY}, label),
			}}
		}
	}
	return bx, by
}

// neighbors scans boxes sorted by their min edge on one axis. The before
// neighbor is the last box ending before lo, the after neighbor the first
// box starting past hi.
func neighbors(sorted []Box, lo, hi float64, extent func(Box) (float64, float64)) (before, after Box, ok bool) {
	var haveBefore, haveAfter bool
	for _, c := range sorted {
		cmin, cmax := extent(c)
		if cmax < lo {
			before, haveBefore = c, true
		}
		if cmin > hi {
			after, haveAfter = c, true
			break
		}
	}
	return before, after, haveBefore && haveAfter
}

func geometrySnap(m Box, points []vector.Pt, t float64) (dx, dy float64, guides []Guide) {
	mine := [5]vector.Pt{
		{X: m.MinX, Y: m.MinY},
		{X: m.MaxX, Y: m.MinY},
		{X: m.MaxX, Y: m.MaxY},
		{X: m.MinX, Y: m.MaxY},
		{X: m.CenterX(), Y: m.CenterY()},
	}
	best := t
	var hit *vector.Pt
	for _, p := range mine {
		for i := range points {
			ddx, ddy := points[i].X-p.X, points[i].Y-p.Y
			if d := math.Hypot(ddx, ddy); d < best {
				best, dx, dy, hit = d, ddx, ddy, &points[i]
			}
		}
	}
	if hit != nil {
		guides = []Guide{center(*hit)}
	}
	return dx, dy, guides
}

func roundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }

func gapLabel(gap float64) string {
	r := roundHalfUp(gap)
	if r == 0 {
		r = 0 // no "-0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
