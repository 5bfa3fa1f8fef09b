/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Selection handles, rotated boxes and the math that turns a handle drag into
// new bounds. Every function here is total: NaN and negative sizes are
// clamped instead of reported.

import (
	"math"
	"strings"
)

// MinSize is the smallest width or height a resize may produce.
const MinSize = 0.1

// RotationHandleOffset is the distance of the rotation handle above the
// top edge, in scene units.
const RotationHandleOffset = 24.0

// RotatedBounds is a box rotated by Rotation radians about its center.
type RotatedBounds struct {
	Rect
	Rotation float64
}

// Corners returns nw, ne, se, sw in scene coordinates.
func (rb RotatedBounds) Corners() [4]Pt { return RotatedCorners(rb.Rect, rb.Rotation) }

// AABB returns the axis-aligned box enclosing the rotated corners.
func (rb RotatedBounds) AABB() Rect {
	c := rb.Corners()
	r, _ := RectFromPoints(c[:])
	return r
}

// RotatedCorners rotates each corner of r about its center.
func RotatedCorners(r Rect, rotation float64) [4]Pt {
	r = r.Normalize()
	c := r.Center()
	corners := [4]Pt{
		{r.X, r.Y},
		{r.X + r.W, r.Y},
		{r.X + r.W, r.Y + r.H},
		{r.X, r.Y + r.H},
	}
	if rotation == 0 || math.IsNaN(rotation) {
		return corners
	}
	for i, p := range corners {
		corners[i] = RotateAround(p, c, rotation)
	}
	return corners
}

// RotateAround rotates p about center by delta radians.
func RotateAround(p, center Pt, delta float64) Pt {
	if math.IsNaN(delta) {
		return p
	}
	s, c := math.Sincos(delta)
	dx, dy := p.X-center.X, p.Y-center.Y
	return Pt{
		X: center.X + dx*c - dy*s,
		Y: center.Y + dx*s + dy*c,
	}
}

// Handle identifies a selection handle.
type Handle string

const (
	HandleN      Handle = "n"
	HandleNE     Handle = "ne"
	HandleE      Handle = "e"
	HandleSE     Handle = "se"
	HandleS      Handle = "s"
	HandleSW     Handle = "sw"
	HandleW      Handle = "w"
	HandleNW     Handle = "nw"
	HandleRotate Handle = "rotate"
)

// ResizeHandles lists the resize handles, corners first.
var ResizeHandles = []Handle{HandleNW, HandleNE, HandleSE, HandleSW, HandleN, HandleE, HandleS, HandleW}

func (h Handle) IsCorner() bool { return len(h) == 2 }

func (h Handle) valid() bool {
	switch h {
	case HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW, HandleNW:
		return true
	}
	return false
}

// local returns the handle position on the unrotated box.
func (h Handle) local(r Rect) Pt {
	x := r.X + r.W/2
	y := r.Y + r.H/2
	hs := string(h)
	if strings.Contains(hs, "w") {
		x = r.X
	} else if strings.Contains(hs, "e") {
		x = r.X + r.W
	}
	if strings.Contains(hs, "n") {
		y = r.Y
	} else if strings.Contains(hs, "s") {
		y = r.Y + r.H
	}
	if h == HandleRotate {
		return Pt{r.X + r.W/2, r.Y - RotationHandleOffset}
	}
	return Pt{x, y}
}

// opposite returns the handle that stays fixed while h is dragged.
func (h Handle) opposite() Handle {
	var b strings.Builder
	for _, ch := range string(h) {
		switch ch {
		case 'n':
			b.WriteByte('s')
		case 's':
			b.WriteByte('n')
		case 'e':
			b.WriteByte('w')
		case 'w':
			b.WriteByte('e')
		}
	}
	return Handle(b.String())
}

// HandlePoint is a handle and its scene position.
type HandlePoint struct {
	Handle Handle
	Pos    Pt
}

// HandlePositions returns the eight resize handles followed by the rotation
// handle, all rotated with the box.
func HandlePositions(rb RotatedBounds) []HandlePoint {
	r := rb.Rect.Normalize()
	c := r.Center()
	out := make([]HandlePoint, 0, len(ResizeHandles)+1)
	for _, h := range append(append([]Handle(nil), ResizeHandles...), HandleRotate) {
		out = append(out, HandlePoint{Handle: h, Pos: RotateAround(h.local(r), c, rb.Rotation)})
	}
	return out
}

// HitHandle returns the handle within tolerance of p. The point is mapped
// into the box's unrotated frame so the test is exact for rotated boxes.
// Corners win over edges; the rotation handle is tested last.
func HitHandle(rb RotatedBounds, p Pt, tolerance float64) (Handle, bool) {
	r := rb.Rect.Normalize()
	c := r.Center()
	q := RotateAround(p, c, -rb.Rotation)
	tol := math.Max(0, finite(tolerance))
	for _, h := range append(append([]Handle(nil), ResizeHandles...), HandleRotate) {
		hp := h.local(r)
		if math.Abs(q.X-hp.X) <= tol && math.Abs(q.Y-hp.Y) <= tol {
			return h, true
		}
	}
	return "", false
}

// HitRotated reports whether p lies inside the rotated box.
func HitRotated(rb RotatedBounds, p Pt) bool {
	r := rb.Rect.Normalize()
	return r.Contains(RotateAround(p, r.Center(), -rb.Rotation))
}

// ResizeFromHandle applies a pointer delta, in the box's own frame, to the
// edges controlled by h. The edges opposite the handle stay fixed. Sizes
// never drop below MinSize. With aspectLocked both axes scale by the ratio of
// whichever axis changed more.
func ResizeFromHandle(orig Rect, h Handle, delta Pt, aspectLocked bool) Rect {
	orig = orig.Normalize()
	if !h.valid() {
		return orig
	}
	dx, dy := finite(delta.X), finite(delta.Y)
	hs := string(h)

	w, hh := orig.W, orig.H
	switch {
	case strings.Contains(hs, "e"):
		w += dx
	case strings.Contains(hs, "w"):
		w -= dx
	}
	switch {
	case strings.Contains(hs, "s"):
		hh += dy
	case strings.Contains(hs, "n"):
		hh -= dy
	}
	w = math.Max(MinSize, w)
	hh = math.Max(MinSize, hh)

	if aspectLocked && orig.W > 0 && orig.H > 0 {
		sx, sy := w/orig.W, hh/orig.H
		var s float64
		switch h {
		case HandleE, HandleW:
			s = sx
		case HandleN, HandleS:
			s = sy
		default:
			if math.Abs(sx-1) >= math.Abs(sy-1) {
				s = sx
			} else {
				s = sy
			}
		}
		w = math.Max(MinSize, orig.W*s)
		hh = math.Max(MinSize, orig.H*s)
	}

	out := Rect{W: w, H: hh}
	switch {
	case strings.Contains(hs, "w"):
		out.X = orig.X + orig.W - w
	case strings.Contains(hs, "e"):
		out.X = orig.X
	default:
		out.X = orig.X + (orig.W-w)/2
	}
	switch {
	case strings.Contains(hs, "n"):
		out.Y = orig.Y + orig.H - hh
	case strings.Contains(hs, "s"):
		out.Y = orig.Y
	default:
		out.Y = orig.Y + (orig.H-hh)/2
	}
	return out
}

// ResizeRotated resizes a rotated box from a scene-space pointer delta. The
// handle opposite h keeps its scene position.
func ResizeRotated(rb RotatedBounds, h Handle, sceneDelta Pt, aspectLocked bool) RotatedBounds {
	orig := rb.Rect.Normalize()
	if !h.valid() {
		return RotatedBounds{Rect: orig, Rotation: rb.Rotation}
	}
	local := RotateAround(Pt{finite(sceneDelta.X), finite(sceneDelta.Y)}, Pt{}, -rb.Rotation)
	next := ResizeFromHandle(orig, h, local, aspectLocked)
	if rb.Rotation == 0 {
		return RotatedBounds{Rect: next}
	}
	anchor := h.opposite()
	before := RotateAround(anchor.local(orig), orig.Center(), rb.Rotation)
	after := RotateAround(anchor.local(next), next.Center(), rb.Rotation)
	return RotatedBounds{Rect: next.Translate(before.X-after.X, before.Y-after.Y), Rotation: rb.Rotation}
}

// RotationFromPointer returns the rotation that points the rotation handle
// of a box centered at center toward p.
func RotationFromPointer(center, p Pt) float64 {
	dx, dy := p.X-center.X, p.Y-center.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	return math.Atan2(dy, dx) + math.Pi/2
}
