/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

func ptNear(a, b Pt) bool { return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9 }

func TestRotatedCorners(t *testing.T) {
	c := RotatedCorners(R(0, 0, 10, 10), math.Pi/2)
	// a quarter turn about (5,5) moves nw to ne
	if !ptNear(c[0], Pt{10, 0}) || !ptNear(c[1], Pt{10, 10}) || !ptNear(c[2], Pt{0, 10}) || !ptNear(c[3], Pt{0, 0}) {
		t.Fatalf("unexpected corners: %+v", c)
	}
	flat := RotatedCorners(R(1, 2, 3, 4), 0)
	if flat[2] != (Pt{4, 6}) {
		t.Fatalf("unexpected unrotated se corner: %+v", flat[2])
	}
}

func TestRotateAround(t *testing.T) {
	p := RotateAround(Pt{2, 0}, Pt{1, 0}, math.Pi)
	if !ptNear(p, Pt{0, 0}) {
		t.Fatalf("unexpected rotation: %+v", p)
	}
	if q := RotateAround(Pt{3, 4}, Pt{}, math.NaN()); q != (Pt{3, 4}) {
		t.Fatalf("NaN angle should leave the point alone, got %+v", q)
	}
}

func TestResizeFromHandle_CornersAndEdges(t *testing.T) {
	orig := R(10, 10, 100, 50)
	cases := []struct {
		h     Handle
		delta Pt
		want  Rect
	}{
		{HandleSE, Pt{20, 10}, R(10, 10, 120, 60)},
		{HandleNW, Pt{20, 10}, R(30, 20, 80, 40)},
		{HandleE, Pt{-30, 99}, R(10, 10, 70, 50)},
		{HandleN, Pt{99, -10}, R(10, 0, 100, 60)},
		{HandleSW, Pt{-10, 5}, R(0, 10, 110, 55)},
		{HandleW, Pt{500, 0}, R(110-MinSize, 10, MinSize, 50)},
	}
	for _, tc := range cases {
		got := ResizeFromHandle(orig, tc.h, tc.delta, false)
		if !near(got.X, tc.want.X) || !near(got.Y, tc.want.Y) || !near(got.W, tc.want.W) || !near(got.H, tc.want.H) {
			t.Fatalf("%s: got %+v want %+v", tc.h, got, tc.want)
		}
	}
}

func TestResizeFromHandle_AspectLocked(t *testing.T) {
	orig := R(0, 0, 100, 50)
	got := ResizeFromHandle(orig, HandleSE, Pt{100, 10}, true)
	// x grew by 2x, y by 1.2x: x dominates
	if got != R(0, 0, 200, 100) {
		t.Fatalf("unexpected locked resize: %+v", got)
	}
	got = ResizeFromHandle(orig, HandleS, Pt{0, 50}, true)
	if got != R(-50, 0, 200, 100) {
		t.Fatalf("edge handle should keep the perpendicular center: %+v", got)
	}
}

func TestResizeFromHandle_BadInputIsClamped(t *testing.T) {
	got := ResizeFromHandle(Rect{X: math.NaN(), Y: 0, W: -10, H: 10}, HandleSE, Pt{math.NaN(), 5}, false)
	if got.X != 0 || got.W != MinSize || got.H != 15 {
		t.Fatalf("unexpected clamped resize: %+v", got)
	}
	if got := ResizeFromHandle(R(0, 0, 5, 5), Handle("bogus"), Pt{1, 1}, false); got != R(0, 0, 5, 5) {
		t.Fatalf("unknown handle should be a no-op: %+v", got)
	}
}

func TestResizeRotated_KeepsOppositeCorner(t *testing.T) {
	rb := RotatedBounds{Rect: R(0, 0, 100, 50), Rotation: math.Pi / 6}
	before := rb.Corners()[0] // nw stays put when dragging se
	out := ResizeRotated(rb, HandleSE, Pt{15, 25}, false)
	after := out.Corners()[0]
	if !ptNear(before, after) {
		t.Fatalf("anchor moved: %+v -> %+v", before, after)
	}
	if out.Rotation != rb.Rotation {
		t.Fatalf("rotation changed: %v", out.Rotation)
	}
}

func TestHandlesAndHitTesting(t *testing.T) {
	rb := RotatedBounds{Rect: R(0, 0, 100, 100), Rotation: math.Pi / 2}
	hs := HandlePositions(rb)
	if len(hs) != 9 || hs[8].Handle != HandleRotate {
		t.Fatalf("unexpected handle list: %+v", hs)
	}
	// the nw corner of a box turned a quarter about (50,50) lands at (100,0)
	if hs[0].Handle != HandleNW || !ptNear(hs[0].Pos, Pt{100, 0}) {
		t.Fatalf("unexpected nw handle: %+v", hs[0])
	}
	if h, ok := HitHandle(rb, Pt{101, 1}, 4); !ok || h != HandleNW {
		t.Fatalf("expected nw hit, got %v %v", h, ok)
	}
	if _, ok := HitHandle(rb, Pt{50, 50}, 4); ok {
		t.Fatalf("center should not hit any handle")
	}
	rot := hs[8].Pos
	if h, ok := HitHandle(rb, rot, 2); !ok || h != HandleRotate {
		t.Fatalf("expected rotation handle hit, got %v %v", h, ok)
	}
	if !HitRotated(rb, Pt{50, 50}) || HitRotated(rb, Pt{150, 50}) {
		t.Fatalf("unexpected body hit result")
	}
}

func TestRotationFromPointer(t *testing.T) {
	if got := RotationFromPointer(Pt{0, 0}, Pt{0, -10}); math.Abs(got) > 1e-12 {
		t.Fatalf("pointer straight above should mean no rotation, got %v", got)
	}
	if got := RotationFromPointer(Pt{0, 0}, Pt{10, 0}); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Fatalf("got %v", got)
	}
	if got := RotationFromPointer(Pt{1, 1}, Pt{1, 1}); got != 0 {
		t.Fatalf("coincident pointer should yield 0, got %v", got)
	}
}
