/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package kernel

import (
	"math"
	"testing"

	applog "vecdraw/internal/log"
	"vecdraw/internal/pathdata"
	"vecdraw/internal/snap"
	"vecdraw/internal/tessellate"
	"vecdraw/internal/vector"
)

func newKernel() *Kernel { return New(Options{Logger: applog.Discard()}) }

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func nearRect(a, b vector.Rect) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.W, b.W) && near(a.H, b.H)
}

func TestParseKeepsPrefix(t *testing.T) {
	cmds := newKernel().Parse("M0 0 L10 0 L5")
	if len(cmds) != 2 {
		t.Fatalf("want the 2 valid commands, got %d", len(cmds))
	}
}

func TestUnionByName(t *testing.T) {
	for name, want := range map[string]tessellate.PolygonUnion{
		"":         tessellate.PolyclipUnion{},
		"Polyclip": tessellate.PolyclipUnion{},
		"nesting":  tessellate.NestingUnion{},
	} {
		got, err := UnionByName(name)
		if err != nil || got != want {
			t.Fatalf("UnionByName(%q) = %T, %v", name, got, err)
		}
	}
	if _, err := UnionByName("martinez"); err == nil {
		t.Fatalf("unknown strategy accepted")
	}
}

func TestGeometryCache(t *testing.T) {
	k := newKernel()
	p := &vector.PathShape{Common: vector.Common{ID: "p"}, D: "M0 0 L10 0 L10 10 Z"}
	first := k.Geometry(p)
	if k.Geometry(p) != first {
		t.Fatalf("second lookup should hit the cache")
	}
	p.D = "M0 0 L20 0 L20 20 Z"
	if k.Geometry(p) == first {
		t.Fatalf("changed description must rebuild")
	}
	p.Stroke.Width = 12
	if e := k.Geometry(p); e.StrokeSegments != tessellate.StrokeSegments(12) {
		t.Fatalf("thick stroke should raise the segment count, got %d", e.StrokeSegments)
	}
	// one hit for the repeated lookup; the description and stroke changes miss
	s := k.Stats()
	if s.Hits != 1 || s.Misses != 3 || s.Len != 1 {
		t.Fatalf("unexpected stats %+v", s)
	}
	k.Evict("p")
	k.Clear()
	if k.Stats().Len != 0 {
		t.Fatalf("cache not cleared")
	}
}

func TestPathBounds(t *testing.T) {
	k := newKernel()
	fill := &vector.PathShape{D: "M0 0 L10 0 L10 10 Z"}
	if r := k.Bounds(fill); !nearRect(r, vector.R(0, 0, 10, 10)) {
		t.Fatalf("fill bounds %+v", r)
	}
	line := &vector.PathShape{D: "M0 0 L10 5"}
	if r := k.Bounds(line); !nearRect(r, vector.R(0, 0, 10, 5)) {
		t.Fatalf("stroke bounds %+v", r)
	}
	empty := &vector.PathShape{D: "", Bounds: vector.R(1, 2, 3, 4)}
	if r := k.Bounds(empty); r != vector.R(1, 2, 3, 4) {
		t.Fatalf("stored bounds %+v", r)
	}
}

func TestGroupBoundsUseTessellation(t *testing.T) {
	k := newKernel()
	g := &vector.GroupShape{Children: []vector.Shape{
		&vector.RectShape{X: 0, Y: 0, W: 10, H: 10},
		// stored bounds are stale on purpose
		&vector.PathShape{D: "M20 20 L30 20 L30 30 Z", Bounds: vector.R(0, 0, 1, 1)},
	}}
	if r := k.Bounds(g); !nearRect(r, vector.R(0, 0, 30, 30)) {
		t.Fatalf("group bounds %+v", r)
	}
	k.RefreshBounds([]vector.Shape{g})
	if p := g.Children[1].(*vector.PathShape); !nearRect(p.Bounds, vector.R(20, 20, 10, 10)) {
		t.Fatalf("bounds not refreshed: %+v", p.Bounds)
	}
}

func TestRenderOffset(t *testing.T) {
	p := &vector.PathShape{D: "M0 0 L10 0 L10 10 Z", Bounds: vector.R(5, 7, 10, 10)}
	if off := newKernel().RenderOffset(p); off != (vector.Pt{X: 5, Y: 7}) {
		t.Fatalf("offset %+v", off)
	}
}

func TestPointsBounds(t *testing.T) {
	k := newKernel()
	tri := []pathdata.EditablePoint{{X: 0, Y: 0, Start: true}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	if r := k.PointsBounds(tri); !nearRect(r, vector.R(0, 0, 10, 10)) {
		t.Fatalf("triangle bounds %+v", r)
	}
	seg := []pathdata.EditablePoint{{X: 0, Y: 0, Start: true}, {X: 10, Y: 5}}
	if r := k.PointsBounds(seg); !nearRect(r, vector.R(0, 0, 10, 5)) {
		t.Fatalf("segment bounds %+v", r)
	}
	one := []pathdata.EditablePoint{{X: 3, Y: 4, Start: true}}
	if r := k.PointsBounds(one); r != vector.R(3, 4, 0, 0) {
		t.Fatalf("single anchor bounds %+v", r)
	}
}

func TestMoveShape(t *testing.T) {
	k := newKernel()
	p := &vector.PathShape{D: "M0 0 L10 0 L10 10 Z", Bounds: vector.R(0, 0, 10, 10)}
	g := &vector.GroupShape{Children: []vector.Shape{p, &vector.LineShape{X2: 1, Y2: 1}}}
	k.MoveShape(g, 5, 5)
	if p.D != "M 5 5 L 15 5 L 15 15 Z" || p.Bounds != vector.R(5, 5, 10, 10) {
		t.Fatalf("path not moved: %q %+v", p.D, p.Bounds)
	}
	l := g.Children[1].(*vector.LineShape)
	if l.X1 != 5 || l.Y2 != 6 {
		t.Fatalf("line not moved: %+v", l)
	}
}

func TestResizeGroup(t *testing.T) {
	k := newKernel()
	r := &vector.RectShape{W: 10, H: 10}
	e := &vector.EllipseShape{CX: 15, CY: 5, RX: 5, RY: 5}
	g := &vector.GroupShape{Children: []vector.Shape{r, e}}
	k.ResizeShape(g, k.Bounds(g), vector.R(0, 0, 40, 20))
	if !nearRect(vector.R(r.X, r.Y, r.W, r.H), vector.R(0, 0, 20, 20)) {
		t.Fatalf("rect %+v", r)
	}
	if !near(e.CX, 30) || !near(e.CY, 10) || !near(e.RX, 10) || !near(e.RY, 10) {
		t.Fatalf("ellipse %+v", e)
	}
	if b := k.Bounds(g); !nearRect(b, vector.R(0, 0, 40, 20)) {
		t.Fatalf("group bounds after resize %+v", b)
	}
}

func TestResizeFromHandle(t *testing.T) {
	k := newKernel()
	r := &vector.RectShape{W: 10, H: 10}
	k.ResizeFromHandle(r, vector.HandleSE, vector.Pt{X: 5, Y: 5})
	if r.W != 15 || r.H != 15 || r.X != 0 || r.Y != 0 {
		t.Fatalf("rect %+v", r)
	}
	p := &vector.PathShape{D: "M0 0 L10 0 L10 10 L0 10 Z"}
	k.ResizeFromHandle(p, vector.HandleE, vector.Pt{X: 10})
	if b := k.Bounds(p); !nearRect(b, vector.R(0, 0, 20, 10)) {
		t.Fatalf("path bounds after resize %+v (%q)", b, p.D)
	}
}

func TestRotateLine(t *testing.T) {
	l := &vector.LineShape{X1: 0, Y1: 0, X2: 10, Y2: 0}
	newKernel().RotateShape(l, vector.Pt{X: 5}, math.Pi/2)
	if !near(l.X1, 5) || !near(l.Y1, -5) || !near(l.X2, 5) || !near(l.Y2, 5) {
		t.Fatalf("line %+v", l)
	}
	if l.Rotation != 0 {
		t.Fatalf("lines carry their angle in the endpoints")
	}
}

func TestRotateAboutExternalCenter(t *testing.T) {
	k := newKernel()
	r := &vector.RectShape{W: 10, H: 10}
	g := &vector.GroupShape{Children: []vector.Shape{r}}
	k.RotateShape(g, vector.Pt{}, math.Pi)
	if !near(r.X, -10) || !near(r.Y, -10) || !near(r.Rotation, math.Pi) {
		t.Fatalf("rect %+v", r)
	}
	if g.Rotation != 0 {
		t.Fatalf("group rotation should stay 0, got %v", g.Rotation)
	}
}

func TestShapeAt(t *testing.T) {
	k := newKernel()
	bottom := &vector.RectShape{Common: vector.Common{ID: "bottom"}, W: 20, H: 20}
	top := &vector.RectShape{Common: vector.Common{ID: "top"}, X: 10, Y: 10, W: 20, H: 20}
	hidden := &vector.RectShape{Common: vector.Common{ID: "hidden", Hidden: true}, W: 100, H: 100}
	shapes := []vector.Shape{bottom, top, hidden}
	if s := k.ShapeAt(shapes, vector.Pt{X: 15, Y: 15}); s != top {
		t.Fatalf("want top, got %v", s)
	}
	if s := k.ShapeAt(shapes, vector.Pt{X: 5, Y: 5}); s != bottom {
		t.Fatalf("want bottom, got %v", s)
	}
	if s := k.ShapeAt(shapes, vector.Pt{X: 90, Y: 90}); s != nil {
		t.Fatalf("hidden shapes are not hit")
	}
	diamond := &vector.RectShape{Common: vector.Common{Rotation: math.Pi / 4}, X: 100, Y: 100, W: 10, H: 10}
	if s := k.ShapeAt([]vector.Shape{diamond}, vector.Pt{X: 100.5, Y: 100.5}); s != nil {
		t.Fatalf("corner of a rotated box should miss")
	}
}

func TestSnapMove(t *testing.T) {
	k := newKernel()
	shapes := []vector.Shape{
		&vector.RectShape{Common: vector.Common{ID: "a"}, W: 10, H: 10},
		&vector.RectShape{Common: vector.Common{ID: "b"}, X: 14, W: 10, H: 10},
	}
	res, ok := k.SnapMove(shapes, "a", 2, 0, snap.Options{SnapToObjects: true})
	if !ok {
		t.Fatalf("shape not found")
	}
	if res.DX != 2 || res.DY != 0 {
		t.Fatalf("want (2,0), got (%v,%v)", res.DX, res.DY)
	}
	if _, ok := k.SnapMove(shapes, "missing", 0, 0, snap.Options{}); ok {
		t.Fatalf("missing id should report false")
	}
}

func TestSnapMoveIgnoresOwnGroup(t *testing.T) {
	k := newKernel()
	shapes := []vector.Shape{
		&vector.GroupShape{Common: vector.Common{ID: "g"}, Children: []vector.Shape{
			&vector.RectShape{Common: vector.Common{ID: "a"}, W: 10, H: 10},
		}},
		&vector.RectShape{Common: vector.Common{ID: "b"}, X: 500, Y: 500, W: 10, H: 10},
	}
	opts := snap.Options{SnapToObjects: true, SnapToGeometry: true}
	res, ok := k.SnapMove(shapes, "a", 2, 2, opts)
	if !ok {
		t.Fatalf("shape not found")
	}
	if res.DX != 0 || res.DY != 0 || len(res.Guides) != 0 {
		t.Fatalf("shape snapped onto itself: %+v", res)
	}
}

func TestSnapCandidatesSkipAncestors(t *testing.T) {
	k := newKernel()
	shapes := []vector.Shape{
		&vector.GroupShape{Common: vector.Common{ID: "g"}, Children: []vector.Shape{
			&vector.RectShape{Common: vector.Common{ID: "a"}, W: 10, H: 10},
			&vector.RectShape{Common: vector.Common{ID: "c"}, X: 20, W: 10, H: 10},
		}},
	}
	boxes, points := k.SnapCandidates(shapes, vector.DescendantIDs([]vector.Shape{vector.Find(shapes, "a")}))
	if len(boxes) != 1 || boxes[0].ID != "c" {
		t.Fatalf("want only the sibling box, got %+v", boxes)
	}
	for _, p := range points {
		if p.X < 20 {
			t.Fatalf("point %+v belongs to the dragged shape", p)
		}
	}
}
