/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package glyph

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"vecdraw/internal/pathdata"
	"vecdraw/internal/tessellate"
	"vecdraw/internal/typeid"
	"vecdraw/internal/vector"
)

func closeRect(a, b vector.Rect, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.W-b.W) <= tol && math.Abs(a.H-b.H) <= tol
}

func TestOutlineSitsOnBaseline(t *testing.T) {
	g, err := Outline(Default(), 'H', 10, 200, 100)
	if err != nil {
		t.Fatalf("outline: %v", err)
	}
	if g.Blank() || g.D == "" {
		t.Fatal("H has no outline")
	}
	if bottom := g.Ink.Y + g.Ink.H; math.Abs(bottom-200) > 1 {
		t.Fatalf("ink bottom = %v, want baseline 200", bottom)
	}
	if g.Ink.H < 50 || g.Ink.H > 100 || g.Ink.X < 10 {
		t.Fatalf("unexpected ink box %+v", g.Ink)
	}
	if g.Advance <= g.Ink.W {
		t.Fatalf("advance %v not wider than ink %v", g.Advance, g.Ink.W)
	}
}

func TestTessellatedBoundsMatchInk(t *testing.T) {
	for _, r := range "Ho8" {
		g, err := Outline(Default(), r, 0, 100, 72)
		if err != nil {
			t.Fatalf("%c: %v", r, err)
		}
		cmds, err := pathdata.Parse(g.D)
		if err != nil {
			t.Fatalf("%c: reparse: %v", r, err)
		}
		got, ok := tessellate.Bounds(tessellate.StrokeVertices(cmds, 16))
		if !ok {
			t.Fatalf("%c: no stroke geometry", r)
		}
		if !closeRect(got, g.Ink, 0.5) {
			t.Fatalf("%c: tessellated %+v vs ink %+v", r, got, g.Ink)
		}
	}
}

func TestBlankGlyph(t *testing.T) {
	g, err := Outline(Default(), ' ', 0, 0, 20)
	if err != nil {
		t.Fatalf("space: %v", err)
	}
	if !g.Blank() || g.Advance <= 0 {
		t.Fatalf("space: blank=%v advance=%v", g.Blank(), g.Advance)
	}
}

func TestTextToPaths(t *testing.T) {
	grp, err := TextToPaths(Default(), "A B", 10, 100, 48)
	if err != nil {
		t.Fatalf("TextToPaths: %v", err)
	}
	if err := typeid.Validate(grp.ID, typeid.PrefixGroup); err != nil {
		t.Fatal(err)
	}
	if len(grp.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(grp.Children))
	}
	a, b := grp.Children[0].(*vector.PathShape), grp.Children[1].(*vector.PathShape)
	for _, p := range []*vector.PathShape{a, b} {
		if err := typeid.Validate(p.ID, typeid.PrefixShape); err != nil {
			t.Fatal(err)
		}
	}
	if a.Name != "A" || b.Name != "B" {
		t.Fatalf("names %q %q", a.Name, b.Name)
	}
	if b.Bounds.X <= a.Bounds.X+a.Bounds.W {
		t.Fatalf("B (%+v) overlaps A (%+v)", b.Bounds, a.Bounds)
	}
	tb, ok := TextBounds(Default(), "A B", 10, 100, 48)
	if !ok || !closeRect(tb, a.Bounds.Union(b.Bounds), 1e-9) {
		t.Fatalf("TextBounds = %+v ok=%v", tb, ok)
	}
	if _, ok := TextBounds(Default(), "   ", 0, 0, 12); ok {
		t.Fatal("blank text reported ink")
	}
}

func TestConvertTextAndMeasureInk(t *testing.T) {
	ts := &vector.TextShape{
		Common:   vector.Common{Name: "title", Rotation: 0.5, Opacity: 0.8, Fill: vector.Fill{Color: vector.White, Enabled: true}},
		X:        5,
		Y:        50,
		Text:     "Hi",
		FontSize: 32,
	}
	g, err := ConvertText(Default(), ts)
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "title (Outlined)" || g.Rotation != 0.5 || len(g.Children) != 2 {
		t.Fatalf("group %+v", g.Common)
	}
	if c := g.Children[0].Base(); c.Fill.Color != vector.White || c.Opacity != 0.8 {
		t.Fatalf("child paint %+v", c)
	}
	MeasureInk(Default(), ts)
	if ts.Ink == nil {
		t.Fatal("no ink measured")
	}
	want, _ := TextBounds(Default(), "Hi", 5, 50, 32)
	if !closeRect(vector.TextBounds(ts), want, 1e-9) {
		t.Fatalf("TextBounds via ink %+v want %+v", vector.TextBounds(ts), want)
	}
}

func TestFontLibrary(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "body.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.otf"), []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	lib := NewFontLibrary()
	n, err := lib.LoadDir(dir)
	if err != nil || n != 1 {
		t.Fatalf("LoadDir = %d, %v", n, err)
	}
	fams := lib.Families()
	if len(fams) != 1 {
		t.Fatalf("families %v", fams)
	}
	f, err := lib.LoadTTF("Body", filepath.Join(dir, "body.ttf"))
	if err != nil {
		t.Fatal(err)
	}
	if lib.Lookup("BODY") != f {
		t.Fatal("case-insensitive lookup failed")
	}
	if lib.Lookup("missing") != Default() {
		t.Fatal("miss should fall back to Go Regular")
	}
	lib.SetDefault("body")
	if lib.Lookup("missing") != f {
		t.Fatal("miss should use library default")
	}
	var nilLib *FontLibrary
	if nilLib.Lookup("x") != Default() {
		t.Fatal("nil library")
	}
	if _, err := lib.LoadTTF("", filepath.Join(dir, "nope.ttf")); err == nil || !strings.Contains(err.Error(), "read font") {
		t.Fatalf("missing file err = %v", err)
	}
}
