/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vecdraw/internal/gradient"
	"vecdraw/internal/typeid"
	"vecdraw/internal/vector"
)

const sampleJSON = `{
  "version": 1,
  "gradients": [
    {"id": "sky", "type": "linearGradient", "stops": [
      {"offset": 1, "color": "#ffffff"},
      {"offset": 0, "color": "#0000ff", "opacity": 0.5}
    ]}
  ],
  "shapes": [
    {"type": "rect", "id": "r1", "x": 10, "y": 20, "width": 30, "height": 40,
     "fill": "#ff0000", "stroke": {"color": "black", "width": 2, "lineJoin": "round"}},
    {"type": "path", "id": "p1", "d": "M 0 0 L 10 20", "fill": {"ref": "sky", "type": "gradient"}},
    {"type": "group", "name": "g", "opacity": 0.5, "children": [
      {"type": "ellipse", "cx": 5, "cy": 5, "rx": 2, "ry": 3, "visible": false},
      {"type": "text", "x": 0, "y": 12, "text": "Hi", "fontSize": 12, "fill": "none"}
    ]}
  ]
}`

func TestDecodeJSON(t *testing.T) {
	s, err := Decode([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(s.Shapes) != 3 {
		t.Fatalf("want 3 top-level shapes, got %d", len(s.Shapes))
	}
	r, ok := s.Find("r1").(*vector.RectShape)
	if !ok {
		t.Fatalf("r1 is %T", s.Find("r1"))
	}
	if r.X != 10 || r.W != 30 || r.Opacity != 1 {
		t.Fatalf("rect geometry %+v", r)
	}
	if !r.Fill.Enabled || r.Fill.Color != (vector.Color{R: 255, A: 255}) || r.Fill.Opacity != 1 {
		t.Fatalf("rect fill %+v", r.Fill)
	}
	if !r.Stroke.Enabled || r.Stroke.Width != 2 || r.Stroke.Join != vector.JoinRound || r.Stroke.MiterLim != 4 {
		t.Fatalf("rect stroke %+v", r.Stroke)
	}

	p := s.Find("p1").(*vector.PathShape)
	if p.Bounds != vector.R(0, 0, 10, 20) {
		t.Fatalf("path bounds %+v", p.Bounds)
	}
	if p.Fill.Gradient != "sky" || !p.Fill.Enabled {
		t.Fatalf("path fill %+v", p.Fill)
	}

	g := s.Shapes[2].(*vector.GroupShape)
	if err := typeid.Validate(g.ID, typeid.PrefixGroup); err != nil {
		t.Fatalf("group id: %v", err)
	}
	if g.Opacity != 0.5 || len(g.Children) != 2 {
		t.Fatalf("group %+v", g)
	}
	e := g.Children[0].(*vector.EllipseShape)
	if !e.Hidden {
		t.Fatal("visible=false should hide the ellipse")
	}
	if err := typeid.Validate(e.ID, typeid.PrefixShape); err != nil {
		t.Fatalf("ellipse id: %v", err)
	}
	if txt := g.Children[1].(*vector.TextShape); txt.Fill.Enabled || txt.FontSize != 12 {
		t.Fatalf("text %+v", txt)
	}

	sky := s.Gradients["sky"]
	if sky == nil || sky.Type != gradient.Linear || sky.Units != gradient.ObjectBoundingBox {
		t.Fatalf("gradient %+v", sky)
	}
	if sky.X2 != 1 || sky.Y2 != 0 {
		t.Fatalf("linear defaults %+v", sky)
	}
	if sky.Stops[0].Color != "#0000ff" || sky.Stops[0].Opacity != 0.5 || sky.Stops[1].Opacity != 1 {
		t.Fatalf("stops not sorted or defaulted: %+v", sky.Stops)
	}
}

func TestDecodeYAML(t *testing.T) {
	src := `
version: 1
gradients:
  - id: glow
    type: radial
    stops:
      - {offset: 0, color: white}
      - {offset: 1, color: black}
shapes:
  - type: polygon
    id: tri
    points: [{x: 0, y: 0}, {x: 10, y: 0}, {x: 5, y: 8}]
    fill: {ref: glow}
  - type: line
    x1: 0
    y1: 0
    x2: 10
    y2: 10
    stroke: {color: "#00ff0080", width: 1}
`
	s, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	tri := s.Find("tri").(*vector.PolygonShape)
	if len(tri.Points) != 3 || tri.Points[2] != (vector.Pt{X: 5, Y: 8}) {
		t.Fatalf("points %+v", tri.Points)
	}
	glow := s.Gradients["glow"]
	if glow.Type != gradient.Radial || glow.CX != 0.5 || glow.R != 0.5 {
		t.Fatalf("radial defaults %+v", glow)
	}
	l := s.Shapes[1].(*vector.LineShape)
	if l.Stroke.Color != (vector.Color{G: 255, A: 128}) {
		t.Fatalf("stroke color %+v", l.Stroke.Color)
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"version":      `{"version": 2, "shapes": []}`,
		"rect size":    `{"version": 1, "shapes": [{"type": "rect", "width": -3, "height": 1}]}`,
		"unknown kind": `{"version": 1, "shapes": [{"type": "star"}]}`,
		"bad color":    `{"version": 1, "shapes": [{"type": "rect", "width": 1, "height": 1, "fill": "#12"}]}`,
		"missing ref":  `{"version": 1, "shapes": [{"type": "rect", "width": 1, "height": 1, "fill": {"ref": "nope"}}]}`,
		"duplicate id": `{"version": 1, "shapes": [{"type": "line", "id": "a", "x2": 1, "y2": 1}, {"type": "line", "id": "a", "x2": 2, "y2": 2}]}`,
	}
	for name, src := range cases {
		_, err := Decode([]byte(src))
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: want ErrInvalid, got %v", name, err)
		}
	}
}

func TestValidationErrorListsEveryProblem(t *testing.T) {
	src := `{"version": 1, "shapes": [
		{"type": "rect", "width": 1, "height": 1, "fill": "nocolor"},
		{"type": "rect", "width": 1, "height": 1, "fill": {"ref": "missing"}}
	]}`
	_, err := Decode([]byte(src))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want *ValidationError, got %v", err)
	}
	if len(ve.Problems) != 2 {
		t.Fatalf("want 2 problems, got %q", ve.Problems)
	}
	if !strings.Contains(ve.Problems[1], "shapes[1].fill") {
		t.Fatalf("problem should name its location: %q", ve.Problems[1])
	}
}

func TestEncodeDecodeKeepsScene(t *testing.T) {
	s, err := Decode([]byte(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	for _, enc := range []func(*Scene) ([]byte, error){EncodeJSON, EncodeYAML} {
		data, err := enc(s)
		if err != nil {
			t.Fatal(err)
		}
		back, err := Decode(data)
		if err != nil {
			t.Fatalf("decode encoded scene: %v\n%s", err, data)
		}
		if got, want := len(vector.Flatten(back.Shapes)), len(vector.Flatten(s.Shapes)); got != want {
			t.Fatalf("shape count %d, want %d", got, want)
		}
		g := back.Shapes[2].(*vector.GroupShape)
		if g.ID != s.Shapes[2].Base().ID || !g.Children[0].Base().Hidden {
			t.Fatalf("group lost state: %+v", g)
		}
		if back.Find("r1").Base().Stroke.Join != vector.JoinRound {
			t.Fatal("stroke join lost")
		}
		if back.Find("p1").Base().Fill.Gradient != "sky" {
			t.Fatal("gradient reference lost")
		}
	}
}

func TestSaveKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drawing.yaml")
	s, err := Decode([]byte(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	if err := Save(path, s); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := os.Stat(path + BackupSuffix); !os.IsNotExist(err) {
		t.Fatalf("no backup expected on first save, stat err=%v", err)
	}
	s.Find("r1").(*vector.RectShape).W = 99
	if err := Save(path, s); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if w := loaded.Find("r1").(*vector.RectShape).W; w != 99 {
		t.Fatalf("want saved width 99, got %v", w)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	restored, err := Load(path)
	if err != nil {
		t.Fatalf("Load should fall back to backup: %v", err)
	}
	if w := restored.Find("r1").(*vector.RectShape).W; w != 30 {
		t.Fatalf("backup should hold the first save, got width %v", w)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestSchemaIsEmbedded(t *testing.T) {
	if !strings.Contains(string(Schema()), "draft-07") {
		t.Fatal("schema not embedded")
	}
}
