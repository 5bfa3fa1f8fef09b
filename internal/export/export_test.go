/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vecdraw/internal/gradient"
	"vecdraw/internal/kernel"
	applog "vecdraw/internal/log"
	"vecdraw/internal/render"
	"vecdraw/internal/vector"
)

var red = vector.Color{R: 255, A: 255}

func calls(shapes []vector.Shape, grads map[string]*gradient.Gradient) []render.DrawCall {
	k := kernel.New(kernel.Options{Logger: applog.Discard()})
	return render.Build(k, shapes, grads)
}

func redRect(x, y, w, h float64) *vector.RectShape {
	return &vector.RectShape{
		Common: vector.Common{ID: "r", Fill: vector.Fill{Color: red, Opacity: 1, Enabled: true}},
		X:      x, Y: y, W: w, H: h,
	}
}

func sampleScene() ([]render.DrawCall, map[string]*gradient.Gradient) {
	g := gradient.NewLinear(90)
	grads := map[string]*gradient.Gradient{g.ID: g}
	shapes := []vector.Shape{
		redRect(0, 0, 40, 20),
		&vector.EllipseShape{
			Common: vector.Common{ID: "e", Rotation: 0.4, Fill: vector.Fill{Gradient: g.ID, Enabled: true}},
			CX:     70, CY: 40, RX: 20, RY: 10,
		},
		&vector.LineShape{
			Common: vector.Common{ID: "l", Stroke: vector.Stroke{Color: vector.Black, Width: 2, Enabled: true}},
			X1:     0, Y1: 60, X2: 90, Y2: 60,
		},
		&vector.ImageShape{Common: vector.Common{ID: "img", Stroke: vector.Stroke{Color: vector.Black, Width: 1, Enabled: true}}, X: 5, Y: 30, W: 10, H: 10, Href: "a&b.png"},
	}
	return calls(shapes, grads), grads
}

func TestFrame(t *testing.T) {
	cs := calls([]vector.Shape{redRect(10, 10, 20, 10)}, nil)
	if got := Frame(cs, Options{}); got != vector.R(10, 10, 20, 10) {
		t.Fatalf("fit frame %+v", got)
	}
	if got := Frame(cs, Options{Padding: 5}); got != vector.R(5, 5, 30, 20) {
		t.Fatalf("padded frame %+v", got)
	}
	vp := vector.R(0, 0, 100, 50)
	if got := Frame(cs, Options{Viewport: vp, Padding: 5}); got != vp {
		t.Fatalf("viewport frame %+v", got)
	}
	if got := Frame(nil, Options{}); got != vector.R(0, 0, 1, 1) {
		t.Fatalf("empty frame %+v", got)
	}
}

func TestFrameFollowsRotation(t *testing.T) {
	r := redRect(0, 0, 40, 10)
	r.Rotation = math.Pi / 2
	got := Frame(calls([]vector.Shape{r}, nil), Options{})
	want := vector.R(15, -15, 10, 40)
	if math.Abs(got.X-want.X) > 1e-4 || math.Abs(got.Y-want.Y) > 1e-4 || math.Abs(got.W-want.W) > 1e-4 || math.Abs(got.H-want.H) > 1e-4 {
		t.Fatalf("rotated frame %+v want %+v", got, want)
	}
}

func TestRasterFillsInteriorOnly(t *testing.T) {
	cs := calls([]vector.Shape{redRect(0, 0, 20, 10)}, nil)
	img := Raster(cs, Options{Padding: 5})
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Fatalf("image size %v", b)
	}
	if c := img.RGBAAt(15, 10); c.R != 255 || c.G != 0 || c.A != 255 {
		t.Fatalf("interior pixel %+v", c)
	}
	if c := img.RGBAAt(1, 1); c.A != 0 {
		t.Fatalf("padding pixel %+v", c)
	}
	bg := Raster(cs, Options{Padding: 5, Background: vector.White, Scale: 2})
	if b := bg.Bounds(); b.Dx() != 60 || b.Dy() != 40 {
		t.Fatalf("scaled size %v", b)
	}
	if c := bg.RGBAAt(1, 1); c.R != 255 || c.G != 255 || c.A != 255 {
		t.Fatalf("background pixel %+v", c)
	}
}

func TestRasterGradient(t *testing.T) {
	g := gradient.NewLinear(90)
	r := redRect(0, 0, 100, 10)
	r.Fill = vector.Fill{Gradient: g.ID, Enabled: true}
	img := Raster(calls([]vector.Shape{r}, map[string]*gradient.Gradient{g.ID: g}), Options{})
	left, right := img.RGBAAt(5, 5), img.RGBAAt(95, 5)
	if left.R > 50 || right.R < 200 || left.A != 255 || right.A != 255 {
		t.Fatalf("gradient left %+v right %+v", left, right)
	}
}

func TestPNGEncodes(t *testing.T) {
	cs, _ := sampleScene()
	var buf bytes.Buffer
	if err := PNG(&buf, cs, Options{Padding: 2}); err != nil {
		t.Fatalf("png: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() <= 0 {
		t.Fatal("empty png")
	}
}

func TestSVGIsWellFormed(t *testing.T) {
	cs, _ := sampleScene()
	var buf bytes.Buffer
	if err := SVG(&buf, cs, Options{Background: vector.White}); err != nil {
		t.Fatalf("svg: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "viewBox=", "<linearGradient id=\"g1\"", "url(#g1)", "fill=\"#ff0000\"", "rotate(", "href=\"a&amp;b.png\"", "stroke-width=\"2\""} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg missing %q:\n%s", want, out)
		}
	}
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		if _, err := dec.Token(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("svg not well formed: %v", err)
		}
	}
}

func TestPDF(t *testing.T) {
	cs, _ := sampleScene()
	var buf bytes.Buffer
	if err := PDF(&buf, cs, Options{Background: vector.White}); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("not a pdf: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestWriteFileAndFormats(t *testing.T) {
	cs, _ := sampleScene()
	dir := t.TempDir()
	if err := WriteFile(filepath.Join(dir, "out", "scene.svg"), cs, Options{}); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "scene.svg")); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(filepath.Join(dir, "scene.gif"), cs, Options{}); err == nil {
		t.Fatal("gif should be rejected")
	}
	if f, err := FormatFor("A.PNG"); err != nil || f != FormatPNG {
		t.Fatalf("FormatFor = %v, %v", f, err)
	}
}

func TestBatchExportPresets(t *testing.T) {
	cs, _ := sampleScene()
	dir := t.TempDir()
	paths, err := BatchExport(cs, BatchOptions{Preset: PresetWeb, OutDir: dir, Base: "demo"})
	if err != nil || len(paths) != 2 {
		t.Fatalf("web batch = %v, %v", paths, err)
	}
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil || st.Size() == 0 {
			t.Fatalf("%s: %v", p, err)
		}
	}
	paths, err = BatchExport(cs, BatchOptions{Preset: PresetPrint, Formats: []Format{"PDF"}, OutDir: dir})
	if err != nil || len(paths) != 1 || filepath.Base(paths[0]) != "scene.pdf" {
		t.Fatalf("print batch = %v, %v", paths, err)
	}
	if _, err := BatchExport(cs, BatchOptions{Preset: "poster"}); err == nil {
		t.Fatal("unknown preset accepted")
	}
}
