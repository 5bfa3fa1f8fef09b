/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gradient

import (
	"errors"
	"math"
	"testing"

	"vecdraw/internal/vector"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAngleToCoords(t *testing.T) {
	x1, y1, x2, y2 := AngleToCoords(0)
	if !near(x1, 0.5) || !near(y1, 1) || !near(x2, 0.5) || !near(y2, 0) {
		t.Fatalf("0deg: %v %v %v %v", x1, y1, x2, y2)
	}
	x1, y1, x2, y2 = AngleToCoords(90)
	if !near(x1, 0) || !near(y1, 0.5) || !near(x2, 1) || !near(y2, 0.5) {
		t.Fatalf("90deg: %v %v %v %v", x1, y1, x2, y2)
	}
}

func TestAngleRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 45, 90, 135, 180, 270, 359} {
		if got := CoordsToAngle(AngleToCoords(deg)); got != deg {
			t.Fatalf("round trip %v: got %v", deg, got)
		}
	}
}

func TestCoordsToAngleZeroVector(t *testing.T) {
	if got := CoordsToAngle(0.3, 0.3, 0.3, 0.3); got != 0 {
		t.Fatalf("zero vector angle = %v", got)
	}
}

func TestColorAtInterpolates(t *testing.T) {
	stops := []Stop{{Offset: 1, Color: "#ffffff", Opacity: 1}, {Offset: 0, Color: "#000000", Opacity: 1}}
	cases := map[float64]string{-1: "#000000", 0.5: "#808080", 0.25: "#404040", 2: "#ffffff"}
	for off, want := range cases {
		if got := ColorAt(stops, off); got != want {
			t.Fatalf("ColorAt(%v) = %s want %s", off, got, want)
		}
	}
	if got := ColorAt(nil, 0.5); got != "#000000" {
		t.Fatalf("empty stops: %s", got)
	}
}

func TestAddRemoveUpdateStop(t *testing.T) {
	g := NewLinear(0)
	stops := AddStopAt(g.Stops, 0.5)
	if len(stops) != 3 || stops[1].Offset != 0.5 || stops[1].Color != "#808080" || stops[1].Opacity != 1 {
		t.Fatalf("AddStopAt: %+v", stops)
	}
	if got := RemoveStop(g.Stops, 0); len(got) != 2 {
		t.Fatalf("removed below two stops: %+v", got)
	}
	stops = RemoveStop(stops, 1)
	if len(stops) != 2 || stops[0].Color != "#000000" || stops[1].Color != "#ffffff" {
		t.Fatalf("RemoveStop: %+v", stops)
	}
	red := "#ff0000"
	up := UpdateStop(stops, 1, StopUpdate{Color: &red})
	if up[1].Color != red || up[1].Offset != 1 || stops[1].Color != "#ffffff" {
		t.Fatalf("UpdateStop: %+v (orig %+v)", up, stops)
	}
}

func TestToCSS(t *testing.T) {
	g := NewLinear(90)
	if got, want := g.ToCSS(), "linear-gradient(90deg, #000000 0%, #ffffff 100%)"; got != want {
		t.Fatalf("linear css = %q want %q", got, want)
	}
	r := NewRadial()
	r.Stops[0].Opacity = 0.5
	want := "radial-gradient(circle at 50% 50%, rgba(255, 255, 255, 0.5) 0%, #000000 100%)"
	if got := r.ToCSS(); got != want {
		t.Fatalf("radial css = %q want %q", got, want)
	}
}

func TestPackLimitsAndSortsStops(t *testing.T) {
	g := NewRadial()
	g.Stops = nil
	for i := 9; i >= 0; i-- {
		g.Stops = append(g.Stops, Stop{Offset: float64(i) / 9, Color: "#ffffff", Opacity: 1})
	}
	u := Pack(g, 0.5)
	if u.Type != 1 || u.StopCount != MaxStops || u.Opacity != 0.5 {
		t.Fatalf("pack header: %+v", u)
	}
	if u.Coords != [4]float32{0.5, 0.5, 0.5, 0} {
		t.Fatalf("radial coords: %v", u.Coords)
	}
	for i := 1; i < MaxStops; i++ {
		if u.StopOffsets[i] < u.StopOffsets[i-1] {
			t.Fatalf("offsets not sorted: %v", u.StopOffsets)
		}
	}
	if u.StopOffsets[0] != 0 {
		t.Fatalf("first offset = %v", u.StopOffsets[0])
	}
}

func TestUniformsEvaluate(t *testing.T) {
	u := Pack(NewLinear(90), 1)
	if p := u.Param(0.25, 0.9); !near(p, 0.25) {
		t.Fatalf("linear param = %v", p)
	}
	c := u.ColorAt(0.5)
	if math.Abs(float64(c[0])-0.5) > 1e-6 || c[3] != 1 {
		t.Fatalf("mid color = %v", c)
	}
	if c := u.ColorAt(5); c != [4]float32{1, 1, 1, 1} {
		t.Fatalf("clamped color = %v", c)
	}
	r := Pack(NewRadial(), 0.5)
	if p := r.Param(0.75, 0.5); !near(p, 0.5) {
		t.Fatalf("radial param = %v", p)
	}
	if c := r.ColorAt(0); c != [4]float32{1, 1, 1, 0.5} {
		t.Fatalf("radial center color = %v", c)
	}
	var empty Uniforms
	if c := empty.ColorAt(0.5); c != [4]float32{} {
		t.Fatalf("empty ramp = %v", c)
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]vector.Color{
		"#f00":              {R: 255, G: 0, B: 0, A: 255},
		"#FF000080":         {R: 255, G: 0, B: 0, A: 128},
		"#0080ff":           {R: 0, G: 128, B: 255, A: 255},
		"rgb(0, 128, 255)":  {R: 0, G: 128, B: 255, A: 255},
		"rgba(0,0,0,0.5)":   {R: 0, G: 0, B: 0, A: 128},
		"rgb(100%, 0%, 0%)": {R: 255, G: 0, B: 0, A: 255},
		"CornflowerBlue":    {R: 100, G: 149, B: 237, A: 255},
		"none":              vector.Transparent,
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil || got != want {
			t.Fatalf("ParseColor(%q) = %v, %v want %v", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "#12", "rgb(1,2)", "hsl(0,0,0)", "bogus"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrColor) {
			t.Fatalf("ParseColor(%q) err = %v", bad, err)
		}
	}
	if Hex(MustColor("bogus")) != "#000000" {
		t.Fatal("MustColor fallback")
	}
}
