/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package gradient holds linear and radial gradient definitions and the
// math the editor and the renderers share: angle conversion, stop editing,
// CSS output and shader uniform packing.
package gradient

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"vecdraw/internal/typeid"
)

type Type string

const (
	Linear Type = "linear"
	Radial Type = "radial"
)

type Units string

const (
	ObjectBoundingBox Units = "objectBoundingBox"
	UserSpaceOnUse    Units = "userSpaceOnUse"
)

type Stop struct {
	Offset  float64 `json:"offset" yaml:"offset"`
	Color   string  `json:"color" yaml:"color"`
	Opacity float64 `json:"opacity" yaml:"opacity"`
}

// Gradient is either linear (X1..Y2) or radial (CX, CY, R with an optional
// focal point FX, FY). Coordinates are in Units, normally the unit square
// of the painted shape's bounds.
type Gradient struct {
	ID    string `json:"id" yaml:"id"`
	Type  Type   `json:"type" yaml:"type"`
	Stops []Stop `json:"stops" yaml:"stops"`
	Units Units  `json:"units,omitempty" yaml:"units,omitempty"`

	X1 float64 `json:"x1,omitempty" yaml:"x1,omitempty"`
	Y1 float64 `json:"y1,omitempty" yaml:"y1,omitempty"`
	X2 float64 `json:"x2,omitempty" yaml:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty" yaml:"y2,omitempty"`

	CX float64  `json:"cx,omitempty" yaml:"cx,omitempty"`
	CY float64  `json:"cy,omitempty" yaml:"cy,omitempty"`
	R  float64  `json:"r,omitempty" yaml:"r,omitempty"`
	FX *float64 `json:"fx,omitempty" yaml:"fx,omitempty"`
	FY *float64 `json:"fy,omitempty" yaml:"fy,omitempty"`
}

// NewLinear returns a black to white linear gradient along angle degrees.
func NewLinear(angle float64) *Gradient {
	x1, y1, x2, y2 := AngleToCoords(angle)
	return &Gradient{
		ID:    typeid.NewGradientID(),
		Type:  Linear,
		X1:    x1,
		Y1:    y1,
		X2:    x2,
		Y2:    y2,
		Units: ObjectBoundingBox,
		Stops: []Stop{{Offset: 0, Color: "#000000", Opacity: 1}, {Offset: 1, Color: "#ffffff", Opacity: 1}},
	}
}

// NewRadial returns a white to black radial gradient centred in the box.
func NewRadial() *Gradient {
	return &Gradient{
		ID:    typeid.NewGradientID(),
		Type:  Radial,
		CX:    0.5,
		CY:    0.5,
		R:     0.5,
		Units: ObjectBoundingBox,
		Stops: []Stop{{Offset: 0, Color: "#ffffff", Opacity: 1}, {Offset: 1, Color: "#000000", Opacity: 1}},
	}
}

// AngleToCoords maps a CSS-style angle (0 points up, clockwise) onto a
// vector through the centre of the unit square.
func AngleToCoords(deg float64) (x1, y1, x2, y2 float64) {
	rad := (deg - 90) * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return 0.5 - 0.5*c, 0.5 - 0.5*s, 0.5 + 0.5*c, 0.5 + 0.5*s
}

// CoordsToAngle is the inverse of AngleToCoords, rounded to whole degrees
// in [0, 360). A zero-length vector yields 0.
func CoordsToAngle(x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	if dx == 0 && dy == 0 {
		return 0
	}
	a := math.Atan2(dy, dx)*180/math.Pi + 90
	if a < 0 {
		a += 360
	}
	return math.Mod(math.Floor(a+0.5), 360)
}

// Angle reports the direction of a linear gradient.
func (g *Gradient) Angle() float64 { return CoordsToAngle(g.X1, g.Y1, g.X2, g.Y2) }

// SetAngle rewrites the linear coordinates for deg.
func (g *Gradient) SetAngle(deg float64) { g.X1, g.Y1, g.X2, g.Y2 = AngleToCoords(deg) }

// SortStops returns a copy of stops ordered by offset. Equal offsets keep
// their relative order.
func SortStops(stops []Stop) []Stop {
	out := append([]Stop(nil), stops...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// AddStopAt inserts an opaque stop at offset whose color is interpolated
// from its neighbours, and returns the sorted result.
func AddStopAt(stops []Stop, offset float64) []Stop {
	sorted := SortStops(stops)
	c := ColorAt(sorted, offset)
	return SortStops(append(sorted, Stop{Offset: offset, Color: c, Opacity: 1}))
}

// RemoveStop drops stops[i]. A gradient never goes below two stops, so
// shorter slices and out-of-range indexes come back unchanged.
func RemoveStop(stops []Stop, i int) []Stop {
	if len(stops) <= 2 || i < 0 || i >= len(stops) {
		return stops
	}
	out := make([]Stop, 0, len(stops)-1)
	out = append(out, stops[:i]...)
	return append(out, stops[i+1:]...)
}

// StopUpdate carries the fields to change on a stop; nil leaves a field as is.
type StopUpdate struct {
	Offset  *float64
	Color   *string
	Opacity *float64
}

// UpdateStop returns a copy of stops with u applied to stops[i].
func UpdateStop(stops []Stop, i int, u StopUpdate) []Stop {
	out := append([]Stop(nil), stops...)
	if i < 0 || i >= len(out) {
		return out
	}
	if u.Offset != nil {
		out[i].Offset = *u.Offset
	}
	if u.Color != nil {
		out[i].Color = *u.Color
	}
	if u.Opacity != nil {
		out[i].Opacity = *u.Opacity
	}
	return out
}

// ColorAt interpolates the hex color at offset. Offsets outside the stop
// range take the nearest end color.
func ColorAt(stops []Stop, offset float64) string {
	switch len(stops) {
	case 0:
		return "#000000"
	case 1:
		return stops[0].Color
	}
	sorted := SortStops(stops)
	first, last := sorted[0], sorted[len(sorted)-1]
	if offset <= first.Offset {
		return first.Color
	}
	if offset >= last.Offset {
		return last.Color
	}
	a, b := first, last
	for i := 0; i < len(sorted)-1; i++ {
		if offset >= sorted[i].Offset && offset <= sorted[i+1].Offset {
			a, b = sorted[i], sorted[i+1]
			break
		}
	}
	t := 0.0
	if r := b.Offset - a.Offset; r != 0 {
		t = (offset - a.Offset) / r
	}
	ca, cb := MustColor(a.Color), MustColor(b.Color)
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Floor(float64(x) + (float64(y)-float64(x))*t + 0.5))
	}
	ca.R, ca.G, ca.B = lerp(ca.R, cb.R), lerp(ca.G, cb.G), lerp(ca.B, cb.B)
	return Hex(ca)
}

// ToCSS renders g as a CSS linear-gradient or radial-gradient value.
func (g *Gradient) ToCSS() string {
	parts := make([]string, 0, len(g.Stops))
	for _, s := range SortStops(g.Stops) {
		color := s.Color
		if s.Opacity < 1 {
			c := MustColor(s.Color)
			color = fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, num(s.Opacity))
		}
		parts = append(parts, color+" "+num(s.Offset*100)+"%")
	}
	stops := strings.Join(parts, ", ")
	if g.Type == Radial {
		return fmt.Sprintf("radial-gradient(circle at %s%% %s%%, %s)", num(g.CX*100), num(g.CY*100), stops)
	}
	return fmt.Sprintf("linear-gradient(%sdeg, %s)", num(g.Angle()), stops)
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
