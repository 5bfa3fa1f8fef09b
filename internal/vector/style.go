/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Color is 8-bit straight-alpha RGBA.
type Color struct{ R, G, B, A uint8 }

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// Floats returns the color as normalized RGBA components.
func (c Color) Floats() [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// ParseFillRule maps "evenodd" to EvenOdd; anything else is NonZero.
func ParseFillRule(s string) FillRule {
	if s == "evenodd" {
		return EvenOdd
	}
	return NonZero
}

// Fill paints the interior either with a flat color or with a gradient
// referenced by id. A zero Fill is disabled.
type Fill struct {
	Color    Color
	Gradient string // gradient id; takes precedence over Color when set
	Opacity  float64
	Rule     FillRule
	Enabled  bool
}

type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

var capNames = [...]string{CapButt: "butt", CapRound: "round", CapSquare: "square"}

func (c LineCap) String() string {
	if int(c) < len(capNames) {
		return capNames[c]
	}
	return "butt"
}

// ParseLineCap returns CapButt for unknown names.
func ParseLineCap(s string) LineCap {
	for i, n := range capNames {
		if n == s {
			return LineCap(i)
		}
	}
	return CapButt
}

type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

var joinNames = [...]string{JoinMiter: "miter", JoinRound: "round", JoinBevel: "bevel"}

func (j LineJoin) String() string {
	if int(j) < len(joinNames) {
		return joinNames[j]
	}
	return "miter"
}

// ParseLineJoin returns JoinMiter for unknown names.
func ParseLineJoin(s string) LineJoin {
	for i, n := range joinNames {
		if n == s {
			return LineJoin(i)
		}
	}
	return JoinMiter
}

// Stroke outlines a shape. Dash is carried through documents and exports
// but the tessellator draws solid segments.
type Stroke struct {
	Color    Color
	Gradient string
	Width    float64
	Opacity  float64
	Cap      LineCap
	Join     LineJoin
	MiterLim float64
	Dash     []float64
	Enabled  bool
}

// EffectiveOpacity treats an unset (zero) paint opacity as fully opaque.
func EffectiveOpacity(v float64) float64 {
	if v <= 0 || v > 1 {
		return 1
	}
	return v
}
