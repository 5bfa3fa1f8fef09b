/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gradient

import "math"

// MaxStops is the number of stop slots the gradient shader declares.
const MaxStops = 8

// Uniforms is the packed shader input for one gradient fill. Type is 0 for
// linear and 1 for radial. Coords holds (x1, y1, x2, y2) or (cx, cy, r, 0).
type Uniforms struct {
	Type        int32
	Coords      [4]float32
	Opacity     float32
	StopCount   int32
	StopColors  [MaxStops][4]float32
	StopOffsets [MaxStops]float32
}

// Pack sorts the stops of g and packs the first MaxStops of them. Unused
// slots stay zero. opacity multiplies every fragment alpha.
func Pack(g *Gradient, opacity float64) Uniforms {
	var u Uniforms
	if g.Type == Radial {
		u.Type = 1
		u.Coords = [4]float32{float32(g.CX), float32(g.CY), float32(g.R), 0}
	} else {
		u.Coords = [4]float32{float32(g.X1), float32(g.Y1), float32(g.X2), float32(g.Y2)}
	}
	u.Opacity = float32(opacity)
	stops := SortStops(g.Stops)
	if len(stops) > MaxStops {
		stops = stops[:MaxStops]
	}
	u.StopCount = int32(len(stops))
	for i, s := range stops {
		c := MustColor(s.Color).Floats()
		c[3] *= float32(s.Opacity)
		u.StopColors[i] = c
		u.StopOffsets[i] = float32(s.Offset)
	}
	return u
}

// Param maps a point in gradient space (the unit square for bounding box
// units) to the ramp parameter t, unclamped.
func (u *Uniforms) Param(x, y float64) float64 {
	c := u.Coords
	if u.Type == 1 {
		r := float64(c[2])
		if r <= 0 {
			return 0
		}
		return math.Hypot(x-float64(c[0]), y-float64(c[1])) / r
	}
	dx, dy := float64(c[2]-c[0]), float64(c[3]-c[1])
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0
	}
	return ((x-float64(c[0]))*dx + (y-float64(c[1]))*dy) / (l * l)
}

// ColorAt evaluates the ramp at t the way the fragment shader does, with
// the result alpha scaled by Opacity. Components are straight, not
// premultiplied.
func (u *Uniforms) ColorAt(t float64) [4]float32 {
	t = math.Max(0, math.Min(1, t))
	var out [4]float32
	switch {
	case u.StopCount <= 0:
		return out
	case u.StopCount == 1 || float32(t) <= u.StopOffsets[0]:
		out = u.StopColors[0]
	default:
		out = u.StopColors[0]
		ft := float32(t)
		for i := 0; i < int(u.StopCount)-1; i++ {
			o1, o2 := u.StopOffsets[i], u.StopOffsets[i+1]
			c1, c2 := u.StopColors[i], u.StopColors[i+1]
			if ft >= o1 && ft <= o2 {
				var lt float32
				if r := o2 - o1; r > 0 {
					lt = (ft - o1) / r
				}
				for k := range out {
					out[k] = c1[k] + (c2[k]-c1[k])*lt
				}
				break
			}
			if ft > o2 {
				out = c2
			}
		}
	}
	out[3] *= u.Opacity
	return out
}
