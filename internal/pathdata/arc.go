/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pathdata

import (
	"math"

	"vecdraw/internal/vector"
)

// arcToCubics converts an SVG elliptical arc from p0 to p1 into cubic
// segments [c1x c1y c2x c2y x y], using the endpoint to center
// parameterization. Radii too small to reach p1 are scaled up uniformly.
// Each segment spans at most a quarter turn.
func arcToCubics(p0, p1 vector.Pt, rx, ry, xRotDeg float64, largeArc, sweep bool) [][6]float64 {
	if p0 == p1 {
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		// degenerate radii draw a straight segment
		return [][6]float64{{p0.X, p0.Y, p1.X, p1.Y, p1.X, p1.Y}}
	}

	phi := xRotDeg * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	dx := (p0.X - p1.X) / 2
	dy := (p0.Y - p1.Y) / 2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	if lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	rxSq, rySq := rx*rx, ry*ry
	num := rxSq*rySq - rxSq*y1p*y1p - rySq*x1p*x1p
	den := rxSq*y1p*y1p + rySq*x1p*x1p
	coef := 0.0
	if den != 0 {
		coef = math.Sqrt(math.Max(0, num/den))
	}
	if largeArc == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (p0.X+p1.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (p0.Y+p1.Y)/2

	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := (-x1p-cxp)/rx, (-y1p-cyp)/ry
	theta1 := vecAngle(1, 0, ux, uy)
	dtheta := vecAngle(ux, uy, vx, vy)
	if !sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	} else if sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	n := int(math.Max(1, math.Ceil(math.Abs(dtheta)/(math.Pi/2)-1e-9)))
	step := dtheta / float64(n)
	alpha := 4.0 / 3.0 * math.Tan(step/4)

	point := func(theta float64) (x, y, tx, ty float64) {
		sin, cos := math.Sincos(theta)
		x = cx + rx*cosPhi*cos - ry*sinPhi*sin
		y = cy + rx*sinPhi*cos + ry*cosPhi*sin
		// derivative with respect to theta
		tx = -rx*cosPhi*sin - ry*sinPhi*cos
		ty = -rx*sinPhi*sin + ry*cosPhi*cos
		return
	}

	out := make([][6]float64, 0, n)
	for i := 0; i < n; i++ {
		a0 := theta1 + float64(i)*step
		a1 := a0 + step
		x0, y0, tx0, ty0 := point(a0)
		x3, y3, tx3, ty3 := point(a1)
		if i == n-1 {
			x3, y3 = p1.X, p1.Y
		}
		out = append(out, [6]float64{
			x0 + alpha*tx0, y0 + alpha*ty0,
			x3 - alpha*tx3, y3 - alpha*ty3,
			x3, y3,
		})
	}
	return out
}

// vecAngle returns the signed angle from u to v.
func vecAngle(ux, uy, vx, vy float64) float64 {
	l := math.Hypot(ux, uy) * math.Hypot(vx, vy)
	if l == 0 {
		return 0
	}
	a := math.Acos(math.Max(-1, math.Min(1, (ux*vx+uy*vy)/l)))
	if ux*vy-uy*vx < 0 {
		return -a
	}
	return a
}
