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

// CurveBounds returns the exact extents of cmds, including curve extrema
// between control points.
func CurveBounds(cmds []vector.PathCmd) vector.Rect {
	var pts []vector.Pt
	var cur vector.Pt
	for _, c := range cmds {
		switch c.Op {
		case vector.QuadTo:
			c1 := vector.Pt{X: c.Data[0], Y: c.Data[1]}
			end := vector.Pt{X: c.Data[2], Y: c.Data[3]}
			for _, t := range quadRoots(cur, c1, end) {
				u := 1 - t
				pts = append(pts, vector.Pt{
					X: u*u*cur.X + 2*u*t*c1.X + t*t*end.X,
					Y: u*u*cur.Y + 2*u*t*c1.Y + t*t*end.Y,
				})
			}
		case vector.CubicTo:
			c1 := vector.Pt{X: c.Data[0], Y: c.Data[1]}
			c2 := vector.Pt{X: c.Data[2], Y: c.Data[3]}
			end := vector.Pt{X: c.Data[4], Y: c.Data[5]}
			for _, t := range cubicRoots(cur, c1, c2, end) {
				u := 1 - t
				pts = append(pts, vector.Pt{
					X: u*u*u*cur.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*end.X,
					Y: u*u*u*cur.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*end.Y,
				})
			}
		}
		if e, ok := c.End(); ok {
			pts = append(pts, e)
			cur = e
		}
	}
	r, _ := vector.RectFromPoints(pts)
	return r
}

func quadRoots(p0, p1, p2 vector.Pt) []float64 {
	var ts []float64
	for _, a := range [][3]float64{{p0.X, p1.X, p2.X}, {p0.Y, p1.Y, p2.Y}} {
		den := a[0] - 2*a[1] + a[2]
		if den == 0 {
			continue
		}
		if t := (a[0] - a[1]) / den; t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	return ts
}

func cubicRoots(p0, p1, p2, p3 vector.Pt) []float64 {
	var ts []float64
	keep := func(t float64) {
		if t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	for _, a := range [][4]float64{{p0.X, p1.X, p2.X, p3.X}, {p0.Y, p1.Y, p2.Y, p3.Y}} {
		d0, d1, d2 := a[1]-a[0], a[2]-a[1], a[3]-a[2]
		qa, qb, qc := d0-2*d1+d2, 2*(d1-d0), d0
		if math.Abs(qa) < 1e-12 {
			if qb != 0 {
				keep(-qc / qb)
			}
			continue
		}
		disc := qb*qb - 4*qa*qc
		if disc < 0 {
			continue
		}
		sq := math.Sqrt(disc)
		keep((-qb + sq) / (2 * qa))
		keep((-qb - sq) / (2 * qa))
	}
	return ts
}
