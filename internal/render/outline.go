/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"math"

	"vecdraw/internal/vector"
)

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498307936

// ShapePath converts the primitive kinds to path commands in scene
// coordinates so they tessellate like any other path. Paths, text, groups
// and empty shapes report ok=false.
func ShapePath(s vector.Shape) (cmds []vector.PathCmd, ok bool) {
	var p vector.Path
	switch v := s.(type) {
	case *vector.RectShape:
		r := vector.Rect{X: v.X, Y: v.Y, W: v.W, H: v.H}.Normalize()
		if r.W == 0 && r.H == 0 {
			return nil, false
		}
		roundedRect(&p, r, v.RX, v.RY)
	case *vector.ImageShape:
		r := vector.Rect{X: v.X, Y: v.Y, W: v.W, H: v.H}.Normalize()
		if r.W == 0 && r.H == 0 {
			return nil, false
		}
		roundedRect(&p, r, 0, 0)
	case *vector.EllipseShape:
		if v.RX == 0 && v.RY == 0 {
			return nil, false
		}
		ellipse(&p, v.CX, v.CY, math.Abs(v.RX), math.Abs(v.RY))
	case *vector.LineShape:
		p.MoveTo(v.X1, v.Y1)
		p.LineTo(v.X2, v.Y2)
	case *vector.PolygonShape:
		if !points(&p, v.Points) {
			return nil, false
		}
		p.Close()
	case *vector.PolylineShape:
		if !points(&p, v.Points) {
			return nil, false
		}
	case *vector.PathShape, *vector.TextShape, *vector.GroupShape:
		return nil, false
	}
	return p.Cmds, len(p.Cmds) > 0
}

func points(p *vector.Path, pts []vector.Pt) bool {
	if len(pts) < 2 {
		return false
	}
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, q := range pts[1:] {
		p.LineTo(q.X, q.Y)
	}
	return true
}

// roundedRect follows the SVG radius rules: a missing radius copies the
// other and both clamp to half the side.
func roundedRect(p *vector.Path, r vector.Rect, rx, ry float64) {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 {
		rx = ry
	}
	if ry == 0 {
		ry = rx
	}
	rx, ry = math.Min(rx, r.W/2), math.Min(ry, r.H/2)
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H
	if rx == 0 || ry == 0 {
		p.MoveTo(x0, y0)
		p.LineTo(x1, y0)
		p.LineTo(x1, y1)
		p.LineTo(x0, y1)
		p.Close()
		return
	}
	kx, ky := rx*kappa, ry*kappa
	p.MoveTo(x0+rx, y0)
	p.LineTo(x1-rx, y0)
	p.CubicTo(x1-rx+kx, y0, x1, y0+ry-ky, x1, y0+ry)
	p.LineTo(x1, y1-ry)
	p.CubicTo(x1, y1-ry+ky, x1-rx+kx, y1, x1-rx, y1)
	p.LineTo(x0+rx, y1)
	p.CubicTo(x0+rx-kx, y1, x0, y1-ry+ky, x0, y1-ry)
	p.LineTo(x0, y0+ry)
	p.CubicTo(x0, y0+ry-ky, x0+rx-kx, y0, x0+rx, y0)
	p.Close()
}

// ellipse draws four cubic quarter arcs clockwise from the east point.
func ellipse(p *vector.Path, cx, cy, rx, ry float64) {
	kx, ky := rx*kappa, ry*kappa
	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.Close()
}
