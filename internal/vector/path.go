/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Normalized path commands. All coordinates are absolute; a non-empty
// command list always starts with MoveTo.

type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	QuadTo  // quadratic bezier (cx, cy, x, y)
	CubicTo // cubic bezier (cx1, cy1, cx2, cy2, x, y)
	Close
)

func (op PathOp) String() string {
	switch op {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case QuadTo:
		return "Q"
	case CubicTo:
		return "C"
	case Close:
		return "Z"
	}
	return "?"
}

type PathCmd struct {
	Op   PathOp
	Data [6]float64 // enough for cubic; unused slots are zero
}

// End returns the point the command leaves the pen at. Close has no
// coordinates of its own and reports ok=false.
func (c PathCmd) End() (Pt, bool) {
	switch c.Op {
	case MoveTo, LineTo:
		return Pt{c.Data[0], c.Data[1]}, true
	case QuadTo:
		return Pt{c.Data[2], c.Data[3]}, true
	case CubicTo:
		return Pt{c.Data[4], c.Data[5]}, true
	}
	return Pt{}, false
}

// Args returns the populated coordinate slots of the command.
func (c PathCmd) Args() []float64 {
	switch c.Op {
	case MoveTo, LineTo:
		return c.Data[:2]
	case QuadTo:
		return c.Data[:4]
	case CubicTo:
		return c.Data[:6]
	}
	return nil
}

type Path struct{ Cmds []PathCmd }

func (p *Path) MoveTo(x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Data: [6]float64{x, y}})
}
func (p *Path) LineTo(x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Data: [6]float64{x, y}})
}
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: QuadTo, Data: [6]float64{cx, cy, x, y}})
}
func (p *Path) CubicTo(cx1, cy1, cx2, cy2, x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: CubicTo, Data: [6]float64{cx1, cy1, cx2, cy2, x, y}})
}
func (p *Path) Close() { p.Cmds = append(p.Cmds, PathCmd{Op: Close}) }

// ControlBounds returns an axis-aligned box around every on-curve and control
// point. It is a cheap superset of the true extents; tessellated extents are
// tighter.
func ControlBounds(cmds []PathCmd) Rect {
	var pts []Pt
	for _, c := range cmds {
		args := c.Args()
		for i := 0; i+1 < len(args); i += 2 {
			pts = append(pts, Pt{args[i], args[i+1]})
		}
	}
	r, _ := RectFromPoints(pts)
	return r
}

// TransformPath applies m to every coordinate pair of cmds and returns a new slice.
func TransformPath(cmds []PathCmd, m Affine2D) []PathCmd {
	out := make([]PathCmd, len(cmds))
	for i, c := range cmds {
		out[i] = c
		n := len(c.Args())
		for j := 0; j+1 < n; j += 2 {
			q := m.Apply(Pt{c.Data[j], c.Data[j+1]})
			out[i].Data[j], out[i].Data[j+1] = q.X, q.Y
		}
	}
	return out
}

// MapRect returns the transform that maps from onto to. Zero-sized source
// axes map with scale 1 so degenerate paths stay finite.
func MapRect(from, to Rect) Affine2D {
	sx, sy := 1.0, 1.0
	if from.W != 0 {
		sx = to.W / from.W
	}
	if from.H != 0 {
		sy = to.H / from.H
	}
	return Translate(to.X, to.Y).Mul(Scale(sx, sy)).Mul(Translate(-from.X, -from.Y))
}
