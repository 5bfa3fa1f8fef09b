/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pathdata

import (
	"strings"

	"vecdraw/internal/vector"
)

// AnchorKind describes how the handles of an editable anchor are coupled.
type AnchorKind string

const (
	Corner    AnchorKind = "corner"
	Smooth    AnchorKind = "smooth"
	Symmetric AnchorKind = "symmetric"
)

// EditablePoint is an anchor in path-edit mode. Handles are absolute
// positions. A Start point opens a new sub-path and never carries a HandleIn.
// Closes marks the last anchor of a closed sub-path.
type EditablePoint struct {
	X, Y      float64
	Kind      AnchorKind
	Start     bool
	Closes    bool
	HandleIn  *vector.Pt
	HandleOut *vector.Pt
}

// ToEditable turns normalized commands into anchors. Quadratic segments are
// raised to cubic handles.
func ToEditable(cmds []vector.PathCmd) []EditablePoint {
	var pts []EditablePoint
	var cur, start vector.Pt
	last := func() *EditablePoint {
		if len(pts) == 0 {
			return nil
		}
		return &pts[len(pts)-1]
	}
	for i, c := range cmds {
		switch c.Op {
		case vector.MoveTo:
			cur = vector.Pt{X: c.Data[0], Y: c.Data[1]}
			start = cur
			pts = append(pts, EditablePoint{X: cur.X, Y: cur.Y, Kind: Corner, Start: true})
		case vector.LineTo:
			p := vector.Pt{X: c.Data[0], Y: c.Data[1]}
			if p == start && i+1 < len(cmds) && cmds[i+1].Op == vector.Close {
				// implicit closing segment
				cur = p
				continue
			}
			pts = append(pts, EditablePoint{X: p.X, Y: p.Y, Kind: Corner})
			cur = p
		case vector.CubicTo:
			if prev := last(); prev != nil {
				prev.HandleOut = &vector.Pt{X: c.Data[0], Y: c.Data[1]}
			}
			pts = append(pts, EditablePoint{
				X: c.Data[4], Y: c.Data[5], Kind: Corner,
				HandleIn: &vector.Pt{X: c.Data[2], Y: c.Data[3]},
			})
			cur = vector.Pt{X: c.Data[4], Y: c.Data[5]}
		case vector.QuadTo:
			q := vector.Pt{X: c.Data[0], Y: c.Data[1]}
			end := vector.Pt{X: c.Data[2], Y: c.Data[3]}
			c1 := cur.Add(q.Sub(cur).Scale(2.0 / 3.0))
			c2 := end.Add(q.Sub(end).Scale(2.0 / 3.0))
			if prev := last(); prev != nil {
				prev.HandleOut = &c1
			}
			pts = append(pts, EditablePoint{X: end.X, Y: end.Y, Kind: Corner, HandleIn: &c2})
			cur = end
		case vector.Close:
			if prev := last(); prev != nil {
				prev.Closes = true
			}
			cur = start
		}
	}
	return pts
}

// FromEditable writes anchors back as a description. A segment is a cubic
// when the previous anchor has an out handle or this anchor has an in handle,
// otherwise a line.
func FromEditable(points []EditablePoint) string {
	cmds := make([]string, 0, len(points))
	for i, p := range points {
		if p.Start || i == 0 {
			cmds = append(cmds, "M "+FormatNumber(p.X)+" "+FormatNumber(p.Y))
		} else {
			prev := points[i-1]
			if prev.HandleOut != nil || p.HandleIn != nil {
				c1 := vector.Pt{X: prev.X, Y: prev.Y}
				if prev.HandleOut != nil {
					c1 = *prev.HandleOut
				}
				c2 := vector.Pt{X: p.X, Y: p.Y}
				if p.HandleIn != nil {
					c2 = *p.HandleIn
				}
				cmds = append(cmds, "C "+joinNumbers(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y))
			} else {
				cmds = append(cmds, "L "+FormatNumber(p.X)+" "+FormatNumber(p.Y))
			}
		}
		if p.Closes {
			cmds = append(cmds, "Z")
		}
	}
	return strings.Join(cmds, " ")
}

// ParseEditable is Parse followed by ToEditable. Parse errors are returned
// alongside the anchors read before the fault.
func ParseEditable(d string) ([]EditablePoint, error) {
	cmds, err := Parse(d)
	return ToEditable(cmds), err
}

// AnchorBounds is the extent of the anchor positions alone.
func AnchorBounds(points []EditablePoint) vector.Rect {
	pts := make([]vector.Pt, len(points))
	for i, p := range points {
		pts[i] = vector.Pt{X: p.X, Y: p.Y}
	}
	r, _ := vector.RectFromPoints(pts)
	return r
}

func joinNumbers(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = FormatNumber(v)
	}
	return strings.Join(parts, " ")
}
