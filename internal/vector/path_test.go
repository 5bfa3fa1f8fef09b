/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestControlBounds_QuadAndCubic(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.QuadTo(10, 10, 20, 0)
	p.CubicTo(30, -10, 40, 10, 50, 0)
	p.Close()

	b := ControlBounds(p.Cmds)
	// control points are included, so extremes come from them
	if b.X != 0 || b.Y != -10 || b.W != 50 || b.H != 20 {
		t.Fatalf("unexpected bounds: %+v", b)
	}
}

func TestPathCmd_EndAndArgs(t *testing.T) {
	c := PathCmd{Op: CubicTo, Data: [6]float64{1, 2, 3, 4, 5, 6}}
	if e, ok := c.End(); !ok || e != (Pt{5, 6}) {
		t.Fatalf("unexpected end: %+v %v", e, ok)
	}
	if len(c.Args()) != 6 {
		t.Fatalf("cubic should expose 6 args")
	}
	if _, ok := (PathCmd{Op: Close}).End(); ok {
		t.Fatalf("close has no end point of its own")
	}
	if CubicTo.String() != "C" || Close.String() != "Z" {
		t.Fatalf("unexpected op letters")
	}
}

func TestTransformPath_MapRect(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(10, 20)
	p.Close()
	m := MapRect(R(0, 0, 10, 20), R(100, 100, 20, 10))
	out := TransformPath(p.Cmds, m)
	if e, _ := out[0].End(); e != (Pt{100, 100}) {
		t.Fatalf("unexpected start: %+v", e)
	}
	if e, _ := out[1].End(); e != (Pt{120, 110}) {
		t.Fatalf("unexpected end: %+v", e)
	}
	if out[2].Op != Close {
		t.Fatalf("close must survive transform")
	}
	if e, _ := p.Cmds[1].End(); e != (Pt{10, 20}) {
		t.Fatalf("input must not be mutated")
	}
}

func TestMapRect_ZeroSizeSource(t *testing.T) {
	m := MapRect(R(5, 5, 0, 10), R(0, 0, 50, 20))
	p := m.Apply(Pt{5, 15})
	if p.X != 0 || p.Y != 20 {
		t.Fatalf("unexpected mapping: %+v", p)
	}
}
