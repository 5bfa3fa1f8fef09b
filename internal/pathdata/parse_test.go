/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pathdata

import (
	"errors"
	"math"
	"testing"

	"vecdraw/internal/vector"
)

func cmd(op vector.PathOp, args ...float64) vector.PathCmd {
	c := vector.PathCmd{Op: op}
	copy(c.Data[:], args)
	return c
}

func sameCmds(a, b []vector.PathCmd) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Op != b[i].Op {
			return false
		}
		for j := range a[i].Data {
			if math.Abs(a[i].Data[j]-b[i].Data[j]) > 1e-9 {
				return false
			}
		}
	}
	return true
}

func mustParse(t *testing.T, d string) []vector.PathCmd {
	t.Helper()
	cmds, err := Parse(d)
	if err != nil {
		t.Fatalf("parse %q: %v", d, err)
	}
	return cmds
}

func TestParse_Normalization(t *testing.T) {
	cases := []struct {
		d    string
		want []vector.PathCmd
	}{
		{"M 10 10 L 20 20 Z", []vector.PathCmd{
			cmd(vector.MoveTo, 10, 10), cmd(vector.LineTo, 20, 20), cmd(vector.LineTo, 10, 10), cmd(vector.Close),
		}},
		{"m 10 10 l 10 10", []vector.PathCmd{
			cmd(vector.MoveTo, 10, 10), cmd(vector.LineTo, 20, 20),
		}},
		{"M0 0 H 10 V 5 h -3 v 2", []vector.PathCmd{
			cmd(vector.MoveTo, 0, 0), cmd(vector.LineTo, 10, 0), cmd(vector.LineTo, 10, 5),
			cmd(vector.LineTo, 7, 5), cmd(vector.LineTo, 7, 7),
		}},
		{"M0 0 10 10 20 0", []vector.PathCmd{
			cmd(vector.MoveTo, 0, 0), cmd(vector.LineTo, 10, 10), cmd(vector.LineTo, 20, 0),
		}},
		{"m1 1 2 2", []vector.PathCmd{
			cmd(vector.MoveTo, 1, 1), cmd(vector.LineTo, 3, 3),
		}},
		{"M.5.5L-1-2", []vector.PathCmd{
			cmd(vector.MoveTo, 0.5, 0.5), cmd(vector.LineTo, -1, -2),
		}},
		{"M1e1,2E0 l 1e-1 0", []vector.PathCmd{
			cmd(vector.MoveTo, 10, 2), cmd(vector.LineTo, 10.1, 2),
		}},
		{"M0 0 C 10 0 20 10 30 10 S 50 20 60 10", []vector.PathCmd{
			cmd(vector.MoveTo, 0, 0), cmd(vector.CubicTo, 10, 0, 20, 10, 30, 10), cmd(vector.CubicTo, 40, 10, 50, 20, 60, 10),
		}},
		{"M0 0 s 10 10 20 0", []vector.PathCmd{
			cmd(vector.MoveTo, 0, 0), cmd(vector.CubicTo, 0, 0, 10, 10, 20, 0),
		}},
		{"M0 0 Q 10 10 20 0 T 40 0", []vector.PathCmd{
			cmd(vector.MoveTo, 0, 0), cmd(vector.QuadTo, 10, 10, 20, 0), cmd(vector.QuadTo, 30, -10, 40, 0),
		}},
		{"M0 0 L 5 5 t 10 0", []vector.PathCmd{
			cmd(vector.MoveTo, 0, 0), cmd(vector.LineTo, 5, 5), cmd(vector.QuadTo, 5, 5, 15, 5),
		}},
		{"M 10 10 l 5 0 z l 0 5", []vector.PathCmd{
			cmd(vector.MoveTo, 10, 10), cmd(vector.LineTo, 15, 10), cmd(vector.LineTo, 10, 10), cmd(vector.Close),
			cmd(vector.MoveTo, 10, 10), cmd(vector.LineTo, 10, 15),
		}},
		{"M0 0 A 0 10 0 0 1 20 0", []vector.PathCmd{
			cmd(vector.MoveTo, 0, 0), cmd(vector.CubicTo, 0, 0, 20, 0, 20, 0),
		}},
		{"M5 5 A 10 10 0 0 1 5 5", []vector.PathCmd{
			cmd(vector.MoveTo, 5, 5),
		}},
	}
	for _, tc := range cases {
		got := mustParse(t, tc.d)
		if !sameCmds(got, tc.want) {
			t.Fatalf("%q:\n got  %+v\n want %+v", tc.d, got, tc.want)
		}
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, d := range []string{"", "   ", " ,\n"} {
		cmds, err := Parse(d)
		if err != nil || len(cmds) != 0 {
			t.Fatalf("%q: expected no commands and no error, got %+v %v", d, cmds, err)
		}
	}
}

func TestParse_ArcIsSplitIntoQuarterTurns(t *testing.T) {
	cmds := mustParse(t, "M 0 0 A 10 10 0 0 1 20 0")
	if len(cmds) != 3 {
		t.Fatalf("half circle should become two cubics, got %+v", cmds)
	}
	end, _ := cmds[2].End()
	if math.Abs(end.X-20) > 1e-3 || math.Abs(end.Y) > 1e-3 {
		t.Fatalf("unexpected arc end: %+v", end)
	}
	mid, _ := cmds[1].End()
	// sweep-flag 1 goes through positive-angle direction: the top of the circle in y-down space
	if math.Abs(mid.X-10) > 1e-9 || math.Abs(math.Abs(mid.Y)-10) > 1e-9 {
		t.Fatalf("unexpected arc midpoint: %+v", mid)
	}
}

func TestParse_ArcCompactFlagsAndRadiusCorrection(t *testing.T) {
	cmds := mustParse(t, "M0 0a10 10 0 0120 0")
	end, _ := cmds[len(cmds)-1].End()
	if end != (vector.Pt{X: 20, Y: 0}) {
		t.Fatalf("unexpected end of compact arc: %+v", end)
	}

	// radius 1 cannot span 20 units; it is scaled up to 10
	cmds = mustParse(t, "M0 0 A 1 1 0 0 0 20 0")
	if len(cmds) != 3 {
		t.Fatalf("expected a corrected half circle, got %d commands", len(cmds))
	}
	mid, _ := cmds[1].End()
	if math.Abs(mid.X-10) > 1e-9 || math.Abs(math.Abs(mid.Y)-10) > 1e-9 {
		t.Fatalf("unexpected corrected midpoint: %+v", mid)
	}
}

func TestParse_LargeArcSweepsMoreThanHalf(t *testing.T) {
	cmds := mustParse(t, "M 0 0 A 10 10 0 1 1 10 10")
	// a three-quarter turn needs three segments
	if len(cmds) != 4 {
		t.Fatalf("expected three cubic segments, got %+v", cmds)
	}
}

func TestParse_FailsSoft(t *testing.T) {
	cases := []struct {
		d      string
		keep   int
		offset int
	}{
		{"M 0 0 L 10", 1, 6},
		{"L 10 10", 0, 0},
		{"M 0 0 L 10 10 X 5", 2, 14},
		{"M 0 0 A 5 5 0 2 0 10 10", 1, 6},
		{"10 10", 0, 0},
		{"M 0 0 Z 5", 3, 8},
		{"M 0 0 L 1 1 #", 2, 12},
	}
	for _, tc := range cases {
		cmds, err := Parse(tc.d)
		if err == nil {
			t.Fatalf("%q: expected an error", tc.d)
		}
		if !errors.Is(err, ErrSyntax) {
			t.Fatalf("%q: error should wrap ErrSyntax: %v", tc.d, err)
		}
		var se *SyntaxError
		if !errors.As(err, &se) || se.Offset != tc.offset {
			t.Fatalf("%q: unexpected syntax error %+v", tc.d, se)
		}
		if len(cmds) != tc.keep {
			t.Fatalf("%q: expected %d commands kept, got %+v", tc.d, tc.keep, cmds)
		}
	}
}
