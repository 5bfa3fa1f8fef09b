/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRectContainsAndInset(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	in := r.Inset(5, 5)
	if in.X != 15 || in.Y != 25 || in.W != 90 || in.H != 40 {
		t.Fatalf("unexpected inset: %+v", in)
	}
}

func TestAffineBasic(t *testing.T) {
	m := Translate(10, 5).Mul(Scale(2, 3))
	p := m.Apply(Pt{1, 1})
	if p.X != 12 || p.Y != 8 { // (1*2+10, 1*3+5)
		t.Fatalf("unexpected transform result: %+v", p)
	}
}

func TestAffineInvert(t *testing.T) {
	m := Translate(10, 5).Mul(Rotate(0.7)).Mul(Scale(2, 3))
	p := m.Invert().Apply(m.Apply(Pt{3, -4}))
	if !near(p.X, 3) || !near(p.Y, -4) {
		t.Fatalf("inverse did not round-trip: %+v", p)
	}
	if got := Scale(0, 1).Invert(); got != Identity {
		t.Fatalf("singular matrix should invert to identity, got %+v", got)
	}
}

func TestRectNormalizeClampsBadInput(t *testing.T) {
	r := Rect{X: math.NaN(), Y: 2, W: -5, H: math.Inf(1)}.Normalize()
	if r.X != 0 || r.Y != 2 || r.W != 0 || r.H != 0 {
		t.Fatalf("unexpected normalized rect: %+v", r)
	}
}

func TestRectFromPointsAndUnion(t *testing.T) {
	if _, ok := RectFromPoints(nil); ok {
		t.Fatalf("empty point set should not report bounds")
	}
	r, ok := RectFromPoints([]Pt{{3, 4}, {-1, 10}, {5, 0}})
	if !ok || r != R(-1, 0, 6, 10) {
		t.Fatalf("unexpected extents: %+v", r)
	}
	u := R(0, 0, 10, 10).Union(R(20, -5, 5, 5))
	if u != R(0, -5, 25, 15) {
		t.Fatalf("unexpected union: %+v", u)
	}
}

func TestFloatRound(t *testing.T) {
	if got := FloatRound(1.23456, 3); got != 1.235 {
		t.Fatalf("got %v", got)
	}
	if got := FloatRound(1.5, -1); got != 1.5 {
		t.Fatalf("negative places should be a no-op, got %v", got)
	}
}
