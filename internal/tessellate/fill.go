/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tessellate

import (
	"log/slog"

	"vecdraw/internal/vector"
)

// Tessellator converts path commands into vertex buffers. The zero value
// uses DefaultSegments and PolyclipUnion.
type Tessellator struct {
	Segments int
	Union    PolygonUnion
	Logger   *slog.Logger
}

func (t Tessellator) segments() int {
	if t.Segments < 1 {
		return DefaultSegments
	}
	return t.Segments
}

func (t Tessellator) union() PolygonUnion {
	if t.Union == nil {
		return PolyclipUnion{}
	}
	return t.Union
}

// Fill returns a flat x,y triangle list covering the filled area of cmds.
// Holes cut by nested sub-paths are left empty. Zero rings, or rings that
// collapse to no area, produce an empty buffer.
func (t Tessellator) Fill(cmds []vector.PathCmd) []float32 {
	rings := Rings(cmds, t.segments())
	if len(rings) == 0 {
		return nil
	}
	var out []float32
	for _, poly := range t.union().Union(rings) {
		tris, ok := Triangulate(poly)
		if !ok && t.Logger != nil {
			t.Logger.Warn("ear clipping stalled; remainder fanned", "outer_vertices", len(poly.Outer), "holes", len(poly.Holes))
		}
		for _, p := range tris {
			out = append(out, float32(p.X), float32(p.Y))
		}
	}
	return out
}

// Stroke returns segment pairs tracing every sub-path of cmds.
func (t Tessellator) Stroke(cmds []vector.PathCmd) []float32 {
	return StrokeVertices(cmds, t.segments())
}

// FillVertices tessellates with n segments per curve and the default union.
func FillVertices(cmds []vector.PathCmd, n int) []float32 {
	return Tessellator{Segments: n}.Fill(cmds)
}
