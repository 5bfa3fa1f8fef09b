/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package kernel

import (
	"vecdraw/internal/snap"
	"vecdraw/internal/vector"
)

// SnapCandidates collects candidate boxes and points from every visible
// top-level shape whose id is not in exclude, in stacking order. Group
// children contribute points; the group contributes one box. A group holding
// an excluded shape contributes no box of its own and its remaining children
// are collected one by one.
func (k *Kernel) SnapCandidates(shapes []vector.Shape, exclude map[string]struct{}) ([]snap.Box, []vector.Pt) {
	var boxes []snap.Box
	var points []vector.Pt
	var collect func(s vector.Shape)
	collect = func(s vector.Shape) {
		b := s.Base()
		if b.Hidden {
			return
		}
		if _, skip := exclude[b.ID]; skip {
			return
		}
		if g, ok := s.(*vector.GroupShape); ok && holdsAny(g, exclude) {
			for _, c := range g.Children {
				collect(c)
			}
			return
		}
		box := snap.BoxFromRect(k.Bounds(s))
		box.ID = b.ID
		boxes = append(boxes, box)
		for _, leaf := range vector.Flatten([]vector.Shape{s}) {
			if leaf.Base().Hidden {
				continue
			}
			if p, ok := leaf.(*vector.PathShape); ok {
				fresh := *p
				fresh.Bounds = k.PathBounds(p)
				leaf = &fresh
			}
			points = append(points, snap.CandidatePoints(leaf)...)
		}
	}
	for _, s := range shapes {
		collect(s)
	}
	return boxes, points
}

func holdsAny(g *vector.GroupShape, ids map[string]struct{}) bool {
	for id := range vector.DescendantIDs(g.Children) {
		if _, ok := ids[id]; ok {
			return true
		}
	}
	return false
}

// SnapMove snaps the shape with the given id, proposed to move by (dx, dy),
// against the rest of the scene. The returned result is the extra correction
// on top of (dx, dy).
func (k *Kernel) SnapMove(shapes []vector.Shape, id string, dx, dy float64, opts snap.Options) (snap.Result, bool) {
	moving := vector.Find(shapes, id)
	if moving == nil {
		return snap.Result{}, false
	}
	exclude := vector.DescendantIDs([]vector.Shape{moving})
	boxes, points := k.SnapCandidates(shapes, exclude)
	proj := snap.ProjectedBounds(snap.BoxFromRect(k.Bounds(moving)), dx, dy)
	return snap.Compute(proj, boxes, points, opts), true
}
