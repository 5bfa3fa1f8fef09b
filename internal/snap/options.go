/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package snap computes the positional correction applied to a shape while it
// is dragged, together with the guide lines shown for feedback.
//
// Sources are applied in a fixed priority order, independently per axis:
// grid, then object alignment or equal spacing, then exact geometry points.
// A higher priority source replaces the correction of a lower one.
package snap

const (
	DefaultGridSize       = 10
	DefaultPixelThreshold = 4
)

// Options selects the active snap sources. The zero value disables snapping;
// non-positive sizes fall back to the defaults above and a non-positive
// Scale is treated as 1.
type Options struct {
	SnapToGrid     bool    `json:"snapToGrid" yaml:"snap_to_grid"`
	SnapToObjects  bool    `json:"snapToObjects" yaml:"snap_to_objects"`
	SnapToGeometry bool    `json:"snapToGeometry" yaml:"snap_to_geometry"`
	GridSize       float64 `json:"gridSize" yaml:"grid_size"`
	// PixelThreshold is measured on screen; it shrinks in world units as the
	// view zooms in.
	PixelThreshold float64 `json:"pixelThreshold" yaml:"pixel_threshold"`
	Scale          float64 `json:"scale" yaml:"-"`
}

func DefaultOptions() Options {
	return Options{GridSize: DefaultGridSize, PixelThreshold: DefaultPixelThreshold, Scale: 1}
}

// Threshold returns the snap distance in world units.
func (o Options) Threshold() float64 {
	t := o.PixelThreshold
	if t <= 0 {
		t = DefaultPixelThreshold
	}
	s := o.Scale
	if s <= 0 {
		s = 1
	}
	return t / s
}

func (o Options) gridSize() float64 {
	if o.GridSize <= 0 {
		return DefaultGridSize
	}
	return o.GridSize
}
