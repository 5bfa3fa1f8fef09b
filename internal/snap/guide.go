/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import "vecdraw/internal/vector"

type GuideType string

const (
	GuideAlignment GuideType = "alignment"
	GuideSpacing   GuideType = "spacing"
	GuideCenter    GuideType = "center"
)

// Guide is a purely descriptive overlay hint. Alignment guides carry Axis,
// Position and a Start/End segment; spacing guides a segment and a Label with
// the rounded gap; center guides only At. Position is always encoded so an
// alignment at 0 keeps it.
type Guide struct {
	Type     GuideType `json:"type"`
	Axis     string    `json:"axis,omitempty"`
	Position float64   `json:"position"`
	Start    vector.Pt `json:"start"`
	End      vector.Pt `json:"end"`
	At       vector.Pt `json:"at"`
	Label    string    `json:"label,omitempty"`
}

func alignmentX(x, y1, y2 float64) Guide {
	return Guide{Type: GuideAlignment, Axis: "x", Position: x, Start: vector.Pt{X: x, Y: y1}, End: vector.Pt{X: x, Y: y2}}
}

func alignmentY(y, x1, x2 float64) Guide {
	return Guide{Type: GuideAlignment, Axis: "y", Position: y, Start: vector.Pt{X: x1, Y: y}, End: vector.Pt{X: x2, Y: y}}
}

func spacing(a, b vector.Pt, label string) Guide {
	return Guide{Type: GuideSpacing, Start: a, End: b, Label: label}
}

func center(p vector.Pt) Guide { return Guide{Type: GuideCenter, At: p} }
