/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene reads and writes scene documents: a versioned list of
// shapes and gradients in JSON or YAML. Documents are validated against an
// embedded JSON schema before they are decoded into vector shapes.
package scene

import (
	"encoding/json"

	"vecdraw/internal/gradient"
	"vecdraw/internal/vector"
)

// Version is the document version this package reads and writes.
const Version = 1

// Scene is a decoded document.
type Scene struct {
	Shapes    []vector.Shape
	Gradients map[string]*gradient.Gradient
}

// Find returns the shape with id anywhere in the tree.
func (s *Scene) Find(id string) vector.Shape { return vector.Find(s.Shapes, id) }

// Document is the wire form. Paint fields hold a color string, a
// {"ref": id, "type": "gradient"} reference, or null.
type Document struct {
	Version   int           `json:"version"`
	Shapes    []ShapeDoc    `json:"shapes"`
	Gradients []GradientDoc `json:"gradients,omitempty"`
}

type PaintRef struct {
	Ref  string `json:"ref"`
	Type string `json:"type,omitempty"`
}

type StrokeDoc struct {
	Color      json.RawMessage `json:"color,omitempty"`
	Width      float64         `json:"width"`
	Opacity    *float64        `json:"opacity,omitempty"`
	DashArray  []float64       `json:"dashArray,omitempty"`
	LineCap    string          `json:"lineCap,omitempty"`
	LineJoin   string          `json:"lineJoin,omitempty"`
	MiterLimit float64         `json:"miterLimit,omitempty"`
}

type BoundsDoc struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type PointDoc struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ShapeDoc carries the fields of every kind; Type selects which apply.
type ShapeDoc struct {
	Type              string          `json:"type"`
	ID                string          `json:"id,omitempty"`
	Name              string          `json:"name,omitempty"`
	Rotation          float64         `json:"rotation,omitempty"`
	Opacity           *float64        `json:"opacity,omitempty"`
	Fill              json.RawMessage `json:"fill,omitempty"`
	FillOpacity       *float64        `json:"fillOpacity,omitempty"`
	FillRule          string          `json:"fillRule,omitempty"`
	Stroke            *StrokeDoc      `json:"stroke,omitempty"`
	Visible           *bool           `json:"visible,omitempty"`
	Locked            bool            `json:"locked,omitempty"`
	AspectRatioLocked bool            `json:"aspectRatioLocked,omitempty"`

	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	RX     float64 `json:"rx,omitempty"`
	RY     float64 `json:"ry,omitempty"`
	CX     float64 `json:"cx,omitempty"`
	CY     float64 `json:"cy,omitempty"`
	X1     float64 `json:"x1,omitempty"`
	Y1     float64 `json:"y1,omitempty"`
	X2     float64 `json:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty"`

	D      string     `json:"d,omitempty"`
	Bounds *BoundsDoc `json:"bounds,omitempty"`
	Points []PointDoc `json:"points,omitempty"`

	Text       string  `json:"text,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`

	Href     string     `json:"href,omitempty"`
	Children []ShapeDoc `json:"children,omitempty"`
}

type StopDoc struct {
	Offset  float64  `json:"offset"`
	Color   string   `json:"color"`
	Opacity *float64 `json:"opacity,omitempty"`
}

// GradientDoc accepts both the short type names and the SVG element names
// (linearGradient, radialGradient). Missing coordinates take SVG defaults.
type GradientDoc struct {
	ID    string    `json:"id,omitempty"`
	Type  string    `json:"type"`
	Stops []StopDoc `json:"stops"`
	Units string    `json:"gradientUnits,omitempty"`

	X1 *float64 `json:"x1,omitempty"`
	Y1 *float64 `json:"y1,omitempty"`
	X2 *float64 `json:"x2,omitempty"`
	Y2 *float64 `json:"y2,omitempty"`
	CX *float64 `json:"cx,omitempty"`
	CY *float64 `json:"cy,omitempty"`
	R  *float64 `json:"r,omitempty"`
	FX *float64 `json:"fx,omitempty"`
	FY *float64 `json:"fy,omitempty"`
}
