/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"vecdraw/internal/gradient"
	"vecdraw/internal/vector"
)

// ToDocument converts a scene to its wire form. Gradients are ordered by id
// so output is stable.
func ToDocument(s *Scene) *Document {
	doc := &Document{Version: Version, Shapes: make([]ShapeDoc, 0, len(s.Shapes))}
	for _, sh := range s.Shapes {
		doc.Shapes = append(doc.Shapes, shapeDoc(sh))
	}
	ids := make([]string, 0, len(s.Gradients))
	for id := range s.Gradients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		doc.Gradients = append(doc.Gradients, gradientDoc(s.Gradients[id]))
	}
	return doc
}

// EncodeJSON writes the scene as indented JSON.
func EncodeJSON(s *Scene) ([]byte, error) {
	data, err := json.MarshalIndent(ToDocument(s), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("scene: encode: %w", err)
	}
	return append(data, '\n'), nil
}

// EncodeYAML writes the scene as YAML using the same field names as JSON.
func EncodeYAML(s *Scene) ([]byte, error) {
	js, err := json.Marshal(ToDocument(s))
	if err != nil {
		return nil, fmt.Errorf("scene: encode: %w", err)
	}
	var v any
	if err := yaml.Unmarshal(js, &v); err != nil {
		return nil, fmt.Errorf("scene: encode: %w", err)
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("scene: encode: %w", err)
	}
	return out, nil
}

func shapeDoc(s vector.Shape) ShapeDoc {
	c := s.Base()
	sd := ShapeDoc{
		Type:              string(s.Kind()),
		ID:                c.ID,
		Name:              c.Name,
		Rotation:          c.Rotation,
		Locked:            c.Locked,
		AspectRatioLocked: c.AspectLocked,
	}
	if c.Opacity != 1 {
		sd.Opacity = ptr(c.Opacity)
	}
	if c.Hidden {
		sd.Visible = ptr(false)
	}
	if c.Fill.Enabled {
		sd.Fill = paintJSON(c.Fill.Color, c.Fill.Gradient)
		if c.Fill.Opacity != 1 {
			sd.FillOpacity = ptr(c.Fill.Opacity)
		}
		if c.Fill.Rule != vector.NonZero {
			sd.FillRule = c.Fill.Rule.String()
		}
	}
	if c.Stroke.Enabled {
		sd.Stroke = strokeDoc(&c.Stroke)
	}

	switch v := s.(type) {
	case *vector.RectShape:
		sd.X, sd.Y, sd.Width, sd.Height, sd.RX, sd.RY = v.X, v.Y, v.W, v.H, v.RX, v.RY
	case *vector.EllipseShape:
		sd.CX, sd.CY, sd.RX, sd.RY = v.CX, v.CY, v.RX, v.RY
	case *vector.LineShape:
		sd.X1, sd.Y1, sd.X2, sd.Y2 = v.X1, v.Y1, v.X2, v.Y2
	case *vector.PathShape:
		sd.D = v.D
		sd.Bounds = &BoundsDoc{X: v.Bounds.X, Y: v.Bounds.Y, Width: v.Bounds.W, Height: v.Bounds.H}
	case *vector.PolygonShape:
		sd.Points = pointDocs(v.Points)
	case *vector.PolylineShape:
		sd.Points = pointDocs(v.Points)
	case *vector.TextShape:
		sd.X, sd.Y, sd.Text, sd.FontSize, sd.FontFamily = v.X, v.Y, v.Text, v.FontSize, v.FontFamily
	case *vector.ImageShape:
		sd.X, sd.Y, sd.Width, sd.Height, sd.Href = v.X, v.Y, v.W, v.H, v.Href
	case *vector.GroupShape:
		sd.Children = make([]ShapeDoc, 0, len(v.Children))
		for _, ch := range v.Children {
			sd.Children = append(sd.Children, shapeDoc(ch))
		}
	}
	return sd
}

func strokeDoc(s *vector.Stroke) *StrokeDoc {
	sd := &StrokeDoc{
		Color:      paintJSON(s.Color, s.Gradient),
		Width:      s.Width,
		DashArray:  s.Dash,
		MiterLimit: s.MiterLim,
	}
	if s.Opacity != 1 {
		sd.Opacity = ptr(s.Opacity)
	}
	if s.Cap != vector.CapButt {
		sd.LineCap = s.Cap.String()
	}
	if s.Join != vector.JoinMiter {
		sd.LineJoin = s.Join.String()
	}
	return sd
}

func paintJSON(c vector.Color, gradientID string) json.RawMessage {
	var v any
	switch {
	case gradientID != "":
		v = PaintRef{Ref: gradientID, Type: "gradient"}
	case c.A == 255:
		v = gradient.Hex(c)
	default:
		v = fmt.Sprintf("%s%02x", gradient.Hex(c), c.A)
	}
	b, _ := json.Marshal(v)
	return b
}

func gradientDoc(g *gradient.Gradient) GradientDoc {
	gd := GradientDoc{ID: g.ID, Type: string(g.Type), Units: string(g.Units)}
	if g.Type == gradient.Radial {
		gd.CX, gd.CY, gd.R = ptr(g.CX), ptr(g.CY), ptr(g.R)
		gd.FX, gd.FY = g.FX, g.FY
	} else {
		gd.X1, gd.Y1, gd.X2, gd.Y2 = ptr(g.X1), ptr(g.Y1), ptr(g.X2), ptr(g.Y2)
	}
	for _, s := range g.Stops {
		gd.Stops = append(gd.Stops, StopDoc{Offset: s.Offset, Color: s.Color, Opacity: ptr(s.Opacity)})
	}
	return gd
}

func pointDocs(ps []vector.Pt) []PointDoc {
	out := make([]PointDoc, len(ps))
	for i, p := range ps {
		out[i] = PointDoc{X: p.X, Y: p.Y}
	}
	return out
}

func ptr[T any](v T) *T { return &v }
