/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"vecdraw/internal/gradient"
	"vecdraw/internal/pathdata"
	"vecdraw/internal/typeid"
	"vecdraw/internal/vector"
)

// Decode reads a JSON or YAML document, validates it and builds the scene.
// Shapes and gradients without an id get a fresh one.
func Decode(data []byte) (*Scene, error) {
	js, err := toJSON(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(js); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(js, &doc); err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}
	return FromDocument(&doc)
}

// toJSON passes JSON through and converts anything else from YAML.
func toJSON(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return trimmed, nil
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("scene: yaml: %w", err)
	}
	js, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("scene: yaml: %w", err)
	}
	return js, nil
}

type decoder struct {
	gradients map[string]*gradient.Gradient
	seen      map[string]struct{}
	problems  []string
}

func (d *decoder) fail(format string, args ...any) {
	d.problems = append(d.problems, fmt.Sprintf(format, args...))
}

// FromDocument builds a scene from an already parsed document. Gradient
// references and shape ids are checked here; everything else is the
// schema's job.
func FromDocument(doc *Document) (*Scene, error) {
	if doc.Version != Version {
		return nil, &ValidationError{Problems: []string{fmt.Sprintf("version: unsupported %d", doc.Version)}}
	}
	d := &decoder{
		gradients: make(map[string]*gradient.Gradient, len(doc.Gradients)),
		seen:      make(map[string]struct{}),
	}
	for i := range doc.Gradients {
		g := d.gradient(&doc.Gradients[i])
		if _, dup := d.gradients[g.ID]; dup {
			d.fail("gradients[%d]: duplicate id %q", i, g.ID)
			continue
		}
		d.gradients[g.ID] = g
	}
	shapes := make([]vector.Shape, 0, len(doc.Shapes))
	for i := range doc.Shapes {
		if s := d.shape(&doc.Shapes[i], fmt.Sprintf("shapes[%d]", i)); s != nil {
			shapes = append(shapes, s)
		}
	}
	if len(d.problems) > 0 {
		return nil, &ValidationError{Problems: d.problems}
	}
	return &Scene{Shapes: shapes, Gradients: d.gradients}, nil
}

func (d *decoder) gradient(gd *GradientDoc) *gradient.Gradient {
	g := &gradient.Gradient{ID: gd.ID, Units: gradient.Units(gd.Units)}
	if g.ID == "" {
		g.ID = typeid.NewGradientID()
	}
	if g.Units == "" {
		g.Units = gradient.ObjectBoundingBox
	}
	switch strings.ToLower(gd.Type) {
	case "radial", "radialgradient":
		g.Type = gradient.Radial
		g.CX = or(gd.CX, 0.5)
		g.CY = or(gd.CY, 0.5)
		g.R = or(gd.R, 0.5)
		g.FX, g.FY = gd.FX, gd.FY
	default:
		g.Type = gradient.Linear
		g.X1 = or(gd.X1, 0)
		g.Y1 = or(gd.Y1, 0)
		g.X2 = or(gd.X2, 1)
		g.Y2 = or(gd.Y2, 0)
	}
	stops := make([]gradient.Stop, 0, len(gd.Stops))
	for _, s := range gd.Stops {
		stops = append(stops, gradient.Stop{Offset: s.Offset, Color: s.Color, Opacity: or(s.Opacity, 1)})
	}
	g.Stops = gradient.SortStops(stops)
	return g
}

func (d *decoder) id(want, prefix, where string) string {
	if want == "" {
		want = typeid.New(prefix)
	}
	if _, dup := d.seen[want]; dup {
		d.fail("%s: duplicate id %q", where, want)
	}
	d.seen[want] = struct{}{}
	return want
}

func (d *decoder) shape(sd *ShapeDoc, where string) vector.Shape {
	prefix := typeid.PrefixShape
	if sd.Type == string(vector.KindGroup) {
		prefix = typeid.PrefixGroup
	}
	c := vector.Common{
		ID:           d.id(sd.ID, prefix, where),
		Name:         sd.Name,
		Rotation:     sd.Rotation,
		Opacity:      or(sd.Opacity, 1),
		Hidden:       sd.Visible != nil && !*sd.Visible,
		Locked:       sd.Locked,
		AspectLocked: sd.AspectRatioLocked,
	}
	c.Fill = d.fill(sd, where)
	if sd.Stroke != nil {
		c.Stroke = d.stroke(sd.Stroke, where)
	}

	switch vector.Kind(sd.Type) {
	case vector.KindRect:
		return &vector.RectShape{Common: c, X: sd.X, Y: sd.Y, W: sd.Width, H: sd.Height, RX: sd.RX, RY: sd.RY}
	case vector.KindEllipse:
		return &vector.EllipseShape{Common: c, CX: sd.CX, CY: sd.CY, RX: sd.RX, RY: sd.RY}
	case vector.KindLine:
		return &vector.LineShape{Common: c, X1: sd.X1, Y1: sd.Y1, X2: sd.X2, Y2: sd.Y2}
	case vector.KindPath:
		p := &vector.PathShape{Common: c, D: sd.D}
		if sd.Bounds != nil {
			p.Bounds = vector.R(sd.Bounds.X, sd.Bounds.Y, sd.Bounds.Width, sd.Bounds.Height)
		} else {
			// Malformed data keeps the commands parsed before the error.
			cmds, _ := pathdata.Parse(sd.D)
			p.Bounds = pathdata.CurveBounds(cmds)
		}
		return p
	case vector.KindPolygon:
		return &vector.PolygonShape{Common: c, Points: points(sd.Points)}
	case vector.KindPolyline:
		return &vector.PolylineShape{Common: c, Points: points(sd.Points)}
	case vector.KindText:
		return &vector.TextShape{Common: c, X: sd.X, Y: sd.Y, Text: sd.Text, FontSize: sd.FontSize, FontFamily: sd.FontFamily}
	case vector.KindImage:
		return &vector.ImageShape{Common: c, X: sd.X, Y: sd.Y, W: sd.Width, H: sd.Height, Href: sd.Href}
	case vector.KindGroup:
		g := &vector.GroupShape{Common: c, Children: make([]vector.Shape, 0, len(sd.Children))}
		for i := range sd.Children {
			if ch := d.shape(&sd.Children[i], fmt.Sprintf("%s.children[%d]", where, i)); ch != nil {
				g.Children = append(g.Children, ch)
			}
		}
		return g
	}
	d.fail("%s: unknown type %q", where, sd.Type)
	return nil
}

func (d *decoder) fill(sd *ShapeDoc, where string) vector.Fill {
	f := vector.Fill{Opacity: or(sd.FillOpacity, 1)}
	f.Rule = vector.ParseFillRule(sd.FillRule)
	f.Color, f.Gradient, f.Enabled = d.paint(sd.Fill, where+".fill")
	return f
}

func (d *decoder) stroke(sd *StrokeDoc, where string) vector.Stroke {
	s := vector.Stroke{
		Width:    sd.Width,
		Opacity:  or(sd.Opacity, 1),
		MiterLim: sd.MiterLimit,
		Dash:     sd.DashArray,
	}
	if s.MiterLim == 0 {
		s.MiterLim = 4
	}
	s.Cap = vector.ParseLineCap(sd.LineCap)
	s.Join = vector.ParseLineJoin(sd.LineJoin)
	var on bool
	s.Color, s.Gradient, on = d.paint(sd.Color, where+".stroke")
	s.Enabled = on && s.Width > 0
	return s
}

// paint resolves a paint value: null or "none" disables it, a string is a
// color and an object references a gradient.
func (d *decoder) paint(raw json.RawMessage, where string) (vector.Color, string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return vector.Color{}, "", false
	}
	if raw[0] == '{' {
		var ref PaintRef
		if err := json.Unmarshal(raw, &ref); err != nil {
			d.fail("%s: %v", where, err)
			return vector.Color{}, "", false
		}
		if ref.Type != "" && ref.Type != "gradient" {
			d.fail("%s: unsupported paint type %q", where, ref.Type)
			return vector.Color{}, "", false
		}
		if _, ok := d.gradients[ref.Ref]; !ok {
			d.fail("%s: unknown gradient %q", where, ref.Ref)
			return vector.Color{}, "", false
		}
		return vector.Color{}, ref.Ref, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		d.fail("%s: %v", where, err)
		return vector.Color{}, "", false
	}
	if strings.EqualFold(strings.TrimSpace(s), "none") {
		return vector.Color{}, "", false
	}
	c, err := gradient.ParseColor(s)
	if err != nil {
		d.fail("%s: %v", where, err)
		return vector.Color{}, "", false
	}
	return c, "", true
}

func points(ps []PointDoc) []vector.Pt {
	out := make([]vector.Pt, len(ps))
	for i, p := range ps {
		out[i] = vector.Pt{X: p.X, Y: p.Y}
	}
	return out
}

func or(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
