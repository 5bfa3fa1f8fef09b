/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"vecdraw/internal/gradient"
	"vecdraw/internal/render"
)

// SVG writes calls as an SVG document whose viewBox is the export frame.
// Fills are emitted as their triangle meshes so the file draws exactly the
// tessellated geometry.
func SVG(w io.Writer, calls []render.DrawCall, opt Options) error {
	frame := Frame(calls, opt)
	s := opt.scale()
	pxW := int(math.Round(frame.W * s))
	pxH := int(math.Round(frame.H * s))

	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"%g %g %g %g\">\n", pxW, pxH, frame.X, frame.Y, frame.W, frame.H)
	if opt.Background.A > 0 {
		wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", frame.X, frame.Y, frame.W, frame.H, gradient.Hex(opt.Background))
	}

	var defs []string
	for i := range calls {
		if u := calls[i].FillGradient; u != nil {
			defs = append(defs, gradientDef(fmt.Sprintf("g%d", i), u))
		}
	}
	if len(defs) > 0 {
		wf("  <defs>\n%s  </defs>\n", strings.Join(defs, ""))
	}

	for i := range calls {
		dc := &calls[i]
		wf("  <g id=\"%s\"%s>\n", escAttr(dc.ID), transformAttr(dc))
		if dc.Href != "" {
			b := dc.Bounds.Translate(-dc.Offset.X, -dc.Offset.Y)
			wf("    <image x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" href=\"%s\" preserveAspectRatio=\"none\"/>\n", b.X, b.Y, b.W, b.H, escAttr(dc.Href))
		}
		if len(dc.Fill) >= 6 {
			paint, alpha := svgPaint(dc.FillColor), dc.FillColor[3]
			if dc.FillGradient != nil {
				paint, alpha = fmt.Sprintf("url(#g%d)", i), dc.FillGradient.Opacity
			}
			wf("    <path d=\"%s\" fill=\"%s\" fill-opacity=\"%s\" stroke=\"none\"/>\n", meshPath(dc.Fill), paint, f32(alpha))
		}
		if len(dc.Stroke) >= 4 {
			wf("    <path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-opacity=\"%s\" stroke-width=\"%g\" stroke-linecap=\"round\"/>\n",
				segmentPath(dc.Stroke), svgPaint(dc.StrokeColor), f32(dc.StrokeColor[3]), dc.StrokeWidth)
		}
		wf("  </g>\n")
	}
	wf("</svg>\n")

	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func transformAttr(dc *render.DrawCall) string {
	var parts []string
	if dc.Rotation != 0 {
		parts = append(parts, fmt.Sprintf("rotate(%g %g %g)", dc.Rotation*180/math.Pi, dc.Center.X, dc.Center.Y))
	}
	if dc.Offset.X != 0 || dc.Offset.Y != 0 {
		parts = append(parts, fmt.Sprintf("translate(%g %g)", dc.Offset.X, dc.Offset.Y))
	}
	if len(parts) == 0 {
		return ""
	}
	return " transform=\"" + strings.Join(parts, " ") + "\""
}

func gradientDef(id string, u *gradient.Uniforms) string {
	var b strings.Builder
	c := u.Coords
	if u.Type == 1 {
		fmt.Fprintf(&b, "    <radialGradient id=\"%s\" cx=\"%s\" cy=\"%s\" r=\"%s\">\n", id, f32(c[0]), f32(c[1]), f32(c[2]))
	} else {
		fmt.Fprintf(&b, "    <linearGradient id=\"%s\" x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\">\n", id, f32(c[0]), f32(c[1]), f32(c[2]), f32(c[3]))
	}
	for i := 0; i < int(u.StopCount); i++ {
		sc := u.StopColors[i]
		fmt.Fprintf(&b, "      <stop offset=\"%s\" stop-color=\"%s\" stop-opacity=\"%s\"/>\n", f32(u.StopOffsets[i]), svgPaint(sc), f32(sc[3]))
	}
	if u.Type == 1 {
		b.WriteString("    </radialGradient>\n")
	} else {
		b.WriteString("    </linearGradient>\n")
	}
	return b.String()
}

func meshPath(tris []float32) string {
	var b strings.Builder
	for i := 0; i+5 < len(tris); i += 6 {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "M%s %sL%s %sL%s %sZ", f32(tris[i]), f32(tris[i+1]), f32(tris[i+2]), f32(tris[i+3]), f32(tris[i+4]), f32(tris[i+5]))
	}
	return b.String()
}

func segmentPath(segs []float32) string {
	var b strings.Builder
	for i := 0; i+3 < len(segs); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "M%s %sL%s %s", f32(segs[i]), f32(segs[i+1]), f32(segs[i+2]), f32(segs[i+3]))
	}
	return b.String()
}

func f32(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }

func svgPaint(c [4]float32) string {
	n := toNRGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func escAttr(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			out = append(out, "&quot;"...)
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '\n':
			out = append(out, ' ')
		case '\r':
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
