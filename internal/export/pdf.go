/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"vecdraw/internal/render"
	"vecdraw/internal/tessellate"
)

// PDF writes calls onto a single page the size of the export frame, one
// point per scene unit with the origin at the top left.
//
// gofpdf gradients blend two colors, so a fill gradient is drawn from its
// first to its last stop.
func PDF(w io.Writer, calls []render.DrawCall, opt Options) error {
	frame := Frame(calls, opt)
	size := gofpdf.SizeType{Wd: frame.W, Ht: frame.H}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: size})
	pdf.SetCreator("vecdraw", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPageFormat("", size)

	if opt.Background.A > 0 {
		setFillColor(pdf, opt.Background.Floats())
		pdf.Rect(0, 0, frame.W, frame.H, "F")
	}
	pdf.SetLineCapStyle("round")

	for i := range calls {
		dc := &calls[i]
		local := func(x, y float32) gofpdf.PointType {
			return gofpdf.PointType{X: float64(x) + dc.Offset.X - frame.X, Y: float64(y) + dc.Offset.Y - frame.Y}
		}
		pdf.TransformBegin()
		if dc.Rotation != 0 {
			// gofpdf rotates counter-clockwise in a y-up sense.
			pdf.TransformRotate(-dc.Rotation*180/math.Pi, dc.Center.X-frame.X, dc.Center.Y-frame.Y)
		}
		if len(dc.Fill) >= 6 {
			if u := dc.FillGradient; u != nil && u.StopCount > 0 {
				box, _ := tessellate.Bounds(dc.Fill)
				ox, oy := box.X+dc.Offset.X-frame.X, box.Y+dc.Offset.Y-frame.Y
				first, last := u.StopColors[0], u.StopColors[u.StopCount-1]
				r1, g1, b1 := rgb255(first)
				r2, g2, b2 := rgb255(last)
				pdf.SetAlpha(float64(u.Opacity*first[3]), "Normal")
				for j := 0; j+5 < len(dc.Fill); j += 6 {
					pdf.ClipPolygon(triangle(dc.Fill[j:j+6], local), false)
					c := u.Coords
					if u.Type == 1 {
						pdf.RadialGradient(ox, oy, box.W, box.H, r1, g1, b1, r2, g2, b2,
							float64(c[0]), 1-float64(c[1]), float64(c[0]), 1-float64(c[1]), float64(c[2]))
					} else {
						pdf.LinearGradient(ox, oy, box.W, box.H, r1, g1, b1, r2, g2, b2,
							float64(c[0]), 1-float64(c[1]), float64(c[2]), 1-float64(c[3]))
					}
					pdf.ClipEnd()
				}
			} else {
				setFillColor(pdf, dc.FillColor)
				pdf.SetAlpha(float64(dc.FillColor[3]), "Normal")
				for j := 0; j+5 < len(dc.Fill); j += 6 {
					pdf.Polygon(triangle(dc.Fill[j:j+6], local), "F")
				}
			}
		}
		if len(dc.Stroke) >= 4 {
			setDrawColor(pdf, dc.StrokeColor)
			pdf.SetAlpha(float64(dc.StrokeColor[3]), "Normal")
			pdf.SetLineWidth(math.Max(dc.StrokeWidth, 0.1))
			for j := 0; j+3 < len(dc.Stroke); j += 4 {
				a, b := local(dc.Stroke[j], dc.Stroke[j+1]), local(dc.Stroke[j+2], dc.Stroke[j+3])
				pdf.Line(a.X, a.Y, b.X, b.Y)
			}
		}
		pdf.SetAlpha(1, "Normal")
		pdf.TransformEnd()
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func triangle(v []float32, local func(x, y float32) gofpdf.PointType) []gofpdf.PointType {
	return []gofpdf.PointType{local(v[0], v[1]), local(v[2], v[3]), local(v[4], v[5])}
}

func rgb255(c [4]float32) (int, int, int) {
	n := toNRGBA(c)
	return int(n.R), int(n.G), int(n.B)
}

func setDrawColor(pdf *gofpdf.Fpdf, c [4]float32) {
	pdf.SetDrawColor(rgb255(c))
}

func setFillColor(pdf *gofpdf.Fpdf, c [4]float32) {
	pdf.SetFillColor(rgb255(c))
}
