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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	rasterx "golang.org/x/image/vector"

	"vecdraw/internal/gradient"
	"vecdraw/internal/render"
	"vecdraw/internal/tessellate"
	"vecdraw/internal/vector"
)

// PNG rasterizes calls and encodes the result.
func PNG(w io.Writer, calls []render.DrawCall, opt Options) error {
	if err := png.Encode(w, Raster(calls, opt)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Raster draws calls into a new image sized Frame * Scale. Fills are
// anti-aliased triangles; strokes are quads at least one pixel wide.
func Raster(calls []render.DrawCall, opt Options) *image.RGBA {
	frame := Frame(calls, opt)
	s := opt.scale()
	pixW := max(1, int(math.Ceil(frame.W*s)))
	pixH := max(1, int(math.Ceil(frame.H*s)))
	img := image.NewRGBA(image.Rect(0, 0, pixW, pixH))
	if opt.Background.A > 0 {
		draw.Draw(img, img.Bounds(), image.NewUniform(toNRGBA(opt.Background.Floats())), image.Point{}, draw.Src)
	}
	toPx := func(p vector.Pt) (float32, float32) {
		return float32((p.X - frame.X) * s), float32((p.Y - frame.Y) * s)
	}
	for i := range calls {
		dc := &calls[i]
		if len(dc.Fill) >= 6 {
			z := rasterx.NewRasterizer(pixW, pixH)
			for j := 0; j+5 < len(dc.Fill); j += 6 {
				z.MoveTo(toPx(scenePoint(dc, dc.Fill[j], dc.Fill[j+1])))
				z.LineTo(toPx(scenePoint(dc, dc.Fill[j+2], dc.Fill[j+3])))
				z.LineTo(toPx(scenePoint(dc, dc.Fill[j+4], dc.Fill[j+5])))
				z.ClosePath()
			}
			var src image.Image = image.NewUniform(toNRGBA(dc.FillColor))
			if dc.FillGradient != nil {
				src = newGradientSource(dc, frame, s)
			}
			z.Draw(img, img.Bounds(), src, image.Point{})
		}
		if len(dc.Stroke) >= 4 {
			half := math.Max(dc.StrokeWidth*s, 1) / 2
			z := rasterx.NewRasterizer(pixW, pixH)
			for j := 0; j+3 < len(dc.Stroke); j += 4 {
				ax, ay := toPx(scenePoint(dc, dc.Stroke[j], dc.Stroke[j+1]))
				bx, by := toPx(scenePoint(dc, dc.Stroke[j+2], dc.Stroke[j+3]))
				strokeQuad(z, ax, ay, bx, by, float32(half))
			}
			z.Draw(img, img.Bounds(), image.NewUniform(toNRGBA(dc.StrokeColor)), image.Point{})
		}
	}
	return img
}

func strokeQuad(z *rasterx.Rasterizer, ax, ay, bx, by, half float32) {
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*half, dx/l*half
	z.MoveTo(ax+nx, ay+ny)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.LineTo(ax-nx, ay-ny)
	z.ClosePath()
}

func toNRGBA(c [4]float32) color.NRGBA {
	ch := func(v float32) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, float64(v))) * 255))
	}
	return color.NRGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: ch(c[3])}
}

// gradientSource evaluates a fill gradient per output pixel by mapping the
// pixel back into the unit square of the native fill bounds.
type gradientSource struct {
	dc    *render.DrawCall
	u     *gradient.Uniforms
	frame vector.Rect
	scale float64
	box   vector.Rect
}

func newGradientSource(dc *render.DrawCall, frame vector.Rect, scale float64) *gradientSource {
	box, _ := tessellate.Bounds(dc.Fill)
	return &gradientSource{dc: dc, u: dc.FillGradient, frame: frame, scale: scale, box: box}
}

func (g *gradientSource) ColorModel() color.Model { return color.NRGBAModel }

func (g *gradientSource) Bounds() image.Rectangle {
	return image.Rect(-1<<30, -1<<30, 1<<30, 1<<30)
}

func (g *gradientSource) At(x, y int) color.Color {
	p := vector.Pt{X: (float64(x)+0.5)/g.scale + g.frame.X, Y: (float64(y)+0.5)/g.scale + g.frame.Y}
	if g.dc.Rotation != 0 {
		p = vector.RotateAround(p, g.dc.Center, -g.dc.Rotation)
	}
	p = p.Sub(g.dc.Offset)
	var u, v float64
	if g.box.W > 0 {
		u = (p.X - g.box.X) / g.box.W
	}
	if g.box.H > 0 {
		v = (p.Y - g.box.Y) / g.box.H
	}
	return toNRGBA(g.u.ColorAt(g.u.Param(u, v)))
}
