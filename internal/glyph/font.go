/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package glyph turns text into glyph outlines. Layout is single-line
// placement with advances and pair kerning; there is no shaping.
package glyph

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Font wraps a parsed sfnt font. sfnt needs a scratch buffer per call, so
// a Font serializes its own use and is safe for concurrent callers.
type Font struct {
	Family string

	mu  sync.Mutex
	sf  *sfnt.Font
	buf sfnt.Buffer
}

var (
	defaultOnce sync.Once
	defaultFont *Font
)

// Default returns the embedded Go Regular face.
func Default() *Font {
	defaultOnce.Do(func() {
		f, err := Parse(goregular.TTF, "")
		if err != nil {
			panic(fmt.Sprintf("glyph: embedded font: %v", err))
		}
		defaultFont = f
	})
	return defaultFont
}

// Parse loads a TrueType or OpenType font. An empty family is replaced by
// the family name stored in the font.
func Parse(data []byte, family string) (*Font, error) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	if family == "" {
		var buf sfnt.Buffer
		family, _ = sf.Name(&buf, sfnt.NameIDFamily)
	}
	return &Font{Family: family, sf: sf}, nil
}

func ppem(size float64) fixed.Int26_6 { return fixed.Int26_6(size * 64) }

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }

// index resolves r to a glyph index. Unmapped runes use glyph 0 (.notdef).
func (f *Font) index(r rune) sfnt.GlyphIndex {
	gi, err := f.sf.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return gi
}

func (f *Font) advance(gi sfnt.GlyphIndex, size float64) float64 {
	adv, err := f.sf.GlyphAdvance(&f.buf, gi, ppem(size), font.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(adv)
}

func (f *Font) kern(prev, gi sfnt.GlyphIndex, size float64) float64 {
	k, err := f.sf.Kern(&f.buf, prev, gi, ppem(size), font.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(k)
}

// Advance reports the horizontal advance of r at size.
func (f *Font) Advance(r rune, size float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.advance(f.index(r), size)
}
