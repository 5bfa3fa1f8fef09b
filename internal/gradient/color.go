/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gradient

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"vecdraw/internal/vector"
)

var ErrColor = errors.New("gradient: invalid color")

// ParseColor accepts #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(), rgba(), the
// keywords none and transparent, and the CSS named colors.
func ParseColor(s string) (vector.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return vector.Color{}, fmt.Errorf("%w: empty", ErrColor)
	case v == "none" || v == "transparent":
		return vector.Transparent, nil
	case strings.HasPrefix(v, "#"):
		return parseHex(v[1:], s)
	case strings.HasPrefix(v, "rgb"):
		return parseFunc(v, s)
	}
	if c, ok := colornames.Map[v]; ok {
		return vector.Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return vector.Color{}, fmt.Errorf("%w: %q", ErrColor, s)
}

// MustColor is ParseColor with black as the fallback.
func MustColor(s string) vector.Color {
	c, err := ParseColor(s)
	if err != nil {
		return vector.Black
	}
	return c
}

func parseHex(h, orig string) (vector.Color, error) {
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for i := 0; i < len(h); i++ {
			b.WriteByte(h[i])
			b.WriteByte(h[i])
		}
		h = b.String()
	case 6, 8:
	default:
		return vector.Color{}, fmt.Errorf("%w: %q", ErrColor, orig)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return vector.Color{}, fmt.Errorf("%w: %q", ErrColor, orig)
	}
	if len(h) == 6 {
		n = n<<8 | 0xff
	}
	return vector.Color{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

func parseFunc(v, orig string) (vector.Color, error) {
	open := strings.IndexByte(v, '(')
	if open < 0 || !strings.HasSuffix(v, ")") {
		return vector.Color{}, fmt.Errorf("%w: %q", ErrColor, orig)
	}
	name := strings.TrimSpace(v[:open])
	args := strings.Split(v[open+1:len(v)-1], ",")
	if (name != "rgb" && name != "rgba") || (len(args) != 3 && len(args) != 4) {
		return vector.Color{}, fmt.Errorf("%w: %q", ErrColor, orig)
	}
	var ch [4]uint8
	ch[3] = 255
	for i, a := range args {
		a = strings.TrimSpace(a)
		pct := strings.HasSuffix(a, "%")
		f, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
		if err != nil {
			return vector.Color{}, fmt.Errorf("%w: %q", ErrColor, orig)
		}
		switch {
		case pct:
			f = f / 100 * 255
		case i == 3:
			f *= 255
		}
		ch[i] = clampByte(f)
	}
	return vector.Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

func clampByte(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 255:
		return 255
	}
	return uint8(f + 0.5)
}

// Hex formats c as #rrggbb, dropping alpha.
func Hex(c vector.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
