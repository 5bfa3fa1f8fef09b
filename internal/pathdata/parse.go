/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package pathdata reads and writes the SVG path mini-language.
//
// Parse normalizes a description into absolute MoveTo, LineTo, QuadTo,
// CubicTo and Close commands. Relative commands are resolved against the
// current point, H and V become lines, S and T are expanded with reflected
// control points, and elliptical arcs are approximated with cubics.
//
// Parsing fails soft: on malformed input Parse returns every command that was
// completely read before the fault together with a *SyntaxError.
package pathdata

import (
	"errors"
	"fmt"
	stdstrconv "strconv"

	"github.com/tdewolff/parse/v2/strconv"

	"vecdraw/internal/vector"
)

// ErrSyntax is wrapped by every *SyntaxError.
var ErrSyntax = errors.New("pathdata: syntax error")

// SyntaxError describes where parsing stopped.
type SyntaxError struct {
	Offset int  // byte offset of the faulty command
	Cmd    byte // command letter being parsed, 0 if none
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Cmd != 0 {
		return fmt.Sprintf("pathdata: %s in %q command at offset %d", e.Reason, e.Cmd, e.Offset)
	}
	return fmt.Sprintf("pathdata: %s at offset %d", e.Reason, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// argCount is the number of numeric arguments per command letter.
var argCount = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

type parser struct {
	buf []byte
	pos int
	out []vector.PathCmd

	cur   vector.Pt
	start vector.Pt
	ctrl  vector.Pt // last control point, for S and T reflection
	prev  byte      // upper-case letter of the previous command
	open  bool      // a sub-path has been started
}

// Parse converts d into normalized absolute commands.
func Parse(d string) ([]vector.PathCmd, error) {
	p := &parser{buf: []byte(d)}
	err := p.run()
	return p.out, err
}

func (p *parser) run() error {
	var cmd byte
	for {
		p.pos += skipCommaWhitespace(p.buf[p.pos:])
		if p.pos >= len(p.buf) {
			return nil
		}
		at := p.pos
		c := p.buf[p.pos]
		switch {
		case isCommand(c):
			cmd = c
			p.pos++
		case cmd == 0:
			return &SyntaxError{Offset: at, Reason: "expected command letter"}
		case !isNumberStart(c):
			return &SyntaxError{Offset: at, Cmd: cmd, Reason: fmt.Sprintf("unexpected character %q", c)}
		case cmd == 'Z' || cmd == 'z':
			return &SyntaxError{Offset: at, Cmd: cmd, Reason: "close takes no arguments"}
		case cmd == 'M':
			// coordinate pairs following a moveto are implicit linetos
			cmd = 'L'
		case cmd == 'm':
			cmd = 'l'
		}
		if !p.open && cmd != 'M' && cmd != 'm' {
			return &SyntaxError{Offset: at, Cmd: cmd, Reason: "path must begin with a moveto"}
		}
		args, err := p.args(cmd)
		if err != nil {
			return &SyntaxError{Offset: at, Cmd: cmd, Reason: err.Error()}
		}
		p.apply(cmd, args)
	}
}

func (p *parser) args(cmd byte) ([]float64, error) {
	upper := toUpper(cmd)
	n := argCount[upper]
	args := make([]float64, n)
	for i := 0; i < n; i++ {
		if upper == 'A' && (i == 3 || i == 4) {
			f, ok := p.flag()
			if !ok {
				return nil, errors.New("expected arc flag 0 or 1")
			}
			args[i] = f
			continue
		}
		v, ok := p.number()
		if !ok {
			return nil, fmt.Errorf("expected %d numbers, got %d", n, i)
		}
		args[i] = v
	}
	return args, nil
}

// number reads one SVG number. The scanner finds where the number ends
// under the compact SVG grammar ("1.5.5", "-3-4"); the token is then
// converted with correct rounding so printed values parse back bit-for-bit.
func (p *parser) number() (float64, bool) {
	i := p.pos + skipCommaWhitespace(p.buf[p.pos:])
	if i >= len(p.buf) || !isNumberStart(p.buf[i]) {
		return 0, false
	}
	f, n := strconv.ParseFloat(p.buf[i:])
	if n == 0 {
		return 0, false
	}
	if exact, err := stdstrconv.ParseFloat(string(p.buf[i:i+n]), 64); err == nil {
		f = exact
	}
	p.pos = i + n
	return f, true
}

// flag reads a single 0 or 1 character; arc flags may be written without
// separators ("a1 1 0 0110 10").
func (p *parser) flag() (float64, bool) {
	i := p.pos + skipCommaWhitespace(p.buf[p.pos:])
	if i >= len(p.buf) {
		return 0, false
	}
	switch p.buf[i] {
	case '0':
		p.pos = i + 1
		return 0, true
	case '1':
		p.pos = i + 1
		return 1, true
	}
	return 0, false
}

func (p *parser) emit(op vector.PathOp, data ...float64) {
	c := vector.PathCmd{Op: op}
	copy(c.Data[:], data)
	p.out = append(p.out, c)
}

func (p *parser) apply(cmd byte, a []float64) {
	rel := cmd >= 'a'
	upper := toUpper(cmd)
	ox, oy := 0.0, 0.0
	if rel {
		ox, oy = p.cur.X, p.cur.Y
	}
	if upper != 'M' && upper != 'Z' && p.prev == 'Z' {
		// drawing after a close continues from the sub-path start
		p.emit(vector.MoveTo, p.start.X, p.start.Y)
	}

	switch upper {
	case 'M':
		x, y := a[0]+ox, a[1]+oy
		p.emit(vector.MoveTo, x, y)
		p.cur, p.start = vector.Pt{X: x, Y: y}, vector.Pt{X: x, Y: y}
		p.open = true
	case 'L':
		p.lineTo(a[0]+ox, a[1]+oy)
	case 'H':
		p.lineTo(a[0]+ox, p.cur.Y)
	case 'V':
		p.lineTo(p.cur.X, a[0]+oy)
	case 'C':
		p.cubicTo(a[0]+ox, a[1]+oy, a[2]+ox, a[3]+oy, a[4]+ox, a[5]+oy)
	case 'S':
		c1 := p.cur
		if p.prev == 'C' || p.prev == 'S' {
			c1 = reflect(p.ctrl, p.cur)
		}
		p.cubicTo(c1.X, c1.Y, a[0]+ox, a[1]+oy, a[2]+ox, a[3]+oy)
	case 'Q':
		p.quadTo(a[0]+ox, a[1]+oy, a[2]+ox, a[3]+oy)
	case 'T':
		c := p.cur
		if p.prev == 'Q' || p.prev == 'T' {
			c = reflect(p.ctrl, p.cur)
		}
		p.quadTo(c.X, c.Y, a[0]+ox, a[1]+oy)
	case 'A':
		end := vector.Pt{X: a[5] + ox, Y: a[6] + oy}
		for _, seg := range arcToCubics(p.cur, end, a[0], a[1], a[2], a[3] != 0, a[4] != 0) {
			p.emit(vector.CubicTo, seg[:]...)
		}
		p.cur = end
	case 'Z':
		p.emit(vector.LineTo, p.start.X, p.start.Y)
		p.emit(vector.Close)
		p.cur = p.start
	}
	p.prev = upper
}

func (p *parser) lineTo(x, y float64) {
	p.emit(vector.LineTo, x, y)
	p.cur = vector.Pt{X: x, Y: y}
}

func (p *parser) cubicTo(x1, y1, x2, y2, x, y float64) {
	p.emit(vector.CubicTo, x1, y1, x2, y2, x, y)
	p.ctrl = vector.Pt{X: x2, Y: y2}
	p.cur = vector.Pt{X: x, Y: y}
}

func (p *parser) quadTo(cx, cy, x, y float64) {
	p.emit(vector.QuadTo, cx, cy, x, y)
	p.ctrl = vector.Pt{X: cx, Y: cy}
	p.cur = vector.Pt{X: x, Y: y}
}

func reflect(ctrl, about vector.Pt) vector.Pt {
	return vector.Pt{X: 2*about.X - ctrl.X, Y: 2*about.Y - ctrl.Y}
}

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t' || path[i] == '\f') {
		i++
	}
	return i
}

func isCommand(c byte) bool {
	_, ok := argCount[toUpper(c)]
	return ok
}

func isNumberStart(c byte) bool {
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
