/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pathdata

import (
	"strconv"
	"strings"

	"vecdraw/internal/vector"
)

// Stringify writes cmds as a canonical absolute description. Numbers use the
// shortest form that parses back to the same value. The line Parse inserts
// before every close, and the moveto it inserts after one, are left out so
// Parse and Stringify round-trip.
func Stringify(cmds []vector.PathCmd) string {
	var b strings.Builder
	var start vector.Pt
	afterClose := false
	for i, c := range cmds {
		switch c.Op {
		case vector.MoveTo:
			p := vector.Pt{X: c.Data[0], Y: c.Data[1]}
			if afterClose && p == start && i+1 < len(cmds) && cmds[i+1].Op != vector.MoveTo {
				afterClose = false
				continue
			}
			start = p
		case vector.LineTo:
			if i+1 < len(cmds) && cmds[i+1].Op == vector.Close && (vector.Pt{X: c.Data[0], Y: c.Data[1]}) == start {
				continue
			}
		}
		afterClose = c.Op == vector.Close
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.Op.String())
		for _, v := range c.Args() {
			b.WriteByte(' ')
			b.WriteString(FormatNumber(v))
		}
	}
	return b.String()
}

// FormatNumber prints v without a trailing exponent or negative zero.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
