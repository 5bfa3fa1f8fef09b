/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pathdata

import "vecdraw/internal/vector"

func TranslatePath(cmds []vector.PathCmd, dx, dy float64) []vector.PathCmd {
	return vector.TransformPath(cmds, vector.Translate(dx, dy))
}

// ScalePath maps cmds so that the box from lands on the box to.
func ScalePath(cmds []vector.PathCmd, from, to vector.Rect) []vector.PathCmd {
	return vector.TransformPath(cmds, vector.MapRect(from, to))
}

// TransformD rewrites a path description through m. On a syntax error the
// valid prefix is transformed and the error is returned alongside it.
func TransformD(d string, m vector.Affine2D) (string, error) {
	cmds, err := Parse(d)
	return Stringify(vector.TransformPath(cmds, m)), err
}
