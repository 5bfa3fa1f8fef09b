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
	"path/filepath"
	"strings"

	"vecdraw/internal/render"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// BatchOptions controls a multi-format export of one scene.
//
// Files are named <Base>.<format> inside OutDir. Formats empty means the
// preset defaults: web writes png and svg at 1px per unit, print writes pdf
// and png at 300 dpi.
type BatchOptions struct {
	Preset  PresetName
	Formats []Format
	OutDir  string
	Base    string
	// Scale overrides the preset scale when > 0.
	Scale   float64
	Options Options
}

func presetDefaults(p PresetName) ([]Format, float64, error) {
	switch PresetName(strings.ToLower(string(p))) {
	case "", PresetWeb:
		return []Format{FormatPNG, FormatSVG}, 1, nil
	case PresetPrint:
		return []Format{FormatPDF, FormatPNG}, 300.0 / 72.0, nil
	}
	return nil, 0, fmt.Errorf("unknown export preset %q", p)
}

// BatchExport writes every requested format and returns the written paths.
func BatchExport(calls []render.DrawCall, opt BatchOptions) ([]string, error) {
	formats, scale, err := presetDefaults(opt.Preset)
	if err != nil {
		return nil, err
	}
	if len(opt.Formats) > 0 {
		formats = opt.Formats
	}
	if opt.Scale > 0 {
		scale = opt.Scale
	}
	base := opt.Base
	if base == "" {
		base = "scene"
	}
	o := opt.Options
	o.Scale = scale
	var written []string
	for _, f := range formats {
		f = Format(strings.ToLower(string(f)))
		path := filepath.Join(opt.OutDir, base+"."+string(f))
		if err := WriteFile(path, calls, o); err != nil {
			return written, fmt.Errorf("export %s: %w", f, err)
		}
		written = append(written, path)
	}
	return written, nil
}
