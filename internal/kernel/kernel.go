/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package kernel is the entry point hosts use for geometry work on a scene.
// A Kernel owns the tessellation cache of one scene and is not safe for
// concurrent use; hosts serialize access or keep one Kernel per session.
package kernel

import (
	"fmt"
	"log/slog"
	"strings"

	applog "vecdraw/internal/log"
	"vecdraw/internal/pathdata"
	"vecdraw/internal/tessellate"
	"vecdraw/internal/vector"
)

type Options struct {
	// Segments per curve for fills and thin strokes; 0 means 16.
	Segments  int
	CacheSize int
	// Union merges fill rings; nil selects the polyclip strategy.
	Union  tessellate.PolygonUnion
	Logger *slog.Logger
}

// UnionByName resolves the configured union strategy.
func UnionByName(name string) (tessellate.PolygonUnion, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "polyclip":
		return tessellate.PolyclipUnion{}, nil
	case "nesting":
		return tessellate.NestingUnion{}, nil
	default:
		return nil, fmt.Errorf("unknown union strategy %q", name)
	}
}

type Kernel struct {
	tess  tessellate.Tessellator
	cache *tessellate.Cache
	log   *slog.Logger
}

func New(opts Options) *Kernel {
	l := opts.Logger
	if l == nil {
		l = applog.WithComponent("kernel")
	}
	seg := opts.Segments
	if seg < 1 {
		seg = tessellate.DefaultSegments
	}
	return &Kernel{
		tess:  tessellate.Tessellator{Segments: seg, Union: opts.Union, Logger: l},
		cache: tessellate.NewCache(opts.CacheSize),
		log:   l,
	}
}

// Parse is pathdata.Parse with the fault logged instead of returned: the
// valid prefix is what gets drawn.
func (k *Kernel) Parse(d string) []vector.PathCmd {
	cmds, err := pathdata.Parse(d)
	if err != nil {
		k.log.Warn("path description truncated", slog.Any("err", err), slog.Int("kept", len(cmds)))
	}
	return cmds
}

// Tessellate builds fill triangles and stroke segments for d without caching.
func (k *Kernel) Tessellate(d string, strokeWidth float64) (fill, stroke []float32) {
	cmds := k.Parse(d)
	return k.tess.Fill(cmds), k.strokeTess(strokeWidth).Stroke(cmds)
}

func (k *Kernel) strokeTess(width float64) tessellate.Tessellator {
	t := k.tess
	t.Segments = max(t.Segments, tessellate.StrokeSegments(width))
	return t
}

// Geometry returns the cached render geometry of a path shape, rebuilding it
// when the description or stroke resolution changed.
func (k *Kernel) Geometry(p *vector.PathShape) *tessellate.Entry {
	st := k.strokeTess(p.Stroke.Width)
	if p.ID != "" {
		if e, ok := k.cache.Get(p.ID, p.D, st.Segments); ok {
			return e
		}
	}
	cmds := k.Parse(p.D)
	e := &tessellate.Entry{
		D:              p.D,
		Fill:           k.tess.Fill(cmds),
		Stroke:         st.Stroke(cmds),
		StrokeSegments: st.Segments,
	}
	switch {
	case len(e.Fill) >= 2:
		r, _ := tessellate.Bounds(e.Fill)
		e.Origin = r.Min()
	case len(e.Stroke) >= 2:
		r, _ := tessellate.Bounds(e.Stroke)
		e.Origin = r.Min()
	default:
		e.Origin = p.Bounds.Normalize().Min()
	}
	if p.ID != "" {
		k.cache.Put(p.ID, e)
	}
	return e
}

// RenderOffset is the translation that draws a path's native geometry at its
// stored bounds.
func (k *Kernel) RenderOffset(p *vector.PathShape) vector.Pt {
	return p.Bounds.Normalize().Min().Sub(k.Geometry(p).Origin)
}

// Evict forgets the cached geometry of a deleted shape.
func (k *Kernel) Evict(id string) {
	k.cache.Evict(id)
	k.log.Debug("tessellation evicted", slog.String("shape", id))
}

// Clear drops every cached entry, typically on scene teardown.
func (k *Kernel) Clear() { k.cache.Clear() }

func (k *Kernel) Stats() tessellate.CacheStats { return k.cache.Stats() }
