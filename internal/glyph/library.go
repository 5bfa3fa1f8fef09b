/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package glyph

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"vecdraw/internal/log"
)

// FontLibrary maps family names to loaded fonts. Lookups are case
// insensitive and fall back to the library default, then to Go Regular.
type FontLibrary struct {
	mu       sync.RWMutex
	fonts    map[string]*Font
	fallback string
}

func NewFontLibrary() *FontLibrary { return &FontLibrary{fonts: make(map[string]*Font)} }

func key(family string) string { return strings.ToLower(strings.TrimSpace(family)) }

// Add registers f under its family name.
func (fl *FontLibrary) Add(f *Font) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.fonts == nil {
		fl.fonts = make(map[string]*Font)
	}
	fl.fonts[key(f.Family)] = f
}

// LoadTTF loads a font file. An empty family uses the name stored in the font.
func (fl *FontLibrary) LoadTTF(family, path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := Parse(data, family)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	fl.Add(f)
	return f, nil
}

// LoadDir loads every .ttf and .otf below dir. Unreadable fonts are logged
// and skipped; the count of loaded fonts is returned.
func (fl *FontLibrary) LoadDir(dir string) (int, error) {
	l := log.WithComponent("glyph")
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ttf", ".otf":
		default:
			return nil
		}
		if _, lerr := fl.LoadTTF("", path); lerr != nil {
			l.Warn("skip font", slog.String("path", path), slog.Any("err", lerr))
			return nil
		}
		n++
		return nil
	})
	if err != nil {
		return n, fmt.Errorf("scan fonts %s: %w", dir, err)
	}
	return n, nil
}

// SetDefault names the family used when a lookup misses.
func (fl *FontLibrary) SetDefault(family string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	fl.fallback = key(family)
}

// Lookup resolves family. It never returns nil.
func (fl *FontLibrary) Lookup(family string) *Font {
	if fl == nil {
		return Default()
	}
	fl.mu.RLock()
	defer fl.mu.RUnlock()
	if f, ok := fl.fonts[key(family)]; ok {
		return f
	}
	if f, ok := fl.fonts[fl.fallback]; ok {
		return f
	}
	return Default()
}

// Families lists the loaded family keys.
func (fl *FontLibrary) Families() []string {
	fl.mu.RLock()
	defer fl.mu.RUnlock()
	out := make([]string, 0, len(fl.fonts))
	for k := range fl.fonts {
		out = append(out, k)
	}
	return out
}
