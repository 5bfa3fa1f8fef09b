/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package app turns the loaded configuration into the objects the binaries
// need: the process logger, kernel and snap options, fonts and the server.
package app

import (
	"fmt"
	"log/slog"
	"strings"

	"vecdraw/internal/config"
	"vecdraw/internal/glyph"
	"vecdraw/internal/kernel"
	applog "vecdraw/internal/log"
	"vecdraw/internal/server"
	"vecdraw/internal/snap"
)

type Env struct {
	Config config.Config
	Log    *slog.Logger
	Fonts  *glyph.FontLibrary
}

// Load reads the configuration, initializes logging and loads fonts.
func Load() (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg)
}

func FromConfig(cfg config.Config) (*Env, error) {
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	e := &Env{Config: cfg, Log: applog.WithComponent("app"), Fonts: glyph.NewFontLibrary()}
	if err := e.loadFonts(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Env) loadFonts() error {
	fc := e.Config.Fonts
	for _, dir := range fc.Dirs {
		n, err := e.Fonts.LoadDir(dir)
		if err != nil {
			return fmt.Errorf("load fonts from %s: %w", dir, err)
		}
		e.Log.Debug("fonts loaded", "dir", dir, "count", n)
	}
	if p := strings.TrimSpace(fc.Default); p != "" {
		f, err := e.Fonts.LoadTTF("", p)
		if err != nil {
			return fmt.Errorf("load default font: %w", err)
		}
		e.Fonts.SetDefault(f.Family)
	}
	return nil
}

func (e *Env) KernelOptions() (kernel.Options, error) {
	u, err := kernel.UnionByName(e.Config.Kernel.Union)
	if err != nil {
		return kernel.Options{}, err
	}
	return kernel.Options{
		Segments:  e.Config.Kernel.CurveSegments,
		CacheSize: e.Config.Kernel.CacheSize,
		Union:     u,
		Logger:    applog.WithComponent("kernel"),
	}, nil
}

func (e *Env) Kernel() (*kernel.Kernel, error) {
	o, err := e.KernelOptions()
	if err != nil {
		return nil, err
	}
	return kernel.New(o), nil
}

func (e *Env) SnapOptions() snap.Options {
	sc := e.Config.Snap
	return snap.Options{
		SnapToGrid:     sc.SnapToGrid,
		SnapToObjects:  sc.SnapToObjects,
		SnapToGeometry: sc.SnapToGeometry,
		GridSize:       sc.GridSize,
		PixelThreshold: sc.PixelThreshold,
		Scale:          1,
	}
}

func (e *Env) Server() (*server.Server, error) {
	ko, err := e.KernelOptions()
	if err != nil {
		return nil, err
	}
	return server.New(server.Options{
		Kernel:         ko,
		Snap:           e.SnapOptions(),
		AllowedOrigins: e.Config.Server.AllowedOrigins,
		Logger:         applog.WithComponent("server"),
	}), nil
}
