/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config is the user-editable configuration persisted as YAML in the user
// scope. Environment variables prefixed with VDW_ override it at runtime and
// are never written back.
//
// config_version: bump when the structure changes incompatibly. Unknown keys
// in the file are ignored.
type Config struct {
	ConfigVersion int           `yaml:"config_version"`
	Logging       LoggingConfig `yaml:"logging"`
	Kernel        KernelConfig  `yaml:"kernel"`
	Snap          SnapConfig    `yaml:"snap"`
	Server        ServerConfig  `yaml:"server"`
	Fonts         FontsConfig   `yaml:"fonts"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type KernelConfig struct {
	CurveSegments int    `yaml:"curve_segments"`
	CacheSize     int    `yaml:"cache_size"`
	Union         string `yaml:"union"` // "polyclip" | "nesting"
}

type SnapConfig struct {
	SnapToGrid     bool    `yaml:"snap_to_grid"`
	SnapToObjects  bool    `yaml:"snap_to_objects"`
	SnapToGeometry bool    `yaml:"snap_to_geometry"`
	GridSize       float64 `yaml:"grid_size"`
	PixelThreshold float64 `yaml:"pixel_threshold"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type FontsConfig struct {
	// Default is a TTF/OTF file; empty selects the embedded Go Regular face.
	Default string   `yaml:"default"`
	Dirs    []string `yaml:"dirs"`
}

func Defaults() Config {
	return Config{
		ConfigVersion: 1,
		Logging:       LoggingConfig{Level: "info", Format: "console"},
		Kernel:        KernelConfig{CurveSegments: 16, CacheSize: 256, Union: "polyclip"},
		Snap:          SnapConfig{GridSize: 10, PixelThreshold: 4},
		Server:        ServerConfig{Addr: ":8090", AllowedOrigins: []string{"localhost:*", "127.0.0.1:*"}},
	}
}

// EnvPrefix is prepended to every override variable.
const EnvPrefix = "VDW"

// EnvConfigFile points Load at a specific file instead of the per-user one.
const EnvConfigFile = "VDW_CONFIG"

// overrides is decoded from the environment. Unset variables leave their
// pointer nil so the file value survives.
type overrides struct {
	LogLevel  *string `split_words:"true"`
	LogFormat *string `split_words:"true"`
	LogSource *bool   `split_words:"true"`
	LogFile   *string `split_words:"true"`

	KernelCurveSegments *int    `split_words:"true"`
	KernelCacheSize     *int    `split_words:"true"`
	KernelUnion         *string `split_words:"true"`

	SnapToGrid         *bool    `split_words:"true"`
	SnapToObjects      *bool    `split_words:"true"`
	SnapToGeometry     *bool    `split_words:"true"`
	SnapGridSize       *float64 `split_words:"true"`
	SnapPixelThreshold *float64 `split_words:"true"`

	ServerAddr           *string  `split_words:"true"`
	ServerAllowedOrigins []string `split_words:"true"`

	FontsDefault *string `split_words:"true"`
}

// envKeys maps YAML keys to the variable that overrides them.
var envKeys = map[string]string{
	"logging.level":          "VDW_LOG_LEVEL",
	"logging.format":         "VDW_LOG_FORMAT",
	"logging.source":         "VDW_LOG_SOURCE",
	"logging.file":           "VDW_LOG_FILE",
	"kernel.curve_segments":  "VDW_KERNEL_CURVE_SEGMENTS",
	"kernel.cache_size":      "VDW_KERNEL_CACHE_SIZE",
	"kernel.union":           "VDW_KERNEL_UNION",
	"snap.snap_to_grid":      "VDW_SNAP_TO_GRID",
	"snap.snap_to_objects":   "VDW_SNAP_TO_OBJECTS",
	"snap.snap_to_geometry":  "VDW_SNAP_TO_GEOMETRY",
	"snap.grid_size":         "VDW_SNAP_GRID_SIZE",
	"snap.pixel_threshold":   "VDW_SNAP_PIXEL_THRESHOLD",
	"server.addr":            "VDW_SERVER_ADDR",
	"server.allowed_origins": "VDW_SERVER_ALLOWED_ORIGINS",
	"fonts.default":          "VDW_FONTS_DEFAULT",
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigFile)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "vecdraw")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "vecdraw")
	default:
		if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
			base = filepath.Join(x, "vecdraw")
		} else if h := os.Getenv("HOME"); h != "" {
			base = filepath.Join(h, ".config", "vecdraw")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config (a missing file is not an error), merges it over
// the defaults and applies environment overrides.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		return cfg, applyEnv(&cfg)
	}
	return LoadFile(path)
}

func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to the per-user config path.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst, src *Config) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if s := strings.TrimSpace(src.Logging.Level); s != "" {
		dst.Logging.Level = strings.ToLower(s)
	}
	if s := strings.TrimSpace(src.Logging.Format); s != "" {
		dst.Logging.Format = strings.ToLower(s)
	}
	// booleans come straight from the file so user choices persist
	dst.Logging.Source = src.Logging.Source
	if s := strings.TrimSpace(src.Logging.File); s != "" {
		dst.Logging.File = s
	}

	if src.Kernel.CurveSegments > 0 {
		dst.Kernel.CurveSegments = src.Kernel.CurveSegments
	}
	if src.Kernel.CacheSize > 0 {
		dst.Kernel.CacheSize = src.Kernel.CacheSize
	}
	if s := strings.TrimSpace(src.Kernel.Union); s != "" {
		dst.Kernel.Union = strings.ToLower(s)
	}

	dst.Snap.SnapToGrid = src.Snap.SnapToGrid
	dst.Snap.SnapToObjects = src.Snap.SnapToObjects
	dst.Snap.SnapToGeometry = src.Snap.SnapToGeometry
	if src.Snap.GridSize > 0 {
		dst.Snap.GridSize = src.Snap.GridSize
	}
	if src.Snap.PixelThreshold > 0 {
		dst.Snap.PixelThreshold = src.Snap.PixelThreshold
	}

	if s := strings.TrimSpace(src.Server.Addr); s != "" {
		dst.Server.Addr = s
	}
	if len(src.Server.AllowedOrigins) > 0 {
		dst.Server.AllowedOrigins = src.Server.AllowedOrigins
	}
	if s := strings.TrimSpace(src.Fonts.Default); s != "" {
		dst.Fonts.Default = s
	}
	if len(src.Fonts.Dirs) > 0 {
		dst.Fonts.Dirs = src.Fonts.Dirs
	}
}

func applyEnv(cfg *Config) error {
	var o overrides
	if err := envconfig.Process(EnvPrefix, &o); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	setString(&cfg.Logging.Level, o.LogLevel, true)
	setString(&cfg.Logging.Format, o.LogFormat, true)
	setBool(&cfg.Logging.Source, o.LogSource)
	setString(&cfg.Logging.File, o.LogFile, false)

	if o.KernelCurveSegments != nil && *o.KernelCurveSegments > 0 {
		cfg.Kernel.CurveSegments = *o.KernelCurveSegments
	}
	if o.KernelCacheSize != nil && *o.KernelCacheSize > 0 {
		cfg.Kernel.CacheSize = *o.KernelCacheSize
	}
	setString(&cfg.Kernel.Union, o.KernelUnion, true)

	setBool(&cfg.Snap.SnapToGrid, o.SnapToGrid)
	setBool(&cfg.Snap.SnapToObjects, o.SnapToObjects)
	setBool(&cfg.Snap.SnapToGeometry, o.SnapToGeometry)
	if o.SnapGridSize != nil && *o.SnapGridSize > 0 {
		cfg.Snap.GridSize = *o.SnapGridSize
	}
	if o.SnapPixelThreshold != nil && *o.SnapPixelThreshold > 0 {
		cfg.Snap.PixelThreshold = *o.SnapPixelThreshold
	}

	setString(&cfg.Server.Addr, o.ServerAddr, false)
	if len(o.ServerAllowedOrigins) > 0 {
		cfg.Server.AllowedOrigins = o.ServerAllowedOrigins
	}
	setString(&cfg.Fonts.Default, o.FontsDefault, false)
	return nil
}

func setString(dst *string, v *string, lower bool) {
	if v == nil {
		return
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return
	}
	if lower {
		s = strings.ToLower(s)
	}
	*dst = s
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// EnvOverrideFor returns the variable name when key is overridden by the
// environment.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := envKeys[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}
