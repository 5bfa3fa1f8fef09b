/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log provides the slog-based logging used by every vecdraw binary.
// Records carry the component and operation that emitted them, and, for
// work done on behalf of a host session, the session id taken from the
// context.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	lj "gopkg.in/natefinch/lumberjack.v2"

	"vecdraw/internal/version"
)

// Options controls logger initialization. FromEnv reads them from
//   - VDW_LOG_LEVEL=debug|info|warn|error
//   - VDW_LOG_FORMAT=console|json
//   - VDW_LOG_FILE=<path> (adds a rotated JSON file)
//   - VDW_LOG_SOURCE=true|false
type Options struct {
	Level     string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format    string `yaml:"format" envconfig:"LOG_FORMAT"` // "console" or "json"
	AddSource bool   `yaml:"source" envconfig:"LOG_SOURCE"`
	File      string `yaml:"file" envconfig:"LOG_FILE"`
}

var (
	mu      sync.RWMutex
	current *slog.Logger
)

// L returns the process logger, initializing it from the environment on
// first use.
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Init replaces the process logger and slog's default.
func Init(opts Options) {
	lvl := parseLevel(opts.Level)
	hopts := &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource}

	var console slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		console = slog.NewJSONHandler(os.Stderr, hopts)
	} else {
		console = &prettyTextHandler{opts: prettyOpts{Level: lvl, AddSource: opts.AddSource}, w: os.Stderr}
	}
	hs := []slog.Handler{withContext(console)}

	if f := strings.TrimSpace(opts.File); f != "" {
		w := &lj.Logger{Filename: f, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		hs = append(hs, withContext(slog.NewJSONHandler(w, hopts)))
	}

	var h slog.Handler = hs[0]
	if len(hs) > 1 {
		h = multiHandler(hs...)
	}
	l := slog.New(h).With(slog.String("app", "vecdraw"), slog.String("ver", version.Version))

	mu.Lock()
	current = l
	mu.Unlock()
	slog.SetDefault(l)
}

func FromEnv() Options {
	return Options{
		Level:     getenv("VDW_LOG_LEVEL", "info"),
		Format:    getenv("VDW_LOG_FORMAT", "console"),
		AddSource: strings.EqualFold(getenv("VDW_LOG_SOURCE", "false"), "true"),
		File:      os.Getenv("VDW_LOG_FILE"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WithComponent returns a logger with the component attribute pre-set.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation annotates the logger with an operation name.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

// Discard is a logger that drops everything. Tests and library callers that
// do not want kernel warnings use it.
func Discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

type ctxKey struct{}

// ContextWithSession tags ctx so records logged with it carry the session id.
func ContextWithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// SessionFrom returns the id stored by ContextWithSession.
func SessionFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
