/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInitWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecdraw.log")
	Init(Options{Level: "debug", Format: "json", File: path})
	t.Cleanup(func() { Init(Options{}) })

	l := WithOperation(WithComponent("kernel"), "parse")
	l.InfoContext(ContextWithSession(context.Background(), "sess_1"), "parsed", slog.Int("cmds", 3))

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var last string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			last = s
		}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("unmarshal %q: %v", last, err)
	}
	for k, want := range map[string]any{"app": "vecdraw", "component": "kernel", "op": "parse", "msg": "parsed", "session": "sess_1"} {
		if m[k] != want {
			t.Fatalf("%s = %v, want %v", k, m[k], want)
		}
	}
	if _, ok := m["ver"].(string); !ok {
		t.Fatalf("missing ver attr")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("VDW_LOG_LEVEL", "warn")
	t.Setenv("VDW_LOG_FORMAT", "json")
	t.Setenv("VDW_LOG_SOURCE", "TRUE")
	t.Setenv("VDW_LOG_FILE", "")
	o := FromEnv()
	if o.Level != "warn" || o.Format != "json" || !o.AddSource || o.File != "" {
		t.Fatalf("FromEnv mismatch: %+v", o)
	}
	if getenv("VDW_SURELY_UNSET", "fallback") != "fallback" {
		t.Fatalf("getenv fallback failed")
	}
}

func TestPrettyTextHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &prettyTextHandler{opts: prettyOpts{Level: slog.LevelWarn}, w: &buf}
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info should be filtered at warn level")
	}
	h2 := h.WithAttrs([]slog.Attr{slog.String("shape", "a")}).WithGroup("tess")
	r := slog.NewRecord(time.Now(), slog.LevelError, "stalled", 0)
	r.AddAttrs(slog.Int("n", 42), slog.Float64("area", 2.5), slog.Bool("ok", false))
	if err := h2.Handle(context.Background(), r); err != nil {
		t.Fatalf("handle: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ERR stalled", "tess.shape=a", "tess.n=42", "tess.area=2.5", "tess.ok=false"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestSessionFromEmpty(t *testing.T) {
	if _, ok := SessionFrom(context.Background()); ok {
		t.Fatalf("no session expected")
	}
}
