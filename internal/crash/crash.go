/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic in a CLI entry point into a logged error, a
// report file and a non-zero exit code.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "vecdraw/internal/log"
	"vecdraw/internal/telemetry"
	"vecdraw/internal/version"
)

// exitFn is swapped in tests so Recover does not end the process.
var exitFn = os.Exit

// EnvReportDir overrides where reports are written (default: the temp dir).
const EnvReportDir = "VDW_CRASH_DIR"

// maxInput bounds how much of the triggering input is copied into a report.
const maxInput = 64 << 10

// Info describes what the process was doing when it panicked. Input is the
// path description or scene file that triggered the work, so a report is
// enough to reproduce a kernel crash.
type Info struct {
	Command string
	Input   string
}

// Recover must be deferred directly:
//
//	defer crash.Recover(crash.Info{Command: "tessellate", Input: d})
func Recover(info Info) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("command", info.Command), slog.String("stack", string(stack)))

	path, err := writeReport(reportDir(), info, r, stack)
	if err != nil {
		l.Error("crash report not written", slog.Any("err", err))
	} else if b, rerr := os.ReadFile(path); rerr == nil {
		if uerr := telemetry.Default().UploadCrash(b); uerr != nil {
			l.Warn("crash report upload failed", slog.Any("err", uerr))
		}
	}
	_, _ = fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", path)
	_, _ = fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH)
	exitFn(2)
}

func reportDir() string {
	if d := os.Getenv(EnvReportDir); d != "" {
		return d
	}
	return os.TempDir()
}

func writeReport(dir string, info Info, panicVal any, stack []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("vecdraw-crash-%s.log", time.Now().Format("20060102-150405.000")))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "vecdraw crash report\n")
	fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "Version: %s\n", version.String())
	fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if info.Command != "" {
		fmt.Fprintf(&buf, "Command: %s\n", info.Command)
	}
	if info.Input != "" {
		in := info.Input
		if len(in) > maxInput {
			in = in[:maxInput] + "...(truncated)"
		}
		fmt.Fprintf(&buf, "Input:\n%s\n", in)
	}
	fmt.Fprintf(&buf, "\nPanic: %v\n\nStack:\n%s\n", panicVal, stack)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}
	return path, nil
}
