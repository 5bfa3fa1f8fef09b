/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"vecdraw/internal/app"
	"vecdraw/internal/crash"
	applog "vecdraw/internal/log"
	"vecdraw/internal/telemetry"
	"vecdraw/internal/version"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "vecdraw - vector drawing geometry kernel")
	fmt.Fprintf(w, "Version: %s\n", version.String())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  vecdraw version|-v|--version                    Show version")
	fmt.Fprintln(w, "  vecdraw parse <d>                               Normalize a path description")
	fmt.Fprintln(w, "  vecdraw tessellate <d> [--segments n] [--stroke w] [--json]")
	fmt.Fprintln(w, "                                                  Triangulate fill and flatten stroke")
	fmt.Fprintln(w, "  vecdraw bounds <scene>                          Print the bounds of every shape")
	fmt.Fprintln(w, "  vecdraw snap <scene> <id> <dx> <dy> [--grid] [--objects] [--geometry]")
	fmt.Fprintln(w, "                                                  Snap a proposed move")
	fmt.Fprintln(w, "  vecdraw outline <text> [--size n] [--font family]")
	fmt.Fprintln(w, "                                                  Convert text to a scene of glyph paths")
	fmt.Fprintln(w, "  vecdraw export <scene> <out> [--preset web|print] [--scale s] [--padding p]")
	fmt.Fprintln(w, "                                                  Write png/svg/pdf, or a preset batch into a directory")
	fmt.Fprintln(w, "  vecdraw serve [--addr host:port]                Run the HTTP and websocket host")
}

func main() {
	args := os.Args
	cmd := ""
	if len(args) > 1 {
		cmd = args[1]
	}
	var input string
	if len(args) > 2 {
		input = args[2]
	}
	defer crash.Recover(crash.Info{Command: cmd, Input: input})

	switch cmd {
	case "", "help", "-h", "--help":
		usage(os.Stdout)
		return
	case "version", "--version", "-v":
		fmt.Println(version.String())
		return
	}

	env, err := app.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	l := applog.WithComponent("cli")
	l.Debug("start", slog.String("cmd", cmd), slog.Int("args", len(args)))

	run, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
	start := time.Now()
	err = run(env, args[2:], os.Stdout)
	tc := telemetry.Default()
	tc.Event("command", map[string]any{"cmd": cmd, "ok": err == nil, "ms": time.Since(start).Milliseconds()})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	tc.Close(ctx)
	cancel()
	if err != nil {
		l.Error(cmd+" failed", slog.Any("err", err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		if isUsage(err) {
			usage(os.Stderr)
			os.Exit(2)
		}
		os.Exit(1)
	}
}
