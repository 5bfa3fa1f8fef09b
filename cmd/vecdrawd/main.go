/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Command vecdrawd runs the geometry kernel host: stateless HTTP endpoints
// plus websocket drag sessions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"vecdraw/internal/app"
	"vecdraw/internal/crash"
	applog "vecdraw/internal/log"
	"vecdraw/internal/version"
)

func main() {
	defer crash.Recover(crash.Info{Command: "vecdrawd"})

	addr := flag.String("addr", "", "listen address (default from config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()
	if *showVersion {
		fmt.Println(version.String())
		return
	}

	env, err := app.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	l := applog.WithComponent("vecdrawd")
	if *addr == "" {
		*addr = env.Config.Server.Addr
	}

	srv, err := env.Server()
	if err != nil {
		l.Error("server setup failed", slog.Any("err", err))
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.ListenAndServe(ctx, *addr); err != nil {
		l.Error("server error", slog.Any("err", err))
		os.Exit(1)
	}
}
