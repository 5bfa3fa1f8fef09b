/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package server hosts the geometry kernel over HTTP. Stateless endpoints
// share one kernel behind a mutex; each websocket session owns its own.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"

	"vecdraw/internal/kernel"
	applog "vecdraw/internal/log"
	"vecdraw/internal/snap"
)

// maxBody caps request bodies of the stateless endpoints.
const maxBody = 8 << 20

type Options struct {
	Kernel kernel.Options
	// Snap fills in options a request leaves at their zero value.
	Snap snap.Options
	// AllowedOrigins are websocket origin patterns, e.g. "localhost:*".
	AllowedOrigins []string
	Logger         *slog.Logger
}

type Server struct {
	opts   Options
	log    *slog.Logger
	router *mux.Router

	// mu guards k; the kernel does no locking of its own.
	mu sync.Mutex
	k  *kernel.Kernel

	sessions atomic.Int64
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = applog.WithComponent("server")
	}
	if opts.Kernel.Logger == nil {
		opts.Kernel.Logger = opts.Logger
	}
	s := &Server{opts: opts, log: opts.Logger, k: kernel.New(opts.Kernel)}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.recovery)
	r.Use(s.logging)

	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.HandleFunc("/version", s.handleVersion).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/parse", s.handleParse).Methods("POST")
	v1.HandleFunc("/tessellate", s.handleTessellate).Methods("POST")
	v1.HandleFunc("/bounds", s.handleBounds).Methods("POST")
	v1.HandleFunc("/snap", s.handleSnap).Methods("POST")
	v1.HandleFunc("/session", s.handleSession).Methods("GET")
	return r
}

func (s *Server) Handler() http.Handler { return s.router }

// Sessions reports the number of open websocket sessions.
func (s *Server) Sessions() int64 { return s.sessions.Load() }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("handler panic", "panic", rec, "path", r.URL.Path, "stack", string(debug.Stack()))
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Hijack is needed by the websocket upgrade.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"dur", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
