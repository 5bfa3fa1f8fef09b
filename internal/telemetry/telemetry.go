/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package telemetry sends opt-in usage events and crash reports. Nothing is
// sent unless VDW_TELEMETRY_OPT_IN is true and an endpoint is configured.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	applog "vecdraw/internal/log"
	"vecdraw/internal/version"
)

// Config is read from VDW_TELEMETRY_OPT_IN, VDW_TELEMETRY_URL,
// VDW_CRASH_UPLOAD_URL, VDW_TELEMETRY_TIMEOUT and VDW_TELEMETRY_DEBUG.
type Config struct {
	OptIn     bool          `envconfig:"TELEMETRY_OPT_IN"`
	EventsURL string        `envconfig:"TELEMETRY_URL"`
	CrashURL  string        `envconfig:"CRASH_UPLOAD_URL"`
	Timeout   time.Duration `envconfig:"TELEMETRY_TIMEOUT" default:"1500ms"`
	Debug     bool          `envconfig:"TELEMETRY_DEBUG"`
}

// FromEnv returns a disabled config when the variables do not parse.
func FromEnv() Config {
	var cfg Config
	if err := envconfig.Process("VDW", &cfg); err != nil {
		applog.WithComponent("telemetry").Warn("telemetry disabled", slog.Any("err", err))
		return Config{}
	}
	return cfg
}

// Client queues events and posts them from one goroutine. A full queue drops
// events.
type Client struct {
	cfg    Config
	log    *slog.Logger
	cli    *http.Client
	q      chan map[string]any
	wg     sync.WaitGroup
	once   sync.Once
	closed chan struct{}
}

var (
	defaultClient *Client
	defaultOnce   sync.Once
)

// Default returns the process client, configured from the environment on
// first use.
func Default() *Client {
	defaultOnce.Do(func() { defaultClient = New(FromEnv()) })
	return defaultClient
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 1500 * time.Millisecond
	}
	c := &Client{
		cfg:    cfg,
		log:    applog.WithComponent("telemetry"),
		cli:    &http.Client{Timeout: cfg.Timeout},
		q:      make(chan map[string]any, 64),
		closed: make(chan struct{}),
	}
	c.wg.Add(1)
	go c.loop()
	return c
}

func (c *Client) Enabled() bool { return c != nil && c.cfg.OptIn && c.cfg.EventsURL != "" }

// Event queues a named event. props must not carry document content.
func (c *Client) Event(name string, props map[string]any) {
	if !c.Enabled() || name == "" {
		return
	}
	payload := map[string]any{
		"name":    name,
		"ts":      time.Now().UTC().Format(time.RFC3339Nano),
		"version": version.Version,
		"os":      runtime.GOOS,
		"arch":    runtime.GOARCH,
	}
	for k, v := range props {
		payload[k] = v
	}
	select {
	case c.q <- payload:
	default:
	}
}

// Close drains queued events, waiting at most until ctx ends.
func (c *Client) Close(ctx context.Context) {
	c.once.Do(func() { close(c.closed) })
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (c *Client) loop() {
	defer c.wg.Done()
	for {
		select {
		case item := <-c.q:
			c.send(item)
		case <-c.closed:
			for {
				select {
				case item := <-c.q:
					c.send(item)
				default:
					return
				}
			}
		}
	}
}

func (c *Client) send(item map[string]any) {
	buf, err := json.Marshal(item)
	if err != nil {
		return
	}
	if err := c.post(c.cfg.EventsURL, "application/json", buf); err != nil && c.cfg.Debug {
		c.log.Debug("telemetry send failed", slog.Any("err", err))
	}
}

// UploadCrash posts a crash report synchronously; the caller is about to
// exit. It is a no-op unless opted in with a crash URL.
func (c *Client) UploadCrash(report []byte) error {
	if c == nil || !c.cfg.OptIn || c.cfg.CrashURL == "" {
		return nil
	}
	return c.post(c.cfg.CrashURL, "text/plain; charset=utf-8", report)
}

func (c *Client) post(url, contentType string, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.cli.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telemetry: %s answered %s", url, resp.Status)
	}
	return nil
}
