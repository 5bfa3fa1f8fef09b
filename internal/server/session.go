/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"vecdraw/internal/kernel"
	applog "vecdraw/internal/log"
	"vecdraw/internal/scene"
	"vecdraw/internal/snap"
	"vecdraw/internal/typeid"
	"vecdraw/internal/vector"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 4 << 20
)

// Frame types a client may send. An empty type is a snap frame.
const (
	FrameSnap   = "snap"
	FrameScene  = "scene"
	FrameMove   = "move"
	FrameCommit = "commit"
)

// Frame is one client message. Snap frames carry precomputed candidates;
// move and commit frames refer to a shape of the scene loaded earlier.
type Frame struct {
	Type string `json:"type,omitempty"`
	Seq  int64  `json:"seq,omitempty"`

	Moving  *snap.Box     `json:"moving,omitempty"`
	Boxes   []snap.Box    `json:"boxes,omitempty"`
	Points  []vector.Pt   `json:"points,omitempty"`
	Options *snap.Options `json:"options,omitempty"`

	Scene json.RawMessage `json:"scene,omitempty"`

	ID string  `json:"id,omitempty"`
	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`
}

// Reply answers a frame with the same Seq.
type Reply struct {
	Type   string       `json:"type"`
	Seq    int64        `json:"seq,omitempty"`
	Result *snap.Result `json:"result,omitempty"`
	Shapes int          `json:"shapes,omitempty"`
	Bounds *vector.Rect `json:"bounds,omitempty"`
	Error  string       `json:"error,omitempty"`
}

type session struct {
	id   string
	srv  *Server
	conn *websocket.Conn
	send chan []byte
	log  *slog.Logger

	// Only the read pump touches k and scene.
	k     *kernel.Kernel
	scene *scene.Scene
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.opts.AllowedOrigins,
	})
	if err != nil {
		s.log.Error("websocket accept", "error", err)
		return
	}
	id := typeid.NewSessionID()
	ctx, cancel := context.WithCancel(applog.ContextWithSession(r.Context(), id))
	defer cancel()

	l := s.log.With("session", id)
	ko := s.opts.Kernel
	ko.Logger = l
	sess := &session{
		id:   id,
		srv:  s,
		conn: conn,
		send: make(chan []byte, 64),
		log:  l,
		k:    kernel.New(ko),
	}

	s.sessions.Add(1)
	defer s.sessions.Add(-1)
	l.InfoContext(ctx, "session opened")
	defer l.InfoContext(ctx, "session closed")

	go sess.writePump(ctx)
	sess.readPump(ctx)
}

func (c *session) readPump(ctx context.Context) {
	defer c.conn.Close(websocket.StatusNormalClosure, "")
	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if st := websocket.CloseStatus(err); st != websocket.StatusNormalClosure && st != websocket.StatusGoingAway {
				c.log.DebugContext(ctx, "read error", "error", err)
			}
			return
		}
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			c.reply(ctx, &Reply{Type: "error", Error: "invalid frame"})
			continue
		}
		c.reply(ctx, c.handle(&f))
	}
}

func (c *session) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				c.log.DebugContext(ctx, "write error", "error", err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *session) reply(ctx context.Context, r *Reply) {
	data, err := json.Marshal(r)
	if err != nil {
		c.log.ErrorContext(ctx, "marshal reply", "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
		c.log.WarnContext(ctx, "send buffer full, dropping reply", "seq", r.Seq)
	}
}

func (c *session) handle(f *Frame) *Reply {
	fail := func(msg string) *Reply { return &Reply{Type: "error", Seq: f.Seq, Error: msg} }
	opts := c.srv.snapOptions(f.Options)

	switch f.Type {
	case "", FrameSnap:
		if f.Moving == nil {
			return fail("moving is required")
		}
		res := snap.Compute(*f.Moving, f.Boxes, f.Points, opts)
		return &Reply{Type: "result", Seq: f.Seq, Result: &res}

	case FrameScene:
		sc, err := scene.Decode(f.Scene)
		if err != nil {
			return fail(err.Error())
		}
		c.k.Clear()
		c.k.RefreshBounds(sc.Shapes)
		c.scene = sc
		return &Reply{Type: "scene", Seq: f.Seq, Shapes: len(vector.Flatten(sc.Shapes))}

	case FrameMove:
		if c.scene == nil {
			return fail("no scene loaded")
		}
		res, ok := c.k.SnapMove(c.scene.Shapes, f.ID, f.DX, f.DY, opts)
		if !ok {
			return fail("shape not found: " + f.ID)
		}
		return &Reply{Type: "result", Seq: f.Seq, Result: &res}

	case FrameCommit:
		if c.scene == nil {
			return fail("no scene loaded")
		}
		sh := c.scene.Find(f.ID)
		if sh == nil {
			return fail("shape not found: " + f.ID)
		}
		if sh.Base().Locked {
			return fail("shape is locked: " + f.ID)
		}
		c.k.MoveShape(sh, f.DX, f.DY)
		for _, leaf := range vector.Flatten([]vector.Shape{sh}) {
			c.k.Evict(leaf.Base().ID)
		}
		b := c.k.Bounds(sh)
		return &Reply{Type: "moved", Seq: f.Seq, Bounds: &b}
	}
	return fail("unknown frame type: " + f.Type)
}
