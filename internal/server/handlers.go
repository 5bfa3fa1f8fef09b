/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"vecdraw/internal/kernel"
	"vecdraw/internal/pathdata"
	"vecdraw/internal/scene"
	"vecdraw/internal/snap"
	"vecdraw/internal/tessellate"
	"vecdraw/internal/vector"
	"vecdraw/internal/version"
)

type commandJSON struct {
	Op   string    `json:"op"`
	Args []float64 `json:"args,omitempty"`
}

type parseRequest struct {
	D string `json:"d"`
}

type parseResponse struct {
	Commands []commandJSON `json:"commands"`
	D        string        `json:"d"`
	// Error describes where parsing stopped; Commands hold the valid prefix.
	Error    string        `json:"error,omitempty"`
}

type tessellateRequest struct {
	D           string  `json:"d"`
	StrokeWidth float64 `json:"strokeWidth"`
	Segments    int     `json:"segments,omitempty"`
}

type tessellateResponse struct {
	Fill      []float32    `json:"fill"`
	Stroke    []float32    `json:"stroke"`
	Triangles int          `json:"triangles"`
	Segments  int          `json:"segments"`
	Bounds    *vector.Rect `json:"bounds,omitempty"`
}

type boundsResponse struct {
	Shapes map[string]vector.Rect `json:"shapes"`
	Scene  *vector.Rect           `json:"scene,omitempty"`
}

// snapRequest either carries a whole scene plus the id and proposed delta of
// the dragged shape, or precomputed candidates as a session frame does.
type snapRequest struct {
	Scene json.RawMessage `json:"scene,omitempty"`
	ID    string          `json:"id,omitempty"`
	DX    float64         `json:"dx,omitempty"`
	DY    float64         `json:"dy,omitempty"`

	Moving *snap.Box     `json:"moving,omitempty"`
	Boxes  []snap.Box    `json:"boxes,omitempty"`
	Points []vector.Pt   `json:"points,omitempty"`
	Opts   *snap.Options `json:"options,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.Sessions()})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": version.Version, "commit": version.Commit})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	cmds, err := pathdata.Parse(req.D)
	resp := parseResponse{Commands: commandsJSON(cmds), D: pathdata.Stringify(cmds)}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTessellate(w http.ResponseWriter, r *http.Request) {
	var req tessellateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.StrokeWidth < 0 {
		writeError(w, http.StatusBadRequest, "strokeWidth must not be negative")
		return
	}
	var fill, stroke []float32
	if req.Segments > 0 {
		ko := s.opts.Kernel
		ko.Segments = req.Segments
		fill, stroke = kernel.New(ko).Tessellate(req.D, req.StrokeWidth)
	} else {
		s.mu.Lock()
		fill, stroke = s.k.Tessellate(req.D, req.StrokeWidth)
		s.mu.Unlock()
	}
	resp := tessellateResponse{
		Fill:      nonNil(fill),
		Stroke:    nonNil(stroke),
		Triangles: len(fill) / 6,
		Segments:  len(stroke) / 4,
	}
	if b, ok := tessellate.Bounds(append(append([]float32(nil), fill...), stroke...)); ok {
		resp.Bounds = &b
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	data, ok := readBody(w, r)
	if !ok {
		return
	}
	sc, err := scene.Decode(data)
	if err != nil {
		writeSceneError(w, err)
		return
	}
	resp := boundsResponse{Shapes: make(map[string]vector.Rect)}
	s.mu.Lock()
	s.k.RefreshBounds(sc.Shapes)
	for _, sh := range vector.Flatten(sc.Shapes) {
		resp.Shapes[sh.Base().ID] = s.k.Bounds(sh)
	}
	top := make([]vector.Rect, 0, len(sc.Shapes))
	for _, sh := range sc.Shapes {
		b := s.k.Bounds(sh)
		resp.Shapes[sh.Base().ID] = b
		top = append(top, b)
	}
	s.mu.Unlock()
	if u, ok := vector.UnionAll(top); ok {
		resp.Scene = &u
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSnap(w http.ResponseWriter, r *http.Request) {
	var req snapRequest
	if !decodeBody(w, r, &req) {
		return
	}
	opts := s.snapOptions(req.Opts)
	if len(req.Scene) > 0 {
		sc, err := scene.Decode(req.Scene)
		if err != nil {
			writeSceneError(w, err)
			return
		}
		s.mu.Lock()
		res, found := s.k.SnapMove(sc.Shapes, req.ID, req.DX, req.DY, opts)
		s.mu.Unlock()
		if !found {
			writeError(w, http.StatusNotFound, "shape not found: "+req.ID)
			return
		}
		writeJSON(w, http.StatusOK, res)
		return
	}
	if req.Moving == nil {
		writeError(w, http.StatusBadRequest, "either scene and id or moving is required")
		return
	}
	writeJSON(w, http.StatusOK, snap.Compute(*req.Moving, req.Boxes, req.Points, opts))
}

func (s *Server) snapOptions(o *snap.Options) snap.Options {
	if o == nil {
		return s.opts.Snap
	}
	return *o
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request too large")
		return nil, false
	}
	return data, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	data, ok := readBody(w, r)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeSceneError(w http.ResponseWriter, err error) {
	var ve *scene.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": "invalid scene", "problems": ve.Problems})
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func commandsJSON(cmds []vector.PathCmd) []commandJSON {
	out := make([]commandJSON, len(cmds))
	for i, c := range cmds {
		out[i] = commandJSON{Op: c.Op.String(), Args: c.Args()}
	}
	return out
}

func nonNil(v []float32) []float32 {
	if v == nil {
		return []float32{}
	}
	return v
}
