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
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"vecdraw/internal/app"
	"vecdraw/internal/export"
	"vecdraw/internal/glyph"
	"vecdraw/internal/gradient"
	"vecdraw/internal/kernel"
	"vecdraw/internal/pathdata"
	"vecdraw/internal/render"
	"vecdraw/internal/scene"
	"vecdraw/internal/snap"
	"vecdraw/internal/tessellate"
	"vecdraw/internal/vector"
)

type usageError string

func (e usageError) Error() string { return string(e) }

type command func(env *app.Env, args []string, out io.Writer) error

var commands = map[string]command{
	"parse":      runParse,
	"tessellate": runTessellate,
	"bounds":     runBounds,
	"snap":       runSnap,
	"outline":    runOutline,
	"export":     runExport,
	"serve":      runServe,
}

// parseArgs lets flags and positional arguments interleave. Negative numbers
// are positional.
func parseArgs(fs *flag.FlagSet, args []string, want int, name string) ([]string, error) {
	fs.SetOutput(io.Discard)
	var pos []string
	for len(args) > 0 {
		if _, err := strconv.ParseFloat(args[0], 64); err == nil {
			pos = append(pos, args[0])
			args = args[1:]
			continue
		}
		if err := fs.Parse(args); err != nil {
			return nil, usageError(fmt.Sprintf("%s: %v", name, err))
		}
		args = fs.Args()
		if len(args) > 0 {
			pos = append(pos, args[0])
			args = args[1:]
		}
	}
	if len(pos) != want {
		return nil, usageError(fmt.Sprintf("%s takes %d argument(s), got %d", name, want, len(pos)))
	}
	return pos, nil
}

func runParse(env *app.Env, args []string, out io.Writer) error {
	pos, err := parseArgs(flag.NewFlagSet("parse", flag.ContinueOnError), args, 1, "parse")
	if err != nil {
		return err
	}
	cmds, perr := pathdata.Parse(pos[0])
	fmt.Fprintln(out, pathdata.Stringify(cmds))
	for _, c := range cmds {
		parts := []string{c.Op.String()}
		for _, a := range c.Args() {
			parts = append(parts, pathdata.FormatNumber(a))
		}
		fmt.Fprintln(out, " ", strings.Join(parts, " "))
	}
	if perr != nil {
		return fmt.Errorf("path truncated: %w", perr)
	}
	return nil
}

func runTessellate(env *app.Env, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("tessellate", flag.ContinueOnError)
	segments := fs.Int("segments", 0, "segments per curve")
	stroke := fs.Float64("stroke", 1, "stroke width")
	asJSON := fs.Bool("json", false, "print the vertex buffers as JSON")
	pos, err := parseArgs(fs, args, 1, "tessellate")
	if err != nil {
		return err
	}
	ko, err := env.KernelOptions()
	if err != nil {
		return err
	}
	if *segments > 0 {
		ko.Segments = *segments
	}
	fill, strk := kernel.New(ko).Tessellate(pos[0], *stroke)
	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]float32{"fill": fill, "stroke": strk})
	}
	fmt.Fprintf(out, "triangles: %d\n", len(fill)/6)
	fmt.Fprintf(out, "segments:  %d\n", len(strk)/4)
	all := append(append([]float32(nil), fill...), strk...)
	if b, ok := tessellate.Bounds(all); ok {
		fmt.Fprintf(out, "bounds:    %s\n", rectString(b))
	}
	return nil
}

func runBounds(env *app.Env, args []string, out io.Writer) error {
	pos, err := parseArgs(flag.NewFlagSet("bounds", flag.ContinueOnError), args, 1, "bounds")
	if err != nil {
		return err
	}
	sc, k, err := loadScene(env, pos[0])
	if err != nil {
		return err
	}
	var walk func(shapes []vector.Shape, depth int)
	walk = func(shapes []vector.Shape, depth int) {
		for _, s := range shapes {
			fmt.Fprintf(out, "%s%s\t%s\t%s\n", strings.Repeat("  ", depth), s.Base().ID, s.Kind(), rectString(k.Bounds(s)))
			if g, ok := s.(*vector.GroupShape); ok {
				walk(g.Children, depth+1)
			}
		}
	}
	walk(sc.Shapes, 0)
	return nil
}

func runSnap(env *app.Env, args []string, out io.Writer) error {
	def := env.SnapOptions()
	fs := flag.NewFlagSet("snap", flag.ContinueOnError)
	grid := fs.Bool("grid", def.SnapToGrid, "snap to the grid")
	objects := fs.Bool("objects", def.SnapToObjects, "snap to other shapes")
	geometry := fs.Bool("geometry", def.SnapToGeometry, "snap to shape points")
	pos, err := parseArgs(fs, args, 4, "snap")
	if err != nil {
		return err
	}
	dx, err := strconv.ParseFloat(pos[2], 64)
	if err != nil {
		return usageError("snap: dx must be a number")
	}
	dy, err := strconv.ParseFloat(pos[3], 64)
	if err != nil {
		return usageError("snap: dy must be a number")
	}
	opts := def
	opts.SnapToGrid, opts.SnapToObjects, opts.SnapToGeometry = *grid, *objects, *geometry

	sc, k, err := loadScene(env, pos[0])
	if err != nil {
		return err
	}
	res, ok := k.SnapMove(sc.Shapes, pos[1], dx, dy, opts)
	if !ok {
		return fmt.Errorf("shape %q not found", pos[1])
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		snap.Result
		MoveX float64 `json:"moveX"`
		MoveY float64 `json:"moveY"`
	}{res, dx + res.DX, dy + res.DY})
}

func runOutline(env *app.Env, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("outline", flag.ContinueOnError)
	size := fs.Float64("size", 48, "font size")
	family := fs.String("font", "", "font family")
	x := fs.Float64("x", 0, "left edge")
	y := fs.Float64("y", 0, "baseline; 0 places it one size below the top")
	asYAML := fs.Bool("yaml", false, "write YAML instead of JSON")
	pos, err := parseArgs(fs, args, 1, "outline")
	if err != nil {
		return err
	}
	if *size <= 0 {
		return usageError("outline: size must be positive")
	}
	baseline := *y
	if baseline == 0 {
		baseline = *size
	}
	g, err := glyph.TextToPaths(env.Fonts.Lookup(*family), pos[0], *x, baseline, *size)
	if err != nil {
		return err
	}
	sc := &scene.Scene{Shapes: []vector.Shape{g}}
	var data []byte
	if *asYAML {
		data, err = scene.EncodeYAML(sc)
	} else {
		data, err = scene.EncodeJSON(sc)
	}
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func runExport(env *app.Env, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	preset := fs.String("preset", "web", "batch preset when <out> is a directory: web or print")
	scale := fs.Float64("scale", 0, "pixels per scene unit; 0 uses the format or preset default")
	padding := fs.Float64("padding", 0, "margin around the scene bounds")
	background := fs.String("background", "", "background color")
	pos, err := parseArgs(fs, args, 2, "export")
	if err != nil {
		return err
	}
	opt := export.Options{Padding: *padding, Scale: *scale}
	if *background != "" {
		if opt.Background, err = gradient.ParseColor(*background); err != nil {
			return err
		}
	}
	sc, k, err := loadScene(env, pos[0])
	if err != nil {
		return err
	}
	b := render.Builder{Kernel: k, Gradients: sc.Gradients, Fonts: env.Fonts}
	calls := b.Build(sc.Shapes)

	dst := pos[1]
	if _, ferr := export.FormatFor(dst); ferr == nil {
		if err := export.WriteFile(dst, calls, opt); err != nil {
			return err
		}
		fmt.Fprintln(out, dst)
		return nil
	}
	base := strings.TrimSuffix(filepath.Base(pos[0]), filepath.Ext(pos[0]))
	written, err := export.BatchExport(calls, export.BatchOptions{
		Preset:  export.PresetName(*preset),
		OutDir:  dst,
		Base:    base,
		Scale:   *scale,
		Options: opt,
	})
	for _, p := range written {
		fmt.Fprintln(out, p)
	}
	return err
}

func runServe(env *app.Env, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", env.Config.Server.Addr, "listen address")
	if _, err := parseArgs(fs, args, 0, "serve"); err != nil {
		return err
	}
	srv, err := env.Server()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Fprintf(out, "listening on %s\n", *addr)
	return srv.ListenAndServe(ctx, *addr)
}

// loadScene reads a scene, measures its text with the configured fonts and
// refreshes path bounds.
func loadScene(env *app.Env, path string) (*scene.Scene, *kernel.Kernel, error) {
	sc, err := scene.Load(path)
	if err != nil {
		return nil, nil, err
	}
	k, err := env.Kernel()
	if err != nil {
		return nil, nil, err
	}
	for _, s := range vector.Flatten(sc.Shapes) {
		if t, ok := s.(*vector.TextShape); ok {
			glyph.MeasureInk(env.Fonts.Lookup(t.FontFamily), t)
		}
	}
	k.RefreshBounds(sc.Shapes)
	return sc, k, nil
}

func rectString(r vector.Rect) string {
	return strings.Join([]string{
		pathdata.FormatNumber(r.X),
		pathdata.FormatNumber(r.Y),
		pathdata.FormatNumber(r.W),
		pathdata.FormatNumber(r.H),
	}, " ")
}

func isUsage(err error) bool {
	var ue usageError
	return errors.As(err, &ue)
}
