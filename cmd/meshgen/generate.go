// cmd/meshgen/generate.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmp/geoverlay/log"
	"github.com/mmp/geoverlay/mesh"

	"golang.org/x/sync/errgroup"
)

// namedMeshes holds the meshes for a single shape; a mesh file is a
// slice of them in drawing order.
type namedMeshes struct {
	Name   string      `msgpack:"name"`
	Meshes []mesh.Mesh `msgpack:"meshes"`
}

// generateAll meshes the shapes using up to workers goroutines. The
// result is in the same order as shapes; the first error cancels any
// meshing that hasn't started.
func generateAll(ctx context.Context, shapes []namedShape, opts mesh.Options, workers int,
	lg *log.Logger) ([]namedMeshes, error) {
	out := make([]namedMeshes, len(shapes))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(workers, 1))
	for i, s := range shapes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			meshes, err := mesh.Generate(s.Shape, opts, lg.With(slog.String("shape", s.Name)))
			if err != nil {
				return fmt.Errorf("%s: %w", s.Name, err)
			}
			for j, m := range meshes {
				if err := m.Validate(); err != nil {
					return fmt.Errorf("%s: mesh %d: %w", s.Name, j, err)
				}
			}
			out[i] = namedMeshes{Name: s.Name, Meshes: meshes}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func vertexCount(nm []namedMeshes) (meshes, vertices int) {
	for _, n := range nm {
		for _, m := range n.Meshes {
			meshes++
			vertices += m.VertexCount()
		}
	}
	return
}
