// mesh/mesh.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package mesh turns overlay shapes into vertex buffers for the
// rasterizer. Meshes are built once, in geocentric coordinates, and stay
// valid as the view pans, zooms and rotates; wide absolute strokes carry
// their neighbours and half-width per vertex so that the rasterizer can
// extrude them in screen space each frame.
package mesh

import (
	"errors"
	"fmt"

	"github.com/mmp/geoverlay/unit"
)

var ErrInvalidMesh = errors.New("invalid mesh")

type Primitive int

const (
	LineList Primitive = iota
	TriangleList
)

func (p Primitive) String() string {
	switch p {
	case LineList:
		return "LineList"
	case TriangleList:
		return "TriangleList"
	default:
		return fmt.Sprintf("Primitive(%d)", int(p))
	}
}

// Extrusion holds the per-vertex data for extruding a line in screen
// space: the geocentric positions of each vertex's neighbours along the
// line (the zero vector where there is none) and its signed half-width in
// pixels, positive to the left of the direction of travel.
type Extrusion struct {
	Previous  []float32 // 3 per vertex
	Next      []float32 // 3 per vertex
	HalfWidth []float32
}

// Mesh is a set of vertex attribute arrays drawn with a single primitive.
// Exactly one of Geocentric and Offsets is populated and it determines the
// vertex count. Meshes with Offsets are positioned at Anchor.
type Mesh struct {
	Geocentric []float32 // 3 per vertex
	Extrusion  *Extrusion
	Offsets    []float32 // 2 per vertex, in pixels
	Anchor     [3]float32
	Colours    []uint32 // packed as unit.Colour
	Primitive  Primitive
}

// VertexCount returns the number of vertices in the mesh.
func (m Mesh) VertexCount() int {
	if len(m.Geocentric) > 0 {
		return len(m.Geocentric) / 3
	}
	return len(m.Offsets) / 2
}

// Validate checks that the mesh's attribute arrays are consistent with
// one another and with its primitive.
func (m Mesh) Validate() error {
	geo, off := len(m.Geocentric) > 0, len(m.Offsets) > 0
	if geo == off {
		return fmt.Errorf("%d geocentric and %d offset values: %w", len(m.Geocentric), len(m.Offsets), ErrInvalidMesh)
	}
	if len(m.Geocentric)%3 != 0 {
		return fmt.Errorf("%d geocentric values: %w", len(m.Geocentric), ErrInvalidMesh)
	}
	if len(m.Offsets)%2 != 0 {
		return fmt.Errorf("%d offset values: %w", len(m.Offsets), ErrInvalidMesh)
	}

	n := m.VertexCount()
	if len(m.Colours) != n {
		return fmt.Errorf("%d colours for %d vertices: %w", len(m.Colours), n, ErrInvalidMesh)
	}

	if e := m.Extrusion; e != nil {
		if off {
			return fmt.Errorf("extrusion of an offset mesh: %w", ErrInvalidMesh)
		}
		if len(e.Previous) != 3*n || len(e.Next) != 3*n || len(e.HalfWidth) != n {
			return fmt.Errorf("extrusion with %d/%d/%d values for %d vertices: %w", len(e.Previous),
				len(e.Next), len(e.HalfWidth), n, ErrInvalidMesh)
		}
	}

	switch m.Primitive {
	case LineList:
		if n%2 != 0 {
			return fmt.Errorf("%d vertices in a line list: %w", n, ErrInvalidMesh)
		}
	case TriangleList:
		if n%3 != 0 {
			return fmt.Errorf("%d vertices in a triangle list: %w", n, ErrInvalidMesh)
		}
	default:
		return fmt.Errorf("%s: %w", m.Primitive, ErrInvalidMesh)
	}
	return nil
}

// Colour returns the colour of the i'th vertex.
func (m Mesh) Colour(i int) unit.Colour {
	return unit.Colour(m.Colours[i])
}
