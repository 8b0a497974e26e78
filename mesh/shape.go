// mesh/shape.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mesh

import (
	"github.com/mmp/geoverlay/math"
	"github.com/mmp/geoverlay/unit"
)

// Shape is one of the overlay shapes that Generate knows how to mesh:
// GeoCircle, GeoPolygon, GeoPolyline, GeoRelativeCircle,
// GeoRelativePolygon or GeoRelativePolyline. The set is closed.
type Shape interface {
	isShape()
}

// Stroke describes the outline of a shape; Width is in pixels.
type Stroke struct {
	Width  int
	Colour unit.Colour
}

// Paint specifies how a shape is drawn; either or both of Stroke and Fill
// may be nil.
type Paint struct {
	Stroke *Stroke
	Fill   *unit.Colour
}

// GeoCircle is a circle on the earth's surface.
type GeoCircle struct {
	Centre unit.LatLong
	Radius unit.Length
	Paint  Paint
}

// GeoPolygon is a closed polygon whose edges are great circles. It must be
// simple if it is filled.
type GeoPolygon struct {
	Vertices []unit.LatLong
	Paint    Paint
}

// GeoPolyline is an open polyline whose segments are great circles. Only
// its stroke is drawn.
type GeoPolyline struct {
	Points []unit.LatLong
	Paint  Paint
}

// The relative shapes are positioned at a single geographic anchor and
// given in pixels relative to it, so they stay the same size on the
// screen as the view zooms. Offsets have y increasing upward.

type GeoRelativeCircle struct {
	Anchor unit.LatLong
	Radius float64
	Paint  Paint
}

type GeoRelativePolygon struct {
	Anchor  unit.LatLong
	Offsets []math.Vector2
	Paint   Paint
}

type GeoRelativePolyline struct {
	Anchor  unit.LatLong
	Offsets []math.Vector2
	Paint   Paint
}

func (GeoCircle) isShape()           {}
func (GeoPolygon) isShape()          {}
func (GeoPolyline) isShape()         {}
func (GeoRelativeCircle) isShape()   {}
func (GeoRelativePolygon) isShape()  {}
func (GeoRelativePolyline) isShape() {}
