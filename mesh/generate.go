// mesh/generate.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mesh

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmp/geoverlay/log"
	"github.com/mmp/geoverlay/math"
	"github.com/mmp/geoverlay/planar"
	"github.com/mmp/geoverlay/projection"
	"github.com/mmp/geoverlay/spherical"
	"github.com/mmp/geoverlay/triangulate"
	"github.com/mmp/geoverlay/unit"
)

var (
	ErrInvalidShape   = errors.New("invalid shape")
	ErrUnknownShape   = errors.New("unknown shape")
	ErrInvalidOptions = errors.New("invalid mesh options")
)

// Options control how shapes are meshed.
type Options struct {
	// CircleSegments is the number of points circles are discretised
	// into.
	CircleSegments int
	// MiterLimit bounds the length of a miter join, in half-widths, before
	// it falls back to the edge normal.
	MiterLimit  float64
	EarthRadius unit.Length
}

func DefaultOptions() Options {
	return Options{
		CircleSegments: 100,
		MiterLimit:     4,
		EarthRadius:    unit.Metres(6371009),
	}
}

func (o Options) validate() error {
	if o.CircleSegments < 3 {
		return fmt.Errorf("%d circle segments: %w", o.CircleSegments, ErrInvalidOptions)
	}
	if o.EarthRadius <= 0 {
		return fmt.Errorf("earth radius %s: %w", o.EarthRadius, ErrInvalidOptions)
	}
	return nil
}

// Generate returns the meshes that draw shape: first the fill, if there is
// one, and then the stroke. A shape with neither gives no meshes.
func Generate(shape Shape, opts Options, lg *log.Logger) ([]Mesh, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var meshes []Mesh
	var err error
	switch s := shape.(type) {
	case GeoCircle:
		meshes, err = geoCircle(s, opts)
	case GeoPolygon:
		meshes, err = geoPolygon(s)
	case GeoPolyline:
		if s.Paint.Fill != nil {
			lg.Debug("ignoring polyline fill", slog.Int("points", len(s.Points)))
		}
		meshes, err = geoPolyline(s)
	case GeoRelativeCircle:
		meshes, err = relativeCircle(s, opts)
	case GeoRelativePolygon:
		meshes, err = relativePolygon(s, opts)
	case GeoRelativePolyline:
		if s.Paint.Fill != nil {
			lg.Debug("ignoring polyline fill", slog.Int("points", len(s.Offsets)))
		}
		meshes, err = relativePolyline(s, opts)
	default:
		err = fmt.Errorf("%T: %w", shape, ErrUnknownShape)
	}
	if err != nil {
		return nil, err
	}

	if len(meshes) == 0 {
		lg.Debugf("%T: nothing to draw", shape)
	}
	for _, m := range meshes {
		lg.Debug("generated mesh", slog.String("shape", fmt.Sprintf("%T", shape)),
			slog.String("primitive", m.Primitive.String()), slog.Int("vertices", m.VertexCount()))
	}
	return meshes, nil
}

func checkStroke(s *Stroke) error {
	if s != nil && s.Width < 1 {
		return fmt.Errorf("stroke width %d: %w", s.Width, ErrInvalidShape)
	}
	return nil
}

func toGeocentric(lls []unit.LatLong) []math.Vector3 {
	v := make([]math.Vector3, len(lls))
	for i, ll := range lls {
		v[i] = projection.LatLongToGeocentric(ll)
	}
	return v
}

func closingStripped[V comparable](pts []V) []V {
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		return pts[:n-1]
	}
	return pts
}

///////////////////////////////////////////////////////////////////////////
// Absolute shapes

func geoCircle(c GeoCircle, opts Options) ([]Mesh, error) {
	if c.Radius <= 0 {
		return nil, fmt.Errorf("circle radius %s: %w", c.Radius, ErrInvalidShape)
	}
	if err := checkStroke(c.Paint.Stroke); err != nil {
		return nil, err
	}

	centre := projection.LatLongToGeocentric(c.Centre)
	ring := spherical.DiscretiseCircle(centre, c.Radius, opts.EarthRadius, opts.CircleSegments)

	var meshes []Mesh
	if c.Paint.Fill != nil {
		meshes = append(meshes, geoFill(fan(centre, ring), *c.Paint.Fill))
	}
	if c.Paint.Stroke != nil {
		meshes = append(meshes, geoStroke(ring, true, *c.Paint.Stroke))
	}
	return meshes, nil
}

func geoPolygon(p GeoPolygon) ([]Mesh, error) {
	vertices := closingStripped(toGeocentric(p.Vertices))
	if len(vertices) < 3 {
		return nil, fmt.Errorf("polygon with %d vertices: %w: %w", len(vertices), ErrInvalidShape,
			triangulate.ErrTooFewVertices)
	}
	if err := checkStroke(p.Paint.Stroke); err != nil {
		return nil, err
	}

	var meshes []Mesh
	if p.Paint.Fill != nil {
		tris, err := triangulate.Spherical.Triangulate(vertices)
		if err != nil {
			return nil, fmt.Errorf("polygon fill: %w", err)
		}
		meshes = append(meshes, geoFill(tris, *p.Paint.Fill))
	}
	if p.Paint.Stroke != nil {
		meshes = append(meshes, geoStroke(vertices, true, *p.Paint.Stroke))
	}
	return meshes, nil
}

func geoPolyline(p GeoPolyline) ([]Mesh, error) {
	if len(p.Points) < 2 {
		return nil, fmt.Errorf("polyline with %d points: %w", len(p.Points), ErrInvalidShape)
	}
	if err := checkStroke(p.Paint.Stroke); err != nil {
		return nil, err
	}

	if p.Paint.Stroke == nil {
		return nil, nil
	}
	return []Mesh{geoStroke(toGeocentric(p.Points), false, *p.Paint.Stroke)}, nil
}

// fan returns the triangles joining centre to each edge of ring.
func fan[V any](centre V, ring []V) []math.Triangle[V] {
	tris := make([]math.Triangle[V], len(ring))
	for i := range ring {
		tris[i] = math.Triangle[V]{centre, ring[i], ring[(i+1)%len(ring)]}
	}
	return tris
}

func appendVector3(s []float32, v math.Vector3) []float32 {
	f := v.Float32()
	return append(s, f[:]...)
}

func geoFill(tris []math.Triangle[math.Vector3], c unit.Colour) Mesh {
	m := Mesh{
		Geocentric: make([]float32, 0, 9*len(tris)),
		Colours:    make([]uint32, 0, 3*len(tris)),
		Primitive:  TriangleList,
	}
	for _, t := range tris {
		for _, v := range t {
			m.Geocentric = appendVector3(m.Geocentric, v)
			m.Colours = append(m.Colours, c.RGBA())
		}
	}
	return m
}

// geoStroke returns the mesh for the outline through pts. One-pixel lines
// are drawn as a line list with a vertex pair per segment; wider ones are
// two triangles per segment, left for the rasterizer to extrude.
func geoStroke(pts []math.Vector3, closed bool, s Stroke) Mesh {
	n := len(pts)
	nseg := n - 1
	if closed {
		nseg = n
	}
	c := s.Colour.RGBA()

	if s.Width == 1 {
		m := Mesh{
			Geocentric: make([]float32, 0, 6*nseg),
			Colours:    make([]uint32, 0, 2*nseg),
			Primitive:  LineList,
		}
		for i := range nseg {
			m.Geocentric = appendVector3(m.Geocentric, pts[i])
			m.Geocentric = appendVector3(m.Geocentric, pts[(i+1)%n])
			m.Colours = append(m.Colours, c, c)
		}
		return m
	}

	// neighbour returns the i'th point, or the zero vector off the end of
	// an open line.
	neighbour := func(i int) math.Vector3 {
		if closed {
			return pts[(i+n)%n]
		} else if i < 0 || i >= n {
			return math.Vector3{}
		}
		return pts[i]
	}

	hw := float32(s.Width) / 2
	m := Mesh{
		Geocentric: make([]float32, 0, 18*nseg),
		Extrusion: &Extrusion{
			Previous:  make([]float32, 0, 18*nseg),
			Next:      make([]float32, 0, 18*nseg),
			HalfWidth: make([]float32, 0, 6*nseg),
		},
		Colours:   make([]uint32, 0, 6*nseg),
		Primitive: TriangleList,
	}
	vertex := func(i int, side float32) {
		m.Geocentric = appendVector3(m.Geocentric, neighbour(i))
		m.Extrusion.Previous = appendVector3(m.Extrusion.Previous, neighbour(i-1))
		m.Extrusion.Next = appendVector3(m.Extrusion.Next, neighbour(i+1))
		m.Extrusion.HalfWidth = append(m.Extrusion.HalfWidth, side*hw)
		m.Colours = append(m.Colours, c)
	}
	for a := range nseg {
		b := a + 1
		vertex(a, 1)
		vertex(a, -1)
		vertex(b, 1)
		vertex(a, -1)
		vertex(b, -1)
		vertex(b, 1)
	}
	return m
}

///////////////////////////////////////////////////////////////////////////
// Relative shapes

func relativeCircle(c GeoRelativeCircle, opts Options) ([]Mesh, error) {
	if c.Radius <= 0 {
		return nil, fmt.Errorf("circle radius %f: %w", c.Radius, ErrInvalidShape)
	}
	if err := checkStroke(c.Paint.Stroke); err != nil {
		return nil, err
	}

	anchor := projection.LatLongToGeocentric(c.Anchor)
	ring := planar.DiscretiseCircle(math.Vector2{}, c.Radius, opts.CircleSegments)

	var meshes []Mesh
	if c.Paint.Fill != nil {
		meshes = append(meshes, relativeFill(anchor, fan(math.Vector2{}, ring), *c.Paint.Fill))
	}
	if c.Paint.Stroke != nil {
		meshes = append(meshes, relativeStroke(anchor, ring, true, *c.Paint.Stroke, opts.MiterLimit))
	}
	return meshes, nil
}

func relativePolygon(p GeoRelativePolygon, opts Options) ([]Mesh, error) {
	offsets := closingStripped(p.Offsets)
	if len(offsets) < 3 {
		return nil, fmt.Errorf("polygon with %d vertices: %w: %w", len(offsets), ErrInvalidShape,
			triangulate.ErrTooFewVertices)
	}
	if err := checkStroke(p.Paint.Stroke); err != nil {
		return nil, err
	}

	anchor := projection.LatLongToGeocentric(p.Anchor)
	var meshes []Mesh
	if p.Paint.Fill != nil {
		tris, err := triangulate.Planar.Triangulate(offsets)
		if err != nil {
			return nil, fmt.Errorf("polygon fill: %w", err)
		}
		meshes = append(meshes, relativeFill(anchor, tris, *p.Paint.Fill))
	}
	if p.Paint.Stroke != nil {
		meshes = append(meshes, relativeStroke(anchor, offsets, true, *p.Paint.Stroke, opts.MiterLimit))
	}
	return meshes, nil
}

func relativePolyline(p GeoRelativePolyline, opts Options) ([]Mesh, error) {
	if len(p.Offsets) < 2 {
		return nil, fmt.Errorf("polyline with %d points: %w", len(p.Offsets), ErrInvalidShape)
	}
	if err := checkStroke(p.Paint.Stroke); err != nil {
		return nil, err
	}

	if p.Paint.Stroke == nil {
		return nil, nil
	}
	anchor := projection.LatLongToGeocentric(p.Anchor)
	return []Mesh{relativeStroke(anchor, p.Offsets, false, *p.Paint.Stroke, opts.MiterLimit)}, nil
}

func relativeFill(anchor math.Vector3, tris []math.Triangle[math.Vector2], c unit.Colour) Mesh {
	m := Mesh{
		Offsets:   make([]float32, 0, 6*len(tris)),
		Anchor:    anchor.Float32(),
		Colours:   make([]uint32, 0, 3*len(tris)),
		Primitive: TriangleList,
	}
	for _, t := range tris {
		for _, v := range t {
			m.Offsets = append(m.Offsets, float32(v[0]), float32(v[1]))
			m.Colours = append(m.Colours, c.RGBA())
		}
	}
	return m
}

// relativeStroke returns the mesh for the outline through the offsets.
// Since offsets are already in pixels, wide lines are extruded here.
func relativeStroke(anchor math.Vector3, pts []math.Vector2, closed bool, s Stroke, miterLimit float64) Mesh {
	if s.Width > 1 {
		tris := planar.Extrude(pts, float64(s.Width), miterLimit, closed)
		return relativeFill(anchor, tris, s.Colour)
	}

	n := len(pts)
	nseg := n - 1
	if closed {
		nseg = n
	}
	c := s.Colour.RGBA()
	m := Mesh{
		Offsets:   make([]float32, 0, 4*nseg),
		Anchor:    anchor.Float32(),
		Colours:   make([]uint32, 0, 2*nseg),
		Primitive: LineList,
	}
	for i := range nseg {
		a, b := pts[i], pts[(i+1)%n]
		m.Offsets = append(m.Offsets, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]))
		m.Colours = append(m.Colours, c, c)
	}
	return m
}
