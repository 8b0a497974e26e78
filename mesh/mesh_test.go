// mesh/mesh_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mesh

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/mmp/geoverlay/math"
	"github.com/mmp/geoverlay/projection"
	"github.com/mmp/geoverlay/spherical"
	"github.com/mmp/geoverlay/triangulate"
	"github.com/mmp/geoverlay/unit"
)

var (
	red   = unit.RGB(255, 0, 0)
	green = unit.RGB(0, 255, 0)
)

func fill(c unit.Colour) Paint           { return Paint{Fill: &c} }
func stroke(w int, c unit.Colour) Paint  { return Paint{Stroke: &Stroke{Width: w, Colour: c}} }
func both(w int, s, f unit.Colour) Paint { return Paint{Stroke: &Stroke{Width: w, Colour: s}, Fill: &f} }

func generate(t *testing.T, s Shape, segments int) []Mesh {
	t.Helper()
	opts := DefaultOptions()
	opts.CircleSegments = segments
	meshes, err := Generate(s, opts, nil)
	if err != nil {
		t.Fatalf("%T: unexpected error: %v", s, err)
	}
	for i, m := range meshes {
		if err := m.Validate(); err != nil {
			t.Errorf("%T: mesh %d: %v", s, i, err)
		}
	}
	return meshes
}

func geocentricVertex(m Mesh, i int) math.Vector3 {
	return math.Vector3{float64(m.Geocentric[3*i]), float64(m.Geocentric[3*i+1]), float64(m.Geocentric[3*i+2])}
}

func TestGeoCircleFill(t *testing.T) {
	centre := unit.LatLongDegrees(51.5, -0.1)
	meshes := generate(t, GeoCircle{Centre: centre, Radius: unit.Kilometres(10), Paint: fill(red)}, 36)
	if len(meshes) != 1 {
		t.Fatalf("got %d meshes, expected 1", len(meshes))
	}
	m := meshes[0]
	if m.Primitive != TriangleList || m.VertexCount() != 3*36 {
		t.Errorf("got %s with %d vertices, expected TriangleList with %d", m.Primitive, m.VertexCount(), 3*36)
	}
	if m.Colour(0) != red {
		t.Errorf("got colour %s, expected %s", m.Colour(0), red)
	}

	// Every triangle fans out from the centre and the rim is 10km away.
	c := projection.LatLongToGeocentric(centre)
	er := DefaultOptions().EarthRadius
	for i := 0; i < m.VertexCount(); i += 3 {
		if d := spherical.SurfaceDistance(c, geocentricVertex(m, i), er); d.Metres() > 2 {
			t.Errorf("triangle %d: first vertex is %s from the centre", i/3, d)
		}
		for j := 1; j < 3; j++ {
			if d := spherical.SurfaceDistance(c, geocentricVertex(m, i+j), er); gomath.Abs(d.Kilometres()-10) > 0.01 {
				t.Errorf("triangle %d: rim vertex is %s from the centre", i/3, d)
			}
		}
	}
}

func TestGeoCircleStroke(t *testing.T) {
	c := GeoCircle{Centre: unit.LatLongDegrees(0, 0), Radius: unit.NauticalMiles(5), Paint: both(1, green, red)}
	meshes := generate(t, c, 20)
	if len(meshes) != 2 {
		t.Fatalf("got %d meshes, expected 2", len(meshes))
	}
	if meshes[0].Primitive != TriangleList || meshes[0].Colour(0) != red {
		t.Errorf("expected the fill first")
	}
	if s := meshes[1]; s.Primitive != LineList || s.VertexCount() != 40 || s.Colour(0) != green {
		t.Errorf("got stroke %s with %d vertices, expected a closed LineList of 40", s.Primitive, s.VertexCount())
	}
}

func TestGeoPolygonFill(t *testing.T) {
	square := []unit.LatLong{
		unit.LatLongDegrees(0, 0), unit.LatLongDegrees(0, 10),
		unit.LatLongDegrees(10, 10), unit.LatLongDegrees(10, 0),
	}
	for _, poly := range [][]unit.LatLong{square, append(square, square[0])} {
		meshes := generate(t, GeoPolygon{Vertices: poly, Paint: fill(red)}, 36)
		if len(meshes) != 1 {
			t.Fatalf("got %d meshes, expected 1", len(meshes))
		}
		if n := meshes[0].VertexCount(); n != 6 {
			t.Errorf("got %d vertices, expected 2 triangles", n)
		}
	}
}

func TestGeoPolygonWideStroke(t *testing.T) {
	square := []unit.LatLong{
		unit.LatLongDegrees(0, 0), unit.LatLongDegrees(0, 1),
		unit.LatLongDegrees(1, 1), unit.LatLongDegrees(1, 0),
	}
	meshes := generate(t, GeoPolygon{Vertices: square, Paint: stroke(3, green)}, 36)
	if len(meshes) != 1 {
		t.Fatalf("got %d meshes, expected 1", len(meshes))
	}
	m := meshes[0]
	if m.Primitive != TriangleList || m.VertexCount() != 6*4 || m.Extrusion == nil {
		t.Fatalf("got %s with %d vertices, expected an extruded TriangleList of 24", m.Primitive, m.VertexCount())
	}
	for i, hw := range m.Extrusion.HalfWidth {
		if gomath.Abs(float64(hw)) != 1.5 {
			t.Errorf("vertex %d: half width %f", i, hw)
		}
	}
	// The ring is closed so every vertex has both neighbours.
	for i := range m.VertexCount() {
		for _, nb := range [][]float32{m.Extrusion.Previous, m.Extrusion.Next} {
			if nb[3*i] == 0 && nb[3*i+1] == 0 && nb[3*i+2] == 0 {
				t.Errorf("vertex %d has a missing neighbour", i)
			}
		}
	}
}

func TestGeoPolylineStroke(t *testing.T) {
	line := []unit.LatLong{unit.LatLongDegrees(0, 0), unit.LatLongDegrees(1, 0), unit.LatLongDegrees(1, 1)}

	meshes := generate(t, GeoPolyline{Points: line, Paint: stroke(1, green)}, 36)
	if len(meshes) != 1 || meshes[0].Primitive != LineList || meshes[0].VertexCount() != 4 {
		t.Errorf("expected an open LineList of 4 vertices")
	}

	meshes = generate(t, GeoPolyline{Points: line, Paint: both(2, green, red)}, 36)
	if len(meshes) != 1 {
		t.Fatalf("got %d meshes, expected the fill to be ignored", len(meshes))
	}
	m := meshes[0]
	if m.VertexCount() != 12 {
		t.Fatalf("got %d vertices, expected 12", m.VertexCount())
	}
	// The first vertex starts the line and the last one ends it.
	zero := func(s []float32, i int) bool { return s[3*i] == 0 && s[3*i+1] == 0 && s[3*i+2] == 0 }
	if !zero(m.Extrusion.Previous, 0) || zero(m.Extrusion.Next, 0) {
		t.Errorf("first vertex should have only a next neighbour")
	}
	if last := m.VertexCount() - 1; zero(m.Extrusion.Previous, last) || !zero(m.Extrusion.Next, last) {
		t.Errorf("last vertex should have only a previous neighbour")
	}
	if m.Extrusion.HalfWidth[0] != 1 || m.Extrusion.HalfWidth[1] != -1 {
		t.Errorf("got half widths %v", m.Extrusion.HalfWidth[:2])
	}
}

func TestRelativeShapes(t *testing.T) {
	anchor := unit.LatLongDegrees(40.6, -73.8)
	a := projection.LatLongToGeocentric(anchor).Float32()

	square := []math.Vector2{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	meshes := generate(t, GeoRelativePolygon{Anchor: anchor, Offsets: square, Paint: both(1, green, red)}, 36)
	if len(meshes) != 2 {
		t.Fatalf("got %d meshes, expected 2", len(meshes))
	}
	for _, m := range meshes {
		if m.Anchor != a || len(m.Geocentric) != 0 {
			t.Errorf("relative mesh should be anchored and carry only offsets")
		}
	}
	if meshes[0].VertexCount() != 6 {
		t.Errorf("square fill: got %d vertices, expected 6", meshes[0].VertexCount())
	}
	if meshes[1].Primitive != LineList || meshes[1].VertexCount() != 8 {
		t.Errorf("square stroke: got %s with %d vertices", meshes[1].Primitive, meshes[1].VertexCount())
	}

	meshes = generate(t, GeoRelativeCircle{Anchor: anchor, Radius: 8, Paint: fill(red)}, 12)
	if len(meshes) != 1 || meshes[0].VertexCount() != 36 {
		t.Errorf("relative circle: expected a fan of 12 triangles")
	}
	for i := 0; i < meshes[0].VertexCount(); i += 3 {
		if meshes[0].Offsets[2*i] != 0 || meshes[0].Offsets[2*i+1] != 0 {
			t.Errorf("triangle %d does not start at the anchor", i/3)
		}
	}

	line := []math.Vector2{{0, 0}, {10, 0}}
	meshes = generate(t, GeoRelativePolyline{Anchor: anchor, Offsets: line, Paint: stroke(4, green)}, 36)
	if len(meshes) != 1 || meshes[0].Primitive != TriangleList || meshes[0].VertexCount() != 6 {
		t.Fatalf("wide relative line: expected 2 triangles")
	}
	for i := range meshes[0].VertexCount() {
		if y := meshes[0].Offsets[2*i+1]; y != 2 && y != -2 {
			t.Errorf("vertex %d: y offset %f, expected ±2", i, y)
		}
	}
}

func TestNothingToDraw(t *testing.T) {
	meshes := generate(t, GeoCircle{Centre: unit.LatLongDegrees(10, 10), Radius: unit.Metres(100)}, 36)
	if len(meshes) != 0 {
		t.Errorf("got %d meshes for an unpainted shape", len(meshes))
	}
}

type notAShape struct{ Shape }

func TestGenerateErrors(t *testing.T) {
	ll := unit.LatLongDegrees(1, 2)
	for _, tc := range []struct {
		name  string
		shape Shape
		err   error
	}{
		{"ZeroRadius", GeoCircle{Centre: ll, Paint: fill(red)}, ErrInvalidShape},
		{"NegativeRelativeRadius", GeoRelativeCircle{Anchor: ll, Radius: -1, Paint: fill(red)}, ErrInvalidShape},
		{"TwoVertexPolygon", GeoPolygon{Vertices: []unit.LatLong{ll, unit.LatLongDegrees(2, 2)}, Paint: fill(red)},
			triangulate.ErrTooFewVertices},
		{"TwoOffsetPolygon", GeoRelativePolygon{Offsets: []math.Vector2{{0, 0}, {1, 1}}, Paint: fill(red)},
			ErrInvalidShape},
		{"OnePointPolyline", GeoPolyline{Points: []unit.LatLong{ll}, Paint: stroke(1, red)}, ErrInvalidShape},
		{"ZeroWidthStroke", GeoPolyline{Points: []unit.LatLong{ll, unit.LatLongDegrees(2, 2)}, Paint: stroke(0, red)},
			ErrInvalidShape},
		{"Unknown", notAShape{}, ErrUnknownShape},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Generate(tc.shape, DefaultOptions(), nil); !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}

	opts := DefaultOptions()
	opts.CircleSegments = 2
	if _, err := Generate(GeoCircle{Centre: ll, Radius: 1}, opts, nil); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name string
		mesh Mesh
	}{
		{"Empty", Mesh{}},
		{"Both", Mesh{Geocentric: make([]float32, 6), Offsets: make([]float32, 4), Colours: make([]uint32, 2)}},
		{"Ragged", Mesh{Geocentric: make([]float32, 5), Colours: make([]uint32, 1)}},
		{"Colours", Mesh{Geocentric: make([]float32, 6), Colours: make([]uint32, 1)}},
		{"OddLines", Mesh{Offsets: make([]float32, 6), Colours: make([]uint32, 3)}},
		{"PartialTriangle", Mesh{Offsets: make([]float32, 8), Colours: make([]uint32, 4), Primitive: TriangleList}},
		{"OffsetExtrusion", Mesh{Offsets: make([]float32, 4), Colours: make([]uint32, 2), Extrusion: &Extrusion{}}},
		{"ShortExtrusion", Mesh{Geocentric: make([]float32, 6), Colours: make([]uint32, 2),
			Extrusion: &Extrusion{Previous: make([]float32, 6), Next: make([]float32, 3), HalfWidth: make([]float32, 2)}}},
		{"Primitive", Mesh{Offsets: make([]float32, 4), Colours: make([]uint32, 2), Primitive: Primitive(7)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.mesh.Validate(); !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("expected ErrInvalidMesh, got %v", err)
			}
		})
	}
}
