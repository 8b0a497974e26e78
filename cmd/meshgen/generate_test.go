// cmd/meshgen/generate_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/mmp/geoverlay/math"
	"github.com/mmp/geoverlay/mesh"
	"github.com/mmp/geoverlay/unit"
	"github.com/mmp/geoverlay/util"
)

func testShapes(n int) []namedShape {
	fill := unit.RGB(10, 20, 30)
	var shapes []namedShape
	for i := range n {
		var s mesh.Shape
		anchor := unit.LatLongDegrees(float64(i%80), float64(i))
		if i%2 == 0 {
			s = mesh.GeoCircle{Centre: anchor, Radius: unit.Kilometres(float64(1 + i)), Paint: mesh.Paint{Fill: &fill}}
		} else {
			s = mesh.GeoRelativePolygon{Anchor: anchor, Offsets: []math.Vector2{{0, 0}, {0, 5}, {5, 5}, {5, 0}},
				Paint: mesh.Paint{Fill: &fill}}
		}
		shapes = append(shapes, namedShape{Name: fmt.Sprintf("s%d", i), Shape: s})
	}
	return shapes
}

func TestGenerateAll(t *testing.T) {
	shapes := testShapes(50)
	opts := mesh.DefaultOptions()
	opts.CircleSegments = 16

	for _, workers := range []int{0, 1, 8} {
		meshes, err := generateAll(t.Context(), shapes, opts, workers, nil)
		if err != nil {
			t.Fatalf("%d workers: unexpected error: %v", workers, err)
		}
		if len(meshes) != len(shapes) {
			t.Fatalf("got %d results for %d shapes", len(meshes), len(shapes))
		}
		for i, m := range meshes {
			if m.Name != shapes[i].Name || len(m.Meshes) != 1 {
				t.Errorf("%d workers: result %d is %q with %d meshes", workers, i, m.Name, len(m.Meshes))
			}
		}
		if nm, nv := vertexCount(meshes); nm != 50 || nv != 25*3*16+25*6 {
			t.Errorf("got %d meshes with %d vertices", nm, nv)
		}
	}
}

func TestGenerateAllError(t *testing.T) {
	shapes := testShapes(10)
	shapes[7].Shape = mesh.GeoPolygon{Vertices: []unit.LatLong{{}, {}}}

	_, err := generateAll(t.Context(), shapes, mesh.DefaultOptions(), 4, nil)
	if !errors.Is(err, mesh.ErrInvalidShape) {
		t.Fatalf("expected ErrInvalidShape, got %v", err)
	}
	if got := err.Error(); got[:3] != "s7:" {
		t.Errorf("error should name the shape: %v", err)
	}
}

func TestMeshFileRoundTrip(t *testing.T) {
	meshes, err := generateAll(t.Context(), testShapes(6), mesh.DefaultOptions(), 3, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := util.WriteCompressed(&buf, meshes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var read []namedMeshes
	if err := util.ReadCompressed(&buf, &read); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(read, meshes) {
		t.Errorf("meshes changed in the round trip")
	}
}

func TestParseView(t *testing.T) {
	v, err := parseView("40.64, -73.78, 50, 800, 600")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Centre != unit.LatLongDegrees(40.64, -73.78) || v.Range != unit.NauticalMiles(50) ||
		v.CanvasSize != (math.Vector2{800, 600}) {
		t.Errorf("got %+v", v)
	}
	if _, err := v.Uniforms(nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	for _, s := range []string{"", "1,2,3,4", "1,2,x,4,5", "1,2,3,4,5,6"} {
		if _, err := parseView(s); err == nil {
			t.Errorf("%q: expected an error", s)
		}
	}
}
