// view/view_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package view

import (
	"errors"
	"testing"

	"github.com/mmp/geoverlay/math"
	"github.com/mmp/geoverlay/projection"
	"github.com/mmp/geoverlay/unit"
)

var jfk = unit.LatLongDegrees(40.6398, -73.7789)

func TestRangeAndZoom(t *testing.T) {
	v := New(jfk, unit.NauticalMiles(50), math.Vector2{800, 600})

	for _, r := range []unit.Length{0, -unit.NauticalMiles(1)} {
		if w := v.WithRange(r); w.Range != v.Range {
			t.Errorf("WithRange(%s) changed the range to %s", r, w.Range)
		}
	}
	if w := v.WithRange(unit.NauticalMiles(10)); w.Range != unit.NauticalMiles(10) {
		t.Errorf("WithRange: got %s", w.Range)
	}
	if w := v.Zoom(2); w.Range != unit.NauticalMiles(25) {
		t.Errorf("Zoom(2): got %s, expected 25nm", w.Range)
	}
	if w := v.Zoom(0); w.Range != v.Range {
		t.Errorf("Zoom(0) changed the range")
	}
	if w := v.Rotate(300 * unit.Degree).Rotate(90 * unit.Degree); w.Rotation != 30*unit.Degree {
		t.Errorf("rotation: got %s, expected 30°", w.Rotation)
	}
}

func TestCanvasMapping(t *testing.T) {
	v := New(jfk, unit.NauticalMiles(50), math.Vector2{800, 600}).Rotate(17 * unit.Degree)

	c, err := v.LatLongToCanvas(jfk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Equal(math.Vector2{400, 300}, 1e-6) {
		t.Errorf("centre is at %v, expected (400, 300)", c)
	}

	ll, err := v.CanvasToLatLong(math.Vector2{123, 456})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, _ := v.LatLongToCanvas(ll)
	if !p.Equal(math.Vector2{123, 456}, 0.5) {
		t.Errorf("round trip through %s gave %v", ll, p)
	}
}

func TestPan(t *testing.T) {
	for _, rot := range []unit.Angle{0, 45 * unit.Degree, 200 * unit.Degree} {
		v := New(jfk, unit.NauticalMiles(100), math.Vector2{800, 600}).Rotate(rot)
		delta := math.Vector2{100, 50}
		panned := v.Pan(delta, nil)

		p, err := panned.LatLongToCanvas(v.Centre)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.Equal(math.Vector2{500, 350}, 1) {
			t.Errorf("rotation %s: old centre is at %v, expected (500, 350)", rot, p)
		}
	}

	bad := New(jfk, unit.NauticalMiles(100), math.Vector2{})
	if p := bad.Pan(math.Vector2{10, 10}, nil); p != bad {
		t.Errorf("panning an invalid view should leave it unchanged")
	}
}

func TestUniforms(t *testing.T) {
	v := New(jfk, unit.NauticalMiles(50), math.Vector2{800, 600})
	u, err := v.Uniforms(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if u.EarthRadius != 6371009 || u.MiterLimit != 4 {
		t.Errorf("got earth radius %f and miter limit %f", u.EarthRadius, u.MiterLimit)
	}
	if u.Centre != projection.LatLongToGeocentric(jfk).Float32() {
		t.Errorf("got centre %v", u.Centre)
	}
	expected := [9]float32{2. / 800, 0, 0, 0, -2. / 600, 0, -1, 1, 1}
	if u.CanvasToClipspace != expected {
		t.Errorf("canvas to clip space: got %v, expected %v", u.CanvasToClipspace, expected)
	}
	// The translation to the canvas centre is in the last column.
	if u.StereographicToCanvas[6] != 400 || u.StereographicToCanvas[7] != 300 {
		t.Errorf("stereographic to canvas: got translation (%f, %f)", u.StereographicToCanvas[6],
			u.StereographicToCanvas[7])
	}
	// East is the first row of the rotation and so the first element of
	// each column.
	sp := projection.ComputeStereographicProjection(jfk, v.EarthRadius)
	east := sp.Rotation().Row(0).Float32()
	if u.Rotation[0] != east[0] || u.Rotation[3] != east[1] || u.Rotation[6] != east[2] {
		t.Errorf("rotation: got %v, expected east %v", u.Rotation, east)
	}

	bad := v.Resize(math.Vector2{0, 600})
	if _, err := bad.Uniforms(nil); !errors.Is(err, projection.ErrInvalidCanvas) {
		t.Errorf("expected ErrInvalidCanvas, got %v", err)
	}
	if _, err := v.WithRange(0).Uniforms(nil); err != nil {
		t.Errorf("ignored range should leave a valid view: %v", err)
	}
}
