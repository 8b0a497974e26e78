// view/view.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package view tracks what part of the earth is visible on the canvas and
// computes the uniforms the rasterizer needs each time it changes.
package view

import (
	"log/slog"

	"github.com/mmp/geoverlay/log"
	"github.com/mmp/geoverlay/math"
	"github.com/mmp/geoverlay/projection"
	"github.com/mmp/geoverlay/unit"
)

// View is immutable; the methods that change it return a new View.
type View struct {
	Centre      unit.LatLong
	Range       unit.Length // spans the smaller canvas dimension
	Rotation    unit.Angle  // clockwise on the screen
	CanvasSize  math.Vector2
	EarthRadius unit.Length
	MiterLimit  float64
}

func New(centre unit.LatLong, visibleRange unit.Length, canvasSize math.Vector2) View {
	return View{
		Centre:      centre,
		Range:       visibleRange,
		CanvasSize:  canvasSize,
		EarthRadius: unit.Metres(6371009),
		MiterLimit:  4,
	}
}

// WithRange returns the view with the given visible range; non-positive
// ranges are ignored.
func (v View) WithRange(r unit.Length) View {
	if r > 0 {
		v.Range = r
	}
	return v
}

// Zoom divides the visible range by factor, so factors greater than one
// zoom in. Non-positive factors are ignored.
func (v View) Zoom(factor float64) View {
	if factor <= 0 {
		return v
	}
	return v.WithRange(v.Range.Scale(1 / factor))
}

func (v View) Rotate(a unit.Angle) View {
	v.Rotation = v.Rotation.Add(a).Normalized()
	return v
}

func (v View) Resize(size math.Vector2) View {
	v.CanvasSize = size
	return v
}

func (v View) transforms() (projection.StereographicProjection, projection.CanvasAffineTransform, error) {
	sp := projection.ComputeStereographicProjection(v.Centre, v.EarthRadius)
	at, err := projection.ComputeCanvasAffineTransform(v.Centre, v.Range, v.Rotation, v.CanvasSize, sp)
	return sp, at, err
}

// Pan moves the map by delta pixels on the canvas, so that whatever was at
// the centre ends up delta from it. If the view is invalid it is
// returned unchanged.
func (v View) Pan(delta math.Vector2, lg *log.Logger) View {
	sp, at, err := v.transforms()
	if err != nil {
		lg.Warn("unable to pan", slog.Any("error", err))
		return v
	}
	s := at.CanvasToStereographic(at.Centre().Sub(delta))
	v.Centre = projection.GeocentricToLatLong(sp.StereographicToGeocentric(s))
	return v
}

// CanvasToLatLong returns the position under the canvas point p.
func (v View) CanvasToLatLong(p math.Vector2) (unit.LatLong, error) {
	sp, at, err := v.transforms()
	if err != nil {
		return unit.LatLong{}, err
	}
	return projection.GeocentricToLatLong(sp.StereographicToGeocentric(at.CanvasToStereographic(p))), nil
}

// LatLongToCanvas returns the canvas position of p.
func (v View) LatLongToCanvas(p unit.LatLong) (math.Vector2, error) {
	sp, at, err := v.transforms()
	if err != nil {
		return math.Vector2{}, err
	}
	return at.StereographicToCanvas(sp.GeocentricToStereographic(projection.LatLongToGeocentric(p))), nil
}

// Uniforms holds the values the rasterizer's shaders need to position
// meshes. Matrices are column-major.
type Uniforms struct {
	EarthRadius           float32 // metres
	MiterLimit            float32
	Centre                [3]float32 // geocentric
	Rotation              [9]float32 // geocentric to east/north/up
	StereographicToCanvas [9]float32
	CanvasToClipspace     [9]float32
}

func (v View) Uniforms(lg *log.Logger) (Uniforms, error) {
	sp, at, err := v.transforms()
	if err != nil {
		return Uniforms{}, err
	}

	lg.Debug("view uniforms", slog.String("centre", v.Centre.String()), slog.String("range", v.Range.String()),
		slog.String("rotation", v.Rotation.String()), slog.Float64("pixels_per_metre", at.Scale()))

	return Uniforms{
		EarthRadius:           float32(sp.EarthRadius()),
		MiterLimit:            float32(v.MiterLimit),
		Centre:                sp.Centre().Float32(),
		Rotation:              sp.Rotation().Transpose().Float32(),
		StereographicToCanvas: at.Matrix().Transpose().Float32(),
		CanvasToClipspace:     projection.CanvasToClipspace(v.CanvasSize[0], v.CanvasSize[1]).Transpose().Float32(),
	}, nil
}
