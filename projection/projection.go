// projection/projection.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package projection chains the coordinate systems used to draw overlays:
// geodetic latitude/longitude, geocentric n-vectors on the unit sphere,
// a stereographic plane tangent at the view centre (in metres), canvas
// pixels and finally clip space. Each stage is a pure function of an
// immutable transform value and can be inverted.
package projection

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/mmp/geoverlay/math"
	"github.com/mmp/geoverlay/spherical"
	"github.com/mmp/geoverlay/unit"
)

var ErrInvalidCanvas = errors.New("invalid canvas transform parameters")

// LatLongToGeocentric returns the n-vector for the given position.
func LatLongToGeocentric(p unit.LatLong) math.Vector3 {
	slat, clat := gomath.Sincos(p.Latitude.Radians())
	slon, clon := gomath.Sincos(p.Longitude.Radians())
	return math.Vector3{clat * clon, clat * slon, slat}
}

// GeocentricToLatLong returns the position of v, which need not be
// normalized. The result is rounded to the resolution of unit.Angle.
func GeocentricToLatLong(v math.Vector3) unit.LatLong {
	return unit.LatLong{
		Latitude:  unit.Atan2(v[2], gomath.Hypot(v[0], v[1])),
		Longitude: unit.Atan2(v[1], v[0]),
	}
}

///////////////////////////////////////////////////////////////////////////
// StereographicProjection

// StereographicProjection maps n-vectors to a plane tangent to the sphere
// at its centre, with x to the east and y to the north, in metres.
type StereographicProjection struct {
	centre      math.Vector3
	earthRadius float64
	rotation    math.Matrix3 // geocentric to the local east/north/up frame
	inverse     math.Matrix3
}

func ComputeStereographicProjection(centre unit.LatLong, earthRadius unit.Length) StereographicProjection {
	slat, clat := gomath.Sincos(centre.Latitude.Radians())
	slon, clon := gomath.Sincos(centre.Longitude.Radians())

	// Rows are the local east, north and up vectors.
	rot := math.MakeMatrix3(
		-slon, clon, 0,
		-slat*clon, -slat*slon, clat,
		clat*clon, clat*slon, slat)

	return StereographicProjection{
		centre:      rot.Row(2),
		earthRadius: earthRadius.Metres(),
		rotation:    rot,
		inverse:     rot.Transpose(),
	}
}

func (sp StereographicProjection) Centre() math.Vector3   { return sp.centre }
func (sp StereographicProjection) EarthRadius() float64   { return sp.earthRadius }
func (sp StereographicProjection) Rotation() math.Matrix3 { return sp.rotation }
func (sp StereographicProjection) Inverse() math.Matrix3  { return sp.inverse }

// GeocentricToStereographic projects v from the point antipodal to the
// projection's centre. The antipode itself maps to infinity.
func (sp StereographicProjection) GeocentricToStereographic(v math.Vector3) math.Vector2 {
	r := sp.earthRadius
	local := sp.rotation.Transform(v.Sub(sp.centre).Scale(r))
	k := 2 * r / (2*r + local[2])
	return math.Vector2{k * local[0], k * local[1]}
}

// StereographicToGeocentric is the inverse of GeocentricToStereographic.
func (sp StereographicProjection) StereographicToGeocentric(p math.Vector2) math.Vector3 {
	r := sp.earthRadius
	rho2 := p.Dot(p)
	fourR2 := 4 * r * r
	cosc := (fourR2 - rho2) / (fourR2 + rho2)
	k := 1 + rho2/fourR2

	local := math.Vector3{p[0] / k, p[1] / k, r * (cosc - 1)}
	return sp.centre.Add(sp.inverse.Transform(local).Scale(1 / r))
}

///////////////////////////////////////////////////////////////////////////
// CanvasAffineTransform

// CanvasAffineTransform maps points in the stereographic plane to canvas
// pixels, with the origin at the upper left and y increasing downward.
type CanvasAffineTransform struct {
	m      math.Matrix3
	centre math.Vector2 // pixel-space centre of the view
}

// ComputeCanvasAffineTransform returns the transform for a view of the
// given canvas size centred at centre, in which a distance of
// visibleRange spans the smaller of the canvas's width and height. A
// positive rotation turns the map clockwise on the screen.
func ComputeCanvasAffineTransform(centre unit.LatLong, visibleRange unit.Length, rotation unit.Angle,
	canvasSize math.Vector2, sp StereographicProjection) (CanvasAffineTransform, error) {
	if visibleRange <= 0 {
		return CanvasAffineTransform{}, fmt.Errorf("visible range %s: %w", visibleRange, ErrInvalidCanvas)
	}
	if canvasSize[0] <= 0 || canvasSize[1] <= 0 {
		return CanvasAffineTransform{}, fmt.Errorf("canvas size %v: %w", canvasSize, ErrInvalidCanvas)
	}

	c := LatLongToGeocentric(centre)
	cs := sp.GeocentricToStereographic(c)
	east := spherical.Destination(c, 90*unit.Degree, visibleRange.Scale(0.5), unit.Metres(sp.earthRadius))
	span := sp.GeocentricToStereographic(east).Distance(cs)
	if span == 0 || gomath.IsInf(span, 0) || gomath.IsNaN(span) {
		return CanvasAffineTransform{}, fmt.Errorf("range %s spans %f: %w", visibleRange, span, ErrInvalidCanvas)
	}
	scale := min(canvasSize[0], canvasSize[1]) / 2 / span

	pc := canvasSize.Scale(0.5)
	m := math.Identity3x3().
		Translate(pc[0], pc[1]).
		Rotate(rotation.Radians()).
		Scale(scale, -scale).
		Translate(-cs[0], -cs[1])
	return CanvasAffineTransform{m: m, centre: pc}, nil
}

func (at CanvasAffineTransform) Matrix() math.Matrix3 { return at.m }
func (at CanvasAffineTransform) Centre() math.Vector2 { return at.centre }

// Scale returns the number of pixels per metre in the stereographic plane.
func (at CanvasAffineTransform) Scale() float64 {
	return gomath.Sqrt(gomath.Abs(at.determinant()))
}

func (at CanvasAffineTransform) determinant() float64 {
	return at.m[0][0]*at.m[1][1] - at.m[0][1]*at.m[1][0]
}

func (at CanvasAffineTransform) StereographicToCanvas(p math.Vector2) math.Vector2 {
	return at.m.TransformPoint(p)
}

// CanvasOffsetToStereographic converts a displacement in pixels to the
// corresponding displacement in the stereographic plane; the translation
// is ignored.
func (at CanvasAffineTransform) CanvasOffsetToStereographic(d math.Vector2) math.Vector2 {
	m := at.m
	invDet := 1 / at.determinant()
	return math.Vector2{
		invDet * (m[1][1]*d[0] - m[0][1]*d[1]),
		invDet * (-m[1][0]*d[0] + m[0][0]*d[1]),
	}
}

func (at CanvasAffineTransform) CanvasToStereographic(p math.Vector2) math.Vector2 {
	return at.CanvasOffsetToStereographic(p.Sub(math.Vector2{at.m[0][2], at.m[1][2]}))
}

// CanvasToClipspace returns the matrix taking canvas pixels to clip
// space, with y flipped so that up is positive.
func CanvasToClipspace(width, height float64) math.Matrix3 {
	return math.MakeMatrix3(
		2/width, 0, -1,
		0, -2/height, 1,
		0, 0, 1)
}
