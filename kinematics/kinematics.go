// kinematics/kinematics.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package kinematics extrapolates moving tracks along great circles.
package kinematics

import (
	gomath "math"

	"github.com/mmp/geoverlay/math"
	"github.com/mmp/geoverlay/projection"
	"github.com/mmp/geoverlay/spherical"
	"github.com/mmp/geoverlay/unit"
)

// Track is something moving over the earth's surface at constant speed
// along a great circle.
type Track struct {
	Position unit.LatLong
	Bearing  unit.Angle // true, clockwise from north
	Speed    unit.Speed
}

// CourseVector returns the unit vector tangent to the sphere at p that
// points along bearing.
func CourseVector(p unit.LatLong, bearing unit.Angle) math.Vector3 {
	m := math.RotationZ(-p.Longitude.Radians()).
		Mul(math.RotationY(p.Latitude.Radians())).
		Mul(math.RotationX(bearing.Radians()))
	return m.Column(2)
}

// Position returns where the track will be after d.
func Position(t Track, d unit.Duration, earthRadius unit.Length) unit.LatLong {
	p, _ := advance(t, d, earthRadius)
	return projection.GeocentricToLatLong(p)
}

// Advance returns the track after d; its bearing follows the great
// circle and so changes unless it is moving along a meridian or the
// equator.
func Advance(t Track, d unit.Duration, earthRadius unit.Length) Track {
	p, moved := advance(t, d, earthRadius)
	if !moved {
		return t
	}
	start := projection.LatLongToGeocentric(t.Position)
	return Track{
		Position: projection.GeocentricToLatLong(p),
		Bearing:  spherical.InitialBearing(p, start).Add(180 * unit.Degree).Normalized(),
		Speed:    t.Speed,
	}
}

func advance(t Track, d unit.Duration, earthRadius unit.Length) (math.Vector3, bool) {
	p := projection.LatLongToGeocentric(t.Position)
	dist := t.Speed.Distance(d)
	if dist == 0 {
		return p, false
	}

	theta := dist.Metres() / earthRadius.Metres()
	s, c := gomath.Sincos(theta)
	course := CourseVector(t.Position, t.Bearing)
	return p.Scale(c).Add(course.Scale(s)).Unit(), true
}
