// spherical/spherical.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package spherical implements computational geometry on the unit
// sphere. Positions are geocentric n-vectors: unit-length math.Vector3s
// normal to the sphere's surface, with z along the polar axis and x
// through the prime meridian.
package spherical

import (
	gomath "math"

	"github.com/mmp/geoverlay/math"
	"github.com/mmp/geoverlay/unit"
)

var pole = math.Vector3{0, 0, 1}

// tangentFrame returns the local east and north unit vectors at p. At the
// poles, where east is undefined, the frame is built from the y axis.
func tangentFrame(p math.Vector3) (east, north math.Vector3) {
	east = pole.Cross(p)
	if east.Norm() < 1e-12 {
		east = math.Vector3{0, 1, 0}
	} else {
		east = east.Unit()
	}
	north = p.Cross(east)
	return
}

// Destination returns the point reached by travelling distance along a
// great circle from p with the given initial bearing (clockwise from
// north).
func Destination(p math.Vector3, bearing unit.Angle, distance, earthRadius unit.Length) math.Vector3 {
	if distance == 0 {
		return p
	}

	east, north := tangentFrame(p)
	dir := north.Scale(bearing.Cos()).Add(east.Scale(bearing.Sin()))

	delta := distance.Metres() / earthRadius.Metres()
	s, c := gomath.Sincos(delta)
	return p.Scale(c).Add(dir.Scale(s)).Unit()
}

// InitialBearing returns the bearing at p1 of the great circle from p1 to
// p2, normalized to [0,360).
func InitialBearing(p1, p2 math.Vector3) unit.Angle {
	east, north := tangentFrame(p1)
	d := p2.Sub(p1)
	return unit.Atan2(d.Dot(east), d.Dot(north)).Normalized()
}

// Right reports whether p2 is to the right of (or on) the great circle
// from p0 through p1, as seen from outside the sphere.
func Right(p0, p1, p2 math.Vector3) bool {
	return p0.Dot(p1.Cross(p2)) <= 0
}

// SignedAngleBetween returns the angle in radians between p1 and p2. If
// normal is non-zero, the angle is negative when p1×p2 points away from
// it; otherwise the unsigned angle is returned.
func SignedAngleBetween(p1, p2, normal math.Vector3) float64 {
	c := p1.Cross(p2)
	sin := c.Norm()
	if !normal.IsZero() && c.Dot(normal) < 0 {
		sin = -sin
	}
	return gomath.Atan2(sin, p1.Dot(p2))
}

// AngleBetween returns the unsigned angle in radians between p1 and p2.
func AngleBetween(p1, p2 math.Vector3) float64 {
	return SignedAngleBetween(p1, p2, math.Vector3{})
}

// SurfaceDistance returns the great-circle distance between p1 and p2.
func SurfaceDistance(p1, p2 math.Vector3, earthRadius unit.Length) unit.Length {
	return earthRadius.Scale(AngleBetween(p1, p2))
}

// stripClosing returns poly without a trailing copy of its first vertex.
func stripClosing(poly []math.Vector3) []math.Vector3 {
	if n := len(poly); n > 1 && poly[0] == poly[n-1] {
		return poly[:n-1]
	}
	return poly
}

// InsideSurface reports whether p is inside the spherical polygon poly by
// summing the angles subtended at p by each of its edges: the sum is
// +/-2pi for points inside and 0 for points outside. Polygons with fewer
// than three distinct vertices contain nothing. The polygon may be
// explicitly closed.
func InsideSurface(p math.Vector3, poly []math.Vector3) bool {
	poly = stripClosing(poly)
	if len(poly) < 3 {
		return false
	}

	var sum float64
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		// Project the edge endpoints onto the plane tangent at p and
		// accumulate the signed angle between them about p.
		ta, tb := p.Cross(a), p.Cross(b)
		sum += SignedAngleBetween(ta, tb, p)
	}
	return gomath.Abs(sum) > gomath.Pi
}

// DiscretiseCircle returns n points evenly spaced around the small circle
// of the given radius about centre. The ring is generated about the north
// pole and then rotated by latitude and then longitude into place; it
// winds counter-clockwise as seen from outside the sphere.
func DiscretiseCircle(centre math.Vector3, radius, earthRadius unit.Length, n int) []math.Vector3 {
	if n <= 0 {
		return nil
	}

	delta := radius.Metres() / earthRadius.Metres()
	// The ring lies in the plane sqrt(R²-r²) above the centre of the
	// sphere, where r = R sin(delta) is its chordal radius.
	sd, cd := gomath.Sincos(delta)

	lat := gomath.Atan2(centre[2], gomath.Hypot(centre[0], centre[1]))
	lon := gomath.Atan2(centre[1], centre[0])
	rot := math.RotationZ(-lon).Mul(math.RotationY(lat - gomath.Pi/2))

	pts := make([]math.Vector3, n)
	for i := range n {
		theta := 2 * gomath.Pi * float64(i) / float64(n)
		s, c := gomath.Sincos(theta)
		pts[i] = rot.Transform(math.Vector3{sd * c, sd * s, cd})
	}
	return pts
}

// Predicates bundles the spherical orientation and containment tests for
// use by the triangulator.
type Predicates struct{}

func (Predicates) Right(p0, p1, p2 math.Vector3) bool {
	return Right(p0, p1, p2)
}

func (Predicates) InsideSurface(p math.Vector3, poly []math.Vector3) bool {
	return InsideSurface(p, poly)
}

// Clockwise reports whether poly winds clockwise as seen from outside the
// sphere above its centroid, using the sign of its vector area. poly must
// lie within a hemisphere.
func (Predicates) Clockwise(poly []math.Vector3) bool {
	var centroid, sum math.Vector3
	for _, p := range poly {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Unit()
	for i := range poly {
		sum = sum.Add(poly[i].Cross(poly[(i+1)%len(poly)]))
	}
	return sum.Dot(centroid) < 0
}
