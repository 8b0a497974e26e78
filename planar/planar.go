// planar/planar.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package planar implements 2D computational geometry for pixel-space
// shapes: orientation and containment tests, circle rings, and wide-line
// extrusion with miter joins.
package planar

import (
	gomath "math"

	"github.com/mmp/geoverlay/math"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Right reports whether p2 is to the right of (or on) the line from p0
// through p1, with y increasing upward.
func Right(p0, p1, p2 math.Vector2) bool {
	return p1.Sub(p0).Cross(p2.Sub(p0)) <= 0
}

func stripClosing(poly []math.Vector2) []math.Vector2 {
	if n := len(poly); n > 1 && poly[0] == poly[n-1] {
		return poly[:n-1]
	}
	return poly
}

// InsideSurface reports whether p is inside poly using the even-odd rule.
// Each edge covers a half-open interval in y, so a ray through a shared
// vertex is only counted once.
func InsideSurface(p math.Vector2, poly []math.Vector2) bool {
	poly = stripClosing(poly)
	if len(poly) < 3 {
		return false
	}

	inside := false
	for i := 0; i < len(poly); i++ {
		p0, p1 := poly[i], poly[(i+1)%len(poly)]
		if (p0[1] <= p[1] && p[1] < p1[1]) || (p1[1] <= p[1] && p[1] < p0[1]) {
			x := p0[0] + (p[1]-p0[1])*(p1[0]-p0[0])/(p1[1]-p0[1])
			if x > p[0] {
				inside = !inside
			}
		}
	}
	return inside
}

// SignedArea returns the area of poly, positive if it winds
// counter-clockwise.
func SignedArea(poly []math.Vector2) float64 {
	poly = stripClosing(poly)
	var a float64
	for i := range poly {
		a += poly[i].Cross(poly[(i+1)%len(poly)])
	}
	return a / 2
}

// So that circles with the same tessellation share their vertices,
// unitCircles caches rings of unit radius at the origin, keyed by point
// count. The cache is safe for concurrent use.
var unitCircles *lru.Cache[int, []math.Vector2]

func init() {
	var err error
	if unitCircles, err = lru.New[int, []math.Vector2](32); err != nil {
		panic(err)
	}
}

func unitCircle(n int) []math.Vector2 {
	if pts, ok := unitCircles.Get(n); ok {
		return pts
	}

	pts := make([]math.Vector2, n)
	for i := range n {
		s, c := gomath.Sincos(2 * gomath.Pi * float64(i) / float64(n))
		pts[i] = math.Vector2{c, s}
	}
	unitCircles.Add(n, pts)
	return pts
}

// DiscretiseCircle returns n points evenly spaced counter-clockwise
// around the circle with the given centre and radius.
func DiscretiseCircle(centre math.Vector2, radius float64, n int) []math.Vector2 {
	if n <= 0 {
		return nil
	}

	ring := unitCircle(n)
	pts := make([]math.Vector2, n)
	for i, p := range ring {
		pts[i] = centre.Add(p.Scale(radius))
	}
	return pts
}

// EdgeNormal returns the unit normal to the left of the edge from a to b.
func EdgeNormal(a, b math.Vector2) math.Vector2 {
	return b.Sub(a).Unit().Perp()
}

// Miter returns the offset from cur to the left side of a line of the
// given half-width at the join between the edges prev->cur and cur->next.
// If the miter would be longer than limit half-widths, or the line turns
// back on itself, the offset falls back to the normal of the incoming
// edge and fallback is true. Limits below one are treated as one, so a
// straight join never falls back.
func Miter(prev, cur, next math.Vector2, halfWidth, limit float64) (offset math.Vector2, fallback bool) {
	limit = max(limit, 1)

	n0 := EdgeNormal(prev, cur)
	tangent := cur.Sub(prev).Unit().Add(next.Sub(cur).Unit()).Unit()
	if tangent == (math.Vector2{}) {
		return n0.Scale(halfWidth), true
	}

	miter := tangent.Perp()
	cos := miter.Dot(n0)
	if cos <= 0 || cos*limit < 1-1e-9 {
		return n0.Scale(halfWidth), true
	}
	return miter.Scale(halfWidth / cos), false
}

// Extrude converts the polyline through points into triangles covering a
// line of the given width, using miter joins at interior vertices. If
// closed is set, the last point joins back to the first. Open ends are
// cut square along the end edge's normal.
func Extrude(points []math.Vector2, width, miterLimit float64, closed bool) []math.Triangle[math.Vector2] {
	if closed {
		points = stripClosing(points)
	}
	n := len(points)
	if n < 2 {
		return nil
	}

	hw := width / 2
	offsets := make([]math.Vector2, n)
	for i, p := range points {
		switch {
		case !closed && i == 0:
			offsets[i] = EdgeNormal(p, points[1]).Scale(hw)
		case !closed && i == n-1:
			offsets[i] = EdgeNormal(points[n-2], p).Scale(hw)
		default:
			prev, next := points[(i+n-1)%n], points[(i+1)%n]
			offsets[i], _ = Miter(prev, p, next, hw, miterLimit)
		}
	}

	nseg := n - 1
	if closed {
		nseg = n
	}
	tris := make([]math.Triangle[math.Vector2], 0, 2*nseg)
	for i := range nseg {
		j := (i + 1) % n
		li, ri := points[i].Add(offsets[i]), points[i].Sub(offsets[i])
		lj, rj := points[j].Add(offsets[j]), points[j].Sub(offsets[j])
		tris = append(tris, math.Triangle[math.Vector2]{li, ri, lj}, math.Triangle[math.Vector2]{ri, rj, lj})
	}
	return tris
}

// Predicates bundles the planar orientation and containment tests for use
// by the triangulator.
type Predicates struct{}

func (Predicates) Right(p0, p1, p2 math.Vector2) bool {
	return Right(p0, p1, p2)
}

func (Predicates) InsideSurface(p math.Vector2, poly []math.Vector2) bool {
	return InsideSurface(p, poly)
}

func (Predicates) Clockwise(poly []math.Vector2) bool {
	return SignedArea(poly) < 0
}
