// triangulate/triangulate.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package triangulate implements ear-clipping triangulation of simple
// polygons. The algorithm is written once, generically over the vertex
// type, and is parameterized by a pair of geometric predicates; the
// package provides instances for polygons on the sphere and in the plane.
//
// Polygons must be simple: self-intersecting polygons are not split into
// simple pieces and will generally fail with ErrNoEar.
package triangulate

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mmp/geoverlay/math"
	"github.com/mmp/geoverlay/planar"
	"github.com/mmp/geoverlay/spherical"
)

var (
	ErrTooFewVertices = errors.New("polygon has fewer than three vertices")
	ErrNoEar          = errors.New("no ear found in polygon")
)

// Predicates provides the geometric tests the triangulator needs.
type Predicates[V any] interface {
	// Right reports whether p2 is to the right of (or on) the line from
	// p0 through p1.
	Right(p0, p1, p2 V) bool
	// InsideSurface reports whether p is inside poly.
	InsideSurface(p V, poly []V) bool
}

// Winder may optionally be implemented by Predicates to determine a
// polygon's winding directly; otherwise it is found by majority vote of
// Right over each vertex and its neighbours.
type Winder[V any] interface {
	Clockwise(poly []V) bool
}

type Triangulator[V comparable] struct {
	pred Predicates[V]
}

func New[V comparable](pred Predicates[V]) Triangulator[V] {
	return Triangulator[V]{pred: pred}
}

var (
	Spherical = New[math.Vector3](spherical.Predicates{})
	Planar    = New[math.Vector2](planar.Predicates{})
)

func stripClosing[V comparable](poly []V) []V {
	if n := len(poly); n > 1 && poly[0] == poly[n-1] {
		return poly[:n-1]
	}
	return poly
}

// Triangulate returns triangles covering the simple polygon poly, which
// may be explicitly closed. A triangle is returned as is; larger
// polygons are passed to TriangulateSimple.
func (t Triangulator[V]) Triangulate(poly []V) ([]math.Triangle[V], error) {
	poly = stripClosing(poly)
	if len(poly) < 3 {
		return nil, fmt.Errorf("%d vertices: %w", len(poly), ErrTooFewVertices)
	} else if len(poly) == 3 {
		return []math.Triangle[V]{{poly[0], poly[1], poly[2]}}, nil
	}
	return t.TriangulateSimple(poly)
}

// TriangulateSimple triangulates a simple polygon of n vertices into n-2
// triangles, all wound clockwise. The input is not modified.
func (t Triangulator[V]) TriangulateSimple(vertices []V) ([]math.Triangle[V], error) {
	vertices = stripClosing(vertices)
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%d vertices: %w", len(vertices), ErrTooFewVertices)
	}

	ring := t.orient(vertices)
	n := len(ring)
	if n == 3 {
		return []math.Triangle[V]{{ring[0], ring[1], ring[2]}}, nil
	} else if n == 4 {
		// Split along whichever diagonal touches the reflex vertex, if
		// there is one.
		if t.convex(ring[3], ring[0], ring[1]) && t.convex(ring[1], ring[2], ring[3]) {
			return []math.Triangle[V]{{ring[0], ring[1], ring[3]}, {ring[1], ring[2], ring[3]}}, nil
		}
		return []math.Triangle[V]{{ring[0], ring[1], ring[2]}, {ring[0], ring[2], ring[3]}}, nil
	}

	c := newClipper(t.pred, ring)
	tris := make([]math.Triangle[V], 0, n-2)
	for c.remaining > 3 {
		ear := c.findEar()
		if ear == -1 {
			return nil, fmt.Errorf("%d vertices remaining after %d triangles: %w", c.remaining, len(tris), ErrNoEar)
		}
		tris = append(tris, c.triangle(ear))
		c.remove(ear)
	}
	return append(tris, c.triangle(c.head)), nil
}

// orient returns a copy of vertices in clockwise order.
func (t Triangulator[V]) orient(vertices []V) []V {
	ring := slices.Clone(vertices)

	var cw bool
	if w, ok := t.pred.(Winder[V]); ok {
		cw = w.Clockwise(ring)
	} else {
		n, right := len(ring), 0
		for i := range ring {
			if t.pred.Right(ring[(i+n-1)%n], ring[i], ring[(i+1)%n]) {
				right++
			}
		}
		cw = 2*right > n
	}

	if !cw {
		slices.Reverse(ring)
	}
	return ring
}

// In a clockwise polygon, convex vertices turn right.
func (t Triangulator[V]) convex(prev, v, next V) bool {
	return t.pred.Right(prev, v, next)
}

///////////////////////////////////////////////////////////////////////////
// clipper

// clipper holds the shrinking ring of vertices during ear clipping as a
// circular doubly-linked list over indices into the original ring.
type clipper[V comparable] struct {
	pred       Predicates[V]
	ring       []V
	prev, next []int
	reflex     []bool
	head       int
	remaining  int
}

func newClipper[V comparable](pred Predicates[V], ring []V) *clipper[V] {
	n := len(ring)
	c := &clipper[V]{
		pred:      pred,
		ring:      ring,
		prev:      make([]int, n),
		next:      make([]int, n),
		reflex:    make([]bool, n),
		remaining: n,
	}
	for i := range n {
		c.prev[i] = (i + n - 1) % n
		c.next[i] = (i + 1) % n
	}
	for i := range n {
		c.classify(i)
	}
	return c
}

func (c *clipper[V]) classify(i int) {
	c.reflex[i] = !c.pred.Right(c.ring[c.prev[i]], c.ring[i], c.ring[c.next[i]])
}

func (c *clipper[V]) triangle(i int) math.Triangle[V] {
	return math.Triangle[V]{c.ring[c.prev[i]], c.ring[i], c.ring[c.next[i]]}
}

// findEar returns the index of a convex vertex whose triangle with its
// neighbours contains no reflex vertex, or -1 if there is none.
func (c *clipper[V]) findEar() int {
	i := c.head
	for range c.remaining {
		if !c.reflex[i] && c.isEar(i) {
			return i
		}
		i = c.next[i]
	}
	return -1
}

func (c *clipper[V]) isEar(i int) bool {
	p, n := c.prev[i], c.next[i]
	tri := c.triangle(i)
	for j := c.next[n]; j != p; j = c.next[j] {
		if c.reflex[j] && c.pred.InsideSurface(c.ring[j], tri[:]) {
			return false
		}
	}
	return true
}

// remove unlinks vertex i; only its neighbours can change classification.
func (c *clipper[V]) remove(i int) {
	p, n := c.prev[i], c.next[i]
	c.next[p], c.prev[n] = n, p
	if c.head == i {
		c.head = n
	}
	c.remaining--
	c.classify(p)
	c.classify(n)
}
