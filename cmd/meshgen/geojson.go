// cmd/meshgen/geojson.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"log/slog"

	"github.com/mmp/geoverlay/log"
	"github.com/mmp/geoverlay/mesh"
	"github.com/mmp/geoverlay/unit"
	"github.com/mmp/geoverlay/util"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/simplify"
)

var defaultGeoJSONStroke = unit.RGB(255, 255, 255)

func getProp[T any](p geojson.Properties, name string) (T, bool) {
	v, ok := p[name].(T)
	return v, ok
}

// parseGeoJSON converts the features of a GeoJSON feature collection to
// shapes. Styling follows the simplestyle properties: "stroke",
// "stroke-width", "stroke-opacity", "fill" and "fill-opacity". Points
// become circles of "radius_nm". Rings and lines are simplified with the
// given tolerance, in degrees, if it is positive.
func parseGeoJSON(b []byte, tolerance float64, e *util.ErrorLogger, lg *log.Logger) []namedShape {
	defer e.CheckDepth(e.CurrentDepth())

	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		e.Error(err)
		return nil
	}

	var shapes []namedShape
	for i, f := range fc.Features {
		name, ok := getProp[string](f.Properties, "name")
		if !ok {
			name, ok = getProp[string](f.Properties, "NAME")
		}
		if !ok {
			name = fmt.Sprintf("feature%d", i)
		}

		e.Push(name)
		shapes = append(shapes, featureShapes(name, f, tolerance, e, lg)...)
		e.Pop()
	}
	return shapes
}

func featurePaint(props geojson.Properties, closed bool, e *util.ErrorLogger) (mesh.Paint, bool) {
	colour := func(key string, def *unit.Colour) *unit.Colour {
		if _, ok := props[key]; !ok {
			return def
		}
		hex, ok := getProp[string](props, key)
		if !ok {
			e.ErrorString("%q: %v is not a string", key, props[key])
			return nil
		}
		c, err := unit.Hex(hex)
		if alpha, ok := getProp[float64](props, key+"-opacity"); ok {
			c, err = unit.Hexa(hex, alpha)
		}
		if err != nil {
			e.ErrorString("%q: %v", key, err)
			return nil
		}
		return &c
	}

	stroke := defaultGeoJSONStroke
	c := colour("stroke", &stroke)
	if c == nil {
		return mesh.Paint{}, false
	}
	p := mesh.Paint{Stroke: &mesh.Stroke{Width: 1, Colour: *c}}
	if w, ok := getProp[float64](props, "stroke-width"); ok {
		if w < 1 {
			e.ErrorString("\"stroke-width\" %f must be at least 1", w)
			return p, false
		}
		p.Stroke.Width = int(w + 0.5)
	}

	if closed {
		if _, ok := props["fill"]; ok {
			if p.Fill = colour("fill", nil); p.Fill == nil {
				return p, false
			}
		}
	}
	return p, true
}

func toLatLongs(pts []orb.Point) []unit.LatLong {
	ll := make([]unit.LatLong, len(pts))
	for i, p := range pts {
		ll[i] = unit.LatLongDegrees(p.Lat(), p.Lon())
	}
	return ll
}

func simplifyRing(r orb.Ring, tolerance float64) orb.Ring {
	if tolerance <= 0 {
		return r
	}
	if s, ok := simplify.DouglasPeucker(tolerance).Simplify(r.Clone()).(orb.Ring); ok && len(s) >= 4 {
		return s
	}
	return r
}

func simplifyLine(l orb.LineString, tolerance float64) orb.LineString {
	if tolerance <= 0 {
		return l
	}
	if s, ok := simplify.DouglasPeucker(tolerance).Simplify(l.Clone()).(orb.LineString); ok && len(s) >= 2 {
		return s
	}
	return l
}

func featureShapes(name string, f *geojson.Feature, tolerance float64, e *util.ErrorLogger, lg *log.Logger) []namedShape {
	var shapes []namedShape
	add := func(s mesh.Shape) {
		n := name
		if len(shapes) > 0 {
			n = fmt.Sprintf("%s-%d", name, len(shapes))
		}
		shapes = append(shapes, namedShape{Name: n, Shape: s})
	}

	polygon := func(poly orb.Polygon, paint mesh.Paint) {
		if len(poly) == 0 {
			return
		}
		if len(poly) > 1 {
			lg.Warn("ignoring polygon holes", slog.String("feature", name), slog.Int("holes", len(poly)-1))
		}
		ring := simplifyRing(poly[0], tolerance)
		if len(ring) < 4 {
			e.ErrorString("polygon ring has only %d points", len(ring))
			return
		}
		add(mesh.GeoPolygon{Vertices: toLatLongs(ring), Paint: paint})
	}
	line := func(l orb.LineString, paint mesh.Paint) {
		l = simplifyLine(l, tolerance)
		if len(l) < 2 {
			e.ErrorString("line has only %d points", len(l))
			return
		}
		add(mesh.GeoPolyline{Points: toLatLongs(l), Paint: paint})
	}

	switch g := f.Geometry.(type) {
	case orb.Point:
		paint, ok := featurePaint(f.Properties, true, e)
		r, rok := getProp[float64](f.Properties, "radius_nm")
		if !rok || r <= 0 {
			e.ErrorString("points need a positive \"radius_nm\"")
		} else if ok {
			add(mesh.GeoCircle{Centre: unit.LatLongDegrees(g.Lat(), g.Lon()), Radius: unit.NauticalMiles(r), Paint: paint})
		}

	case orb.LineString:
		if paint, ok := featurePaint(f.Properties, false, e); ok {
			line(g, paint)
		}

	case orb.MultiLineString:
		if paint, ok := featurePaint(f.Properties, false, e); ok {
			for _, l := range g {
				line(l, paint)
			}
		}

	case orb.Polygon:
		if paint, ok := featurePaint(f.Properties, true, e); ok {
			polygon(g, paint)
		}

	case orb.MultiPolygon:
		if paint, ok := featurePaint(f.Properties, true, e); ok {
			for _, p := range g {
				polygon(p, paint)
			}
		}

	default:
		e.ErrorString("unsupported geometry %T", f.Geometry)
	}
	return shapes
}
