// cmd/meshgen/shapes.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mmp/geoverlay/math"
	"github.com/mmp/geoverlay/mesh"
	"github.com/mmp/geoverlay/unit"
	"github.com/mmp/geoverlay/util"

	"github.com/brunoga/deep"
	"github.com/iancoleman/orderedmap"
)

type strokeSpec struct {
	Width  int         `json:"width"`
	Colour unit.Colour `json:"colour"`
}

// shapeSpec is a shape as it appears in a shape file. Which fields are
// used depends on Kind; shapes that refer to a symbol take everything
// but their anchor and paint from it.
type shapeSpec struct {
	Kind     string         `json:"kind"`
	Symbol   string         `json:"symbol"`
	Centre   *unit.LatLong  `json:"centre"`
	Anchor   *unit.LatLong  `json:"anchor"`
	RadiusNM float64        `json:"radius_nm"`
	Radius   float64        `json:"radius"` // pixels
	Vertices []unit.LatLong `json:"vertices"`
	Offsets  []math.Vector2 `json:"offsets"`
	Fill     *unit.Colour   `json:"fill"`
	Stroke   *strokeSpec    `json:"stroke"`
}

type shapeFile struct {
	Symbols map[string]shapeSpec `json:"symbols"`
	Shapes  map[string]shapeSpec `json:"shapes"`
}

type namedShape struct {
	Name  string
	Shape mesh.Shape
}

// parseShapeFile returns the shapes in b in the order they are declared,
// which is the order they are drawn in. Problems are reported to e and
// the offending shapes are skipped.
func parseShapeFile(b []byte, e *util.ErrorLogger) []namedShape {
	defer e.CheckDepth(e.CurrentDepth())

	for _, d := range util.FindDuplicateJSONKeys(b) {
		if d.Path == "" {
			e.ErrorString("duplicate key %q", d.Key)
		} else {
			e.ErrorString("%s: duplicate key %q", d.Path, d.Key)
		}
	}

	var sf shapeFile
	if err := util.UnmarshalJSON(b, &sf); err != nil {
		e.Error(err)
		return nil
	}
	order, err := shapeOrder(b)
	if err != nil {
		e.Error(err)
		return nil
	}

	e.Push("symbols")
	for _, name := range slices.Sorted(maps.Keys(sf.Symbols)) {
		sym := sf.Symbols[name]
		e.Push(name)
		if !strings.HasPrefix(sym.Kind, "relative-") {
			e.ErrorString("symbols must be relative shapes, not %q", sym.Kind)
		} else if sym.Anchor != nil {
			e.ErrorString("symbols may not have an \"anchor\"")
		}
		e.Pop()
	}
	e.Pop()

	e.Push("shapes")
	defer e.Pop()

	var shapes []namedShape
	for _, name := range order {
		e.Push(name)
		spec := sf.Shapes[name]
		ok := true
		if spec.Symbol != "" {
			spec, ok = stampSymbol(spec, sf.Symbols, e)
		}
		if ok {
			if s, ok := spec.shape(e); ok {
				shapes = append(shapes, namedShape{Name: name, Shape: s})
			}
		}
		e.Pop()
	}
	return shapes
}

// shapeOrder returns the names of the shapes in b in declaration order.
func shapeOrder(b []byte) ([]string, error) {
	om := orderedmap.New()
	if err := json.Unmarshal(b, om); err != nil {
		return nil, err
	}
	v, ok := om.Get("shapes")
	if !ok {
		return nil, nil
	}
	switch s := v.(type) {
	case orderedmap.OrderedMap:
		return s.Keys(), nil
	case *orderedmap.OrderedMap:
		return s.Keys(), nil
	default:
		return nil, fmt.Errorf("\"shapes\" must be an object, not %T", v)
	}
}

// stampSymbol returns a copy of the symbol spec refers to, placed at its
// anchor and with its paint overridden by any that spec gives.
func stampSymbol(spec shapeSpec, symbols map[string]shapeSpec, e *util.ErrorLogger) (shapeSpec, bool) {
	sym, ok := symbols[spec.Symbol]
	if !ok {
		e.ErrorString("unknown symbol %q", spec.Symbol)
		return spec, false
	}
	if spec.Kind != "" && spec.Kind != sym.Kind {
		e.ErrorString("\"kind\" %q does not match symbol %q's %q", spec.Kind, spec.Symbol, sym.Kind)
		return spec, false
	}

	s := deep.MustCopy(sym)
	s.Anchor = spec.Anchor
	if spec.Fill != nil {
		s.Fill = spec.Fill
	}
	if spec.Stroke != nil {
		s.Stroke = spec.Stroke
	}
	return s, true
}

func (s shapeSpec) paint(e *util.ErrorLogger) (mesh.Paint, bool) {
	var p mesh.Paint
	if s.Stroke != nil {
		if s.Stroke.Width < 1 {
			e.ErrorString("stroke width %d must be at least 1", s.Stroke.Width)
			return p, false
		}
		p.Stroke = &mesh.Stroke{Width: s.Stroke.Width, Colour: s.Stroke.Colour}
	}
	p.Fill = s.Fill
	if p.Stroke == nil && p.Fill == nil {
		e.ErrorString("neither \"fill\" nor \"stroke\" given")
		return p, false
	}
	return p, true
}

func (s shapeSpec) shape(e *util.ErrorLogger) (mesh.Shape, bool) {
	paint, ok := s.paint(e)

	need := func(cond bool, msg string, args ...any) {
		if !cond {
			e.ErrorString(msg, args...)
			ok = false
		}
	}
	relative := strings.HasPrefix(s.Kind, "relative-")
	if relative {
		need(s.Anchor != nil, "relative shapes need an \"anchor\"")
	}

	var shape mesh.Shape
	switch s.Kind {
	case "circle":
		need(s.Centre != nil, "circles need a \"centre\"")
		need(s.RadiusNM > 0, "\"radius_nm\" must be positive")
		if ok {
			shape = mesh.GeoCircle{Centre: *s.Centre, Radius: unit.NauticalMiles(s.RadiusNM), Paint: paint}
		}

	case "polygon":
		need(len(s.Vertices) >= 3, "polygons need at least 3 vertices, not %d", len(s.Vertices))
		shape = mesh.GeoPolygon{Vertices: s.Vertices, Paint: paint}

	case "polyline":
		need(len(s.Vertices) >= 2, "polylines need at least 2 vertices, not %d", len(s.Vertices))
		shape = mesh.GeoPolyline{Points: s.Vertices, Paint: paint}

	case "relative-circle":
		need(s.Radius > 0, "\"radius\" must be positive")
		if ok {
			shape = mesh.GeoRelativeCircle{Anchor: *s.Anchor, Radius: s.Radius, Paint: paint}
		}

	case "relative-polygon":
		need(len(s.Offsets) >= 3, "polygons need at least 3 offsets, not %d", len(s.Offsets))
		if ok {
			shape = mesh.GeoRelativePolygon{Anchor: *s.Anchor, Offsets: s.Offsets, Paint: paint}
		}

	case "relative-polyline":
		need(len(s.Offsets) >= 2, "polylines need at least 2 offsets, not %d", len(s.Offsets))
		if ok {
			shape = mesh.GeoRelativePolyline{Anchor: *s.Anchor, Offsets: s.Offsets, Paint: paint}
		}

	case "":
		need(false, "no \"kind\" or \"symbol\" given")

	default:
		need(false, "unknown kind %q", s.Kind)
	}
	return shape, ok
}
