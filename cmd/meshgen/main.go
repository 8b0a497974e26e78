// cmd/meshgen/main.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// meshgen converts overlay shape files and GeoJSON feature collections
// into the mesh files the rasterizer loads.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/mmp/geoverlay/log"
	"github.com/mmp/geoverlay/math"
	"github.com/mmp/geoverlay/mesh"
	"github.com/mmp/geoverlay/unit"
	"github.com/mmp/geoverlay/util"
	"github.com/mmp/geoverlay/view"

	"github.com/goforj/godump"
)

var (
	shapesFilename  = flag.String("shapes", "", "JSON shape file")
	geojsonFilename = flag.String("geojson", "", "GeoJSON feature collection")
	simplifyDegrees = flag.Float64("simplify", 0, "Douglas-Peucker tolerance in degrees for GeoJSON rings and lines")
	outputFilename  = flag.String("o", "meshes.msgpack.zst", "output mesh file")
	circleSegments  = flag.Int("segments", mesh.DefaultOptions().CircleSegments, "number of points circles are discretised into")
	miterLimit      = flag.Float64("miterlimit", mesh.DefaultOptions().MiterLimit, "miter limit for wide relative strokes, in half-widths")
	logLevel        = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir          = flag.String("logdir", "", "log file directory")
	dump            = flag.Bool("dump", false, "print the generated meshes")
	nWorkers        = flag.Int("workers", runtime.NumCPU(), "number of shapes to mesh concurrently")
	viewSpec        = flag.String("view", "", "print the uniforms for a view given as lat,long,rangeNM,width,height")
	useCache        = flag.Bool("cache", true, "reuse meshes cached from an earlier run with the same inputs")
)

const maxCacheBytes = 256 << 20

func main() {
	flag.Parse()

	lg, err := log.New(*logLevel, *logDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer lg.CatchAndReportCrash()

	if err := run(lg); err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(lg *log.Logger) error {
	opts := mesh.DefaultOptions()
	opts.CircleSegments = *circleSegments
	opts.MiterLimit = *miterLimit

	if *viewSpec != "" {
		v, err := parseView(*viewSpec)
		if err != nil {
			return err
		}
		v.MiterLimit = opts.MiterLimit
		u, err := v.Uniforms(lg)
		if err != nil {
			return err
		}
		godump.Dump(u)
	}

	if *shapesFilename == "" && *geojsonFilename == "" {
		if *viewSpec == "" {
			flag.Usage()
			return errors.New("no -shapes or -geojson file given")
		}
		return nil
	}

	shapes, key, err := loadShapes(lg)
	if err != nil {
		return err
	}
	key = util.Hash([]byte(key), []byte(fmt.Sprintf("%+v", opts)))

	var meshes []namedMeshes
	cachePath := "meshes/" + key
	if *useCache {
		if t, err := util.CacheRetrieveObject(cachePath, &meshes); err == nil {
			lg.Info("using cached meshes", slog.String("key", key), slog.Time("stored", t))
		} else {
			meshes = nil
		}
	}

	if meshes == nil {
		start := time.Now()
		meshes, err = generateAll(context.Background(), shapes, opts, *nWorkers, lg)
		if err != nil {
			return err
		}
		nm, nv := vertexCount(meshes)
		lg.Info("generated meshes", slog.Int("shapes", len(shapes)), slog.Int("meshes", nm),
			slog.Int("vertices", nv), slog.Duration("elapsed", time.Since(start)))

		if *useCache {
			if err := util.CacheStoreObject(cachePath, meshes); err != nil {
				lg.Warnf("%s: unable to cache meshes: %v", cachePath, err)
			} else if err := util.CacheCullObjects(maxCacheBytes); err != nil {
				lg.Warnf("unable to cull cache: %v", err)
			}
		}
	}

	if *dump {
		godump.Dump(meshes)
	}

	f, err := os.Create(*outputFilename)
	if err != nil {
		return err
	}
	if err := util.WriteCompressed(f, meshes); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", *outputFilename, err)
	}
	return f.Close()
}

// loadShapes reads and validates the input files, reporting every problem
// found before failing. It also returns a key identifying the inputs for
// the mesh cache.
func loadShapes(lg *log.Logger) ([]namedShape, string, error) {
	var e util.ErrorLogger
	var shapes []namedShape
	var contents [][]byte

	if *shapesFilename != "" {
		b, err := os.ReadFile(*shapesFilename)
		if err != nil {
			return nil, "", err
		}
		contents = append(contents, b)

		e.Push(*shapesFilename)
		shapes = append(shapes, parseShapeFile(b, &e)...)
		e.Pop()
	}
	if *geojsonFilename != "" {
		b, err := os.ReadFile(*geojsonFilename)
		if err != nil {
			return nil, "", err
		}
		contents = append(contents, b, []byte(strconv.FormatFloat(*simplifyDegrees, 'g', -1, 64)))

		e.Push(*geojsonFilename)
		shapes = append(shapes, parseGeoJSON(b, *simplifyDegrees, &e, lg)...)
		e.Pop()
	}

	if e.HaveErrors() {
		e.PrintErrors(os.Stderr, lg)
		return nil, "", e.Err()
	}
	return shapes, util.Hash(contents...), nil
}

// parseView parses a view given as "lat,long,rangeNM,width,height".
func parseView(s string) (view.View, error) {
	f := strings.Split(s, ",")
	if len(f) != 5 {
		return view.View{}, fmt.Errorf("%q: expected lat,long,rangeNM,width,height", s)
	}
	var v [5]float64
	for i, fs := range f {
		var err error
		if v[i], err = strconv.ParseFloat(strings.TrimSpace(fs), 64); err != nil {
			return view.View{}, fmt.Errorf("%q: %w", s, err)
		}
	}
	return view.New(unit.LatLongDegrees(v[0], v[1]), unit.NauticalMiles(v[2]), math.Vector2{v[3], v[4]}), nil
}
