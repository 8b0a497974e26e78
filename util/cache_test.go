// util/cache_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

type cached struct {
	Name     string
	Vertices []float32
	Anchor   [3]float32
	Colours  []uint32
	Extra    *cached
}

func TestCompressedRoundTrip(t *testing.T) {
	obj := cached{
		Name:     "zone",
		Vertices: []float32{1, 2, 3, 4.5, -6, 7},
		Anchor:   [3]float32{0.25, 0.5, 0.75},
		Colours:  []uint32{0xff000064, 0x00ff0032},
		Extra:    &cached{Name: "stroke"},
	}

	var buf bytes.Buffer
	if err := WriteCompressed(&buf, obj); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got cached
	if err := ReadCompressed(&buf, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, obj) {
		t.Errorf("got %+v, expected %+v", got, obj)
	}

	if err := ReadCompressed(bytes.NewReader([]byte("not zstd")), &got); err == nil {
		t.Errorf("expected an error decoding garbage")
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("shapes"), []byte("opts"))
	if len(a) != 64 {
		t.Errorf("got %d hex digits, expected 64", len(a))
	}
	if a != Hash([]byte("shapesopts")) {
		t.Errorf("hash should depend only on the concatenated bytes")
	}
	if a == Hash([]byte("shapes"), []byte("opts2")) {
		t.Errorf("different inputs gave the same hash")
	}
}

func TestCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	if err := CacheCullObjects(0); err != nil {
		t.Errorf("culling an empty cache: %v", err)
	}

	obj := cached{Name: "ring", Vertices: []float32{1, 2, 3}}
	if err := CacheStoreObject("meshes/a", obj); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got cached
	stored, err := CacheRetrieveObject("meshes/a", &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, obj) {
		t.Errorf("got %+v, expected %+v", got, obj)
	}
	if time.Since(stored) > time.Minute {
		t.Errorf("stored time %s is stale", stored)
	}

	if _, err := CacheRetrieveObject("meshes/missing", &got); !os.IsNotExist(err) {
		t.Errorf("expected a not exist error, got %v", err)
	}

	// Culling removes the oldest objects first.
	if err := CacheStoreObject("meshes/b", obj); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pa, _ := fullCachePath("meshes/a")
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(pa, old, old); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fi, _ := os.Stat(filepath.Clean(pa))
	if err := CacheCullObjects(fi.Size()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := CacheRetrieveObject("meshes/a", &got); !os.IsNotExist(err) {
		t.Errorf("oldest object should have been culled: %v", err)
	}
	if _, err := CacheRetrieveObject("meshes/b", &got); err != nil {
		t.Errorf("newest object should remain: %v", err)
	}
}
