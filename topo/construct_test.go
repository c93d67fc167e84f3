//  Copyright (c) 2024 Couchbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 		http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package topo_test

import (
	"math"
	"testing"

	"github.com/blevesearch/planar/geom"
	"github.com/blevesearch/planar/topo"
)

func TestConvexHull(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  geom.Kind
		area  float64
	}{
		{"square with interior points",
			"MULTIPOINT((0 0),(10 0),(10 10),(0 10),(5 5),(3 7))",
			geom.KindPolygon, 100},
		{"collinear points", "MULTIPOINT((0 0),(5 5),(10 10))",
			geom.KindLineString, 0},
		{"single point", "POINT(3 4)", geom.KindPoint, 0},
		{"two points", "MULTIPOINT((0 0),(5 5))", geom.KindLineString, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			hull, err := topo.ConvexHull(g(t, test.input))
			if err != nil {
				t.Fatalf("ConvexHull: %v", err)
			}
			if hull.Kind() != test.kind {
				t.Fatalf("hull kind = %v, want %v", hull.Kind(), test.kind)
			}
			if got := geom.Area(hull); math.Abs(got-test.area) > 1e-9 {
				t.Errorf("hull area = %v, want %v", got, test.area)
			}
		})
	}
}

func TestConvexHullOfPolygon(t *testing.T) {
	// a concave polygon: the hull closes the notch
	concave := g(t, "POLYGON((0 0,10 0,10 10,5 5,0 10,0 0))")
	hull, err := topo.ConvexHull(concave)
	if err != nil {
		t.Fatal(err)
	}
	if got := geom.Area(hull); math.Abs(got-100) > 1e-9 {
		t.Errorf("hull area = %v, want 100", got)
	}
}

func TestBoundary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, b *geom.Geometry)
	}{
		{"open line", "LINESTRING(0 0,10 10)", func(t *testing.T, b *geom.Geometry) {
			if b.Kind() != geom.KindMultiPoint || b.NumGeometries() != 2 {
				t.Errorf("boundary = %v with %d parts", b.Kind(), b.NumGeometries())
			}
		}},
		{"closed line", "LINESTRING(0 0,10 0,10 10,0 0)", func(t *testing.T, b *geom.Geometry) {
			if !b.IsEmpty() {
				t.Error("closed line should have empty boundary")
			}
		}},
		{"point", "POINT(1 1)", func(t *testing.T, b *geom.Geometry) {
			if !b.IsEmpty() {
				t.Error("point should have empty boundary")
			}
		}},
		{"polygon with hole",
			"POLYGON((0 0,10 0,10 10,0 10,0 0),(2 2,8 2,8 8,2 8,2 2))",
			func(t *testing.T, b *geom.Geometry) {
				if b.Kind() != geom.KindMultiLineString || b.NumGeometries() != 2 {
					t.Errorf("boundary = %v with %d parts", b.Kind(), b.NumGeometries())
				}
			}},
		{"three lines sharing an endpoint",
			"MULTILINESTRING((0 0,1 1),(0 0,1 -1),(0 0,-1 0))",
			func(t *testing.T, b *geom.Geometry) {
				// the shared endpoint occurs three times: mod-2 keeps it
				if b.NumGeometries() != 4 {
					t.Errorf("boundary has %d points, want 4", b.NumGeometries())
				}
			}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := topo.Boundary(g(t, test.input))
			if err != nil {
				t.Fatalf("Boundary: %v", err)
			}
			test.check(t, b)
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"POINT(0 0)", "POINT(3 4)", 5},
		{"POINT(5 5)", "POLYGON((0 0,10 0,10 10,0 10,0 0))", 0},
		{"POINT(15 5)", "POLYGON((0 0,10 0,10 10,0 10,0 0))", 5},
		{"LINESTRING(0 0,10 0)", "LINESTRING(0 5,10 5)", 5},
		{"LINESTRING(0 0,10 10)", "LINESTRING(0 10,10 0)", 0},
		{"POLYGON((0 0,1 0,1 1,0 1,0 0))", "POLYGON((4 0,5 0,5 1,4 1,4 0))", 3},
	}
	for _, test := range tests {
		got, err := topo.Distance(g(t, test.a), g(t, test.b))
		if err != nil {
			t.Fatalf("Distance(%s, %s): %v", test.a, test.b, err)
		}
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("Distance(%s, %s) = %v, want %v", test.a, test.b, got, test.want)
		}
	}
}

func TestNearestPoints(t *testing.T) {
	pts, err := topo.NearestPoints(g(t, "POINT(15 5)"), g(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))"))
	if err != nil {
		t.Fatal(err)
	}
	if !pts[0].Equals2D(geom.Coord(15, 5)) || !pts[1].Equals2D(geom.Coord(10, 5)) {
		t.Errorf("NearestPoints = %v, want (15,5) and (10,5)", pts)
	}
}

func TestDistanceEmpty(t *testing.T) {
	_, err := topo.Distance(g(t, "POINT EMPTY"), g(t, "POINT(0 0)"))
	if _, ok := err.(*geom.EmptyGeometryError); !ok {
		t.Errorf("Distance with empty input = %v, want EmptyGeometryError", err)
	}
}

func TestHausdorffDistance(t *testing.T) {
	got, err := topo.HausdorffDistance(
		g(t, "LINESTRING(0 0,10 0)"),
		g(t, "LINESTRING(0 1,10 1)"))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("HausdorffDistance = %v, want 1", got)
	}

	// asymmetric configuration: the directed distances differ, the
	// Hausdorff distance is the maximum
	got, err = topo.HausdorffDistance(
		g(t, "LINESTRING(0 0,10 0)"),
		g(t, "MULTIPOINT((0 0),(10 0),(5 8))"))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-8) > 1e-9 {
		t.Errorf("HausdorffDistance = %v, want 8", got)
	}
}

func TestIsSimple(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"LINESTRING(0 0,10 10)", true},
		{"LINESTRING(0 0,10 10,0 10,10 0)", false}, // self-crossing
		{"LINESTRING(0 0,10 0,10 10,0 0)", true},   // closed ring shape
		{"MULTIPOINT((1 1),(2 2))", true},
		{"MULTIPOINT((1 1),(1 1))", false},
		{"POLYGON((0 0,10 0,10 10,0 10,0 0))", true},
		{"MULTILINESTRING((0 0,10 10),(0 10,10 0))", false}, // interior crossing
		{"MULTILINESTRING((0 0,10 10),(10 10,20 0))", true}, // endpoint touch
	}
	for _, test := range tests {
		got, err := topo.IsSimple(g(t, test.input))
		if err != nil {
			t.Fatalf("IsSimple(%s): %v", test.input, err)
		}
		if got != test.want {
			t.Errorf("IsSimple(%s) = %v, want %v", test.input, got, test.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple polygon", "POLYGON((0 0,10 0,10 10,0 10,0 0))", true},
		{"polygon with hole", "POLYGON((0 0,10 0,10 10,0 10,0 0),(2 2,8 2,8 8,2 8,2 2))", true},
		{"bowtie", "POLYGON((0 0,10 10,10 0,0 10,0 0))", false},
		{"hole outside shell", "POLYGON((0 0,10 0,10 10,0 10,0 0),(20 20,22 20,22 22,20 22,20 20))", false},
		{"nested holes", "POLYGON((0 0,10 0,10 10,0 10,0 0),(1 1,9 1,9 9,1 9,1 1),(2 2,8 2,8 8,2 8,2 2))", false},
		{"valid multipolygon", "MULTIPOLYGON(((0 0,4 0,4 4,0 4,0 0)),((6 6,10 6,10 10,6 10,6 6)))", true},
		{"nested multipolygon", "MULTIPOLYGON(((0 0,10 0,10 10,0 10,0 0)),((2 2,8 2,8 8,2 8,2 2)))", false},
		{"empty polygon", "POLYGON EMPTY", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := topo.IsValid(g(t, test.input)); got != test.want {
				t.Errorf("IsValid = %v, want %v (reason %q)",
					got, test.want, topo.IsValidReason(g(t, test.input)))
			}
		})
	}
}
