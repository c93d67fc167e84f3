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

package geom

import (
	"errors"
	"testing"
)

func square(t *testing.T, f *Factory, x0, y0, size float64) *Geometry {
	t.Helper()
	ring, err := f.LinearRing(SequenceFromCoords(XY, []Coordinate{
		Coord(x0, y0), Coord(x0+size, y0), Coord(x0+size, y0+size),
		Coord(x0, y0+size), Coord(x0, y0),
	}))
	if err != nil {
		t.Fatalf("LinearRing: %v", err)
	}
	poly, err := f.Polygon(ring)
	if err != nil {
		t.Fatalf("Polygon: %v", err)
	}
	return poly
}

func TestLinearRingValidation(t *testing.T) {
	f := NewFactory(nil, 0)
	open := SequenceFromCoords(XY, []Coordinate{
		Coord(0, 0), Coord(1, 0), Coord(1, 1), Coord(0, 1),
	})
	_, err := f.LinearRing(open)
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Errorf("unclosed ring: got %v, want ArgumentError", err)
	}
	short := SequenceFromCoords(XY, []Coordinate{
		Coord(0, 0), Coord(1, 1), Coord(0, 0),
	})
	if _, err := f.LinearRing(short); err == nil {
		t.Error("3-coordinate ring should fail")
	}
	if _, err := f.LinearRing(nil); err != nil {
		t.Errorf("empty ring: %v", err)
	}
}

func TestLineStringValidation(t *testing.T) {
	f := NewFactory(nil, 0)
	single := SequenceFromCoords(XY, []Coordinate{Coord(0, 0)})
	if _, err := f.LineString(single); err == nil {
		t.Error("single-point linestring should fail")
	}
}

func TestPolygonValidation(t *testing.T) {
	f := NewFactory(nil, 0)
	hole, _ := f.LinearRing(SequenceFromCoords(XY, []Coordinate{
		Coord(2, 2), Coord(8, 2), Coord(8, 8), Coord(2, 8), Coord(2, 2),
	}))
	if _, err := f.Polygon(nil, hole); err == nil {
		t.Error("holes without a shell should fail")
	}
}

func TestFactorySRIDAndPrecision(t *testing.T) {
	f := NewFactory(Fixed(1), 4326)
	pt := f.PointFromCoord(Coord(1.4, 2.6))
	if pt.SRID() != 4326 {
		t.Errorf("SRID = %d, want 4326", pt.SRID())
	}
	c := pt.Sequence().Coord(0)
	if c.X != 1 || c.Y != 3 {
		t.Errorf("fixed model should snap to (1, 3), got %v", c)
	}
}

func TestBuildGeometry(t *testing.T) {
	f := NewFactory(nil, 0)
	p1 := f.PointFromCoord(Coord(0, 0))
	p2 := f.PointFromCoord(Coord(1, 1))
	line, _ := f.LineString(SequenceFromCoords(XY, []Coordinate{Coord(0, 0), Coord(1, 1)}))

	if got := f.BuildGeometry([]*Geometry{p1, p2}); got.Kind() != KindMultiPoint {
		t.Errorf("two points built %v, want MultiPoint", got.Kind())
	}
	if got := f.BuildGeometry([]*Geometry{p1, line}); got.Kind() != KindGeometryCollection {
		t.Errorf("mixed types built %v, want GeometryCollection", got.Kind())
	}
	if got := f.BuildGeometry([]*Geometry{line}); got != line {
		t.Error("single geometry should be returned as itself")
	}
	if got := f.BuildGeometry(nil); got.Kind() != KindGeometryCollection || !got.IsEmpty() {
		t.Error("no geometries should build an empty collection")
	}
}

func TestEmptyByDimension(t *testing.T) {
	f := NewFactory(nil, 0)
	tests := []struct {
		dim  int
		kind Kind
	}{
		{0, KindPoint},
		{1, KindLineString},
		{2, KindPolygon},
		{-1, KindGeometryCollection},
	}
	for _, test := range tests {
		g := f.Empty(test.dim)
		if g.Kind() != test.kind || !g.IsEmpty() {
			t.Errorf("Empty(%d) = %v empty=%v", test.dim, g.Kind(), g.IsEmpty())
		}
	}
}

func TestCollectionEmptiness(t *testing.T) {
	f := NewFactory(nil, 0)
	emptyPt, _ := f.Point(nil)
	mp, _ := f.MultiPoint(emptyPt)
	if !mp.IsEmpty() {
		t.Error("collection of empty components must be empty")
	}
	mp2, _ := f.MultiPoint(emptyPt, f.PointFromCoord(Coord(1, 1)))
	if mp2.IsEmpty() {
		t.Error("collection with a non-empty component is not empty")
	}
}

func TestIsRectangle(t *testing.T) {
	f := NewFactory(nil, 0)
	if !square(t, f, 0, 0, 10).IsRectangle() {
		t.Error("axis-aligned square should be a rectangle")
	}
	tri, _ := f.LinearRing(SequenceFromCoords(XY, []Coordinate{
		Coord(0, 0), Coord(10, 0), Coord(5, 10), Coord(0, 0),
	}))
	poly, _ := f.Polygon(tri)
	if poly.IsRectangle() {
		t.Error("triangle is not a rectangle")
	}
}

func TestDimensions(t *testing.T) {
	f := NewFactory(nil, 0)
	line, _ := f.LineString(SequenceFromCoords(XY, []Coordinate{Coord(0, 0), Coord(1, 1)}))
	closed, _ := f.LineString(SequenceFromCoords(XY, []Coordinate{
		Coord(0, 0), Coord(1, 0), Coord(1, 1), Coord(0, 0),
	}))
	tests := []struct {
		g           *Geometry
		dim, bdyDim int
	}{
		{f.PointFromCoord(Coord(0, 0)), 0, -1},
		{line, 1, 0},
		{closed, 1, -1},
		{square(t, f, 0, 0, 1), 2, 1},
	}
	for _, test := range tests {
		if got := test.g.Dimension(); got != test.dim {
			t.Errorf("%v: Dimension = %d, want %d", test.g.Kind(), got, test.dim)
		}
		if got := test.g.BoundaryDimension(); got != test.bdyDim {
			t.Errorf("%v: BoundaryDimension = %d, want %d", test.g.Kind(), got, test.bdyDim)
		}
	}
}
