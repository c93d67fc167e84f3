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
	"math"
	"testing"
)

func TestSignedRingArea(t *testing.T) {
	ccw := SequenceFromCoords(XY, []Coordinate{
		Coord(0, 0), Coord(10, 0), Coord(10, 10), Coord(0, 10), Coord(0, 0),
	})
	if got := SignedRingArea(ccw); got != 100 {
		t.Errorf("CCW ring signed area = %v, want 100", got)
	}
	if got := SignedRingArea(ccw.Reversed()); got != -100 {
		t.Errorf("CW ring signed area = %v, want -100", got)
	}
}

func TestAreaWithHole(t *testing.T) {
	f := NewFactory(nil, 0)
	shell, _ := f.LinearRing(SequenceFromCoords(XY, []Coordinate{
		Coord(0, 0), Coord(10, 0), Coord(10, 10), Coord(0, 10), Coord(0, 0),
	}))
	hole, _ := f.LinearRing(SequenceFromCoords(XY, []Coordinate{
		Coord(2, 2), Coord(8, 2), Coord(8, 8), Coord(2, 8), Coord(2, 2),
	}))
	poly, _ := f.Polygon(shell, hole)
	if got := Area(poly); got != 64 {
		t.Errorf("Area = %v, want 64", got)
	}
	if got := Length(poly); got != 64 {
		t.Errorf("Length (perimeter) = %v, want 64", got)
	}
}

func TestEqualsExact(t *testing.T) {
	f := NewFactory(nil, 0)
	a := square(t, f, 0, 0, 10)
	b := square(t, f, 0, 0, 10)
	c := square(t, f, 0, 0, 10.001)
	if !EqualsExact(a, b, 0) {
		t.Error("identical polygons not EqualsExact")
	}
	if EqualsExact(a, c, 0) {
		t.Error("different polygons EqualsExact at tolerance 0")
	}
	if !EqualsExact(a, c, 0.01) {
		t.Error("polygons should match within tolerance 0.01")
	}
}

func TestNormalizeRing(t *testing.T) {
	f := NewFactory(nil, 0)
	// same square with a rotated, counter-clockwise ring
	ring, _ := f.LinearRing(SequenceFromCoords(XY, []Coordinate{
		Coord(10, 10), Coord(0, 10), Coord(0, 0), Coord(10, 0), Coord(10, 10),
	}))
	poly, _ := f.Polygon(ring)
	Normalize(poly)
	seq := poly.ExteriorRing().Sequence()
	if got := seq.Coord(0); !got.Equals2D(Coord(0, 0)) {
		t.Errorf("normalized ring starts at %v, want (0, 0)", got)
	}
	if SignedRingArea(seq) >= 0 {
		t.Error("normalized shell should be clockwise")
	}
}

func TestNormalizeLineString(t *testing.T) {
	f := NewFactory(nil, 0)
	line, _ := f.LineString(SequenceFromCoords(XY, []Coordinate{
		Coord(5, 5), Coord(0, 0),
	}))
	Normalize(line)
	if got := line.Sequence().Coord(0); !got.Equals2D(Coord(0, 0)) {
		t.Errorf("normalized line starts at %v, want (0, 0)", got)
	}
}

func TestReverse(t *testing.T) {
	f := NewFactory(nil, 0)
	line, _ := f.LineString(SequenceFromCoords(XY, []Coordinate{
		Coord(0, 0), Coord(1, 1), Coord(2, 0),
	}))
	rev := Reverse(line)
	if got := rev.Sequence().Coord(0); !got.Equals2D(Coord(2, 0)) {
		t.Errorf("Reverse start = %v, want (2, 0)", got)
	}
	// the original is untouched
	if got := line.Sequence().Coord(0); !got.Equals2D(Coord(0, 0)) {
		t.Error("Reverse mutated its input")
	}
}

func TestCentroid(t *testing.T) {
	f := NewFactory(nil, 0)
	c, err := Centroid(square(t, f, 0, 0, 10))
	if err != nil {
		t.Fatalf("Centroid: %v", err)
	}
	if math.Abs(c.X-5) > 1e-12 || math.Abs(c.Y-5) > 1e-12 {
		t.Errorf("Centroid = %v, want (5, 5)", c)
	}

	empty, _ := f.Polygon(nil)
	_, err = Centroid(empty)
	var emptyErr *EmptyGeometryError
	if !errors.As(err, &emptyErr) {
		t.Errorf("Centroid(empty) = %v, want EmptyGeometryError", err)
	}
}

func TestInteriorPoint(t *testing.T) {
	f := NewFactory(nil, 0)
	shell, _ := f.LinearRing(SequenceFromCoords(XY, []Coordinate{
		Coord(0, 0), Coord(10, 0), Coord(10, 10), Coord(0, 10), Coord(0, 0),
	}))
	hole, _ := f.LinearRing(SequenceFromCoords(XY, []Coordinate{
		Coord(1, 1), Coord(9, 1), Coord(9, 9), Coord(1, 9), Coord(1, 1),
	}))
	poly, _ := f.Polygon(shell, hole)
	c, err := InteriorPoint(poly)
	if err != nil {
		t.Fatalf("InteriorPoint: %v", err)
	}
	// the interior is the thin frame between the rings; the centroid (5,5)
	// is inside the hole, so the bisector scan must land in the frame
	inFrame := (c.X >= 0 && c.X <= 1 || c.X >= 9 && c.X <= 10) ||
		(c.Y >= 0 && c.Y <= 1 || c.Y >= 9 && c.Y <= 10)
	if !inFrame {
		t.Errorf("InteriorPoint = %v lies outside the polygon interior", c)
	}

	_, err = InteriorPoint(f.Empty(2))
	var emptyErr *EmptyGeometryError
	if !errors.As(err, &emptyErr) {
		t.Errorf("InteriorPoint(empty) = %v, want EmptyGeometryError", err)
	}
}
