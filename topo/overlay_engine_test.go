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
	"context"
	"math"
	"testing"

	"github.com/blevesearch/planar/geom"
	"github.com/blevesearch/planar/topo"
	"github.com/blevesearch/planar/wkt"
)

func TestIntersectionOfOverlappingSquares(t *testing.T) {
	a := g(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	b := g(t, "POLYGON((5 5,15 5,15 15,5 15,5 5))")
	got, err := topo.Intersection(a, b)
	if err != nil {
		t.Fatalf("Intersection: %v", err)
	}
	want := g(t, "POLYGON((5 5,10 5,10 10,5 10,5 5))")
	equal, err := topo.EqualsTopo(got, want)
	if err != nil {
		t.Fatalf("EqualsTopo: %v", err)
	}
	if !equal {
		gotWkt, _ := wkt.Marshal(got)
		t.Errorf("intersection = %s, want 5x5 square", gotWkt)
	}
	if area := geom.Area(got); math.Abs(area-25) > 1e-9 {
		t.Errorf("area of intersection = %v, want 25", area)
	}
}

func TestUnionOfOverlappingSquares(t *testing.T) {
	a := g(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	b := g(t, "POLYGON((5 5,15 5,15 15,5 15,5 5))")
	got, err := topo.Union(a, b)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	if area := geom.Area(got); math.Abs(area-175) > 1e-9 {
		t.Errorf("area of union = %v, want 175", area)
	}
	if got.Kind() != geom.KindPolygon {
		t.Errorf("union kind = %v, want Polygon", got.Kind())
	}
}

func TestDifferenceOfOverlappingSquares(t *testing.T) {
	a := g(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	b := g(t, "POLYGON((5 5,15 5,15 15,5 15,5 5))")
	diff, err := topo.Difference(a, b)
	if err != nil {
		t.Fatalf("Difference: %v", err)
	}
	if area := geom.Area(diff); math.Abs(area-75) > 1e-9 {
		t.Errorf("area of difference = %v, want 75", area)
	}
	sym, err := topo.SymDifference(a, b)
	if err != nil {
		t.Fatalf("SymDifference: %v", err)
	}
	if area := geom.Area(sym); math.Abs(area-150) > 1e-9 {
		t.Errorf("area of symmetric difference = %v, want 150", area)
	}
}

func TestCrossingLinesIntersection(t *testing.T) {
	a := g(t, "LINESTRING(0 0,10 10)")
	b := g(t, "LINESTRING(0 10,10 0)")
	got, err := topo.Intersection(a, b)
	if err != nil {
		t.Fatalf("Intersection: %v", err)
	}
	if got.Kind() != geom.KindPoint {
		gotWkt, _ := wkt.Marshal(got)
		t.Fatalf("intersection = %s, want POINT(5 5)", gotWkt)
	}
	if c := got.Sequence().Coord(0); !c.Equals2D(geom.Coord(5, 5)) {
		t.Errorf("intersection point = %v, want (5, 5)", c)
	}
}

func TestOverlayIdempotence(t *testing.T) {
	inputs := []string{
		"POLYGON((0 0,10 0,10 10,0 10,0 0))",
		"POLYGON((0 0,10 0,10 10,0 10,0 0),(2 2,8 2,8 8,2 8,2 2))",
		"LINESTRING(0 0,10 10)",
	}
	for _, src := range inputs {
		a := g(t, src)
		union, err := topo.Union(a, a)
		if err != nil {
			t.Fatalf("Union(%s, same): %v", src, err)
		}
		if equal, _ := topo.EqualsTopo(union, a); !equal {
			t.Errorf("union(A, A) not equal to A for %s", src)
		}
		inter, err := topo.Intersection(a, a)
		if err != nil {
			t.Fatalf("Intersection(%s, same): %v", src, err)
		}
		if equal, _ := topo.EqualsTopo(inter, a); !equal {
			t.Errorf("intersection(A, A) not equal to A for %s", src)
		}
		diff, err := topo.Difference(a, a)
		if err != nil {
			t.Fatalf("Difference(%s, same): %v", src, err)
		}
		if !diff.IsEmpty() {
			t.Errorf("difference(A, A) not empty for %s", src)
		}
	}
}

// TestOverlayAreaBalance checks area(A∪B) + area(A∩B) = area(A) + area(B).
func TestOverlayAreaBalance(t *testing.T) {
	pairs := [][2]string{
		{"POLYGON((0 0,10 0,10 10,0 10,0 0))", "POLYGON((5 5,15 5,15 15,5 15,5 5))"},
		{"POLYGON((0 0,10 0,10 10,0 10,0 0))", "POLYGON((2 2,8 2,8 8,2 8,2 2))"},
		{"POLYGON((0 0,10 0,10 10,0 10,0 0))", "POLYGON((20 0,30 0,30 10,20 10,20 0))"},
		{"POLYGON((0 0,10 0,10 10,0 10,0 0))", "POLYGON((10 0,20 0,20 10,10 10,10 0))"},
	}
	for _, pair := range pairs {
		a, b := g(t, pair[0]), g(t, pair[1])
		union, err := topo.Union(a, b)
		if err != nil {
			t.Fatalf("Union: %v", err)
		}
		inter, err := topo.Intersection(a, b)
		if err != nil {
			t.Fatalf("Intersection: %v", err)
		}
		lhs := geom.Area(union) + geom.Area(inter)
		rhs := geom.Area(a) + geom.Area(b)
		if math.Abs(lhs-rhs) > 1e-9 {
			t.Errorf("area balance violated for %v: %v vs %v", pair, lhs, rhs)
		}
	}
}

// TestOverlayDeMorgan checks difference(A, union(A,B)) is empty and
// intersection(A, difference(A,B)) equals difference(A, intersection(A,B)).
func TestOverlayDeMorgan(t *testing.T) {
	a := g(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	b := g(t, "POLYGON((5 5,15 5,15 15,5 15,5 5))")

	union, err := topo.Union(a, b)
	if err != nil {
		t.Fatal(err)
	}
	diffAll, err := topo.Difference(a, union)
	if err != nil {
		t.Fatal(err)
	}
	if !diffAll.IsEmpty() {
		gotWkt, _ := wkt.Marshal(diffAll)
		t.Errorf("difference(A, union(A,B)) = %s, want empty", gotWkt)
	}

	diffAB, err := topo.Difference(a, b)
	if err != nil {
		t.Fatal(err)
	}
	lhs, err := topo.Intersection(a, diffAB)
	if err != nil {
		t.Fatal(err)
	}
	interAB, err := topo.Intersection(a, b)
	if err != nil {
		t.Fatal(err)
	}
	rhs, err := topo.Difference(a, interAB)
	if err != nil {
		t.Fatal(err)
	}
	if equal, _ := topo.EqualsTopo(lhs, rhs); !equal {
		t.Error("intersection(A, A−B) != difference(A, A∩B)")
	}
}

// TestOverlayEmptyTable checks the trivial-result table for empty inputs.
func TestOverlayEmptyTable(t *testing.T) {
	x := g(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	empty := g(t, "POLYGON EMPTY")

	check := func(name string, got *geom.Geometry, err error, want *geom.Geometry) {
		t.Helper()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if want == nil {
			if !got.IsEmpty() {
				t.Errorf("%s: want empty result", name)
			}
			return
		}
		if equal, _ := topo.EqualsTopo(got, want); !equal {
			t.Errorf("%s: wrong result", name)
		}
	}

	r, err := topo.Union(empty, x)
	check("union(empty, X)", r, err, x)
	r, err = topo.Union(x, empty)
	check("union(X, empty)", r, err, x)
	r, err = topo.Intersection(empty, x)
	check("intersection(empty, X)", r, err, nil)
	r, err = topo.Difference(x, empty)
	check("difference(X, empty)", r, err, x)
	r, err = topo.Difference(empty, x)
	check("difference(empty, X)", r, err, nil)
	r, err = topo.SymDifference(x, empty)
	check("symDifference(X, empty)", r, err, x)
}

func TestOverlayDisjointUnionIsCollection(t *testing.T) {
	a := g(t, "POLYGON((0 0,1 0,1 1,0 1,0 0))")
	b := g(t, "LINESTRING(10 10,11 11)")
	got, err := topo.Union(a, b)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	if got.Kind() != geom.KindGeometryCollection {
		t.Errorf("disjoint mixed union kind = %v, want GeometryCollection", got.Kind())
	}
	if got.NumGeometries() != 2 {
		t.Errorf("union has %d parts, want 2", got.NumGeometries())
	}
}

func TestOverlayHolePunch(t *testing.T) {
	outer := g(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	inner := g(t, "POLYGON((2 2,8 2,8 8,2 8,2 2))")
	got, err := topo.Difference(outer, inner)
	if err != nil {
		t.Fatalf("Difference: %v", err)
	}
	if got.Kind() != geom.KindPolygon {
		t.Fatalf("difference kind = %v, want Polygon", got.Kind())
	}
	if got.NumInteriorRings() != 1 {
		t.Errorf("difference has %d holes, want 1", got.NumInteriorRings())
	}
	if area := geom.Area(got); math.Abs(area-64) > 1e-9 {
		t.Errorf("area = %v, want 64", area)
	}
}

func TestSnapRoundingOverlayReproducible(t *testing.T) {
	a := g(t, "LINESTRING(0 0,10 10)")
	b := g(t, "LINESTRING(0.1 0,10.1 10)")
	pm := geom.Fixed(1)

	first, err := topo.OverlayWithPrecision(context.Background(), a, b, topo.OpIntersection, pm)
	if err != nil {
		t.Fatalf("OverlayWithPrecision: %v", err)
	}
	second, err := topo.OverlayWithPrecision(context.Background(), a, b, topo.OpIntersection, pm)
	if err != nil {
		t.Fatalf("OverlayWithPrecision (second run): %v", err)
	}
	firstWkt, _ := wkt.Marshal(first)
	secondWkt, _ := wkt.Marshal(second)
	if firstWkt != secondWkt {
		t.Errorf("snap-rounding result not reproducible: %q vs %q", firstWkt, secondWkt)
	}
	// every output ordinate lies on the precision grid
	for _, c := range first.Coordinates() {
		if c.X != math.Round(c.X) || c.Y != math.Round(c.Y) {
			t.Errorf("output coordinate %v is off the scale-1 grid", c)
		}
	}
}

func TestOverlayInterrupted(t *testing.T) {
	a := g(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))")
	b := g(t, "POLYGON((5 5,15 5,15 15,5 15,5 5))")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := topo.Overlay(ctx, a, b, topo.OpIntersection)
	if _, ok := err.(*geom.InterruptedError); !ok {
		t.Errorf("cancelled overlay returned %v, want InterruptedError", err)
	}
}

func TestUnaryUnion(t *testing.T) {
	mp := g(t, "MULTIPOLYGON(((0 0,10 0,10 10,0 10,0 0)),((5 5,15 5,15 15,5 15,5 5)))")
	got, err := topo.UnaryUnion(mp)
	if err != nil {
		t.Fatalf("UnaryUnion: %v", err)
	}
	if area := geom.Area(got); math.Abs(area-175) > 1e-9 {
		t.Errorf("unary union area = %v, want 175", area)
	}
}
