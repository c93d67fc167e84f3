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
	"sync"
	"testing"

	"github.com/blevesearch/planar/geom"
	"github.com/blevesearch/planar/topo"
)

// TestPreparedEquivalence checks every prepared predicate agrees with its
// non-prepared counterpart over a matrix of geometry pairs.
func TestPreparedEquivalence(t *testing.T) {
	reference := []string{
		"POLYGON((0 0,10 0,10 10,0 10,0 0))",
		"POLYGON((0 0,10 0,10 10,0 10,0 0),(2 2,8 2,8 8,2 8,2 2))",
		"LINESTRING(0 0,10 10)",
		"MULTIPOLYGON(((0 0,4 0,4 4,0 4,0 0)),((6 6,10 6,10 10,6 10,6 6)))",
	}
	queries := []string{
		"POINT(1 1)",
		"POINT(5 5)",
		"POINT(0 5)",
		"POINT(20 20)",
		"LINESTRING(2 2,8 8)",
		"LINESTRING(-5 5,15 5)",
		"LINESTRING(20 20,30 30)",
		"POLYGON((2 2,3 2,3 3,2 3,2 2))",
		"POLYGON((5 5,15 5,15 15,5 15,5 5))",
		"POLYGON((-5 -5,15 -5,15 15,-5 15,-5 -5))",
	}
	for _, refSrc := range reference {
		ref := g(t, refSrc)
		prep, err := topo.Prepare(ref)
		if err != nil {
			t.Fatalf("Prepare: %v", err)
		}
		for _, qSrc := range queries {
			q := g(t, qSrc)

			plain, err1 := topo.Intersects(ref, q)
			prepared, err2 := prep.Intersects(q)
			if err1 != nil || err2 != nil {
				t.Fatalf("intersects %s / %s: %v %v", refSrc, qSrc, err1, err2)
			}
			if plain != prepared {
				t.Errorf("prepared intersects differs for %s / %s: %v vs %v",
					refSrc, qSrc, plain, prepared)
			}

			plain, err1 = topo.Contains(ref, q)
			prepared, err2 = prep.Contains(q)
			if err1 != nil || err2 != nil {
				t.Fatalf("contains %s / %s: %v %v", refSrc, qSrc, err1, err2)
			}
			if plain != prepared {
				t.Errorf("prepared contains differs for %s / %s: %v vs %v",
					refSrc, qSrc, plain, prepared)
			}

			plain, err1 = topo.Covers(ref, q)
			prepared, err2 = prep.Covers(q)
			if err1 != nil || err2 != nil {
				t.Fatalf("covers %s / %s: %v %v", refSrc, qSrc, err1, err2)
			}
			if plain != prepared {
				t.Errorf("prepared covers differs for %s / %s: %v vs %v",
					refSrc, qSrc, plain, prepared)
			}

			plainDist, err1 := topo.Distance(ref, q)
			prepDist, err2 := prep.Distance(q)
			if err1 != nil || err2 != nil {
				t.Fatalf("distance %s / %s: %v %v", refSrc, qSrc, err1, err2)
			}
			if plainDist != prepDist {
				t.Errorf("prepared distance differs for %s / %s: %v vs %v",
					refSrc, qSrc, plainDist, prepDist)
			}
		}
	}
}

func TestPreparedContainsProperly(t *testing.T) {
	prep, err := topo.Prepare(g(t, "POLYGON((0 0,10 0,10 10,0 10,0 0))"))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		query string
		want  bool
	}{
		{"POINT(5 5)", true},
		{"POINT(0 5)", false}, // on the boundary
		{"POLYGON((2 2,8 2,8 8,2 8,2 2))", true},
		{"POLYGON((0 0,8 0,8 8,0 8,0 0))", false}, // touches the boundary
		{"POINT(20 20)", false},
	}
	for _, test := range tests {
		got, err := prep.ContainsProperly(g(t, test.query))
		if err != nil {
			t.Fatalf("ContainsProperly(%s): %v", test.query, err)
		}
		if got != test.want {
			t.Errorf("ContainsProperly(%s) = %v, want %v", test.query, got, test.want)
		}
	}
}

// TestPreparedConcurrent queries one PreparedGeometry from many
// goroutines; the lazy index build must be safe under the race.
func TestPreparedConcurrent(t *testing.T) {
	prep, err := topo.Prepare(g(t, "POLYGON((0 0,10 0,10 10,0 10,0 0),(2 2,8 2,8 8,2 8,2 2))"))
	if err != nil {
		t.Fatal(err)
	}
	queries := []*geom.Geometry{
		g(t, "POINT(1 1)"),
		g(t, "POINT(5 5)"),
		g(t, "LINESTRING(0 0,10 10)"),
	}
	want := []bool{true, false, true}

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rep := 0; rep < 20; rep++ {
				for i, q := range queries {
					got, err := prep.Intersects(q)
					if err != nil {
						t.Errorf("Intersects: %v", err)
						return
					}
					if got != want[i] {
						t.Errorf("Intersects(query %d) = %v, want %v", i, got, want[i])
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}
