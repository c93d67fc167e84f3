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

func line(coords ...float64) *topo.SegmentString {
	pts := make([]geom.Coordinate, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, geom.Coord(coords[i], coords[i+1]))
	}
	return &topo.SegmentString{Pts: pts}
}

func TestNodeSegmentsCrossing(t *testing.T) {
	out, err := topo.NodeSegments([]*topo.SegmentString{
		line(0, 0, 10, 10),
		line(0, 10, 10, 0),
	})
	if err != nil {
		t.Fatalf("NodeSegments: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("noding two crossing segments produced %d strings, want 4", len(out))
	}
	crossing := geom.Coord(5, 5)
	for _, s := range out {
		found := false
		for _, p := range s.Pts {
			if p.Equals2D(crossing) {
				found = true
			}
		}
		if !found {
			t.Errorf("output string %v does not carry the intersection vertex", s.Pts)
		}
	}
	assertNoded(t, out)
}

func TestNodeSegmentsPreservesVertices(t *testing.T) {
	input := line(0, 0, 5, 1, 10, 0)
	out, err := topo.NodeSegments([]*topo.SegmentString{input, line(0, 2, 10, 2)})
	if err != nil {
		t.Fatalf("NodeSegments: %v", err)
	}
	// no intersections: both strings survive with every vertex intact
	var longest *topo.SegmentString
	for _, s := range out {
		if longest == nil || len(s.Pts) > len(longest.Pts) {
			longest = s
		}
	}
	if len(longest.Pts) != 3 || !longest.Pts[1].Equals2D(geom.Coord(5, 1)) {
		t.Errorf("input vertex suppressed: %v", longest.Pts)
	}
}

func TestNodeSegmentsCarriesData(t *testing.T) {
	a := line(0, 0, 10, 10)
	a.Data = "a"
	b := line(0, 10, 10, 0)
	b.Data = "b"
	out, err := topo.NodeSegments([]*topo.SegmentString{a, b})
	if err != nil {
		t.Fatal(err)
	}
	counts := map[any]int{}
	for _, s := range out {
		counts[s.Data]++
	}
	if counts["a"] != 2 || counts["b"] != 2 {
		t.Errorf("payloads not carried through noding: %v", counts)
	}
}

// assertNoded verifies no two output segments share an interior point.
func assertNoded(t *testing.T, strings []*topo.SegmentString) {
	t.Helper()
	type seg struct{ a, b geom.Coordinate }
	var segs []seg
	for _, s := range strings {
		for i := 1; i < len(s.Pts); i++ {
			segs = append(segs, seg{s.Pts[i-1], s.Pts[i]})
		}
	}
	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			res := topo.SegmentIntersection(segs[i].a, segs[i].b, segs[j].a, segs[j].b)
			if res.Proper {
				t.Errorf("segments %v and %v share an interior point %v",
					segs[i], segs[j], res.Pt[0])
			}
			if res.Kind == topo.CollinearIntersection &&
				!res.Pt[0].Equals2D(res.Pt[1]) {
				t.Errorf("segments %v and %v overlap collinearly", segs[i], segs[j])
			}
		}
	}
}

func TestSnapRoundSegments(t *testing.T) {
	pm := geom.Fixed(1)
	out, err := topo.SnapRoundSegments([]*topo.SegmentString{
		line(0, 0, 10, 10),
		line(0.2, 10.1, 9.8, 0.3),
	}, pm)
	if err != nil {
		t.Fatalf("SnapRoundSegments: %v", err)
	}
	for _, s := range out {
		for _, p := range s.Pts {
			if p.X != math.Round(p.X) || p.Y != math.Round(p.Y) {
				t.Errorf("vertex %v is off the grid", p)
			}
		}
	}
	assertNoded(t, out)
}

func TestSnapRoundRequiresFixedModel(t *testing.T) {
	_, err := topo.SnapRoundSegments([]*topo.SegmentString{line(0, 0, 1, 1)}, geom.Floating())
	if _, ok := err.(*geom.ArgumentError); !ok {
		t.Errorf("got %v, want ArgumentError", err)
	}
}

func TestSnapRoundCollapseRemoved(t *testing.T) {
	pm := geom.Fixed(1)
	out, err := topo.SnapRoundSegments([]*topo.SegmentString{
		line(0, 0, 0.2, 0.1), // collapses to a single grid point
	}, pm)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("collapsed string should be removed, got %v", out)
	}
}
