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

package topo

import (
	"math"
	"testing"

	"github.com/blevesearch/planar/geom"
)

func TestSegmentIntersectionCrossing(t *testing.T) {
	res := SegmentIntersection(
		geom.Coord(0, 0), geom.Coord(10, 10),
		geom.Coord(0, 10), geom.Coord(10, 0))
	if res.Kind != PointIntersection {
		t.Fatalf("Kind = %v, want PointIntersection", res.Kind)
	}
	if !res.Proper {
		t.Error("interior crossing should be proper")
	}
	if !res.Pt[0].Equals2D(geom.Coord(5, 5)) {
		t.Errorf("intersection point = %v, want (5, 5)", res.Pt[0])
	}
}

func TestSegmentIntersectionEndpointTouch(t *testing.T) {
	res := SegmentIntersection(
		geom.Coord(0, 0), geom.Coord(10, 0),
		geom.Coord(10, 0), geom.Coord(20, 10))
	if res.Kind != PointIntersection {
		t.Fatalf("Kind = %v, want PointIntersection", res.Kind)
	}
	if res.Proper {
		t.Error("endpoint touch must not be proper")
	}
	if !res.Pt[0].Equals2D(geom.Coord(10, 0)) {
		t.Errorf("intersection point = %v, want (10, 0)", res.Pt[0])
	}
}

func TestSegmentIntersectionVertexOnInterior(t *testing.T) {
	// q1 lies on the interior of p1-p2: the exact input vertex must be
	// returned, not a recomputed point
	res := SegmentIntersection(
		geom.Coord(0, 0), geom.Coord(10, 0),
		geom.Coord(3, 0), geom.Coord(3, 7))
	if res.Kind != PointIntersection || res.Proper {
		t.Fatalf("got kind %v proper %v, want improper point", res.Kind, res.Proper)
	}
	if !res.Pt[0].Equals2D(geom.Coord(3, 0)) {
		t.Errorf("intersection point = %v, want (3, 0)", res.Pt[0])
	}
}

func TestSegmentIntersectionCollinear(t *testing.T) {
	res := SegmentIntersection(
		geom.Coord(0, 0), geom.Coord(10, 0),
		geom.Coord(5, 0), geom.Coord(15, 0))
	if res.Kind != CollinearIntersection {
		t.Fatalf("Kind = %v, want CollinearIntersection", res.Kind)
	}
	got := geom.EnvelopeOfCoords(res.Pt[0], res.Pt[1])
	want := geom.EnvelopeOfCoords(geom.Coord(5, 0), geom.Coord(10, 0))
	if got != want {
		t.Errorf("overlap = %v to %v, want (5,0) to (10,0)", res.Pt[0], res.Pt[1])
	}

	// collinear segments meeting at one point only
	res = SegmentIntersection(
		geom.Coord(0, 0), geom.Coord(10, 0),
		geom.Coord(10, 0), geom.Coord(20, 0))
	if res.Kind != PointIntersection {
		t.Errorf("touching collinear segments: Kind = %v, want PointIntersection", res.Kind)
	}
}

func TestSegmentIntersectionDisjoint(t *testing.T) {
	res := SegmentIntersection(
		geom.Coord(0, 0), geom.Coord(1, 1),
		geom.Coord(10, 10), geom.Coord(11, 11))
	if res.Kind != NoIntersection {
		t.Errorf("Kind = %v, want NoIntersection", res.Kind)
	}
	// envelopes overlap but segments do not cross
	res = SegmentIntersection(
		geom.Coord(0, 0), geom.Coord(10, 10),
		geom.Coord(0, 1), geom.Coord(9, 10))
	if res.Kind != NoIntersection {
		t.Errorf("parallel segments: Kind = %v, want NoIntersection", res.Kind)
	}
}

// TestSegmentIntersectionInEnvelope verifies the computed point always
// lies within the envelopes of both segments, even for nearly parallel
// inputs where the algebraic formula rounds outside them.
func TestSegmentIntersectionInEnvelope(t *testing.T) {
	pairs := [][4]geom.Coordinate{
		{
			geom.Coord(2089426.5233462777, 1180182.3877339689),
			geom.Coord(2085646.6891757075, 1195618.7333999649),
			geom.Coord(1889281.8148903656, 1997547.0560044837),
			geom.Coord(2259977.3672235999, 483675.17050843034),
		},
		{
			geom.Coord(-5.9, 163.1), geom.Coord(76.1, 250.7),
			geom.Coord(14.6, 185.0), geom.Coord(96.6, 272.6),
		},
	}
	for _, pts := range pairs {
		res := SegmentIntersection(pts[0], pts[1], pts[2], pts[3])
		if res.Kind == NoIntersection {
			continue
		}
		if !geom.CoordsIntersectEnvelope(pts[0], pts[1], res.Pt[0]) ||
			!geom.CoordsIntersectEnvelope(pts[2], pts[3], res.Pt[0]) {
			t.Errorf("intersection %v outside segment envelopes for %v", res.Pt[0], pts)
		}
	}
}

func TestSegmentIntersectionZInterpolation(t *testing.T) {
	res := SegmentIntersection(
		geom.CoordZ(0, 0, 0), geom.CoordZ(10, 10, 10),
		geom.Coord(0, 10), geom.Coord(10, 0))
	if res.Kind != PointIntersection {
		t.Fatal("expected point intersection")
	}
	if math.Abs(res.Pt[0].Z-5) > 1e-9 {
		t.Errorf("interpolated Z = %v, want 5", res.Pt[0].Z)
	}

	// when both segments carry Z, the first wins
	res = SegmentIntersection(
		geom.CoordZ(0, 0, 0), geom.CoordZ(10, 10, 10),
		geom.CoordZ(0, 10, 100), geom.CoordZ(10, 0, 100))
	if math.Abs(res.Pt[0].Z-5) > 1e-9 {
		t.Errorf("Z should interpolate from the first segment, got %v", res.Pt[0].Z)
	}
}

func TestLocatePointInRing(t *testing.T) {
	ring := []geom.Coordinate{
		geom.Coord(0, 0), geom.Coord(10, 0), geom.Coord(10, 10),
		geom.Coord(0, 10), geom.Coord(0, 0),
	}
	tests := []struct {
		p    geom.Coordinate
		want Location
	}{
		{geom.Coord(5, 5), LocInterior},
		{geom.Coord(-1, 5), LocExterior},
		{geom.Coord(0, 5), LocBoundary},
		{geom.Coord(10, 10), LocBoundary},
		{geom.Coord(5, 0), LocBoundary},
		{geom.Coord(11, 10), LocExterior},
		// a point on the top edge, where the rightward ray runs along the edge
		{geom.Coord(5, 10), LocBoundary},
	}
	for _, test := range tests {
		if got := LocatePointInRing(test.p, ring); got != test.want {
			t.Errorf("LocatePointInRing(%v) = %v, want %v", test.p, got, test.want)
		}
	}
}

func TestLocatePointInRingVertexRay(t *testing.T) {
	// a diamond: the ray from the centre passes exactly through the east
	// vertex; the crossing count must still classify correctly
	ring := []geom.Coordinate{
		geom.Coord(0, -10), geom.Coord(10, 0), geom.Coord(0, 10),
		geom.Coord(-10, 0), geom.Coord(0, -10),
	}
	if got := LocatePointInRing(geom.Coord(0, 0), ring); got != LocInterior {
		t.Errorf("centre of diamond = %v, want interior", got)
	}
	if got := LocatePointInRing(geom.Coord(-20, 0), ring); got != LocExterior {
		t.Errorf("point west of diamond = %v, want exterior", got)
	}
}
