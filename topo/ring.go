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

	"github.com/blevesearch/planar/geom"
)

// rayCrossingCounter accumulates crossings of a rightward horizontal ray
// from a query point with ring segments. Crossing classification uses the
// robust orientation predicate, so rays through ring vertices are counted
// consistently.
type rayCrossingCounter struct {
	p          geom.Coordinate
	crossings  int
	onSegment  bool
}

func (rc *rayCrossingCounter) countSegment(p1, p2 geom.Coordinate) {
	// segments strictly to the left of the point cannot cross the ray
	if p1.X < rc.p.X && p2.X < rc.p.X {
		return
	}
	// the point is a segment endpoint
	if rc.p.X == p2.X && rc.p.Y == p2.Y {
		rc.onSegment = true
		return
	}
	// horizontal segment through the point
	if p1.Y == rc.p.Y && p2.Y == rc.p.Y {
		minX := math.Min(p1.X, p2.X)
		maxX := math.Max(p1.X, p2.X)
		if rc.p.X >= minX && rc.p.X <= maxX {
			rc.onSegment = true
		}
		return
	}
	// the segment straddles the ray ordinate: classify the crossing
	if (p1.Y > rc.p.Y && p2.Y <= rc.p.Y) || (p2.Y > rc.p.Y && p1.Y <= rc.p.Y) {
		orient := OrientationIndex(p1, p2, rc.p)
		if orient == Collinear {
			rc.onSegment = true
			return
		}
		// re-orient so the effective segment direction is upward
		if p2.Y < p1.Y {
			orient = -orient
		}
		if orient == CounterClockwise {
			rc.crossings++
		}
	}
}

func (rc *rayCrossingCounter) location() Location {
	if rc.onSegment {
		return LocBoundary
	}
	if rc.crossings%2 == 1 {
		return LocInterior
	}
	return LocExterior
}

// LocatePointInRing classifies the point p against the closed ring:
// LocInterior, LocBoundary or LocExterior. The ring may be oriented either
// way and may self-touch at discrete points.
func LocatePointInRing(p geom.Coordinate, ring []geom.Coordinate) Location {
	rc := rayCrossingCounter{p: p}
	for i := 1; i < len(ring); i++ {
		rc.countSegment(ring[i], ring[i-1])
		if rc.onSegment {
			return LocBoundary
		}
	}
	return rc.location()
}

// IsPointInRing reports whether p lies inside or on the ring.
func IsPointInRing(p geom.Coordinate, ring []geom.Coordinate) bool {
	return LocatePointInRing(p, ring) != LocExterior
}
