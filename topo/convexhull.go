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
	"sort"

	"github.com/blevesearch/planar/geom"
)

// ConvexHull returns the smallest convex geometry containing all points
// of the input: a polygon for 3 or more extremal points, a linestring for
// collinear input, a point for a single location, and an empty collection
// for empty input.
func ConvexHull(g *geom.Geometry) (*geom.Geometry, error) {
	if g == nil {
		return nil, &geom.ArgumentError{Msg: "nil geometry"}
	}
	f := g.Factory()
	pts := uniqueSortedCoords(g.Coordinates())
	switch len(pts) {
	case 0:
		return f.GeometryCollection()
	case 1:
		return f.PointFromCoord(pts[0]), nil
	case 2:
		return f.LineString(geom.SequenceFromCoords(geom.XY, pts))
	}

	hull := monotoneChainHull(pts)
	if len(hull) <= 3 {
		// all points collinear: the hull degenerates to a line
		line := []geom.Coordinate{hull[0], hull[len(hull)-2]}
		return f.LineString(geom.SequenceFromCoords(geom.XY, line))
	}
	ring, err := f.LinearRing(geom.SequenceFromCoords(geom.XY, hull))
	if err != nil {
		return nil, err
	}
	return f.Polygon(ring)
}

// monotoneChainHull computes the convex hull of sorted unique points with
// the Andrew monotone-chain scan, using the robust orientation predicate.
// The result is a closed counter-clockwise ring.
func monotoneChainHull(pts []geom.Coordinate) []geom.Coordinate {
	n := len(pts)
	hull := make([]geom.Coordinate, 0, n+1)
	// lower hull
	for _, p := range pts {
		for len(hull) >= 2 &&
			OrientationIndex(hull[len(hull)-2], hull[len(hull)-1], p) != CounterClockwise {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// upper hull
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower &&
			OrientationIndex(hull[len(hull)-2], hull[len(hull)-1], p) != CounterClockwise {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull
}

func uniqueSortedCoords(coords []geom.Coordinate) []geom.Coordinate {
	sort.Slice(coords, func(i, j int) bool {
		return coords[i].Compare(coords[j]) < 0
	})
	out := coords[:0]
	for i, c := range coords {
		if i == 0 || !c.Equals2D(coords[i-1]) {
			out = append(out, c)
		}
	}
	return out
}
