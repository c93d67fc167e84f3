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

// IsValid reports whether a geometry satisfies the SFS validity
// invariants: finite coordinates, closed simple rings of at least 4
// points, holes inside their shell without crossing each other, and
// multipolygon components with disjoint interiors.
func IsValid(g *geom.Geometry) bool {
	reason := IsValidReason(g)
	return reason == ""
}

// IsValidReason returns an empty string for valid geometries, or a short
// description of the first validity violation found.
func IsValidReason(g *geom.Geometry) string {
	if g == nil {
		return "nil geometry"
	}
	switch g.Kind() {
	case geom.KindPoint:
		if !g.IsEmpty() && !isFiniteCoord(g.Sequence().Coord(0)) {
			return "non-finite coordinate"
		}
		return ""
	case geom.KindLineString:
		return validLineReason(g)
	case geom.KindLinearRing:
		return validRingReason(g)
	case geom.KindPolygon:
		return validPolygonReason(g)
	case geom.KindMultiPolygon:
		return validMultiPolygonReason(g)
	default:
		for i := 0; i < g.NumGeometries(); i++ {
			if reason := IsValidReason(g.GeometryN(i)); reason != "" {
				return reason
			}
		}
		return ""
	}
}

func isFiniteCoord(c geom.Coordinate) bool {
	return !math.IsNaN(c.X) && !math.IsInf(c.X, 0) &&
		!math.IsNaN(c.Y) && !math.IsInf(c.Y, 0)
}

func validCoordsReason(coords []geom.Coordinate) string {
	for _, c := range coords {
		if !isFiniteCoord(c) {
			return "non-finite coordinate"
		}
	}
	return ""
}

func validLineReason(g *geom.Geometry) string {
	if g.IsEmpty() {
		return ""
	}
	coords := g.Sequence().Coords()
	if reason := validCoordsReason(coords); reason != "" {
		return reason
	}
	if len(removeRepeatedCoords(coords)) < 2 {
		return "line with too few distinct points"
	}
	return ""
}

func validRingReason(g *geom.Geometry) string {
	if g.IsEmpty() {
		return ""
	}
	coords := g.Sequence().Coords()
	if reason := validCoordsReason(coords); reason != "" {
		return reason
	}
	if !g.Sequence().IsClosed() {
		return "ring not closed"
	}
	if len(removeRepeatedCoords(coords)) < 4 {
		return "ring with too few distinct points"
	}
	simple, err := isSimpleLinear(g)
	if err != nil || !simple {
		return "ring self-intersection"
	}
	return ""
}

func validPolygonReason(g *geom.Geometry) string {
	if g.IsEmpty() {
		return ""
	}
	shell := g.ExteriorRing()
	if reason := validRingReason(shell); reason != "" {
		return reason
	}
	for i := 0; i < g.NumInteriorRings(); i++ {
		if reason := validRingReason(g.InteriorRingN(i)); reason != "" {
			return reason
		}
	}
	// rings must not cross each other; touching at discrete points is
	// permitted
	if reason := ringsNoCrossReason(g); reason != "" {
		return reason
	}
	shellPts := shell.Sequence().Coords()
	for i := 0; i < g.NumInteriorRings(); i++ {
		hole := g.InteriorRingN(i)
		if reason := holeInShellReason(hole, shellPts); reason != "" {
			return reason
		}
	}
	// holes must not nest
	for i := 0; i < g.NumInteriorRings(); i++ {
		for j := 0; j < g.NumInteriorRings(); j++ {
			if i == j {
				continue
			}
			if ringInsideRing(g.InteriorRingN(i), g.InteriorRingN(j)) {
				return "nested holes"
			}
		}
	}
	return ""
}

// ringsNoCrossReason checks the rings of a polygon only touch at discrete
// points, by noding the polygon boundary against itself.
func ringsNoCrossReason(g *geom.Geometry) string {
	gg, err := newGeometryGraph(0, g, Mod2BoundaryNodeRule{})
	if err != nil {
		return "degenerate ring"
	}
	var li lineIntersector
	si := newSegmentIntersector(&li, true, false)
	computeSelfIntersections(gg.edges, si, false)
	if si.hasProper {
		return "rings cross"
	}
	return ""
}

// holeInShellReason verifies a hole lies inside the shell: a hole vertex
// not on the shell must be interior to it.
func holeInShellReason(hole *geom.Geometry, shellPts []geom.Coordinate) string {
	if hole.IsEmpty() {
		return ""
	}
	for _, p := range hole.Sequence().Coords() {
		switch LocatePointInRing(p, shellPts) {
		case LocExterior:
			return "hole outside shell"
		case LocInterior:
			return ""
		}
	}
	// every hole vertex lies on the shell: the hole fills the polygon
	return "hole degenerates polygon"
}

// ringInsideRing reports whether ring a has a point strictly inside b.
func ringInsideRing(a, b *geom.Geometry) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	if !b.Envelope().Contains(a.Envelope()) {
		return false
	}
	bPts := b.Sequence().Coords()
	for _, p := range a.Sequence().Coords() {
		switch LocatePointInRing(p, bPts) {
		case LocInterior:
			return true
		case LocExterior:
			return false
		}
	}
	return false
}

func validMultiPolygonReason(g *geom.Geometry) string {
	for i := 0; i < g.NumGeometries(); i++ {
		if reason := validPolygonReason(g.GeometryN(i)); reason != "" {
			return reason
		}
	}
	// component boundaries may touch only at discrete points
	if reason := ringsNoCrossReason(g); reason != "" {
		return reason
	}
	// component interiors must be pairwise disjoint: no shell may nest
	// inside another component's area
	for i := 0; i < g.NumGeometries(); i++ {
		for j := 0; j < g.NumGeometries(); j++ {
			if i == j || g.GeometryN(i).IsEmpty() || g.GeometryN(j).IsEmpty() {
				continue
			}
			shell := g.GeometryN(i).ExteriorRing()
			for _, p := range shell.Sequence().Coords() {
				if locateInPolygon(p, g.GeometryN(j)) == LocInterior {
					return "nested or overlapping polygon components"
				}
			}
		}
	}
	return ""
}
