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

// Distance returns the minimum distance between the two geometries, 0 if
// they intersect. Empty inputs yield an EmptyGeometryError.
func Distance(a, b *geom.Geometry) (float64, error) {
	d, _, err := distanceOp(a, b)
	return d, err
}

// NearestPoints returns a pair of points, one on each geometry, realising
// the minimum distance.
func NearestPoints(a, b *geom.Geometry) ([2]geom.Coordinate, error) {
	_, pts, err := distanceOp(a, b)
	return pts, err
}

func distanceOp(a, b *geom.Geometry) (float64, [2]geom.Coordinate, error) {
	var zero [2]geom.Coordinate
	if a == nil || b == nil {
		return 0, zero, &geom.ArgumentError{Msg: "nil geometry"}
	}
	if a.IsEmpty() || b.IsEmpty() {
		return 0, zero, &geom.EmptyGeometryError{Op: "Distance"}
	}

	best := math.Inf(1)
	var bestPair [2]geom.Coordinate

	// a point of one geometry inside the other's area realises distance 0
	if a.Dimension() == 2 {
		if pt, ok := anyCoordInArea(b, a); ok {
			return 0, [2]geom.Coordinate{pt, pt}, nil
		}
	}
	if b.Dimension() == 2 {
		if pt, ok := anyCoordInArea(a, b); ok {
			return 0, [2]geom.Coordinate{pt, pt}, nil
		}
	}

	aPts, aSegs := distanceFacets(a)
	bPts, bSegs := distanceFacets(b)

	update := func(d float64, pa, pb geom.Coordinate) {
		if d < best {
			best = d
			bestPair = [2]geom.Coordinate{pa, pb}
		}
	}

	for _, sa := range aSegs {
		segEnvA := geom.EnvelopeOfCoords(sa[0], sa[1])
		for _, sb := range bSegs {
			if best < math.Inf(1) &&
				segEnvA.Distance(geom.EnvelopeOfCoords(sb[0], sb[1])) >= best {
				continue
			}
			d := DistanceSegmentToSegment(sa[0], sa[1], sb[0], sb[1])
			pa, pb := nearestOnSegments(sa, sb)
			update(d, pa, pb)
			if best == 0 {
				return 0, bestPair, nil
			}
		}
		for _, pb := range bPts {
			d := DistancePointToSegment(pb, sa[0], sa[1])
			update(d, closestOnSegment(pb, sa[0], sa[1]), pb)
		}
	}
	for _, pa := range aPts {
		for _, sb := range bSegs {
			d := DistancePointToSegment(pa, sb[0], sb[1])
			update(d, pa, closestOnSegment(pa, sb[0], sb[1]))
		}
		for _, pb := range bPts {
			update(pa.Distance(pb), pa, pb)
		}
	}
	return best, bestPair, nil
}

// anyCoordInArea returns a coordinate of g lying inside area, if any.
func anyCoordInArea(g, area *geom.Geometry) (geom.Coordinate, bool) {
	if !g.Envelope().Intersects(area.Envelope()) {
		return geom.Coordinate{}, false
	}
	for _, c := range g.Coordinates() {
		if locateInAreas(c, area) != LocExterior {
			return c, true
		}
	}
	return geom.Coordinate{}, false
}

// distanceFacets decomposes a geometry into isolated points and segments.
func distanceFacets(g *geom.Geometry) ([]geom.Coordinate, [][2]geom.Coordinate) {
	var pts []geom.Coordinate
	var segs [][2]geom.Coordinate
	var walk func(g *geom.Geometry)
	walk = func(g *geom.Geometry) {
		switch g.Kind() {
		case geom.KindPoint:
			if !g.IsEmpty() {
				pts = append(pts, g.Sequence().Coord(0))
			}
		case geom.KindLineString, geom.KindLinearRing:
			seq := g.Sequence()
			for i := 1; i < seq.Len(); i++ {
				segs = append(segs, [2]geom.Coordinate{seq.Coord(i - 1), seq.Coord(i)})
			}
		case geom.KindPolygon:
			if !g.IsEmpty() {
				walk(g.ExteriorRing())
				for i := 0; i < g.NumInteriorRings(); i++ {
					walk(g.InteriorRingN(i))
				}
			}
		default:
			for i := 0; i < g.NumGeometries(); i++ {
				walk(g.GeometryN(i))
			}
		}
	}
	walk(g)
	return pts, segs
}

// closestOnSegment returns the point of segment (a, b) closest to p.
func closestOnSegment(p, a, b geom.Coordinate) geom.Coordinate {
	if a.Equals2D(b) {
		return a
	}
	lenSq := (b.X-a.X)*(b.X-a.X) + (b.Y-a.Y)*(b.Y-a.Y)
	t := ((p.X-a.X)*(b.X-a.X) + (p.Y-a.Y)*(b.Y-a.Y)) / lenSq
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return geom.Coord(a.X+t*(b.X-a.X), a.Y+t*(b.Y-a.Y))
}

// nearestOnSegments returns the closest pair of points of two segments.
func nearestOnSegments(sa, sb [2]geom.Coordinate) (geom.Coordinate, geom.Coordinate) {
	if res := SegmentIntersection(sa[0], sa[1], sb[0], sb[1]); res.Kind != NoIntersection {
		return res.Pt[0], res.Pt[0]
	}
	bestA, bestB := sa[0], closestOnSegment(sa[0], sb[0], sb[1])
	best := bestA.Distance(bestB)
	try := func(pa, pb geom.Coordinate) {
		if d := pa.Distance(pb); d < best {
			best, bestA, bestB = d, pa, pb
		}
	}
	try(sa[1], closestOnSegment(sa[1], sb[0], sb[1]))
	try(closestOnSegment(sb[0], sa[0], sa[1]), sb[0])
	try(closestOnSegment(sb[1], sa[0], sa[1]), sb[1])
	return bestA, bestB
}

// HausdorffDistance returns the discrete Hausdorff distance between the
// geometries: the maximum over the vertices of each geometry of the
// distance to the other geometry.
func HausdorffDistance(a, b *geom.Geometry) (float64, error) {
	if a == nil || b == nil {
		return 0, &geom.ArgumentError{Msg: "nil geometry"}
	}
	if a.IsEmpty() || b.IsEmpty() {
		return 0, &geom.EmptyGeometryError{Op: "HausdorffDistance"}
	}
	d1 := directedHausdorff(a, b)
	d2 := directedHausdorff(b, a)
	return math.Max(d1, d2), nil
}

func directedHausdorff(a, b *geom.Geometry) float64 {
	bPts, bSegs := distanceFacets(b)
	maxDist := 0.0
	for _, c := range a.Coordinates() {
		minDist := math.Inf(1)
		for _, s := range bSegs {
			if d := DistancePointToSegment(c, s[0], s[1]); d < minDist {
				minDist = d
			}
		}
		for _, p := range bPts {
			if d := c.Distance(p); d < minDist {
				minDist = d
			}
		}
		if minDist > maxDist {
			maxDist = minDist
		}
	}
	return maxDist
}
