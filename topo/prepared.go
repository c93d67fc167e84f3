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
	"sync/atomic"

	"github.com/dhconnelly/rtreego"

	"github.com/blevesearch/planar/geom"
)

// PreparedGeometry wraps a reference geometry with precomputed indexes: a
// segment index over its edges and, for polygonal geometries, an indexed
// point-in-area locator. Repeated predicate queries against the same
// reference geometry short-circuit through the indexes and fall back to
// the generic relate engine only when inconclusive; results are identical
// to the non-prepared calls.
//
// A PreparedGeometry may be queried concurrently. The indexes build
// lazily on first use behind an atomic pointer, so duplicate builds are
// discarded rather than shared partially constructed.
type PreparedGeometry struct {
	g   *geom.Geometry
	idx atomic.Pointer[preparedIndexes]
}

type preparedIndexes struct {
	segTree *rtreego.Rtree
	locator *areaLocator
}

// preparedSegment is an edge segment of the reference geometry in the
// segment index.
type preparedSegment struct {
	p0, p1 geom.Coordinate
}

// Bounds implements rtreego.Spatial.
func (s preparedSegment) Bounds() rtreego.Rect {
	return rectFromEnvelope(geom.EnvelopeOfCoords(s.p0, s.p1))
}

// Prepare wraps a geometry for repeated predicate evaluation.
func Prepare(g *geom.Geometry) (*PreparedGeometry, error) {
	if g == nil {
		return nil, &geom.ArgumentError{Msg: "nil geometry"}
	}
	return &PreparedGeometry{g: g}, nil
}

// Geometry returns the wrapped reference geometry.
func (pg *PreparedGeometry) Geometry() *geom.Geometry { return pg.g }

// indexes returns the prepared indexes, building them on first use.
func (pg *PreparedGeometry) indexes() *preparedIndexes {
	if idx := pg.idx.Load(); idx != nil {
		return idx
	}
	idx := &preparedIndexes{segTree: rtreego.NewTree(2, 4, 16)}
	for _, seg := range collectSegments(pg.g) {
		idx.segTree.Insert(seg)
	}
	// the parity-based locator answers for purely polygonal geometries;
	// mixed collections fall back to the generic locator
	if pg.g.IsPolygonal() {
		idx.locator = newAreaLocator(pg.g)
	}
	// a concurrent builder may have won the race; either index is valid
	pg.idx.CompareAndSwap(nil, idx)
	return pg.idx.Load()
}

func collectSegments(g *geom.Geometry) []preparedSegment {
	var segs []preparedSegment
	var addSeq func(seq *geom.Sequence)
	addSeq = func(seq *geom.Sequence) {
		for i := 1; i < seq.Len(); i++ {
			segs = append(segs, preparedSegment{p0: seq.Coord(i - 1), p1: seq.Coord(i)})
		}
	}
	var walk func(g *geom.Geometry)
	walk = func(g *geom.Geometry) {
		switch g.Kind() {
		case geom.KindLineString, geom.KindLinearRing:
			addSeq(g.Sequence())
		case geom.KindPolygon:
			if !g.IsEmpty() {
				addSeq(g.ExteriorRing().Sequence())
				for i := 0; i < g.NumInteriorRings(); i++ {
					addSeq(g.InteriorRingN(i).Sequence())
				}
			}
		case geom.KindMultiLineString, geom.KindMultiPolygon, geom.KindGeometryCollection:
			for i := 0; i < g.NumGeometries(); i++ {
				walk(g.GeometryN(i))
			}
		}
	}
	walk(g)
	return segs
}

// locate classifies a point against the reference geometry's area through
// the indexed locator.
func (pg *PreparedGeometry) locate(p geom.Coordinate) Location {
	idx := pg.indexes()
	if idx.locator != nil {
		return idx.locator.locate(p)
	}
	return Locate(p, pg.g)
}

// anySegmentIntersection reports whether any segment of other intersects
// a segment of the reference geometry, via the segment index.
func (pg *PreparedGeometry) anySegmentIntersection(other *geom.Geometry) bool {
	idx := pg.indexes()
	for _, seg := range collectSegments(other) {
		env := geom.EnvelopeOfCoords(seg.p0, seg.p1)
		for _, item := range idx.segTree.SearchIntersect(rectFromEnvelope(env)) {
			ps := item.(preparedSegment)
			if SegmentIntersection(seg.p0, seg.p1, ps.p0, ps.p1).Kind != NoIntersection {
				return true
			}
		}
	}
	return false
}

// Intersects reports whether the reference geometry intersects other.
func (pg *PreparedGeometry) Intersects(other *geom.Geometry) (bool, error) {
	if other == nil {
		return false, &geom.ArgumentError{Msg: "nil geometry"}
	}
	if pg.g.IsEmpty() || other.IsEmpty() {
		return false, nil
	}
	if !pg.g.Envelope().Intersects(other.Envelope()) {
		return false, nil
	}
	// puntal inputs are pure locate queries
	if other.IsPuntal() {
		for _, c := range other.Coordinates() {
			if pg.locate(c) != LocExterior {
				return true, nil
			}
		}
		return false, nil
	}
	if pg.g.IsPuntal() {
		for _, c := range pg.g.Coordinates() {
			if Locate(c, other) != LocExterior {
				return true, nil
			}
		}
		return false, nil
	}
	// any edge crossing decides
	if pg.anySegmentIntersection(other) {
		return true, nil
	}
	// no crossings: each component of either geometry lies wholly inside
	// or outside the other, so one representative vertex per component
	// decides containment
	if pg.g.Dimension() == 2 {
		for _, c := range representativeCoords(other) {
			if pg.locate(c) != LocExterior {
				return true, nil
			}
		}
	}
	if other.Dimension() == 2 {
		for _, c := range representativeCoords(pg.g) {
			if Locate(c, other) != LocExterior {
				return true, nil
			}
		}
	}
	return false, nil
}

// representativeCoords returns one vertex per atomic component.
func representativeCoords(g *geom.Geometry) []geom.Coordinate {
	var out []geom.Coordinate
	var walk func(g *geom.Geometry)
	walk = func(g *geom.Geometry) {
		switch g.Kind() {
		case geom.KindPoint, geom.KindLineString, geom.KindLinearRing, geom.KindPolygon:
			if c, ok := g.Coordinate(); ok {
				out = append(out, c)
			}
		default:
			for i := 0; i < g.NumGeometries(); i++ {
				walk(g.GeometryN(i))
			}
		}
	}
	walk(g)
	return out
}

// ContainsProperly reports whether every point of other lies in the
// interior of the reference geometry.
func (pg *PreparedGeometry) ContainsProperly(other *geom.Geometry) (bool, error) {
	if other == nil {
		return false, &geom.ArgumentError{Msg: "nil geometry"}
	}
	if pg.g.IsEmpty() || other.IsEmpty() || pg.g.Dimension() != 2 {
		return false, nil
	}
	if !pg.g.Envelope().Contains(other.Envelope()) {
		return false, nil
	}
	// boundary contact of any kind disqualifies
	if pg.anySegmentIntersection(other) {
		return false, nil
	}
	for _, c := range representativeCoords(other) {
		if pg.locate(c) != LocInterior {
			return false, nil
		}
	}
	return true, nil
}

// Contains reports whether the reference geometry contains other.
func (pg *PreparedGeometry) Contains(other *geom.Geometry) (bool, error) {
	if other == nil {
		return false, &geom.ArgumentError{Msg: "nil geometry"}
	}
	if pg.g.IsEmpty() || other.IsEmpty() {
		return false, nil
	}
	if !pg.g.Envelope().Contains(other.Envelope()) {
		return false, nil
	}
	// proper containment is a sufficient short-circuit
	if ok, _ := pg.ContainsProperly(other); ok {
		return true, nil
	}
	return Contains(pg.g, other)
}

// Covers reports whether every point of other lies in the reference
// geometry.
func (pg *PreparedGeometry) Covers(other *geom.Geometry) (bool, error) {
	if other == nil {
		return false, &geom.ArgumentError{Msg: "nil geometry"}
	}
	if pg.g.IsEmpty() || other.IsEmpty() {
		return false, nil
	}
	if !pg.g.Envelope().Contains(other.Envelope()) {
		return false, nil
	}
	if ok, _ := pg.ContainsProperly(other); ok {
		return true, nil
	}
	return Covers(pg.g, other)
}

// Distance returns the distance between the reference geometry and other.
func (pg *PreparedGeometry) Distance(other *geom.Geometry) (float64, error) {
	return Distance(pg.g, other)
}

// NearestPoints returns a closest pair of points between the reference
// geometry and other.
func (pg *PreparedGeometry) NearestPoints(other *geom.Geometry) ([2]geom.Coordinate, error) {
	return NearestPoints(pg.g, other)
}
