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

	"github.com/golang/geo/r1"

	"github.com/blevesearch/planar/geom"
)

// Locate classifies a point against an arbitrary geometry, combining
// component locations with the mod-2 rule for shared boundaries.
func Locate(p geom.Coordinate, g *geom.Geometry) Location {
	if g == nil || g.IsEmpty() {
		return LocExterior
	}
	switch g.Kind() {
	case geom.KindPoint, geom.KindLineString, geom.KindLinearRing, geom.KindPolygon:
		return locateAtomic(p, g)
	}
	isIn := false
	numBoundaries := 0
	var walk func(g *geom.Geometry)
	walk = func(g *geom.Geometry) {
		for i := 0; i < g.NumGeometries(); i++ {
			c := g.GeometryN(i)
			if c.Kind() == geom.KindGeometryCollection ||
				c.Kind() == geom.KindMultiPoint ||
				c.Kind() == geom.KindMultiLineString ||
				c.Kind() == geom.KindMultiPolygon {
				walk(c)
				continue
			}
			switch locateAtomic(p, c) {
			case LocInterior:
				isIn = true
			case LocBoundary:
				numBoundaries++
			}
		}
	}
	walk(g)
	if numBoundaries%2 == 1 {
		return LocBoundary
	}
	if numBoundaries > 0 || isIn {
		return LocInterior
	}
	return LocExterior
}

func locateAtomic(p geom.Coordinate, g *geom.Geometry) Location {
	if g.IsEmpty() {
		return LocExterior
	}
	switch g.Kind() {
	case geom.KindPoint:
		if g.Sequence().Coord(0).Equals2D(p) {
			return LocInterior
		}
		return LocExterior
	case geom.KindLineString, geom.KindLinearRing:
		return locateOnLine(p, g)
	case geom.KindPolygon:
		return locateInPolygon(p, g)
	}
	return LocExterior
}

func locateOnLine(p geom.Coordinate, line *geom.Geometry) Location {
	if !line.Envelope().ContainsCoord(p) {
		return LocExterior
	}
	seq := line.Sequence()
	if !line.IsClosed() {
		if p.Equals2D(seq.Coord(0)) || p.Equals2D(seq.Coord(seq.Len()-1)) {
			return LocBoundary
		}
	}
	var li lineIntersector
	for i := 1; i < seq.Len(); i++ {
		li.computePointOnSegment(p, seq.Coord(i-1), seq.Coord(i))
		if li.hasIntersection() {
			return LocInterior
		}
	}
	return LocExterior
}

func locateInPolygon(p geom.Coordinate, poly *geom.Geometry) Location {
	if poly.IsEmpty() {
		return LocExterior
	}
	shell := poly.ExteriorRing()
	shellLoc := locateInRingGeometry(p, shell)
	if shellLoc == LocExterior {
		return LocExterior
	}
	if shellLoc == LocBoundary {
		return LocBoundary
	}
	for i := 0; i < poly.NumInteriorRings(); i++ {
		switch locateInRingGeometry(p, poly.InteriorRingN(i)) {
		case LocInterior:
			return LocExterior
		case LocBoundary:
			return LocBoundary
		}
	}
	return LocInterior
}

func locateInRingGeometry(p geom.Coordinate, ring *geom.Geometry) Location {
	if !ring.Envelope().ContainsCoord(p) {
		return LocExterior
	}
	return LocatePointInRing(p, ring.Sequence().Coords())
}

// locateInAreas classifies a point against the polygonal components of a
// geometry only; all other components are ignored. It is used to resolve
// unlabelled graph edges, where only area containment matters.
func locateInAreas(p geom.Coordinate, g *geom.Geometry) Location {
	if g == nil || g.IsEmpty() {
		return LocExterior
	}
	switch g.Kind() {
	case geom.KindPolygon:
		return locateInPolygon(p, g)
	case geom.KindMultiPolygon, geom.KindGeometryCollection,
		geom.KindMultiPoint, geom.KindMultiLineString:
		for i := 0; i < g.NumGeometries(); i++ {
			if loc := locateInAreas(p, g.GeometryN(i)); loc != LocExterior {
				return loc
			}
		}
	}
	return LocExterior
}

// areaLocator answers repeated point-in-area queries against one polygonal
// geometry in O(log n), from a static interval index over the Y extents of
// the boundary segments.
type areaLocator struct {
	root *intervalNode
}

type locatorSegment struct {
	p0, p1 geom.Coordinate
	y      r1.Interval
}

// intervalNode is a node of a static centred interval tree: segments whose
// Y interval contains the centre stay at the node, the rest descend.
type intervalNode struct {
	center      float64
	overlapping []locatorSegment
	left, right *intervalNode
}

func newAreaLocator(g *geom.Geometry) *areaLocator {
	var segs []locatorSegment
	var addRing func(ring *geom.Geometry)
	addRing = func(ring *geom.Geometry) {
		seq := ring.Sequence()
		for i := 1; i < seq.Len(); i++ {
			p0, p1 := seq.Coord(i-1), seq.Coord(i)
			y := r1.Interval{Lo: p0.Y, Hi: p1.Y}
			if y.Lo > y.Hi {
				y.Lo, y.Hi = y.Hi, y.Lo
			}
			segs = append(segs, locatorSegment{p0: p0, p1: p1, y: y})
		}
	}
	var walk func(g *geom.Geometry)
	walk = func(g *geom.Geometry) {
		switch g.Kind() {
		case geom.KindPolygon:
			if !g.IsEmpty() {
				addRing(g.ExteriorRing())
				for i := 0; i < g.NumInteriorRings(); i++ {
					addRing(g.InteriorRingN(i))
				}
			}
		case geom.KindMultiPolygon, geom.KindGeometryCollection:
			for i := 0; i < g.NumGeometries(); i++ {
				walk(g.GeometryN(i))
			}
		}
	}
	walk(g)
	return &areaLocator{root: buildIntervalNode(segs)}
}

func buildIntervalNode(segs []locatorSegment) *intervalNode {
	if len(segs) == 0 {
		return nil
	}
	// median of interval centres keeps the tree balanced
	centers := make([]float64, len(segs))
	for i, s := range segs {
		centers[i] = s.y.Center()
	}
	sort.Float64s(centers)
	center := centers[len(centers)/2]

	node := &intervalNode{center: center}
	var left, right []locatorSegment
	for _, s := range segs {
		switch {
		case s.y.Hi < center:
			left = append(left, s)
		case s.y.Lo > center:
			right = append(right, s)
		default:
			node.overlapping = append(node.overlapping, s)
		}
	}
	// a degenerate split keeps everything at this node
	if len(node.overlapping) == 0 && (len(left) == 0 || len(right) == 0) {
		node.overlapping = append(left, right...)
		return node
	}
	node.left = buildIntervalNode(left)
	node.right = buildIntervalNode(right)
	return node
}

// locate classifies the point by counting ray crossings against the
// segments whose Y interval contains the query ordinate.
func (al *areaLocator) locate(p geom.Coordinate) Location {
	rc := rayCrossingCounter{p: p}
	al.root.visit(p.Y, func(s locatorSegment) bool {
		rc.countSegment(s.p1, s.p0)
		return !rc.onSegment
	})
	return rc.location()
}

func (n *intervalNode) visit(y float64, fn func(locatorSegment) bool) bool {
	if n == nil {
		return true
	}
	for _, s := range n.overlapping {
		if s.y.Contains(y) {
			if !fn(s) {
				return false
			}
		}
	}
	if y < n.center {
		return n.left.visit(y, fn)
	}
	if y > n.center {
		return n.right.visit(y, fn)
	}
	return n.left.visit(y, fn) && n.right.visit(y, fn)
}
