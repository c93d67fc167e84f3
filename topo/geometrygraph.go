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

import "github.com/blevesearch/planar/geom"

// geometryGraph is the topology graph of a single input geometry: its
// edges with initial labels derived from component type (shell, hole,
// line, point), and its nodes, including the boundary nodes given by the
// boundary node rule.
type geometryGraph struct {
	parent   *geom.Geometry
	argIndex int
	rule     BoundaryNodeRule

	edges []*Edge
	nodes *nodeMap

	// the boundary determination rule is only relevant for collections of
	// lines, where components may share endpoints
	useBoundaryDeterminationRule bool
	boundaryNodeCache            []*Node
}

func newGeometryGraph(argIndex int, parent *geom.Geometry, rule BoundaryNodeRule) (*geometryGraph, error) {
	if rule == nil {
		rule = Mod2BoundaryNodeRule{}
	}
	gg := &geometryGraph{
		parent:   parent,
		argIndex: argIndex,
		rule:     rule,
		nodes:    newNodeMap(nil),
	}
	if parent != nil && !parent.IsEmpty() {
		if err := gg.add(parent); err != nil {
			return nil, err
		}
	}
	return gg, nil
}

func (gg *geometryGraph) add(g *geom.Geometry) error {
	if g.IsEmpty() {
		return nil
	}
	switch g.Kind() {
	case geom.KindPoint:
		gg.addPoint(g.Sequence().Coord(0))
	case geom.KindLineString, geom.KindLinearRing:
		return gg.addLineString(g)
	case geom.KindPolygon:
		return gg.addPolygon(g)
	case geom.KindMultiPoint, geom.KindMultiLineString, geom.KindGeometryCollection:
		gg.useBoundaryDeterminationRule = true
		fallthrough
	case geom.KindMultiPolygon:
		for i := 0; i < g.NumGeometries(); i++ {
			if err := gg.add(g.GeometryN(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// addPoint contributes a node labelled Interior for this input.
func (gg *geometryGraph) addPoint(pt geom.Coordinate) {
	gg.insertPoint(pt, LocInterior)
}

func (gg *geometryGraph) addLineString(line *geom.Geometry) error {
	coords := removeRepeatedCoords(line.Sequence().Coords())
	if len(coords) < 2 {
		pt := coords[0]
		return &geom.TopologyError{Msg: "too few distinct points in line", Pt: &pt}
	}
	// line edges have no locations for their left and right sides
	e := newEdge(coords, newLineLabelFor(gg.argIndex, LocInterior))
	gg.edges = append(gg.edges, e)
	// add both endpoints as candidate boundary points, even for a closed
	// line, so a pre-existing boundary node stays one
	gg.insertBoundaryPoint(coords[0])
	gg.insertBoundaryPoint(coords[len(coords)-1])
	return nil
}

func (gg *geometryGraph) addPolygon(poly *geom.Geometry) error {
	if err := gg.addPolygonRing(poly.ExteriorRing(), LocExterior, LocInterior); err != nil {
		return err
	}
	for i := 0; i < poly.NumInteriorRings(); i++ {
		// holes are labelled opposite to the shell: the polygon interior
		// lies on their outside
		if err := gg.addPolygonRing(poly.InteriorRingN(i), LocInterior, LocExterior); err != nil {
			return err
		}
	}
	return nil
}

// addPolygonRing adds a ring edge. The cwLeft and cwRight locations assume
// a clockwise ring and are swapped for counter-clockwise input, so shells
// are normalised to clockwise internally regardless of caller orientation.
func (gg *geometryGraph) addPolygonRing(ring *geom.Geometry, cwLeft, cwRight Location) error {
	if ring.IsEmpty() {
		return nil
	}
	coords := removeRepeatedCoords(ring.Sequence().Coords())
	if len(coords) < 4 {
		pt := coords[0]
		return &geom.TopologyError{Msg: "too few distinct points in ring", Pt: &pt}
	}
	left, right := cwLeft, cwRight
	if IsCCW(coords) {
		left, right = cwRight, cwLeft
	}
	e := newEdge(coords, newAreaLabelFor(gg.argIndex, LocBoundary, left, right))
	gg.edges = append(gg.edges, e)
	// the ring start is a node on the boundary
	gg.insertPoint(coords[0], LocBoundary)
	return nil
}

func (gg *geometryGraph) insertPoint(coord geom.Coordinate, onLocation Location) {
	n := gg.nodes.addNode(coord)
	if n.label == nil {
		n.label = newLineLabelFor(gg.argIndex, onLocation)
	} else {
		n.label.setOn(gg.argIndex, onLocation)
	}
}

// insertBoundaryPoint adds a line endpoint using the boundary node rule:
// the point's boundary status depends on how many times it has occurred as
// an endpoint so far.
func (gg *geometryGraph) insertBoundaryPoint(coord geom.Coordinate) {
	n := gg.nodes.addNode(coord)
	boundaryCount := 1
	if n.label != nil && n.label.On(gg.argIndex) == LocBoundary {
		boundaryCount++
	}
	newLoc := determineBoundary(gg.rule, boundaryCount)
	if n.label == nil {
		n.label = newLineLabelFor(gg.argIndex, newLoc)
	} else {
		n.label.setOn(gg.argIndex, newLoc)
	}
}

// boundaryNodes returns this input's boundary nodes.
func (gg *geometryGraph) boundaryNodes() []*Node {
	if gg.boundaryNodeCache == nil {
		gg.boundaryNodeCache = gg.nodes.boundaryNodes(gg.argIndex)
	}
	return gg.boundaryNodeCache
}

// computeSelfNodes nodes the edges of this geometry with themselves. Ring
// edges of polygonal input are assumed valid and are not tested against
// themselves unless testRings is set.
func (gg *geometryGraph) computeSelfNodes(li *lineIntersector, testRings bool) *segmentIntersector {
	si := newSegmentIntersector(li, true, false)
	isRings := gg.parent != nil &&
		(gg.parent.Kind() == geom.KindLinearRing || gg.parent.IsPolygonal())
	testSameEdge := testRings || !isRings
	computeSelfIntersections(gg.edges, si, testSameEdge)
	gg.addSelfIntersectionNodes()
	return si
}

// computeEdgeIntersections nodes this geometry's edges with another's.
func (gg *geometryGraph) computeEdgeIntersections(other *geometryGraph,
	li *lineIntersector, includeProper bool) *segmentIntersector {
	si := newSegmentIntersector(li, includeProper, true)
	si.setBoundaryNodes(gg.boundaryNodes(), other.boundaryNodes())
	computeMutualIntersections(gg.edges, other.edges, si)
	return si
}

// addSelfIntersectionNodes promotes the self-intersection points found on
// the edges into graph nodes.
func (gg *geometryGraph) addSelfIntersectionNodes() {
	for _, e := range gg.edges {
		eLoc := e.label.On(gg.argIndex)
		for _, ei := range e.eiList.list {
			gg.addSelfIntersectionNode(ei.coord, eLoc)
		}
	}
}

func (gg *geometryGraph) addSelfIntersectionNode(coord geom.Coordinate, loc Location) {
	// an existing boundary node keeps its status
	if n := gg.nodes.find(coord); n != nil &&
		n.label != nil && n.label.On(gg.argIndex) == LocBoundary {
		return
	}
	if loc == LocBoundary && gg.useBoundaryDeterminationRule {
		gg.insertBoundaryPoint(coord)
	} else {
		gg.insertPoint(coord, loc)
	}
}

// computeSplitEdges splits every edge at its intersection points and
// appends the pieces to edgeList.
func (gg *geometryGraph) computeSplitEdges(edgeList *[]*Edge) {
	for _, e := range gg.edges {
		e.eiList.addSplitEdges(edgeList)
	}
}

// removeRepeatedCoords drops consecutive 2D-equal coordinates.
func removeRepeatedCoords(coords []geom.Coordinate) []geom.Coordinate {
	if len(coords) < 2 {
		return coords
	}
	out := coords[:1]
	for _, c := range coords[1:] {
		if !c.Equals2D(out[len(out)-1]) {
			out = append(out, c)
		}
	}
	return out
}
