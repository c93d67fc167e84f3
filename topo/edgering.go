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

// edgeRing is a closed loop of directed edges forming one boundary ring of
// the overlay result. Rings traversed with their face on the right are
// shells; counter-clockwise rings are holes and record their enclosing
// shell.
type edgeRing struct {
	startDe *DirectedEdge
	edges   []*DirectedEdge
	pts     []geom.Coordinate
	label   *Label
	hole    bool
	shell   *edgeRing
	holes   []*edgeRing
	env     geom.Envelope

	// maximal rings follow next pointers; minimal rings follow nextMin
	minimal bool
}

func newEdgeRing(start *DirectedEdge, minimal bool) (*edgeRing, error) {
	er := &edgeRing{
		label:   newLineLabel(LocNone),
		minimal: minimal,
	}
	if err := er.computePoints(start); err != nil {
		return nil, err
	}
	er.computeRing()
	return er, nil
}

func (er *edgeRing) next(de *DirectedEdge) *DirectedEdge {
	if er.minimal {
		return de.nextMin
	}
	return de.next
}

func (er *edgeRing) setEdgeRing(de *DirectedEdge) {
	if er.minimal {
		de.minRing = er
	} else {
		de.ring = er
	}
}

func (er *edgeRing) computePoints(start *DirectedEdge) error {
	er.startDe = start
	de := start
	isFirstEdge := true
	for {
		if de == nil {
			return &geom.TopologyError{Msg: "found null directed edge during ring building"}
		}
		if de.ring == er && !er.minimal || er.minimal && de.minRing == er {
			pt := de.p0
			return &geom.TopologyError{Msg: "directed edge visited twice during ring building", Pt: &pt}
		}
		er.edges = append(er.edges, de)
		er.mergeLabelFor(de.label, 0)
		er.mergeLabelFor(de.label, 1)
		er.addPoints(de.edge, de.forward, isFirstEdge)
		isFirstEdge = false
		er.setEdgeRing(de)
		de = er.next(de)
		if de == start {
			break
		}
	}
	return nil
}

func (er *edgeRing) computeRing() {
	er.hole = IsCCW(er.pts)
	er.env = geom.EnvelopeOfCoords(er.pts...)
}

// mergeLabelFor merges the On location of the right side of a directed
// edge into the ring label: the ring face is on the right of its edges.
func (er *edgeRing) mergeLabelFor(deLabel *Label, geomIndex int) {
	loc := deLabel.Location(geomIndex, PosRight)
	if loc == LocNone {
		return
	}
	if er.label.On(geomIndex) == LocNone {
		er.label.setOn(geomIndex, loc)
	}
}

func (er *edgeRing) addPoints(edge *Edge, isForward, isFirstEdge bool) {
	if isForward {
		startIndex := 1
		if isFirstEdge {
			startIndex = 0
		}
		for i := startIndex; i < len(edge.pts); i++ {
			er.pts = append(er.pts, edge.pts[i])
		}
		return
	}
	startIndex := len(edge.pts) - 2
	if isFirstEdge {
		startIndex = len(edge.pts) - 1
	}
	for i := startIndex; i >= 0; i-- {
		er.pts = append(er.pts, edge.pts[i])
	}
}

// containsPoint reports whether the point lies inside the ring area,
// holes excluded.
func (er *edgeRing) containsPoint(p geom.Coordinate) bool {
	if !er.env.ContainsCoord(p) {
		return false
	}
	if !IsPointInRing(p, er.pts) {
		return false
	}
	for _, hole := range er.holes {
		if hole.containsPointInInterior(p) {
			return false
		}
	}
	return true
}

func (er *edgeRing) containsPointInInterior(p geom.Coordinate) bool {
	return LocatePointInRing(p, er.pts) == LocInterior
}

// toPolygon builds the polygon of this shell and its assigned holes.
func (er *edgeRing) toPolygon(f *geom.Factory) (*geom.Geometry, error) {
	shellRing, err := f.LinearRing(geom.SequenceFromCoords(bestLayout(er.pts), er.pts))
	if err != nil {
		return nil, err
	}
	holeRings := make([]*geom.Geometry, len(er.holes))
	for i, hole := range er.holes {
		holeRings[i], err = f.LinearRing(geom.SequenceFromCoords(bestLayout(hole.pts), hole.pts))
		if err != nil {
			return nil, err
		}
	}
	return f.Polygon(shellRing, holeRings...)
}

// bestLayout picks the narrowest sequence layout that retains the set
// ordinates of the coordinates.
func bestLayout(pts []geom.Coordinate) geom.Layout {
	hasZ, hasM := false, false
	for _, p := range pts {
		hasZ = hasZ || p.HasZ()
		hasM = hasM || p.HasM()
	}
	switch {
	case hasZ && hasM:
		return geom.XYZM
	case hasZ:
		return geom.XYZ
	case hasM:
		return geom.XYM
	}
	return geom.XY
}

// maximal ring support

// linkDirectedEdgesForMinimalEdgeRings relinks the nodes of a maximal ring
// so it decomposes into minimal rings.
func (er *edgeRing) linkDirectedEdgesForMinimalEdgeRings() error {
	de := er.startDe
	for {
		node := de.node
		if err := node.edges.(*directedEdgeStar).linkMinimalDirectedEdges(er); err != nil {
			return err
		}
		de = de.next
		if de == er.startDe {
			return nil
		}
	}
}

// buildMinimalRings traverses the relinked edges and assembles the minimal
// rings of this maximal ring.
func (er *edgeRing) buildMinimalRings() ([]*edgeRing, error) {
	var minEdgeRings []*edgeRing
	de := er.startDe
	for {
		if de.minRing == nil {
			minEr, err := newEdgeRing(de, true)
			if err != nil {
				return nil, err
			}
			minEdgeRings = append(minEdgeRings, minEr)
		}
		de = de.next
		if de == er.startDe {
			return minEdgeRings, nil
		}
	}
}

// maxNodeDegree returns the maximum number of edges of this ring incident
// on any of its nodes; a degree above 2 means the maximal ring self-touches
// and must be decomposed.
func (er *edgeRing) maxNodeDegree() int {
	maxDegree := 0
	de := er.startDe
	for {
		node := de.node
		degree := node.edges.(*directedEdgeStar).outgoingDegree(er)
		if degree > maxDegree {
			maxDegree = degree
		}
		de = de.next
		if de == er.startDe {
			break
		}
	}
	return maxDegree * 2
}

// setInResult marks every edge of the ring (and its twin's edge) as
// included in the result.
func (er *edgeRing) setInResult() {
	de := er.startDe
	for {
		de.edge.inResult = true
		de = de.next
		if de == er.startDe {
			return
		}
	}
}
