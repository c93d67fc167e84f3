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

// DirectedEdge is one of the two directed traversals of an Edge. It carries
// its own label (flipped for the reverse direction), its twin, and the next
// edge in the ring being assembled.
type DirectedEdge struct {
	EdgeEnd
	forward     bool
	inResult    bool
	visited     bool
	sym         *DirectedEdge
	next        *DirectedEdge
	nextMin     *DirectedEdge
	ring        *edgeRing
	minRing     *edgeRing
}

func newDirectedEdge(edge *Edge, forward bool) *DirectedEdge {
	de := &DirectedEdge{forward: forward}
	de.edge = edge
	if forward {
		de.init(edge.pts[0], edge.pts[1])
	} else {
		n := len(edge.pts)
		de.init(edge.pts[n-1], edge.pts[n-2])
	}
	de.label = copyLabel(edge.label)
	if !forward {
		de.label.flip()
	}
	return de
}

// isLineEdge reports whether the edge contributes a line to the result:
// it is a line for some input and exterior (or unlabelled) for every area.
func (de *DirectedEdge) isLineEdge() bool {
	isLine := de.label.isLineFor(0) || de.label.isLineFor(1)
	isExteriorIfArea0 := !de.label.isAreaFor(0) ||
		de.label.allPositionsEqual(0, LocExterior)
	isExteriorIfArea1 := !de.label.isAreaFor(1) ||
		de.label.allPositionsEqual(1, LocExterior)
	return isLine && isExteriorIfArea0 && isExteriorIfArea1
}

// isInteriorAreaEdge reports whether the edge lies in the interior of every
// input area: both sides interior for each input with an area label.
func (de *DirectedEdge) isInteriorAreaEdge() bool {
	isInteriorAreaEdge := true
	for geomIndex := 0; geomIndex < 2; geomIndex++ {
		if !(de.label.isAreaFor(geomIndex) &&
			de.label.Location(geomIndex, PosLeft) == LocInterior &&
			de.label.Location(geomIndex, PosRight) == LocInterior) {
			isInteriorAreaEdge = false
		}
	}
	return isInteriorAreaEdge
}

// setVisitedEdge marks both traversals of the underlying edge visited.
func (de *DirectedEdge) setVisitedEdge(visited bool) {
	de.visited = visited
	de.sym.visited = visited
}

// directedEdgeStar is the star of directed edges around an overlay node.
type directedEdgeStar struct {
	edgeEndStar
	label              *Label
	resultAreaEdgeList []*DirectedEdge
}

func newDirectedEdgeStar() *directedEdgeStar {
	return &directedEdgeStar{edgeEndStar: *newEdgeEndStar()}
}

func (s *directedEdgeStar) dirEdges() []*DirectedEdge {
	out := make([]*DirectedEdge, len(s.list))
	for i, e := range s.list {
		out[i] = e.(*DirectedEdge)
	}
	return out
}

// computeLabelling labels the star's edges, then derives the overall node
// label: Interior for an input if any incident edge is in the input's
// interior or boundary.
func (s *directedEdgeStar) computeLabelling(gg *[2]*geometryGraph, rule BoundaryNodeRule) error {
	if err := s.edgeEndStar.computeLabelling(gg, rule); err != nil {
		return err
	}
	s.label = newLineLabel(LocNone)
	for _, e := range s.list {
		eLabel := e.end().edge.label
		for i := 0; i < 2; i++ {
			eLoc := eLabel.On(i)
			if eLoc == LocInterior || eLoc == LocBoundary {
				s.label.setOn(i, LocInterior)
			}
		}
	}
	return nil
}

// mergeSymLabels merges each directed edge's label with its twin's.
func (s *directedEdgeStar) mergeSymLabels() {
	for _, de := range s.dirEdges() {
		de.label.merge(de.sym.label)
	}
}

// updateLabelling fills incomplete edge labels from the node label.
func (s *directedEdgeStar) updateLabelling(nodeLabel *Label) {
	for _, de := range s.dirEdges() {
		de.label.setAllLocationsIfNull(0, nodeLabel.On(0))
		de.label.setAllLocationsIfNull(1, nodeLabel.On(1))
	}
}

func (s *directedEdgeStar) getResultAreaEdges() []*DirectedEdge {
	if s.resultAreaEdgeList != nil {
		return s.resultAreaEdgeList
	}
	s.resultAreaEdgeList = []*DirectedEdge{}
	for _, de := range s.dirEdges() {
		if de.inResult || de.sym.inResult {
			s.resultAreaEdgeList = append(s.resultAreaEdgeList, de)
		}
	}
	return s.resultAreaEdgeList
}

func (s *directedEdgeStar) outgoingDegree(er *edgeRing) int {
	degree := 0
	for _, de := range s.dirEdges() {
		if de.ring == er {
			degree++
		}
	}
	return degree
}

const (
	scanningForIncoming = 1
	linkingToOutgoing   = 2
)

// linkResultDirectedEdges links the edges selected for the result around
// this node: the next edge after an incoming directed edge is the next
// outgoing selected edge in CCW order. Rings built this way have their
// face on the right-hand side.
func (s *directedEdgeStar) linkResultDirectedEdges() error {
	edges := s.getResultAreaEdges()
	var firstOut, incoming *DirectedEdge
	state := scanningForIncoming
	for _, nextOut := range edges {
		nextIn := nextOut.sym
		if !nextOut.label.isArea() {
			continue
		}
		if firstOut == nil && nextOut.inResult {
			firstOut = nextOut
		}
		switch state {
		case scanningForIncoming:
			if !nextIn.inResult {
				continue
			}
			incoming = nextIn
			state = linkingToOutgoing
		case linkingToOutgoing:
			if !nextOut.inResult {
				continue
			}
			incoming.next = nextOut
			state = scanningForIncoming
		}
	}
	if state == linkingToOutgoing {
		if firstOut == nil {
			pt := s.coordinate()
			return &geom.TopologyError{Msg: "no outgoing directed edge found", Pt: &pt}
		}
		incoming.next = firstOut
	}
	return nil
}

// linkMinimalDirectedEdges links edges of one maximal ring into minimal
// rings, traversing the star in CW order.
func (s *directedEdgeStar) linkMinimalDirectedEdges(er *edgeRing) error {
	var firstOut, incoming *DirectedEdge
	state := scanningForIncoming
	edges := s.getResultAreaEdges()
	for i := len(edges) - 1; i >= 0; i-- {
		nextOut := edges[i]
		nextIn := nextOut.sym
		if firstOut == nil && nextOut.ring == er {
			firstOut = nextOut
		}
		switch state {
		case scanningForIncoming:
			if nextIn.ring != er {
				continue
			}
			incoming = nextIn
			state = linkingToOutgoing
		case linkingToOutgoing:
			if nextOut.ring != er {
				continue
			}
			incoming.nextMin = nextOut
			state = scanningForIncoming
		}
	}
	if state == linkingToOutgoing {
		if firstOut == nil || firstOut.ring != er {
			pt := s.coordinate()
			return &geom.TopologyError{Msg: "unable to link last incoming directed edge", Pt: &pt}
		}
		incoming.nextMin = firstOut
	}
	return nil
}

// findCoveredLineEdges marks the line edges at this node that lie in the
// interior of the result area, walking the star while tracking whether the
// current wedge is inside or outside the result.
func (s *directedEdgeStar) findCoveredLineEdges() {
	startLoc := LocNone
	for _, nextOut := range s.dirEdges() {
		nextIn := nextOut.sym
		if !nextOut.isLineEdge() {
			if nextOut.inResult {
				startLoc = LocInterior
				break
			}
			if nextIn.inResult {
				startLoc = LocExterior
				break
			}
		}
	}
	// no area edges found: coverage cannot be determined here
	if startLoc == LocNone {
		return
	}
	currLoc := startLoc
	for _, nextOut := range s.dirEdges() {
		nextIn := nextOut.sym
		if nextOut.isLineEdge() {
			nextOut.edge.setCovered(currLoc == LocInterior)
		} else {
			if nextOut.inResult {
				currLoc = LocExterior
			}
			if nextIn.inResult {
				currLoc = LocInterior
			}
		}
	}
}

func (s *directedEdgeStar) coordinate() geom.Coordinate {
	if len(s.list) == 0 {
		return geom.Coordinate{}
	}
	return s.list[0].end().p0
}
