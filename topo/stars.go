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

// edgeEndStar is the ordered set of edge ends around a node. Edge ends are
// kept sorted CCW by direction; propagating side labels around the star in
// that order labels every incident edge consistently.
type edgeEndStar struct {
	list             []graphEdgeEnd
	ptInAreaLocation [2]Location
}

func newEdgeEndStar() *edgeEndStar {
	return &edgeEndStar{ptInAreaLocation: [2]Location{LocNone, LocNone}}
}

func (s *edgeEndStar) insertEnd(e graphEdgeEnd) {
	i := sort.Search(len(s.list), func(i int) bool {
		return s.list[i].end().compareDirection(e.end()) >= 0
	})
	s.list = append(s.list, nil)
	copy(s.list[i+1:], s.list[i:])
	s.list[i] = e
}

func (s *edgeEndStar) ends() []graphEdgeEnd { return s.list }

func (s *edgeEndStar) degree() int { return len(s.list) }

// computeLabelling labels every edge end around the node for both inputs:
// explicit labels first, then side propagation, then point-in-area
// resolution for edges the inputs say nothing about.
func (s *edgeEndStar) computeLabelling(gg *[2]*geometryGraph, rule BoundaryNodeRule) error {
	for _, e := range s.list {
		e.computeLabel(rule)
	}
	if err := s.propagateSideLabels(0); err != nil {
		return err
	}
	if err := s.propagateSideLabels(1); err != nil {
		return err
	}

	// If an edge end still has no label for an input, no area edge of that
	// input is incident on this node: the location of the node point in the
	// input's area decides. Line edges labelled Boundary mark dimensional
	// collapses; the other edges of that input are then Exterior.
	var hasDimensionalCollapseEdge [2]bool
	for _, e := range s.list {
		label := e.end().label
		for geomIndex := 0; geomIndex < 2; geomIndex++ {
			if label.isLineFor(geomIndex) && label.On(geomIndex) == LocBoundary {
				hasDimensionalCollapseEdge[geomIndex] = true
			}
		}
	}
	for _, e := range s.list {
		label := e.end().label
		for geomIndex := 0; geomIndex < 2; geomIndex++ {
			if label.isAnyNull(geomIndex) {
				loc := LocNone
				if hasDimensionalCollapseEdge[geomIndex] {
					loc = LocExterior
				} else {
					loc = s.getLocation(geomIndex, e.end().p0, gg)
				}
				label.setAllLocationsIfNull(geomIndex, loc)
			}
		}
	}
	return nil
}

// getLocation locates the node point relative to the area of one input,
// computing it only once per star.
func (s *edgeEndStar) getLocation(geomIndex int, p geom.Coordinate, gg *[2]*geometryGraph) Location {
	if s.ptInAreaLocation[geomIndex] == LocNone {
		s.ptInAreaLocation[geomIndex] = locateInAreas(p, gg[geomIndex].parent)
	}
	return s.ptInAreaLocation[geomIndex]
}

// propagateSideLabels walks the star in CCW order and copies side
// locations across the wedges between area edges: the right side of each
// edge must agree with the left side of its CW predecessor.
func (s *edgeEndStar) propagateSideLabels(geomIndex int) error {
	startLoc := LocNone
	for _, e := range s.list {
		label := e.end().label
		if label.isAreaFor(geomIndex) &&
			label.Location(geomIndex, PosLeft) != LocNone {
			startLoc = label.Location(geomIndex, PosLeft)
		}
	}
	if startLoc == LocNone {
		// no labelled sides found, nothing to propagate
		return nil
	}

	currLoc := startLoc
	for _, e := range s.list {
		label := e.end().label
		if label.On(geomIndex) == LocNone {
			label.setOn(geomIndex, currLoc)
		}
		if !label.isAreaFor(geomIndex) {
			continue
		}
		leftLoc := label.Location(geomIndex, PosLeft)
		rightLoc := label.Location(geomIndex, PosRight)
		if rightLoc != LocNone {
			if rightLoc != currLoc {
				pt := e.end().p0
				return &geom.TopologyError{Msg: "side location conflict", Pt: &pt}
			}
			if leftLoc == LocNone {
				pt := e.end().p0
				return &geom.TopologyError{Msg: "single null side", Pt: &pt}
			}
			currLoc = leftLoc
		} else {
			// edge from the other input with no labelling for this one:
			// it lies wholly inside or outside, given by the current location
			label.setLocation(geomIndex, PosRight, currLoc)
			label.setLocation(geomIndex, PosLeft, currLoc)
		}
	}
	return nil
}

// isAreaLabelsConsistent verifies each area edge separates interior from
// exterior consistently around the star.
func (s *edgeEndStar) isAreaLabelsConsistent(geomIndex int, rule BoundaryNodeRule) bool {
	for _, e := range s.list {
		e.computeLabel(rule)
	}
	if len(s.list) == 0 {
		return true
	}
	last := s.list[len(s.list)-1].end().label
	startLoc := last.Location(geomIndex, PosLeft)
	if startLoc == LocNone {
		return true
	}
	currLoc := startLoc
	for _, e := range s.list {
		label := e.end().label
		if !label.isAreaFor(geomIndex) {
			return true
		}
		leftLoc := label.Location(geomIndex, PosLeft)
		rightLoc := label.Location(geomIndex, PosRight)
		if leftLoc == rightLoc {
			return false
		}
		if rightLoc != currLoc {
			return false
		}
		currLoc = leftLoc
	}
	return true
}
