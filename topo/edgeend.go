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

// EdgeEnd is the end of an edge incident on a node: the node coordinate,
// the direction of the first edge segment leaving it, and a label. Edge
// ends around a node are ordered CCW by direction: first by quadrant, then
// by the orientation predicate within a quadrant, so ordering never
// depends on computed angles.
type EdgeEnd struct {
	edge     *Edge
	label    *Label
	node     *Node
	p0, p1   geom.Coordinate
	dx, dy   float64
	quadrant int
}

// graphEdgeEnd is implemented by everything that participates in a node
// star: plain edge ends, directed edges, and edge-end bundles.
type graphEdgeEnd interface {
	end() *EdgeEnd
	computeLabel(rule BoundaryNodeRule)
}

func newEdgeEnd(edge *Edge, p0, p1 geom.Coordinate, label *Label) *EdgeEnd {
	e := &EdgeEnd{edge: edge, label: label}
	e.init(p0, p1)
	return e
}

func (e *EdgeEnd) init(p0, p1 geom.Coordinate) {
	e.p0, e.p1 = p0, p1
	e.dx = p1.X - p0.X
	e.dy = p1.Y - p0.Y
	e.quadrant = quadrant(e.dx, e.dy)
}

func (e *EdgeEnd) end() *EdgeEnd { return e }

// computeLabel is a no-op for plain edge ends; their labels are assigned
// at construction.
func (e *EdgeEnd) computeLabel(BoundaryNodeRule) {}

func (e *EdgeEnd) coordinate() geom.Coordinate { return e.p0 }

// compareDirection orders edge ends CCW around the shared origin, starting
// from the positive x axis. It returns -1, 0 or 1 as e's direction is
// before, equal to, or after other's.
func (e *EdgeEnd) compareDirection(other *EdgeEnd) int {
	if e.dx == other.dx && e.dy == other.dy {
		return 0
	}
	if e.quadrant > other.quadrant {
		return 1
	}
	if e.quadrant < other.quadrant {
		return -1
	}
	// same quadrant: compare with the orientation predicate so the result
	// is exact
	switch OrientationIndex(other.p0, other.p1, e.p1) {
	case CounterClockwise:
		return 1
	case Clockwise:
		return -1
	}
	return 0
}
