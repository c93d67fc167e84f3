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

// star is the set of edge ends incident on a node, in CCW order.
type star interface {
	insertEnd(e graphEdgeEnd)
	ends() []graphEdgeEnd
}

// Node is a point of the topology graph. Nodes live in a nodeMap keyed by
// 2D coordinate and carry a Label plus the star of incident edge ends.
type Node struct {
	coord    geom.Coordinate
	edges    star
	label    *Label
	inResult bool
	visited  bool
}

func (n *Node) setLabelLocation(geomIndex int, loc Location) {
	if n.label == nil {
		n.label = newLineLabelFor(geomIndex, loc)
		return
	}
	n.label.setOn(geomIndex, loc)
}

// setLabelBoundary updates the label of a node that occurs (again) as an
// endpoint: boundary toggles to interior and back, per the mod-2 rule.
func (n *Node) setLabelBoundary(geomIndex int) {
	if n.label == nil {
		n.label = newLineLabelFor(geomIndex, LocBoundary)
		return
	}
	loc := n.label.On(geomIndex)
	var newLoc Location
	switch loc {
	case LocBoundary:
		newLoc = LocInterior
	case LocInterior:
		newLoc = LocBoundary
	default:
		newLoc = LocBoundary
	}
	n.label.setOn(geomIndex, newLoc)
}

// isIsolated reports whether the node carries information for only one of
// the inputs.
func (n *Node) isIsolated() bool {
	return n.label == nil || n.label.geometryCount() == 1
}

// add attaches an edge end to the node star.
func (n *Node) add(e graphEdgeEnd) {
	n.edges.insertEnd(e)
	e.end().node = n
}

func (n *Node) mergeLabel(other *Label) {
	if n.label == nil {
		n.label = copyLabel(other)
		return
	}
	for i := 0; i < 2; i++ {
		loc := computeMergedOnLocation(other, n.label, i)
		if n.label.On(i) == LocNone {
			n.label.setOn(i, loc)
		}
	}
}

// computeMergedOnLocation merges On locations: boundary wins over interior.
func computeMergedOnLocation(l1, l2 *Label, geomIndex int) Location {
	loc := l1.On(geomIndex)
	if l2.On(geomIndex) == LocBoundary {
		loc = LocBoundary
	}
	return loc
}

// updateIM raises the matrix with this node's label at dimension 0.
func (n *Node) updateIM(im *IntersectionMatrix) {
	if n.label == nil {
		return
	}
	im.SetAtLeastIfValid(n.label.On(0), n.label.On(1), 0)
}

type coordKey struct {
	x, y float64
}

func keyOf(c geom.Coordinate) coordKey {
	x, y := c.X, c.Y
	if x == 0 {
		x = 0
	}
	if y == 0 {
		y = 0
	}
	return coordKey{x: x, y: y}
}

// nodeMap owns the nodes of a graph, keyed by 2D coordinate.
type nodeMap struct {
	m       map[coordKey]*Node
	newStar func() star
}

func newNodeMap(newStar func() star) *nodeMap {
	return &nodeMap{m: make(map[coordKey]*Node), newStar: newStar}
}

// addNode returns the node at coord, creating it if absent.
func (nm *nodeMap) addNode(coord geom.Coordinate) *Node {
	key := keyOf(coord)
	if n, ok := nm.m[key]; ok {
		return n
	}
	n := &Node{coord: coord}
	if nm.newStar != nil {
		n.edges = nm.newStar()
	}
	nm.m[key] = n
	return n
}

// addEdgeEnd attaches an edge end to the node at its origin coordinate.
func (nm *nodeMap) addEdgeEnd(e graphEdgeEnd) {
	n := nm.addNode(e.end().p0)
	n.add(e)
}

func (nm *nodeMap) find(coord geom.Coordinate) *Node {
	return nm.m[keyOf(coord)]
}

// values returns the nodes ordered by coordinate, for deterministic
// iteration.
func (nm *nodeMap) values() []*Node {
	out := make([]*Node, 0, len(nm.m))
	for _, n := range nm.m {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].coord.Compare(out[j].coord) < 0
	})
	return out
}

// boundaryNodes returns the nodes labelled Boundary for the given input.
func (nm *nodeMap) boundaryNodes(geomIndex int) []*Node {
	var out []*Node
	for _, n := range nm.values() {
		if n.label != nil && n.label.On(geomIndex) == LocBoundary {
			out = append(out, n)
		}
	}
	return out
}
