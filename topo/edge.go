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
	"encoding/binary"
	"math"
	"sort"

	"github.com/blevesearch/planar/geom"
)

// edgeIntersection is a point on an edge where another edge (or the edge
// itself) intersects it, ordered along the edge by (segmentIndex, dist).
type edgeIntersection struct {
	coord        geom.Coordinate
	segmentIndex int
	dist         float64
}

func (ei *edgeIntersection) before(segmentIndex int, dist float64) bool {
	if ei.segmentIndex < segmentIndex {
		return true
	}
	return ei.segmentIndex == segmentIndex && ei.dist < dist
}

// edgeIntersectionList holds the intersections on an edge, sorted along it
// with duplicates merged.
type edgeIntersectionList struct {
	edge *Edge
	list []*edgeIntersection
}

// add records an intersection, keeping the list sorted and unique.
func (eil *edgeIntersectionList) add(coord geom.Coordinate, segmentIndex int, dist float64) *edgeIntersection {
	i := sort.Search(len(eil.list), func(i int) bool {
		return !eil.list[i].before(segmentIndex, dist)
	})
	if i < len(eil.list) && eil.list[i].segmentIndex == segmentIndex &&
		eil.list[i].dist == dist {
		return eil.list[i]
	}
	ei := &edgeIntersection{coord: coord, segmentIndex: segmentIndex, dist: dist}
	eil.list = append(eil.list, nil)
	copy(eil.list[i+1:], eil.list[i:])
	eil.list[i] = ei
	return ei
}

// addEndpoints adds the edge endpoints, so that splitting covers the whole
// edge.
func (eil *edgeIntersectionList) addEndpoints() {
	maxSegIndex := len(eil.edge.pts) - 1
	eil.add(eil.edge.pts[0], 0, 0)
	eil.add(eil.edge.pts[maxSegIndex], maxSegIndex, 0)
}

// isIntersection reports whether pt is one of the recorded intersections.
func (eil *edgeIntersectionList) isIntersection(pt geom.Coordinate) bool {
	for _, ei := range eil.list {
		if ei.coord.Equals2D(pt) {
			return true
		}
	}
	return false
}

// addSplitEdges appends the edge pieces between successive intersections
// to edgeList. Each piece carries a copy of the parent label.
func (eil *edgeIntersectionList) addSplitEdges(edgeList *[]*Edge) {
	eil.addEndpoints()
	for i := 1; i < len(eil.list); i++ {
		*edgeList = append(*edgeList, eil.createSplitEdge(eil.list[i-1], eil.list[i]))
	}
}

func (eil *edgeIntersectionList) createSplitEdge(ei0, ei1 *edgeIntersection) *Edge {
	npts := ei1.segmentIndex - ei0.segmentIndex + 2
	lastSegStartPt := eil.edge.pts[ei1.segmentIndex]
	// the last point is the second intersection, unless it coincides with
	// the start of its segment
	useIntPt1 := ei1.dist > 0 || !ei1.coord.Equals2D(lastSegStartPt)
	if !useIntPt1 {
		npts--
	}
	pts := make([]geom.Coordinate, 0, npts)
	pts = append(pts, ei0.coord)
	for i := ei0.segmentIndex + 1; i <= ei1.segmentIndex; i++ {
		pts = append(pts, eil.edge.pts[i])
	}
	if useIntPt1 {
		pts = append(pts, ei1.coord)
	}
	return newEdge(pts, copyLabel(eil.edge.label))
}

// Edge is a polyline of the topology graph between two nodes, carrying a
// Label, the intersections found on it, and (in the overlay engine) the
// depths of coincident duplicate edges.
type Edge struct {
	pts        []geom.Coordinate
	label      *Label
	eiList     edgeIntersectionList
	env      geom.Envelope
	depth    *depth
	isolated bool
	inResult   bool
	covered    bool
	coveredSet bool
	mce        *monotoneChainEdge

	// noderData carries the caller payload of a noded SegmentString
	noderData any
}

func newEdge(pts []geom.Coordinate, label *Label) *Edge {
	e := &Edge{
		pts:      pts,
		label:    label,
		isolated: true,
		depth:    newDepth(),
	}
	e.eiList.edge = e
	e.env = geom.EnvelopeOfCoords(pts...)
	return e
}

func (e *Edge) numPoints() int                { return len(e.pts) }
func (e *Edge) coordinate(i int) geom.Coordinate { return e.pts[i] }
func (e *Edge) envelope() geom.Envelope       { return e.env }

func (e *Edge) isClosed() bool {
	return len(e.pts) > 1 && e.pts[0].Equals2D(e.pts[len(e.pts)-1])
}

// isCollapsed reports whether the edge is an area edge folded back onto
// itself by noding, contributing a line rather than an area boundary.
func (e *Edge) isCollapsed() bool {
	if !e.label.isArea() {
		return false
	}
	return len(e.pts) == 3 && e.pts[0].Equals2D(e.pts[2])
}

func (e *Edge) collapsedEdge() *Edge {
	lbl := copyLabel(e.label)
	lbl.toLine(0)
	lbl.toLine(1)
	return newEdge(e.pts[:2], lbl)
}

func (e *Edge) setCovered(covered bool) {
	e.covered = covered
	e.coveredSet = true
}

// addIntersections records all intersection points of a computed
// lineIntersector on this edge's segIndex-th segment.
func (e *Edge) addIntersections(li *lineIntersector, segIndex, geomIndex int) {
	for i := 0; i < li.intersectionNum(); i++ {
		e.addIntersection(li, segIndex, geomIndex, i)
	}
}

// addIntersection records one intersection point, normalising it onto the
// following segment when it coincides with the segment's end vertex.
func (e *Edge) addIntersection(li *lineIntersector, segIndex, geomIndex, intIndex int) {
	intPt := li.intPt[intIndex]
	normalizedSegmentIndex := segIndex
	dist := li.getEdgeDistance(geomIndex, intIndex)
	if next := segIndex + 1; next < len(e.pts) {
		if intPt.Equals2D(e.pts[next]) {
			normalizedSegmentIndex = next
			dist = 0
		}
	}
	e.eiList.add(intPt, normalizedSegmentIndex, dist)
}

// pointwiseEqual reports whether the two edges have identical coordinate
// sequences in the same direction.
func (e *Edge) pointwiseEqual(other *Edge) bool {
	if len(e.pts) != len(other.pts) {
		return false
	}
	for i := range e.pts {
		if !e.pts[i].Equals2D(other.pts[i]) {
			return false
		}
	}
	return true
}

// updateIM raises intersection-matrix cells with the edge's label:
// dimension 1 for the On positions, dimension 2 for each side combination
// of area labels.
func (e *Edge) updateIM(im *IntersectionMatrix) {
	updateIMFromLabel(e.label, im)
}

func updateIMFromLabel(label *Label, im *IntersectionMatrix) {
	im.SetAtLeastIfValid(label.Location(0, PosOn), label.Location(1, PosOn), 1)
	if label.isArea() {
		im.SetAtLeastIfValid(label.Location(0, PosLeft), label.Location(1, PosLeft), 2)
		im.SetAtLeastIfValid(label.Location(0, PosRight), label.Location(1, PosRight), 2)
	}
}

// orientedKey returns a direction-independent key for the edge's
// coordinate sequence, used to detect coincident edges.
func (e *Edge) orientedKey() string {
	forward := true
	n := len(e.pts)
	for i := 0; i < n/2+1; i++ {
		cmp := e.pts[i].Compare(e.pts[n-1-i])
		if cmp != 0 {
			forward = cmp < 0
			break
		}
	}
	buf := make([]byte, 0, n*16)
	var scratch [8]byte
	appendCoord := func(c geom.Coordinate) {
		x, y := c.X, c.Y
		// fold negative zero so it keys identically to zero
		if x == 0 {
			x = 0
		}
		if y == 0 {
			y = 0
		}
		binary.BigEndian.PutUint64(scratch[:], math.Float64bits(x))
		buf = append(buf, scratch[:]...)
		binary.BigEndian.PutUint64(scratch[:], math.Float64bits(y))
		buf = append(buf, scratch[:]...)
	}
	if forward {
		for i := 0; i < n; i++ {
			appendCoord(e.pts[i])
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			appendCoord(e.pts[i])
		}
	}
	return string(buf)
}

// edgeList is a collection of edges supporting lookup of a coincident
// (equal up to direction) edge.
type edgeList struct {
	edges []*Edge
	index map[string]*Edge
}

func newEdgeList() *edgeList {
	return &edgeList{index: make(map[string]*Edge)}
}

func (el *edgeList) add(e *Edge) {
	el.edges = append(el.edges, e)
	el.index[e.orientedKey()] = e
}

// findEqualEdge returns an edge with the same coordinates as e, in either
// direction, or nil.
func (el *edgeList) findEqualEdge(e *Edge) *Edge {
	return el.index[e.orientedKey()]
}
