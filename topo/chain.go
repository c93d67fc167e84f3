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
	"github.com/dhconnelly/rtreego"

	"github.com/blevesearch/planar/geom"
)

// A monotoneChainEdge partitions an edge's segments into chains within
// which the direction stays in one quadrant. Monotone chains have two
// useful properties: a chain's envelope is the envelope of its two end
// vertices, and two chains can only cross at most once per monotone
// sub-range, so envelope subdivision search terminates quickly.
type monotoneChainEdge struct {
	e            *Edge
	pts          []geom.Coordinate
	startIndexes []int
}

func newMonotoneChainEdge(e *Edge) *monotoneChainEdge {
	mce := &monotoneChainEdge{e: e, pts: e.pts}
	mce.startIndexes = chainStartIndexes(e.pts)
	return mce
}

// chainStartIndexes returns the vertex indexes where a new monotone chain
// begins, terminated by the last vertex index.
func chainStartIndexes(pts []geom.Coordinate) []int {
	start := 0
	indexes := []int{0}
	for start < len(pts)-1 {
		end := findChainEnd(pts, start)
		indexes = append(indexes, end)
		start = end
	}
	return indexes
}

func findChainEnd(pts []geom.Coordinate, start int) int {
	chainQuad := quadrant(pts[start+1].X-pts[start].X, pts[start+1].Y-pts[start].Y)
	last := start + 1
	for last < len(pts) {
		if pts[last].Equals2D(pts[last-1]) {
			break
		}
		quad := quadrant(pts[last].X-pts[last-1].X, pts[last].Y-pts[last-1].Y)
		if quad != chainQuad {
			break
		}
		last++
	}
	return last - 1
}

func (mce *monotoneChainEdge) numChains() int { return len(mce.startIndexes) - 1 }

func (mce *monotoneChainEdge) chainEnvelope(chainIndex int) geom.Envelope {
	p0 := mce.pts[mce.startIndexes[chainIndex]]
	p1 := mce.pts[mce.startIndexes[chainIndex+1]]
	return geom.EnvelopeOfCoords(p0, p1)
}

// computeIntersectsForChain reports every intersecting segment pair of two
// chains to si, by recursive envelope subdivision.
func (mce *monotoneChainEdge) computeIntersectsForChain(chainIndex0 int,
	other *monotoneChainEdge, chainIndex1 int, si *segmentIntersector) {
	mce.computeIntersectsRange(
		mce.startIndexes[chainIndex0], mce.startIndexes[chainIndex0+1],
		other,
		other.startIndexes[chainIndex1], other.startIndexes[chainIndex1+1],
		si)
}

func (mce *monotoneChainEdge) computeIntersectsRange(start0, end0 int,
	other *monotoneChainEdge, start1, end1 int, si *segmentIntersector) {
	// single segment pair: test it
	if end0-start0 == 1 && end1-start1 == 1 {
		si.addIntersections(mce.e, start0, other.e, start1)
		return
	}
	env0 := geom.EnvelopeOfCoords(mce.pts[start0], mce.pts[end0])
	env1 := geom.EnvelopeOfCoords(other.pts[start1], other.pts[end1])
	if !env0.Intersects(env1) {
		return
	}
	mid0 := (start0 + end0) / 2
	mid1 := (start1 + end1) / 2
	if start0 < mid0 {
		if start1 < mid1 {
			mce.computeIntersectsRange(start0, mid0, other, start1, mid1, si)
		}
		if mid1 < end1 {
			mce.computeIntersectsRange(start0, mid0, other, mid1, end1, si)
		}
	}
	if mid0 < end0 {
		if start1 < mid1 {
			mce.computeIntersectsRange(mid0, end0, other, start1, mid1, si)
		}
		if mid1 < end1 {
			mce.computeIntersectsRange(mid0, end0, other, mid1, end1, si)
		}
	}
}

// segmentIntersector visits candidate segment pairs, computes their
// intersections robustly, and records them on the owning edges.
type segmentIntersector struct {
	li                 *lineIntersector
	includeProper      bool
	recordIsolated     bool
	hasIntersectionV   bool
	hasProper          bool
	hasProperInterior  bool
	properIntersectionPoint geom.Coordinate
	bdyNodes           *[2][]*Node
	numIntersections   int
}

func newSegmentIntersector(li *lineIntersector, includeProper, recordIsolated bool) *segmentIntersector {
	return &segmentIntersector{
		li:             li,
		includeProper:  includeProper,
		recordIsolated: recordIsolated,
	}
}

func (si *segmentIntersector) setBoundaryNodes(bdyNodes0, bdyNodes1 []*Node) {
	si.bdyNodes = &[2][]*Node{bdyNodes0, bdyNodes1}
}

// isTrivialIntersection reports whether the intersection is merely the
// shared vertex of adjacent segments of the same edge (or the closing
// vertex of a ring).
func (si *segmentIntersector) isTrivialIntersection(e0 *Edge, segIndex0 int, e1 *Edge, segIndex1 int) bool {
	if e0 != e1 || si.li.intersectionNum() != 1 {
		return false
	}
	if absInt(segIndex0-segIndex1) == 1 {
		return true
	}
	if e0.isClosed() {
		maxSegIndex := len(e0.pts) - 2
		if (segIndex0 == 0 && segIndex1 == maxSegIndex) ||
			(segIndex1 == 0 && segIndex0 == maxSegIndex) {
			return true
		}
	}
	return false
}

func (si *segmentIntersector) addIntersections(e0 *Edge, segIndex0 int, e1 *Edge, segIndex1 int) {
	if e0 == e1 && segIndex0 == segIndex1 {
		return
	}
	p00 := e0.pts[segIndex0]
	p01 := e0.pts[segIndex0+1]
	p10 := e1.pts[segIndex1]
	p11 := e1.pts[segIndex1+1]
	si.li.computeIntersection(p00, p01, p10, p11)
	if !si.li.hasIntersection() {
		return
	}
	if si.recordIsolated {
		e0.isolated = false
		e1.isolated = false
	}
	si.numIntersections++
	if si.isTrivialIntersection(e0, segIndex0, e1, segIndex1) {
		return
	}
	si.hasIntersectionV = true
	if si.includeProper || !si.li.proper {
		e0.addIntersections(si.li, segIndex0, 0)
		e1.addIntersections(si.li, segIndex1, 1)
	}
	if si.li.proper {
		si.properIntersectionPoint = si.li.intPt[0]
		si.hasProper = true
		if !si.isBoundaryPoint() {
			si.hasProperInterior = true
		}
	}
}

func (si *segmentIntersector) isBoundaryPoint() bool {
	if si.bdyNodes == nil {
		return false
	}
	for _, nodes := range si.bdyNodes {
		for _, n := range nodes {
			if n.coord.Equals2D(si.li.intPt[0]) {
				return true
			}
		}
	}
	return false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// chainItem is a monotone chain registered in the R-tree candidate index.
type chainItem struct {
	mce   *monotoneChainEdge
	chain int
	id    int
}

// Bounds implements rtreego.Spatial.
func (ci chainItem) Bounds() rtreego.Rect {
	return rectFromEnvelope(ci.mce.chainEnvelope(ci.chain))
}

// rectPad keeps degenerate (zero-extent) envelopes representable as R-tree
// rectangles, which require positive extents.
const rectPad = 1e-9

func rectFromEnvelope(env geom.Envelope) rtreego.Rect {
	if env.IsEmpty() {
		rect, _ := rtreego.NewRect(rtreego.Point{0, 0}, []float64{rectPad, rectPad})
		return rect
	}
	lengths := []float64{env.Width(), env.Height()}
	if lengths[0] <= 0 {
		lengths[0] = rectPad
	}
	if lengths[1] <= 0 {
		lengths[1] = rectPad
	}
	rect, _ := rtreego.NewRect(rtreego.Point{env.MinX(), env.MinY()}, lengths)
	return rect
}

// computeSelfIntersections finds all intersections among a set of edges
// belonging to one geometry. If testSameEdge is false, segments of the
// same edge are not tested against each other (valid for polygon rings,
// whose self-intersections are found when validating instead).
func computeSelfIntersections(edges []*Edge, si *segmentIntersector, testSameEdge bool) {
	items, tree := buildChainIndex(edges)
	for _, item := range items {
		candidates := tree.SearchIntersect(item.Bounds())
		for _, c := range candidates {
			other := c.(chainItem)
			// process each unordered pair once
			if other.id <= item.id {
				continue
			}
			if !testSameEdge && other.mce.e == item.mce.e {
				continue
			}
			item.mce.computeIntersectsForChain(item.chain, other.mce, other.chain, si)
		}
	}
}

// computeMutualIntersections finds all intersections between the edges of
// two geometries.
func computeMutualIntersections(edges0, edges1 []*Edge, si *segmentIntersector) {
	_, tree := buildChainIndex(edges0)
	for _, e := range edges1 {
		mce := chainEdgeOf(e)
		for chain := 0; chain < mce.numChains(); chain++ {
			item := chainItem{mce: mce, chain: chain}
			for _, c := range tree.SearchIntersect(item.Bounds()) {
				other := c.(chainItem)
				other.mce.computeIntersectsForChain(other.chain, mce, chain, si)
			}
		}
	}
}

func buildChainIndex(edges []*Edge) ([]chainItem, *rtreego.Rtree) {
	var items []chainItem
	tree := rtreego.NewTree(2, 4, 16)
	id := 0
	for _, e := range edges {
		mce := chainEdgeOf(e)
		for chain := 0; chain < mce.numChains(); chain++ {
			item := chainItem{mce: mce, chain: chain, id: id}
			id++
			items = append(items, item)
			tree.Insert(item)
		}
	}
	return items, tree
}

func chainEdgeOf(e *Edge) *monotoneChainEdge {
	if e.mce == nil {
		e.mce = newMonotoneChainEdge(e)
	}
	return e.mce
}
