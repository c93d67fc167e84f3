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
	"context"

	"github.com/blevesearch/planar/geom"
)

// edgeEndBundle collects the edge ends incident on a node that share one
// direction, computing a single merged label for the bundle.
type edgeEndBundle struct {
	EdgeEnd
	members []*EdgeEnd
}

func newEdgeEndBundle(e *EdgeEnd) *edgeEndBundle {
	b := &edgeEndBundle{}
	b.edge = e.edge
	b.init(e.p0, e.p1)
	b.label = copyLabel(e.label)
	b.insert(e)
	return b
}

func (b *edgeEndBundle) insert(e *EdgeEnd) {
	b.members = append(b.members, e)
}

// computeLabel merges the member labels: the On location follows the
// boundary node rule over the members, side locations take Interior over
// Exterior.
func (b *edgeEndBundle) computeLabel(rule BoundaryNodeRule) {
	isArea := false
	for _, e := range b.members {
		if e.label.isArea() {
			isArea = true
		}
	}
	if isArea {
		b.label = &Label{elt: [2]*topologyLocation{
			newAreaLocation(LocNone, LocNone, LocNone),
			newAreaLocation(LocNone, LocNone, LocNone),
		}}
	} else {
		b.label = newLineLabel(LocNone)
	}
	for i := 0; i < 2; i++ {
		b.computeLabelOn(i, rule)
		if isArea {
			b.computeLabelSide(i, PosLeft)
			b.computeLabelSide(i, PosRight)
		}
	}
}

func (b *edgeEndBundle) computeLabelOn(geomIndex int, rule BoundaryNodeRule) {
	boundaryCount := 0
	foundInterior := false
	for _, e := range b.members {
		switch e.label.On(geomIndex) {
		case LocBoundary:
			boundaryCount++
		case LocInterior:
			foundInterior = true
		}
	}
	loc := LocNone
	if foundInterior {
		loc = LocInterior
	}
	if boundaryCount > 0 {
		loc = determineBoundary(rule, boundaryCount)
	}
	b.label.setOn(geomIndex, loc)
}

// computeLabelSide sets the side location: Interior if any member claims
// it, otherwise Exterior if any member claims that.
func (b *edgeEndBundle) computeLabelSide(geomIndex int, pos Position) {
	for _, e := range b.members {
		if e.label.isAreaFor(geomIndex) {
			switch e.label.Location(geomIndex, pos) {
			case LocInterior:
				b.label.setLocation(geomIndex, pos, LocInterior)
				return
			case LocExterior:
				b.label.setLocation(geomIndex, pos, LocExterior)
			}
		}
	}
}

func (b *edgeEndBundle) updateIM(im *IntersectionMatrix) {
	updateIMFromLabel(b.label, im)
}

// edgeEndBundleStar is the star of edge-end bundles around a relate node.
type edgeEndBundleStar struct {
	edgeEndStar
}

func newEdgeEndBundleStar() *edgeEndBundleStar {
	return &edgeEndBundleStar{edgeEndStar: *newEdgeEndStar()}
}

// insertBundled adds an edge end into the bundle with its direction,
// creating the bundle if needed.
func (s *edgeEndBundleStar) insertBundled(e *EdgeEnd) {
	for _, b := range s.list {
		bundle := b.(*edgeEndBundle)
		if bundle.compareDirection(e) == 0 {
			bundle.insert(e)
			return
		}
	}
	s.insertEnd(newEdgeEndBundle(e))
}

func (s *edgeEndBundleStar) updateIM(im *IntersectionMatrix) {
	for _, b := range s.list {
		b.(*edgeEndBundle).updateIM(im)
	}
}

// edgeEndBuilder creates the edge ends incident on nodes out of the
// intersections recorded on an edge: one end on each side of every
// intersection point.
type edgeEndBuilder struct{}

func (edgeEndBuilder) computeEdgeEnds(edges []*Edge) []*EdgeEnd {
	var out []*EdgeEnd
	for _, e := range edges {
		computeEdgeEndsForEdge(e, &out)
	}
	return out
}

func computeEdgeEndsForEdge(edge *Edge, out *[]*EdgeEnd) {
	eiList := &edge.eiList
	eiList.addEndpoints()
	if len(eiList.list) == 0 {
		return
	}
	var eiPrev, eiCurr *edgeIntersection
	it := 0
	eiNext := eiList.list[it]
	it++
	for {
		eiPrev = eiCurr
		eiCurr = eiNext
		eiNext = nil
		if it < len(eiList.list) {
			eiNext = eiList.list[it]
			it++
		}
		if eiCurr == nil {
			break
		}
		createEdgeEndForPrev(edge, out, eiCurr, eiPrev)
		createEdgeEndForNext(edge, out, eiCurr, eiNext)
		if eiNext == nil {
			break
		}
	}
}

// createEdgeEndForPrev creates the edge end leading back towards the
// previous intersection (or vertex), if the current intersection is not at
// the start of the edge.
func createEdgeEndForPrev(edge *Edge, out *[]*EdgeEnd, eiCurr, eiPrev *edgeIntersection) {
	iPrev := eiCurr.segmentIndex
	if eiCurr.dist == 0 {
		// at the start of the edge there is no previous point
		if iPrev == 0 {
			return
		}
		iPrev--
	}
	pPrev := edge.pts[iPrev]
	// the previous intersection may lie closer than the previous vertex
	if eiPrev != nil && eiPrev.segmentIndex >= iPrev {
		pPrev = eiPrev.coord
	}
	label := copyLabel(edge.label)
	// the end is oriented away from the node, opposite to the edge
	label.flip()
	*out = append(*out, newEdgeEnd(edge, eiCurr.coord, pPrev, label))
}

// createEdgeEndForNext creates the edge end leading forwards to the next
// intersection (or vertex), if the current intersection is not at the end
// of the edge.
func createEdgeEndForNext(edge *Edge, out *[]*EdgeEnd, eiCurr, eiNext *edgeIntersection) {
	iNext := eiCurr.segmentIndex + 1
	if iNext >= len(edge.pts) && eiNext == nil {
		return
	}
	var pNext geom.Coordinate
	if iNext < len(edge.pts) {
		pNext = edge.pts[iNext]
	}
	// the next intersection may lie on the current segment
	if eiNext != nil && eiNext.segmentIndex == eiCurr.segmentIndex {
		pNext = eiNext.coord
	}
	*out = append(*out, newEdgeEnd(edge, eiCurr.coord, pNext, copyLabel(edge.label)))
}

// relateComputer computes the DE-9IM intersection matrix of two geometries
// from their labelled topology graphs.
type relateComputer struct {
	arg  [2]*geometryGraph
	li   lineIntersector
	rule BoundaryNodeRule

	nodes         *nodeMap
	isolatedEdges []*Edge
}

func newRelateComputer(g0, g1 *geom.Geometry, rule BoundaryNodeRule) (*relateComputer, error) {
	if rule == nil {
		rule = Mod2BoundaryNodeRule{}
	}
	gg0, err := newGeometryGraph(0, g0, rule)
	if err != nil {
		return nil, err
	}
	gg1, err := newGeometryGraph(1, g1, rule)
	if err != nil {
		return nil, err
	}
	return &relateComputer{
		arg:   [2]*geometryGraph{gg0, gg1},
		rule:  rule,
		nodes: newNodeMap(func() star { return newEdgeEndBundleStar() }),
	}, nil
}

func (rc *relateComputer) computeIM(ctx context.Context) (*IntersectionMatrix, error) {
	im := NewIntersectionMatrix()
	// the exteriors of two planar inputs always share area
	im.Set(LocExterior, LocExterior, DimA)

	g0, g1 := rc.arg[0].parent, rc.arg[1].parent
	if !g0.Envelope().Intersects(g1.Envelope()) {
		rc.computeDisjointIM(im)
		return im, nil
	}
	if err := checkInterrupt(ctx); err != nil {
		return nil, err
	}
	rc.arg[0].computeSelfNodes(&rc.li, false)
	rc.arg[1].computeSelfNodes(&rc.li, false)
	if err := checkInterrupt(ctx); err != nil {
		return nil, err
	}

	intersector := rc.arg[0].computeEdgeIntersections(rc.arg[1], &rc.li, false)
	rc.computeIntersectionNodes(0)
	rc.computeIntersectionNodes(1)
	// copy the input graph nodes, which include boundary nodes and
	// isolated points
	rc.copyNodesAndLabels(0)
	rc.copyNodesAndLabels(1)

	// nodes touching only one input are located against the other input
	rc.labelIsolatedNodes()
	rc.computeProperIntersectionIM(intersector, im)
	if err := checkInterrupt(ctx); err != nil {
		return nil, err
	}

	var eeb edgeEndBuilder
	ee0 := eeb.computeEdgeEnds(rc.arg[0].edges)
	rc.insertEdgeEnds(ee0)
	ee1 := eeb.computeEdgeEnds(rc.arg[1].edges)
	rc.insertEdgeEnds(ee1)

	if err := rc.labelNodeEdges(); err != nil {
		return nil, err
	}

	rc.labelIsolatedEdges(0, 1)
	rc.labelIsolatedEdges(1, 0)
	if err := checkInterrupt(ctx); err != nil {
		return nil, err
	}
	rc.updateIM(im)
	return im, nil
}

// computeDisjointIM fills the matrix for inputs with disjoint envelopes:
// only the exterior cells can intersect.
func (rc *relateComputer) computeDisjointIM(im *IntersectionMatrix) {
	ga := rc.arg[0].parent
	if !ga.IsEmpty() {
		im.Set(LocInterior, LocExterior, ga.Dimension())
		im.SetAtLeastIfValid(LocBoundary, LocExterior, ga.BoundaryDimension())
	}
	gb := rc.arg[1].parent
	if !gb.IsEmpty() {
		im.Set(LocExterior, LocInterior, gb.Dimension())
		im.SetAtLeastIfValid(LocExterior, LocBoundary, gb.BoundaryDimension())
	}
}

// computeIntersectionNodes creates relate nodes for every intersection
// point on the edges of one input. Intersections on boundary edges are
// potential boundary nodes.
func (rc *relateComputer) computeIntersectionNodes(argIndex int) {
	for _, e := range rc.arg[argIndex].edges {
		eLoc := e.label.On(argIndex)
		for _, ei := range e.eiList.list {
			n := rc.nodes.addNode(ei.coord)
			if eLoc == LocBoundary {
				n.setLabelBoundary(argIndex)
			} else if n.label == nil || n.label.isNull(argIndex) {
				n.setLabelLocation(argIndex, LocInterior)
			}
		}
	}
}

// copyNodesAndLabels imports the nodes of one input graph, keeping their
// On locations.
func (rc *relateComputer) copyNodesAndLabels(argIndex int) {
	for _, graphNode := range rc.arg[argIndex].nodes.values() {
		if graphNode.label == nil {
			continue
		}
		newNode := rc.nodes.addNode(graphNode.coord)
		newNode.setLabelLocation(argIndex, graphNode.label.On(argIndex))
	}
}

// labelIsolatedNodes locates nodes that touch only one input against the
// other input's point set.
func (rc *relateComputer) labelIsolatedNodes() {
	for _, n := range rc.nodes.values() {
		if !n.isIsolated() || n.label == nil {
			continue
		}
		if n.label.isNull(0) {
			rc.labelIsolatedNode(n, 0)
		} else {
			rc.labelIsolatedNode(n, 1)
		}
	}
}

func (rc *relateComputer) labelIsolatedNode(n *Node, targetIndex int) {
	loc := Locate(n.coord, rc.arg[targetIndex].parent)
	n.label.setAllLocations(targetIndex, loc)
}

// computeProperIntersectionIM sets matrix cells that follow directly from
// the existence of a proper intersection, by input dimension combination.
func (rc *relateComputer) computeProperIntersectionIM(si *segmentIntersector, im *IntersectionMatrix) {
	dimA := rc.arg[0].parent.Dimension()
	dimB := rc.arg[1].parent.Dimension()
	hasProper := si.hasProper
	hasProperInterior := si.hasProperInterior

	switch {
	case dimA == 2 && dimB == 2:
		// a proper intersection of area boundaries means the interiors,
		// boundaries and exteriors all intersect
		if hasProper {
			im.SetAtLeastPattern("212101212")
		}
	case dimA == 2 && dimB == 1:
		if hasProper {
			im.SetAtLeastPattern("FFF0FFFF2")
		}
		if hasProperInterior {
			im.SetAtLeastPattern("1FFFFF1FF")
		}
	case dimA == 1 && dimB == 2:
		if hasProper {
			im.SetAtLeastPattern("F0FFFFFF2")
		}
		if hasProperInterior {
			im.SetAtLeastPattern("1F1FFFFFF")
		}
	case dimA == 1 && dimB == 1:
		if hasProperInterior {
			im.SetAtLeastPattern("0FFFFFFFF")
		}
	}
}

func (rc *relateComputer) insertEdgeEnds(ends []*EdgeEnd) {
	for _, e := range ends {
		n := rc.nodes.addNode(e.p0)
		n.edges.(*edgeEndBundleStar).insertBundled(e)
		e.node = n
	}
}

func (rc *relateComputer) labelNodeEdges() error {
	for _, n := range rc.nodes.values() {
		if err := n.edges.(*edgeEndBundleStar).computeLabelling(&rc.arg, rc.rule); err != nil {
			return err
		}
	}
	return nil
}

// labelIsolatedEdges locates edges of one input that intersect nothing of
// the other input.
func (rc *relateComputer) labelIsolatedEdges(thisIndex, targetIndex int) {
	for _, e := range rc.arg[thisIndex].edges {
		if !e.isolated {
			continue
		}
		rc.isolatedEdges = append(rc.isolatedEdges, e)
		target := rc.arg[targetIndex].parent
		if target.Dimension() > 0 {
			loc := Locate(e.coordinate(0), target)
			e.label.setAllLocations(targetIndex, loc)
		} else {
			e.label.setAllLocations(targetIndex, LocExterior)
		}
	}
}

// updateIM folds the labels of isolated edges, nodes, and edge-end
// bundles into the matrix.
func (rc *relateComputer) updateIM(im *IntersectionMatrix) {
	for _, e := range rc.isolatedEdges {
		e.updateIM(im)
	}
	for _, n := range rc.nodes.values() {
		n.updateIM(im)
		n.edges.(*edgeEndBundleStar).updateIM(im)
	}
}
