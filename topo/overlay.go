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

// OverlayKind selects the boolean overlay operation.
type OverlayKind int

const (
	// OpIntersection keeps the points in both inputs.
	OpIntersection OverlayKind = iota
	// OpUnion keeps the points in either input.
	OpUnion
	// OpDifference keeps the points of A not in B.
	OpDifference
	// OpSymDifference keeps the points in exactly one input.
	OpSymDifference
)

// isResultOfOpLocations reports whether a point with the given locations
// relative to the two inputs belongs to the result of an operation.
// Boundary counts as interior: overlay results are closed areas.
func isResultOfOpLocations(loc0, loc1 Location, opCode OverlayKind) bool {
	if loc0 == LocBoundary {
		loc0 = LocInterior
	}
	if loc1 == LocBoundary {
		loc1 = LocInterior
	}
	switch opCode {
	case OpIntersection:
		return loc0 == LocInterior && loc1 == LocInterior
	case OpUnion:
		return loc0 == LocInterior || loc1 == LocInterior
	case OpDifference:
		return loc0 == LocInterior && loc1 != LocInterior
	case OpSymDifference:
		return (loc0 == LocInterior && loc1 != LocInterior) ||
			(loc0 != LocInterior && loc1 == LocInterior)
	}
	return false
}

func isResultOfOp(label *Label, opCode OverlayKind) bool {
	return isResultOfOpLocations(label.On(0), label.On(1), opCode)
}

// overlayOp computes a boolean overlay of two geometries through the
// labelled topology graph.
type overlayOp struct {
	arg     [2]*geometryGraph
	li      lineIntersector
	rule    BoundaryNodeRule
	factory *geom.Factory

	graph    *planarGraph
	edgeList *edgeList

	resultPolys  []*geom.Geometry
	resultLines  []*geom.Geometry
	resultPoints []*geom.Geometry
}

func newOverlayOp(g0, g1 *geom.Geometry, pm *geom.PrecisionModel) (*overlayOp, error) {
	rule := Mod2BoundaryNodeRule{}
	gg0, err := newGeometryGraph(0, g0, rule)
	if err != nil {
		return nil, err
	}
	gg1, err := newGeometryGraph(1, g1, rule)
	if err != nil {
		return nil, err
	}
	op := &overlayOp{
		arg:      [2]*geometryGraph{gg0, gg1},
		rule:     rule,
		factory:  g0.Factory(),
		graph:    newOverlayGraph(),
		edgeList: newEdgeList(),
	}
	op.li.pm = pm
	return op, nil
}

func (op *overlayOp) computeOverlay(ctx context.Context, opCode OverlayKind) (*geom.Geometry, error) {
	// copy the input points, so isolated points label correctly
	op.copyPoints(0)
	op.copyPoints(1)

	// node the inputs with themselves and with each other
	op.arg[0].computeSelfNodes(&op.li, false)
	op.arg[1].computeSelfNodes(&op.li, false)
	if err := checkInterrupt(ctx); err != nil {
		return nil, err
	}
	op.arg[0].computeEdgeIntersections(op.arg[1], &op.li, true)

	var baseSplitEdges []*Edge
	op.arg[0].computeSplitEdges(&baseSplitEdges)
	op.arg[1].computeSplitEdges(&baseSplitEdges)
	if err := checkInterrupt(ctx); err != nil {
		return nil, err
	}

	op.insertUniqueEdges(baseSplitEdges)
	op.computeLabelsFromDepths()
	op.replaceCollapsedEdges()
	if err := checkInterrupt(ctx); err != nil {
		return nil, err
	}

	op.graph.addEdges(op.edgeList.edges)
	if err := op.computeLabelling(); err != nil {
		return nil, err
	}
	if err := op.labelIncompleteNodes(); err != nil {
		return nil, err
	}
	if err := checkInterrupt(ctx); err != nil {
		return nil, err
	}

	// select the edges of the result area, then assemble by dimension
	op.findResultAreaEdges(opCode)
	op.cancelDuplicateResultEdges()

	polyBuilder := polygonBuilder{factory: op.factory}
	if err := polyBuilder.add(op.graph); err != nil {
		return nil, err
	}
	polys, err := polyBuilder.polygons()
	if err != nil {
		return nil, err
	}
	op.resultPolys = polys

	lnBuilder := lineBuilder{op: op, factory: op.factory}
	lines, err := lnBuilder.build(opCode)
	if err != nil {
		return nil, err
	}
	op.resultLines = lines

	ptBuilder := pointBuilder{op: op, factory: op.factory}
	op.resultPoints = ptBuilder.build(opCode)

	return op.computeGeometry(opCode)
}

// copyPoints imports one input graph's nodes with their locations.
func (op *overlayOp) copyPoints(argIndex int) {
	for _, graphNode := range op.arg[argIndex].nodes.values() {
		if graphNode.label == nil {
			continue
		}
		newNode := op.graph.nodes.addNode(graphNode.coord)
		newNode.setLabelLocation(argIndex, graphNode.label.On(argIndex))
	}
}

// insertUniqueEdges merges coincident split edges, accumulating their
// labels and depths so overlapping boundaries resolve correctly.
func (op *overlayOp) insertUniqueEdges(edges []*Edge) {
	for _, e := range edges {
		op.insertUniqueEdge(e)
	}
}

func (op *overlayOp) insertUniqueEdge(e *Edge) {
	existingEdge := op.edgeList.findEqualEdge(e)
	if existingEdge == nil {
		op.edgeList.add(e)
		return
	}
	existingLabel := existingEdge.label
	labelToMerge := e.label
	if !existingEdge.pointwiseEqual(e) {
		labelToMerge = copyLabel(e.label)
		labelToMerge.flip()
	}
	d := existingEdge.depth
	if d.isNull() {
		d.add(existingLabel)
	}
	d.add(labelToMerge)
	existingLabel.merge(labelToMerge)
}

// computeLabelsFromDepths rewrites the labels of merged edges from their
// accumulated depths: equal depth on both sides collapses the edge to a
// line, unequal depth keeps the deeper side interior.
func (op *overlayOp) computeLabelsFromDepths() {
	for _, e := range op.edgeList.edges {
		lbl := e.label
		d := e.depth
		if d.isNull() {
			continue
		}
		d.normalize()
		for i := 0; i < 2; i++ {
			if lbl.isNull(i) || !lbl.isArea() || d.isNullFor(i) {
				continue
			}
			if d.delta(i) == 0 {
				lbl.toLine(i)
			} else {
				lbl.setLocation(i, PosLeft, d.location(i, PosLeft))
				lbl.setLocation(i, PosRight, d.location(i, PosRight))
			}
		}
	}
}

// replaceCollapsedEdges replaces edges folded to zero width by noding with
// the equivalent line edge.
func (op *overlayOp) replaceCollapsedEdges() {
	edges := op.edgeList.edges
	for i, e := range edges {
		if e.isCollapsed() {
			edges[i] = e.collapsedEdge()
		}
	}
	// rebuild the lookup index over the replaced edges
	rebuilt := newEdgeList()
	for _, e := range edges {
		rebuilt.add(e)
	}
	op.edgeList = rebuilt
}

// computeLabelling completes the labels of all graph edges: star
// labelling at each node, then merging of twin labels.
func (op *overlayOp) computeLabelling() error {
	for _, node := range op.graph.nodes.values() {
		if err := node.edges.(*directedEdgeStar).computeLabelling(&op.arg, op.rule); err != nil {
			return err
		}
	}
	op.mergeSymLabels()
	op.updateNodeLabelling()
	return nil
}

func (op *overlayOp) mergeSymLabels() {
	for _, node := range op.graph.nodes.values() {
		node.edges.(*directedEdgeStar).mergeSymLabels()
	}
}

func (op *overlayOp) updateNodeLabelling() {
	// the node label is the merge of the star label with the node's own
	for _, node := range op.graph.nodes.values() {
		lbl := node.edges.(*directedEdgeStar).label
		if lbl != nil {
			node.mergeLabel(lbl)
		}
	}
}

// labelIncompleteNodes locates nodes carrying information for only one
// input against the other input, then completes the incident edge labels.
func (op *overlayOp) labelIncompleteNodes() error {
	for _, n := range op.graph.nodes.values() {
		label := n.label
		if n.isIsolated() {
			if label == nil {
				return &geom.TopologyError{Msg: "node with no label", Pt: &n.coord}
			}
			if label.isNull(0) {
				op.labelIncompleteNode(n, 0)
			} else {
				op.labelIncompleteNode(n, 1)
			}
		}
		n.edges.(*directedEdgeStar).updateLabelling(n.label)
	}
	return nil
}

func (op *overlayOp) labelIncompleteNode(n *Node, targetIndex int) {
	loc := Locate(n.coord, op.arg[targetIndex].parent)
	n.label.setOn(targetIndex, loc)
}

// findResultAreaEdges marks the directed edges whose right side satisfies
// the operation as result edges.
func (op *overlayOp) findResultAreaEdges(opCode OverlayKind) {
	for _, de := range op.graph.dirEdges() {
		label := de.label
		if label.isArea() && !de.isInteriorAreaEdge() &&
			isResultOfOpLocations(
				label.Location(0, PosRight),
				label.Location(1, PosRight),
				opCode) {
			de.inResult = true
		}
	}
}

// cancelDuplicateResultEdges unmarks twin pairs that are both in the
// result: they bound nothing.
func (op *overlayOp) cancelDuplicateResultEdges() {
	for _, de := range op.graph.dirEdges() {
		if de.inResult && de.sym.inResult {
			de.inResult = false
			de.sym.inResult = false
		}
	}
}

// isCoveredByArea reports whether the coordinate lies in a result polygon.
func (op *overlayOp) isCoveredByArea(coord geom.Coordinate) bool {
	return isCoveredBy(coord, op.resultPolys)
}

// isCoveredByLineOrArea reports whether the coordinate lies in a result
// line or polygon.
func (op *overlayOp) isCoveredByLineOrArea(coord geom.Coordinate) bool {
	return isCoveredBy(coord, op.resultLines) || isCoveredBy(coord, op.resultPolys)
}

func isCoveredBy(coord geom.Coordinate, geoms []*geom.Geometry) bool {
	for _, g := range geoms {
		if Locate(coord, g) != LocExterior {
			return true
		}
	}
	return false
}

func (op *overlayOp) computeGeometry(opCode OverlayKind) (*geom.Geometry, error) {
	all := make([]*geom.Geometry, 0,
		len(op.resultPoints)+len(op.resultLines)+len(op.resultPolys))
	all = append(all, op.resultPoints...)
	all = append(all, op.resultLines...)
	all = append(all, op.resultPolys...)
	if len(all) == 0 {
		return emptyOverlayResult(opCode, op.arg[0].parent, op.arg[1].parent, op.factory), nil
	}
	return op.factory.BuildGeometry(all), nil
}

// resultDimension gives the dimension of an overlay result per the SFS.
func resultDimension(opCode OverlayKind, dim0, dim1 int) int {
	switch opCode {
	case OpIntersection:
		return minInt(dim0, dim1)
	case OpUnion:
		return maxInt(dim0, dim1)
	case OpDifference:
		return dim0
	case OpSymDifference:
		return maxInt(dim0, dim1)
	}
	return -1
}

func emptyOverlayResult(opCode OverlayKind, g0, g1 *geom.Geometry, f *geom.Factory) *geom.Geometry {
	return f.Empty(resultDimension(opCode, g0.Dimension(), g1.Dimension()))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
