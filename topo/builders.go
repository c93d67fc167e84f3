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

// polygonBuilder assembles the polygons of an overlay result out of the
// directed edges selected for the result area.
type polygonBuilder struct {
	factory   *geom.Factory
	shellList []*edgeRing
}

func (pb *polygonBuilder) add(graph *planarGraph) error {
	if err := graph.linkResultDirectedEdges(); err != nil {
		return err
	}
	maxEdgeRings, err := buildMaximalEdgeRings(graph.dirEdges())
	if err != nil {
		return err
	}
	var freeHoleList []*edgeRing
	edgeRings, err := pb.buildMinimalEdgeRings(maxEdgeRings, &freeHoleList)
	if err != nil {
		return err
	}
	pb.sortShellsAndHoles(edgeRings, &freeHoleList)
	if err := pb.placeFreeHoles(freeHoleList); err != nil {
		return err
	}
	return nil
}

func (pb *polygonBuilder) polygons() ([]*geom.Geometry, error) {
	out := make([]*geom.Geometry, 0, len(pb.shellList))
	for _, shell := range pb.shellList {
		poly, err := shell.toPolygon(pb.factory)
		if err != nil {
			return nil, err
		}
		out = append(out, poly)
	}
	return out, nil
}

// buildMaximalEdgeRings assembles rings by following the next pointers of
// the selected area edges.
func buildMaximalEdgeRings(dirEdges []*DirectedEdge) ([]*edgeRing, error) {
	var maxEdgeRings []*edgeRing
	for _, de := range dirEdges {
		if de.inResult && de.label.isArea() && de.ring == nil {
			er, err := newEdgeRing(de, false)
			if err != nil {
				return nil, err
			}
			maxEdgeRings = append(maxEdgeRings, er)
			er.setInResult()
		}
	}
	return maxEdgeRings, nil
}

// buildMinimalEdgeRings decomposes self-touching maximal rings into
// minimal rings, separating the shell from the holes split off it.
func (pb *polygonBuilder) buildMinimalEdgeRings(maxEdgeRings []*edgeRing,
	freeHoleList *[]*edgeRing) ([]*edgeRing, error) {
	var edgeRings []*edgeRing
	for _, er := range maxEdgeRings {
		if er.maxNodeDegree() > 2 {
			if err := er.linkDirectedEdgesForMinimalEdgeRings(); err != nil {
				return nil, err
			}
			minEdgeRings, err := er.buildMinimalRings()
			if err != nil {
				return nil, err
			}
			shell := findShell(minEdgeRings)
			if shell != nil {
				placePolygonHoles(shell, minEdgeRings)
				pb.shellList = append(pb.shellList, shell)
			} else {
				*freeHoleList = append(*freeHoleList, minEdgeRings...)
			}
		} else {
			edgeRings = append(edgeRings, er)
		}
	}
	return edgeRings, nil
}

// findShell returns the single non-hole ring of a decomposed maximal
// ring, or nil if all pieces are holes.
func findShell(minEdgeRings []*edgeRing) *edgeRing {
	var shell *edgeRing
	for _, er := range minEdgeRings {
		if !er.hole {
			shell = er
		}
	}
	return shell
}

// placePolygonHoles assigns the holes split off a self-touching shell to
// that shell.
func placePolygonHoles(shell *edgeRing, minEdgeRings []*edgeRing) {
	for _, er := range minEdgeRings {
		if er.hole {
			er.shell = shell
			shell.holes = append(shell.holes, er)
		}
	}
}

func (pb *polygonBuilder) sortShellsAndHoles(edgeRings []*edgeRing, freeHoleList *[]*edgeRing) {
	for _, er := range edgeRings {
		if er.hole {
			*freeHoleList = append(*freeHoleList, er)
		} else {
			pb.shellList = append(pb.shellList, er)
		}
	}
}

// placeFreeHoles assigns each unassigned hole to the innermost enclosing
// shell.
func (pb *polygonBuilder) placeFreeHoles(freeHoleList []*edgeRing) error {
	for _, hole := range freeHoleList {
		if hole.shell != nil {
			continue
		}
		shell := findEdgeRingContaining(hole, pb.shellList)
		if shell == nil {
			var pt *geom.Coordinate
			if len(hole.pts) > 0 {
				pt = &hole.pts[0]
			}
			return &geom.TopologyError{Msg: "unable to assign hole to a shell", Pt: pt}
		}
		hole.shell = shell
		shell.holes = append(shell.holes, hole)
	}
	return nil
}

// findEdgeRingContaining finds the innermost enclosing shell of a hole:
// the smallest shell whose envelope contains the hole envelope and which
// contains a point of the hole not shared with the shell.
func findEdgeRingContaining(testEr *edgeRing, shellList []*edgeRing) *edgeRing {
	var minShell *edgeRing
	for _, tryShell := range shellList {
		if !tryShell.env.Contains(testEr.env) {
			continue
		}
		testPt := pointNotInList(testEr.pts, tryShell.pts)
		if !IsPointInRing(testPt, tryShell.pts) {
			continue
		}
		if minShell == nil || minShell.env.Contains(tryShell.env) {
			minShell = tryShell
		}
	}
	return minShell
}

// pointNotInList returns a point of pts not present in excluded, or the
// first point if all are shared.
func pointNotInList(pts, excluded []geom.Coordinate) geom.Coordinate {
	for _, p := range pts {
		found := false
		for _, q := range excluded {
			if p.Equals2D(q) {
				found = true
				break
			}
		}
		if !found {
			return p
		}
	}
	return pts[0]
}

// lineBuilder collects the 1-dimensional pieces of an overlay result:
// selected line edges not covered by the result area, and boundary edges
// that contribute lines to an intersection.
type lineBuilder struct {
	op      *overlayOp
	factory *geom.Factory

	lineEdges []*Edge
	lines     []*geom.Geometry
}

func (lb *lineBuilder) build(opCode OverlayKind) ([]*geom.Geometry, error) {
	lb.findCoveredLineEdges()
	lb.collectLines(opCode)
	lb.buildLines()
	return lb.lines, nil
}

// findCoveredLineEdges marks line edges covered by the result area, first
// at nodes carrying area edges, then by locating in the result polygons.
func (lb *lineBuilder) findCoveredLineEdges() {
	for _, node := range lb.op.graph.nodes.values() {
		node.edges.(*directedEdgeStar).findCoveredLineEdges()
	}
	for _, de := range lb.op.graph.dirEdges() {
		e := de.edge
		if de.isLineEdge() && !e.coveredSet {
			e.setCovered(lb.op.isCoveredByArea(de.p0))
		}
	}
}

func (lb *lineBuilder) collectLines(opCode OverlayKind) {
	for _, de := range lb.op.graph.dirEdges() {
		lb.collectLineEdge(de, opCode)
		lb.collectBoundaryTouchEdge(de, opCode)
	}
}

func (lb *lineBuilder) collectLineEdge(de *DirectedEdge, opCode OverlayKind) {
	if !de.isLineEdge() {
		return
	}
	label := de.label
	e := de.edge
	if !de.visited && isResultOfOp(label, opCode) && !e.covered {
		lb.lineEdges = append(lb.lineEdges, e)
		de.setVisitedEdge(true)
	}
}

// collectBoundaryTouchEdge collects area boundary edges lying in the
// interior of the other area; for an intersection they contribute lines.
func (lb *lineBuilder) collectBoundaryTouchEdge(de *DirectedEdge, opCode OverlayKind) {
	if de.isLineEdge() || de.visited || de.isInteriorAreaEdge() || de.edge.inResult {
		return
	}
	if isResultOfOp(de.label, opCode) && opCode == OpIntersection {
		lb.lineEdges = append(lb.lineEdges, de.edge)
		de.setVisitedEdge(true)
	}
}

func (lb *lineBuilder) buildLines() {
	for _, e := range lb.lineEdges {
		line, err := lb.factory.LineString(geom.SequenceFromCoords(bestLayout(e.pts), e.pts))
		if err == nil {
			lb.lines = append(lb.lines, line)
		}
	}
}

// pointBuilder collects the 0-dimensional pieces of an overlay result:
// nodes satisfying the operation that are not covered by any result line
// or area.
type pointBuilder struct {
	op      *overlayOp
	factory *geom.Factory
}

func (pb *pointBuilder) build(opCode OverlayKind) []*geom.Geometry {
	var points []*geom.Geometry
	for _, n := range pb.op.graph.nodes.values() {
		if n.inResult {
			continue
		}
		// a node contributes a point if it has no incident edges at all or,
		// for intersections, whatever its degree; either way its label must
		// satisfy the op
		if n.edges.(*directedEdgeStar).degree() == 0 || opCode == OpIntersection {
			if n.label != nil && isResultOfOpLocations(n.label.On(0), n.label.On(1), opCode) {
				if !pb.op.isCoveredByLineOrArea(n.coord) {
					pt := pb.factory.PointFromCoord(n.coord)
					points = append(points, pt)
				}
			}
		}
	}
	return points
}
