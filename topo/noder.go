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

// SegmentString is a polyline with attached data, the unit of input and
// output of the noders.
type SegmentString struct {
	Pts  []geom.Coordinate
	Data any
}

// NodeSegments nodes a set of segment strings exactly: the output covers
// the same point set, no two output segments share an interior point, and
// every input vertex and intersection point is an output vertex.
//
// Exact noding computes intersection points in floating point, so output
// vertices of nearly-parallel inputs may be non-robust; use
// SnapRoundSegments for guaranteed-robust output on a grid.
func NodeSegments(strings []*SegmentString) ([]*SegmentString, error) {
	return nodeSegments(strings, nil)
}

// SnapRoundSegments nodes a set of segment strings with snap-rounding at
// the given fixed precision model: every output vertex lies on the grid,
// every vertex falling within the hot pixel of an intersection snaps to
// that pixel's centre, and topology is preserved up to the grid
// resolution. Segments may collapse; collapsed segments are removed.
func SnapRoundSegments(strings []*SegmentString, pm *geom.PrecisionModel) ([]*SegmentString, error) {
	if pm.IsFloating() {
		return nil, &geom.ArgumentError{Msg: "snap-rounding requires a fixed precision model"}
	}
	// round all input vertices onto the grid first
	rounded := make([]*SegmentString, 0, len(strings))
	for _, s := range strings {
		pts := snapCoords(s.Pts, pm)
		if len(pts) < 2 {
			continue
		}
		rounded = append(rounded, &SegmentString{Pts: pts, Data: s.Data})
	}
	return nodeSegments(rounded, pm)
}

func nodeSegments(strings []*SegmentString, pm *geom.PrecisionModel) ([]*SegmentString, error) {
	li := &lineIntersector{pm: pm}
	si := newSegmentIntersector(li, true, false)

	edges := make([]*Edge, 0, len(strings))
	for _, s := range strings {
		if len(s.Pts) < 2 {
			continue
		}
		e := newEdge(s.Pts, newLineLabel(LocNone))
		e.noderData = s.Data
		edges = append(edges, e)
	}
	computeSelfIntersections(edges, si, true)

	if pm != nil && !pm.IsFloating() {
		snapToHotPixels(edges, pm)
	}

	var out []*SegmentString
	for _, e := range edges {
		var split []*Edge
		e.eiList.addSplitEdges(&split)
		for _, piece := range split {
			pts := removeRepeatedCoords(piece.pts)
			if len(pts) < 2 {
				// collapsed by snapping
				continue
			}
			out = append(out, &SegmentString{Pts: pts, Data: e.noderData})
		}
	}
	return out, nil
}
