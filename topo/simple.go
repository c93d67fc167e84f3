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

// IsSimple reports whether a geometry is simple: lineal geometries
// self-intersect only at shared endpoints, puntal geometries have no
// repeated points. Polygonal geometries are simple by definition (their
// constraints are validity, not simplicity).
func IsSimple(g *geom.Geometry) (bool, error) {
	if g == nil {
		return false, &geom.ArgumentError{Msg: "nil geometry"}
	}
	switch g.Kind() {
	case geom.KindPoint, geom.KindPolygon, geom.KindMultiPolygon:
		return true, nil
	case geom.KindMultiPoint:
		return isSimpleMultiPoint(g), nil
	case geom.KindLineString, geom.KindLinearRing, geom.KindMultiLineString:
		return isSimpleLinear(g)
	}
	// a collection is simple if all components are
	for i := 0; i < g.NumGeometries(); i++ {
		simple, err := IsSimple(g.GeometryN(i))
		if err != nil || !simple {
			return false, err
		}
	}
	return true, nil
}

func isSimpleMultiPoint(g *geom.Geometry) bool {
	seen := make(map[coordKey]struct{})
	for i := 0; i < g.NumGeometries(); i++ {
		pt := g.GeometryN(i)
		if pt.IsEmpty() {
			continue
		}
		key := keyOf(pt.Sequence().Coord(0))
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}

func isSimpleLinear(g *geom.Geometry) (bool, error) {
	if g.IsEmpty() {
		return true, nil
	}
	gg, err := newGeometryGraph(0, g, Mod2BoundaryNodeRule{})
	if err != nil {
		return false, err
	}
	var li lineIntersector
	si := gg.computeSelfNodes(&li, true)
	if !si.hasIntersectionV {
		return true, nil
	}
	if si.hasProper {
		return false, nil
	}
	if hasNonEndpointIntersection(gg) {
		return false, nil
	}
	if hasClosedEndpointIntersection(gg) {
		return false, nil
	}
	return true, nil
}

// hasNonEndpointIntersection reports an intersection lying in the
// interior of some edge.
func hasNonEndpointIntersection(gg *geometryGraph) bool {
	for _, e := range gg.edges {
		maxSegmentIndex := len(e.pts) - 1
		for _, ei := range e.eiList.list {
			isEndpoint := (ei.segmentIndex == 0 && ei.dist == 0) ||
				ei.segmentIndex == maxSegmentIndex
			if !isEndpoint {
				return true
			}
		}
	}
	return false
}

// hasClosedEndpointIntersection reports an endpoint of a closed component
// that also touches another component: the mod-2 rule makes such an
// endpoint an interior point, so the touch is a self-intersection.
func hasClosedEndpointIntersection(gg *geometryGraph) bool {
	type endpointInfo struct {
		isClosed bool
		degree   int
	}
	endpoints := make(map[coordKey]*endpointInfo)
	addEndpoint := func(pt geom.Coordinate, isClosed bool) {
		key := keyOf(pt)
		info := endpoints[key]
		if info == nil {
			info = &endpointInfo{}
			endpoints[key] = info
		}
		info.isClosed = info.isClosed || isClosed
		info.degree++
	}
	for _, e := range gg.edges {
		isClosed := e.isClosed()
		addEndpoint(e.pts[0], isClosed)
		addEndpoint(e.pts[len(e.pts)-1], isClosed)
	}
	for _, info := range endpoints {
		if info.isClosed && info.degree != 2 {
			return true
		}
	}
	return false
}
