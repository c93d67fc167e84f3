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

// Boundary returns the topological boundary of a geometry: the mod-2
// endpoints of lineal input, the rings of polygonal input, and the empty
// set for puntal input.
func Boundary(g *geom.Geometry) (*geom.Geometry, error) {
	if g == nil {
		return nil, &geom.ArgumentError{Msg: "nil geometry"}
	}
	f := g.Factory()
	switch g.Kind() {
	case geom.KindPoint, geom.KindMultiPoint:
		return f.GeometryCollection()
	case geom.KindLineString, geom.KindLinearRing, geom.KindMultiLineString:
		return lineBoundary(g, f)
	case geom.KindPolygon:
		return polygonBoundary(g, f)
	case geom.KindMultiPolygon:
		var rings []*geom.Geometry
		for i := 0; i < g.NumGeometries(); i++ {
			b, err := polygonBoundary(g.GeometryN(i), f)
			if err != nil {
				return nil, err
			}
			for j := 0; j < b.NumGeometries(); j++ {
				if !b.GeometryN(j).IsEmpty() {
					rings = append(rings, b.GeometryN(j))
				}
			}
		}
		return f.MultiLineString(rings...)
	}
	return nil, &geom.UnsupportedError{What: "boundary of a geometry collection"}
}

// lineBoundary applies the mod-2 rule over the component endpoints.
func lineBoundary(g *geom.Geometry, f *geom.Factory) (*geom.Geometry, error) {
	counts := make(map[coordKey]int)
	coords := make(map[coordKey]geom.Coordinate)
	for i := 0; i < g.NumGeometries(); i++ {
		line := g.GeometryN(i)
		if line.IsEmpty() {
			continue
		}
		seq := line.Sequence()
		for _, c := range []geom.Coordinate{seq.Coord(0), seq.Coord(seq.Len() - 1)} {
			key := keyOf(c)
			counts[key]++
			coords[key] = c
		}
	}
	var pts []*geom.Geometry
	for key, count := range counts {
		if count%2 == 1 {
			pts = append(pts, f.PointFromCoord(coords[key]))
		}
	}
	sortGeometriesByCoord(pts)
	return f.MultiPoint(pts...)
}

func polygonBoundary(g *geom.Geometry, f *geom.Factory) (*geom.Geometry, error) {
	if g.IsEmpty() {
		return f.MultiLineString()
	}
	var rings []*geom.Geometry
	shell, err := ringToLine(g.ExteriorRing(), f)
	if err != nil {
		return nil, err
	}
	rings = append(rings, shell)
	for i := 0; i < g.NumInteriorRings(); i++ {
		hole, err := ringToLine(g.InteriorRingN(i), f)
		if err != nil {
			return nil, err
		}
		rings = append(rings, hole)
	}
	return f.MultiLineString(rings...)
}

func ringToLine(ring *geom.Geometry, f *geom.Factory) (*geom.Geometry, error) {
	return f.LineString(ring.Sequence())
}

func sortGeometriesByCoord(geoms []*geom.Geometry) {
	for i := 1; i < len(geoms); i++ {
		for j := i; j > 0; j-- {
			ci, _ := geoms[j].Coordinate()
			cj, _ := geoms[j-1].Coordinate()
			if cj.Compare(ci) <= 0 {
				break
			}
			geoms[j], geoms[j-1] = geoms[j-1], geoms[j]
		}
	}
}
