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

// Package geojson reads and writes geometries in the GeoJSON format and
// adapts them to the bleve index GeoJSON interface, answering spatial
// queries through the planar relate engine.
package geojson

import (
	"encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/blevesearch/planar/geom"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type rawShape struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
	Geometries  []rawShape      `json:"geometries,omitempty"`
}

// Unmarshal parses a GeoJSON geometry object into a geometry built by
// the given factory. A nil factory uses geom.DefaultFactory.
func Unmarshal(data []byte, f *geom.Factory) (*geom.Geometry, error) {
	if f == nil {
		f = geom.DefaultFactory
	}
	var raw rawShape
	if err := jsonAPI.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return decodeShape(&raw, f)
}

func decodeShape(raw *rawShape, f *geom.Factory) (*geom.Geometry, error) {
	switch raw.Type {
	case "Point":
		var pos []float64
		if err := decodeCoords(raw.Coordinates, &pos); err != nil {
			return nil, err
		}
		if len(pos) == 0 {
			return f.Point(nil)
		}
		c, layout, err := position(pos)
		if err != nil {
			return nil, err
		}
		return f.Point(geom.SequenceFromCoords(layout, []geom.Coordinate{c}))
	case "LineString":
		var pos [][]float64
		if err := decodeCoords(raw.Coordinates, &pos); err != nil {
			return nil, err
		}
		return decodeLine(pos, f)
	case "Polygon":
		var pos [][][]float64
		if err := decodeCoords(raw.Coordinates, &pos); err != nil {
			return nil, err
		}
		return decodePolygon(pos, f)
	case "MultiPoint":
		var pos [][]float64
		if err := decodeCoords(raw.Coordinates, &pos); err != nil {
			return nil, err
		}
		pts := make([]*geom.Geometry, 0, len(pos))
		for _, p := range pos {
			c, layout, err := position(p)
			if err != nil {
				return nil, err
			}
			pt, err := f.Point(geom.SequenceFromCoords(layout, []geom.Coordinate{c}))
			if err != nil {
				return nil, err
			}
			pts = append(pts, pt)
		}
		return f.MultiPoint(pts...)
	case "MultiLineString":
		var pos [][][]float64
		if err := decodeCoords(raw.Coordinates, &pos); err != nil {
			return nil, err
		}
		lines := make([]*geom.Geometry, 0, len(pos))
		for _, l := range pos {
			line, err := decodeLine(l, f)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
		}
		return f.MultiLineString(lines...)
	case "MultiPolygon":
		var pos [][][][]float64
		if err := decodeCoords(raw.Coordinates, &pos); err != nil {
			return nil, err
		}
		polys := make([]*geom.Geometry, 0, len(pos))
		for _, pp := range pos {
			poly, err := decodePolygon(pp, f)
			if err != nil {
				return nil, err
			}
			polys = append(polys, poly)
		}
		return f.MultiPolygon(polys...)
	case "GeometryCollection":
		geoms := make([]*geom.Geometry, 0, len(raw.Geometries))
		for i := range raw.Geometries {
			g, err := decodeShape(&raw.Geometries[i], f)
			if err != nil {
				return nil, err
			}
			geoms = append(geoms, g)
		}
		return f.GeometryCollection(geoms...)
	}
	return nil, fmt.Errorf("geojson: unknown geometry type %q", raw.Type)
}

func decodeCoords(raw json.RawMessage, into any) error {
	if len(raw) == 0 {
		return nil
	}
	return jsonAPI.Unmarshal(raw, into)
}

func position(pos []float64) (geom.Coordinate, geom.Layout, error) {
	switch len(pos) {
	case 2:
		return geom.Coord(pos[0], pos[1]), geom.XY, nil
	case 3:
		return geom.CoordZ(pos[0], pos[1], pos[2]), geom.XYZ, nil
	}
	return geom.Coordinate{}, geom.XY, fmt.Errorf("geojson: position needs 2 or 3 ordinates, found %d", len(pos))
}

func decodePositions(pos [][]float64) ([]geom.Coordinate, geom.Layout, error) {
	layout := geom.XY
	coords := make([]geom.Coordinate, 0, len(pos))
	for _, p := range pos {
		c, l, err := position(p)
		if err != nil {
			return nil, layout, err
		}
		if l == geom.XYZ {
			layout = geom.XYZ
		}
		coords = append(coords, c)
	}
	return coords, layout, nil
}

func decodeLine(pos [][]float64, f *geom.Factory) (*geom.Geometry, error) {
	coords, layout, err := decodePositions(pos)
	if err != nil {
		return nil, err
	}
	return f.LineString(geom.SequenceFromCoords(layout, coords))
}

func decodePolygon(pos [][][]float64, f *geom.Factory) (*geom.Geometry, error) {
	if len(pos) == 0 {
		return f.Polygon(nil)
	}
	rings := make([]*geom.Geometry, 0, len(pos))
	for _, ringPos := range pos {
		coords, layout, err := decodePositions(ringPos)
		if err != nil {
			return nil, err
		}
		ring, err := f.LinearRing(geom.SequenceFromCoords(layout, coords))
		if err != nil {
			return nil, err
		}
		rings = append(rings, ring)
	}
	return f.Polygon(rings[0], rings[1:]...)
}

// Marshal renders a geometry as a GeoJSON geometry object. M ordinates
// have no GeoJSON representation and are dropped.
func Marshal(g *geom.Geometry) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("geojson: nil geometry")
	}
	return jsonAPI.Marshal(encodeShape(g))
}

func encodeShape(g *geom.Geometry) map[string]any {
	switch g.Kind() {
	case geom.KindPoint:
		var coords any = []float64{}
		if !g.IsEmpty() {
			coords = encodePosition(g.Sequence(), 0)
		}
		return map[string]any{"type": "Point", "coordinates": coords}
	case geom.KindLineString, geom.KindLinearRing:
		return map[string]any{"type": "LineString", "coordinates": encodeLine(g.Sequence())}
	case geom.KindPolygon:
		return map[string]any{"type": "Polygon", "coordinates": encodePolygon(g)}
	case geom.KindMultiPoint:
		coords := make([]any, 0, g.NumGeometries())
		for i := 0; i < g.NumGeometries(); i++ {
			pt := g.GeometryN(i)
			if !pt.IsEmpty() {
				coords = append(coords, encodePosition(pt.Sequence(), 0))
			}
		}
		return map[string]any{"type": "MultiPoint", "coordinates": coords}
	case geom.KindMultiLineString:
		coords := make([]any, 0, g.NumGeometries())
		for i := 0; i < g.NumGeometries(); i++ {
			coords = append(coords, encodeLine(g.GeometryN(i).Sequence()))
		}
		return map[string]any{"type": "MultiLineString", "coordinates": coords}
	case geom.KindMultiPolygon:
		coords := make([]any, 0, g.NumGeometries())
		for i := 0; i < g.NumGeometries(); i++ {
			coords = append(coords, encodePolygon(g.GeometryN(i)))
		}
		return map[string]any{"type": "MultiPolygon", "coordinates": coords}
	default:
		geoms := make([]any, 0, g.NumGeometries())
		for i := 0; i < g.NumGeometries(); i++ {
			geoms = append(geoms, encodeShape(g.GeometryN(i)))
		}
		return map[string]any{"type": "GeometryCollection", "geometries": geoms}
	}
}

func encodePosition(seq *geom.Sequence, i int) []float64 {
	if seq.Layout().HasZ() {
		return []float64{seq.X(i), seq.Y(i), seq.Z(i)}
	}
	return []float64{seq.X(i), seq.Y(i)}
}

func encodeLine(seq *geom.Sequence) [][]float64 {
	out := make([][]float64, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		out = append(out, encodePosition(seq, i))
	}
	return out
}

func encodePolygon(poly *geom.Geometry) [][][]float64 {
	if poly.IsEmpty() {
		return [][][]float64{}
	}
	out := make([][][]float64, 0, 1+poly.NumInteriorRings())
	out = append(out, encodeLine(poly.ExteriorRing().Sequence()))
	for i := 0; i < poly.NumInteriorRings(); i++ {
		out = append(out, encodeLine(poly.InteriorRingN(i).Sequence()))
	}
	return out
}
