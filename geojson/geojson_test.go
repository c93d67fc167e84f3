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

package geojson

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/blevesearch/planar/geom"
)

func TestUnmarshalPoint(t *testing.T) {
	g, err := Unmarshal([]byte(`{"type":"Point","coordinates":[1.5,2.5]}`), nil)
	require.NoError(t, err)
	require.Equal(t, geom.KindPoint, g.Kind())
	c := g.Sequence().Coord(0)
	require.True(t, c.Equals2D(geom.Coord(1.5, 2.5)), "got %v", c)
	require.False(t, c.HasZ() || c.HasM(), "got %v", c)
}

func TestUnmarshalPointWithElevation(t *testing.T) {
	g, err := Unmarshal([]byte(`{"type":"Point","coordinates":[1,2,3]}`), nil)
	require.NoError(t, err)
	require.Equal(t, geom.XYZ, g.Sequence().Layout())
	require.Equal(t, 3.0, g.Sequence().Z(0))
}

func TestUnmarshalPolygon(t *testing.T) {
	src := `{"type":"Polygon","coordinates":[
		[[0,0],[10,0],[10,10],[0,10],[0,0]],
		[[2,2],[8,2],[8,8],[2,8],[2,2]]]}`
	g, err := Unmarshal([]byte(src), nil)
	require.NoError(t, err)
	require.Equal(t, geom.KindPolygon, g.Kind())
	require.Equal(t, 1, g.NumInteriorRings())
}

func TestUnmarshalCollection(t *testing.T) {
	src := `{"type":"GeometryCollection","geometries":[
		{"type":"Point","coordinates":[1,1]},
		{"type":"LineString","coordinates":[[0,0],[1,1]]}]}`
	g, err := Unmarshal([]byte(src), nil)
	require.NoError(t, err)
	require.Equal(t, geom.KindGeometryCollection, g.Kind())
	require.Equal(t, 2, g.NumGeometries())
}

func TestUnmarshalUnknownType(t *testing.T) {
	_, err := Unmarshal([]byte(`{"type":"Circle","coordinates":[0,0]}`), nil)
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	sources := []string{
		`{"type":"Point","coordinates":[1,2]}`,
		`{"type":"LineString","coordinates":[[0,0],[10,10]]}`,
		`{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,10],[0,0]]]}`,
		`{"type":"MultiPoint","coordinates":[[1,1],[2,2]]}`,
		`{"type":"MultiLineString","coordinates":[[[0,0],[1,1]],[[2,2],[3,3]]]}`,
		`{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,1],[0,0]]]]}`,
	}
	for _, src := range sources {
		first, err := Unmarshal([]byte(src), nil)
		require.NoError(t, err, src)
		data, err := Marshal(first)
		require.NoError(t, err, src)
		second, err := Unmarshal(data, nil)
		require.NoError(t, err, string(data))
		if !geom.EqualsExact(first, second, 0) {
			t.Errorf("round trip changed geometry: %s",
				cmp.Diff(first.Coordinates(), second.Coordinates()))
		}
	}
}

func TestShapePredicates(t *testing.T) {
	poly, err := Unmarshal([]byte(`{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,10],[0,0]]]}`), nil)
	require.NoError(t, err)
	pt, err := Unmarshal([]byte(`{"type":"Point","coordinates":[5,5]}`), nil)
	require.NoError(t, err)
	far, err := Unmarshal([]byte(`{"type":"Point","coordinates":[50,50]}`), nil)
	require.NoError(t, err)

	polyShape, err := NewShape(poly)
	require.NoError(t, err)
	ptShape, err := NewShape(pt)
	require.NoError(t, err)
	farShape, err := NewShape(far)
	require.NoError(t, err)

	require.Equal(t, "polygon", polyShape.Type())
	require.Equal(t, "point", ptShape.Type())

	intersects, err := polyShape.Intersects(ptShape)
	require.NoError(t, err)
	require.True(t, intersects)

	contains, err := polyShape.Contains(ptShape)
	require.NoError(t, err)
	require.True(t, contains)

	intersects, err = polyShape.Intersects(farShape)
	require.NoError(t, err)
	require.False(t, intersects)

	value, err := polyShape.Value()
	require.NoError(t, err)
	reparsed, err := Unmarshal(value, nil)
	require.NoError(t, err)
	require.True(t, geom.EqualsExact(poly, reparsed, 0))
}
