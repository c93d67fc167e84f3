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

package wkt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blevesearch/planar/geom"
)

func TestUnmarshalBasics(t *testing.T) {
	tests := []struct {
		src   string
		kind  geom.Kind
		empty bool
	}{
		{"POINT(1 1)", geom.KindPoint, false},
		{"POINT EMPTY", geom.KindPoint, true},
		{"LINESTRING(0 0,10 10)", geom.KindLineString, false},
		{"LINESTRING EMPTY", geom.KindLineString, true},
		{"POLYGON((0 0,10 0,10 10,0 10,0 0))", geom.KindPolygon, false},
		{"POLYGON EMPTY", geom.KindPolygon, true},
		{"MULTIPOINT((1 1),(2 2))", geom.KindMultiPoint, false},
		{"MULTIPOINT(1 1,2 2)", geom.KindMultiPoint, false},
		{"MULTILINESTRING((0 0,1 1),(2 2,3 3))", geom.KindMultiLineString, false},
		{"MULTIPOLYGON(((0 0,1 0,1 1,0 1,0 0)))", geom.KindMultiPolygon, false},
		{"GEOMETRYCOLLECTION(POINT(1 1),LINESTRING(0 0,1 1))", geom.KindGeometryCollection, false},
		{"GEOMETRYCOLLECTION EMPTY", geom.KindGeometryCollection, true},
	}
	for _, test := range tests {
		g, err := Unmarshal(test.src, nil)
		require.NoError(t, err, test.src)
		require.Equal(t, test.kind, g.Kind(), test.src)
		require.Equal(t, test.empty, g.IsEmpty(), test.src)
	}
}

func TestUnmarshalDimensionality(t *testing.T) {
	g, err := Unmarshal("POINT Z (1 2 3)", nil)
	require.NoError(t, err)
	require.Equal(t, geom.XYZ, g.Sequence().Layout())
	require.Equal(t, 3.0, g.Sequence().Z(0))

	g, err = Unmarshal("LINESTRING M (0 0 1, 1 1 2)", nil)
	require.NoError(t, err)
	require.Equal(t, geom.XYM, g.Sequence().Layout())
	require.Equal(t, 2.0, g.Sequence().M(1))

	g, err = Unmarshal("POINT ZM (1 2 3 4)", nil)
	require.NoError(t, err)
	require.Equal(t, geom.XYZM, g.Sequence().Layout())
	require.Equal(t, 3.0, g.Sequence().Z(0))
	require.Equal(t, 4.0, g.Sequence().M(0))

	_, err = Unmarshal("POINT Z (1 2)", nil)
	require.Error(t, err, "wrong ordinate count must fail")
}

func TestUnmarshalPolygonWithHole(t *testing.T) {
	g, err := Unmarshal("POLYGON((0 0,10 0,10 10,0 10,0 0),(2 2,8 2,8 8,2 8,2 2))", nil)
	require.NoError(t, err)
	require.Equal(t, 1, g.NumInteriorRings())
	c := g.InteriorRingN(0).Sequence().Coord(0)
	require.True(t, c.Equals2D(geom.Coord(2, 2)), "got %v", c)
	require.False(t, c.HasZ() || c.HasM(), "got %v", c)
}

func TestUnmarshalScientificNotation(t *testing.T) {
	g, err := Unmarshal("POINT(1.5e2 -2.5E-1)", nil)
	require.NoError(t, err)
	c := g.Sequence().Coord(0)
	require.Equal(t, 150.0, c.X)
	require.Equal(t, -0.25, c.Y)
}

func TestUnmarshalErrors(t *testing.T) {
	bad := []string{
		"",
		"BOGUS(1 1)",
		"POINT(1)",
		"POINT(1 1",
		"LINESTRING(0 0)",
		"POLYGON((0 0,1 0,1 1))",
		"POINT(1 1) trailing",
	}
	for _, src := range bad {
		_, err := Unmarshal(src, nil)
		require.Error(t, err, "parsing %q should fail", src)
	}
}

func TestUnmarshalFactorySRID(t *testing.T) {
	f := geom.NewFactory(geom.Floating(), 4326)
	g, err := Unmarshal("POINT(1 1)", f)
	require.NoError(t, err)
	require.Equal(t, 4326, g.SRID())
}

func TestRoundTrip(t *testing.T) {
	sources := []string{
		"POINT(1 2)",
		"POINT Z(1 2 3)",
		"POINT ZM(1 2 3 4)",
		"POINT EMPTY",
		"LINESTRING(0 0,10 10,20 0)",
		"POLYGON((0 0,10 0,10 10,0 10,0 0),(2 2,8 2,8 8,2 8,2 2))",
		"MULTIPOINT((1 1),(2 2))",
		"MULTILINESTRING((0 0,1 1),(2 2,3 3))",
		"MULTIPOLYGON(((0 0,1 0,1 1,0 1,0 0)),((5 5,6 5,6 6,5 6,5 5)))",
		"GEOMETRYCOLLECTION(POINT(1 1),LINESTRING(0 0,1 1))",
		"GEOMETRYCOLLECTION EMPTY",
	}
	for _, src := range sources {
		first, err := Unmarshal(src, nil)
		require.NoError(t, err, src)
		out, err := Marshal(first)
		require.NoError(t, err, src)
		second, err := Unmarshal(out, nil)
		require.NoError(t, err, out)
		require.True(t, geom.EqualsExact(first, second, 0),
			"round trip changed %q -> %q", src, out)
		if first.Sequence() != nil {
			require.Equal(t, first.Sequence().Layout(), second.Sequence().Layout(), src)
		}
	}
}

func TestMarshalDeterministic(t *testing.T) {
	g, err := Unmarshal("POLYGON((0 0,10 0,10 10,0 10,0 0))", nil)
	require.NoError(t, err)
	first, err := Marshal(g)
	require.NoError(t, err)
	second, err := Marshal(g)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
