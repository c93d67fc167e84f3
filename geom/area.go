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

package geom

import "math"

// SignedRingArea returns the signed area of a closed ring: positive when the
// ring is counter-clockwise, negative when clockwise, 0 for degenerate rings.
func SignedRingArea(seq *Sequence) float64 {
	n := seq.Len()
	if n < 3 {
		return 0
	}
	// shoelace relative to the first vertex, for numerical stability with
	// large coordinates
	x0, y0 := seq.X(0), seq.Y(0)
	var sum float64
	for i := 1; i < n-1; i++ {
		ax, ay := seq.X(i)-x0, seq.Y(i)-y0
		bx, by := seq.X(i+1)-x0, seq.Y(i+1)-y0
		sum += ax*by - bx*ay
	}
	return sum / 2
}

// Area returns the planar area of the geometry: ring areas for polygons
// (holes subtracted), 0 for puntal and lineal geometries.
func Area(g *Geometry) float64 {
	switch g.Kind() {
	case KindPolygon:
		if g.IsEmpty() {
			return 0
		}
		area := math.Abs(SignedRingArea(g.ExteriorRing().Sequence()))
		for i := 0; i < g.NumInteriorRings(); i++ {
			area -= math.Abs(SignedRingArea(g.InteriorRingN(i).Sequence()))
		}
		return area
	case KindMultiPolygon, KindGeometryCollection:
		var area float64
		for i := 0; i < g.NumGeometries(); i++ {
			area += Area(g.GeometryN(i))
		}
		return area
	}
	return 0
}

// Length returns the total length of the lineal parts of the geometry,
// including polygon ring perimeters.
func Length(g *Geometry) float64 {
	switch g.Kind() {
	case KindLineString, KindLinearRing:
		seq := g.Sequence()
		var sum float64
		for i := 1; i < seq.Len(); i++ {
			sum += math.Hypot(seq.X(i)-seq.X(i-1), seq.Y(i)-seq.Y(i-1))
		}
		return sum
	case KindPolygon, KindMultiLineString, KindMultiPolygon, KindGeometryCollection:
		var sum float64
		for _, c := range g.elems {
			sum += Length(c)
		}
		return sum
	}
	return 0
}
