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

import (
	"math"
	"sort"
)

// EqualsExact reports whether a and b have the same variant, the same
// structure, and coordinates pairwise within tolerance in X and Y.
// This is structural equality; use the topological Equals predicate for
// point-set equality.
func EqualsExact(a, b *Geometry, tolerance float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindPoint, KindLineString, KindLinearRing:
		return sequencesEqual(a.Sequence(), b.Sequence(), tolerance)
	}
	if len(a.elems) != len(b.elems) {
		return false
	}
	for i := range a.elems {
		if !EqualsExact(a.elems[i], b.elems[i], tolerance) {
			return false
		}
	}
	return true
}

func sequencesEqual(a, b *Sequence, tolerance float64) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i, n := 0, a.Len(); i < n; i++ {
		if math.Abs(a.X(i)-b.X(i)) > tolerance ||
			math.Abs(a.Y(i)-b.Y(i)) > tolerance {
			return false
		}
	}
	return true
}

// Reverse returns a copy of the geometry with every coordinate sequence
// reversed.
func Reverse(g *Geometry) *Geometry {
	switch g.Kind() {
	case KindPoint:
		return g
	case KindLineString, KindLinearRing:
		return &Geometry{
			kind: g.kind, seq: g.seq.Reversed(),
			srid: g.srid, factory: g.factory,
		}
	}
	elems := make([]*Geometry, len(g.elems))
	for i, c := range g.elems {
		elems[i] = Reverse(c)
	}
	return &Geometry{kind: g.kind, elems: elems, srid: g.srid, factory: g.factory}
}

// Normalize rewrites the geometry in place into its canonical form:
// linestrings ordered forward, polygon shells clockwise with holes
// counter-clockwise and rings started at their minimum coordinate,
// collection components sorted. Normalize is a caller-opt-in mutation and
// must not be invoked on a geometry reachable from another goroutine.
func Normalize(g *Geometry) {
	switch g.Kind() {
	case KindPoint:
	case KindLineString:
		if compareCoords(g.seq.Coords(), g.seq.Reversed().Coords()) > 0 {
			g.seq = g.seq.Reversed()
		}
	case KindLinearRing:
		g.seq = normalizedRing(g.seq, true)
	case KindPolygon:
		if !g.IsEmpty() {
			g.elems[0].seq = normalizedRing(g.elems[0].seq, true)
			for i := 1; i < len(g.elems); i++ {
				g.elems[i].seq = normalizedRing(g.elems[i].seq, false)
			}
		}
	default:
		for _, c := range g.elems {
			Normalize(c)
		}
		sort.SliceStable(g.elems, func(i, j int) bool {
			return compareCoords(g.elems[i].Coordinates(), g.elems[j].Coordinates()) < 0
		})
	}
}

// normalizedRing rotates a closed ring to start at its minimum coordinate
// and orients it clockwise (shells) or counter-clockwise (holes).
func normalizedRing(seq *Sequence, clockwise bool) *Sequence {
	n := seq.Len()
	if n == 0 {
		return seq
	}
	coords := seq.Coords()
	// drop the closing point while rotating
	open := coords[:n-1]
	minIdx := 0
	for i, c := range open {
		if c.Compare(open[minIdx]) < 0 {
			minIdx = i
		}
	}
	rotated := make([]Coordinate, 0, n)
	rotated = append(rotated, open[minIdx:]...)
	rotated = append(rotated, open[:minIdx]...)
	rotated = append(rotated, open[minIdx])
	out := SequenceFromCoords(seq.Layout(), rotated)
	isCCW := SignedRingArea(out) > 0
	if isCCW == clockwise {
		out = out.Reversed()
		out = normalizedStart(out)
	}
	return out
}

func normalizedStart(seq *Sequence) *Sequence {
	// reversing moved the minimum coordinate to the end; rotate it back front
	n := seq.Len()
	if n == 0 {
		return seq
	}
	coords := seq.Coords()
	open := coords[:n-1]
	minIdx := 0
	for i, c := range open {
		if c.Compare(open[minIdx]) < 0 {
			minIdx = i
		}
	}
	rotated := make([]Coordinate, 0, n)
	rotated = append(rotated, open[minIdx:]...)
	rotated = append(rotated, open[:minIdx]...)
	rotated = append(rotated, open[minIdx])
	return SequenceFromCoords(seq.Layout(), rotated)
}

func compareCoords(a, b []Coordinate) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if cmp := a[i].Compare(b[i]); cmp != 0 {
			return cmp
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Centroid returns the centroid of the highest-dimension parts of the
// geometry. It returns an EmptyGeometryError for empty input.
func Centroid(g *Geometry) (Coordinate, error) {
	if g == nil || g.IsEmpty() {
		return Coordinate{}, &EmptyGeometryError{Op: "Centroid"}
	}
	switch g.Dimension() {
	case 2:
		if c, ok := areaCentroid(g); ok {
			return c, nil
		}
		fallthrough
	case 1:
		if c, ok := lineCentroid(g); ok {
			return c, nil
		}
		fallthrough
	default:
		return pointCentroid(g), nil
	}
}

func areaCentroid(g *Geometry) (Coordinate, bool) {
	var area2, cx, cy float64
	var walk func(g *Geometry)
	addRing := func(seq *Sequence, sign float64) {
		n := seq.Len()
		if n < 4 {
			return
		}
		ringSign := sign
		if SignedRingArea(seq) < 0 {
			ringSign = -sign
		}
		for i := 0; i < n-1; i++ {
			ax, ay := seq.X(i), seq.Y(i)
			bx, by := seq.X(i+1), seq.Y(i+1)
			cross := ringSign * (ax*by - bx*ay)
			area2 += cross
			cx += cross * (ax + bx)
			cy += cross * (ay + by)
		}
	}
	walk = func(g *Geometry) {
		switch g.Kind() {
		case KindPolygon:
			if g.IsEmpty() {
				return
			}
			addRing(g.ExteriorRing().Sequence(), 1)
			for i := 0; i < g.NumInteriorRings(); i++ {
				addRing(g.InteriorRingN(i).Sequence(), -1)
			}
		case KindMultiPolygon, KindGeometryCollection:
			for i := 0; i < g.NumGeometries(); i++ {
				walk(g.GeometryN(i))
			}
		}
	}
	walk(g)
	if area2 == 0 {
		return Coordinate{}, false
	}
	return Coord(cx/(3*area2), cy/(3*area2)), true
}

func lineCentroid(g *Geometry) (Coordinate, bool) {
	var length, cx, cy float64
	var walk func(g *Geometry)
	walk = func(g *Geometry) {
		switch g.Kind() {
		case KindLineString, KindLinearRing:
			seq := g.Sequence()
			for i := 1; i < seq.Len(); i++ {
				segLen := math.Hypot(seq.X(i)-seq.X(i-1), seq.Y(i)-seq.Y(i-1))
				length += segLen
				cx += segLen * (seq.X(i) + seq.X(i-1)) / 2
				cy += segLen * (seq.Y(i) + seq.Y(i-1)) / 2
			}
		case KindPolygon, KindMultiLineString, KindMultiPolygon, KindGeometryCollection:
			for _, c := range g.elems {
				walk(c)
			}
		}
	}
	walk(g)
	if length == 0 {
		return Coordinate{}, false
	}
	return Coord(cx/length, cy/length), true
}

func pointCentroid(g *Geometry) Coordinate {
	coords := g.Coordinates()
	var cx, cy float64
	for _, c := range coords {
		cx += c.X
		cy += c.Y
	}
	n := float64(len(coords))
	return Coord(cx/n, cy/n)
}

// InteriorPoint returns a point guaranteed to lie in the geometry: inside
// the area for polygonal input, on the line for lineal input, a member
// point for puntal input. It returns an EmptyGeometryError for empty input.
func InteriorPoint(g *Geometry) (Coordinate, error) {
	if g == nil || g.IsEmpty() {
		return Coordinate{}, &EmptyGeometryError{Op: "InteriorPoint"}
	}
	if g.Dimension() == 2 {
		if c, ok := interiorPointArea(g); ok {
			return c, nil
		}
	}
	// lineal and puntal input: vertex nearest the centroid
	cen, err := Centroid(g)
	if err != nil {
		return Coordinate{}, err
	}
	best := Coordinate{}
	bestDist := math.Inf(1)
	for _, c := range g.Coordinates() {
		if d := c.Distance(cen); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, nil
}

// PointOnSurface is the conventional SFS name for InteriorPoint.
func PointOnSurface(g *Geometry) (Coordinate, error) {
	return InteriorPoint(g)
}

// interiorPointArea finds an interior point of a polygonal geometry with a
// horizontal bisector scan: the midpoint of the widest run of interior along
// the line through the centre of the envelope.
func interiorPointArea(g *Geometry) (Coordinate, bool) {
	best := Coordinate{}
	bestWidth := -1.0
	for i := 0; i < g.NumGeometries(); i++ {
		poly := g.GeometryN(i)
		if poly.Kind() == KindGeometryCollection {
			if c, ok := interiorPointArea(poly); ok {
				if bestWidth < 0 {
					best, bestWidth = c, 0
				}
			}
			continue
		}
		if poly.Kind() != KindPolygon || poly.IsEmpty() {
			continue
		}
		env := poly.Envelope()
		y := avoidVertexY(poly, env.Y.Center())
		var xs []float64
		for _, ring := range poly.elems {
			seq := ring.Sequence()
			for j := 1; j < seq.Len(); j++ {
				y0, y1 := seq.Y(j-1), seq.Y(j)
				if (y0 <= y && y1 > y) || (y1 <= y && y0 > y) {
					t := (y - y0) / (y1 - y0)
					xs = append(xs, seq.X(j-1)+t*(seq.X(j)-seq.X(j-1)))
				}
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)
		for j := 0; j+1 < len(xs); j += 2 {
			if w := xs[j+1] - xs[j]; w > bestWidth {
				bestWidth = w
				best = Coord((xs[j]+xs[j+1])/2, y)
			}
		}
	}
	return best, bestWidth >= 0
}

// avoidVertexY nudges the scan ordinate off any ring vertex so every
// boundary crossing is transversal.
func avoidVertexY(poly *Geometry, y float64) float64 {
	env := poly.Envelope()
	for tries := 0; tries < 16; tries++ {
		onVertex := false
		for _, ring := range poly.elems {
			seq := ring.Sequence()
			for j := 0; j < seq.Len(); j++ {
				if seq.Y(j) == y {
					onVertex = true
				}
			}
		}
		if !onVertex {
			return y
		}
		y += (env.MaxY() - env.MinY()) * 1e-7
		if y >= env.MaxY() {
			y = env.Y.Center() * (1 - 1e-9)
		}
	}
	return y
}
