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

// Relate computes the DE-9IM intersection matrix of two geometries.
func Relate(a, b *geom.Geometry) (*IntersectionMatrix, error) {
	return RelateWithContext(context.Background(), a, b)
}

// RelateWithContext is Relate with cooperative cancellation.
func RelateWithContext(ctx context.Context, a, b *geom.Geometry) (*IntersectionMatrix, error) {
	if a == nil || b == nil {
		return nil, &geom.ArgumentError{Msg: "nil geometry"}
	}
	rc, err := newRelateComputer(a, b, nil)
	if err != nil {
		return nil, err
	}
	return rc.computeIM(ctx)
}

// RelateWithRule computes the DE-9IM matrix under a non-default boundary
// node rule. The default for Relate is the OGC Mod-2 rule.
func RelateWithRule(ctx context.Context, a, b *geom.Geometry, rule BoundaryNodeRule) (*IntersectionMatrix, error) {
	if a == nil || b == nil {
		return nil, &geom.ArgumentError{Msg: "nil geometry"}
	}
	rc, err := newRelateComputer(a, b, rule)
	if err != nil {
		return nil, err
	}
	return rc.computeIM(ctx)
}

// RelateMatrix returns the DE-9IM matrix as its 9-character string form.
func RelateMatrix(a, b *geom.Geometry) (string, error) {
	im, err := Relate(a, b)
	if err != nil {
		return "", err
	}
	return im.String(), nil
}

// RelatePattern reports whether the DE-9IM matrix of the two geometries
// matches the given 9-character pattern.
func RelatePattern(a, b *geom.Geometry, pattern string) (bool, error) {
	im, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return im.Matches(pattern)
}

// Intersects reports whether the two geometries share any point.
func Intersects(a, b *geom.Geometry) (bool, error) {
	if a == nil || b == nil {
		return false, &geom.ArgumentError{Msg: "nil geometry"}
	}
	if a.IsEmpty() || b.IsEmpty() {
		return false, nil
	}
	if !a.Envelope().Intersects(b.Envelope()) {
		return false, nil
	}
	// single points locate directly
	if a.Kind() == geom.KindPoint {
		return Locate(a.Sequence().Coord(0), b) != LocExterior, nil
	}
	if b.Kind() == geom.KindPoint {
		return Locate(b.Sequence().Coord(0), a) != LocExterior, nil
	}
	if a.IsRectangle() {
		return rectangleIntersects(a, b), nil
	}
	if b.IsRectangle() {
		return rectangleIntersects(b, a), nil
	}
	im, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return im.IsIntersects(), nil
}

// Disjoint reports whether the two geometries share no point.
func Disjoint(a, b *geom.Geometry) (bool, error) {
	ok, err := Intersects(a, b)
	return !ok, err
}

// Contains reports whether b lies in a, with at least one point of b in
// the interior of a.
func Contains(a, b *geom.Geometry) (bool, error) {
	if a == nil || b == nil {
		return false, &geom.ArgumentError{Msg: "nil geometry"}
	}
	if a.IsEmpty() || b.IsEmpty() {
		return false, nil
	}
	if !a.Envelope().Contains(b.Envelope()) {
		return false, nil
	}
	if a.IsRectangle() {
		return rectangleContains(a, b), nil
	}
	im, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return im.IsContains(), nil
}

// Within reports whether a lies in b.
func Within(a, b *geom.Geometry) (bool, error) {
	return Contains(b, a)
}

// Covers reports whether every point of b lies in a.
func Covers(a, b *geom.Geometry) (bool, error) {
	if a == nil || b == nil {
		return false, &geom.ArgumentError{Msg: "nil geometry"}
	}
	if a.IsEmpty() || b.IsEmpty() {
		return false, nil
	}
	if !a.Envelope().Contains(b.Envelope()) {
		return false, nil
	}
	if a.IsRectangle() {
		// covers is the envelope test for a rectangle
		return true, nil
	}
	im, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return im.IsCovers(), nil
}

// CoveredBy reports whether every point of a lies in b.
func CoveredBy(a, b *geom.Geometry) (bool, error) {
	return Covers(b, a)
}

// Touches reports whether the geometries intersect only on their
// boundaries.
func Touches(a, b *geom.Geometry) (bool, error) {
	if a == nil || b == nil {
		return false, &geom.ArgumentError{Msg: "nil geometry"}
	}
	if a.IsEmpty() || b.IsEmpty() {
		return false, nil
	}
	if !a.Envelope().Intersects(b.Envelope()) {
		return false, nil
	}
	im, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return im.IsTouches(a.Dimension(), b.Dimension()), nil
}

// Crosses reports whether the geometries cross.
func Crosses(a, b *geom.Geometry) (bool, error) {
	if a == nil || b == nil {
		return false, &geom.ArgumentError{Msg: "nil geometry"}
	}
	if a.IsEmpty() || b.IsEmpty() {
		return false, nil
	}
	if !a.Envelope().Intersects(b.Envelope()) {
		return false, nil
	}
	im, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return im.IsCrosses(a.Dimension(), b.Dimension()), nil
}

// Overlaps reports whether the geometries overlap.
func Overlaps(a, b *geom.Geometry) (bool, error) {
	if a == nil || b == nil {
		return false, &geom.ArgumentError{Msg: "nil geometry"}
	}
	if a.IsEmpty() || b.IsEmpty() {
		return false, nil
	}
	if !a.Envelope().Intersects(b.Envelope()) {
		return false, nil
	}
	im, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return im.IsOverlaps(a.Dimension(), b.Dimension()), nil
}

// EqualsTopo reports topological equality: the geometries occupy the same
// point set. Two empty geometries are equal.
func EqualsTopo(a, b *geom.Geometry) (bool, error) {
	if a == nil || b == nil {
		return false, &geom.ArgumentError{Msg: "nil geometry"}
	}
	if a.IsEmpty() && b.IsEmpty() {
		return true, nil
	}
	if a.IsEmpty() != b.IsEmpty() {
		return false, nil
	}
	if a.Envelope() != b.Envelope() {
		return false, nil
	}
	im, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return im.IsEquals(a.Dimension(), b.Dimension()), nil
}

// rectangleContains implements the O(n) containment scan for a rectangle:
// the envelope must cover the geometry, and the geometry must not lie
// wholly in the rectangle's boundary.
func rectangleContains(rect, g *geom.Geometry) bool {
	env := rect.Envelope()
	if !env.Contains(g.Envelope()) {
		return false
	}
	return !isContainedInBoundary(env, g)
}

func isContainedInBoundary(env geom.Envelope, g *geom.Geometry) bool {
	// polygons can never lie wholly in a rectangle boundary
	if g.Dimension() == 2 {
		return false
	}
	switch g.Kind() {
	case geom.KindPoint:
		return isPointOnEnvelopeBoundary(env, g.Sequence().Coord(0))
	case geom.KindLineString, geom.KindLinearRing:
		seq := g.Sequence()
		for i := 1; i < seq.Len(); i++ {
			if !isSegmentOnEnvelopeBoundary(env, seq.Coord(i-1), seq.Coord(i)) {
				return false
			}
		}
		return true
	default:
		for i := 0; i < g.NumGeometries(); i++ {
			if !isContainedInBoundary(env, g.GeometryN(i)) {
				return false
			}
		}
		return true
	}
}

func isPointOnEnvelopeBoundary(env geom.Envelope, p geom.Coordinate) bool {
	return p.X == env.MinX() || p.X == env.MaxX() ||
		p.Y == env.MinY() || p.Y == env.MaxY()
}

// isSegmentOnEnvelopeBoundary reports whether the whole segment lies on
// one side of the envelope boundary.
func isSegmentOnEnvelopeBoundary(env geom.Envelope, p0, p1 geom.Coordinate) bool {
	if p0.Equals2D(p1) {
		return isPointOnEnvelopeBoundary(env, p0)
	}
	if p0.X == p1.X && (p0.X == env.MinX() || p0.X == env.MaxX()) {
		return true
	}
	if p0.Y == p1.Y && (p0.Y == env.MinY() || p0.Y == env.MaxY()) {
		return true
	}
	return false
}

// rectangleIntersects implements the O(n) intersection scan for a
// rectangle: envelope tests per component, a rectangle corner inside the
// geometry, or a boundary segment crossing.
func rectangleIntersects(rect, g *geom.Geometry) bool {
	rectEnv := rect.Envelope()
	// a component vertex inside the rectangle envelope intersects
	if envelopeIntersectsComponent(rectEnv, g) {
		return true
	}
	// a rectangle corner inside a polygonal component
	if g.Dimension() == 2 {
		corners := []geom.Coordinate{
			geom.Coord(rectEnv.MinX(), rectEnv.MinY()),
			geom.Coord(rectEnv.MinX(), rectEnv.MaxY()),
			geom.Coord(rectEnv.MaxX(), rectEnv.MaxY()),
			geom.Coord(rectEnv.MaxX(), rectEnv.MinY()),
		}
		for _, c := range corners {
			if Locate(c, g) != LocExterior {
				return true
			}
		}
	}
	// a boundary segment crossing the rectangle
	shell := rect.ExteriorRing().Sequence().Coords()
	return anySegmentIntersectsRing(g, shell)
}

func envelopeIntersectsComponent(rectEnv geom.Envelope, g *geom.Geometry) bool {
	switch g.Kind() {
	case geom.KindPoint, geom.KindLineString, geom.KindLinearRing:
		seq := g.Sequence()
		for i := 0; i < seq.Len(); i++ {
			if rectEnv.ContainsXY(seq.X(i), seq.Y(i)) {
				return true
			}
		}
		return false
	case geom.KindPolygon:
		if g.IsEmpty() {
			return false
		}
		return envelopeIntersectsComponent(rectEnv, g.ExteriorRing())
	default:
		for i := 0; i < g.NumGeometries(); i++ {
			if envelopeIntersectsComponent(rectEnv, g.GeometryN(i)) {
				return true
			}
		}
		return false
	}
}

func anySegmentIntersectsRing(g *geom.Geometry, ring []geom.Coordinate) bool {
	switch g.Kind() {
	case geom.KindPoint:
		return false
	case geom.KindLineString, geom.KindLinearRing:
		seq := g.Sequence()
		for i := 1; i < seq.Len(); i++ {
			p0, p1 := seq.Coord(i-1), seq.Coord(i)
			for j := 1; j < len(ring); j++ {
				res := SegmentIntersection(p0, p1, ring[j-1], ring[j])
				if res.Kind != NoIntersection {
					return true
				}
			}
		}
		return false
	case geom.KindPolygon:
		if g.IsEmpty() {
			return false
		}
		if anySegmentIntersectsRing(g.ExteriorRing(), ring) {
			return true
		}
		for i := 0; i < g.NumInteriorRings(); i++ {
			if anySegmentIntersectsRing(g.InteriorRingN(i), ring) {
				return true
			}
		}
		return false
	default:
		for i := 0; i < g.NumGeometries(); i++ {
			if anySegmentIntersectsRing(g.GeometryN(i), ring) {
				return true
			}
		}
		return false
	}
}
