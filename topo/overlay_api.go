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
	"errors"

	"github.com/blevesearch/planar/geom"
)

// Intersection returns the points common to both geometries.
func Intersection(a, b *geom.Geometry) (*geom.Geometry, error) {
	return Overlay(context.Background(), a, b, OpIntersection)
}

// Union returns the points in either geometry.
func Union(a, b *geom.Geometry) (*geom.Geometry, error) {
	return Overlay(context.Background(), a, b, OpUnion)
}

// Difference returns the points of a not in b.
func Difference(a, b *geom.Geometry) (*geom.Geometry, error) {
	return Overlay(context.Background(), a, b, OpDifference)
}

// SymDifference returns the points in exactly one of the geometries.
func SymDifference(a, b *geom.Geometry) (*geom.Geometry, error) {
	return Overlay(context.Background(), a, b, OpSymDifference)
}

// Overlay computes a boolean overlay of two geometries. If the exact
// computation fails with a TopologyError, it is retried with snap-rounding
// at a heuristically chosen grid, coarsening on each further failure.
func Overlay(ctx context.Context, a, b *geom.Geometry, opCode OverlayKind) (*geom.Geometry, error) {
	if a == nil || b == nil {
		return nil, &geom.ArgumentError{Msg: "nil geometry"}
	}
	if result, done := overlayTrivialResult(a, b, opCode); done {
		return result, nil
	}
	result, err := overlayExact(ctx, a, b, opCode, nil)
	if err == nil {
		return result, nil
	}
	var topoErr *geom.TopologyError
	if !errors.As(err, &topoErr) {
		return nil, err
	}
	// retry with snap-rounding at decreasing precision
	scale := overlaySnapScale(a, b)
	for i := 0; i < overlaySnapTries; i++ {
		result, retryErr := OverlayWithPrecision(ctx, a, b, opCode, geom.Fixed(scale))
		if retryErr == nil {
			return result, nil
		}
		if !errors.As(retryErr, &topoErr) {
			return nil, retryErr
		}
		scale /= 10
	}
	return nil, err
}

// OverlayWithPrecision computes a boolean overlay with snap-rounding at
// the given precision model: input vertices are snapped to the grid,
// computed intersection points land on the grid, and collapsed components
// are discarded.
func OverlayWithPrecision(ctx context.Context, a, b *geom.Geometry,
	opCode OverlayKind, pm *geom.PrecisionModel) (*geom.Geometry, error) {
	if a == nil || b == nil {
		return nil, &geom.ArgumentError{Msg: "nil geometry"}
	}
	if pm.IsFloating() {
		if result, done := overlayTrivialResult(a, b, opCode); done {
			return result, nil
		}
		return overlayExact(ctx, a, b, opCode, nil)
	}
	ra, err := reducePrecision(a, pm)
	if err != nil {
		return nil, err
	}
	rb, err := reducePrecision(b, pm)
	if err != nil {
		return nil, err
	}
	if result, done := overlayTrivialResult(ra, rb, opCode); done {
		return result, nil
	}
	return overlayExact(ctx, ra, rb, opCode, pm)
}

const overlaySnapTries = 3

// overlaySnapScale picks a snap grid well below the precision of the
// inputs: a fixed number of significant digits relative to the magnitude
// of the coordinates.
func overlaySnapScale(a, b *geom.Geometry) float64 {
	const snapDigits = 12
	env := a.Envelope().ExpandedToInclude(b.Envelope())
	maxMag := maxFloat(absFloat(env.MinX()), absFloat(env.MaxX()),
		absFloat(env.MinY()), absFloat(env.MaxY()), 1)
	scale := 1.0
	for maxMag >= 10 {
		maxMag /= 10
		scale /= 10
	}
	for i := 0; i < snapDigits; i++ {
		scale *= 10
	}
	return scale
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxFloat(vs ...float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func overlayExact(ctx context.Context, a, b *geom.Geometry,
	opCode OverlayKind, pm *geom.PrecisionModel) (*geom.Geometry, error) {
	op, err := newOverlayOp(a, b, pm)
	if err != nil {
		return nil, err
	}
	return op.computeOverlay(ctx, opCode)
}

// overlayTrivialResult resolves the empty-input and disjoint-envelope
// cases without building a graph.
func overlayTrivialResult(a, b *geom.Geometry, opCode OverlayKind) (*geom.Geometry, bool) {
	f := a.Factory()
	aEmpty, bEmpty := a.IsEmpty(), b.IsEmpty()
	if aEmpty || bEmpty {
		switch opCode {
		case OpIntersection:
			return emptyOverlayResult(opCode, a, b, f), true
		case OpUnion, OpSymDifference:
			if aEmpty && bEmpty {
				return emptyOverlayResult(opCode, a, b, f), true
			}
			if aEmpty {
				return b, true
			}
			return a, true
		case OpDifference:
			if aEmpty {
				return emptyOverlayResult(opCode, a, b, f), true
			}
			return a, true
		}
	}
	if !a.Envelope().Intersects(b.Envelope()) {
		switch opCode {
		case OpIntersection:
			return emptyOverlayResult(opCode, a, b, f), true
		case OpDifference:
			return a, true
		case OpUnion, OpSymDifference:
			// disjoint contents combine as a collection of both
			var parts []*geom.Geometry
			collectAtomic(a, &parts)
			collectAtomic(b, &parts)
			return f.BuildGeometry(parts), true
		}
	}
	return nil, false
}

func collectAtomic(g *geom.Geometry, out *[]*geom.Geometry) {
	switch g.Kind() {
	case geom.KindMultiPoint, geom.KindMultiLineString, geom.KindMultiPolygon,
		geom.KindGeometryCollection:
		for i := 0; i < g.NumGeometries(); i++ {
			collectAtomic(g.GeometryN(i), out)
		}
	default:
		if !g.IsEmpty() {
			*out = append(*out, g)
		}
	}
}

// reducePrecision snaps a geometry's coordinates onto a fixed grid,
// dropping repeated points and components the snapping collapses.
func reducePrecision(g *geom.Geometry, pm *geom.PrecisionModel) (*geom.Geometry, error) {
	f := g.Factory()
	switch g.Kind() {
	case geom.KindPoint:
		if g.IsEmpty() {
			return g, nil
		}
		return f.PointFromCoord(pm.MakePreciseCoord(g.Sequence().Coord(0))), nil
	case geom.KindLineString, geom.KindLinearRing:
		coords := snapCoords(g.Sequence().Coords(), pm)
		isRing := g.Kind() == geom.KindLinearRing
		if isRing && len(coords) > 0 && !coords[0].Equals2D(coords[len(coords)-1]) {
			// re-close the ring if rounding merged the closing point away
			coords = append(coords, coords[0])
		}
		if isRing && len(coords) < 4 {
			return f.LinearRing(nil)
		}
		if !isRing && len(coords) < 2 {
			return f.LineString(nil)
		}
		seq := geom.SequenceFromCoords(g.Sequence().Layout(), coords)
		if isRing {
			return f.LinearRing(seq)
		}
		return f.LineString(seq)
	case geom.KindPolygon:
		if g.IsEmpty() {
			return g, nil
		}
		shell, err := reducePrecision(g.ExteriorRing(), pm)
		if err != nil {
			return nil, err
		}
		if shell.IsEmpty() {
			return f.Polygon(nil)
		}
		var holes []*geom.Geometry
		for i := 0; i < g.NumInteriorRings(); i++ {
			hole, err := reducePrecision(g.InteriorRingN(i), pm)
			if err != nil {
				return nil, err
			}
			if !hole.IsEmpty() {
				holes = append(holes, hole)
			}
		}
		return f.Polygon(shell, holes...)
	default:
		elems := make([]*geom.Geometry, 0, g.NumGeometries())
		for i := 0; i < g.NumGeometries(); i++ {
			r, err := reducePrecision(g.GeometryN(i), pm)
			if err != nil {
				return nil, err
			}
			elems = append(elems, r)
		}
		switch g.Kind() {
		case geom.KindMultiPoint:
			return f.MultiPoint(elems...)
		case geom.KindMultiLineString:
			return f.MultiLineString(elems...)
		case geom.KindMultiPolygon:
			return f.MultiPolygon(elems...)
		}
		return f.GeometryCollection(elems...)
	}
}

// snapCoords rounds coordinates to the grid and drops the repeats the
// rounding creates, keeping ring closure.
func snapCoords(coords []geom.Coordinate, pm *geom.PrecisionModel) []geom.Coordinate {
	out := make([]geom.Coordinate, 0, len(coords))
	for _, c := range coords {
		c = pm.MakePreciseCoord(c)
		if len(out) > 0 && c.Equals2D(out[len(out)-1]) {
			continue
		}
		out = append(out, c)
	}
	return out
}
