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
	"math"

	"github.com/blevesearch/planar/geom"
)

// IntersectionKind classifies the result of intersecting two segments.
type IntersectionKind int

const (
	// NoIntersection means the segments have no point in common.
	NoIntersection IntersectionKind = iota
	// PointIntersection means the segments meet in a single point.
	PointIntersection
	// CollinearIntersection means the segments overlap in a sub-segment.
	CollinearIntersection
)

// SegmentIntersectionResult carries the intersection of two segments.
// Pt[0] holds the single intersection point for PointIntersection; both
// entries bound the shared sub-segment for CollinearIntersection. Proper
// reports whether the intersection lies strictly in the interior of both
// segments.
type SegmentIntersectionResult struct {
	Kind   IntersectionKind
	Pt     [2]geom.Coordinate
	Proper bool
}

// SegmentIntersection computes the intersection of segments (p1, p2) and
// (q1, q2). The computed point is guaranteed to lie within the envelopes of
// both input segments. Z ordinates are interpolated from whichever segment
// carries them, preferring (p1, p2).
func SegmentIntersection(p1, p2, q1, q2 geom.Coordinate) SegmentIntersectionResult {
	var li lineIntersector
	li.computeIntersection(p1, p2, q1, q2)
	res := SegmentIntersectionResult{Proper: li.proper}
	switch li.result {
	case noIntersection:
		res.Kind = NoIntersection
	case pointIntersection:
		res.Kind = PointIntersection
		res.Pt[0] = li.intPt[0]
	case collinearIntersection:
		res.Kind = CollinearIntersection
		res.Pt[0] = li.intPt[0]
		res.Pt[1] = li.intPt[1]
	}
	return res
}

const (
	noIntersection = iota
	pointIntersection
	collinearIntersection
)

// lineIntersector computes robust segment intersections. The intersection
// points of nearly-parallel segments are computed in a coordinate frame
// shifted to the centre of the intersection of the segment envelopes; the
// direct algebraic formula may round outside it. A point that still falls
// outside either segment envelope is replaced by the input endpoint nearest
// to the other segment.
type lineIntersector struct {
	pm     *geom.PrecisionModel
	result int
	input  [2][2]geom.Coordinate
	intPt  [2]geom.Coordinate
	proper bool
}

func (li *lineIntersector) hasIntersection() bool { return li.result != noIntersection }

func (li *lineIntersector) intersectionNum() int {
	switch li.result {
	case pointIntersection:
		return 1
	case collinearIntersection:
		return 2
	}
	return 0
}

// computePointOnSegment computes the intersection of the point p with the
// segment (p1, p2).
func (li *lineIntersector) computePointOnSegment(p, p1, p2 geom.Coordinate) {
	li.proper = false
	if geom.CoordsIntersectEnvelope(p1, p2, p) {
		if OrientationIndex(p1, p2, p) == Collinear &&
			OrientationIndex(p2, p1, p) == Collinear {
			li.proper = !p.Equals2D(p1) && !p.Equals2D(p2)
			li.intPt[0] = p
			li.result = pointIntersection
			return
		}
	}
	li.result = noIntersection
}

func (li *lineIntersector) computeIntersection(p1, p2, q1, q2 geom.Coordinate) {
	li.input[0][0], li.input[0][1] = p1, p2
	li.input[1][0], li.input[1][1] = q1, q2
	li.proper = false

	if !geom.SegmentEnvelopesIntersect(p1, p2, q1, q2) {
		li.result = noIntersection
		return
	}

	pq1 := OrientationIndex(p1, p2, q1)
	pq2 := OrientationIndex(p1, p2, q2)
	if (pq1 > 0 && pq2 > 0) || (pq1 < 0 && pq2 < 0) {
		li.result = noIntersection
		return
	}
	qp1 := OrientationIndex(q1, q2, p1)
	qp2 := OrientationIndex(q1, q2, p2)
	if (qp1 > 0 && qp2 > 0) || (qp1 < 0 && qp2 < 0) {
		li.result = noIntersection
		return
	}

	if pq1 == 0 && pq2 == 0 && qp1 == 0 && qp2 == 0 {
		li.result = li.computeCollinear(p1, p2, q1, q2)
		return
	}

	if pq1 == 0 || pq2 == 0 || qp1 == 0 || qp2 == 0 {
		// an endpoint of one segment lies on the other segment; use the
		// exact endpoint value to avoid introducing rounding
		switch {
		case p1.Equals2D(q1) || p1.Equals2D(q2):
			li.intPt[0] = p1
		case p2.Equals2D(q1) || p2.Equals2D(q2):
			li.intPt[0] = p2
		case pq1 == 0:
			li.intPt[0] = q1
		case pq2 == 0:
			li.intPt[0] = q2
		case qp1 == 0:
			li.intPt[0] = p1
		default:
			li.intPt[0] = p2
		}
	} else {
		li.proper = true
		li.intPt[0] = li.intersection(p1, p2, q1, q2)
	}
	li.intPt[0].Z = interpolateZ(li.intPt[0], p1, p2, q1, q2)
	li.intPt[0].M = interpolateM(li.intPt[0], p1, p2, q1, q2)
	li.result = pointIntersection
}

func (li *lineIntersector) computeCollinear(p1, p2, q1, q2 geom.Coordinate) int {
	q1inP := geom.CoordsIntersectEnvelope(p1, p2, q1)
	q2inP := geom.CoordsIntersectEnvelope(p1, p2, q2)
	p1inQ := geom.CoordsIntersectEnvelope(q1, q2, p1)
	p2inQ := geom.CoordsIntersectEnvelope(q1, q2, p2)

	switch {
	case q1inP && q2inP:
		li.intPt[0], li.intPt[1] = q1, q2
		return collinearIntersection
	case p1inQ && p2inQ:
		li.intPt[0], li.intPt[1] = p1, p2
		return collinearIntersection
	case q1inP && p1inQ:
		li.intPt[0], li.intPt[1] = q1, p1
		if q1.Equals2D(p1) && !q2inP && !p2inQ {
			return pointIntersection
		}
		return collinearIntersection
	case q1inP && p2inQ:
		li.intPt[0], li.intPt[1] = q1, p2
		if q1.Equals2D(p2) && !q2inP && !p1inQ {
			return pointIntersection
		}
		return collinearIntersection
	case q2inP && p1inQ:
		li.intPt[0], li.intPt[1] = q2, p1
		if q2.Equals2D(p1) && !q1inP && !p2inQ {
			return pointIntersection
		}
		return collinearIntersection
	case q2inP && p2inQ:
		li.intPt[0], li.intPt[1] = q2, p2
		if q2.Equals2D(p2) && !q1inP && !p1inQ {
			return pointIntersection
		}
		return collinearIntersection
	}
	return noIntersection
}

// intersection computes the proper intersection point of two segments.
func (li *lineIntersector) intersection(p1, p2, q1, q2 geom.Coordinate) geom.Coordinate {
	intPt := intersectionNormalized(p1, p2, q1, q2)
	if !li.isInSegmentEnvelopes(intPt) {
		intPt = nearestEndpoint(p1, p2, q1, q2)
	}
	if !li.pm.IsFloating() {
		intPt = li.pm.MakePreciseCoord(intPt)
	}
	return intPt
}

// intersectionNormalized computes the intersection point after translating
// both segments so that the centre of the intersection of their envelopes
// is at the origin, which keeps the homogeneous computation conditioned.
func intersectionNormalized(p1, p2, q1, q2 geom.Coordinate) geom.Coordinate {
	minX0 := math.Min(p1.X, p2.X)
	maxX0 := math.Max(p1.X, p2.X)
	minY0 := math.Min(p1.Y, p2.Y)
	maxY0 := math.Max(p1.Y, p2.Y)
	minX1 := math.Min(q1.X, q2.X)
	maxX1 := math.Max(q1.X, q2.X)
	minY1 := math.Min(q1.Y, q2.Y)
	maxY1 := math.Max(q1.Y, q2.Y)

	normX := (math.Max(minX0, minX1) + math.Min(maxX0, maxX1)) / 2
	normY := (math.Max(minY0, minY1) + math.Min(maxY0, maxY1)) / 2

	x, y, ok := homogeneousIntersection(
		p1.X-normX, p1.Y-normY, p2.X-normX, p2.Y-normY,
		q1.X-normX, q1.Y-normY, q2.X-normX, q2.Y-normY)
	if !ok {
		return nearestEndpoint(p1, p2, q1, q2)
	}
	return geom.Coord(x+normX, y+normY)
}

// homogeneousIntersection intersects the infinite lines through the two
// segments using homogeneous coordinates.
func homogeneousIntersection(p1x, p1y, p2x, p2y, q1x, q1y, q2x, q2y float64) (x, y float64, ok bool) {
	px := p1y - p2y
	py := p2x - p1x
	pw := p1x*p2y - p2x*p1y
	qx := q1y - q2y
	qy := q2x - q1x
	qw := q1x*q2y - q2x*q1y
	xw := py*qw - qy*pw
	yw := qx*pw - px*qw
	w := px*qy - qx*py
	x = xw / w
	y = yw / w
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	return x, y, true
}

// isInSegmentEnvelopes reports whether the computed point lies inside both
// input segment envelopes.
func (li *lineIntersector) isInSegmentEnvelopes(pt geom.Coordinate) bool {
	return geom.CoordsIntersectEnvelope(li.input[0][0], li.input[0][1], pt) &&
		geom.CoordsIntersectEnvelope(li.input[1][0], li.input[1][1], pt)
}

// nearestEndpoint returns the input endpoint nearest to the other segment.
// It is used as the intersection point when rounding pushes the computed
// point outside a segment envelope.
func nearestEndpoint(p1, p2, q1, q2 geom.Coordinate) geom.Coordinate {
	nearest := p1
	minDist := DistancePointToSegment(p1, q1, q2)
	if d := DistancePointToSegment(p2, q1, q2); d < minDist {
		minDist, nearest = d, p2
	}
	if d := DistancePointToSegment(q1, p1, p2); d < minDist {
		minDist, nearest = d, q1
	}
	if d := DistancePointToSegment(q2, p1, p2); d < minDist {
		nearest = q2
	}
	return nearest
}

// interpolateZ computes the Z for an intersection point by linear
// interpolation along the first input segment that carries elevations.
func interpolateZ(pt, p1, p2, q1, q2 geom.Coordinate) float64 {
	if z, ok := interpolateZOnSegment(pt, p1, p2); ok {
		return z
	}
	if z, ok := interpolateZOnSegment(pt, q1, q2); ok {
		return z
	}
	return math.NaN()
}

func interpolateZOnSegment(pt, a, b geom.Coordinate) (float64, bool) {
	if !a.HasZ() || !b.HasZ() {
		return 0, false
	}
	return a.Z + segmentFraction(pt, a, b)*(b.Z-a.Z), true
}

// interpolateM is the measure analogue of interpolateZ.
func interpolateM(pt, p1, p2, q1, q2 geom.Coordinate) float64 {
	if p1.HasM() && p2.HasM() {
		return p1.M + segmentFraction(pt, p1, p2)*(p2.M-p1.M)
	}
	if q1.HasM() && q2.HasM() {
		return q1.M + segmentFraction(pt, q1, q2)*(q2.M-q1.M)
	}
	return math.NaN()
}

func segmentFraction(pt, a, b geom.Coordinate) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	var t float64
	if math.Abs(dx) >= math.Abs(dy) {
		if dx != 0 {
			t = (pt.X - a.X) / dx
		}
	} else {
		t = (pt.Y - a.Y) / dy
	}
	return t
}

// edgeDistance returns a pseudo-distance of an intersection point from the
// start of the segment (p0, p1), consistent for ordering intersections
// along the segment.
func edgeDistance(p, p0, p1 geom.Coordinate) float64 {
	dx := math.Abs(p1.X - p0.X)
	dy := math.Abs(p1.Y - p0.Y)
	if p.Equals2D(p0) {
		return 0
	}
	if p.Equals2D(p1) {
		if dx > dy {
			return dx
		}
		return dy
	}
	pdx := math.Abs(p.X - p0.X)
	pdy := math.Abs(p.Y - p0.Y)
	var dist float64
	if dx > dy {
		dist = pdx
	} else {
		dist = pdy
	}
	// points that are equal should have distance 0; the converse must hold
	// for distinct points too
	if dist == 0 {
		dist = math.Max(pdx, pdy)
	}
	return dist
}

// getEdgeDistance returns the edge distance of the i-th intersection point
// along the segIndex-th input segment.
func (li *lineIntersector) getEdgeDistance(segIndex, i int) float64 {
	return edgeDistance(li.intPt[i], li.input[segIndex][0], li.input[segIndex][1])
}
