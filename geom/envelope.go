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
	"fmt"
	"math"

	"github.com/golang/geo/r1"
)

// Envelope is a closed axis-aligned rectangle in the plane, or the distinct
// empty envelope. The empty envelope intersects nothing and is contained in
// nothing except itself.
type Envelope struct {
	X, Y r1.Interval
}

// EmptyEnvelope returns the empty envelope.
func EmptyEnvelope() Envelope {
	return Envelope{X: r1.EmptyInterval(), Y: r1.EmptyInterval()}
}

// NewEnvelope returns the envelope spanning the two corner points.
func NewEnvelope(x0, y0, x1, y1 float64) Envelope {
	return Envelope{
		X: r1.Interval{Lo: math.Min(x0, x1), Hi: math.Max(x0, x1)},
		Y: r1.Interval{Lo: math.Min(y0, y1), Hi: math.Max(y0, y1)},
	}
}

// EnvelopeOfCoords returns the bounding envelope of the given coordinates.
func EnvelopeOfCoords(coords ...Coordinate) Envelope {
	env := EmptyEnvelope()
	for _, c := range coords {
		env = env.ExpandedToIncludeXY(c.X, c.Y)
	}
	return env
}

// IsEmpty reports whether this is the empty envelope.
func (e Envelope) IsEmpty() bool { return e.X.IsEmpty() || e.Y.IsEmpty() }

// MinX returns the minimum X ordinate. Undefined for the empty envelope.
func (e Envelope) MinX() float64 { return e.X.Lo }

// MaxX returns the maximum X ordinate. Undefined for the empty envelope.
func (e Envelope) MaxX() float64 { return e.X.Hi }

// MinY returns the minimum Y ordinate. Undefined for the empty envelope.
func (e Envelope) MinY() float64 { return e.Y.Lo }

// MaxY returns the maximum Y ordinate. Undefined for the empty envelope.
func (e Envelope) MaxY() float64 { return e.Y.Hi }

// Width returns the X extent, or 0 for the empty envelope.
func (e Envelope) Width() float64 {
	if e.IsEmpty() {
		return 0
	}
	return e.X.Length()
}

// Height returns the Y extent, or 0 for the empty envelope.
func (e Envelope) Height() float64 {
	if e.IsEmpty() {
		return 0
	}
	return e.Y.Length()
}

// Center returns the midpoint of the envelope.
// It is undefined for the empty envelope.
func (e Envelope) Center() Coordinate {
	return Coord(e.X.Center(), e.Y.Center())
}

// ExpandedToIncludeXY returns the envelope enlarged to cover (x, y).
func (e Envelope) ExpandedToIncludeXY(x, y float64) Envelope {
	if e.IsEmpty() {
		return Envelope{X: r1.IntervalFromPoint(x), Y: r1.IntervalFromPoint(y)}
	}
	return Envelope{
		X: r1.Interval{Lo: math.Min(e.X.Lo, x), Hi: math.Max(e.X.Hi, x)},
		Y: r1.Interval{Lo: math.Min(e.Y.Lo, y), Hi: math.Max(e.Y.Hi, y)},
	}
}

// ExpandedToInclude returns the envelope enlarged to cover other.
func (e Envelope) ExpandedToInclude(other Envelope) Envelope {
	if other.IsEmpty() {
		return e
	}
	e = e.ExpandedToIncludeXY(other.X.Lo, other.Y.Lo)
	return e.ExpandedToIncludeXY(other.X.Hi, other.Y.Hi)
}

// ExpandedBy returns the envelope grown by d on every side. Expanding the
// empty envelope leaves it empty.
func (e Envelope) ExpandedBy(d float64) Envelope {
	if e.IsEmpty() {
		return e
	}
	return Envelope{X: e.X.Expanded(d), Y: e.Y.Expanded(d)}
}

// Intersects reports whether the two envelopes have any point in common.
func (e Envelope) Intersects(other Envelope) bool {
	return e.X.Intersects(other.X) && e.Y.Intersects(other.Y)
}

// ContainsXY reports whether the envelope covers the point (x, y).
// Envelopes are closed: boundary points are contained.
func (e Envelope) ContainsXY(x, y float64) bool {
	return e.X.Contains(x) && e.Y.Contains(y)
}

// ContainsCoord reports whether the envelope covers the coordinate.
func (e Envelope) ContainsCoord(c Coordinate) bool {
	return e.ContainsXY(c.X, c.Y)
}

// Contains reports whether the envelope covers every point of other.
// The empty envelope is contained only in the empty envelope.
func (e Envelope) Contains(other Envelope) bool {
	if other.IsEmpty() {
		return e.IsEmpty()
	}
	if e.IsEmpty() {
		return false
	}
	return e.X.ContainsInterval(other.X) && e.Y.ContainsInterval(other.Y)
}

// Intersection returns the envelope common to e and other, which may be empty.
func (e Envelope) Intersection(other Envelope) Envelope {
	if !e.Intersects(other) {
		return EmptyEnvelope()
	}
	return Envelope{X: e.X.Intersection(other.X), Y: e.Y.Intersection(other.Y)}
}

// Distance returns the distance between the closest points of two envelopes,
// or 0 if they intersect.
func (e Envelope) Distance(other Envelope) float64 {
	if e.Intersects(other) {
		return 0
	}
	var dx, dy float64
	if e.X.Hi < other.X.Lo {
		dx = other.X.Lo - e.X.Hi
	} else if e.X.Lo > other.X.Hi {
		dx = e.X.Lo - other.X.Hi
	}
	if e.Y.Hi < other.Y.Lo {
		dy = other.Y.Lo - e.Y.Hi
	} else if e.Y.Lo > other.Y.Hi {
		dy = e.Y.Lo - other.Y.Hi
	}
	return math.Hypot(dx, dy)
}

func (e Envelope) String() string {
	if e.IsEmpty() {
		return "Env[empty]"
	}
	return fmt.Sprintf("Env[%v:%v, %v:%v]", e.X.Lo, e.X.Hi, e.Y.Lo, e.Y.Hi)
}

// CoordsIntersectEnvelope reports whether the envelope of segment (p1, p2)
// covers the point q.
func CoordsIntersectEnvelope(p1, p2, q Coordinate) bool {
	return q.X >= math.Min(p1.X, p2.X) && q.X <= math.Max(p1.X, p2.X) &&
		q.Y >= math.Min(p1.Y, p2.Y) && q.Y <= math.Max(p1.Y, p2.Y)
}

// SegmentEnvelopesIntersect reports whether the envelopes of segments
// (p1, p2) and (q1, q2) intersect.
func SegmentEnvelopesIntersect(p1, p2, q1, q2 Coordinate) bool {
	if math.Min(q1.X, q2.X) > math.Max(p1.X, p2.X) ||
		math.Max(q1.X, q2.X) < math.Min(p1.X, p2.X) {
		return false
	}
	if math.Min(q1.Y, q2.Y) > math.Max(p1.Y, p2.Y) ||
		math.Max(q1.Y, q2.Y) < math.Min(p1.Y, p2.Y) {
		return false
	}
	return true
}
