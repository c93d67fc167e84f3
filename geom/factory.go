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

// Factory creates geometries sharing a precision model and SRID.
// It is immutable after construction and safe to share across goroutines.
type Factory struct {
	pm   *PrecisionModel
	srid int
}

// NewFactory returns a factory producing geometries on the given precision
// model and tagged with the given SRID. A nil precision model means floating.
func NewFactory(pm *PrecisionModel, srid int) *Factory {
	if pm == nil {
		pm = Floating()
	}
	return &Factory{pm: pm, srid: srid}
}

// DefaultFactory is used where no factory is supplied: floating precision,
// SRID 0.
var DefaultFactory = NewFactory(Floating(), 0)

// PrecisionModel returns the factory precision model.
func (f *Factory) PrecisionModel() *PrecisionModel { return f.pm }

// SRID returns the factory SRID.
func (f *Factory) SRID() int { return f.srid }

// makePrecise snaps a sequence onto the factory grid. The input sequence is
// returned unchanged under a floating model.
func (f *Factory) makePrecise(seq *Sequence) *Sequence {
	if f.pm.IsFloating() || seq == nil || seq.Len() == 0 {
		return seq
	}
	coords := seq.Coords()
	for i := range coords {
		coords[i] = f.pm.MakePreciseCoord(coords[i])
	}
	return SequenceFromCoords(seq.Layout(), coords)
}

// Point creates a point from a sequence of zero or one coordinates.
func (f *Factory) Point(seq *Sequence) (*Geometry, error) {
	if seq == nil {
		seq = SequenceFromCoords(XY, nil)
	}
	if seq.Len() > 1 {
		return nil, &ArgumentError{Msg: "point requires at most one coordinate"}
	}
	return &Geometry{kind: KindPoint, seq: f.makePrecise(seq), srid: f.srid, factory: f}, nil
}

// PointFromCoord creates a point at the given coordinate.
func (f *Factory) PointFromCoord(c Coordinate) *Geometry {
	layout := XY
	if c.HasZ() && c.HasM() {
		layout = XYZM
	} else if c.HasZ() {
		layout = XYZ
	} else if c.HasM() {
		layout = XYM
	}
	g, _ := f.Point(SequenceFromCoords(layout, []Coordinate{c}))
	return g
}

// LineString creates a linestring from a sequence of zero, or two or more,
// coordinates.
func (f *Factory) LineString(seq *Sequence) (*Geometry, error) {
	if seq == nil {
		seq = SequenceFromCoords(XY, nil)
	}
	if seq.Len() == 1 {
		return nil, &ArgumentError{Msg: "linestring requires 0 or >= 2 coordinates"}
	}
	return &Geometry{kind: KindLineString, seq: f.makePrecise(seq), srid: f.srid, factory: f}, nil
}

// LinearRing creates a linear ring. A non-empty ring must be closed in 2D
// and have at least 4 coordinates. Simplicity is a validity invariant, not
// a construction invariant, and is not checked here.
func (f *Factory) LinearRing(seq *Sequence) (*Geometry, error) {
	if seq == nil {
		seq = SequenceFromCoords(XY, nil)
	}
	if seq.Len() > 0 {
		if seq.Len() < 4 {
			return nil, &ArgumentError{Msg: "ring requires 0 or >= 4 coordinates"}
		}
		if !seq.IsClosed() {
			return nil, &ArgumentError{Msg: "ring is not closed"}
		}
	}
	return &Geometry{kind: KindLinearRing, seq: f.makePrecise(seq), srid: f.srid, factory: f}, nil
}

// Polygon creates a polygon from a shell ring and zero or more hole rings.
// A nil shell creates an empty polygon; holes require a non-empty shell.
// Ring containment is a validity invariant checked by IsValid, not here.
func (f *Factory) Polygon(shell *Geometry, holes ...*Geometry) (*Geometry, error) {
	if shell == nil {
		if len(holes) > 0 {
			return nil, &ArgumentError{Msg: "polygon with holes requires a shell"}
		}
		empty, _ := f.LinearRing(nil)
		shell = empty
	}
	if shell.Kind() != KindLinearRing {
		return nil, &ArgumentError{Msg: "polygon shell must be a linear ring"}
	}
	elems := make([]*Geometry, 0, 1+len(holes))
	elems = append(elems, shell)
	for _, h := range holes {
		if h == nil || h.Kind() != KindLinearRing {
			return nil, &ArgumentError{Msg: "polygon hole must be a linear ring"}
		}
		if shell.IsEmpty() && !h.IsEmpty() {
			return nil, &ArgumentError{Msg: "polygon with empty shell cannot have holes"}
		}
		elems = append(elems, h)
	}
	return &Geometry{kind: KindPolygon, elems: elems, srid: f.srid, factory: f}, nil
}

// MultiPoint creates a multipoint from the given points.
func (f *Factory) MultiPoint(pts ...*Geometry) (*Geometry, error) {
	return f.collection(KindMultiPoint, KindPoint, pts)
}

// MultiLineString creates a multilinestring from the given lines.
func (f *Factory) MultiLineString(lines ...*Geometry) (*Geometry, error) {
	return f.collection(KindMultiLineString, KindLineString, lines)
}

// MultiPolygon creates a multipolygon from the given polygons.
// Interior disjointness is a validity invariant checked by IsValid.
func (f *Factory) MultiPolygon(polys ...*Geometry) (*Geometry, error) {
	return f.collection(KindMultiPolygon, KindPolygon, polys)
}

// GeometryCollection creates a heterogeneous collection.
func (f *Factory) GeometryCollection(geoms ...*Geometry) (*Geometry, error) {
	for _, g := range geoms {
		if g == nil {
			return nil, &ArgumentError{Msg: "nil geometry in collection"}
		}
	}
	elems := append([]*Geometry(nil), geoms...)
	return &Geometry{kind: KindGeometryCollection, elems: elems, srid: f.srid, factory: f}, nil
}

func (f *Factory) collection(kind, elemKind Kind, geoms []*Geometry) (*Geometry, error) {
	elems := make([]*Geometry, 0, len(geoms))
	for _, g := range geoms {
		if g == nil {
			return nil, &ArgumentError{Msg: "nil geometry in " + kind.String()}
		}
		ok := g.Kind() == elemKind
		// multilinestrings accept rings as lineal members
		if kind == KindMultiLineString && g.Kind() == KindLinearRing {
			ok = true
		}
		if !ok {
			return nil, &ArgumentError{
				Msg: kind.String() + " cannot contain a " + g.Kind().String(),
			}
		}
		elems = append(elems, g)
	}
	return &Geometry{kind: kind, elems: elems, srid: f.srid, factory: f}, nil
}

// Empty returns an empty geometry of the given topological dimension:
// 0 for a point, 1 for a linestring, 2 for a polygon, and a geometry
// collection for any other value.
func (f *Factory) Empty(dim int) *Geometry {
	switch dim {
	case 0:
		g, _ := f.Point(nil)
		return g
	case 1:
		g, _ := f.LineString(nil)
		return g
	case 2:
		g, _ := f.Polygon(nil)
		return g
	}
	g, _ := f.GeometryCollection()
	return g
}

// BuildGeometry wraps a list of geometries in the tightest fitting type:
// the single element itself, a typed multi geometry when all elements share
// a primitive type, and a geometry collection otherwise. An empty list
// produces an empty collection.
func (f *Factory) BuildGeometry(geoms []*Geometry) *Geometry {
	if len(geoms) == 0 {
		g, _ := f.GeometryCollection()
		return g
	}
	if len(geoms) == 1 {
		return geoms[0]
	}
	allPoints, allLines, allPolys := true, true, true
	for _, g := range geoms {
		allPoints = allPoints && g.Kind() == KindPoint
		allLines = allLines && (g.Kind() == KindLineString || g.Kind() == KindLinearRing)
		allPolys = allPolys && g.Kind() == KindPolygon
	}
	var out *Geometry
	switch {
	case allPoints:
		out, _ = f.MultiPoint(geoms...)
	case allLines:
		out, _ = f.MultiLineString(geoms...)
	case allPolys:
		out, _ = f.MultiPolygon(geoms...)
	default:
		out, _ = f.GeometryCollection(geoms...)
	}
	return out
}
