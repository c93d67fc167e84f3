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

// Package wkt reads and writes geometries in the OGC Well-Known Text
// format, including the Z, M and ZM forms and EMPTY geometries. Reading
// preserves dimensionality; writing round-trips it.
package wkt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/blevesearch/planar/geom"
)

// Unmarshal parses a WKT string into a geometry built by the given
// factory. A nil factory uses geom.DefaultFactory.
func Unmarshal(data string, f *geom.Factory) (*geom.Geometry, error) {
	if f == nil {
		f = geom.DefaultFactory
	}
	p := &parser{s: scanner{src: data}, f: f}
	g, err := p.parseGeometry()
	if err != nil {
		return nil, err
	}
	tok, err := p.s.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenEOF {
		return nil, fmt.Errorf("wkt: unexpected trailing input at position %d", tok.pos)
	}
	return g, nil
}

type parser struct {
	s scanner
	f *geom.Factory
}

func (p *parser) parseGeometry() (*geom.Geometry, error) {
	tok, err := p.s.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenWord {
		return nil, fmt.Errorf("wkt: expected geometry type at position %d", tok.pos)
	}
	layout, empty, err := p.parseTypeSuffix()
	if err != nil {
		return nil, err
	}
	switch tok.text {
	case "POINT":
		return p.parsePoint(layout, empty)
	case "LINESTRING":
		return p.parseLineString(layout, empty, false)
	case "LINEARRING":
		return p.parseLineString(layout, empty, true)
	case "POLYGON":
		return p.parsePolygon(layout, empty)
	case "MULTIPOINT":
		return p.parseMultiPoint(layout, empty)
	case "MULTILINESTRING":
		return p.parseMultiLineString(layout, empty)
	case "MULTIPOLYGON":
		return p.parseMultiPolygon(layout, empty)
	case "GEOMETRYCOLLECTION":
		return p.parseCollection(empty)
	}
	return nil, fmt.Errorf("wkt: unknown geometry type %q", tok.text)
}

// parseTypeSuffix consumes an optional Z / M / ZM dimensionality word and
// an optional EMPTY word.
func (p *parser) parseTypeSuffix() (geom.Layout, bool, error) {
	layout := geom.XY
	tok, err := p.s.peek()
	if err != nil {
		return layout, false, err
	}
	if tok.kind == tokenWord {
		switch tok.text {
		case "Z":
			layout = geom.XYZ
		case "M":
			layout = geom.XYM
		case "ZM":
			layout = geom.XYZM
		case "EMPTY":
			_, _ = p.s.next()
			return layout, true, nil
		default:
			return layout, false, fmt.Errorf("wkt: unexpected word %q at position %d", tok.text, tok.pos)
		}
		_, _ = p.s.next()
		tok, err = p.s.peek()
		if err != nil {
			return layout, false, err
		}
	}
	if tok.kind == tokenWord && tok.text == "EMPTY" {
		_, _ = p.s.next()
		return layout, true, nil
	}
	return layout, false, nil
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	tok, err := p.s.next()
	if err != nil {
		return tok, err
	}
	if tok.kind != kind {
		return tok, fmt.Errorf("wkt: expected %s at position %d", what, tok.pos)
	}
	return tok, nil
}

// parseCoord reads one coordinate of the given layout.
func (p *parser) parseCoord(layout geom.Layout) (geom.Coordinate, error) {
	c := geom.Coordinate{Z: math.NaN(), M: math.NaN()}
	ords := make([]float64, 0, 4)
	for {
		tok, err := p.s.peek()
		if err != nil {
			return c, err
		}
		if tok.kind != tokenNumber {
			break
		}
		_, _ = p.s.next()
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return c, fmt.Errorf("wkt: bad number %q at position %d", tok.text, tok.pos)
		}
		ords = append(ords, v)
	}
	want := layout.Stride()
	if len(ords) != want {
		return c, fmt.Errorf("wkt: expected %d ordinates for %s, found %d", want, layout, len(ords))
	}
	c.X, c.Y = ords[0], ords[1]
	switch layout {
	case geom.XYZ:
		c.Z = ords[2]
	case geom.XYM:
		c.M = ords[2]
	case geom.XYZM:
		c.Z = ords[2]
		c.M = ords[3]
	}
	return c, nil
}

// parseCoordList reads a parenthesised comma-separated coordinate list.
func (p *parser) parseCoordList(layout geom.Layout) ([]geom.Coordinate, error) {
	if _, err := p.expect(tokenLParen, "'('"); err != nil {
		return nil, err
	}
	var coords []geom.Coordinate
	for {
		c, err := p.parseCoord(layout)
		if err != nil {
			return nil, err
		}
		coords = append(coords, c)
		tok, err := p.s.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenComma:
			continue
		case tokenRParen:
			return coords, nil
		default:
			return nil, fmt.Errorf("wkt: expected ',' or ')' at position %d", tok.pos)
		}
	}
}

func (p *parser) parsePoint(layout geom.Layout, empty bool) (*geom.Geometry, error) {
	if empty {
		return p.f.Point(geom.SequenceFromCoords(layout, nil))
	}
	if _, err := p.expect(tokenLParen, "'('"); err != nil {
		return nil, err
	}
	c, err := p.parseCoord(layout)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenRParen, "')'"); err != nil {
		return nil, err
	}
	return p.f.Point(geom.SequenceFromCoords(layout, []geom.Coordinate{c}))
}

func (p *parser) parseLineString(layout geom.Layout, empty, ring bool) (*geom.Geometry, error) {
	build := p.f.LineString
	if ring {
		build = p.f.LinearRing
	}
	if empty {
		return build(geom.SequenceFromCoords(layout, nil))
	}
	coords, err := p.parseCoordList(layout)
	if err != nil {
		return nil, err
	}
	return build(geom.SequenceFromCoords(layout, coords))
}

func (p *parser) parseRing(layout geom.Layout) (*geom.Geometry, error) {
	coords, err := p.parseCoordList(layout)
	if err != nil {
		return nil, err
	}
	return p.f.LinearRing(geom.SequenceFromCoords(layout, coords))
}

func (p *parser) parsePolygon(layout geom.Layout, empty bool) (*geom.Geometry, error) {
	if empty {
		return p.f.Polygon(nil)
	}
	if _, err := p.expect(tokenLParen, "'('"); err != nil {
		return nil, err
	}
	var rings []*geom.Geometry
	for {
		ring, err := p.parseRing(layout)
		if err != nil {
			return nil, err
		}
		rings = append(rings, ring)
		tok, err := p.s.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenRParen {
			break
		}
		if tok.kind != tokenComma {
			return nil, fmt.Errorf("wkt: expected ',' or ')' at position %d", tok.pos)
		}
	}
	return p.f.Polygon(rings[0], rings[1:]...)
}

func (p *parser) parseMultiPoint(layout geom.Layout, empty bool) (*geom.Geometry, error) {
	if empty {
		return p.f.MultiPoint()
	}
	if _, err := p.expect(tokenLParen, "'('"); err != nil {
		return nil, err
	}
	var pts []*geom.Geometry
	for {
		// both MULTIPOINT((1 2), (3 4)) and MULTIPOINT(1 2, 3 4) occur
		tok, err := p.s.peek()
		if err != nil {
			return nil, err
		}
		var c geom.Coordinate
		if tok.kind == tokenLParen {
			_, _ = p.s.next()
			c, err = p.parseCoord(layout)
			if err != nil {
				return nil, err
			}
			if _, err = p.expect(tokenRParen, "')'"); err != nil {
				return nil, err
			}
		} else {
			c, err = p.parseCoord(layout)
			if err != nil {
				return nil, err
			}
		}
		pt, err := p.f.Point(geom.SequenceFromCoords(layout, []geom.Coordinate{c}))
		if err != nil {
			return nil, err
		}
		pts = append(pts, pt)
		tok, err = p.s.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenRParen {
			break
		}
		if tok.kind != tokenComma {
			return nil, fmt.Errorf("wkt: expected ',' or ')' at position %d", tok.pos)
		}
	}
	return p.f.MultiPoint(pts...)
}

func (p *parser) parseMultiLineString(layout geom.Layout, empty bool) (*geom.Geometry, error) {
	if empty {
		return p.f.MultiLineString()
	}
	if _, err := p.expect(tokenLParen, "'('"); err != nil {
		return nil, err
	}
	var lines []*geom.Geometry
	for {
		coords, err := p.parseCoordList(layout)
		if err != nil {
			return nil, err
		}
		line, err := p.f.LineString(geom.SequenceFromCoords(layout, coords))
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
		tok, err := p.s.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenRParen {
			break
		}
		if tok.kind != tokenComma {
			return nil, fmt.Errorf("wkt: expected ',' or ')' at position %d", tok.pos)
		}
	}
	return p.f.MultiLineString(lines...)
}

func (p *parser) parseMultiPolygon(layout geom.Layout, empty bool) (*geom.Geometry, error) {
	if empty {
		return p.f.MultiPolygon()
	}
	if _, err := p.expect(tokenLParen, "'('"); err != nil {
		return nil, err
	}
	var polys []*geom.Geometry
	for {
		poly, err := p.parsePolygon(layout, false)
		if err != nil {
			return nil, err
		}
		polys = append(polys, poly)
		tok, err := p.s.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenRParen {
			break
		}
		if tok.kind != tokenComma {
			return nil, fmt.Errorf("wkt: expected ',' or ')' at position %d", tok.pos)
		}
	}
	return p.f.MultiPolygon(polys...)
}

func (p *parser) parseCollection(empty bool) (*geom.Geometry, error) {
	if empty {
		return p.f.GeometryCollection()
	}
	if _, err := p.expect(tokenLParen, "'('"); err != nil {
		return nil, err
	}
	var geoms []*geom.Geometry
	for {
		g, err := p.parseGeometry()
		if err != nil {
			return nil, err
		}
		geoms = append(geoms, g)
		tok, err := p.s.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenRParen {
			break
		}
		if tok.kind != tokenComma {
			return nil, fmt.Errorf("wkt: expected ',' or ')' at position %d", tok.pos)
		}
	}
	return p.f.GeometryCollection(geoms...)
}

// Marshal renders a geometry as WKT, round-tripping its dimensionality.
func Marshal(g *geom.Geometry) (string, error) {
	if g == nil {
		return "", fmt.Errorf("wkt: nil geometry")
	}
	var sb strings.Builder
	if err := writeGeometry(&sb, g); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeGeometry(sb *strings.Builder, g *geom.Geometry) error {
	switch g.Kind() {
	case geom.KindPoint:
		sb.WriteString("POINT")
		writeLayoutSuffix(sb, layoutOf(g))
		if g.IsEmpty() {
			sb.WriteString(" EMPTY")
			return nil
		}
		sb.WriteByte('(')
		writeCoords(sb, g.Sequence())
		sb.WriteByte(')')
	case geom.KindLineString, geom.KindLinearRing:
		sb.WriteString("LINESTRING")
		writeLayoutSuffix(sb, layoutOf(g))
		if g.IsEmpty() {
			sb.WriteString(" EMPTY")
			return nil
		}
		sb.WriteByte('(')
		writeCoords(sb, g.Sequence())
		sb.WriteByte(')')
	case geom.KindPolygon:
		sb.WriteString("POLYGON")
		writeLayoutSuffix(sb, layoutOf(g))
		if g.IsEmpty() {
			sb.WriteString(" EMPTY")
			return nil
		}
		writePolygonBody(sb, g)
	case geom.KindMultiPoint:
		sb.WriteString("MULTIPOINT")
		writeLayoutSuffix(sb, layoutOf(g))
		if g.IsEmpty() {
			sb.WriteString(" EMPTY")
			return nil
		}
		sb.WriteByte('(')
		for i := 0; i < g.NumGeometries(); i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('(')
			writeCoords(sb, g.GeometryN(i).Sequence())
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	case geom.KindMultiLineString:
		sb.WriteString("MULTILINESTRING")
		writeLayoutSuffix(sb, layoutOf(g))
		if g.IsEmpty() {
			sb.WriteString(" EMPTY")
			return nil
		}
		sb.WriteByte('(')
		for i := 0; i < g.NumGeometries(); i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('(')
			writeCoords(sb, g.GeometryN(i).Sequence())
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	case geom.KindMultiPolygon:
		sb.WriteString("MULTIPOLYGON")
		writeLayoutSuffix(sb, layoutOf(g))
		if g.IsEmpty() {
			sb.WriteString(" EMPTY")
			return nil
		}
		sb.WriteByte('(')
		for i := 0; i < g.NumGeometries(); i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			writePolygonBody(sb, g.GeometryN(i))
		}
		sb.WriteByte(')')
	case geom.KindGeometryCollection:
		sb.WriteString("GEOMETRYCOLLECTION")
		if g.NumGeometries() == 0 {
			sb.WriteString(" EMPTY")
			return nil
		}
		sb.WriteByte('(')
		for i := 0; i < g.NumGeometries(); i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeGeometry(sb, g.GeometryN(i)); err != nil {
				return err
			}
		}
		sb.WriteByte(')')
	default:
		return fmt.Errorf("wkt: unknown geometry kind %v", g.Kind())
	}
	return nil
}

func writePolygonBody(sb *strings.Builder, poly *geom.Geometry) {
	sb.WriteByte('(')
	sb.WriteByte('(')
	writeCoords(sb, poly.ExteriorRing().Sequence())
	sb.WriteByte(')')
	for i := 0; i < poly.NumInteriorRings(); i++ {
		sb.WriteString(",(")
		writeCoords(sb, poly.InteriorRingN(i).Sequence())
		sb.WriteByte(')')
	}
	sb.WriteByte(')')
}

// layoutOf returns the layout of the first sequence found in the
// geometry, defaulting to XY.
func layoutOf(g *geom.Geometry) geom.Layout {
	switch g.Kind() {
	case geom.KindPoint, geom.KindLineString, geom.KindLinearRing:
		return g.Sequence().Layout()
	case geom.KindPolygon:
		if g.ExteriorRing() != nil {
			return g.ExteriorRing().Sequence().Layout()
		}
	default:
		if g.NumGeometries() > 0 {
			return layoutOf(g.GeometryN(0))
		}
	}
	return geom.XY
}

func writeLayoutSuffix(sb *strings.Builder, layout geom.Layout) {
	switch layout {
	case geom.XYZ:
		sb.WriteString(" Z")
	case geom.XYM:
		sb.WriteString(" M")
	case geom.XYZM:
		sb.WriteString(" ZM")
	}
}

func writeCoords(sb *strings.Builder, seq *geom.Sequence) {
	for i := 0; i < seq.Len(); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeOrd(sb, seq.X(i))
		sb.WriteByte(' ')
		writeOrd(sb, seq.Y(i))
		if seq.Layout().HasZ() {
			sb.WriteByte(' ')
			writeOrd(sb, seq.Z(i))
		}
		if seq.Layout().HasM() {
			sb.WriteByte(' ')
			writeOrd(sb, seq.M(i))
		}
	}
}

func writeOrd(sb *strings.Builder, v float64) {
	sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
}
