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
	"fmt"
	"strings"

	index "github.com/blevesearch/bleve_index_api"

	"github.com/blevesearch/planar/geom"
	"github.com/blevesearch/planar/topo"
)

// Shape adapts a planar geometry to the bleve index GeoJSON interface,
// answering Intersects and Contains through the relate engine.
type Shape struct {
	g *geom.Geometry
}

var _ index.GeoJSON = (*Shape)(nil)

// NewShape wraps a geometry for use in bleve spatial queries.
func NewShape(g *geom.Geometry) (*Shape, error) {
	if g == nil {
		return nil, fmt.Errorf("geojson: nil geometry")
	}
	return &Shape{g: g}, nil
}

// UnmarshalShape parses GeoJSON directly into a Shape.
func UnmarshalShape(data []byte, f *geom.Factory) (*Shape, error) {
	g, err := Unmarshal(data, f)
	if err != nil {
		return nil, err
	}
	return &Shape{g: g}, nil
}

// Geometry returns the wrapped geometry.
func (s *Shape) Geometry() *geom.Geometry { return s.g }

// Type implements index.GeoJSON.
func (s *Shape) Type() string {
	return strings.ToLower(s.g.Kind().String())
}

// Intersects implements index.GeoJSON against any other planar Shape.
func (s *Shape) Intersects(other index.GeoJSON) (bool, error) {
	o, ok := other.(*Shape)
	if !ok {
		return false, fmt.Errorf("geojson: cannot compare with shape type %q", other.Type())
	}
	return topo.Intersects(s.g, o.g)
}

// Contains implements index.GeoJSON against any other planar Shape.
func (s *Shape) Contains(other index.GeoJSON) (bool, error) {
	o, ok := other.(*Shape)
	if !ok {
		return false, fmt.Errorf("geojson: cannot compare with shape type %q", other.Type())
	}
	return topo.Contains(s.g, o.g)
}

// Value implements index.GeoJSON, returning the GeoJSON encoding.
func (s *Shape) Value() ([]byte, error) {
	return Marshal(s.g)
}
