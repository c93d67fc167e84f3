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

// UnaryUnion returns the union of all components of a geometry, merging
// overlapping polygons, noding lines against each other, and removing
// duplicate points.
func UnaryUnion(g *geom.Geometry) (*geom.Geometry, error) {
	return UnaryUnionWithContext(context.Background(), g)
}

// UnaryUnionWithContext is UnaryUnion with cooperative cancellation.
func UnaryUnionWithContext(ctx context.Context, g *geom.Geometry) (*geom.Geometry, error) {
	if g == nil {
		return nil, &geom.ArgumentError{Msg: "nil geometry"}
	}
	var parts []*geom.Geometry
	collectAtomic(g, &parts)
	if len(parts) == 0 {
		return g.Factory().GeometryCollection()
	}
	result := parts[0]
	for _, part := range parts[1:] {
		var err error
		result, err = Overlay(ctx, result, part, OpUnion)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
