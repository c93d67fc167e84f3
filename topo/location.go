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

// Location classifies a point relative to a geometry: in its interior, on
// its boundary, in its exterior, or not yet determined.
type Location int8

const (
	// LocNone means the location has not been determined, or the input
	// carries no information for it (a line has no area side locations).
	LocNone Location = -1
	// LocInterior is the interior of a geometry.
	LocInterior Location = 0
	// LocBoundary is the boundary of a geometry.
	LocBoundary Location = 1
	// LocExterior is the exterior of a geometry.
	LocExterior Location = 2
)

func (l Location) String() string {
	switch l {
	case LocInterior:
		return "i"
	case LocBoundary:
		return "b"
	case LocExterior:
		return "e"
	}
	return "-"
}

// Position identifies a side of an edge: on the edge itself, to its left,
// or to its right.
type Position int

const (
	// PosOn is the position of a point on the edge.
	PosOn Position = 0
	// PosLeft is the position left of the edge, facing along its direction.
	PosLeft Position = 1
	// PosRight is the position right of the edge.
	PosRight Position = 2
)

// Opposite returns the other side of an edge. PosOn is its own opposite.
func (p Position) Opposite() Position {
	switch p {
	case PosLeft:
		return PosRight
	case PosRight:
		return PosLeft
	}
	return p
}

// BoundaryNodeRule decides whether a point that occurs boundaryCount times
// as a component boundary point is in the boundary of the full geometry.
type BoundaryNodeRule interface {
	IsInBoundary(boundaryCount int) bool
}

// Mod2BoundaryNodeRule is the OGC SFS rule: a point is on the boundary iff
// it occurs an odd number of times as an endpoint. This is the default.
type Mod2BoundaryNodeRule struct{}

// IsInBoundary implements BoundaryNodeRule with the mod-2 test.
func (Mod2BoundaryNodeRule) IsInBoundary(boundaryCount int) bool {
	return boundaryCount%2 == 1
}

// EndpointBoundaryNodeRule places every endpoint in the boundary.
type EndpointBoundaryNodeRule struct{}

// IsInBoundary implements BoundaryNodeRule.
func (EndpointBoundaryNodeRule) IsInBoundary(boundaryCount int) bool {
	return boundaryCount > 0
}

// MonoValentEndpointBoundaryNodeRule places endpoints occurring exactly
// once in the boundary.
type MonoValentEndpointBoundaryNodeRule struct{}

// IsInBoundary implements BoundaryNodeRule.
func (MonoValentEndpointBoundaryNodeRule) IsInBoundary(boundaryCount int) bool {
	return boundaryCount == 1
}

// MultiValentEndpointBoundaryNodeRule places endpoints occurring more than
// once in the boundary.
type MultiValentEndpointBoundaryNodeRule struct{}

// IsInBoundary implements BoundaryNodeRule.
func (MultiValentEndpointBoundaryNodeRule) IsInBoundary(boundaryCount int) bool {
	return boundaryCount > 1
}

func determineBoundary(rule BoundaryNodeRule, boundaryCount int) Location {
	if rule.IsInBoundary(boundaryCount) {
		return LocBoundary
	}
	return LocInterior
}
