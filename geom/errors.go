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

import "fmt"

// ArgumentError indicates invalid input the caller could have checked:
// a nil geometry, mismatched precision models, malformed construction data.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string {
	return "invalid argument: " + e.Msg
}

// TopologyError indicates a robustness invariant failed during noding,
// labelling or ring assembly. It carries the responsible coordinate when
// known. Callers may retry the operation with a coarser precision model.
type TopologyError struct {
	Msg string
	Pt  *Coordinate
}

func (e *TopologyError) Error() string {
	if e.Pt != nil {
		return fmt.Sprintf("topology error: %s at %v", e.Msg, *e.Pt)
	}
	return "topology error: " + e.Msg
}

// EmptyGeometryError indicates an operation that requires a non-empty input
// was given an empty one.
type EmptyGeometryError struct {
	Op string
}

func (e *EmptyGeometryError) Error() string {
	return fmt.Sprintf("%s: empty geometry", e.Op)
}

// InterruptedError indicates the operation was cancelled through its context
// before completing. No partial results are observable.
type InterruptedError struct{}

func (e *InterruptedError) Error() string {
	return "operation interrupted"
}

// UnsupportedError indicates a feature this version does not implement.
type UnsupportedError struct {
	What string
}

func (e *UnsupportedError) Error() string {
	return "unsupported: " + e.What
}

// BoundsError indicates out-of-range access to a coordinate sequence.
type BoundsError struct {
	Index, Size int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("index %d out of range for sequence of %d coordinates",
		e.Index, e.Size)
}
