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

/*
Package topo is the planar topology engine: robust geometric primitives,
noding, the labelled topology graph, and the two operations built on that
graph: DE-9IM relate (all named spatial predicates) and boolean overlay
(intersection, union, difference, symmetric difference).

The engine constructs a planar graph from one or two input geometries:
edges are noded so no two share interior points, each node and edge
carries a Label recording its topological location (interior, boundary,
exterior) relative to each input, and labels are completed by propagation
around the CCW-ordered edges of every node. The relate engine folds the
labels into a 3x3 intersection matrix; the overlay engine selects the
labelled edges satisfying the operation and reassembles them into
polygons, lines and points.

All predicates reduce to exact decisions: the orientation primitive
guarantees correct determinant signs through an error-bound filter with
an extended-precision fallback, and segment intersection points are
guaranteed to lie within the envelopes of both input segments.

Operations run to completion on the calling goroutine; the WithContext
variants poll the context between stages and abort with an
InterruptedError when cancelled. Graph state lives only for the duration
of one operation; geometries, factories and precision models are
immutable and safe to share.
*/
package topo
