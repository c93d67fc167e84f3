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
Package geom holds the planar geometry value model: coordinates with
optional Z and M ordinates, packed coordinate sequences with a fixed
layout, axis-aligned envelopes, precision models, and the eight SFS
geometry variants expressed as a single tagged type built by a Factory.

Geometries are logically immutable once constructed: a Factory and its
PrecisionModel are shared freely across goroutines, and operations that
would mutate (Normalize, SetSRID, SetUserData) are explicit caller opt-ins
that must not race with readers. Topological equality of coordinates is
2D only; Z and M are carried through operations, interpolated where
geometrically meaningful, and NaN ordinates propagate.
*/
package geom
