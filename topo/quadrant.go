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

// quadrant returns the quadrant of the direction vector (dx, dy):
// 0 for NE, 1 for NW, 2 for SW, 3 for SE. A zero ordinate counts as
// non-negative, so the +x and +y axes fall in NE, -x in NW and -y in SE.
// The zero vector is undefined and reports quadrant 0.
func quadrant(dx, dy float64) int {
	if dx >= 0 {
		if dy >= 0 {
			return 0
		}
		return 3
	}
	if dy >= 0 {
		return 1
	}
	return 2
}
