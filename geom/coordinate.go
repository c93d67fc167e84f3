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
)

// Coordinate is a single location in the plane, with optional elevation (Z)
// and measure (M) ordinates. Unset ordinates are NaN and propagate through
// computations.
//
// Equality for topological purposes is 2D only: two coordinates are the same
// point iff their X and Y ordinates are equal. Z and M are carried along but
// never participate in topological reasoning.
type Coordinate struct {
	X, Y, Z, M float64
}

// Coord returns an XY coordinate with unset Z and M.
func Coord(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y, Z: math.NaN(), M: math.NaN()}
}

// CoordZ returns an XYZ coordinate with unset M.
func CoordZ(x, y, z float64) Coordinate {
	return Coordinate{X: x, Y: y, Z: z, M: math.NaN()}
}

// Equals2D reports whether c and other are the same point in the plane.
func (c Coordinate) Equals2D(other Coordinate) bool {
	return c.X == other.X && c.Y == other.Y
}

// Compare orders coordinates lexicographically by (X, Y).
// It returns -1, 0 or 1 as c is less than, equal to, or greater than other.
func (c Coordinate) Compare(other Coordinate) int {
	switch {
	case c.X < other.X:
		return -1
	case c.X > other.X:
		return 1
	case c.Y < other.Y:
		return -1
	case c.Y > other.Y:
		return 1
	}
	return 0
}

// Distance returns the 2D euclidean distance between c and other.
func (c Coordinate) Distance(other Coordinate) float64 {
	dx := c.X - other.X
	dy := c.Y - other.Y
	return math.Hypot(dx, dy)
}

// HasZ reports whether the Z ordinate is set.
func (c Coordinate) HasZ() bool { return !math.IsNaN(c.Z) }

// HasM reports whether the M ordinate is set.
func (c Coordinate) HasM() bool { return !math.IsNaN(c.M) }

func (c Coordinate) String() string {
	return fmt.Sprintf("(%v, %v)", c.X, c.Y)
}
