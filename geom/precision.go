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

import "math"

// PrecisionModel determines the grid on which constructed coordinates lie.
//
// A floating model keeps the full IEEE-754 double range. A fixed model with
// scale s rounds every constructed ordinate to the nearest k/s for integer k;
// scale 1 is integer precision. The model affects construction output only:
// predicates compare geometries as given.
//
// A PrecisionModel is immutable and safe to share across goroutines.
type PrecisionModel struct {
	scale float64
}

// Floating returns the full-precision model.
func Floating() *PrecisionModel { return &PrecisionModel{} }

// Fixed returns a fixed model with the given scale factor. A scale of zero is
// reserved to mean floating.
func Fixed(scale float64) *PrecisionModel {
	return &PrecisionModel{scale: math.Abs(scale)}
}

// IsFloating reports whether the model preserves full double precision.
func (pm *PrecisionModel) IsFloating() bool {
	return pm == nil || pm.scale == 0
}

// Scale returns the grid scale factor, or 0 for the floating model.
func (pm *PrecisionModel) Scale() float64 {
	if pm == nil {
		return 0
	}
	return pm.scale
}

// MakePrecise rounds v onto the model grid. NaN is preserved.
func (pm *PrecisionModel) MakePrecise(v float64) float64 {
	if pm.IsFloating() || math.IsNaN(v) {
		return v
	}
	return math.Round(v*pm.scale) / pm.scale
}

// MakePreciseCoord rounds the X and Y ordinates of c onto the model grid.
// Z and M are carried through unchanged.
func (pm *PrecisionModel) MakePreciseCoord(c Coordinate) Coordinate {
	c.X = pm.MakePrecise(c.X)
	c.Y = pm.MakePrecise(c.Y)
	return c
}
