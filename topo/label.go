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

import "strings"

// topologyLocation records the topological position of a graph component
// relative to one input geometry. Line components carry a single On
// location; area components carry On, Left and Right locations.
type topologyLocation struct {
	loc []Location
}

func newLineLocation(on Location) *topologyLocation {
	return &topologyLocation{loc: []Location{on}}
}

func newAreaLocation(on, left, right Location) *topologyLocation {
	return &topologyLocation{loc: []Location{on, left, right}}
}

func copyLocation(tl *topologyLocation) *topologyLocation {
	return &topologyLocation{loc: append([]Location(nil), tl.loc...)}
}

func (tl *topologyLocation) get(pos Position) Location {
	if int(pos) < len(tl.loc) {
		return tl.loc[pos]
	}
	return LocNone
}

func (tl *topologyLocation) isArea() bool { return len(tl.loc) > 1 }
func (tl *topologyLocation) isLine() bool { return len(tl.loc) == 1 }

func (tl *topologyLocation) isNull() bool {
	for _, l := range tl.loc {
		if l != LocNone {
			return false
		}
	}
	return true
}

func (tl *topologyLocation) isAnyNull() bool {
	for _, l := range tl.loc {
		if l == LocNone {
			return true
		}
	}
	return false
}

func (tl *topologyLocation) set(pos Position, l Location) {
	if int(pos) < len(tl.loc) {
		tl.loc[pos] = l
	}
}

func (tl *topologyLocation) setAll(l Location) {
	for i := range tl.loc {
		tl.loc[i] = l
	}
}

func (tl *topologyLocation) setAllIfNull(l Location) {
	for i := range tl.loc {
		if tl.loc[i] == LocNone {
			tl.loc[i] = l
		}
	}
}

// expandToArea widens a line location to an area location with null sides.
func (tl *topologyLocation) expandToArea() {
	if tl.isLine() {
		tl.loc = []Location{tl.loc[0], LocNone, LocNone}
	}
}

// flip exchanges the left and right locations.
func (tl *topologyLocation) flip() {
	if len(tl.loc) > 2 {
		tl.loc[1], tl.loc[2] = tl.loc[2], tl.loc[1]
	}
}

func (tl *topologyLocation) allPositionsEqual(l Location) bool {
	for _, v := range tl.loc {
		if v != l {
			return false
		}
	}
	return true
}

// merge copies non-null locations from other into null slots, widening to
// an area location if other is one.
func (tl *topologyLocation) merge(other *topologyLocation) {
	if len(other.loc) > len(tl.loc) {
		tl.expandToArea()
	}
	for i := range tl.loc {
		if tl.loc[i] == LocNone && i < len(other.loc) {
			tl.loc[i] = other.loc[i]
		}
	}
}

func (tl *topologyLocation) String() string {
	var sb strings.Builder
	if len(tl.loc) > 1 {
		sb.WriteString(tl.loc[PosLeft].String())
	}
	sb.WriteString(tl.loc[PosOn].String())
	if len(tl.loc) > 1 {
		sb.WriteString(tl.loc[PosRight].String())
	}
	return sb.String()
}

// Label records the topological position of a graph component relative to
// both input geometries.
type Label struct {
	elt [2]*topologyLocation
}

// newLineLabel returns a label with the same single On location for both
// inputs.
func newLineLabel(on Location) *Label {
	return &Label{elt: [2]*topologyLocation{
		newLineLocation(on), newLineLocation(on),
	}}
}

// newLineLabelFor returns a label with an On location for one input and
// null for the other.
func newLineLabelFor(geomIndex int, on Location) *Label {
	l := newLineLabel(LocNone)
	l.elt[geomIndex].set(PosOn, on)
	return l
}

// newAreaLabelFor returns a label with area locations on both inputs,
// set for one input and null for the other. Both sides are area-typed so
// side locations propagate onto the unset input during labelling.
func newAreaLabelFor(geomIndex int, on, left, right Location) *Label {
	l := &Label{elt: [2]*topologyLocation{
		newAreaLocation(LocNone, LocNone, LocNone),
		newAreaLocation(LocNone, LocNone, LocNone),
	}}
	l.elt[geomIndex] = newAreaLocation(on, left, right)
	return l
}

// copyLabel deep-copies a label.
func copyLabel(l *Label) *Label {
	return &Label{elt: [2]*topologyLocation{
		copyLocation(l.elt[0]), copyLocation(l.elt[1]),
	}}
}

// Location returns the location of the given side for the given input.
func (l *Label) Location(geomIndex int, pos Position) Location {
	return l.elt[geomIndex].get(pos)
}

// On returns the On location for the given input.
func (l *Label) On(geomIndex int) Location {
	return l.elt[geomIndex].get(PosOn)
}

func (l *Label) setLocation(geomIndex int, pos Position, loc Location) {
	if pos != PosOn {
		l.elt[geomIndex].expandToArea()
	}
	l.elt[geomIndex].set(pos, loc)
}

func (l *Label) setOn(geomIndex int, loc Location) {
	l.elt[geomIndex].set(PosOn, loc)
}

func (l *Label) setAllLocations(geomIndex int, loc Location) {
	l.elt[geomIndex].setAll(loc)
}

func (l *Label) setAllLocationsIfNull(geomIndex int, loc Location) {
	l.elt[geomIndex].setAllIfNull(loc)
}

// flip exchanges left and right for both inputs, producing the label of
// the reverse traversal.
func (l *Label) flip() {
	l.elt[0].flip()
	l.elt[1].flip()
}

// merge fills null locations of l from other.
func (l *Label) merge(other *Label) {
	for i := 0; i < 2; i++ {
		l.elt[i].merge(other.elt[i])
	}
}

// isArea reports whether either input has side locations.
func (l *Label) isArea() bool {
	return l.elt[0].isArea() || l.elt[1].isArea()
}

// isAreaFor reports whether the given input has side locations.
func (l *Label) isAreaFor(geomIndex int) bool {
	return l.elt[geomIndex].isArea()
}

// isLineFor reports whether the given input has a single On location.
func (l *Label) isLineFor(geomIndex int) bool {
	return l.elt[geomIndex].isLine()
}

func (l *Label) isNull(geomIndex int) bool {
	return l.elt[geomIndex].isNull()
}

func (l *Label) isAnyNull(geomIndex int) bool {
	return l.elt[geomIndex].isAnyNull()
}

// allPositionsEqual reports whether every position of the given input has
// the given location.
func (l *Label) allPositionsEqual(geomIndex int, loc Location) bool {
	return l.elt[geomIndex].allPositionsEqual(loc)
}

// geometryCount returns the number of inputs with any location set.
func (l *Label) geometryCount() int {
	count := 0
	for i := 0; i < 2; i++ {
		if !l.elt[i].isNull() {
			count++
		}
	}
	return count
}

// toLine collapses the area location of the given input to a line location.
func (l *Label) toLine(geomIndex int) {
	if l.elt[geomIndex].isArea() {
		l.elt[geomIndex] = newLineLocation(l.elt[geomIndex].loc[0])
	}
}

func (l *Label) String() string {
	return "A:" + l.elt[0].String() + " B:" + l.elt[1].String()
}

// Depth records the number of enclosing areas on each side of an edge for
// each input, supporting overlapping polygon components in a single input.
type depth struct {
	d [2][3]int
}

const depthNull = -1

func newDepth() *depth {
	d := &depth{}
	for i := range d.d {
		for j := range d.d[i] {
			d.d[i][j] = depthNull
		}
	}
	return d
}

func depthAtLocation(loc Location) int {
	switch loc {
	case LocExterior:
		return 0
	case LocInterior:
		return 1
	}
	return depthNull
}

func (d *depth) get(geomIndex int, pos Position) int { return d.d[geomIndex][pos] }

func (d *depth) isNullAt(geomIndex int, pos Position) bool {
	return d.d[geomIndex][pos] == depthNull
}

func (d *depth) isNullFor(geomIndex int) bool {
	return d.d[geomIndex][1] == depthNull && d.d[geomIndex][2] == depthNull
}

func (d *depth) isNull() bool {
	for i := range d.d {
		for j := 1; j < 3; j++ {
			if d.d[i][j] != depthNull {
				return false
			}
		}
	}
	return true
}

// add accumulates the depth contribution of a label.
func (d *depth) add(l *Label) {
	for i := 0; i < 2; i++ {
		for j := Position(1); j <= 2; j++ {
			loc := l.Location(i, j)
			if loc == LocExterior || loc == LocInterior {
				if d.isNullAt(i, j) {
					d.d[i][j] = depthAtLocation(loc)
				} else {
					d.d[i][j] += depthAtLocation(loc)
				}
			}
		}
	}
}

// delta returns the depth change crossing the edge from left to right.
func (d *depth) delta(geomIndex int) int {
	return d.d[geomIndex][PosRight] - d.d[geomIndex][PosLeft]
}

// normalize reduces depths to 0/1, keeping which side is deeper. A depth of
// 0 is exterior, positive depth is interior.
func (d *depth) normalize() {
	for i := 0; i < 2; i++ {
		if d.isNullFor(i) {
			continue
		}
		minDepth := d.d[i][1]
		if d.d[i][2] < minDepth {
			minDepth = d.d[i][2]
		}
		if minDepth < 0 {
			minDepth = 0
		}
		for j := 1; j < 3; j++ {
			newValue := 0
			if d.d[i][j] > minDepth {
				newValue = 1
			}
			d.d[i][j] = newValue
		}
	}
}

// location returns the location implied by the depth on a side.
func (d *depth) location(geomIndex int, pos Position) Location {
	if d.d[geomIndex][pos] <= 0 {
		return LocExterior
	}
	return LocInterior
}
