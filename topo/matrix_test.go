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

import "testing"

func matrixFromString(t *testing.T, s string) *IntersectionMatrix {
	t.Helper()
	im := NewIntersectionMatrix()
	for i := 0; i < 9; i++ {
		row, col := Location(i/3), Location(i%3)
		switch s[i] {
		case 'F':
			im.Set(row, col, DimFalse)
		default:
			im.Set(row, col, int(s[i]-'0'))
		}
	}
	return im
}

func TestMatrixString(t *testing.T) {
	for _, s := range []string{"0F2FF1FF2", "FFFFFFFF2", "212101212"} {
		if got := matrixFromString(t, s).String(); got != s {
			t.Errorf("String() = %q, want %q", got, s)
		}
	}
}

func TestMatrixMatches(t *testing.T) {
	im := matrixFromString(t, "0F2FF1FF2")
	tests := []struct {
		pattern string
		want    bool
	}{
		{"0F2FF1FF2", true},
		{"T********", true},
		{"*********", true},
		{"0F2FF1FF1", false},
		{"F********", false},
		{"T*****FF*", true}, // the contains pattern
	}
	for _, test := range tests {
		got, err := im.Matches(test.pattern)
		if err != nil {
			t.Fatalf("Matches(%q): %v", test.pattern, err)
		}
		if got != test.want {
			t.Errorf("Matches(%q) = %v, want %v", test.pattern, got, test.want)
		}
	}
	if _, err := im.Matches("TT"); err == nil {
		t.Error("short pattern should error")
	}
	if _, err := im.Matches("XXXXXXXXX"); err == nil {
		t.Error("bad pattern characters should error")
	}
}

func TestMatrixPredicates(t *testing.T) {
	// point inside polygon, from the polygon's side
	im := matrixFromString(t, "0F2FF1FF2")
	if !im.IsContains() {
		t.Error("point-in-polygon matrix should satisfy contains")
	}
	if !im.IsIntersects() || im.IsDisjoint() {
		t.Error("point-in-polygon matrix intersects")
	}
	if im.IsTouches(2, 0) {
		t.Error("interior intersection is not touches")
	}

	// transposed: the point's view
	if !im.Transposed().IsWithin() {
		t.Error("transposed matrix should satisfy within")
	}

	// boundary touch
	touch := matrixFromString(t, "FF2F01FF2")
	if !touch.IsTouches(2, 0) {
		t.Error("boundary-only intersection should be touches")
	}
	if !touch.IsCovers() {
		t.Error("boundary point is covered")
	}
	if touch.IsContains() {
		t.Error("boundary-only point is not contained")
	}

	// two overlapping areas
	over := matrixFromString(t, "212101212")
	if !over.IsOverlaps(2, 2) {
		t.Error("overlapping-areas matrix should satisfy overlaps")
	}
	if over.IsEquals(2, 2) {
		t.Error("overlapping areas are not equal")
	}

	// disjoint lines
	disjoint := matrixFromString(t, "FF1FF0102")
	if !disjoint.IsDisjoint() {
		t.Error("disjoint-lines matrix should be disjoint")
	}

	// equal polygons
	equal := matrixFromString(t, "2FFF1FFF2")
	if !equal.IsEquals(2, 2) {
		t.Error("identical-areas matrix should be equal")
	}
}
