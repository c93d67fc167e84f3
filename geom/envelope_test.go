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
	"testing"

	fuzz "github.com/google/gofuzz"
)

func TestEmptyEnvelope(t *testing.T) {
	empty := EmptyEnvelope()
	if !empty.IsEmpty() {
		t.Fatal("EmptyEnvelope not empty")
	}
	box := NewEnvelope(0, 0, 10, 10)
	if empty.Intersects(box) || box.Intersects(empty) {
		t.Error("empty envelope must intersect nothing")
	}
	if box.Contains(empty) {
		t.Error("the empty envelope is contained in nothing except itself")
	}
	if empty.Contains(box) {
		t.Error("empty envelope contains nothing")
	}
	if !empty.ExpandedBy(5).IsEmpty() {
		t.Error("expansion of the empty envelope must stay empty")
	}
}

func TestEnvelopeIntersection(t *testing.T) {
	a := NewEnvelope(0, 0, 10, 10)
	b := NewEnvelope(5, 5, 15, 15)
	got := a.Intersection(b)
	want := NewEnvelope(5, 5, 10, 10)
	if got != want {
		t.Errorf("Intersection = %v, want %v", got, want)
	}
	c := NewEnvelope(20, 20, 30, 30)
	if !a.Intersection(c).IsEmpty() {
		t.Error("intersection of disjoint envelopes should be empty")
	}
}

func TestEnvelopeContains(t *testing.T) {
	env := NewEnvelope(0, 0, 10, 10)
	tests := []struct {
		x, y float64
		want bool
	}{
		{5, 5, true},
		{0, 0, true},   // closed: corners contained
		{10, 5, true},  // closed: edges contained
		{-1, 5, false},
		{5, 11, false},
	}
	for _, test := range tests {
		if got := env.ContainsXY(test.x, test.y); got != test.want {
			t.Errorf("ContainsXY(%v, %v) = %v, want %v", test.x, test.y, got, test.want)
		}
	}
}

func TestEnvelopeDistance(t *testing.T) {
	a := NewEnvelope(0, 0, 1, 1)
	b := NewEnvelope(4, 5, 6, 7)
	if got := a.Distance(b); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := a.Distance(NewEnvelope(0.5, 0.5, 2, 2)); got != 0 {
		t.Errorf("Distance of intersecting envelopes = %v, want 0", got)
	}
}

// TestEnvelopeFuzzContainment checks that an envelope grown around random
// points contains each of them.
func TestEnvelopeFuzzContainment(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(1, 40)
	for i := 0; i < 50; i++ {
		var xs, ys []float64
		f.Fuzz(&xs)
		f.Fuzz(&ys)
		n := len(xs)
		if len(ys) < n {
			n = len(ys)
		}
		if n == 0 {
			continue
		}
		env := EmptyEnvelope()
		for j := 0; j < n; j++ {
			env = env.ExpandedToIncludeXY(xs[j], ys[j])
		}
		for j := 0; j < n; j++ {
			if !env.ContainsXY(xs[j], ys[j]) {
				t.Fatalf("envelope %v does not contain included point (%v, %v)",
					env, xs[j], ys[j])
			}
		}
	}
}
