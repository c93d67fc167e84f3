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

// dd is an extended-precision value represented as the unevaluated sum of
// two doubles, giving roughly 106 bits of significand. It backs the exact
// stage of the orientation predicate; only the operations that stage needs
// are provided.
type dd struct {
	hi, lo float64
}

// ddSplit is the multiplier used to split a double into two half-width
// parts for exact multiplication (2^27 + 1).
const ddSplit = 134217729.0

// ddFromDiff returns the exact difference a - b of two doubles.
func ddFromDiff(a, b float64) dd {
	s := a - b
	bb := a - s
	err := (a - (s + bb)) + (bb - b)
	return dd{hi: s, lo: err}
}

// add returns x + y.
func (x dd) add(y dd) dd {
	s := x.hi + y.hi
	t := x.lo + y.lo
	e := s - x.hi
	f := t - x.lo
	s2 := s - e
	t2 := t - f
	s2 = (y.hi - e) + (x.hi - s2)
	t2 = (y.lo - f) + (x.lo - t2)
	e = s2 + t
	h := s + e
	h2 := e + (s - h)
	e = t2 + h2
	zhi := h + e
	zlo := e + (h - zhi)
	return dd{hi: zhi, lo: zlo}
}

// sub returns x - y.
func (x dd) sub(y dd) dd {
	return x.add(dd{hi: -y.hi, lo: -y.lo})
}

// mul returns x * y.
func (x dd) mul(y dd) dd {
	cc := ddSplit * x.hi
	hx := cc - x.hi
	c := ddSplit * y.hi
	hx = cc - hx
	tx := x.hi - hx
	hy := c - y.hi
	cc = x.hi * y.hi
	hy = c - hy
	ty := y.hi - hy
	c = ((((hx*hy - cc) + hx*ty) + tx*hy) + tx*ty) + (x.hi*y.lo + x.lo*y.hi)
	zhi := cc + c
	hx = cc - zhi
	zlo := c + hx
	return dd{hi: zhi, lo: zlo}
}

// signum returns the sign of the value: -1, 0 or +1.
func (x dd) signum() int {
	if x.hi > 0 {
		return 1
	}
	if x.hi < 0 {
		return -1
	}
	if x.lo > 0 {
		return 1
	}
	if x.lo < 0 {
		return -1
	}
	return 0
}
