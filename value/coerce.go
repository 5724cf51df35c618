// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package value

import "strings"

// elts returns v's tuple elements, or a single-element slice of v itself if
// v is not a Tuple — the common "a bare scalar is a length-1 tuple" shape
// every coercion rule in spec §3 relies on.
func elts(v Value) []Value {
	if t, ok := v.AsTuple(); ok {
		return t
	}
	return []Value{v}
}

// CoerceNumber implements the `number` coercion rule: a number, or a
// length-1 tuple of one number.
func CoerceNumber(v Value) (float64, bool) {
	es := elts(v)
	if len(es) != 1 {
		return 0, false
	}
	return es[0].AsNumber()
}

// CoerceTriple implements the shared vector/size/rotation coercion rule: a
// tuple of 1-3 numbers, with missing trailing axes defaulting per kind
// (vector/rotation default 0; size defaults missing dims to the width, the
// first component). A value already holding the target kind passes
// through unchanged.
func CoerceTriple(v Value, sizeDefaults bool) (Triple, bool) {
	if t, ok := v.AsTriple(); ok {
		return t, true
	}
	es := elts(v)
	if len(es) == 0 || len(es) > 3 {
		return Triple{}, false
	}
	nums := make([]float64, len(es))
	for i, e := range es {
		n, ok := e.AsNumber()
		if !ok {
			return Triple{}, false
		}
		nums[i] = n
	}
	t := Triple{}
	switch len(nums) {
	case 1:
		t.X = nums[0]
		if sizeDefaults {
			t.Y, t.Z = nums[0], nums[0]
		}
	case 2:
		t.X, t.Y = nums[0], nums[1]
		if sizeDefaults {
			t.Z = nums[0]
		}
	case 3:
		t.X, t.Y, t.Z = nums[0], nums[1], nums[2]
	}
	return t, true
}

// CoerceColor implements spec §3's color coercion rule: a number
// (luminance), 2 numbers (lum, alpha), 3 numbers (rgb), 4 numbers (rgba),
// or a hex literal; a (color, number) tuple overrides alpha.
func CoerceColor(v Value) (Color, bool) {
	if c, ok := v.AsColor(); ok {
		return c, true
	}
	es := elts(v)
	if len(es) == 2 {
		if c, ok := es[0].AsColor(); ok {
			if a, ok := es[1].AsNumber(); ok {
				c.A = a
				return c, true
			}
		}
	}
	nums := make([]float64, 0, len(es))
	for _, e := range es {
		n, ok := e.AsNumber()
		if !ok {
			return Color{}, false
		}
		nums = append(nums, n)
	}
	switch len(nums) {
	case 1:
		return Color{R: nums[0], G: nums[0], B: nums[0], A: 1}, true
	case 2:
		return Color{R: nums[0], G: nums[0], B: nums[0], A: nums[1]}, true
	case 3:
		return Color{R: nums[0], G: nums[1], B: nums[2], A: 1}, true
	case 4:
		return Color{R: nums[0], G: nums[1], B: nums[2], A: nums[3]}, true
	}
	return Color{}, false
}

// CoerceString implements spec §3's string coercion rule: a string, or a
// tuple whose elements are all coerce-to-string, joined with no separator.
func CoerceString(v Value) (string, bool) {
	if t, ok := v.AsTuple(); ok {
		var b strings.Builder
		for _, e := range t {
			s, ok := CoerceString(e)
			if !ok {
				return "", false
			}
			b.WriteString(s)
		}
		return b.String(), true
	}
	return stringifyScalar(v)
}

func stringifyScalar(v Value) (string, bool) {
	switch v.kind {
	case String:
		return v.str, true
	case Number, Boolean:
		return v.String(), true
	default:
		return "", false
	}
}

// CoerceBoolean implements spec §3's boolean coercion rule: boolean only,
// no widening from any other kind.
func CoerceBoolean(v Value) (bool, bool) {
	return v.AsBoolean()
}

// CoerceTexture implements the literal (non-delegate) half of spec §3's
// texture coercion: an existing texture passes through; a bare number is
// an intensity multiplier on a file-less texture ("texture * number").
// Resolving a string to a file is the evaluator's job, since it requires
// the EvaluationDelegate.
func CoerceTexture(v Value) (Texture, bool) {
	if t, ok := v.AsTexture(); ok {
		return t, true
	}
	if n, ok := CoerceNumber(v); ok {
		return Texture{Intensity: n}, true
	}
	return Texture{}, false
}
