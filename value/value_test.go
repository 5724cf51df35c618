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

import (
	"math"
	"testing"
)

func TestCoerceColorFromNumbers(t *testing.T) {
	cases := []struct {
		in   Value
		want Color
	}{
		{NumberValue(0.5), Color{R: 0.5, G: 0.5, B: 0.5, A: 1}},
		{TupleValue([]Value{NumberValue(0.5), NumberValue(0.25)}), Color{R: 0.5, G: 0.5, B: 0.5, A: 0.25}},
		{TupleValue([]Value{NumberValue(1), NumberValue(0), NumberValue(0)}), Color{R: 1, G: 0, B: 0, A: 1}},
	}
	for _, c := range cases {
		got, ok := CoerceColor(c.in)
		if !ok || got != c.want {
			t.Errorf("CoerceColor(%v) = %v, %v, want %v", c.in, got, ok, c.want)
		}
	}
}

func TestHexColorShorthandMatchesLongForm(t *testing.T) {
	short, err := ParseHexColor("#F00")
	if err != nil {
		t.Fatal(err)
	}
	long, err := ParseHexColor("#FF0000")
	if err != nil {
		t.Fatal(err)
	}
	if short != long {
		t.Errorf("#F00 = %v, #FF0000 = %v, want equal", short, long)
	}
}

func TestColorPlusAlphaMatchesHexPlusAlpha(t *testing.T) {
	a, _ := CoerceColor(TupleValue([]Value{NumberValue(1), NumberValue(0), NumberValue(0), NumberValue(0.5)}))
	hex, _ := ParseHexColor("#f00")
	b, _ := CoerceColor(TupleValue([]Value{ColorValue(hex), NumberValue(0.5)}))
	if a != b {
		t.Errorf("color 1 0 0 0.5 = %v, color #f00 0.5 = %v, want equal", a, b)
	}
}

func TestCoerceTripleSizeDefaultsToWidth(t *testing.T) {
	tr, ok := CoerceTriple(NumberValue(2), true)
	if !ok || tr != (Triple{X: 2, Y: 2, Z: 2}) {
		t.Errorf("CoerceTriple(2, size) = %v, %v, want {2,2,2}", tr, ok)
	}
}

func TestCoerceTripleVectorDefaultsToZero(t *testing.T) {
	tr, ok := CoerceTriple(NumberValue(2), false)
	if !ok || tr != (Triple{X: 2}) {
		t.Errorf("CoerceTriple(2, vector) = %v, %v, want {2,0,0}", tr, ok)
	}
}

func TestCoerceStringJoinsTupleWithoutSeparator(t *testing.T) {
	s, ok := CoerceString(TupleValue([]Value{StringValue("a"), NumberValue(1), StringValue("b")}))
	if !ok || s != "a1b" {
		t.Errorf("CoerceString = %q, %v, want \"a1b\"", s, ok)
	}
}

func TestCoerceBooleanRejectsOtherKinds(t *testing.T) {
	if _, ok := CoerceBoolean(NumberValue(1)); ok {
		t.Error("CoerceBoolean(number) should fail; boolean has no widening coercion")
	}
}

func TestEqualReflexive(t *testing.T) {
	vals := []Value{
		NumberValue(1), StringValue("x"), BooleanValue(true),
		ColorValue(Color{R: 1}), VectorValue(Triple{X: 1, Y: 2, Z: 3}),
		TupleValue([]Value{NumberValue(1), StringValue("a")}),
	}
	for _, v := range vals {
		if !Equal(v, v) {
			t.Errorf("Equal(%v, %v) = false, want true", v, v)
		}
	}
}

func TestEqualZeroAndNegativeZero(t *testing.T) {
	if !Equal(NumberValue(0), NumberValue(math.Copysign(0, -1))) {
		t.Error("0 = -0 should be true per spec §9")
	}
}

func TestEqualNaN(t *testing.T) {
	nan := NumberValue(math.NaN())
	if Equal(nan, nan) {
		t.Error("NaN = NaN should be false per spec §9")
	}
}

func TestEqualMixedKindsIsFalse(t *testing.T) {
	if Equal(NumberValue(1), StringValue("1")) {
		t.Error("number and string of the same text should not compare equal")
	}
}

func TestEqualTupleIsStructural(t *testing.T) {
	a := TupleValue([]Value{NumberValue(1), NumberValue(2)})
	b := TupleValue([]Value{NumberValue(1), NumberValue(2)})
	if !Equal(a, b) {
		t.Error("structurally identical tuples should compare equal")
	}
}

func TestMemberVectorAxes(t *testing.T) {
	v := VectorValue(Triple{X: 1, Y: 2, Z: 3})
	got, _, ok := Member(v, "y")
	if !ok {
		t.Fatal("Member(v, \"y\") not found")
	}
	n, _ := got.AsNumber()
	if n != 2 {
		t.Errorf("v.y = %v, want 2", n)
	}
}

func TestMemberSizeAxisNames(t *testing.T) {
	v := SizeValue(Triple{X: 1, Y: 2, Z: 3})
	got, _, ok := Member(v, "depth")
	n, _ := got.AsNumber()
	if !ok || n != 3 {
		t.Errorf("v.depth = %v, %v, want 3, true", n, ok)
	}
}

func TestMemberTupleOrdinal(t *testing.T) {
	v := TupleValue([]Value{NumberValue(10), NumberValue(20), NumberValue(30)})
	got, _, ok := Member(v, "second")
	n, _ := got.AsNumber()
	if !ok || n != 20 {
		t.Errorf("v.second = %v, %v, want 20, true", n, ok)
	}
}

func TestOrdinalNameBoundaries(t *testing.T) {
	cases := map[int]string{1: "first", 10: "tenth", 21: "twentyfirst", 99: "ninetyninth"}
	for n, want := range cases {
		got, ok := ordinalName(n)
		if !ok || got != want {
			t.Errorf("ordinalName(%d) = %q, %v, want %q", n, got, ok, want)
		}
	}
	idx, ok := OrdinalIndex("ninetyninth")
	if !ok || idx != 99 {
		t.Errorf("OrdinalIndex(ninetyninth) = %d, %v, want 99, true", idx, ok)
	}
}

func TestObjPreservesInsertionOrder(t *testing.T) {
	o := NewObj()
	o.Set("b", NumberValue(2))
	o.Set("a", NumberValue(1))
	keys := o.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Errorf("Keys() = %v, want [b a]", keys)
	}
}

func TestHashStableForEqualScalars(t *testing.T) {
	a := NumberValue(3.5)
	b := NumberValue(3.5)
	if a.Hash() != b.Hash() {
		t.Error("equal numbers should hash identically")
	}
}

func TestFormatNumberTrimsTrailingZeros(t *testing.T) {
	if got := NumberValue(1.5).String(); got != "1.5" {
		t.Errorf("String() = %q, want 1.5", got)
	}
	if got := NumberValue(2).String(); got != "2" {
		t.Errorf("String() = %q, want 2", got)
	}
}
