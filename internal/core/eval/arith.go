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

package eval

import (
	"math"

	"shapescript.dev/shapescript/errors"
	"shapescript.dev/shapescript/token"
	"shapescript.dev/shapescript/value"
)

// explode decomposes a number, vector/size/rotation triple, or tuple into
// its scalar elements plus a rebuild function that reassembles a result
// of the same shape, so elementwise arithmetic (spec §4.2 "arithmetic
// operators apply componentwise to vector/size/rotation/tuple values")
// can share one implementation across every compound kind.
func explode(v value.Value) (elts []value.Value, rebuild func([]value.Value) value.Value, ok bool) {
	switch v.Kind() {
	case value.Number:
		return []value.Value{v}, func(es []value.Value) value.Value { return es[0] }, true
	case value.Vector:
		t, _ := v.AsTriple()
		return []value.Value{value.NumberValue(t.X), value.NumberValue(t.Y), value.NumberValue(t.Z)},
			func(es []value.Value) value.Value { return value.VectorValue(tripleOf(es)) }, true
	case value.Size:
		t, _ := v.AsTriple()
		return []value.Value{value.NumberValue(t.X), value.NumberValue(t.Y), value.NumberValue(t.Z)},
			func(es []value.Value) value.Value { return value.SizeValue(tripleOf(es)) }, true
	case value.Rotation:
		t, _ := v.AsTriple()
		return []value.Value{value.NumberValue(t.X), value.NumberValue(t.Y), value.NumberValue(t.Z)},
			func(es []value.Value) value.Value { return value.RotationValue(tripleOf(es)) }, true
	case value.Tuple:
		t, _ := v.AsTuple()
		return t, func(es []value.Value) value.Value { return value.TupleValue(es) }, true
	}
	return nil, nil, false
}

func tripleOf(es []value.Value) value.Triple {
	var t value.Triple
	if len(es) > 0 {
		t.X, _ = es[0].AsNumber()
	}
	if len(es) > 1 {
		t.Y, _ = es[1].AsNumber()
	}
	if len(es) > 2 {
		t.Z, _ = es[2].AsNumber()
	}
	return t
}

// arith implements +, -, *, / and % (spec §4.2): string concatenation for
// `+` when either operand is a string, texture-intensity scaling for `*`
// between a texture and a number, and elementwise numeric arithmetic
// (with scalar broadcast) for everything else.
func arith(op token.Token, a, b value.Value, pos token.Pos) (value.Value, error) {
	if op == token.ADD && (a.Kind() == value.String || b.Kind() == value.String) {
		as, aok := value.CoerceString(a)
		bs, bok := value.CoerceString(b)
		if aok && bok {
			return value.StringValue(as + bs), nil
		}
	}

	if op == token.MUL {
		if t, ok := a.AsTexture(); ok {
			if n, ok := value.CoerceNumber(b); ok {
				t.Intensity *= n
				return value.TextureValue(t), nil
			}
		}
		if t, ok := b.AsTexture(); ok {
			if n, ok := value.CoerceNumber(a); ok {
				t.Intensity *= n
				return value.TextureValue(t), nil
			}
		}
	}

	aElts, aRebuild, aOk := explode(a)
	bElts, _, bOk := explode(b)
	if !aOk || !bOk {
		return value.Value{}, typeMismatchAt(pos, "number", mismatchedTypeName(a, b))
	}

	switch {
	case len(aElts) == 1 && len(bElts) > 1:
		an, ok := aElts[0].AsNumber()
		if !ok {
			return value.Value{}, typeMismatchAt(pos, "number", a.TypeName())
		}
		out := make([]value.Value, len(bElts))
		for i, be := range bElts {
			bn, ok := be.AsNumber()
			if !ok {
				return value.Value{}, typeMismatchAt(pos, "number", b.TypeName())
			}
			n, err := applyOp(op, an, bn, pos)
			if err != nil {
				return value.Value{}, err
			}
			out[i] = value.NumberValue(n)
		}
		_, bRebuild, _ := explode(b)
		return bRebuild(out), nil

	case len(bElts) == 1 && len(aElts) > 1:
		bn, ok := bElts[0].AsNumber()
		if !ok {
			return value.Value{}, typeMismatchAt(pos, "number", b.TypeName())
		}
		out := make([]value.Value, len(aElts))
		for i, ae := range aElts {
			an, ok := ae.AsNumber()
			if !ok {
				return value.Value{}, typeMismatchAt(pos, "number", a.TypeName())
			}
			n, err := applyOp(op, an, bn, pos)
			if err != nil {
				return value.Value{}, err
			}
			out[i] = value.NumberValue(n)
		}
		return aRebuild(out), nil

	default:
		n := len(aElts)
		if len(bElts) < n {
			n = len(bElts)
		}
		out := make([]value.Value, n)
		for i := 0; i < n; i++ {
			an, aok := aElts[i].AsNumber()
			bn, bok := bElts[i].AsNumber()
			if !aok || !bok {
				return value.Value{}, typeMismatchAt(pos, "number", mismatchedTypeName(a, b))
			}
			v, err := applyOp(op, an, bn, pos)
			if err != nil {
				return value.Value{}, err
			}
			out[i] = value.NumberValue(v)
		}
		if len(aElts) == 1 && len(bElts) == 1 {
			return out[0], nil
		}
		return aRebuild(out), nil
	}
}

func applyOp(op token.Token, a, b float64, pos token.Pos) (float64, error) {
	switch op {
	case token.ADD:
		return a + b, nil
	case token.SUB:
		return a - b, nil
	case token.MUL:
		return a * b, nil
	case token.QUO:
		if b == 0 {
			return 0, errors.Newf(pos, errors.AssertionFailure, "division by zero")
		}
		return a / b, nil
	case token.REM:
		if b == 0 {
			return 0, errors.Newf(pos, errors.AssertionFailure, "division by zero")
		}
		return modFloat(a, b), nil
	}
	return 0, errors.Newf(pos, errors.UnknownOperator, "unknown operator")
}

// modFloat implements `%` as a sign-preserving remainder: the result
// takes the dividend's sign, so -7 % 2 is -1 and 7 % -2 is 1.
func modFloat(a, b float64) float64 {
	return math.Mod(a, b)
}

func mismatchedTypeName(a, b value.Value) string {
	if _, _, ok := explode(a); !ok {
		return a.TypeName()
	}
	return b.TypeName()
}
