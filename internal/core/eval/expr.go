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
	"strconv"

	"shapescript.dev/shapescript/ast"
	"shapescript.dev/shapescript/errors"
	"shapescript.dev/shapescript/internal/core/context"
	"shapescript.dev/shapescript/internal/suggest"
	"shapescript.dev/shapescript/token"
	"shapescript.dev/shapescript/value"
)

// evalExpr evaluates a single expression node to a value.Value (spec
// §4.6). Every case that can itself fail reports a positioned error;
// there is no implicit coercion here beyond what the AST shape already
// implies (e.g. a TupleLit's elements are evaluated independently, never
// coerced against each other).
func (e *evaluator) evalExpr(c *context.Context, x ast.Expr) (value.Value, error) {
	switch x := x.(type) {
	case *ast.BadExpr:
		return value.VoidValue(), nil

	case *ast.Ident:
		return e.resolve(c, x.Name, nil, nil, x.Pos())

	case *ast.BasicLit:
		switch x.Kind {
		case token.NUMBER:
			return value.NumberValue(parseNumber(x.Value)), nil
		case token.STRING:
			s, err := value.Unquote(x.Value)
			if err != nil {
				return value.Value{}, errors.Newf(x.Pos(), errors.Other, "%s", err.Error())
			}
			return value.StringValue(s), nil
		}
		return value.Value{}, errors.Newf(x.Pos(), errors.Other, "unsupported literal")

	case *ast.HexColorLit:
		col, err := value.ParseHexColor(x.Value)
		if err != nil {
			return value.Value{}, errors.Newf(x.Pos(), errors.Other, "%s", err.Error())
		}
		return value.ColorValue(col), nil

	case *ast.Interpolation:
		var parts []value.Value
		for _, elt := range x.Elts {
			if lit, ok := elt.(*ast.BasicLit); ok && lit.Kind == token.STRING {
				s, err := value.Unquote(lit.Value)
				if err != nil {
					return value.Value{}, errors.Newf(lit.Pos(), errors.Other, "%s", err.Error())
				}
				parts = append(parts, value.StringValue(s))
				continue
			}
			v, err := e.evalExpr(c, elt)
			if err != nil {
				return value.Value{}, err
			}
			s, ok := value.CoerceString(v)
			if !ok {
				return value.Value{}, typeMismatchAt(elt.Pos(), "string", v.TypeName())
			}
			parts = append(parts, value.StringValue(s))
		}
		joined := ""
		for _, p := range parts {
			s, _ := p.AsString()
			joined += s
		}
		return value.StringValue(joined), nil

	case *ast.TupleLit:
		if len(x.Elts) == 1 && !x.Lparen.IsValid() {
			return e.evalExpr(c, x.Elts[0])
		}
		// A juxtaposition whose head names an argument-taking block or
		// function applies it to the rest of the run — `fill svgpath "…"`
		// hands the string to svgpath, not to a 2-tuple (spec §4.2
		// "Command arguments consume a single expression which may itself
		// be a tuple").
		if len(x.Elts) > 1 {
			if id, ok := x.Elts[0].(*ast.Ident); ok && e.takesJuxtaposedArg(c, id.Name) {
				rest := x.Elts[1:]
				arg := rest[0]
				if len(rest) > 1 {
					arg = &ast.TupleLit{Elts: rest}
				}
				return e.resolve(c, id.Name, arg, nil, id.Pos())
			}
		}
		elts := make([]value.Value, len(x.Elts))
		for i, el := range x.Elts {
			v, err := e.evalExpr(c, el)
			if err != nil {
				return value.Value{}, err
			}
			elts[i] = v
		}
		return value.TupleValue(elts), nil

	case *ast.ParenExpr:
		return e.evalExpr(c, x.X)

	case *ast.SelectorExpr:
		base, err := e.evalExpr(c, x.X)
		if err != nil {
			return value.Value{}, err
		}
		v, names, ok := value.Member(base, x.Sel.Name)
		if !ok {
			return value.Value{}, errors.NewfOpt(x.Sel.Pos(), errors.UnknownMember,
				"%s has no member %q", []interface{}{base.TypeName(), x.Sel.Name},
				errors.WithSuggestion(suggest.For(x.Sel.Name, names, 0)))
		}
		return v, nil

	case *ast.CallExpr:
		if id, ok := x.Fun.(*ast.Ident); ok {
			var arg ast.Expr
			if len(x.Args) == 1 {
				arg = x.Args[0]
			} else if len(x.Args) > 1 {
				arg = &ast.TupleLit{Elts: x.Args}
			}
			return e.resolve(c, id.Name, arg, nil, x.Pos())
		}
		return value.Value{}, errors.Newf(x.Pos(), errors.Other, "call target must be a name")

	case *ast.UnaryExpr:
		v, err := e.evalExpr(c, x.X)
		if err != nil {
			return value.Value{}, err
		}
		return e.evalUnary(x.Op, v, x.Pos())

	case *ast.BinaryExpr:
		return e.evalBinaryExpr(c, x)

	case *ast.RangeExpr:
		return e.evalRangeExpr(c, x)

	case *ast.IfExpr:
		if err := checkBooleanCond(x.Cond); err != nil {
			return value.Value{}, err
		}
		cv, err := e.evalExpr(c, x.Cond)
		if err != nil {
			return value.Value{}, err
		}
		b, ok := value.CoerceBoolean(cv)
		if !ok {
			return value.Value{}, typeMismatchAt(x.Cond.Pos(), "boolean", cv.TypeName())
		}
		if b {
			return e.evalExpr(c, x.Then)
		}
		if x.Else == nil {
			return value.VoidValue(), nil
		}
		return e.evalExpr(c, x.Else)

	case *ast.BlockLit:
		child := c.NewChild(context.Group, c.Role())
		last, err := e.execStmts(child, x.Body)
		if err != nil {
			return value.Value{}, err
		}
		kids := child.Children()
		if len(kids) == 0 {
			return last, nil
		}
		for _, g := range kids {
			c.AddChild(g)
		}
		return value.VoidValue(), nil
	}
	return value.Value{}, errors.Newf(x.Pos(), errors.Other, "unsupported expression")
}

func parseNumber(s string) float64 {
	n, _ := strconv.ParseFloat(s, 64)
	return n
}

func (e *evaluator) evalUnary(op token.Token, v value.Value, pos token.Pos) (value.Value, error) {
	switch op {
	case token.SUB:
		if elts, rebuild, ok := explode(v); ok {
			out := make([]value.Value, len(elts))
			for i, el := range elts {
				n, ok := el.AsNumber()
				if !ok {
					return value.Value{}, typeMismatchAt(pos, "number", v.TypeName())
				}
				out[i] = value.NumberValue(-n)
			}
			return rebuild(out), nil
		}
		return value.Value{}, typeMismatchAt(pos, "number", v.TypeName())
	case token.ADD:
		if _, _, ok := explode(v); ok {
			return v, nil
		}
		return value.Value{}, typeMismatchAt(pos, "number", v.TypeName())
	case token.NOT:
		b, ok := value.CoerceBoolean(v)
		if !ok {
			return value.Value{}, typeMismatchAt(pos, "boolean", v.TypeName())
		}
		return value.BooleanValue(!b), nil
	}
	return value.Value{}, errors.Newf(pos, errors.UnknownOperator, "unknown unary operator")
}

func (e *evaluator) evalBinaryExpr(c *context.Context, x *ast.BinaryExpr) (value.Value, error) {
	// `and`/`or` short-circuit, so the right operand is evaluated lazily.
	switch x.Op {
	case token.AND:
		lv, err := e.evalExpr(c, x.X)
		if err != nil {
			return value.Value{}, err
		}
		lb, ok := value.CoerceBoolean(lv)
		if !ok {
			return value.Value{}, typeMismatchAt(x.X.Pos(), "boolean", lv.TypeName())
		}
		if !lb {
			return value.BooleanValue(false), nil
		}
		rv, err := e.evalExpr(c, x.Y)
		if err != nil {
			return value.Value{}, err
		}
		rb, ok := value.CoerceBoolean(rv)
		if !ok {
			return value.Value{}, typeMismatchAt(x.Y.Pos(), "boolean", rv.TypeName())
		}
		return value.BooleanValue(rb), nil

	case token.OR:
		lv, err := e.evalExpr(c, x.X)
		if err != nil {
			return value.Value{}, err
		}
		lb, ok := value.CoerceBoolean(lv)
		if !ok {
			return value.Value{}, typeMismatchAt(x.X.Pos(), "boolean", lv.TypeName())
		}
		if lb {
			return value.BooleanValue(true), nil
		}
		rv, err := e.evalExpr(c, x.Y)
		if err != nil {
			return value.Value{}, err
		}
		rb, ok := value.CoerceBoolean(rv)
		if !ok {
			return value.Value{}, typeMismatchAt(x.Y.Pos(), "boolean", rv.TypeName())
		}
		return value.BooleanValue(rb), nil
	}

	lv, err := e.evalExpr(c, x.X)
	if err != nil {
		return value.Value{}, err
	}
	rv, err := e.evalExpr(c, x.Y)
	if err != nil {
		return value.Value{}, err
	}

	switch x.Op {
	case token.EQL:
		return value.BooleanValue(value.Equal(lv, rv)), nil
	case token.NEQ:
		return value.BooleanValue(!value.Equal(lv, rv)), nil
	case token.LSS, token.LEQ, token.GTR, token.GEQ:
		return compareValues(x.Op, lv, rv, x.Pos())
	case token.IN:
		return evalIn(lv, rv, x.Pos())
	case token.ADD, token.SUB, token.MUL, token.QUO, token.REM:
		return arith(x.Op, lv, rv, x.Pos())
	}
	return value.Value{}, errors.Newf(x.Pos(), errors.UnknownOperator, "unknown operator")
}

func compareValues(op token.Token, a, b value.Value, pos token.Pos) (value.Value, error) {
	an, aok := value.CoerceNumber(a)
	bn, bok := value.CoerceNumber(b)
	if aok && bok {
		switch op {
		case token.LSS:
			return value.BooleanValue(an < bn), nil
		case token.LEQ:
			return value.BooleanValue(an <= bn), nil
		case token.GTR:
			return value.BooleanValue(an > bn), nil
		case token.GEQ:
			return value.BooleanValue(an >= bn), nil
		}
	}
	as, asok := a.AsString()
	bs, bsok := b.AsString()
	if asok && bsok {
		switch op {
		case token.LSS:
			return value.BooleanValue(as < bs), nil
		case token.LEQ:
			return value.BooleanValue(as <= bs), nil
		case token.GTR:
			return value.BooleanValue(as > bs), nil
		case token.GEQ:
			return value.BooleanValue(as >= bs), nil
		}
	}
	return value.Value{}, typeMismatchAt(pos, "number", a.TypeName())
}

// evalRangeExpr builds a value.Range from a from/to/step expression,
// defaulting step to 1 and leaving To nil for a partial (open-ended)
// range (spec §4.2 "from to to [step step]"). A `step` applied to a value
// that is already a range replaces that range's step (spec §4.6).
func (e *evaluator) evalRangeExpr(c *context.Context, x *ast.RangeExpr) (value.Value, error) {
	fromV, err := e.evalExpr(c, x.From)
	if err != nil {
		return value.Value{}, err
	}

	var rng value.Range
	if r, ok := fromV.AsRange(); ok && x.To == nil {
		rng = r
	} else {
		from, ok := value.CoerceNumber(fromV)
		if !ok {
			return value.Value{}, typeMismatchAt(x.From.Pos(), "number", fromV.TypeName())
		}
		rng = value.Range{From: from, Step: 1}
		if x.To != nil {
			toV, err := e.evalExpr(c, x.To)
			if err != nil {
				return value.Value{}, err
			}
			to, ok := value.CoerceNumber(toV)
			if !ok {
				return value.Value{}, typeMismatchAt(x.To.Pos(), "number", toV.TypeName())
			}
			rng.To = &to
		}
	}
	if x.Step != nil {
		stepV, err := e.evalExpr(c, x.Step)
		if err != nil {
			return value.Value{}, err
		}
		step, ok := value.CoerceNumber(stepV)
		if !ok {
			return value.Value{}, typeMismatchAt(x.Step.Pos(), "number", stepV.TypeName())
		}
		if step == 0 {
			return value.Value{}, errors.Newf(x.Step.Pos(), errors.Other, "Step value must be nonzero")
		}
		rng.Step = step
	}
	return value.RangeValue(rng), nil
}

// evalIn implements the `in` membership test (spec §4.2): range
// membership checks both bounds and the step lattice; tuple membership is
// structural-equality search.
func evalIn(v, container value.Value, pos token.Pos) (value.Value, error) {
	switch container.Kind() {
	case value.RangeKind:
		rng, _ := container.AsRange()
		n, ok := value.CoerceNumber(v)
		if !ok {
			return value.Value{}, typeMismatchAt(pos, "number", v.TypeName())
		}
		return value.BooleanValue(inRange(n, rng)), nil
	case value.Tuple:
		elts, _ := container.AsTuple()
		for _, el := range elts {
			if value.Equal(v, el) {
				return value.BooleanValue(true), nil
			}
		}
		return value.BooleanValue(false), nil
	}
	return value.Value{}, typeMismatchAt(pos, "range or tuple", container.TypeName())
}

func inRange(n float64, rng value.Range) bool {
	step := rng.Step
	if step == 0 {
		step = 1
	}
	if rng.To != nil {
		lo, hi := rng.From, *rng.To
		if lo > hi {
			lo, hi = hi, lo
		}
		if n < lo-1e-6 || n > hi+1e-6 {
			return false
		}
	} else if step > 0 && n < rng.From-1e-6 {
		return false
	} else if step < 0 && n > rng.From+1e-6 {
		return false
	}
	k := (n - rng.From) / step
	return math.Abs(k-math.Round(k)) <= 1e-6
}
