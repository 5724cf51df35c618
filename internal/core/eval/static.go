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
	"shapescript.dev/shapescript/ast"
	"shapescript.dev/shapescript/token"
	"shapescript.dev/shapescript/value"
)

// staticKind reports the value kind an expression is statically known to
// produce, when the AST shape alone determines it (spec §4.6 "best-effort"
// static typing). It is used only to sharpen diagnostics before an
// expression is evaluated — never for correctness, so any case it cannot
// decide simply reports false. Identifiers and juxtaposition tuples are
// deliberately undecided: a tuple run may be a call of its head symbol,
// and a name's kind depends on runtime bindings.
func staticKind(x ast.Expr) (value.Kind, bool) {
	switch x := x.(type) {
	case *ast.BasicLit:
		switch x.Kind {
		case token.NUMBER:
			return value.Number, true
		case token.STRING:
			return value.String, true
		}
	case *ast.HexColorLit:
		return value.ColorKind, true
	case *ast.Interpolation:
		return value.String, true
	case *ast.ParenExpr:
		return staticKind(x.X)
	case *ast.UnaryExpr:
		switch x.Op {
		case token.NOT:
			return value.Boolean, true
		case token.ADD, token.SUB:
			return staticKind(x.X)
		}
	case *ast.BinaryExpr:
		switch x.Op {
		case token.AND, token.OR, token.EQL, token.NEQ,
			token.LSS, token.LEQ, token.GTR, token.GEQ, token.IN:
			return value.Boolean, true
		}
	case *ast.RangeExpr:
		return value.RangeKind, true
	case *ast.IfExpr:
		tk, ok := staticKind(x.Then)
		if !ok || x.Else == nil {
			return 0, false
		}
		ek, ok := staticKind(x.Else)
		if !ok || ek != tk {
			return 0, false
		}
		return tk, true
	}
	return 0, false
}

// checkBooleanCond reports a typeMismatch for a condition whose static
// type is known and is not boolean, before the condition (and anything it
// would have short-circuited) is evaluated.
func checkBooleanCond(cond ast.Expr) error {
	if k, ok := staticKind(cond); ok && k != value.Boolean {
		return typeMismatchAt(cond.Pos(), "boolean", k.String())
	}
	return nil
}
