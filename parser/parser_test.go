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

package parser

import (
	"testing"

	"shapescript.dev/shapescript/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseFile("test.shape", src, AllErrors)
	if err != nil {
		t.Fatalf("ParseFile(%q): %v", src, err)
	}
	return prog
}

func TestParseCommandStmt(t *testing.T) {
	prog := mustParse(t, "cube size 2\n")
	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Statements))
	}
	cmd, ok := prog.Statements[0].(*ast.CommandStmt)
	if !ok {
		t.Fatalf("statement is %T, want *ast.CommandStmt", prog.Statements[0])
	}
	if cmd.Name.Name != "cube" {
		t.Errorf("command name = %q, want cube", cmd.Name.Name)
	}
	args, ok := cmd.Args.(*ast.TupleLit)
	if !ok || len(args.Elts) != 2 {
		t.Fatalf("args = %#v, want a 2-element tuple", cmd.Args)
	}
}

func TestParseBlockCall(t *testing.T) {
	prog := mustParse(t, "sphere {\n  size 1\n}\n")
	call, ok := prog.Statements[0].(*ast.BlockCallStmt)
	if !ok {
		t.Fatalf("statement is %T, want *ast.BlockCallStmt", prog.Statements[0])
	}
	if call.Name.Name != "sphere" {
		t.Errorf("name = %q, want sphere", call.Name.Name)
	}
	if len(call.Body.Body) != 1 {
		t.Fatalf("body has %d statements, want 1", len(call.Body.Body))
	}
}

func TestParseDefineExpr(t *testing.T) {
	prog := mustParse(t, "define x 1 + 2 * 3\n")
	def := prog.Statements[0].(*ast.DefineStmt)
	if def.Name.Name != "x" {
		t.Errorf("name = %q, want x", def.Name.Name)
	}
	bin, ok := def.Expr.(*ast.BinaryExpr)
	if !ok || bin.Op.String() != "+" {
		t.Fatalf("expr = %#v, want top-level '+'", def.Expr)
	}
	rhs, ok := bin.Y.(*ast.BinaryExpr)
	if !ok || rhs.Op.String() != "*" {
		t.Fatalf("rhs = %#v, want '*' nested under '+'", bin.Y)
	}
}

func TestParseDefineBlock(t *testing.T) {
	prog := mustParse(t, "define box(w h d) {\n  cube size w h d\n}\n")
	def := prog.Statements[0].(*ast.DefineStmt)
	if def.Block == nil || def.Block.Params == nil {
		t.Fatalf("expected a parameterized block")
	}
	if len(def.Block.Params.Names) != 3 {
		t.Fatalf("got %d params, want 3", len(def.Block.Params.Names))
	}
}

func TestParseForLoop(t *testing.T) {
	prog := mustParse(t, "for i in 1 to 5 {\n  print i\n}\n")
	loop := prog.Statements[0].(*ast.ForStmt)
	if loop.Index == nil || loop.Index.Name != "i" {
		t.Fatalf("index = %#v, want i", loop.Index)
	}
	rng, ok := loop.Source.(*ast.RangeExpr)
	if !ok {
		t.Fatalf("source = %#v, want *ast.RangeExpr", loop.Source)
	}
	if rng.Step != nil {
		t.Errorf("step = %#v, want nil (default step)", rng.Step)
	}
}

func TestParseForLoopWithStep(t *testing.T) {
	prog := mustParse(t, "for i in 0 to 10 step 2 {\n}\n")
	loop := prog.Statements[0].(*ast.ForStmt)
	rng := loop.Source.(*ast.RangeExpr)
	if rng.Step == nil {
		t.Fatalf("expected an explicit step")
	}
}

func TestParseIfElseIf(t *testing.T) {
	prog := mustParse(t, "if a = 1 {\n} else if a = 2 {\n} else {\n}\n")
	s := prog.Statements[0].(*ast.IfStmt)
	elseIf, ok := s.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("else = %#v, want *ast.IfStmt", s.Else)
	}
	if _, ok := elseIf.Else.(*ast.BlockLit); !ok {
		t.Fatalf("else-if's else = %#v, want *ast.BlockLit", elseIf.Else)
	}
}

func TestParseSwitch(t *testing.T) {
	prog := mustParse(t, "switch shape {\ncase \"cube\" {\n}\ncase \"sphere\" {\n}\nelse {\n}\n}\n")
	s := prog.Statements[0].(*ast.SwitchStmt)
	if len(s.Cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(s.Cases))
	}
	if s.Else == nil {
		t.Fatalf("expected an else block")
	}
}

func TestParseStringInterpolation(t *testing.T) {
	prog := mustParse(t, `print "count: \(n)"` + "\n")
	cmd := prog.Statements[0].(*ast.CommandStmt)
	interp, ok := cmd.Args.(*ast.Interpolation)
	if !ok {
		t.Fatalf("args = %#v, want *ast.Interpolation", cmd.Args)
	}
	if len(interp.Elts) != 3 {
		t.Fatalf("got %d fragments, want 3 (prefix, expr, suffix)", len(interp.Elts))
	}
	if _, ok := interp.Elts[1].(*ast.Ident); !ok {
		t.Fatalf("embedded expr = %#v, want *ast.Ident", interp.Elts[1])
	}
}

func TestParseHexColor(t *testing.T) {
	prog := mustParse(t, "color #FF0000\n")
	cmd := prog.Statements[0].(*ast.CommandStmt)
	if _, ok := cmd.Args.(*ast.HexColorLit); !ok {
		t.Fatalf("args = %#v, want *ast.HexColorLit", cmd.Args)
	}
}

func TestParseSelectorAndCall(t *testing.T) {
	prog := mustParse(t, "define y math.sin(x)\n")
	def := prog.Statements[0].(*ast.DefineStmt)
	call, ok := def.Expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expr = %#v, want *ast.CallExpr", def.Expr)
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "sin" {
		t.Fatalf("fun = %#v, want math.sin", call.Fun)
	}
}

func TestParseUnaryNot(t *testing.T) {
	prog := mustParse(t, "define y not a\n")
	def := prog.Statements[0].(*ast.DefineStmt)
	u, ok := def.Expr.(*ast.UnaryExpr)
	if !ok || u.Op.String() != "not" {
		t.Fatalf("expr = %#v, want unary 'not'", def.Expr)
	}
}

func TestParseIfExpr(t *testing.T) {
	prog := mustParse(t, "define x if a = 1 2 else 3\n")
	def := prog.Statements[0].(*ast.DefineStmt)
	ifx, ok := def.Expr.(*ast.IfExpr)
	if !ok {
		t.Fatalf("expr = %#v, want *ast.IfExpr", def.Expr)
	}
	if ifx.Else == nil {
		t.Fatalf("expected an else branch")
	}
}

func TestParseComments(t *testing.T) {
	prog, err := ParseFile("test.shape", "// a comment\ncube size 1\n", ParseComments, AllErrors)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(prog.Statements[0].Comments()) != 1 {
		t.Fatalf("expected the comment to attach to the first statement")
	}
}
