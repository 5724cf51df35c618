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

package ast

import "fmt"

// Walk traverses an AST in depth-first order: it calls before(node); node
// must not be nil. If before returns true (or is nil), Walk recurses into
// each non-nil child, then calls after(node). Either callback may be nil.
func Walk(node Node, before func(Node) bool, after func(Node)) {
	if before == nil || before(node) {
		walkChildren(node, before, after)
	}
	if after != nil {
		after(node)
	}
}

func walkChildren(node Node, before func(Node) bool, after func(Node)) {
	walk := func(n Node) {
		Walk(n, before, after)
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			walk(s)
		}

	case *BadExpr, *Ident, *BasicLit, *HexColorLit:
		// leaves

	case *Interpolation:
		for _, e := range n.Elts {
			walk(e)
		}

	case *TupleLit:
		for _, e := range n.Elts {
			walk(e)
		}

	case *ParenExpr:
		walk(n.X)

	case *SelectorExpr:
		walk(n.X)
		walk(n.Sel)

	case *CallExpr:
		walk(n.Fun)
		for _, a := range n.Args {
			walk(a)
		}

	case *UnaryExpr:
		walk(n.X)

	case *BinaryExpr:
		walk(n.X)
		walk(n.Y)

	case *RangeExpr:
		walk(n.From)
		if n.To != nil {
			walk(n.To)
		}
		if n.Step != nil {
			walk(n.Step)
		}

	case *IfExpr:
		walk(n.Cond)
		walk(n.Then)
		if n.Else != nil {
			walk(n.Else)
		}

	case *BlockLit:
		if n.Params != nil {
			walk(n.Params)
		}
		for _, s := range n.Body {
			walk(s)
		}

	case *ParamList:
		for _, id := range n.Names {
			walk(id)
		}

	case *BadStmt:
		// leaf

	case *CommandStmt:
		walk(n.Name)
		if n.Args != nil {
			walk(n.Args)
		}
		if n.Body != nil {
			walk(n.Body)
		}

	case *DefineStmt:
		walk(n.Name)
		if n.Expr != nil {
			walk(n.Expr)
		}
		if n.Block != nil {
			walk(n.Block)
		}

	case *OptionStmt:
		walk(n.Name)
		walk(n.Default)

	case *ForStmt:
		if n.Index != nil {
			walk(n.Index)
		}
		walk(n.Source)
		walk(n.Body)

	case *IfStmt:
		walk(n.Cond)
		walk(n.Then)
		if n.Else != nil {
			walk(n.Else)
		}

	case *CaseClause:
		walk(n.Value)
		walk(n.Body)

	case *SwitchStmt:
		walk(n.Subject)
		for _, c := range n.Cases {
			walk(c)
		}
		if n.Else != nil {
			walk(n.Else)
		}

	case *ExprStmt:
		walk(n.X)

	case *ImportStmt:
		walk(n.Path)

	case *BlockCallStmt:
		walk(n.Name)
		walk(n.Body)

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}
}

// Inspect calls Walk with before == f and after == nil.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, f, nil)
}
