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

	"shapescript.dev/shapescript/ast"
	"shapescript.dev/shapescript/delegate"
	"shapescript.dev/shapescript/errors"
	"shapescript.dev/shapescript/internal/core/context"
	"shapescript.dev/shapescript/token"
	"shapescript.dev/shapescript/value"
)

// execCommandStmt resolves and invokes a `name [args] [{ body }]` statement
// and commits whatever value it produces (spec §4.2 "command(name, args)").
func (e *evaluator) execCommandStmt(c *context.Context, s *ast.CommandStmt) error {
	v, err := e.resolve(c, s.Name.Name, s.Args, s.Body, s.Pos())
	if err != nil {
		return err
	}
	return e.commitValue(c, v, s.Pos())
}

// execBlockCallStmt resolves and invokes a `name { body }` statement (spec
// §4.2 "block-call(name, block)").
func (e *evaluator) execBlockCallStmt(c *context.Context, s *ast.BlockCallStmt) error {
	v, err := e.resolve(c, s.Name.Name, nil, s.Body, s.Pos())
	if err != nil {
		return err
	}
	return e.commitValue(c, v, s.Pos())
}

// execDefineStmt records a user `define`, as either a lazy expression
// binding or a block/function binding (spec §4.2, §4.6).
func (e *evaluator) execDefineStmt(c *context.Context, s *ast.DefineStmt) error {
	b := &context.Binding{Pos: s.Pos(), Name: s.Name.Name, Env: c}
	if s.Block != nil {
		b.Kind = context.BlockBinding
		b.Body = s.Block.Body
		if s.Block.Params != nil {
			names := make([]string, len(s.Block.Params.Names))
			for i, n := range s.Block.Params.Names {
				names[i] = n.Name
			}
			b.Params = names
			b.IsFunc = true
		}
	} else {
		b.Kind = context.ExprBinding
		b.Expr = s.Expr
	}
	c.Define(s.Name.Name, b)
	return nil
}

// execOptionStmt binds an option name to either the caller's override
// (already evaluated and stashed in c.Options by invokeUserBlock) or a
// freshly-evaluated default, memoized so a later read within the same
// invocation never re-evaluates it (spec §4.6 "option default values are
// idempotent").
func (e *evaluator) execOptionStmt(c *context.Context, s *ast.OptionStmt) error {
	if c.Kind() == context.Function {
		return errors.Newf(s.Pos(), errors.Other, "option is not allowed in a function definition")
	}
	if c.Kind() != context.BlockDefinition || c.Role() != context.RoleDefinition {
		return errors.Newf(s.Pos(), errors.Other, "option is only allowed in a block definition")
	}
	var v value.Value
	if ov, ok := c.Options[s.Name.Name]; ok {
		v = ov
	} else {
		var err error
		v, err = e.evalExpr(c, s.Default)
		if err != nil {
			return err
		}
	}
	b := &context.Binding{Kind: context.ExprBinding, Name: s.Name.Name, Pos: s.Pos(), Env: c}
	b.Memoize(v)
	c.Define(s.Name.Name, b)
	return nil
}

// execBranch runs a conditional/loop body in a fresh child scope and folds
// the result back into the enclosing scope: `if`, `switch`, and `for` arms
// are flow control, not a grouping level of their own (spec §4.6), so both
// their committed geometry and their ambient-state mutations (material,
// transform, pending child transform) are observed by the statements that
// follow the branch — and, for a loop, by the next iteration (spec
// invariant I6).
func (e *evaluator) execBranch(c *context.Context, b *ast.BlockLit) error {
	child := c.NewChild(context.Group, c.Role())
	child.ChildTransform = c.ChildTransform
	if _, err := e.execStmts(child, b.Body); err != nil {
		return err
	}
	liftBranchState(c, child)
	return nil
}

func liftBranchState(c, child *context.Context) {
	for _, g := range child.Children() {
		c.AddChild(g)
	}
	c.Material = child.Material
	c.Transform = child.Transform
	c.ChildTransform = child.ChildTransform
	c.Font = child.Font
	c.Background = child.Background
	c.Detail = child.Detail
	c.Smoothing = child.Smoothing
}

func (e *evaluator) execIfStmt(c *context.Context, s *ast.IfStmt) error {
	if err := checkBooleanCond(s.Cond); err != nil {
		return err
	}
	cv, err := e.evalExpr(c, s.Cond)
	if err != nil {
		return err
	}
	b, ok := value.CoerceBoolean(cv)
	if !ok {
		return typeMismatchAt(s.Cond.Pos(), "boolean", cv.TypeName())
	}
	if b {
		return e.execBranch(c, s.Then)
	}
	switch alt := s.Else.(type) {
	case nil:
		return nil
	case *ast.IfStmt:
		return e.execIfStmt(c, alt)
	case *ast.BlockLit:
		return e.execBranch(c, alt)
	}
	return nil
}

func (e *evaluator) execSwitchStmt(c *context.Context, s *ast.SwitchStmt) error {
	subj, err := e.evalExpr(c, s.Subject)
	if err != nil {
		return err
	}
	for _, cs := range s.Cases {
		cv, err := e.evalExpr(c, cs.Value)
		if err != nil {
			return err
		}
		if value.Equal(subj, cv) {
			return e.execBranch(c, cs.Body)
		}
	}
	if s.Else != nil {
		return e.execBranch(c, s.Else)
	}
	return nil
}

// execForStmt enumerates s.Source — a bounded numeric range, a tuple, or a
// single value iterated once — running s.Body once per element in a fresh
// LoopIteration child that shares the parent's RNG and transform state
// (spec §4.6, invariant I6: "each iteration sees the final ... state of the
// previous").
func (e *evaluator) execForStmt(c *context.Context, s *ast.ForStmt) error {
	srcVal, err := e.evalExpr(c, s.Source)
	if err != nil {
		return err
	}

	run := func(iterVal value.Value) error {
		child := c.NewChild(context.LoopIteration, c.Role())
		child.ChildTransform = c.ChildTransform
		if s.Index != nil {
			b := &context.Binding{Kind: context.ExprBinding, Name: s.Index.Name, Pos: s.Index.Pos(), Env: child}
			b.Memoize(iterVal)
			child.Define(s.Index.Name, b)
		}
		if _, err := e.execStmts(child, s.Body.Body); err != nil {
			return err
		}
		liftBranchState(c, child)
		return nil
	}

	switch srcVal.Kind() {
	case value.RangeKind:
		rng, _ := srcVal.AsRange()
		if rng.To == nil {
			return errors.Newf(s.Source.Pos(), errors.Other, "for requires a bounded range")
		}
		for _, n := range rangeValues(rng) {
			if err := run(value.NumberValue(n)); err != nil {
				return err
			}
		}
		return nil
	case value.Tuple:
		elts, _ := srcVal.AsTuple()
		for _, el := range elts {
			if err := run(el); err != nil {
				return err
			}
		}
		return nil
	default:
		return run(srcVal)
	}
}

// rangeValues enumerates rng.From..*rng.To in rng.Step increments,
// tolerantly including the endpoint when it lands within floating-point
// rounding of an exact step multiple (spec §4.6 "for ... tolerant end
// inclusion").
func rangeValues(rng value.Range) []float64 {
	from, to, step := rng.From, *rng.To, rng.Step
	count := (to - from) / step
	rounded := math.Round(count)
	n := int(rounded)
	if math.Abs(count-rounded) > 1e-9 {
		n = int(math.Floor(count))
	}
	if n < 0 {
		return nil
	}
	out := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, from+float64(i)*step)
	}
	return out
}

// execImportStmt resolves and imports a file (spec §6): the imported
// geometry, if any, is committed as a child of c directly.
func (e *evaluator) execImportStmt(c *context.Context, s *ast.ImportStmt) error {
	v, err := e.evalExpr(c, s.Path)
	if err != nil {
		return err
	}
	name, ok := value.CoerceString(v)
	if !ok {
		return typeMismatchAt(s.Path.Pos(), "string", v.TypeName())
	}
	url, err := e.delegate.ResolveURL(name, delegate.URL(""))
	if err != nil {
		return e.wrapSymErr(err, s.Pos())
	}
	if !c.EnterImport(string(url)) {
		return e.wrapSymErr(&delegate.ErrImportCycle{URL: url}, s.Pos())
	}
	defer c.LeaveImport(string(url))

	g, err := e.delegate.ImportGeometry(url, map[delegate.URL]bool{url: true})
	if err != nil {
		return e.wrapSymErr(err, s.Pos())
	}
	if g != nil {
		c.AddChild(g)
	}
	return nil
}

func typeMismatchAt(pos token.Pos, expected, got string) error {
	return errors.NewfOpt(pos, errors.TypeMismatch,
		"type mismatch: expected %s, got %s", []interface{}{expected, got})
}
