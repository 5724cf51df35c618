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

// Package eval implements the tree-walking evaluator of spec §4.6: it walks
// a parsed ast.Program against a context.Context scope tree, resolving
// identifiers, invoking stdlib.Symbol handlers and user bindings, and
// committing geometry into a scene.Geometry tree. Grounded on
// internal/core/eval's role in the teacher as the component that turns AST
// plus environment into evaluated output, but rewritten end to end: CUE's
// evaluator resolves a graph of lazy constraints to a fixpoint, while this
// one runs a single strict, left-to-right imperative pass (spec §5
// "Ordering") with no unification and no re-evaluation loop.
package eval

import (
	"shapescript.dev/shapescript/ast"
	"shapescript.dev/shapescript/delegate"
	"shapescript.dev/shapescript/errors"
	"shapescript.dev/shapescript/internal/core/context"
	"shapescript.dev/shapescript/internal/core/stdlib"
	"shapescript.dev/shapescript/scene"
	"shapescript.dev/shapescript/token"
	"shapescript.dev/shapescript/value"
)

// maxRecursionDepth bounds nested block/function invocation (spec §4.6
// "Recursion ... depth-bounded, e.g. 256").
const maxRecursionDepth = 256

// evaluator holds the state threaded through one program evaluation: the
// host callbacks, recursion depth, and any non-fatal diagnostics collected
// along the way (spec §7 "Warnings ... use the same channel but are
// classified separately").
type evaluator struct {
	delegate  delegate.EvaluationDelegate
	mesh      delegate.MeshLibrary
	canceller delegate.Canceller // nil when the delegate doesn't support cancellation
	depth     int
	warnings  errors.List

	// definedNames is every name the program defines anywhere, collected
	// up front so a lookup failure can distinguish a forward reference
	// from a genuinely unknown symbol (spec §7 "forwardReference").
	definedNames map[string]bool
}

// Eval evaluates prog against a fresh root context seeded with seed. It
// returns the resulting scene graph (a Group wrapping the root's committed
// children) plus any diagnostics: warnings collected during a successful
// run, or a single fatal error appended after them if evaluation aborted
// (spec §7 "errors ... bubble to the program root").
func Eval(prog *ast.Program, seed float64, d delegate.EvaluationDelegate, mesh delegate.MeshLibrary) (*scene.Geometry, errors.List) {
	e := &evaluator{delegate: d, mesh: mesh, definedNames: definedNames(prog)}
	if c, ok := d.(delegate.Canceller); ok {
		e.canceller = c
	}
	root := context.NewRoot(seed)

	last, err := e.execStmts(root, prog.Statements)
	if err == nil {
		// The program's own trailing expression has no caller to consume
		// it; a leftover non-geometry value is the same unusedValue case
		// commitValue flags mid-body (spec §4.7).
		if k := last.Kind(); k != value.Void && k != value.MeshKind && k != value.PathKind {
			e.warnings.Add(errors.NewfOpt(prog.End(), errors.UnusedValue,
				"unused %s value", []interface{}{last.TypeName()}, errors.AsWarning()))
		}
	}
	errs := e.warnings
	if err != nil {
		errs.Add(e.toError(err, prog.Pos()))
		return nil, errs
	}

	g := scene.NewGeometry(scene.Group)
	g.Children = root.Children()
	return g, errs
}

// definedNames walks prog and collects the name of every define and
// option statement, wherever it appears.
func definedNames(prog *ast.Program) map[string]bool {
	names := map[string]bool{}
	ast.Inspect(prog, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.DefineStmt:
			names[n.Name.Name] = true
		case *ast.OptionStmt:
			names[n.Name.Name] = true
		}
		return true
	})
	return names
}

// toError normalizes err into a positioned errors.Error, falling back to
// pos when err carries none of its own (e.g. a bare fmt error surfacing
// from a delegate callback).
func (e *evaluator) toError(err error, pos token.Pos) errors.Error {
	if ee, ok := err.(errors.Error); ok {
		return ee
	}
	return errors.Newf(pos, errors.Other, "%s", err.Error())
}

// enterCall increments the recursion depth, failing with TooMuchRecursion
// once it crosses maxRecursionDepth. Every successful call must be paired
// with a deferred leaveCall.
func (e *evaluator) enterCall(pos token.Pos) error {
	e.depth++
	if e.depth > maxRecursionDepth {
		e.depth--
		return errors.Newf(pos, errors.TooMuchRecursion, "Too much recursion")
	}
	return nil
}

func (e *evaluator) leaveCall() { e.depth-- }

// execStmts runs stmts in c in source order, returning the value of the
// last statement (spec §4.6 "the block's return is ... the last expression
// in the body"). A trailing expression statement is the body's return
// value, so it is never flagged as unused — but a mesh or path it produces
// still commits as a scene child, exactly as it would mid-body.
func (e *evaluator) execStmts(c *context.Context, stmts []ast.Stmt) (value.Value, error) {
	last := value.VoidValue()
	for i, s := range stmts {
		// Cancellation is polled at statement boundaries only; a single
		// statement always runs to completion (spec §5).
		if e.canceller != nil && e.canceller.Cancelled() {
			return value.Value{}, errors.Newf(s.Pos(), errors.Cancelled, "evaluation cancelled")
		}
		if es, ok := s.(*ast.ExprStmt); ok && i == len(stmts)-1 {
			v, err := e.evalExpr(c, es.X)
			if err != nil {
				return value.Value{}, err
			}
			switch v.Kind() {
			case value.MeshKind, value.PathKind:
				if err := e.commitValue(c, v, es.X.Pos()); err != nil {
					return value.Value{}, err
				}
			}
			return v, nil
		}
		v, err := e.execStmt(c, s)
		if err != nil {
			return value.Value{}, err
		}
		last = v
	}
	return last, nil
}

// execStmt dispatches one statement to its handler.
func (e *evaluator) execStmt(c *context.Context, s ast.Stmt) (value.Value, error) {
	switch s := s.(type) {
	case *ast.ExprStmt:
		v, err := e.evalExpr(c, s.X)
		if err != nil {
			return value.Value{}, err
		}
		if err := e.commitValue(c, v, s.X.Pos()); err != nil {
			return value.Value{}, err
		}
		return v, nil
	case *ast.CommandStmt:
		return value.VoidValue(), e.execCommandStmt(c, s)
	case *ast.BlockCallStmt:
		return value.VoidValue(), e.execBlockCallStmt(c, s)
	case *ast.DefineStmt:
		return value.VoidValue(), e.execDefineStmt(c, s)
	case *ast.OptionStmt:
		return value.VoidValue(), e.execOptionStmt(c, s)
	case *ast.ForStmt:
		return value.VoidValue(), e.execForStmt(c, s)
	case *ast.IfStmt:
		return value.VoidValue(), e.execIfStmt(c, s)
	case *ast.SwitchStmt:
		return value.VoidValue(), e.execSwitchStmt(c, s)
	case *ast.ImportStmt:
		return value.VoidValue(), e.execImportStmt(c, s)
	case *ast.BadStmt:
		return value.VoidValue(), nil
	default:
		return value.VoidValue(), errors.Newf(s.Pos(), errors.Other, "unsupported statement")
	}
}

// commitValue implements spec §4.6's "commit rules": a mesh or path value
// produced by a statement becomes a scene child; anything else that isn't
// void is an unused result, flagged as a warning rather than a fatal error
// (spec §4.7 "unusedValue(type)").
func (e *evaluator) commitValue(c *context.Context, v value.Value, pos token.Pos) error {
	switch v.Kind() {
	case value.MeshKind:
		g, _ := v.AsMesh()
		c.AddChild(g)
	case value.PathKind:
		p, _ := v.AsPath()
		g := scene.NewGeometry(scene.PathGeometry)
		g.Path = p
		g = stdlib.FinishGeometry(c, g)
		// Path blocks leave the pending translate/rotate/scale state for
		// their committing scope to apply, since a bare path value carries
		// no transform of its own (spec §4.6 "the next child geometry
		// consumes and resets it").
		g.Transform = g.Transform.Compose(c.ConsumeChildTransform())
		c.AddChild(g)
	case value.Void:
		// no-op
	default:
		e.warnings.Add(errors.NewfOpt(pos, errors.UnusedValue,
			"unused %s value", []interface{}{v.TypeName()}, errors.AsWarning()))
	}
	return nil
}
