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
	"shapescript.dev/shapescript/delegate"
	"shapescript.dev/shapescript/errors"
	"shapescript.dev/shapescript/internal/core/context"
	"shapescript.dev/shapescript/internal/core/stdlib"
	"shapescript.dev/shapescript/internal/suggest"
	"shapescript.dev/shapescript/scene"
	"shapescript.dev/shapescript/token"
	"shapescript.dev/shapescript/value"
)

// resolve dispatches a name used as either a command/block-call statement
// or a bare identifier expression: stdlib symbols take precedence exactly
// as the teacher's builtin table shadows no user name (spec §4.4), then
// the lexical scope chain, falling back to an UnknownSymbol diagnostic
// with a name suggestion (spec §4.7).
func (e *evaluator) resolve(c *context.Context, name string, args ast.Expr, body *ast.BlockLit, pos token.Pos) (value.Value, error) {
	if sym, ok := stdlib.Lookup(name); ok {
		if !sym.Contexts.Has(c.Role()) {
			return value.Value{}, errors.NewfOpt(pos, errors.Other,
				"%s is not available in this context", []interface{}{name},
				errors.WithSuggestion(stdlib.ContextAlternative(name)))
		}
		return e.invokeSymbol(c, sym, args, body, pos)
	}

	if b, env, ok := c.Lookup(name); ok {
		return e.invokeUserBinding(c, b, env, args, body, pos)
	}

	if e.definedNames[name] {
		return value.Value{}, errors.NewfOpt(pos, errors.ForwardReference,
			"forward reference to %q", []interface{}{name},
			errors.WithHint("Symbols must be defined before they are used."))
	}
	return value.Value{}, errors.NewfOpt(pos, errors.UnknownSymbol,
		"unknown symbol %q", []interface{}{name},
		errors.WithSuggestion(suggest.For(name, e.candidateNames(c), 2)))
}

// candidateNames merges stdlib names with every user binding visible from
// c, for "Did you mean" suggestions (spec §4.7).
func (e *evaluator) candidateNames(c *context.Context) []string {
	names := append([]string{}, stdlib.Names()...)
	return append(names, c.VisibleNames()...)
}

// evalArg evaluates a command/property/function call's single argument
// expression, which is either a tuple of several juxtaposed expressions or
// a single expression — the parser already folds `a b c` into a
// *ast.TupleLit, so this is a plain expression evaluation.
func (e *evaluator) evalArg(c *context.Context, args ast.Expr) (value.Value, bool, error) {
	if args == nil {
		return value.Value{}, false, nil
	}
	v, err := e.evalExpr(c, args)
	if err != nil {
		return value.Value{}, false, err
	}
	return v, true, nil
}

// invokeSymbol dispatches to the right stdlib.Symbol shape.
func (e *evaluator) invokeSymbol(c *context.Context, sym *stdlib.Symbol, args ast.Expr, body *ast.BlockLit, pos token.Pos) (value.Value, error) {
	switch sym.Kind {
	case stdlib.ConstantSym:
		if args != nil || body != nil {
			return value.Value{}, errors.Newf(pos, errors.UnexpectedArgument, "%s takes no arguments", sym.Name)
		}
		return sym.Value, nil

	case stdlib.PropertySym:
		if body != nil {
			return value.Value{}, errors.Newf(pos, errors.UnexpectedArgument, "%s does not take a block", sym.Name)
		}
		arg, hasArg, err := e.evalArg(c, args)
		if err != nil {
			return value.Value{}, err
		}
		if !hasArg {
			return sym.Get(c), nil
		}
		if err := sym.Set(c, arg, true, e.delegate); err != nil {
			return value.Value{}, e.wrapSymErr(err, pos)
		}
		return value.VoidValue(), nil

	case stdlib.FunctionSym:
		if body != nil {
			return value.Value{}, errors.Newf(pos, errors.UnexpectedArgument, "%s does not take a block", sym.Name)
		}
		argv, hasArg, err := e.evalArg(c, args)
		if err != nil {
			return value.Value{}, err
		}
		var argList []value.Value
		if hasArg {
			if t, ok := argv.AsTuple(); ok {
				argList = t
			} else {
				argList = []value.Value{argv}
			}
		}
		v, err := sym.Func(c, argList)
		if err != nil {
			return value.Value{}, e.wrapSymErr(err, pos)
		}
		return v, nil

	case stdlib.CommandSym:
		arg, hasArg, err := e.evalArg(c, args)
		if err != nil {
			return value.Value{}, err
		}
		if body != nil {
			return value.Value{}, errors.Newf(pos, errors.UnexpectedArgument, "%s does not take a block", sym.Name)
		}
		if err := sym.Command(c, arg, hasArg, e.delegate); err != nil {
			return value.Value{}, e.wrapSymErr(err, pos)
		}
		return value.VoidValue(), nil

	case stdlib.BlockSym:
		arg, hasArg, err := e.evalArg(c, args)
		if err != nil {
			return value.Value{}, err
		}
		if err := e.enterCall(pos); err != nil {
			return value.Value{}, err
		}
		defer e.leaveCall()
		child := c.NewChild(context.BlockDefinition, sym.Role)
		// A geometry block consumes the caller's pending translate/rotate/
		// scale state; a path block leaves it for the committing scope,
		// since a path value carries no transform of its own (spec §4.6).
		if sym.Role != context.RolePath && sym.Role != context.RoleText {
			child.Transform = child.Transform.Compose(c.ConsumeChildTransform())
		}
		if body != nil {
			if _, err := e.execStmts(child, body.Body); err != nil {
				return value.Value{}, err
			}
		}
		v, err := sym.Build(child, arg, hasArg, e.mesh)
		if err != nil {
			return value.Value{}, e.wrapSymErr(err, pos)
		}
		return v, nil
	}
	return value.Value{}, errors.Newf(pos, errors.Other, "unknown symbol kind")
}

// invokeUserBinding dispatches a resolved user define to the right shape:
// a plain expression binding is read (and memoized if it was defined with
// a pure literal — spec §4.6 "literal bindings are evaluated once"), a
// parameter-less block binding is invoked as a block, and a
// parametered (IsFunc) binding is invoked as a function.
func (e *evaluator) invokeUserBinding(c *context.Context, b *context.Binding, env *context.Context, args ast.Expr, body *ast.BlockLit, pos token.Pos) (value.Value, error) {
	switch b.Kind {
	case context.ExprBinding:
		if args != nil || body != nil {
			return value.Value{}, errors.Newf(pos, errors.UnexpectedArgument, "%s takes no arguments", b.Name)
		}
		if cached, ok := b.Memoized(); ok {
			return cached, nil
		}
		v, err := e.evalExpr(env, b.Expr)
		if err != nil {
			return value.Value{}, err
		}
		if isPureLiteral(b.Expr) {
			b.Memoize(v)
		}
		return v, nil

	case context.BlockBinding:
		if b.IsFunc {
			return e.callUserFunction(c, b, env, args, pos)
		}
		return e.invokeUserBlock(c, b, env, args, body, pos)
	}
	return value.Value{}, errors.Newf(pos, errors.Other, "unresolvable symbol %q", b.Name)
}

// isPureLiteral reports whether expr can never observe or mutate ambient
// state, so its binding is safe to memoize on first read the same way a
// builtin constant is (spec §4.6).
func isPureLiteral(expr ast.Expr) bool {
	switch x := expr.(type) {
	case *ast.BasicLit, *ast.HexColorLit:
		return true
	case *ast.TupleLit:
		for _, e := range x.Elts {
			if !isPureLiteral(e) {
				return false
			}
		}
		return true
	case *ast.UnaryExpr:
		return isPureLiteral(x.X)
	case *ast.ParenExpr:
		return isPureLiteral(x.X)
	}
	return false
}

// callUserFunction invokes a function binding (spec §4.6): its body runs
// in a scope lexically rooted at the definition site (Reparent) but
// dynamically seeded from the caller's ambient state (NewChild), with a
// forked RNG that does not propagate back. Per the documented "functions
// may have caller-visible side effects" behavior, a handful of ambient
// properties are explicitly copied back onto the caller afterward;
// Transform and RNG are not.
func (e *evaluator) callUserFunction(c *context.Context, b *context.Binding, env *context.Context, args ast.Expr, pos token.Pos) (value.Value, error) {
	if err := e.enterCall(pos); err != nil {
		return value.Value{}, err
	}
	defer e.leaveCall()

	argv, hasArg, err := e.evalArg(c, args)
	if err != nil {
		return value.Value{}, err
	}
	var argList []value.Value
	if hasArg {
		if t, ok := argv.AsTuple(); ok {
			argList = t
		} else {
			argList = []value.Value{argv}
		}
	}
	if len(argList) != len(b.Params) {
		return value.Value{}, errors.Newf(pos, errors.MissingArgument,
			"%s expects %d argument(s), got %d", b.Name, len(b.Params), len(argList))
	}

	child := c.NewChild(context.Function, context.RoleFunction)
	child.Reparent(env)
	for i, p := range b.Params {
		pb := &context.Binding{Kind: context.ExprBinding, Name: p, Pos: pos, Env: child}
		pb.Memoize(argList[i])
		child.Define(p, pb)
	}

	v, err := e.execStmts(child, b.Body)
	if err != nil {
		return value.Value{}, err
	}

	c.Material = child.Material
	c.Font = child.Font
	c.Background = child.Background
	c.Detail = child.Detail
	c.Smoothing = child.Smoothing

	return v, nil
}

// invokeUserBlock invokes a non-function block definition (spec §4.2,
// §4.6): the call-site override body's commands are evaluated in the
// caller's own context to build the options map, then the definition's
// body runs in a child reparented to its own lexical scope with that map
// attached, accumulating geometry that finishBlockResult folds into a
// single returned value.
func (e *evaluator) invokeUserBlock(c *context.Context, b *context.Binding, env *context.Context, args ast.Expr, body *ast.BlockLit, pos token.Pos) (value.Value, error) {
	if args != nil {
		return value.Value{}, errors.Newf(pos, errors.UnexpectedArgument, "%s does not take a positional argument", b.Name)
	}
	if err := e.enterCall(pos); err != nil {
		return value.Value{}, err
	}
	defer e.leaveCall()

	legal := optionNames(b.Body)
	options := map[string]value.Value{}
	if body != nil {
		for _, s := range body.Body {
			cs, ok := s.(*ast.CommandStmt)
			if !ok {
				return value.Value{}, errors.Newf(s.Pos(), errors.Other, "only option overrides are allowed here")
			}
			if !containsName(legal, cs.Name.Name) {
				return value.Value{}, errors.NewfOpt(cs.Pos(), errors.UnknownMember,
					"%s has no option %q", []interface{}{b.Name, cs.Name.Name},
					errors.WithSuggestion(suggest.For(cs.Name.Name, legal, 0)))
			}
			v, _, err := e.evalArg(c, cs.Args)
			if err != nil {
				return value.Value{}, err
			}
			options[cs.Name.Name] = v
		}
	}

	child := c.NewChild(context.BlockDefinition, context.RoleDefinition)
	child.Reparent(env)
	child.Options = options
	child.Transform = child.Transform.Compose(c.ConsumeChildTransform())

	last, err := e.execStmts(child, b.Body)
	if err != nil {
		return value.Value{}, err
	}

	return e.finishBlockResult(child, last), nil
}

// optionNames prescans a block-definition body's leading option
// statements for the set of overridable names (spec §4.2 "option").
func optionNames(stmts []ast.Stmt) []string {
	var names []string
	for _, s := range stmts {
		if o, ok := s.(*ast.OptionStmt); ok {
			names = append(names, o.Name.Name)
		}
	}
	return names
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// finishBlockResult implements spec §4.6's "block invocation result"
// rule: zero accumulated children returns the body's own trailing
// expression value; exactly one returns that geometry directly; more than
// one wraps them as a group.
func (e *evaluator) finishBlockResult(child *context.Context, last value.Value) value.Value {
	kids := child.Children()
	switch len(kids) {
	case 0:
		return last
	case 1:
		return value.MeshValue(kids[0])
	default:
		g := scene.NewGeometry(scene.Group)
		g.Children = kids
		return value.MeshValue(stdlib.FinishGeometry(child, g))
	}
}

// takesJuxtaposedArg reports whether name resolves to a symbol that
// consumes a positional argument when applied by juxtaposition — a stdlib
// block (`svgpath "…"`, `sphere 32`), an argument-taking stdlib function
// (`cos pi`), or a user function with parameters. Constants, properties,
// and plain expression bindings never consume the rest of a tuple run.
func (e *evaluator) takesJuxtaposedArg(c *context.Context, name string) bool {
	if sym, ok := stdlib.Lookup(name); ok {
		switch sym.Kind {
		case stdlib.BlockSym:
			return true
		case stdlib.FunctionSym:
			return !sym.NoArgs
		}
		return false
	}
	if b, _, ok := c.Lookup(name); ok {
		return b.Kind == context.BlockBinding && b.IsFunc && len(b.Params) > 0
	}
	return false
}

// wrapSymErr normalizes an error surfaced from a stdlib handler or
// delegate callback into a positioned errors.Error of the matching
// taxonomy kind (spec §4.7, §7).
func (e *evaluator) wrapSymErr(err error, pos token.Pos) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(errors.Error); ok {
		return err
	}
	switch de := err.(type) {
	case *stdlib.ArgError:
		return errors.Newf(pos, de.Kind, "%s", de.Message)
	case *delegate.ErrFileNotFound:
		return errors.Newf(pos, errors.FileNotFound, "%s", de.Error())
	case *delegate.ErrFileAccessRestricted:
		return errors.Newf(pos, errors.FileAccessRestricted, "%s", de.Error())
	case *delegate.ErrUnknownFont:
		return errors.Newf(pos, errors.UnknownFont, "%s", de.Error())
	}
	return errors.Newf(pos, errors.Other, "%s", err.Error())
}
