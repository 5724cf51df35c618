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

// Package stdlib is the standard-library symbol table (spec §4.4): a map
// from name to one of five symbol kinds (constant, property, function,
// command, block), each declaring the context.Role values it is legal in.
// Grounded on the teacher's builtin-package pattern in
// internal/core/adt/builtins.go, where every builtin carries its own
// parameter/result signature and is looked up by name from a flat table
// rather than a class hierarchy (spec §9 "dynamic dispatch via interface
// abstraction" — no symbol-kind class hierarchy here either).
package stdlib

import (
	"fmt"

	"shapescript.dev/shapescript/delegate"
	"shapescript.dev/shapescript/errors"
	"shapescript.dev/shapescript/internal/core/context"
	"shapescript.dev/shapescript/value"
)

func fmtMsg(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Kind distinguishes the five symbol shapes spec §4.4 enumerates.
type Kind int

const (
	ConstantSym Kind = iota
	PropertySym
	FunctionSym
	CommandSym
	BlockSym
)

// RoleSet is a bitmask over context.Role, used to express "the kinds of
// context" a symbol declares itself legal in (spec §4.4).
type RoleSet uint32

// RS builds a RoleSet from individual roles.
func RS(roles ...context.Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s |= 1 << uint(r)
	}
	return s
}

// Has reports whether r is a member of s.
func (s RoleSet) Has(r context.Role) bool { return s&(1<<uint(r)) != 0 }

// AnyContext is every role spec §4.4's matrix doesn't explicitly restrict.
var AnyContext = RS(
	context.RoleRoot, context.RoleGroup, context.RoleBuilder, context.RolePrimitive,
	context.RolePath, context.RoleText, context.RoleMesh, context.RoleMaterial,
	context.RoleDefinition, context.RoleFunction,
)

// geometryProducing is every scope whose body builds up a scene node:
// root/group plus every block-bodied production role (spec §4.4 "position,
// orientation, size legal on geometry-producing scopes only"). A
// user-defined block's own body (RoleDefinition) is a geometry-producing
// scope too: its accumulated children commit as a group exactly like a
// builtin block's (spec §4.6 "block invocation"), so it carries the same
// legality as RoleMesh/RolePrimitive/etc.
var geometryProducing = RS(
	context.RoleRoot, context.RoleGroup, context.RoleBuilder, context.RolePrimitive,
	context.RolePath, context.RoleText, context.RoleMesh, context.RoleDefinition,
)

// nameable is the subset of geometryProducing spec §4.4 names for `name`:
// "primitive, builder, group, custom mesh/path block" plus a user block
// definition's own body, for the same reason as geometryProducing above.
var nameable = RS(
	context.RoleGroup, context.RoleBuilder, context.RolePrimitive,
	context.RolePath, context.RoleText, context.RoleMesh, context.RoleDefinition,
)

// notFunctionDefinition excludes only RoleFunction (spec §4.4 "color ...
// illegal in function-definition").
var notFunctionDefinition = AnyContext &^ RS(context.RoleFunction)

// pathProducing is the scope a `path`/`svgpath`/`circle`/`square`/
// `roundrect`/`polygon`/`arc` body opens (spec §4.4 "point, curve legal
// only in path-producing scopes").
var pathProducing = RS(context.RolePath)

// materialLegal excludes path/text/circle, where spec §4.4 says `texture`
// is illegal (circle is RolePath here, same as path/svgpath/square/etc.).
var materialLegal = AnyContext &^ RS(context.RolePath, context.RoleText)

// meshLegal is where `smoothing` applies: anywhere a mesh (not a bare
// path) is produced (spec §4.4 "smoothing ... not on paths").
var meshLegal = AnyContext &^ RS(context.RolePath, context.RoleText)

// ArgError is returned by a stdlib symbol's handler when it rejects its
// own argument(s); the evaluator wraps it into a positioned errors.Error
// using Kind, since only the call site has the source range (spec §4.7).
type ArgError struct {
	Kind     errors.Kind
	Message  string
	Expected string
	Got      string
}

func (e *ArgError) Error() string { return e.Message }

func missingArg(msg string, args ...interface{}) *ArgError {
	return &ArgError{Kind: errors.MissingArgument, Message: fmtMsg(msg, args)}
}

func unexpectedArg(msg string, args ...interface{}) *ArgError {
	return &ArgError{Kind: errors.UnexpectedArgument, Message: fmtMsg(msg, args)}
}

func typeMismatch(expected, got string) *ArgError {
	return &ArgError{
		Kind:     errors.TypeMismatch,
		Message:  "type mismatch: expected " + expected + ", got " + got,
		Expected: expected,
		Got:      got,
	}
}

func assertionFailure(msg string, args ...interface{}) *ArgError {
	return &ArgError{Kind: errors.AssertionFailure, Message: fmtMsg(msg, args)}
}

// Symbol is one stdlib entry. Only the fields matching Kind are set.
type Symbol struct {
	Name     string
	Kind     Kind
	Contexts RoleSet

	// ConstantSym
	Value value.Value

	// PropertySym
	Get func(c *context.Context) value.Value
	Set func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error

	// FunctionSym. Context access is needed only by `rnd`; every other
	// function ignores it. NoArgs marks the rare nullary function, so the
	// evaluator's juxtaposition rule knows not to feed it the rest of a
	// tuple run (`print rnd rnd` is two calls, not one call of one
	// argument).
	Func   func(c *context.Context, args []value.Value) (value.Value, error)
	NoArgs bool

	// CommandSym
	Command func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error

	// BlockSym: Role is the production role of the child scope this block
	// opens, so the evaluator knows how to construct it before calling
	// Build. Build receives that already-populated child context (its
	// Material/Transform/Name/Debug/accumulated Children or Points) plus
	// the block's resolved positional argument.
	Role  context.Role
	Build func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (value.Value, error)
}

var table = map[string]*Symbol{}

func register(s *Symbol) { table[s.Name] = s }

// Lookup finds a stdlib symbol by name.
func Lookup(name string) (*Symbol, bool) {
	s, ok := table[name]
	return s, ok
}

// contextAlternatives pairs each transform command with the property that
// covers the same intent in scopes where the command itself is illegal,
// and vice versa (spec §4.4's "rotate vs orientation" suggestion).
var contextAlternatives = map[string]string{
	"translate":   "position",
	"rotate":      "orientation",
	"scale":       "size",
	"position":    "translate",
	"orientation": "rotate",
	"size":        "scale",
}

// ContextAlternative returns the symbol to suggest when name is used in a
// context it isn't legal in, or "" when there is no counterpart.
func ContextAlternative(name string) string { return contextAlternatives[name] }

// Names returns every stdlib symbol name, for suggestion candidate sets
// (spec §4.7).
func Names() []string {
	names := make([]string, 0, len(table))
	for n := range table {
		names = append(names, n)
	}
	return names
}
