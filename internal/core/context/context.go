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

// Package context implements the EvaluationContext scope tree (spec §4.5):
// a hierarchy of scopes that carries material, transform, font,
// background, RNG, accumulated children, and user symbols, each inheriting
// its parent's state by value (spec invariant I2). Grounded on
// internal/core/adt's environment/vertex parent-chain discipline in the
// teacher (child-to-parent strong ownership, no arena — the scope tree is
// dropped with the evaluation, per spec §9).
package context

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"

	"shapescript.dev/shapescript/ast"
	"shapescript.dev/shapescript/scene"
	"shapescript.dev/shapescript/token"
	"shapescript.dev/shapescript/value"
)

// Kind identifies the dynamic role of a scope (spec §4.5 "Scope kinds"):
// it governs symbol visibility and RNG sharing.
type Kind int

const (
	Root Kind = iota
	Group
	BlockDefinition
	Function
	LoopIteration
)

// Role identifies what a scope is currently producing, independent of its
// Kind — the finer-grained "kinds of context" spec §4.4 enumerates for its
// legality matrix (root, group, builder, primitive, path, text, mesh,
// material, definition, function). A BlockDefinition-kind scope can have
// any production Role depending on which stdlib block opened it (`cube`
// is RolePrimitive, `path` is RolePath, `union` is RoleBuilder, and so
// on); Kind and Role are orthogonal.
type Role int

const (
	RoleRoot Role = iota
	RoleGroup
	RoleBuilder    // CSG bodies: union/difference/intersection/xor/stencil/hull
	RolePrimitive  // cube/sphere/cylinder/cone
	RolePath       // path/svgpath/circle/square/roundrect/polygon/arc
	RoleText       // text
	RoleMesh       // the `mesh` custom-geometry block
	RoleMaterial   // a material-valued sub-block
	RoleDefinition // a user block-definition body
	RoleFunction   // a user function body
)

// BindingKind distinguishes a user `define`'s two shapes (spec §4.2
// "Definition: expression(expr) or block(parameters?, body)").
type BindingKind int

const (
	ExprBinding BindingKind = iota
	BlockBinding
)

// Binding is a user `define` or `option` entry in a scope's symbol table.
// Expression bindings are lazy: Expr is re-evaluated on every read by the
// evaluator unless it is a pure literal (spec §4.6), which the evaluator
// decides by inspecting Expr's shape — this package only stores it.
type Binding struct {
	Kind   BindingKind
	Pos    token.Pos
	Name   string
	Expr   ast.Expr      // set iff Kind == ExprBinding, or an Option default
	Params []string      // set iff Kind == BlockBinding with an explicit ParamList (a function)
	IsFunc bool          // true iff Params != nil (spec §4.2 "empty-parens -> function")
	Body   []ast.Stmt    // set iff Kind == BlockBinding
	Env    *Context      // the defining scope, kept alive for closures

	memoized bool
	cached   value.Value
}

// Memoized reports a cached value for an idempotent expression binding
// (spec §4.6 "option default values are idempotent — the same default
// evaluates once per block invocation"), and whether one has been stored.
func (b *Binding) Memoized() (value.Value, bool) { return b.cached, b.memoized }

// Memoize stores v as b's cached result.
func (b *Binding) Memoize(v value.Value) { b.cached, b.memoized = v, true }

// RandomSequence is the per-scope RNG state of spec §4.6: a documented
// 32-bit LCG (the Numerical Recipes constants a=1664525, c=1013904223,
// m=2^32 — the constant pair that reproduces spec §8's documented
// "seed 1; print rnd" value, 0.23645552527159452, exactly). Entering a
// nested group/definition shares the same *RandomSequence by pointer, so
// advances in a child propagate to the parent (spec invariant I6);
// entering a function body forks a fresh copy that does not propagate
// back.
type RandomSequence struct {
	state uint32
}

const (
	lcgMul = 1664525
	lcgInc = 1013904223
)

// NewRandomSequence seeds a sequence from n, truncated to the 32-bit
// state word (spec §4.6).
func NewRandomSequence(n float64) *RandomSequence {
	return &RandomSequence{state: uint32(int64(n))}
}

// Seed resets r's state in place, so every scope sharing this pointer
// observes the reset (spec §4.6 "seed n resets the current context").
func (r *RandomSequence) Seed(n float64) {
	r.state = uint32(int64(n))
}

// Next advances the sequence and returns a value in [0,1).
func (r *RandomSequence) Next() float64 {
	r.state = r.state*lcgMul + lcgInc
	return float64(r.state) / 4294967296.0
}

// Fork returns an independent copy of r's current state, for a function
// body's non-propagating RNG (spec §4.6).
func (r *RandomSequence) Fork() *RandomSequence {
	return &RandomSequence{state: r.state}
}

// Context is one node of the EvaluationContext scope tree (spec §4.5).
type Context struct {
	parent *Context
	kind   Kind
	role   Role

	symbols *linkedhashmap.Map // name -> *Binding, shadow-order preserved (spec I3)

	Material       scene.Material
	Transform      scene.Transform
	ChildTransform scene.Transform
	Font           string
	Background     *value.Value // a color or a texture, nil when unset
	Detail         int
	Smoothing      float64 // radians threshold; < 0 means "unset, inherit default shading"
	Random         *RandomSequence
	Options        map[string]value.Value // bound at block-invocation time
	Source         token.Pos

	// Name and Debug are set by the `name`/`debug` commands from inside the
	// body of the block producing this scope's own geometry (spec §4.4
	// "name: legal only on nameable-geometry-producing scopes"). They are
	// deliberately absent from NewChild's value-copy set: each block body
	// starts with a fresh, empty Name/Debug, since both describe the node
	// the current body is building, not an ambient, inherited property.
	Name  string
	Debug bool

	children []*scene.Geometry
	points   []scene.PathPoint

	// imports is the in-flight import URL set (spec §6 "cycles between
	// files must be rejected"), shared by pointer across every scope of
	// one evaluation regardless of Kind — unlike RNG, import-cycle
	// detection is a property of the whole run, not of one scope.
	imports *map[string]bool
}

// NewRoot creates the top-level scope for a program (spec §4.5 "root:
// top-level").
func NewRoot(seed float64) *Context {
	imports := map[string]bool{}
	return &Context{
		kind:           Root,
		role:           RoleRoot,
		symbols:        linkedhashmap.New(),
		Material:       scene.DefaultMaterial(),
		Transform:      scene.IdentityTransform(),
		ChildTransform: scene.IdentityTransform(),
		Detail:         16,
		Smoothing:      -1,
		Random:         NewRandomSequence(seed),
		imports:        &imports,
	}
}

// Kind reports c's scope kind.
func (c *Context) Kind() Kind { return c.kind }

// Role reports what c is currently producing (spec §4.4's context-legality
// categories).
func (c *Context) Role() Role { return c.role }

// Parent returns c's enclosing scope, or nil for the root.
func (c *Context) Parent() *Context { return c.parent }

// NewChild creates a nested scope of the given kind and production role,
// inheriting material, transform, font, background, detail, and smoothing
// by value (spec invariant I2), and sharing the RNG by pointer except for
// a Function child, which forks it (spec §4.6).
func (c *Context) NewChild(kind Kind, role Role) *Context {
	child := &Context{
		parent:         c,
		kind:           kind,
		role:           role,
		symbols:        linkedhashmap.New(),
		Material:       c.Material,
		Transform:      c.Transform,
		ChildTransform: scene.IdentityTransform(),
		Font:           c.Font,
		Background:     c.Background,
		Detail:         c.Detail,
		Smoothing:      c.Smoothing,
		Source:         c.Source,
		imports:        c.imports,
	}
	if kind == Function {
		child.Random = c.Random.Fork()
	} else {
		child.Random = c.Random
	}
	return child
}

// Reparent rebinds c's symbol-lookup ancestor to lexical, decoupling name
// resolution from the dynamic material/transform/etc. state NewChild
// already copied by value from the invoking scope. The evaluator calls
// this right after NewChild when invoking a user-defined block or
// function: the body must resolve names through its own defining scope
// (spec §4.5 "a block body sees the symbols visible at its definition
// site"), even though it still inherits the caller's ambient geometry
// state at invocation time.
func (c *Context) Reparent(lexical *Context) {
	c.parent = lexical
}

// Define binds name to b in c's own scope, shadowing (not replacing) any
// binding visible from an outer scope (spec invariant I3).
func (c *Context) Define(name string, b *Binding) {
	c.symbols.Put(name, b)
}

// Lookup searches c and its ancestors for a user-defined binding named
// name, honoring the function-body symbol-visibility rule of spec §4.5:
// a Function scope sees only bindings from Root (its "global symbols"),
// never a caller's locals.
func (c *Context) Lookup(name string) (*Binding, *Context, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if v, ok := cur.symbols.Get(name); ok {
			return v.(*Binding), cur, true
		}
		if cur.kind == Function {
			// Jump straight to the root's globals; skip the caller chain.
			root := cur
			for root.parent != nil {
				root = root.parent
			}
			if root != cur {
				return root.Lookup(name)
			}
		}
	}
	return nil, nil, false
}

// VisibleNames collects every user-defined name visible from c, for
// name-suggestion candidate sets (spec §4.7).
func (c *Context) VisibleNames() []string {
	var names []string
	seen := map[string]bool{}
	for cur := c; cur != nil; cur = cur.parent {
		it := cur.symbols.Iterator()
		for it.Next() {
			name := it.Key().(string)
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
		if cur.kind == Function {
			// Like Lookup, a function body sees the root's globals but not
			// the caller chain in between.
			root := cur
			for root.parent != nil {
				root = root.parent
			}
			if root != cur {
				for _, name := range root.VisibleNames() {
					if !seen[name] {
						seen[name] = true
						names = append(names, name)
					}
				}
			}
			break
		}
	}
	return names
}

// AddChild appends g to c's accumulated children (spec §4.5 "Commit
// rules"). Children are appended strictly in source order (spec §5
// "Ordering").
func (c *Context) AddChild(g *scene.Geometry) {
	c.children = append(c.children, g)
}

// Children returns c's accumulated children, in source order.
func (c *Context) Children() []*scene.Geometry { return c.children }

// AddPoint appends p to c's accumulating path (spec §4.4 `point`/`curve`,
// legal only in a path-producing scope).
func (c *Context) AddPoint(p scene.PathPoint) {
	c.points = append(c.points, p)
}

// Points returns c's accumulated path points, in source order.
func (c *Context) Points() []scene.PathPoint { return c.points }

// EnterImport records url as in-flight and reports whether it was not
// already in-flight (spec §6's cycle detection); the caller must pair a
// successful EnterImport with a later LeaveImport.
func (c *Context) EnterImport(url string) bool {
	if (*c.imports)[url] {
		return false
	}
	(*c.imports)[url] = true
	return true
}

// LeaveImport clears url from the in-flight set.
func (c *Context) LeaveImport(url string) {
	delete(*c.imports, url)
}

// ConsumeChildTransform returns c's pending translate/rotate/scale state
// and resets it to identity, implementing "the next child geometry
// consumes and resets it" (spec §4.6).
func (c *Context) ConsumeChildTransform() scene.Transform {
	t := c.ChildTransform
	c.ChildTransform = scene.IdentityTransform()
	return t
}
