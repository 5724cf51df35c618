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
	"strings"

	"shapescript.dev/shapescript/ast"
	"shapescript.dev/shapescript/errors"
	"shapescript.dev/shapescript/scanner"
	"shapescript.dev/shapescript/token"
)

// parser holds the mutable state of one parse. The zero value, after init,
// is ready to use.
type parser struct {
	file    *token.File
	scanner scanner.Scanner
	errors  errors.List

	parseComments bool
	allErrors     bool

	pos token.Pos
	tok token.Token
	lit string

	pendingComments []*ast.CommentGroup
}

func (p *parser) init(file *token.File, src []byte) {
	p.file = file
	handler := func(pos token.Position, msg string) {
		p.errors.AddNewf(p.file.Pos(pos.Offset, token.NoRelPos), errors.Other, "%s", msg)
	}
	p.scanner.Init(file, src, handler)
	p.next()
}

// next0 reads the next raw token, including comments.
func (p *parser) next0() {
	p.pos, p.tok, p.lit = p.scanner.Scan()
}

// next advances to the next non-comment token, collecting any comments
// encountered along the way so the following node can claim them.
func (p *parser) next() {
	p.next0()
	if p.tok != token.COMMENT {
		return
	}
	var group []*ast.Comment
	for p.tok == token.COMMENT {
		if p.parseComments {
			group = append(group, &ast.Comment{Slash: p.pos, Text: p.lit})
		}
		p.next0()
	}
	if len(group) > 0 {
		p.pendingComments = append(p.pendingComments, &ast.CommentGroup{List: group})
	}
}

func (p *parser) takeComments() []*ast.CommentGroup {
	c := p.pendingComments
	p.pendingComments = nil
	return c
}

func (p *parser) attachComments(n ast.Node, groups []*ast.CommentGroup) {
	for _, g := range groups {
		n.AddComment(g)
	}
}

func (p *parser) errorf(pos token.Pos, kind errors.Kind, format string, args ...interface{}) {
	p.errors.AddNewf(pos, kind, format, args...)
}

// expect consumes the current token if it matches tok, reporting an error
// otherwise; it always advances, so callers never stall on malformed input.
func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.pos
	if p.tok != tok {
		p.errorf(pos, errors.UnexpectedToken, "expected %s, found %s", tok, describe(p.tok, p.lit))
	}
	p.next()
	return pos
}

func describe(tok token.Token, lit string) string {
	if tok == token.IDENT || tok.IsLiteral() {
		if lit != "" {
			return lit
		}
	}
	return tok.String()
}

func (p *parser) skipNewlines() {
	for p.tok == token.NEWLINE {
		p.next()
	}
}

// expectStmtEnd consumes the separator between two statements: a NEWLINE,
// or the EOF/'}' that ends the enclosing program or block. On anything
// else it reports an error and skips ahead to the next likely boundary.
func (p *parser) expectStmtEnd() {
	switch p.tok {
	case token.NEWLINE:
		p.next()
	case token.EOF, token.RBRACE:
	default:
		p.errorf(p.pos, errors.UnexpectedToken, "expected end of statement, found %s", describe(p.tok, p.lit))
		for p.tok != token.NEWLINE && p.tok != token.EOF && p.tok != token.RBRACE {
			p.next()
		}
		if p.tok == token.NEWLINE {
			p.next()
		}
	}
}

// ----------------------------------------------------------------------------
// Top level

func (p *parser) parseProgram() *ast.Program {
	prog := &ast.Program{Filename: p.file.Name()}
	p.skipNewlines()
	for p.tok != token.EOF {
		comments := p.takeComments()
		s := p.parseStmt()
		if s != nil {
			p.attachComments(s, comments)
			prog.Statements = append(prog.Statements, s)
		}
		p.expectStmtEnd()
		p.skipNewlines()
	}
	return prog
}

func (p *parser) parseBlockLit(allowParams bool) *ast.BlockLit {
	var params *ast.ParamList
	if allowParams && p.tok == token.LPAREN {
		params = p.parseParamList()
	}
	lbrace := p.expect(token.LBRACE)
	p.skipNewlines()
	var body []ast.Stmt
	for p.tok != token.RBRACE && p.tok != token.EOF {
		comments := p.takeComments()
		s := p.parseStmt()
		if s != nil {
			p.attachComments(s, comments)
			body = append(body, s)
		}
		p.expectStmtEnd()
		p.skipNewlines()
	}
	rbrace := p.expect(token.RBRACE)
	return &ast.BlockLit{Params: params, Lbrace: lbrace, Body: body, Rbrace: rbrace}
}

func (p *parser) parseParamList() *ast.ParamList {
	lparen := p.expect(token.LPAREN)
	var names []*ast.Ident
	seen := map[string]bool{}
	for p.tok != token.RPAREN && p.tok != token.EOF {
		id := p.parseIdent()
		if seen[id.Name] {
			p.errorf(id.Pos(), errors.DuplicateParameter, "duplicate parameter %q", id.Name)
		}
		seen[id.Name] = true
		names = append(names, id)
	}
	rparen := p.expect(token.RPAREN)
	return &ast.ParamList{Lparen: lparen, Names: names, Rparen: rparen}
}

// ----------------------------------------------------------------------------
// Statements

func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.DEFINE:
		return p.parseDefineStmt()
	case token.OPTION:
		return p.parseOptionStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.SWITCH:
		return p.parseSwitchStmt()
	case token.IMPORT:
		return p.parseImportStmt()
	case token.IDENT:
		return p.parseCommandStmt()
	case token.NEWLINE, token.RBRACE, token.EOF:
		return nil
	default:
		x := p.parseRangeExpr()
		return &ast.ExprStmt{X: x}
	}
}

func (p *parser) parseDefineStmt() *ast.DefineStmt {
	pos := p.pos
	p.next() // 'define'
	name := p.parseIdent()
	if p.tok == token.LPAREN || p.tok == token.LBRACE {
		block := p.parseBlockLit(true)
		return &ast.DefineStmt{DefinePos: pos, Name: name, Block: block}
	}
	expr := p.parseArgTuple()
	return &ast.DefineStmt{DefinePos: pos, Name: name, Expr: expr}
}

func (p *parser) parseOptionStmt() *ast.OptionStmt {
	pos := p.pos
	p.next() // 'option'
	name := p.parseIdent()
	def := p.parseArgTuple()
	return &ast.OptionStmt{OptionPos: pos, Name: name, Default: def}
}

func (p *parser) parseForStmt() *ast.ForStmt {
	pos := p.pos
	p.next() // 'for'

	var index *ast.Ident
	var source ast.Expr
	if p.tok == token.IDENT {
		id := p.parseIdent()
		if p.tok == token.IN {
			p.next() // 'in'
			index = id
			source = p.parseArgTuple()
		} else {
			source = p.parseArgTupleFrom(id)
		}
	} else {
		source = p.parseArgTuple()
	}

	body := p.parseBlockLit(false)
	return &ast.ForStmt{ForPos: pos, Index: index, Source: source, Body: body}
}

func (p *parser) parseIfStmt() *ast.IfStmt {
	pos := p.pos
	p.next() // 'if'
	cond := p.parseRangeExpr()
	then := p.parseBlockLit(false)

	var elseNode ast.Node
	if p.tok == token.ELSE {
		p.next()
		if p.tok == token.IF {
			elseNode = p.parseIfStmt()
		} else {
			elseNode = p.parseBlockLit(false)
		}
	}
	return &ast.IfStmt{IfPos: pos, Cond: cond, Then: then, Else: elseNode}
}

func (p *parser) parseSwitchStmt() *ast.SwitchStmt {
	pos := p.pos
	p.next() // 'switch'
	subject := p.parseRangeExpr()
	p.expect(token.LBRACE)
	p.skipNewlines()

	var cases []*ast.CaseClause
	for p.tok == token.CASE {
		casePos := p.pos
		p.next()
		val := p.parseRangeExpr()
		body := p.parseBlockLit(false)
		cases = append(cases, &ast.CaseClause{CasePos: casePos, Value: val, Body: body})
		p.skipNewlines()
	}

	var elseBlock *ast.BlockLit
	if p.tok == token.ELSE {
		p.next()
		elseBlock = p.parseBlockLit(false)
		p.skipNewlines()
	}

	p.expect(token.RBRACE)
	return &ast.SwitchStmt{SwitchPos: pos, Subject: subject, Cases: cases, Else: elseBlock}
}

func (p *parser) parseImportStmt() *ast.ImportStmt {
	pos := p.pos
	p.next() // 'import'
	path := p.parseRangeExpr()
	return &ast.ImportStmt{ImportPos: pos, Path: path}
}

// parseCommandStmt parses `name`, `name args`, `name { body }`, and
// `name args { body }` — the juxtaposition-style invocation that covers
// stdlib commands, constants, and user-defined blocks alike (spec §4.2,
// §4.4). A parenthesized function application like `sin(x)` is parsed as
// part of an expression instead (see parsePrimaryExpr); whether a given
// name resolves to one or the other is an evaluator concern, not a parser
// one.
func (p *parser) parseCommandStmt() ast.Stmt {
	name := p.parseIdent()
	switch p.tok {
	case token.LBRACE:
		body := p.parseBlockLit(false)
		return &ast.BlockCallStmt{Name: name, Body: body}
	case token.NEWLINE, token.EOF, token.RBRACE:
		return &ast.CommandStmt{Name: name}
	default:
		args := p.parseArgTuple()
		var body *ast.BlockLit
		if p.tok == token.LBRACE {
			body = p.parseBlockLit(false)
		}
		return &ast.CommandStmt{Name: name, Args: args, Body: body}
	}
}

// parseArgTuple parses a run of juxtaposed expressions — ShapeScript's
// tuple constructor (spec §3: "Juxtaposition is the tuple constructor") —
// stopping at the statement/block/file boundary. Every source of a bare
// multi-value tuple (a command's argument list, a `define`/`option`
// expression, a `for` loop's source) shares this one helper.
func (p *parser) parseArgTuple() ast.Expr {
	return p.parseArgTupleFrom(nil)
}

// parseArgTupleFrom is like parseArgTuple but, when lhs is non-nil, uses it
// as the already-parsed first element (used by parseForStmt's lookahead for
// the optional `index in` prefix).
func (p *parser) parseArgTupleFrom(lhs ast.Expr) ast.Expr {
	var elts []ast.Expr
	if lhs != nil {
		elts = append(elts, p.parseRangeExprFrom(lhs))
	}
	for p.tok != token.NEWLINE && p.tok != token.EOF && p.tok != token.LBRACE && p.tok != token.RBRACE {
		elts = append(elts, p.parseRangeExpr())
	}
	if len(elts) == 1 {
		return elts[0]
	}
	return &ast.TupleLit{Elts: elts}
}

// ----------------------------------------------------------------------------
// Expressions

// parseRangeExpr parses a full expression including an optional trailing
// `to ... [step ...]` range tail (spec §4.2).
func (p *parser) parseRangeExpr() ast.Expr {
	return p.parseRangeExprFrom(nil)
}

// parseRangeExprFrom is like parseRangeExpr but, when lhs is non-nil, uses
// it as the already-parsed first operand (used by parseForStmt's
// lookahead for the optional `index in` prefix).
func (p *parser) parseRangeExprFrom(lhs ast.Expr) ast.Expr {
	var from ast.Expr
	if lhs != nil {
		from = p.parseBinaryExprFrom(lhs, 1)
	} else {
		from = p.parseBinaryExpr(1)
	}
	if p.tok != token.TO && p.tok != token.STEP {
		return from
	}
	var toPos token.Pos
	var to ast.Expr
	if p.tok == token.TO {
		toPos = p.pos
		p.next()
		to = p.parseBinaryExpr(1)
	}

	// A bare `step` with no `to` replaces the step of an existing range
	// value, or sets the lattice step of a partial range (spec §4.6).
	var stepPos token.Pos
	var step ast.Expr
	if p.tok == token.STEP {
		stepPos = p.pos
		p.next()
		step = p.parseBinaryExpr(1)
	}
	return &ast.RangeExpr{From: from, ToPos: toPos, To: to, StepPos: stepPos, Step: step}
}

func (p *parser) parseBinaryExpr(prec1 int) ast.Expr {
	x := p.parseUnaryExpr()
	return p.parseBinaryExprFrom(x, prec1)
}

func (p *parser) parseBinaryExprFrom(x ast.Expr, prec1 int) ast.Expr {
	for {
		op := p.tok
		prec := op.Precedence()
		if prec < prec1 {
			return x
		}
		pos := p.pos
		p.next()
		y := p.parseBinaryExpr(prec + 1)
		x = &ast.BinaryExpr{X: x, OpPos: pos, Op: op, Y: y}
	}
}

func (p *parser) parseUnaryExpr() ast.Expr {
	switch p.tok {
	case token.ADD, token.SUB, token.NOT:
		pos, op := p.pos, p.tok
		p.next()
		x := p.parseUnaryExpr()
		return &ast.UnaryExpr{OpPos: pos, Op: op, X: x}
	}
	return p.parsePrimaryExpr()
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	x := p.parseOperand()
	for {
		switch p.tok {
		case token.PERIOD:
			p.next()
			sel := p.parseIdent()
			x = &ast.SelectorExpr{X: x, Sel: sel}
		case token.LPAREN:
			x = p.parseCallExpr(x)
		default:
			return x
		}
	}
}

func (p *parser) parseCallExpr(fun ast.Expr) ast.Expr {
	lparen := p.pos
	p.next() // '('
	var args []ast.Expr
	for p.tok != token.RPAREN && p.tok != token.EOF {
		args = append(args, p.parseRangeExpr())
	}
	rparen := p.expect(token.RPAREN)
	return &ast.CallExpr{Fun: fun, Lparen: lparen, Args: args, Rparen: rparen}
}

func (p *parser) parseOperand() ast.Expr {
	switch p.tok {
	case token.IDENT:
		return p.parseIdent()
	case token.NUMBER:
		lit := &ast.BasicLit{ValuePos: p.pos, Kind: token.NUMBER, Value: p.lit}
		p.next()
		return lit
	case token.STRING:
		return p.parseStringExpr()
	case token.HEXCOLOR:
		lit := &ast.HexColorLit{ValuePos: p.pos, Value: p.lit}
		p.next()
		return lit
	case token.LPAREN:
		return p.parseParenOrTuple()
	case token.IF:
		return p.parseIfExpr()
	default:
		pos := p.pos
		p.errorf(pos, errors.UnexpectedToken, "unexpected %s", describe(p.tok, p.lit))
		p.next()
		return &ast.BadExpr{From: pos, To: p.pos}
	}
}

func (p *parser) parseParenOrTuple() ast.Expr {
	lparen := p.pos
	p.next() // '('
	var elts []ast.Expr
	for p.tok != token.RPAREN && p.tok != token.EOF {
		elts = append(elts, p.parseRangeExpr())
	}
	rparen := p.expect(token.RPAREN)
	if len(elts) == 1 {
		return &ast.ParenExpr{Lparen: lparen, X: elts[0], Rparen: rparen}
	}
	return &ast.TupleLit{Elts: elts, Lparen: lparen, Rparen: rparen}
}

// parseIfExpr parses the value-producing `if cond then [else alt]` form
// usable anywhere an expression is expected, e.g. in a `define` (spec
// §4.2). then/alt may each be a single expression or a `{ … }` block,
// whose value is that of its last statement.
func (p *parser) parseIfExpr() ast.Expr {
	pos := p.pos
	p.next() // 'if'
	cond := p.parseRangeExpr()

	then := p.parseExprOrBlock()

	var elseExpr ast.Expr
	if p.tok == token.ELSE {
		p.next()
		if p.tok == token.IF {
			elseExpr = p.parseIfExpr()
		} else {
			elseExpr = p.parseExprOrBlock()
		}
	}
	return &ast.IfExpr{IfPos: pos, Cond: cond, Then: then, Else: elseExpr}
}

func (p *parser) parseExprOrBlock() ast.Expr {
	if p.tok == token.LBRACE {
		return p.parseBlockLit(false)
	}
	return p.parseRangeExpr()
}

func (p *parser) parseIdent() *ast.Ident {
	pos, name := p.pos, p.lit
	if p.tok != token.IDENT {
		p.errorf(pos, errors.UnexpectedToken, "expected identifier, found %s", describe(p.tok, p.lit))
		name = "_"
	} else {
		p.next()
		return &ast.Ident{NamePos: pos, Name: name}
	}
	p.next()
	return &ast.Ident{NamePos: pos, Name: name}
}

// parseStringExpr parses a (possibly interpolated) string literal. The
// scanner signals an embedded \(expr) by ending the literal's raw text
// with a single trailing backslash (spec §4.1); ResumeInterpolation
// reports the same for each subsequent fragment via its "more" result.
func (p *parser) parseStringExpr() ast.Expr {
	startPos := p.pos
	frag := p.lit
	p.next() // STRING

	if !strings.HasSuffix(frag, `\`) {
		return &ast.BasicLit{ValuePos: startPos, Kind: token.STRING, Value: frag}
	}

	elts := []ast.Expr{&ast.BasicLit{ValuePos: startPos, Kind: token.STRING, Value: frag}}
	for {
		if p.tok != token.LPAREN {
			p.errorf(p.pos, errors.UnexpectedToken, "expected '(' to begin string interpolation")
			break
		}
		p.next() // '('
		elts = append(elts, p.parseRangeExpr())
		if p.tok != token.RPAREN {
			p.errorf(p.pos, errors.UnexpectedToken, "expected ')' to close string interpolation")
			break
		}

		fragPos := p.scanner.Pos()
		lit, more := p.scanner.ResumeInterpolation()
		elts = append(elts, &ast.BasicLit{ValuePos: fragPos, Kind: token.STRING, Value: lit})
		if !more {
			p.next() // resume normal tokenizing past the closing quote
			break
		}
		p.next() // should land on the '(' of the next embedded expression
	}
	return &ast.Interpolation{Elts: elts}
}
