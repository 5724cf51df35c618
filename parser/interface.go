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

// Package parser implements a recursive-descent parser that turns
// ShapeScript source into an *ast.Program (spec §4.2).
package parser

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"

	"shapescript.dev/shapescript/ast"
	"shapescript.dev/shapescript/token"
)

// readSource normalizes src (string, []byte, io.Reader, or nil) to bytes,
// reading from filename when src is nil.
func readSource(filename string, src interface{}) ([]byte, error) {
	if src != nil {
		switch s := src.(type) {
		case string:
			return []byte(s), nil
		case []byte:
			return s, nil
		case *bytes.Buffer:
			if s != nil {
				return s.Bytes(), nil
			}
		case io.Reader:
			var buf bytes.Buffer
			if _, err := io.Copy(&buf, s); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		}
		return nil, fmt.Errorf("invalid source type %T", src)
	}
	return ioutil.ReadFile(filename)
}

// Option configures the parser.
type Option func(p *parser)

// ParseComments causes comments to be attached to the nodes that follow them.
var ParseComments Option = func(p *parser) { p.parseComments = true }

// AllErrors causes the parser to keep going past the first error instead of
// aborting after a small number of them.
var AllErrors Option = func(p *parser) { p.allErrors = true }

// ParseFile parses a single ShapeScript source and returns its syntax tree.
// src may be nil (read filename from disk), a string, a []byte, or an
// io.Reader. Even on error, a best-effort *ast.Program is returned so that
// editors and REPLs can recover from partial input.
func ParseFile(filename string, src interface{}, opts ...Option) (*ast.Program, error) {
	data, err := readSource(filename, src)
	if err != nil {
		return nil, err
	}

	var p parser
	for _, opt := range opts {
		opt(&p)
	}

	file := token.NewFile(filename, len(data))
	p.init(file, data)
	prog := p.parseProgram()
	p.errors.RemoveMultiples()
	if !p.allErrors && len(p.errors) > 10 {
		p.errors = p.errors[:10]
	}
	return prog, p.errors.Err()
}

// ParseExpr parses a single ShapeScript expression (used by REPLs to
// evaluate one-off expressions, spec §4.2's `export` / `repl` surfaces).
func ParseExpr(filename string, src interface{}, opts ...Option) (ast.Expr, error) {
	data, err := readSource(filename, src)
	if err != nil {
		return nil, err
	}

	var p parser
	for _, opt := range opts {
		opt(&p)
	}

	file := token.NewFile(filename, len(data))
	p.init(file, data)
	x := p.parseRangeExpr()
	p.errors.RemoveMultiples()
	return x, p.errors.Err()
}
