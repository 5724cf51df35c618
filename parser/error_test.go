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
	"shapescript.dev/shapescript/errors"
)

func TestParseUnmatchedBrace(t *testing.T) {
	_, err := ParseFile("test.shape", "sphere {\n  size 1\n", AllErrors)
	if err == nil {
		t.Fatalf("expected an error for an unterminated block")
	}
	list, ok := err.(errors.List)
	if !ok || len(list) == 0 {
		t.Fatalf("err = %#v, want a non-empty errors.List", err)
	}
}

func TestParseDuplicateParameter(t *testing.T) {
	_, err := ParseFile("test.shape", "define f(a a) {\n}\n", AllErrors)
	if err == nil {
		t.Fatalf("expected a duplicate-parameter error")
	}
	list := err.(errors.List)
	var found bool
	for _, e := range list {
		if e.Kind() == errors.DuplicateParameter {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %v, want one of kind DuplicateParameter", list)
	}
}

func TestParseRecoversAfterBadToken(t *testing.T) {
	prog, err := ParseFile("test.shape", "cube size 1\n$\ncube size 2\n", AllErrors)
	if err == nil {
		t.Fatalf("expected an illegal-character error")
	}
	// Parsing should still recover and produce both valid commands.
	var commands int
	for _, s := range prog.Statements {
		if _, ok := s.(*ast.CommandStmt); ok {
			commands++
		}
	}
	if commands != 2 {
		t.Errorf("recovered %d command statements, want 2", commands)
	}
}
