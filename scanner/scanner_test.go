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

package scanner

import (
	"testing"

	"shapescript.dev/shapescript/token"
)

// scanAll tokenizes src with a fresh Scanner, returning every (tok, lit)
// pair including the trailing EOF.
func scanAll(t *testing.T, src string) []struct {
	tok token.Token
	lit string
} {
	t.Helper()
	file := token.NewFile("<test>", len(src))
	var s Scanner
	var errs []string
	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		errs = append(errs, msg)
	})
	var got []struct {
		tok token.Token
		lit string
	}
	for {
		_, tok, lit := s.Scan()
		got = append(got, struct {
			tok token.Token
			lit string
		}{tok, lit})
		if tok == token.EOF {
			break
		}
	}
	if len(errs) > 0 {
		t.Fatalf("scanner errors: %v", errs)
	}
	return got
}

func tokens(toks []struct {
	tok token.Token
	lit string
}) []token.Token {
	out := make([]token.Token, len(toks))
	for i, tk := range toks {
		out[i] = tk.tok
	}
	return out
}

func TestScanNumbersAndIdentifiers(t *testing.T) {
	got := scanAll(t, "sphere 3.14 x")
	want := []token.Token{token.IDENT, token.NUMBER, token.IDENT, token.NEWLINE, token.EOF}
	if gt := tokens(got); !tokenSlicesEqual(gt, want) {
		t.Errorf("tokens = %v, want %v", gt, want)
	}
}

func TestScanKeywords(t *testing.T) {
	got := scanAll(t, "for i in 1 to 3 step 1")
	want := []token.Token{
		token.FOR, token.IDENT, token.IN, token.NUMBER, token.TO, token.NUMBER,
		token.STEP, token.NUMBER, token.NEWLINE, token.EOF,
	}
	if gt := tokens(got); !tokenSlicesEqual(gt, want) {
		t.Errorf("tokens = %v, want %v", gt, want)
	}
}

func TestScanHexColor(t *testing.T) {
	got := scanAll(t, "#FF0000")
	if got[0].tok != token.HEXCOLOR || got[0].lit != "#FF0000" {
		t.Errorf("got %v %q, want HEXCOLOR #FF0000", got[0].tok, got[0].lit)
	}
}

func TestScanStringEscapes(t *testing.T) {
	// The scanner hands the parser the raw literal text, quotes and
	// backslash-escapes included; value.Unquote does the unescaping
	// (spec §4.1's escape set is interpreted downstream of the scanner).
	got := scanAll(t, `"a\nb"`)
	if got[0].tok != token.STRING {
		t.Fatalf("tok = %v, want STRING", got[0].tok)
	}
	if got[0].lit != `"a\nb"` {
		t.Errorf("lit = %q, want %q", got[0].lit, `"a\nb"`)
	}
}

func TestScanComment(t *testing.T) {
	got := scanAll(t, "sphere // a comment\ncube")
	want := []token.Token{token.IDENT, token.COMMENT, token.NEWLINE, token.IDENT, token.NEWLINE, token.EOF}
	if gt := tokens(got); !tokenSlicesEqual(gt, want) {
		t.Errorf("tokens = %v, want %v", gt, want)
	}
}

func TestScanOperators(t *testing.T) {
	// Operators never set the scanner's "insert a statement separator"
	// flag (unlike identifiers/literals/closing brackets), so a line
	// ending in an operator reaches EOF with no synthetic NEWLINE first.
	got := scanAll(t, "<= >= <> = < >")
	want := []token.Token{
		token.LEQ, token.GEQ, token.NEQ, token.EQL, token.LSS, token.GTR,
		token.EOF,
	}
	if gt := tokens(got); !tokenSlicesEqual(gt, want) {
		t.Errorf("tokens = %v, want %v", gt, want)
	}
}

func tokenSlicesEqual(a, b []token.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
