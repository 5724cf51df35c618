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

// Package scanner implements the ShapeScript lexer. It turns UTF-8 source
// text into a stream of tokens, each carrying a half-open byte range
// (spec §4.1).
package scanner

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"shapescript.dev/shapescript/errors"
	"shapescript.dev/shapescript/token"
)

// A Scanner holds the lexer's state while it tokenizes one file. It must be
// initialized with Init before use.
type Scanner struct {
	file *token.File
	src  []byte
	err  errors.Handler

	ch       rune
	offset   int
	rdOffset int

	linesSinceLast  int
	spacesSinceLast int
	insertNewline   bool // insert a NEWLINE before the next '\n'

	ErrorCount int
}

const eof = -1

// Init prepares s to scan src, whose size must equal file.Size().
func (s *Scanner) Init(file *token.File, src []byte, err errors.Handler) {
	if file.Size() != len(src) {
		panic(fmt.Sprintf("file size (%d) does not match src len (%d)", file.Size(), len(src)))
	}
	s.file = file
	s.src = src
	s.err = err

	s.ch = ' '
	s.offset = 0
	s.rdOffset = 0
	s.insertNewline = false
	s.ErrorCount = 0

	s.next()
	if s.ch == 0xFEFF {
		s.next() // ignore BOM at file start
	}
}

func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		r, w := rune(s.src[s.rdOffset]), 1
		switch {
		case r == 0:
			s.error(s.offset, "illegal character NUL")
		case r >= utf8.RuneSelf:
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
			if r == utf8.RuneError && w == 1 {
				s.error(s.offset, "illegal UTF-8 encoding")
			}
		}
		s.rdOffset += w
		s.ch = r
	} else {
		s.offset = len(s.src)
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		s.ch = eof
	}
}

func (s *Scanner) error(offs int, msg string) {
	if s.err != nil {
		s.err(s.file.Position(s.file.Pos(offs, token.NoRelPos)), msg)
	}
	s.ErrorCount++
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch >= utf8.RuneSelf && unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9' || ch >= utf8.RuneSelf && unicode.IsDigit(ch)
}

func isHexDigit(ch rune) bool {
	return '0' <= ch && ch <= '9' || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func (s *Scanner) scanIdentifier() string {
	offs := s.offset
	for isLetter(s.ch) || isDigit(s.ch) {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

func (s *Scanner) scanNumber() string {
	offs := s.offset
	for isDigit(s.ch) {
		s.next()
	}
	if s.ch == '.' {
		// Don't consume '..' (not part of this grammar, but avoids
		// swallowing a following member-access dot run) — a single '.'
		// followed by a digit is a fraction.
		if p := s.offset + 1; p < len(s.src) && isDigit(rune(s.src[p])) {
			s.next()
			for isDigit(s.ch) {
				s.next()
			}
		}
	}
	return string(s.src[offs:s.offset])
}

// scanEscape consumes a backslash escape sequence. The backslash itself has
// already been consumed; s.ch is the character following it. Returns false
// (and emits an error) for anything outside spec §4.1's escape set. A '('
// introduces a string interpolation and is reported to the caller via the
// interpolation flag rather than consumed here.
func (s *Scanner) scanEscape() (ok, interpolation bool) {
	switch s.ch {
	case '(':
		return true, true
	case 'n', 't', '"', '\\':
		s.next()
		return true, false
	default:
		s.error(s.offset, fmt.Sprintf("unknown escape sequence '\\%c'", s.ch))
		return false, false
	}
}

// scanString scans the body of a double-quoted string starting at the
// opening quote (already consumed; s.offset points at the first byte of
// the body), stopping either at the closing quote or at a \( that begins
// an interpolation.
func (s *Scanner) scanString() (lit string, terminatedByInterpolation bool) {
	return s.scanStringBody(s.offset - 1)
}

// scanStringBody does the work of scanString, and of ResumeInterpolation,
// which has no opening quote to anchor offs to.
func (s *Scanner) scanStringBody(offs int) (lit string, terminatedByInterpolation bool) {
	for {
		ch := s.ch
		if ch == '\n' || ch < 0 {
			s.error(offs, "string literal not terminated")
			break
		}
		s.next()
		if ch == '"' {
			break
		}
		if ch == '\\' {
			ok, interp := s.scanEscape()
			if interp {
				return string(s.src[offs:s.offset]), true
			}
			if !ok {
				break
			}
		}
	}
	return string(s.src[offs:s.offset]), false
}

// ResumeInterpolation is called by the parser immediately after it has
// parsed the `\(expr)` payload; the scanner is already positioned right
// after the interpolation's closing ')' (the parser never advances past
// that ')' itself — see parser.parseStringExpr). It resumes scanning the
// remainder of the string literal, stopping at the next interpolation
// boundary or the closing quote.
func (s *Scanner) ResumeInterpolation() (lit string, more bool) {
	return s.scanStringBody(s.offset)
}

// Pos reports the Pos the scanner is currently positioned at (the start of
// the next rune it would read). The parser uses it to mark the start of a
// string fragment resumed via ResumeInterpolation.
func (s *Scanner) Pos() token.Pos {
	return s.file.Pos(s.offset, token.NoRelPos)
}

func (s *Scanner) scanHexColor() string {
	offs := s.offset - 1 // the '#'
	for isHexDigit(s.ch) {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

func (s *Scanner) skipWhitespace() {
	for {
		switch s.ch {
		case ' ', '\t', '\r':
			s.spacesSinceLast++
		case '\n':
			s.linesSinceLast++
			if s.insertNewline {
				return
			}
		default:
			return
		}
		s.next()
	}
}

func (s *Scanner) switch2(tok0, tok1 token.Token) token.Token {
	if s.ch == '=' {
		s.next()
		return tok1
	}
	return tok0
}

// Scan returns the next token: its position, kind, and literal text (only
// populated for literals, keywords, and NEWLINE, where it is "\n" if the
// separator was inferred rather than written).
func (s *Scanner) Scan() (pos token.Pos, tok token.Token, lit string) {
	s.skipWhitespace()

	var rel token.RelPos
	switch {
	case s.linesSinceLast > 1:
		rel = token.NewSection
	case s.linesSinceLast == 1:
		rel = token.Newline
	case s.spacesSinceLast > 0:
		rel = token.Blank
	default:
		rel = token.NoSpace
	}
	offset := s.offset
	pos = s.file.Pos(offset, rel)

	insertNewline := false
	switch ch := s.ch; {
	case isLetter(ch):
		lit = s.scanIdentifier()
		tok = token.Lookup(lit)
		insertNewline = true
	case isDigit(ch):
		tok, lit = token.NUMBER, s.scanNumber()
		insertNewline = true
	default:
		s.next()
		switch ch {
		case eof:
			if s.insertNewline {
				s.insertNewline = false
				return s.file.Pos(offset, token.RelElided), token.NEWLINE, "\n"
			}
			tok = token.EOF
		case '\n':
			s.insertNewline = false
			return s.file.Pos(offset, token.RelElided), token.NEWLINE, "\n"
		case '"':
			insertNewline = true
			var interp bool
			tok = token.STRING
			lit, interp = s.scanString()
			if interp {
				tok = token.STRING
				// The parser recognizes an interpolation by the trailing
				// unescaped '\(' in lit and calls back into the scanner.
			}
		case '#':
			if isHexDigit(s.ch) {
				insertNewline = true
				tok, lit = token.HEXCOLOR, s.scanHexColor()
			} else {
				s.error(offset, "illegal character '#'")
				tok = token.ILLEGAL
			}
		case '.':
			tok = token.PERIOD
		case '(':
			tok = token.LPAREN
		case ')':
			insertNewline = true
			tok = token.RPAREN
		case '{':
			tok = token.LBRACE
		case '}':
			insertNewline = true
			tok = token.RBRACE
		case '+':
			tok = token.ADD
		case '-':
			tok = token.SUB
		case '*':
			tok = token.MUL
		case '/':
			if s.ch == '/' {
				s.next() // consume the second '/'
				commentOffs := s.offset
				for s.ch != '\n' && s.ch != eof {
					s.next()
				}
				tok = token.COMMENT
				lit = strings.TrimPrefix(string(s.src[commentOffs:s.offset]), " ")
				insertNewline = s.insertNewline
				break
			}
			tok = token.QUO
		case '%':
			tok = token.REM
		case '<':
			if s.ch == '>' {
				s.next()
				tok = token.NEQ
			} else {
				tok = s.switch2(token.LSS, token.LEQ)
			}
		case '>':
			tok = s.switch2(token.GTR, token.GEQ)
		case '=':
			tok = token.EQL
		default:
			s.error(offset, fmt.Sprintf("illegal character %#U", ch))
			// End the line after it, so the parser resumes at the next line.
			insertNewline = true
			tok = token.ILLEGAL
			lit = string(ch)
		}
	}
	s.insertNewline = insertNewline
	s.linesSinceLast = 0
	s.spacesSinceLast = 0
	return pos, tok, lit
}
