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

// Package errors defines the diagnostic model shared by the scanner,
// parser, and evaluator (spec §4.7 & §7): one Error type, carrying a
// source range, a one-line message, an optional multi-sentence hint, and
// an optional "Did you mean" suggestion.
package errors

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"shapescript.dev/shapescript/token"
)

// Handler is called by the scanner and parser to report a diagnostic as
// soon as it is found, so that recovery can continue past it.
type Handler func(pos token.Position, msg string)

// Severity classifies an Error for hosts that want to distinguish fatal
// problems from advisory ones (spec §7: "Warnings ... are classified
// separately by the host").
type Severity int

const (
	Fatal Severity = iota
	Warning
)

// Kind enumerates the diagnostic taxonomy of spec §7.
type Kind int

const (
	Other Kind = iota
	UnexpectedToken
	UnmatchedBrace
	UnknownOperator
	DuplicateParameter
	UnknownSymbol
	UnknownMember
	MissingArgument
	UnexpectedArgument
	TypeMismatch
	AssertionFailure
	FileNotFound
	FileAccessRestricted
	UnknownFont
	UnusedValue
	ForwardReference
	TooMuchRecursion
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpectedToken"
	case UnmatchedBrace:
		return "unmatchedBrace"
	case UnknownOperator:
		return "unknownOperator"
	case DuplicateParameter:
		return "duplicateParameter"
	case UnknownSymbol:
		return "unknownSymbol"
	case UnknownMember:
		return "unknownMember"
	case MissingArgument:
		return "missingArgument"
	case UnexpectedArgument:
		return "unexpectedArgument"
	case TypeMismatch:
		return "typeMismatch"
	case AssertionFailure:
		return "assertionFailure"
	case FileNotFound:
		return "fileNotFound"
	case FileAccessRestricted:
		return "fileAccessRestricted"
	case UnknownFont:
		return "unknownFont"
	case UnusedValue:
		return "unusedValue"
	case ForwardReference:
		return "forwardReference"
	case TooMuchRecursion:
		return "tooMuchRecursion"
	case Cancelled:
		return "cancelled"
	default:
		return "error"
	}
}

// Error is the common diagnostic type produced anywhere in the pipeline.
type Error interface {
	error
	// Position returns the primary source range of the error.
	Position() token.Pos
	// End returns the end of the offending range, or a NoPos if unknown
	// (in which case renderers should treat the range as a single point).
	End() token.Pos
	Kind() Kind
	// Hint is an optional multi-sentence elaboration.
	Hint() string
	// Suggestion is an optional "Did you mean" name.
	Suggestion() string
	Severity() Severity
}

var _ Error = (*posError)(nil)

type posError struct {
	pos, end   token.Pos
	kind       Kind
	msg        string
	hint       string
	suggestion string
	severity   Severity
}

func (e *posError) Error() string       { return e.msg }
func (e *posError) Position() token.Pos { return e.pos }
func (e *posError) End() token.Pos      { return e.end }
func (e *posError) Kind() Kind          { return e.kind }
func (e *posError) Hint() string        { return e.hint }
func (e *posError) Suggestion() string  { return e.suggestion }
func (e *posError) Severity() Severity  { return e.severity }

// Option configures an Error built with Newf.
type Option func(*posError)

// End sets the end of the offending source range.
func End(p token.Pos) Option { return func(e *posError) { e.end = p } }

// WithHint attaches a multi-sentence elaboration.
func WithHint(hint string) Option { return func(e *posError) { e.hint = hint } }

// WithSuggestion attaches a "Did you mean '<name>'?" candidate.
func WithSuggestion(name string) Option {
	return func(e *posError) { e.suggestion = name }
}

// AsWarning marks the error as advisory rather than fatal.
func AsWarning() Option { return func(e *posError) { e.severity = Warning } }

// Newf creates an Error of the given kind at pos with a formatted message.
func Newf(pos token.Pos, kind Kind, format string, args ...interface{}) Error {
	e := &posError{pos: pos, end: pos, kind: kind, msg: fmt.Sprintf(format, args...)}
	return e
}

// NewfOpt is like Newf but accepts Options.
func NewfOpt(pos token.Pos, kind Kind, format string, args []interface{}, opts ...Option) Error {
	e := &posError{pos: pos, end: pos, kind: kind, msg: fmt.Sprintf(format, args...)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// List is an aggregate of Errors encountered during one parse or
// evaluation. The zero value is an empty, ready-to-use List.
type List []Error

func (p *List) Add(err Error) {
	if err == nil {
		return
	}
	*p = append(*p, err)
}

// AddNewf is a convenience wrapper around Add(Newf(...)).
func (p *List) AddNewf(pos token.Pos, kind Kind, format string, args ...interface{}) {
	p.Add(Newf(pos, kind, format, args...))
}

func (p List) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", p[0].Error(), len(p)-1)
	}
}

// Err returns an error equivalent to the list, or nil if it is empty.
func (p List) Err() error {
	if len(p) == 0 {
		return nil
	}
	return p
}

// Sort orders the list by source position, then message.
func (p List) Sort() {
	sort.SliceStable(p, func(i, j int) bool {
		if c := p[i].Position().Compare(p[j].Position()); c != 0 {
			return c < 0
		}
		return p[i].Error() < p[j].Error()
	})
}

// RemoveMultiples sorts the list and drops duplicate (position, message)
// pairs, keeping the first occurrence.
func (p *List) RemoveMultiples() {
	p.Sort()
	out := (*p)[:0]
	var lastPos token.Pos
	var lastMsg string
	first := true
	for _, e := range *p {
		if !first && e.Position() == lastPos && e.Error() == lastMsg {
			continue
		}
		out = append(out, e)
		lastPos, lastMsg, first = e.Position(), e.Error(), false
	}
	*p = out
}

// Config controls how Print renders a List.
type Config struct {
	Cwd string // unused placeholder for future relative-path rendering
}

// Print writes one diagnostic per error to w, in the style
// "path:line:column: message", followed by an indented hint line and a
// "Did you mean '<name>'?" line where present (spec §7).
func Print(w io.Writer, errs List, cfg *Config) {
	for _, e := range errs {
		printOne(w, e)
	}
}

func printOne(w io.Writer, e Error) {
	pos := e.Position().Position()
	if pos.IsValid() {
		fmt.Fprintf(w, "%s: %s\n", pos.String(), e.Error())
	} else {
		fmt.Fprintf(w, "%s\n", e.Error())
	}
	if hint := e.Hint(); hint != "" {
		for _, line := range strings.Split(hint, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
	if s := e.Suggestion(); s != "" {
		fmt.Fprintf(w, "    Did you mean '%s'?\n", s)
	}
}

// Details renders errs the way Print does and returns it as a string.
func Details(errs List) string {
	var b strings.Builder
	Print(&b, errs, nil)
	return b.String()
}
