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

package errors_test

import (
	"strings"
	"testing"

	"shapescript.dev/shapescript/errors"
	"shapescript.dev/shapescript/token"
)

func posAt(file *token.File, offset int) token.Pos {
	return file.Pos(offset, token.NoRelPos)
}

func TestNewfSeverityDefaultsToFatal(t *testing.T) {
	e := errors.Newf(token.NoPos, errors.UnknownSymbol, "unknown symbol %q", "foo")
	if e.Severity() != errors.Fatal {
		t.Errorf("severity = %v, want Fatal", e.Severity())
	}
	if e.Kind() != errors.UnknownSymbol {
		t.Errorf("kind = %v, want UnknownSymbol", e.Kind())
	}
	if e.Error() != `unknown symbol "foo"` {
		t.Errorf("message = %q", e.Error())
	}
}

func TestNewfOptAsWarningAndSuggestion(t *testing.T) {
	e := errors.NewfOpt(token.NoPos, errors.UnusedValue, "unused value", nil,
		errors.AsWarning(), errors.WithSuggestion("sphere"), errors.WithHint("results are discarded"))
	if e.Severity() != errors.Warning {
		t.Errorf("severity = %v, want Warning", e.Severity())
	}
	if e.Suggestion() != "sphere" {
		t.Errorf("suggestion = %q, want sphere", e.Suggestion())
	}
	if e.Hint() != "results are discarded" {
		t.Errorf("hint = %q", e.Hint())
	}
}

func TestListErrReturnsNilWhenEmpty(t *testing.T) {
	var l errors.List
	if l.Err() != nil {
		t.Errorf("Err() = %v, want nil for empty list", l.Err())
	}
	l.AddNewf(token.NoPos, errors.Other, "boom")
	if l.Err() == nil {
		t.Error("Err() = nil, want non-nil once the list has an entry")
	}
}

func TestListErrorSummarizesCount(t *testing.T) {
	var l errors.List
	l.AddNewf(token.NoPos, errors.Other, "first")
	l.AddNewf(token.NoPos, errors.Other, "second")
	l.AddNewf(token.NoPos, errors.Other, "third")
	got := l.Error()
	want := "first (and 2 more errors)"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestListSortOrdersByPosition(t *testing.T) {
	f := token.NewFile("<test>", 100)
	f.AddLine(10)
	f.AddLine(30)

	var l errors.List
	l.AddNewf(posAt(f, 40), errors.Other, "third")
	l.AddNewf(posAt(f, 5), errors.Other, "first")
	l.AddNewf(posAt(f, 15), errors.Other, "second")
	l.Sort()

	want := []string{"first", "second", "third"}
	for i, w := range want {
		if got := l[i].Error(); got != w {
			t.Errorf("l[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestListRemoveMultiplesDropsExactDuplicates(t *testing.T) {
	f := token.NewFile("<test>", 100)
	var l errors.List
	l.AddNewf(posAt(f, 5), errors.TypeMismatch, "type mismatch")
	l.AddNewf(posAt(f, 5), errors.TypeMismatch, "type mismatch")
	l.AddNewf(posAt(f, 5), errors.UnknownSymbol, "a different message")
	l.RemoveMultiples()
	if len(l) != 2 {
		t.Fatalf("len = %d, want 2 after dedup: %v", len(l), l)
	}
}

func TestDetailsRendersPositionAndHintAndSuggestion(t *testing.T) {
	f := token.NewFile("example.shape", 100)
	f.AddLine(10)
	e := errors.NewfOpt(posAt(f, 3), errors.UnknownSymbol, "unknown symbol %q", []interface{}{"sphre"},
		errors.WithHint("did you forget to define it?"),
		errors.WithSuggestion("sphere"))
	var l errors.List
	l.Add(e)

	out := errors.Details(l)
	if !strings.Contains(out, "example.shape:1:4:") {
		t.Errorf("output missing position prefix: %q", out)
	}
	if !strings.Contains(out, `unknown symbol "sphre"`) {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "did you forget to define it?") {
		t.Errorf("output missing hint: %q", out)
	}
	if !strings.Contains(out, "Did you mean 'sphere'?") {
		t.Errorf("output missing suggestion: %q", out)
	}
}

func TestDetailsOmitsPositionForNoPos(t *testing.T) {
	var l errors.List
	l.AddNewf(token.NoPos, errors.Other, "top-level failure")
	out := errors.Details(l)
	if strings.Contains(out, ":") {
		t.Errorf("expected no position prefix for NoPos, got %q", out)
	}
	if !strings.Contains(out, "top-level failure") {
		t.Errorf("output missing message: %q", out)
	}
}

func TestKindStringNames(t *testing.T) {
	cases := map[errors.Kind]string{
		errors.TypeMismatch: "typeMismatch",
		errors.FileNotFound: "fileNotFound",
		errors.Cancelled:    "cancelled",
		errors.Kind(-1):     "error",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", int(k), got, want)
		}
	}
}
