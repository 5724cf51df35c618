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

package main

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"shapescript.dev/shapescript/errors"
)

// printDiagnostics renders errs to w in "path:line:column: message" form
// (spec §7), using pterm's colored Error/Warning prefixes to separate
// fatal diagnostics from unusedValue-style warnings and appending the
// "Did you mean" suggestion line where present.
func printDiagnostics(w io.Writer, errs errors.List) {
	for _, e := range errs {
		pos := e.Position().Position()
		loc := pos.String()
		line := fmt.Sprintf("%s: %s", loc, e.Error())
		if e.Severity() == errors.Warning {
			fmt.Fprintln(w, pterm.Warning.Sprint(line))
		} else {
			fmt.Fprintln(w, pterm.Error.Sprint(line))
		}
		if hint := e.Hint(); hint != "" {
			fmt.Fprintf(w, "    %s\n", hint)
		}
		if s := e.Suggestion(); s != "" {
			fmt.Fprintf(w, "    Did you mean '%s'?\n", s)
		}
	}
}

// exitCodeFor picks the process exit code a non-empty, fatal-containing
// errors.List should produce (spec §6): a FileNotFound/FileAccessRestricted
// diagnostic maps to exitFileNotFound, anything else fatal to
// exitEvalError.
func exitCodeFor(errs errors.List) int {
	code := exitSuccess
	for _, e := range errs {
		if e.Severity() != errors.Fatal {
			continue
		}
		switch e.Kind() {
		case errors.FileNotFound, errors.FileAccessRestricted:
			return exitFileNotFound
		default:
			code = exitEvalError
		}
	}
	return code
}

// hasFatal reports whether errs contains at least one Fatal-severity entry.
func hasFatal(errs errors.List) bool {
	for _, e := range errs {
		if e.Severity() == errors.Fatal {
			return true
		}
	}
	return false
}
