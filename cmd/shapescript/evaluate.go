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
	"os"
	"path/filepath"

	"shapescript.dev/shapescript/delegate"
	"shapescript.dev/shapescript/errors"
	"shapescript.dev/shapescript/internal/core/eval"
	"shapescript.dev/shapescript/parser"
	"shapescript.dev/shapescript/scene"
	"shapescript.dev/shapescript/token"
)

// newFileDelegate builds a reference delegate rooted at the directory
// containing the entry file, so `texture`/`import`/font lookups resolve
// relative to the script rather than the process's working directory
// (spec §6 "resolveURL ... map a source-relative filename"). sandbox
// selects the SPEC_FULL.md §4 sandbox permission policy.
func newFileDelegate(entry string, sandbox delegate.SandboxPolicy) *delegate.Local {
	root := filepath.Dir(entry)
	d := delegate.NewLocal(os.DirFS(root), sandbox)
	d.Parse = func(url delegate.URL, src []byte) (*scene.Geometry, error) {
		prog, err := parser.ParseFile(string(url), src)
		if err != nil {
			return nil, err
		}
		g, errs := eval.Eval(prog, 0, d, d.Mesh)
		if hasFatal(errs) {
			return nil, errs.Err()
		}
		return g, nil
	}
	return d
}

// evaluateFile parses and evaluates the ShapeScript source at path,
// returning the resulting scene and any diagnostics collected (spec §7).
// A parse failure is folded into the same errors.List so callers have one
// place to render and classify diagnostics.
func evaluateFile(path string, seed float64, sandbox delegate.SandboxPolicy) (*scene.Geometry, *delegate.Local, errors.List) {
	var errs errors.List

	data, err := os.ReadFile(path)
	if err != nil {
		errs.AddNewf(token.NoPos, errors.FileNotFound, "%s: %s", path, err.Error())
		return nil, nil, errs
	}

	d := newFileDelegate(path, sandbox)

	prog, perr := parser.ParseFile(path, data)
	if perr != nil {
		if list, ok := perr.(errors.List); ok {
			errs = append(errs, list...)
		} else {
			errs.AddNewf(token.NoPos, errors.Other, "%s", perr.Error())
		}
		return nil, d, errs
	}

	g, evalErrs := eval.Eval(prog, seed, d, d.Mesh)
	errs = append(errs, evalErrs...)
	return g, d, errs
}
