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
	"io/fs"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"shapescript.dev/shapescript/delegate"
	serrors "shapescript.dev/shapescript/errors"
	"shapescript.dev/shapescript/internal/core/eval"
	"shapescript.dev/shapescript/parser"
	"shapescript.dev/shapescript/scene"
	"shapescript.dev/shapescript/token"
)

// newReplCmd builds the `repl` subcommand (SPEC_FULL.md §4): an
// interactive read-eval-print loop sharing one accumulated program across
// lines, using chzyer/readline for input and the same diagnostic renderer
// as `run`/`export`.
//
// Simplification: rather than threading a persistent *context.Context
// across readline iterations, each accepted line is appended to a growing
// source buffer that is re-parsed and re-evaluated from scratch. This
// reproduces the spec §4.5 "one root EvaluationContext" contract's
// observable behavior (prior definitions, material, and RNG state all
// carry forward) without widening internal/core/eval's public surface for
// incremental evaluation.
func newReplCmd() *cobra.Command {
	var seed float64

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive ShapeScript read-eval-print loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, seed)
		},
	}
	cmd.Flags().Float64Var(&seed, "seed", 0, "initial RNG seed for the root context")
	return cmd
}

func runRepl(cmd *cobra.Command, seed float64) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "shapescript> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintln(cmd.OutOrStdout(), pterm.Info.Sprint("ShapeScript REPL — Ctrl-D to exit"))

	d := delegate.NewLocal(emptyFS{}, delegate.SandboxPolicy{Kind: delegate.SandboxNone})
	d.Parse = func(url delegate.URL, src []byte) (*scene.Geometry, error) {
		return nil, &delegate.ErrFileNotFound{Name: string(url)}
	}
	var source strings.Builder

	// Each accepted line re-evaluates the whole accumulated program, so a
	// re-run replays every earlier print into the shared delegate log.
	// lastEvalPrints is how many entries the previous successful run
	// produced; the replayed prefix of the current run's entries is
	// skipped so each print is shown once.
	var lastEvalPrints int

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		candidate := source.String() + line + "\n"
		prog, perr := parser.ParseFile("<repl>", candidate)
		if perr != nil {
			printDiagnostics(cmd.ErrOrStderr(), toErrList(perr))
			continue
		}

		before := len(d.Log())
		g, errs := eval.Eval(prog, seed, d, d.Mesh)
		if hasFatal(errs) {
			printDiagnostics(cmd.ErrOrStderr(), errs)
			continue
		}
		printDiagnostics(cmd.OutOrStdout(), errs) // surface warnings only
		source.WriteString(line)
		source.WriteString("\n")

		entries := d.Log()[before:]
		skip := lastEvalPrints
		if skip > len(entries) {
			skip = len(entries)
		}
		for _, entry := range entries[skip:] {
			fmt.Fprintln(cmd.OutOrStdout(), joinPrintValues(entry))
		}
		lastEvalPrints = len(entries)
		if len(g.Children) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "=> %d top-level node(s)\n", len(g.Children))
		}
	}
}

// toErrList normalizes a parser error (always an errors.List in practice)
// into one for printDiagnostics.
func toErrList(err error) serrors.List {
	if list, ok := err.(serrors.List); ok {
		return list
	}
	var l serrors.List
	l.AddNewf(token.NoPos, serrors.Other, "%s", err.Error())
	return l
}

// emptyFS is a zero-file fs.FS for the REPL delegate, which has no entry
// file to resolve relative imports/textures against.
type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) { return nil, fs.ErrNotExist }
