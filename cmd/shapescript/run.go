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

	"github.com/spf13/cobra"

	"shapescript.dev/shapescript/delegate"
)

func newRunCmd() *cobra.Command {
	var (
		seed        float64
		sandboxRoot string
		readOnly    bool
	)

	cmd := &cobra.Command{
		Use:   "eval <file.shape>",
		Short: "Evaluate a ShapeScript file and report its geometry summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sandbox := delegate.SandboxPolicy{Kind: delegate.SandboxNone}
			if readOnly {
				sandbox = delegate.SandboxPolicy{Kind: delegate.SandboxReadOnly, Root: sandboxRoot}
			}

			g, d, errs := evaluateFile(args[0], seed, sandbox)
			printDiagnostics(cmd.ErrOrStderr(), errs)
			if hasFatal(errs) {
				return &exitError{code: exitCodeFor(errs), err: fmt.Errorf("evaluation failed")}
			}

			for _, entry := range d.Log() {
				fmt.Fprintln(cmd.OutOrStdout(), joinPrintValues(entry))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scene: %d top-level node(s)\n", len(g.Children))
			return nil
		},
	}

	cmd.Flags().Float64Var(&seed, "seed", 0, "initial RNG seed for the root context")
	cmd.Flags().BoolVar(&readOnly, "sandbox", false, "restrict texture/import/font resolution to --sandbox-root")
	cmd.Flags().StringVar(&sandboxRoot, "sandbox-root", ".", "root directory for --sandbox")
	return cmd
}
