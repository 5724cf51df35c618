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
	"os"

	"github.com/spf13/cobra"
)

// Exit codes, spec §6 "CLI surface": 0 success, 64 usage, 65 parse/evaluate
// error, 66 file not found.
const (
	exitSuccess      = 0
	exitUsage        = 64
	exitEvalError    = 65
	exitFileNotFound = 66
)

// exitError lets a subcommand's RunE pick its own process exit code
// instead of cobra's blanket "1 on any error".
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shapescript",
		Short:         "Evaluate and export ShapeScript scenes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newReplCmd())
	return root
}

// run builds the root command, executes it against args, prints any
// resulting error, and returns the process exit code.
func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if e, ok := err.(*exitError); ok {
		ee = e
	}
	if ee != nil {
		fmt.Fprintln(os.Stderr, ee.Error())
		return ee.code
	}
	fmt.Fprintln(os.Stderr, err)
	return exitUsage
}
