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

// Command shapescript is the reference CLI surface of spec §6: it parses
// and evaluates ShapeScript source, printing diagnostics in
// "path:line:column:" form and exiting with the documented usage/parse/
// file-not-found codes.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:]))
}
