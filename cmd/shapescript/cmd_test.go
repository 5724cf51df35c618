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
	"bytes"
	"strings"
	"testing"
)

func execute(args ...string) (stdout, stderr string, err error) {
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestEvalCommandReportsSceneSummary(t *testing.T) {
	out, errOut, err := execute("eval", "testdata/sphere.shape")
	if err != nil {
		t.Fatalf("eval returned %v, stderr=%q", err, errOut)
	}
	if !strings.Contains(out, "1 top-level node") {
		t.Errorf("eval output = %q, want a one-node scene summary", out)
	}
}

func TestEvalCommandMissingFileExitsFileNotFound(t *testing.T) {
	_, _, err := execute("eval", "testdata/does-not-exist.shape")
	if err == nil {
		t.Fatal("eval of a missing file should fail")
	}
	ee, ok := err.(*exitError)
	if !ok {
		t.Fatalf("error = %T, want *exitError", err)
	}
	if ee.code != exitFileNotFound {
		t.Errorf("exit code = %d, want %d", ee.code, exitFileNotFound)
	}
}

func TestExportCommandEmitsYAML(t *testing.T) {
	out, errOut, err := execute("export", "testdata/sphere.shape")
	if err != nil {
		t.Fatalf("export returned %v, stderr=%q", err, errOut)
	}
	if !strings.Contains(out, "type: sphere") {
		t.Errorf("export output = %q, want a sphere node", out)
	}
}

func TestExportCommandUnknownFormat(t *testing.T) {
	_, _, err := execute("export", "--format", "toml", "testdata/sphere.shape")
	if err == nil {
		t.Fatal("export with an unsupported format should fail")
	}
	ee, ok := err.(*exitError)
	if !ok || ee.code != exitUsage {
		t.Errorf("error = %v, want an exitUsage *exitError", err)
	}
}
