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

package delegate

import (
	"testing"
	"testing/fstest"

	"shapescript.dev/shapescript/value"
)

func TestLocalResolveURLReadOnlySandbox(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/tex.png": {Data: []byte("x")},
		"secret/key.txt": {Data: []byte("x")},
	}
	d := NewLocal(fsys, SandboxPolicy{Kind: SandboxReadOnly, Root: "assets"})

	if _, err := d.ResolveURL("assets/tex.png", ""); err != nil {
		t.Errorf("ResolveURL(assets/tex.png) = %v, want nil", err)
	}
	if _, err := d.ResolveURL("secret/key.txt", ""); err == nil {
		t.Error("ResolveURL(secret/key.txt) should be restricted")
	}
}

func TestLocalResolveURLMissingFile(t *testing.T) {
	d := NewLocal(fstest.MapFS{}, SandboxPolicy{Kind: SandboxNone})
	if _, err := d.ResolveURL("nope.png", ""); err == nil {
		t.Error("expected a file-not-found error")
	}
}

func TestLocalImportCycleDetected(t *testing.T) {
	d := NewLocal(fstest.MapFS{"a.shape": {Data: []byte("cube")}}, SandboxPolicy{Kind: SandboxNone})
	inFlight := map[URL]bool{"a.shape": true}
	if _, err := d.ImportGeometry("a.shape", inFlight); err == nil {
		t.Error("expected an import-cycle error")
	}
}

func TestLocalDebugLogRecordsArguments(t *testing.T) {
	d := NewLocal(fstest.MapFS{}, SandboxPolicy{Kind: SandboxNone})
	d.DebugLog([]value.Value{value.NumberValue(1)})
	d.DebugLog([]value.Value{value.StringValue("hi")})
	if len(d.Log()) != 2 {
		t.Fatalf("Log() has %d entries, want 2", len(d.Log()))
	}
}

func TestPlaceholderMeshLibraryCubeBounds(t *testing.T) {
	lib := NewPlaceholderMeshLibrary()
	g := lib.Cube(value.Triple{X: 2, Y: 4, Z: 6})
	min, max := g.Bounds()
	if max[0]-min[0] != 2 || max[1]-min[1] != 4 || max[2]-min[2] != 6 {
		t.Errorf("cube bounds = %v..%v, want extents (2,4,6)", min, max)
	}
}

func TestPlaceholderMeshLibrarySVGPath(t *testing.T) {
	lib := NewPlaceholderMeshLibrary()
	p, err := lib.SVGPath(`M150 0 L75 200 225 200 Z`)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Points) != 4 {
		t.Errorf("got %d points, want 4 (spec §8 example)", len(p.Points))
	}
	if !p.Closed() {
		t.Error("path should be closed after 'Z'")
	}
}
