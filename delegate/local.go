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
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"shapescript.dev/shapescript/scene"
	"shapescript.dev/shapescript/value"
)

// SandboxKind selects how Local.ResolveURL restricts filesystem access
// (spec §1 "under a sandbox-permission policy", whose shape spec.md
// leaves to the implementation — see SPEC_FULL.md §4).
type SandboxKind int

const (
	// SandboxNone allows any path the host fs.FS exposes.
	SandboxNone SandboxKind = iota
	// SandboxReadOnly restricts resolution to paths under Root.
	SandboxReadOnly
	// SandboxDeny rejects every ResolveURL call.
	SandboxDeny
)

// SandboxPolicy configures Local's filesystem access.
type SandboxPolicy struct {
	Kind SandboxKind
	Root string // only consulted when Kind == SandboxReadOnly
}

// Local is a reference EvaluationDelegate backed by an fs.FS, a font name
// allowlist, and an in-memory log sink. It satisfies spec §6's contract
// well enough to run the evaluator end-to-end in tests and the CLI
// without a real renderer.
type Local struct {
	FS      fs.FS
	Sandbox SandboxPolicy
	Fonts   map[string]string // font name -> host font ID
	Mesh    MeshLibrary
	Parse   func(url URL, src []byte) (*scene.Geometry, error) // re-entrant ShapeScript parse+eval

	mu        sync.Mutex
	log       [][]value.Value
	cancelled bool
}

// NewLocal creates a Local delegate with the placeholder MeshLibrary.
func NewLocal(filesystem fs.FS, sandbox SandboxPolicy) *Local {
	return &Local{FS: filesystem, Sandbox: sandbox, Fonts: map[string]string{}, Mesh: NewPlaceholderMeshLibrary()}
}

func (d *Local) allowed(name string) bool {
	switch d.Sandbox.Kind {
	case SandboxDeny:
		return false
	case SandboxReadOnly:
		clean := path.Clean(name)
		return clean == d.Sandbox.Root || strings.HasPrefix(clean, d.Sandbox.Root+"/")
	default:
		return true
	}
}

// ResolveURL implements EvaluationDelegate.
func (d *Local) ResolveURL(name string, from URL) (URL, error) {
	resolved := name
	if from != "" && !path.IsAbs(name) {
		resolved = path.Join(path.Dir(string(from)), name)
	}
	resolved = path.Clean(resolved)
	if !d.allowed(resolved) {
		return "", &ErrFileAccessRestricted{Name: name}
	}
	if _, err := fs.Stat(d.FS, strings.TrimPrefix(resolved, "/")); err != nil {
		return "", &ErrFileNotFound{Name: name}
	}
	return URL(resolved), nil
}

// ImportGeometry implements EvaluationDelegate. It delegates re-entrant
// parsing to d.Parse, which the CLI wires to a fresh sub-evaluator over
// the same delegate (spec §6: "may itself be another ShapeScript file,
// recursively evaluated via a sub-evaluator").
func (d *Local) ImportGeometry(url URL, inFlight map[URL]bool) (*scene.Geometry, error) {
	if inFlight[url] {
		return nil, &ErrImportCycle{URL: url}
	}
	data, err := fs.ReadFile(d.FS, strings.TrimPrefix(string(url), "/"))
	if err != nil {
		return nil, &ErrFileNotFound{Name: string(url)}
	}
	if d.Parse == nil {
		return nil, fmt.Errorf("delegate has no Parse function configured for %q", url)
	}
	return d.Parse(url, data)
}

// DebugLog implements EvaluationDelegate by appending to an in-memory log,
// retrievable via Log() for tests and the CLI's non-interactive mode.
func (d *Local) DebugLog(values []value.Value) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.log = append(d.log, values)
}

// Log returns every argument list passed to DebugLog, in call order.
func (d *Local) Log() [][]value.Value {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]value.Value, len(d.log))
	copy(out, d.log)
	return out
}

// Cancel requests cooperative cancellation of any evaluation using this
// delegate; the evaluator observes it at its next statement boundary.
func (d *Local) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelled = true
}

// Cancelled implements Canceller.
func (d *Local) Cancelled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelled
}

// ResolveFont implements EvaluationDelegate against the Fonts allowlist.
func (d *Local) ResolveFont(name string) (string, error) {
	if id, ok := d.Fonts[name]; ok {
		return id, nil
	}
	return "", &ErrUnknownFont{Name: name}
}
