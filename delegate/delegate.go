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

// Package delegate declares the narrow EvaluationDelegate and MeshLibrary
// contracts the evaluator uses to reach the host's filesystem, font
// registry, mesh/path library, and log sink (spec §6), plus a reference
// in-memory implementation so the module runs end-to-end without a real
// renderer (spec.md §1's "out of scope ... named only by their interface"
// collaborators).
package delegate

import (
	"shapescript.dev/shapescript/scene"
	"shapescript.dev/shapescript/value"
)

// URL is a resolved, host-canonical reference to a file — a texture
// image, an imported ShapeScript/native file, or a font.
type URL string

// EvaluationDelegate is the single polymorphic seam between the evaluator
// and the host's filesystem, font registry, and log sink (spec §6). An
// evaluation is given exactly one delegate, shared by every nested
// import's sub-evaluator.
type EvaluationDelegate interface {
	// ResolveURL maps a source-relative filename to a canonical location.
	// The second argument is the URL of the file the request originates
	// from (for relative resolution); it is URL("") for the program's own
	// entry file.
	ResolveURL(name string, from URL) (URL, error)

	// ImportGeometry parses an imported file and returns a geometry value,
	// or nil for a non-geometry import (e.g. a data file consumed only for
	// its side effects). inFlight is the set of URLs already being
	// imported on the current call stack, for cycle detection (spec §6
	// "cycles between files must be rejected").
	ImportGeometry(url URL, inFlight map[URL]bool) (*scene.Geometry, error)

	// DebugLog sinks the arguments of a `print` or `debug` command.
	DebugLog(values []value.Value)

	// ResolveFont validates a font name and returns a host font ID.
	// Delegates that don't support fonts may return ErrUnknownFont
	// unconditionally.
	ResolveFont(name string) (fontID string, err error)
}

// Canceller is an optional interface an EvaluationDelegate may implement
// to request cooperative cancellation. The evaluator polls it at
// statement boundaries (which includes every loop iteration) and stops
// with a Cancelled diagnostic when it reports true (spec §5).
type Canceller interface {
	Cancelled() bool
}

// MeshLibrary is the evaluator's contract with the host mesh/path library
// (spec §6): high-level geometry constructors plus mesh/path
// introspection. The reference implementation in this package produces
// placeholder but dimensionally-correct geometry.
type MeshLibrary interface {
	Cube(size value.Triple) *scene.Geometry
	Sphere(segments int) *scene.Geometry
	Cylinder(segments int) *scene.Geometry
	Cone(segments int) *scene.Geometry
	Circle(segments int) *scene.Path
	Square() *scene.Path
	RoundRect(radius float64, segments int) *scene.Path
	Polygon(sides int) *scene.Path
	Arc(angle float64, radius float64, segments int) *scene.Path
	SVGPath(d string) (*scene.Path, error)
	Text(text, fontID string) (*scene.Path, error)

	Extrude(paths []*scene.Path, along *scene.Path) *scene.Geometry
	Lathe(paths []*scene.Path, segments int) *scene.Geometry
	Loft(paths []*scene.Path) *scene.Geometry
	Fill(paths []*scene.Path) *scene.Geometry
	Hull(children []*scene.Geometry) *scene.Geometry

	// Triangulate returns the polygon decomposition of g, for hosts that
	// need it ahead of export (spec §6 "triangulate").
	Triangulate(g *scene.Geometry) []*scene.Polygon
}

// ErrUnknownFont is returned by ResolveFont when name is not registered.
type ErrUnknownFont struct{ Name string }

func (e *ErrUnknownFont) Error() string { return "unknown font: " + e.Name }

// ErrFileNotFound is returned by ResolveURL/ImportGeometry when the
// target does not exist under the delegate's sandbox.
type ErrFileNotFound struct{ Name string }

func (e *ErrFileNotFound) Error() string { return "file not found: " + e.Name }

// ErrFileAccessRestricted is returned when a resolved URL falls outside
// the delegate's SandboxPolicy.
type ErrFileAccessRestricted struct{ Name string }

func (e *ErrFileAccessRestricted) Error() string { return "file access restricted: " + e.Name }

// ErrImportCycle is returned by ImportGeometry when url is already in the
// in-flight set (spec §6).
type ErrImportCycle struct{ URL URL }

func (e *ErrImportCycle) Error() string { return "import cycle detected: " + string(e.URL) }
