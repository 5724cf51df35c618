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

// Package scene declares the scene-graph entities produced by evaluating a
// program: geometry nodes, paths, materials, and lights (spec §3 "Entities
// in the scene graph"). The package owns no behavior beyond simple
// accessors; construction and mutation live in internal/core/eval.
package scene

import (
	"math"

	"github.com/google/uuid"
)

// GeometryType identifies the kind of a Geometry node.
type GeometryType int

const (
	Cube GeometryType = iota
	Sphere
	Cylinder
	Cone
	Extrude
	Lathe
	Loft
	Fill
	Hull
	Group
	Union
	Intersection
	Difference
	Xor
	Stencil
	PathGeometry
	Mesh
	LightGeometry
	Camera
)

// String renders the lowercase stdlib block/command name that produces
// this geometry type (spec §4.4's block symbol kind), for diagnostics and
// scene export.
func (t GeometryType) String() string {
	switch t {
	case Cube:
		return "cube"
	case Sphere:
		return "sphere"
	case Cylinder:
		return "cylinder"
	case Cone:
		return "cone"
	case Extrude:
		return "extrude"
	case Lathe:
		return "lathe"
	case Loft:
		return "loft"
	case Fill:
		return "fill"
	case Hull:
		return "hull"
	case Group:
		return "group"
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	case Difference:
		return "difference"
	case Xor:
		return "xor"
	case Stencil:
		return "stencil"
	case PathGeometry:
		return "path"
	case Mesh:
		return "mesh"
	case LightGeometry:
		return "light"
	case Camera:
		return "camera"
	default:
		return "unknown"
	}
}

// Transform is an accumulated translation/rotation/scale, composed
// multiplicatively as ancestor scopes apply their own (spec §4.6
// "Transform commands").
type Transform struct {
	Translation [3]float64
	Rotation    [3]float64 // Euler roll/yaw/pitch, radians
	Scale       [3]float64
}

// IdentityTransform returns the transform with zero translation/rotation
// and unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: [3]float64{1, 1, 1}}
}

// Compose returns the transform that applies t, then child relative to t.
func (t Transform) Compose(child Transform) Transform {
	out := Transform{}
	for i := 0; i < 3; i++ {
		out.Scale[i] = t.Scale[i] * child.Scale[i]
		out.Translation[i] = t.Translation[i] + child.Translation[i]*t.Scale[i]
		out.Rotation[i] = t.Rotation[i] + child.Rotation[i]
	}
	return out
}

// Material is an immutable, shared-by-reference record (spec §3). Mutating
// a context's current material copies it first (copy-on-write).
type Material struct {
	Color        [4]float64 // r,g,b,a
	HasColor     bool
	Texture      string
	TextureAlpha float64
	HasTexture   bool
	Opacity      float64
	Glow         float64
	Metallicity  float64
	Roughness    float64
}

// DefaultMaterial is white, fully opaque, with no texture.
func DefaultMaterial() Material {
	return Material{Color: [4]float64{1, 1, 1, 1}, HasColor: true, Opacity: 1}
}

// WithColor returns a copy of m with its color set and texture cleared
// (spec invariant I4: "a color command clears the current texture").
func (m Material) WithColor(c [4]float64) Material {
	m.Color, m.HasColor = c, true
	m.Texture, m.HasTexture = "", false
	return m
}

// WithTexture returns a copy of m with its texture set and color cleared.
func (m Material) WithTexture(name string, alpha float64) Material {
	m.Texture, m.TextureAlpha, m.HasTexture = name, alpha, true
	m.HasColor = false
	return m
}

// PathPoint is one vertex of a Path (spec §3).
type PathPoint struct {
	Position [3]float64
	Color    *[4]float64
	IsCurve  bool
}

// Path is an ordered list of points, optionally decomposed into subpaths.
type Path struct {
	Points   []PathPoint
	Subpaths []Path
}

// Closed reports whether the path's first and last points coincide (spec
// §3 "closed iff first==last").
func (p Path) Closed() bool {
	if len(p.Points) < 2 {
		return false
	}
	return p.Points[0].Position == p.Points[len(p.Points)-1].Position
}

// Length returns the sum of the Euclidean distances between consecutive
// points.
func (p Path) Length() float64 {
	var total float64
	for i := 1; i < len(p.Points); i++ {
		a, b := p.Points[i-1].Position, p.Points[i].Position
		var sq float64
		for k := 0; k < 3; k++ {
			d := b[k] - a[k]
			sq += d * d
		}
		total += math.Sqrt(sq)
	}
	return total
}

// Polygon is a planar, ordered vertex loop (spec §3's member of the value
// model; used by the `polygon` stdlib block and mesh triangulation).
type Polygon struct {
	Points   []PathPoint
	Material Material
}

// Light carries a color and, via the enclosing transform, an implied
// position/orientation (spec §3 "Light: color, derived hasPosition/
// hasOrientation from the enclosing transform").
type Light struct {
	Color          [4]float64
	HasPosition    bool
	HasOrientation bool
}

// Geometry is one node of the evaluated scene graph.
type Geometry struct {
	ID        string
	Type      GeometryType
	Segments  int // sphere/cylinder/cone facet count, from `detail`
	Transform Transform
	Material  Material
	Name      string
	Children  []*Geometry
	Path      *Path
	Light     *Light
	Debug     bool
}

// NewGeometry creates a Geometry of the given type with a fresh ID and the
// identity transform/default material.
func NewGeometry(t GeometryType) *Geometry {
	return &Geometry{
		ID:        uuid.NewString(),
		Type:      t,
		Transform: IdentityTransform(),
		Material:  DefaultMaterial(),
	}
}

// Bounds computes an axis-aligned bounding box in local space. Leaf
// geometry with no path data reports a degenerate (zero) box; callers that
// need exact host-mesh bounds should query the delegate's MeshLibrary
// instead (spec §6 "mesh introspection").
func (g *Geometry) Bounds() (min, max [3]float64) {
	if g.Path == nil {
		return min, max
	}
	for i, p := range g.Path.Points {
		for k := 0; k < 3; k++ {
			if i == 0 || p.Position[k] < min[k] {
				min[k] = p.Position[k]
			}
			if i == 0 || p.Position[k] > max[k] {
				max[k] = p.Position[k]
			}
		}
	}
	return min, max
}

// IsWatertight reports whether every child path of g is closed — a cheap,
// host-independent approximation of the delegate's own mesh check (spec
// §6 "isWatertight").
func (g *Geometry) IsWatertight() bool {
	if g.Path != nil {
		return g.Path.Closed()
	}
	for _, c := range g.Children {
		if !c.IsWatertight() {
			return false
		}
	}
	return true
}
