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

package stdlib

import (
	"shapescript.dev/shapescript/delegate"
	"shapescript.dev/shapescript/internal/core/context"
	"shapescript.dev/shapescript/scene"
	"shapescript.dev/shapescript/value"
)

// finishGeometry stamps the fields only the fully-evaluated block body's
// context knows: the transform as mutated by position/orientation/size,
// the material as mutated by color/texture/material, and the name/debug
// set from inside the body (spec §4.6 "block invocation").
func finishGeometry(c *context.Context, g *scene.Geometry) *scene.Geometry {
	g.Transform = c.Transform
	g.Material = c.Material
	g.Name = c.Name
	g.Debug = c.Debug
	g.Segments = c.Detail
	return g
}

// argElts returns arg's tuple elements, or a 1-element slice of arg
// itself, mirroring value's own "bare scalar is a length-1 tuple" rule
// for blocks that accept a small positional argument list.
func argElts(arg value.Value, hasArg bool) []value.Value {
	if !hasArg {
		return nil
	}
	if t, ok := arg.AsTuple(); ok {
		return t
	}
	return []value.Value{arg}
}

// segmentsArg resolves a block's optional leading segment-count argument,
// defaulting to the context's current `detail`.
func segmentsArg(c *context.Context, arg value.Value, hasArg bool) (int, bool) {
	if !hasArg {
		return c.Detail, true
	}
	n, ok := value.CoerceNumber(arg)
	if !ok {
		return 0, false
	}
	return int(n), true
}

// pathsFromArgOrChildren gathers the path operands a CSG/path-combining
// block (extrude/lathe/loft/fill) works over: its positional argument if
// given, else the path-typed geometry its body committed as children. A
// mesh argument (e.g. `extrude sphere`) is never accepted even though the
// placeholder mesh library happens to carry an outline Path of its own —
// only a genuine path value or path-producing block satisfies "path or
// block".
func pathsFromArgOrChildren(c *context.Context, arg value.Value, hasArg bool) []*scene.Path {
	var paths []*scene.Path
	if hasArg {
		for _, e := range argElts(arg, true) {
			if p, ok := e.AsPath(); ok {
				paths = append(paths, p)
				continue
			}
			if g, ok := e.AsMesh(); ok && g.Type == scene.PathGeometry && g.Path != nil {
				paths = append(paths, g.Path)
			}
		}
		return paths
	}
	for _, g := range c.Children() {
		if g.Type == scene.PathGeometry && g.Path != nil {
			paths = append(paths, g.Path)
		}
	}
	return paths
}

func registerMeshBlock(name string, role context.Role, build func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Geometry, error)) {
	register(&Symbol{
		Name: name, Kind: BlockSym, Contexts: AnyContext, Role: role,
		Build: func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (value.Value, error) {
			g, err := build(c, arg, hasArg, mesh)
			if err != nil {
				return value.Value{}, err
			}
			return value.MeshValue(finishGeometry(c, g)), nil
		},
	})
}

func registerPathBlock(name string, role context.Role, build func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Path, error)) {
	register(&Symbol{
		Name: name, Kind: BlockSym, Contexts: AnyContext, Role: role,
		Build: func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (value.Value, error) {
			p, err := build(c, arg, hasArg, mesh)
			if err != nil {
				return value.Value{}, err
			}
			return value.PathValue(p), nil
		},
	})
}

func init() {
	registerMeshBlock("cube", context.RolePrimitive, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Geometry, error) {
		size := value.Triple{X: 1, Y: 1, Z: 1}
		if hasArg {
			t, ok := value.CoerceTriple(arg, true)
			if !ok {
				return nil, typeMismatch("size", arg.TypeName())
			}
			size = t
		}
		return mesh.Cube(size), nil
	})

	registerMeshBlock("sphere", context.RolePrimitive, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Geometry, error) {
		segs, ok := segmentsArg(c, arg, hasArg)
		if !ok {
			return nil, typeMismatch("number", arg.TypeName())
		}
		return mesh.Sphere(segs), nil
	})

	registerMeshBlock("cylinder", context.RolePrimitive, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Geometry, error) {
		segs, ok := segmentsArg(c, arg, hasArg)
		if !ok {
			return nil, typeMismatch("number", arg.TypeName())
		}
		return mesh.Cylinder(segs), nil
	})

	registerMeshBlock("cone", context.RolePrimitive, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Geometry, error) {
		segs, ok := segmentsArg(c, arg, hasArg)
		if !ok {
			return nil, typeMismatch("number", arg.TypeName())
		}
		return mesh.Cone(segs), nil
	})

	registerPathBlock("circle", context.RolePath, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Path, error) {
		segs, ok := segmentsArg(c, arg, hasArg)
		if !ok {
			return nil, typeMismatch("number", arg.TypeName())
		}
		return mesh.Circle(segs), nil
	})

	registerPathBlock("square", context.RolePath, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Path, error) {
		return mesh.Square(), nil
	})

	registerPathBlock("roundrect", context.RolePath, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Path, error) {
		radius, segs := 0.25, c.Detail
		es := argElts(arg, hasArg)
		if len(es) > 0 {
			n, ok := value.CoerceNumber(es[0])
			if !ok {
				return nil, typeMismatch("number", es[0].TypeName())
			}
			radius = n
		}
		if len(es) > 1 {
			n, ok := value.CoerceNumber(es[1])
			if !ok {
				return nil, typeMismatch("number", es[1].TypeName())
			}
			segs = int(n)
		}
		return mesh.RoundRect(radius, segs), nil
	})

	registerPathBlock("polygon", context.RolePath, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Path, error) {
		if !hasArg {
			return mesh.Polygon(c.Detail), nil
		}
		if n, ok := value.CoerceNumber(arg); ok {
			return mesh.Polygon(int(n)), nil
		}
		es := argElts(arg, true)
		pts := make([]scene.PathPoint, 0, len(es))
		for _, e := range es {
			t, ok := value.CoerceTriple(e, false)
			if !ok {
				return nil, typeMismatch("vector", e.TypeName())
			}
			pts = append(pts, scene.PathPoint{Position: [3]float64{t.X, t.Y, t.Z}})
		}
		if len(pts) > 0 {
			pts = append(pts, pts[0])
		}
		return &scene.Path{Points: pts}, nil
	})

	registerPathBlock("arc", context.RolePath, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Path, error) {
		es := argElts(arg, hasArg)
		if len(es) == 0 {
			return nil, missingArg("arc requires an angle")
		}
		angle, ok := value.CoerceNumber(es[0])
		if !ok {
			return nil, typeMismatch("number", es[0].TypeName())
		}
		radius, segs := 0.5, c.Detail
		if len(es) > 1 {
			n, ok := value.CoerceNumber(es[1])
			if !ok {
				return nil, typeMismatch("number", es[1].TypeName())
			}
			radius = n
		}
		if len(es) > 2 {
			n, ok := value.CoerceNumber(es[2])
			if !ok {
				return nil, typeMismatch("number", es[2].TypeName())
			}
			segs = int(n)
		}
		return mesh.Arc(angle, radius, segs), nil
	})

	register(&Symbol{
		Name: "path", Kind: BlockSym, Contexts: AnyContext, Role: context.RolePath,
		Build: func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (value.Value, error) {
			return value.PathValue(&scene.Path{Points: c.Points()}), nil
		},
	})

	register(&Symbol{
		Name: "point", Kind: CommandSym, Contexts: pathProducing,
		Command: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			t, ok := value.CoerceTriple(arg, false)
			if !ok {
				return typeMismatch("vector", arg.TypeName())
			}
			c.AddPoint(scene.PathPoint{Position: [3]float64{t.X, t.Y, t.Z}})
			return nil
		},
	})

	register(&Symbol{
		Name: "curve", Kind: CommandSym, Contexts: pathProducing,
		Command: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			t, ok := value.CoerceTriple(arg, false)
			if !ok {
				return typeMismatch("vector", arg.TypeName())
			}
			c.AddPoint(scene.PathPoint{Position: [3]float64{t.X, t.Y, t.Z}, IsCurve: true})
			return nil
		},
	})

	registerPathBlock("svgpath", context.RolePath, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Path, error) {
		if !hasArg {
			return nil, missingArg("svgpath requires a string argument")
		}
		s, ok := value.CoerceString(arg)
		if !ok {
			return nil, typeMismatch("string", arg.TypeName())
		}
		return mesh.SVGPath(s)
	})

	registerPathBlock("text", context.RoleText, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Path, error) {
		if !hasArg {
			return nil, missingArg("text requires a string argument")
		}
		s, ok := value.CoerceString(arg)
		if !ok {
			return nil, typeMismatch("string", arg.TypeName())
		}
		return mesh.Text(s, c.Font)
	})

	registerMeshBlock("extrude", context.RoleBuilder, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Geometry, error) {
		paths := pathsFromArgOrChildren(c, arg, hasArg)
		if len(paths) == 0 {
			return nil, typeMismatch("path or block", argOrChildrenKind(c, arg, hasArg))
		}
		return mesh.Extrude(paths, nil), nil
	})

	registerMeshBlock("lathe", context.RoleBuilder, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Geometry, error) {
		paths := pathsFromArgOrChildren(c, arg, hasArg)
		if len(paths) == 0 {
			return nil, typeMismatch("path or block", argOrChildrenKind(c, arg, hasArg))
		}
		return mesh.Lathe(paths, c.Detail), nil
	})

	registerMeshBlock("loft", context.RoleBuilder, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Geometry, error) {
		paths := pathsFromArgOrChildren(c, arg, hasArg)
		if len(paths) == 0 {
			return nil, typeMismatch("path or block", argOrChildrenKind(c, arg, hasArg))
		}
		return mesh.Loft(paths), nil
	})

	registerMeshBlock("fill", context.RoleBuilder, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Geometry, error) {
		paths := pathsFromArgOrChildren(c, arg, hasArg)
		if len(paths) == 0 {
			return nil, typeMismatch("path or block", argOrChildrenKind(c, arg, hasArg))
		}
		return mesh.Fill(paths), nil
	})

	registerMeshBlock("hull", context.RoleBuilder, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Geometry, error) {
		return mesh.Hull(c.Children()), nil
	})

	registerStructural := func(name string, t scene.GeometryType) {
		registerMeshBlock(name, context.RoleBuilder, func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (*scene.Geometry, error) {
			g := scene.NewGeometry(t)
			g.Children = c.Children()
			return g, nil
		})
	}
	registerStructural("group", scene.Group)
	registerStructural("union", scene.Union)
	registerStructural("difference", scene.Difference)
	registerStructural("intersection", scene.Intersection)
	registerStructural("xor", scene.Xor)
	registerStructural("stencil", scene.Stencil)

	register(&Symbol{
		Name: "mesh", Kind: BlockSym, Contexts: AnyContext, Role: context.RoleMesh,
		Build: func(c *context.Context, arg value.Value, hasArg bool, mesh delegate.MeshLibrary) (value.Value, error) {
			g := scene.NewGeometry(scene.Mesh)
			g.Children = c.Children()
			if pts := c.Points(); len(pts) > 0 {
				g.Path = &scene.Path{Points: pts}
			}
			return value.MeshValue(finishGeometry(c, g)), nil
		},
	})
}

// FinishGeometry exposes finishGeometry to internal/core/eval, which needs
// the same Transform/Material/Name/Debug/Segments stamping for a path
// block's result committed as a standalone scene node (spec §4.6 "block
// invocation"), not just for the mesh blocks registered in this file.
func FinishGeometry(c *context.Context, g *scene.Geometry) *scene.Geometry {
	return finishGeometry(c, g)
}

func argOrChildrenKind(c *context.Context, arg value.Value, hasArg bool) string {
	if hasArg {
		return arg.TypeName()
	}
	if len(c.Children()) == 0 {
		return "void"
	}
	return "mesh"
}
