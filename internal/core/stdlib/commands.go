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

func init() {
	register(&Symbol{
		Name: "translate", Kind: CommandSym, Contexts: geometryProducing,
		Command: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			t, ok := value.CoerceTriple(arg, false)
			if !ok {
				return typeMismatch("vector", arg.TypeName())
			}
			for i, n := range [3]float64{t.X, t.Y, t.Z} {
				c.ChildTransform.Translation[i] += n
			}
			return nil
		},
	})

	register(&Symbol{
		Name: "rotate", Kind: CommandSym, Contexts: geometryProducing,
		Command: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			t, ok := value.CoerceTriple(arg, false)
			if !ok {
				return typeMismatch("rotation", arg.TypeName())
			}
			for i, n := range [3]float64{t.X, t.Y, t.Z} {
				c.ChildTransform.Rotation[i] += n
			}
			return nil
		},
	})

	register(&Symbol{
		Name: "scale", Kind: CommandSym, Contexts: geometryProducing,
		Command: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			t, ok := value.CoerceTriple(arg, true)
			if !ok {
				return typeMismatch("size", arg.TypeName())
			}
			for i, n := range [3]float64{t.X, t.Y, t.Z} {
				c.ChildTransform.Scale[i] *= n
			}
			return nil
		},
	})

	register(&Symbol{
		Name: "print", Kind: CommandSym, Contexts: AnyContext,
		Command: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			if !hasArg {
				d.DebugLog(nil)
				return nil
			}
			if elts, ok := arg.AsTuple(); ok {
				d.DebugLog(elts)
				return nil
			}
			d.DebugLog([]value.Value{arg})
			return nil
		},
	})

	register(&Symbol{
		Name: "assert", Kind: CommandSym, Contexts: AnyContext,
		Command: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			if !hasArg {
				return missingArg("assert requires an argument")
			}
			b, ok := value.CoerceBoolean(arg)
			if !ok {
				return typeMismatch("boolean", arg.TypeName())
			}
			if !b {
				return assertionFailure("Assertion failed")
			}
			return nil
		},
	})

	register(&Symbol{
		Name: "debug", Kind: CommandSym, Contexts: AnyContext,
		Command: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			if !hasArg {
				c.Debug = true
				return nil
			}
			b, ok := value.CoerceBoolean(arg)
			if !ok {
				return typeMismatch("boolean", arg.TypeName())
			}
			c.Debug = b
			return nil
		},
	})

	register(&Symbol{
		Name: "name", Kind: CommandSym, Contexts: nameable,
		Command: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			if !hasArg {
				return missingArg("name requires an argument")
			}
			s, ok := value.CoerceString(arg)
			if !ok {
				return typeMismatch("string", arg.TypeName())
			}
			c.Name = s
			return nil
		},
	})

	register(&Symbol{
		Name: "seed", Kind: CommandSym, Contexts: AnyContext,
		Command: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			if !hasArg {
				return missingArg("seed requires an argument")
			}
			n, ok := value.CoerceNumber(arg)
			if !ok {
				return typeMismatch("number", arg.TypeName())
			}
			c.Random.Seed(n)
			return nil
		},
	})

	register(&Symbol{
		Name: "light", Kind: CommandSym, Contexts: RS(context.RoleRoot, context.RoleGroup, context.RoleBuilder),
		Command: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			col := value.ColorFromArray(c.Material.Color)
			if hasArg {
				cc, ok := value.CoerceColor(arg)
				if !ok {
					return typeMismatch("color", arg.TypeName())
				}
				col = cc
			}
			g := scene.NewGeometry(scene.LightGeometry)
			g.Transform = c.Transform.Compose(c.ConsumeChildTransform())
			g.Light = &scene.Light{
				Color:          col.Array(),
				HasPosition:    g.Transform.Translation != [3]float64{},
				HasOrientation: g.Transform.Rotation != [3]float64{},
			}
			c.AddChild(g)
			return nil
		},
	})

	register(&Symbol{
		Name: "camera", Kind: CommandSym, Contexts: RS(context.RoleRoot, context.RoleGroup),
		Command: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			g := scene.NewGeometry(scene.Camera)
			g.Transform = c.Transform.Compose(c.ConsumeChildTransform())
			g.Name = c.Name
			c.AddChild(g)
			return nil
		},
	})

	register(&Symbol{
		Name: "import", Kind: CommandSym, Contexts: RS(context.RoleRoot, context.RoleGroup),
		Command: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			if !hasArg {
				return missingArg("import requires a filename")
			}
			name, ok := value.CoerceString(arg)
			if !ok {
				return typeMismatch("string", arg.TypeName())
			}
			url, err := d.ResolveURL(name, "")
			if err != nil {
				return err
			}
			if !c.EnterImport(string(url)) {
				return &delegate.ErrImportCycle{URL: url}
			}
			defer c.LeaveImport(string(url))

			g, err := d.ImportGeometry(url, map[delegate.URL]bool{url: true})
			if err != nil {
				return err
			}
			if g != nil {
				c.AddChild(g)
			}
			return nil
		},
	})
}
