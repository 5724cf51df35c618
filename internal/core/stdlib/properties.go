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
	"shapescript.dev/shapescript/value"
)

func init() {
	register(&Symbol{
		Name: "color", Kind: PropertySym, Contexts: notFunctionDefinition,
		Get: func(c *context.Context) value.Value {
			if !c.Material.HasColor {
				return value.VoidValue()
			}
			return value.ColorValue(value.ColorFromArray(c.Material.Color))
		},
		Set: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			if !hasArg {
				return missingArg("color requires an argument")
			}
			col, ok := value.CoerceColor(arg)
			if !ok {
				return typeMismatch("color", arg.TypeName())
			}
			c.Material = c.Material.WithColor(col.Array())
			return nil
		},
	})

	register(&Symbol{
		Name: "texture", Kind: PropertySym, Contexts: materialLegal,
		Get: func(c *context.Context) value.Value {
			if !c.Material.HasTexture {
				return value.VoidValue()
			}
			return value.TextureValue(value.Texture{
				File: c.Material.Texture, HasFile: c.Material.Texture != "",
				Intensity: c.Material.TextureAlpha,
			})
		},
		Set: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			if !hasArg {
				return missingArg("texture requires an argument")
			}
			if s, ok := arg.AsString(); ok {
				url, err := d.ResolveURL(s, "")
				if err != nil {
					return err
				}
				c.Material = c.Material.WithTexture(string(url), 1)
				return nil
			}
			tex, ok := value.CoerceTexture(arg)
			if !ok {
				return typeMismatch("texture", arg.TypeName())
			}
			c.Material = c.Material.WithTexture(tex.File, tex.Intensity)
			return nil
		},
	})

	register(&Symbol{
		Name: "detail", Kind: PropertySym, Contexts: AnyContext,
		Get: func(c *context.Context) value.Value { return value.NumberValue(float64(c.Detail)) },
		Set: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			n, ok := value.CoerceNumber(arg)
			if !ok {
				return typeMismatch("number", arg.TypeName())
			}
			c.Detail = int(n)
			return nil
		},
	})

	register(&Symbol{
		Name: "smoothing", Kind: PropertySym, Contexts: meshLegal,
		Get: func(c *context.Context) value.Value {
			if c.Smoothing < 0 {
				return value.VoidValue()
			}
			return value.NumberValue(c.Smoothing)
		},
		Set: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			if b, ok := value.CoerceBoolean(arg); ok {
				if b {
					c.Smoothing = 0
				} else {
					c.Smoothing = -1
				}
				return nil
			}
			n, ok := value.CoerceNumber(arg)
			if !ok {
				return typeMismatch("number or boolean", arg.TypeName())
			}
			c.Smoothing = n
			return nil
		},
	})

	register(&Symbol{
		Name: "font", Kind: PropertySym, Contexts: AnyContext,
		Get: func(c *context.Context) value.Value {
			if c.Font == "" {
				return value.VoidValue()
			}
			return value.StringValue(c.Font)
		},
		Set: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			s, ok := value.CoerceString(arg)
			if !ok {
				return typeMismatch("string", arg.TypeName())
			}
			if _, err := d.ResolveFont(s); err != nil {
				return err
			}
			c.Font = s
			return nil
		},
	})

	register(&Symbol{
		Name: "background", Kind: PropertySym, Contexts: RS(context.RoleRoot, context.RoleGroup),
		Get: func(c *context.Context) value.Value {
			if c.Background == nil {
				return value.VoidValue()
			}
			return *c.Background
		},
		Set: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			if s, ok := arg.AsString(); ok {
				url, err := d.ResolveURL(s, "")
				if err != nil {
					return err
				}
				v := value.TextureValue(value.Texture{File: string(url), HasFile: true, Intensity: 1})
				c.Background = &v
				return nil
			}
			col, ok := value.CoerceColor(arg)
			if !ok {
				return typeMismatch("color or texture", arg.TypeName())
			}
			v := value.ColorValue(col)
			c.Background = &v
			return nil
		},
	})

	register(&Symbol{
		Name: "opacity", Kind: PropertySym, Contexts: notFunctionDefinition,
		Get: func(c *context.Context) value.Value { return value.NumberValue(c.Material.Opacity) },
		Set: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			n, ok := value.CoerceNumber(arg)
			if !ok {
				return typeMismatch("number", arg.TypeName())
			}
			c.Material.Opacity = n
			return nil
		},
	})

	register(&Symbol{
		Name: "material", Kind: PropertySym, Contexts: notFunctionDefinition,
		Get: func(c *context.Context) value.Value {
			m := c.Material
			return value.MaterialValue(&m)
		},
		Set: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			m, ok := arg.AsMaterial()
			if !ok {
				return typeMismatch("material", arg.TypeName())
			}
			c.Material = *m
			return nil
		},
	})

	register(&Symbol{
		Name: "position", Kind: PropertySym, Contexts: geometryProducing,
		Get: func(c *context.Context) value.Value { return value.VectorValue(tripleOf(c.Transform.Translation)) },
		Set: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			t, ok := value.CoerceTriple(arg, false)
			if !ok {
				return typeMismatch("vector", arg.TypeName())
			}
			c.Transform.Translation = [3]float64{t.X, t.Y, t.Z}
			return nil
		},
	})

	register(&Symbol{
		Name: "orientation", Kind: PropertySym, Contexts: geometryProducing,
		Get: func(c *context.Context) value.Value { return value.RotationValue(tripleOf(c.Transform.Rotation)) },
		Set: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			t, ok := value.CoerceTriple(arg, false)
			if !ok {
				return typeMismatch("rotation", arg.TypeName())
			}
			c.Transform.Rotation = [3]float64{t.X, t.Y, t.Z}
			return nil
		},
	})

	register(&Symbol{
		Name: "size", Kind: PropertySym, Contexts: geometryProducing,
		Get: func(c *context.Context) value.Value { return value.SizeValue(tripleOf(c.Transform.Scale)) },
		Set: func(c *context.Context, arg value.Value, hasArg bool, d delegate.EvaluationDelegate) error {
			t, ok := value.CoerceTriple(arg, true)
			if !ok {
				return typeMismatch("size", arg.TypeName())
			}
			c.Transform.Scale = [3]float64{t.X, t.Y, t.Z}
			return nil
		},
	})
}

func tripleOf(a [3]float64) value.Triple { return value.Triple{X: a[0], Y: a[1], Z: a[2]} }
