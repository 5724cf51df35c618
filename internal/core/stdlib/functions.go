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
	"math"
	"strings"

	"shapescript.dev/shapescript/internal/core/context"
	"shapescript.dev/shapescript/value"
)

func registerMath1(name string, f func(float64) float64) {
	register(&Symbol{
		Name: name, Kind: FunctionSym, Contexts: AnyContext,
		Func: func(c *context.Context, args []value.Value) (value.Value, error) {
			n, ok := args1Number(args)
			if !ok {
				return value.Value{}, typeMismatch("number", argKind(args))
			}
			return value.NumberValue(f(n)), nil
		},
	})
}

func args1Number(args []value.Value) (float64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	return value.CoerceNumber(args[0])
}

func argKind(args []value.Value) string {
	if len(args) == 0 {
		return "void"
	}
	return args[0].TypeName()
}

func init() {
	registerMath1("cos", math.Cos)
	registerMath1("sin", math.Sin)
	registerMath1("tan", math.Tan)
	registerMath1("sqrt", math.Sqrt)
	registerMath1("floor", math.Floor)
	registerMath1("ceil", math.Ceil)
	registerMath1("round", math.Round)
	registerMath1("abs", math.Abs)
	registerMath1("sign", func(n float64) float64 {
		switch {
		case n > 0:
			return 1
		case n < 0:
			return -1
		default:
			return 0
		}
	})

	register(&Symbol{
		Name: "pow", Kind: FunctionSym, Contexts: AnyContext,
		Func: func(c *context.Context, args []value.Value) (value.Value, error) {
			if len(args) != 2 {
				return value.Value{}, missingArg("pow requires 2 arguments, got %d", len(args))
			}
			base, ok1 := value.CoerceNumber(args[0])
			exp, ok2 := value.CoerceNumber(args[1])
			if !ok1 || !ok2 {
				return value.Value{}, typeMismatch("number", argKind(args))
			}
			return value.NumberValue(math.Pow(base, exp)), nil
		},
	})

	register(&Symbol{
		Name: "min", Kind: FunctionSym, Contexts: AnyContext,
		Func: func(c *context.Context, args []value.Value) (value.Value, error) {
			return reduceNumbers("min", args, math.Min)
		},
	})

	register(&Symbol{
		Name: "max", Kind: FunctionSym, Contexts: AnyContext,
		Func: func(c *context.Context, args []value.Value) (value.Value, error) {
			return reduceNumbers("max", args, math.Max)
		},
	})

	register(&Symbol{
		Name: "rnd", Kind: FunctionSym, Contexts: AnyContext, NoArgs: true,
		Func: func(c *context.Context, args []value.Value) (value.Value, error) {
			if len(args) != 0 {
				return value.Value{}, unexpectedArg("rnd takes no arguments")
			}
			return value.NumberValue(c.Random.Next()), nil
		},
	})

	register(&Symbol{
		Name: "trim", Kind: FunctionSym, Contexts: AnyContext,
		Func: func(c *context.Context, args []value.Value) (value.Value, error) {
			s, ok := args1String(args)
			if !ok {
				return value.Value{}, typeMismatch("string", argKind(args))
			}
			return value.StringValue(strings.TrimSpace(s)), nil
		},
	})

	register(&Symbol{
		Name: "split", Kind: FunctionSym, Contexts: AnyContext,
		Func: func(c *context.Context, args []value.Value) (value.Value, error) {
			if len(args) != 2 {
				return value.Value{}, missingArg("split requires (string, separator)")
			}
			s, ok1 := value.CoerceString(args[0])
			sep, ok2 := value.CoerceString(args[1])
			if !ok1 || !ok2 {
				return value.Value{}, typeMismatch("string", argKind(args))
			}
			var parts []string
			if sep == "" {
				parts = strings.Fields(s)
			} else {
				parts = strings.Split(s, sep)
			}
			elts := make([]value.Value, len(parts))
			for i, p := range parts {
				elts[i] = value.StringValue(p)
			}
			return value.TupleValue(elts), nil
		},
	})

	register(&Symbol{
		Name: "join", Kind: FunctionSym, Contexts: AnyContext,
		Func: func(c *context.Context, args []value.Value) (value.Value, error) {
			if len(args) != 2 {
				return value.Value{}, missingArg("join requires (tuple, separator)")
			}
			elts, ok := args[0].AsTuple()
			if !ok {
				return value.Value{}, typeMismatch("tuple", args[0].TypeName())
			}
			sep, ok := value.CoerceString(args[1])
			if !ok {
				return value.Value{}, typeMismatch("string", args[1].TypeName())
			}
			parts := make([]string, len(elts))
			for i, e := range elts {
				s, ok := value.CoerceString(e)
				if !ok {
					return value.Value{}, typeMismatch("string", e.TypeName())
				}
				parts[i] = s
			}
			return value.StringValue(strings.Join(parts, sep)), nil
		},
	})

	register(&Symbol{
		Name: "length", Kind: FunctionSym, Contexts: AnyContext,
		Func: func(c *context.Context, args []value.Value) (value.Value, error) {
			if len(args) != 1 {
				return value.Value{}, missingArg("length requires 1 argument, got %d", len(args))
			}
			v := args[0]
			switch v.Kind() {
			case value.String:
				s, _ := v.AsString()
				return value.NumberValue(float64(len([]rune(s)))), nil
			case value.Tuple:
				t, _ := v.AsTuple()
				return value.NumberValue(float64(len(t))), nil
			case value.PathKind:
				p, _ := v.AsPath()
				return value.NumberValue(float64(len(p.Points))), nil
			default:
				return value.Value{}, typeMismatch("string, tuple, or path", v.TypeName())
			}
		},
	})
}

func args1String(args []value.Value) (string, bool) {
	if len(args) != 1 {
		return "", false
	}
	return value.CoerceString(args[0])
}

func reduceNumbers(name string, args []value.Value, f func(a, b float64) float64) (value.Value, error) {
	if len(args) == 0 {
		return value.Value{}, missingArg("%s requires at least 1 argument", name)
	}
	n0, ok := value.CoerceNumber(args[0])
	if !ok {
		return value.Value{}, typeMismatch("number", args[0].TypeName())
	}
	result := n0
	for _, a := range args[1:] {
		n, ok := value.CoerceNumber(a)
		if !ok {
			return value.Value{}, typeMismatch("number", a.TypeName())
		}
		result = f(result, n)
	}
	return value.NumberValue(result), nil
}
