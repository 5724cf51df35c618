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

	"shapescript.dev/shapescript/value"
)

func registerConstant(name string, v value.Value) {
	register(&Symbol{Name: name, Kind: ConstantSym, Contexts: AnyContext, Value: v})
}

func registerColorConstant(name string, r, g, b float64) {
	registerConstant(name, value.ColorValue(value.Color{R: r, G: g, B: b, A: 1}))
}

func init() {
	registerConstant("pi", value.NumberValue(math.Pi))
	registerConstant("true", value.BooleanValue(true))
	registerConstant("false", value.BooleanValue(false))

	registerColorConstant("black", 0, 0, 0)
	registerColorConstant("white", 1, 1, 1)
	registerColorConstant("gray", 0.5, 0.5, 0.5)
	registerColorConstant("grey", 0.5, 0.5, 0.5)
	registerColorConstant("red", 1, 0, 0)
	registerColorConstant("green", 0, 1, 0)
	registerColorConstant("blue", 0, 0, 1)
	registerColorConstant("yellow", 1, 1, 0)
	registerColorConstant("cyan", 0, 1, 1)
	registerColorConstant("magenta", 1, 0, 1)
	registerColorConstant("orange", 1, 0.5, 0)
}
