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

// Package value implements the ShapeScript value model (spec §3, §4.3):
// a single tagged-union Value type, dispatched on Kind at call sites with
// no per-variant class hierarchy (spec §9 "Dynamic dispatch via interface
// abstraction" — the one exception being EvaluationDelegate).
package value

import (
	"fmt"
	"strconv"
	"strings"

	"shapescript.dev/shapescript/scene"
)

// Kind identifies which variant of the tagged union a Value holds.
type Kind int

const (
	Void Kind = iota
	Number
	String
	Boolean
	ColorKind
	TextureKind
	Vector
	Size
	Rotation
	RangeKind
	Tuple
	PathKind
	MeshKind
	PolygonKind
	MaterialKind
	Object
	LightKind
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Number:
		return "number"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case ColorKind:
		return "color"
	case TextureKind:
		return "texture"
	case Vector:
		return "vector"
	case Size:
		return "size"
	case Rotation:
		return "rotation"
	case RangeKind:
		return "range"
	case Tuple:
		return "tuple"
	case PathKind:
		return "path"
	case MeshKind:
		return "mesh"
	case PolygonKind:
		return "polygon"
	case MaterialKind:
		return "material"
	case Object:
		return "object"
	case LightKind:
		return "light"
	}
	return "unknown"
}

// Triple is the shared representation for vector/size/rotation: three
// axis-named components (spec §3).
type Triple struct {
	X, Y, Z float64
}

// Texture is a resolved or pending texture reference (spec §3
// "texture(file|none, intensity)").
type Texture struct {
	File      string // "" means no file (a bare intensity multiplier)
	HasFile   bool
	Intensity float64
}

// Range is the `from to [step]` value (spec §3, §4.6). To is nil for a
// partial (open-ended) range.
type Range struct {
	From float64
	To   *float64
	Step float64
}

// Value is the tagged union that flows through the evaluator. The zero
// Value is Void.
type Value struct {
	kind Kind

	num     float64
	str     string
	boolean bool
	color   Color
	texture Texture
	triple  Triple
	rng     Range
	tuple   []Value

	path     *scene.Path
	mesh     *scene.Geometry
	polygon  *scene.Polygon
	material *scene.Material
	object   *Obj
	light    *scene.Light
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsVoid reports whether v is the void value.
func (v Value) IsVoid() bool { return v.kind == Void }

func VoidValue() Value { return Value{kind: Void} }

func NumberValue(n float64) Value { return Value{kind: Number, num: n} }

func StringValue(s string) Value { return Value{kind: String, str: s} }

func BooleanValue(b bool) Value { return Value{kind: Boolean, boolean: b} }

func ColorValue(c Color) Value { return Value{kind: ColorKind, color: c} }

func TextureValue(t Texture) Value { return Value{kind: TextureKind, texture: t} }

func VectorValue(t Triple) Value { return Value{kind: Vector, triple: t} }

func SizeValue(t Triple) Value { return Value{kind: Size, triple: t} }

func RotationValue(t Triple) Value { return Value{kind: Rotation, triple: t} }

func RangeValue(r Range) Value { return Value{kind: RangeKind, rng: r} }

func TupleValue(elts []Value) Value { return Value{kind: Tuple, tuple: elts} }

func PathValue(p *scene.Path) Value { return Value{kind: PathKind, path: p} }

func MeshValue(g *scene.Geometry) Value { return Value{kind: MeshKind, mesh: g} }

func PolygonValue(p *scene.Polygon) Value { return Value{kind: PolygonKind, polygon: p} }

func MaterialValue(m *scene.Material) Value { return Value{kind: MaterialKind, material: m} }

func ObjectValue(o *Obj) Value { return Value{kind: Object, object: o} }

func LightValue(l *scene.Light) Value { return Value{kind: LightKind, light: l} }

// AsNumber reports v's numeric payload, if v is a Number.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	return v.num, true
}

// AsString reports v's string payload, if v is a String.
func (v Value) AsString() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.str, true
}

// AsBoolean reports v's boolean payload, if v is a Boolean.
func (v Value) AsBoolean() (bool, bool) {
	if v.kind != Boolean {
		return false, false
	}
	return v.boolean, true
}

// AsColor reports v's color payload, if v is a ColorKind.
func (v Value) AsColor() (Color, bool) {
	if v.kind != ColorKind {
		return Color{}, false
	}
	return v.color, true
}

// AsTexture reports v's texture payload, if v is a TextureKind.
func (v Value) AsTexture() (Texture, bool) {
	if v.kind != TextureKind {
		return Texture{}, false
	}
	return v.texture, true
}

// AsTriple reports v's triple payload for Vector/Size/Rotation kinds.
func (v Value) AsTriple() (Triple, bool) {
	switch v.kind {
	case Vector, Size, Rotation:
		return v.triple, true
	}
	return Triple{}, false
}

// AsRange reports v's range payload, if v is a RangeKind.
func (v Value) AsRange() (Range, bool) {
	if v.kind != RangeKind {
		return Range{}, false
	}
	return v.rng, true
}

// AsTuple reports v's element list, if v is a Tuple.
func (v Value) AsTuple() ([]Value, bool) {
	if v.kind != Tuple {
		return nil, false
	}
	return v.tuple, true
}

// AsPath reports v's path payload, if v is a PathKind.
func (v Value) AsPath() (*scene.Path, bool) {
	if v.kind != PathKind {
		return nil, false
	}
	return v.path, true
}

// AsMesh reports v's geometry payload, if v is a MeshKind.
func (v Value) AsMesh() (*scene.Geometry, bool) {
	if v.kind != MeshKind {
		return nil, false
	}
	return v.mesh, true
}

// AsMaterial reports v's material payload, if v is a MaterialKind.
func (v Value) AsMaterial() (*scene.Material, bool) {
	if v.kind != MaterialKind {
		return nil, false
	}
	return v.material, true
}

// AsObject reports v's object payload, if v is an Object.
func (v Value) AsObject() (*Obj, bool) {
	if v.kind != Object {
		return nil, false
	}
	return v.object, true
}

// AsLight reports v's light payload, if v is a LightKind.
func (v Value) AsLight() (*scene.Light, bool) {
	if v.kind != LightKind {
		return nil, false
	}
	return v.light, true
}

// String renders v in ShapeScript's canonical textual form (spec §4.3):
// numbers without trailing zeros, tuples space-separated without
// brackets, colors as four decimals.
func (v Value) String() string {
	switch v.kind {
	case Void:
		return ""
	case Number:
		return formatNumber(v.num)
	case String:
		return v.str
	case Boolean:
		if v.boolean {
			return "true"
		}
		return "false"
	case ColorKind:
		return fmt.Sprintf("%s %s %s %s",
			formatNumber(v.color.R), formatNumber(v.color.G),
			formatNumber(v.color.B), formatNumber(v.color.A))
	case TextureKind:
		if !v.texture.HasFile {
			return formatNumber(v.texture.Intensity)
		}
		return v.texture.File
	case Vector, Size, Rotation:
		return fmt.Sprintf("%s %s %s",
			formatNumber(v.triple.X), formatNumber(v.triple.Y), formatNumber(v.triple.Z))
	case RangeKind:
		if v.rng.To == nil {
			return fmt.Sprintf("%s to step %s", formatNumber(v.rng.From), formatNumber(v.rng.Step))
		}
		return fmt.Sprintf("%s to %s step %s",
			formatNumber(v.rng.From), formatNumber(*v.rng.To), formatNumber(v.rng.Step))
	case Tuple:
		parts := make([]string, len(v.tuple))
		for i, e := range v.tuple {
			parts[i] = e.String()
		}
		return strings.Join(parts, " ")
	case PathKind:
		return fmt.Sprintf("path(%d points)", len(v.path.Points))
	case MeshKind:
		return fmt.Sprintf("mesh(%d children)", len(v.mesh.Children))
	case PolygonKind:
		return fmt.Sprintf("polygon(%d points)", len(v.polygon.Points))
	case MaterialKind:
		return "material"
	case Object:
		return v.object.String()
	case LightKind:
		return "light"
	}
	return ""
}

// formatNumber trims trailing zeros and a trailing decimal point, per
// spec §4.3's canonical number rendering.
func formatNumber(n float64) string {
	s := strconv.FormatFloat(n, 'f', -1, 64)
	return s
}

// TypeName is the spec §4.3 `type_name` predicate.
func (v Value) TypeName() string { return v.kind.String() }
