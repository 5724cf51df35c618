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

package value

import "shapescript.dev/shapescript/scene"

// Member implements the member-access table of spec §4.6 for `e.m`. It
// returns the looked-up value, the set of legal member names at v's kind
// (for name-suggestion, spec §4.7), and whether the lookup succeeded.
func Member(v Value, name string) (Value, []string, bool) {
	switch v.kind {
	case Vector, Size, Rotation:
		return tripleMember(v, name)
	case ColorKind:
		return colorMember(v, name)
	case Tuple:
		return tupleMember(v, name)
	case PathKind:
		return pathMember(v, name)
	case MeshKind:
		return meshMember(v, name)
	case LightKind:
		return lightMember(v, name)
	case MaterialKind:
		return materialMember(v, name)
	case Object:
		if o, ok := v.object.Get(name); ok {
			return o, v.object.Keys(), true
		}
		return Value{}, v.object.Keys(), false
	}
	return Value{}, nil, false
}

var vectorAxes = []string{"x", "y", "z"}
var sizeAxes = []string{"width", "height", "depth"}
var rotationAxes = []string{"roll", "yaw", "pitch"}

func tripleMember(v Value, name string) (Value, []string, bool) {
	var axes []string
	switch v.kind {
	case Vector:
		axes = vectorAxes
	case Size:
		axes = sizeAxes
	case Rotation:
		axes = rotationAxes
	}
	t, _ := v.AsTriple()
	switch name {
	case axes[0]:
		return NumberValue(t.X), axes, true
	case axes[1]:
		return NumberValue(t.Y), axes, true
	case axes[2]:
		return NumberValue(t.Z), axes, true
	}
	if n, ok := OrdinalIndex(name); ok && n <= 3 {
		return NumberValue([3]float64{t.X, t.Y, t.Z}[n-1]), axes, true
	}
	// Cross-scheme fallback: any of the three axis-naming schemes answers
	// on any triple kind, so `position.width` and `size.x` both resolve
	// (spec §4.6's component-if-present rule).
	if i := axisIndex(name); i >= 0 {
		return NumberValue([3]float64{t.X, t.Y, t.Z}[i]), axes, true
	}
	return Value{}, axes, false
}

var colorChannels = []string{"red", "green", "blue", "alpha"}

func colorMember(v Value, name string) (Value, []string, bool) {
	c, _ := v.AsColor()
	switch name {
	case "red":
		return NumberValue(c.R), colorChannels, true
	case "green":
		return NumberValue(c.G), colorChannels, true
	case "blue":
		return NumberValue(c.B), colorChannels, true
	case "alpha":
		return NumberValue(c.A), colorChannels, true
	}
	return Value{}, colorChannels, false
}

func tupleMember(v Value, name string) (Value, []string, bool) {
	t, _ := v.AsTuple()
	names := ordinalNamesUpTo(len(t))
	switch name {
	case "first":
		if len(t) > 0 {
			return t[0], names, true
		}
	case "last":
		if len(t) > 0 {
			return t[len(t)-1], names, true
		}
	case "count":
		return NumberValue(float64(len(t))), append(names, "count", "first", "last"), true
	}
	if n, ok := OrdinalIndex(name); ok {
		if n < 1 || n > len(t) {
			return Value{}, names, false
		}
		return t[n-1], names, true
	}
	// A tuple short enough to read as a vector/size/rotation answers
	// whichever axis-name scheme name belongs to (spec §4.6: a bare
	// `define v 1 2 3` tuple still answers `v.y`).
	if len(t) <= 3 {
		if i := axisIndex(name); i >= 0 && i < len(t) {
			return t[i], names, true
		}
	}
	// A tuple short enough to read as a color answers color-channel
	// members too (spec §4.6 "color: ... a shorter tuple is interpreted
	// as (lum), (lum,α), or (r,g,b)").
	if len(t) <= 4 {
		if c, ok := CoerceColor(v); ok {
			return colorMember(ColorValue(c), name)
		}
	}
	return Value{}, names, false
}

// axisIndex reports name's position in any of the three axis-naming
// schemes (vector, size, rotation), or -1 if name matches none.
func axisIndex(name string) int {
	for _, axes := range [][]string{vectorAxes, sizeAxes, rotationAxes} {
		for i, a := range axes {
			if a == name {
				return i
			}
		}
	}
	return -1
}

func ordinalNamesUpTo(n int) []string {
	if n > 99 {
		n = 99
	}
	names := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		name, _ := ordinalName(i)
		names = append(names, name)
	}
	return names
}

var pathMembers = []string{"points", "subpaths", "length", "bounds", "closed"}

func pathMember(v Value, name string) (Value, []string, bool) {
	p, _ := v.AsPath()
	switch name {
	case "points":
		pts := make([]Value, len(p.Points))
		for i, pt := range p.Points {
			pts[i] = VectorValue(Triple{X: pt.Position[0], Y: pt.Position[1], Z: pt.Position[2]})
		}
		return TupleValue(pts), pathMembers, true
	case "subpaths":
		subs := make([]Value, len(p.Subpaths))
		for i := range p.Subpaths {
			subs[i] = PathValue(&p.Subpaths[i])
		}
		return TupleValue(subs), pathMembers, true
	case "length":
		return NumberValue(p.Length()), pathMembers, true
	case "bounds":
		min, max := pointBounds(p.Points)
		return TupleValue([]Value{
			VectorValue(Triple{X: min[0], Y: min[1], Z: min[2]}),
			VectorValue(Triple{X: max[0], Y: max[1], Z: max[2]}),
		}), pathMembers, true
	case "closed":
		return BooleanValue(p.Closed()), pathMembers, true
	}
	return Value{}, pathMembers, false
}

func pointBounds(pts []scene.PathPoint) (min, max [3]float64) {
	for i, p := range pts {
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

var meshMembers = []string{"bounds", "material", "color", "name", "children", "watertight"}

func meshMember(v Value, name string) (Value, []string, bool) {
	g, _ := v.AsMesh()
	switch name {
	case "bounds":
		min, max := g.Bounds()
		return TupleValue([]Value{
			VectorValue(Triple{X: min[0], Y: min[1], Z: min[2]}),
			VectorValue(Triple{X: max[0], Y: max[1], Z: max[2]}),
		}), meshMembers, true
	case "material":
		return MaterialValue(&g.Material), meshMembers, true
	case "color":
		return ColorValue(ColorFromArray(g.Material.Color)), meshMembers, true
	case "name":
		return StringValue(g.Name), meshMembers, true
	case "children":
		kids := make([]Value, len(g.Children))
		for i, k := range g.Children {
			kids[i] = MeshValue(k)
		}
		return TupleValue(kids), meshMembers, true
	case "watertight":
		return BooleanValue(g.IsWatertight()), meshMembers, true
	}
	return Value{}, meshMembers, false
}

var lightMembers = []string{"color", "hasPosition", "hasOrientation"}

func lightMember(v Value, name string) (Value, []string, bool) {
	l, _ := v.AsLight()
	switch name {
	case "color":
		return ColorValue(ColorFromArray(l.Color)), lightMembers, true
	case "hasPosition":
		return BooleanValue(l.HasPosition), lightMembers, true
	case "hasOrientation":
		return BooleanValue(l.HasOrientation), lightMembers, true
	}
	return Value{}, lightMembers, false
}

var materialMembers = []string{"color", "opacity", "metallicity", "roughness", "glow"}

func materialMember(v Value, name string) (Value, []string, bool) {
	m, _ := v.AsMaterial()
	switch name {
	case "color":
		return ColorValue(ColorFromArray(m.Color)), materialMembers, true
	case "opacity":
		return NumberValue(m.Opacity), materialMembers, true
	case "metallicity":
		return NumberValue(m.Metallicity), materialMembers, true
	case "roughness":
		return NumberValue(m.Roughness), materialMembers, true
	case "glow":
		return NumberValue(m.Glow), materialMembers, true
	}
	return Value{}, materialMembers, false
}

// MemberNames reports the legal member names for a value's kind, used by
// the evaluator to build a name-suggestion candidate set (spec §4.7).
func MemberNames(v Value) []string {
	switch v.kind {
	case Vector:
		return vectorAxes
	case Size:
		return sizeAxes
	case Rotation:
		return rotationAxes
	case ColorKind:
		return colorChannels
	case Tuple:
		t, _ := v.AsTuple()
		names := ordinalNamesUpTo(len(t))
		names = append(names, "first", "last", "count")
		if len(t) <= 3 {
			names = append(names, vectorAxes...)
			names = append(names, sizeAxes...)
			names = append(names, rotationAxes...)
		}
		if len(t) <= 4 {
			names = append(names, colorChannels...)
		}
		return names
	case PathKind:
		return pathMembers
	case MeshKind:
		return meshMembers
	case LightKind:
		return lightMembers
	case MaterialKind:
		return materialMembers
	case Object:
		if v.object != nil {
			return v.object.Keys()
		}
	}
	return nil
}
