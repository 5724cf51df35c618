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

import "math"

// Equal implements the `=` operator's structural equality rule (spec §4.6,
// §8): reflexive for every non-tuple value except NaN, structural on
// tuples, and false across mismatched kinds. 0 and -0 compare equal (spec
// §9's open question, resolved explicitly); NaN never compares equal to
// itself.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Void:
		return true
	case Number:
		return numEqual(a.num, b.num)
	case String:
		return a.str == b.str
	case Boolean:
		return a.boolean == b.boolean
	case ColorKind:
		return a.color == b.color
	case TextureKind:
		return a.texture.HasFile == b.texture.HasFile &&
			a.texture.File == b.texture.File &&
			numEqual(a.texture.Intensity, b.texture.Intensity)
	case Vector, Size, Rotation:
		return numEqual(a.triple.X, b.triple.X) &&
			numEqual(a.triple.Y, b.triple.Y) &&
			numEqual(a.triple.Z, b.triple.Z)
	case RangeKind:
		if (a.rng.To == nil) != (b.rng.To == nil) {
			return false
		}
		if a.rng.To != nil && !numEqual(*a.rng.To, *b.rng.To) {
			return false
		}
		return numEqual(a.rng.From, b.rng.From) && numEqual(a.rng.Step, b.rng.Step)
	case Tuple:
		if len(a.tuple) != len(b.tuple) {
			return false
		}
		for i := range a.tuple {
			if !Equal(a.tuple[i], b.tuple[i]) {
				return false
			}
		}
		return true
	case PathKind:
		return a.path == b.path
	case MeshKind:
		return a.mesh == b.mesh
	case PolygonKind:
		return a.polygon == b.polygon
	case MaterialKind:
		return a.material == b.material
	case Object:
		return a.object.Equal(b.object)
	case LightKind:
		return a.light == b.light
	}
	return false
}

// numEqual treats 0 == -0 as true and NaN == NaN as false (spec §9).
func numEqual(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	return x == y
}
