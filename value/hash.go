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

import (
	"fmt"

	"github.com/cnf/structhash"
)

// canonical is the flat, hashable projection of a Value used by Hash: a
// tagged struct of plain Go types so structhash.Hash sees a stable shape
// regardless of the tagged union's unexported fields.
type canonical struct {
	Kind    string
	Num     float64
	Str     string
	Bool    bool
	Color   [4]float64
	Texture Texture
	Triple  Triple
	Range   Range
	Tuple   []canonical
	Ptr     string
	Object  []kv
}

type kv struct {
	Key string
	Val canonical
}

// Hash returns a stable content hash of v (spec §4.3: "every value type is
// hashable"). Two values that are Equal are not guaranteed to Hash
// identically by pointer-valued kinds (path/mesh/material/light hash by
// identity, since the spec gives them no value semantics), but all other
// kinds hash by content.
func (v Value) Hash() string {
	h, err := structhash.Hash(v.canonicalize(), 1)
	if err != nil {
		// structhash only fails on unsupported reflect kinds; canonical
		// is built entirely from plain types, so this is unreachable.
		return fmt.Sprintf("error:%v", err)
	}
	return h
}

func (v Value) canonicalize() canonical {
	c := canonical{Kind: v.kind.String()}
	switch v.kind {
	case Number:
		c.Num = v.num
	case String:
		c.Str = v.str
	case Boolean:
		c.Bool = v.boolean
	case ColorKind:
		c.Color = v.color.Array()
	case TextureKind:
		c.Texture = v.texture
	case Vector, Size, Rotation:
		c.Triple = v.triple
	case RangeKind:
		c.Range = v.rng
	case Tuple:
		for _, e := range v.tuple {
			c.Tuple = append(c.Tuple, e.canonicalize())
		}
	case PathKind:
		c.Ptr = fmt.Sprintf("%p", v.path)
	case MeshKind:
		c.Ptr = fmt.Sprintf("%p", v.mesh)
	case PolygonKind:
		c.Ptr = fmt.Sprintf("%p", v.polygon)
	case MaterialKind:
		c.Ptr = fmt.Sprintf("%p", v.material)
	case LightKind:
		c.Ptr = fmt.Sprintf("%p", v.light)
	case Object:
		if v.object != nil {
			for _, k := range v.object.Keys() {
				e, _ := v.object.Get(k)
				c.Object = append(c.Object, kv{Key: k, Val: e.canonicalize()})
			}
		}
	}
	return c
}
