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
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Obj is the `object(ordered map<string,Value>)` variant of spec §3: an
// insertion-ordered string-keyed map. Backed by linkedhashmap so iteration
// order matches insertion order regardless of Go's unordered map
// iteration (grounded on npillmayer-gorgo's use of emirpasic/gods for the
// same "I need a deterministic-order collection" need).
type Obj struct {
	m *linkedhashmap.Map
}

// NewObj creates an empty Obj.
func NewObj() *Obj { return &Obj{m: linkedhashmap.New()} }

// Set inserts or overwrites the value bound to key, preserving the
// position of an existing key.
func (o *Obj) Set(key string, v Value) { o.m.Put(key, v) }

// Get looks up key.
func (o *Obj) Get(key string) (Value, bool) {
	v, ok := o.m.Get(key)
	if !ok {
		return Value{}, false
	}
	return v.(Value), true
}

// Keys returns the object's keys in insertion order.
func (o *Obj) Keys() []string {
	raw := o.m.Keys()
	out := make([]string, len(raw))
	for i, k := range raw {
		out[i] = k.(string)
	}
	return out
}

// Len reports the number of entries.
func (o *Obj) Len() int { return o.m.Size() }

// String renders the object as "{k: v, k: v}", for debug/print output.
func (o *Obj) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range o.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		v, _ := o.Get(k)
		fmt.Fprintf(&b, "%s: %s", k, v.String())
	}
	b.WriteByte('}')
	return b.String()
}

// Equal reports whether o and other hold the same keys, in the same
// order, with structurally equal values.
func (o *Obj) Equal(other *Obj) bool {
	if o == nil || other == nil {
		return o == other
	}
	keys, otherKeys := o.Keys(), other.Keys()
	if len(keys) != len(otherKeys) {
		return false
	}
	for i, k := range keys {
		if k != otherKeys[i] {
			return false
		}
		v, _ := o.Get(k)
		ov, _ := other.Get(k)
		if !Equal(v, ov) {
			return false
		}
	}
	return true
}
