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

var onesOrdinal = [...]string{
	"", "first", "second", "third", "fourth", "fifth",
	"sixth", "seventh", "eighth", "ninth",
}

var teensOrdinal = [...]string{
	"tenth", "eleventh", "twelfth", "thirteenth", "fourteenth",
	"fifteenth", "sixteenth", "seventeenth", "eighteenth", "nineteenth",
}

var tensCardinal = [...]string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

var tensOrdinal = [...]string{
	"", "", "twentieth", "thirtieth", "fortieth", "fiftieth",
	"sixtieth", "seventieth", "eightieth", "ninetieth",
}

// ordinalName spells n (1..99) as an unspaced ordinal word, e.g. 1 →
// "first", 21 → "twentyfirst", 99 → "ninetyninth" (spec §4.6: "numeric
// ordinals (first…ninetyninth)").
func ordinalName(n int) (string, bool) {
	switch {
	case n >= 1 && n <= 9:
		return onesOrdinal[n], true
	case n >= 10 && n <= 19:
		return teensOrdinal[n-10], true
	case n >= 20 && n <= 99:
		tens, ones := n/10, n%10
		if ones == 0 {
			return tensOrdinal[tens], true
		}
		return tensCardinal[tens] + onesOrdinal[ones], true
	}
	return "", false
}

var ordinalIndex map[string]int

func init() {
	ordinalIndex = make(map[string]int, 99)
	for n := 1; n <= 99; n++ {
		name, _ := ordinalName(n)
		ordinalIndex[name] = n
	}
}

// OrdinalIndex reports the 1-based position name refers to ("first" → 1,
// "ninetyninth" → 99), or false if name is not an ordinal word.
func OrdinalIndex(name string) (int, bool) {
	n, ok := ordinalIndex[name]
	return n, ok
}
