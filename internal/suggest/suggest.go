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

// Package suggest produces "Did you mean '<name>'?" candidates for
// unknown-symbol and unknown-member diagnostics (spec §4.6, §4.7), via
// Levenshtein edit distance over the set of names visible at the error
// site.
package suggest

import (
	"sort"

	"github.com/agext/levenshtein"
	"github.com/emirpasic/gods/sets/treeset"
)

// maxDistance returns the distance budget for a name of the given length:
// ⌈len/3⌉, per spec §4.7 ("edit distance ≤ ⌈len/3⌉"). Unknown-symbol
// lookups additionally cap at 2 regardless of length (spec §4.6); callers
// that want that tighter bound pass cap=2.
func maxDistance(name string, cap int) int {
	d := (len(name) + 2) / 3
	if cap > 0 && d > cap {
		return cap
	}
	return d
}

// byName orders strings so candidate iteration (and therefore tie-
// breaking) is deterministic (grounded on npillmayer-gorgo's use of
// emirpasic/gods/sets/treeset for the same "stable iteration order" need).
func byName(a, b interface{}) int {
	sa, sb := a.(string), b.(string)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

// For returns the closest candidate to name among candidates, or "" if
// none falls within the edit-distance budget (spec §4.7: "Suggestion is
// produced via Levenshtein edit distance ≤ ⌈len/3⌉ ... or emitted when ≥1
// match exists", spec §4.6's tighter "≤ 2" for unknown symbols). cap <= 0
// means "use the ⌈len/3⌉ budget with no extra cap".
func For(name string, candidates []string, cap int) string {
	if name == "" || len(candidates) == 0 {
		return ""
	}
	set := treeset.NewWith(byName)
	for _, c := range candidates {
		set.Add(c)
	}

	budget := maxDistance(name, cap)
	best := ""
	bestDist := budget + 1
	values := set.Values()
	sort.Slice(values, func(i, j int) bool { return values[i].(string) < values[j].(string) })
	for _, v := range values {
		cand := v.(string)
		if cand == name {
			continue
		}
		d := levenshtein.Distance(name, cand, nil)
		if d <= budget && d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}
