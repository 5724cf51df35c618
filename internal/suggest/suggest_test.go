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

package suggest

import "testing"

func TestForFindsCloseMatch(t *testing.T) {
	got := For("rotat", []string{"rotate", "translate", "scale"}, 2)
	if got != "rotate" {
		t.Errorf("For(rotat) = %q, want rotate", got)
	}
}

func TestForAtDistanceOneForShortNames(t *testing.T) {
	got := For("sze", []string{"size", "seed"}, 2)
	if got != "size" {
		t.Errorf("For(sze) = %q, want size", got)
	}
}

func TestForReturnsEmptyBeyondBudget(t *testing.T) {
	got := For("xyz", []string{"cube", "sphere"}, 2)
	if got != "" {
		t.Errorf("For(xyz) = %q, want \"\"", got)
	}
}

func TestForExcludesExactMatch(t *testing.T) {
	got := For("rotate", []string{"rotate"}, 2)
	if got != "" {
		t.Errorf("For(rotate) = %q, want \"\" (no suggestion for an exact match)", got)
	}
}
