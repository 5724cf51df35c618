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

// End-to-end scenarios straight out of spec §8's literal test oracle.
package eval_test

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"shapescript.dev/shapescript/delegate"
	"shapescript.dev/shapescript/errors"
	"shapescript.dev/shapescript/internal/core/eval"
	"shapescript.dev/shapescript/parser"
	"shapescript.dev/shapescript/scene"
)

func evalSource(t *testing.T, src string) (*scene.Geometry, *delegate.Local, errors.List) {
	t.Helper()
	prog, err := parser.ParseFile("<test>", src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	d := delegate.NewLocal(fstest.MapFS{}, delegate.SandboxPolicy{Kind: delegate.SandboxNone})
	g, errs := eval.Eval(prog, 0, d, d.Mesh)
	return g, d, errs
}

func TestColorThenSphereProducesOneRedSphere(t *testing.T) {
	g, _, errs := evalSource(t, "color 1 0 0\nsphere\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	if len(g.Children) != 1 {
		t.Fatalf("scene has %d children, want 1", len(g.Children))
	}
	sphere := g.Children[0]
	if sphere.Type != scene.Sphere {
		t.Errorf("type = %v, want Sphere", sphere.Type)
	}
	want := [4]float64{1, 0, 0, 1}
	if diff := cmp.Diff(want, sphere.Material.Color); diff != "" {
		t.Errorf("material color mismatch (-want +got):\n%s", diff)
	}
}

func TestForLoopLogsEachIteration(t *testing.T) {
	_, d, errs := evalSource(t, "for i in 1 to 3 {\n  print i\n}\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	log := d.Log()
	if len(log) != 3 {
		t.Fatalf("log has %d entries, want 3", len(log))
	}
	for i, entry := range log {
		if len(entry) != 1 {
			t.Fatalf("entry %d has %d values, want 1", i, len(entry))
		}
		n, ok := entry[0].AsNumber()
		if !ok || n != float64(i+1) {
			t.Errorf("entry %d = %v, want %d", i, entry[0], i+1)
		}
	}
}

func TestBlockOptionDefaultAndOverride(t *testing.T) {
	src := "define foo {\n  option bar 5\n  print bar\n}\n" +
		"foo {\n  bar 6\n}\n"
	_, d, errs := evalSource(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	log := d.Log()
	if len(log) != 1 || len(log[0]) != 1 {
		t.Fatalf("log = %v, want one entry of one value", log)
	}
	if n, _ := log[0][0].AsNumber(); n != 6 {
		t.Errorf("bar = %v, want 6", n)
	}

	_, d2, errs := evalSource(t, "define foo {\n  option bar 5\n  print bar\n}\nfoo\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	log2 := d2.Log()
	if len(log2) != 1 || len(log2[0]) != 1 {
		t.Fatalf("log = %v, want one entry of one value", log2)
	}
	if n, _ := log2[0][0].AsNumber(); n != 5 {
		t.Errorf("bar default = %v, want 5", n)
	}
}

func TestDefineVectorMemberAccess(t *testing.T) {
	_, d, errs := evalSource(t, "define v 1 2 3\nprint v.y\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	log := d.Log()
	if len(log) != 1 || len(log[0]) != 1 {
		t.Fatalf("log = %v, want one entry of one value", log)
	}
	if n, _ := log[0][0].AsNumber(); n != 2 {
		t.Errorf("v.y = %v, want 2", n)
	}
}

func TestFillSVGPathProducesFourPoints(t *testing.T) {
	g, _, errs := evalSource(t, `fill svgpath "M150 0 L75 200 225 200 Z"`+"\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	if len(g.Children) != 1 {
		t.Fatalf("scene has %d children, want 1", len(g.Children))
	}
	fill := g.Children[0]
	if fill.Type != scene.Fill {
		t.Errorf("type = %v, want Fill", fill.Type)
	}
	if fill.Path == nil || len(fill.Path.Points) != 4 {
		t.Errorf("path points = %v, want 4", fill.Path)
	}
}

func TestExtrudeMeshArgumentIsATypeMismatch(t *testing.T) {
	_, _, errs := evalSource(t, "extrude sphere\n")
	if len(errs) == 0 {
		t.Fatal("expected a type-mismatch diagnostic")
	}
	e := errs[0]
	if e.Kind() != errors.TypeMismatch {
		t.Errorf("kind = %v, want TypeMismatch", e.Kind())
	}
}

func TestTranslateAppliesToNextChildOnly(t *testing.T) {
	g, _, errs := evalSource(t, "translate 1 2 3\ncube\ncube\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	if len(g.Children) != 2 {
		t.Fatalf("scene has %d children, want 2", len(g.Children))
	}
	if diff := cmp.Diff([3]float64{1, 2, 3}, g.Children[0].Transform.Translation); diff != "" {
		t.Errorf("first cube translation mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([3]float64{0, 0, 0}, g.Children[1].Transform.Translation); diff != "" {
		t.Errorf("second cube should not inherit the consumed translate (-want +got):\n%s", diff)
	}
}

func TestLoopCarriesTransformStateAcrossIterations(t *testing.T) {
	g, _, errs := evalSource(t, "for i in 1 to 2 {\n  translate 1 0 0\n}\ncube\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	if len(g.Children) != 1 {
		t.Fatalf("scene has %d children, want 1", len(g.Children))
	}
	if diff := cmp.Diff([3]float64{2, 0, 0}, g.Children[0].Transform.Translation); diff != "" {
		t.Errorf("loop body translates should accumulate across iterations (-want +got):\n%s", diff)
	}
}

func TestUserBlockReturnsTrailingExpression(t *testing.T) {
	_, d, errs := evalSource(t, "define two {\n  1 + 1\n}\nprint two\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	log := d.Log()
	if len(log) != 1 || len(log[0]) != 1 {
		t.Fatalf("log = %v, want one entry of one value", log)
	}
	if n, _ := log[0][0].AsNumber(); n != 2 {
		t.Errorf("two = %v, want 2", n)
	}
}

func TestZeroStepRangeIsRejected(t *testing.T) {
	_, _, errs := evalSource(t, "for i in 1 to 3 step 0 {\n}\n")
	if len(errs) == 0 {
		t.Fatal("expected a diagnostic for a zero step")
	}
	if got := errs[0].Error(); got != "Step value must be nonzero" {
		t.Errorf("message = %q, want \"Step value must be nonzero\"", got)
	}
}

func TestStepReplacesAnExistingRangeStep(t *testing.T) {
	_, d, errs := evalSource(t, "define r 1 to 5\nfor i in r step 2 {\n  print i\n}\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	log := d.Log()
	want := []float64{1, 3, 5}
	if len(log) != len(want) {
		t.Fatalf("log has %d entries, want %d", len(log), len(want))
	}
	for i, entry := range log {
		if n, _ := entry[0].AsNumber(); n != want[i] {
			t.Errorf("entry %d = %v, want %v", i, entry[0], want[i])
		}
	}
}

func TestModulusFollowsDividendSign(t *testing.T) {
	_, d, errs := evalSource(t, "print 7 % 2\nprint -7 % 2\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	log := d.Log()
	if len(log) != 2 {
		t.Fatalf("log has %d entries, want 2", len(log))
	}
	if n, _ := log[0][0].AsNumber(); n != 1 {
		t.Errorf("7 %% 2 = %v, want 1", n)
	}
	if n, _ := log[1][0].AsNumber(); n != -1 {
		t.Errorf("-7 %% 2 = %v, want -1", n)
	}
}

func TestFunctionAppliesToJuxtaposedArgument(t *testing.T) {
	_, d, errs := evalSource(t, "print cos 0\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	log := d.Log()
	if len(log) != 1 || len(log[0]) != 1 {
		t.Fatalf("log = %v, want one entry of one value", log)
	}
	if n, _ := log[0][0].AsNumber(); n != 1 {
		t.Errorf("cos 0 = %v, want 1", n)
	}
}

func TestCancelledDelegateStopsEvaluation(t *testing.T) {
	prog, err := parser.ParseFile("<test>", "print 1\nprint 2\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	d := delegate.NewLocal(fstest.MapFS{}, delegate.SandboxPolicy{Kind: delegate.SandboxNone})
	d.Cancel()
	_, errs := eval.Eval(prog, 0, d, d.Mesh)
	if len(errs) == 0 || errs[len(errs)-1].Kind() != errors.Cancelled {
		t.Fatalf("errs = %v, want a Cancelled diagnostic", errs)
	}
	if len(d.Log()) != 0 {
		t.Errorf("log = %v, want no entries after pre-cancelled start", d.Log())
	}
}

func TestNonBooleanIfConditionIsATypeMismatch(t *testing.T) {
	_, _, errs := evalSource(t, "if 1 {\n  cube\n}\n")
	if len(errs) == 0 {
		t.Fatal("expected a type-mismatch diagnostic for a numeric condition")
	}
	if errs[0].Kind() != errors.TypeMismatch {
		t.Errorf("kind = %v, want TypeMismatch", errs[0].Kind())
	}
}

func TestUseBeforeDefineIsAForwardReference(t *testing.T) {
	_, _, errs := evalSource(t, "print x\ndefine x 1\n")
	if len(errs) == 0 {
		t.Fatal("expected a forward-reference diagnostic")
	}
	if errs[0].Kind() != errors.ForwardReference {
		t.Errorf("kind = %v, want ForwardReference", errs[0].Kind())
	}
}

func TestUnknownSymbolSuggestsClosestName(t *testing.T) {
	_, _, errs := evalSource(t, "spere\n")
	if len(errs) == 0 {
		t.Fatal("expected an unknown-symbol diagnostic")
	}
	e := errs[0]
	if e.Kind() != errors.UnknownSymbol {
		t.Errorf("kind = %v, want UnknownSymbol", e.Kind())
	}
	if e.Suggestion() != "sphere" {
		t.Errorf("suggestion = %q, want sphere", e.Suggestion())
	}
}

func TestSeededRndMatchesDocumentedConstant(t *testing.T) {
	_, d, errs := evalSource(t, "seed 1\nprint rnd\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	log := d.Log()
	if len(log) != 1 || len(log[0]) != 1 {
		t.Fatalf("log = %v, want one entry of one value", log)
	}
	n, _ := log[0][0].AsNumber()
	if n != 0.23645552527159452 {
		t.Errorf("rnd after seed 1 = %v, want 0.23645552527159452", n)
	}
}
