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
	"testing"
	"testing/fstest"

	"shapescript.dev/shapescript/delegate"
	"shapescript.dev/shapescript/internal/core/context"
	"shapescript.dev/shapescript/value"
)

func newTestDelegate() *delegate.Local {
	return delegate.NewLocal(fstest.MapFS{
		"tex.png": {Data: []byte("x")},
	}, delegate.SandboxPolicy{Kind: delegate.SandboxNone})
}

func TestColorPropertySetThenGetRoundTrips(t *testing.T) {
	sym, ok := Lookup("color")
	if !ok {
		t.Fatal("color not registered")
	}
	c := context.NewRoot(1)
	d := newTestDelegate()
	if err := sym.Set(c, value.TupleValue([]value.Value{
		value.NumberValue(1), value.NumberValue(0), value.NumberValue(0),
	}), true, d); err != nil {
		t.Fatalf("Set() = %v", err)
	}
	got := sym.Get(c)
	col, ok := got.AsColor()
	if !ok || col.R != 1 || col.G != 0 || col.B != 0 {
		t.Errorf("Get() = %v, want red", got)
	}
}

func TestColorClearsTexture(t *testing.T) {
	colorSym, _ := Lookup("color")
	textureSym, _ := Lookup("texture")
	c := context.NewRoot(1)
	d := newTestDelegate()

	if err := textureSym.Set(c, value.StringValue("tex.png"), true, d); err != nil {
		t.Fatalf("texture Set() = %v", err)
	}
	if !c.Material.HasTexture {
		t.Fatal("expected texture set")
	}
	if err := colorSym.Set(c, value.NumberValue(1), true, d); err != nil {
		t.Fatalf("color Set() = %v", err)
	}
	if c.Material.HasTexture {
		t.Error("a color command should clear the current texture (spec invariant I4)")
	}
}

func TestRoleLegalityExcludesFunctionForColor(t *testing.T) {
	sym, _ := Lookup("color")
	if sym.Contexts.Has(context.RoleFunction) {
		t.Error("color should be illegal in a function definition (spec §4.4)")
	}
	if !sym.Contexts.Has(context.RoleRoot) {
		t.Error("color should be legal at root")
	}
}

func TestTextureIllegalOnPathRole(t *testing.T) {
	sym, _ := Lookup("texture")
	if sym.Contexts.Has(context.RolePath) {
		t.Error("texture should be illegal in a path-producing scope (spec §4.4)")
	}
}

func TestRndAdvancesContextRNG(t *testing.T) {
	sym, ok := Lookup("rnd")
	if !ok {
		t.Fatal("rnd not registered")
	}
	c := context.NewRoot(1)
	got, err := sym.Func(c, nil)
	if err != nil {
		t.Fatal(err)
	}
	n, _ := got.AsNumber()
	want := 0.23645552527159452
	if diff := n - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("rnd() = %v, want %v (spec §8)", n, want)
	}
}

func TestAssertFailureReportsAssertionKind(t *testing.T) {
	sym, _ := Lookup("assert")
	c := context.NewRoot(1)
	d := newTestDelegate()
	err := sym.Command(c, value.BooleanValue(false), true, d)
	if err == nil {
		t.Fatal("expected an error")
	}
	ae, ok := err.(*ArgError)
	if !ok {
		t.Fatalf("err = %T, want *ArgError", err)
	}
	if ae.Kind.String() != "assertionFailure" {
		t.Errorf("Kind = %v, want assertionFailure", ae.Kind)
	}
}

func TestTranslateAccumulatesOnChildTransform(t *testing.T) {
	sym, _ := Lookup("translate")
	c := context.NewRoot(1)
	d := newTestDelegate()
	v := value.TupleValue([]value.Value{value.NumberValue(1), value.NumberValue(2), value.NumberValue(3)})
	if err := sym.Command(c, v, true, d); err != nil {
		t.Fatal(err)
	}
	if err := sym.Command(c, v, true, d); err != nil {
		t.Fatal(err)
	}
	got := c.ConsumeChildTransform()
	want := [3]float64{2, 4, 6}
	if got.Translation != want {
		t.Errorf("Translation = %v, want %v", got.Translation, want)
	}
}

func TestScaleMultipliesChildTransform(t *testing.T) {
	sym, _ := Lookup("scale")
	c := context.NewRoot(1)
	d := newTestDelegate()
	if err := sym.Command(c, value.NumberValue(2), true, d); err != nil {
		t.Fatal(err)
	}
	got := c.ConsumeChildTransform()
	want := [3]float64{2, 2, 2}
	if got.Scale != want {
		t.Errorf("Scale = %v, want %v", got.Scale, want)
	}
}

func TestCubeBlockBuildsMeshWithBodyColor(t *testing.T) {
	colorSym, _ := Lookup("color")
	cubeSym, _ := Lookup("cube")
	root := context.NewRoot(1)
	body := root.NewChild(context.BlockDefinition, cubeSym.Role)
	d := newTestDelegate()

	if err := colorSym.Set(body, value.NumberValue(1), true, d); err != nil {
		t.Fatal(err)
	}
	got, err := cubeSym.Build(body, value.Value{}, false, delegate.NewPlaceholderMeshLibrary())
	if err != nil {
		t.Fatal(err)
	}
	g, ok := got.AsMesh()
	if !ok {
		t.Fatalf("Build() = %v, want a mesh", got)
	}
	if !g.Material.HasColor || g.Material.Color != [4]float64{1, 1, 1, 1} {
		t.Errorf("Material = %+v, want the body's color command reflected", g.Material)
	}
}

func TestExtrudeRequiresAPathOperand(t *testing.T) {
	sym, _ := Lookup("extrude")
	root := context.NewRoot(1)
	body := root.NewChild(context.BlockDefinition, sym.Role)
	_, err := sym.Build(body, value.Value{}, false, delegate.NewPlaceholderMeshLibrary())
	if err == nil {
		t.Fatal("expected a typeMismatch error for an empty extrude body")
	}
	ae, ok := err.(*ArgError)
	if !ok || ae.Kind.String() != "typeMismatch" {
		t.Errorf("err = %v, want typeMismatch", err)
	}
}

func TestPointCommandAccumulatesPathPoints(t *testing.T) {
	pointSym, _ := Lookup("point")
	pathSym, _ := Lookup("path")
	root := context.NewRoot(1)
	body := root.NewChild(context.BlockDefinition, pathSym.Role)
	d := newTestDelegate()

	pts := []value.Value{
		value.TupleValue([]value.Value{value.NumberValue(0), value.NumberValue(0)}),
		value.TupleValue([]value.Value{value.NumberValue(1), value.NumberValue(0)}),
	}
	for _, p := range pts {
		if err := pointSym.Command(body, p, true, d); err != nil {
			t.Fatal(err)
		}
	}
	got, err := pathSym.Build(body, value.Value{}, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := got.AsPath()
	if !ok || len(p.Points) != 2 {
		t.Errorf("Build() = %v, want a 2-point path", got)
	}
}
