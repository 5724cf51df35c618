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

package main

import "shapescript.dev/shapescript/scene"

// exportNode is the serialization shape for `export` (SPEC_FULL.md §4):
// a plain tree with the geometry type spelled out as its stdlib name
// rather than scene.GeometryType's integer tag, suitable for YAML/JSON
// consumption by tooling that isn't a full renderer (spec §6 "emit ...
// a serialized scene").
type exportNode struct {
	ID        string         `json:"id" yaml:"id"`
	Type      string         `json:"type" yaml:"type"`
	Name      string         `json:"name,omitempty" yaml:"name,omitempty"`
	Transform exportXform    `json:"transform" yaml:"transform"`
	Material  exportMaterial `json:"material" yaml:"material"`
	Children  []exportNode   `json:"children,omitempty" yaml:"children,omitempty"`
}

type exportXform struct {
	Translation [3]float64 `json:"translation" yaml:"translation"`
	Rotation    [3]float64 `json:"rotation" yaml:"rotation"`
	Scale       [3]float64 `json:"scale" yaml:"scale"`
}

type exportMaterial struct {
	Color       [4]float64 `json:"color" yaml:"color"`
	Texture     string     `json:"texture,omitempty" yaml:"texture,omitempty"`
	Opacity     float64    `json:"opacity" yaml:"opacity"`
	Glow        float64    `json:"glow" yaml:"glow"`
	Metallicity float64    `json:"metallicity" yaml:"metallicity"`
	Roughness   float64    `json:"roughness" yaml:"roughness"`
}

// toExportNode converts a committed scene.Geometry tree into its export
// form, recursing depth-first in the children's source order (spec §5
// "Ordering ... children are appended in source order").
func toExportNode(g *scene.Geometry) exportNode {
	n := exportNode{
		ID:   g.ID,
		Type: g.Type.String(),
		Name: g.Name,
		Transform: exportXform{
			Translation: g.Transform.Translation,
			Rotation:    g.Transform.Rotation,
			Scale:       g.Transform.Scale,
		},
		Material: exportMaterial{
			Color:       g.Material.Color,
			Texture:     g.Material.Texture,
			Opacity:     g.Material.Opacity,
			Glow:        g.Material.Glow,
			Metallicity: g.Material.Metallicity,
			Roughness:   g.Material.Roughness,
		},
	}
	for _, c := range g.Children {
		n.Children = append(n.Children, toExportNode(c))
	}
	return n
}
