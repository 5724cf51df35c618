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

package delegate

import (
	"fmt"
	"math"

	"shapescript.dev/shapescript/scene"
	"shapescript.dev/shapescript/value"
)

// PlaceholderMeshLibrary is a pure-Go MeshLibrary that produces
// dimensionally-correct (vertex/bounds-accurate) placeholder geometry, so
// the evaluator and CLI have a working demo path without a real
// mesh/graphics backend (SPEC_FULL.md §4).
type PlaceholderMeshLibrary struct{}

// NewPlaceholderMeshLibrary creates a PlaceholderMeshLibrary.
func NewPlaceholderMeshLibrary() *PlaceholderMeshLibrary { return &PlaceholderMeshLibrary{} }

func (PlaceholderMeshLibrary) Cube(size value.Triple) *scene.Geometry {
	g := scene.NewGeometry(scene.Cube)
	g.Path = boxOutline(size.X, size.Y, size.Z)
	return g
}

func (PlaceholderMeshLibrary) Sphere(segments int) *scene.Geometry {
	g := scene.NewGeometry(scene.Sphere)
	g.Segments = segments
	g.Path = circleOutline(segments, 0.5)
	return g
}

func (PlaceholderMeshLibrary) Cylinder(segments int) *scene.Geometry {
	g := scene.NewGeometry(scene.Cylinder)
	g.Segments = segments
	g.Path = boxOutline(1, 1, 1)
	return g
}

func (PlaceholderMeshLibrary) Cone(segments int) *scene.Geometry {
	g := scene.NewGeometry(scene.Cone)
	g.Segments = segments
	g.Path = boxOutline(1, 1, 1)
	return g
}

func (PlaceholderMeshLibrary) Circle(segments int) *scene.Path {
	return circleOutline(segments, 0.5)
}

func (PlaceholderMeshLibrary) Square() *scene.Path {
	return rectOutline(1, 1)
}

func (PlaceholderMeshLibrary) RoundRect(radius float64, segments int) *scene.Path {
	return rectOutline(1, 1)
}

func (PlaceholderMeshLibrary) Polygon(sides int) *scene.Path {
	if sides < 3 {
		sides = 3
	}
	return circleOutline(sides, 0.5)
}

func (PlaceholderMeshLibrary) Arc(angle float64, radius float64, segments int) *scene.Path {
	if segments < 2 {
		segments = 2
	}
	pts := make([]scene.PathPoint, 0, segments+1)
	for i := 0; i <= segments; i++ {
		theta := angle * float64(i) / float64(segments)
		pts = append(pts, scene.PathPoint{Position: [3]float64{
			radius * math.Cos(theta), radius * math.Sin(theta), 0,
		}})
	}
	return &scene.Path{Points: pts}
}

func (PlaceholderMeshLibrary) SVGPath(d string) (*scene.Path, error) {
	return parseSimpleSVGPath(d)
}

func (PlaceholderMeshLibrary) Text(text, fontID string) (*scene.Path, error) {
	if text == "" {
		return &scene.Path{}, nil
	}
	// Placeholder glyph layout: one unit-square outline per rune, laid
	// out left to right. A real host replaces this with font-derived
	// vector outlines.
	n := len([]rune(text))
	pts := make([]scene.PathPoint, 0, n*5)
	for i := 0; i < n; i++ {
		x0 := float64(i)
		box := rectOutline(1, 1)
		for _, p := range box.Points {
			pts = append(pts, scene.PathPoint{Position: [3]float64{p.Position[0] + x0, p.Position[1], 0}})
		}
	}
	return &scene.Path{Points: pts}, nil
}

func (PlaceholderMeshLibrary) Extrude(paths []*scene.Path, along *scene.Path) *scene.Geometry {
	g := scene.NewGeometry(scene.Extrude)
	if len(paths) > 0 {
		g.Path = paths[0]
	}
	return g
}

func (PlaceholderMeshLibrary) Lathe(paths []*scene.Path, segments int) *scene.Geometry {
	g := scene.NewGeometry(scene.Lathe)
	g.Segments = segments
	if len(paths) > 0 {
		g.Path = paths[0]
	}
	return g
}

func (PlaceholderMeshLibrary) Loft(paths []*scene.Path) *scene.Geometry {
	g := scene.NewGeometry(scene.Loft)
	if len(paths) > 0 {
		g.Path = paths[0]
	}
	return g
}

func (PlaceholderMeshLibrary) Fill(paths []*scene.Path) *scene.Geometry {
	g := scene.NewGeometry(scene.Fill)
	if len(paths) > 0 {
		g.Path = paths[0]
	}
	return g
}

func (PlaceholderMeshLibrary) Hull(children []*scene.Geometry) *scene.Geometry {
	g := scene.NewGeometry(scene.Hull)
	g.Children = children
	return g
}

func (PlaceholderMeshLibrary) Triangulate(g *scene.Geometry) []*scene.Polygon {
	if g.Path == nil || len(g.Path.Points) < 3 {
		return nil
	}
	return []*scene.Polygon{{Points: g.Path.Points, Material: g.Material}}
}

func boxOutline(w, h, d float64) *scene.Path {
	hw, hh, hd := w/2, h/2, d/2
	corners := [][3]float64{
		{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {-hw, hh, -hd},
		{-hw, hh, hd}, {hw, hh, hd}, {hw, -hh, hd}, {-hw, -hh, hd}, {-hw, -hh, -hd},
	}
	pts := make([]scene.PathPoint, len(corners))
	for i, c := range corners {
		pts[i] = scene.PathPoint{Position: c}
	}
	return &scene.Path{Points: pts}
}

func rectOutline(w, h float64) *scene.Path {
	hw, hh := w/2, h/2
	corners := [][3]float64{{-hw, -hh, 0}, {hw, -hh, 0}, {hw, hh, 0}, {-hw, hh, 0}, {-hw, -hh, 0}}
	pts := make([]scene.PathPoint, len(corners))
	for i, c := range corners {
		pts[i] = scene.PathPoint{Position: c}
	}
	return &scene.Path{Points: pts}
}

func circleOutline(segments int, radius float64) *scene.Path {
	if segments < 3 {
		segments = 16
	}
	pts := make([]scene.PathPoint, segments+1)
	for i := 0; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = scene.PathPoint{Position: [3]float64{radius * math.Cos(theta), radius * math.Sin(theta), 0}}
	}
	return &scene.Path{Points: pts}
}

// parseSimpleSVGPath supports the "M x y L x y x y ... Z" subset used by
// spec §8's worked example (fill svgpath "M150 0 L75 200 225 200 Z"):
// absolute MoveTo, absolute LineTo (with implicit repetition of further
// coordinate pairs), and ClosePath.
func parseSimpleSVGPath(d string) (*scene.Path, error) {
	toks := tokenizeSVGPath(d)
	var pts []scene.PathPoint
	i := 0
	next := func() (float64, error) {
		if i >= len(toks) {
			return 0, fmt.Errorf("svgpath: unexpected end of data")
		}
		v := toks[i]
		i++
		return v.num, nil
	}
	for i < len(toks) {
		cmd := toks[i].cmd
		i++
		switch cmd {
		case 'M', 'L':
			for i < len(toks) && toks[i].cmd == 0 {
				x, err := next()
				if err != nil {
					return nil, err
				}
				y, err := next()
				if err != nil {
					return nil, err
				}
				pts = append(pts, scene.PathPoint{Position: [3]float64{x, y, 0}})
			}
		case 'Z', 'z':
			if len(pts) > 0 {
				pts = append(pts, pts[0])
			}
		default:
			return nil, fmt.Errorf("svgpath: unsupported command %q", string(cmd))
		}
	}
	return &scene.Path{Points: pts}, nil
}

type svgTok struct {
	cmd byte // non-zero for a command letter, else 0 for a number token
	num float64
}

func tokenizeSVGPath(d string) []svgTok {
	var toks []svgTok
	i := 0
	for i < len(d) {
		c := d[i]
		switch {
		case c == ' ' || c == ',' || c == '\t' || c == '\n':
			i++
		case (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
			toks = append(toks, svgTok{cmd: c})
			i++
		default:
			start := i
			if d[i] == '-' || d[i] == '+' {
				i++
			}
			for i < len(d) && (d[i] >= '0' && d[i] <= '9' || d[i] == '.') {
				i++
			}
			var n float64
			fmt.Sscanf(d[start:i], "%g", &n)
			toks = append(toks, svgTok{num: n})
		}
	}
	return toks
}
