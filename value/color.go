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

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is the r,g,b,a in [0,1] color representation of spec §3.
type Color struct {
	R, G, B, A float64
}

// White is the default material color (spec §3 scene graph default).
var White = Color{R: 1, G: 1, B: 1, A: 1}

// ParseHexColor decodes a "#RGB"/"#RGBA"/"#RRGGBB"/"#RRGGBBAA" literal
// (spec §4.1), canonicalizing 3/4-digit shorthand to the same Color a
// 6/8-digit literal of the doubled digits would produce (spec §8: "#F00
// and #FF0000 produce the same color").
func ParseHexColor(lit string) (Color, error) {
	s := lit
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var alpha = 1.0
	switch len(s) {
	case 3:
		s = doubleDigits(s)
	case 4:
		alpha = hexPair(s[3], s[3])
		s = doubleDigits(s[:3])
	case 6:
		// exact form, handled below
	case 8:
		alpha = hexPair(s[6], s[7])
		s = s[:6]
	default:
		return Color{}, fmt.Errorf("invalid hex color %q", lit)
	}

	c, err := colorful.Hex("#" + s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", lit, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

func doubleDigits(s string) string {
	out := make([]byte, 0, 6)
	for _, c := range []byte(s) {
		out = append(out, c, c)
	}
	return string(out)
}

func hexPair(hi, lo byte) float64 {
	v := float64(hexDigit(hi)*16+hexDigit(lo)) / 255
	return v
}

func hexDigit(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}

// Clamp returns c with each channel clamped to [0,1].
func (c Color) Clamp() Color {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return Color{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

// Array returns c as the [4]float64 the scene package stores.
func (c Color) Array() [4]float64 { return [4]float64{c.R, c.G, c.B, c.A} }

// ColorFromArray is the inverse of Array.
func ColorFromArray(a [4]float64) Color { return Color{R: a[0], G: a[1], B: a[2], A: a[3]} }
