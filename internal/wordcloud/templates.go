// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wordcloud

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// DefaultTemplate is used when no template is configured.
const DefaultTemplate = "harvard"

// HSL is a colour in hue/saturation/lightness form.
type HSL struct {
	H, S, L float64
}

// String formats the colour as a CSS hsl() value.
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", num(c.H), num(c.S), num(c.L))
}

func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*10)/10, 'f', -1, 64)
}

// Template is a colour scheme. Color receives the word's count as a
// fraction of the top count (0, 1].
type Template struct {
	Color       func(frac float64) HSL
	RotateRatio float64
	Shape       string
}

var templates = map[string]Template{
	"harvard": {
		Color:       func(f float64) HSL { return HSL{0, 70 + f*20, 60 - f*30} },
		RotateRatio: 0.3,
		Shape:       "circle",
	},
	"modern": {
		Color:       func(f float64) HSL { return HSL{220 + f*40, 60 + f*30, 50 - f*20} },
		RotateRatio: 0.5,
		Shape:       "circle",
	},
	"academic": {
		Color:       func(f float64) HSL { return HSL{45, 80 + f*20, 55 - f*25} },
		RotateRatio: 0.1,
		Shape:       "circle",
	},
	"minimal": {
		Color:       func(f float64) HSL { return HSL{0, 0, 20 + f*60} },
		RotateRatio: 0,
		Shape:       "circle",
	},
	"rainbow": {
		// Hot words red, rare words blue.
		Color:       func(f float64) HSL { return HSL{240 - f*240, 60 + f*20, 45 + f*15} },
		RotateRatio: 0.4,
		Shape:       "circle",
	},
	"sunset": {
		Color:       func(f float64) HSL { return HSL{f * 60, 85 + f*15, 55 + f*15} },
		RotateRatio: 0.2,
		Shape:       "circle",
	},
	"ocean": {
		Color:       func(f float64) HSL { return HSL{200 + f*40, 70 + f*30, 40 + f*30} },
		RotateRatio: 0.3,
		Shape:       "circle",
	},
	"forest": {
		Color:       func(f float64) HSL { return HSL{120 + f*40, 75 + f*25, 35 + f*35} },
		RotateRatio: 0.25,
		Shape:       "circle",
	},
}

// TemplateNames returns the available template names, sorted.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for n := range templates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
