// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package flow builds Sankey diagram data that shows how publications in
// each research area spread over the years.
package flow

import (
	"sort"
	"strconv"

	"github.com/pdiddy/scholar-site/pkg/types"
)

// Node kinds.
const (
	KindArea = "area"
	KindYear = "year"
)

// Node is one Sankey node.
type Node struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Year  int    `json:"year,omitempty"`
	Color string `json:"color"`
}

// Link connects an area node to a year node. Value is the number of
// publications of that area in that year.
type Link struct {
	Source int      `json:"source"`
	Target int      `json:"target"`
	Value  int      `json:"value"`
	Titles []string `json:"titles"`
}

// Diagram is the renderer input.
type Diagram struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Empty reports whether there is nothing to draw.
func (d Diagram) Empty() bool { return len(d.Nodes) == 0 || len(d.Links) == 0 }

// areaColors are the fixed colours of the well-known areas.
var areaColors = map[string]string{
	"Computer Architecture":    "#A51C30",
	"Machine Learning Systems": "#1E6091",
	"Autonomous Agents":        "#2D6A4F",
	"Mobile Computing":         "#B5651D",
	"Systems & Software":       "#5A189A",
	"Security & Privacy":       "#6C757D",
	"Networking":               "#0F766E",
}

var fallbackColors = []string{"#E76F51", "#264653", "#8AB17D", "#F4A261", "#9C6644", "#3A86FF"}

// AreaColor returns the node colour of an area. Unknown areas get a
// colour from a fallback palette keyed on the name.
func AreaColor(area string) string {
	if c, ok := areaColors[area]; ok {
		return c
	}
	var h uint32
	for _, r := range area {
		h = h*31 + uint32(r)
	}
	return fallbackColors[h%uint32(len(fallbackColors))]
}

// YearColor shades a year node by recency relative to currentYear:
// two years or newer, ten years or newer, and older.
func YearColor(year, currentYear int) string {
	switch age := currentYear - year; {
	case age <= 2:
		return "#D62828"
	case age <= 10:
		return "#F77F00"
	default:
		return "#ADB5BD"
	}
}

// Build returns the diagram for pubs. Area nodes come first in the order
// of areas (areas with no publications are left out, labels missing from
// areas follow in name order), then year nodes newest first. A
// publication in several areas contributes to each area's link.
func Build(pubs []types.Publication, areas []string, currentYear int) Diagram {
	type key struct {
		area string
		year int
	}
	titles := make(map[key][]string)
	seenArea := make(map[string]bool)
	seenYear := make(map[int]bool)
	for _, p := range pubs {
		for _, a := range p.Areas {
			k := key{a, p.Year}
			titles[k] = append(titles[k], p.Title)
			seenArea[a] = true
			seenYear[p.Year] = true
		}
	}

	d := Diagram{Nodes: []Node{}, Links: []Link{}}
	if len(titles) == 0 {
		return d
	}

	var order []string
	listed := make(map[string]bool)
	for _, a := range areas {
		listed[a] = true
		if seenArea[a] {
			order = append(order, a)
		}
	}
	var extra []string
	for a := range seenArea {
		if !listed[a] {
			extra = append(extra, a)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	years := make([]int, 0, len(seenYear))
	for y := range seenYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	areaIdx := make(map[string]int, len(order))
	for _, a := range order {
		areaIdx[a] = len(d.Nodes)
		d.Nodes = append(d.Nodes, Node{ID: "area:" + a, Name: a, Kind: KindArea, Color: AreaColor(a)})
	}
	yearIdx := make(map[int]int, len(years))
	for _, y := range years {
		yearIdx[y] = len(d.Nodes)
		name := strconv.Itoa(y)
		d.Nodes = append(d.Nodes, Node{ID: "year:" + name, Name: name, Kind: KindYear, Year: y, Color: YearColor(y, currentYear)})
	}

	for _, a := range order {
		for _, y := range years {
			t, ok := titles[key{a, y}]
			if !ok {
				continue
			}
			d.Links = append(d.Links, Link{Source: areaIdx[a], Target: yearIdx[y], Value: len(t), Titles: t})
		}
	}
	return d
}
