// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog derives the publications view from a classified
// publication list: area filters and counts, summary statistics, and the
// table, JSON, and CSL renderings.
package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-site/internal/classify"
	"github.com/pdiddy/scholar-site/pkg/types"
)

// AllAreas is the filter value that selects every publication.
const AllAreas = "All"

// Filter returns the publications labelled with area. An empty area or
// AllAreas returns pubs unchanged.
func Filter(pubs []types.Publication, area string) []types.Publication {
	if area == "" || area == AllAreas {
		return pubs
	}
	var out []types.Publication
	for _, p := range pubs {
		if p.HasArea(area) {
			out = append(out, p)
		}
	}
	return out
}

// Relabel returns a copy of pubs with areas assigned by t. The input is
// not modified, so a cached list labelled under one taxonomy can be viewed
// under another.
func Relabel(pubs []types.Publication, t *classify.Taxonomy) []types.Publication {
	out := make([]types.Publication, len(pubs))
	copy(out, pubs)
	for i := range out {
		out[i].Areas = t.Classify(out[i])
	}
	return out
}

// Count is a label with the number of publications carrying it.
type Count struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// CountByArea counts publications per area, in the order of areas. A
// publication with several areas counts toward each.
func CountByArea(pubs []types.Publication, areas []string) []Count {
	counts := make([]Count, len(areas))
	for i, area := range areas {
		counts[i].Name = area
		for _, p := range pubs {
			if p.HasArea(area) {
				counts[i].Count++
			}
		}
	}
	return counts
}

// AreaGroup is the publications of one area.
type AreaGroup struct {
	Area         string              `json:"area"`
	Publications []types.Publication `json:"publications"`
}

// GroupByArea groups publications by area in the order of areas. Areas
// with no publications are omitted; labels not in areas are grouped last
// in name order.
func GroupByArea(pubs []types.Publication, areas []string) []AreaGroup {
	byArea := make(map[string][]types.Publication)
	for _, p := range pubs {
		for _, a := range p.Areas {
			byArea[a] = append(byArea[a], p)
		}
	}

	var groups []AreaGroup
	known := make(map[string]bool, len(areas))
	for _, a := range areas {
		known[a] = true
		if len(byArea[a]) > 0 {
			groups = append(groups, AreaGroup{Area: a, Publications: byArea[a]})
		}
	}

	var extra []string
	for a := range byArea {
		if !known[a] {
			extra = append(extra, a)
		}
	}
	sort.Strings(extra)
	for _, a := range extra {
		groups = append(groups, AreaGroup{Area: a, Publications: byArea[a]})
	}
	return groups
}

// Summary holds the headline numbers of the publications page.
type Summary struct {
	Total        int     `json:"total"`
	CoAuthors    int     `json:"co_authors"`
	Areas        []Count `json:"areas"`
	Venues       []Count `json:"venues"`
	Years        []Count `json:"years"`
	TopCoAuthors []Count `json:"top_co_authors"`
}

// Summarize computes the summary of pubs. Authors matching one of
// ownNames (case-insensitively) are not co-authors. Venues and co-authors
// are sorted by count then name; years newest first. topN bounds
// TopCoAuthors (10 when zero or negative).
func Summarize(pubs []types.Publication, areas, ownNames []string, topN int) Summary {
	if topN <= 0 {
		topN = 10
	}
	own := make(map[string]bool, len(ownNames))
	for _, n := range ownNames {
		own[strings.ToLower(strings.TrimSpace(n))] = true
	}

	coAuthors := make(map[string]int)
	venues := make(map[string]int)
	years := make(map[int]int)
	for _, p := range pubs {
		for _, a := range p.Authors {
			if own[strings.ToLower(strings.TrimSpace(a))] {
				continue
			}
			coAuthors[a]++
		}
		venues[p.Venue]++
		years[p.Year]++
	}

	s := Summary{
		Total:     len(pubs),
		CoAuthors: len(coAuthors),
		Areas:     CountByArea(pubs, areas),
		Venues:    rank(toCounts(venues)),
	}

	top := rank(toCounts(coAuthors))
	if len(top) > topN {
		top = top[:topN]
	}
	s.TopCoAuthors = top

	yearList := make([]int, 0, len(years))
	for y := range years {
		yearList = append(yearList, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yearList)))
	for _, y := range yearList {
		s.Years = append(s.Years, Count{Name: strconv.Itoa(y), Count: years[y]})
	}
	return s
}

func toCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for name, n := range m {
		out = append(out, Count{Name: name, Count: n})
	}
	return out
}

// rank sorts by count descending, then name.
func rank(counts []Count) []Count {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	return counts
}

// venuePalette is the set of badge colours venues are hashed onto.
var venuePalette = []string{"red", "blue", "green", "purple", "yellow", "indigo", "pink", "cyan", "orange"}

// VenueColor returns a stable badge colour for venue.
func VenueColor(venue string) string {
	var h int32
	for _, r := range venue {
		h = (h << 5) - h + int32(r)
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	return venuePalette[n%int64(len(venuePalette))]
}
