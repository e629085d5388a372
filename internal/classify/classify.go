// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns topical area labels to publications by scoring
// keyword substrings in the title and venue against a Taxonomy.
//
// Matching is substring based, not tokenized: a short keyword such as "ai"
// also matches inside longer words. Keyword tables are configuration, so
// false positives are fixed by editing the taxonomy, not the algorithm.
package classify

import (
	"strings"

	"github.com/pdiddy/scholar-site/pkg/types"
)

const (
	defaultThreshold   = 2
	defaultTitleWeight = 3
	defaultVenueWeight = 1
)

// Area is one topical label and the keywords that score toward it.
type Area struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// VenueRule maps well-known venue substrings to an area. Rules are consulted
// only when no area reaches the threshold.
type VenueRule struct {
	Area   string   `yaml:"area" json:"area"`
	Venues []string `yaml:"venues" json:"venues"`
}

// Taxonomy is a named, swappable area table. Areas and VenueFallbacks are
// ordered; the order decides the order of returned labels and which
// fallback rule wins.
type Taxonomy struct {
	Name           string      `yaml:"name" json:"name"`
	Threshold      int         `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	TitleWeight    int         `yaml:"title_weight,omitempty" json:"title_weight,omitempty"`
	VenueWeight    int         `yaml:"venue_weight,omitempty" json:"venue_weight,omitempty"`
	Areas          []Area      `yaml:"areas" json:"areas"`
	VenueFallbacks []VenueRule `yaml:"venue_fallbacks,omitempty" json:"venue_fallbacks,omitempty"`
	Default        string      `yaml:"default" json:"default"`
}

// AreaNames returns the area labels in taxonomy order.
func (t *Taxonomy) AreaNames() []string {
	names := make([]string, len(t.Areas))
	for i, a := range t.Areas {
		names[i] = a.Name
	}
	return names
}

func (t *Taxonomy) threshold() int {
	if t.Threshold > 0 {
		return t.Threshold
	}
	return defaultThreshold
}

func (t *Taxonomy) titleWeight() int {
	if t.TitleWeight > 0 {
		return t.TitleWeight
	}
	return defaultTitleWeight
}

func (t *Taxonomy) venueWeight() int {
	if t.VenueWeight > 0 {
		return t.VenueWeight
	}
	return defaultVenueWeight
}

// AreaScore is the keyword score of one area for one publication.
type AreaScore struct {
	Area    string
	Score   int
	Matched bool
}

// Scores returns the score of every area, in taxonomy order.
func (t *Taxonomy) Scores(title, venue string) []AreaScore {
	title = strings.ToLower(title)
	venue = strings.ToLower(venue)

	scores := make([]AreaScore, len(t.Areas))
	for i, area := range t.Areas {
		score := 0
		for _, kw := range area.Keywords {
			kw = strings.ToLower(kw)
			if kw == "" {
				continue
			}
			if strings.Contains(title, kw) {
				score += t.titleWeight()
			}
			if strings.Contains(venue, kw) {
				score += t.venueWeight()
			}
		}
		scores[i] = AreaScore{Area: area.Name, Score: score, Matched: score >= t.threshold()}
	}
	return scores
}

// Classify returns the areas of pub. Every area whose score meets the
// threshold is returned; with no match, the first venue fallback rule that
// hits is used, then the taxonomy default. The result is never empty.
func (t *Taxonomy) Classify(pub types.Publication) []string {
	var matched []string
	for _, s := range t.Scores(pub.Title, pub.Venue) {
		if s.Matched {
			matched = append(matched, s.Area)
		}
	}
	if len(matched) > 0 {
		return matched
	}

	if area := t.venueFallback(pub.Venue); area != "" {
		return []string{area}
	}
	return []string{t.Default}
}

func (t *Taxonomy) venueFallback(venue string) string {
	venue = strings.ToLower(venue)
	for _, rule := range t.VenueFallbacks {
		for _, v := range rule.Venues {
			if v != "" && strings.Contains(venue, strings.ToLower(v)) {
				return rule.Area
			}
		}
	}
	return ""
}

// ClassifyAll labels every publication in place and returns the slice.
func (t *Taxonomy) ClassifyAll(pubs []types.Publication) []types.Publication {
	for i := range pubs {
		pubs[i].Areas = t.Classify(pubs[i])
	}
	return pubs
}
