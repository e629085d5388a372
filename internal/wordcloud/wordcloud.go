// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wordcloud computes title word frequencies for the publications
// word cloud. Layout is left to the renderer; this package decides which
// words appear, how large, and in what colour.
package wordcloud

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/scholar-site/internal/catalog"
	"github.com/pdiddy/scholar-site/pkg/types"
)

const (
	DefaultMaxWords    = 150
	DefaultMinFontSize = 16
	DefaultMaxFontSize = 48
	minWordLength      = 3
)

// Word is one entry of the cloud.
type Word struct {
	Text     string  `json:"text"`
	Count    int     `json:"count"`
	FontSize float64 `json:"font_size"`
	Color    string  `json:"color"`
}

// Cloud is the renderer input: the words plus the template's layout hints.
type Cloud struct {
	Template    string  `json:"template"`
	RotateRatio float64 `json:"rotate_ratio"`
	Shape       string  `json:"shape"`
	Words       []Word  `json:"words"`
}

// Options controls cloud generation. Zero fields take the defaults.
type Options struct {
	Area        string
	MaxWords    int
	Template    string
	MinFontSize int
	MaxFontSize int
}

// OptionsFromConfig maps the config block onto Options.
func OptionsFromConfig(cfg types.WordCloudConfig) Options {
	return Options{
		MaxWords:    cfg.MaxWords,
		Template:    cfg.Template,
		MinFontSize: cfg.MinFontSize,
		MaxFontSize: cfg.MaxFontSize,
	}
}

// Generate builds the cloud for pubs. Publications are filtered by
// opts.Area first; an empty filter result yields a cloud with no words.
func Generate(pubs []types.Publication, opts Options) (Cloud, error) {
	name := opts.Template
	if name == "" {
		name = DefaultTemplate
	}
	tmpl, ok := templates[name]
	if !ok {
		return Cloud{}, fmt.Errorf("unknown word cloud template %q (have %s)", name, strings.Join(TemplateNames(), ", "))
	}

	maxWords := opts.MaxWords
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	minSize, maxSize := float64(opts.MinFontSize), float64(opts.MaxFontSize)
	if minSize <= 0 {
		minSize = DefaultMinFontSize
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxFontSize
	}
	if maxSize < minSize {
		maxSize = minSize
	}

	counts := Count(catalog.Filter(pubs, opts.Area))
	if len(counts) > maxWords {
		counts = counts[:maxWords]
	}

	cloud := Cloud{Template: name, RotateRatio: tmpl.RotateRatio, Shape: tmpl.Shape, Words: []Word{}}
	if len(counts) == 0 {
		return cloud, nil
	}
	top := float64(counts[0].Count)
	for _, c := range counts {
		frac := float64(c.Count) / top
		cloud.Words = append(cloud.Words, Word{
			Text:     c.Name,
			Count:    c.Count,
			FontSize: minSize + frac*(maxSize-minSize),
			Color:    tmpl.Color(frac).String(),
		})
	}
	return cloud, nil
}

// Count tokenizes every title and returns word frequencies sorted by count
// descending, then alphabetically.
func Count(pubs []types.Publication) []catalog.Count {
	freq := make(map[string]int)
	for _, p := range pubs {
		for _, w := range Tokenize(p.Title) {
			freq[w]++
		}
	}
	out := make([]catalog.Count, 0, len(freq))
	for w, n := range freq {
		out = append(out, catalog.Count{Name: w, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Tokenize lower-cases and folds diacritics in title, splits it on
// anything that is not a letter, digit, or underscore, and drops
// stopwords, words shorter than three characters, and pure numbers.
func Tokenize(title string) []string {
	folded := fold(strings.ToLower(title))
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	var words []string
	for _, w := range fields {
		if len([]rune(w)) < minWordLength || isNumber(w) || stopwords[w] {
			continue
		}
		words = append(words, w)
	}
	return words
}

// fold strips combining marks after canonical decomposition, so "é"
// becomes "e".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
