// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-site/pkg/types"
)

// FormatTable writes publications as a human-readable table to w.
func FormatTable(pubs []types.Publication, w io.Writer) {
	if len(pubs) == 0 {
		fmt.Fprintln(w, "There are no publications matching the selected filter.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-24s  %s\n",
		"Year", "Title", "Authors", "Venue", "Areas")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for _, p := range pubs {
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-24s  %s\n",
			p.Year, truncate(p.Title, 60), formatAuthors(p.Authors),
			truncate(p.Venue, 24), strings.Join(p.Areas, ", "))
	}

	fmt.Fprintf(w, "\n%d publications\n", len(pubs))
}

// FormatSummary writes the summary block of the publications page.
func FormatSummary(s Summary, w io.Writer) {
	fmt.Fprintf(w, "Publications: %d\n", s.Total)
	fmt.Fprintf(w, "Co-authors:   %d\n", s.CoAuthors)

	fmt.Fprintln(w, "\nBy area:")
	for _, c := range s.Areas {
		fmt.Fprintf(w, "  %-36s %d\n", c.Name, c.Count)
	}

	fmt.Fprintln(w, "\nBy year:")
	for _, c := range s.Years {
		fmt.Fprintf(w, "  %-6s %d\n", c.Name, c.Count)
	}

	if len(s.TopCoAuthors) > 0 {
		fmt.Fprintln(w, "\nTop co-authors:")
		for _, c := range s.TopCoAuthors {
			fmt.Fprintf(w, "  %-36s %d\n", c.Name, c.Count)
		}
	}
}

// FormatJSON writes v as indented JSON to w.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// CSLItem is a bibliographic entry in CSL (Citation Style Language) form,
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

var cslTypes = map[types.PublicationType]string{
	types.TypeArticle:       "article-journal",
	types.TypeInproceedings: "paper-conference",
	types.TypeProceedings:   "book",
	types.TypeBook:          "book",
	types.TypeIncollection:  "chapter",
	types.TypePhDThesis:     "thesis",
	types.TypeMastersThesis: "thesis",
	types.TypeInformal:      "article",
}

// FormatCSL writes publications as a CSL-YAML list to w.
func FormatCSL(pubs []types.Publication, w io.Writer) error {
	items := make([]CSLItem, len(pubs))
	for i, p := range pubs {
		items[i] = toCSLItem(p)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(p types.Publication) CSLItem {
	typ, ok := cslTypes[p.Type]
	if !ok {
		typ = "article"
	}
	item := CSLItem{
		ID:             p.Key,
		Type:           typ,
		Title:          p.Title,
		ContainerTitle: p.Venue,
		Volume:         p.Volume,
		Issue:          p.Number,
		Page:           strings.ReplaceAll(p.Pages, "--", "-"),
		DOI:            p.DOI,
		URL:            p.Link(),
	}
	if item.ID == "" {
		item.ID = p.DOI
	}
	for _, a := range p.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	if p.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{p.Year}}}
	}
	return item
}

// parseAuthorName splits a full name on the last space: everything before
// is given, the last token is family. Single-token names use the literal
// field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
