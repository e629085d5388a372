// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-site/internal/classify"
	"github.com/pdiddy/scholar-site/pkg/types"
)

const (
	arch = "Computer Architecture"
	mls  = "Machine Learning Systems"
	agt  = "Autonomous Agents"
)

var areas = []string{arch, mls, agt}

func samplePubs() []types.Publication {
	return []types.Publication{
		{
			Key: "conf/isca/A22", Title: "Tiny Accelerators", Venue: "ISCA", Year: 2022,
			Type: types.TypeInproceedings, Authors: []string{"Vijay Janapa Reddi", "Ann Lee"},
			Areas: []string{arch, mls},
		},
		{
			Key: "journals/micro/B21", Title: "Benchmarks", Venue: "IEEE Micro", Year: 2021,
			Type: types.TypeArticle, Authors: []string{"vijay janapa reddi", "Ann Lee", "Bo Chen"},
			Areas: []string{mls}, Pages: "8--16", DOI: "10.1/b",
		},
		{
			Key: "conf/icra/C21", Title: "Drone Navigation", Venue: "ICRA", Year: 2021,
			Type: types.TypeInproceedings, Authors: []string{"V. J. Reddi", "Cy Dee"},
			Areas: []string{agt},
		},
	}
}

func titles(pubs []types.Publication) []string {
	out := make([]string, len(pubs))
	for i, p := range pubs {
		out[i] = p.Title
	}
	return out
}

func TestFilter(t *testing.T) {
	pubs := samplePubs()
	tests := []struct {
		area string
		want []string
	}{
		{"", []string{"Tiny Accelerators", "Benchmarks", "Drone Navigation"}},
		{AllAreas, []string{"Tiny Accelerators", "Benchmarks", "Drone Navigation"}},
		{mls, []string{"Tiny Accelerators", "Benchmarks"}},
		{agt, []string{"Drone Navigation"}},
		{"Quantum", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.area, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(Filter(pubs, tt.area)))
		})
	}
}

func TestRelabel(t *testing.T) {
	tax := &classify.Taxonomy{
		Name:    "test",
		Areas:   []classify.Area{{Name: "Robots", Keywords: []string{"drone"}}},
		Default: "Other",
	}
	pubs := samplePubs()
	got := Relabel(pubs, tax)

	assert.Equal(t, []string{"Other"}, got[0].Areas)
	assert.Equal(t, []string{"Robots"}, got[2].Areas)
	assert.Equal(t, []string{arch, mls}, pubs[0].Areas, "input untouched")
}

func TestCountByArea(t *testing.T) {
	got := CountByArea(samplePubs(), areas)
	assert.Equal(t, []Count{{arch, 1}, {mls, 2}, {agt, 1}}, got)
}

func TestGroupByArea(t *testing.T) {
	pubs := samplePubs()
	pubs = append(pubs, types.Publication{Title: "Odd", Areas: []string{"Zebra"}})

	groups := GroupByArea(pubs, []string{agt, "Empty", mls, arch})
	require.Len(t, groups, 4)
	assert.Equal(t, agt, groups[0].Area)
	assert.Equal(t, mls, groups[1].Area)
	assert.Equal(t, []string{"Tiny Accelerators", "Benchmarks"}, titles(groups[1].Publications))
	assert.Equal(t, arch, groups[2].Area)
	assert.Equal(t, "Zebra", groups[3].Area, "unknown labels last")
}

func TestSummarize(t *testing.T) {
	own := []string{"Vijay Janapa Reddi", "V. J. Reddi"}
	s := Summarize(samplePubs(), areas, own, 2)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 3, s.CoAuthors, "Ann Lee, Bo Chen, Cy Dee")
	assert.Equal(t, []Count{{arch, 1}, {mls, 2}, {agt, 1}}, s.Areas)
	assert.Equal(t, []Count{{"2022", 1}, {"2021", 2}}, s.Years)
	assert.Equal(t, []Count{{"Ann Lee", 2}, {"Bo Chen", 1}}, s.TopCoAuthors)
	assert.Equal(t, []Count{{"ICRA", 1}, {"IEEE Micro", 1}, {"ISCA", 1}}, s.Venues)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, areas, nil, 0)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.CoAuthors)
	assert.Empty(t, s.TopCoAuthors)
	assert.Equal(t, []Count{{arch, 0}, {mls, 0}, {agt, 0}}, s.Areas)
}

func TestVenueColor(t *testing.T) {
	for _, v := range []string{"ISCA", "IEEE Micro", "", "NeurIPS"} {
		c := VenueColor(v)
		assert.Contains(t, venuePalette, c)
		assert.Equal(t, c, VenueColor(v), "stable")
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(samplePubs(), &buf)
	out := buf.String()
	assert.Contains(t, out, "Tiny Accelerators")
	assert.Contains(t, out, "Vijay Janap... et al.")
	assert.Contains(t, out, "Computer Architecture, Machine Learning Systems")
	assert.Contains(t, out, "3 publications")

	buf.Reset()
	FormatTable(nil, &buf)
	assert.Contains(t, buf.String(), "no publications")
}

func TestFormatSummary(t *testing.T) {
	var buf bytes.Buffer
	FormatSummary(Summarize(samplePubs(), areas, nil, 5), &buf)
	assert.Contains(t, buf.String(), "Publications: 3")
	assert.Contains(t, buf.String(), "Top co-authors:")
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(samplePubs(), &buf))

	var got []types.Publication
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, samplePubs(), got)
}

func TestFormatCSL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatCSL(samplePubs(), &buf))

	var items []CSLItem
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 3)

	assert.Equal(t, "conf/isca/A22", items[0].ID)
	assert.Equal(t, "paper-conference", items[0].Type)
	assert.Equal(t, []CSLName{{Given: "Vijay Janapa", Family: "Reddi"}, {Given: "Ann", Family: "Lee"}}, items[0].Author)
	assert.Equal(t, [][]int{{2022}}, items[0].Issued.DateParts)

	assert.Equal(t, "article-journal", items[1].Type)
	assert.Equal(t, "IEEE Micro", items[1].ContainerTitle)
	assert.Equal(t, "8-16", items[1].Page)
	assert.Equal(t, "10.1/b", items[1].DOI)
}

func TestParseAuthorName(t *testing.T) {
	assert.Equal(t, CSLName{Literal: "Plato"}, parseAuthorName("Plato"))
	assert.Equal(t, CSLName{}, parseAuthorName("  "))
	assert.Equal(t, CSLName{Given: "V. J.", Family: "Reddi"}, parseAuthorName("V. J. Reddi"))
}

func TestDiff(t *testing.T) {
	before := []types.Publication{{Title: "A", Year: 2020}, {Title: "B", Year: 2021}}
	after := []types.Publication{{Title: "C", Year: 2022}, {Title: "B", Year: 2021}}

	c := Diff(before, after)
	assert.Equal(t, []string{"2022  C"}, c.Added)
	assert.Equal(t, []string{"2020  A"}, c.Removed)
	assert.False(t, c.Empty())

	assert.True(t, Diff(before, before).Empty())

	var buf bytes.Buffer
	FormatChanges(c, &buf)
	assert.True(t, strings.HasPrefix(buf.String(), "- 2020  A\n+ 2022  C\n"))
	assert.Contains(t, buf.String(), "1 added, 1 removed")
}

func TestDiffFromEmpty(t *testing.T) {
	c := Diff(nil, samplePubs())
	assert.Len(t, c.Added, 3)
	assert.Empty(t, c.Removed)
}
