// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package updates

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-site/pkg/types"
)

const updatesYAML = `updates:
  - date: 2024-03-01
    title: "Paper accepted at ISCA"
    description: "Our work on tiny accelerators will appear at ISCA."
    link: https://example.org/isca
    link_text: Preprint
  - date: "sometime soon"
    title: "Undated news"
    description: "No real date."
  - date: 2024-11-15
    title: "Keynote at MLSys"
    description: "Talk on benchmarking."
  - date: 2023-06-10
    title: ""
    description: "Entry without a title."
  - date: "2024-11-15"
    title: "Second item same day"
    description: "Ties keep order."
`

const atomFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Lab news</title>
  <entry>
    <title>Older post</title>
    <link href="https://example.org/old"/>
    <updated>2023-01-02T10:00:00Z</updated>
    <summary type="html">&lt;p&gt;Old &lt;b&gt;news&lt;/b&gt;&lt;/p&gt;</summary>
  </entry>
  <entry>
    <title>Newer post</title>
    <link href="https://example.org/new"/>
    <published>2024-05-06T10:00:00Z</published>
    <updated>2024-05-07T10:00:00Z</updated>
    <summary>Plain summary</summary>
  </entry>
</feed>`

func titles(list []types.Update) []string {
	out := make([]string, len(list))
	for i, u := range list {
		out[i] = u.Title
	}
	return out
}

func TestParseYAML(t *testing.T) {
	list, err := ParseYAML([]byte(updatesYAML))
	require.NoError(t, err)
	require.Len(t, list, 4, "untitled entry skipped")

	first := list[0]
	assert.Equal(t, "Paper accepted at ISCA", first.Title)
	assert.True(t, first.Date.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "https://example.org/isca", first.Link)
	assert.Equal(t, "Preprint", first.LinkText)

	assert.True(t, list[1].Date.IsZero())
}

func TestParseYAMLInvalid(t *testing.T) {
	_, err := ParseYAML([]byte("updates: [unclosed"))
	assert.Error(t, err)
}

func TestSortAndTruncate(t *testing.T) {
	list, err := ParseYAML([]byte(updatesYAML))
	require.NoError(t, err)

	sorted := Sort(list)
	assert.Equal(t, []string{
		"Keynote at MLSys",
		"Second item same day",
		"Paper accepted at ISCA",
		"Undated news",
	}, titles(sorted))

	assert.Len(t, Truncate(sorted, 2), 2)
	assert.Len(t, Truncate(sorted, 0), 4)
	assert.Len(t, Truncate(sorted, 10), 4)
}

func TestParseFeed(t *testing.T) {
	list, err := ParseFeed([]byte(atomFeed))
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "Older post", list[0].Title)
	assert.Equal(t, "Old news", list[0].Description)
	assert.True(t, list[0].Date.Equal(time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, DefaultLinkText, list[0].LinkText)

	assert.True(t, list[1].Date.Equal(time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)), "published preferred")
	assert.Equal(t, "Plain summary", list[1].Description)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-12-19", time.Date(2024, 12, 19, 0, 0, 0, 0, time.UTC)},
		{"2024-12-19T08:30:00Z", time.Date(2024, 12, 19, 8, 30, 0, 0, time.UTC)},
		{"December 19, 2024", time.Date(2024, 12, 19, 0, 0, 0, 0, time.UTC)},
		{"Dec 19, 2024", time.Date(2024, 12, 19, 0, 0, 0, 0, time.UTC)},
		{"2024-12", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
		{"2024", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"soon", time.Time{}},
		{"", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.True(t, tt.want.Equal(ParseDate(tt.in)), "got %v", ParseDate(tt.in))
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "updates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(updatesYAML), 0o644))

	l := &Loader{}
	list, err := l.Load(context.Background(), path, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Keynote at MLSys", "Second item same day"}, titles(list))
}

func TestLoadURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/updates.yaml":
			fmt.Fprint(w, updatesYAML)
		case "/feed.atom":
			fmt.Fprint(w, atomFeed)
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	l := &Loader{HTTP: ts.Client()}

	list, err := l.Load(context.Background(), ts.URL+"/updates.yaml", 0)
	require.NoError(t, err)
	assert.Len(t, list, 4)

	list, err = l.Load(context.Background(), ts.URL+"/feed.atom", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Newer post", "Older post"}, titles(list))

	_, err = l.Load(context.Background(), ts.URL+"/missing", 0)
	assert.Error(t, err)
}

func TestLoadErrors(t *testing.T) {
	l := &Loader{}
	_, err := l.Load(context.Background(), "", 0)
	assert.Error(t, err)

	_, err = l.Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), 0)
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	var buf bytes.Buffer
	Format([]types.Update{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Title: "Accepted", Link: "https://x", Description: "Yay"},
		{Title: "Someday"},
	}, &buf)
	out := buf.String()
	assert.Contains(t, out, "March 1, 2024  Accepted")
	assert.Contains(t, out, "Read more: https://x")
	assert.Contains(t, out, "undated  Someday")

	buf.Reset()
	Format(nil, &buf)
	assert.Equal(t, "No updates.\n", buf.String())
}
