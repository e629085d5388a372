// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package updates loads the news feed shown on the home page. The source is
// a YAML document ({updates: [...]}) or an RSS/Atom feed, read from a local
// path or an http(s) URL. Entries are returned newest first.
package updates

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-site/internal/httputil"
	"github.com/pdiddy/scholar-site/pkg/types"
)

// DefaultLinkText labels feed links, which carry no text of their own.
const DefaultLinkText = "Read more"

// Loader reads updates from a source.
type Loader struct {
	HTTP       *http.Client
	UserAgent  string
	MaxRetries int
	Log        io.Writer
}

// NewLoader returns a loader using the shared HTTP settings.
func NewLoader(httpCfg types.HTTPConfig, w io.Writer) *Loader {
	timeout := httpCfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Loader{
		HTTP:       &http.Client{Timeout: timeout},
		UserAgent:  httpCfg.UserAgent,
		MaxRetries: httpCfg.MaxRetries,
		Log:        w,
	}
}

// Load reads source, parses it as a feed when it looks like XML and as
// YAML otherwise, sorts the entries newest first, and keeps at most max
// of them (all when max is zero or negative).
func (l *Loader) Load(ctx context.Context, source string, max int) ([]types.Update, error) {
	if source == "" {
		return nil, fmt.Errorf("updates.source is not configured")
	}
	data, err := l.read(ctx, source)
	if err != nil {
		return nil, err
	}

	var list []types.Update
	if looksLikeXML(data) {
		list, err = ParseFeed(data)
	} else {
		list, err = ParseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	return Truncate(Sort(list), max), nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		client := l.HTTP
		if client == nil {
			client = http.DefaultClient
		}
		body, err := httputil.Fetch(ctx, client, httputil.Request{
			URL:        source,
			UserAgent:  l.UserAgent,
			MaxRetries: l.MaxRetries,
		}, l.Log)
		if err != nil {
			return nil, fmt.Errorf("fetching updates: %w", err)
		}
		return body, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("reading updates: %w", err)
	}
	return data, nil
}

func looksLikeXML(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("<"))
}

type yamlUpdate struct {
	Date        string `yaml:"date"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
	LinkText    string `yaml:"link_text"`
}

type yamlDoc struct {
	Updates []yamlUpdate `yaml:"updates"`
}

// ParseYAML decodes an updates document. Entries without a title are
// skipped; dates that do not parse are left zero.
func ParseYAML(data []byte) ([]types.Update, error) {
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	out := make([]types.Update, 0, len(doc.Updates))
	for _, u := range doc.Updates {
		if strings.TrimSpace(u.Title) == "" {
			continue
		}
		out = append(out, types.Update{
			Date:        ParseDate(u.Date),
			Title:       strings.TrimSpace(u.Title),
			Description: strings.TrimSpace(u.Description),
			Link:        strings.TrimSpace(u.Link),
			LinkText:    strings.TrimSpace(u.LinkText),
		})
	}
	return out, nil
}

// ParseFeed decodes an RSS or Atom feed. Item descriptions are reduced to
// plain text.
func ParseFeed(data []byte) ([]types.Update, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	out := make([]types.Update, 0, len(feed.Items))
	for _, it := range feed.Items {
		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}
		u := types.Update{
			Title:       title,
			Description: plainText(it.Description),
			Link:        strings.TrimSpace(it.Link),
		}
		if it.PublishedParsed != nil {
			u.Date = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			u.Date = *it.UpdatedParsed
		}
		if u.Link != "" {
			u.LinkText = DefaultLinkText
		}
		out = append(out, u)
	}
	return out, nil
}

func plainText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2006/01/02",
	"2006-01",
	"2006",
}

// ParseDate accepts the date forms used in hand-written updates files.
// Unparseable input yields the zero time.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Sort orders updates newest first. Entries without a date go last; ties
// keep their source order.
func Sort(list []types.Update) []types.Update {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].Date, list[j].Date
		if a.IsZero() != b.IsZero() {
			return b.IsZero()
		}
		return a.After(b)
	})
	return list
}

// Truncate keeps the first max entries; max <= 0 keeps all.
func Truncate(list []types.Update, max int) []types.Update {
	if max > 0 && len(list) > max {
		return list[:max]
	}
	return list
}

// Format writes updates as a dated list.
func Format(list []types.Update, w io.Writer) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No updates.")
		return
	}
	for _, u := range list {
		date := "undated"
		if !u.Date.IsZero() {
			date = u.Date.Format("January 2, 2006")
		}
		fmt.Fprintf(w, "%s  %s\n", date, u.Title)
		if u.Description != "" {
			fmt.Fprintf(w, "    %s\n", u.Description)
		}
		if u.Link != "" {
			text := u.LinkText
			if text == "" {
				text = DefaultLinkText
			}
			fmt.Fprintf(w, "    %s: %s\n", text, u.Link)
		}
	}
}
