// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dblp fetches an author's publication list from the DBLP
// bibliographic index. Three response shapes are supported: the person XML
// feed, the JSON search API, and the person BibTeX export. All of them
// normalize to []types.Publication sorted newest year first.
package dblp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/scholar-site/internal/httputil"
	"github.com/pdiddy/scholar-site/pkg/types"
)

// dblpBase is the index root used when the config leaves BaseURL empty.
// Declared as a var so tests can substitute an httptest server.
var dblpBase = "https://dblp.org"

const defaultMaxHits = 1000

// ErrNoRecords is returned when a response parses but holds no usable
// publication. An empty list is never cached over a good one.
var ErrNoRecords = errors.New("dblp: no publications in response")

// Client queries DBLP.
type Client struct {
	HTTP   *http.Client
	Config types.IndexConfig

	// UserAgent and MaxRetries come from the shared HTTP settings.
	UserAgent  string
	MaxRetries int

	// Now supplies the year for records that omit one (time.Now when nil).
	Now func() time.Time

	// Log receives retry and progress lines (discarded when nil).
	Log io.Writer
}

// New returns a client for cfg using the shared HTTP settings.
func New(cfg types.IndexConfig, httpCfg types.HTTPConfig, w io.Writer) *Client {
	timeout := httpCfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		Config:     cfg,
		UserAgent:  httpCfg.UserAgent,
		MaxRetries: httpCfg.MaxRetries,
		Log:        w,
	}
}

func (c *Client) base() string {
	if c.Config.BaseURL != "" {
		return strings.TrimRight(c.Config.BaseURL, "/")
	}
	return dblpBase
}

func (c *Client) log() io.Writer {
	if c.Log == nil {
		return io.Discard
	}
	return c.Log
}

func (c *Client) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Fetch downloads and parses the configured publication list.
func (c *Client) Fetch(ctx context.Context) ([]types.Publication, error) {
	var (
		pubs []types.Publication
		err  error
	)
	switch c.Config.Format {
	case types.FormatXML, "":
		pubs, err = c.fetchXML(ctx)
	case types.FormatJSON:
		pubs, err = c.fetchJSON(ctx)
	case types.FormatBibTeX:
		pubs, err = c.fetchBibTeX(ctx)
	default:
		return nil, fmt.Errorf("unknown index format %q", c.Config.Format)
	}
	if err != nil {
		return nil, err
	}

	pubs = Normalize(pubs, c.now().Year(), c.base())
	if len(pubs) == 0 {
		return nil, ErrNoRecords
	}
	fmt.Fprintf(c.log(), "dblp: parsed %d publications\n", len(pubs))
	return pubs, nil
}

func (c *Client) get(ctx context.Context, u, accept string) ([]byte, error) {
	body, err := httputil.Fetch(ctx, c.HTTP, httputil.Request{
		URL:        u,
		UserAgent:  c.UserAgent,
		Accept:     accept,
		MaxRetries: c.MaxRetries,
	}, c.log())
	if err != nil {
		return nil, fmt.Errorf("DBLP request: %w", err)
	}
	return body, nil
}

func (c *Client) personURL(ext string) (string, error) {
	pid := strings.Trim(c.Config.PID, "/ ")
	if pid == "" {
		return "", fmt.Errorf("index.pid is required for the %s format", ext)
	}
	return fmt.Sprintf("%s/pid/%s.%s", c.base(), pid, ext), nil
}

func (c *Client) fetchXML(ctx context.Context) ([]types.Publication, error) {
	u, err := c.personURL("xml")
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, u, "application/xml")
	if err != nil {
		return nil, err
	}
	pubs, err := ParseXML(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing DBLP XML: %w", err)
	}
	return pubs, nil
}

func (c *Client) fetchJSON(ctx context.Context) ([]types.Publication, error) {
	if c.Config.Query == "" {
		return nil, fmt.Errorf("index.query is required for the json format")
	}
	hits := c.Config.MaxHits
	if hits <= 0 {
		hits = defaultMaxHits
	}
	params := url.Values{}
	params.Set("q", c.Config.Query)
	params.Set("format", "json")
	params.Set("h", fmt.Sprint(hits))
	u := c.base() + "/search/publ/api?" + params.Encode()

	body, err := c.get(ctx, u, "application/json")
	if err != nil {
		return nil, err
	}
	pubs, err := ParseJSON(body)
	if err != nil {
		return nil, fmt.Errorf("parsing DBLP JSON: %w", err)
	}
	return pubs, nil
}

func (c *Client) fetchBibTeX(ctx context.Context) ([]types.Publication, error) {
	u, err := c.personURL("bib")
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, u, "application/x-bibtex")
	if err != nil {
		return nil, err
	}
	return ParseBibTeX(string(body)), nil
}

// homonymSuffix matches the numeric suffix DBLP appends to disambiguate
// authors sharing a name (e.g. "Wei Wang 0001").
var homonymSuffix = regexp.MustCompile(`\s+\d{4}$`)

// Normalize drops records without a title, trims whitespace and the
// trailing period DBLP puts on titles, strips homonym suffixes from author
// names, fills a missing year with defaultYear, makes relative locators
// absolute against base, and sorts by year descending. Records within a
// year keep their source order.
func Normalize(pubs []types.Publication, defaultYear int, base string) []types.Publication {
	out := pubs[:0]
	for _, p := range pubs {
		p.Title = cleanTitle(p.Title)
		if p.Title == "" {
			continue
		}
		if p.Year <= 0 {
			p.Year = defaultYear
		}
		p.Venue = strings.Join(strings.Fields(p.Venue), " ")
		if p.Venue == "" {
			p.Venue = "Unknown"
		}
		authors := p.Authors[:0]
		for _, a := range p.Authors {
			a = homonymSuffix.ReplaceAllString(strings.TrimSpace(a), "")
			if a != "" {
				authors = append(authors, a)
			}
		}
		p.Authors = authors
		if p.DOI == "" {
			p.DOI = doiFromLink(p.EE)
		}
		if p.URL == "" && p.Key != "" {
			p.URL = base + "/rec/" + p.Key
		} else if p.URL != "" && !strings.Contains(p.URL, "://") {
			p.URL = base + "/" + strings.TrimLeft(p.URL, "/")
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}

func cleanTitle(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSuffix(s, ".")
}

func doiFromLink(link string) string {
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/"} {
		if strings.HasPrefix(link, prefix) {
			return strings.TrimPrefix(link, prefix)
		}
	}
	return ""
}
