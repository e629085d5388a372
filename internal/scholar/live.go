// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/temoto/robotstxt"

	"github.com/pdiddy/scholar-site/internal/httputil"
	"github.com/pdiddy/scholar-site/pkg/types"
)

// scholarBase is the profile host. Declared as a var so tests can
// substitute an httptest server.
var scholarBase = "https://scholar.google.com"

// browserAgent is sent when no User-Agent is configured; the profile host
// rejects unknown clients.
const browserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Live scrapes metrics from the public profile page, through each proxy
// template in turn and then directly.
type Live struct {
	HTTP *http.Client

	// ProfileURL is the page to scrape.
	ProfileURL string

	// Proxies are URL templates; "{url}" is replaced by the escaped
	// profile URL.
	Proxies []string

	// RespectRobots makes direct fetches consult robots.txt.
	RespectRobots bool

	UserAgent  string
	MaxRetries int

	// Fallback fills metrics the page did not yield.
	Fallback types.ScholarStats

	Now func() time.Time
	Log io.Writer
}

// NewLive returns a live provider for cfg.
func NewLive(cfg types.ScholarConfig, httpCfg types.HTTPConfig, w io.Writer) *Live {
	timeout := httpCfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Live{
		HTTP:          &http.Client{Timeout: timeout},
		ProfileURL:    ProfileURL(cfg),
		Proxies:       cfg.Proxies,
		RespectRobots: cfg.RespectRobots,
		UserAgent:     httpCfg.UserAgent,
		MaxRetries:    httpCfg.MaxRetries,
		Fallback:      cfg.Fallback,
		Log:           w,
	}
}

// ProfileURL returns the configured profile page, or the publication list
// page built from the user identifier.
func ProfileURL(cfg types.ScholarConfig) string {
	if cfg.ProfileURL != "" {
		return cfg.ProfileURL
	}
	if cfg.UserID == "" {
		return ""
	}
	q := url.Values{}
	q.Set("hl", "en")
	q.Set("user", cfg.UserID)
	q.Set("view_op", "list_works")
	q.Set("sortby", "pubdate")
	return scholarBase + "/citations?" + q.Encode()
}

// Name returns the provider identifier.
func (l *Live) Name() string { return ProviderLive }

func (l *Live) log() io.Writer {
	if l.Log == nil {
		return io.Discard
	}
	return l.Log
}

func (l *Live) userAgent() string {
	if l.UserAgent != "" {
		return l.UserAgent
	}
	return browserAgent
}

// Stats tries every proxy, then the direct URL, and returns metrics from
// the first page that has an h-index.
func (l *Live) Stats(ctx context.Context) (types.ScholarStats, error) {
	if l.ProfileURL == "" {
		return types.ScholarStats{}, fmt.Errorf("scholar.user_id or scholar.profile_url is required: %w", ErrNoStats)
	}

	var errs []error
	for _, tmpl := range l.Proxies {
		target := strings.ReplaceAll(tmpl, "{url}", url.QueryEscape(l.ProfileURL))
		st, err := l.scrape(ctx, target)
		if err == nil {
			return st, nil
		}
		fmt.Fprintf(l.log(), "scholar: proxy %s failed: %v\n", proxyHost(target), err)
		errs = append(errs, err)
		if ctx.Err() != nil {
			return types.ScholarStats{}, ctx.Err()
		}
	}

	if l.RespectRobots {
		if err := l.checkRobots(ctx); err != nil {
			return types.ScholarStats{}, errors.Join(append(errs, err)...)
		}
	}
	st, err := l.scrape(ctx, l.ProfileURL)
	if err == nil {
		return st, nil
	}
	return types.ScholarStats{}, errors.Join(append(errs, err)...)
}

func (l *Live) scrape(ctx context.Context, target string) (types.ScholarStats, error) {
	body, err := httputil.Fetch(ctx, l.HTTP, httputil.Request{
		URL:        target,
		UserAgent:  l.userAgent(),
		Accept:     "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8",
		MaxRetries: l.MaxRetries,
	}, l.log())
	if err != nil {
		return types.ScholarStats{}, err
	}

	page := unwrapEnvelope(body)
	if !strings.Contains(page, "gsc_rsb_std") {
		if looksBlocked(page) {
			return types.ScholarStats{}, ErrBlocked
		}
		return types.ScholarStats{}, fmt.Errorf("no metrics table in response: %w", ErrNoStats)
	}

	m := ParseProfile(page)
	if m.HIndex == nil {
		return types.ScholarStats{}, fmt.Errorf("h-index not found: %w", ErrNoStats)
	}
	return l.fill(m), nil
}

// fill builds stats from parsed metrics, taking missing values from the
// fallback. The publication count is never on the page.
func (l *Live) fill(m Metrics) types.ScholarStats {
	st := types.ScholarStats{
		HIndex:            *m.HIndex,
		TotalCitations:    l.Fallback.TotalCitations,
		I10Index:          l.Fallback.I10Index,
		TotalPublications: l.Fallback.TotalPublications,
		LastUpdated:       l.now(),
	}
	if m.Citations != nil {
		st.TotalCitations = *m.Citations
	}
	if m.I10Index != nil {
		st.I10Index = *m.I10Index
	}
	return st
}

func (l *Live) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}

// checkRobots fetches robots.txt from the profile host and tests the
// profile path against the group for our User-Agent. A robots.txt that
// cannot be fetched does not block the scrape.
func (l *Live) checkRobots(ctx context.Context) error {
	u, err := url.Parse(l.ProfileURL)
	if err != nil {
		return fmt.Errorf("parsing profile URL: %w", err)
	}
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent())
	resp, err := l.HTTP.Do(req)
	if err != nil {
		fmt.Fprintf(l.log(), "warning: loading %s (ignored): %v\n", robotsURL, err)
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		fmt.Fprintf(l.log(), "warning: parsing %s (ignored): %v\n", robotsURL, err)
		return nil
	}
	if !data.FindGroup(l.userAgent()).Test(u.RequestURI()) {
		return ErrDisallowed
	}
	return nil
}

func proxyHost(target string) string {
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		return u.Host
	}
	return target
}
