// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-site/internal/httputil"
	"github.com/pdiddy/scholar-site/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

const profilePage = `<html><body>
<div id="gsc_rsb_cit">
<table id="gsc_rsb_st">
<thead><tr><th class="gsc_rsb_sth"></th><th class="gsc_rsb_sth">All</th><th class="gsc_rsb_sth">Since 2020</th></tr></thead>
<tbody>
<tr><td class="gsc_rsb_sc1"><a href="#" class="gsc_rsb_f gs_ibl">Citations</a></td><td class="gsc_rsb_std">18105</td><td class="gsc_rsb_std">12001</td></tr>
<tr><td class="gsc_rsb_sc1"><a href="#" class="gsc_rsb_f gs_ibl">h-index</a></td><td class="gsc_rsb_std">55</td><td class="gsc_rsb_std">44</td></tr>
<tr><td class="gsc_rsb_sc1"><a href="#" class="gsc_rsb_f gs_ibl">i10-index</a></td><td class="gsc_rsb_std">145</td><td class="gsc_rsb_std">120</td></tr>
</tbody></table></div></body></html>`

// anchorOnlyPage has the metric cells but no table id, so only the raw
// anchors can read it.
const anchorOnlyPage = `<div>h-index</a></td>
<td class="gsc_rsb_std">61</td><td class="gsc_rsb_std">40</td>
i10-index</a></td><td class="gsc_rsb_std">150</td></div>`

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

var fallback = types.ScholarStats{TotalCitations: 1000, HIndex: 10, I10Index: 20, TotalPublications: 120}

func intPtr(n int) *int { return &n }

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name string
		page string
		want Metrics
	}{
		{
			name: "metrics table",
			page: profilePage,
			want: Metrics{Citations: intPtr(18105), HIndex: intPtr(55), I10Index: intPtr(145)},
		},
		{
			name: "anchor fallback",
			page: anchorOnlyPage,
			want: Metrics{HIndex: intPtr(61), I10Index: intPtr(150)},
		},
		{
			name: "nothing",
			page: "<html><body>hello</body></html>",
			want: Metrics{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseProfile(tt.page))
		})
	}
}

func TestUnwrapEnvelope(t *testing.T) {
	contents, _ := json.Marshal(map[string]string{"contents": "<html>a</html>"})
	data, _ := json.Marshal(map[string]string{"data": "<html>b</html>"})

	assert.Equal(t, "<html>a</html>", unwrapEnvelope(contents))
	assert.Equal(t, "<html>b</html>", unwrapEnvelope(data))
	assert.Equal(t, "<html>c</html>", unwrapEnvelope([]byte("<html>c</html>")))
	assert.Equal(t, `{"other":1}`, unwrapEnvelope([]byte(`{"other":1}`)))
	assert.Equal(t, `{broken`, unwrapEnvelope([]byte(`{broken`)))
}

func newLive(profileURL string, client *http.Client) *Live {
	return &Live{
		HTTP:       client,
		ProfileURL: profileURL,
		Fallback:   fallback,
		Now:        func() time.Time { return testNow },
	}
}

func TestLiveDirect(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gy4UVGcAAAAJ", r.URL.Query().Get("user"))
		fmt.Fprint(w, profilePage)
	}))
	defer ts.Close()

	old := scholarBase
	scholarBase = ts.URL
	defer func() { scholarBase = old }()

	l := newLive(ProfileURL(types.ScholarConfig{UserID: "gy4UVGcAAAAJ"}), ts.Client())
	st, err := l.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.ScholarStats{
		TotalCitations:    18105,
		HIndex:            55,
		I10Index:          145,
		TotalPublications: 120,
		LastUpdated:       testNow,
	}, st)
}

func TestLiveFillsMissingFromFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, anchorOnlyPage)
	}))
	defer ts.Close()

	st, err := newLive(ts.URL+"/citations", ts.Client()).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 61, st.HIndex)
	assert.Equal(t, 150, st.I10Index)
	assert.Equal(t, 1000, st.TotalCitations, "citations from fallback")
}

func TestLiveProxyEnvelope(t *testing.T) {
	var proxied string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken":
			w.WriteHeader(http.StatusBadGateway)
		case "/get":
			proxied = r.URL.Query().Get("url")
			json.NewEncoder(w).Encode(map[string]string{"contents": profilePage})
		default:
			t.Errorf("unexpected direct fetch %s", r.URL)
		}
	}))
	defer ts.Close()

	var log bytes.Buffer
	l := newLive("https://scholar.example/citations?user=abc", ts.Client())
	l.Proxies = []string{ts.URL + "/broken?u={url}", ts.URL + "/get?url={url}"}
	l.Log = &log

	st, err := l.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 55, st.HIndex)
	assert.Equal(t, "https://scholar.example/citations?user=abc", proxied)
	assert.Contains(t, log.String(), "scholar: proxy")
}

func TestLiveFailures(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		wantErr error
	}{
		{"captcha", "<html>Please show you're not a robot. captcha</html>", ErrBlocked},
		{"no table", "<html>profile moved</html>", ErrNoStats},
		{"no h-index", `<table id="gsc_rsb_st"><tr><td><a>Citations</a></td><td class="gsc_rsb_std">5</td></tr></table>`, ErrNoStats},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, tt.page)
			}))
			defer ts.Close()

			_, err := newLive(ts.URL+"/citations", ts.Client()).Stats(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLiveMissingProfile(t *testing.T) {
	_, err := newLive("", http.DefaultClient).Stats(context.Background())
	assert.ErrorIs(t, err, ErrNoStats)
}

func TestLiveRobots(t *testing.T) {
	tests := []struct {
		name    string
		robots  string
		status  int
		wantErr error
	}{
		{"disallowed", "User-agent: *\nDisallow: /citations\n", http.StatusOK, ErrDisallowed},
		{"allowed", "User-agent: *\nDisallow: /search\n", http.StatusOK, nil},
		{"missing robots", "", http.StatusNotFound, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/robots.txt" {
					w.WriteHeader(tt.status)
					fmt.Fprint(w, tt.robots)
					return
				}
				fmt.Fprint(w, profilePage)
			}))
			defer ts.Close()

			l := newLive(ts.URL+"/citations?user=abc", ts.Client())
			l.RespectRobots = true
			_, err := l.Stats(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProfileURL(t *testing.T) {
	assert.Equal(t, "https://example.org/p", ProfileURL(types.ScholarConfig{ProfileURL: "https://example.org/p", UserID: "x"}))
	assert.Empty(t, ProfileURL(types.ScholarConfig{}))

	u, err := url.Parse(ProfileURL(types.ScholarConfig{UserID: "gy4UVGcAAAAJ"}))
	require.NoError(t, err)
	assert.Equal(t, "/citations", u.Path)
	assert.Equal(t, "gy4UVGcAAAAJ", u.Query().Get("user"))
	assert.Equal(t, "pubdate", u.Query().Get("sortby"))
}

func TestStatic(t *testing.T) {
	s := &Static{Metrics: fallback, Now: func() time.Time { return testNow }}
	st, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, st.HIndex)
	assert.True(t, st.LastUpdated.Equal(testNow))

	dated := fallback
	dated.LastUpdated = time.Date(2024, 12, 19, 0, 0, 0, 0, time.UTC)
	st, err = (&Static{Metrics: dated}).Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, st.LastUpdated.Equal(dated.LastUpdated), "configured date kept")

	_, err = (&Static{}).Stats(context.Background())
	assert.ErrorIs(t, err, ErrNoStats)
}

type stubProvider struct {
	name  string
	stats types.ScholarStats
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Stats(context.Context) (types.ScholarStats, error) {
	s.calls++
	return s.stats, s.err
}

func TestChain(t *testing.T) {
	failing := &stubProvider{name: "live", err: errors.New("boom")}
	static := &stubProvider{name: "static", stats: types.ScholarStats{HIndex: 7}}
	unused := &stubProvider{name: "unused"}

	var log bytes.Buffer
	c := &Chain{Providers: []Provider{failing, static, unused}, Log: &log}
	assert.Equal(t, "chain(live,static,unused)", c.Name())

	st, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, st.HIndex)
	assert.Equal(t, 0, unused.calls)
	assert.Contains(t, log.String(), "warning: scholar provider live failed: boom")
}

func TestChainAllFail(t *testing.T) {
	c := &Chain{Providers: []Provider{
		&stubProvider{name: "a", err: ErrBlocked},
		&stubProvider{name: "b", err: ErrNoStats},
	}}
	_, err := c.Stats(context.Background())
	assert.ErrorIs(t, err, ErrBlocked)
	assert.ErrorIs(t, err, ErrNoStats)

	_, err = (&Chain{}).Stats(context.Background())
	assert.ErrorIs(t, err, ErrNoStats)
}

func TestNew(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
		errMsg   string
	}{
		{"live", "live", ""},
		{"static", "static", ""},
		{"auto", "chain(live,static)", ""},
		{"", "chain(live,static)", ""},
		{"crystal-ball", "", "unknown scholar provider"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			p, err := New(types.ScholarConfig{Provider: tt.provider}, types.HTTPConfig{}, nil)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.True(t, strings.Contains(err.Error(), tt.errMsg))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}
