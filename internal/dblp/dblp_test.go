// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
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

const personXML = `<?xml version="1.0" encoding="US-ASCII"?>
<dblpperson name="Vijay Janapa Reddi" pid="88/2610" n="3">
<person key="homepages/88/2610" mdate="2024-01-01">
<author pid="88/2610">Vijay Janapa Reddi</author>
<url>https://scholar.harvard.edu/vijay-janapa-reddi</url>
</person>
<r><article key="journals/micro/ReddiCKMSCWAB20" mdate="2020-06-01">
<author pid="88/2610">Vijay Janapa Reddi</author>
<author pid="11/1111">Christine Cheng</author>
<author pid="22/2222">Wei Wang 0001</author>
<title>MLPerf: An Industry Standard Benchmark Suite for <i>Machine Learning</i> Performance.</title>
<pages>8-16</pages>
<year>2020</year>
<volume>40</volume>
<journal>IEEE Micro</journal>
<number>2</number>
<ee>https://doi.org/10.1109/MM.2020.2974843</ee>
<ee>https://example.org/mirror</ee>
<url>db/journals/micro/micro40.html#ReddiCKMSCWAB20</url>
</article></r>
<r><inproceedings key="conf/isca/Smith22" mdate="2022-06-01">
<author pid="88/2610">Vijay Janapa Reddi</author>
<title>Tiny &amp; Fast Accelerators.</title>
<year>2022</year>
<booktitle>ISCA</booktitle>
<ee>https://example.org/isca22</ee>
</inproceedings></r>
<r><article key="journals/corr/abs-2101-00001" publtype="informal" mdate="2021-01-01">
<author pid="88/2610">Vijay Janapa Reddi</author>
<title>A Preprint on Robots.</title>
<year>2021</year>
<journal>CoRR</journal>
</article></r>
<r><phdthesis key="phd/Reddi10">
<author pid="88/2610">Vijay Janapa Reddi</author>
<title>Software-Assisted Hardware Reliability.</title>
<school>Harvard University</school>
</phdthesis></r>
<r><article key="journals/x/Untitled"><author>Nobody</author><year>2019</year></article></r>
<coauthors n="1"><co c="0"><na pid="11/1111">Christine Cheng</na></co></coauthors>
</dblpperson>`

func TestParseXML(t *testing.T) {
	pubs, err := ParseXML(strings.NewReader(personXML))
	require.NoError(t, err)
	require.Len(t, pubs, 5)

	mlperf := pubs[0]
	assert.Equal(t, "journals/micro/ReddiCKMSCWAB20", mlperf.Key)
	assert.Equal(t, "MLPerf: An Industry Standard Benchmark Suite for Machine Learning Performance.", mlperf.Title)
	assert.Equal(t, []string{"Vijay Janapa Reddi", "Christine Cheng", "Wei Wang 0001"}, mlperf.Authors)
	assert.Equal(t, "IEEE Micro", mlperf.Venue)
	assert.Equal(t, 2020, mlperf.Year)
	assert.Equal(t, types.TypeArticle, mlperf.Type)
	assert.Equal(t, "8-16", mlperf.Pages)
	assert.Equal(t, "40", mlperf.Volume)
	assert.Equal(t, "2", mlperf.Number)
	assert.Equal(t, "https://doi.org/10.1109/MM.2020.2974843", mlperf.EE, "first ee wins")

	assert.Equal(t, "Tiny & Fast Accelerators.", pubs[1].Title)
	assert.Equal(t, "ISCA", pubs[1].Venue)
	assert.Equal(t, types.TypeInproceedings, pubs[1].Type)

	assert.Equal(t, types.TypeInformal, pubs[2].Type)

	assert.Equal(t, "Harvard University", pubs[3].Venue)
	assert.Equal(t, types.TypePhDThesis, pubs[3].Type)
	assert.Zero(t, pubs[3].Year)

	assert.Empty(t, pubs[4].Title)
}

func TestParseXMLMalformed(t *testing.T) {
	_, err := ParseXML(strings.NewReader(`<dblpperson><r><article key="a"><title>Open`))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	pubs := []types.Publication{
		{Title: "Older.", Year: 2018, Key: "conf/a/A18", Authors: []string{" Ann Lee ", "Wei Wang 0001"}},
		{Title: "   ", Year: 2024},
		{Title: "No Year", Venue: "  Some   Journal "},
		{Title: "Newer", Year: 2023, EE: "https://doi.org/10.1/abc", URL: "db/conf/b.html#B23"},
		{Title: "Also 2018", Year: 2018, URL: "https://dblp.org/rec/x"},
	}

	got := Normalize(pubs, 2025, "https://dblp.example")
	require.Len(t, got, 4)

	assert.Equal(t, "No Year", got[0].Title)
	assert.Equal(t, 2025, got[0].Year)
	assert.Equal(t, "Some Journal", got[0].Venue)

	assert.Equal(t, "Newer", got[1].Title)
	assert.Equal(t, "10.1/abc", got[1].DOI)
	assert.Equal(t, "https://dblp.example/db/conf/b.html#B23", got[1].URL)
	assert.Equal(t, "Unknown", got[1].Venue)

	assert.Equal(t, "Older", got[2].Title, "trailing period trimmed")
	assert.Equal(t, []string{"Ann Lee", "Wei Wang"}, got[2].Authors)
	assert.Equal(t, "https://dblp.example/rec/conf/a/A18", got[2].URL)

	assert.Equal(t, "Also 2018", got[3].Title, "stable within a year")
	assert.Equal(t, "https://dblp.org/rec/x", got[3].URL)
}

func TestClientFetchXML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pid/88/2610.xml", r.URL.Path)
		assert.Equal(t, "scholar-site/test", r.Header.Get("User-Agent"))
		fmt.Fprint(w, personXML)
	}))
	defer ts.Close()

	c := &Client{
		HTTP:      ts.Client(),
		Config:    types.IndexConfig{BaseURL: ts.URL, PID: "88/2610", Format: types.FormatXML},
		UserAgent: "scholar-site/test",
		Now:       func() time.Time { return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) },
	}
	pubs, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, pubs, 4, "untitled record dropped")

	years := make([]int, len(pubs))
	for i, p := range pubs {
		years[i] = p.Year
	}
	assert.Equal(t, []int{2025, 2022, 2021, 2020}, years)
	assert.Equal(t, "Software-Assisted Hardware Reliability", pubs[0].Title)
	assert.Equal(t, "10.1109/MM.2020.2974843", pubs[3].DOI)
}

func TestClientFetchRetriesOn429(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, personXML)
	}))
	defer ts.Close()

	c := &Client{
		HTTP:   ts.Client(),
		Config: types.IndexConfig{BaseURL: ts.URL, PID: "88/2610"},
	}
	pubs, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, pubs, 4)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClientFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		cfg     types.IndexConfig
		errMsg  string
	}{
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			cfg:     types.IndexConfig{PID: "88/2610"},
			errMsg:  "HTTP 500",
		},
		{
			name:    "empty feed",
			handler: func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, `<dblpperson name="x"></dblpperson>`) },
			cfg:     types.IndexConfig{PID: "88/2610"},
			errMsg:  "no publications",
		},
		{
			name:    "missing pid",
			handler: func(w http.ResponseWriter, _ *http.Request) {},
			cfg:     types.IndexConfig{},
			errMsg:  "index.pid is required",
		},
		{
			name:    "missing query",
			handler: func(w http.ResponseWriter, _ *http.Request) {},
			cfg:     types.IndexConfig{Format: types.FormatJSON},
			errMsg:  "index.query is required",
		},
		{
			name:    "unknown format",
			handler: func(w http.ResponseWriter, _ *http.Request) {},
			cfg:     types.IndexConfig{Format: "yaml"},
			errMsg:  "unknown index format",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			tt.cfg.BaseURL = ts.URL
			c := &Client{HTTP: ts.Client(), Config: tt.cfg}
			_, err := c.Fetch(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestClientDefaultBase(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, personXML)
	}))
	defer ts.Close()

	old := dblpBase
	dblpBase = ts.URL
	defer func() { dblpBase = old }()

	c := New(types.IndexConfig{PID: "88/2610"}, types.HTTPConfig{Timeout: 5 * time.Second}, nil)
	pubs, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(pubs[len(pubs)-1].URL, ts.URL+"/db/journals/micro"))
}
