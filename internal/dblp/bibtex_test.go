// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-site/pkg/types"
)

const personBib = `@string{micro = "IEEE Micro"}

@article{DBLP:journals/micro/ReddiCKMSCWAB20,
  author       = {Vijay Janapa Reddi and
                  Christine Cheng and
                  Wei Wang 0001},
  title        = {MLPerf: An Industry Standard Benchmark Suite for {Machine Learning} Performance},
  journal      = {{IEEE} Micro},
  volume       = {40},
  number       = {2},
  pages        = {8--16},
  year         = {2020},
  url          = {https://doi.org/10.1109/MM.2020.2974843},
  doi          = {10.1109/MM.2020.2974843},
  biburl       = {https://dblp.org/rec/journals/micro/ReddiCKMSCWAB20.bib}
}

@inproceedings{DBLP:conf/isca/Smith22,
  author    = "Ann Smith",
  title     = {Caches \& Queues},
  booktitle = {Proceedings of the 49th Annual International Symposium on Computer Architecture},
  year      = 2022
}

@misc{DBLP:misc/NoTitle,
  author = {Nobody},
  year   = {2019}
}
`

func TestParseBibTeX(t *testing.T) {
	pubs := ParseBibTeX(personBib)
	require.Len(t, pubs, 2)

	a := pubs[0]
	assert.Equal(t, "journals/micro/ReddiCKMSCWAB20", a.Key)
	assert.Equal(t, "MLPerf: An Industry Standard Benchmark Suite for Machine Learning Performance", a.Title)
	assert.Equal(t, []string{"Vijay Janapa Reddi", "Christine Cheng", "Wei Wang 0001"}, a.Authors)
	assert.Equal(t, "IEEE Micro", a.Venue)
	assert.Equal(t, 2020, a.Year)
	assert.Equal(t, "8--16", a.Pages)
	assert.Equal(t, "10.1109/MM.2020.2974843", a.DOI)
	assert.Equal(t, "https://dblp.org/rec/journals/micro/ReddiCKMSCWAB20", a.URL)
	assert.Equal(t, types.TypeArticle, a.Type)

	b := pubs[1]
	assert.Equal(t, "Caches & Queues", b.Title)
	assert.Equal(t, "49th Annual International Symposium on Computer Architecture", b.Venue)
	assert.Equal(t, 2022, b.Year)
	assert.Equal(t, []string{"Ann Smith"}, b.Authors)
	assert.Equal(t, types.TypeInproceedings, b.Type)
}

func TestParseBibTeXEmpty(t *testing.T) {
	assert.Empty(t, ParseBibTeX(""))
	assert.Empty(t, ParseBibTeX("% only a comment\n"))
}

func TestClientFetchBibTeX(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pid/88/2610.bib", r.URL.Path)
		fmt.Fprint(w, personBib)
	}))
	defer ts.Close()

	c := &Client{
		HTTP:   ts.Client(),
		Config: types.IndexConfig{BaseURL: ts.URL, PID: "88/2610", Format: types.FormatBibTeX},
	}
	pubs, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, pubs, 2)
	assert.Equal(t, 2022, pubs[0].Year)
	assert.Equal(t, []string{"Vijay Janapa Reddi", "Christine Cheng", "Wei Wang"}, pubs[1].Authors)
}
