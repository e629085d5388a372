// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-site/pkg/types"
)

// typeLabels maps the search API's type labels to publication types.
var typeLabels = map[string]types.PublicationType{
	"Journal Articles":                types.TypeArticle,
	"Conference and Workshop Papers":  types.TypeInproceedings,
	"Books and Theses":                types.TypeBook,
	"Parts in Books or Collections":   types.TypeIncollection,
	"Editorship":                      types.TypeProceedings,
	"Informal and Other Publications": types.TypeInformal,
	"Informal Publications":           types.TypeInformal,
}

// oneOrMany decodes a field the search API emits as a single value when
// there is one element and as an array otherwise.
type oneOrMany[T any] []T

func (o *oneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var many []T
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*o = many
		return nil
	}
	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*o = oneOrMany[T]{one}
	return nil
}

type jsonAuthor struct {
	PID  string `json:"@pid"`
	Text string `json:"text"`
}

type jsonInfo struct {
	Authors struct {
		Author oneOrMany[jsonAuthor] `json:"author"`
	} `json:"authors"`
	Title  string            `json:"title"`
	Venue  oneOrMany[string] `json:"venue"`
	Volume string            `json:"volume"`
	Number string            `json:"number"`
	Pages  string            `json:"pages"`
	Year   string            `json:"year"`
	Type   string            `json:"type"`
	Key    string            `json:"key"`
	DOI    string            `json:"doi"`
	EE     oneOrMany[string] `json:"ee"`
	URL    string            `json:"url"`
}

type jsonResponse struct {
	Result struct {
		Hits struct {
			Total string `json:"@total"`
			Hit   []struct {
				Info jsonInfo `json:"info"`
			} `json:"hit"`
		} `json:"hits"`
	} `json:"result"`
}

// ParseJSON decodes a search API response.
func ParseJSON(data []byte) ([]types.Publication, error) {
	var resp jsonResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	pubs := make([]types.Publication, 0, len(resp.Result.Hits.Hit))
	for _, h := range resp.Result.Hits.Hit {
		pubs = append(pubs, h.Info.publication())
	}
	return pubs, nil
}

func (info jsonInfo) publication() types.Publication {
	authors := make([]string, 0, len(info.Authors.Author))
	for _, a := range info.Authors.Author {
		authors = append(authors, a.Text)
	}

	typ, ok := typeLabels[info.Type]
	if !ok {
		typ = types.TypeInformal
	}

	year, _ := strconv.Atoi(strings.TrimSpace(info.Year))

	var ee string
	if len(info.EE) > 0 {
		ee = info.EE[0]
	}

	return types.Publication{
		Key:     info.Key,
		Title:   info.Title,
		Authors: authors,
		Venue:   strings.Join(info.Venue, ", "),
		Year:    year,
		Type:    typ,
		Pages:   info.Pages,
		Volume:  info.Volume,
		Number:  info.Number,
		DOI:     info.DOI,
		EE:      ee,
		URL:     info.URL,
	}
}
