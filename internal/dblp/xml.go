// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/pdiddy/scholar-site/pkg/types"
)

// recordTypes are the publication elements of a DBLP person feed.
var recordTypes = map[string]types.PublicationType{
	"article":       types.TypeArticle,
	"inproceedings": types.TypeInproceedings,
	"proceedings":   types.TypeProceedings,
	"book":          types.TypeBook,
	"incollection":  types.TypeIncollection,
	"phdthesis":     types.TypePhDThesis,
	"mastersthesis": types.TypeMastersThesis,
}

// richText collects the character data of an element and all of its
// children, so titles with inline markup (<i>, <sub>, <sup>) flatten to
// plain text.
type richText string

func (r *richText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			b.Write(t)
		}
	}
	*r = richText(b.String())
	return nil
}

type xmlRecord struct {
	Key       string     `xml:"key,attr"`
	Authors   []richText `xml:"author"`
	Editors   []richText `xml:"editor"`
	Title     richText   `xml:"title"`
	Journal   richText   `xml:"journal"`
	BookTitle richText   `xml:"booktitle"`
	School    richText   `xml:"school"`
	Year      string     `xml:"year"`
	Pages     string     `xml:"pages"`
	Volume    string     `xml:"volume"`
	Number    string     `xml:"number"`
	EE        []string   `xml:"ee"`
	URL       string     `xml:"url"`
	Publtype  string     `xml:"publtype,attr"`
}

// ParseXML stream-decodes a DBLP person feed. Only publication elements
// are decoded; person metadata and the co-author list are skipped. The feed
// declares a US-ASCII encoding with entities for non-ASCII names.
func ParseXML(r io.Reader) ([]types.Publication, error) {
	d := xml.NewDecoder(r)
	d.Strict = false
	d.Entity = xml.HTMLEntity
	d.CharsetReader = charset.NewReaderLabel

	var pubs []types.Publication
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		typ, ok := recordTypes[start.Name.Local]
		if !ok {
			continue
		}
		var rec xmlRecord
		if err := d.DecodeElement(&rec, &start); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", start.Name.Local, err)
		}
		pubs = append(pubs, rec.publication(typ))
	}
	return pubs, nil
}

func (rec xmlRecord) publication(typ types.PublicationType) types.Publication {
	if rec.Publtype == "informal" {
		typ = types.TypeInformal
	}
	names := rec.Authors
	if len(names) == 0 {
		names = rec.Editors
	}
	authors := make([]string, 0, len(names))
	for _, a := range names {
		authors = append(authors, string(a))
	}

	venue := string(rec.Journal)
	if strings.TrimSpace(venue) == "" {
		venue = string(rec.BookTitle)
	}
	if strings.TrimSpace(venue) == "" {
		venue = string(rec.School)
	}

	year, _ := strconv.Atoi(strings.TrimSpace(rec.Year))

	var ee string
	if len(rec.EE) > 0 {
		ee = strings.TrimSpace(rec.EE[0])
	}

	return types.Publication{
		Key:     rec.Key,
		Title:   string(rec.Title),
		Authors: authors,
		Venue:   venue,
		Year:    year,
		Type:    typ,
		Pages:   strings.TrimSpace(rec.Pages),
		Volume:  strings.TrimSpace(rec.Volume),
		Number:  strings.TrimSpace(rec.Number),
		EE:      ee,
		URL:     strings.TrimSpace(rec.URL),
	}
}
