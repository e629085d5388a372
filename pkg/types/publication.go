// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholar-site data layer:
// publications pulled from the bibliographic index, scholar metrics, updates
// feed entries, and the per-component configuration blocks.
package types

// PublicationType is the record kind reported by the bibliographic index.
type PublicationType string

const (
	TypeArticle       PublicationType = "article"
	TypeInproceedings PublicationType = "inproceedings"
	TypeProceedings   PublicationType = "proceedings"
	TypeBook          PublicationType = "book"
	TypeIncollection  PublicationType = "incollection"
	TypePhDThesis     PublicationType = "phdthesis"
	TypeMastersThesis PublicationType = "mastersthesis"
	TypeInformal      PublicationType = "informal"
)

// Label returns a human-readable name for the publication type.
func (t PublicationType) Label() string {
	switch t {
	case TypeArticle:
		return "Journal Article"
	case TypeInproceedings:
		return "Conference Paper"
	case TypeProceedings:
		return "Proceedings"
	case TypeBook:
		return "Book"
	case TypeIncollection:
		return "Book Chapter"
	case TypePhDThesis:
		return "PhD Thesis"
	case TypeMastersThesis:
		return "Master's Thesis"
	case TypeInformal:
		return "Preprint"
	default:
		return string(t)
	}
}

// Publication is one bibliographic record. It is built once per ingestion run
// and only gains area labels afterwards; a refresh replaces the whole list.
type Publication struct {
	// Key is the record key in the external index (e.g. "conf/isca/Reddi20").
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	// Title is required: records without a title are dropped during ingestion.
	Title string `json:"title" yaml:"title"`

	// Authors lists the authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Venue is the journal, book title, or school.
	Venue string `json:"venue" yaml:"venue"`

	// Year defaults to the ingestion year when the source omits it.
	Year int `json:"year" yaml:"year"`

	Type PublicationType `json:"type" yaml:"type"`

	Pages  string `json:"pages,omitempty" yaml:"pages,omitempty"`
	Volume string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Number string `json:"number,omitempty" yaml:"number,omitempty"`
	DOI    string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// URL is the locator of the record page in the index.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// EE is the direct link to the published resource.
	EE string `json:"ee,omitempty" yaml:"ee,omitempty"`

	// Areas holds the topical labels assigned by the classifier.
	Areas []string `json:"areas,omitempty" yaml:"areas,omitempty"`
}

// HasArea reports whether area is among the publication's labels.
func (p Publication) HasArea(area string) bool {
	for _, a := range p.Areas {
		if a == area {
			return true
		}
	}
	return false
}

// Link returns the best outbound link: the resource link, then the locator.
func (p Publication) Link() string {
	if p.EE != "" {
		return p.EE
	}
	return p.URL
}
