// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-site/pkg/types"
)

// bibtexReplacer undoes the escapes DBLP uses in its BibTeX export.
var bibtexReplacer = strings.NewReplacer(
	`\&`, "&",
	`\'`, "'",
	`\$`, "$",
	`\_`, "_",
	`\%`, "%",
	"{", "",
	"}", "",
)

// ParseBibTeX extracts publications from a BibTeX document. Entries start
// with "@" at the beginning of a line. Entries
// without a title and non-publication entries (@string, @comment,
// @preamble) are skipped.
func ParseBibTeX(src string) []types.Publication {
	var pubs []types.Publication
	for _, chunk := range strings.Split("\n"+src, "\n@")[1:] {
		entryType, key, fields, ok := parseBibEntry(chunk)
		if !ok {
			continue
		}
		typ, ok := bibTypes[entryType]
		if !ok {
			continue
		}
		if fields["title"] == "" {
			continue
		}

		venue := fields["booktitle"]
		if venue == "" {
			venue = fields["journal"]
		}
		if venue == "" {
			venue = fields["school"]
		}
		venue = strings.TrimPrefix(venue, "Proceedings of the ")
		venue = strings.TrimPrefix(venue, "Proceedings of ")

		var authors []string
		if a := fields["author"]; a != "" {
			authors = strings.Split(a, " and ")
		} else if e := fields["editor"]; e != "" {
			authors = strings.Split(e, " and ")
		}

		year, _ := strconv.Atoi(fields["year"])

		key = strings.TrimPrefix(key, "DBLP:")
		pubs = append(pubs, types.Publication{
			Key:     key,
			Title:   fields["title"],
			Authors: authors,
			Venue:   venue,
			Year:    year,
			Type:    typ,
			Pages:   fields["pages"],
			Volume:  fields["volume"],
			Number:  fields["number"],
			DOI:     fields["doi"],
			URL:     strings.TrimSuffix(fields["biburl"], ".bib"),
			EE:      fields["url"],
		})
	}
	return pubs
}

var bibTypes = map[string]types.PublicationType{
	"article":       types.TypeArticle,
	"inproceedings": types.TypeInproceedings,
	"proceedings":   types.TypeProceedings,
	"book":          types.TypeBook,
	"incollection":  types.TypeIncollection,
	"phdthesis":     types.TypePhDThesis,
	"mastersthesis": types.TypeMastersThesis,
	"misc":          types.TypeInformal,
}

// parseBibEntry splits "type{key, name = {value}, ...}" into its parts.
// Values may be brace- or quote-delimited, or bare numbers, and braces
// nest.
func parseBibEntry(chunk string) (entryType, key string, fields map[string]string, ok bool) {
	open := strings.IndexAny(chunk, "{(")
	if open < 0 {
		return "", "", nil, false
	}
	entryType = strings.ToLower(strings.TrimSpace(chunk[:open]))
	body := chunk[open+1:]

	comma := strings.IndexByte(body, ',')
	if comma < 0 {
		return "", "", nil, false
	}
	key = strings.TrimSpace(body[:comma])
	rest := body[comma+1:]

	fields = make(map[string]string)
	for {
		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			break
		}
		name := strings.ToLower(strings.Trim(strings.TrimSpace(rest[:eq]), ","))
		rest = strings.TrimLeft(rest[eq+1:], " \t\r\n")
		if rest == "" {
			break
		}

		var value string
		switch rest[0] {
		case '{':
			end := matchingBrace(rest)
			if end < 0 {
				return entryType, key, fields, true
			}
			value = rest[1:end]
			rest = rest[end+1:]
		case '"':
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				return entryType, key, fields, true
			}
			value = rest[1 : end+1]
			rest = rest[end+2:]
		default:
			end := strings.IndexAny(rest, ",}\n")
			if end < 0 {
				end = len(rest)
			}
			value = rest[:end]
			rest = rest[end:]
		}
		fields[name] = cleanBibValue(value)

		next := strings.IndexByte(rest, ',')
		if next < 0 {
			break
		}
		rest = rest[next+1:]
	}
	return entryType, key, fields, true
}

func matchingBrace(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func cleanBibValue(s string) string {
	return strings.Join(strings.Fields(bibtexReplacer.Replace(s)), " ")
}
