// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Metrics holds the values read from a profile page. A nil field was not
// found on the page.
type Metrics struct {
	Citations *int
	HIndex    *int
	I10Index  *int
}

// Found reports whether any metric was read.
func (m Metrics) Found() bool {
	return m.Citations != nil || m.HIndex != nil || m.I10Index != nil
}

// metricAnchors match the "all time" cell that follows each metric label.
var metricAnchors = map[string]*regexp.Regexp{
	"citations": regexp.MustCompile(`Citations</a></td>\s*<td class="gsc_rsb_std">(\d+)</td>`),
	"h-index":   regexp.MustCompile(`h-index</a></td>\s*<td class="gsc_rsb_std">(\d+)</td>`),
	"i10-index": regexp.MustCompile(`i10-index</a></td>\s*<td class="gsc_rsb_std">(\d+)</td>`),
}

// ParseProfile reads the citation metrics table of a profile page. The
// table is walked with goquery first; labels it could not read are tried
// against the raw markup with fixed anchors.
func ParseProfile(page string) Metrics {
	values := map[string]int{}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(page)); err == nil {
		doc.Find("#gsc_rsb_st tr").Each(func(_ int, row *goquery.Selection) {
			label := strings.ToLower(strings.TrimSpace(row.Find("td").First().Text()))
			cell := row.Find("td.gsc_rsb_std").First()
			if label == "" || cell.Length() == 0 {
				return
			}
			n, err := parseCount(cell.Text())
			if err != nil {
				return
			}
			if _, ok := metricAnchors[label]; ok {
				values[label] = n
			}
		})
	}

	for label, re := range metricAnchors {
		if _, ok := values[label]; ok {
			continue
		}
		if m := re.FindStringSubmatch(page); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				values[label] = n
			}
		}
	}

	var m Metrics
	if n, ok := values["citations"]; ok {
		m.Citations = &n
	}
	if n, ok := values["h-index"]; ok {
		m.HIndex = &n
	}
	if n, ok := values["i10-index"]; ok {
		m.I10Index = &n
	}
	return m
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(",", "", ".", "", "\u00a0", "").Replace(s)
	return strconv.Atoi(s)
}

// unwrapEnvelope returns the page carried in a JSON proxy response
// ({"contents": "..."} or {"data": "..."}). Bodies that are not such an
// envelope are returned unchanged.
func unwrapEnvelope(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return string(body)
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return string(body)
	}
	for _, field := range []string{"contents", "data"} {
		raw, ok := env[field]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(body)
}

// looksBlocked reports whether a page is a captcha or traffic check.
func looksBlocked(page string) bool {
	lower := strings.ToLower(page)
	return strings.Contains(lower, "captcha") ||
		strings.Contains(lower, "unusual traffic") ||
		strings.Contains(lower, "not a robot")
}
