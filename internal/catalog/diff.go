// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/pdiddy/scholar-site/pkg/types"
)

// Changes lists the titles that a refresh added to and removed from the
// publication list.
type Changes struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

// Empty reports whether the refresh changed nothing.
func (c Changes) Empty() bool { return len(c.Added) == 0 && len(c.Removed) == 0 }

// Diff compares two publication lists by title. Each list is reduced to
// one line per publication ("year  title"), sorted, and diffed line-wise.
func Diff(before, after []types.Publication) Changes {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(titleLines(before), titleLines(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var c Changes
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			c.Added = append(c.Added, splitLines(d.Text)...)
		case diffmatchpatch.DiffDelete:
			c.Removed = append(c.Removed, splitLines(d.Text)...)
		}
	}
	return c
}

func titleLines(pubs []types.Publication) string {
	lines := make([]string, len(pubs))
	for i, p := range pubs {
		lines[i] = fmt.Sprintf("%d  %s\n", p.Year, p.Title)
	}
	sort.Strings(lines)
	return strings.Join(lines, "")
}

func splitLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// FormatChanges writes a refresh diff in unified style ("+" added, "-"
// removed).
func FormatChanges(c Changes, w io.Writer) {
	if c.Empty() {
		fmt.Fprintln(w, "No changes.")
		return
	}
	for _, t := range c.Removed {
		fmt.Fprintf(w, "- %s\n", t)
	}
	for _, t := range c.Added {
		fmt.Fprintf(w, "+ %s\n", t)
	}
	fmt.Fprintf(w, "\n%d added, %d removed\n", len(c.Added), len(c.Removed))
}
