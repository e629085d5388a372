// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Update is one entry of the news/updates feed shown on the home page.
type Update struct {
	Date        time.Time `json:"date" yaml:"date"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Link        string    `json:"link,omitempty" yaml:"link,omitempty"`
	LinkText    string    `json:"link_text,omitempty" yaml:"link_text,omitempty"`
}
