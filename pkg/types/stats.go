// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ScholarStats is the aggregate citation record shown on the profile pages.
type ScholarStats struct {
	TotalCitations    int       `json:"total_citations" yaml:"total_citations" mapstructure:"total_citations"`
	HIndex            int       `json:"h_index" yaml:"h_index" mapstructure:"h_index"`
	I10Index          int       `json:"i10_index" yaml:"i10_index" mapstructure:"i10_index"`
	TotalPublications int       `json:"total_publications" yaml:"total_publications" mapstructure:"total_publications"`
	LastUpdated       time.Time `json:"last_updated" yaml:"last_updated" mapstructure:"last_updated"`
}

// IsZero reports whether no metric has been filled in.
func (s ScholarStats) IsZero() bool {
	return s.TotalCitations == 0 && s.HIndex == 0 && s.I10Index == 0 && s.TotalPublications == 0
}

// CacheInfo describes the state of one cache entry. LastUpdated and
// ExpiresAt are nil when nothing is cached, in which case IsExpired is true.
type CacheInfo struct {
	LastUpdated *time.Time `json:"last_updated" yaml:"last_updated"`
	ExpiresAt   *time.Time `json:"expires_at" yaml:"expires_at"`
	IsExpired   bool       `json:"is_expired" yaml:"is_expired"`
}
