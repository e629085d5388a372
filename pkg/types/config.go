// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholar-site/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// IndexFormat selects which response shape the bibliographic index is queried for.
type IndexFormat string

const (
	FormatXML    IndexFormat = "xml"
	FormatJSON   IndexFormat = "json"
	FormatBibTeX IndexFormat = "bibtex"
)

// IndexConfig holds settings for the external bibliographic index (DBLP).
type IndexConfig struct {
	// BaseURL is the index root (default https://dblp.org).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// PID is the author identifier used by the XML person endpoint (e.g. "88/2610").
	PID string `json:"pid" yaml:"pid" mapstructure:"pid"`

	// Query is the search string used by the JSON endpoint
	// (e.g. "author:Vijay_Janapa_Reddi:").
	Query string `json:"query" yaml:"query" mapstructure:"query"`

	// Format selects the XML person feed, the JSON search API, or the
	// BibTeX person export.
	Format IndexFormat `json:"format" yaml:"format" mapstructure:"format"`

	// MaxHits caps the number of records requested from the JSON endpoint.
	MaxHits int `json:"max_hits" yaml:"max_hits" mapstructure:"max_hits"`
}

// ScholarConfig holds settings for the citation metrics provider.
type ScholarConfig struct {
	// Provider selects the stats source: live, static, or auto (live then static).
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider"`

	// UserID is the public profile identifier (the "user" query parameter).
	UserID string `json:"user_id" yaml:"user_id" mapstructure:"user_id"`

	// ProfileURL overrides the profile page URL built from UserID.
	ProfileURL string `json:"profile_url,omitempty" yaml:"profile_url,omitempty" mapstructure:"profile_url"`

	// Proxies lists URL templates tried before a direct fetch; "{url}" is
	// replaced with the escaped profile URL.
	Proxies []string `json:"proxies,omitempty" yaml:"proxies,omitempty" mapstructure:"proxies"`

	// RespectRobots makes direct fetches consult robots.txt first.
	RespectRobots bool `json:"respect_robots" yaml:"respect_robots" mapstructure:"respect_robots"`

	// Fallback holds the manually maintained numbers used by the static
	// provider and to fill metrics a live scrape could not read.
	Fallback ScholarStats `json:"fallback" yaml:"fallback" mapstructure:"fallback"`
}

// CacheConfig holds the time-to-live and storage keys for cached payloads.
type CacheConfig struct {
	// TTL is how long an entry stays fresh (default 24h).
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`

	// PublicationsKey is the store key for the publication list.
	PublicationsKey string `json:"publications_key" yaml:"publications_key" mapstructure:"publications_key"`

	// StatsKey is the store key for the scholar metrics.
	StatsKey string `json:"stats_key" yaml:"stats_key" mapstructure:"stats_key"`
}

// StoreBackend identifies the key-value store implementation.
type StoreBackend string

const (
	StoreMemory StoreBackend = "memory"
	StoreFile   StoreBackend = "file"
	StoreSQLite StoreBackend = "sqlite"
	StoreMongo  StoreBackend = "mongo"
)

// StoreConfig holds settings for the key-value store behind the caches.
type StoreConfig struct {
	Backend StoreBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Dir is the directory for the file backend and the SQLite database.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MongoURI is the connection string for the mongo backend.
	MongoURI string `json:"mongo_uri,omitempty" yaml:"mongo_uri,omitempty" mapstructure:"mongo_uri"`

	// MongoDatabase and MongoCollection name the target collection.
	MongoDatabase   string `json:"mongo_database" yaml:"mongo_database" mapstructure:"mongo_database"`
	MongoCollection string `json:"mongo_collection" yaml:"mongo_collection" mapstructure:"mongo_collection"`
}

// ClassifyConfig selects the area taxonomies.
type ClassifyConfig struct {
	// IngestProfile labels records as they enter the publication cache.
	IngestProfile string `json:"ingest_profile" yaml:"ingest_profile" mapstructure:"ingest_profile"`

	// ViewProfile labels records for the publications view, word cloud, and flow diagram.
	ViewProfile string `json:"view_profile" yaml:"view_profile" mapstructure:"view_profile"`

	// TaxonomyFile optionally adds or overrides profiles from YAML.
	TaxonomyFile string `json:"taxonomy_file,omitempty" yaml:"taxonomy_file,omitempty" mapstructure:"taxonomy_file"`
}

// ProfileConfig describes the site owner.
type ProfileConfig struct {
	// Names lists the spellings the owner publishes under; they are excluded
	// from co-author counts.
	Names []string `json:"names" yaml:"names" mapstructure:"names"`
}

// UpdatesConfig holds settings for the updates feed.
type UpdatesConfig struct {
	// Source is a YAML file path, a YAML URL, or an RSS/Atom feed URL.
	Source string `json:"source" yaml:"source" mapstructure:"source"`

	// MaxItems truncates the sorted list; zero keeps everything.
	MaxItems int `json:"max_items" yaml:"max_items" mapstructure:"max_items"`
}

// WordCloudConfig holds settings for word-cloud generation.
type WordCloudConfig struct {
	MaxWords    int    `json:"max_words" yaml:"max_words" mapstructure:"max_words"`
	Template    string `json:"template" yaml:"template" mapstructure:"template"`
	MinFontSize int    `json:"min_font_size" yaml:"min_font_size" mapstructure:"min_font_size"`
	MaxFontSize int    `json:"max_font_size" yaml:"max_font_size" mapstructure:"max_font_size"`
}

// SiteConfig groups all component configurations.
type SiteConfig struct {
	HTTP      HTTPConfig      `json:"http" yaml:"http" mapstructure:"http"`
	Index     IndexConfig     `json:"index" yaml:"index" mapstructure:"index"`
	Scholar   ScholarConfig   `json:"scholar" yaml:"scholar" mapstructure:"scholar"`
	Cache     CacheConfig     `json:"cache" yaml:"cache" mapstructure:"cache"`
	Store     StoreConfig     `json:"store" yaml:"store" mapstructure:"store"`
	Classify  ClassifyConfig  `json:"classify" yaml:"classify" mapstructure:"classify"`
	Profile   ProfileConfig   `json:"profile" yaml:"profile" mapstructure:"profile"`
	Updates   UpdatesConfig   `json:"updates" yaml:"updates" mapstructure:"updates"`
	WordCloud WordCloudConfig `json:"wordcloud" yaml:"wordcloud" mapstructure:"wordcloud"`
}
