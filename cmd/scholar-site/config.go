// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-site/internal/cache"
	"github.com/pdiddy/scholar-site/internal/classify"
	"github.com/pdiddy/scholar-site/internal/scholar"
	"github.com/pdiddy/scholar-site/internal/secrets"
	"github.com/pdiddy/scholar-site/internal/wordcloud"
	"github.com/pdiddy/scholar-site/pkg/types"
)

// Cache keys used by the site before the data layer moved to Go; kept so
// existing stores stay readable.
const (
	defaultPublicationsKey = "dblp_publications_cache"
	defaultStatsKey        = "google_scholar_cache"
)

// setDefaults registers every configuration key. AutomaticEnv only
// resolves keys viper already knows, so each key needs a default to be
// overridable from SCHOLAR_SITE_* variables.
func setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.user_agent", "scholar-site/"+version+" (+https://github.com/pdiddy/scholar-site)")
	v.SetDefault("http.max_retries", 5)

	v.SetDefault("index.base_url", "https://dblp.org")
	v.SetDefault("index.pid", "")
	v.SetDefault("index.query", "")
	v.SetDefault("index.format", string(types.FormatXML))
	v.SetDefault("index.max_hits", 1000)

	v.SetDefault("scholar.provider", scholar.ProviderAuto)
	v.SetDefault("scholar.user_id", "")
	v.SetDefault("scholar.profile_url", "")
	v.SetDefault("scholar.proxies", []string{
		"https://api.allorigins.win/get?url={url}",
		"https://corsproxy.io/?{url}",
	})
	v.SetDefault("scholar.respect_robots", true)
	v.SetDefault("scholar.fallback.total_citations", 0)
	v.SetDefault("scholar.fallback.h_index", 0)
	v.SetDefault("scholar.fallback.i10_index", 0)
	v.SetDefault("scholar.fallback.total_publications", 0)
	v.SetDefault("scholar.fallback.last_updated", "")

	v.SetDefault("cache.ttl", cache.DefaultTTL.String())
	v.SetDefault("cache.publications_key", defaultPublicationsKey)
	v.SetDefault("cache.stats_key", defaultStatsKey)

	v.SetDefault("store.backend", string(types.StoreFile))
	v.SetDefault("store.dir", ".scholar-site")
	v.SetDefault("store.mongo_uri", "")
	v.SetDefault("store.mongo_database", "scholar_site")
	v.SetDefault("store.mongo_collection", "cache")

	v.SetDefault("classify.ingest_profile", classify.ProfileExtended)
	v.SetDefault("classify.view_profile", classify.ProfileCore)
	v.SetDefault("classify.taxonomy_file", "")

	v.SetDefault("profile.names", []string{})

	v.SetDefault("updates.source", "content/updates.yaml")
	v.SetDefault("updates.max_items", 0)

	v.SetDefault("wordcloud.max_words", wordcloud.DefaultMaxWords)
	v.SetDefault("wordcloud.template", wordcloud.DefaultTemplate)
	v.SetDefault("wordcloud.min_font_size", wordcloud.DefaultMinFontSize)
	v.SetDefault("wordcloud.max_font_size", wordcloud.DefaultMaxFontSize)
}

// loadConfig decodes the resolved settings into a SiteConfig. Durations
// accept Go duration strings, lists accept comma-separated strings (as
// they arrive from the environment), and dates use YYYY-MM-DD.
func loadConfig(v *viper.Viper) (types.SiteConfig, error) {
	var cfg types.SiteConfig
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		emptyStringToZeroTime(),
		mapstructure.StringToTimeHookFunc("2006-01-02"),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// emptyStringToZeroTime lets an unset date decode to the zero time.
func emptyStringToZeroTime() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if s, ok := data.(string); ok && s == "" && to == reflect.TypeOf(time.Time{}) {
			return time.Time{}, nil
		}
		return data, nil
	}
}

// applySecrets fills credentials kept out of the config file. A mongo-uri
// secret is used when store.mongo_uri is empty; a scholar-proxy secret is
// tried before the configured proxies.
func applySecrets(cfg types.SiteConfig, s secrets.Secrets) types.SiteConfig {
	if cfg.Store.MongoURI == "" {
		cfg.Store.MongoURI = s.Get(secrets.MongoURI, "")
	}
	if proxy := s.Get(secrets.ScholarProxy, ""); proxy != "" {
		cfg.Scholar.Proxies = append([]string{proxy}, cfg.Scholar.Proxies...)
	}
	return cfg
}
