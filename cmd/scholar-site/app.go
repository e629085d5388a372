// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/scholar-site/internal/cache"
	"github.com/pdiddy/scholar-site/internal/catalog"
	"github.com/pdiddy/scholar-site/internal/classify"
	"github.com/pdiddy/scholar-site/internal/dblp"
	"github.com/pdiddy/scholar-site/internal/kvstore"
	"github.com/pdiddy/scholar-site/internal/scholar"
	"github.com/pdiddy/scholar-site/pkg/types"
)

// app wires the configured components for one command invocation.
type app struct {
	cfg      types.SiteConfig
	log      io.Writer
	store    kvstore.Store
	registry *classify.Registry
	now      func() time.Time
}

func newApp(ctx context.Context, cfg types.SiteConfig, w io.Writer) (*app, error) {
	registry, err := newRegistry(cfg.Classify)
	if err != nil {
		return nil, err
	}

	store, err := kvstore.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Store.Backend, err)
	}
	return &app{cfg: cfg, log: w, store: store, registry: registry, now: time.Now}, nil
}

// newRegistry returns the built-in profiles plus those of the taxonomy file.
func newRegistry(cfg types.ClassifyConfig) (*classify.Registry, error) {
	registry := classify.NewRegistry()
	if cfg.TaxonomyFile != "" {
		if err := registry.LoadFile(cfg.TaxonomyFile); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func (a *app) Close() error { return a.store.Close() }

// taxonomy resolves a profile name, defaulting to the view profile.
func (a *app) taxonomy(name string) (*classify.Taxonomy, error) {
	if name == "" {
		name = a.cfg.Classify.ViewProfile
	}
	return a.registry.Profile(name)
}

// publications returns the publication cache. Its fetch downloads the list
// from DBLP and labels it with the ingest profile.
func (a *app) publications() (*cache.TTL[[]types.Publication], error) {
	ingest, err := a.registry.Profile(a.cfg.Classify.IngestProfile)
	if err != nil {
		return nil, err
	}
	client := dblp.New(a.cfg.Index, a.cfg.HTTP, a.log)
	client.Now = a.now

	return cache.New(a.store, cache.Options[[]types.Publication]{
		Key: a.cfg.Cache.PublicationsKey,
		TTL: a.cfg.Cache.TTL,
		Fetch: func(ctx context.Context) ([]types.Publication, error) {
			pubs, err := client.Fetch(ctx)
			if err != nil {
				return nil, err
			}
			return ingest.ClassifyAll(pubs), nil
		},
		Empty: func() []types.Publication { return []types.Publication{} },
		Now:   a.now,
		Log:   a.log,
	}), nil
}

// stats returns the scholar metrics cache.
func (a *app) stats() (*cache.TTL[types.ScholarStats], error) {
	provider, err := scholar.New(a.cfg.Scholar, a.cfg.HTTP, a.log)
	if err != nil {
		return nil, err
	}
	return cache.New(a.store, cache.Options[types.ScholarStats]{
		Key:   a.cfg.Cache.StatsKey,
		TTL:   a.cfg.Cache.TTL,
		Fetch: provider.Stats,
		Empty: func() types.ScholarStats { return types.ScholarStats{LastUpdated: a.now()} },
		Now:   a.now,
		Log:   a.log,
	}), nil
}

// viewPublications returns the cached (or freshly fetched) list labelled
// with the named profile.
func (a *app) viewPublications(ctx context.Context, profile string) ([]types.Publication, *classify.Taxonomy, error) {
	pubs, err := a.publications()
	if err != nil {
		return nil, nil, err
	}
	tax, err := a.taxonomy(profile)
	if err != nil {
		return nil, nil, err
	}
	list, src := pubs.Get(ctx)
	reportSource(a.log, "publications", src)
	if tax.Name != a.cfg.Classify.IngestProfile {
		list = catalog.Relabel(list, tax)
	}
	return list, tax, nil
}

// reportSource prints the inline notice shown when data is degraded.
func reportSource(w io.Writer, what string, src cache.Source) {
	switch src {
	case cache.SourceStale:
		fmt.Fprintf(w, "Showing previously cached %s; the latest fetch failed.\n", what)
	case cache.SourceEmpty:
		fmt.Fprintf(w, "No %s available; the fetch failed and nothing is cached.\n", what)
	}
}

func formatCacheInfo(w io.Writer, what string, info types.CacheInfo) {
	if info.LastUpdated == nil {
		fmt.Fprintf(w, "%s: nothing cached\n", what)
		return
	}
	state := "fresh"
	if info.IsExpired {
		state = "expired"
	}
	fmt.Fprintf(w, "%s: %s\n", what, state)
	fmt.Fprintf(w, "  last updated: %s\n", info.LastUpdated.Local().Format(time.RFC1123))
	fmt.Fprintf(w, "  expires at:   %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
}
