// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar supplies citation metrics for the profile page. Metrics
// come from a Provider: Live scrapes the public profile page, Static
// returns manually maintained numbers, and Chain tries providers in order.
package scholar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/scholar-site/pkg/types"
)

var (
	// ErrNoStats is returned when a provider has no usable metrics.
	ErrNoStats = errors.New("scholar: no metrics available")

	// ErrDisallowed is returned when robots.txt forbids fetching the profile.
	ErrDisallowed = errors.New("scholar: fetch disallowed by robots.txt")

	// ErrBlocked is returned when the profile host answers with a captcha
	// or traffic check instead of the profile.
	ErrBlocked = errors.New("scholar: request blocked by captcha")
)

// Provider is a source of citation metrics.
type Provider interface {
	Name() string
	Stats(ctx context.Context) (types.ScholarStats, error)
}

// Provider names accepted by New.
const (
	ProviderLive   = "live"
	ProviderStatic = "static"
	ProviderAuto   = "auto"
)

// New builds the provider selected by cfg.Provider. "auto" (the default)
// tries the live scrape and falls back to the static numbers.
func New(cfg types.ScholarConfig, httpCfg types.HTTPConfig, w io.Writer) (Provider, error) {
	switch cfg.Provider {
	case ProviderLive:
		return NewLive(cfg, httpCfg, w), nil
	case ProviderStatic:
		return &Static{Metrics: cfg.Fallback}, nil
	case ProviderAuto, "":
		return &Chain{
			Providers: []Provider{NewLive(cfg, httpCfg, w), &Static{Metrics: cfg.Fallback}},
			Log:       w,
		}, nil
	default:
		return nil, fmt.Errorf("unknown scholar provider %q", cfg.Provider)
	}
}

// Static serves fixed, manually maintained metrics.
type Static struct {
	Metrics types.ScholarStats

	// Now stamps LastUpdated when the configured numbers carry no date.
	Now func() time.Time
}

// Name returns the provider identifier.
func (s *Static) Name() string { return ProviderStatic }

// Stats returns the configured metrics, or ErrNoStats when none are set.
func (s *Static) Stats(_ context.Context) (types.ScholarStats, error) {
	st := s.Metrics
	if st.IsZero() {
		return types.ScholarStats{}, ErrNoStats
	}
	if st.LastUpdated.IsZero() {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		st.LastUpdated = now()
	}
	return st, nil
}

// Chain tries each provider in order and returns the first success.
type Chain struct {
	Providers []Provider

	// Log receives one line per failed provider (discarded when nil).
	Log io.Writer
}

// Name lists the chained providers.
func (c *Chain) Name() string {
	name := "chain("
	for i, p := range c.Providers {
		if i > 0 {
			name += ","
		}
		name += p.Name()
	}
	return name + ")"
}

// Stats returns the first provider's metrics that succeed. When every
// provider fails, the joined errors are returned.
func (c *Chain) Stats(ctx context.Context) (types.ScholarStats, error) {
	var errs []error
	for _, p := range c.Providers {
		st, err := p.Stats(ctx)
		if err == nil {
			return st, nil
		}
		if c.Log != nil {
			fmt.Fprintf(c.Log, "warning: scholar provider %s failed: %v\n", p.Name(), err)
		}
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return types.ScholarStats{}, ErrNoStats
	}
	return types.ScholarStats{}, errors.Join(errs...)
}
