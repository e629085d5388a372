// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-site/internal/catalog"
	"github.com/pdiddy/scholar-site/pkg/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show and refresh the cached scholar citation metrics",
	Long: `Stats reads the researcher's citation metrics (total citations, h-index,
i10-index) through the cache. Metrics are scraped from the scholar profile
when the cache is missing or expired, falling back to the values in
scholar.fallback when scraping fails.`,
}

// --- show subcommand ---

var statsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the citation metrics",
	Long: `Show prints the citation metrics. The publication total is taken from
the cached DBLP list when one exists, since the scholar profile counts
differ from the bibliographic index.`,
	RunE: runStatsShow,
}

func runStatsShow(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := newApp(cmd.Context(), siteCfg, diag)
	if err != nil {
		return err
	}
	defer a.Close()

	st, err := a.currentStats(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput {
		return catalog.FormatJSON(st, cmd.OutOrStdout())
	}
	formatStats(st, cmd.OutOrStdout())
	return nil
}

// currentStats reads the metrics through the cache and overrides the
// publication total with the cached DBLP count.
func (a *app) currentStats(ctx context.Context) (types.ScholarStats, error) {
	c, err := a.stats()
	if err != nil {
		return types.ScholarStats{}, err
	}
	st, src := c.Get(ctx)
	reportSource(a.log, "scholar metrics", src)

	pubs, err := a.publications()
	if err != nil {
		return types.ScholarStats{}, err
	}
	if list, ok := pubs.Cached(ctx); ok && len(list) > 0 {
		st.TotalPublications = len(list)
	}
	return st, nil
}

func formatStats(st types.ScholarStats, w io.Writer) {
	fmt.Fprintf(w, "%-20s %d\n", "Citations:", st.TotalCitations)
	fmt.Fprintf(w, "%-20s %d\n", "h-index:", st.HIndex)
	fmt.Fprintf(w, "%-20s %d\n", "i10-index:", st.I10Index)
	fmt.Fprintf(w, "%-20s %d\n", "Publications:", st.TotalPublications)
	if !st.LastUpdated.IsZero() {
		fmt.Fprintf(w, "%-20s %s\n", "Last updated:", st.LastUpdated.Local().Format(time.RFC1123))
	}
}

// --- refresh subcommand ---

var statsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Scrape the scholar profile now, ignoring the cache age",
	RunE:  runStatsRefresh,
}

func runStatsRefresh(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), siteCfg, diag)
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := a.stats()
	if err != nil {
		return err
	}
	st, src := c.Refresh(cmd.Context())
	reportSource(diag, "scholar metrics", src)
	if src.Degraded() {
		return fmt.Errorf("refresh failed; cache left unchanged")
	}
	formatStats(st, cmd.OutOrStdout())
	return nil
}

// --- info subcommand ---

var statsInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show when the metrics cache was last updated and when it expires",
	RunE:  runStatsInfo,
}

func runStatsInfo(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := newApp(cmd.Context(), siteCfg, diag)
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := a.stats()
	if err != nil {
		return err
	}
	info := c.Info(cmd.Context())
	if jsonOutput {
		return catalog.FormatJSON(info, cmd.OutOrStdout())
	}
	formatCacheInfo(cmd.OutOrStdout(), "scholar metrics", info)
	return nil
}

// --- clear subcommand ---

var statsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the cached metrics",
	RunE:  runStatsClear,
}

func runStatsClear(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), siteCfg, diag)
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := a.stats()
	if err != nil {
		return err
	}
	if err := c.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s.\n", c.Key())
	return nil
}

func init() {
	statsShowCmd.Flags().Bool("json", false, "output metrics as JSON")
	statsInfoCmd.Flags().Bool("json", false, "output cache info as JSON")

	statsCmd.AddCommand(statsShowCmd)
	statsCmd.AddCommand(statsRefreshCmd)
	statsCmd.AddCommand(statsInfoCmd)
	statsCmd.AddCommand(statsClearCmd)
	rootCmd.AddCommand(statsCmd)
}
