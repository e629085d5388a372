// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-site/internal/catalog"
)

var publicationsCmd = &cobra.Command{
	Use:     "publications",
	Aliases: []string{"pubs"},
	Short:   "List, summarize, and refresh the cached DBLP publications",
	Long: `Publications reads the researcher's publication list through the cache.
The list is fetched from DBLP when the cache is missing or older than its
TTL; when the fetch fails the previous list is shown instead.`,
}

// --- list subcommand ---

var publicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List publications, optionally filtered by research area",
	Long: `List prints the publications newest first. Use --area to show one
research area ("All" shows everything) and --profile to label the list
with a different taxonomy than the one it was ingested with.`,
	RunE: runPublicationsList,
}

func runPublicationsList(cmd *cobra.Command, args []string) error {
	area, _ := cmd.Flags().GetString("area")
	profile, _ := cmd.Flags().GetString("profile")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	cslOutput, _ := cmd.Flags().GetBool("csl")
	if jsonOutput && cslOutput {
		return fmt.Errorf("--json and --csl are mutually exclusive")
	}

	a, err := newApp(cmd.Context(), siteCfg, diag)
	if err != nil {
		return err
	}
	defer a.Close()

	pubs, _, err := a.viewPublications(cmd.Context(), profile)
	if err != nil {
		return err
	}
	pubs = catalog.Filter(pubs, area)

	out := cmd.OutOrStdout()
	switch {
	case jsonOutput:
		return catalog.FormatJSON(pubs, out)
	case cslOutput:
		return catalog.FormatCSL(pubs, out)
	}
	catalog.FormatTable(pubs, out)
	return nil
}

// --- summary subcommand ---

var publicationsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals per area, venue, and year plus top co-authors",
	Long: `Summary prints the headline numbers of the publications page: the
total count, the number of distinct co-authors, publications per research
area, per venue, and per year, and the most frequent co-authors. Names in
profile.names are the researcher's own and are not counted as co-authors.`,
	RunE: runPublicationsSummary,
}

func runPublicationsSummary(cmd *cobra.Command, args []string) error {
	profile, _ := cmd.Flags().GetString("profile")
	top, _ := cmd.Flags().GetInt("top")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := newApp(cmd.Context(), siteCfg, diag)
	if err != nil {
		return err
	}
	defer a.Close()

	pubs, tax, err := a.viewPublications(cmd.Context(), profile)
	if err != nil {
		return err
	}
	summary := catalog.Summarize(pubs, tax.AreaNames(), siteCfg.Profile.Names, top)

	if jsonOutput {
		return catalog.FormatJSON(summary, cmd.OutOrStdout())
	}
	catalog.FormatSummary(summary, cmd.OutOrStdout())
	return nil
}

// --- refresh subcommand ---

var publicationsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch publications from DBLP now, ignoring the cache age",
	Long: `Refresh bypasses the TTL and fetches the publication list from DBLP.
On success the cache is replaced; on failure the previous entry is kept.
Use --diff to print the titles added and removed by the refresh.`,
	RunE: runPublicationsRefresh,
}

func runPublicationsRefresh(cmd *cobra.Command, args []string) error {
	showDiff, _ := cmd.Flags().GetBool("diff")

	a, err := newApp(cmd.Context(), siteCfg, diag)
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := a.publications()
	if err != nil {
		return err
	}
	before, _ := c.Cached(cmd.Context())
	after, src := c.Refresh(cmd.Context())
	reportSource(diag, "publications", src)

	out := cmd.OutOrStdout()
	if src.Degraded() {
		return fmt.Errorf("refresh failed; cache left unchanged")
	}
	fmt.Fprintf(out, "Cached %d publications.\n", len(after))
	if showDiff {
		catalog.FormatChanges(catalog.Diff(before, after), out)
	}
	return nil
}

// --- info subcommand ---

var publicationsInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show when the publication cache was last updated and when it expires",
	RunE:  runPublicationsInfo,
}

func runPublicationsInfo(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := newApp(cmd.Context(), siteCfg, diag)
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := a.publications()
	if err != nil {
		return err
	}
	info := c.Info(cmd.Context())
	if jsonOutput {
		return catalog.FormatJSON(info, cmd.OutOrStdout())
	}
	formatCacheInfo(cmd.OutOrStdout(), "publications", info)
	return nil
}

// --- clear subcommand ---

var publicationsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the cached publication list",
	RunE:  runPublicationsClear,
}

func runPublicationsClear(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), siteCfg, diag)
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := a.publications()
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
	publicationsListCmd.Flags().String("area", catalog.AllAreas, "research area to show")
	publicationsListCmd.Flags().String("profile", "", "taxonomy profile to label with (default: classify.view_profile)")
	publicationsListCmd.Flags().Bool("json", false, "output publications as JSON")
	publicationsListCmd.Flags().Bool("csl", false, "output publications as CSL-YAML")

	publicationsSummaryCmd.Flags().String("profile", "", "taxonomy profile to label with (default: classify.view_profile)")
	publicationsSummaryCmd.Flags().Int("top", 10, "number of top co-authors to show")
	publicationsSummaryCmd.Flags().Bool("json", false, "output the summary as JSON")

	publicationsRefreshCmd.Flags().Bool("diff", false, "print titles added and removed by the refresh")

	publicationsInfoCmd.Flags().Bool("json", false, "output cache info as JSON")

	publicationsCmd.AddCommand(publicationsListCmd)
	publicationsCmd.AddCommand(publicationsSummaryCmd)
	publicationsCmd.AddCommand(publicationsRefreshCmd)
	publicationsCmd.AddCommand(publicationsInfoCmd)
	publicationsCmd.AddCommand(publicationsClearCmd)
	rootCmd.AddCommand(publicationsCmd)
}
