// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-site/internal/classify"
	"github.com/pdiddy/scholar-site/pkg/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Show how a title and venue score against a taxonomy",
	Long: `Classify scores one title and venue against every area of a taxonomy
profile and prints the per-area scores and the resulting labels. Use --list
to print the available profiles.`,
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	venue, _ := cmd.Flags().GetString("venue")
	profile, _ := cmd.Flags().GetString("profile")
	list, _ := cmd.Flags().GetBool("list")

	registry, err := newRegistry(siteCfg.Classify)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if list {
		for _, name := range registry.Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	}
	if title == "" && venue == "" {
		return fmt.Errorf("provide --title, --venue, or both")
	}

	if profile == "" {
		profile = siteCfg.Classify.IngestProfile
	}
	tax, err := registry.Profile(profile)
	if err != nil {
		return err
	}
	formatScores(tax, title, venue, out)
	return nil
}

func formatScores(tax *classify.Taxonomy, title, venue string, w io.Writer) {
	fmt.Fprintf(w, "Profile: %s\n\n", tax.Name)
	fmt.Fprintf(w, "%-36s  %5s  %s\n", "Area", "Score", "Match")
	fmt.Fprintln(w, strings.Repeat("-", 52))
	for _, s := range tax.Scores(title, venue) {
		match := ""
		if s.Matched {
			match = "yes"
		}
		fmt.Fprintf(w, "%-36s  %5d  %s\n", s.Area, s.Score, match)
	}
	areas := tax.Classify(types.Publication{Title: title, Venue: venue})
	fmt.Fprintf(w, "\nAreas: %s\n", strings.Join(areas, ", "))
}

func init() {
	classifyCmd.Flags().String("title", "", "publication title")
	classifyCmd.Flags().String("venue", "", "publication venue")
	classifyCmd.Flags().String("profile", "", "taxonomy profile (default: classify.ingest_profile)")
	classifyCmd.Flags().Bool("list", false, "list the available profiles")

	rootCmd.AddCommand(classifyCmd)
}
