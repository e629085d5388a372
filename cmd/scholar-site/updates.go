// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-site/internal/catalog"
	"github.com/pdiddy/scholar-site/internal/updates"
	"github.com/pdiddy/scholar-site/pkg/types"
)

var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "Print the news and updates feed, newest first",
	Long: `Updates loads the updates list from updates.source, which may be a YAML
file, a YAML URL, or an RSS/Atom feed URL. Entries are sorted newest first;
entries with unparseable dates go last. A source that cannot be read is
reported as a warning and produces an empty list.`,
	RunE: runUpdates,
}

func runUpdates(cmd *cobra.Command, args []string) error {
	maxItems, _ := cmd.Flags().GetInt("max")
	if !cmd.Flags().Changed("max") {
		maxItems = siteCfg.Updates.MaxItems
	}
	source, _ := cmd.Flags().GetString("source")
	if source == "" {
		source = siteCfg.Updates.Source
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	loader := updates.NewLoader(siteCfg.HTTP, diag)
	list, err := loader.Load(cmd.Context(), source, maxItems)
	if err != nil {
		fmt.Fprintf(diag, "warning: loading updates: %v\n", err)
		list = []types.Update{}
	}

	if jsonOutput {
		return catalog.FormatJSON(list, cmd.OutOrStdout())
	}
	updates.Format(list, cmd.OutOrStdout())
	return nil
}

func init() {
	updatesCmd.Flags().Int("max", 0, "maximum number of entries (default: updates.max_items, 0 = all)")
	updatesCmd.Flags().String("source", "", "YAML file or URL, or feed URL (default: updates.source)")
	updatesCmd.Flags().Bool("json", false, "output updates as JSON")

	rootCmd.AddCommand(updatesCmd)
}
